package models

import (
	"time"
)

// ContactRecord maps one identity to a phone number. A new write for the
// same subject silently replaces the previous number - no history is kept.
type ContactRecord struct {
	Subject     string    `db:"subject"      json:"subject"`
	PhoneNumber string    `db:"phone_number" json:"phone_number"`
	CreatedAt   time.Time `db:"created_at"   json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"   json:"updated_at"`
}
