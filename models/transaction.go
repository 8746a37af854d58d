package models

import (
	"time"
)

// PointTransaction is one append-only ledger record. Transactions are
// immutable once written - there is no update or delete path, and removing
// points is just a transaction with a negative delta.
type PointTransaction struct {
	TransactionID string    `db:"transaction_id" json:"transaction_id"`
	Subject       string    `db:"subject"        json:"subject"`
	Delta         int64     `db:"delta"          json:"delta"`
	CreatedAt     time.Time `db:"created_at"     json:"created_at"`
	Issuer        string    `db:"issuer"         json:"issuer"`
}

// PointBalance is the aggregate of all transaction deltas for one subject
type PointBalance struct {
	Subject string `json:"subject"`
	Total   int64  `json:"total_points"`
}
