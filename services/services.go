package services

import (
	"context"

	"github.com/samber/mo"

	"botbackend/models"
)

// PointsService defines the interface for the append-only point ledger
type PointsService interface {
	// Record appends one transaction. Rejects self-transactions
	// (subject == issuer) outright, independent of delta sign.
	Record(ctx context.Context, subject, issuer string, delta int64) error
	// BalanceReport aggregates every transaction into per-subject totals.
	// Output order is incidental.
	BalanceReport(ctx context.Context) ([]*models.PointBalance, error)
}

// ContactsService defines the interface for the contact directory
type ContactsService interface {
	UpdateContact(ctx context.Context, subject, phoneNumber string) error
	// ListContacts returns subject identities only - phone numbers are
	// never included in listings
	ListContacts(ctx context.Context) ([]string, error)
	GetContact(ctx context.Context, subject string) (mo.Option[*models.ContactRecord], error)
}

// NotificationsService defines the interface for the alert fan-out
type NotificationsService interface {
	// RaidAlert sends the fixed warning through SMS and voice; both must
	// succeed for the alert to count as delivered
	RaidAlert(ctx context.Context, originationNumber, destinationNumber string) error
}
