package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/samber/mo"

	// necessary import to wire up the postgres driver
	_ "github.com/lib/pq"

	"botbackend/models"
)

type PostgresContactsRepository struct {
	db     *sqlx.DB
	schema string
}

// Column names for contacts table
var contactsColumns = []string{
	"subject",
	"phone_number",
	"created_at",
	"updated_at",
}

func NewPostgresContactsRepository(db *sqlx.DB, schema string) *PostgresContactsRepository {
	return &PostgresContactsRepository{db: db, schema: schema}
}

// UpsertContact writes the contact record for a subject, silently replacing
// any previous phone number
func (r *PostgresContactsRepository) UpsertContact(
	ctx context.Context,
	contact *models.ContactRecord,
) error {
	columnsStr := strings.Join(contactsColumns, ", ")

	query := fmt.Sprintf(`
		INSERT INTO %s.contacts (subject, phone_number, created_at, updated_at)
		VALUES ($1, $2, NOW(), NOW())
		ON CONFLICT (subject)
		DO UPDATE SET phone_number = EXCLUDED.phone_number, updated_at = NOW()
		RETURNING %s`, r.schema, columnsStr)

	err := r.db.QueryRowxContext(ctx, query, contact.Subject, contact.PhoneNumber).StructScan(contact)
	if err != nil {
		return fmt.Errorf("failed to upsert contact: %w", err)
	}

	return nil
}

func (r *PostgresContactsRepository) GetContactBySubject(
	ctx context.Context,
	subject string,
) (mo.Option[*models.ContactRecord], error) {
	if subject == "" {
		return mo.None[*models.ContactRecord](), fmt.Errorf("subject cannot be empty")
	}

	columnsStr := strings.Join(contactsColumns, ", ")
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s.contacts
		WHERE subject = $1`, columnsStr, r.schema)

	var contact models.ContactRecord
	err := r.db.GetContext(ctx, &contact, query, subject)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return mo.None[*models.ContactRecord](), nil
		}
		return mo.None[*models.ContactRecord](), fmt.Errorf("failed to get contact by subject: %w", err)
	}

	return mo.Some(&contact), nil
}

func (r *PostgresContactsRepository) ListContacts(ctx context.Context) ([]*models.ContactRecord, error) {
	columnsStr := strings.Join(contactsColumns, ", ")
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s.contacts
		ORDER BY subject ASC`, columnsStr, r.schema)

	var contacts []*models.ContactRecord
	err := r.db.SelectContext(ctx, &contacts, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list contacts: %w", err)
	}

	return contacts, nil
}
