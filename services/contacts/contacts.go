package contacts

import (
	"context"
	"fmt"
	"log"

	"github.com/samber/mo"

	"botbackend/core"
	"botbackend/models"
	"botbackend/utils"
)

// ContactsRepository defines the storage operations for the contact directory
type ContactsRepository interface {
	UpsertContact(ctx context.Context, contact *models.ContactRecord) error
	GetContactBySubject(ctx context.Context, subject string) (mo.Option[*models.ContactRecord], error)
	ListContacts(ctx context.Context) ([]*models.ContactRecord, error)
}

type ContactsService struct {
	contactsRepo ContactsRepository
}

func NewContactsService(contactsRepo ContactsRepository) *ContactsService {
	return &ContactsService{contactsRepo: contactsRepo}
}

// UpdateContact validates the phone number format before any write, then
// upserts the contact record for the subject
func (s *ContactsService) UpdateContact(ctx context.Context, subject, phoneNumber string) error {
	log.Printf("📋 Starting to update contact info for %s", subject)

	if subject == "" {
		return fmt.Errorf("subject cannot be empty")
	}
	if !utils.IsValidPhoneNumber(phoneNumber) {
		return core.ErrInvalidPhoneNumber
	}

	contact := &models.ContactRecord{Subject: subject, PhoneNumber: phoneNumber}
	if err := s.contactsRepo.UpsertContact(ctx, contact); err != nil {
		return fmt.Errorf("failed to update contact info: %w", err)
	}

	log.Printf("✅ Updated contact info for %s", subject)
	return nil
}

// ListContacts returns the registered subject identities. Phone numbers stay
// out of listings.
func (s *ContactsService) ListContacts(ctx context.Context) ([]string, error) {
	contacts, err := s.contactsRepo.ListContacts(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list contacts: %w", err)
	}

	subjects := make([]string, 0, len(contacts))
	for _, contact := range contacts {
		subjects = append(subjects, contact.Subject)
	}

	log.Printf("✅ Listed %d registered contacts", len(subjects))
	return subjects, nil
}

func (s *ContactsService) GetContact(
	ctx context.Context,
	subject string,
) (mo.Option[*models.ContactRecord], error) {
	maybeContact, err := s.contactsRepo.GetContactBySubject(ctx, subject)
	if err != nil {
		return mo.None[*models.ContactRecord](), fmt.Errorf("failed to get contact: %w", err)
	}

	return maybeContact, nil
}
