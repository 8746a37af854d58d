package contacts

import (
	"context"

	"github.com/samber/mo"
	"github.com/stretchr/testify/mock"

	"botbackend/models"
)

// MockContactsService implements the services.ContactsService interface for testing
type MockContactsService struct {
	mock.Mock
}

func (m *MockContactsService) UpdateContact(ctx context.Context, subject, phoneNumber string) error {
	args := m.Called(ctx, subject, phoneNumber)
	return args.Error(0)
}

func (m *MockContactsService) ListContacts(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockContactsService) GetContact(
	ctx context.Context,
	subject string,
) (mo.Option[*models.ContactRecord], error) {
	args := m.Called(ctx, subject)
	return args.Get(0).(mo.Option[*models.ContactRecord]), args.Error(1)
}

// MockContactsRepository implements the ContactsRepository interface for testing
type MockContactsRepository struct {
	mock.Mock
}

func (m *MockContactsRepository) UpsertContact(ctx context.Context, contact *models.ContactRecord) error {
	args := m.Called(ctx, contact)
	return args.Error(0)
}

func (m *MockContactsRepository) GetContactBySubject(
	ctx context.Context,
	subject string,
) (mo.Option[*models.ContactRecord], error) {
	args := m.Called(ctx, subject)
	return args.Get(0).(mo.Option[*models.ContactRecord]), args.Error(1)
}

func (m *MockContactsRepository) ListContacts(ctx context.Context) ([]*models.ContactRecord, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.ContactRecord), args.Error(1)
}
