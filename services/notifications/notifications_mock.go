package notifications

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockNotificationsService implements the services.NotificationsService
// interface for testing
type MockNotificationsService struct {
	mock.Mock
}

func (m *MockNotificationsService) RaidAlert(
	ctx context.Context,
	originationNumber, destinationNumber string,
) error {
	args := m.Called(ctx, originationNumber, destinationNumber)
	return args.Error(0)
}
