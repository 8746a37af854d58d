package pinpoint

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockNotifierClient implements the clients.NotifierClient interface for testing
type MockNotifierClient struct {
	mock.Mock
}

// SendTextMessage mocks sending an SMS
func (m *MockNotifierClient) SendTextMessage(
	ctx context.Context,
	originationNumber, destinationNumber, message string,
) error {
	args := m.Called(ctx, originationNumber, destinationNumber, message)
	return args.Error(0)
}

// SendVoiceMessage mocks placing a voice call
func (m *MockNotifierClient) SendVoiceMessage(
	ctx context.Context,
	originationNumber, destinationNumber, ssmlMessage string,
) error {
	args := m.Called(ctx, originationNumber, destinationNumber, ssmlMessage)
	return args.Error(0)
}
