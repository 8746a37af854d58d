package discord

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockDiscordClient implements the clients.DiscordClient interface for testing
type MockDiscordClient struct {
	mock.Mock
}

// GetUserTag mocks resolving a user ID to its "username#discriminator" form
func (m *MockDiscordClient) GetUserTag(ctx context.Context, userID string) (string, error) {
	args := m.Called(ctx, userID)
	return args.String(0), args.Error(1)
}

// SendChannelMessage mocks posting a message to a channel
func (m *MockDiscordClient) SendChannelMessage(ctx context.Context, channelID, content string) error {
	args := m.Called(ctx, channelID, content)
	return args.Error(0)
}
