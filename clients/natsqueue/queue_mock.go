package natsqueue

import (
	"context"

	"github.com/stretchr/testify/mock"

	"botbackend/clients"
)

// MockQueueClient implements the clients.QueueClient interface for testing
type MockQueueClient struct {
	mock.Mock
}

// Publish mocks placing a serialized envelope on the queue
func (m *MockQueueClient) Publish(ctx context.Context, body []byte) error {
	args := m.Called(ctx, body)
	return args.Error(0)
}

// FetchBatch mocks pulling a batch of deliveries
func (m *MockQueueClient) FetchBatch(ctx context.Context, maxMessages int) ([]clients.QueuedMessage, error) {
	args := m.Called(ctx, maxMessages)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]clients.QueuedMessage), args.Error(1)
}

// MockQueuedMessage implements the clients.QueuedMessage interface for testing
type MockQueuedMessage struct {
	mock.Mock
}

// Body mocks the delivery payload
func (m *MockQueuedMessage) Body() []byte {
	args := m.Called()
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).([]byte)
}

// Ack mocks removing the delivery from the queue
func (m *MockQueuedMessage) Ack() error {
	args := m.Called()
	return args.Error(0)
}
