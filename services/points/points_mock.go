package points

import (
	"context"

	"github.com/stretchr/testify/mock"

	"botbackend/models"
)

// MockPointsService implements the services.PointsService interface for testing
type MockPointsService struct {
	mock.Mock
}

func (m *MockPointsService) Record(ctx context.Context, subject, issuer string, delta int64) error {
	args := m.Called(ctx, subject, issuer, delta)
	return args.Error(0)
}

func (m *MockPointsService) BalanceReport(ctx context.Context) ([]*models.PointBalance, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.PointBalance), args.Error(1)
}

// MockPointsRepository implements the PointsRepository interface for testing
type MockPointsRepository struct {
	mock.Mock
}

func (m *MockPointsRepository) CreatePointTransaction(
	ctx context.Context,
	transaction *models.PointTransaction,
) error {
	args := m.Called(ctx, transaction)
	return args.Error(0)
}

func (m *MockPointsRepository) ListPointTransactions(ctx context.Context) ([]*models.PointTransaction, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.PointTransaction), args.Error(1)
}
