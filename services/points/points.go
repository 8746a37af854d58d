package points

import (
	"context"
	"fmt"
	"log"
	"time"

	"botbackend/core"
	"botbackend/models"
)

// PointsRepository defines the storage operations the ledger needs: append
// and full scan, nothing else
type PointsRepository interface {
	CreatePointTransaction(ctx context.Context, transaction *models.PointTransaction) error
	ListPointTransactions(ctx context.Context) ([]*models.PointTransaction, error)
}

type PointsService struct {
	pointsRepo PointsRepository
}

func NewPointsService(pointsRepo PointsRepository) *PointsService {
	return &PointsService{pointsRepo: pointsRepo}
}

// Record appends one immutable transaction with a fresh id and the current
// time. Self-transactions are rejected before anything is stored.
func (s *PointsService) Record(ctx context.Context, subject, issuer string, delta int64) error {
	log.Printf("📋 Starting to record point transaction: %s -> %s (%+d)", issuer, subject, delta)

	if subject == "" {
		return fmt.Errorf("subject cannot be empty")
	}
	if issuer == "" {
		return fmt.Errorf("issuer cannot be empty")
	}
	if subject == issuer {
		return core.ErrSelfTransaction
	}

	transaction := &models.PointTransaction{
		TransactionID: core.NewID("txn"),
		Subject:       subject,
		Delta:         delta,
		CreatedAt:     time.Now().UTC(),
		Issuer:        issuer,
	}

	if err := s.pointsRepo.CreatePointTransaction(ctx, transaction); err != nil {
		return fmt.Errorf("failed to record point transaction: %w", err)
	}

	log.Printf("✅ Recorded point transaction %s", transaction.TransactionID)
	return nil
}

// BalanceReport reads every transaction and sums deltas per subject. The
// balance is recomputed from scratch on each call, so it can never drift
// from the ledger.
func (s *PointsService) BalanceReport(ctx context.Context) ([]*models.PointBalance, error) {
	log.Printf("📋 Starting to compute balance report")

	transactions, err := s.pointsRepo.ListPointTransactions(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to compute balance report: %w", err)
	}

	totals := make(map[string]int64)
	order := make([]string, 0)
	for _, transaction := range transactions {
		if _, seen := totals[transaction.Subject]; !seen {
			order = append(order, transaction.Subject)
		}
		totals[transaction.Subject] += transaction.Delta
	}

	balances := make([]*models.PointBalance, 0, len(order))
	for _, subject := range order {
		balances = append(balances, &models.PointBalance{Subject: subject, Total: totals[subject]})
	}

	log.Printf("✅ Computed balances for %d subjects across %d transactions", len(balances), len(transactions))
	return balances, nil
}
