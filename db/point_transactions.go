package db

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	// necessary import to wire up the postgres driver
	_ "github.com/lib/pq"

	"botbackend/models"
)

// PostgresPointTransactionsRepository stores the append-only point ledger.
// There are deliberately no UPDATE or DELETE statements here - balances are
// derived by aggregating the full transaction history.
type PostgresPointTransactionsRepository struct {
	db     *sqlx.DB
	schema string
}

// Column names for point_transactions table
var pointTransactionsColumns = []string{
	"transaction_id",
	"subject",
	"delta",
	"created_at",
	"issuer",
}

func NewPostgresPointTransactionsRepository(db *sqlx.DB, schema string) *PostgresPointTransactionsRepository {
	return &PostgresPointTransactionsRepository{db: db, schema: schema}
}

func (r *PostgresPointTransactionsRepository) CreatePointTransaction(
	ctx context.Context,
	transaction *models.PointTransaction,
) error {
	columnsStr := strings.Join(pointTransactionsColumns, ", ")

	query := fmt.Sprintf(`
		INSERT INTO %s.point_transactions (%s)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING %s`, r.schema, columnsStr, columnsStr)

	err := r.db.QueryRowxContext(
		ctx,
		query,
		transaction.TransactionID,
		transaction.Subject,
		transaction.Delta,
		transaction.CreatedAt,
		transaction.Issuer,
	).StructScan(transaction)
	if err != nil {
		return fmt.Errorf("failed to create point transaction: %w", err)
	}

	return nil
}

func (r *PostgresPointTransactionsRepository) ListPointTransactions(
	ctx context.Context,
) ([]*models.PointTransaction, error) {
	columnsStr := strings.Join(pointTransactionsColumns, ", ")
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s.point_transactions
		ORDER BY created_at ASC`, columnsStr, r.schema)

	var transactions []*models.PointTransaction
	err := r.db.SelectContext(ctx, &transactions, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list point transactions: %w", err)
	}

	return transactions, nil
}
