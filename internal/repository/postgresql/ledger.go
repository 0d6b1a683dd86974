package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/crewpay/crewpay-backend-go/internal/domain/ledger"
	"github.com/crewpay/crewpay-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

type ledgerRepository struct {
	db *database.DB
}

func NewLedgerRepository(db *database.DB) ledger.LedgerRepository {
	return &ledgerRepository{db: db}
}

// Append posts a transaction inside one storage transaction: the worker row
// is locked, the balance decision is made against the locked value, and the
// transaction insert plus cache update commit together. Two postings for the
// same worker serialize on the row lock.
func (r *ledgerRepository) Append(ctx context.Context, workerID string, kind ledger.Kind, amount decimal.Decimal, date time.Time, notes *string) (ledger.LedgerTransaction, error) {
	var result ledger.LedgerTransaction

	err := WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		var balance decimal.Decimal
		err := tx.QueryRow(ctx,
			`SELECT balance FROM workers WHERE id = $1 FOR UPDATE`,
			workerID,
		).Scan(&balance)
		if err != nil {
			if err == pgx.ErrNoRows {
				return ledger.ErrWorkerNotFound
			}
			return fmt.Errorf("failed to lock worker balance: %w", err)
		}

		newBalance, err := ledger.Apply(balance, kind, amount)
		if err != nil {
			return err
		}

		result = ledger.LedgerTransaction{
			WorkerID:     workerID,
			Kind:         kind,
			Amount:       amount,
			Date:         date,
			BalanceAfter: newBalance,
			Notes:        notes,
		}

		err = tx.QueryRow(ctx, `
			INSERT INTO ledger_transactions (worker_id, kind, amount, date, balance_after, notes)
			VALUES ($1, $2, $3, $4, $5, $6)
			RETURNING id, created_at
		`, workerID, string(kind), amount, date, newBalance, notes,
		).Scan(&result.ID, &result.CreatedAt)
		if err != nil {
			return fmt.Errorf("failed to insert ledger transaction: %w", err)
		}

		_, err = tx.Exec(ctx,
			`UPDATE workers SET balance = $2, updated_at = NOW() WHERE id = $1`,
			workerID, newBalance,
		)
		if err != nil {
			return fmt.Errorf("failed to update cached balance: %w", err)
		}

		return nil
	})
	if err != nil {
		return ledger.LedgerTransaction{}, err
	}

	return result, nil
}

func (r *ledgerRepository) GetHistory(ctx context.Context, workerID string) ([]ledger.LedgerTransaction, error) {
	q := GetQuerier(ctx, r.db)

	var exists bool
	if err := q.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM workers WHERE id = $1)`, workerID).Scan(&exists); err != nil {
		return nil, fmt.Errorf("failed to check worker: %w", err)
	}
	if !exists {
		return nil, ledger.ErrWorkerNotFound
	}

	query := `
		SELECT id, worker_id, kind, amount, date, balance_after, notes, created_at
		FROM ledger_transactions
		WHERE worker_id = $1
		ORDER BY created_at, id
	`

	rows, err := q.Query(ctx, query, workerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list ledger transactions: %w", err)
	}
	defer rows.Close()

	var transactions []ledger.LedgerTransaction
	for rows.Next() {
		var t ledger.LedgerTransaction
		var kind string
		if err := rows.Scan(
			&t.ID, &t.WorkerID, &kind, &t.Amount, &t.Date, &t.BalanceAfter, &t.Notes, &t.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan ledger transaction: %w", err)
		}
		t.Kind = ledger.Kind(kind)
		transactions = append(transactions, t)
	}

	return transactions, nil
}
