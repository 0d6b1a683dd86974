package ledger

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// LedgerRepository is the append-only transaction log. Append must be atomic
// per worker: reading the current balance, accepting or rejecting the
// posting, writing the transaction and updating the worker's cached balance
// happen as one unit with no interleaved mutation for the same worker.
type LedgerRepository interface {
	Append(ctx context.Context, workerID string, kind Kind, amount decimal.Decimal, date time.Time, notes *string) (LedgerTransaction, error)

	// GetHistory returns the worker's transactions in chronological order.
	GetHistory(ctx context.Context, workerID string) ([]LedgerTransaction, error)
}

// LedgerService exposes the advance-ledger operations.
type LedgerService interface {
	GiveAdvance(ctx context.Context, req PostTransactionRequest) (TransactionResponse, error)
	RecordRepayment(ctx context.Context, req PostTransactionRequest) (TransactionResponse, error)
	RecordDeposit(ctx context.Context, req PostTransactionRequest) (TransactionResponse, error)
	GetHistory(ctx context.Context, workerID string) ([]TransactionResponse, error)
	GetBalance(ctx context.Context, workerID string) (BalanceResponse, error)
	Reconcile(ctx context.Context, workerID string) (ReconciliationResponse, error)
}
