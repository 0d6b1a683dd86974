package memory

import (
	"context"
	"sync"
	"time"

	"github.com/crewpay/crewpay-backend-go/internal/domain/ledger"
	"github.com/crewpay/crewpay-backend-go/internal/domain/worker"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// LedgerRepository is an in-memory append-only transaction log. A per-worker
// lock makes the read-balance / validate / append / update-cache sequence
// atomic for each worker; postings for different workers do not contend.
type LedgerRepository struct {
	workers *WorkerRepository

	mu           sync.Mutex
	workerLocks  map[string]*sync.Mutex
	transactions map[string][]ledger.LedgerTransaction
}

func NewLedgerRepository(workers *WorkerRepository) *LedgerRepository {
	return &LedgerRepository{
		workers:      workers,
		workerLocks:  make(map[string]*sync.Mutex),
		transactions: make(map[string][]ledger.LedgerTransaction),
	}
}

func (r *LedgerRepository) lockWorker(workerID string) *sync.Mutex {
	r.mu.Lock()
	defer r.mu.Unlock()

	l, ok := r.workerLocks[workerID]
	if !ok {
		l = &sync.Mutex{}
		r.workerLocks[workerID] = l
	}
	return l
}

func (r *LedgerRepository) Append(ctx context.Context, workerID string, kind ledger.Kind, amount decimal.Decimal, date time.Time, notes *string) (ledger.LedgerTransaction, error) {
	l := r.lockWorker(workerID)
	l.Lock()
	defer l.Unlock()

	w, err := r.workers.GetByID(ctx, workerID)
	if err != nil {
		return ledger.LedgerTransaction{}, ledger.ErrWorkerNotFound
	}

	newBalance, err := ledger.Apply(w.Balance, kind, amount)
	if err != nil {
		return ledger.LedgerTransaction{}, err
	}

	tx := ledger.LedgerTransaction{
		ID:           uuid.NewString(),
		WorkerID:     workerID,
		Kind:         kind,
		Amount:       amount,
		Date:         date,
		BalanceAfter: newBalance,
		Notes:        notes,
		CreatedAt:    time.Now(),
	}

	r.mu.Lock()
	r.transactions[workerID] = append(r.transactions[workerID], tx)
	r.mu.Unlock()

	r.workers.setBalance(workerID, newBalance)

	return tx, nil
}

func (r *LedgerRepository) GetHistory(ctx context.Context, workerID string) ([]ledger.LedgerTransaction, error) {
	if _, err := r.workers.GetByID(ctx, workerID); err != nil {
		return nil, ledger.ErrWorkerNotFound
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	history := r.transactions[workerID]
	result := make([]ledger.LedgerTransaction, len(history))
	copy(result, history)

	return result, nil
}

var _ worker.WorkerRepository = (*WorkerRepository)(nil)
var _ ledger.LedgerRepository = (*LedgerRepository)(nil)
