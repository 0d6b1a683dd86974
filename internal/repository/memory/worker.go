package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/crewpay/crewpay-backend-go/internal/domain/worker"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// WorkerRepository is an in-memory worker directory. The ledger repository
// reaches into it under its own lock to keep balance-cache updates atomic
// with transaction appends.
type WorkerRepository struct {
	mu      sync.RWMutex
	workers map[string]worker.Worker
}

func NewWorkerRepository() *WorkerRepository {
	return &WorkerRepository{workers: make(map[string]worker.Worker)}
}

func (r *WorkerRepository) Create(_ context.Context, w worker.Worker) (worker.Worker, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.workers {
		if existing.Name == w.Name {
			return worker.Worker{}, worker.ErrWorkerNameExists
		}
	}

	now := time.Now()
	w.ID = uuid.NewString()
	w.Balance = decimal.Zero
	w.CreatedAt = now
	w.UpdatedAt = now
	r.workers[w.ID] = w

	return w, nil
}

func (r *WorkerRepository) GetByID(_ context.Context, id string) (worker.Worker, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	w, ok := r.workers[id]
	if !ok {
		return worker.Worker{}, worker.ErrWorkerNotFound
	}
	return w, nil
}

func (r *WorkerRepository) List(_ context.Context, activeOnly bool) ([]worker.Worker, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []worker.Worker
	for _, w := range r.workers {
		if activeOnly && !w.IsActive {
			continue
		}
		result = append(result, w)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })

	return result, nil
}

func (r *WorkerRepository) Update(_ context.Context, req worker.UpdateWorkerRequest) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	w, ok := r.workers[req.ID]
	if !ok {
		return worker.ErrWorkerNotFound
	}

	if req.Name != nil {
		for id, existing := range r.workers {
			if id != req.ID && existing.Name == *req.Name {
				return worker.ErrWorkerNameExists
			}
		}
		w.Name = *req.Name
	}
	if req.HourlyRate != nil {
		w.HourlyRate = *req.HourlyRate
	}
	if req.StandardDailyHours != nil {
		w.StandardDailyHours = *req.StandardDailyHours
	}
	if req.IsActive != nil {
		w.IsActive = *req.IsActive
	}
	w.UpdatedAt = time.Now()
	r.workers[req.ID] = w

	return nil
}

// setBalance updates the cached balance. Only the ledger repository calls
// this, while holding its own per-worker posting lock.
func (r *WorkerRepository) setBalance(id string, balance decimal.Decimal) {
	r.mu.Lock()
	defer r.mu.Unlock()

	w, ok := r.workers[id]
	if !ok {
		return
	}
	w.Balance = balance
	w.UpdatedAt = time.Now()
	r.workers[id] = w
}
