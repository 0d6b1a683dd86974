package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/crewpay/crewpay-backend-go/internal/domain/settlement"
	"github.com/google/uuid"
)

type BonusRepository struct {
	mu      sync.RWMutex
	records map[string]settlement.BonusRecord         // id -> record
	byKey   map[string]string                         // workerID|start|end -> id
}

func NewBonusRepository() *BonusRepository {
	return &BonusRepository{
		records: make(map[string]settlement.BonusRecord),
		byKey:   make(map[string]string),
	}
}

func bonusKey(workerID string, start, end time.Time) string {
	return workerID + "|" + start.Format(dayFormat) + "|" + end.Format(dayFormat)
}

func (r *BonusRepository) Create(_ context.Context, rec settlement.BonusRecord) (settlement.BonusRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now()
	rec.ID = uuid.NewString()
	rec.CreatedAt = now
	rec.UpdatedAt = now
	r.records[rec.ID] = rec
	r.byKey[bonusKey(rec.WorkerID, rec.PeriodStart, rec.PeriodEnd)] = rec.ID

	return rec, nil
}

func (r *BonusRepository) Update(_ context.Context, rec settlement.BonusRecord) (settlement.BonusRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.records[rec.ID]
	if !ok {
		return settlement.BonusRecord{}, settlement.ErrBonusRecordNotFound
	}
	rec.CreatedAt = existing.CreatedAt
	rec.UpdatedAt = time.Now()
	r.records[rec.ID] = rec

	return rec, nil
}

func (r *BonusRepository) GetByID(_ context.Context, id string) (settlement.BonusRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rec, ok := r.records[id]
	if !ok {
		return settlement.BonusRecord{}, settlement.ErrBonusRecordNotFound
	}
	return rec, nil
}

func (r *BonusRepository) GetByWorkerAndPeriod(_ context.Context, workerID string, period settlement.Period) (settlement.BonusRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byKey[bonusKey(workerID, period.Start, period.End)]
	if !ok {
		return settlement.BonusRecord{}, settlement.ErrBonusRecordNotFound
	}
	return r.records[id], nil
}

func (r *BonusRepository) ListByPeriod(_ context.Context, period settlement.Period) ([]settlement.BonusRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []settlement.BonusRecord
	for _, rec := range r.records {
		if rec.PeriodStart.Equal(period.Start) && rec.PeriodEnd.Equal(period.End) {
			result = append(result, rec)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].WorkerID < result[j].WorkerID })

	return result, nil
}

func (r *BonusRepository) MarkFinalized(_ context.Context, ids []string, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, id := range ids {
		rec, ok := r.records[id]
		if !ok {
			return settlement.ErrBonusRecordNotFound
		}
		rec.IsFinalized = true
		rec.UpdatedAt = at
		r.records[id] = rec
	}

	return nil
}

type HistoryRepository struct {
	mu      sync.RWMutex
	records map[string]settlement.HistoryRecord
}

func NewHistoryRepository() *HistoryRepository {
	return &HistoryRepository{records: make(map[string]settlement.HistoryRecord)}
}

func (r *HistoryRepository) Create(_ context.Context, rec settlement.HistoryRecord) (settlement.HistoryRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rec.ID = uuid.NewString()
	rec.CreatedAt = time.Now()
	entries := make([]settlement.HistoryEntry, len(rec.Entries))
	copy(entries, rec.Entries)
	rec.Entries = entries
	r.records[rec.ID] = rec

	return rec, nil
}

func (r *HistoryRepository) GetByID(_ context.Context, id string) (settlement.HistoryRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rec, ok := r.records[id]
	if !ok {
		return settlement.HistoryRecord{}, settlement.ErrHistoryNotFound
	}
	return rec, nil
}

func (r *HistoryRepository) List(_ context.Context, filter settlement.HistoryFilter) ([]settlement.HistoryRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []settlement.HistoryRecord
	for _, rec := range r.records {
		if filter.Type != nil && string(rec.Type) != *filter.Type {
			continue
		}
		if filter.From != nil {
			if from, ok := parseDay(*filter.From); ok && rec.PeriodStart.Before(from) {
				continue
			}
		}
		if filter.To != nil {
			if to, ok := parseDay(*filter.To); ok && rec.PeriodStart.After(to) {
				continue
			}
		}
		result = append(result, rec)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].CreatedAt.After(result[j].CreatedAt) })

	return result, nil
}

func (r *HistoryRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.records[id]; !ok {
		return settlement.ErrHistoryNotFound
	}
	delete(r.records, id)

	return nil
}

func parseDay(s string) (time.Time, bool) {
	t, err := time.Parse(dayFormat, s)
	return t, err == nil
}

var _ settlement.BonusRepository = (*BonusRepository)(nil)
var _ settlement.HistoryRepository = (*HistoryRepository)(nil)
