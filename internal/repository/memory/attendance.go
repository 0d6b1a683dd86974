package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/crewpay/crewpay-backend-go/internal/domain/attendance"
	"github.com/google/uuid"
)

const dayFormat = "2006-01-02"

// AttendanceRepository keys entries by (worker, day), which is the uniqueness
// constraint the domain requires: a second upsert for the same day replaces
// the first.
type AttendanceRepository struct {
	mu      sync.RWMutex
	entries map[string]map[string]attendance.Entry // workerID -> day -> entry
}

func NewAttendanceRepository() *AttendanceRepository {
	return &AttendanceRepository{entries: make(map[string]map[string]attendance.Entry)}
}

func (r *AttendanceRepository) Upsert(_ context.Context, entry attendance.Entry) (attendance.Entry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	day := entry.Date.Format(dayFormat)
	byDay, ok := r.entries[entry.WorkerID]
	if !ok {
		byDay = make(map[string]attendance.Entry)
		r.entries[entry.WorkerID] = byDay
	}

	now := time.Now()
	if existing, ok := byDay[day]; ok {
		entry.ID = existing.ID
		entry.CreatedAt = existing.CreatedAt
	} else {
		entry.ID = uuid.NewString()
		entry.CreatedAt = now
	}
	entry.UpdatedAt = now
	byDay[day] = entry

	return entry, nil
}

func (r *AttendanceRepository) GetByWorkerAndDate(_ context.Context, workerID string, date time.Time) (attendance.Entry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	entry, ok := r.entries[workerID][date.Format(dayFormat)]
	if !ok {
		return attendance.Entry{}, attendance.ErrEntryNotFound
	}
	return entry, nil
}

func (r *AttendanceRepository) ListByPeriod(_ context.Context, start, end time.Time, workerID *string) ([]attendance.Entry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []attendance.Entry
	for wid, byDay := range r.entries {
		if workerID != nil && wid != *workerID {
			continue
		}
		for _, entry := range byDay {
			if entry.Date.Before(start) || entry.Date.After(end) {
				continue
			}
			result = append(result, entry)
		}
	}

	sort.Slice(result, func(i, j int) bool {
		if result[i].WorkerID != result[j].WorkerID {
			return result[i].WorkerID < result[j].WorkerID
		}
		return result[i].Date.Before(result[j].Date)
	})

	return result, nil
}

var _ attendance.AttendanceRepository = (*AttendanceRepository)(nil)
