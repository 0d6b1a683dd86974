package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/crewpay/crewpay-backend-go/internal/domain/holiday"
)

type HolidayRepository struct {
	mu       sync.RWMutex
	holidays map[string]holiday.Holiday // day -> holiday
}

func NewHolidayRepository() *HolidayRepository {
	return &HolidayRepository{holidays: make(map[string]holiday.Holiday)}
}

func (r *HolidayRepository) Upsert(_ context.Context, h holiday.Holiday) (holiday.Holiday, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	day := h.Date.Format(dayFormat)
	if existing, ok := r.holidays[day]; ok {
		h.CreatedAt = existing.CreatedAt
	} else {
		h.CreatedAt = time.Now()
	}
	r.holidays[day] = h

	return h, nil
}

func (r *HolidayRepository) Delete(_ context.Context, date time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	day := date.Format(dayFormat)
	if _, ok := r.holidays[day]; !ok {
		return holiday.ErrHolidayNotFound
	}
	delete(r.holidays, day)

	return nil
}

func (r *HolidayRepository) List(_ context.Context, start, end time.Time) ([]holiday.Holiday, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []holiday.Holiday
	for _, h := range r.holidays {
		if h.Date.Before(start) || h.Date.After(end) {
			continue
		}
		result = append(result, h)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Date.Before(result[j].Date) })

	return result, nil
}

func (r *HolidayRepository) IsHoliday(_ context.Context, date time.Time) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.holidays[date.Format(dayFormat)]
	return ok, nil
}

var _ holiday.HolidayRepository = (*HolidayRepository)(nil)
