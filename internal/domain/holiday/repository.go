package holiday

import (
	"context"
	"time"
)

type HolidayRepository interface {
	Upsert(ctx context.Context, h Holiday) (Holiday, error)
	Delete(ctx context.Context, date time.Time) error
	List(ctx context.Context, start, end time.Time) ([]Holiday, error)
	IsHoliday(ctx context.Context, date time.Time) (bool, error)
}

type HolidayService interface {
	Upsert(ctx context.Context, req UpsertHolidayRequest) (HolidayResponse, error)
	Delete(ctx context.Context, date string) error
	List(ctx context.Context, start, end string) ([]HolidayResponse, error)
}
