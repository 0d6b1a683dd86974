package attendance

import (
	"context"
	"time"
)

// AttendanceRepository defines data access for attendance entries. Upsert
// relies on a real (worker_id, date) uniqueness constraint in the store; a
// second write for the same day replaces the first, it never duplicates it.
type AttendanceRepository interface {
	Upsert(ctx context.Context, entry Entry) (Entry, error)
	GetByWorkerAndDate(ctx context.Context, workerID string, date time.Time) (Entry, error)

	// ListByPeriod returns entries with date in [start, end], optionally
	// restricted to one worker, ordered by worker then date.
	ListByPeriod(ctx context.Context, start, end time.Time, workerID *string) ([]Entry, error)
}

// AttendanceService exposes upsert and aggregation.
type AttendanceService interface {
	Upsert(ctx context.Context, req UpsertRequest) (EntryResponse, error)
	Aggregate(ctx context.Context, req AggregateRequest) ([]TotalsResponse, error)

	// Totals returns raw per-worker totals for a period, for use by the
	// compensation engine. Worker IDs restrict the cohort when non-empty.
	Totals(ctx context.Context, start, end time.Time, workerIDs []string) (map[string]Totals, error)
}
