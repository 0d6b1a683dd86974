package settlement

import (
	"context"
	"time"
)

// BonusRepository stores bonus settlement records, one per worker and period.
type BonusRepository interface {
	Create(ctx context.Context, r BonusRecord) (BonusRecord, error)
	Update(ctx context.Context, r BonusRecord) (BonusRecord, error)
	GetByID(ctx context.Context, id string) (BonusRecord, error)
	GetByWorkerAndPeriod(ctx context.Context, workerID string, period Period) (BonusRecord, error)
	ListByPeriod(ctx context.Context, period Period) ([]BonusRecord, error)
	MarkFinalized(ctx context.Context, ids []string, at time.Time) error
}

// HistoryRepository stores immutable settlement snapshots. There is no
// update: records are created once and only ever deleted whole.
type HistoryRepository interface {
	Create(ctx context.Context, r HistoryRecord) (HistoryRecord, error)
	GetByID(ctx context.Context, id string) (HistoryRecord, error)
	List(ctx context.Context, filter HistoryFilter) ([]HistoryRecord, error)
	Delete(ctx context.Context, id string) error
}

// BonusService is the bonus half of the compensation engine.
type BonusService interface {
	// ComputeDrafts computes per-worker drafts without persisting anything.
	ComputeDrafts(ctx context.Context, req ComputeBonusRequest) ([]BonusRecordResponse, error)

	// GenerateRecords computes and persists records for the period,
	// carrying forward manual adjustments of existing records.
	GenerateRecords(ctx context.Context, req ComputeBonusRequest) ([]BonusRecordResponse, error)

	AddExtraBonus(ctx context.Context, req AdjustmentRequest) (BonusRecordResponse, error)
	AddEmployeeDeposit(ctx context.Context, req AdjustmentRequest) (BonusRecordResponse, error)
	MarkPaid(ctx context.Context, req MarkPaidRequest) (BonusRecordResponse, error)
	ListRecords(ctx context.Context, periodStart, periodEnd string) ([]BonusRecordResponse, error)
}

// SalaryService is the salary half of the compensation engine.
type SalaryService interface {
	ComputeDrafts(ctx context.Context, req ComputeSalaryRequest) ([]SalaryDraftResponse, error)
}

// SettlementService finalizes drafts into history and owns the history store.
type SettlementService interface {
	// ValidateFinalize checks ledger sufficiency for every worker in the
	// batch without posting anything.
	ValidateFinalize(ctx context.Context, req FinalizeRequest) error

	// Finalize posts ledger transactions per worker and persists one
	// immutable history record. The batch is not atomic across workers:
	// on failure it halts, returns a *FinalizeError naming the worker,
	// keeps earlier postings and writes no history record.
	Finalize(ctx context.Context, req FinalizeRequest) (HistoryResponse, error)

	ListHistory(ctx context.Context, filter HistoryFilter) ([]HistoryResponse, error)
	GetHistory(ctx context.Context, id string) (HistoryResponse, error)
	DeleteHistory(ctx context.Context, id string) error
}
