package settlement

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

type SettlementType string

const (
	TypeBonus  SettlementType = "bonus"
	TypeSalary SettlementType = "salary"
)

func (t SettlementType) IsValid() bool {
	return t == TypeBonus || t == TypeSalary
}

// Period is a day-granular inclusive date range.
type Period struct {
	Start time.Time
	End   time.Time
}

func (p Period) String() string {
	return p.Start.Format("2006-01-02") + ".." + p.End.Format("2006-01-02")
}

// BonusRecord is a recomputable bonus settlement for one worker and period.
// Derived fields are recomputed freely until the record is finalized;
// ExtraBonus and EmployeeDeposit are manual adjustments that every recompute
// carries forward unchanged.
type BonusRecord struct {
	ID                 string
	WorkerID           string
	PeriodStart        time.Time
	PeriodEnd          time.Time
	DaysAbsent         int
	ChargeableAbsences int
	BaseBonus          decimal.Decimal
	Penalty            decimal.Decimal
	ExtraBonus         decimal.Decimal
	EmployeeDeposit    decimal.Decimal
	GrossBonus         decimal.Decimal
	NetBonus           decimal.Decimal
	IsPaid             bool
	AmountPaid         *decimal.Decimal
	IsFinalized        bool
	Notes              *string
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// Recompute derives gross and net from the current base, penalty and manual
// adjustments. Both are floored at zero.
func (r *BonusRecord) Recompute() {
	gross := r.BaseBonus.Sub(r.Penalty).Add(r.ExtraBonus)
	if gross.IsNegative() {
		gross = decimal.Zero
	}
	r.GrossBonus = gross

	net := gross.Sub(r.EmployeeDeposit)
	if net.IsNegative() {
		net = decimal.Zero
	}
	r.NetBonus = net
}

// AppendNote adds an audit note line to the record.
func (r *BonusRecord) AppendNote(note string) {
	if note == "" {
		return
	}
	if r.Notes == nil || *r.Notes == "" {
		r.Notes = &note
		return
	}
	joined := *r.Notes + "; " + note
	r.Notes = &joined
}

// SalaryDraft is a per-worker salary settlement row for a period. It is not
// persisted: deposit and newAdvance are operator-entered and the draft is
// intentionally decoupled from ledger state until finalize.
type SalaryDraft struct {
	WorkerID    string
	WorkerName  string
	TotalHours  decimal.Decimal
	TotalPay    decimal.Decimal
	Deposit     decimal.Decimal
	NewAdvance  decimal.Decimal
	FinalAmount decimal.Decimal
}

// HistoryEntry is one worker's snapshot inside a finalized settlement.
// ObservedBalance is the ledger balance at the moment the snapshot was taken,
// after that worker's postings.
type HistoryEntry struct {
	WorkerID        string          `json:"worker_id"`
	WorkerName      string          `json:"worker_name"`
	Gross           decimal.Decimal `json:"gross"`
	Net             decimal.Decimal `json:"net"`
	Deposit         decimal.Decimal `json:"deposit"`
	NewAdvance      decimal.Decimal `json:"new_advance"`
	ObservedBalance decimal.Decimal `json:"observed_balance"`
}

// HistoryRecord is an immutable snapshot created exactly once per finalize.
// Deleting it removes only the snapshot, never the ledger transactions the
// finalize posted.
type HistoryRecord struct {
	ID            string
	Type          SettlementType
	PeriodStart   time.Time
	PeriodEnd     time.Time
	Entries       []HistoryEntry
	TotalGross    decimal.Decimal
	TotalNet      decimal.Decimal
	TotalDeposits decimal.Decimal
	TotalAdvances decimal.Decimal
	CreatedAt     time.Time
}

// FinalizeError reports the worker at which a finalize batch halted. Postings
// for workers processed before it remain in effect.
type FinalizeError struct {
	WorkerID  string
	Processed int
	Err       error
}

func (e *FinalizeError) Error() string {
	return fmt.Sprintf("finalize halted at worker %s after %d worker(s): %v", e.WorkerID, e.Processed, e.Err)
}

func (e *FinalizeError) Unwrap() error {
	return e.Err
}
