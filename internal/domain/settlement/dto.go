package settlement

import (
	"github.com/crewpay/crewpay-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

// ParsePeriod validates and parses a day-granular inclusive period.
func ParsePeriod(start, end string) (Period, error) {
	var errs validator.ValidationErrors

	s, okStart := validator.IsValidDate(start)
	if !okStart {
		errs = append(errs, validator.ValidationError{Field: "period_start", Message: "must be in YYYY-MM-DD format"})
	}
	e, okEnd := validator.IsValidDate(end)
	if !okEnd {
		errs = append(errs, validator.ValidationError{Field: "period_end", Message: "must be in YYYY-MM-DD format"})
	}
	if okStart && okEnd && e.Before(s) {
		errs = append(errs, validator.ValidationError{Field: "period_end", Message: "must not be before period_start"})
	}

	if len(errs) > 0 {
		return Period{}, errs
	}
	return Period{Start: s, End: e}, nil
}

type ComputeBonusRequest struct {
	PeriodStart           string          `json:"period_start"`
	PeriodEnd             string          `json:"period_end"`
	DeductionPerAbsentDay decimal.Decimal `json:"deduction_per_absent_day"`
	ThresholdRelative     bool            `json:"threshold_relative"`
}

func (r *ComputeBonusRequest) Validate() error {
	var errs validator.ValidationErrors

	if _, err := ParsePeriod(r.PeriodStart, r.PeriodEnd); err != nil {
		errs = append(errs, err.(validator.ValidationErrors)...)
	}
	if r.DeductionPerAbsentDay.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "deduction_per_absent_day", Message: "must be non-negative"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type AdjustmentRequest struct {
	RecordID string          `json:"-"`
	Amount   decimal.Decimal `json:"amount"`
	Notes    *string         `json:"notes,omitempty"`
}

func (r *AdjustmentRequest) Validate() error {
	var errs validator.ValidationErrors

	if !r.Amount.IsPositive() {
		errs = append(errs, validator.ValidationError{Field: "amount", Message: "must be positive"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type MarkPaidRequest struct {
	RecordID   string           `json:"-"`
	AmountPaid *decimal.Decimal `json:"amount_paid,omitempty"` // defaults to net bonus
}

func (r *MarkPaidRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.AmountPaid != nil && r.AmountPaid.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "amount_paid", Message: "must be non-negative"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// SalaryEntryInput carries the operator-entered fields of one salary draft
// row. NewAdvance is posted to the ledger at finalize and is never subtracted
// from the final amount.
type SalaryEntryInput struct {
	WorkerID   string          `json:"worker_id"`
	Deposit    decimal.Decimal `json:"deposit"`
	NewAdvance decimal.Decimal `json:"new_advance"`
}

type ComputeSalaryRequest struct {
	PeriodStart string             `json:"period_start"`
	PeriodEnd   string             `json:"period_end"`
	Entries     []SalaryEntryInput `json:"entries,omitempty"`
}

func (r *ComputeSalaryRequest) Validate() error {
	var errs validator.ValidationErrors

	if _, err := ParsePeriod(r.PeriodStart, r.PeriodEnd); err != nil {
		errs = append(errs, err.(validator.ValidationErrors)...)
	}
	for _, e := range r.Entries {
		if validator.IsEmpty(e.WorkerID) {
			errs = append(errs, validator.ValidationError{Field: "entries.worker_id", Message: "is required"})
		}
		if e.Deposit.IsNegative() {
			errs = append(errs, validator.ValidationError{Field: "entries.deposit", Message: "must be non-negative"})
		}
		if e.NewAdvance.IsNegative() {
			errs = append(errs, validator.ValidationError{Field: "entries.new_advance", Message: "must be non-negative"})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type FinalizeRequest struct {
	Type        string             `json:"type"` // "bonus" or "salary"
	PeriodStart string             `json:"period_start"`
	PeriodEnd   string             `json:"period_end"`
	Entries     []SalaryEntryInput `json:"entries,omitempty"` // salary only
}

func (r *FinalizeRequest) Validate() error {
	var errs validator.ValidationErrors

	if !SettlementType(r.Type).IsValid() {
		errs = append(errs, validator.ValidationError{Field: "type", Message: "must be 'bonus' or 'salary'"})
	}
	if _, err := ParsePeriod(r.PeriodStart, r.PeriodEnd); err != nil {
		errs = append(errs, err.(validator.ValidationErrors)...)
	}
	for _, e := range r.Entries {
		if validator.IsEmpty(e.WorkerID) {
			errs = append(errs, validator.ValidationError{Field: "entries.worker_id", Message: "is required"})
		}
		if e.Deposit.IsNegative() {
			errs = append(errs, validator.ValidationError{Field: "entries.deposit", Message: "must be non-negative"})
		}
		if e.NewAdvance.IsNegative() {
			errs = append(errs, validator.ValidationError{Field: "entries.new_advance", Message: "must be non-negative"})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type HistoryFilter struct {
	Type *string
	From *string // "2006-01-02", filters on period_start
	To   *string
}

func (f *HistoryFilter) Validate() error {
	var errs validator.ValidationErrors

	if f.Type != nil && !SettlementType(*f.Type).IsValid() {
		errs = append(errs, validator.ValidationError{Field: "type", Message: "must be 'bonus' or 'salary'"})
	}
	if f.From != nil {
		if _, ok := validator.IsValidDate(*f.From); !ok {
			errs = append(errs, validator.ValidationError{Field: "from", Message: "must be in YYYY-MM-DD format"})
		}
	}
	if f.To != nil {
		if _, ok := validator.IsValidDate(*f.To); !ok {
			errs = append(errs, validator.ValidationError{Field: "to", Message: "must be in YYYY-MM-DD format"})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type BonusRecordResponse struct {
	ID                 string           `json:"id"`
	WorkerID           string           `json:"worker_id"`
	WorkerName         string           `json:"worker_name,omitempty"`
	PeriodStart        string           `json:"period_start"`
	PeriodEnd          string           `json:"period_end"`
	DaysAbsent         int              `json:"days_absent"`
	ChargeableAbsences int              `json:"chargeable_absences"`
	BaseBonus          decimal.Decimal  `json:"base_bonus"`
	Penalty            decimal.Decimal  `json:"penalty"`
	ExtraBonus         decimal.Decimal  `json:"extra_bonus"`
	EmployeeDeposit    decimal.Decimal  `json:"employee_deposit"`
	GrossBonus         decimal.Decimal  `json:"gross_bonus"`
	NetBonus           decimal.Decimal  `json:"net_bonus"`
	IsPaid             bool             `json:"is_paid"`
	AmountPaid         *decimal.Decimal `json:"amount_paid,omitempty"`
	IsFinalized        bool             `json:"is_finalized"`
	Notes              *string          `json:"notes,omitempty"`
}

func ToBonusResponse(r BonusRecord) BonusRecordResponse {
	return BonusRecordResponse{
		ID:                 r.ID,
		WorkerID:           r.WorkerID,
		PeriodStart:        r.PeriodStart.Format("2006-01-02"),
		PeriodEnd:          r.PeriodEnd.Format("2006-01-02"),
		DaysAbsent:         r.DaysAbsent,
		ChargeableAbsences: r.ChargeableAbsences,
		BaseBonus:          r.BaseBonus,
		Penalty:            r.Penalty,
		ExtraBonus:         r.ExtraBonus,
		EmployeeDeposit:    r.EmployeeDeposit,
		GrossBonus:         r.GrossBonus,
		NetBonus:           r.NetBonus,
		IsPaid:             r.IsPaid,
		AmountPaid:         r.AmountPaid,
		IsFinalized:        r.IsFinalized,
		Notes:              r.Notes,
	}
}

type SalaryDraftResponse struct {
	WorkerID    string          `json:"worker_id"`
	WorkerName  string          `json:"worker_name"`
	TotalHours  decimal.Decimal `json:"total_hours"`
	TotalPay    decimal.Decimal `json:"total_pay"`
	Deposit     decimal.Decimal `json:"deposit"`
	NewAdvance  decimal.Decimal `json:"new_advance"`
	FinalAmount decimal.Decimal `json:"final_amount"`
}

func ToSalaryResponse(d SalaryDraft) SalaryDraftResponse {
	return SalaryDraftResponse{
		WorkerID:    d.WorkerID,
		WorkerName:  d.WorkerName,
		TotalHours:  d.TotalHours,
		TotalPay:    d.TotalPay,
		Deposit:     d.Deposit,
		NewAdvance:  d.NewAdvance,
		FinalAmount: d.FinalAmount,
	}
}

type HistoryResponse struct {
	ID            string          `json:"id"`
	Type          string          `json:"type"`
	PeriodStart   string          `json:"period_start"`
	PeriodEnd     string          `json:"period_end"`
	Entries       []HistoryEntry  `json:"entries"`
	TotalGross    decimal.Decimal `json:"total_gross"`
	TotalNet      decimal.Decimal `json:"total_net"`
	TotalDeposits decimal.Decimal `json:"total_deposits"`
	TotalAdvances decimal.Decimal `json:"total_advances"`
	CreatedAt     string          `json:"created_at"`
}

func ToHistoryResponse(r HistoryRecord) HistoryResponse {
	return HistoryResponse{
		ID:            r.ID,
		Type:          string(r.Type),
		PeriodStart:   r.PeriodStart.Format("2006-01-02"),
		PeriodEnd:     r.PeriodEnd.Format("2006-01-02"),
		Entries:       r.Entries,
		TotalGross:    r.TotalGross,
		TotalNet:      r.TotalNet,
		TotalDeposits: r.TotalDeposits,
		TotalAdvances: r.TotalAdvances,
		CreatedAt:     r.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}
