package attendance

import (
	"github.com/crewpay/crewpay-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type UpsertRequest struct {
	WorkerID    string          `json:"-"`
	Date        string          `json:"date"` // "2006-01-02"
	Status      string          `json:"status,omitempty"`
	HoursWorked decimal.Decimal `json:"hours_worked"`
	Notes       *string         `json:"notes,omitempty"`
}

func (r *UpsertRequest) Validate() error {
	var errs validator.ValidationErrors

	if _, ok := validator.IsValidDate(r.Date); !ok {
		errs = append(errs, validator.ValidationError{Field: "date", Message: "must be in YYYY-MM-DD format"})
	}
	if r.Status != "" && !Status(r.Status).IsValid() {
		errs = append(errs, validator.ValidationError{Field: "status", Message: "must be one of present, absent, holiday, half_day"})
	}
	if r.HoursWorked.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "hours_worked", Message: "must be non-negative"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type AggregateRequest struct {
	PeriodStart string  `json:"period_start"`
	PeriodEnd   string  `json:"period_end"`
	WorkerID    *string `json:"worker_id,omitempty"`
}

func (r *AggregateRequest) Validate() error {
	var errs validator.ValidationErrors

	start, okStart := validator.IsValidDate(r.PeriodStart)
	if !okStart {
		errs = append(errs, validator.ValidationError{Field: "period_start", Message: "must be in YYYY-MM-DD format"})
	}
	end, okEnd := validator.IsValidDate(r.PeriodEnd)
	if !okEnd {
		errs = append(errs, validator.ValidationError{Field: "period_end", Message: "must be in YYYY-MM-DD format"})
	}
	if okStart && okEnd && end.Before(start) {
		errs = append(errs, validator.ValidationError{Field: "period_end", Message: "must not be before period_start"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type EntryResponse struct {
	ID          string          `json:"id"`
	WorkerID    string          `json:"worker_id"`
	Date        string          `json:"date"`
	Status      string          `json:"status"`
	HoursWorked decimal.Decimal `json:"hours_worked"`
	TotalPay    decimal.Decimal `json:"total_pay"`
	Notes       *string         `json:"notes,omitempty"`
}

func ToResponse(e Entry) EntryResponse {
	return EntryResponse{
		ID:          e.ID,
		WorkerID:    e.WorkerID,
		Date:        e.Date.Format("2006-01-02"),
		Status:      string(e.Status),
		HoursWorked: e.HoursWorked,
		TotalPay:    e.TotalPay,
		Notes:       e.Notes,
	}
}

type TotalsResponse struct {
	WorkerID    string          `json:"worker_id"`
	WorkerName  string          `json:"worker_name"`
	TotalHours  decimal.Decimal `json:"total_hours"`
	TotalPay    decimal.Decimal `json:"total_pay"`
	DaysPresent int             `json:"days_present"`
	DaysAbsent  int             `json:"days_absent"`
}
