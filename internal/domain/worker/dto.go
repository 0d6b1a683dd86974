package worker

import (
	"github.com/crewpay/crewpay-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type CreateWorkerRequest struct {
	Name               string           `json:"name"`
	HourlyRate         decimal.Decimal  `json:"hourly_rate"`
	StandardDailyHours *decimal.Decimal `json:"standard_daily_hours,omitempty"`
}

func (r *CreateWorkerRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{Field: "name", Message: "is required"})
	}
	if r.HourlyRate.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "hourly_rate", Message: "must be non-negative"})
	}
	if r.StandardDailyHours != nil && !r.StandardDailyHours.IsPositive() {
		errs = append(errs, validator.ValidationError{Field: "standard_daily_hours", Message: "must be positive"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type UpdateWorkerRequest struct {
	ID                 string           `json:"-"`
	Name               *string          `json:"name,omitempty"`
	HourlyRate         *decimal.Decimal `json:"hourly_rate,omitempty"`
	StandardDailyHours *decimal.Decimal `json:"standard_daily_hours,omitempty"`
	IsActive           *bool            `json:"is_active,omitempty"`
}

func (r *UpdateWorkerRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Name != nil && validator.IsEmpty(*r.Name) {
		errs = append(errs, validator.ValidationError{Field: "name", Message: "must not be empty"})
	}
	if r.HourlyRate != nil && r.HourlyRate.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "hourly_rate", Message: "must be non-negative"})
	}
	if r.StandardDailyHours != nil && !r.StandardDailyHours.IsPositive() {
		errs = append(errs, validator.ValidationError{Field: "standard_daily_hours", Message: "must be positive"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type WorkerResponse struct {
	ID                 string          `json:"id"`
	Name               string          `json:"name"`
	HourlyRate         decimal.Decimal `json:"hourly_rate"`
	StandardDailyHours decimal.Decimal `json:"standard_daily_hours"`
	IsActive           bool            `json:"is_active"`
	Balance            decimal.Decimal `json:"balance"`
}

func ToResponse(w Worker) WorkerResponse {
	return WorkerResponse{
		ID:                 w.ID,
		Name:               w.Name,
		HourlyRate:         w.HourlyRate,
		StandardDailyHours: w.StandardDailyHours,
		IsActive:           w.IsActive,
		Balance:            w.Balance,
	}
}
