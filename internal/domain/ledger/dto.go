package ledger

import (
	"github.com/crewpay/crewpay-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type PostTransactionRequest struct {
	WorkerID string          `json:"-"`
	Amount   decimal.Decimal `json:"amount"`
	Date     *string         `json:"date,omitempty"` // "2006-01-02", defaults to today
	Notes    *string         `json:"notes,omitempty"`
}

func (r *PostTransactionRequest) Validate() error {
	var errs validator.ValidationErrors

	if !r.Amount.IsPositive() {
		errs = append(errs, validator.ValidationError{Field: "amount", Message: "must be positive"})
	}
	if r.Date != nil {
		if _, ok := validator.IsValidDate(*r.Date); !ok {
			errs = append(errs, validator.ValidationError{Field: "date", Message: "must be in YYYY-MM-DD format"})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type TransactionResponse struct {
	ID           string          `json:"id"`
	WorkerID     string          `json:"worker_id"`
	Kind         string          `json:"kind"`
	Amount       decimal.Decimal `json:"amount"`
	Date         string          `json:"date"`
	BalanceAfter decimal.Decimal `json:"balance_after"`
	Notes        *string         `json:"notes,omitempty"`
}

func ToResponse(t LedgerTransaction) TransactionResponse {
	return TransactionResponse{
		ID:           t.ID,
		WorkerID:     t.WorkerID,
		Kind:         string(t.Kind),
		Amount:       t.Amount,
		Date:         t.Date.Format("2006-01-02"),
		BalanceAfter: t.BalanceAfter,
		Notes:        t.Notes,
	}
}

type BalanceResponse struct {
	WorkerID string          `json:"worker_id"`
	Balance  decimal.Decimal `json:"balance"`
}

// ReconciliationResponse is a diagnostic: the cached balance compared against
// a fold over the full transaction history. Drift is reported, never fixed.
type ReconciliationResponse struct {
	WorkerID         string          `json:"worker_id"`
	CachedBalance    decimal.Decimal `json:"cached_balance"`
	ComputedBalance  decimal.Decimal `json:"computed_balance"`
	Drift            decimal.Decimal `json:"drift"`
	InSync           bool            `json:"in_sync"`
	TransactionCount int             `json:"transaction_count"`
}
