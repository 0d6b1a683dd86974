package worker

import (
	"time"

	"github.com/shopspring/decimal"
)

// Worker is an individual tracked for attendance and compensation. Balance is
// the cached net amount the worker still owes from unreturned advances; it is
// owned by the ledger and must equal the balance_after of the worker's most
// recent ledger transaction.
type Worker struct {
	ID                 string
	Name               string
	HourlyRate         decimal.Decimal
	StandardDailyHours decimal.Decimal
	IsActive           bool
	Balance            decimal.Decimal
	CreatedAt          time.Time
	UpdatedAt          time.Time
}
