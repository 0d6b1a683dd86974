package attendance

import (
	"time"

	"github.com/shopspring/decimal"
)

type Status string

const (
	StatusPresent Status = "present"
	StatusAbsent  Status = "absent"
	StatusHoliday Status = "holiday"
	StatusHalfDay Status = "half_day"
)

// IsValid reports whether s is a known attendance status.
func (s Status) IsValid() bool {
	switch s {
	case StatusPresent, StatusAbsent, StatusHoliday, StatusHalfDay:
		return true
	}
	return false
}

// Entry is one record per worker per calendar day. The store enforces
// uniqueness on (worker_id, date); writes are upserts.
type Entry struct {
	ID          string
	WorkerID    string
	Date        time.Time
	Status      Status
	HoursWorked decimal.Decimal
	TotalPay    decimal.Decimal
	Notes       *string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Totals is the per-worker aggregate over a period. DaysPresent counts
// present and holiday entries; DaysAbsent counts absent entries.
type Totals struct {
	WorkerID    string
	TotalHours  decimal.Decimal
	TotalPay    decimal.Decimal
	DaysPresent int
	DaysAbsent  int
}
