package salary

import (
	"context"
	"testing"

	attendanceDomain "github.com/crewpay/crewpay-backend-go/internal/domain/attendance"
	settlementDomain "github.com/crewpay/crewpay-backend-go/internal/domain/settlement"
	workerDomain "github.com/crewpay/crewpay-backend-go/internal/domain/worker"
	"github.com/crewpay/crewpay-backend-go/internal/repository/memory"
	attendanceService "github.com/crewpay/crewpay-backend-go/internal/service/attendance"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type salaryFixture struct {
	workers    *memory.WorkerRepository
	attendance attendanceDomain.AttendanceService
	service    settlementDomain.SalaryService
}

func newSalaryFixture() *salaryFixture {
	workers := memory.NewWorkerRepository()
	attendanceSvc := attendanceService.NewAttendanceService(
		memory.NewAttendanceRepository(), workers, memory.NewHolidayRepository())
	return &salaryFixture{
		workers:    workers,
		attendance: attendanceSvc,
		service:    NewSalaryService(workers, attendanceSvc),
	}
}

func (f *salaryFixture) createWorker(t *testing.T, name string, rate int64) string {
	t.Helper()
	w, err := f.workers.Create(context.Background(), workerDomain.Worker{
		Name:               name,
		HourlyRate:         decimal.NewFromInt(rate),
		StandardDailyHours: decimal.NewFromInt(8),
		IsActive:           true,
	})
	require.NoError(t, err)
	return w.ID
}

func (f *salaryFixture) markPresent(t *testing.T, workerID, date string, hours int64) {
	t.Helper()
	_, err := f.attendance.Upsert(context.Background(), attendanceDomain.UpsertRequest{
		WorkerID:    workerID,
		Date:        date,
		Status:      "present",
		HoursWorked: decimal.NewFromInt(hours),
	})
	require.NoError(t, err)
}

func TestSalaryService_ComputeDrafts(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	f := newSalaryFixture()
	arman := f.createWorker(t, "Arman", 100)
	f.markPresent(t, arman, "2026-01-05", 8)
	f.markPresent(t, arman, "2026-01-06", 6)

	drafts, err := f.service.ComputeDrafts(ctx, settlementDomain.ComputeSalaryRequest{
		PeriodStart: "2026-01-01",
		PeriodEnd:   "2026-01-31",
		Entries: []settlementDomain.SalaryEntryInput{
			{WorkerID: arman, Deposit: decimal.NewFromInt(400), NewAdvance: decimal.NewFromInt(250)},
		},
	})
	require.NoError(t, err)
	require.Len(t, drafts, 1)

	draft := drafts[0]
	assert.True(t, draft.TotalHours.Equal(decimal.NewFromInt(14)))
	assert.True(t, draft.TotalPay.Equal(decimal.NewFromInt(1400)))
	assert.True(t, draft.Deposit.Equal(decimal.NewFromInt(400)))
	// 1400 - 400; the new advance is cash on top, not a deduction.
	assert.True(t, draft.FinalAmount.Equal(decimal.NewFromInt(1000)))
	assert.True(t, draft.NewAdvance.Equal(decimal.NewFromInt(250)))
}

func TestSalaryService_FinalAmountFloorsAtZero(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	f := newSalaryFixture()
	arman := f.createWorker(t, "Arman", 100)
	f.markPresent(t, arman, "2026-01-05", 4)

	drafts, err := f.service.ComputeDrafts(ctx, settlementDomain.ComputeSalaryRequest{
		PeriodStart: "2026-01-01",
		PeriodEnd:   "2026-01-31",
		Entries: []settlementDomain.SalaryEntryInput{
			{WorkerID: arman, Deposit: decimal.NewFromInt(1000)},
		},
	})
	require.NoError(t, err)
	require.Len(t, drafts, 1)
	assert.True(t, drafts[0].FinalAmount.IsZero())
}

func TestSalaryService_WorkersWithoutEntriesGetZeroDeductions(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	f := newSalaryFixture()
	arman := f.createWorker(t, "Arman", 100)
	f.createWorker(t, "Budi", 100)
	f.markPresent(t, arman, "2026-01-05", 8)

	drafts, err := f.service.ComputeDrafts(ctx, settlementDomain.ComputeSalaryRequest{
		PeriodStart: "2026-01-01",
		PeriodEnd:   "2026-01-31",
	})
	require.NoError(t, err)
	require.Len(t, drafts, 2)

	assert.True(t, drafts[0].FinalAmount.Equal(decimal.NewFromInt(800)))
	assert.True(t, drafts[1].TotalPay.IsZero())
	assert.True(t, drafts[1].FinalAmount.IsZero())
}
