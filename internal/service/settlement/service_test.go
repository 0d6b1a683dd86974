package settlement

import (
	"context"
	"testing"
	"time"

	attendanceDomain "github.com/crewpay/crewpay-backend-go/internal/domain/attendance"
	ledgerDomain "github.com/crewpay/crewpay-backend-go/internal/domain/ledger"
	settlementDomain "github.com/crewpay/crewpay-backend-go/internal/domain/settlement"
	workerDomain "github.com/crewpay/crewpay-backend-go/internal/domain/worker"
	"github.com/crewpay/crewpay-backend-go/internal/repository/memory"
	attendanceService "github.com/crewpay/crewpay-backend-go/internal/service/attendance"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type settlementFixture struct {
	workers    *memory.WorkerRepository
	ledger     *memory.LedgerRepository
	bonuses    *memory.BonusRepository
	history    *memory.HistoryRepository
	attendance attendanceDomain.AttendanceService
	service    settlementDomain.SettlementService
}

func newSettlementFixture() *settlementFixture {
	workers := memory.NewWorkerRepository()
	ledgerRepo := memory.NewLedgerRepository(workers)
	bonuses := memory.NewBonusRepository()
	history := memory.NewHistoryRepository()
	attendanceSvc := attendanceService.NewAttendanceService(
		memory.NewAttendanceRepository(), workers, memory.NewHolidayRepository())
	return &settlementFixture{
		workers:    workers,
		ledger:     ledgerRepo,
		bonuses:    bonuses,
		history:    history,
		attendance: attendanceSvc,
		service:    NewSettlementService(history, bonuses, ledgerRepo, workers, attendanceSvc),
	}
}

func (f *settlementFixture) createWorker(t *testing.T, name string, rate int64) string {
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

func (f *settlementFixture) giveAdvance(t *testing.T, workerID string, amount int64) {
	t.Helper()
	_, err := f.ledger.Append(context.Background(), workerID, ledgerDomain.KindAdvance,
		decimal.NewFromInt(amount), time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC), nil)
	require.NoError(t, err)
}

func (f *settlementFixture) createBonusRecord(t *testing.T, workerID string, deposit int64) settlementDomain.BonusRecord {
	t.Helper()
	r := settlementDomain.BonusRecord{
		WorkerID:        workerID,
		PeriodStart:     time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		PeriodEnd:       time.Date(2026, 1, 31, 0, 0, 0, 0, time.UTC),
		BaseBonus:       decimal.NewFromInt(24000),
		Penalty:         decimal.Zero,
		ExtraBonus:      decimal.Zero,
		EmployeeDeposit: decimal.NewFromInt(deposit),
	}
	r.Recompute()
	created, err := f.bonuses.Create(context.Background(), r)
	require.NoError(t, err)
	return created
}

func (f *settlementFixture) balance(t *testing.T, workerID string) decimal.Decimal {
	t.Helper()
	w, err := f.workers.GetByID(context.Background(), workerID)
	require.NoError(t, err)
	return w.Balance
}

func bonusFinalizeRequest() settlementDomain.FinalizeRequest {
	return settlementDomain.FinalizeRequest{
		Type:        "bonus",
		PeriodStart: "2026-01-01",
		PeriodEnd:   "2026-01-31",
	}
}

func TestSettlementService_FinalizeBonusPostsDeposits(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	f := newSettlementFixture()
	arman := f.createWorker(t, "Arman", 100)
	f.giveAdvance(t, arman, 1000)
	record := f.createBonusRecord(t, arman, 200)

	result, err := f.service.Finalize(ctx, bonusFinalizeRequest())
	require.NoError(t, err)
	assert.Equal(t, "bonus", result.Type)
	require.Len(t, result.Entries, 1)
	assert.True(t, result.Entries[0].Deposit.Equal(decimal.NewFromInt(200)))
	assert.True(t, result.Entries[0].ObservedBalance.Equal(decimal.NewFromInt(800)))
	assert.True(t, result.TotalDeposits.Equal(decimal.NewFromInt(200)))

	assert.True(t, f.balance(t, arman).Equal(decimal.NewFromInt(800)))

	finalized, err := f.bonuses.GetByID(ctx, record.ID)
	require.NoError(t, err)
	assert.True(t, finalized.IsFinalized)

	// A second run finds nothing left to finalize.
	_, err = f.service.Finalize(ctx, bonusFinalizeRequest())
	assert.ErrorIs(t, err, settlementDomain.ErrNothingToFinalize)
}

func TestSettlementService_FinalizeHaltsMidBatch(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	f := newSettlementFixture()
	arman := f.createWorker(t, "Arman", 100)
	budi := f.createWorker(t, "Budi", 100)
	f.giveAdvance(t, arman, 500)
	// Budi has no advance balance, so his deposit cannot post.
	f.createBonusRecord(t, arman, 300)
	f.createBonusRecord(t, budi, 300)

	_, err := f.service.Finalize(ctx, bonusFinalizeRequest())

	var finalizeErr *settlementDomain.FinalizeError
	require.ErrorAs(t, err, &finalizeErr)
	assert.Equal(t, budi, finalizeErr.WorkerID)
	assert.Equal(t, 1, finalizeErr.Processed)
	assert.ErrorIs(t, err, ledgerDomain.ErrInsufficientBalance)

	// Arman's posting stays in effect even though the batch halted.
	assert.True(t, f.balance(t, arman).Equal(decimal.NewFromInt(200)))
	assert.True(t, f.balance(t, budi).IsZero())

	// And no history record was written.
	records, err := f.service.ListHistory(ctx, settlementDomain.HistoryFilter{})
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestSettlementService_ValidateFinalizeDoesNotPost(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	f := newSettlementFixture()
	arman := f.createWorker(t, "Arman", 100)
	f.giveAdvance(t, arman, 100)
	f.createBonusRecord(t, arman, 300)

	err := f.service.ValidateFinalize(ctx, bonusFinalizeRequest())

	var finalizeErr *settlementDomain.FinalizeError
	require.ErrorAs(t, err, &finalizeErr)
	assert.Equal(t, arman, finalizeErr.WorkerID)

	history, err := f.ledger.GetHistory(ctx, arman)
	require.NoError(t, err)
	assert.Len(t, history, 1)
	assert.True(t, f.balance(t, arman).Equal(decimal.NewFromInt(100)))
}

func TestSettlementService_FinalizeSalaryPostsDepositThenAdvance(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	f := newSettlementFixture()
	arman := f.createWorker(t, "Arman", 100)
	f.giveAdvance(t, arman, 500)

	_, err := f.attendance.Upsert(ctx, attendanceDomain.UpsertRequest{
		WorkerID:    arman,
		Date:        "2026-01-05",
		Status:      "present",
		HoursWorked: decimal.NewFromInt(8),
	})
	require.NoError(t, err)

	result, err := f.service.Finalize(ctx, settlementDomain.FinalizeRequest{
		Type:        "salary",
		PeriodStart: "2026-01-01",
		PeriodEnd:   "2026-01-31",
		Entries: []settlementDomain.SalaryEntryInput{
			{WorkerID: arman, Deposit: decimal.NewFromInt(300), NewAdvance: decimal.NewFromInt(150)},
		},
	})
	require.NoError(t, err)
	require.Len(t, result.Entries, 1)
	assert.True(t, result.Entries[0].Gross.Equal(decimal.NewFromInt(800)))
	assert.True(t, result.Entries[0].Net.Equal(decimal.NewFromInt(500)))

	// 500 - 300 deposit + 150 new advance.
	assert.True(t, f.balance(t, arman).Equal(decimal.NewFromInt(350)))

	history, err := f.ledger.GetHistory(ctx, arman)
	require.NoError(t, err)
	require.Len(t, history, 3)
	assert.Equal(t, ledgerDomain.KindDeposit, history[1].Kind)
	assert.Equal(t, ledgerDomain.KindAdvance, history[2].Kind)
}

func TestSettlementService_SalaryFinalAmountFloorsAtZero(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	f := newSettlementFixture()
	arman := f.createWorker(t, "Arman", 100)
	f.giveAdvance(t, arman, 2000)

	_, err := f.attendance.Upsert(ctx, attendanceDomain.UpsertRequest{
		WorkerID:    arman,
		Date:        "2026-01-05",
		Status:      "present",
		HoursWorked: decimal.NewFromInt(4),
	})
	require.NoError(t, err)

	result, err := f.service.Finalize(ctx, settlementDomain.FinalizeRequest{
		Type:        "salary",
		PeriodStart: "2026-01-01",
		PeriodEnd:   "2026-01-31",
		Entries: []settlementDomain.SalaryEntryInput{
			{WorkerID: arman, Deposit: decimal.NewFromInt(1000)},
		},
	})
	require.NoError(t, err)
	// Pay 400, deposit 1000: the payout floors at zero but the full deposit
	// still posts against the ledger.
	assert.True(t, result.Entries[0].Net.IsZero())
	assert.True(t, f.balance(t, arman).Equal(decimal.NewFromInt(1000)))
}

func TestSettlementService_DeleteHistoryKeepsLedger(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	f := newSettlementFixture()
	arman := f.createWorker(t, "Arman", 100)
	f.giveAdvance(t, arman, 1000)
	f.createBonusRecord(t, arman, 400)

	result, err := f.service.Finalize(ctx, bonusFinalizeRequest())
	require.NoError(t, err)
	balanceAfterFinalize := f.balance(t, arman)
	assert.True(t, balanceAfterFinalize.Equal(decimal.NewFromInt(600)))

	require.NoError(t, f.service.DeleteHistory(ctx, result.ID))

	_, err = f.service.GetHistory(ctx, result.ID)
	assert.ErrorIs(t, err, settlementDomain.ErrHistoryNotFound)

	// The snapshot is gone; the postings it recorded are not reversed.
	assert.True(t, f.balance(t, arman).Equal(balanceAfterFinalize))
	history, err := f.ledger.GetHistory(ctx, arman)
	require.NoError(t, err)
	assert.Len(t, history, 2)
}

func TestSettlementService_HistoryFilterByType(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	f := newSettlementFixture()
	arman := f.createWorker(t, "Arman", 100)
	f.giveAdvance(t, arman, 1000)
	f.createBonusRecord(t, arman, 100)

	_, err := f.service.Finalize(ctx, bonusFinalizeRequest())
	require.NoError(t, err)

	_, err = f.service.Finalize(ctx, settlementDomain.FinalizeRequest{
		Type:        "salary",
		PeriodStart: "2026-02-01",
		PeriodEnd:   "2026-02-28",
		Entries: []settlementDomain.SalaryEntryInput{
			{WorkerID: arman, Deposit: decimal.NewFromInt(50)},
		},
	})
	require.NoError(t, err)

	bonusType := "bonus"
	records, err := f.service.ListHistory(ctx, settlementDomain.HistoryFilter{Type: &bonusType})
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "bonus", records[0].Type)

	all, err := f.service.ListHistory(ctx, settlementDomain.HistoryFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 2)
}
