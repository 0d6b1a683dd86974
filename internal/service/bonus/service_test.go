package bonus

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

type bonusFixture struct {
	workers    *memory.WorkerRepository
	attendance attendanceDomain.AttendanceService
	service    settlementDomain.BonusService
}

func newBonusFixture() *bonusFixture {
	workers := memory.NewWorkerRepository()
	attendanceSvc := attendanceService.NewAttendanceService(
		memory.NewAttendanceRepository(), workers, memory.NewHolidayRepository())
	return &bonusFixture{
		workers:    workers,
		attendance: attendanceSvc,
		service:    NewBonusService(memory.NewBonusRepository(), workers, attendanceSvc),
	}
}

func (f *bonusFixture) createWorker(t *testing.T, name string, rate int64) string {
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

func (f *bonusFixture) markAbsent(t *testing.T, workerID, date string) {
	t.Helper()
	_, err := f.attendance.Upsert(context.Background(), attendanceDomain.UpsertRequest{
		WorkerID: workerID,
		Date:     date,
		Status:   "absent",
	})
	require.NoError(t, err)
}

func januaryRequest(deduction int64, thresholdRelative bool) settlementDomain.ComputeBonusRequest {
	return settlementDomain.ComputeBonusRequest{
		PeriodStart:           "2026-01-01",
		PeriodEnd:             "2026-01-31",
		DeductionPerAbsentDay: decimal.NewFromInt(deduction),
		ThresholdRelative:     thresholdRelative,
	}
}

func TestBonusService_ThresholdRelativePenalty(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	f := newBonusFixture()
	arman := f.createWorker(t, "Arman", 100)
	budi := f.createWorker(t, "Budi", 100)
	f.markAbsent(t, budi, "2026-01-05")

	drafts, err := f.service.ComputeDrafts(ctx, januaryRequest(100, true))
	require.NoError(t, err)
	require.Len(t, drafts, 2)

	byWorker := map[string]settlementDomain.BonusRecordResponse{}
	for _, d := range drafts {
		byWorker[d.WorkerID] = d
	}

	// 30 days at 8 hours at rate 100.
	base := decimal.NewFromInt(24000)

	perfect := byWorker[arman]
	assert.Equal(t, 0, perfect.ChargeableAbsences)
	assert.True(t, perfect.Penalty.IsZero())
	assert.True(t, perfect.GrossBonus.Equal(base))
	assert.True(t, perfect.NetBonus.Equal(base))

	absentee := byWorker[budi]
	assert.Equal(t, 1, absentee.DaysAbsent)
	assert.Equal(t, 1, absentee.ChargeableAbsences)
	assert.True(t, absentee.Penalty.Equal(decimal.NewFromInt(100)))
	assert.True(t, absentee.NetBonus.Equal(decimal.NewFromInt(23900)))
}

func TestBonusService_ThresholdUsesCohortMinimum(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	f := newBonusFixture()
	arman := f.createWorker(t, "Arman", 100)
	budi := f.createWorker(t, "Budi", 100)
	f.markAbsent(t, arman, "2026-01-05")
	f.markAbsent(t, budi, "2026-01-05")
	f.markAbsent(t, budi, "2026-01-06")
	f.markAbsent(t, budi, "2026-01-07")

	drafts, err := f.service.ComputeDrafts(ctx, januaryRequest(100, true))
	require.NoError(t, err)

	byWorker := map[string]settlementDomain.BonusRecordResponse{}
	for _, d := range drafts {
		byWorker[d.WorkerID] = d
	}

	// Everyone was absent at least once, so one absence is free for all.
	assert.Equal(t, 0, byWorker[arman].ChargeableAbsences)
	assert.Equal(t, 2, byWorker[budi].ChargeableAbsences)
}

func TestBonusService_AbsolutePenaltyWithoutThreshold(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	f := newBonusFixture()
	arman := f.createWorker(t, "Arman", 100)
	f.markAbsent(t, arman, "2026-01-05")

	drafts, err := f.service.ComputeDrafts(ctx, januaryRequest(100, false))
	require.NoError(t, err)
	require.Len(t, drafts, 1)
	assert.Equal(t, 1, drafts[0].ChargeableAbsences)
	assert.True(t, drafts[0].Penalty.Equal(decimal.NewFromInt(100)))
}

func TestBonusService_RecomputeCarriesAdjustmentsForward(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	f := newBonusFixture()
	f.createWorker(t, "Arman", 100)

	records, err := f.service.GenerateRecords(ctx, januaryRequest(100, true))
	require.NoError(t, err)
	require.Len(t, records, 1)
	recordID := records[0].ID

	note := "project delivery bonus"
	adjusted, err := f.service.AddExtraBonus(ctx, settlementDomain.AdjustmentRequest{
		RecordID: recordID,
		Amount:   decimal.NewFromInt(500),
		Notes:    &note,
	})
	require.NoError(t, err)
	assert.True(t, adjusted.GrossBonus.Equal(decimal.NewFromInt(24500)))
	require.NotNil(t, adjusted.Notes)
	assert.Contains(t, *adjusted.Notes, "project delivery bonus")

	// Regenerating the period refreshes derived fields but keeps the manual
	// adjustment and the record identity.
	regenerated, err := f.service.GenerateRecords(ctx, januaryRequest(100, true))
	require.NoError(t, err)
	require.Len(t, regenerated, 1)
	assert.Equal(t, recordID, regenerated[0].ID)
	assert.True(t, regenerated[0].ExtraBonus.Equal(decimal.NewFromInt(500)))
	assert.True(t, regenerated[0].GrossBonus.Equal(decimal.NewFromInt(24500)))
}

func TestBonusService_DraftsReportStoredAdjustments(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	f := newBonusFixture()
	f.createWorker(t, "Arman", 100)

	records, err := f.service.GenerateRecords(ctx, januaryRequest(100, true))
	require.NoError(t, err)
	require.Len(t, records, 1)

	_, err = f.service.AddExtraBonus(ctx, settlementDomain.AdjustmentRequest{
		RecordID: records[0].ID,
		Amount:   decimal.NewFromInt(500),
	})
	require.NoError(t, err)
	_, err = f.service.AddEmployeeDeposit(ctx, settlementDomain.AdjustmentRequest{
		RecordID: records[0].ID,
		Amount:   decimal.NewFromInt(2000),
	})
	require.NoError(t, err)

	// A draft computation for the same period sees the stored adjustments;
	// it never resets them to zero.
	drafts, err := f.service.ComputeDrafts(ctx, januaryRequest(100, true))
	require.NoError(t, err)
	require.Len(t, drafts, 1)
	assert.True(t, drafts[0].ExtraBonus.Equal(decimal.NewFromInt(500)))
	assert.True(t, drafts[0].EmployeeDeposit.Equal(decimal.NewFromInt(2000)))
	assert.True(t, drafts[0].GrossBonus.Equal(decimal.NewFromInt(24500)))
	assert.True(t, drafts[0].NetBonus.Equal(decimal.NewFromInt(22500)))
}

func TestBonusService_RepeatedComputeIsIdempotent(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	f := newBonusFixture()
	f.createWorker(t, "Arman", 100)
	budi := f.createWorker(t, "Budi", 100)
	f.markAbsent(t, budi, "2026-01-05")

	first, err := f.service.ComputeDrafts(ctx, januaryRequest(100, true))
	require.NoError(t, err)
	second, err := f.service.ComputeDrafts(ctx, januaryRequest(100, true))
	require.NoError(t, err)
	assert.Equal(t, first, second)

	generated, err := f.service.GenerateRecords(ctx, januaryRequest(100, true))
	require.NoError(t, err)
	regenerated, err := f.service.GenerateRecords(ctx, januaryRequest(100, true))
	require.NoError(t, err)
	require.Len(t, regenerated, 2)
	for i := range generated {
		assert.Equal(t, generated[i].ID, regenerated[i].ID)
		assert.True(t, generated[i].GrossBonus.Equal(regenerated[i].GrossBonus))
		assert.True(t, generated[i].NetBonus.Equal(regenerated[i].NetBonus))
		assert.True(t, generated[i].Penalty.Equal(regenerated[i].Penalty))
	}
}

func TestBonusService_DepositCannotExceedEntitlement(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	f := newBonusFixture()
	f.createWorker(t, "Arman", 100)

	records, err := f.service.GenerateRecords(ctx, januaryRequest(0, false))
	require.NoError(t, err)
	recordID := records[0].ID

	_, err = f.service.AddEmployeeDeposit(ctx, settlementDomain.AdjustmentRequest{
		RecordID: recordID,
		Amount:   decimal.NewFromInt(24001),
	})
	assert.ErrorIs(t, err, settlementDomain.ErrExceedsEntitlement)

	// Cumulative deposits hit the same ceiling.
	_, err = f.service.AddEmployeeDeposit(ctx, settlementDomain.AdjustmentRequest{
		RecordID: recordID,
		Amount:   decimal.NewFromInt(20000),
	})
	require.NoError(t, err)
	_, err = f.service.AddEmployeeDeposit(ctx, settlementDomain.AdjustmentRequest{
		RecordID: recordID,
		Amount:   decimal.NewFromInt(5000),
	})
	assert.ErrorIs(t, err, settlementDomain.ErrExceedsEntitlement)
}

func TestBonusService_DepositReducesNetNotGross(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	f := newBonusFixture()
	f.createWorker(t, "Arman", 100)

	records, err := f.service.GenerateRecords(ctx, januaryRequest(0, false))
	require.NoError(t, err)

	adjusted, err := f.service.AddEmployeeDeposit(ctx, settlementDomain.AdjustmentRequest{
		RecordID: records[0].ID,
		Amount:   decimal.NewFromInt(4000),
	})
	require.NoError(t, err)
	assert.True(t, adjusted.GrossBonus.Equal(decimal.NewFromInt(24000)))
	assert.True(t, adjusted.NetBonus.Equal(decimal.NewFromInt(20000)))
}

func TestBonusService_MarkPaidDefaultsToNet(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	f := newBonusFixture()
	f.createWorker(t, "Arman", 100)

	records, err := f.service.GenerateRecords(ctx, januaryRequest(0, false))
	require.NoError(t, err)

	paid, err := f.service.MarkPaid(ctx, settlementDomain.MarkPaidRequest{
		RecordID: records[0].ID,
	})
	require.NoError(t, err)
	assert.True(t, paid.IsPaid)
	require.NotNil(t, paid.AmountPaid)
	assert.True(t, paid.AmountPaid.Equal(decimal.NewFromInt(24000)))
}

func TestBonusService_AdjustmentRejectedAfterFinalize(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	f := newBonusFixture()
	f.createWorker(t, "Arman", 100)

	bonusRepo := memory.NewBonusRepository()
	svc := NewBonusService(bonusRepo, f.workers, f.attendance)

	records, err := svc.GenerateRecords(ctx, januaryRequest(0, false))
	require.NoError(t, err)

	stored, err := bonusRepo.GetByID(ctx, records[0].ID)
	require.NoError(t, err)
	stored.IsFinalized = true
	_, err = bonusRepo.Update(ctx, stored)
	require.NoError(t, err)

	_, err = svc.AddExtraBonus(ctx, settlementDomain.AdjustmentRequest{
		RecordID: records[0].ID,
		Amount:   decimal.NewFromInt(100),
	})
	assert.ErrorIs(t, err, settlementDomain.ErrRecordFinalized)

	// Regeneration leaves the finalized record untouched too.
	regenerated, err := svc.GenerateRecords(ctx, januaryRequest(500, false))
	require.NoError(t, err)
	require.Len(t, regenerated, 1)
	assert.True(t, regenerated[0].IsFinalized)
	assert.True(t, regenerated[0].Penalty.IsZero())
}
