package bonus

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/crewpay/crewpay-backend-go/internal/domain/attendance"
	"github.com/crewpay/crewpay-backend-go/internal/domain/settlement"
	"github.com/crewpay/crewpay-backend-go/internal/domain/worker"
	"github.com/shopspring/decimal"
)

// standardBonusHours is the monthly hour base the bonus entitlement is
// derived from: 30 days at 8 hours.
var standardBonusHours = decimal.NewFromInt(30 * 8)

type BonusServiceImpl struct {
	settlement.BonusRepository
	worker.WorkerRepository
	attendanceService attendance.AttendanceService
}

func NewBonusService(
	bonusRepository settlement.BonusRepository,
	workerRepository worker.WorkerRepository,
	attendanceService attendance.AttendanceService,
) settlement.BonusService {
	return &BonusServiceImpl{
		BonusRepository:   bonusRepository,
		WorkerRepository:  workerRepository,
		attendanceService: attendanceService,
	}
}

// computeForCohort derives one unpersisted record per active worker. The
// absence threshold is the minimum absence count across the cohort, so in
// threshold-relative mode only absences beyond the best attendance record of
// the period are charged. Manual adjustments on an already stored record for
// the same period are carried into the result; recomputation never resets
// them.
func (s *BonusServiceImpl) computeForCohort(ctx context.Context, req settlement.ComputeBonusRequest, period settlement.Period) ([]settlement.BonusRecord, map[string]string, error) {
	workers, err := s.WorkerRepository.List(ctx, true)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list workers: %w", err)
	}
	sort.Slice(workers, func(i, j int) bool { return workers[i].Name < workers[j].Name })

	ids := make([]string, 0, len(workers))
	names := make(map[string]string, len(workers))
	for _, w := range workers {
		ids = append(ids, w.ID)
		names[w.ID] = w.Name
	}

	totals, err := s.attendanceService.Totals(ctx, period.Start, period.End, ids)
	if err != nil {
		return nil, nil, err
	}

	minAbsent := 0
	for i, w := range workers {
		absent := totals[w.ID].DaysAbsent
		if i == 0 || absent < minAbsent {
			minAbsent = absent
		}
	}

	records := make([]settlement.BonusRecord, 0, len(workers))
	for _, w := range workers {
		daysAbsent := totals[w.ID].DaysAbsent

		chargeable := daysAbsent
		if req.ThresholdRelative {
			chargeable = daysAbsent - minAbsent
			if chargeable < 0 {
				chargeable = 0
			}
		}

		r := settlement.BonusRecord{
			WorkerID:           w.ID,
			PeriodStart:        period.Start,
			PeriodEnd:          period.End,
			DaysAbsent:         daysAbsent,
			ChargeableAbsences: chargeable,
			BaseBonus:          standardBonusHours.Mul(w.HourlyRate),
			Penalty:            req.DeductionPerAbsentDay.Mul(decimal.NewFromInt(int64(chargeable))),
			ExtraBonus:         decimal.Zero,
			EmployeeDeposit:    decimal.Zero,
		}

		existing, err := s.BonusRepository.GetByWorkerAndPeriod(ctx, w.ID, period)
		switch {
		case err == nil:
			r.ExtraBonus = existing.ExtraBonus
			r.EmployeeDeposit = existing.EmployeeDeposit
		case errors.Is(err, settlement.ErrBonusRecordNotFound):
		default:
			return nil, nil, err
		}

		r.Recompute()
		records = append(records, r)
	}

	return records, names, nil
}

// ComputeDrafts implements settlement.BonusService.
func (s *BonusServiceImpl) ComputeDrafts(ctx context.Context, req settlement.ComputeBonusRequest) ([]settlement.BonusRecordResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	period, _ := settlement.ParsePeriod(req.PeriodStart, req.PeriodEnd)

	records, names, err := s.computeForCohort(ctx, req, period)
	if err != nil {
		return nil, err
	}

	responses := make([]settlement.BonusRecordResponse, 0, len(records))
	for _, r := range records {
		resp := settlement.ToBonusResponse(r)
		resp.WorkerName = names[r.WorkerID]
		responses = append(responses, resp)
	}
	return responses, nil
}

// GenerateRecords implements settlement.BonusService. Recomputing an existing
// record refreshes its derived fields and carries the manual adjustments
// forward unchanged; finalized records are left exactly as they are.
func (s *BonusServiceImpl) GenerateRecords(ctx context.Context, req settlement.ComputeBonusRequest) ([]settlement.BonusRecordResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	period, _ := settlement.ParsePeriod(req.PeriodStart, req.PeriodEnd)

	computed, names, err := s.computeForCohort(ctx, req, period)
	if err != nil {
		return nil, err
	}

	responses := make([]settlement.BonusRecordResponse, 0, len(computed))
	for _, r := range computed {
		existing, err := s.BonusRepository.GetByWorkerAndPeriod(ctx, r.WorkerID, period)
		switch {
		case err == nil && existing.IsFinalized:
			r = existing
		case err == nil:
			existing.DaysAbsent = r.DaysAbsent
			existing.ChargeableAbsences = r.ChargeableAbsences
			existing.BaseBonus = r.BaseBonus
			existing.Penalty = r.Penalty
			existing.Recompute()
			r, err = s.BonusRepository.Update(ctx, existing)
			if err != nil {
				return nil, err
			}
		case errors.Is(err, settlement.ErrBonusRecordNotFound):
			r, err = s.BonusRepository.Create(ctx, r)
			if err != nil {
				return nil, err
			}
		default:
			return nil, err
		}

		resp := settlement.ToBonusResponse(r)
		resp.WorkerName = names[r.WorkerID]
		responses = append(responses, resp)
	}
	return responses, nil
}

// AddExtraBonus implements settlement.BonusService.
func (s *BonusServiceImpl) AddExtraBonus(ctx context.Context, req settlement.AdjustmentRequest) (settlement.BonusRecordResponse, error) {
	if err := req.Validate(); err != nil {
		return settlement.BonusRecordResponse{}, err
	}

	r, err := s.BonusRepository.GetByID(ctx, req.RecordID)
	if err != nil {
		return settlement.BonusRecordResponse{}, err
	}
	if r.IsFinalized {
		return settlement.BonusRecordResponse{}, settlement.ErrRecordFinalized
	}

	r.ExtraBonus = r.ExtraBonus.Add(req.Amount)
	if req.Notes != nil {
		r.AppendNote(*req.Notes)
	}
	r.Recompute()

	updated, err := s.BonusRepository.Update(ctx, r)
	if err != nil {
		return settlement.BonusRecordResponse{}, err
	}
	return settlement.ToBonusResponse(updated), nil
}

// AddEmployeeDeposit implements settlement.BonusService. The cumulative
// deposit may never exceed the gross bonus: the deposit is withheld out of
// the entitlement, not borrowed on top of it.
func (s *BonusServiceImpl) AddEmployeeDeposit(ctx context.Context, req settlement.AdjustmentRequest) (settlement.BonusRecordResponse, error) {
	if err := req.Validate(); err != nil {
		return settlement.BonusRecordResponse{}, err
	}

	r, err := s.BonusRepository.GetByID(ctx, req.RecordID)
	if err != nil {
		return settlement.BonusRecordResponse{}, err
	}
	if r.IsFinalized {
		return settlement.BonusRecordResponse{}, settlement.ErrRecordFinalized
	}

	if r.EmployeeDeposit.Add(req.Amount).GreaterThan(r.GrossBonus) {
		return settlement.BonusRecordResponse{}, settlement.ErrExceedsEntitlement
	}

	r.EmployeeDeposit = r.EmployeeDeposit.Add(req.Amount)
	if req.Notes != nil {
		r.AppendNote(*req.Notes)
	}
	r.Recompute()

	updated, err := s.BonusRepository.Update(ctx, r)
	if err != nil {
		return settlement.BonusRecordResponse{}, err
	}
	return settlement.ToBonusResponse(updated), nil
}

// MarkPaid implements settlement.BonusService. Paid is a bookkeeping flag on
// the record; it posts nothing to the ledger.
func (s *BonusServiceImpl) MarkPaid(ctx context.Context, req settlement.MarkPaidRequest) (settlement.BonusRecordResponse, error) {
	if err := req.Validate(); err != nil {
		return settlement.BonusRecordResponse{}, err
	}

	r, err := s.BonusRepository.GetByID(ctx, req.RecordID)
	if err != nil {
		return settlement.BonusRecordResponse{}, err
	}

	amount := r.NetBonus
	if req.AmountPaid != nil {
		amount = *req.AmountPaid
	}
	r.IsPaid = true
	r.AmountPaid = &amount

	updated, err := s.BonusRepository.Update(ctx, r)
	if err != nil {
		return settlement.BonusRecordResponse{}, err
	}
	return settlement.ToBonusResponse(updated), nil
}

// ListRecords implements settlement.BonusService.
func (s *BonusServiceImpl) ListRecords(ctx context.Context, periodStart, periodEnd string) ([]settlement.BonusRecordResponse, error) {
	period, err := settlement.ParsePeriod(periodStart, periodEnd)
	if err != nil {
		return nil, err
	}

	records, err := s.BonusRepository.ListByPeriod(ctx, period)
	if err != nil {
		return nil, err
	}

	workers, err := s.WorkerRepository.List(ctx, false)
	if err != nil {
		return nil, fmt.Errorf("failed to list workers: %w", err)
	}
	names := make(map[string]string, len(workers))
	for _, w := range workers {
		names[w.ID] = w.Name
	}

	responses := make([]settlement.BonusRecordResponse, 0, len(records))
	for _, r := range records {
		resp := settlement.ToBonusResponse(r)
		resp.WorkerName = names[r.WorkerID]
		responses = append(responses, resp)
	}
	return responses, nil
}
