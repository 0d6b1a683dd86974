package salary

import (
	"context"
	"fmt"
	"sort"

	"github.com/crewpay/crewpay-backend-go/internal/domain/attendance"
	"github.com/crewpay/crewpay-backend-go/internal/domain/settlement"
	"github.com/crewpay/crewpay-backend-go/internal/domain/worker"
	"github.com/shopspring/decimal"
)

type SalaryServiceImpl struct {
	worker.WorkerRepository
	attendanceService attendance.AttendanceService
}

func NewSalaryService(
	workerRepository worker.WorkerRepository,
	attendanceService attendance.AttendanceService,
) settlement.SalaryService {
	return &SalaryServiceImpl{
		WorkerRepository:  workerRepository,
		attendanceService: attendanceService,
	}
}

// ComputeDrafts implements settlement.SalaryService. Hours and pay come from
// attendance; deposit and new advance are operator-entered per worker. The
// final amount is the pay minus the deposit, floored at zero. A new advance
// is cash handed over on top of the payout, so it never reduces the final
// amount; it becomes ledger debt at finalize instead.
func (s *SalaryServiceImpl) ComputeDrafts(ctx context.Context, req settlement.ComputeSalaryRequest) ([]settlement.SalaryDraftResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	period, _ := settlement.ParsePeriod(req.PeriodStart, req.PeriodEnd)

	workers, err := s.WorkerRepository.List(ctx, true)
	if err != nil {
		return nil, fmt.Errorf("failed to list workers: %w", err)
	}
	sort.Slice(workers, func(i, j int) bool { return workers[i].Name < workers[j].Name })

	ids := make([]string, 0, len(workers))
	for _, w := range workers {
		ids = append(ids, w.ID)
	}

	totals, err := s.attendanceService.Totals(ctx, period.Start, period.End, ids)
	if err != nil {
		return nil, err
	}

	entries := make(map[string]settlement.SalaryEntryInput, len(req.Entries))
	for _, e := range req.Entries {
		entries[e.WorkerID] = e
	}

	responses := make([]settlement.SalaryDraftResponse, 0, len(workers))
	for _, w := range workers {
		t := totals[w.ID]
		entry := entries[w.ID]

		final := t.TotalPay.Sub(entry.Deposit)
		if final.IsNegative() {
			final = decimal.Zero
		}

		responses = append(responses, settlement.ToSalaryResponse(settlement.SalaryDraft{
			WorkerID:    w.ID,
			WorkerName:  w.Name,
			TotalHours:  t.TotalHours,
			TotalPay:    t.TotalPay,
			Deposit:     entry.Deposit,
			NewAdvance:  entry.NewAdvance,
			FinalAmount: final,
		}))
	}

	return responses, nil
}
