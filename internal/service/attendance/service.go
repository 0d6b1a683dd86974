package attendance

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/crewpay/crewpay-backend-go/internal/domain/attendance"
	"github.com/crewpay/crewpay-backend-go/internal/domain/holiday"
	"github.com/crewpay/crewpay-backend-go/internal/domain/worker"
	"github.com/crewpay/crewpay-backend-go/internal/pkg/metrics"
	"github.com/crewpay/crewpay-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

var half = decimal.NewFromFloat(0.5)

type AttendanceServiceImpl struct {
	attendance.AttendanceRepository
	worker.WorkerRepository
	holiday.HolidayRepository
}

func NewAttendanceService(
	attendanceRepository attendance.AttendanceRepository,
	workerRepository worker.WorkerRepository,
	holidayRepository holiday.HolidayRepository,
) attendance.AttendanceService {
	return &AttendanceServiceImpl{
		AttendanceRepository: attendanceRepository,
		WorkerRepository:     workerRepository,
		HolidayRepository:    holidayRepository,
	}
}

// payFor computes the stored pay for one entry. Half days pay half the
// worker's standard day regardless of the hours supplied; absences pay
// nothing.
func payFor(w worker.Worker, status attendance.Status, hours decimal.Decimal) decimal.Decimal {
	switch status {
	case attendance.StatusPresent, attendance.StatusHoliday:
		return hours.Mul(w.HourlyRate)
	case attendance.StatusHalfDay:
		return w.StandardDailyHours.Mul(half).Mul(w.HourlyRate)
	default:
		return decimal.Zero
	}
}

// Upsert implements attendance.AttendanceService. A second write for the same
// worker and day replaces the first. An empty status defaults from the holiday
// calendar: holiday on a listed date, present otherwise.
func (s *AttendanceServiceImpl) Upsert(ctx context.Context, req attendance.UpsertRequest) (attendance.EntryResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.EntryResponse{}, err
	}

	w, err := s.WorkerRepository.GetByID(ctx, req.WorkerID)
	if err != nil {
		if errors.Is(err, worker.ErrWorkerNotFound) {
			return attendance.EntryResponse{}, attendance.ErrWorkerNotFound
		}
		return attendance.EntryResponse{}, err
	}

	date, _ := validator.IsValidDate(req.Date)

	status := attendance.Status(req.Status)
	if req.Status == "" {
		isHoliday, err := s.HolidayRepository.IsHoliday(ctx, date)
		if err != nil {
			return attendance.EntryResponse{}, fmt.Errorf("failed to check holiday calendar: %w", err)
		}
		status = attendance.StatusPresent
		if isHoliday {
			status = attendance.StatusHoliday
		}
	}

	hours := req.HoursWorked
	if status == attendance.StatusAbsent {
		hours = decimal.Zero
	}

	entry, err := s.AttendanceRepository.Upsert(ctx, attendance.Entry{
		WorkerID:    req.WorkerID,
		Date:        date,
		Status:      status,
		HoursWorked: hours,
		TotalPay:    payFor(w, status, hours),
		Notes:       req.Notes,
	})
	if err != nil {
		return attendance.EntryResponse{}, err
	}

	metrics.AttendanceUpserts.WithLabelValues(string(status)).Inc()
	return attendance.ToResponse(entry), nil
}

// Aggregate implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) Aggregate(ctx context.Context, req attendance.AggregateRequest) ([]attendance.TotalsResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	start, _ := validator.IsValidDate(req.PeriodStart)
	end, _ := validator.IsValidDate(req.PeriodEnd)

	var workerIDs []string
	if req.WorkerID != nil {
		workerIDs = []string{*req.WorkerID}
	}

	totals, err := s.Totals(ctx, start, end, workerIDs)
	if err != nil {
		return nil, err
	}

	names, err := s.workerNames(ctx)
	if err != nil {
		return nil, err
	}

	responses := make([]attendance.TotalsResponse, 0, len(totals))
	for _, t := range totals {
		responses = append(responses, attendance.TotalsResponse{
			WorkerID:    t.WorkerID,
			WorkerName:  names[t.WorkerID],
			TotalHours:  t.TotalHours,
			TotalPay:    t.TotalPay,
			DaysPresent: t.DaysPresent,
			DaysAbsent:  t.DaysAbsent,
		})
	}
	sort.Slice(responses, func(i, j int) bool {
		return responses[i].WorkerName < responses[j].WorkerName
	})

	return responses, nil
}

// Totals implements attendance.AttendanceService. A holiday entry stored with
// zero hours counts as a full standard day here; the stored entry itself is
// never rewritten.
func (s *AttendanceServiceImpl) Totals(ctx context.Context, start, end time.Time, workerIDs []string) (map[string]attendance.Totals, error) {
	entries, err := s.AttendanceRepository.ListByPeriod(ctx, start, end, nil)
	if err != nil {
		return nil, err
	}

	var include map[string]bool
	if len(workerIDs) > 0 {
		include = make(map[string]bool, len(workerIDs))
		for _, id := range workerIDs {
			include[id] = true
		}
	}

	workers, err := s.workersByID(ctx)
	if err != nil {
		return nil, err
	}

	totals := make(map[string]attendance.Totals)
	for _, e := range entries {
		if include != nil && !include[e.WorkerID] {
			continue
		}
		w, ok := workers[e.WorkerID]
		if !ok {
			continue
		}

		t := totals[e.WorkerID]
		t.WorkerID = e.WorkerID

		hours := e.HoursWorked
		pay := e.TotalPay
		if e.Status == attendance.StatusHoliday && hours.IsZero() {
			hours = w.StandardDailyHours
			pay = hours.Mul(w.HourlyRate)
		}

		switch e.Status {
		case attendance.StatusPresent, attendance.StatusHoliday:
			t.DaysPresent++
		case attendance.StatusAbsent:
			t.DaysAbsent++
		}

		t.TotalHours = t.TotalHours.Add(hours)
		t.TotalPay = t.TotalPay.Add(pay)
		totals[e.WorkerID] = t
	}

	return totals, nil
}

func (s *AttendanceServiceImpl) workersByID(ctx context.Context) (map[string]worker.Worker, error) {
	workers, err := s.WorkerRepository.List(ctx, false)
	if err != nil {
		return nil, fmt.Errorf("failed to list workers: %w", err)
	}
	byID := make(map[string]worker.Worker, len(workers))
	for _, w := range workers {
		byID[w.ID] = w
	}
	return byID, nil
}

func (s *AttendanceServiceImpl) workerNames(ctx context.Context) (map[string]string, error) {
	workers, err := s.workersByID(ctx)
	if err != nil {
		return nil, err
	}
	names := make(map[string]string, len(workers))
	for id, w := range workers {
		names[id] = w.Name
	}
	return names, nil
}
