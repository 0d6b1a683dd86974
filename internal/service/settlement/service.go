package settlement

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/crewpay/crewpay-backend-go/internal/domain/attendance"
	"github.com/crewpay/crewpay-backend-go/internal/domain/ledger"
	"github.com/crewpay/crewpay-backend-go/internal/domain/settlement"
	"github.com/crewpay/crewpay-backend-go/internal/domain/worker"
	"github.com/crewpay/crewpay-backend-go/internal/pkg/metrics"
	"github.com/shopspring/decimal"
)

type SettlementServiceImpl struct {
	settlement.HistoryRepository
	settlement.BonusRepository
	ledger.LedgerRepository
	worker.WorkerRepository
	attendanceService attendance.AttendanceService
}

func NewSettlementService(
	historyRepository settlement.HistoryRepository,
	bonusRepository settlement.BonusRepository,
	ledgerRepository ledger.LedgerRepository,
	workerRepository worker.WorkerRepository,
	attendanceService attendance.AttendanceService,
) settlement.SettlementService {
	return &SettlementServiceImpl{
		HistoryRepository: historyRepository,
		BonusRepository:   bonusRepository,
		LedgerRepository:  ledgerRepository,
		WorkerRepository:  workerRepository,
		attendanceService: attendanceService,
	}
}

// batchRow is one worker's share of a finalize batch before any posting.
type batchRow struct {
	workerID   string
	workerName string
	gross      decimal.Decimal
	net        decimal.Decimal
	deposit    decimal.Decimal
	newAdvance decimal.Decimal
	recordID   string // bonus record to mark finalized, empty for salary
}

// buildBatch resolves the request into per-worker rows in a deterministic
// order (by worker name). Bonus batches come from the persisted unfinalized
// records of the period; salary batches from the operator-entered entries.
func (s *SettlementServiceImpl) buildBatch(ctx context.Context, req settlement.FinalizeRequest, period settlement.Period) ([]batchRow, error) {
	workers, err := s.WorkerRepository.List(ctx, false)
	if err != nil {
		return nil, fmt.Errorf("failed to list workers: %w", err)
	}
	byID := make(map[string]worker.Worker, len(workers))
	for _, w := range workers {
		byID[w.ID] = w
	}

	var rows []batchRow
	switch settlement.SettlementType(req.Type) {
	case settlement.TypeBonus:
		records, err := s.BonusRepository.ListByPeriod(ctx, period)
		if err != nil {
			return nil, err
		}
		for _, r := range records {
			if r.IsFinalized {
				continue
			}
			rows = append(rows, batchRow{
				workerID:   r.WorkerID,
				workerName: byID[r.WorkerID].Name,
				gross:      r.GrossBonus,
				net:        r.NetBonus,
				deposit:    r.EmployeeDeposit,
				recordID:   r.ID,
			})
		}

	case settlement.TypeSalary:
		ids := make([]string, 0, len(req.Entries))
		for _, e := range req.Entries {
			ids = append(ids, e.WorkerID)
		}
		totals, err := s.attendanceService.Totals(ctx, period.Start, period.End, ids)
		if err != nil {
			return nil, err
		}
		for _, e := range req.Entries {
			w, ok := byID[e.WorkerID]
			if !ok {
				return nil, settlement.ErrWorkerNotFound
			}
			pay := totals[e.WorkerID].TotalPay
			net := pay.Sub(e.Deposit)
			if net.IsNegative() {
				net = decimal.Zero
			}
			rows = append(rows, batchRow{
				workerID:   w.ID,
				workerName: w.Name,
				gross:      pay,
				net:        net,
				deposit:    e.Deposit,
				newAdvance: e.NewAdvance,
			})
		}
	}

	if len(rows) == 0 {
		return nil, settlement.ErrNothingToFinalize
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].workerName < rows[j].workerName })

	return rows, nil
}

// ValidateFinalize implements settlement.SettlementService. It runs the
// batch's balance checks against current ledger state without posting. A pass
// is advisory: balances can still change before Finalize runs.
func (s *SettlementServiceImpl) ValidateFinalize(ctx context.Context, req settlement.FinalizeRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}
	period, _ := settlement.ParsePeriod(req.PeriodStart, req.PeriodEnd)

	rows, err := s.buildBatch(ctx, req, period)
	if err != nil {
		return err
	}

	for i, row := range rows {
		if row.deposit.IsZero() {
			continue
		}
		w, err := s.WorkerRepository.GetByID(ctx, row.workerID)
		if err != nil {
			return &settlement.FinalizeError{WorkerID: row.workerID, Processed: i, Err: err}
		}
		if row.deposit.GreaterThan(w.Balance) {
			return &settlement.FinalizeError{WorkerID: row.workerID, Processed: i, Err: ledger.ErrInsufficientBalance}
		}
	}

	return nil
}

// Finalize implements settlement.SettlementService. Each worker's deposit is
// posted before their new advance. The batch is not atomic across workers: a
// failed posting halts the run, earlier workers' postings stay in effect and
// no history record is written.
func (s *SettlementServiceImpl) Finalize(ctx context.Context, req settlement.FinalizeRequest) (settlement.HistoryResponse, error) {
	if err := req.Validate(); err != nil {
		return settlement.HistoryResponse{}, err
	}
	period, _ := settlement.ParsePeriod(req.PeriodStart, req.PeriodEnd)

	rows, err := s.buildBatch(ctx, req, period)
	if err != nil {
		return settlement.HistoryResponse{}, err
	}

	now := time.Now().UTC()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	settlementType := settlement.SettlementType(req.Type)
	note := fmt.Sprintf("%s settlement %s", req.Type, period.String())

	record := settlement.HistoryRecord{
		Type:          settlementType,
		PeriodStart:   period.Start,
		PeriodEnd:     period.End,
		TotalGross:    decimal.Zero,
		TotalNet:      decimal.Zero,
		TotalDeposits: decimal.Zero,
		TotalAdvances: decimal.Zero,
	}
	var recordIDs []string

	for i, row := range rows {
		if err := s.postForWorker(ctx, row, today, note); err != nil {
			metrics.SettlementFinalizations.WithLabelValues(req.Type, "halted").Inc()
			return settlement.HistoryResponse{}, &settlement.FinalizeError{
				WorkerID:  row.workerID,
				Processed: i,
				Err:       err,
			}
		}

		w, err := s.WorkerRepository.GetByID(ctx, row.workerID)
		if err != nil {
			metrics.SettlementFinalizations.WithLabelValues(req.Type, "halted").Inc()
			return settlement.HistoryResponse{}, &settlement.FinalizeError{
				WorkerID:  row.workerID,
				Processed: i,
				Err:       err,
			}
		}

		record.Entries = append(record.Entries, settlement.HistoryEntry{
			WorkerID:        row.workerID,
			WorkerName:      row.workerName,
			Gross:           row.gross,
			Net:             row.net,
			Deposit:         row.deposit,
			NewAdvance:      row.newAdvance,
			ObservedBalance: w.Balance,
		})
		record.TotalGross = record.TotalGross.Add(row.gross)
		record.TotalNet = record.TotalNet.Add(row.net)
		record.TotalDeposits = record.TotalDeposits.Add(row.deposit)
		record.TotalAdvances = record.TotalAdvances.Add(row.newAdvance)
		if row.recordID != "" {
			recordIDs = append(recordIDs, row.recordID)
		}
	}

	created, err := s.HistoryRepository.Create(ctx, record)
	if err != nil {
		metrics.SettlementFinalizations.WithLabelValues(req.Type, "halted").Inc()
		return settlement.HistoryResponse{}, fmt.Errorf("failed to write settlement history: %w", err)
	}

	if len(recordIDs) > 0 {
		if err := s.BonusRepository.MarkFinalized(ctx, recordIDs, now); err != nil {
			return settlement.HistoryResponse{}, err
		}
	}

	metrics.SettlementFinalizations.WithLabelValues(req.Type, "success").Inc()
	return settlement.ToHistoryResponse(created), nil
}

func (s *SettlementServiceImpl) postForWorker(ctx context.Context, row batchRow, date time.Time, note string) error {
	if row.deposit.IsPositive() {
		if _, err := s.LedgerRepository.Append(ctx, row.workerID, ledger.KindDeposit, row.deposit, date, &note); err != nil {
			return err
		}
		metrics.LedgerTransactions.WithLabelValues(string(ledger.KindDeposit)).Inc()
	}
	if row.newAdvance.IsPositive() {
		if _, err := s.LedgerRepository.Append(ctx, row.workerID, ledger.KindAdvance, row.newAdvance, date, &note); err != nil {
			return err
		}
		metrics.LedgerTransactions.WithLabelValues(string(ledger.KindAdvance)).Inc()
	}
	return nil
}

// ListHistory implements settlement.SettlementService.
func (s *SettlementServiceImpl) ListHistory(ctx context.Context, filter settlement.HistoryFilter) ([]settlement.HistoryResponse, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	records, err := s.HistoryRepository.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	responses := make([]settlement.HistoryResponse, 0, len(records))
	for _, r := range records {
		responses = append(responses, settlement.ToHistoryResponse(r))
	}
	return responses, nil
}

// GetHistory implements settlement.SettlementService.
func (s *SettlementServiceImpl) GetHistory(ctx context.Context, id string) (settlement.HistoryResponse, error) {
	r, err := s.HistoryRepository.GetByID(ctx, id)
	if err != nil {
		return settlement.HistoryResponse{}, err
	}
	return settlement.ToHistoryResponse(r), nil
}

// DeleteHistory implements settlement.SettlementService. Only the snapshot is
// removed; the ledger transactions the finalize posted are never reversed.
func (s *SettlementServiceImpl) DeleteHistory(ctx context.Context, id string) error {
	return s.HistoryRepository.Delete(ctx, id)
}
