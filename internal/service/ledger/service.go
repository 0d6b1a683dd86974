package ledger

import (
	"context"
	"errors"
	"time"

	"github.com/crewpay/crewpay-backend-go/internal/domain/ledger"
	"github.com/crewpay/crewpay-backend-go/internal/domain/worker"
	"github.com/crewpay/crewpay-backend-go/internal/pkg/metrics"
	"github.com/crewpay/crewpay-backend-go/internal/pkg/validator"
)

type LedgerServiceImpl struct {
	ledger.LedgerRepository
	worker.WorkerRepository
}

func NewLedgerService(ledgerRepository ledger.LedgerRepository, workerRepository worker.WorkerRepository) ledger.LedgerService {
	return &LedgerServiceImpl{
		LedgerRepository: ledgerRepository,
		WorkerRepository: workerRepository,
	}
}

// GiveAdvance implements ledger.LedgerService.
func (s *LedgerServiceImpl) GiveAdvance(ctx context.Context, req ledger.PostTransactionRequest) (ledger.TransactionResponse, error) {
	return s.post(ctx, ledger.KindAdvance, req)
}

// RecordRepayment implements ledger.LedgerService.
func (s *LedgerServiceImpl) RecordRepayment(ctx context.Context, req ledger.PostTransactionRequest) (ledger.TransactionResponse, error) {
	return s.post(ctx, ledger.KindRepayment, req)
}

// RecordDeposit implements ledger.LedgerService. A deposit reduces the
// worker's outstanding balance exactly like a repayment; the kinds stay
// distinct so history shows where the money came from.
func (s *LedgerServiceImpl) RecordDeposit(ctx context.Context, req ledger.PostTransactionRequest) (ledger.TransactionResponse, error) {
	return s.post(ctx, ledger.KindDeposit, req)
}

func (s *LedgerServiceImpl) post(ctx context.Context, kind ledger.Kind, req ledger.PostTransactionRequest) (ledger.TransactionResponse, error) {
	if err := req.Validate(); err != nil {
		metrics.LedgerRejections.WithLabelValues("validation").Inc()
		return ledger.TransactionResponse{}, err
	}

	date := validator.DayOf(time.Now().UTC())
	if req.Date != nil {
		parsed, _ := validator.IsValidDate(*req.Date)
		date = parsed
	}

	tx, err := s.LedgerRepository.Append(ctx, req.WorkerID, kind, req.Amount, date, req.Notes)
	if err != nil {
		switch {
		case errors.Is(err, ledger.ErrInsufficientBalance):
			metrics.LedgerRejections.WithLabelValues("insufficient_balance").Inc()
		case errors.Is(err, ledger.ErrWorkerNotFound):
			metrics.LedgerRejections.WithLabelValues("worker_not_found").Inc()
		}
		return ledger.TransactionResponse{}, err
	}

	metrics.LedgerTransactions.WithLabelValues(string(kind)).Inc()
	return ledger.ToResponse(tx), nil
}

// GetHistory implements ledger.LedgerService.
func (s *LedgerServiceImpl) GetHistory(ctx context.Context, workerID string) ([]ledger.TransactionResponse, error) {
	history, err := s.LedgerRepository.GetHistory(ctx, workerID)
	if err != nil {
		return nil, err
	}

	responses := make([]ledger.TransactionResponse, 0, len(history))
	for _, t := range history {
		responses = append(responses, ledger.ToResponse(t))
	}
	return responses, nil
}

// GetBalance implements ledger.LedgerService. It reads the cached balance;
// Reconcile exists to audit it against the transaction log.
func (s *LedgerServiceImpl) GetBalance(ctx context.Context, workerID string) (ledger.BalanceResponse, error) {
	w, err := s.WorkerRepository.GetByID(ctx, workerID)
	if err != nil {
		if errors.Is(err, worker.ErrWorkerNotFound) {
			return ledger.BalanceResponse{}, ledger.ErrWorkerNotFound
		}
		return ledger.BalanceResponse{}, err
	}

	return ledger.BalanceResponse{
		WorkerID: w.ID,
		Balance:  w.Balance,
	}, nil
}

// Reconcile implements ledger.LedgerService. It recomputes the balance from
// the full history and reports drift against the cache. It is diagnostic
// only: drift is surfaced, never repaired.
func (s *LedgerServiceImpl) Reconcile(ctx context.Context, workerID string) (ledger.ReconciliationResponse, error) {
	w, err := s.WorkerRepository.GetByID(ctx, workerID)
	if err != nil {
		if errors.Is(err, worker.ErrWorkerNotFound) {
			return ledger.ReconciliationResponse{}, ledger.ErrWorkerNotFound
		}
		return ledger.ReconciliationResponse{}, err
	}

	history, err := s.LedgerRepository.GetHistory(ctx, workerID)
	if err != nil {
		return ledger.ReconciliationResponse{}, err
	}

	computed := ledger.Fold(history)
	drift := w.Balance.Sub(computed)

	return ledger.ReconciliationResponse{
		WorkerID:         w.ID,
		CachedBalance:    w.Balance,
		ComputedBalance:  computed,
		Drift:            drift,
		InSync:           drift.IsZero(),
		TransactionCount: len(history),
	}, nil
}
