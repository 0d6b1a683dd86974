package worker

import (
	"context"

	"github.com/crewpay/crewpay-backend-go/internal/domain/worker"
	"github.com/shopspring/decimal"
)

type WorkerServiceImpl struct {
	worker.WorkerRepository
}

func NewWorkerService(workerRepository worker.WorkerRepository) worker.WorkerService {
	return &WorkerServiceImpl{
		WorkerRepository: workerRepository,
	}
}

// Create implements worker.WorkerService.
func (s *WorkerServiceImpl) Create(ctx context.Context, req worker.CreateWorkerRequest) (worker.WorkerResponse, error) {
	if err := req.Validate(); err != nil {
		return worker.WorkerResponse{}, err
	}

	standardHours := decimal.NewFromInt(8)
	if req.StandardDailyHours != nil {
		standardHours = *req.StandardDailyHours
	}

	created, err := s.WorkerRepository.Create(ctx, worker.Worker{
		Name:               req.Name,
		HourlyRate:         req.HourlyRate,
		StandardDailyHours: standardHours,
		IsActive:           true,
	})
	if err != nil {
		return worker.WorkerResponse{}, err
	}

	return worker.ToResponse(created), nil
}

// Get implements worker.WorkerService.
func (s *WorkerServiceImpl) Get(ctx context.Context, id string) (worker.WorkerResponse, error) {
	w, err := s.WorkerRepository.GetByID(ctx, id)
	if err != nil {
		return worker.WorkerResponse{}, err
	}
	return worker.ToResponse(w), nil
}

// List implements worker.WorkerService.
func (s *WorkerServiceImpl) List(ctx context.Context, activeOnly bool) ([]worker.WorkerResponse, error) {
	workers, err := s.WorkerRepository.List(ctx, activeOnly)
	if err != nil {
		return nil, err
	}

	responses := make([]worker.WorkerResponse, 0, len(workers))
	for _, w := range workers {
		responses = append(responses, worker.ToResponse(w))
	}
	return responses, nil
}

// Update implements worker.WorkerService.
func (s *WorkerServiceImpl) Update(ctx context.Context, req worker.UpdateWorkerRequest) (worker.WorkerResponse, error) {
	if err := req.Validate(); err != nil {
		return worker.WorkerResponse{}, err
	}

	if err := s.WorkerRepository.Update(ctx, req); err != nil {
		return worker.WorkerResponse{}, err
	}

	updated, err := s.WorkerRepository.GetByID(ctx, req.ID)
	if err != nil {
		return worker.WorkerResponse{}, err
	}
	return worker.ToResponse(updated), nil
}

// Deactivate implements worker.WorkerService. Deactivation hides the worker
// from active listings and settlement runs; it never touches the ledger.
func (s *WorkerServiceImpl) Deactivate(ctx context.Context, id string) error {
	inactive := false
	return s.WorkerRepository.Update(ctx, worker.UpdateWorkerRequest{
		ID:       id,
		IsActive: &inactive,
	})
}
