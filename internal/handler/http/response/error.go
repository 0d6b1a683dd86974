package response

import (
	"errors"
	"net/http"

	"github.com/crewpay/crewpay-backend-go/internal/domain/attendance"
	"github.com/crewpay/crewpay-backend-go/internal/domain/auth"
	"github.com/crewpay/crewpay-backend-go/internal/domain/holiday"
	"github.com/crewpay/crewpay-backend-go/internal/domain/ledger"
	"github.com/crewpay/crewpay-backend-go/internal/domain/settlement"
	"github.com/crewpay/crewpay-backend-go/internal/domain/worker"
	"github.com/crewpay/crewpay-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	// A halted finalize keeps its partial postings; the caller needs to know
	// where it stopped, so the cause and the worker both go out.
	var finalizeErr *settlement.FinalizeError
	if errors.As(err, &finalizeErr) {
		BadRequest(w, finalizeErr.Error(), map[string]string{
			"worker_id": finalizeErr.WorkerID,
		})
		return
	}

	switch {
	// Auth domain errors
	case errors.Is(err, auth.ErrInvalidCredentials):
		Unauthorized(w, err.Error())
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, "Invalid or expired token")

	// Worker domain errors
	case errors.Is(err, worker.ErrWorkerNotFound):
		NotFound(w, "Worker not found")
	case errors.Is(err, worker.ErrWorkerNameExists):
		Conflict(w, "Worker name already exists")

	// Ledger domain errors
	case errors.Is(err, ledger.ErrWorkerNotFound):
		NotFound(w, "Worker not found")
	case errors.Is(err, ledger.ErrInsufficientBalance):
		BadRequest(w, "Insufficient advance balance", nil)
	case errors.Is(err, ledger.ErrInvalidKind):
		BadRequest(w, "Invalid transaction kind", nil)

	// Attendance domain errors
	case errors.Is(err, attendance.ErrWorkerNotFound):
		NotFound(w, "Worker not found")
	case errors.Is(err, attendance.ErrEntryNotFound):
		NotFound(w, "Attendance entry not found")

	// Holiday domain errors
	case errors.Is(err, holiday.ErrHolidayNotFound):
		NotFound(w, "Holiday not found")

	// Settlement domain errors
	case errors.Is(err, settlement.ErrBonusRecordNotFound):
		NotFound(w, "Bonus record not found")
	case errors.Is(err, settlement.ErrHistoryNotFound):
		NotFound(w, "Settlement history not found")
	case errors.Is(err, settlement.ErrWorkerNotFound):
		NotFound(w, "Worker not found")
	case errors.Is(err, settlement.ErrExceedsEntitlement):
		BadRequest(w, "Deposit exceeds bonus entitlement", nil)
	case errors.Is(err, settlement.ErrRecordFinalized):
		Conflict(w, "Bonus record already finalized")
	case errors.Is(err, settlement.ErrNothingToFinalize):
		BadRequest(w, "Nothing to finalize for this period", nil)

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
