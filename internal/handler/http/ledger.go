package http

import (
	"encoding/json"
	"net/http"

	"github.com/crewpay/crewpay-backend-go/internal/domain/ledger"
	"github.com/crewpay/crewpay-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type LedgerHandler interface {
	GiveAdvance(w http.ResponseWriter, r *http.Request)
	RecordRepayment(w http.ResponseWriter, r *http.Request)
	RecordDeposit(w http.ResponseWriter, r *http.Request)
	GetHistory(w http.ResponseWriter, r *http.Request)
	GetBalance(w http.ResponseWriter, r *http.Request)
	Reconcile(w http.ResponseWriter, r *http.Request)
}

type ledgerHandlerImpl struct {
	ledgerService ledger.LedgerService
}

func NewLedgerHandler(ledgerService ledger.LedgerService) LedgerHandler {
	return &ledgerHandlerImpl{ledgerService: ledgerService}
}

func (h *ledgerHandlerImpl) post(w http.ResponseWriter, r *http.Request, message string, fn func(r *http.Request, req ledger.PostTransactionRequest) (ledger.TransactionResponse, error)) {
	workerID := chi.URLParam(r, "workerID")
	if workerID == "" {
		response.BadRequest(w, "Worker ID is required", nil)
		return
	}

	var req ledger.PostTransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}
	req.WorkerID = workerID

	result, err := fn(r, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, message, result)
}

func (h *ledgerHandlerImpl) GiveAdvance(w http.ResponseWriter, r *http.Request) {
	h.post(w, r, "Advance posted", func(r *http.Request, req ledger.PostTransactionRequest) (ledger.TransactionResponse, error) {
		return h.ledgerService.GiveAdvance(r.Context(), req)
	})
}

func (h *ledgerHandlerImpl) RecordRepayment(w http.ResponseWriter, r *http.Request) {
	h.post(w, r, "Repayment posted", func(r *http.Request, req ledger.PostTransactionRequest) (ledger.TransactionResponse, error) {
		return h.ledgerService.RecordRepayment(r.Context(), req)
	})
}

func (h *ledgerHandlerImpl) RecordDeposit(w http.ResponseWriter, r *http.Request) {
	h.post(w, r, "Deposit posted", func(r *http.Request, req ledger.PostTransactionRequest) (ledger.TransactionResponse, error) {
		return h.ledgerService.RecordDeposit(r.Context(), req)
	})
}

func (h *ledgerHandlerImpl) GetHistory(w http.ResponseWriter, r *http.Request) {
	workerID := chi.URLParam(r, "workerID")
	if workerID == "" {
		response.BadRequest(w, "Worker ID is required", nil)
		return
	}

	result, err := h.ledgerService.GetHistory(r.Context(), workerID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *ledgerHandlerImpl) GetBalance(w http.ResponseWriter, r *http.Request) {
	workerID := chi.URLParam(r, "workerID")
	if workerID == "" {
		response.BadRequest(w, "Worker ID is required", nil)
		return
	}

	result, err := h.ledgerService.GetBalance(r.Context(), workerID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *ledgerHandlerImpl) Reconcile(w http.ResponseWriter, r *http.Request) {
	workerID := chi.URLParam(r, "workerID")
	if workerID == "" {
		response.BadRequest(w, "Worker ID is required", nil)
		return
	}

	result, err := h.ledgerService.Reconcile(r.Context(), workerID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
