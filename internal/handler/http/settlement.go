package http

import (
	"encoding/json"
	"net/http"

	"github.com/crewpay/crewpay-backend-go/internal/domain/settlement"
	"github.com/crewpay/crewpay-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type SettlementHandler interface {
	ComputeSalaryDrafts(w http.ResponseWriter, r *http.Request)
	ValidateFinalize(w http.ResponseWriter, r *http.Request)
	Finalize(w http.ResponseWriter, r *http.Request)
	ListHistory(w http.ResponseWriter, r *http.Request)
	GetHistory(w http.ResponseWriter, r *http.Request)
	DeleteHistory(w http.ResponseWriter, r *http.Request)
}

type settlementHandlerImpl struct {
	salaryService     settlement.SalaryService
	settlementService settlement.SettlementService
}

func NewSettlementHandler(salaryService settlement.SalaryService, settlementService settlement.SettlementService) SettlementHandler {
	return &settlementHandlerImpl{
		salaryService:     salaryService,
		settlementService: settlementService,
	}
}

func (h *settlementHandlerImpl) ComputeSalaryDrafts(w http.ResponseWriter, r *http.Request) {
	var req settlement.ComputeSalaryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.salaryService.ComputeDrafts(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *settlementHandlerImpl) ValidateFinalize(w http.ResponseWriter, r *http.Request) {
	var req settlement.FinalizeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	if err := h.settlementService.ValidateFinalize(r.Context(), req); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Batch can be finalized", nil)
}

func (h *settlementHandlerImpl) Finalize(w http.ResponseWriter, r *http.Request) {
	var req settlement.FinalizeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.settlementService.Finalize(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Settlement finalized", result)
}

func (h *settlementHandlerImpl) ListHistory(w http.ResponseWriter, r *http.Request) {
	var filter settlement.HistoryFilter
	if t := r.URL.Query().Get("type"); t != "" {
		filter.Type = &t
	}
	if from := r.URL.Query().Get("from"); from != "" {
		filter.From = &from
	}
	if to := r.URL.Query().Get("to"); to != "" {
		filter.To = &to
	}

	result, err := h.settlementService.ListHistory(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *settlementHandlerImpl) GetHistory(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "History ID is required", nil)
		return
	}

	result, err := h.settlementService.GetHistory(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *settlementHandlerImpl) DeleteHistory(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "History ID is required", nil)
		return
	}

	if err := h.settlementService.DeleteHistory(r.Context(), id); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Settlement history deleted", nil)
}
