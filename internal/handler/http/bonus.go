package http

import (
	"encoding/json"
	"net/http"

	"github.com/crewpay/crewpay-backend-go/internal/domain/settlement"
	"github.com/crewpay/crewpay-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type BonusHandler interface {
	ComputeDrafts(w http.ResponseWriter, r *http.Request)
	GenerateRecords(w http.ResponseWriter, r *http.Request)
	AddExtraBonus(w http.ResponseWriter, r *http.Request)
	AddEmployeeDeposit(w http.ResponseWriter, r *http.Request)
	MarkPaid(w http.ResponseWriter, r *http.Request)
	ListRecords(w http.ResponseWriter, r *http.Request)
}

type bonusHandlerImpl struct {
	bonusService settlement.BonusService
}

func NewBonusHandler(bonusService settlement.BonusService) BonusHandler {
	return &bonusHandlerImpl{bonusService: bonusService}
}

func (h *bonusHandlerImpl) ComputeDrafts(w http.ResponseWriter, r *http.Request) {
	var req settlement.ComputeBonusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.bonusService.ComputeDrafts(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *bonusHandlerImpl) GenerateRecords(w http.ResponseWriter, r *http.Request) {
	var req settlement.ComputeBonusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.bonusService.GenerateRecords(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Bonus records generated", result)
}

func (h *bonusHandlerImpl) adjust(w http.ResponseWriter, r *http.Request, fn func(r *http.Request, req settlement.AdjustmentRequest) (settlement.BonusRecordResponse, error)) {
	recordID := chi.URLParam(r, "id")
	if recordID == "" {
		response.BadRequest(w, "Record ID is required", nil)
		return
	}

	var req settlement.AdjustmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}
	req.RecordID = recordID

	result, err := fn(r, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *bonusHandlerImpl) AddExtraBonus(w http.ResponseWriter, r *http.Request) {
	h.adjust(w, r, func(r *http.Request, req settlement.AdjustmentRequest) (settlement.BonusRecordResponse, error) {
		return h.bonusService.AddExtraBonus(r.Context(), req)
	})
}

func (h *bonusHandlerImpl) AddEmployeeDeposit(w http.ResponseWriter, r *http.Request) {
	h.adjust(w, r, func(r *http.Request, req settlement.AdjustmentRequest) (settlement.BonusRecordResponse, error) {
		return h.bonusService.AddEmployeeDeposit(r.Context(), req)
	})
}

func (h *bonusHandlerImpl) MarkPaid(w http.ResponseWriter, r *http.Request) {
	recordID := chi.URLParam(r, "id")
	if recordID == "" {
		response.BadRequest(w, "Record ID is required", nil)
		return
	}

	var req settlement.MarkPaidRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}
	req.RecordID = recordID

	result, err := h.bonusService.MarkPaid(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *bonusHandlerImpl) ListRecords(w http.ResponseWriter, r *http.Request) {
	result, err := h.bonusService.ListRecords(r.Context(),
		r.URL.Query().Get("period_start"), r.URL.Query().Get("period_end"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
