package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"

	"github.com/segyhp/deal-ledger/internal/domain"
	"github.com/segyhp/deal-ledger/internal/service"
	"github.com/segyhp/deal-ledger/pkg/response"
	"github.com/segyhp/deal-ledger/pkg/utils"
)

type DealHandler struct {
	service   *service.LedgerService
	validator *validator.Validate
}

func NewDealHandler(service *service.LedgerService) *DealHandler {
	return &DealHandler{
		service:   service,
		validator: newValidator(),
	}
}

func dealIDFromRequest(r *http.Request) (int64, bool) {
	raw := mux.Vars(r)["dealId"]
	dealID, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || dealID <= 0 {
		return 0, false
	}
	return dealID, true
}

// CreateDeal handles POST /api/v1/deals
func (h *DealHandler) CreateDeal(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateDealRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", err)
		return
	}

	if err := h.validator.Struct(&req); err != nil {
		response.BadRequest(w, "Validation failed", err)
		return
	}

	deal, err := h.service.CreateDeal(r.Context(), &req)
	if err != nil {
		response.BusinessError(w, err)
		return
	}

	response.Created(w, deal)
}

// GetDeal handles GET /api/v1/deals/{dealId}, optionally with ?as_of=YYYY-MM-DD.
func (h *DealHandler) GetDeal(w http.ResponseWriter, r *http.Request) {
	dealID, ok := dealIDFromRequest(r)
	if !ok {
		response.BadRequest(w, "dealId must be a positive integer", nil)
		return
	}

	asOf := h.service.Today()
	if raw := r.URL.Query().Get("as_of"); raw != "" {
		parsed, err := utils.ParseDate(raw)
		if err != nil {
			response.BadRequest(w, "as_of must be YYYY-MM-DD", err)
			return
		}
		asOf = parsed
	}

	deal, err := h.service.GetDealWithAccrual(r.Context(), dealID, asOf)
	if err != nil {
		response.BusinessError(w, err)
		return
	}

	response.Success(w, deal)
}

// AddInstallments handles POST /api/v1/deals/{dealId}/installments
func (h *DealHandler) AddInstallments(w http.ResponseWriter, r *http.Request) {
	dealID, ok := dealIDFromRequest(r)
	if !ok {
		response.BadRequest(w, "dealId must be a positive integer", nil)
		return
	}

	var req domain.AddInstallmentsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", err)
		return
	}

	if err := h.validator.Struct(&req); err != nil {
		response.BadRequest(w, "Validation failed", err)
		return
	}

	deal, err := h.service.AddInstallments(r.Context(), dealID, &req)
	if err != nil {
		response.BusinessError(w, err)
		return
	}

	response.Created(w, deal)
}

// GetLedger handles GET /api/v1/deals/{dealId}/ledger
func (h *DealHandler) GetLedger(w http.ResponseWriter, r *http.Request) {
	dealID, ok := dealIDFromRequest(r)
	if !ok {
		response.BadRequest(w, "dealId must be a positive integer", nil)
		return
	}

	ledger, err := h.service.GetLedger(r.Context(), dealID)
	if err != nil {
		response.BusinessError(w, err)
		return
	}

	response.Success(w, ledger)
}
