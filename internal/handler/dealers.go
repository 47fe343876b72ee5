package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/segyhp/deal-ledger/internal/domain"
	"github.com/segyhp/deal-ledger/internal/service"
	"github.com/segyhp/deal-ledger/pkg/response"
)

type DealerHandler struct {
	service   *service.LedgerService
	validator *validator.Validate
}

func NewDealerHandler(service *service.LedgerService) *DealerHandler {
	return &DealerHandler{
		service:   service,
		validator: newValidator(),
	}
}

// CreateDealer handles POST /api/v1/dealers
func (h *DealerHandler) CreateDealer(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateDealerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", err)
		return
	}

	if err := h.validator.Struct(&req); err != nil {
		response.BadRequest(w, "Validation failed", err)
		return
	}

	dealer, err := h.service.CreateDealer(r.Context(), &req)
	if err != nil {
		response.BusinessError(w, err)
		return
	}

	response.Created(w, dealer)
}

// GetDealer handles GET /api/v1/dealers/{dealerId}
func (h *DealerHandler) GetDealer(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["dealerId"])
	if err != nil {
		response.BadRequest(w, "dealerId must be a UUID", err)
		return
	}

	dealer, err := h.service.GetDealer(r.Context(), id)
	if err != nil {
		response.BusinessError(w, err)
		return
	}

	response.Success(w, dealer)
}
