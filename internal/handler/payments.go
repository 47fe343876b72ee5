package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/segyhp/deal-ledger/internal/domain"
	"github.com/segyhp/deal-ledger/internal/service"
	"github.com/segyhp/deal-ledger/pkg/response"
	"github.com/segyhp/deal-ledger/pkg/utils"
)

type PaymentHandler struct {
	service   *service.LedgerService
	validator *validator.Validate
}

func NewPaymentHandler(service *service.LedgerService) *PaymentHandler {
	return &PaymentHandler{
		service:   service,
		validator: newValidator(),
	}
}

// AllocatePayment handles POST /api/v1/deals/{dealId}/payments
func (h *PaymentHandler) AllocatePayment(w http.ResponseWriter, r *http.Request) {
	dealID, ok := dealIDFromRequest(r)
	if !ok {
		response.BadRequest(w, "dealId must be a positive integer", nil)
		return
	}

	var req domain.AllocatePaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", err)
		return
	}

	if err := h.validator.Struct(&req); err != nil {
		response.BadRequest(w, "Validation failed", err)
		return
	}

	paymentDate, err := utils.ParseDate(req.PaymentDate)
	if err != nil {
		response.BadRequest(w, "payment_date must be YYYY-MM-DD", err)
		return
	}

	result, err := h.service.AllocatePayment(r.Context(), dealID, req.Amount, paymentDate)
	if err != nil {
		response.BusinessError(w, err)
		return
	}

	response.Created(w, result)
}

// AllocateCrossDeal handles POST /api/v1/payments/cross-deal
func (h *PaymentHandler) AllocateCrossDeal(w http.ResponseWriter, r *http.Request) {
	var req domain.CrossDealPaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", err)
		return
	}

	if err := h.validator.Struct(&req); err != nil {
		response.BadRequest(w, "Validation failed", err)
		return
	}

	dealerID, err := uuid.Parse(req.DealerID)
	if err != nil {
		response.BadRequest(w, "dealer_id must be a UUID", err)
		return
	}

	paymentDate, err := utils.ParseDate(req.PaymentDate)
	if err != nil {
		response.BadRequest(w, "payment_date must be YYYY-MM-DD", err)
		return
	}

	result, err := h.service.AllocatePaymentCrossDeal(r.Context(), dealerID, req.CustomerName, req.Amount, paymentDate)
	if err != nil {
		response.BusinessError(w, err)
		return
	}

	response.Created(w, result)
}
