package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	DealStatusActive = "active"
	DealStatusClosed = "closed"
)

// Deal represents an interest-bearing installment agreement between a dealer
// and a customer. DealID is a sequential integer owned by the database.
type Deal struct {
	DealID       int64           `json:"deal_id" db:"deal_id"`
	DealerID     *uuid.UUID      `json:"dealer_id,omitempty" db:"dealer_id"`
	CustomerName string          `json:"customer_name" db:"customer_name"`
	TotalAmount  decimal.Decimal `json:"total_amount" db:"total_amount"`
	InterestRate decimal.Decimal `json:"interest_rate" db:"interest_rate"`
	DealDate     time.Time       `json:"deal_date" db:"deal_date"`
	Status       string          `json:"status" db:"status"`
	CreatedAt    time.Time       `json:"created_at" db:"created_at"`

	Installments []*Installment `json:"installments,omitempty" db:"-"`
	Payments     []*Payment     `json:"payments,omitempty" db:"-"`

	// AccruedInterest is a read-time projection, never persisted.
	AccruedInterest decimal.Decimal `json:"accrued_interest" db:"-"`
}

// DTOs for requests and responses

type CreateDealRequest struct {
	CustomerName string                     `json:"customer_name" validate:"required"`
	DealerID     *string                    `json:"dealer_id,omitempty" validate:"omitempty,uuid4"`
	TotalAmount  decimal.Decimal            `json:"total_amount" validate:"required,decimal_gt=0"`
	InterestRate decimal.Decimal            `json:"interest_rate" validate:"decimal_gte=0"`
	DealDate     string                     `json:"deal_date" validate:"required,datetime=2006-01-02"`
	Installments []CreateInstallmentRequest `json:"installments" validate:"omitempty,dive"`
}

type CreateInstallmentRequest struct {
	DueDate string          `json:"due_date" validate:"required,datetime=2006-01-02"`
	Amount  decimal.Decimal `json:"amount" validate:"required,decimal_gt=0"`
}

type AddInstallmentsRequest struct {
	Installments []CreateInstallmentRequest `json:"installments" validate:"required,min=1,dive"`
}

type AllocatePaymentRequest struct {
	Amount      decimal.Decimal `json:"amount" validate:"required,decimal_gt=0"`
	PaymentDate string          `json:"payment_date" validate:"required,datetime=2006-01-02"`
}

type CrossDealPaymentRequest struct {
	DealerID     string          `json:"dealer_id" validate:"required,uuid4"`
	CustomerName string          `json:"customer_name" validate:"required"`
	Amount       decimal.Decimal `json:"amount" validate:"required,decimal_gt=0"`
	PaymentDate  string          `json:"payment_date" validate:"required,datetime=2006-01-02"`
}

// AllocationDetail records one slice of a payment applied to one installment.
type AllocationDetail struct {
	InstallmentID    uuid.UUID       `json:"installment_id"`
	AllocatedAmount  decimal.Decimal `json:"allocated_amount"`
	InterestRealized decimal.Decimal `json:"interest_realized"`
}

// AllocationResult is the outcome of allocating one payment against one deal.
type AllocationResult struct {
	PaymentID             uuid.UUID          `json:"payment_id"`
	DealID                int64              `json:"deal_id"`
	Allocations           []AllocationDetail `json:"allocations"`
	AllocatedAmount       decimal.Decimal    `json:"allocated_amount"`
	TotalInterestRealized decimal.Decimal    `json:"total_interest_realized"`
	RemainingAmount       decimal.Decimal    `json:"remaining_amount"`
	DealClosed            bool               `json:"deal_closed"`
}

// CrossDealAllocationResult aggregates per-deal allocation summaries for a
// payment spread across a dealer+customer's active deals.
type CrossDealAllocationResult struct {
	Deals                 []*AllocationResult `json:"deals"`
	TotalAllocated        decimal.Decimal     `json:"total_allocated"`
	TotalInterestRealized decimal.Decimal     `json:"total_interest_realized"`
	RemainingAmount       decimal.Decimal     `json:"remaining_amount"`
}
