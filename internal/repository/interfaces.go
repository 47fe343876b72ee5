package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/segyhp/deal-ledger/internal/domain"
)

// DealRepository defines the interface for deal and installment data operations
type DealRepository interface {
	// Create inserts a new deal; the generated sequential deal_id and
	// created_at are written back onto the entity
	Create(ctx context.Context, deal *domain.Deal) error

	// GetByDealID retrieves a deal by its sequential id
	GetByDealID(ctx context.Context, dealID int64) (*domain.Deal, error)

	// GetByDealIDForUpdate retrieves a deal and takes a row lock, serializing
	// concurrent allocations against the same deal
	GetByDealIDForUpdate(ctx context.Context, dealID int64) (*domain.Deal, error)

	// GetActiveByDealerAndCustomer retrieves active deals for a dealer and
	// customer name, oldest deal date first, ties broken by deal id
	GetActiveByDealerAndCustomer(ctx context.Context, dealerID uuid.UUID, customerName string) ([]*domain.Deal, error)

	// ListActive retrieves all active deals
	ListActive(ctx context.Context) ([]*domain.Deal, error)

	// UpdateStatus updates a deal's status
	UpdateStatus(ctx context.Context, dealID int64, status string) error

	// CreateInstallments inserts installment rows
	CreateInstallments(ctx context.Context, installments []*domain.Installment) error

	// GetInstallments retrieves all installments of a deal ordered by due
	// date then creation time, with last payment dates populated
	GetInstallments(ctx context.Context, dealID int64) ([]*domain.Installment, error)

	// GetUnpaidInstallments retrieves installments with pending_amount > 0,
	// ordered by due date then creation time, with last payment dates
	GetUnpaidInstallments(ctx context.Context, dealID int64) ([]*domain.Installment, error)

	// GetUnpaidInstallmentsForUpdate is GetUnpaidInstallments with row locks
	GetUnpaidInstallmentsForUpdate(ctx context.Context, dealID int64) ([]*domain.Installment, error)

	// UpdateInstallmentPending sets an installment's pending amount
	UpdateInstallmentPending(ctx context.Context, installmentID uuid.UUID, pending decimal.Decimal) error
}

// PaymentRepository defines the interface for payment data operations
type PaymentRepository interface {
	// Create inserts a new payment record
	Create(ctx context.Context, payment *domain.Payment) error

	// GetByDealID retrieves all payments for a deal, oldest first
	GetByDealID(ctx context.Context, dealID int64) ([]*domain.Payment, error)

	// CreateAllocations inserts payment allocation rows
	CreateAllocations(ctx context.Context, allocations []*domain.PaymentAllocation) error

	// GetAllocationsByDealID retrieves all allocations recorded against a
	// deal's installments
	GetAllocationsByDealID(ctx context.Context, dealID int64) ([]*domain.PaymentAllocation, error)
}

// DealerRepository defines the interface for dealer data operations
type DealerRepository interface {
	// Create inserts a new dealer
	Create(ctx context.Context, dealer *domain.Dealer) error

	// GetByID retrieves a dealer by id
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Dealer, error)
}
