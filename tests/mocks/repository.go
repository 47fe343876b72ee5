package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"github.com/segyhp/deal-ledger/internal/domain"
)

// MockTxManager runs the unit of work directly; tests assert atomicity by
// asserting what happened inside fn.
type MockTxManager struct {
	mock.Mock
}

func (m *MockTxManager) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	args := m.Called(ctx, fn)
	if err := args.Error(0); err != nil {
		return err
	}
	return fn(ctx)
}

// PassthroughTxManager is a MockTxManager preconfigured to run every unit of
// work, for tests that don't care about transaction boundaries.
func PassthroughTxManager() *MockTxManager {
	m := &MockTxManager{}
	m.On("WithinTx", mock.Anything, mock.Anything).Return(nil)
	return m
}

type MockDealRepository struct {
	mock.Mock
}

func (m *MockDealRepository) Create(ctx context.Context, deal *domain.Deal) error {
	args := m.Called(ctx, deal)
	return args.Error(0)
}

func (m *MockDealRepository) GetByDealID(ctx context.Context, dealID int64) (*domain.Deal, error) {
	args := m.Called(ctx, dealID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Deal), args.Error(1)
}

func (m *MockDealRepository) GetByDealIDForUpdate(ctx context.Context, dealID int64) (*domain.Deal, error) {
	args := m.Called(ctx, dealID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Deal), args.Error(1)
}

func (m *MockDealRepository) GetActiveByDealerAndCustomer(ctx context.Context, dealerID uuid.UUID, customerName string) ([]*domain.Deal, error) {
	args := m.Called(ctx, dealerID, customerName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Deal), args.Error(1)
}

func (m *MockDealRepository) ListActive(ctx context.Context) ([]*domain.Deal, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Deal), args.Error(1)
}

func (m *MockDealRepository) UpdateStatus(ctx context.Context, dealID int64, status string) error {
	args := m.Called(ctx, dealID, status)
	return args.Error(0)
}

func (m *MockDealRepository) CreateInstallments(ctx context.Context, installments []*domain.Installment) error {
	args := m.Called(ctx, installments)
	return args.Error(0)
}

func (m *MockDealRepository) GetInstallments(ctx context.Context, dealID int64) ([]*domain.Installment, error) {
	args := m.Called(ctx, dealID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Installment), args.Error(1)
}

func (m *MockDealRepository) GetUnpaidInstallments(ctx context.Context, dealID int64) ([]*domain.Installment, error) {
	args := m.Called(ctx, dealID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Installment), args.Error(1)
}

func (m *MockDealRepository) GetUnpaidInstallmentsForUpdate(ctx context.Context, dealID int64) ([]*domain.Installment, error) {
	args := m.Called(ctx, dealID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Installment), args.Error(1)
}

func (m *MockDealRepository) UpdateInstallmentPending(ctx context.Context, installmentID uuid.UUID, pending decimal.Decimal) error {
	args := m.Called(ctx, installmentID, pending)
	return args.Error(0)
}

type MockPaymentRepository struct {
	mock.Mock
}

func (m *MockPaymentRepository) Create(ctx context.Context, payment *domain.Payment) error {
	args := m.Called(ctx, payment)
	return args.Error(0)
}

func (m *MockPaymentRepository) GetByDealID(ctx context.Context, dealID int64) ([]*domain.Payment, error) {
	args := m.Called(ctx, dealID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Payment), args.Error(1)
}

func (m *MockPaymentRepository) CreateAllocations(ctx context.Context, allocations []*domain.PaymentAllocation) error {
	args := m.Called(ctx, allocations)
	return args.Error(0)
}

func (m *MockPaymentRepository) GetAllocationsByDealID(ctx context.Context, dealID int64) ([]*domain.PaymentAllocation, error) {
	args := m.Called(ctx, dealID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.PaymentAllocation), args.Error(1)
}

type MockDealerRepository struct {
	mock.Mock
}

func (m *MockDealerRepository) Create(ctx context.Context, dealer *domain.Dealer) error {
	args := m.Called(ctx, dealer)
	return args.Error(0)
}

func (m *MockDealerRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Dealer, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Dealer), args.Error(1)
}
