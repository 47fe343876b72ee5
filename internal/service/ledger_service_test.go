package service

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/segyhp/deal-ledger/internal/domain"
	customError "github.com/segyhp/deal-ledger/pkg/errors"
	"github.com/segyhp/deal-ledger/tests/mocks"
)

func TestCreateDeal_Success(t *testing.T) {
	dealRepo := &mocks.MockDealRepository{}
	dealerRepo := &mocks.MockDealerRepository{}
	service := &LedgerService{
		txManager:  mocks.PassthroughTxManager(),
		dealRepo:   dealRepo,
		dealerRepo: dealerRepo,
	}

	request := &domain.CreateDealRequest{
		CustomerName: "Ravi Traders",
		TotalAmount:  decimal.NewFromInt(10000),
		InterestRate: decimal.NewFromInt(12),
		DealDate:     "2024-01-01",
		Installments: []domain.CreateInstallmentRequest{
			{DueDate: "2024-02-01", Amount: decimal.NewFromInt(5000)},
			{DueDate: "2024-03-01", Amount: decimal.NewFromInt(5000)},
		},
	}

	dealRepo.On("Create", mock.Anything, mock.MatchedBy(func(d *domain.Deal) bool {
		return d.CustomerName == "Ravi Traders" && d.Status == domain.DealStatusActive
	})).Run(func(args mock.Arguments) {
		// The database owns the sequential id.
		args.Get(1).(*domain.Deal).DealID = 101
	}).Return(nil)

	dealRepo.On("CreateInstallments", mock.Anything, mock.MatchedBy(func(installments []*domain.Installment) bool {
		if len(installments) != 2 {
			return false
		}
		for _, inst := range installments {
			if inst.DealID != 101 || !inst.PendingAmount.Equal(inst.Amount) {
				return false
			}
		}
		return true
	})).Return(nil)

	deal, err := service.CreateDeal(context.Background(), request)

	assert.NoError(t, err)
	assert.Equal(t, int64(101), deal.DealID)
	assert.Equal(t, domain.DealStatusActive, deal.Status)
	assert.Len(t, deal.Installments, 2)
	assert.Equal(t, time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC), deal.DealDate)

	dealRepo.AssertExpectations(t)
}

func TestCreateDeal_MalformedDate(t *testing.T) {
	service := &LedgerService{
		txManager: mocks.PassthroughTxManager(),
		dealRepo:  &mocks.MockDealRepository{},
	}

	_, err := service.CreateDeal(context.Background(), &domain.CreateDealRequest{
		CustomerName: "Ravi Traders",
		TotalAmount:  decimal.NewFromInt(10000),
		DealDate:     "01-01-2024",
	})

	assert.ErrorIs(t, err, customError.ErrInvalidDate)
}

func TestCreateDeal_DealerNotFound(t *testing.T) {
	dealerRepo := &mocks.MockDealerRepository{}
	service := &LedgerService{
		txManager:  mocks.PassthroughTxManager(),
		dealRepo:   &mocks.MockDealRepository{},
		dealerRepo: dealerRepo,
	}

	dealerID := uuid.New().String()
	dealerRepo.On("GetByID", mock.Anything, mock.Anything).Return(nil, sql.ErrNoRows)

	_, err := service.CreateDeal(context.Background(), &domain.CreateDealRequest{
		CustomerName: "Ravi Traders",
		DealerID:     &dealerID,
		TotalAmount:  decimal.NewFromInt(10000),
		DealDate:     "2024-01-01",
	})

	assert.ErrorIs(t, err, customError.ErrDealerNotFound)
}

func TestAddInstallments_DealNotFound(t *testing.T) {
	dealRepo := &mocks.MockDealRepository{}
	service := &LedgerService{
		txManager: mocks.PassthroughTxManager(),
		dealRepo:  dealRepo,
	}

	dealRepo.On("GetByDealID", mock.Anything, int64(55)).Return(nil, sql.ErrNoRows)

	_, err := service.AddInstallments(context.Background(), 55, &domain.AddInstallmentsRequest{
		Installments: []domain.CreateInstallmentRequest{
			{DueDate: "2024-06-01", Amount: decimal.NewFromInt(100)},
		},
	})

	assert.ErrorIs(t, err, customError.ErrDealNotFound)
}

func TestGetLedger_OrderingAndRunningBalance(t *testing.T) {
	dealRepo := &mocks.MockDealRepository{}
	paymentRepo := &mocks.MockPaymentRepository{}
	service := &LedgerService{
		txManager:   mocks.PassthroughTxManager(),
		dealRepo:    dealRepo,
		paymentRepo: paymentRepo,
	}

	deal := &domain.Deal{
		DealID:       31,
		CustomerName: "Gupta Hardware",
		TotalAmount:  decimal.NewFromInt(3000),
		InterestRate: decimal.Zero,
		DealDate:     civilDate(2024, time.January, 1),
		Status:       domain.DealStatusActive,
	}

	first := &domain.Installment{
		ID:            uuid.New(),
		DealID:        31,
		DueDate:       civilDate(2024, time.February, 1),
		Amount:        decimal.NewFromInt(1000),
		PendingAmount: decimal.NewFromInt(1000),
	}
	second := &domain.Installment{
		ID:            uuid.New(),
		DealID:        31,
		DueDate:       civilDate(2024, time.March, 1),
		Amount:        decimal.NewFromInt(2000),
		PendingAmount: decimal.NewFromInt(1500),
	}
	payment := &domain.Payment{
		ID:          uuid.New(),
		DealID:      31,
		PaymentDate: civilDate(2024, time.February, 10),
		Amount:      decimal.NewFromInt(500),
		PaymentType: domain.PaymentTypeInstallment,
	}

	dealRepo.On("GetByDealID", mock.Anything, int64(31)).Return(deal, nil)
	dealRepo.On("GetInstallments", mock.Anything, int64(31)).
		Return([]*domain.Installment{first, second}, nil)
	paymentRepo.On("GetByDealID", mock.Anything, int64(31)).
		Return([]*domain.Payment{payment}, nil)

	response, err := service.GetLedger(context.Background(), 31)

	assert.NoError(t, err)
	assert.Len(t, response.Ledger, 3)

	assert.Equal(t, "2024-02-01", response.Ledger[0].Date)
	assert.Equal(t, domain.LedgerEntryInstallment, response.Ledger[0].Type)
	assert.True(t, response.Ledger[0].Balance.Equal(decimal.NewFromInt(1000)))

	assert.Equal(t, "2024-02-10", response.Ledger[1].Date)
	assert.Equal(t, domain.LedgerEntryPayment, response.Ledger[1].Type)
	assert.Equal(t, "Payment - No remark", response.Ledger[1].Description)
	assert.True(t, response.Ledger[1].Amount.Equal(decimal.NewFromInt(-500)))
	assert.True(t, response.Ledger[1].Balance.Equal(decimal.NewFromInt(500)))

	assert.Equal(t, "2024-03-01", response.Ledger[2].Date)
	assert.True(t, response.Ledger[2].Balance.Equal(decimal.NewFromInt(1500)))

	dealRepo.AssertExpectations(t)
	paymentRepo.AssertExpectations(t)
}

func TestGetDealWithAccrual_NotFound(t *testing.T) {
	dealRepo := &mocks.MockDealRepository{}
	service := &LedgerService{
		txManager: mocks.PassthroughTxManager(),
		dealRepo:  dealRepo,
	}

	dealRepo.On("GetByDealID", mock.Anything, int64(404)).Return(nil, sql.ErrNoRows)

	_, err := service.GetDealWithAccrual(context.Background(), 404, civilDate(2024, time.June, 1))
	assert.ErrorIs(t, err, customError.ErrDealNotFound)
}

func TestGetDealer_NotFound(t *testing.T) {
	dealerRepo := &mocks.MockDealerRepository{}
	service := &LedgerService{dealerRepo: dealerRepo}

	id := uuid.New()
	dealerRepo.On("GetByID", mock.Anything, id).Return(nil, sql.ErrNoRows)

	_, err := service.GetDealer(context.Background(), id)
	assert.ErrorIs(t, err, customError.ErrDealerNotFound)
}

func TestCreateDealer_Success(t *testing.T) {
	dealerRepo := &mocks.MockDealerRepository{}
	service := &LedgerService{dealerRepo: dealerRepo}

	dealerRepo.On("Create", mock.Anything, mock.MatchedBy(func(d *domain.Dealer) bool {
		return d.Name == "North Zone" && d.ID != uuid.Nil
	})).Return(nil)

	dealer, err := service.CreateDealer(context.Background(), &domain.CreateDealerRequest{Name: "North Zone"})

	assert.NoError(t, err)
	assert.Equal(t, "North Zone", dealer.Name)
	dealerRepo.AssertExpectations(t)
}
