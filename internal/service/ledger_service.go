package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/segyhp/deal-ledger/internal/config"
	"github.com/segyhp/deal-ledger/internal/domain"
	"github.com/segyhp/deal-ledger/internal/repository"
	customError "github.com/segyhp/deal-ledger/pkg/errors"
	"github.com/segyhp/deal-ledger/pkg/interest"
	"github.com/segyhp/deal-ledger/pkg/utils"
)

// LedgerService implements the deal ledger operations: deal creation,
// interest accrual, payment allocation and ledger projection.
type LedgerService struct {
	txManager   repository.TxManager
	dealRepo    repository.DealRepository
	paymentRepo repository.PaymentRepository
	dealerRepo  repository.DealerRepository
	redis       *redis.Client
	config      *config.Config
}

func NewLedgerService(
	txManager repository.TxManager,
	dealRepo repository.DealRepository,
	paymentRepo repository.PaymentRepository,
	dealerRepo repository.DealerRepository,
	redis *redis.Client,
	config *config.Config,
) *LedgerService {
	return &LedgerService{
		txManager:   txManager,
		dealRepo:    dealRepo,
		paymentRepo: paymentRepo,
		dealerRepo:  dealerRepo,
		redis:       redis,
		config:      config,
	}
}

func (s *LedgerService) bufferDays() int {
	if s.config != nil {
		return s.config.Business.BufferDays
	}
	return interest.DefaultBufferDays
}

// Today is the current civil date in the configured ledger timezone, never
// the host's local time.
func (s *LedgerService) Today() time.Time {
	if s.config != nil {
		return utils.Today(s.config.Location())
	}
	return utils.Today(time.UTC)
}

// CreateDeal creates a new deal together with its initial installments.
func (s *LedgerService) CreateDeal(ctx context.Context, request *domain.CreateDealRequest) (*domain.Deal, error) {
	dealDate, err := utils.ParseDate(request.DealDate)
	if err != nil {
		return nil, customError.WrapValidationError("deal_date must be YYYY-MM-DD", customError.ErrInvalidDate)
	}

	var dealerID *uuid.UUID
	if request.DealerID != nil {
		id, err := uuid.Parse(*request.DealerID)
		if err != nil {
			return nil, customError.WrapValidationError("dealer_id must be a UUID", err)
		}

		if _, err := s.dealerRepo.GetByID(ctx, id); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return nil, customError.WrapDealerNotFound(id.String())
			}
			return nil, customError.WrapDatabaseError(err)
		}
		dealerID = &id
	}

	deal := &domain.Deal{
		DealerID:     dealerID,
		CustomerName: request.CustomerName,
		TotalAmount:  request.TotalAmount,
		InterestRate: request.InterestRate,
		DealDate:     dealDate,
		Status:       domain.DealStatusActive,
	}

	installments, err := buildInstallments(request.Installments)
	if err != nil {
		return nil, err
	}

	err = s.txManager.WithinTx(ctx, func(ctx context.Context) error {
		if err := s.dealRepo.Create(ctx, deal); err != nil {
			return customError.WrapDatabaseError(err)
		}

		for _, inst := range installments {
			inst.DealID = deal.DealID
		}

		if len(installments) > 0 {
			if err := s.dealRepo.CreateInstallments(ctx, installments); err != nil {
				return customError.WrapDatabaseError(err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	deal.Installments = installments
	return deal, nil
}

// AddInstallments appends installments to an existing deal and returns the
// refreshed deal.
func (s *LedgerService) AddInstallments(ctx context.Context, dealID int64, request *domain.AddInstallmentsRequest) (*domain.Deal, error) {
	deal, err := s.dealRepo.GetByDealID(ctx, dealID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, customError.WrapDealNotFound(dealID)
		}
		return nil, customError.WrapDatabaseError(err)
	}

	installments, err := buildInstallments(request.Installments)
	if err != nil {
		return nil, err
	}
	for _, inst := range installments {
		inst.DealID = deal.DealID
	}

	if err := s.dealRepo.CreateInstallments(ctx, installments); err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	return s.GetDealWithAccrual(ctx, dealID, s.Today())
}

func buildInstallments(requests []domain.CreateInstallmentRequest) ([]*domain.Installment, error) {
	installments := make([]*domain.Installment, 0, len(requests))
	for _, instReq := range requests {
		dueDate, err := utils.ParseDate(instReq.DueDate)
		if err != nil {
			return nil, customError.WrapValidationError("due_date must be YYYY-MM-DD", customError.ErrInvalidDate)
		}

		installments = append(installments, &domain.Installment{
			ID:            uuid.New(),
			DueDate:       dueDate,
			Amount:        instReq.Amount,
			PendingAmount: instReq.Amount,
		})
	}
	return installments, nil
}

// GetDealWithAccrual loads a deal with its installments and payments, and
// refreshes the accrued-interest projection as of the given date.
func (s *LedgerService) GetDealWithAccrual(ctx context.Context, dealID int64, asOf time.Time) (*domain.Deal, error) {
	deal, err := s.dealRepo.GetByDealID(ctx, dealID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, customError.WrapDealNotFound(dealID)
		}
		return nil, customError.WrapDatabaseError(err)
	}

	installments, err := s.dealRepo.GetInstallments(ctx, dealID)
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	payments, err := s.paymentRepo.GetByDealID(ctx, dealID)
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	deal.Installments = installments
	deal.Payments = payments
	deal.AccruedInterest = AccruedInterest(deal, installments, asOf, s.bufferDays())
	s.cacheAccrual(ctx, dealID, deal.AccruedInterest)

	return deal, nil
}

// GetLedger builds the combined installment/payment ledger of a deal, sorted
// by date ascending with a running balance seeded at the deal total.
func (s *LedgerService) GetLedger(ctx context.Context, dealID int64) (*domain.LedgerResponse, error) {
	deal, err := s.GetDealWithAccrual(ctx, dealID, s.Today())
	if err != nil {
		return nil, err
	}

	entries := make([]*domain.LedgerEntry, 0, len(deal.Installments)+len(deal.Payments))

	for idx, inst := range deal.Installments {
		pending := inst.PendingAmount
		entries = append(entries, &domain.LedgerEntry{
			ID:          inst.ID,
			Date:        utils.FormatDate(inst.DueDate),
			Type:        domain.LedgerEntryInstallment,
			Description: fmt.Sprintf("Installment #%d - Due", idx+1),
			Amount:      inst.Amount,
			Pending:     &pending,
		})
	}

	for _, payment := range deal.Payments {
		remark := payment.Remark
		if remark == "" {
			remark = "No remark"
		}
		entries = append(entries, &domain.LedgerEntry{
			ID:          payment.ID,
			Date:        utils.FormatDate(payment.PaymentDate),
			Type:        domain.LedgerEntryPayment,
			Description: fmt.Sprintf("Payment - %s", remark),
			Amount:      payment.Amount.Neg(),
		})
	}

	// Stable keeps installments ahead of payments on equal dates.
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Date < entries[j].Date
	})

	balance := deal.TotalAmount
	for _, entry := range entries {
		switch entry.Type {
		case domain.LedgerEntryInstallment:
			balance = *entry.Pending
		case domain.LedgerEntryPayment:
			balance = balance.Sub(entry.Amount.Abs())
		}
		entry.Balance = balance
	}

	return &domain.LedgerResponse{Deal: deal, Ledger: entries}, nil
}

// CreateDealer registers a dealer.
func (s *LedgerService) CreateDealer(ctx context.Context, request *domain.CreateDealerRequest) (*domain.Dealer, error) {
	dealer := &domain.Dealer{
		ID:   uuid.New(),
		Name: request.Name,
	}

	if err := s.dealerRepo.Create(ctx, dealer); err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	return dealer, nil
}

// GetDealer retrieves a dealer by id.
func (s *LedgerService) GetDealer(ctx context.Context, id uuid.UUID) (*domain.Dealer, error) {
	dealer, err := s.dealerRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, customError.WrapDealerNotFound(id.String())
		}
		return nil, customError.WrapDatabaseError(err)
	}
	return dealer, nil
}
