package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/segyhp/deal-ledger/internal/domain"
	customError "github.com/segyhp/deal-ledger/pkg/errors"
	"github.com/segyhp/deal-ledger/pkg/interest"
	"github.com/segyhp/deal-ledger/pkg/logger"
	"github.com/segyhp/deal-ledger/pkg/utils"
)

// AllocatePayment applies one payment to one deal's unpaid installments,
// oldest due date first. The whole allocation runs in a single transaction
// with the deal row locked, so two payments can never race on the same
// pending amounts. Leftover amount is reported, never stored.
func (s *LedgerService) AllocatePayment(ctx context.Context, dealID int64, amount decimal.Decimal, paymentDate time.Time) (*domain.AllocationResult, error) {
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, customError.WrapInvalidAmount(utils.FormatAmount(amount))
	}
	paymentDate = utils.DateOf(paymentDate)

	var result *domain.AllocationResult
	err := s.txManager.WithinTx(ctx, func(ctx context.Context) error {
		deal, err := s.dealRepo.GetByDealIDForUpdate(ctx, dealID)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return customError.WrapDealNotFound(dealID)
			}
			return customError.WrapDatabaseError(err)
		}

		installments, err := s.dealRepo.GetUnpaidInstallmentsForUpdate(ctx, dealID)
		if err != nil {
			return customError.WrapDatabaseError(err)
		}

		payment := &domain.Payment{
			ID:          uuid.New(),
			DealID:      dealID,
			PaymentDate: paymentDate,
			Amount:      amount,
			PaymentType: domain.PaymentTypeInstallment,
		}

		outcome := s.allocateToInstallments(deal, installments, amount, paymentDate, payment.ID)
		payment.Remark = interestRemark(outcome.totalInterest)

		closed, err := s.persistAllocation(ctx, deal, payment, outcome)
		if err != nil {
			return err
		}

		result = &domain.AllocationResult{
			PaymentID:             payment.ID,
			DealID:                dealID,
			Allocations:           outcome.details,
			AllocatedAmount:       outcome.allocated,
			TotalInterestRealized: outcome.totalInterest,
			RemainingAmount:       outcome.remaining,
			DealClosed:            closed,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	// Refresh the projection once the allocation is committed.
	if _, err := s.UpdateAccruedInterest(ctx, dealID, s.Today()); err != nil {
		logger.Warn("accrual refresh after allocation failed", "deal_id", dealID, "error", err)
	}

	return result, nil
}

// AllocatePaymentCrossDeal spreads one payment across all active deals of a
// dealer+customer pair, oldest deal first. Each deal's slice commits in its
// own transaction; a deal that receives nothing gets no payment record.
func (s *LedgerService) AllocatePaymentCrossDeal(ctx context.Context, dealerID uuid.UUID, customerName string, amount decimal.Decimal, paymentDate time.Time) (*domain.CrossDealAllocationResult, error) {
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, customError.WrapInvalidAmount(utils.FormatAmount(amount))
	}
	paymentDate = utils.DateOf(paymentDate)

	deals, err := s.dealRepo.GetActiveByDealerAndCustomer(ctx, dealerID, customerName)
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}
	if len(deals) == 0 {
		return nil, customError.WrapNoActiveDeals(dealerID.String(), customerName)
	}

	result := &domain.CrossDealAllocationResult{
		Deals:                 []*domain.AllocationResult{},
		TotalAllocated:        decimal.Zero,
		TotalInterestRealized: decimal.Zero,
	}

	remaining := amount
	for _, deal := range deals {
		if remaining.LessThanOrEqual(decimal.Zero) {
			break
		}

		summary, err := s.allocateToDeal(ctx, deal.DealID, remaining, paymentDate)
		if err != nil {
			return nil, err
		}
		if summary == nil {
			// Nothing unpaid on this deal; move on.
			continue
		}

		remaining = summary.RemainingAmount
		result.Deals = append(result.Deals, summary)
		result.TotalAllocated = result.TotalAllocated.Add(summary.AllocatedAmount)
		result.TotalInterestRealized = result.TotalInterestRealized.Add(summary.TotalInterestRealized)
	}

	result.RemainingAmount = remaining
	return result, nil
}

// allocateToDeal runs one deal's slice of a cross-deal payment in its own
// transaction. Returns nil when the deal received no allocation, in which
// case no payment record is persisted.
func (s *LedgerService) allocateToDeal(ctx context.Context, dealID int64, amount decimal.Decimal, paymentDate time.Time) (*domain.AllocationResult, error) {
	var summary *domain.AllocationResult
	err := s.txManager.WithinTx(ctx, func(ctx context.Context) error {
		deal, err := s.dealRepo.GetByDealIDForUpdate(ctx, dealID)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return customError.WrapDealNotFound(dealID)
			}
			return customError.WrapDatabaseError(err)
		}
		if deal.Status != domain.DealStatusActive {
			return nil
		}

		installments, err := s.dealRepo.GetUnpaidInstallmentsForUpdate(ctx, dealID)
		if err != nil {
			return customError.WrapDatabaseError(err)
		}
		if len(installments) == 0 {
			return nil
		}

		paymentID := uuid.New()
		outcome := s.allocateToInstallments(deal, installments, amount, paymentDate, paymentID)
		if outcome.allocated.LessThanOrEqual(decimal.Zero) {
			return nil
		}

		// The payment amount is what this deal actually absorbed.
		payment := &domain.Payment{
			ID:          paymentID,
			DealID:      dealID,
			PaymentDate: paymentDate,
			Amount:      outcome.allocated,
			PaymentType: domain.PaymentTypeInstallment,
			Remark:      interestRemark(outcome.totalInterest),
		}

		closed, err := s.persistAllocation(ctx, deal, payment, outcome)
		if err != nil {
			return err
		}

		summary = &domain.AllocationResult{
			PaymentID:             payment.ID,
			DealID:                dealID,
			Allocations:           outcome.details,
			AllocatedAmount:       outcome.allocated,
			TotalInterestRealized: outcome.totalInterest,
			RemainingAmount:       outcome.remaining,
			DealClosed:            closed,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if summary != nil {
		if _, err := s.UpdateAccruedInterest(ctx, dealID, s.Today()); err != nil {
			logger.Warn("accrual refresh after allocation failed", "deal_id", dealID, "error", err)
		}
	}

	return summary, nil
}

type allocationOutcome struct {
	allocations   []*domain.PaymentAllocation
	details       []domain.AllocationDetail
	touched       []*domain.Installment
	allocated     decimal.Decimal
	totalInterest decimal.Decimal
	remaining     decimal.Decimal
}

// allocateToInstallments walks installments in order, allocating
// min(remaining, pending) per installment and realizing the interest baked
// into each slice. Mutates the installments' pending amounts in memory; the
// caller persists.
func (s *LedgerService) allocateToInstallments(deal *domain.Deal, installments []*domain.Installment, amount decimal.Decimal, paymentDate time.Time, paymentID uuid.UUID) *allocationOutcome {
	outcome := &allocationOutcome{
		details:       []domain.AllocationDetail{},
		allocated:     decimal.Zero,
		totalInterest: decimal.Zero,
		remaining:     amount,
	}

	for _, inst := range installments {
		if outcome.remaining.LessThanOrEqual(decimal.Zero) {
			break
		}
		if !inst.Unpaid() {
			continue
		}

		slice := decimal.Min(outcome.remaining, inst.PendingAmount)
		realized := interest.Accrue(
			slice,
			deal.InterestRate,
			inst.InterestBase(deal.DealDate),
			inst.DueDate,
			paymentDate,
			s.bufferDays(),
		)

		inst.PendingAmount = inst.PendingAmount.Sub(slice)

		outcome.allocations = append(outcome.allocations, &domain.PaymentAllocation{
			ID:              uuid.New(),
			PaymentID:       paymentID,
			InstallmentID:   inst.ID,
			AllocatedAmount: slice,
			InterestAmount:  realized,
		})
		outcome.details = append(outcome.details, domain.AllocationDetail{
			InstallmentID:    inst.ID,
			AllocatedAmount:  slice,
			InterestRealized: realized,
		})
		outcome.touched = append(outcome.touched, inst)
		outcome.allocated = outcome.allocated.Add(slice)
		outcome.totalInterest = outcome.totalInterest.Add(realized)
		outcome.remaining = outcome.remaining.Sub(slice)
	}

	return outcome
}

// persistAllocation writes the payment, its allocation rows and the new
// pending amounts, then runs the closure check. Must be called inside the
// allocation transaction.
func (s *LedgerService) persistAllocation(ctx context.Context, deal *domain.Deal, payment *domain.Payment, outcome *allocationOutcome) (bool, error) {
	if err := s.paymentRepo.Create(ctx, payment); err != nil {
		return false, customError.WrapDatabaseError(err)
	}

	if len(outcome.allocations) > 0 {
		if err := s.paymentRepo.CreateAllocations(ctx, outcome.allocations); err != nil {
			return false, customError.WrapDatabaseError(err)
		}
	}

	for _, inst := range outcome.touched {
		if err := s.dealRepo.UpdateInstallmentPending(ctx, inst.ID, inst.PendingAmount); err != nil {
			return false, customError.WrapDatabaseError(err)
		}
	}

	return s.closeIfFullyPaid(ctx, deal)
}

// closeIfFullyPaid flips a deal to closed iff every installment is settled.
// A deal with no installments at all is never auto-closed. Idempotent.
func (s *LedgerService) closeIfFullyPaid(ctx context.Context, deal *domain.Deal) (bool, error) {
	if deal.Status == domain.DealStatusClosed {
		return false, nil
	}

	installments, err := s.dealRepo.GetInstallments(ctx, deal.DealID)
	if err != nil {
		return false, customError.WrapDatabaseError(err)
	}
	if len(installments) == 0 {
		return false, nil
	}

	for _, inst := range installments {
		if inst.Unpaid() {
			return false, nil
		}
	}

	if err := s.dealRepo.UpdateStatus(ctx, deal.DealID, domain.DealStatusClosed); err != nil {
		return false, customError.WrapDatabaseError(err)
	}
	deal.Status = domain.DealStatusClosed

	return true, nil
}

func interestRemark(totalInterest decimal.Decimal) string {
	if totalInterest.LessThanOrEqual(decimal.Zero) {
		return ""
	}
	return fmt.Sprintf("Interest realized: %s", utils.FormatAmount(totalInterest))
}
