package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/segyhp/deal-ledger/internal/domain"
	customError "github.com/segyhp/deal-ledger/pkg/errors"
	"github.com/segyhp/deal-ledger/pkg/interest"
	"github.com/segyhp/deal-ledger/pkg/logger"
	"github.com/segyhp/deal-ledger/pkg/utils"
)

const accrualCacheTTL = time.Hour

// AccruedInterest sums the interest accrued as of asOf across a deal's unpaid
// installments. Each installment accrues on its pending balance from its
// interest base (last payment against it, else the deal date) against its own
// due date. Pure projection over already-fetched rows; nothing is persisted.
func AccruedInterest(deal *domain.Deal, installments []*domain.Installment, asOf time.Time, bufferDays int) decimal.Decimal {
	if deal.InterestRate.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}

	total := decimal.Zero
	for _, inst := range installments {
		if !inst.Unpaid() {
			continue
		}
		total = total.Add(interest.Accrue(
			inst.PendingAmount,
			deal.InterestRate,
			inst.InterestBase(deal.DealDate),
			inst.DueDate,
			asOf,
			bufferDays,
		))
	}

	return total
}

// UpdateAccruedInterest recomputes the accrued-interest projection for a deal
// as of the given date and refreshes the cache. Returns the total.
func (s *LedgerService) UpdateAccruedInterest(ctx context.Context, dealID int64, asOf time.Time) (decimal.Decimal, error) {
	deal, err := s.dealRepo.GetByDealID(ctx, dealID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return decimal.Zero, customError.WrapDealNotFound(dealID)
		}
		return decimal.Zero, customError.WrapDatabaseError(err)
	}

	installments, err := s.dealRepo.GetUnpaidInstallments(ctx, dealID)
	if err != nil {
		return decimal.Zero, customError.WrapDatabaseError(err)
	}

	total := AccruedInterest(deal, installments, asOf, s.bufferDays())
	s.cacheAccrual(ctx, dealID, total)

	return total, nil
}

func accrualCacheKey(dealID int64) string {
	return fmt.Sprintf("deal:accrual:%d", dealID)
}

// cacheAccrual stores the projection for read paths; cache trouble degrades
// to recompute and is never surfaced to the caller.
func (s *LedgerService) cacheAccrual(ctx context.Context, dealID int64, total decimal.Decimal) {
	if s.redis == nil {
		return
	}

	err := s.redis.Set(ctx, accrualCacheKey(dealID), utils.FormatAmount(total), accrualCacheTTL).Err()
	if err != nil {
		logger.Warn("caching accrued interest failed", "deal_id", dealID, "error", err)
	}
}

// CachedAccruedInterest returns the cached projection when present.
func (s *LedgerService) CachedAccruedInterest(ctx context.Context, dealID int64) (decimal.Decimal, bool) {
	if s.redis == nil {
		return decimal.Zero, false
	}

	val, err := s.redis.Get(ctx, accrualCacheKey(dealID)).Result()
	if err != nil {
		return decimal.Zero, false
	}

	total, err := utils.DecimalFromString(val)
	if err != nil {
		return decimal.Zero, false
	}
	return total, true
}
