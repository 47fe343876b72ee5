package service

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/segyhp/deal-ledger/internal/domain"
	"github.com/segyhp/deal-ledger/pkg/interest"
	"github.com/segyhp/deal-ledger/tests/mocks"
)

func TestAccruedInterest_UsesDealDateWhenNeverPaid(t *testing.T) {
	dealDate := civilDate(2024, time.January, 1)
	deal := &domain.Deal{
		DealID:       1,
		InterestRate: decimal.NewFromInt(10),
		DealDate:     dealDate,
	}
	inst := &domain.Installment{
		ID:            uuid.New(),
		DueDate:       civilDate(2024, time.January, 31),
		Amount:        decimal.NewFromInt(1000),
		PendingAmount: decimal.NewFromInt(1000),
	}

	asOf := civilDate(2024, time.January, 15)
	got := AccruedInterest(deal, []*domain.Installment{inst}, asOf, interest.DefaultBufferDays)

	// 15 inclusive days from the deal date.
	assert.True(t, got.Equal(interest.Simple(decimal.NewFromInt(1000), decimal.NewFromInt(10), 15)))
}

func TestAccruedInterest_LastPaymentDateShiftsBase(t *testing.T) {
	dealDate := civilDate(2024, time.January, 1)
	lastPaid := civilDate(2024, time.January, 10)

	deal := &domain.Deal{
		DealID:       1,
		InterestRate: decimal.NewFromInt(10),
		DealDate:     dealDate,
	}
	inst := &domain.Installment{
		ID:              uuid.New(),
		DueDate:         civilDate(2024, time.January, 31),
		Amount:          decimal.NewFromInt(1000),
		PendingAmount:   decimal.NewFromInt(400),
		LastPaymentDate: &lastPaid,
	}

	asOf := civilDate(2024, time.January, 15)
	got := AccruedInterest(deal, []*domain.Installment{inst}, asOf, interest.DefaultBufferDays)

	// 6 inclusive days from the last payment, on the remaining 400.
	assert.True(t, got.Equal(interest.Simple(decimal.NewFromInt(400), decimal.NewFromInt(10), 6)))
}

func TestAccruedInterest_SkipsSettledAndZeroRate(t *testing.T) {
	dealDate := civilDate(2024, time.January, 1)
	settled := &domain.Installment{
		ID:            uuid.New(),
		DueDate:       civilDate(2024, time.January, 31),
		Amount:        decimal.NewFromInt(1000),
		PendingAmount: decimal.Zero,
	}

	withRate := &domain.Deal{DealID: 1, InterestRate: decimal.NewFromInt(10), DealDate: dealDate}
	got := AccruedInterest(withRate, []*domain.Installment{settled}, civilDate(2024, time.March, 1), interest.DefaultBufferDays)
	assert.True(t, got.IsZero())

	unpaid := &domain.Installment{
		ID:            uuid.New(),
		DueDate:       civilDate(2024, time.January, 31),
		Amount:        decimal.NewFromInt(1000),
		PendingAmount: decimal.NewFromInt(1000),
	}
	zeroRate := &domain.Deal{DealID: 2, InterestRate: decimal.Zero, DealDate: dealDate}
	got = AccruedInterest(zeroRate, []*domain.Installment{unpaid}, civilDate(2024, time.March, 1), interest.DefaultBufferDays)
	assert.True(t, got.IsZero())
}

func TestAccruedInterest_SumsAcrossInstallments(t *testing.T) {
	dealDate := civilDate(2024, time.January, 1)
	deal := &domain.Deal{DealID: 1, InterestRate: decimal.NewFromInt(12), DealDate: dealDate}

	first := &domain.Installment{
		ID:            uuid.New(),
		DueDate:       civilDate(2024, time.February, 1),
		Amount:        decimal.NewFromInt(1000),
		PendingAmount: decimal.NewFromInt(1000),
	}
	second := &domain.Installment{
		ID:            uuid.New(),
		DueDate:       civilDate(2024, time.March, 1),
		Amount:        decimal.NewFromInt(2000),
		PendingAmount: decimal.NewFromInt(500),
	}

	asOf := civilDate(2024, time.January, 20)
	got := AccruedInterest(deal, []*domain.Installment{first, second}, asOf, interest.DefaultBufferDays)

	days := 20 // inclusive from Jan 1 to Jan 20
	expected := interest.Simple(decimal.NewFromInt(1000), decimal.NewFromInt(12), days).
		Add(interest.Simple(decimal.NewFromInt(500), decimal.NewFromInt(12), days))
	assert.True(t, got.Equal(expected))
}

func TestUpdateAccruedInterest_RefreshesCache(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()

	dealRepo := &mocks.MockDealRepository{}
	service := &LedgerService{
		dealRepo: dealRepo,
		redis:    client,
	}

	dealDate := civilDate(2024, time.January, 1)
	deal := &domain.Deal{
		DealID:       21,
		InterestRate: decimal.NewFromInt(10),
		DealDate:     dealDate,
		Status:       domain.DealStatusActive,
	}
	inst := &domain.Installment{
		ID:            uuid.New(),
		DueDate:       civilDate(2024, time.January, 31),
		Amount:        decimal.NewFromInt(1000),
		PendingAmount: decimal.NewFromInt(1000),
	}

	dealRepo.On("GetByDealID", mock.Anything, int64(21)).Return(deal, nil)
	dealRepo.On("GetUnpaidInstallments", mock.Anything, int64(21)).
		Return([]*domain.Installment{inst}, nil)

	total, err := service.UpdateAccruedInterest(context.Background(), 21, civilDate(2024, time.January, 15))

	assert.NoError(t, err)
	expected := interest.Simple(decimal.NewFromInt(1000), decimal.NewFromInt(10), 15)
	assert.True(t, total.Equal(expected))

	cached, err := mr.Get("deal:accrual:21")
	assert.NoError(t, err)
	assert.Equal(t, expected.StringFixed(2), cached)

	fromCache, ok := service.CachedAccruedInterest(context.Background(), 21)
	assert.True(t, ok)
	assert.Equal(t, expected.StringFixed(2), fromCache.StringFixed(2))
}

func TestCachedAccruedInterest_MissAndNilClient(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()

	withRedis := &LedgerService{redis: client}
	_, ok := withRedis.CachedAccruedInterest(context.Background(), 999)
	assert.False(t, ok)

	withoutRedis := &LedgerService{}
	_, ok = withoutRedis.CachedAccruedInterest(context.Background(), 999)
	assert.False(t, ok)
}
