package interest

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestSimple(t *testing.T) {
	tests := []struct {
		name      string
		principal decimal.Decimal
		rate      decimal.Decimal
		days      int
		expected  decimal.Decimal
	}{
		{
			name:      "zero days yields zero",
			principal: decimal.NewFromInt(1000),
			rate:      decimal.NewFromInt(10),
			days:      0,
			expected:  decimal.Zero,
		},
		{
			name:      "full year at 10 percent",
			principal: decimal.NewFromInt(1000),
			rate:      decimal.NewFromInt(10),
			days:      365,
			expected:  decimal.NewFromInt(100),
		},
		{
			name:      "zero rate yields zero",
			principal: decimal.NewFromInt(1000),
			rate:      decimal.Zero,
			days:      100,
			expected:  decimal.Zero,
		},
		{
			name:      "negative rate yields zero",
			principal: decimal.NewFromInt(1000),
			rate:      decimal.NewFromInt(-5),
			days:      100,
			expected:  decimal.Zero,
		},
		{
			name:      "negative days yields zero",
			principal: decimal.NewFromInt(1000),
			rate:      decimal.NewFromInt(10),
			days:      -3,
			expected:  decimal.Zero,
		},
		{
			name:      "single day",
			principal: decimal.NewFromInt(1000),
			rate:      decimal.NewFromInt(10),
			days:      1,
			// 1000 × 10 × 1 / 36500
			expected: decimal.NewFromInt(10000).Div(decimal.NewFromInt(36500)),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Simple(tt.principal, tt.rate, tt.days)
			assert.True(t, got.Equal(tt.expected), "got %s, want %s", got, tt.expected)
		})
	}
}

func TestSimple_SingleDayRoundsToExpectedDisplay(t *testing.T) {
	got := Simple(decimal.NewFromInt(1000), decimal.NewFromInt(10), 1)
	assert.Equal(t, "0.27", got.StringFixed(2))
}

func TestDaysInclusive(t *testing.T) {
	d := date(2024, time.March, 10)

	assert.Equal(t, 1, DaysInclusive(d, d))
	assert.Equal(t, 5, DaysInclusive(d, d.AddDate(0, 0, 4)))
	assert.Equal(t, 31, DaysInclusive(date(2024, time.January, 1), date(2024, time.January, 31)))

	// Reversed range counts non-positive.
	assert.LessOrEqual(t, DaysInclusive(d, d.AddDate(0, 0, -2)), 0)
}

func TestDaysInclusive_IgnoresTimeOfDay(t *testing.T) {
	from := time.Date(2024, time.March, 10, 23, 45, 0, 0, time.UTC)
	to := time.Date(2024, time.March, 11, 0, 15, 0, 0, time.UTC)
	assert.Equal(t, 2, DaysInclusive(from, to))
}

func TestAccrue_OnOrBeforeDue(t *testing.T) {
	amount := decimal.NewFromInt(1000)
	rate := decimal.NewFromInt(10)
	due := date(2024, time.June, 1)

	// Base equal to due, charged on the due date itself: one inclusive day.
	got := Accrue(amount, rate, due, due, due, DefaultBufferDays)
	assert.Equal(t, "0.27", got.StringFixed(2))

	// Accruing since 10 days before due, charged at due: 11 inclusive days.
	base := due.AddDate(0, 0, -10)
	got = Accrue(amount, rate, base, due, due, DefaultBufferDays)
	assert.True(t, got.Equal(Simple(amount, rate, 11)))
}

func TestAccrue_InsideBufferFreezesAtDue(t *testing.T) {
	amount := decimal.NewFromInt(1000)
	rate := decimal.NewFromInt(10)
	due := date(2024, time.June, 1)

	atDue := Accrue(amount, rate, due, due, due, DefaultBufferDays)

	for offset := 1; offset <= DefaultBufferDays; offset++ {
		got := Accrue(amount, rate, due, due, due.AddDate(0, 0, offset), DefaultBufferDays)
		assert.True(t, got.Equal(atDue), "day +%d should stay frozen at %s, got %s", offset, atDue, got)
	}
}

func TestAccrue_PastBufferAddsPenaltyAndResumes(t *testing.T) {
	amount := decimal.NewFromInt(1000)
	rate := decimal.NewFromInt(10)
	due := date(2024, time.June, 1)
	asOf := due.AddDate(0, 0, 15)

	// Interest to due (1 day), the 10 buffer days as a flat penalty, then
	// 6 inclusive days from the buffer's end to the charge date.
	expected := Simple(amount, rate, 1).
		Add(Simple(amount, rate, DefaultBufferDays)).
		Add(Simple(amount, rate, 6))

	got := Accrue(amount, rate, due, due, asOf, DefaultBufferDays)
	assert.True(t, got.Equal(expected), "got %s, want %s", got, expected)
}

func TestAccrue_ZeroRate(t *testing.T) {
	due := date(2024, time.June, 1)
	got := Accrue(decimal.NewFromInt(1000), decimal.Zero, due, due, due.AddDate(0, 0, 20), DefaultBufferDays)
	assert.True(t, got.IsZero())
}

func TestAccrue_PartialPaymentTenDaysLate(t *testing.T) {
	// 5000 pending, 12% annual, accruing since deal start, due 30 days
	// later, charged 10 days past due: frozen at 31 inclusive days.
	dealDate := date(2024, time.January, 1)
	due := dealDate.AddDate(0, 0, 30)
	asOf := dealDate.AddDate(0, 0, 40)

	amount := decimal.NewFromInt(5000)
	rate := decimal.NewFromInt(12)

	got := Accrue(amount, rate, dealDate, due, asOf, DefaultBufferDays)
	assert.True(t, got.Equal(Simple(amount, rate, 31)))
	assert.Equal(t, "50.96", got.StringFixed(2))
}
