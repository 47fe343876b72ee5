package interest

import (
	"time"

	"github.com/shopspring/decimal"
)

// DefaultBufferDays is the grace window after an installment's due date
// during which no additional interest accrues.
const DefaultBufferDays = 10

// 365 days × 100 (rate is a percentage).
var yearBasis = decimal.NewFromInt(36500)

// Simple computes simple daily interest: principal × rate × days / (365 × 100).
// Rate is an annual percentage. Returns zero when the rate is not positive or
// the day count is not positive.
func Simple(principal, ratePercent decimal.Decimal, days int) decimal.Decimal {
	if days <= 0 || ratePercent.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}

	return principal.
		Mul(ratePercent).
		Mul(decimal.NewFromInt(int64(days))).
		Div(yearBasis)
}

// DaysInclusive counts the calendar days from 'from' to 'to' counting both
// endpoints, so DaysInclusive(d, d) == 1. Inputs are treated as civil dates;
// a 'to' before 'from' yields a non-positive count.
func DaysInclusive(from, to time.Time) int {
	from = dateOnly(from)
	to = dateOnly(to)
	return int(to.Sub(from).Hours()/24) + 1
}

// Accrue computes the interest owed on amount as of asOf, where the amount has
// been accruing since base against an obligation due on due.
//
// The buffer window holds interest flat rather than erasing it:
//   - asOf on or before due: interest from base to asOf.
//   - asOf inside the buffer: frozen at the interest from base to due.
//   - asOf past the buffer: interest to due, plus a fixed penalty equal to
//     bufferDays days of interest, plus interest resuming from the buffer's
//     end to asOf.
//
// Every sub-range counts days inclusive of both endpoints.
func Accrue(amount, ratePercent decimal.Decimal, base, due, asOf time.Time, bufferDays int) decimal.Decimal {
	if ratePercent.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}

	base = dateOnly(base)
	due = dateOnly(due)
	asOf = dateOnly(asOf)

	if !asOf.After(due) {
		return Simple(amount, ratePercent, DaysInclusive(base, asOf))
	}

	bufferEnd := due.AddDate(0, 0, bufferDays)
	toDue := Simple(amount, ratePercent, DaysInclusive(base, due))

	if !asOf.After(bufferEnd) {
		return toDue
	}

	bufferPenalty := Simple(amount, ratePercent, bufferDays)
	afterBuffer := Simple(amount, ratePercent, DaysInclusive(bufferEnd, asOf))

	return toDue.Add(bufferPenalty).Add(afterBuffer)
}

func dateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
