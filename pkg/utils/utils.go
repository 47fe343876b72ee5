package utils

import (
	"time"

	"github.com/shopspring/decimal"
)

// DateLayout is the wire format for all calendar dates.
const DateLayout = "2006-01-02"

// ParseDate parses a YYYY-MM-DD string into a civil date (midnight UTC).
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, err
	}
	return DateOf(t), nil
}

// FormatDate renders a civil date as YYYY-MM-DD.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// DateOf strips the time-of-day component, normalizing to midnight UTC so
// date arithmetic never crosses DST boundaries.
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Today returns the current civil date as observed in loc. All "now"
// references in the ledger go through a single configured timezone so the
// result does not depend on the host's local time.
func Today(loc *time.Location) time.Time {
	return DateOf(time.Now().In(loc))
}

// FormatAmount renders a monetary amount with 2 fractional digits.
func FormatAmount(d decimal.Decimal) string {
	return d.StringFixed(2)
}

// DecimalFromString converts string to decimal.Decimal
func DecimalFromString(s string) (decimal.Decimal, error) {
	return decimal.NewFromString(s)
}
