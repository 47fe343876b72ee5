package utils

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2024-03-15")
	assert.NoError(t, err)
	assert.Equal(t, time.Date(2024, time.March, 15, 0, 0, 0, 0, time.UTC), d)

	_, err = ParseDate("15-03-2024")
	assert.Error(t, err)

	_, err = ParseDate("not a date")
	assert.Error(t, err)
}

func TestFormatDate_RoundTrip(t *testing.T) {
	d, err := ParseDate("2024-12-31")
	assert.NoError(t, err)
	assert.Equal(t, "2024-12-31", FormatDate(d))
}

func TestDateOf_StripsTimeAndZone(t *testing.T) {
	ist, err := time.LoadLocation("Asia/Kolkata")
	assert.NoError(t, err)

	stamped := time.Date(2024, time.March, 15, 23, 59, 59, 0, ist)
	assert.Equal(t, time.Date(2024, time.March, 15, 0, 0, 0, 0, time.UTC), DateOf(stamped))
}

func TestFormatAmount(t *testing.T) {
	assert.Equal(t, "100.00", FormatAmount(decimal.NewFromInt(100)))
	assert.Equal(t, "0.27", FormatAmount(decimal.NewFromFloat(0.274)))
	assert.Equal(t, "50.96", FormatAmount(decimal.NewFromFloat(50.9589)))
}

func TestDecimalFromString(t *testing.T) {
	d, err := DecimalFromString("123.45")
	assert.NoError(t, err)
	assert.True(t, d.Equal(decimal.NewFromFloat(123.45)))

	_, err = DecimalFromString("abc")
	assert.Error(t, err)
}
