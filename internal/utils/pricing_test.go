package utils

import (
	"testing"
	"time"

	"kostpay-backend/internal/domain"

	"github.com/stretchr/testify/assert"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestCheckOutDate(t *testing.T) {
	checkIn := date(2026, time.March, 10)

	cases := []struct {
		lease    domain.LeaseType
		expected time.Time
	}{
		{domain.LeaseTypeDaily, date(2026, time.March, 11)},
		{domain.LeaseTypeWeekly, date(2026, time.March, 17)},
		{domain.LeaseTypeMonthly, date(2026, time.April, 10)},
		{domain.LeaseTypeQuarterly, date(2026, time.June, 10)},
		{domain.LeaseTypeYearly, date(2027, time.March, 10)},
	}
	for _, c := range cases {
		t.Run(string(c.lease), func(t *testing.T) {
			out, err := CheckOutDate(checkIn, c.lease)
			assert.NoError(t, err)
			assert.Equal(t, c.expected, out)
		})
	}

	t.Run("MonthEndNormalization", func(t *testing.T) {
		// AddDate semantics: Jan 31 + 1 month normalizes past February.
		out, err := CheckOutDate(date(2026, time.January, 31), domain.LeaseTypeMonthly)
		assert.NoError(t, err)
		assert.Equal(t, date(2026, time.March, 3), out)
	})

	t.Run("UnknownLeaseType", func(t *testing.T) {
		_, err := CheckOutDate(checkIn, "HOURLY")
		assert.ErrorIs(t, err, domain.ErrInvalidLeaseParameters)
	})
}

func TestCalculatePrice(t *testing.T) {
	room := &domain.Room{
		ID:           10,
		MonthlyPrice: 1_000_000,
		DailyPrice:   50_000,
	}
	checkIn := date(2026, time.March, 10)

	t.Run("MonthlyTotal", func(t *testing.T) {
		quote, err := CalculatePrice(room, domain.LeaseTypeMonthly, checkIn)
		assert.NoError(t, err)
		assert.Equal(t, int64(1_000_000), quote.TotalAmount)
		assert.Equal(t, date(2026, time.April, 10), quote.CheckOutDate)
		assert.Nil(t, quote.DepositAmount)
	})

	t.Run("PercentDeposit", func(t *testing.T) {
		r := *room
		r.DepositPolicy = domain.DepositPolicyPercent
		r.DepositValue = 30

		quote, err := CalculatePrice(&r, domain.LeaseTypeMonthly, checkIn)
		assert.NoError(t, err)
		if assert.NotNil(t, quote.DepositAmount) {
			assert.Equal(t, int64(300_000), *quote.DepositAmount)
		}
	})

	t.Run("FixedDeposit", func(t *testing.T) {
		r := *room
		r.DepositPolicy = domain.DepositPolicyFixed
		r.DepositValue = 250_000

		quote, err := CalculatePrice(&r, domain.LeaseTypeMonthly, checkIn)
		assert.NoError(t, err)
		if assert.NotNil(t, quote.DepositAmount) {
			assert.Equal(t, int64(250_000), *quote.DepositAmount)
		}
	})

	t.Run("DepositAtOrAboveTotalDropped", func(t *testing.T) {
		r := *room
		r.DepositPolicy = domain.DepositPolicyFixed
		r.DepositValue = 1_000_000

		quote, err := CalculatePrice(&r, domain.LeaseTypeMonthly, checkIn)
		assert.NoError(t, err)
		assert.Nil(t, quote.DepositAmount)
	})

	t.Run("ZeroDepositDropped", func(t *testing.T) {
		r := *room
		r.DepositPolicy = domain.DepositPolicyPercent
		r.DepositValue = 0

		quote, err := CalculatePrice(&r, domain.LeaseTypeMonthly, checkIn)
		assert.NoError(t, err)
		assert.Nil(t, quote.DepositAmount)
	})

	t.Run("NoPriceForLeaseType", func(t *testing.T) {
		_, err := CalculatePrice(room, domain.LeaseTypeYearly, checkIn)
		assert.ErrorIs(t, err, domain.ErrInvalidLeaseParameters)
	})
}

func TestApplyDiscount(t *testing.T) {
	t.Run("InRange", func(t *testing.T) {
		got, err := ApplyDiscount(1_000_000, 100_000)
		assert.NoError(t, err)
		assert.Equal(t, int64(900_000), got)
	})

	t.Run("FullDiscount", func(t *testing.T) {
		got, err := ApplyDiscount(1_000_000, 1_000_000)
		assert.NoError(t, err)
		assert.Equal(t, int64(0), got)
	})

	t.Run("Negative", func(t *testing.T) {
		_, err := ApplyDiscount(1_000_000, -1)
		assert.ErrorIs(t, err, domain.ErrInvalidLeaseParameters)
	})

	t.Run("ExceedsTotal", func(t *testing.T) {
		_, err := ApplyDiscount(1_000_000, 1_000_001)
		assert.ErrorIs(t, err, domain.ErrInvalidLeaseParameters)
	})
}

func TestOverlaps(t *testing.T) {
	mar1 := date(2026, time.March, 1)
	mar10 := date(2026, time.March, 10)
	mar20 := date(2026, time.March, 20)
	apr1 := date(2026, time.April, 1)

	assert.True(t, Overlaps(mar1, mar20, mar10, apr1))
	assert.True(t, Overlaps(mar10, apr1, mar1, mar20))
	assert.False(t, Overlaps(mar1, mar10, mar10, mar20), "back-to-back intervals share only the boundary")
	assert.False(t, Overlaps(mar1, mar10, mar20, apr1))
}
