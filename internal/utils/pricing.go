package utils

import (
	"fmt"
	"time"

	"kostpay-backend/internal/domain"
)

// PriceQuote is the result of pricing a booking request.
type PriceQuote struct {
	TotalAmount   int64
	DepositAmount *int64 // nil when the room has no usable deposit policy
	CheckOutDate  time.Time
}

// CheckOutDate derives the checkout date from the lease type. Calendar
// arithmetic follows time.AddDate, so a monthly lease starting Jan 31
// lands on the normalized date in March the way the standard library
// defines it.
func CheckOutDate(checkIn time.Time, lt domain.LeaseType) (time.Time, error) {
	switch lt {
	case domain.LeaseTypeDaily:
		return checkIn.AddDate(0, 0, 1), nil
	case domain.LeaseTypeWeekly:
		return checkIn.AddDate(0, 0, 7), nil
	case domain.LeaseTypeMonthly:
		return checkIn.AddDate(0, 1, 0), nil
	case domain.LeaseTypeQuarterly:
		return checkIn.AddDate(0, 3, 0), nil
	case domain.LeaseTypeYearly:
		return checkIn.AddDate(1, 0, 0), nil
	}
	return time.Time{}, fmt.Errorf("%w: unknown lease type %q", domain.ErrInvalidLeaseParameters, lt)
}

// CalculatePrice looks up the room's per-lease-type price and derives the
// deposit from the room's deposit policy. A policy that resolves outside
// (0, total) yields no deposit rather than a degenerate one.
func CalculatePrice(room *domain.Room, lt domain.LeaseType, checkIn time.Time) (PriceQuote, error) {
	checkOut, err := CheckOutDate(checkIn, lt)
	if err != nil {
		return PriceQuote{}, err
	}
	if !checkOut.After(checkIn) {
		return PriceQuote{}, fmt.Errorf("%w: non-positive lease duration", domain.ErrInvalidLeaseParameters)
	}

	total := room.PriceFor(lt)
	if total <= 0 {
		return PriceQuote{}, fmt.Errorf("%w: room %d has no %s price", domain.ErrInvalidLeaseParameters, room.ID, lt)
	}

	quote := PriceQuote{TotalAmount: total, CheckOutDate: checkOut}

	var deposit int64
	switch room.DepositPolicy {
	case domain.DepositPolicyPercent:
		deposit = total * room.DepositValue / 100
	case domain.DepositPolicyFixed:
		deposit = room.DepositValue
	default:
		return quote, nil
	}
	if deposit > 0 && deposit < total {
		quote.DepositAmount = &deposit
	}
	return quote, nil
}

// ApplyDiscount validates and subtracts a staff-supplied discount.
func ApplyDiscount(total, discount int64) (int64, error) {
	if discount < 0 || discount > total {
		return 0, fmt.Errorf("%w: discount %d out of range for total %d", domain.ErrInvalidLeaseParameters, discount, total)
	}
	return total - discount, nil
}

// Overlaps reports whether two half-open [checkIn, checkOut) intervals
// intersect.
func Overlaps(aIn, aOut, bIn, bOut time.Time) bool {
	return aIn.Before(bOut) && bIn.Before(aOut)
}
