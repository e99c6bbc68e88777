package domain

import "time"

type LeaseType string

const (
	LeaseTypeDaily     LeaseType = "DAILY"
	LeaseTypeWeekly    LeaseType = "WEEKLY"
	LeaseTypeMonthly   LeaseType = "MONTHLY"
	LeaseTypeQuarterly LeaseType = "QUARTERLY"
	LeaseTypeYearly    LeaseType = "YEARLY"
)

func (lt LeaseType) Valid() bool {
	switch lt {
	case LeaseTypeDaily, LeaseTypeWeekly, LeaseTypeMonthly, LeaseTypeQuarterly, LeaseTypeYearly:
		return true
	}
	return false
}

type BookingStatus string

const (
	BookingStatusUnpaid      BookingStatus = "UNPAID"
	BookingStatusDepositPaid BookingStatus = "DEPOSIT_PAID"
	BookingStatusConfirmed   BookingStatus = "CONFIRMED"
	BookingStatusCheckedIn   BookingStatus = "CHECKED_IN"
	BookingStatusCompleted   BookingStatus = "COMPLETED"
	BookingStatusCancelled   BookingStatus = "CANCELLED"
	BookingStatusExpired     BookingStatus = "EXPIRED"
)

// bookingTransitions is the single source of truth for valid booking
// status changes. Every mutating operation consults it instead of
// scattering status conditionals.
var bookingTransitions = map[BookingStatus][]BookingStatus{
	BookingStatusUnpaid:      {BookingStatusDepositPaid, BookingStatusConfirmed, BookingStatusCancelled, BookingStatusExpired},
	BookingStatusDepositPaid: {BookingStatusConfirmed, BookingStatusCancelled, BookingStatusExpired},
	BookingStatusConfirmed:   {BookingStatusCheckedIn, BookingStatusCancelled},
	BookingStatusCheckedIn:   {BookingStatusCompleted},
}

func (s BookingStatus) CanTransitionTo(next BookingStatus) bool {
	for _, allowed := range bookingTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

func (s BookingStatus) IsTerminal() bool {
	switch s {
	case BookingStatusCompleted, BookingStatusCancelled, BookingStatusExpired:
		return true
	}
	return false
}

// BookingPaymentStatus tracks how much of the booking has been settled,
// independently of the lifecycle status.
type BookingPaymentStatus string

const (
	BookingPaymentUnpaid      BookingPaymentStatus = "UNPAID"
	BookingPaymentDepositPaid BookingPaymentStatus = "DEPOSIT_PAID"
	BookingPaymentSuccess     BookingPaymentStatus = "SUCCESS"
)

type Booking struct {
	ID             int32                `json:"id"`
	Code           string               `json:"code"`
	CustomerID     int32                `json:"customer_id"`
	RoomID         int32                `json:"room_id"`
	PropertyID     int32                `json:"property_id"`
	OperatorID     int32                `json:"operator_id"`
	CheckInDate    time.Time            `json:"check_in_date"`
	CheckOutDate   time.Time            `json:"check_out_date"`
	LeaseType      LeaseType            `json:"lease_type"`
	TotalAmount    int64                `json:"total_amount"`
	DepositAmount  *int64               `json:"deposit_amount,omitempty"`
	DiscountAmount int64                `json:"discount_amount"`
	PaymentStatus  BookingPaymentStatus `json:"payment_status"`
	Status         BookingStatus        `json:"status"`
	Notes          string               `json:"notes"`
	CheckedInAt    *time.Time           `json:"checked_in_at,omitempty"`
	CheckedInBy    *int32               `json:"checked_in_by,omitempty"`
	CheckedOutAt   *time.Time           `json:"checked_out_at,omitempty"`
	CheckedOutBy   *int32               `json:"checked_out_by,omitempty"`
	CreatedAt      time.Time            `json:"created_at"`
	UpdatedAt      time.Time            `json:"updated_at"`
}

// NextStatusOnPayment returns the booking status that a successful
// payment of the given type moves the booking into.
func NextStatusOnPayment(current BookingStatus, pt PaymentType) (BookingStatus, error) {
	var next BookingStatus
	switch pt {
	case PaymentTypeDeposit:
		next = BookingStatusDepositPaid
	case PaymentTypeFull:
		next = BookingStatusConfirmed
	default:
		return "", ErrInvalidTransition
	}
	if !current.CanTransitionTo(next) {
		return "", ErrInvalidTransition
	}
	return next, nil
}

// PaymentStatusOnPayment mirrors NextStatusOnPayment for the settled flag.
func PaymentStatusOnPayment(pt PaymentType) BookingPaymentStatus {
	if pt == PaymentTypeDeposit {
		return BookingPaymentDepositPaid
	}
	return BookingPaymentSuccess
}
