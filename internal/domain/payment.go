package domain

import "time"

type PaymentType string

const (
	PaymentTypeDeposit PaymentType = "DEPOSIT"
	PaymentTypeFull    PaymentType = "FULL"
)

type PaymentStatus string

const (
	PaymentStatusPending PaymentStatus = "PENDING"
	PaymentStatusSuccess PaymentStatus = "SUCCESS"
	PaymentStatusFailed  PaymentStatus = "FAILED"
	PaymentStatusExpired PaymentStatus = "EXPIRED"
)

func (s PaymentStatus) IsTerminal() bool {
	return s == PaymentStatusSuccess || s == PaymentStatusFailed || s == PaymentStatusExpired
}

type Payment struct {
	ID            int32         `json:"id"`
	BookingID     int32         `json:"booking_id"`
	PayerID       int32         `json:"payer_id"`
	Type          PaymentType   `json:"type"`
	OrderID       string        `json:"order_id"`
	Amount        int64         `json:"amount"`
	Status        PaymentStatus `json:"status"`
	AccountID     int32         `json:"account_id"` // settlement account credited on success
	TransactionAt *time.Time    `json:"transaction_at,omitempty"`
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`
}
