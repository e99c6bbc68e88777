package service

import (
	"context"
	"time"

	"kostpay-backend/internal/domain"
)

type CreateBookingInput struct {
	CustomerID     int32
	RoomID         int32
	CheckInDate    time.Time
	LeaseType      domain.LeaseType
	UseDeposit     bool // pay the deposit first instead of the full amount
	DiscountAmount int64
	Notes          string
}

type RenewBookingInput struct {
	LeaseType     domain.LeaseType
	CarryDiscount bool
	Notes         string
}

type BookingService interface {
	// CreateBooking is the self-service flow: booking starts UNPAID with a
	// PENDING payment and the gateway redirect URL is returned.
	CreateBooking(ctx context.Context, actor domain.Actor, input CreateBookingInput) (*domain.Booking, string, error)
	// CreateManualBooking is the staff flow: the payment is settled
	// immediately through the recorder. A full settlement lands the
	// booking CONFIRMED; a deposit-only one lands it DEPOSIT_PAID.
	CreateManualBooking(ctx context.Context, actor domain.Actor, input CreateBookingInput) (*domain.Booking, error)
	// RenewBooking creates a CONFIRMED continuation booking starting at
	// the original booking's check-out date.
	RenewBooking(ctx context.Context, actor domain.Actor, bookingID int32, input RenewBookingInput) (*domain.Booking, error)
	// PayRemainder creates the PENDING payment settling what is still owed
	// on a deposit-paid booking and returns the gateway redirect URL.
	PayRemainder(ctx context.Context, actor domain.Actor, bookingID int32) (*domain.Payment, string, error)
	CheckIn(ctx context.Context, actor domain.Actor, bookingID int32) (*domain.Booking, error)
	CheckOut(ctx context.Context, actor domain.Actor, bookingID int32) (*domain.Booking, error)
	Cancel(ctx context.Context, actor domain.Actor, bookingID int32, reason string) (*domain.Booking, error)
	GetBooking(ctx context.Context, actor domain.Actor, bookingID int32) (*domain.Booking, error)
	GetBookingByCode(ctx context.Context, actor domain.Actor, code string) (*domain.Booking, error)
	// CheckAvailability reports whether the room is free for the window.
	// Advisory only: the insert re-checks under the room lock.
	CheckAvailability(ctx context.Context, roomID int32, checkIn, checkOut time.Time) (bool, error)
	ListBookings(ctx context.Context, actor domain.Actor, status string, page, pageSize int32) ([]domain.Booking, int32, error)
	// ExpireOverdueBookings is invoked by the external scheduler.
	ExpireOverdueBookings(ctx context.Context, now time.Time) (int, error)
}

type PaymentService interface {
	// HandleNotification records a gateway result. Safe to call more than
	// once for the same order id; duplicates on a terminal payment return
	// domain.ErrAlreadyProcessed which the webhook treats as success.
	HandleNotification(ctx context.Context, orderID string, status domain.PaymentStatus, amount int64, txTime time.Time) error
	ListPayments(ctx context.Context, actor domain.Actor, page, pageSize int32) ([]domain.Payment, int32, error)
	ListBookingPayments(ctx context.Context, actor domain.Actor, bookingID int32) ([]domain.Payment, error)
}

type ManualEntryInput struct {
	AccountID  int32
	Direction  domain.EntryDirection
	Amount     int64
	Date       time.Time
	Note       string
	PropertyID *int32
}

type LedgerService interface {
	RecordManualEntry(ctx context.Context, actor domain.Actor, input ManualEntryInput) (*domain.LedgerEntry, error)
	Balance(ctx context.Context, actor domain.Actor, accountID int32) (int64, error)
	ListEntries(ctx context.Context, actor domain.Actor, accountID int32, page, pageSize int32) ([]domain.LedgerEntry, int32, error)
	// EntryForPayment resolves the ledger entry a settled payment produced.
	EntryForPayment(ctx context.Context, actor domain.Actor, paymentID int32) (*domain.LedgerEntry, error)
}

// PayoutBalance breaks the sales-account balance down the way the
// payout insert checks it: pending payouts reserve their amounts, so
// only Available can be requested.
type PayoutBalance struct {
	Balance   int64 `json:"balance"`
	Pending   int64 `json:"pending"`
	Available int64 `json:"available"`
}

type PayoutService interface {
	RequestPayout(ctx context.Context, actor domain.Actor, bankAccountID int32, amount int64, notes string) (*domain.Payout, error)
	AvailableBalance(ctx context.Context, actor domain.Actor) (*PayoutBalance, error)
	ApprovePayout(ctx context.Context, actor domain.Actor, payoutID int32, proofURLs []string) (*domain.Payout, error)
	RejectPayout(ctx context.Context, actor domain.Actor, payoutID int32, reason string) (*domain.Payout, error)
	GetPayout(ctx context.Context, actor domain.Actor, payoutID int32) (*domain.Payout, error)
	ListPayouts(ctx context.Context, actor domain.Actor, status string, page, pageSize int32) ([]domain.Payout, int32, error)
}

type SubmitBankAccountInput struct {
	BankCode      string
	BankName      string
	AccountNumber string
	HolderName    string
}

type BankAccountService interface {
	Submit(ctx context.Context, actor domain.Actor, input SubmitBankAccountInput) (*domain.BankAccount, error)
	Approve(ctx context.Context, actor domain.Actor, bankAccountID int32) (*domain.BankAccount, error)
	Reject(ctx context.Context, actor domain.Actor, bankAccountID int32, reason string) (*domain.BankAccount, error)
	Delete(ctx context.Context, actor domain.Actor, bankAccountID int32) error
	ListBankAccounts(ctx context.Context, actor domain.Actor) ([]domain.BankAccount, error)
}

type AccountService interface {
	CreateAccount(ctx context.Context, actor domain.Actor, name string, kind domain.AccountKind) (*domain.Account, error)
	ListAccounts(ctx context.Context, actor domain.Actor) ([]domain.Account, error)
	ArchiveAccount(ctx context.Context, actor domain.Actor, accountID int32) error
}

// NotificationService dispatches booking lifecycle events. Delivery is
// fire-and-forget: failures are logged and never surface into the
// booking or ledger transaction.
type NotificationService interface {
	BookingCreated(ctx context.Context, b *domain.Booking)
	PaymentSucceeded(ctx context.Context, b *domain.Booking, p *domain.Payment)
	CheckedIn(ctx context.Context, b *domain.Booking)
	CheckedOut(ctx context.Context, b *domain.Booking)
	GetNotifications(ctx context.Context, userID int32, page, pageSize int32) ([]domain.Notification, int32, error)
	MarkAsRead(ctx context.Context, userID, notificationID int32) error
}

type EmailService interface {
	SendBookingCreated(ctx context.Context, email, bookingCode string, amount int64) error
	SendPaymentReceipt(ctx context.Context, email, bookingCode string, amount int64) error
}
