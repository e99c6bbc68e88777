package repository

import (
	"context"
	"time"

	"kostpay-backend/internal/domain"
)

type BookingRepository interface {
	// CreateIfAvailable runs the availability check and the insert inside
	// one transaction holding a per-room lock, so two concurrent requests
	// for the same room cannot both pass the overlap check. Returns
	// domain.ErrRoomUnavailable on conflict.
	CreateIfAvailable(ctx context.Context, b *domain.Booking) error
	GetByID(ctx context.Context, id int32) (*domain.Booking, error)
	GetByCode(ctx context.Context, code string) (*domain.Booking, error)
	Update(ctx context.Context, b *domain.Booking) error
	HasOverlap(ctx context.Context, roomID int32, checkIn, checkOut time.Time) (bool, error)
	ListByOperator(ctx context.Context, operatorID int32, status string, page, pageSize int32) ([]domain.Booking, int32, error)
	ListByCustomer(ctx context.Context, customerID int32, page, pageSize int32) ([]domain.Booking, int32, error)
	// ExpireOverdue marks unpaid bookings whose check-in date has passed,
	// or whose payment deadline elapsed, as EXPIRED together with their
	// pending payments. Returns the ids of expired bookings. Idempotent.
	ExpireOverdue(ctx context.Context, now time.Time, paymentDeadline time.Duration) ([]int32, error)
}

type PaymentRepository interface {
	Create(ctx context.Context, p *domain.Payment) error
	// CreateSettled inserts an already-successful payment together with
	// its IN ledger entry in one transaction. Used by manual bookings and
	// renewals so that every successful payment, regardless of origin,
	// yields exactly one ledger entry.
	CreateSettled(ctx context.Context, p *domain.Payment, entry *domain.LedgerEntry) error
	GetByID(ctx context.Context, id int32) (*domain.Payment, error)
	GetByOrderID(ctx context.Context, orderID string) (*domain.Payment, error)
	// MarkSucceeded atomically marks the payment SUCCESS, transitions the
	// owning booking and writes the IN ledger entry. A payment already in
	// a terminal status returns domain.ErrAlreadyProcessed; an amount
	// mismatch returns domain.ErrAmountMismatch.
	MarkSucceeded(ctx context.Context, orderID string, amount int64, txTime time.Time) (*domain.Payment, *domain.Booking, error)
	// MarkClosed moves a non-terminal payment into FAILED or EXPIRED. No
	// ledger entry and no booking change.
	MarkClosed(ctx context.Context, orderID string, status domain.PaymentStatus) (*domain.Payment, error)
	ListByBooking(ctx context.Context, bookingID int32) ([]domain.Payment, error)
	ListByOperator(ctx context.Context, operatorID int32, page, pageSize int32) ([]domain.Payment, int32, error)
}

type AccountRepository interface {
	Create(ctx context.Context, a *domain.Account) error
	GetByID(ctx context.Context, id int32) (*domain.Account, error)
	// GetSalesAccount returns the operator's system sales account, the
	// settlement target for gateway payments and the payout source.
	GetSalesAccount(ctx context.Context, operatorID int32) (*domain.Account, error)
	ListByOwner(ctx context.Context, ownerID int32) ([]domain.Account, error)
	Archive(ctx context.Context, id int32) error
}

type LedgerRepository interface {
	CreateEntry(ctx context.Context, e *domain.LedgerEntry) error
	// Balance is always computed as sum(IN) - sum(OUT) over the account's
	// full entry history; there is no cached balance column.
	Balance(ctx context.Context, accountID int32) (int64, error)
	ListByAccount(ctx context.Context, accountID int32, page, pageSize int32) ([]domain.LedgerEntry, int32, error)
	GetByRef(ctx context.Context, refType domain.EntryRefType, refID int32) (*domain.LedgerEntry, error)
}

type BankAccountRepository interface {
	// Submit inserts a PENDING request while holding a per-operator lock;
	// a second PENDING request for the same operator returns
	// domain.ErrPendingBankAccount.
	Submit(ctx context.Context, b *domain.BankAccount) error
	GetByID(ctx context.Context, id int32) (*domain.BankAccount, error)
	GetApprovedByOperator(ctx context.Context, operatorID int32) (*domain.BankAccount, error)
	// Approve marks the request APPROVED and rejects any other APPROVED
	// account the operator holds, keeping at most one.
	Approve(ctx context.Context, id, approverID int32) (*domain.BankAccount, error)
	Reject(ctx context.Context, id, approverID int32, reason string) (*domain.BankAccount, error)
	Delete(ctx context.Context, id int32) error
	ListByOperator(ctx context.Context, operatorID int32) ([]domain.BankAccount, error)
}

type PayoutRepository interface {
	// CreatePending computes availableBalance = balance(account) - sum of
	// the operator's PENDING payouts and inserts the request in the same
	// transaction under a per-account lock, so concurrent requests cannot
	// collectively overdraw. Returns domain.ErrInsufficientBalance.
	CreatePending(ctx context.Context, p *domain.Payout) error
	GetByID(ctx context.Context, id int32) (*domain.Payout, error)
	// Approve transitions PENDING -> APPROVED and writes the OUT ledger
	// entry in one transaction, re-checking the balance against entries
	// preceding the new OUT entry.
	Approve(ctx context.Context, id, approverID int32, proofURLs []string) (*domain.Payout, error)
	Reject(ctx context.Context, id, approverID int32, reason string) (*domain.Payout, error)
	PendingAmount(ctx context.Context, operatorID, accountID int32) (int64, error)
	ListByOperator(ctx context.Context, operatorID int32, status string, page, pageSize int32) ([]domain.Payout, int32, error)
}

type RoomRepository interface {
	GetByID(ctx context.Context, id int32) (*domain.Room, error)
	GetProperty(ctx context.Context, id int32) (*domain.Property, error)
}

type NotificationRepository interface {
	Create(ctx context.Context, n *domain.Notification) error
	List(ctx context.Context, userID int32, limit, offset int32) ([]domain.Notification, int32, error)
	MarkAsRead(ctx context.Context, id, userID int32) error
}
