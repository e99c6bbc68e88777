package service

import (
	"context"
	"time"

	"kostpay-backend/internal/domain"
	"kostpay-backend/internal/gateway"

	"github.com/stretchr/testify/mock"
)

// MockBookingRepo
type MockBookingRepo struct {
	mock.Mock
}

func (m *MockBookingRepo) CreateIfAvailable(ctx context.Context, b *domain.Booking) error {
	args := m.Called(ctx, b)
	return args.Error(0)
}
func (m *MockBookingRepo) GetByID(ctx context.Context, id int32) (*domain.Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}
func (m *MockBookingRepo) GetByCode(ctx context.Context, code string) (*domain.Booking, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}
func (m *MockBookingRepo) Update(ctx context.Context, b *domain.Booking) error {
	args := m.Called(ctx, b)
	return args.Error(0)
}
func (m *MockBookingRepo) HasOverlap(ctx context.Context, roomID int32, checkIn, checkOut time.Time) (bool, error) {
	args := m.Called(ctx, roomID, checkIn, checkOut)
	return args.Bool(0), args.Error(1)
}
func (m *MockBookingRepo) ListByOperator(ctx context.Context, operatorID int32, status string, page, pageSize int32) ([]domain.Booking, int32, error) {
	args := m.Called(ctx, operatorID, status, page, pageSize)
	return args.Get(0).([]domain.Booking), args.Get(1).(int32), args.Error(2)
}
func (m *MockBookingRepo) ListByCustomer(ctx context.Context, customerID int32, page, pageSize int32) ([]domain.Booking, int32, error) {
	args := m.Called(ctx, customerID, page, pageSize)
	return args.Get(0).([]domain.Booking), args.Get(1).(int32), args.Error(2)
}
func (m *MockBookingRepo) ExpireOverdue(ctx context.Context, now time.Time, paymentDeadline time.Duration) ([]int32, error) {
	args := m.Called(ctx, now, paymentDeadline)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]int32), args.Error(1)
}

// MockPaymentRepo
type MockPaymentRepo struct {
	mock.Mock
}

func (m *MockPaymentRepo) Create(ctx context.Context, p *domain.Payment) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}
func (m *MockPaymentRepo) CreateSettled(ctx context.Context, p *domain.Payment, entry *domain.LedgerEntry) error {
	args := m.Called(ctx, p, entry)
	return args.Error(0)
}
func (m *MockPaymentRepo) GetByID(ctx context.Context, id int32) (*domain.Payment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Payment), args.Error(1)
}
func (m *MockPaymentRepo) GetByOrderID(ctx context.Context, orderID string) (*domain.Payment, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Payment), args.Error(1)
}
func (m *MockPaymentRepo) MarkSucceeded(ctx context.Context, orderID string, amount int64, txTime time.Time) (*domain.Payment, *domain.Booking, error) {
	args := m.Called(ctx, orderID, amount, txTime)
	var p *domain.Payment
	var b *domain.Booking
	if args.Get(0) != nil {
		p = args.Get(0).(*domain.Payment)
	}
	if args.Get(1) != nil {
		b = args.Get(1).(*domain.Booking)
	}
	return p, b, args.Error(2)
}
func (m *MockPaymentRepo) MarkClosed(ctx context.Context, orderID string, status domain.PaymentStatus) (*domain.Payment, error) {
	args := m.Called(ctx, orderID, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Payment), args.Error(1)
}
func (m *MockPaymentRepo) ListByBooking(ctx context.Context, bookingID int32) ([]domain.Payment, error) {
	args := m.Called(ctx, bookingID)
	return args.Get(0).([]domain.Payment), args.Error(1)
}
func (m *MockPaymentRepo) ListByOperator(ctx context.Context, operatorID int32, page, pageSize int32) ([]domain.Payment, int32, error) {
	args := m.Called(ctx, operatorID, page, pageSize)
	return args.Get(0).([]domain.Payment), args.Get(1).(int32), args.Error(2)
}

// MockAccountRepo
type MockAccountRepo struct {
	mock.Mock
}

func (m *MockAccountRepo) Create(ctx context.Context, a *domain.Account) error {
	args := m.Called(ctx, a)
	return args.Error(0)
}
func (m *MockAccountRepo) GetByID(ctx context.Context, id int32) (*domain.Account, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}
func (m *MockAccountRepo) GetSalesAccount(ctx context.Context, operatorID int32) (*domain.Account, error) {
	args := m.Called(ctx, operatorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}
func (m *MockAccountRepo) ListByOwner(ctx context.Context, ownerID int32) ([]domain.Account, error) {
	args := m.Called(ctx, ownerID)
	return args.Get(0).([]domain.Account), args.Error(1)
}
func (m *MockAccountRepo) Archive(ctx context.Context, id int32) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockLedgerRepo
type MockLedgerRepo struct {
	mock.Mock
}

func (m *MockLedgerRepo) CreateEntry(ctx context.Context, e *domain.LedgerEntry) error {
	args := m.Called(ctx, e)
	return args.Error(0)
}
func (m *MockLedgerRepo) Balance(ctx context.Context, accountID int32) (int64, error) {
	args := m.Called(ctx, accountID)
	return args.Get(0).(int64), args.Error(1)
}
func (m *MockLedgerRepo) ListByAccount(ctx context.Context, accountID int32, page, pageSize int32) ([]domain.LedgerEntry, int32, error) {
	args := m.Called(ctx, accountID, page, pageSize)
	return args.Get(0).([]domain.LedgerEntry), args.Get(1).(int32), args.Error(2)
}
func (m *MockLedgerRepo) GetByRef(ctx context.Context, refType domain.EntryRefType, refID int32) (*domain.LedgerEntry, error) {
	args := m.Called(ctx, refType, refID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LedgerEntry), args.Error(1)
}

// MockBankAccountRepo
type MockBankAccountRepo struct {
	mock.Mock
}

func (m *MockBankAccountRepo) Submit(ctx context.Context, b *domain.BankAccount) error {
	args := m.Called(ctx, b)
	return args.Error(0)
}
func (m *MockBankAccountRepo) GetByID(ctx context.Context, id int32) (*domain.BankAccount, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BankAccount), args.Error(1)
}
func (m *MockBankAccountRepo) GetApprovedByOperator(ctx context.Context, operatorID int32) (*domain.BankAccount, error) {
	args := m.Called(ctx, operatorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BankAccount), args.Error(1)
}
func (m *MockBankAccountRepo) Approve(ctx context.Context, id, approverID int32) (*domain.BankAccount, error) {
	args := m.Called(ctx, id, approverID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BankAccount), args.Error(1)
}
func (m *MockBankAccountRepo) Reject(ctx context.Context, id, approverID int32, reason string) (*domain.BankAccount, error) {
	args := m.Called(ctx, id, approverID, reason)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BankAccount), args.Error(1)
}
func (m *MockBankAccountRepo) Delete(ctx context.Context, id int32) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
func (m *MockBankAccountRepo) ListByOperator(ctx context.Context, operatorID int32) ([]domain.BankAccount, error) {
	args := m.Called(ctx, operatorID)
	return args.Get(0).([]domain.BankAccount), args.Error(1)
}

// MockPayoutRepo
type MockPayoutRepo struct {
	mock.Mock
}

func (m *MockPayoutRepo) CreatePending(ctx context.Context, p *domain.Payout) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}
func (m *MockPayoutRepo) GetByID(ctx context.Context, id int32) (*domain.Payout, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Payout), args.Error(1)
}
func (m *MockPayoutRepo) Approve(ctx context.Context, id, approverID int32, proofURLs []string) (*domain.Payout, error) {
	args := m.Called(ctx, id, approverID, proofURLs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Payout), args.Error(1)
}
func (m *MockPayoutRepo) Reject(ctx context.Context, id, approverID int32, reason string) (*domain.Payout, error) {
	args := m.Called(ctx, id, approverID, reason)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Payout), args.Error(1)
}
func (m *MockPayoutRepo) PendingAmount(ctx context.Context, operatorID, accountID int32) (int64, error) {
	args := m.Called(ctx, operatorID, accountID)
	return args.Get(0).(int64), args.Error(1)
}
func (m *MockPayoutRepo) ListByOperator(ctx context.Context, operatorID int32, status string, page, pageSize int32) ([]domain.Payout, int32, error) {
	args := m.Called(ctx, operatorID, status, page, pageSize)
	return args.Get(0).([]domain.Payout), args.Get(1).(int32), args.Error(2)
}

// MockRoomRepo
type MockRoomRepo struct {
	mock.Mock
}

func (m *MockRoomRepo) GetByID(ctx context.Context, id int32) (*domain.Room, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Room), args.Error(1)
}
func (m *MockRoomRepo) GetProperty(ctx context.Context, id int32) (*domain.Property, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Property), args.Error(1)
}

// MockNotificationRepo
type MockNotificationRepo struct {
	mock.Mock
}

func (m *MockNotificationRepo) Create(ctx context.Context, n *domain.Notification) error {
	args := m.Called(ctx, n)
	return args.Error(0)
}
func (m *MockNotificationRepo) List(ctx context.Context, userID int32, limit, offset int32) ([]domain.Notification, int32, error) {
	args := m.Called(ctx, userID, limit, offset)
	return args.Get(0).([]domain.Notification), args.Get(1).(int32), args.Error(2)
}
func (m *MockNotificationRepo) MarkAsRead(ctx context.Context, id, userID int32) error {
	args := m.Called(ctx, id, userID)
	return args.Error(0)
}

// MockPaymentGateway
type MockPaymentGateway struct {
	mock.Mock
}

func (m *MockPaymentGateway) CreateOrder(ctx context.Context, order gateway.Order) (string, error) {
	args := m.Called(ctx, order)
	return args.String(0), args.Error(1)
}

// stubNotifier drops every event; tests assert on repository effects.
type stubNotifier struct{}

func (stubNotifier) BookingCreated(ctx context.Context, b *domain.Booking)                      {}
func (stubNotifier) PaymentSucceeded(ctx context.Context, b *domain.Booking, p *domain.Payment) {}
func (stubNotifier) CheckedIn(ctx context.Context, b *domain.Booking)                           {}
func (stubNotifier) CheckedOut(ctx context.Context, b *domain.Booking)                          {}
func (stubNotifier) GetNotifications(ctx context.Context, userID int32, page, pageSize int32) ([]domain.Notification, int32, error) {
	return nil, 0, nil
}
func (stubNotifier) MarkAsRead(ctx context.Context, userID, notificationID int32) error {
	return nil
}
