package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"kostpay-backend/internal/domain"
	"kostpay-backend/internal/gateway"
	"kostpay-backend/internal/logger"
	"kostpay-backend/internal/repository"
	"kostpay-backend/internal/utils"

	"github.com/google/uuid"
)

type bookingService struct {
	bookingRepo repository.BookingRepository
	paymentRepo repository.PaymentRepository
	accountRepo repository.AccountRepository
	roomRepo    repository.RoomRepository
	gw          gateway.PaymentGateway
	notifier    NotificationService

	checkInGrace    time.Duration // check-in allowed this long before the booked date
	paymentDeadline time.Duration // unpaid bookings expire after this
}

func NewBookingService(
	bookingRepo repository.BookingRepository,
	paymentRepo repository.PaymentRepository,
	accountRepo repository.AccountRepository,
	roomRepo repository.RoomRepository,
	gw gateway.PaymentGateway,
	notifier NotificationService,
	checkInGrace, paymentDeadline time.Duration,
) BookingService {
	return &bookingService{
		bookingRepo:     bookingRepo,
		paymentRepo:     paymentRepo,
		accountRepo:     accountRepo,
		roomRepo:        roomRepo,
		gw:              gw,
		notifier:        notifier,
		checkInGrace:    checkInGrace,
		paymentDeadline: paymentDeadline,
	}
}

func newBookingCode() string {
	return "BK-" + strings.ToUpper(uuid.NewString()[:8])
}

// NewOrderID builds the external gateway reference for a payment. The
// order id is unique per payment attempt and is what webhook
// notifications are keyed on.
func NewOrderID(bookingID int32, pt domain.PaymentType) string {
	return fmt.Sprintf("ORD-%d-%s-%s", bookingID, pt, strings.ToUpper(uuid.NewString()[:8]))
}

// priceBooking resolves the room, validates ownership expectations and
// produces a priced, unsaved booking.
func (s *bookingService) priceBooking(ctx context.Context, input CreateBookingInput) (*domain.Booking, *domain.Room, error) {
	if !input.LeaseType.Valid() {
		return nil, nil, fmt.Errorf("%w: lease type %q", domain.ErrInvalidLeaseParameters, input.LeaseType)
	}

	room, err := s.roomRepo.GetByID(ctx, input.RoomID)
	if err != nil {
		return nil, nil, err
	}

	quote, err := utils.CalculatePrice(room, input.LeaseType, input.CheckInDate)
	if err != nil {
		return nil, nil, err
	}
	if _, err := utils.ApplyDiscount(quote.TotalAmount, input.DiscountAmount); err != nil {
		return nil, nil, err
	}

	b := &domain.Booking{
		Code:           newBookingCode(),
		CustomerID:     input.CustomerID,
		RoomID:         room.ID,
		PropertyID:     room.PropertyID,
		OperatorID:     room.OperatorID,
		CheckInDate:    input.CheckInDate,
		CheckOutDate:   quote.CheckOutDate,
		LeaseType:      input.LeaseType,
		TotalAmount:    quote.TotalAmount,
		DepositAmount:  quote.DepositAmount,
		DiscountAmount: input.DiscountAmount,
		Notes:          input.Notes,
	}
	return b, room, nil
}

// paymentFor picks the amount and type for the booking's next payment:
// the deposit when requested and available, otherwise the discounted
// full amount.
func paymentFor(b *domain.Booking, useDeposit bool) (domain.PaymentType, int64) {
	if useDeposit && b.DepositAmount != nil {
		return domain.PaymentTypeDeposit, *b.DepositAmount
	}
	return domain.PaymentTypeFull, b.TotalAmount - b.DiscountAmount
}

func (s *bookingService) CreateBooking(ctx context.Context, actor domain.Actor, input CreateBookingInput) (*domain.Booking, string, error) {
	logger.EnterMethod("bookingService.CreateBooking", "room_id", input.RoomID, "check_in", input.CheckInDate)

	input.CustomerID = actor.UserID
	today := time.Now().Truncate(24 * time.Hour)
	if input.CheckInDate.Before(today) {
		return nil, "", fmt.Errorf("%w: check-in date is in the past", domain.ErrInvalidLeaseParameters)
	}

	b, _, err := s.priceBooking(ctx, input)
	if err != nil {
		logger.ExitMethodWithError("bookingService.CreateBooking", err)
		return nil, "", err
	}

	sales, err := s.accountRepo.GetSalesAccount(ctx, b.OperatorID)
	if err != nil {
		return nil, "", fmt.Errorf("resolving settlement account: %w", err)
	}

	b.Status = domain.BookingStatusUnpaid
	b.PaymentStatus = domain.BookingPaymentUnpaid
	if err := s.bookingRepo.CreateIfAvailable(ctx, b); err != nil {
		logger.ExitMethodWithError("bookingService.CreateBooking", err, "room_id", input.RoomID)
		return nil, "", err
	}

	pt, amount := paymentFor(b, input.UseDeposit)
	payment := &domain.Payment{
		BookingID: b.ID,
		PayerID:   actor.UserID,
		Type:      pt,
		OrderID:   NewOrderID(b.ID, pt),
		Amount:    amount,
		Status:    domain.PaymentStatusPending,
		AccountID: sales.ID,
	}
	if err := s.paymentRepo.Create(ctx, payment); err != nil {
		return nil, "", fmt.Errorf("creating payment: %w", err)
	}

	redirectURL, err := s.gw.CreateOrder(ctx, gateway.Order{OrderID: payment.OrderID, Amount: payment.Amount})
	if err != nil {
		// The booking and pending payment are committed; the customer can
		// retry payment. The gateway failure must not roll them back.
		logger.Error("gateway order creation failed", "order_id", payment.OrderID, "error", err)
		return nil, "", fmt.Errorf("creating gateway order: %w", err)
	}

	s.notifier.BookingCreated(ctx, b)
	logger.ExitMethod("bookingService.CreateBooking", "booking_id", b.ID, "code", b.Code)
	return b, redirectURL, nil
}

func (s *bookingService) CreateManualBooking(ctx context.Context, actor domain.Actor, input CreateBookingInput) (*domain.Booking, error) {
	logger.EnterMethod("bookingService.CreateManualBooking", "room_id", input.RoomID)

	b, room, err := s.priceBooking(ctx, input)
	if err != nil {
		return nil, err
	}
	if !actor.IsStaff() || !actor.Owns(room.OperatorID) {
		return nil, domain.ErrNotFound
	}

	return s.createSettledBooking(ctx, actor, b, input.UseDeposit)
}

// createSettledBooking inserts a staff-created booking and settles its
// payment through the same recorder path as gateway payments, so every
// successful payment yields exactly one ledger entry regardless of origin.
// A deposit-only settlement leaves the booking DEPOSIT_PAID so the
// remainder can still be collected.
func (s *bookingService) createSettledBooking(ctx context.Context, actor domain.Actor, b *domain.Booking, useDeposit bool) (*domain.Booking, error) {
	sales, err := s.accountRepo.GetSalesAccount(ctx, b.OperatorID)
	if err != nil {
		return nil, fmt.Errorf("resolving settlement account: %w", err)
	}

	pt, amount := paymentFor(b, useDeposit)
	if pt == domain.PaymentTypeDeposit {
		b.Status = domain.BookingStatusDepositPaid
		b.PaymentStatus = domain.BookingPaymentDepositPaid
	} else {
		b.Status = domain.BookingStatusConfirmed
		b.PaymentStatus = domain.BookingPaymentSuccess
	}
	if err := s.bookingRepo.CreateIfAvailable(ctx, b); err != nil {
		return nil, err
	}

	now := time.Now()
	payment := &domain.Payment{
		BookingID:     b.ID,
		PayerID:       b.CustomerID,
		Type:          pt,
		OrderID:       NewOrderID(b.ID, pt),
		Amount:        amount,
		AccountID:     sales.ID,
		TransactionAt: &now,
	}
	entry := &domain.LedgerEntry{
		AccountID:  sales.ID,
		Direction:  domain.EntryDirectionIn,
		Amount:     amount,
		Date:       now,
		Note:       "Payment for booking " + b.Code,
		PropertyID: &b.PropertyID,
	}
	if err := s.paymentRepo.CreateSettled(ctx, payment, entry); err != nil {
		return nil, fmt.Errorf("settling manual payment: %w", err)
	}

	s.notifier.BookingCreated(ctx, b)
	s.notifier.PaymentSucceeded(ctx, b, payment)
	return b, nil
}

func (s *bookingService) RenewBooking(ctx context.Context, actor domain.Actor, bookingID int32, input RenewBookingInput) (*domain.Booking, error) {
	logger.EnterMethod("bookingService.RenewBooking", "booking_id", bookingID)

	orig, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if !actor.IsStaff() || !actor.Owns(orig.OperatorID) {
		return nil, domain.ErrNotFound
	}
	if orig.Status == domain.BookingStatusCancelled || orig.Status == domain.BookingStatusExpired {
		return nil, fmt.Errorf("%w: cannot renew a %s booking", domain.ErrInvalidTransition, orig.Status)
	}

	var discount int64
	if input.CarryDiscount {
		discount = orig.DiscountAmount
	}
	notes := input.Notes
	if notes == "" {
		notes = orig.Notes
	}
	if notes != "" {
		notes += " "
	}
	notes += fmt.Sprintf("(renewal of %s)", orig.Code)

	b, room, err := s.priceBooking(ctx, CreateBookingInput{
		CustomerID:     orig.CustomerID,
		RoomID:         orig.RoomID,
		CheckInDate:    orig.CheckOutDate,
		LeaseType:      input.LeaseType,
		DiscountAmount: discount,
		Notes:          notes,
	})
	if err != nil {
		return nil, err
	}
	if room.ID != orig.RoomID {
		return nil, domain.ErrNotFound
	}

	// The availability check still runs inside the create: a third-party
	// booking made during the original lease wins over the renewal.
	return s.createSettledBooking(ctx, actor, b, false)
}

func (s *bookingService) PayRemainder(ctx context.Context, actor domain.Actor, bookingID int32) (*domain.Payment, string, error) {
	logger.EnterMethod("bookingService.PayRemainder", "booking_id", bookingID)

	b, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, "", err
	}
	if b.CustomerID != actor.UserID && !(actor.IsStaff() && actor.Owns(b.OperatorID)) {
		return nil, "", domain.ErrNotFound
	}
	if b.Status != domain.BookingStatusDepositPaid {
		return nil, "", fmt.Errorf("%w: remainder payment from %s", domain.ErrInvalidTransition, b.Status)
	}

	paid, err := s.settledAmount(ctx, b.ID)
	if err != nil {
		return nil, "", err
	}
	remaining := b.TotalAmount - b.DiscountAmount - paid
	if remaining <= 0 {
		return nil, "", fmt.Errorf("%w: nothing left to pay", domain.ErrInvalidTransition)
	}

	sales, err := s.accountRepo.GetSalesAccount(ctx, b.OperatorID)
	if err != nil {
		return nil, "", fmt.Errorf("resolving settlement account: %w", err)
	}

	payment := &domain.Payment{
		BookingID: b.ID,
		PayerID:   b.CustomerID,
		Type:      domain.PaymentTypeFull,
		OrderID:   NewOrderID(b.ID, domain.PaymentTypeFull),
		Amount:    remaining,
		Status:    domain.PaymentStatusPending,
		AccountID: sales.ID,
	}
	if err := s.paymentRepo.Create(ctx, payment); err != nil {
		return nil, "", fmt.Errorf("creating payment: %w", err)
	}

	redirectURL, err := s.gw.CreateOrder(ctx, gateway.Order{OrderID: payment.OrderID, Amount: payment.Amount})
	if err != nil {
		logger.Error("gateway order creation failed", "order_id", payment.OrderID, "error", err)
		return nil, "", fmt.Errorf("creating gateway order: %w", err)
	}

	logger.ExitMethod("bookingService.PayRemainder", "payment_id", payment.ID, "amount", remaining)
	return payment, redirectURL, nil
}

// settledAmount sums the booking's SUCCESS payments.
func (s *bookingService) settledAmount(ctx context.Context, bookingID int32) (int64, error) {
	payments, err := s.paymentRepo.ListByBooking(ctx, bookingID)
	if err != nil {
		return 0, err
	}
	var paid int64
	for _, p := range payments {
		if p.Status == domain.PaymentStatusSuccess {
			paid += p.Amount
		}
	}
	return paid, nil
}

func (s *bookingService) CheckIn(ctx context.Context, actor domain.Actor, bookingID int32) (*domain.Booking, error) {
	b, err := s.getOwnedBooking(ctx, actor, bookingID)
	if err != nil {
		return nil, err
	}
	if !b.Status.CanTransitionTo(domain.BookingStatusCheckedIn) {
		return nil, fmt.Errorf("%w: check-in from %s", domain.ErrInvalidTransition, b.Status)
	}

	now := time.Now()
	if now.Before(b.CheckInDate.Add(-s.checkInGrace)) {
		return nil, fmt.Errorf("%w: check-in before %s", domain.ErrInvalidTransition, b.CheckInDate.Format("2006-01-02"))
	}

	b.Status = domain.BookingStatusCheckedIn
	b.CheckedInAt = &now
	b.CheckedInBy = &actor.UserID
	if err := s.bookingRepo.Update(ctx, b); err != nil {
		return nil, err
	}

	s.notifier.CheckedIn(ctx, b)
	return b, nil
}

func (s *bookingService) CheckOut(ctx context.Context, actor domain.Actor, bookingID int32) (*domain.Booking, error) {
	b, err := s.getOwnedBooking(ctx, actor, bookingID)
	if err != nil {
		return nil, err
	}
	if !b.Status.CanTransitionTo(domain.BookingStatusCompleted) {
		return nil, fmt.Errorf("%w: check-out from %s", domain.ErrInvalidTransition, b.Status)
	}

	now := time.Now()
	b.Status = domain.BookingStatusCompleted
	b.CheckedOutAt = &now
	b.CheckedOutBy = &actor.UserID
	if err := s.bookingRepo.Update(ctx, b); err != nil {
		return nil, err
	}

	s.notifier.CheckedOut(ctx, b)
	return b, nil
}

func (s *bookingService) Cancel(ctx context.Context, actor domain.Actor, bookingID int32, reason string) (*domain.Booking, error) {
	b, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if b.CustomerID != actor.UserID && !(actor.IsStaff() && actor.Owns(b.OperatorID)) {
		return nil, domain.ErrNotFound
	}
	if !b.Status.CanTransitionTo(domain.BookingStatusCancelled) {
		return nil, fmt.Errorf("%w: cancel from %s", domain.ErrInvalidTransition, b.Status)
	}

	b.Status = domain.BookingStatusCancelled
	if reason != "" {
		if b.Notes != "" {
			b.Notes += " "
		}
		b.Notes += "(cancelled: " + reason + ")"
	}
	if err := s.bookingRepo.Update(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

func (s *bookingService) GetBooking(ctx context.Context, actor domain.Actor, bookingID int32) (*domain.Booking, error) {
	b, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if b.CustomerID != actor.UserID && !(actor.IsStaff() && actor.Owns(b.OperatorID)) {
		return nil, domain.ErrNotFound
	}
	return b, nil
}

func (s *bookingService) GetBookingByCode(ctx context.Context, actor domain.Actor, code string) (*domain.Booking, error) {
	b, err := s.bookingRepo.GetByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if b.CustomerID != actor.UserID && !(actor.IsStaff() && actor.Owns(b.OperatorID)) {
		return nil, domain.ErrNotFound
	}
	return b, nil
}

func (s *bookingService) CheckAvailability(ctx context.Context, roomID int32, checkIn, checkOut time.Time) (bool, error) {
	if !checkOut.After(checkIn) {
		return false, fmt.Errorf("%w: check-out must follow check-in", domain.ErrInvalidLeaseParameters)
	}
	if _, err := s.roomRepo.GetByID(ctx, roomID); err != nil {
		return false, err
	}
	overlap, err := s.bookingRepo.HasOverlap(ctx, roomID, checkIn, checkOut)
	if err != nil {
		return false, err
	}
	return !overlap, nil
}

func (s *bookingService) ListBookings(ctx context.Context, actor domain.Actor, status string, page, pageSize int32) ([]domain.Booking, int32, error) {
	if actor.IsStaff() {
		return s.bookingRepo.ListByOperator(ctx, actor.OperatorID, status, page, pageSize)
	}
	return s.bookingRepo.ListByCustomer(ctx, actor.UserID, page, pageSize)
}

func (s *bookingService) ExpireOverdueBookings(ctx context.Context, now time.Time) (int, error) {
	ids, err := s.bookingRepo.ExpireOverdue(ctx, now, s.paymentDeadline)
	if err != nil {
		return 0, err
	}
	if len(ids) > 0 {
		logger.Info("expired overdue bookings", "count", len(ids))
	}
	return len(ids), nil
}

// getOwnedBooking loads a booking for a staff-side mutation, hiding it
// from actors outside the owning operator.
func (s *bookingService) getOwnedBooking(ctx context.Context, actor domain.Actor, bookingID int32) (*domain.Booking, error) {
	b, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if !actor.IsStaff() || !actor.Owns(b.OperatorID) {
		return nil, domain.ErrNotFound
	}
	return b, nil
}
