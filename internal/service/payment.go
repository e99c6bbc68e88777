package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"kostpay-backend/internal/domain"
	"kostpay-backend/internal/logger"
	"kostpay-backend/internal/repository"
)

type paymentService struct {
	paymentRepo repository.PaymentRepository
	bookingRepo repository.BookingRepository
	notifier    NotificationService
}

func NewPaymentService(
	paymentRepo repository.PaymentRepository,
	bookingRepo repository.BookingRepository,
	notifier NotificationService,
) PaymentService {
	return &paymentService{
		paymentRepo: paymentRepo,
		bookingRepo: bookingRepo,
		notifier:    notifier,
	}
}

func (s *paymentService) HandleNotification(ctx context.Context, orderID string, status domain.PaymentStatus, amount int64, txTime time.Time) error {
	logger.EnterMethod("paymentService.HandleNotification", "order_id", orderID, "status", status)

	switch status {
	case domain.PaymentStatusSuccess:
		payment, booking, err := s.paymentRepo.MarkSucceeded(ctx, orderID, amount, txTime)
		if err != nil {
			if errors.Is(err, domain.ErrAlreadyProcessed) {
				// Gateways redeliver notifications; a terminal payment is
				// left untouched and the duplicate acknowledged.
				logger.Info("duplicate payment notification ignored", "order_id", orderID)
			}
			return err
		}
		s.notifier.PaymentSucceeded(ctx, booking, payment)
		logger.ExitMethod("paymentService.HandleNotification", "order_id", orderID, "booking_status", booking.Status)
		return nil

	case domain.PaymentStatusFailed, domain.PaymentStatusExpired:
		// The booking is left as-is; the expiry sweep picks it up.
		_, err := s.paymentRepo.MarkClosed(ctx, orderID, status)
		if errors.Is(err, domain.ErrAlreadyProcessed) {
			return err
		}
		if err != nil {
			logger.ExitMethodWithError("paymentService.HandleNotification", err, "order_id", orderID)
		}
		return err

	default:
		return fmt.Errorf("%w: unexpected notification status %q", domain.ErrInvalidTransition, status)
	}
}

func (s *paymentService) ListPayments(ctx context.Context, actor domain.Actor, page, pageSize int32) ([]domain.Payment, int32, error) {
	return s.paymentRepo.ListByOperator(ctx, actor.OperatorID, page, pageSize)
}

func (s *paymentService) ListBookingPayments(ctx context.Context, actor domain.Actor, bookingID int32) ([]domain.Payment, error) {
	b, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if b.CustomerID != actor.UserID && !(actor.IsStaff() && actor.Owns(b.OperatorID)) {
		return nil, domain.ErrNotFound
	}
	return s.paymentRepo.ListByBooking(ctx, bookingID)
}
