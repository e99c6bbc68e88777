package service

import (
	"context"
	"fmt"

	"kostpay-backend/internal/domain"
	"kostpay-backend/internal/logger"
	"kostpay-backend/internal/repository"
)

type notificationService struct {
	noteRepo repository.NotificationRepository
	emailSvc EmailService
	// lookupEmail resolves a user id to an email address via the identity
	// collaborator; nil disables email delivery.
	lookupEmail func(ctx context.Context, userID int32) (string, error)
}

func NewNotificationService(noteRepo repository.NotificationRepository, emailSvc EmailService, lookupEmail func(ctx context.Context, userID int32) (string, error)) NotificationService {
	return &notificationService{noteRepo: noteRepo, emailSvc: emailSvc, lookupEmail: lookupEmail}
}

// dispatch persists the in-app notification and optionally emails the
// user. Any failure is logged; nothing here may fail the caller.
func (s *notificationService) dispatch(ctx context.Context, n *domain.Notification, email func(addr string) error) {
	if err := s.noteRepo.Create(ctx, n); err != nil {
		logger.Error("failed to store notification", "user_id", n.UserID, "title", n.Title, "error", err)
	}
	if email == nil || s.lookupEmail == nil {
		return
	}
	addr, err := s.lookupEmail(ctx, n.UserID)
	if err != nil || addr == "" {
		return
	}
	if err := email(addr); err != nil {
		logger.Error("failed to send notification email", "user_id", n.UserID, "error", err)
	}
}

func (s *notificationService) BookingCreated(ctx context.Context, b *domain.Booking) {
	due := b.TotalAmount - b.DiscountAmount
	s.dispatch(ctx, &domain.Notification{
		UserID:  b.CustomerID,
		Title:   "Booking Created",
		Message: fmt.Sprintf("Booking %s created for check-in on %s", b.Code, b.CheckInDate.Format("2006-01-02")),
		Attributes: map[string]string{
			"type":       "BOOKING_CREATED",
			"booking_id": fmt.Sprintf("%d", b.ID),
		},
	}, func(addr string) error {
		return s.emailSvc.SendBookingCreated(ctx, addr, b.Code, due)
	})
}

func (s *notificationService) PaymentSucceeded(ctx context.Context, b *domain.Booking, p *domain.Payment) {
	s.dispatch(ctx, &domain.Notification{
		UserID:  b.CustomerID,
		Title:   "Payment Received",
		Message: fmt.Sprintf("Payment of %d for booking %s received", p.Amount, b.Code),
		Attributes: map[string]string{
			"type":       "PAYMENT_SUCCESS",
			"booking_id": fmt.Sprintf("%d", b.ID),
			"payment_id": fmt.Sprintf("%d", p.ID),
		},
	}, func(addr string) error {
		return s.emailSvc.SendPaymentReceipt(ctx, addr, b.Code, p.Amount)
	})
}

func (s *notificationService) CheckedIn(ctx context.Context, b *domain.Booking) {
	s.dispatch(ctx, &domain.Notification{
		UserID:  b.CustomerID,
		Title:   "Checked In",
		Message: fmt.Sprintf("Booking %s checked in", b.Code),
		Attributes: map[string]string{
			"type":       "CHECK_IN",
			"booking_id": fmt.Sprintf("%d", b.ID),
		},
	}, nil)
}

func (s *notificationService) CheckedOut(ctx context.Context, b *domain.Booking) {
	s.dispatch(ctx, &domain.Notification{
		UserID:  b.CustomerID,
		Title:   "Checked Out",
		Message: fmt.Sprintf("Booking %s completed", b.Code),
		Attributes: map[string]string{
			"type":       "CHECK_OUT",
			"booking_id": fmt.Sprintf("%d", b.ID),
		},
	}, nil)
}

func (s *notificationService) GetNotifications(ctx context.Context, userID int32, page, pageSize int32) ([]domain.Notification, int32, error) {
	offset := (page - 1) * pageSize
	return s.noteRepo.List(ctx, userID, pageSize, offset)
}

func (s *notificationService) MarkAsRead(ctx context.Context, userID, notificationID int32) error {
	return s.noteRepo.MarkAsRead(ctx, notificationID, userID)
}
