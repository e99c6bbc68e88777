package service

import (
	"context"
	"testing"
	"time"

	"kostpay-backend/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestPaymentService_HandleNotification(t *testing.T) {
	ctx := context.Background()
	txTime := time.Now()

	t.Run("Success", func(t *testing.T) {
		paymentRepo := new(MockPaymentRepo)
		svc := NewPaymentService(paymentRepo, new(MockBookingRepo), stubNotifier{})

		payment := &domain.Payment{ID: 1, OrderID: "ORD-100-FULL-ABCD1234", Status: domain.PaymentStatusSuccess}
		booking := &domain.Booking{ID: 100, Status: domain.BookingStatusConfirmed}
		paymentRepo.On("MarkSucceeded", ctx, "ORD-100-FULL-ABCD1234", int64(1_000_000), txTime).Return(payment, booking, nil)

		err := svc.HandleNotification(ctx, "ORD-100-FULL-ABCD1234", domain.PaymentStatusSuccess, 1_000_000, txTime)
		assert.NoError(t, err)
		paymentRepo.AssertExpectations(t)
	})

	t.Run("DuplicateTerminal", func(t *testing.T) {
		paymentRepo := new(MockPaymentRepo)
		svc := NewPaymentService(paymentRepo, new(MockBookingRepo), stubNotifier{})

		paymentRepo.On("MarkSucceeded", ctx, "ORD-100-FULL-ABCD1234", int64(1_000_000), txTime).Return(nil, nil, domain.ErrAlreadyProcessed)

		err := svc.HandleNotification(ctx, "ORD-100-FULL-ABCD1234", domain.PaymentStatusSuccess, 1_000_000, txTime)
		assert.ErrorIs(t, err, domain.ErrAlreadyProcessed)
	})

	t.Run("AmountMismatch", func(t *testing.T) {
		paymentRepo := new(MockPaymentRepo)
		svc := NewPaymentService(paymentRepo, new(MockBookingRepo), stubNotifier{})

		paymentRepo.On("MarkSucceeded", ctx, "ORD-100-FULL-ABCD1234", int64(500), txTime).Return(nil, nil, domain.ErrAmountMismatch)

		err := svc.HandleNotification(ctx, "ORD-100-FULL-ABCD1234", domain.PaymentStatusSuccess, 500, txTime)
		assert.ErrorIs(t, err, domain.ErrAmountMismatch)
	})

	t.Run("Failed", func(t *testing.T) {
		paymentRepo := new(MockPaymentRepo)
		svc := NewPaymentService(paymentRepo, new(MockBookingRepo), stubNotifier{})

		paymentRepo.On("MarkClosed", ctx, "ORD-100-FULL-ABCD1234", domain.PaymentStatusFailed).Return(&domain.Payment{Status: domain.PaymentStatusFailed}, nil)

		err := svc.HandleNotification(ctx, "ORD-100-FULL-ABCD1234", domain.PaymentStatusFailed, 1_000_000, txTime)
		assert.NoError(t, err)
		paymentRepo.AssertNotCalled(t, "MarkSucceeded", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("UnknownStatus", func(t *testing.T) {
		paymentRepo := new(MockPaymentRepo)
		svc := NewPaymentService(paymentRepo, new(MockBookingRepo), stubNotifier{})

		err := svc.HandleNotification(ctx, "ORD-100-FULL-ABCD1234", "REFUNDED", 1_000_000, txTime)
		assert.ErrorIs(t, err, domain.ErrInvalidTransition)
	})
}

func TestPaymentService_ListBookingPayments(t *testing.T) {
	ctx := context.Background()

	t.Run("OwnerCustomer", func(t *testing.T) {
		paymentRepo := new(MockPaymentRepo)
		bookingRepo := new(MockBookingRepo)
		svc := NewPaymentService(paymentRepo, bookingRepo, stubNotifier{})

		bookingRepo.On("GetByID", ctx, int32(100)).Return(&domain.Booking{ID: 100, CustomerID: 7, OperatorID: 30}, nil)
		paymentRepo.On("ListByBooking", ctx, int32(100)).Return([]domain.Payment{{ID: 1}}, nil)

		payments, err := svc.ListBookingPayments(ctx, domain.Actor{UserID: 7, Role: domain.RoleCustomer}, 100)
		assert.NoError(t, err)
		assert.Len(t, payments, 1)
	})

	t.Run("StrangerForbidden", func(t *testing.T) {
		paymentRepo := new(MockPaymentRepo)
		bookingRepo := new(MockBookingRepo)
		svc := NewPaymentService(paymentRepo, bookingRepo, stubNotifier{})

		bookingRepo.On("GetByID", ctx, int32(100)).Return(&domain.Booking{ID: 100, CustomerID: 7, OperatorID: 30}, nil)

		_, err := svc.ListBookingPayments(ctx, domain.Actor{UserID: 9, Role: domain.RoleCustomer}, 100)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}
