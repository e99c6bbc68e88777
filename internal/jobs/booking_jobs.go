package jobs

import (
	"context"
	"time"

	"kostpay-backend/internal/logger"
)

// ExpireOverdueBookings moves UNPAID bookings past the payment deadline
// to EXPIRED and closes their open payments.
func (jr *JobRunner) ExpireOverdueBookings() {
	jr.runWithRecovery("ExpireOverdueBookings", func() {
		ctx := context.Background()

		count, err := jr.services.Booking.ExpireOverdueBookings(ctx, time.Now())
		if err != nil {
			logger.Error("Failed to expire overdue bookings", "error", err)
			return
		}

		logger.Info("Expired overdue bookings", "count", count)
	})
}
