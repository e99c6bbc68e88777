package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"kostpay-backend/internal/domain"
	"kostpay-backend/internal/repository"

	"github.com/lib/pq"
)

const bookingColumns = `id, code, customer_id, room_id, property_id, operator_id, check_in_date, check_out_date,
	lease_type, total_amount, deposit_amount, discount_amount, payment_status, status, COALESCE(notes, ''),
	checked_in_at, checked_in_by, checked_out_at, checked_out_by, created_at, updated_at`

type bookingRepository struct {
	db *sql.DB
}

func NewBookingRepository(db *sql.DB) repository.BookingRepository {
	return &bookingRepository{db: db}
}

func scanBooking(row interface {
	Scan(dest ...interface{}) error
}) (*domain.Booking, error) {
	b := &domain.Booking{}
	err := row.Scan(&b.ID, &b.Code, &b.CustomerID, &b.RoomID, &b.PropertyID, &b.OperatorID,
		&b.CheckInDate, &b.CheckOutDate, &b.LeaseType, &b.TotalAmount, &b.DepositAmount,
		&b.DiscountAmount, &b.PaymentStatus, &b.Status, &b.Notes,
		&b.CheckedInAt, &b.CheckedInBy, &b.CheckedOutAt, &b.CheckedOutBy, &b.CreatedAt, &b.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return b, nil
}

// overlapQuery counts non-terminal bookings whose [check_in, check_out)
// range intersects the requested one.
const overlapQuery = `SELECT count(*) FROM bookings
	WHERE room_id = $1 AND status NOT IN ('CANCELLED', 'EXPIRED')
	AND check_in_date < $3 AND check_out_date > $2`

func (r *bookingRepository) CreateIfAvailable(ctx context.Context, b *domain.Booking) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	// Serializes concurrent create/renew calls for the same room. The
	// lock is released at commit/rollback.
	if _, err := tx.ExecContext(ctx, `SELECT pg_advisory_xact_lock($1, $2)`, lockClassRoom, b.RoomID); err != nil {
		return err
	}

	var conflicts int32
	if err := tx.QueryRowContext(ctx, overlapQuery, b.RoomID, b.CheckInDate, b.CheckOutDate).Scan(&conflicts); err != nil {
		return err
	}
	if conflicts > 0 {
		return domain.ErrRoomUnavailable
	}

	now := time.Now()
	query := `INSERT INTO bookings (code, customer_id, room_id, property_id, operator_id, check_in_date, check_out_date,
		lease_type, total_amount, deposit_amount, discount_amount, payment_status, status, notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16) RETURNING id`
	err = tx.QueryRowContext(ctx, query, b.Code, b.CustomerID, b.RoomID, b.PropertyID, b.OperatorID,
		b.CheckInDate, b.CheckOutDate, b.LeaseType, b.TotalAmount, b.DepositAmount, b.DiscountAmount,
		b.PaymentStatus, b.Status, b.Notes, now, now).Scan(&b.ID)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code.Name() == "unique_violation" {
			return fmt.Errorf("booking code %s already exists: %w", b.Code, err)
		}
		return err
	}
	b.CreatedAt = now
	b.UpdatedAt = now

	return tx.Commit()
}

func (r *bookingRepository) GetByID(ctx context.Context, id int32) (*domain.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE id = $1`
	return scanBooking(r.db.QueryRowContext(ctx, query, id))
}

func (r *bookingRepository) GetByCode(ctx context.Context, code string) (*domain.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE code = $1`
	return scanBooking(r.db.QueryRowContext(ctx, query, code))
}

func (r *bookingRepository) Update(ctx context.Context, b *domain.Booking) error {
	query := `UPDATE bookings SET status=$1, payment_status=$2, notes=$3, checked_in_at=$4, checked_in_by=$5,
		checked_out_at=$6, checked_out_by=$7, updated_at=$8 WHERE id=$9`
	result, err := r.db.ExecContext(ctx, query, b.Status, b.PaymentStatus, b.Notes, b.CheckedInAt, b.CheckedInBy,
		b.CheckedOutAt, b.CheckedOutBy, time.Now(), b.ID)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *bookingRepository) HasOverlap(ctx context.Context, roomID int32, checkIn, checkOut time.Time) (bool, error) {
	var count int32
	if err := r.db.QueryRowContext(ctx, overlapQuery, roomID, checkIn, checkOut).Scan(&count); err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *bookingRepository) ListByOperator(ctx context.Context, operatorID int32, status string, page, pageSize int32) ([]domain.Booking, int32, error) {
	offset := (page - 1) * pageSize
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE operator_id = $1`
	args := []interface{}{operatorID}
	argIdx := 2
	if status != "" {
		query += fmt.Sprintf(" AND status = $%d", argIdx)
		args = append(args, status)
		argIdx++
	}

	var count int32
	countQuery := "SELECT count(*) FROM (" + query + ") as sub"
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&count); err != nil {
		return nil, 0, err
	}

	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", argIdx, argIdx+1)
	args = append(args, pageSize, offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var bookings []domain.Booking
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, 0, err
		}
		bookings = append(bookings, *b)
	}
	return bookings, count, rows.Err()
}

func (r *bookingRepository) ListByCustomer(ctx context.Context, customerID int32, page, pageSize int32) ([]domain.Booking, int32, error) {
	offset := (page - 1) * pageSize

	var count int32
	if err := r.db.QueryRowContext(ctx, `SELECT count(*) FROM bookings WHERE customer_id = $1`, customerID).Scan(&count); err != nil {
		return nil, 0, err
	}

	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE customer_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.db.QueryContext(ctx, query, customerID, pageSize, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var bookings []domain.Booking
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, 0, err
		}
		bookings = append(bookings, *b)
	}
	return bookings, count, rows.Err()
}

func (r *bookingRepository) ExpireOverdue(ctx context.Context, now time.Time, paymentDeadline time.Duration) ([]int32, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	// The payment deadline only applies to bookings with no money on them.
	// A paid deposit keeps the booking alive until its check-in date passes.
	deadline := now.Add(-paymentDeadline)
	query := `UPDATE bookings SET status = 'EXPIRED', updated_at = $1
		WHERE (status = 'UNPAID' AND (check_in_date < $1 OR created_at < $2))
		OR (status = 'DEPOSIT_PAID' AND check_in_date < $1)
		RETURNING id`
	rows, err := tx.QueryContext(ctx, query, now, deadline)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []int32
	for rows.Next() {
		var id int32
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if len(ids) > 0 {
		_, err = tx.ExecContext(ctx, `UPDATE payments SET status = 'EXPIRED', updated_at = $1
			WHERE booking_id = ANY($2) AND status = 'PENDING'`, now, pq.Array(ids))
		if err != nil {
			return nil, err
		}
	}

	return ids, tx.Commit()
}
