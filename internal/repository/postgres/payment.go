package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"kostpay-backend/internal/domain"
	"kostpay-backend/internal/repository"
)

const paymentColumns = `id, booking_id, payer_id, type, order_id, amount, status, account_id, transaction_at, created_at, updated_at`

type paymentRepository struct {
	db *sql.DB
}

func NewPaymentRepository(db *sql.DB) repository.PaymentRepository {
	return &paymentRepository{db: db}
}

func scanPayment(row interface {
	Scan(dest ...interface{}) error
}) (*domain.Payment, error) {
	p := &domain.Payment{}
	err := row.Scan(&p.ID, &p.BookingID, &p.PayerID, &p.Type, &p.OrderID, &p.Amount,
		&p.Status, &p.AccountID, &p.TransactionAt, &p.CreatedAt, &p.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

const insertPaymentQuery = `INSERT INTO payments (booking_id, payer_id, type, order_id, amount, status, account_id, transaction_at, created_at, updated_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10) RETURNING id`

const insertEntryQuery = `INSERT INTO ledger_entries (account_id, direction, amount, entry_date, note, ref_type, ref_id, property_id, created_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9) RETURNING id`

func (r *paymentRepository) Create(ctx context.Context, p *domain.Payment) error {
	now := time.Now()
	err := r.db.QueryRowContext(ctx, insertPaymentQuery, p.BookingID, p.PayerID, p.Type, p.OrderID,
		p.Amount, p.Status, p.AccountID, p.TransactionAt, now, now).Scan(&p.ID)
	if err != nil {
		return err
	}
	p.CreatedAt = now
	p.UpdatedAt = now
	return nil
}

func (r *paymentRepository) CreateSettled(ctx context.Context, p *domain.Payment, entry *domain.LedgerEntry) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	now := time.Now()
	p.Status = domain.PaymentStatusSuccess
	if p.TransactionAt == nil {
		p.TransactionAt = &now
	}
	err = tx.QueryRowContext(ctx, insertPaymentQuery, p.BookingID, p.PayerID, p.Type, p.OrderID,
		p.Amount, p.Status, p.AccountID, p.TransactionAt, now, now).Scan(&p.ID)
	if err != nil {
		return err
	}

	entry.RefType = domain.EntryRefPayment
	entry.RefID = &p.ID
	err = tx.QueryRowContext(ctx, insertEntryQuery, entry.AccountID, domain.EntryDirectionIn, entry.Amount,
		entry.Date, entry.Note, entry.RefType, entry.RefID, entry.PropertyID, now).Scan(&entry.ID)
	if err != nil {
		return err
	}

	return tx.Commit()
}

func (r *paymentRepository) GetByID(ctx context.Context, id int32) (*domain.Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM payments WHERE id = $1`
	return scanPayment(r.db.QueryRowContext(ctx, query, id))
}

func (r *paymentRepository) GetByOrderID(ctx context.Context, orderID string) (*domain.Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM payments WHERE order_id = $1`
	return scanPayment(r.db.QueryRowContext(ctx, query, orderID))
}

// MarkSucceeded is the single atomic unit behind gateway notifications:
// payment SUCCESS, booking transition and ledger credit commit together
// or not at all.
func (r *paymentRepository) MarkSucceeded(ctx context.Context, orderID string, amount int64, txTime time.Time) (*domain.Payment, *domain.Booking, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, nil, err
	}
	defer tx.Rollback()

	query := `SELECT ` + paymentColumns + ` FROM payments WHERE order_id = $1 FOR UPDATE`
	p, err := scanPayment(tx.QueryRowContext(ctx, query, orderID))
	if err != nil {
		return nil, nil, err
	}
	if p.Status.IsTerminal() {
		return p, nil, domain.ErrAlreadyProcessed
	}
	if p.Amount != amount {
		return nil, nil, domain.ErrAmountMismatch
	}

	now := time.Now()
	p.Status = domain.PaymentStatusSuccess
	p.TransactionAt = &txTime
	_, err = tx.ExecContext(ctx, `UPDATE payments SET status = 'SUCCESS', transaction_at = $1, updated_at = $2 WHERE id = $3`,
		txTime, now, p.ID)
	if err != nil {
		return nil, nil, err
	}

	bookingQuery := `SELECT ` + bookingColumns + ` FROM bookings WHERE id = $1 FOR UPDATE`
	b, err := scanBooking(tx.QueryRowContext(ctx, bookingQuery, p.BookingID))
	if err != nil {
		return nil, nil, err
	}

	next, err := domain.NextStatusOnPayment(b.Status, p.Type)
	if err != nil {
		return nil, nil, err
	}
	b.Status = next
	b.PaymentStatus = domain.PaymentStatusOnPayment(p.Type)
	_, err = tx.ExecContext(ctx, `UPDATE bookings SET status = $1, payment_status = $2, updated_at = $3 WHERE id = $4`,
		b.Status, b.PaymentStatus, now, b.ID)
	if err != nil {
		return nil, nil, err
	}

	entry := &domain.LedgerEntry{
		AccountID:  p.AccountID,
		Direction:  domain.EntryDirectionIn,
		Amount:     p.Amount,
		Date:       txTime,
		Note:       "Payment for booking " + b.Code,
		RefType:    domain.EntryRefPayment,
		RefID:      &p.ID,
		PropertyID: &b.PropertyID,
	}
	err = tx.QueryRowContext(ctx, insertEntryQuery, entry.AccountID, entry.Direction, entry.Amount,
		entry.Date, entry.Note, entry.RefType, entry.RefID, entry.PropertyID, now).Scan(&entry.ID)
	if err != nil {
		return nil, nil, err
	}

	return p, b, tx.Commit()
}

func (r *paymentRepository) MarkClosed(ctx context.Context, orderID string, status domain.PaymentStatus) (*domain.Payment, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	query := `SELECT ` + paymentColumns + ` FROM payments WHERE order_id = $1 FOR UPDATE`
	p, err := scanPayment(tx.QueryRowContext(ctx, query, orderID))
	if err != nil {
		return nil, err
	}
	if p.Status.IsTerminal() {
		return p, domain.ErrAlreadyProcessed
	}

	p.Status = status
	_, err = tx.ExecContext(ctx, `UPDATE payments SET status = $1, updated_at = $2 WHERE id = $3`, status, time.Now(), p.ID)
	if err != nil {
		return nil, err
	}
	return p, tx.Commit()
}

func (r *paymentRepository) ListByBooking(ctx context.Context, bookingID int32) ([]domain.Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM payments WHERE booking_id = $1 ORDER BY created_at`
	rows, err := r.db.QueryContext(ctx, query, bookingID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var payments []domain.Payment
	for rows.Next() {
		p, err := scanPayment(rows)
		if err != nil {
			return nil, err
		}
		payments = append(payments, *p)
	}
	return payments, rows.Err()
}

func (r *paymentRepository) ListByOperator(ctx context.Context, operatorID int32, page, pageSize int32) ([]domain.Payment, int32, error) {
	offset := (page - 1) * pageSize

	var count int32
	countQuery := `SELECT count(*) FROM payments p JOIN bookings b ON b.id = p.booking_id WHERE b.operator_id = $1`
	if err := r.db.QueryRowContext(ctx, countQuery, operatorID).Scan(&count); err != nil {
		return nil, 0, err
	}

	query := `SELECT p.id, p.booking_id, p.payer_id, p.type, p.order_id, p.amount, p.status, p.account_id, p.transaction_at, p.created_at, p.updated_at
		FROM payments p JOIN bookings b ON b.id = p.booking_id
		WHERE b.operator_id = $1 ORDER BY p.created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.db.QueryContext(ctx, query, operatorID, pageSize, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var payments []domain.Payment
	for rows.Next() {
		p, err := scanPayment(rows)
		if err != nil {
			return nil, 0, err
		}
		payments = append(payments, *p)
	}
	return payments, count, rows.Err()
}
