package postgres

import (
	"context"
	"testing"
	"time"

	"kostpay-backend/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
)

var paymentRowColumns = []string{"id", "booking_id", "payer_id", "type", "order_id", "amount", "status", "account_id", "transaction_at", "created_at", "updated_at"}

func paymentRow(status domain.PaymentStatus, amount int64) *sqlmock.Rows {
	now := time.Now()
	return sqlmock.NewRows(paymentRowColumns).
		AddRow(1, 100, 7, "FULL", "ORD-100-FULL-ABCD1234", amount, status, 5, nil, now, now)
}

func bookingRow(status domain.BookingStatus) *sqlmock.Rows {
	now := time.Now()
	return sqlmock.NewRows([]string{"id", "code", "customer_id", "room_id", "property_id", "operator_id",
		"check_in_date", "check_out_date", "lease_type", "total_amount", "deposit_amount", "discount_amount",
		"payment_status", "status", "notes", "checked_in_at", "checked_in_by", "checked_out_at", "checked_out_by",
		"created_at", "updated_at"}).
		AddRow(100, "BK-AB12CD34", 7, 10, 20, 30, now, now.AddDate(0, 1, 0), "MONTHLY", 1_000_000, nil, 0,
			"UNPAID", status, "", nil, nil, nil, nil, now, now)
}

func TestPaymentRepository_MarkSucceeded(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := NewPaymentRepository(db)
	ctx := context.Background()
	txTime := time.Now()

	t.Run("SettlesPaymentBookingAndLedgerTogether", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectQuery("SELECT (.+) FROM payments WHERE order_id").
			WithArgs("ORD-100-FULL-ABCD1234").
			WillReturnRows(paymentRow(domain.PaymentStatusPending, 1_000_000))
		mock.ExpectExec("UPDATE payments SET status = 'SUCCESS'").
			WithArgs(txTime, sqlmock.AnyArg(), int32(1)).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectQuery("SELECT (.+) FROM bookings WHERE id").
			WithArgs(int32(100)).
			WillReturnRows(bookingRow(domain.BookingStatusUnpaid))
		mock.ExpectExec("UPDATE bookings SET status").
			WithArgs(domain.BookingStatusConfirmed, domain.BookingPaymentSuccess, sqlmock.AnyArg(), int32(100)).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectQuery("INSERT INTO ledger_entries").
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(50))
		mock.ExpectCommit()

		p, b, err := repo.MarkSucceeded(ctx, "ORD-100-FULL-ABCD1234", 1_000_000, txTime)
		assert.NoError(t, err)
		assert.Equal(t, domain.PaymentStatusSuccess, p.Status)
		assert.Equal(t, domain.BookingStatusConfirmed, b.Status)
		assert.Equal(t, domain.BookingPaymentSuccess, b.PaymentStatus)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("DuplicateTerminalPayment", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectQuery("SELECT (.+) FROM payments WHERE order_id").
			WithArgs("ORD-100-FULL-ABCD1234").
			WillReturnRows(paymentRow(domain.PaymentStatusSuccess, 1_000_000))
		mock.ExpectRollback()

		p, _, err := repo.MarkSucceeded(ctx, "ORD-100-FULL-ABCD1234", 1_000_000, txTime)
		assert.ErrorIs(t, err, domain.ErrAlreadyProcessed)
		assert.NotNil(t, p)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("AmountMismatch", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectQuery("SELECT (.+) FROM payments WHERE order_id").
			WithArgs("ORD-100-FULL-ABCD1234").
			WillReturnRows(paymentRow(domain.PaymentStatusPending, 1_000_000))
		mock.ExpectRollback()

		_, _, err := repo.MarkSucceeded(ctx, "ORD-100-FULL-ABCD1234", 999_999, txTime)
		assert.ErrorIs(t, err, domain.ErrAmountMismatch)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("UnknownOrder", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectQuery("SELECT (.+) FROM payments WHERE order_id").
			WithArgs("ORD-0-FULL-MISSING0").
			WillReturnRows(sqlmock.NewRows(paymentRowColumns))
		mock.ExpectRollback()

		_, _, err := repo.MarkSucceeded(ctx, "ORD-0-FULL-MISSING0", 1_000_000, txTime)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestPaymentRepository_MarkClosed(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := NewPaymentRepository(db)
	ctx := context.Background()

	t.Run("ClosesPendingPayment", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectQuery("SELECT (.+) FROM payments WHERE order_id").
			WithArgs("ORD-100-FULL-ABCD1234").
			WillReturnRows(paymentRow(domain.PaymentStatusPending, 1_000_000))
		mock.ExpectExec("UPDATE payments SET status").
			WithArgs(domain.PaymentStatusFailed, sqlmock.AnyArg(), int32(1)).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		p, err := repo.MarkClosed(ctx, "ORD-100-FULL-ABCD1234", domain.PaymentStatusFailed)
		assert.NoError(t, err)
		assert.Equal(t, domain.PaymentStatusFailed, p.Status)
	})

	t.Run("TerminalPaymentUntouched", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectQuery("SELECT (.+) FROM payments WHERE order_id").
			WithArgs("ORD-100-FULL-ABCD1234").
			WillReturnRows(paymentRow(domain.PaymentStatusSuccess, 1_000_000))
		mock.ExpectRollback()

		_, err := repo.MarkClosed(ctx, "ORD-100-FULL-ABCD1234", domain.PaymentStatusExpired)
		assert.ErrorIs(t, err, domain.ErrAlreadyProcessed)
	})
}

func TestPaymentRepository_CreateSettled(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := NewPaymentRepository(db)
	ctx := context.Background()

	t.Run("InsertsPaymentAndEntryInOneTransaction", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectQuery("INSERT INTO payments").
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
		mock.ExpectQuery("INSERT INTO ledger_entries").
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(50))
		mock.ExpectCommit()

		p := &domain.Payment{BookingID: 100, PayerID: 7, Type: domain.PaymentTypeFull, OrderID: "ORD-100-FULL-ABCD1234", Amount: 900_000, AccountID: 5}
		entry := &domain.LedgerEntry{AccountID: 5, Direction: domain.EntryDirectionIn, Amount: 900_000, Date: time.Now()}

		err := repo.CreateSettled(ctx, p, entry)
		assert.NoError(t, err)
		assert.Equal(t, domain.PaymentStatusSuccess, p.Status)
		assert.Equal(t, domain.EntryRefPayment, entry.RefType)
		if assert.NotNil(t, entry.RefID) {
			assert.Equal(t, int32(1), *entry.RefID)
		}
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("EntryFailureRollsBackPayment", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectQuery("INSERT INTO payments").
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
		mock.ExpectQuery("INSERT INTO ledger_entries").
			WillReturnError(assert.AnError)
		mock.ExpectRollback()

		p := &domain.Payment{BookingID: 100, OrderID: "ORD-100-FULL-EFGH5678", Amount: 900_000, AccountID: 5}
		entry := &domain.LedgerEntry{AccountID: 5, Direction: domain.EntryDirectionIn, Amount: 900_000, Date: time.Now()}

		err := repo.CreateSettled(ctx, p, entry)
		assert.Error(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
