package postgres

import (
	"database/sql"

	"kostpay-backend/internal/repository"

	_ "github.com/lib/pq"
)

// Advisory lock class ids. Each serialized hot path locks on
// (classID, entityID) so unrelated entities never contend.
const (
	lockClassRoom        = 1
	lockClassBankAccount = 2
	lockClassPayout      = 3
)

type Store struct {
	db *sql.DB
	repository.BookingRepository
	repository.PaymentRepository
	repository.AccountRepository
	repository.LedgerRepository
	repository.BankAccountRepository
	repository.PayoutRepository
	repository.RoomRepository
	repository.NotificationRepository
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db:                     db,
		BookingRepository:      NewBookingRepository(db),
		PaymentRepository:      NewPaymentRepository(db),
		AccountRepository:      NewAccountRepository(db),
		LedgerRepository:       NewLedgerRepository(db),
		BankAccountRepository:  NewBankAccountRepository(db),
		PayoutRepository:       NewPayoutRepository(db),
		RoomRepository:         NewRoomRepository(db),
		NotificationRepository: NewNotificationRepository(db),
	}
}
