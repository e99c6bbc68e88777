package service

import (
	"context"
	"testing"
	"time"

	"kostpay-backend/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestLedgerService_RecordManualEntry(t *testing.T) {
	ctx := context.Background()
	operator := domain.Actor{UserID: 3, Role: domain.RoleOperator, OperatorID: 30}
	expenseAccount := &domain.Account{ID: 6, OwnerID: 30, Kind: domain.AccountKindExpense}

	t.Run("Success", func(t *testing.T) {
		ledgerRepo := new(MockLedgerRepo)
		accountRepo := new(MockAccountRepo)
		svc := NewLedgerService(ledgerRepo, accountRepo)

		accountRepo.On("GetByID", ctx, int32(6)).Return(expenseAccount, nil)
		ledgerRepo.On("CreateEntry", ctx, mock.MatchedBy(func(e *domain.LedgerEntry) bool {
			return e.AccountID == 6 && e.Direction == domain.EntryDirectionOut && e.Amount == 50_000 && e.RefType == domain.EntryRefManual
		})).Return(nil)

		entry, err := svc.RecordManualEntry(ctx, operator, ManualEntryInput{
			AccountID: 6,
			Direction: domain.EntryDirectionOut,
			Amount:    50_000,
			Date:      time.Now(),
			Note:      "plumbing repair",
		})
		assert.NoError(t, err)
		assert.Equal(t, domain.EntryRefManual, entry.RefType)
	})

	t.Run("SystemAccountRejected", func(t *testing.T) {
		ledgerRepo := new(MockLedgerRepo)
		accountRepo := new(MockAccountRepo)
		svc := NewLedgerService(ledgerRepo, accountRepo)

		accountRepo.On("GetByID", ctx, int32(5)).Return(testSalesAccount(), nil)

		_, err := svc.RecordManualEntry(ctx, operator, ManualEntryInput{
			AccountID: 5,
			Direction: domain.EntryDirectionIn,
			Amount:    50_000,
			Date:      time.Now(),
		})
		assert.ErrorIs(t, err, domain.ErrInvalidAccount)
		ledgerRepo.AssertNotCalled(t, "CreateEntry", mock.Anything, mock.Anything)
	})

	t.Run("ArchivedAccountRejected", func(t *testing.T) {
		ledgerRepo := new(MockLedgerRepo)
		accountRepo := new(MockAccountRepo)
		svc := NewLedgerService(ledgerRepo, accountRepo)

		accountRepo.On("GetByID", ctx, int32(6)).Return(&domain.Account{ID: 6, OwnerID: 30, IsArchived: true}, nil)

		_, err := svc.RecordManualEntry(ctx, operator, ManualEntryInput{
			AccountID: 6,
			Direction: domain.EntryDirectionIn,
			Amount:    50_000,
			Date:      time.Now(),
		})
		assert.ErrorIs(t, err, domain.ErrInvalidAccount)
	})

	t.Run("OtherOperatorAccount", func(t *testing.T) {
		ledgerRepo := new(MockLedgerRepo)
		accountRepo := new(MockAccountRepo)
		svc := NewLedgerService(ledgerRepo, accountRepo)

		accountRepo.On("GetByID", ctx, int32(6)).Return(&domain.Account{ID: 6, OwnerID: 31}, nil)

		_, err := svc.RecordManualEntry(ctx, operator, ManualEntryInput{
			AccountID: 6,
			Direction: domain.EntryDirectionIn,
			Amount:    50_000,
			Date:      time.Now(),
		})
		assert.ErrorIs(t, err, domain.ErrInvalidAccount)
	})

	t.Run("NonPositiveAmount", func(t *testing.T) {
		svc := NewLedgerService(new(MockLedgerRepo), new(MockAccountRepo))

		_, err := svc.RecordManualEntry(ctx, operator, ManualEntryInput{
			AccountID: 6,
			Direction: domain.EntryDirectionIn,
			Amount:    -100,
			Date:      time.Now(),
		})
		assert.ErrorIs(t, err, domain.ErrAmountMismatch)
	})

	t.Run("UnknownDirection", func(t *testing.T) {
		svc := NewLedgerService(new(MockLedgerRepo), new(MockAccountRepo))

		_, err := svc.RecordManualEntry(ctx, operator, ManualEntryInput{
			AccountID: 6,
			Direction: "SIDEWAYS",
			Amount:    100,
			Date:      time.Now(),
		})
		assert.ErrorIs(t, err, domain.ErrInvalidAccount)
	})
}

func TestLedgerService_Balance(t *testing.T) {
	ctx := context.Background()
	operator := domain.Actor{UserID: 3, Role: domain.RoleOperator, OperatorID: 30}

	t.Run("Success", func(t *testing.T) {
		ledgerRepo := new(MockLedgerRepo)
		accountRepo := new(MockAccountRepo)
		svc := NewLedgerService(ledgerRepo, accountRepo)

		accountRepo.On("GetByID", ctx, int32(5)).Return(testSalesAccount(), nil)
		ledgerRepo.On("Balance", ctx, int32(5)).Return(int64(500_000), nil)

		balance, err := svc.Balance(ctx, operator, 5)
		assert.NoError(t, err)
		assert.Equal(t, int64(500_000), balance)
	})

	t.Run("OtherOperatorHidden", func(t *testing.T) {
		ledgerRepo := new(MockLedgerRepo)
		accountRepo := new(MockAccountRepo)
		svc := NewLedgerService(ledgerRepo, accountRepo)

		accountRepo.On("GetByID", ctx, int32(5)).Return(&domain.Account{ID: 5, OwnerID: 31}, nil)

		_, err := svc.Balance(ctx, operator, 5)
		assert.ErrorIs(t, err, domain.ErrInvalidAccount)
		ledgerRepo.AssertNotCalled(t, "Balance", mock.Anything, mock.Anything)
	})
}

func TestLedgerService_EntryForPayment(t *testing.T) {
	ctx := context.Background()
	operator := domain.Actor{UserID: 3, Role: domain.RoleOperator, OperatorID: 30}
	refID := int32(50)

	t.Run("Success", func(t *testing.T) {
		ledgerRepo := new(MockLedgerRepo)
		accountRepo := new(MockAccountRepo)
		svc := NewLedgerService(ledgerRepo, accountRepo)

		ledgerRepo.On("GetByRef", ctx, domain.EntryRefPayment, int32(50)).Return(&domain.LedgerEntry{
			ID: 90, AccountID: 5, Direction: domain.EntryDirectionIn, Amount: 900_000, RefType: domain.EntryRefPayment, RefID: &refID,
		}, nil)
		accountRepo.On("GetByID", ctx, int32(5)).Return(testSalesAccount(), nil)

		entry, err := svc.EntryForPayment(ctx, operator, 50)
		assert.NoError(t, err)
		assert.Equal(t, int64(900_000), entry.Amount)
	})

	t.Run("OtherOperatorHidden", func(t *testing.T) {
		ledgerRepo := new(MockLedgerRepo)
		accountRepo := new(MockAccountRepo)
		svc := NewLedgerService(ledgerRepo, accountRepo)

		ledgerRepo.On("GetByRef", ctx, domain.EntryRefPayment, int32(50)).Return(&domain.LedgerEntry{ID: 90, AccountID: 5}, nil)
		accountRepo.On("GetByID", ctx, int32(5)).Return(&domain.Account{ID: 5, OwnerID: 31}, nil)

		_, err := svc.EntryForPayment(ctx, operator, 50)
		assert.ErrorIs(t, err, domain.ErrInvalidAccount)
	})

	t.Run("NoEntry", func(t *testing.T) {
		ledgerRepo := new(MockLedgerRepo)
		svc := NewLedgerService(ledgerRepo, new(MockAccountRepo))

		ledgerRepo.On("GetByRef", ctx, domain.EntryRefPayment, int32(50)).Return(nil, domain.ErrNotFound)

		_, err := svc.EntryForPayment(ctx, operator, 50)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestAccountService_CreateAccount(t *testing.T) {
	ctx := context.Background()
	operator := domain.Actor{UserID: 3, Role: domain.RoleOperator, OperatorID: 30}

	t.Run("Success", func(t *testing.T) {
		accountRepo := new(MockAccountRepo)
		svc := NewAccountService(accountRepo)

		accountRepo.On("Create", ctx, mock.MatchedBy(func(a *domain.Account) bool {
			return a.OwnerID == 30 && a.Kind == domain.AccountKindExpense && !a.IsSystem
		})).Return(nil)

		a, err := svc.CreateAccount(ctx, operator, "Maintenance", domain.AccountKindExpense)
		assert.NoError(t, err)
		assert.Equal(t, "Maintenance", a.Name)
	})

	t.Run("SystemKindRejected", func(t *testing.T) {
		svc := NewAccountService(new(MockAccountRepo))

		_, err := svc.CreateAccount(ctx, operator, "Sales", domain.AccountKindSystem)
		assert.ErrorIs(t, err, domain.ErrInvalidAccount)
	})
}

func TestAccountService_ArchiveAccount(t *testing.T) {
	ctx := context.Background()
	operator := domain.Actor{UserID: 3, Role: domain.RoleOperator, OperatorID: 30}

	t.Run("SystemAccountRejected", func(t *testing.T) {
		accountRepo := new(MockAccountRepo)
		svc := NewAccountService(accountRepo)

		accountRepo.On("GetByID", ctx, int32(5)).Return(testSalesAccount(), nil)

		err := svc.ArchiveAccount(ctx, operator, 5)
		assert.ErrorIs(t, err, domain.ErrInvalidAccount)
		accountRepo.AssertNotCalled(t, "Archive", mock.Anything, mock.Anything)
	})

	t.Run("Success", func(t *testing.T) {
		accountRepo := new(MockAccountRepo)
		svc := NewAccountService(accountRepo)

		accountRepo.On("GetByID", ctx, int32(6)).Return(&domain.Account{ID: 6, OwnerID: 30, Kind: domain.AccountKindExpense}, nil)
		accountRepo.On("Archive", ctx, int32(6)).Return(nil)

		err := svc.ArchiveAccount(ctx, operator, 6)
		assert.NoError(t, err)
	})
}
