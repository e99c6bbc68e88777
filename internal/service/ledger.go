package service

import (
	"context"
	"fmt"

	"kostpay-backend/internal/domain"
	"kostpay-backend/internal/repository"
)

type ledgerService struct {
	ledgerRepo  repository.LedgerRepository
	accountRepo repository.AccountRepository
}

func NewLedgerService(ledgerRepo repository.LedgerRepository, accountRepo repository.AccountRepository) LedgerService {
	return &ledgerService{ledgerRepo: ledgerRepo, accountRepo: accountRepo}
}

// checkAccount is the shared gate for every ledger read and write: the
// account must exist, belong to the caller's operator and not be archived.
func (s *ledgerService) checkAccount(ctx context.Context, actor domain.Actor, accountID int32) (*domain.Account, error) {
	acct, err := s.accountRepo.GetByID(ctx, accountID)
	if err != nil {
		return nil, err
	}
	if !acct.UsableBy(actor.OperatorID) {
		return nil, domain.ErrInvalidAccount
	}
	return acct, nil
}

func (s *ledgerService) RecordManualEntry(ctx context.Context, actor domain.Actor, input ManualEntryInput) (*domain.LedgerEntry, error) {
	if input.Amount <= 0 {
		return nil, fmt.Errorf("%w: entry amount must be positive", domain.ErrAmountMismatch)
	}
	if input.Direction != domain.EntryDirectionIn && input.Direction != domain.EntryDirectionOut {
		return nil, fmt.Errorf("%w: unknown direction %q", domain.ErrInvalidAccount, input.Direction)
	}

	acct, err := s.checkAccount(ctx, actor, input.AccountID)
	if err != nil {
		return nil, err
	}
	if acct.IsSystem {
		// System accounts only move through payments and payouts.
		return nil, domain.ErrInvalidAccount
	}

	entry := &domain.LedgerEntry{
		AccountID:  input.AccountID,
		Direction:  input.Direction,
		Amount:     input.Amount,
		Date:       input.Date,
		Note:       input.Note,
		RefType:    domain.EntryRefManual,
		PropertyID: input.PropertyID,
	}
	if err := s.ledgerRepo.CreateEntry(ctx, entry); err != nil {
		return nil, err
	}
	return entry, nil
}

func (s *ledgerService) Balance(ctx context.Context, actor domain.Actor, accountID int32) (int64, error) {
	acct, err := s.accountRepo.GetByID(ctx, accountID)
	if err != nil {
		return 0, err
	}
	if acct.OwnerID != actor.OperatorID {
		return 0, domain.ErrInvalidAccount
	}
	return s.ledgerRepo.Balance(ctx, accountID)
}

func (s *ledgerService) EntryForPayment(ctx context.Context, actor domain.Actor, paymentID int32) (*domain.LedgerEntry, error) {
	entry, err := s.ledgerRepo.GetByRef(ctx, domain.EntryRefPayment, paymentID)
	if err != nil {
		return nil, err
	}
	// Visibility follows the account the entry landed on.
	if _, err := s.checkAccount(ctx, actor, entry.AccountID); err != nil {
		return nil, err
	}
	return entry, nil
}

func (s *ledgerService) ListEntries(ctx context.Context, actor domain.Actor, accountID int32, page, pageSize int32) ([]domain.LedgerEntry, int32, error) {
	acct, err := s.accountRepo.GetByID(ctx, accountID)
	if err != nil {
		return nil, 0, err
	}
	if acct.OwnerID != actor.OperatorID {
		return nil, 0, domain.ErrInvalidAccount
	}
	return s.ledgerRepo.ListByAccount(ctx, accountID, page, pageSize)
}
