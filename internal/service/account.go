package service

import (
	"context"

	"kostpay-backend/internal/domain"
	"kostpay-backend/internal/repository"
)

type accountService struct {
	accountRepo repository.AccountRepository
}

func NewAccountService(accountRepo repository.AccountRepository) AccountService {
	return &accountService{accountRepo: accountRepo}
}

func (s *accountService) CreateAccount(ctx context.Context, actor domain.Actor, name string, kind domain.AccountKind) (*domain.Account, error) {
	if name == "" {
		return nil, domain.ErrInvalidAccount
	}
	if kind != domain.AccountKindIncome && kind != domain.AccountKindExpense {
		// SYSTEM accounts are seeded, never created through the API.
		return nil, domain.ErrInvalidAccount
	}
	a := &domain.Account{
		OwnerID: actor.OperatorID,
		Name:    name,
		Kind:    kind,
	}
	if err := s.accountRepo.Create(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

func (s *accountService) ListAccounts(ctx context.Context, actor domain.Actor) ([]domain.Account, error) {
	return s.accountRepo.ListByOwner(ctx, actor.OperatorID)
}

func (s *accountService) ArchiveAccount(ctx context.Context, actor domain.Actor, accountID int32) error {
	a, err := s.accountRepo.GetByID(ctx, accountID)
	if err != nil {
		return err
	}
	if a.OwnerID != actor.OperatorID || a.IsSystem {
		return domain.ErrInvalidAccount
	}
	return s.accountRepo.Archive(ctx, accountID)
}
