package service

import (
	"context"
	"strings"

	"kostpay-backend/internal/domain"
	"kostpay-backend/internal/repository"
)

type bankAccountService struct {
	bankAccountRepo repository.BankAccountRepository
}

func NewBankAccountService(bankAccountRepo repository.BankAccountRepository) BankAccountService {
	return &bankAccountService{bankAccountRepo: bankAccountRepo}
}

func (s *bankAccountService) Submit(ctx context.Context, actor domain.Actor, input SubmitBankAccountInput) (*domain.BankAccount, error) {
	if input.BankCode == "" || input.AccountNumber == "" || input.HolderName == "" {
		return nil, domain.ErrInvalidAccount
	}
	b := &domain.BankAccount{
		OperatorID:    actor.OperatorID,
		BankCode:      input.BankCode,
		BankName:      input.BankName,
		AccountNumber: input.AccountNumber,
		HolderName:    input.HolderName,
	}
	if err := s.bankAccountRepo.Submit(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

func (s *bankAccountService) Approve(ctx context.Context, actor domain.Actor, bankAccountID int32) (*domain.BankAccount, error) {
	if actor.Role != domain.RoleAdmin {
		return nil, domain.ErrNotFound
	}
	return s.bankAccountRepo.Approve(ctx, bankAccountID, actor.UserID)
}

func (s *bankAccountService) Reject(ctx context.Context, actor domain.Actor, bankAccountID int32, reason string) (*domain.BankAccount, error) {
	if actor.Role != domain.RoleAdmin {
		return nil, domain.ErrNotFound
	}
	if strings.TrimSpace(reason) == "" {
		return nil, domain.ErrMissingReason
	}
	return s.bankAccountRepo.Reject(ctx, bankAccountID, actor.UserID, reason)
}

func (s *bankAccountService) Delete(ctx context.Context, actor domain.Actor, bankAccountID int32) error {
	b, err := s.bankAccountRepo.GetByID(ctx, bankAccountID)
	if err != nil {
		return err
	}
	if !actor.Owns(b.OperatorID) {
		return domain.ErrNotFound
	}
	if !b.Deletable() {
		return domain.ErrInvalidTransition
	}
	return s.bankAccountRepo.Delete(ctx, bankAccountID)
}

func (s *bankAccountService) ListBankAccounts(ctx context.Context, actor domain.Actor) ([]domain.BankAccount, error) {
	return s.bankAccountRepo.ListByOperator(ctx, actor.OperatorID)
}
