package service

import (
	"context"
	"fmt"
	"strings"

	"kostpay-backend/internal/domain"
	"kostpay-backend/internal/logger"
	"kostpay-backend/internal/repository"
)

type payoutService struct {
	payoutRepo      repository.PayoutRepository
	bankAccountRepo repository.BankAccountRepository
	accountRepo     repository.AccountRepository
	ledgerRepo      repository.LedgerRepository
}

func NewPayoutService(
	payoutRepo repository.PayoutRepository,
	bankAccountRepo repository.BankAccountRepository,
	accountRepo repository.AccountRepository,
	ledgerRepo repository.LedgerRepository,
) PayoutService {
	return &payoutService{
		payoutRepo:      payoutRepo,
		bankAccountRepo: bankAccountRepo,
		accountRepo:     accountRepo,
		ledgerRepo:      ledgerRepo,
	}
}

// AvailableBalance is the read-side counterpart of the payout insert's
// balance check: a request above Available will be rejected.
func (s *payoutService) AvailableBalance(ctx context.Context, actor domain.Actor) (*PayoutBalance, error) {
	sales, err := s.accountRepo.GetSalesAccount(ctx, actor.OperatorID)
	if err != nil {
		return nil, fmt.Errorf("resolving sales account: %w", err)
	}
	balance, err := s.ledgerRepo.Balance(ctx, sales.ID)
	if err != nil {
		return nil, err
	}
	pending, err := s.payoutRepo.PendingAmount(ctx, actor.OperatorID, sales.ID)
	if err != nil {
		return nil, err
	}
	return &PayoutBalance{Balance: balance, Pending: pending, Available: balance - pending}, nil
}

func (s *payoutService) RequestPayout(ctx context.Context, actor domain.Actor, bankAccountID int32, amount int64, notes string) (*domain.Payout, error) {
	logger.EnterMethod("payoutService.RequestPayout", "bank_account_id", bankAccountID, "amount", amount)

	if amount <= 0 {
		return nil, fmt.Errorf("%w: payout amount must be positive", domain.ErrAmountMismatch)
	}

	bank, err := s.bankAccountRepo.GetApprovedByOperator(ctx, actor.OperatorID)
	if err != nil || bank.ID != bankAccountID {
		return nil, domain.ErrNoApprovedBankAccount
	}

	sales, err := s.accountRepo.GetSalesAccount(ctx, actor.OperatorID)
	if err != nil {
		return nil, fmt.Errorf("resolving sales account: %w", err)
	}

	payout := &domain.Payout{
		OperatorID:    actor.OperatorID,
		AccountID:     sales.ID,
		BankAccountID: bank.ID,
		Amount:        amount,
		Notes:         notes,
	}
	// Balance check and insert are one atomic unit in the repository;
	// pending payouts reserve their amounts against the balance.
	if err := s.payoutRepo.CreatePending(ctx, payout); err != nil {
		logger.ExitMethodWithError("payoutService.RequestPayout", err)
		return nil, err
	}

	logger.ExitMethod("payoutService.RequestPayout", "payout_id", payout.ID)
	return payout, nil
}

func (s *payoutService) ApprovePayout(ctx context.Context, actor domain.Actor, payoutID int32, proofURLs []string) (*domain.Payout, error) {
	if actor.Role != domain.RoleAdmin {
		return nil, domain.ErrNotFound
	}
	if len(proofURLs) == 0 {
		return nil, domain.ErrMissingProof
	}
	return s.payoutRepo.Approve(ctx, payoutID, actor.UserID, proofURLs)
}

func (s *payoutService) RejectPayout(ctx context.Context, actor domain.Actor, payoutID int32, reason string) (*domain.Payout, error) {
	if actor.Role != domain.RoleAdmin {
		return nil, domain.ErrNotFound
	}
	if strings.TrimSpace(reason) == "" {
		return nil, domain.ErrMissingReason
	}
	return s.payoutRepo.Reject(ctx, payoutID, actor.UserID, reason)
}

func (s *payoutService) GetPayout(ctx context.Context, actor domain.Actor, payoutID int32) (*domain.Payout, error) {
	p, err := s.payoutRepo.GetByID(ctx, payoutID)
	if err != nil {
		return nil, err
	}
	if actor.Role != domain.RoleAdmin && !actor.Owns(p.OperatorID) {
		return nil, domain.ErrNotFound
	}
	return p, nil
}

func (s *payoutService) ListPayouts(ctx context.Context, actor domain.Actor, status string, page, pageSize int32) ([]domain.Payout, int32, error) {
	return s.payoutRepo.ListByOperator(ctx, actor.OperatorID, status, page, pageSize)
}
