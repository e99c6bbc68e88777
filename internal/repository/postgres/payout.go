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

const payoutColumns = `id, operator_id, account_id, bank_account_id, amount, status, COALESCE(notes, ''),
	proof_urls, COALESCE(rejection_reason, ''), approved_by, approved_at, created_at, updated_at`

type payoutRepository struct {
	db *sql.DB
}

func NewPayoutRepository(db *sql.DB) repository.PayoutRepository {
	return &payoutRepository{db: db}
}

func scanPayout(row interface {
	Scan(dest ...interface{}) error
}) (*domain.Payout, error) {
	p := &domain.Payout{}
	err := row.Scan(&p.ID, &p.OperatorID, &p.AccountID, &p.BankAccountID, &p.Amount, &p.Status, &p.Notes,
		pq.Array(&p.ProofURLs), &p.RejectionReason, &p.ApprovedBy, &p.ApprovedAt, &p.CreatedAt, &p.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

const balanceQuery = `SELECT COALESCE(SUM(CASE WHEN direction = 'IN' THEN amount ELSE -amount END), 0)
	FROM ledger_entries WHERE account_id = $1`

const pendingAmountQuery = `SELECT COALESCE(SUM(amount), 0) FROM payouts
	WHERE operator_id = $1 AND account_id = $2 AND status = 'PENDING'`

// CreatePending reserves funds for the request: the balance computation,
// the pending-payout sum and the insert happen under one per-account
// lock, so two concurrent requests cannot both observe sufficient
// balance and collectively overdraw.
func (r *payoutRepository) CreatePending(ctx context.Context, p *domain.Payout) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `SELECT pg_advisory_xact_lock($1, $2)`, lockClassPayout, p.AccountID); err != nil {
		return err
	}

	var balance int64
	if err := tx.QueryRowContext(ctx, balanceQuery, p.AccountID).Scan(&balance); err != nil {
		return err
	}
	var pending int64
	if err := tx.QueryRowContext(ctx, pendingAmountQuery, p.OperatorID, p.AccountID).Scan(&pending); err != nil {
		return err
	}
	if p.Amount > balance-pending {
		return fmt.Errorf("%w: requested %d, available %d", domain.ErrInsufficientBalance, p.Amount, balance-pending)
	}

	now := time.Now()
	p.Status = domain.PayoutStatusPending
	query := `INSERT INTO payouts (operator_id, account_id, bank_account_id, amount, status, notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8) RETURNING id`
	err = tx.QueryRowContext(ctx, query, p.OperatorID, p.AccountID, p.BankAccountID, p.Amount, p.Status, p.Notes, now, now).Scan(&p.ID)
	if err != nil {
		return err
	}
	p.CreatedAt = now
	p.UpdatedAt = now

	return tx.Commit()
}

func (r *payoutRepository) GetByID(ctx context.Context, id int32) (*domain.Payout, error) {
	query := `SELECT ` + payoutColumns + ` FROM payouts WHERE id = $1`
	return scanPayout(r.db.QueryRowContext(ctx, query, id))
}

// Approve writes the only OUT entries the engine produces. The balance is
// re-checked inside the transaction so the approved amount never exceeds
// the balance computed over entries preceding the new OUT entry.
func (r *payoutRepository) Approve(ctx context.Context, id, approverID int32, proofURLs []string) (*domain.Payout, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	query := `SELECT ` + payoutColumns + ` FROM payouts WHERE id = $1 FOR UPDATE`
	p, err := scanPayout(tx.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, err
	}
	if !p.Status.CanTransitionTo(domain.PayoutStatusApproved) {
		return nil, domain.ErrInvalidTransition
	}

	if _, err := tx.ExecContext(ctx, `SELECT pg_advisory_xact_lock($1, $2)`, lockClassPayout, p.AccountID); err != nil {
		return nil, err
	}
	var balance int64
	if err := tx.QueryRowContext(ctx, balanceQuery, p.AccountID).Scan(&balance); err != nil {
		return nil, err
	}
	if p.Amount > balance {
		return nil, fmt.Errorf("%w: payout %d exceeds balance %d", domain.ErrInsufficientBalance, p.Amount, balance)
	}

	now := time.Now()
	_, err = tx.ExecContext(ctx, `UPDATE payouts SET status = 'APPROVED', proof_urls = $1, approved_by = $2, approved_at = $3, updated_at = $3 WHERE id = $4`,
		pq.Array(proofURLs), approverID, now, id)
	if err != nil {
		return nil, err
	}

	note := fmt.Sprintf("Payout #%d to bank account %d", p.ID, p.BankAccountID)
	_, err = tx.ExecContext(ctx, `INSERT INTO ledger_entries (account_id, direction, amount, entry_date, note, ref_type, ref_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		p.AccountID, domain.EntryDirectionOut, p.Amount, now, note, domain.EntryRefPayout, p.ID, now)
	if err != nil {
		return nil, err
	}

	p.Status = domain.PayoutStatusApproved
	p.ProofURLs = proofURLs
	p.ApprovedBy = &approverID
	p.ApprovedAt = &now
	p.UpdatedAt = now
	return p, tx.Commit()
}

func (r *payoutRepository) Reject(ctx context.Context, id, approverID int32, reason string) (*domain.Payout, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	query := `SELECT ` + payoutColumns + ` FROM payouts WHERE id = $1 FOR UPDATE`
	p, err := scanPayout(tx.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, err
	}
	if !p.Status.CanTransitionTo(domain.PayoutStatusRejected) {
		return nil, domain.ErrInvalidTransition
	}

	now := time.Now()
	_, err = tx.ExecContext(ctx, `UPDATE payouts SET status = 'REJECTED', rejection_reason = $1, approved_by = $2, updated_at = $3 WHERE id = $4`,
		reason, approverID, now, id)
	if err != nil {
		return nil, err
	}

	p.Status = domain.PayoutStatusRejected
	p.RejectionReason = reason
	p.ApprovedBy = &approverID
	p.UpdatedAt = now
	return p, tx.Commit()
}

func (r *payoutRepository) PendingAmount(ctx context.Context, operatorID, accountID int32) (int64, error) {
	var pending int64
	err := r.db.QueryRowContext(ctx, pendingAmountQuery, operatorID, accountID).Scan(&pending)
	return pending, err
}

func (r *payoutRepository) ListByOperator(ctx context.Context, operatorID int32, status string, page, pageSize int32) ([]domain.Payout, int32, error) {
	offset := (page - 1) * pageSize
	query := `SELECT ` + payoutColumns + ` FROM payouts WHERE operator_id = $1`
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

	var payouts []domain.Payout
	for rows.Next() {
		p, err := scanPayout(rows)
		if err != nil {
			return nil, 0, err
		}
		payouts = append(payouts, *p)
	}
	return payouts, count, rows.Err()
}
