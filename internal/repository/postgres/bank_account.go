package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"kostpay-backend/internal/domain"
	"kostpay-backend/internal/repository"
)

const bankAccountColumns = `id, operator_id, bank_code, bank_name, account_number, holder_name, status,
	COALESCE(rejection_reason, ''), approved_by, approved_at, created_at, updated_at`

type bankAccountRepository struct {
	db *sql.DB
}

func NewBankAccountRepository(db *sql.DB) repository.BankAccountRepository {
	return &bankAccountRepository{db: db}
}

func scanBankAccount(row interface {
	Scan(dest ...interface{}) error
}) (*domain.BankAccount, error) {
	b := &domain.BankAccount{}
	err := row.Scan(&b.ID, &b.OperatorID, &b.BankCode, &b.BankName, &b.AccountNumber, &b.HolderName,
		&b.Status, &b.RejectionReason, &b.ApprovedBy, &b.ApprovedAt, &b.CreatedAt, &b.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return b, nil
}

func (r *bankAccountRepository) Submit(ctx context.Context, b *domain.BankAccount) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `SELECT pg_advisory_xact_lock($1, $2)`, lockClassBankAccount, b.OperatorID); err != nil {
		return err
	}

	var pending int32
	err = tx.QueryRowContext(ctx, `SELECT count(*) FROM bank_accounts WHERE operator_id = $1 AND status = 'PENDING'`, b.OperatorID).Scan(&pending)
	if err != nil {
		return err
	}
	if pending > 0 {
		return domain.ErrPendingBankAccount
	}

	now := time.Now()
	b.Status = domain.BankAccountStatusPending
	query := `INSERT INTO bank_accounts (operator_id, bank_code, bank_name, account_number, holder_name, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8) RETURNING id`
	err = tx.QueryRowContext(ctx, query, b.OperatorID, b.BankCode, b.BankName, b.AccountNumber, b.HolderName, b.Status, now, now).Scan(&b.ID)
	if err != nil {
		return err
	}
	b.CreatedAt = now
	b.UpdatedAt = now

	return tx.Commit()
}

func (r *bankAccountRepository) GetByID(ctx context.Context, id int32) (*domain.BankAccount, error) {
	query := `SELECT ` + bankAccountColumns + ` FROM bank_accounts WHERE id = $1`
	return scanBankAccount(r.db.QueryRowContext(ctx, query, id))
}

func (r *bankAccountRepository) GetApprovedByOperator(ctx context.Context, operatorID int32) (*domain.BankAccount, error) {
	query := `SELECT ` + bankAccountColumns + ` FROM bank_accounts WHERE operator_id = $1 AND status = 'APPROVED'`
	return scanBankAccount(r.db.QueryRowContext(ctx, query, operatorID))
}

func (r *bankAccountRepository) Approve(ctx context.Context, id, approverID int32) (*domain.BankAccount, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	query := `SELECT ` + bankAccountColumns + ` FROM bank_accounts WHERE id = $1 FOR UPDATE`
	b, err := scanBankAccount(tx.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, err
	}
	if b.Status != domain.BankAccountStatusPending {
		return nil, domain.ErrInvalidTransition
	}

	now := time.Now()

	// An operator holds at most one APPROVED account; a previously
	// approved one is retired when the new request is approved.
	_, err = tx.ExecContext(ctx, `UPDATE bank_accounts SET status = 'REJECTED', rejection_reason = 'Replaced by a newer approved account', updated_at = $1
		WHERE operator_id = $2 AND status = 'APPROVED' AND id <> $3`, now, b.OperatorID, id)
	if err != nil {
		return nil, err
	}

	_, err = tx.ExecContext(ctx, `UPDATE bank_accounts SET status = 'APPROVED', approved_by = $1, approved_at = $2, updated_at = $2 WHERE id = $3`,
		approverID, now, id)
	if err != nil {
		return nil, err
	}

	b.Status = domain.BankAccountStatusApproved
	b.ApprovedBy = &approverID
	b.ApprovedAt = &now
	b.UpdatedAt = now
	return b, tx.Commit()
}

func (r *bankAccountRepository) Reject(ctx context.Context, id, approverID int32, reason string) (*domain.BankAccount, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	query := `SELECT ` + bankAccountColumns + ` FROM bank_accounts WHERE id = $1 FOR UPDATE`
	b, err := scanBankAccount(tx.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, err
	}
	if b.Status != domain.BankAccountStatusPending {
		return nil, domain.ErrInvalidTransition
	}

	now := time.Now()
	_, err = tx.ExecContext(ctx, `UPDATE bank_accounts SET status = 'REJECTED', rejection_reason = $1, approved_by = $2, updated_at = $3 WHERE id = $4`,
		reason, approverID, now, id)
	if err != nil {
		return nil, err
	}

	b.Status = domain.BankAccountStatusRejected
	b.RejectionReason = reason
	b.ApprovedBy = &approverID
	b.UpdatedAt = now
	return b, tx.Commit()
}

func (r *bankAccountRepository) Delete(ctx context.Context, id int32) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM bank_accounts WHERE id = $1 AND status <> 'APPROVED'`, id)
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

func (r *bankAccountRepository) ListByOperator(ctx context.Context, operatorID int32) ([]domain.BankAccount, error) {
	query := `SELECT ` + bankAccountColumns + ` FROM bank_accounts WHERE operator_id = $1 ORDER BY created_at DESC`
	rows, err := r.db.QueryContext(ctx, query, operatorID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var accounts []domain.BankAccount
	for rows.Next() {
		b, err := scanBankAccount(rows)
		if err != nil {
			return nil, err
		}
		accounts = append(accounts, *b)
	}
	return accounts, rows.Err()
}
