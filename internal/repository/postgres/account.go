package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"kostpay-backend/internal/domain"
	"kostpay-backend/internal/repository"
)

const accountColumns = `id, owner_id, name, kind, is_system, is_archived, created_at, updated_at`

type accountRepository struct {
	db *sql.DB
}

func NewAccountRepository(db *sql.DB) repository.AccountRepository {
	return &accountRepository{db: db}
}

func scanAccount(row interface {
	Scan(dest ...interface{}) error
}) (*domain.Account, error) {
	a := &domain.Account{}
	err := row.Scan(&a.ID, &a.OwnerID, &a.Name, &a.Kind, &a.IsSystem, &a.IsArchived, &a.CreatedAt, &a.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return a, nil
}

func (r *accountRepository) Create(ctx context.Context, a *domain.Account) error {
	now := time.Now()
	query := `INSERT INTO accounts (owner_id, name, kind, is_system, is_archived, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id`
	err := r.db.QueryRowContext(ctx, query, a.OwnerID, a.Name, a.Kind, a.IsSystem, a.IsArchived, now, now).Scan(&a.ID)
	if err != nil {
		return err
	}
	a.CreatedAt = now
	a.UpdatedAt = now
	return nil
}

func (r *accountRepository) GetByID(ctx context.Context, id int32) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE id = $1`
	return scanAccount(r.db.QueryRowContext(ctx, query, id))
}

func (r *accountRepository) GetSalesAccount(ctx context.Context, operatorID int32) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE owner_id = $1 AND is_system = true AND kind = 'SYSTEM' AND is_archived = false`
	return scanAccount(r.db.QueryRowContext(ctx, query, operatorID))
}

func (r *accountRepository) ListByOwner(ctx context.Context, ownerID int32) ([]domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE owner_id = $1 ORDER BY created_at`
	rows, err := r.db.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var accounts []domain.Account
	for rows.Next() {
		a, err := scanAccount(rows)
		if err != nil {
			return nil, err
		}
		accounts = append(accounts, *a)
	}
	return accounts, rows.Err()
}

func (r *accountRepository) Archive(ctx context.Context, id int32) error {
	result, err := r.db.ExecContext(ctx, `UPDATE accounts SET is_archived = true, updated_at = $1 WHERE id = $2 AND is_system = false`, time.Now(), id)
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
