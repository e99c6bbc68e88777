package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"kostpay-backend/internal/domain"
	"kostpay-backend/internal/repository"
)

const entryColumns = `id, account_id, direction, amount, entry_date, COALESCE(note, ''), ref_type, ref_id, property_id, created_at`

type ledgerRepository struct {
	db *sql.DB
}

func NewLedgerRepository(db *sql.DB) repository.LedgerRepository {
	return &ledgerRepository{db: db}
}

func scanEntry(row interface {
	Scan(dest ...interface{}) error
}) (*domain.LedgerEntry, error) {
	e := &domain.LedgerEntry{}
	err := row.Scan(&e.ID, &e.AccountID, &e.Direction, &e.Amount, &e.Date, &e.Note,
		&e.RefType, &e.RefID, &e.PropertyID, &e.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return e, nil
}

func (r *ledgerRepository) CreateEntry(ctx context.Context, e *domain.LedgerEntry) error {
	now := time.Now()
	err := r.db.QueryRowContext(ctx, insertEntryQuery, e.AccountID, e.Direction, e.Amount,
		e.Date, e.Note, e.RefType, e.RefID, e.PropertyID, now).Scan(&e.ID)
	if err != nil {
		return err
	}
	e.CreatedAt = now
	return nil
}

func (r *ledgerRepository) Balance(ctx context.Context, accountID int32) (int64, error) {
	var balance int64
	query := `SELECT COALESCE(SUM(CASE WHEN direction = 'IN' THEN amount ELSE -amount END), 0)
		FROM ledger_entries WHERE account_id = $1`
	err := r.db.QueryRowContext(ctx, query, accountID).Scan(&balance)
	return balance, err
}

func (r *ledgerRepository) ListByAccount(ctx context.Context, accountID int32, page, pageSize int32) ([]domain.LedgerEntry, int32, error) {
	offset := (page - 1) * pageSize

	var count int32
	if err := r.db.QueryRowContext(ctx, `SELECT count(*) FROM ledger_entries WHERE account_id = $1`, accountID).Scan(&count); err != nil {
		return nil, 0, err
	}

	query := `SELECT ` + entryColumns + ` FROM ledger_entries WHERE account_id = $1 ORDER BY created_at DESC, id DESC LIMIT $2 OFFSET $3`
	rows, err := r.db.QueryContext(ctx, query, accountID, pageSize, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var entries []domain.LedgerEntry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, 0, err
		}
		entries = append(entries, *e)
	}
	return entries, count, rows.Err()
}

func (r *ledgerRepository) GetByRef(ctx context.Context, refType domain.EntryRefType, refID int32) (*domain.LedgerEntry, error) {
	query := `SELECT ` + entryColumns + ` FROM ledger_entries WHERE ref_type = $1 AND ref_id = $2`
	return scanEntry(r.db.QueryRowContext(ctx, query, refType, refID))
}
