package postgres

import (
	"context"
	"database/sql"
	"errors"

	"kostpay-backend/internal/domain"
	"kostpay-backend/internal/repository"
)

// roomRepository is a read-only projection over the catalog tables
// owned by the property-management service.
type roomRepository struct {
	db *sql.DB
}

func NewRoomRepository(db *sql.DB) repository.RoomRepository {
	return &roomRepository{db: db}
}

func (r *roomRepository) GetByID(ctx context.Context, id int32) (*domain.Room, error) {
	room := &domain.Room{}
	query := `SELECT r.id, r.property_id, p.operator_id, r.name, r.daily_price, r.weekly_price, r.monthly_price,
		r.quarterly_price, r.yearly_price, r.deposit_policy, r.deposit_value
		FROM rooms r JOIN properties p ON p.id = r.property_id WHERE r.id = $1`
	err := r.db.QueryRowContext(ctx, query, id).Scan(&room.ID, &room.PropertyID, &room.OperatorID, &room.Name,
		&room.DailyPrice, &room.WeeklyPrice, &room.MonthlyPrice, &room.QuarterlyPrice, &room.YearlyPrice,
		&room.DepositPolicy, &room.DepositValue)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return room, nil
}

func (r *roomRepository) GetProperty(ctx context.Context, id int32) (*domain.Property, error) {
	p := &domain.Property{}
	err := r.db.QueryRowContext(ctx, `SELECT id, operator_id, name FROM properties WHERE id = $1`, id).
		Scan(&p.ID, &p.OperatorID, &p.Name)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}
