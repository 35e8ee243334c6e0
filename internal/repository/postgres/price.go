package postgres

import (
	"context"
	"database/sql"
	"errors"

	"skirent-backend/internal/domain"
	"skirent-backend/internal/repository"
)

type priceRepository struct {
	db DBTX
}

func NewPriceRepository(db DBTX) repository.PriceRepository {
	return &priceRepository{db: db}
}

func (r *priceRepository) Upsert(ctx context.Context, entry *domain.PriceEntry) error {
	query := `INSERT INTO equipment_prices (type, size, price, note)
	          VALUES ($1, $2, $3, $4)
	          ON CONFLICT (type, size) DO UPDATE SET price = EXCLUDED.price, note = EXCLUDED.note
	          RETURNING id`
	return r.db.QueryRowContext(ctx, query, entry.Type, entry.Size, entry.Price, entry.Note).Scan(&entry.ID)
}

func (r *priceRepository) GetByTypeSize(ctx context.Context, t domain.EquipmentType, s domain.Size) (*domain.PriceEntry, error) {
	entry := &domain.PriceEntry{}
	query := `SELECT id, type, size, price, note FROM equipment_prices WHERE type = $1 AND size = $2`
	err := r.db.QueryRowContext(ctx, query, t, s).Scan(
		&entry.ID, &entry.Type, &entry.Size, &entry.Price, &entry.Note)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return entry, nil
}

func (r *priceRepository) List(ctx context.Context) ([]domain.PriceEntry, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, type, size, price, note FROM equipment_prices ORDER BY type, size`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []domain.PriceEntry
	for rows.Next() {
		var e domain.PriceEntry
		if err := rows.Scan(&e.ID, &e.Type, &e.Size, &e.Price, &e.Note); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func (r *priceRepository) Delete(ctx context.Context, t domain.EquipmentType, s domain.Size) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM equipment_prices WHERE type = $1 AND size = $2`, t, s)
	if err != nil {
		return err
	}
	return requireRow(res)
}
