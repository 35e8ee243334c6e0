package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"skirent-backend/internal/domain"
	"skirent-backend/internal/repository"

	"github.com/shopspring/decimal"
)

type equipmentRepository struct {
	db DBTX
}

func NewEquipmentRepository(db DBTX) repository.EquipmentRepository {
	return &equipmentRepository{db: db}
}

const equipmentColumns = `id, type, size, price, in_warehouse, reserved, rental_info_id`

func (r *equipmentRepository) Create(ctx context.Context, eq *domain.Equipment) error {
	query := `INSERT INTO equipment (type, size, price, in_warehouse, reserved, rental_info_id)
	          VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`
	return r.db.QueryRowContext(ctx, query,
		eq.Type, eq.Size, eq.Price, eq.InWarehouse, eq.Reserved, eq.RentalInfoID).Scan(&eq.ID)
}

func (r *equipmentRepository) GetByID(ctx context.Context, id int32) (*domain.Equipment, error) {
	eq := &domain.Equipment{}
	query := `SELECT ` + equipmentColumns + ` FROM equipment WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&eq.ID, &eq.Type, &eq.Size, &eq.Price, &eq.InWarehouse, &eq.Reserved, &eq.RentalInfoID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return eq, nil
}

func (r *equipmentRepository) List(ctx context.Context) ([]domain.Equipment, error) {
	query := `SELECT ` + equipmentColumns + ` FROM equipment ORDER BY id`
	return r.queryMany(ctx, query)
}

func (r *equipmentRepository) ListAvailable(ctx context.Context, t domain.EquipmentType, s domain.Size) ([]domain.Equipment, error) {
	query := `SELECT ` + equipmentColumns + ` FROM equipment
	          WHERE type = $1 AND size = $2 AND in_warehouse AND NOT reserved
	          ORDER BY id`
	return r.queryMany(ctx, query, t, s)
}

func (r *equipmentRepository) CountAvailable(ctx context.Context, t domain.EquipmentType, s domain.Size) (int32, error) {
	var count int32
	query := `SELECT count(*) FROM equipment
	          WHERE type = $1 AND size = $2 AND in_warehouse AND NOT reserved`
	if err := r.db.QueryRowContext(ctx, query, t, s).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

func (r *equipmentRepository) Availability(ctx context.Context) ([]domain.AvailabilityGroup, error) {
	query := `SELECT type, size, count(*) FROM equipment
	          WHERE in_warehouse AND NOT reserved
	          GROUP BY type, size
	          ORDER BY type, size`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var groups []domain.AvailabilityGroup
	for rows.Next() {
		var g domain.AvailabilityGroup
		if err := rows.Scan(&g.Type, &g.Size, &g.Count); err != nil {
			return nil, err
		}
		groups = append(groups, g)
	}
	return groups, rows.Err()
}

func (r *equipmentRepository) UpdatePrice(ctx context.Context, id int32, price decimal.Decimal) error {
	res, err := r.db.ExecContext(ctx, `UPDATE equipment SET price = $1 WHERE id = $2`, price, id)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *equipmentRepository) Delete(ctx context.Context, id int32) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM equipment WHERE id = $1 AND NOT reserved`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		// Either absent or still reserved; tell the two apart for the caller.
		var reserved bool
		err := r.db.QueryRowContext(ctx, `SELECT reserved FROM equipment WHERE id = $1`, id).Scan(&reserved)
		if errors.Is(err, sql.ErrNoRows) {
			return repository.ErrNotFound
		}
		if err != nil {
			return err
		}
		return fmt.Errorf("equipment %d is reserved", id)
	}
	return nil
}

func (r *equipmentRepository) DeleteAvailable(ctx context.Context, t domain.EquipmentType, s domain.Size, limit int32) (int32, error) {
	query := `DELETE FROM equipment WHERE id IN (
	            SELECT id FROM equipment
	            WHERE type = $1 AND size = $2 AND in_warehouse AND NOT reserved
	            ORDER BY id
	            LIMIT $3)`
	res, err := r.db.ExecContext(ctx, query, t, s, limit)
	if err != nil {
		return 0, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}
	return int32(n), nil
}

func (r *equipmentRepository) Reserve(ctx context.Context, id int32) error {
	unit := domain.Equipment{ID: id}
	domain.Reserve(&unit)
	return r.saveFlags(ctx, unit)
}

func (r *equipmentRepository) Restore(ctx context.Context, id int32) error {
	unit := domain.Equipment{ID: id}
	domain.Restore(&unit)
	return r.saveFlags(ctx, unit)
}

// saveFlags persists the in_warehouse/reserved pair as computed by the domain
// transitions, the only writers of those two columns.
func (r *equipmentRepository) saveFlags(ctx context.Context, unit domain.Equipment) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE equipment SET in_warehouse = $1, reserved = $2 WHERE id = $3`,
		unit.InWarehouse, unit.Reserved, unit.ID)
	return err
}

func (r *equipmentRepository) queryMany(ctx context.Context, query string, args ...interface{}) ([]domain.Equipment, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []domain.Equipment
	for rows.Next() {
		var eq domain.Equipment
		if err := rows.Scan(&eq.ID, &eq.Type, &eq.Size, &eq.Price, &eq.InWarehouse, &eq.Reserved, &eq.RentalInfoID); err != nil {
			return nil, err
		}
		items = append(items, eq)
	}
	return items, rows.Err()
}

func requireRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return repository.ErrNotFound
	}
	return nil
}
