package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"skirent-backend/internal/domain"
	"skirent-backend/internal/repository"
)

type orderRepository struct {
	db DBTX
}

func NewOrderRepository(db DBTX) repository.OrderRepository {
	return &orderRepository{db: db}
}

const orderColumns = `id, user_id, rented_items, order_date, base_price, days, items_count, price, due_date, returned`

func (r *orderRepository) Create(ctx context.Context, o *domain.Order) error {
	query := `INSERT INTO orders (user_id, rented_items, order_date, base_price, days, items_count, price, due_date, returned)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9) RETURNING id`
	return r.db.QueryRowContext(ctx, query,
		o.UserID, o.RentedItems, o.OrderDate, o.BasePrice, o.Days, o.ItemsCount, o.Price, o.DueDate, o.Returned).Scan(&o.ID)
}

func (r *orderRepository) GetByID(ctx context.Context, id int32) (*domain.Order, error) {
	o := &domain.Order{}
	query := `SELECT ` + orderColumns + ` FROM orders WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&o.ID, &o.UserID, &o.RentedItems, &o.OrderDate, &o.BasePrice, &o.Days, &o.ItemsCount, &o.Price, &o.DueDate, &o.Returned)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return o, nil
}

func (r *orderRepository) Update(ctx context.Context, o *domain.Order) error {
	query := `UPDATE orders
	          SET rented_items = $1, order_date = $2, base_price = $3, days = $4,
	              items_count = $5, price = $6, due_date = $7, returned = $8
	          WHERE id = $9`
	res, err := r.db.ExecContext(ctx, query,
		o.RentedItems, o.OrderDate, o.BasePrice, o.Days, o.ItemsCount, o.Price, o.DueDate, o.Returned, o.ID)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *orderRepository) Delete(ctx context.Context, id int32) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM orders WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *orderRepository) ListByUser(ctx context.Context, userID int32) ([]domain.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE user_id = $1 ORDER BY id DESC`
	return r.queryMany(ctx, query, userID)
}

func (r *orderRepository) List(ctx context.Context) ([]domain.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders ORDER BY id DESC`
	return r.queryMany(ctx, query)
}

func (r *orderRepository) ListOverdue(ctx context.Context, now time.Time) ([]domain.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders
	          WHERE due_date IS NOT NULL AND due_date < $1 AND NOT returned
	          ORDER BY due_date`
	return r.queryMany(ctx, query, now)
}

func (r *orderRepository) AddLine(ctx context.Context, line *domain.OrderLine) error {
	query := `INSERT INTO ordered_items (order_id, equipment_id, quantity, price_when_ordered)
	          VALUES ($1, $2, $3, $4)`
	_, err := r.db.ExecContext(ctx, query, line.OrderID, line.EquipmentID, line.Quantity, line.PriceWhenOrdered)
	return err
}

func (r *orderRepository) ListLines(ctx context.Context, orderID int32) ([]domain.OrderLine, error) {
	query := `SELECT order_id, equipment_id, quantity, price_when_ordered
	          FROM ordered_items WHERE order_id = $1 ORDER BY equipment_id`
	rows, err := r.db.QueryContext(ctx, query, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var lines []domain.OrderLine
	for rows.Next() {
		var l domain.OrderLine
		if err := rows.Scan(&l.OrderID, &l.EquipmentID, &l.Quantity, &l.PriceWhenOrdered); err != nil {
			return nil, err
		}
		lines = append(lines, l)
	}
	return lines, rows.Err()
}

func (r *orderRepository) DeleteLines(ctx context.Context, orderID int32) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM ordered_items WHERE order_id = $1`, orderID)
	return err
}

func (r *orderRepository) queryMany(ctx context.Context, query string, args ...interface{}) ([]domain.Order, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orders []domain.Order
	for rows.Next() {
		var o domain.Order
		if err := rows.Scan(&o.ID, &o.UserID, &o.RentedItems, &o.OrderDate, &o.BasePrice, &o.Days, &o.ItemsCount, &o.Price, &o.DueDate, &o.Returned); err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	return orders, rows.Err()
}
