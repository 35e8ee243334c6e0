package postgres

import (
	"context"
	"fmt"
	"strings"
	"time"

	"skirent-backend/internal/domain"
	"skirent-backend/internal/repository"
)

type auditRepository struct {
	db DBTX
}

func NewAuditRepository(db DBTX) repository.AuditRepository {
	return &auditRepository{db: db}
}

const (
	auditDefaultLimit = 200
	auditMaxLimit     = 2000
)

func (r *auditRepository) Create(ctx context.Context, entry *domain.AuditEntry) error {
	query := `INSERT INTO order_logs (order_id, message, log_date) VALUES ($1, $2, $3) RETURNING id`
	if entry.LogDate.IsZero() {
		entry.LogDate = time.Now().UTC()
	}
	return r.db.QueryRowContext(ctx, query, entry.OrderID, entry.Message, entry.LogDate).Scan(&entry.ID)
}

func (r *auditRepository) Query(ctx context.Context, q domain.AuditQuery) ([]domain.AuditEntry, error) {
	var (
		where []string
		args  []interface{}
	)

	arg := func(v interface{}) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if q.OrderID != nil {
		where = append(where, "order_id = "+arg(*q.OrderID))
	}
	if q.DateFrom != nil {
		from := q.DateFrom.Truncate(24 * time.Hour)
		where = append(where, "log_date >= "+arg(from))
	}
	if q.DateTo != nil {
		// include the whole day of DateTo
		to := q.DateTo.Truncate(24 * time.Hour).Add(24 * time.Hour)
		where = append(where, "log_date < "+arg(to))
	}
	if q.Text != "" {
		pattern := "%" + escapeLike(q.Text) + "%"
		where = append(where, "message ILIKE "+arg(pattern))
	}

	limit := q.Limit
	if limit <= 0 {
		limit = auditDefaultLimit
	}
	if limit > auditMaxLimit {
		limit = auditMaxLimit
	}

	query := `SELECT id, order_id, message, log_date FROM order_logs`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY log_date DESC LIMIT " + arg(limit)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []domain.AuditEntry
	for rows.Next() {
		var e domain.AuditEntry
		if err := rows.Scan(&e.ID, &e.OrderID, &e.Message, &e.LogDate); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func escapeLike(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, "%", `\%`)
	s = strings.ReplaceAll(s, "_", `\_`)
	return s
}
