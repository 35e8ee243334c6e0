package postgres_test

import (
	"context"
	"testing"
	"time"

	"skirent-backend/internal/domain"
	"skirent-backend/internal/repository/postgres"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
)

func TestAuditRepository_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := postgres.NewAuditRepository(db)
	ctx := context.Background()

	mock.ExpectQuery("INSERT INTO order_logs").
		WithArgs(int32(11), "order 11 accepted by Ana", sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))

	entry := &domain.AuditEntry{OrderID: 11, Message: "order 11 accepted by Ana"}
	err = repo.Create(ctx, entry)
	assert.NoError(t, err)
	assert.Equal(t, int64(1), entry.ID)
	assert.False(t, entry.LogDate.IsZero())
}

func TestAuditRepository_Query(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := postgres.NewAuditRepository(db)
	ctx := context.Background()

	t.Run("NoFilters", func(t *testing.T) {
		rows := sqlmock.NewRows([]string{"id", "order_id", "message", "log_date"}).
			AddRow(2, 11, "order 11 returned", time.Now()).
			AddRow(1, 11, "order 11 accepted by Ana", time.Now().Add(-time.Hour))

		mock.ExpectQuery("SELECT (.+) FROM order_logs ORDER BY log_date DESC LIMIT \\$1").
			WithArgs(int32(200)).
			WillReturnRows(rows)

		entries, err := repo.Query(ctx, domain.AuditQuery{})
		assert.NoError(t, err)
		assert.Len(t, entries, 2)
	})

	t.Run("AllFilters", func(t *testing.T) {
		orderID := int32(11)
		from := time.Date(2026, 2, 1, 15, 30, 0, 0, time.UTC)
		to := time.Date(2026, 2, 3, 9, 0, 0, 0, time.UTC)

		mock.ExpectQuery("SELECT (.+) FROM order_logs WHERE order_id = \\$1 AND log_date >= \\$2 AND log_date < \\$3 AND message ILIKE \\$4").
			WithArgs(orderID,
				time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC),
				time.Date(2026, 2, 4, 0, 0, 0, 0, time.UTC),
				"%accepted%").
			WillReturnRows(sqlmock.NewRows([]string{"id", "order_id", "message", "log_date"}).
				AddRow(1, 11, "order 11 accepted by Ana", from))

		entries, err := repo.Query(ctx, domain.AuditQuery{
			OrderID:  &orderID,
			DateFrom: &from,
			DateTo:   &to,
			Text:     "accepted",
		})
		assert.NoError(t, err)
		assert.Len(t, entries, 1)
	})

	t.Run("LimitCapped", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM order_logs ORDER BY log_date DESC LIMIT \\$1").
			WithArgs(int32(2000)).
			WillReturnRows(sqlmock.NewRows([]string{"id", "order_id", "message", "log_date"}))

		_, err := repo.Query(ctx, domain.AuditQuery{Limit: 5000})
		assert.NoError(t, err)
	})
}
