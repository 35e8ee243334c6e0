package postgres_test

import (
	"context"
	"testing"
	"time"

	"skirent-backend/internal/domain"
	"skirent-backend/internal/repository"
	"skirent-backend/internal/repository/postgres"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestOrderRepository_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := postgres.NewOrderRepository(db)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		order := &domain.Order{
			UserID:      3,
			RentedItems: "2x Skis Medium, 2x Helmet Medium",
			OrderDate:   time.Now().UTC(),
			BasePrice:   decimal.RequireFromString("100"),
			Days:        3,
			ItemsCount:  4,
			Price:       decimal.RequireFromString("240.00"),
		}

		mock.ExpectQuery("INSERT INTO orders").
			WithArgs(order.UserID, order.RentedItems, order.OrderDate, order.BasePrice,
				order.Days, order.ItemsCount, order.Price, nil, false).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(11))

		err := repo.Create(ctx, order)
		assert.NoError(t, err)
		assert.Equal(t, int32(11), order.ID)
	})
}

func TestOrderRepository_GetByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := postgres.NewOrderRepository(db)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		rows := sqlmock.NewRows([]string{"id", "user_id", "rented_items", "order_date", "base_price", "days", "items_count", "price", "due_date", "returned"}).
			AddRow(11, 3, "2x Skis Medium", time.Now(), "130", 3, 2, "663.00", nil, false)

		mock.ExpectQuery("SELECT (.+) FROM orders WHERE id = \\$1").
			WithArgs(int32(11)).
			WillReturnRows(rows)

		order, err := repo.GetByID(ctx, 11)
		assert.NoError(t, err)
		assert.NotNil(t, order)
		assert.Equal(t, domain.OrderStatusPending, order.Status())
	})

	t.Run("NotFound", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM orders WHERE id = \\$1").
			WithArgs(int32(404)).
			WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "rented_items", "order_date", "base_price", "days", "items_count", "price", "due_date", "returned"}))

		order, err := repo.GetByID(ctx, 404)
		assert.ErrorIs(t, err, repository.ErrNotFound)
		assert.Nil(t, order)
	})
}

func TestOrderRepository_ListOverdue(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := postgres.NewOrderRepository(db)
	ctx := context.Background()
	now := time.Date(2026, 2, 10, 12, 0, 0, 0, time.UTC)
	due := now.Add(-48 * time.Hour)

	rows := sqlmock.NewRows([]string{"id", "user_id", "rented_items", "order_date", "base_price", "days", "items_count", "price", "due_date", "returned"}).
		AddRow(5, 2, "1x Snowboard Large", now.Add(-96*time.Hour), "160", 2, 1, "304.00", due, false)

	mock.ExpectQuery("SELECT (.+) FROM orders").
		WithArgs(now).
		WillReturnRows(rows)

	orders, err := repo.ListOverdue(ctx, now)
	assert.NoError(t, err)
	assert.Len(t, orders, 1)
	assert.Equal(t, domain.OrderStatusIssued, orders[0].Status())
}

func TestOrderRepository_Lines(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := postgres.NewOrderRepository(db)
	ctx := context.Background()

	t.Run("AddLine", func(t *testing.T) {
		line := &domain.OrderLine{
			OrderID:          11,
			EquipmentID:      3,
			Quantity:         1,
			PriceWhenOrdered: decimal.RequireFromString("130"),
		}
		mock.ExpectExec("INSERT INTO ordered_items").
			WithArgs(line.OrderID, line.EquipmentID, line.Quantity, line.PriceWhenOrdered).
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, repo.AddLine(ctx, line))
	})

	t.Run("ListLines", func(t *testing.T) {
		rows := sqlmock.NewRows([]string{"order_id", "equipment_id", "quantity", "price_when_ordered"}).
			AddRow(11, 3, 1, "130").
			AddRow(11, 4, 1, "130")

		mock.ExpectQuery("SELECT (.+) FROM ordered_items WHERE order_id = \\$1").
			WithArgs(int32(11)).
			WillReturnRows(rows)

		lines, err := repo.ListLines(ctx, 11)
		assert.NoError(t, err)
		assert.Len(t, lines, 2)
		assert.Equal(t, int32(3), lines[0].EquipmentID)
	})

	t.Run("DeleteLines", func(t *testing.T) {
		mock.ExpectExec("DELETE FROM ordered_items WHERE order_id = \\$1").
			WithArgs(int32(11)).
			WillReturnResult(sqlmock.NewResult(0, 2))

		assert.NoError(t, repo.DeleteLines(ctx, 11))
	})
}

func TestStore_WithinTx(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	store := postgres.NewStore(db)
	ctx := context.Background()

	t.Run("Commit", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectExec("UPDATE equipment SET in_warehouse = false, reserved = true").
			WithArgs(int32(1)).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		err := store.WithinTx(ctx, func(r repository.Repositories) error {
			return r.Equipment.Reserve(ctx, 1)
		})
		assert.NoError(t, err)
	})

	t.Run("RollbackOnError", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectRollback()

		err := store.WithinTx(ctx, func(r repository.Repositories) error {
			return assert.AnError
		})
		assert.ErrorIs(t, err, assert.AnError)
	})
}
