package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"skirent-backend/internal/repository"

	_ "github.com/lib/pq"
)

// DBTX is the subset of *sql.DB and *sql.Tx the repositories use, so the
// same implementations run standalone or inside a transaction.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

type Store struct {
	db *sql.DB
	repository.Repositories
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db:           db,
		Repositories: newRepositories(db),
	}
}

func newRepositories(db DBTX) repository.Repositories {
	return repository.Repositories{
		Equipment:  NewEquipmentRepository(db),
		Prices:     NewPriceRepository(db),
		Orders:     NewOrderRepository(db),
		Audit:      NewAuditRepository(db),
		Users:      NewUserRepository(db),
		Workers:    NewWorkerRepository(db),
		RentalInfo: NewRentalInfoRepository(db),
	}
}

// WithinTx runs fn with transaction-bound repositories. Any error from fn
// rolls the whole transaction back.
func (s *Store) WithinTx(ctx context.Context, fn func(r repository.Repositories) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}

	if err := fn(newRepositories(tx)); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("%w (rollback failed: %v)", err, rbErr)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}
