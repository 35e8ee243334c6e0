package repository

import (
	"context"
	"errors"
	"time"

	"skirent-backend/internal/domain"

	"github.com/shopspring/decimal"
)

// ErrNotFound is returned by every repository when the requested row does
// not exist. Services translate it into their own not-found errors.
var ErrNotFound = errors.New("not found")

type EquipmentRepository interface {
	Create(ctx context.Context, eq *domain.Equipment) error
	GetByID(ctx context.Context, id int32) (*domain.Equipment, error)
	List(ctx context.Context) ([]domain.Equipment, error)
	UpdatePrice(ctx context.Context, id int32, price decimal.Decimal) error
	Delete(ctx context.Context, id int32) error

	// ListAvailable returns assignable units for the pair in stable id order.
	ListAvailable(ctx context.Context, t domain.EquipmentType, s domain.Size) ([]domain.Equipment, error)
	CountAvailable(ctx context.Context, t domain.EquipmentType, s domain.Size) (int32, error)
	Availability(ctx context.Context) ([]domain.AvailabilityGroup, error)

	// DeleteAvailable removes up to limit unreserved in-warehouse units of the
	// pair and reports how many went away.
	DeleteAvailable(ctx context.Context, t domain.EquipmentType, s domain.Size, limit int32) (int32, error)

	// Reserve and Restore are the only two mutations of the warehouse and
	// reservation flags. Both are no-ops on an id that does not exist.
	Reserve(ctx context.Context, id int32) error
	Restore(ctx context.Context, id int32) error
}

type PriceRepository interface {
	Upsert(ctx context.Context, entry *domain.PriceEntry) error
	GetByTypeSize(ctx context.Context, t domain.EquipmentType, s domain.Size) (*domain.PriceEntry, error)
	List(ctx context.Context) ([]domain.PriceEntry, error)
	Delete(ctx context.Context, t domain.EquipmentType, s domain.Size) error
}

type OrderRepository interface {
	Create(ctx context.Context, o *domain.Order) error
	GetByID(ctx context.Context, id int32) (*domain.Order, error)
	Update(ctx context.Context, o *domain.Order) error
	Delete(ctx context.Context, id int32) error
	ListByUser(ctx context.Context, userID int32) ([]domain.Order, error)
	List(ctx context.Context) ([]domain.Order, error)

	// ListOverdue returns issued, unreturned orders whose due date has passed.
	ListOverdue(ctx context.Context, now time.Time) ([]domain.Order, error)

	AddLine(ctx context.Context, line *domain.OrderLine) error
	ListLines(ctx context.Context, orderID int32) ([]domain.OrderLine, error)
	DeleteLines(ctx context.Context, orderID int32) error
}

type AuditRepository interface {
	Create(ctx context.Context, entry *domain.AuditEntry) error
	Query(ctx context.Context, q domain.AuditQuery) ([]domain.AuditEntry, error)
}

type UserRepository interface {
	Create(ctx context.Context, u *domain.User) error
	GetByID(ctx context.Context, id int32) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	Delete(ctx context.Context, id int32) error
}

type WorkerRepository interface {
	Create(ctx context.Context, w *domain.Worker) error
	GetByEmail(ctx context.Context, email string) (*domain.Worker, error)
	DeleteByEmail(ctx context.Context, email string) error
	List(ctx context.Context) ([]domain.Worker, error)
}

type RentalInfoRepository interface {
	First(ctx context.Context) (*domain.RentalInfo, error)
}

// Repositories bundles every repository over one database handle. A
// transaction-scoped copy is handed to WithinTx callbacks.
type Repositories struct {
	Equipment  EquipmentRepository
	Prices     PriceRepository
	Orders     OrderRepository
	Audit      AuditRepository
	Users      UserRepository
	Workers    WorkerRepository
	RentalInfo RentalInfoRepository
}

// TxRunner executes fn with repositories bound to a single transaction.
// If fn returns an error the transaction is rolled back; a lifecycle
// transition therefore commits all of its row changes or none of them.
type TxRunner interface {
	WithinTx(ctx context.Context, fn func(r Repositories) error) error
}
