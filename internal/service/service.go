package service

import (
	"context"
	"time"

	"skirent-backend/internal/domain"
	"skirent-backend/internal/stock"

	"github.com/shopspring/decimal"
)

// Basket is a raw rental request as submitted by a caller. Lines carry free
// text labels and optional preferred unit ids; ItemsCount is derived from the
// lines when zero.
type Basket struct {
	Lines      []stock.RequestLine `json:"items"`
	Days       int32               `json:"days"`
	BasePrice  decimal.Decimal     `json:"base_price"`
	ItemsCount int32               `json:"items_count,omitempty"`
}

// OrderQuote is a priced basket. Warning is set instead of failing when a
// preview finds insufficient stock.
type OrderQuote struct {
	Gross       decimal.Decimal `json:"gross"`
	DiscountPct decimal.Decimal `json:"discount_pct"`
	Total       decimal.Decimal `json:"total"`
	Days        int32           `json:"days"`
	ItemsCount  int32           `json:"items_count"`
	Warning     string          `json:"warning,omitempty"`
}

// OrderItemGroup summarizes an order's lines per (type, size). UnitPrice is
// the snapshot taken when the line was assigned.
type OrderItemGroup struct {
	Type      domain.EquipmentType `json:"type"`
	Size      domain.Size          `json:"size"`
	Quantity  int32                `json:"quantity"`
	UnitPrice decimal.Decimal      `json:"unit_price"`
}

type OrderView struct {
	domain.Order
	Status domain.OrderStatus `json:"status"`
	Items  []OrderItemGroup   `json:"items,omitempty"`
}

type AcceptResult struct {
	Order       *domain.Order `json:"order"`
	ReservedIDs []int32       `json:"reserved_ids"`
	AcceptedBy  string        `json:"accepted_by"`
	DueDate     time.Time     `json:"due_date"`
}

type ReturnResult struct {
	Order       *domain.Order `json:"order"`
	RestoredIDs []int32       `json:"restored_ids"`
}

type OrderService interface {
	Preview(ctx context.Context, basket Basket) (*OrderQuote, error)
	Create(ctx context.Context, userID int32, basket Basket) (*OrderView, error)
	Get(ctx context.Context, orderID int32) (*OrderView, error)
	List(ctx context.Context) ([]OrderView, error)
	ListByUser(ctx context.Context, userID int32) ([]OrderView, error)
	Accept(ctx context.Context, orderID, actorID int32) (*AcceptResult, error)
	Return(ctx context.Context, orderID int32) (*ReturnResult, error)
	Cancel(ctx context.Context, orderID int32) error
}

// EquipmentView pairs a unit with its current catalog price, which may differ
// from the price stored on the unit itself.
type EquipmentView struct {
	domain.Equipment
	CatalogPrice decimal.Decimal `json:"catalog_price"`
}

type AvailabilityView struct {
	domain.AvailabilityGroup
	UnitPrice decimal.Decimal `json:"unit_price"`
}

type EquipmentService interface {
	Add(ctx context.Context, typeLabel, sizeLabel string, quantity int32, price decimal.Decimal) ([]domain.Equipment, error)
	List(ctx context.Context) ([]EquipmentView, error)
	Availability(ctx context.Context) ([]AvailabilityView, error)
	UpdatePrice(ctx context.Context, id int32, price decimal.Decimal) error
	Delete(ctx context.Context, id int32) error
	DeleteAvailable(ctx context.Context, typeLabel, sizeLabel string, quantity int32) (int32, error)
}

type PriceService interface {
	List(ctx context.Context) ([]domain.PriceEntry, error)
	Upsert(ctx context.Context, typeLabel, sizeLabel string, price decimal.Decimal, note string) (*domain.PriceEntry, error)
	// Delete removes the catalog entry and any still-unreserved units of the
	// pair; it returns how many units went with it.
	Delete(ctx context.Context, typeLabel, sizeLabel string) (int32, error)
}

type AuditService interface {
	// TryLog appends an audit entry and never fails: an order transition must
	// not be rolled back because the log insert did not go through.
	TryLog(ctx context.Context, orderID int32, message string)
	Query(ctx context.Context, q domain.AuditQuery) ([]domain.AuditEntry, error)
}

type RegisterInput struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Password  string `json:"password"`
}

type AuthService interface {
	Register(ctx context.Context, input RegisterInput) (*domain.User, string, error) // user, access token
	Login(ctx context.Context, email, password string) (*domain.User, string, error)
}

type WorkerInput struct {
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	Address     string `json:"address"`
	WorkStart   string `json:"work_start"`
	WorkEnd     string `json:"work_end"`
	WorkingDays string `json:"working_days"`
	JobTitle    string `json:"job_title"`
	Password    string `json:"password"`
}

type WorkerService interface {
	Register(ctx context.Context, input WorkerInput) (*domain.Worker, error)
	Delete(ctx context.Context, email string) error
	List(ctx context.Context) ([]domain.Worker, error)
}

type RentalInfoService interface {
	Get(ctx context.Context) (*domain.RentalInfo, error)
}

type EmailService interface {
	SendOrderAccepted(ctx context.Context, to, name string, orderID int32, due time.Time) error
	SendOrderReturned(ctx context.Context, to, name string, orderID int32) error
	SendOverdueReminder(ctx context.Context, to, name string, orderID int32, due time.Time) error
}

// Lifecycle event types emitted to the message broker.
const (
	EventOrderCreated   = "order.created"
	EventOrderAccepted  = "order.accepted"
	EventOrderReturned  = "order.returned"
	EventOrderCancelled = "order.cancelled"
)

// EventPublisher delivers lifecycle events best-effort; a failed publish is
// logged by the caller and never fails the transition.
type EventPublisher interface {
	Publish(ctx context.Context, eventType string, payload any) error
}
