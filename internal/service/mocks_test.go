package service

import (
	"context"
	"time"

	"skirent-backend/internal/domain"
	"skirent-backend/internal/repository"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// MockEquipmentRepo
type MockEquipmentRepo struct {
	mock.Mock
}

func (m *MockEquipmentRepo) Create(ctx context.Context, eq *domain.Equipment) error {
	args := m.Called(ctx, eq)
	return args.Error(0)
}
func (m *MockEquipmentRepo) GetByID(ctx context.Context, id int32) (*domain.Equipment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Equipment), args.Error(1)
}
func (m *MockEquipmentRepo) List(ctx context.Context) ([]domain.Equipment, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Equipment), args.Error(1)
}
func (m *MockEquipmentRepo) UpdatePrice(ctx context.Context, id int32, price decimal.Decimal) error {
	args := m.Called(ctx, id, price)
	return args.Error(0)
}
func (m *MockEquipmentRepo) Delete(ctx context.Context, id int32) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
func (m *MockEquipmentRepo) ListAvailable(ctx context.Context, t domain.EquipmentType, s domain.Size) ([]domain.Equipment, error) {
	args := m.Called(ctx, t, s)
	return args.Get(0).([]domain.Equipment), args.Error(1)
}
func (m *MockEquipmentRepo) CountAvailable(ctx context.Context, t domain.EquipmentType, s domain.Size) (int32, error) {
	args := m.Called(ctx, t, s)
	return args.Get(0).(int32), args.Error(1)
}
func (m *MockEquipmentRepo) Availability(ctx context.Context) ([]domain.AvailabilityGroup, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.AvailabilityGroup), args.Error(1)
}
func (m *MockEquipmentRepo) DeleteAvailable(ctx context.Context, t domain.EquipmentType, s domain.Size, limit int32) (int32, error) {
	args := m.Called(ctx, t, s, limit)
	return args.Get(0).(int32), args.Error(1)
}
func (m *MockEquipmentRepo) Reserve(ctx context.Context, id int32) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
func (m *MockEquipmentRepo) Restore(ctx context.Context, id int32) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockPriceRepo
type MockPriceRepo struct {
	mock.Mock
}

func (m *MockPriceRepo) Upsert(ctx context.Context, entry *domain.PriceEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}
func (m *MockPriceRepo) GetByTypeSize(ctx context.Context, t domain.EquipmentType, s domain.Size) (*domain.PriceEntry, error) {
	args := m.Called(ctx, t, s)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PriceEntry), args.Error(1)
}
func (m *MockPriceRepo) List(ctx context.Context) ([]domain.PriceEntry, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.PriceEntry), args.Error(1)
}
func (m *MockPriceRepo) Delete(ctx context.Context, t domain.EquipmentType, s domain.Size) error {
	args := m.Called(ctx, t, s)
	return args.Error(0)
}

// MockOrderRepo
type MockOrderRepo struct {
	mock.Mock
}

func (m *MockOrderRepo) Create(ctx context.Context, o *domain.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}
func (m *MockOrderRepo) GetByID(ctx context.Context, id int32) (*domain.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Order), args.Error(1)
}
func (m *MockOrderRepo) Update(ctx context.Context, o *domain.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}
func (m *MockOrderRepo) Delete(ctx context.Context, id int32) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
func (m *MockOrderRepo) ListByUser(ctx context.Context, userID int32) ([]domain.Order, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]domain.Order), args.Error(1)
}
func (m *MockOrderRepo) List(ctx context.Context) ([]domain.Order, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Order), args.Error(1)
}
func (m *MockOrderRepo) ListOverdue(ctx context.Context, now time.Time) ([]domain.Order, error) {
	args := m.Called(ctx, now)
	return args.Get(0).([]domain.Order), args.Error(1)
}
func (m *MockOrderRepo) AddLine(ctx context.Context, line *domain.OrderLine) error {
	args := m.Called(ctx, line)
	return args.Error(0)
}
func (m *MockOrderRepo) ListLines(ctx context.Context, orderID int32) ([]domain.OrderLine, error) {
	args := m.Called(ctx, orderID)
	return args.Get(0).([]domain.OrderLine), args.Error(1)
}
func (m *MockOrderRepo) DeleteLines(ctx context.Context, orderID int32) error {
	args := m.Called(ctx, orderID)
	return args.Error(0)
}

// MockAuditRepo
type MockAuditRepo struct {
	mock.Mock
}

func (m *MockAuditRepo) Create(ctx context.Context, entry *domain.AuditEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}
func (m *MockAuditRepo) Query(ctx context.Context, q domain.AuditQuery) ([]domain.AuditEntry, error) {
	args := m.Called(ctx, q)
	return args.Get(0).([]domain.AuditEntry), args.Error(1)
}

// MockUserRepo
type MockUserRepo struct {
	mock.Mock
}

func (m *MockUserRepo) Create(ctx context.Context, u *domain.User) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}
func (m *MockUserRepo) GetByID(ctx context.Context, id int32) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserRepo) Delete(ctx context.Context, id int32) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockWorkerRepo
type MockWorkerRepo struct {
	mock.Mock
}

func (m *MockWorkerRepo) Create(ctx context.Context, w *domain.Worker) error {
	args := m.Called(ctx, w)
	return args.Error(0)
}
func (m *MockWorkerRepo) GetByEmail(ctx context.Context, email string) (*domain.Worker, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Worker), args.Error(1)
}
func (m *MockWorkerRepo) DeleteByEmail(ctx context.Context, email string) error {
	args := m.Called(ctx, email)
	return args.Error(0)
}
func (m *MockWorkerRepo) List(ctx context.Context) ([]domain.Worker, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Worker), args.Error(1)
}

// MockRentalInfoRepo
type MockRentalInfoRepo struct {
	mock.Mock
}

func (m *MockRentalInfoRepo) First(ctx context.Context) (*domain.RentalInfo, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RentalInfo), args.Error(1)
}

// MockEmailService
type MockEmailService struct {
	mock.Mock
}

func (m *MockEmailService) SendOrderAccepted(ctx context.Context, to, name string, orderID int32, due time.Time) error {
	args := m.Called(ctx, to, name, orderID, due)
	return args.Error(0)
}
func (m *MockEmailService) SendOrderReturned(ctx context.Context, to, name string, orderID int32) error {
	args := m.Called(ctx, to, name, orderID)
	return args.Error(0)
}
func (m *MockEmailService) SendOverdueReminder(ctx context.Context, to, name string, orderID int32, due time.Time) error {
	args := m.Called(ctx, to, name, orderID, due)
	return args.Error(0)
}

// MockEventPublisher
type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) Publish(ctx context.Context, eventType string, payload any) error {
	args := m.Called(ctx, eventType, payload)
	return args.Error(0)
}

// passthroughTx hands the same repositories to the callback; the unit tests
// care about the calls, not the transaction boundary.
type passthroughTx struct {
	repos repository.Repositories
}

func (t *passthroughTx) WithinTx(ctx context.Context, fn func(r repository.Repositories) error) error {
	return fn(t.repos)
}

type testRepos struct {
	equipment  *MockEquipmentRepo
	prices     *MockPriceRepo
	orders     *MockOrderRepo
	audit      *MockAuditRepo
	users      *MockUserRepo
	workers    *MockWorkerRepo
	rentalInfo *MockRentalInfoRepo
}

func newTestRepos() *testRepos {
	return &testRepos{
		equipment:  new(MockEquipmentRepo),
		prices:     new(MockPriceRepo),
		orders:     new(MockOrderRepo),
		audit:      new(MockAuditRepo),
		users:      new(MockUserRepo),
		workers:    new(MockWorkerRepo),
		rentalInfo: new(MockRentalInfoRepo),
	}
}

func (r *testRepos) bundle() repository.Repositories {
	return repository.Repositories{
		Equipment:  r.equipment,
		Prices:     r.prices,
		Orders:     r.orders,
		Audit:      r.audit,
		Users:      r.users,
		Workers:    r.workers,
		RentalInfo: r.rentalInfo,
	}
}
