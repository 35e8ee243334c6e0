package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"skirent-backend/internal/domain"
	"skirent-backend/internal/logger"
	"skirent-backend/internal/pricing"
	"skirent-backend/internal/repository"
	"skirent-backend/internal/stock"

	"github.com/shopspring/decimal"
)

// defaultRentalDays applies when an order is accepted without an explicit
// rental length.
const defaultRentalDays = 7

type orderService struct {
	repos  repository.Repositories
	tx     repository.TxRunner
	audit  AuditService
	email  EmailService
	events EventPublisher
	now    func() time.Time
}

func NewOrderService(
	repos repository.Repositories,
	tx repository.TxRunner,
	audit AuditService,
	email EmailService,
	events EventPublisher,
) OrderService {
	return &orderService{
		repos:  repos,
		tx:     tx,
		audit:  audit,
		email:  email,
		events: events,
		now:    time.Now,
	}
}

func (s *orderService) Preview(ctx context.Context, basket Basket) (*OrderQuote, error) {
	groups, days, items, base, err := normalizeBasket(basket)
	if err != nil {
		return nil, err
	}

	var warning string
	if err := stock.Validate(ctx, s.repos.Equipment, groups); err != nil {
		var insufficient *stock.InsufficientError
		if !errors.As(err, &insufficient) {
			return nil, err
		}
		warning = insufficient.Error()
	}

	q := pricing.Calculate(base, days, items)
	return &OrderQuote{
		Gross:       q.Gross,
		DiscountPct: q.DiscountPct,
		Total:       q.Total,
		Days:        days,
		ItemsCount:  items,
		Warning:     warning,
	}, nil
}

// Create validates the basket against current stock and persists the order
// with its lines in one transaction. Units are assigned but not reserved:
// reservation happens when a worker accepts the order, so two orders created
// in the same window can both pass validation and race for the same units.
func (s *orderService) Create(ctx context.Context, userID int32, basket Basket) (*OrderView, error) {
	groups, days, items, base, err := normalizeBasket(basket)
	if err != nil {
		return nil, err
	}
	if err := stock.Validate(ctx, s.repos.Equipment, groups); err != nil {
		return nil, err
	}

	order := &domain.Order{
		UserID:      userID,
		RentedItems: summarize(groups),
		OrderDate:   s.now().UTC(),
		BasePrice:   base,
		Days:        days,
		ItemsCount:  items,
		Price:       pricing.Calculate(base, days, items).Total,
	}

	var lines []domain.OrderLine
	err = s.tx.WithinTx(ctx, func(r repository.Repositories) error {
		if err := r.Orders.Create(ctx, order); err != nil {
			return fmt.Errorf("create order: %w", err)
		}
		for _, g := range groups {
			assigned, err := assignUnits(ctx, r.Equipment, g)
			if err != nil {
				return err
			}
			for _, eq := range assigned {
				line := domain.OrderLine{
					OrderID:          order.ID,
					EquipmentID:      eq.ID,
					Quantity:         1,
					PriceWhenOrdered: eq.Price,
				}
				if err := r.Orders.AddLine(ctx, &line); err != nil {
					return fmt.Errorf("add order line: %w", err)
				}
				lines = append(lines, line)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.audit.TryLog(ctx, order.ID,
		fmt.Sprintf("order %d created for user %d: %s", order.ID, userID, order.RentedItems))
	s.publish(ctx, EventOrderCreated, order)

	return s.view(ctx, order, lines), nil
}

func (s *orderService) Get(ctx context.Context, orderID int32) (*OrderView, error) {
	order, err := s.repos.Orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, asNotFound(err)
	}
	lines, err := s.repos.Orders.ListLines(ctx, orderID)
	if err != nil {
		return nil, err
	}
	return s.view(ctx, order, lines), nil
}

func (s *orderService) List(ctx context.Context) ([]OrderView, error) {
	orders, err := s.repos.Orders.List(ctx)
	if err != nil {
		return nil, err
	}
	return s.views(ctx, orders)
}

func (s *orderService) ListByUser(ctx context.Context, userID int32) ([]OrderView, error) {
	orders, err := s.repos.Orders.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.views(ctx, orders)
}

// Accept issues the order: every assigned unit is reserved, the due date is
// set from the rental length and the clock restarts at the acceptance moment.
func (s *orderService) Accept(ctx context.Context, orderID, actorID int32) (*AcceptResult, error) {
	order, err := s.repos.Orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, asNotFound(err)
	}
	if order.Accepted() {
		return nil, ErrAlreadyAccepted
	}

	if order.Days < 1 {
		order.Days = defaultRentalDays
	}
	now := s.now().UTC()
	due := now.Add(time.Duration(order.Days) * 24 * time.Hour)

	var reserved []int32
	err = s.tx.WithinTx(ctx, func(r repository.Repositories) error {
		lines, err := r.Orders.ListLines(ctx, orderID)
		if err != nil {
			return err
		}
		for _, l := range lines {
			if err := r.Equipment.Reserve(ctx, l.EquipmentID); err != nil {
				return fmt.Errorf("reserve unit %d: %w", l.EquipmentID, err)
			}
			reserved = append(reserved, l.EquipmentID)
		}
		order.OrderDate = now
		order.DueDate = &due
		return r.Orders.Update(ctx, order)
	})
	if err != nil {
		return nil, err
	}

	acceptedBy := s.actorName(ctx, actorID)
	s.audit.TryLog(ctx, orderID, fmt.Sprintf("order %d accepted by %s, reserved units %v, due %s",
		orderID, acceptedBy, reserved, due.Format("2006-01-02")))
	s.publish(ctx, EventOrderAccepted, order)
	s.notify(ctx, order, func(u *domain.User) error {
		return s.email.SendOrderAccepted(ctx, u.Email, u.DisplayName(), orderID, due)
	})

	return &AcceptResult{Order: order, ReservedIDs: reserved, AcceptedBy: acceptedBy, DueDate: due}, nil
}

// Return closes the order: every unit goes back to the warehouse and the due
// date is cleared so the state reads as returned rather than overdue.
func (s *orderService) Return(ctx context.Context, orderID int32) (*ReturnResult, error) {
	order, err := s.repos.Orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, asNotFound(err)
	}
	if order.Returned {
		return nil, ErrAlreadyReturned
	}

	var restored []int32
	err = s.tx.WithinTx(ctx, func(r repository.Repositories) error {
		lines, err := r.Orders.ListLines(ctx, orderID)
		if err != nil {
			return err
		}
		for _, l := range lines {
			if err := r.Equipment.Restore(ctx, l.EquipmentID); err != nil {
				return fmt.Errorf("restore unit %d: %w", l.EquipmentID, err)
			}
			restored = append(restored, l.EquipmentID)
		}
		order.Returned = true
		order.DueDate = nil
		return r.Orders.Update(ctx, order)
	})
	if err != nil {
		return nil, err
	}

	s.audit.TryLog(ctx, orderID,
		fmt.Sprintf("order %d returned, restored units %v", orderID, restored))
	s.publish(ctx, EventOrderReturned, order)
	s.notify(ctx, order, func(u *domain.User) error {
		return s.email.SendOrderReturned(ctx, u.Email, u.DisplayName(), orderID)
	})

	return &ReturnResult{Order: order, RestoredIDs: restored}, nil
}

// Cancel releases any reserved units, then deletes the lines and the order.
func (s *orderService) Cancel(ctx context.Context, orderID int32) error {
	order, err := s.repos.Orders.GetByID(ctx, orderID)
	if err != nil {
		return asNotFound(err)
	}

	err = s.tx.WithinTx(ctx, func(r repository.Repositories) error {
		lines, err := r.Orders.ListLines(ctx, orderID)
		if err != nil {
			return err
		}
		for _, l := range lines {
			if err := r.Equipment.Restore(ctx, l.EquipmentID); err != nil {
				return fmt.Errorf("restore unit %d: %w", l.EquipmentID, err)
			}
		}
		if err := r.Orders.DeleteLines(ctx, orderID); err != nil {
			return err
		}
		return r.Orders.Delete(ctx, orderID)
	})
	if err != nil {
		return err
	}

	s.audit.TryLog(ctx, orderID, fmt.Sprintf("order %d cancelled", orderID))
	s.publish(ctx, EventOrderCancelled, order)
	return nil
}

func normalizeBasket(b Basket) ([]stock.Group, int32, int32, decimal.Decimal, error) {
	groups, err := stock.Normalize(b.Lines)
	if err != nil {
		return nil, 0, 0, decimal.Zero, Validationf("%s", err)
	}
	if len(groups) == 0 {
		return nil, 0, 0, decimal.Zero, Validationf("basket is empty")
	}

	days := b.Days
	if days < 1 {
		days = 1
	}
	items := b.ItemsCount
	if items <= 0 {
		for _, g := range groups {
			items += g.Quantity
		}
	}
	base := b.BasePrice
	if base.IsNegative() {
		base = decimal.Zero
	}
	return groups, days, items, base, nil
}

// assignUnits picks concrete units for a group: caller-preferred ids first
// when they are still assignable and of the right kind, then the remaining
// available units in stable id order. Unusable preferences are skipped
// silently; validation already guaranteed the group can be covered.
func assignUnits(ctx context.Context, repo repository.EquipmentRepository, g stock.Group) ([]domain.Equipment, error) {
	var assigned []domain.Equipment
	used := map[int32]bool{}

	for _, id := range g.EquipmentIDs {
		if int32(len(assigned)) >= g.Quantity {
			break
		}
		if used[id] {
			continue
		}
		eq, err := repo.GetByID(ctx, id)
		if errors.Is(err, repository.ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		if !eq.Available() || eq.Type != g.Type || eq.Size != g.Size {
			continue
		}
		used[id] = true
		assigned = append(assigned, *eq)
	}

	if int32(len(assigned)) < g.Quantity {
		available, err := repo.ListAvailable(ctx, g.Type, g.Size)
		if err != nil {
			return nil, err
		}
		for _, eq := range available {
			if int32(len(assigned)) >= g.Quantity {
				break
			}
			if used[eq.ID] {
				continue
			}
			used[eq.ID] = true
			assigned = append(assigned, eq)
		}
	}
	return assigned, nil
}

func summarize(groups []stock.Group) string {
	parts := make([]string, 0, len(groups))
	for _, g := range groups {
		parts = append(parts, fmt.Sprintf("%dx %s %s", g.Quantity, g.Type, g.Size))
	}
	return strings.Join(parts, ", ")
}

// actorName resolves who accepted the order for the audit trail. The login
// user's own name wins; the staff directory is only consulted when the user
// record carries no name at all.
func (s *orderService) actorName(ctx context.Context, actorID int32) string {
	u, err := s.repos.Users.GetByID(ctx, actorID)
	if err != nil {
		return fmt.Sprintf("user #%d", actorID)
	}
	if name := u.DisplayName(); name != "" {
		return name
	}
	if w, err := s.repos.Workers.GetByEmail(ctx, u.Email); err == nil {
		if name := w.DisplayName(); name != "" {
			return name
		}
	}
	return fmt.Sprintf("user #%d", actorID)
}

func (s *orderService) view(ctx context.Context, order *domain.Order, lines []domain.OrderLine) *OrderView {
	return &OrderView{
		Order:  *order,
		Status: order.Status(),
		Items:  s.itemGroups(ctx, lines),
	}
}

func (s *orderService) views(ctx context.Context, orders []domain.Order) ([]OrderView, error) {
	views := make([]OrderView, 0, len(orders))
	for i := range orders {
		lines, err := s.repos.Orders.ListLines(ctx, orders[i].ID)
		if err != nil {
			return nil, err
		}
		views = append(views, *s.view(ctx, &orders[i], lines))
	}
	return views, nil
}

// itemGroups folds order lines into per (type, size) groups. A line whose
// unit has since been deleted from inventory is skipped.
func (s *orderService) itemGroups(ctx context.Context, lines []domain.OrderLine) []OrderItemGroup {
	var groups []OrderItemGroup
	index := map[string]int{}

	for _, l := range lines {
		eq, err := s.repos.Equipment.GetByID(ctx, l.EquipmentID)
		if err != nil {
			continue
		}
		key := string(eq.Type) + "/" + string(eq.Size)
		if i, ok := index[key]; ok {
			groups[i].Quantity += l.Quantity
			continue
		}
		index[key] = len(groups)
		groups = append(groups, OrderItemGroup{
			Type:      eq.Type,
			Size:      eq.Size,
			Quantity:  l.Quantity,
			UnitPrice: l.PriceWhenOrdered,
		})
	}
	return groups
}

func (s *orderService) publish(ctx context.Context, event string, order *domain.Order) {
	if s.events == nil {
		return
	}
	if err := s.events.Publish(ctx, event, order); err != nil {
		logger.WarnContext(ctx, "event publish failed", "event", event, "order_id", order.ID, "error", err)
	}
}

// notify emails the order's owner best-effort.
func (s *orderService) notify(ctx context.Context, order *domain.Order, send func(*domain.User) error) {
	if s.email == nil {
		return
	}
	u, err := s.repos.Users.GetByID(ctx, order.UserID)
	if err != nil {
		logger.DebugContext(ctx, "notification skipped, user lookup failed", "order_id", order.ID, "error", err)
		return
	}
	if err := send(u); err != nil {
		logger.WarnContext(ctx, "notification email failed", "order_id", order.ID, "error", err)
	}
}
