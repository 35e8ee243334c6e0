package service

import (
	"context"
	"fmt"

	"skirent-backend/internal/catalog"
	"skirent-backend/internal/domain"
	"skirent-backend/internal/repository"

	"github.com/shopspring/decimal"
)

type equipmentService struct {
	repos    repository.Repositories
	resolver *catalog.Resolver
}

func NewEquipmentService(repos repository.Repositories, resolver *catalog.Resolver) EquipmentService {
	return &equipmentService{repos: repos, resolver: resolver}
}

// Add creates quantity identical units. A zero price means "use the catalog",
// resolved once for the whole batch.
func (s *equipmentService) Add(ctx context.Context, typeLabel, sizeLabel string, quantity int32, price decimal.Decimal) ([]domain.Equipment, error) {
	t, err := domain.ParseEquipmentType(typeLabel)
	if err != nil {
		return nil, Validationf("%s", err)
	}
	sz, err := domain.ParseSize(sizeLabel)
	if err != nil {
		return nil, Validationf("%s", err)
	}
	if quantity < 1 {
		return nil, Validationf("quantity must be at least 1")
	}
	if price.IsNegative() {
		return nil, Validationf("price must not be negative")
	}

	if price.IsZero() {
		price, err = s.resolver.ResolvePrice(ctx, t, sz)
		if err != nil {
			return nil, err
		}
	}

	units := make([]domain.Equipment, 0, quantity)
	for i := int32(0); i < quantity; i++ {
		eq := domain.Equipment{
			Type:        t,
			Size:        sz,
			Price:       price,
			InWarehouse: true,
		}
		if err := s.repos.Equipment.Create(ctx, &eq); err != nil {
			return nil, fmt.Errorf("create equipment: %w", err)
		}
		units = append(units, eq)
	}
	return units, nil
}

func (s *equipmentService) List(ctx context.Context) ([]EquipmentView, error) {
	units, err := s.repos.Equipment.List(ctx)
	if err != nil {
		return nil, err
	}

	views := make([]EquipmentView, 0, len(units))
	for _, eq := range units {
		catalogPrice, err := s.resolver.ResolvePrice(ctx, eq.Type, eq.Size)
		if err != nil {
			return nil, err
		}
		views = append(views, EquipmentView{Equipment: eq, CatalogPrice: catalogPrice})
	}
	return views, nil
}

func (s *equipmentService) Availability(ctx context.Context) ([]AvailabilityView, error) {
	groups, err := s.repos.Equipment.Availability(ctx)
	if err != nil {
		return nil, err
	}

	views := make([]AvailabilityView, 0, len(groups))
	for _, g := range groups {
		price, err := s.resolver.ResolvePrice(ctx, g.Type, g.Size)
		if err != nil {
			return nil, err
		}
		views = append(views, AvailabilityView{AvailabilityGroup: g, UnitPrice: price})
	}
	return views, nil
}

func (s *equipmentService) UpdatePrice(ctx context.Context, id int32, price decimal.Decimal) error {
	if price.IsNegative() {
		return Validationf("price must not be negative")
	}
	return asNotFound(s.repos.Equipment.UpdatePrice(ctx, id, price))
}

func (s *equipmentService) Delete(ctx context.Context, id int32) error {
	return asNotFound(s.repos.Equipment.Delete(ctx, id))
}

func (s *equipmentService) DeleteAvailable(ctx context.Context, typeLabel, sizeLabel string, quantity int32) (int32, error) {
	t, err := domain.ParseEquipmentType(typeLabel)
	if err != nil {
		return 0, Validationf("%s", err)
	}
	sz, err := domain.ParseSize(sizeLabel)
	if err != nil {
		return 0, Validationf("%s", err)
	}
	if quantity < 1 {
		return 0, Validationf("quantity must be at least 1")
	}
	return s.repos.Equipment.DeleteAvailable(ctx, t, sz, quantity)
}
