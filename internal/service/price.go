package service

import (
	"context"
	"errors"
	"fmt"

	"skirent-backend/internal/catalog"
	"skirent-backend/internal/domain"
	"skirent-backend/internal/repository"

	"github.com/shopspring/decimal"
)

type priceService struct {
	repos    repository.Repositories
	resolver *catalog.Resolver
}

func NewPriceService(repos repository.Repositories, resolver *catalog.Resolver) PriceService {
	return &priceService{repos: repos, resolver: resolver}
}

func (s *priceService) List(ctx context.Context) ([]domain.PriceEntry, error) {
	return s.repos.Prices.List(ctx)
}

func (s *priceService) Upsert(ctx context.Context, typeLabel, sizeLabel string, price decimal.Decimal, note string) (*domain.PriceEntry, error) {
	t, err := domain.ParseEquipmentType(typeLabel)
	if err != nil {
		return nil, Validationf("%s", err)
	}
	sz, err := domain.ParseSize(sizeLabel)
	if err != nil {
		return nil, Validationf("%s", err)
	}
	if price.IsNegative() {
		return nil, Validationf("price must not be negative")
	}

	entry := &domain.PriceEntry{Type: t, Size: sz, Price: price, Note: note}
	if err := s.repos.Prices.Upsert(ctx, entry); err != nil {
		return nil, fmt.Errorf("upsert price: %w", err)
	}
	s.resolver.Invalidate(t, sz)
	return entry, nil
}

// Delete drops the catalog entry and sweeps out the still-unreserved units of
// the pair. Units on an issued order stay; they return to a pair that now
// prices from the legacy defaults.
func (s *priceService) Delete(ctx context.Context, typeLabel, sizeLabel string) (int32, error) {
	t, err := domain.ParseEquipmentType(typeLabel)
	if err != nil {
		return 0, Validationf("%s", err)
	}
	sz, err := domain.ParseSize(sizeLabel)
	if err != nil {
		return 0, Validationf("%s", err)
	}

	if err := s.repos.Prices.Delete(ctx, t, sz); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return 0, ErrNotFound
		}
		return 0, err
	}
	s.resolver.Invalidate(t, sz)

	count, err := s.repos.Equipment.CountAvailable(ctx, t, sz)
	if err != nil {
		return 0, err
	}
	if count == 0 {
		return 0, nil
	}
	return s.repos.Equipment.DeleteAvailable(ctx, t, sz, count)
}
