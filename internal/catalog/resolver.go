// Package catalog resolves the unit price for a (type, size) pair: cache
// first, then the price catalog, then built-in defaults carried over from
// the legacy price list.
package catalog

import (
	"context"
	"errors"
	"fmt"

	"skirent-backend/internal/domain"
	"skirent-backend/internal/repository"

	"github.com/shopspring/decimal"
)

type Resolver struct {
	prices repository.PriceRepository
	cache  *Cache
}

func NewResolver(prices repository.PriceRepository, cache *Cache) *Resolver {
	return &Resolver{prices: prices, cache: cache}
}

// ResolvePrice returns the catalog price for the pair, falling back to the
// legacy defaults when no entry exists. Results are cached until the next
// catalog write or TTL expiry.
func (r *Resolver) ResolvePrice(ctx context.Context, t domain.EquipmentType, s domain.Size) (decimal.Decimal, error) {
	if price, ok := r.cache.Get(t, s); ok {
		return price, nil
	}

	entry, err := r.prices.GetByTypeSize(ctx, t, s)
	switch {
	case err == nil:
		r.cache.Set(t, s, entry.Price)
		return entry.Price, nil
	case errors.Is(err, repository.ErrNotFound):
		price := DefaultPrice(t, s)
		r.cache.Set(t, s, price)
		return price, nil
	default:
		return decimal.Zero, fmt.Errorf("resolve price %s %s: %w", t, s, err)
	}
}

// Invalidate is called by the catalog service after any price write.
func (r *Resolver) Invalidate(t domain.EquipmentType, s domain.Size) {
	r.cache.Invalidate(t, s)
}

// DefaultPrice is the legacy fallback price list, used when the catalog has
// no entry for the pair.
func DefaultPrice(t domain.EquipmentType, s domain.Size) decimal.Decimal {
	switch t {
	case domain.EquipmentTypeSkis:
		switch s {
		case domain.SizeSmall:
			return decimal.NewFromInt(120)
		case domain.SizeLarge:
			return decimal.NewFromInt(140)
		default:
			return decimal.NewFromInt(130)
		}
	case domain.EquipmentTypeHelmet:
		return decimal.NewFromInt(35)
	case domain.EquipmentTypeGloves:
		return decimal.NewFromInt(15)
	case domain.EquipmentTypePoles:
		return decimal.NewFromInt(22)
	case domain.EquipmentTypeSnowboard:
		return decimal.NewFromInt(160)
	case domain.EquipmentTypeGoggles:
		return decimal.NewFromInt(55)
	default:
		return decimal.Zero
	}
}
