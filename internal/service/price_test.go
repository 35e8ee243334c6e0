package service

import (
	"context"
	"testing"
	"time"

	"skirent-backend/internal/catalog"
	"skirent-backend/internal/domain"
	"skirent-backend/internal/repository"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func newTestResolver(r *testRepos) *catalog.Resolver {
	return catalog.NewResolver(r.prices, catalog.NewCache(time.Hour))
}

func TestPriceService_Upsert(t *testing.T) {
	ctx := context.Background()

	t.Run("InvalidatesCache", func(t *testing.T) {
		r := newTestRepos()
		resolver := newTestResolver(r)

		// warm the cache with the old price
		r.prices.On("GetByTypeSize", ctx, domain.EquipmentTypeSkis, domain.SizeMedium).
			Return(&domain.PriceEntry{Price: decimal.NewFromInt(130)}, nil).Once()
		price, err := resolver.ResolvePrice(ctx, domain.EquipmentTypeSkis, domain.SizeMedium)
		assert.NoError(t, err)
		assert.True(t, price.Equal(decimal.NewFromInt(130)))

		r.prices.On("Upsert", ctx, mock.AnythingOfType("*domain.PriceEntry")).
			Run(func(args mock.Arguments) {
				args.Get(1).(*domain.PriceEntry).ID = 3
			}).Return(nil)

		svc := NewPriceService(r.bundle(), resolver)
		entry, err := svc.Upsert(ctx, "skis", "medium", decimal.NewFromInt(150), "season rate")
		assert.NoError(t, err)
		assert.Equal(t, int32(3), entry.ID)

		// next resolve must hit the repository again
		r.prices.On("GetByTypeSize", ctx, domain.EquipmentTypeSkis, domain.SizeMedium).
			Return(&domain.PriceEntry{Price: decimal.NewFromInt(150)}, nil).Once()
		price, err = resolver.ResolvePrice(ctx, domain.EquipmentTypeSkis, domain.SizeMedium)
		assert.NoError(t, err)
		assert.True(t, price.Equal(decimal.NewFromInt(150)))
	})

	t.Run("UnknownType", func(t *testing.T) {
		r := newTestRepos()
		svc := NewPriceService(r.bundle(), newTestResolver(r))
		_, err := svc.Upsert(ctx, "sled", "medium", decimal.NewFromInt(10), "")
		var verr *ValidationError
		assert.ErrorAs(t, err, &verr)
	})

	t.Run("NegativePrice", func(t *testing.T) {
		r := newTestRepos()
		svc := NewPriceService(r.bundle(), newTestResolver(r))
		_, err := svc.Upsert(ctx, "skis", "medium", decimal.NewFromInt(-1), "")
		var verr *ValidationError
		assert.ErrorAs(t, err, &verr)
	})
}

func TestPriceService_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("SweepsUnreservedUnits", func(t *testing.T) {
		r := newTestRepos()
		r.prices.On("Delete", ctx, domain.EquipmentTypeHelmet, domain.SizeSmall).Return(nil)
		r.equipment.On("CountAvailable", ctx, domain.EquipmentTypeHelmet, domain.SizeSmall).Return(int32(4), nil)
		r.equipment.On("DeleteAvailable", ctx, domain.EquipmentTypeHelmet, domain.SizeSmall, int32(4)).Return(int32(4), nil)

		svc := NewPriceService(r.bundle(), newTestResolver(r))
		removed, err := svc.Delete(ctx, "helmet", "small")
		assert.NoError(t, err)
		assert.Equal(t, int32(4), removed)
	})

	t.Run("ReservedUnitsStay", func(t *testing.T) {
		r := newTestRepos()
		r.prices.On("Delete", ctx, domain.EquipmentTypeHelmet, domain.SizeSmall).Return(nil)
		r.equipment.On("CountAvailable", ctx, domain.EquipmentTypeHelmet, domain.SizeSmall).Return(int32(0), nil)

		svc := NewPriceService(r.bundle(), newTestResolver(r))
		removed, err := svc.Delete(ctx, "helmet", "small")
		assert.NoError(t, err)
		assert.Equal(t, int32(0), removed)
		r.equipment.AssertNotCalled(t, "DeleteAvailable", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("MissingEntry", func(t *testing.T) {
		r := newTestRepos()
		r.prices.On("Delete", ctx, domain.EquipmentTypeHelmet, domain.SizeSmall).Return(repository.ErrNotFound)

		svc := NewPriceService(r.bundle(), newTestResolver(r))
		_, err := svc.Delete(ctx, "helmet", "small")
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestEquipmentService_Add(t *testing.T) {
	ctx := context.Background()

	t.Run("ResolvesPriceWhenZero", func(t *testing.T) {
		r := newTestRepos()
		r.prices.On("GetByTypeSize", ctx, domain.EquipmentTypeSnowboard, domain.SizeLarge).
			Return(nil, repository.ErrNotFound)

		var nextID int32
		r.equipment.On("Create", ctx, mock.AnythingOfType("*domain.Equipment")).
			Run(func(args mock.Arguments) {
				nextID++
				args.Get(1).(*domain.Equipment).ID = nextID
			}).Return(nil)

		svc := NewEquipmentService(r.bundle(), newTestResolver(r))
		units, err := svc.Add(ctx, "snowboard", "large", 3, decimal.Zero)
		assert.NoError(t, err)
		assert.Len(t, units, 3)
		for _, u := range units {
			// legacy default for snowboards
			assert.True(t, u.Price.Equal(decimal.NewFromInt(160)))
			assert.True(t, u.InWarehouse)
			assert.False(t, u.Reserved)
		}
	})

	t.Run("BadQuantity", func(t *testing.T) {
		r := newTestRepos()
		svc := NewEquipmentService(r.bundle(), newTestResolver(r))
		_, err := svc.Add(ctx, "skis", "medium", 0, decimal.NewFromInt(100))
		var verr *ValidationError
		assert.ErrorAs(t, err, &verr)
	})
}

func TestEquipmentService_Availability(t *testing.T) {
	ctx := context.Background()
	r := newTestRepos()
	r.equipment.On("Availability", ctx).Return([]domain.AvailabilityGroup{
		{Type: domain.EquipmentTypeSkis, Size: domain.SizeMedium, Count: 4},
		{Type: domain.EquipmentTypeGloves, Size: domain.SizeSmall, Count: 2},
	}, nil)
	r.prices.On("GetByTypeSize", ctx, domain.EquipmentTypeSkis, domain.SizeMedium).
		Return(&domain.PriceEntry{Price: decimal.NewFromInt(150)}, nil)
	r.prices.On("GetByTypeSize", ctx, domain.EquipmentTypeGloves, domain.SizeSmall).
		Return(nil, repository.ErrNotFound)

	svc := NewEquipmentService(r.bundle(), newTestResolver(r))
	views, err := svc.Availability(ctx)
	assert.NoError(t, err)
	assert.Len(t, views, 2)
	assert.True(t, views[0].UnitPrice.Equal(decimal.NewFromInt(150)))
	assert.True(t, views[1].UnitPrice.Equal(decimal.NewFromInt(15))) // legacy default
}
