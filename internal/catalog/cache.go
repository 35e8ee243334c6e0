package catalog

import (
	"sync"
	"time"

	"skirent-backend/internal/domain"

	"github.com/shopspring/decimal"
)

type cacheEntry struct {
	price     decimal.Decimal
	expiresAt time.Time
}

// Cache is a small TTL map for resolved prices. It is injected into the
// resolver rather than held as package state so catalog writes can
// invalidate it explicitly.
type Cache struct {
	mu      sync.Mutex
	entries map[string]cacheEntry
	ttl     time.Duration
	now     func() time.Time
}

func NewCache(ttl time.Duration) *Cache {
	return &Cache{
		entries: make(map[string]cacheEntry),
		ttl:     ttl,
		now:     time.Now,
	}
}

func cacheKey(t domain.EquipmentType, s domain.Size) string {
	return string(t) + "/" + string(s)
}

func (c *Cache) Get(t domain.EquipmentType, s domain.Size) (decimal.Decimal, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[cacheKey(t, s)]
	if !ok || c.now().After(e.expiresAt) {
		delete(c.entries, cacheKey(t, s))
		return decimal.Zero, false
	}
	return e.price, true
}

func (c *Cache) Set(t domain.EquipmentType, s domain.Size, price decimal.Decimal) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[cacheKey(t, s)] = cacheEntry{price: price, expiresAt: c.now().Add(c.ttl)}
}

// Invalidate drops the entry for one (type, size) pair.
func (c *Cache) Invalidate(t domain.EquipmentType, s domain.Size) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, cacheKey(t, s))
}

// Reset drops every cached price.
func (c *Cache) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]cacheEntry)
}
