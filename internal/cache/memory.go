package cache

import (
	"context"
	"time"

	"github.com/jellydator/ttlcache/v3"

	"github.com/sacsbrainz/betconverter/internal/models"
)

// MemoryCache keeps results in process memory.
type MemoryCache struct {
	items *ttlcache.Cache[string, models.ConversionResult]
}

// NewMemory returns a cache whose entries live for ttl. Call Close to stop
// the expiry loop.
func NewMemory(ttl time.Duration) *MemoryCache {
	items := ttlcache.New(
		ttlcache.WithTTL[string, models.ConversionResult](ttl),
		ttlcache.WithDisableTouchOnHit[string, models.ConversionResult](),
	)
	go items.Start()

	return &MemoryCache{items: items}
}

func (m *MemoryCache) Get(_ context.Context, key string) (models.ConversionResult, error) {
	item := m.items.Get(key)
	if item == nil || item.IsExpired() {
		return models.ConversionResult{}, ErrMiss
	}
	return item.Value(), nil
}

func (m *MemoryCache) Set(_ context.Context, key string, res models.ConversionResult) error {
	m.items.Set(key, res, ttlcache.DefaultTTL)
	return nil
}

// Len returns the number of stored entries, expired ones included until
// the expiry loop removes them.
func (m *MemoryCache) Len() int {
	return m.items.Len()
}

func (m *MemoryCache) Close() {
	m.items.Stop()
}
