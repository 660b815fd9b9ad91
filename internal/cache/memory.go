package cache

import (
	"context"
	"slices"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"MarketPulse/internal/model"
)

// MemoryCache is an in-process CandleCache with per-entry expiry.
type MemoryCache struct {
	store *gocache.Cache
}

// NewMemoryCache creates a cache whose entries expire after ttl.
func NewMemoryCache(ttl time.Duration) *MemoryCache {
	return &MemoryCache{store: gocache.New(ttl, 2*ttl)}
}

func (m *MemoryCache) Name() string { return "memory" }

func (m *MemoryCache) Get(_ context.Context, key string) ([]model.OHLCV, bool) {
	v, ok := m.store.Get(key)
	if !ok {
		return nil, false
	}
	bars, ok := v.([]model.OHLCV)
	if !ok {
		return nil, false
	}
	return slices.Clone(bars), true
}

func (m *MemoryCache) Set(_ context.Context, key string, bars []model.OHLCV) {
	m.store.Set(key, slices.Clone(bars), gocache.DefaultExpiration)
}

func (m *MemoryCache) Close() error {
	m.store.Flush()
	return nil
}
