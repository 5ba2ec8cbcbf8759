// Package memcache is the in-process cache used when no Redis address is configured.
package memcache

import (
	"context"
	"encoding/json"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"trip_surprise/internal/adapters/observability"
)

// Cache stores JSON-encoded values so reads behave like the Redis adapter: callers get a fresh copy.
type Cache struct{ c *gocache.Cache }

func New(defaultTTL time.Duration) *Cache {
	return &Cache{c: gocache.New(defaultTTL, 2*defaultTTL)}
}

func (m *Cache) Get(_ context.Context, key string, dst any) (bool, error) {
	v, ok := m.c.Get(key)
	if !ok {
		observability.ObserveCache("memory", "miss")
		return false, nil
	}
	observability.ObserveCache("memory", "hit")
	return true, json.Unmarshal(v.([]byte), dst)
}

// Set stores v for ttl; ttl <= 0 uses the cache default.
func (m *Cache) Set(_ context.Context, key string, v any, ttl time.Duration) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	if ttl <= 0 {
		ttl = gocache.DefaultExpiration
	}
	observability.ObserveCache("memory", "set")
	m.c.Set(key, b, ttl)
	return nil
}

func (m *Cache) Del(_ context.Context, key string) error {
	observability.ObserveCache("memory", "del")
	m.c.Delete(key)
	return nil
}
