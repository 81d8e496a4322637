// Package cache stores fetched product records between requests.
//
// Three drivers share one interface:
//
//	store := cache.Nop{}                          // CACHE_DRIVER=none
//	store, err := cache.NewMemory(ctx, 5*time.Minute) // CACHE_DRIVER=memory (bigcache)
//	store, err := cache.NewRedis(ctx, addr, pass) // CACHE_DRIVER=redis
//
// Values are JSON encoded. A Get that fails for any reason is reported as a
// miss; callers fall through to the origin.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/shashiranjanraj/megamart/config"
	"github.com/shashiranjanraj/megamart/pkg/logger"
)

// Store is a JSON key/value cache with per-entry TTL.
type Store interface {
	// Get unmarshals the value under key into dest and reports a hit.
	Get(ctx context.Context, key string, dest any) bool
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Del(ctx context.Context, keys ...string) error
	// Driver names the backend for metrics and logs.
	Driver() string
}

// Nop is the disabled cache: every Get misses and every write is dropped.
type Nop struct{}

func (Nop) Get(context.Context, string, any) bool                 { return false }
func (Nop) Set(context.Context, string, any, time.Duration) error { return nil }
func (Nop) Del(context.Context, ...string) error                  { return nil }
func (Nop) Driver() string                                        { return "none" }

// Connect builds the store selected by CACHE_DRIVER. A driver that cannot be
// reached degrades to Nop with a warning rather than failing the boot.
func Connect(ctx context.Context) Store {
	switch config.CacheDriver() {
	case "memory":
		store, err := NewMemory(ctx, config.CacheTTL())
		if err != nil {
			logger.Warn("cache: memory driver unavailable, caching disabled", "error", err)
			return Nop{}
		}
		return store
	case "redis":
		store, err := NewRedis(ctx, config.RedisAddr(), config.RedisPassword())
		if err != nil {
			logger.Warn("cache: redis unavailable, caching disabled", "addr", config.RedisAddr(), "error", err)
			return Nop{}
		}
		return store
	default:
		return Nop{}
	}
}

func encode(value any) ([]byte, error) {
	data, err := json.Marshal(value)
	if err != nil {
		return nil, fmt.Errorf("cache: marshal: %w", err)
	}
	return data, nil
}
