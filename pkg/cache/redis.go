package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/shashiranjanraj/megamart/pkg/logger"
	"github.com/shashiranjanraj/megamart/pkg/metrics"
)

// keyPrefix namespaces storefront keys in a shared Redis.
const keyPrefix = "megamart:"

// Redis is a Store backed by a go-redis client.
type Redis struct {
	rdb *redis.Client
}

// NewRedis connects and pings. The caller decides what to do with an error.
func NewRedis(ctx context.Context, addr, password string) (*Redis, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       0,
	})

	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("cache: redis ping: %w", err)
	}
	return &Redis{rdb: rdb}, nil
}

// NewRedisClient wraps an existing client without pinging it.
func NewRedisClient(rdb *redis.Client) *Redis {
	return &Redis{rdb: rdb}
}

func (s *Redis) Driver() string { return "redis" }

func (s *Redis) Get(ctx context.Context, key string, dest any) bool {
	raw, err := s.rdb.Get(ctx, keyPrefix+key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			logger.WithCtx(ctx).Warn("cache: redis get failed", "key", key, "error", err)
		}
		metrics.CacheMisses.WithLabelValues(s.Driver()).Inc()
		return false
	}

	if err := json.Unmarshal(raw, dest); err != nil {
		metrics.CacheMisses.WithLabelValues(s.Driver()).Inc()
		return false
	}

	metrics.CacheHits.WithLabelValues(s.Driver()).Inc()
	return true
}

func (s *Redis) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	data, err := encode(value)
	if err != nil {
		return err
	}
	return s.rdb.Set(ctx, keyPrefix+key, data, ttl).Err()
}

func (s *Redis) Del(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	prefixed := make([]string, len(keys))
	for i, k := range keys {
		prefixed[i] = keyPrefix + k
	}
	return s.rdb.Del(ctx, prefixed...).Err()
}

func (s *Redis) Close() error {
	return s.rdb.Close()
}
