package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/allegro/bigcache/v3"

	"github.com/shashiranjanraj/megamart/pkg/metrics"
)

// Memory is an in-process Store backed by bigcache. bigcache expires entries
// on one global life window, so the per-call ttl passed to Set is ignored in
// favour of the window the store was built with.
type Memory struct {
	bc *bigcache.BigCache
}

// NewMemory builds a store whose entries live for ttl.
func NewMemory(ctx context.Context, ttl time.Duration) (*Memory, error) {
	cfg := bigcache.DefaultConfig(ttl)
	cfg.Verbose = false

	bc, err := bigcache.New(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("cache: bigcache: %w", err)
	}
	return &Memory{bc: bc}, nil
}

func (s *Memory) Driver() string { return "memory" }

func (s *Memory) Get(_ context.Context, key string, dest any) bool {
	raw, err := s.bc.Get(key)
	if err != nil {
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

func (s *Memory) Set(_ context.Context, key string, value any, _ time.Duration) error {
	data, err := encode(value)
	if err != nil {
		return err
	}
	return s.bc.Set(key, data)
}

func (s *Memory) Del(_ context.Context, keys ...string) error {
	for _, k := range keys {
		if err := s.bc.Delete(k); err != nil && !errors.Is(err, bigcache.ErrEntryNotFound) {
			return fmt.Errorf("cache: delete %q: %w", k, err)
		}
	}
	return nil
}

func (s *Memory) Close() error {
	return s.bc.Close()
}
