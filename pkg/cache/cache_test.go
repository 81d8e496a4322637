package cache_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/megamart/pkg/cache"
)

type entry struct {
	ID    int    `json:"id"`
	Title string `json:"title"`
}

func exercise(t *testing.T, store cache.Store) {
	t.Helper()
	ctx := context.Background()

	var got entry
	assert.False(t, store.Get(ctx, "product:1", &got), "empty store must miss")

	require.NoError(t, store.Set(ctx, "product:1", entry{ID: 1, Title: "Backpack"}, time.Minute))
	require.True(t, store.Get(ctx, "product:1", &got))
	assert.Equal(t, entry{ID: 1, Title: "Backpack"}, got)

	require.NoError(t, store.Del(ctx, "product:1", "product:missing"))
	assert.False(t, store.Get(ctx, "product:1", &got))
}

func TestMemoryStore(t *testing.T) {
	store, err := cache.NewMemory(context.Background(), time.Minute)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	assert.Equal(t, "memory", store.Driver())
	exercise(t, store)
}

func TestMemoryStoreCorruptValueIsMiss(t *testing.T) {
	store, err := cache.NewMemory(context.Background(), time.Minute)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	require.NoError(t, store.Set(context.Background(), "k", "just a string", time.Minute))
	var got entry
	assert.False(t, store.Get(context.Background(), "k", &got))
}

func TestRedisStore(t *testing.T) {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		t.Skip("REDIS_ADDR not set")
	}
	store, err := cache.NewRedis(context.Background(), addr, os.Getenv("REDIS_PASSWORD"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	exercise(t, store)
}

func TestNopStore(t *testing.T) {
	var store cache.Store = cache.Nop{}
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "k", entry{ID: 1}, time.Minute))
	var got entry
	assert.False(t, store.Get(ctx, "k", &got))
	assert.NoError(t, store.Del(ctx, "k"))
	assert.Equal(t, "none", store.Driver())
}
