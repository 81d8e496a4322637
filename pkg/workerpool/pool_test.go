package workerpool_test

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/megamart/pkg/workerpool"
)

func TestPool_RunsEveryTask(t *testing.T) {
	pool := workerpool.New("test", 4, 100)

	const n = 100
	var count atomic.Int64
	var wg sync.WaitGroup
	wg.Add(n)
	for i := 0; i < n; i++ {
		require.NoError(t, pool.Submit(func(context.Context) {
			defer wg.Done()
			count.Add(1)
		}))
	}
	wg.Wait()

	assert.EqualValues(t, n, count.Load())
	assert.NoError(t, pool.Shutdown(context.Background()))
}

func TestPool_FullQueueIsRejected(t *testing.T) {
	pool := workerpool.New("test", 1, 2)
	blocker := make(chan struct{})
	started := make(chan struct{})

	require.NoError(t, pool.Submit(func(context.Context) {
		close(started)
		<-blocker
	}))
	<-started

	require.NoError(t, pool.Submit(func(context.Context) {}))
	require.NoError(t, pool.Submit(func(context.Context) {}))
	assert.Equal(t, 2, pool.Pending())
	assert.ErrorIs(t, pool.Submit(func(context.Context) {}), workerpool.ErrPoolFull)

	close(blocker)
	assert.NoError(t, pool.Shutdown(context.Background()))
}

func TestPool_ClosedPoolRejects(t *testing.T) {
	pool := workerpool.New("test", 2, -1)
	require.NoError(t, pool.Shutdown(context.Background()))
	require.NoError(t, pool.Shutdown(context.Background()))

	assert.ErrorIs(t, pool.Submit(func(context.Context) {}), workerpool.ErrPoolClosed)
}

func TestPool_SurvivesPanics(t *testing.T) {
	pool := workerpool.New("test", 1, 4)
	defer pool.Shutdown(context.Background())

	require.NoError(t, pool.Submit(func(context.Context) { panic("boom") }))

	ran := make(chan struct{})
	require.NoError(t, pool.Submit(func(context.Context) { close(ran) }))

	select {
	case <-ran:
	case <-time.After(2 * time.Second):
		t.Fatal("worker did not survive a panicking task")
	}
}

func TestPool_ShutdownDeadlineCancelsTasks(t *testing.T) {
	pool := workerpool.New("test", 1, 1)
	cancelled := make(chan struct{})
	started := make(chan struct{})

	require.NoError(t, pool.Submit(func(ctx context.Context) {
		close(started)
		<-ctx.Done()
		close(cancelled)
	}))
	<-started

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	assert.ErrorIs(t, pool.Shutdown(ctx), context.DeadlineExceeded)

	select {
	case <-cancelled:
	case <-time.After(2 * time.Second):
		t.Fatal("running task never saw its context cancelled")
	}
}
