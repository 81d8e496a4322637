// Package workerpool runs background tasks on a fixed set of goroutines.
//
// Submit never blocks: when every worker is busy and the queue is full it
// returns ErrPoolFull and the caller drops the task. The storefront uses it
// to warm the product cache after a listing render, where skipping a warm-up
// is always acceptable.
//
//	pool := workerpool.New("prefetch", 4, 16)
//	defer pool.Shutdown(ctx)
//
//	if err := pool.Submit(func(ctx context.Context) { warm(ctx, id) }); err != nil {
//	    // ErrPoolFull or ErrPoolClosed: skip
//	}
package workerpool

import (
	"context"
	"errors"
	"sync"

	"github.com/shashiranjanraj/megamart/pkg/logger"
)

var (
	ErrPoolFull   = errors.New("workerpool: pool is full")
	ErrPoolClosed = errors.New("workerpool: pool is closed")
)

// Task receives a context that is cancelled when Shutdown gives up waiting.
type Task func(ctx context.Context)

type Pool struct {
	name  string
	tasks chan Task

	mu     sync.RWMutex
	closed bool

	wg     sync.WaitGroup
	ctx    context.Context
	cancel context.CancelFunc
}

// New starts workers goroutines with room for queue waiting tasks.
// Non-positive sizes default to one worker and a queue twice the worker count.
func New(name string, workers, queue int) *Pool {
	if workers <= 0 {
		workers = 1
	}
	if queue < 0 {
		queue = workers * 2
	}

	ctx, cancel := context.WithCancel(context.Background())
	p := &Pool{
		name:   name,
		tasks:  make(chan Task, queue),
		ctx:    ctx,
		cancel: cancel,
	}

	p.wg.Add(workers)
	for i := 0; i < workers; i++ {
		go p.worker()
	}
	return p
}

// Submit queues task without blocking.
func (p *Pool) Submit(task Task) error {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if p.closed {
		return ErrPoolClosed
	}
	select {
	case p.tasks <- task:
		return nil
	default:
		return ErrPoolFull
	}
}

// Pending is the number of queued tasks not yet picked up by a worker.
func (p *Pool) Pending() int {
	return len(p.tasks)
}

// Shutdown stops accepting tasks and waits for queued and running ones.
// If ctx ends first the task context is cancelled and ctx.Err() returned;
// workers still exit once their current task returns.
func (p *Pool) Shutdown(ctx context.Context) error {
	p.mu.Lock()
	if !p.closed {
		p.closed = true
		close(p.tasks)
	}
	p.mu.Unlock()

	done := make(chan struct{})
	go func() {
		p.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		p.cancel()
		return nil
	case <-ctx.Done():
		p.cancel()
		return ctx.Err()
	}
}

func (p *Pool) worker() {
	defer p.wg.Done()
	for task := range p.tasks {
		p.run(task)
	}
}

func (p *Pool) run(task Task) {
	defer func() {
		if rec := recover(); rec != nil {
			logger.Error("workerpool: task panicked", "pool", p.name, "panic", rec)
		}
	}()
	task(p.ctx)
}
