// Package schedule runs background jobs on a fixed interval.
//
//	s := schedule.New()
//	s.Every(5 * time.Minute).Name("catalog.refresh").WithoutOverlapping().Run(refresh)
//	s.Start(ctx)   // returns at once; jobs stop when ctx ends
//	s.Wait()       // blocks until running jobs return
package schedule

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/shashiranjanraj/megamart/pkg/logger"
)

// Task receives the scheduler context, which ends on shutdown.
type Task func(ctx context.Context)

type entry struct {
	id        string
	interval  time.Duration
	task      Task
	noOverlap bool
	immediate bool

	mu      sync.Mutex
	running bool
}

// Scheduler owns a set of entries. Entries must be registered before Start.
type Scheduler struct {
	mu      sync.Mutex
	entries []*entry
	wg      sync.WaitGroup
	started bool
}

func New() *Scheduler {
	return &Scheduler{}
}

// Builder configures one entry until Run registers it.
type Builder struct {
	s *Scheduler
	e *entry
}

// Every starts an entry that fires once per d. d <= 0 is rejected by Run.
func (s *Scheduler) Every(d time.Duration) *Builder {
	return &Builder{s: s, e: &entry{interval: d}}
}

func (b *Builder) Name(id string) *Builder {
	b.e.id = id
	return b
}

// WithoutOverlapping skips a tick while the previous run is still going.
func (b *Builder) WithoutOverlapping() *Builder {
	b.e.noOverlap = true
	return b
}

// Immediately also runs the task right after Start.
func (b *Builder) Immediately() *Builder {
	b.e.immediate = true
	return b
}

// Run registers the entry.
func (b *Builder) Run(task Task) error {
	if b.e.interval <= 0 {
		return fmt.Errorf("schedule: %q needs a positive interval", b.e.id)
	}
	b.e.task = task

	b.s.mu.Lock()
	defer b.s.mu.Unlock()
	if b.s.started {
		return fmt.Errorf("schedule: %q registered after start", b.e.id)
	}
	if b.e.id == "" {
		b.e.id = fmt.Sprintf("task-%d", len(b.s.entries)+1)
	}
	b.s.entries = append(b.s.entries, b.e)
	return nil
}

// Len is the number of registered entries.
func (s *Scheduler) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// Start runs one ticker per entry until ctx ends. A second Start is a no-op.
func (s *Scheduler) Start(ctx context.Context) {
	s.mu.Lock()
	if s.started {
		s.mu.Unlock()
		return
	}
	s.started = true
	entries := append([]*entry(nil), s.entries...)
	s.mu.Unlock()

	for _, e := range entries {
		s.wg.Add(1)
		go s.loop(ctx, e)
	}
	if len(entries) > 0 {
		logger.Info("schedule: scheduler started", "entries", len(entries))
	}
}

// Wait blocks until every loop and in-flight run has returned.
func (s *Scheduler) Wait() {
	s.wg.Wait()
}

func (s *Scheduler) loop(ctx context.Context, e *entry) {
	defer s.wg.Done()

	if e.immediate {
		s.dispatch(ctx, e)
	}

	ticker := time.NewTicker(e.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.dispatch(ctx, e)
		}
	}
}

func (s *Scheduler) dispatch(ctx context.Context, e *entry) {
	e.mu.Lock()
	if e.noOverlap && e.running {
		e.mu.Unlock()
		logger.Warn("schedule: skipping overlapping task", "id", e.id)
		return
	}
	e.running = true
	e.mu.Unlock()

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		defer func() {
			e.mu.Lock()
			e.running = false
			e.mu.Unlock()
			if r := recover(); r != nil {
				logger.Error("schedule: task panicked", "id", e.id, "panic", r)
			}
		}()

		logger.Debug("schedule: running task", "id", e.id)
		e.task(ctx)
	}()
}
