package detail

import (
	"context"
	"sync"

	"github.com/shashiranjanraj/megamart/app/models"
	"github.com/shashiranjanraj/megamart/pkg/decor"
	"github.com/shashiranjanraj/megamart/pkg/logger"
	"github.com/shashiranjanraj/megamart/pkg/metrics"
)

// Fetcher loads one product by its raw identifier.
type Fetcher interface {
	Product(ctx context.Context, id string) (*models.Product, error)
}

// subscriberBuffer is how many unread states a subscriber may fall behind
// before the oldest is dropped.
const subscriberBuffer = 16

// View owns one detail view state and at most one in-flight fetch.
type View struct {
	fetcher Fetcher
	decor   decor.Source

	mu      sync.Mutex
	state   State
	cancel  context.CancelFunc
	settled chan struct{}
	subs    map[int]chan State
	nextSub int
	closed  bool

	wg sync.WaitGroup
}

// NewView returns an idle view. A nil src draws from an unseeded source.
func NewView(f Fetcher, src decor.Source) *View {
	if src == nil {
		src = decor.New(0)
	}
	return &View{
		fetcher: f,
		decor:   src,
		state:   Initial(),
		subs:    map[int]chan State{},
	}
}

// Navigate switches the view to id and starts its fetch in the background,
// cancelling any fetch still running for the previous identifier. It reports
// whether a fetch was started; navigating to the shown id does nothing.
// The fetch is bound to ctx.
func (v *View) Navigate(ctx context.Context, id string) bool {
	v.mu.Lock()
	if v.closed {
		v.mu.Unlock()
		return false
	}

	next := Reduce(v.state, Navigate{ID: id})
	if next.Seq == v.state.Seq {
		v.mu.Unlock()
		return false
	}

	if v.cancel != nil {
		v.cancel()
	}
	fetchCtx, cancel := context.WithCancel(ctx)
	v.cancel = cancel
	v.settle()
	v.settled = make(chan struct{})
	v.apply(next)

	v.wg.Add(1)
	v.mu.Unlock()

	go v.fetch(fetchCtx, next.Seq, id)
	return true
}

func (v *View) fetch(ctx context.Context, seq uint64, id string) {
	defer v.wg.Done()
	log := logger.WithCtx(ctx)

	product, err := v.fetcher.Product(ctx, id)

	var result Action
	if err != nil {
		result = Rejected{Seq: seq, ID: id, Err: err}
	} else {
		result = Resolved{Seq: seq, ID: id, Product: product, Discount: v.decor.Between(MinDiscount, MaxDiscount)}
	}

	v.mu.Lock()
	defer v.mu.Unlock()

	if v.closed {
		return
	}
	if seq != v.state.Seq || id != v.state.ID {
		metrics.StaleResponses.Inc()
		log.Debug("detail: dropped stale fetch result", "id", id, "seq", seq, "current", v.state.ID)
		return
	}

	next := Reduce(v.state, result)
	switch next.Phase {
	case Failed:
		log.Warn("detail: product unavailable", "id", id, "error", err)
	case NotFound:
		log.Info("detail: product not found", "id", id)
	}

	metrics.ViewsSettled.WithLabelValues(next.Phase.String()).Inc()
	v.apply(next)
	v.settle()
}

// Dispatch applies a user action and returns the resulting state.
// Navigate, Resolved and Rejected are driven by Navigate and the fetch, so
// they are ignored here.
func (v *View) Dispatch(a Action) State {
	v.mu.Lock()
	defer v.mu.Unlock()

	switch a.(type) {
	case Navigate, Resolved, Rejected:
		return v.state
	}
	if v.closed {
		return v.state
	}
	v.apply(Reduce(v.state, a))
	return v.state
}

func (v *View) State() State {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.state
}

// Wait blocks until the current navigation settles and returns the settled
// state. A view that was never navigated returns immediately. If another
// navigation happens meanwhile, Wait follows it.
func (v *View) Wait(ctx context.Context) (State, error) {
	for {
		v.mu.Lock()
		st, ch := v.state, v.settled
		closed := v.closed
		v.mu.Unlock()

		if ch == nil || st.Phase.Terminal() || closed {
			return st, nil
		}
		select {
		case <-ch:
		case <-ctx.Done():
			return st, ctx.Err()
		}
	}
}

// Subscribe returns a channel that receives every state change, starting
// with the current state. A subscriber that falls behind loses the oldest
// states, never the newest. The channel closes on unsubscribe or Close.
func (v *View) Subscribe() (<-chan State, func()) {
	v.mu.Lock()
	defer v.mu.Unlock()

	ch := make(chan State, subscriberBuffer)
	if v.closed {
		close(ch)
		return ch, func() {}
	}

	id := v.nextSub
	v.nextSub++
	v.subs[id] = ch
	ch <- v.state

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			v.mu.Lock()
			defer v.mu.Unlock()
			if c, ok := v.subs[id]; ok {
				delete(v.subs, id)
				close(c)
			}
		})
	}
}

// Close cancels the in-flight fetch, closes every subscriber and waits for
// the fetch goroutine to return.
func (v *View) Close() {
	v.mu.Lock()
	if !v.closed {
		v.closed = true
		if v.cancel != nil {
			v.cancel()
		}
		for id, ch := range v.subs {
			delete(v.subs, id)
			close(ch)
		}
		v.settle()
	}
	v.mu.Unlock()

	v.wg.Wait()
}

// settle wakes every Wait on the current navigation. Callers hold v.mu.
func (v *View) settle() {
	if v.settled != nil {
		close(v.settled)
		v.settled = nil
	}
}

// apply stores s and publishes it. Callers hold v.mu.
func (v *View) apply(s State) {
	v.state = s
	for _, ch := range v.subs {
		offer(ch, s)
	}
}

func offer(ch chan State, s State) {
	select {
	case ch <- s:
		return
	default:
	}
	select {
	case <-ch:
	default:
	}
	select {
	case ch <- s:
	default:
	}
}
