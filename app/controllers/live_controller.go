package controllers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/shashiranjanraj/megamart/app/detail"
	"github.com/shashiranjanraj/megamart/pkg/decor"
	"github.com/shashiranjanraj/megamart/pkg/logger"
	"github.com/shashiranjanraj/megamart/pkg/metrics"
	"github.com/shashiranjanraj/megamart/pkg/sse"
	"github.com/shashiranjanraj/megamart/pkg/ws"
)

// LiveController exposes a running detail view: as an event stream that
// ends once the fetch settles, or as a WebSocket session that accepts
// actions for as long as the socket stays open.
type LiveController struct {
	deps Deps
}

func NewLiveController(d Deps) *LiveController {
	return &LiveController{deps: d}
}

// Message is one client frame on the live socket.
type Message struct {
	Action   string `json:"action"`
	ID       string `json:"id,omitempty"`
	Quantity int    `json:"quantity,omitempty"`
}

type liveError struct {
	Error string `json:"error"`
}

func (c *LiveController) source(p detail.Params) decor.Source {
	if p.Discount > 0 {
		return decor.Fixed(p.Discount)
	}
	return c.deps.Decor
}

// Events streams "state" events from loading until the view settles.
func (c *LiveController) Events(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := chi.URLParam(r, "id")

	stream, err := sse.New(w, r)
	if err != nil {
		return
	}

	v := detail.NewView(c.deps.Products, c.source(detail.ParseParams(r.URL.Query())))
	defer v.Close()
	states, unsubscribe := v.Subscribe()
	defer unsubscribe()

	v.Navigate(ctx, id)

	for {
		select {
		case st, ok := <-states:
			if !ok {
				return
			}
			if st.Seq == 0 {
				continue
			}
			if err := stream.Send("state", st.Model()); err != nil {
				return
			}
			if st.Phase.Terminal() {
				return
			}
		case <-ctx.Done():
			return
		}
	}
}

// Socket runs one detail view per connection and pushes every state change.
func (c *LiveController) Socket(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.WithCtx(ctx)

	conn, err := ws.Upgrade(w, r)
	if err != nil {
		return
	}

	metrics.LiveSessions.Inc()
	defer metrics.LiveSessions.Dec()

	v := detail.NewView(c.deps.Products, c.source(detail.ParseParams(r.URL.Query())))
	defer v.Close()
	states, unsubscribe := v.Subscribe()
	defer unsubscribe()

	go func() {
		for st := range states {
			if st.Seq == 0 {
				continue
			}
			if err := conn.SendJSON(st.Model()); err != nil {
				return
			}
		}
	}()

	log.Info("live session opened", "conn", conn.ID)
	v.Navigate(ctx, chi.URLParam(r, "id"))

	err = conn.Serve(ctx, func(raw []byte) {
		c.handle(ctx, v, conn, raw)
	})
	if err != nil {
		log.Warn("live session ended", "conn", conn.ID, "error", err)
		return
	}
	log.Info("live session closed", "conn", conn.ID)
}

func (c *LiveController) handle(ctx context.Context, v *detail.View, conn *ws.Conn, raw []byte) {
	var msg Message
	if err := json.Unmarshal(raw, &msg); err != nil {
		conn.SendJSON(liveError{Error: "invalid message"}) //nolint:errcheck
		return
	}

	switch msg.Action {
	case "navigate":
		if msg.ID == "" {
			conn.SendJSON(liveError{Error: "navigate needs an id"}) //nolint:errcheck
			return
		}
		v.Navigate(ctx, msg.ID)
	case "increment":
		v.Dispatch(detail.Increment{})
	case "decrement":
		v.Dispatch(detail.Decrement{})
	case "set_quantity":
		v.Dispatch(detail.SetQuantity{N: msg.Quantity})
	case "toggle_favorite":
		v.Dispatch(detail.ToggleFavorite{})
	case "add_to_cart":
		v.Dispatch(detail.AddToCart{})
	case "buy_now":
		v.Dispatch(detail.BuyNow{})
	default:
		conn.SendJSON(liveError{Error: "unknown action " + msg.Action}) //nolint:errcheck
	}
}
