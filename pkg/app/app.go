// Package app assembles the HTTP side of the storefront: global middleware,
// the system endpoints and the route callbacks registered by the project.
//
//	handler := app.New().
//	    Routes(func(r *router.Router) { routes.Register(r, ctrl) }).
//	    Handler()
//
//	err := app.New().Routes(...).Serve(ctx)   // blocks until ctx ends
package app

import (
	"net/http"
	"time"

	"github.com/shashiranjanraj/megamart/config"
	"github.com/shashiranjanraj/megamart/pkg/router"
)

// ─── Application Builder ──────────────────────────────────────────────────────

type Application struct {
	routesFns  []func(*router.Router)
	rateMax    int
	rateWindow time.Duration
}

// New reads the rate limit from config.
func New() *Application {
	return &Application{
		rateMax:    config.RateLimit(),
		rateWindow: config.RateWindow(),
	}
}

// Routes registers a route-registration callback. Callbacks run in order
// every time a router is built.
func (a *Application) Routes(fn func(*router.Router)) *Application {
	a.routesFns = append(a.routesFns, fn)
	return a
}

// RateLimit overrides the per-client limit; max <= 0 disables limiting.
func (a *Application) RateLimit(max int, window time.Duration) *Application {
	a.rateMax, a.rateWindow = max, window
	return a
}

// Router builds a fresh router with the full middleware stack and every
// registered route.
func (a *Application) Router() *router.Router {
	return buildRouter(a)
}

func (a *Application) Handler() http.Handler {
	return a.Router().Handler()
}
