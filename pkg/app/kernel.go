package app

// pkg/app/kernel.go builds the router from the Application config. Project
// routes arrive through the Routes callbacks only.

import (
	"net/http"

	"github.com/shashiranjanraj/megamart/pkg/metrics"
	"github.com/shashiranjanraj/megamart/pkg/middleware"
	"github.com/shashiranjanraj/megamart/pkg/reqid"
	"github.com/shashiranjanraj/megamart/pkg/response"
	"github.com/shashiranjanraj/megamart/pkg/router"
)

func buildRouter(a *Application) *router.Router {
	r := router.New()

	// Outermost first: metrics, request id, access log, recovery, rate limit.
	r.Use(metrics.Middleware())
	r.Use(reqid.Middleware())
	r.Use(middleware.Logger)
	r.Use(middleware.Recovery)
	if a.rateMax > 0 {
		r.Use(middleware.RateLimit(a.rateMax, a.rateWindow))
	}

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) { response.NotFound(w) })
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		response.Error(w, http.StatusMethodNotAllowed, "Method not allowed")
	})

	r.Get("/metrics", "metrics", metrics.Handler())
	r.Get("/healthz", "health", func(w http.ResponseWriter, _ *http.Request) {
		response.Success(w, map[string]string{"status": "ok"})
	})

	for _, fn := range a.routesFns {
		fn(r)
	}
	return r
}
