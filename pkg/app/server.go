package app

// pkg/app/server.go bridges Application to internal/server, which owns the
// listen, serve and shutdown lifecycle.

import (
	"context"
	"net"

	"github.com/shashiranjanraj/megamart/config"
	"github.com/shashiranjanraj/megamart/internal/server"
)

// Serve listens on APP_PORT until ctx ends, then drains in-flight requests
// for up to SHUTDOWN_TIMEOUT.
func (a *Application) Serve(ctx context.Context) error {
	return server.Run(ctx, net.JoinHostPort("", config.AppPort()), a.Handler(), config.ShutdownTimeout())
}
