// Package logger provides the storefront's structured logger built on log/slog.
//
// Handlers never build their own logger. The request middleware stores one
// pre-tagged with the request ID in the context, and WithCtx hands it back:
//
//	log := logger.WithCtx(r.Context())
//	log.Info("product rendered", "id", id, "phase", state.Phase)
//	// → time=... level=INFO msg="product rendered" request_id=3f2c... id=3 phase=found
package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"
)

var L *slog.Logger

func init() {
	Setup(os.Getenv("APP_ENV"), os.Getenv("LOG_LEVEL"), os.Stdout)
}

// Setup replaces the base logger. Production environments log JSON at INFO;
// everything else logs text at DEBUG. A non-empty level overrides the default.
func Setup(env, level string, out io.Writer) {
	prod := env == "production" || env == "prod"

	lvl := slog.LevelDebug
	if prod {
		lvl = slog.LevelInfo
	}
	if override, ok := parseLevel(level); ok {
		lvl = override
	}
	opts := &slog.HandlerOptions{Level: lvl}

	var handler slog.Handler
	if prod {
		handler = slog.NewJSONHandler(out, opts) // structured JSON for log aggregators
	} else {
		handler = slog.NewTextHandler(out, opts)
	}

	L = slog.New(handler)
	slog.SetDefault(L)
}

func parseLevel(s string) (slog.Level, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, true
	case "info":
		return slog.LevelInfo, true
	case "warn", "warning":
		return slog.LevelWarn, true
	case "error":
		return slog.LevelError, true
	}
	return 0, false
}

// ─────────────────────────────────────────────
// Context-aware logger
// ─────────────────────────────────────────────

type ctxKey struct{}

// WithCtx returns the request-scoped logger stored by InjectLogger, or the
// base logger when ctx carries none.
func WithCtx(ctx context.Context) *slog.Logger {
	if ctx == nil {
		return L
	}
	if log, ok := ctx.Value(ctxKey{}).(*slog.Logger); ok && log != nil {
		return log
	}
	return L
}

// InjectLogger stores log in ctx. Called by the Logger middleware and by
// long-lived sessions that want their own tags.
func InjectLogger(ctx context.Context, log *slog.Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, log)
}

// ─────────────────────────────────────────────
// Short-hand helpers (use base logger)
// ─────────────────────────────────────────────

func Debug(msg string, args ...any) { L.Debug(msg, args...) }

func Info(msg string, args ...any) { L.Info(msg, args...) }

func Warn(msg string, args ...any) { L.Warn(msg, args...) }

func Error(msg string, args ...any) { L.Error(msg, args...) }
