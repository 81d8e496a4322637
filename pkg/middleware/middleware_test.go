package middleware_test

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/megamart/pkg/logger"
	"github.com/shashiranjanraj/megamart/pkg/middleware"
	"github.com/shashiranjanraj/megamart/pkg/reqid"
	"github.com/shashiranjanraj/megamart/pkg/testkit"
)

func TestRecovery(t *testing.T) {
	h := middleware.Recovery(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))

	rec := httptest.NewRecorder()
	require.NotPanics(t, func() {
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	})
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	testkit.AssertJSONBody(t, `{"status":500,"message":"Internal server error"}`, rec.Body.Bytes())
}

func TestLoggerTagsRequestID(t *testing.T) {
	var buf bytes.Buffer
	prev := logger.L
	logger.L = slog.New(slog.NewJSONHandler(&buf, nil))
	defer func() { logger.L = prev }()

	var inner *slog.Logger
	h := reqid.Middleware()(middleware.Logger(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		inner = logger.WithCtx(r.Context())
		w.WriteHeader(http.StatusAccepted)
		_, _ = w.Write([]byte("ok"))
	})))

	req := httptest.NewRequest(http.MethodGet, "/product/3", nil)
	req.Header.Set(reqid.Header, "abc-123")
	h.ServeHTTP(httptest.NewRecorder(), req)

	require.NotNil(t, inner)
	out := buf.String()
	assert.Contains(t, out, `"request_id":"abc-123"`)
	assert.Contains(t, out, `"status":202`)
	assert.Contains(t, out, `"path":"/product/3"`)
	assert.Contains(t, out, `"bytes":2`)
}

func TestLimiter(t *testing.T) {
	l := middleware.NewLimiter(2, time.Minute)
	now := time.Now()

	assert.True(t, l.AllowAt("1.1.1.1", now))
	assert.True(t, l.AllowAt("1.1.1.1", now))
	assert.False(t, l.AllowAt("1.1.1.1", now))
	assert.True(t, l.AllowAt("2.2.2.2", now), "buckets are per client")

	// One token comes back every 30s.
	assert.True(t, l.AllowAt("1.1.1.1", now.Add(31*time.Second)))

	assert.Equal(t, 2, l.Sweep(now.Add(time.Minute)))
	assert.Equal(t, 0, l.Sweep(now.Add(time.Hour)))
}

func TestLimiterMiddleware(t *testing.T) {
	h := middleware.NewLimiter(1, time.Hour).Middleware(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	send := func(fwd string) int {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("X-Forwarded-For", fwd)
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec.Code
	}

	assert.Equal(t, http.StatusNoContent, send("9.9.9.9, 10.0.0.1"))
	assert.Equal(t, http.StatusTooManyRequests, send("9.9.9.9"))
	assert.Equal(t, http.StatusNoContent, send("8.8.8.8"))
}

func TestCORS(t *testing.T) {
	h := middleware.CORS(middleware.DefaultCORSOptions())(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodOptions, "/api/products", nil)
	req.Header.Set("Origin", "https://shop.test")
	req.Header.Set("Access-Control-Request-Method", "GET")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "300", rec.Header().Get("Access-Control-Max-Age"))

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/products", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}
