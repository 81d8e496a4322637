package app_test

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/megamart/pkg/app"
	"github.com/shashiranjanraj/megamart/pkg/reqid"
	"github.com/shashiranjanraj/megamart/pkg/router"
	"github.com/shashiranjanraj/megamart/pkg/testkit"
)

func testApp() *app.Application {
	return app.New().
		RateLimit(0, 0).
		Routes(func(r *router.Router) {
			r.Get("/boom", "boom", func(http.ResponseWriter, *http.Request) { panic("boom") })
		})
}

func TestSystemRoutes(t *testing.T) {
	h := testApp().Handler()

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Header().Get(reqid.Header))
	testkit.AssertJSONBody(t, `{"status":200,"data":{"status":"ok"}}`, rec.Body.Bytes())

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "megamart_http_requests_total")
}

func TestFallbacks(t *testing.T) {
	h := testApp().Handler()

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/missing", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/healthz", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/boom", nil))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestRateLimit(t *testing.T) {
	h := testApp().RateLimit(1, time.Hour).Handler()

	first := httptest.NewRecorder()
	h.ServeHTTP(first, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	second := httptest.NewRecorder()
	h.ServeHTTP(second, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	assert.Equal(t, http.StatusOK, first.Code)
	assert.Equal(t, http.StatusTooManyRequests, second.Code)
}

func TestPrintRoutes(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, testApp().PrintRoutes(&out))

	table := out.String()
	assert.Contains(t, table, "METHOD")
	assert.Contains(t, table, "/healthz")
	assert.Contains(t, table, "health")
	assert.Contains(t, table, "boom")
}
