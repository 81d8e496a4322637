package http_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	khttp "github.com/shashiranjanraj/megamart/pkg/http"
	"github.com/shashiranjanraj/megamart/pkg/reqid"
	"github.com/shashiranjanraj/megamart/pkg/testkit"
)

func TestSendDecodesJSON(t *testing.T) {
	mt := testkit.NewMockTransport().
		JSON("https://api.test/products/1", http.StatusOK, `{"id":1,"title":"Backpack"}`)
	defer mt.Install()()

	resp, err := khttp.Get("https://api.test/products/1").Send()
	require.NoError(t, err)
	assert.True(t, resp.OK())
	assert.False(t, resp.Empty())

	var body struct {
		ID    int    `json:"id"`
		Title string `json:"title"`
	}
	require.NoError(t, resp.JSON(&body))
	assert.Equal(t, 1, body.ID)
	assert.Equal(t, "Backpack", body.Title)
	testkit.AssertMocksAllCalled(t, mt)
}

func TestEmptyBodies(t *testing.T) {
	for _, body := range []string{"", "  \n", "null"} {
		r := &khttp.Response{StatusCode: 200, Raw: []byte(body)}
		assert.True(t, r.Empty(), "body %q", body)
	}
	assert.False(t, (&khttp.Response{Raw: []byte(`{}`)}).Empty())
}

func TestStatusIsNotAnError(t *testing.T) {
	mt := testkit.NewMockTransport().Status("https://api.test/products/9", http.StatusNotFound)
	defer mt.Install()()

	resp, err := khttp.Get("https://api.test/products/9").Send()
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.False(t, resp.OK())
}

func TestRetryOnTransportError(t *testing.T) {
	boom := errors.New("connection refused")
	mt := testkit.NewMockTransport().Fail("https://api.test/products/2", boom)
	defer mt.Install()()

	_, err := khttp.Get("https://api.test/products/2").Retry(3, time.Millisecond).Send()
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 3, mt.Calls("https://api.test/products/2"))
}

func TestSingleAttemptByDefault(t *testing.T) {
	mt := testkit.NewMockTransport().Fail("https://api.test/products/2", errors.New("reset"))
	defer mt.Install()()

	_, err := khttp.Get("https://api.test/products/2").Send()
	require.Error(t, err)
	assert.Equal(t, 1, mt.Calls("https://api.test/products/2"))
}

func TestContextCancelStopsHeldRequest(t *testing.T) {
	mt := testkit.NewMockTransport().JSON("https://api.test/slow", http.StatusOK, `{}`)
	release := mt.Hold("https://api.test/slow")
	defer release()
	defer mt.Install()()

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := khttp.Get("https://api.test/slow").WithContext(ctx).Send()
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestForwardsRequestID(t *testing.T) {
	var seen atomic.Value
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen.Store(r.Header.Get(reqid.Header))
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	ctx := reqid.WithValue(context.Background(), "req-123")
	resp, err := khttp.Get(srv.URL).WithContext(ctx).Send()
	require.NoError(t, err)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	assert.Equal(t, "req-123", seen.Load())
}
