// Package testkit fakes the product API for tests.
//
// A MockTransport answers outgoing requests made through pkg/http without
// touching the network:
//
//	mt := testkit.NewMockTransport().
//	    JSON("https://fakestoreapi.com/products/3", 200, `{"id":3,"title":"Phone","price":599}`).
//	    Status("https://fakestoreapi.com/products/999", 404)
//	defer mt.Install()()
//	// ... exercise code ...
//	testkit.AssertMocksAllCalled(t, mt)
package testkit

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"sync"

	khttp "github.com/shashiranjanraj/megamart/pkg/http"
)

// MockTransport implements http.RoundTripper over a table of canned answers
// keyed by URL (scheme, host and path; the query string is ignored).
type MockTransport struct {
	mu     sync.Mutex
	routes map[string]*mockRoute
	// Strict makes unmatched requests fail with a transport error instead
	// of answering 404.
	Strict bool
}

type mockRoute struct {
	status int
	body   []byte
	err    error
	gate   chan struct{}
	calls  int
}

func NewMockTransport() *MockTransport {
	return &MockTransport{routes: map[string]*mockRoute{}}
}

// JSON answers url with status and a JSON body.
func (mt *MockTransport) JSON(url string, status int, body string) *MockTransport {
	return mt.add(url, &mockRoute{status: status, body: []byte(body)})
}

// Status answers url with an empty body.
func (mt *MockTransport) Status(url string, status int) *MockTransport {
	return mt.add(url, &mockRoute{status: status})
}

// Fail makes requests to url return err from the transport.
func (mt *MockTransport) Fail(url string, err error) *MockTransport {
	return mt.add(url, &mockRoute{err: err})
}

// Hold makes requests to url block until the returned release func is
// called or the request context ends. The route must already be registered.
func (mt *MockTransport) Hold(url string) (release func()) {
	mt.mu.Lock()
	defer mt.mu.Unlock()

	route, ok := mt.routes[url]
	if !ok {
		panic(fmt.Sprintf("testkit: Hold on unregistered url %q", url))
	}
	gate := make(chan struct{})
	route.gate = gate

	var once sync.Once
	return func() { once.Do(func() { close(gate) }) }
}

func (mt *MockTransport) add(url string, r *mockRoute) *MockTransport {
	mt.mu.Lock()
	defer mt.mu.Unlock()
	mt.routes[url] = r
	return mt
}

// Install swaps the transport of pkg/http.DefaultClient and returns the
// restore func.
func (mt *MockTransport) Install() func() {
	khttp.DefaultClient.Transport = mt
	return khttp.ResetTransport
}

// Calls returns how many requests hit url.
func (mt *MockTransport) Calls(url string) int {
	mt.mu.Lock()
	defer mt.mu.Unlock()
	if r, ok := mt.routes[url]; ok {
		return r.calls
	}
	return 0
}

func (mt *MockTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	key := req.URL.Scheme + "://" + req.URL.Host + req.URL.Path

	mt.mu.Lock()
	route, ok := mt.routes[key]
	if ok {
		route.calls++
	}
	var gate chan struct{}
	if ok {
		gate = route.gate
	}
	mt.mu.Unlock()

	if !ok {
		if mt.Strict {
			return nil, fmt.Errorf("testkit: unexpected outgoing HTTP call to %s", key)
		}
		return response(req, http.StatusNotFound, []byte(`{"error":"no mock configured"}`)), nil
	}

	if gate != nil {
		select {
		case <-gate:
		case <-req.Context().Done():
			return nil, req.Context().Err()
		}
	}

	if route.err != nil {
		return nil, route.err
	}
	return response(req, route.status, route.body), nil
}

// AssertAllCalled returns one error per registered route that was never hit.
func (mt *MockTransport) AssertAllCalled() []error {
	mt.mu.Lock()
	defer mt.mu.Unlock()

	var errs []error
	for url, r := range mt.routes {
		if r.calls == 0 {
			errs = append(errs, fmt.Errorf("testkit: mock %q was never called", url))
		}
	}
	return errs
}

func response(req *http.Request, code int, body []byte) *http.Response {
	if code == 0 {
		code = http.StatusOK
	}
	header := make(http.Header)
	header.Set("Content-Type", "application/json")

	return &http.Response{
		StatusCode: code,
		Status:     fmt.Sprintf("%d %s", code, http.StatusText(code)),
		Header:     header,
		Body:       io.NopCloser(bytes.NewReader(body)),
		Request:    req,
	}
}
