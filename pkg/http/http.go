// Package http is the fluent outbound HTTP client used to reach the product API.
//
//	resp, err := http.Get(url).
//	    WithContext(ctx).
//	    Timeout(5 * time.Second).
//	    Retry(1, 0).
//	    Send()
//	if err != nil { ... }           // transport failure after every attempt
//	if resp.StatusCode == 404 { ... }
//	err = resp.JSON(&product)
package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	gohttp "net/http"
	"time"

	"github.com/shashiranjanraj/megamart/pkg/logger"
	"github.com/shashiranjanraj/megamart/pkg/reqid"
)

// maxBody caps how much of an upstream body is read into memory.
const maxBody = 4 << 20

var defaultTransport = &gohttp.Transport{
	Proxy:               gohttp.ProxyFromEnvironment,
	MaxIdleConns:        100,
	MaxIdleConnsPerHost: 20,
	IdleConnTimeout:     90 * time.Second,
}

// DefaultClient is shared by every outbound request. Tests swap its
// Transport for a testkit.MockTransport and restore it with ResetTransport.
var DefaultClient = &gohttp.Client{
	Transport: defaultTransport,
}

func ResetTransport() {
	DefaultClient.Transport = defaultTransport
}

// ------------------- Request -------------------

type Request struct {
	method    string
	url       string
	headers   map[string]string
	timeout   time.Duration
	attempts  int
	retryWait time.Duration
	ctx       context.Context
}

func Get(url string) *Request { return newRequest(gohttp.MethodGet, url) }

func newRequest(method, url string) *Request {
	return &Request{
		method:    method,
		url:       url,
		headers:   map[string]string{"Accept": "application/json"},
		timeout:   30 * time.Second,
		attempts:  1,
		retryWait: 500 * time.Millisecond,
		ctx:       context.Background(),
	}
}

func (r *Request) Header(key, value string) *Request {
	r.headers[key] = value
	return r
}

// Timeout bounds each attempt, not the whole Send.
func (r *Request) Timeout(d time.Duration) *Request {
	if d > 0 {
		r.timeout = d
	}
	return r
}

// Retry sets the total number of attempts (1 = no retry) and the initial
// backoff, which doubles after every failed attempt. Only transport errors
// are retried; any HTTP status is a completed response.
func (r *Request) Retry(attempts int, wait time.Duration) *Request {
	if attempts < 1 {
		attempts = 1
	}
	r.attempts = attempts
	r.retryWait = wait
	return r
}

// WithContext ties every attempt to ctx and forwards its request ID upstream.
func (r *Request) WithContext(ctx context.Context) *Request {
	r.ctx = ctx
	if id := reqid.FromCtx(ctx); id != "" {
		r.headers[reqid.Header] = id
	}
	return r
}

// ------------------- Send -------------------

func (r *Request) Send() (*Response, error) {
	var lastErr error

	for attempt := 1; attempt <= r.attempts; attempt++ {
		resp, err := r.do()
		if err == nil {
			return resp, nil
		}
		lastErr = err

		if r.ctx.Err() != nil || attempt == r.attempts {
			break
		}

		backoff := time.Duration(float64(r.retryWait) * math.Pow(2, float64(attempt-1)))
		logger.WithCtx(r.ctx).Warn("http: request failed, retrying",
			"url", r.url, "attempt", attempt, "backoff", backoff, "error", err)

		select {
		case <-time.After(backoff):
		case <-r.ctx.Done():
			return nil, fmt.Errorf("http: %s %s: %w", r.method, r.url, r.ctx.Err())
		}
	}

	if r.attempts == 1 {
		return nil, fmt.Errorf("http: %s %s: %w", r.method, r.url, lastErr)
	}
	return nil, fmt.Errorf("http: all %d attempts failed for %s %s: %w", r.attempts, r.method, r.url, lastErr)
}

func (r *Request) do() (*Response, error) {
	ctx, cancel := context.WithTimeout(r.ctx, r.timeout)
	defer cancel()

	req, err := gohttp.NewRequestWithContext(ctx, r.method, r.url, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	for k, v := range r.headers {
		req.Header.Set(k, v)
	}

	resp, err := DefaultClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("send: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBody))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}

	return &Response{
		StatusCode: resp.StatusCode,
		Headers:    resp.Header,
		Raw:        raw,
	}, nil
}

// ------------------- Response -------------------

type Response struct {
	StatusCode int
	Headers    gohttp.Header
	Raw        []byte
}

func (r *Response) OK() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// Empty reports a body that carries no value: nothing, whitespace or a bare
// JSON null.
func (r *Response) Empty() bool {
	trimmed := bytes.TrimSpace(r.Raw)
	return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null"))
}

func (r *Response) JSON(dest any) error {
	if err := json.Unmarshal(r.Raw, dest); err != nil {
		return fmt.Errorf("http: decode JSON: %w", err)
	}
	return nil
}

func (r *Response) Text() string {
	return string(r.Raw)
}
