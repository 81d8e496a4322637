package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/shashiranjanraj/megamart/app/models"
	"github.com/shashiranjanraj/megamart/config"
	"github.com/shashiranjanraj/megamart/pkg/cache"
	khttp "github.com/shashiranjanraj/megamart/pkg/http"
	"github.com/shashiranjanraj/megamart/pkg/logger"
	"github.com/shashiranjanraj/megamart/pkg/metrics"
)

var (
	// ErrNotFound means the product API has no record for the identifier.
	ErrNotFound = errors.New("product not found")
	// ErrUnavailable covers transport failures, unexpected statuses and
	// payloads that decode to something other than a usable product.
	ErrUnavailable = errors.New("product service unavailable")
)

// ProductOptions configures a ProductService.
type ProductOptions struct {
	BaseURL  string        // collection endpoint, e.g. https://fakestoreapi.com/products
	Timeout  time.Duration // per attempt
	Attempts int           // total attempts per fetch; 1 = no retry
	Cache    cache.Store
	CacheTTL time.Duration
}

// DefaultProductOptions reads the product API settings from config.
func DefaultProductOptions(store cache.Store) ProductOptions {
	return ProductOptions{
		BaseURL:  config.ProductAPIURL(),
		Timeout:  config.ProductAPITimeout(),
		Attempts: config.ProductAPIAttempts(),
		Cache:    store,
		CacheTTL: config.CacheTTL(),
	}
}

// ProductService fetches product records from the product API.
type ProductService struct {
	opts  ProductOptions
	group singleflight.Group
}

func NewProductService(opts ProductOptions) *ProductService {
	if opts.Cache == nil {
		opts.Cache = cache.Nop{}
	}
	if opts.Attempts < 1 {
		opts.Attempts = 1
	}
	return &ProductService{opts: opts}
}

// Product fetches one record. The identifier is used as given apart from
// path escaping. Concurrent calls for the same identifier share one
// upstream request.
func (s *ProductService) Product(ctx context.Context, id string) (*models.Product, error) {
	key := "product:" + id

	var cached models.Product
	if s.opts.Cache.Get(ctx, key, &cached) {
		return &cached, nil
	}

	v, err := s.shared(ctx, key, func(ctx context.Context) (any, error) {
		return s.fetchProduct(ctx, id)
	})
	if err != nil {
		return nil, err
	}

	p := *v.(*models.Product)
	if err := s.opts.Cache.Set(ctx, key, p, s.opts.CacheTTL); err != nil {
		logger.WithCtx(ctx).Warn("product cache write failed", "id", id, "driver", s.opts.Cache.Driver(), "error", err)
	}
	return &p, nil
}

// Products fetches the whole catalog.
func (s *ProductService) Products(ctx context.Context) ([]models.Product, error) {
	v, err := s.shared(ctx, "products", func(ctx context.Context) (any, error) {
		return s.fetchProducts(ctx)
	})
	if err != nil {
		return nil, err
	}
	list := v.([]models.Product)
	return append([]models.Product(nil), list...), nil
}

// shared runs fn once per key for all concurrent callers. fn gets a context
// that no single caller can cancel; each caller still stops waiting when its
// own ctx ends.
func (s *ProductService) shared(ctx context.Context, key string, fn func(context.Context) (any, error)) (any, error) {
	detached := context.WithoutCancel(ctx)
	ch := s.group.DoChan(key, func() (any, error) {
		return fn(detached)
	})

	select {
	case res := <-ch:
		return res.Val, res.Err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Warm loads id into the cache, ignoring a cached copy.
func (s *ProductService) Warm(ctx context.Context, id int) error {
	p, err := s.fetchProduct(ctx, strconv.Itoa(id))
	if err != nil {
		return err
	}
	return s.opts.Cache.Set(ctx, "product:"+strconv.Itoa(id), *p, s.opts.CacheTTL)
}

// Caching reports whether a real cache driver is configured.
func (s *ProductService) Caching() bool {
	return s.opts.Cache.Driver() != "none"
}

func (s *ProductService) fetchProduct(ctx context.Context, id string) (p *models.Product, err error) {
	outcome := "found"
	defer func(start time.Time) {
		switch {
		case errors.Is(err, ErrNotFound):
			outcome = "not_found"
		case err != nil:
			outcome = "unavailable"
		}
		metrics.ObserveFetch("show", outcome, start)
	}(time.Now())

	resp, err := s.get(ctx, s.opts.BaseURL+"/"+url.PathEscape(id))
	if err != nil {
		return nil, err
	}

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, fmt.Errorf("product %q: %w", id, ErrNotFound)
	case !resp.OK():
		return nil, fmt.Errorf("product %q: upstream status %d: %w", id, resp.StatusCode, ErrUnavailable)
	case resp.Empty():
		// The demo API answers unknown ids with 200 and no body.
		return nil, fmt.Errorf("product %q: %w", id, ErrNotFound)
	}

	var product models.Product
	if err := resp.JSON(&product); err != nil {
		return nil, fmt.Errorf("product %q: %v: %w", id, err, ErrUnavailable)
	}
	if err := product.Validate(); err != nil {
		return nil, fmt.Errorf("product %q: %v: %w", id, err, ErrUnavailable)
	}
	return &product, nil
}

func (s *ProductService) fetchProducts(ctx context.Context) (list []models.Product, err error) {
	defer func(start time.Time) {
		outcome := "found"
		if err != nil {
			outcome = "unavailable"
		}
		metrics.ObserveFetch("list", outcome, start)
	}(time.Now())

	resp, err := s.get(ctx, s.opts.BaseURL)
	if err != nil {
		return nil, err
	}
	if !resp.OK() {
		return nil, fmt.Errorf("catalog: upstream status %d: %w", resp.StatusCode, ErrUnavailable)
	}
	if resp.Empty() {
		return []models.Product{}, nil
	}

	if err := resp.JSON(&list); err != nil {
		return nil, fmt.Errorf("catalog: %v: %w", err, ErrUnavailable)
	}

	valid := list[:0]
	for _, p := range list {
		if err := p.Validate(); err != nil {
			logger.WithCtx(ctx).Warn("catalog: skipping unusable record", "error", err)
			continue
		}
		valid = append(valid, p)
	}
	return valid, nil
}

func (s *ProductService) get(ctx context.Context, target string) (*khttp.Response, error) {
	resp, err := khttp.Get(target).
		WithContext(ctx).
		Timeout(s.opts.Timeout).
		Retry(s.opts.Attempts, 250*time.Millisecond).
		Send()
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("%v: %w", err, ErrUnavailable)
	}
	return resp, nil
}
