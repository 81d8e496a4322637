// Package bootstrap wires config, cache, services and controllers into one
// Storefront. Every CLI command starts here.
package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/shashiranjanraj/megamart/app/controllers"
	"github.com/shashiranjanraj/megamart/app/routes"
	"github.com/shashiranjanraj/megamart/app/services"
	"github.com/shashiranjanraj/megamart/app/views"
	"github.com/shashiranjanraj/megamart/config"
	"github.com/shashiranjanraj/megamart/pkg/app"
	"github.com/shashiranjanraj/megamart/pkg/cache"
	"github.com/shashiranjanraj/megamart/pkg/decor"
	"github.com/shashiranjanraj/megamart/pkg/logger"
	"github.com/shashiranjanraj/megamart/pkg/router"
	"github.com/shashiranjanraj/megamart/pkg/schedule"
	"github.com/shashiranjanraj/megamart/pkg/workerpool"
)

type Options struct {
	// Offline skips connecting the cache driver.
	Offline bool
	// Decor overrides the decorative source seeded from DECOR_SEED.
	Decor decor.Source
}

type Storefront struct {
	Store       cache.Store
	Products    *services.ProductService
	Catalog     services.Catalog
	Pool        *workerpool.Pool
	Prefetcher  *services.Prefetcher
	Decor       decor.Source
	Controllers *controllers.Controllers
	Scheduler   *schedule.Scheduler
}

func Boot(ctx context.Context, opts Options) (*Storefront, error) {
	if err := config.Load(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	logger.Setup(config.AppEnv(), config.LogLevel(), os.Stdout)

	var store cache.Store = cache.Nop{}
	if !opts.Offline {
		store = cache.Connect(ctx)
	}

	src := opts.Decor
	if src == nil {
		src = decor.New(config.DecorSeed())
	}

	products := services.NewProductService(services.DefaultProductOptions(store))
	workers := config.PrefetchWorkers()
	pool := workerpool.New("prefetch", workers, workers*4)

	s := &Storefront{
		Store:      store,
		Products:   products,
		Catalog:    services.NewCatalog(products),
		Pool:       pool,
		Prefetcher: services.NewPrefetcher(products, pool),
		Decor:      src,
		Scheduler:  schedule.New(),
	}

	if products.Caching() {
		err := s.Scheduler.Every(refreshInterval(config.CacheTTL())).
			Name("catalog.refresh").
			WithoutOverlapping().
			Run(s.refreshCatalog)
		if err != nil {
			s.Close(ctx) //nolint:errcheck
			return nil, err
		}
	}

	renderer, err := views.New()
	if err != nil {
		s.Close(ctx) //nolint:errcheck
		return nil, err
	}

	s.Controllers, err = controllers.New(controllers.Deps{
		Products: products,
		Catalog:  s.Catalog,
		Prefetch: s.Prefetcher,
		Decor:    src,
		Views:    renderer,
	})
	if err != nil {
		s.Close(ctx) //nolint:errcheck
		return nil, err
	}

	logger.Info("storefront ready",
		"env", config.AppEnv(),
		"product_api", config.ProductAPIURL(),
		"catalog", config.CatalogSource(),
		"cache", store.Driver(),
	)
	return s, nil
}

// Application mounts the storefront routes on the framework kernel.
func (s *Storefront) Application() *app.Application {
	return app.New().Routes(func(r *router.Router) {
		routes.Register(r, s.Controllers)
	})
}

// Serve runs the scheduler and the HTTP server until ctx ends.
func (s *Storefront) Serve(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer func() {
		cancel()
		s.Scheduler.Wait()
	}()

	s.Scheduler.Start(ctx)
	return s.Application().Serve(ctx)
}

// refreshCatalog re-warms every listed product before its cache entry expires.
func (s *Storefront) refreshCatalog(ctx context.Context) {
	products, err := s.Catalog.Products(ctx)
	if err != nil {
		logger.Warn("catalog refresh failed", "error", err)
		return
	}
	logger.Debug("catalog refresh queued", "products", s.Prefetcher.Prefetch(products))
}

// refreshInterval keeps entries warm by refreshing at half their TTL.
func refreshInterval(ttl time.Duration) time.Duration {
	if d := ttl / 2; d >= time.Second {
		return d
	}
	return time.Second
}

// Close drains the prefetch pool and closes the cache.
func (s *Storefront) Close(ctx context.Context) error {
	var errs []error
	if s.Pool != nil {
		if err := s.Pool.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("prefetch pool: %w", err))
		}
	}
	if c, ok := s.Store.(io.Closer); ok {
		if err := c.Close(); err != nil {
			errs = append(errs, fmt.Errorf("cache: %w", err))
		}
	}
	return errors.Join(errs...)
}
