package services

import (
	"context"
	"errors"

	"github.com/shashiranjanraj/megamart/app/models"
	"github.com/shashiranjanraj/megamart/pkg/logger"
	"github.com/shashiranjanraj/megamart/pkg/metrics"
	"github.com/shashiranjanraj/megamart/pkg/workerpool"
)

// Prefetcher warms the product cache for listed products in the background.
type Prefetcher struct {
	products *ProductService
	pool     *workerpool.Pool
}

func NewPrefetcher(products *ProductService, pool *workerpool.Pool) *Prefetcher {
	return &Prefetcher{products: products, pool: pool}
}

// Prefetch queues one warm-up per product and returns how many were queued.
// It does nothing when no cache driver is configured; tasks that do not fit
// in the pool are skipped.
func (p *Prefetcher) Prefetch(list []models.Product) int {
	if p == nil || !p.products.Caching() {
		return 0
	}

	queued := 0
	for _, product := range list {
		id := product.ID
		err := p.pool.Submit(func(ctx context.Context) {
			if err := p.products.Warm(ctx, id); err != nil {
				logger.Debug("prefetch failed", "id", id, "error", err)
			}
		})
		if err != nil {
			metrics.Prefetches.WithLabelValues("skipped").Inc()
			if errors.Is(err, workerpool.ErrPoolClosed) {
				break
			}
			continue
		}
		metrics.Prefetches.WithLabelValues("queued").Inc()
		queued++
	}
	return queued
}
