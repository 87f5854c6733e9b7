package cache

import (
	"context"
	"log/slog"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/Moazzam-Sonu/premier-whishList/internal/domain"
	"github.com/Moazzam-Sonu/premier-whishList/internal/metrics"
)

// DetailFetcher loads product display data from the detail endpoint.
// A (nil, nil) return means the product is unavailable.
type DetailFetcher func(ctx context.Context, productID string) (*domain.Product, error)

// ProductCache memoizes product display data per product ID for the process
// lifetime. An unavailable or failed lookup is remembered as a nil tombstone
// so repeated hydrations of the same product never re-fetch.
type ProductCache struct {
	fetch  DetailFetcher
	logger *slog.Logger

	mu      sync.Mutex
	entries map[string]*domain.ProductDetail
	group   singleflight.Group
}

// NewProductCache creates an empty product detail cache.
func NewProductCache(fetch DetailFetcher, logger *slog.Logger) *ProductCache {
	return &ProductCache{
		fetch:   fetch,
		logger:  logger,
		entries: make(map[string]*domain.ProductDetail),
	}
}

// Get returns the cached display record for the product, or nil when the
// product is unavailable. Concurrent first lookups for the same product are
// coalesced into one request.
func (c *ProductCache) Get(ctx context.Context, productID string) *domain.ProductDetail {
	c.mu.Lock()
	if detail, ok := c.entries[productID]; ok {
		c.mu.Unlock()
		return detail
	}
	c.mu.Unlock()

	v, _, _ := c.group.Do(productID, func() (any, error) {
		// Same re-check as WishlistCache.Get: a reader entering after the
		// previous flight resolved must not trigger a second lookup.
		c.mu.Lock()
		if existing, ok := c.entries[productID]; ok {
			c.mu.Unlock()
			return existing, nil
		}
		c.mu.Unlock()

		var detail *domain.ProductDetail

		product, err := c.fetch(ctx, productID)
		switch {
		case err != nil:
			c.logger.WarnContext(ctx, "product detail lookup failed",
				slog.String("product_id", productID),
				slog.String("error", err.Error()),
			)
			metrics.DetailLookups.WithLabelValues("error").Inc()
		case product == nil:
			metrics.DetailLookups.WithLabelValues("unavailable").Inc()
		default:
			d := product.Detail()
			detail = &d
			metrics.DetailLookups.WithLabelValues("ok").Inc()
		}

		c.mu.Lock()
		defer c.mu.Unlock()
		if existing, ok := c.entries[productID]; ok {
			return existing, nil
		}
		c.entries[productID] = detail
		return detail, nil
	})
	if v == nil {
		return nil
	}
	return v.(*domain.ProductDetail)
}
