// Package cache holds the page-lifetime shared caches: the per-customer
// remote wishlist cache and the per-product detail memo. Both are constructed
// once at startup and passed by reference to every controller.
package cache

import (
	"context"
	"log/slog"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/Moazzam-Sonu/premier-whishList/internal/domain"
	"github.com/Moazzam-Sonu/premier-whishList/internal/metrics"
)

// FetchFunc loads a customer's wishlist from the remote service.
type FetchFunc func(ctx context.Context, customerID string) ([]domain.WishlistItem, error)

// WishlistCache caches each customer's remote wishlist for the process
// lifetime. Concurrent first reads for the same customer are coalesced into a
// single fetch; once resolved, an entry is only changed by ApplyAdd,
// ApplyRemove, or Put, never by re-fetching.
type WishlistCache struct {
	fetch  FetchFunc
	logger *slog.Logger

	mu       sync.Mutex
	resolved map[string][]domain.WishlistItem
	group    singleflight.Group
}

// NewWishlistCache creates an empty cache backed by the given fetch function.
func NewWishlistCache(fetch FetchFunc, logger *slog.Logger) *WishlistCache {
	return &WishlistCache{
		fetch:    fetch,
		logger:   logger,
		resolved: make(map[string][]domain.WishlistItem),
	}
}

// Get returns the customer's wishlist, fetching it on first use. Fetch
// failures resolve to an empty list and are not retried: the widget degrades
// to "nothing favorited" rather than blocking the page. The returned slice
// must be treated as read-only.
func (c *WishlistCache) Get(ctx context.Context, customerID string) []domain.WishlistItem {
	c.mu.Lock()
	if items, ok := c.resolved[customerID]; ok {
		c.mu.Unlock()
		return items
	}
	c.mu.Unlock()

	v, _, shared := c.group.Do(customerID, func() (any, error) {
		// Re-check under the key lock: a reader that missed the map may enter
		// here after a previous flight resolved the entry. Fetching again
		// would break the one-request guarantee and the resolved-is-final rule.
		c.mu.Lock()
		if existing, ok := c.resolved[customerID]; ok {
			c.mu.Unlock()
			return existing, nil
		}
		c.mu.Unlock()

		items, err := c.fetch(ctx, customerID)
		if err != nil {
			c.logger.WarnContext(ctx, "wishlist fetch failed, resolving empty",
				slog.String("customer_id", customerID),
				slog.String("error", err.Error()),
			)
			metrics.RemoteFetches.WithLabelValues("error").Inc()
			items = []domain.WishlistItem{}
		} else {
			metrics.RemoteFetches.WithLabelValues("ok").Inc()
		}

		c.mu.Lock()
		defer c.mu.Unlock()
		// A mutation may have resolved the entry while the fetch was in
		// flight (e.g. a merge). The stored value stays authoritative.
		if existing, ok := c.resolved[customerID]; ok {
			return existing, nil
		}
		c.resolved[customerID] = items
		return items, nil
	})
	if shared {
		metrics.CoalescedWaiters.Inc()
	}
	return v.([]domain.WishlistItem)
}

// ApplyAdd appends the item to the customer's resolved entry so other widget
// instances observe the add without re-fetching. Idempotent by item ID; a
// no-op when the entry was never resolved (the next Get fetches fresh state).
func (c *WishlistCache) ApplyAdd(customerID string, item domain.WishlistItem) {
	c.mu.Lock()
	defer c.mu.Unlock()

	items, ok := c.resolved[customerID]
	if !ok {
		return
	}
	for _, existing := range items {
		if existing.ID == item.ID {
			return
		}
	}
	next := make([]domain.WishlistItem, 0, len(items)+1)
	next = append(next, items...)
	next = append(next, item)
	c.resolved[customerID] = next
}

// ApplyRemove drops the item with the given server ID from the customer's
// resolved entry. A no-op when the entry was never resolved.
func (c *WishlistCache) ApplyRemove(customerID, itemID string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	items, ok := c.resolved[customerID]
	if !ok {
		return
	}
	next := make([]domain.WishlistItem, 0, len(items))
	for _, existing := range items {
		if existing.ID != itemID {
			next = append(next, existing)
		}
	}
	c.resolved[customerID] = next
}

// Put replaces the customer's entry wholesale with a server-confirmed list,
// marking it resolved. Used after a guest merge.
func (c *WishlistCache) Put(customerID string, items []domain.WishlistItem) {
	if items == nil {
		items = []domain.WishlistItem{}
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.resolved[customerID] = items
}
