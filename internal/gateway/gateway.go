// Package gateway performs wishlist mutations and reconciles the result into
// the shared cache (authenticated) or the guest store (anonymous). There are
// no optimistic updates: state changes only after the backing store confirms.
package gateway

import (
	"context"
	"log/slog"
	"time"

	"github.com/Moazzam-Sonu/premier-whishList/internal/cache"
	"github.com/Moazzam-Sonu/premier-whishList/internal/client"
	"github.com/Moazzam-Sonu/premier-whishList/internal/domain"
	"github.com/Moazzam-Sonu/premier-whishList/internal/gueststore"
	"github.com/Moazzam-Sonu/premier-whishList/internal/metrics"
	apperrors "github.com/Moazzam-Sonu/premier-whishList/pkg/errors"
)

// RemoteAPI is the subset of the wishlist service client the gateway drives.
type RemoteAPI interface {
	Add(ctx context.Context, req client.AddRequest) (string, error)
	Remove(ctx context.Context, wishlistItemID string) error
	Merge(ctx context.Context, customerID string, entries []domain.GuestEntry) ([]domain.WishlistItem, error)
}

// Gateway routes add/remove/merge mutations by identity and keeps the shared
// state in agreement with the outcome.
type Gateway struct {
	api    RemoteAPI
	cache  *cache.WishlistCache
	guests gueststore.Store
	logger *slog.Logger
	now    func() time.Time
}

// New creates a mutation gateway.
func New(api RemoteAPI, wishlists *cache.WishlistCache, guests gueststore.Store, logger *slog.Logger) *Gateway {
	return &Gateway{
		api:    api,
		cache:  wishlists,
		guests: guests,
		logger: logger,
		now:    time.Now,
	}
}

// Add favorites a product/variant pair for the given identity and returns the
// resulting item. Guest adds persist locally with a synthetic ID; customer
// adds go through the remote service and, once confirmed, are stamped into
// the shared cache so every other widget on the page observes them.
func (g *Gateway) Add(ctx context.Context, id domain.Identity, productID, variantID string) (domain.WishlistItem, error) {
	if productID == "" {
		return domain.WishlistItem{}, apperrors.InvalidInput("product id is required")
	}

	if id.IsGuest() {
		if err := g.guests.Add(ctx, productID, variantID); err != nil {
			metrics.Mutations.WithLabelValues("add", "guest", "error").Inc()
			return domain.WishlistItem{}, apperrors.Wrap(err, "guest add")
		}
		metrics.Mutations.WithLabelValues("add", "guest", "ok").Inc()
		return domain.GuestEntry{ProductID: productID, VariantID: variantID}.Item(), nil
	}

	itemID, err := g.api.Add(ctx, client.AddRequest{
		CustomerID: id.CustomerID,
		Email:      id.Email,
		ProductID:  productID,
		VariantID:  variantID,
	})
	if err != nil {
		metrics.Mutations.WithLabelValues("add", "customer", "error").Inc()
		g.logger.WarnContext(ctx, "wishlist add failed",
			slog.String("customer_id", id.CustomerID),
			slog.String("product_id", productID),
			slog.String("error", err.Error()),
		)
		return domain.WishlistItem{}, err
	}

	item := domain.WishlistItem{
		ID:        itemID,
		ProductID: productID,
		VariantID: variantID,
		AddedAt:   g.now().UTC(),
	}
	g.cache.ApplyAdd(id.CustomerID, item)
	metrics.Mutations.WithLabelValues("add", "customer", "ok").Inc()
	g.logger.InfoContext(ctx, "item added to wishlist",
		slog.String("customer_id", id.CustomerID),
		slog.String("product_id", productID),
		slog.String("variant_id", variantID),
		slog.String("wishlist_item_id", itemID),
	)
	return item, nil
}

// Remove unfavorites the given item. The customer path requires the item's
// server ID: hydration must have completed before remove becomes available,
// which the controllers enforce by never exposing remove without an ID.
func (g *Gateway) Remove(ctx context.Context, id domain.Identity, item domain.WishlistItem) error {
	if id.IsGuest() {
		if err := g.guests.Remove(ctx, item.ProductID, item.VariantID); err != nil {
			metrics.Mutations.WithLabelValues("remove", "guest", "error").Inc()
			return apperrors.Wrap(err, "guest remove")
		}
		metrics.Mutations.WithLabelValues("remove", "guest", "ok").Inc()
		return nil
	}

	if item.ID == "" {
		return apperrors.InvalidInput("wishlist item id is required")
	}
	if err := g.api.Remove(ctx, item.ID); err != nil {
		metrics.Mutations.WithLabelValues("remove", "customer", "error").Inc()
		g.logger.WarnContext(ctx, "wishlist remove failed",
			slog.String("customer_id", id.CustomerID),
			slog.String("wishlist_item_id", item.ID),
			slog.String("error", err.Error()),
		)
		return err
	}

	g.cache.ApplyRemove(id.CustomerID, item.ID)
	metrics.Mutations.WithLabelValues("remove", "customer", "ok").Inc()
	g.logger.InfoContext(ctx, "item removed from wishlist",
		slog.String("customer_id", id.CustomerID),
		slog.String("wishlist_item_id", item.ID),
	)
	return nil
}

// MergeGuest pushes device-local guest entries into the authenticated
// customer's remote wishlist, seeds the cache with the merged result, and
// clears the local store. Returns (nil, nil) when there is nothing to merge.
func (g *Gateway) MergeGuest(ctx context.Context, id domain.Identity) ([]domain.WishlistItem, error) {
	if id.IsGuest() {
		return nil, apperrors.InvalidInput("merge requires an authenticated customer")
	}

	entries, err := g.guests.List(ctx)
	if err != nil {
		return nil, apperrors.Wrap(err, "list guest entries")
	}
	if len(entries) == 0 {
		return nil, nil
	}

	items, err := g.api.Merge(ctx, id.CustomerID, entries)
	if err != nil {
		metrics.Mutations.WithLabelValues("merge", "customer", "error").Inc()
		return nil, err
	}

	g.cache.Put(id.CustomerID, items)
	if err := g.guests.Clear(ctx); err != nil {
		// The remote merge already happened; a stale local copy is only a
		// cosmetic leftover and the next merge deduplicates server-side.
		g.logger.WarnContext(ctx, "failed to clear guest store after merge",
			slog.String("error", err.Error()),
		)
	}
	metrics.Mutations.WithLabelValues("merge", "customer", "ok").Inc()
	g.logger.InfoContext(ctx, "guest wishlist merged",
		slog.String("customer_id", id.CustomerID),
		slog.Int("guest_entries", len(entries)),
		slog.Int("merged_total", len(items)),
	)
	return items, nil
}
