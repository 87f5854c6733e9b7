package controller

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/Moazzam-Sonu/premier-whishList/internal/cache"
	"github.com/Moazzam-Sonu/premier-whishList/internal/domain"
	"github.com/Moazzam-Sonu/premier-whishList/internal/gateway"
	"github.com/Moazzam-Sonu/premier-whishList/internal/gueststore"
	apperrors "github.com/Moazzam-Sonu/premier-whishList/pkg/errors"
)

// Page is the controller for the full wishlist listing view. It renders the
// item list for the resolved identity in source order, hydrates each row with
// cached product detail, and wires per-row removal.
type Page struct {
	cfg       domain.WidgetConfig
	identity  domain.Identity
	wishlists *cache.WishlistCache
	products  *cache.ProductCache
	guests    gueststore.Store
	gateway   *gateway.Gateway
	view      PageView
	logger    *slog.Logger

	mu   sync.Mutex
	busy bool
}

// NewPage creates a page controller for the given widget configuration.
func NewPage(
	cfg domain.WidgetConfig,
	wishlists *cache.WishlistCache,
	products *cache.ProductCache,
	guests gueststore.Store,
	gw *gateway.Gateway,
	view PageView,
	logger *slog.Logger,
) *Page {
	return &Page{
		cfg:       cfg,
		identity:  domain.ResolveIdentity(cfg),
		wishlists: wishlists,
		products:  products,
		guests:    guests,
		gateway:   gw,
		view:      view,
		logger:    logger,
	}
}

// Load renders the wishlist. For a signed-in customer any device-local guest
// entries are merged into the remote wishlist first (login carryover); merge
// failure degrades to the plain remote list with the guest entries kept.
func (p *Page) Load(ctx context.Context) {
	p.view.ShowError("")
	p.view.SetLoading(true)
	defer p.view.SetLoading(false)

	var items []domain.WishlistItem
	if p.identity.IsGuest() {
		entries, err := p.guests.List(ctx)
		if err != nil {
			p.logger.WarnContext(ctx, "guest list failed", slog.String("error", err.Error()))
		}
		for _, entry := range entries {
			items = append(items, entry.Item())
		}
	} else {
		if _, err := p.gateway.MergeGuest(ctx, p.identity); err != nil {
			p.logger.WarnContext(ctx, "guest merge failed",
				slog.String("customer_id", p.identity.CustomerID),
				slog.String("error", err.Error()),
			)
		}
		items = p.wishlists.Get(ctx, p.identity.CustomerID)
	}

	rows := make([]Row, 0, len(items))
	for _, item := range items {
		rows = append(rows, Row{
			Item:   item,
			Detail: p.products.Get(ctx, item.ProductID),
		})
	}
	p.view.RenderRows(rows)
}

// RemoveItem handles a row's remove action: mutate, then re-render from the
// updated cache or store. A failure shows an inline error and leaves the
// list as it was.
func (p *Page) RemoveItem(ctx context.Context, item domain.WishlistItem) {
	p.mu.Lock()
	if p.busy {
		p.mu.Unlock()
		return
	}
	p.busy = true
	p.mu.Unlock()
	defer func() {
		p.mu.Lock()
		p.busy = false
		p.mu.Unlock()
	}()

	p.view.ShowError("")
	if err := p.gateway.Remove(ctx, p.identity, item); err != nil {
		p.view.ShowError(errMessage(err))
		return
	}
	p.Load(ctx)
}

// errMessage extracts the user-facing message from an error.
func errMessage(err error) string {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	return err.Error()
}
