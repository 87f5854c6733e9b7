package controller

import (
	"context"
	"log/slog"
	"sync"

	"github.com/Moazzam-Sonu/premier-whishList/internal/cache"
	"github.com/Moazzam-Sonu/premier-whishList/internal/domain"
	"github.com/Moazzam-Sonu/premier-whishList/internal/gateway"
	"github.com/Moazzam-Sonu/premier-whishList/internal/gueststore"
)

// ButtonStatus is a point-in-time snapshot of a button's state machine.
type ButtonStatus struct {
	Inert    bool   `json:"inert"`
	Hydrated bool   `json:"hydrated"`
	Active   bool   `json:"active"`
	Busy     bool   `json:"busy"`
	ItemID   string `json:"itemId,omitempty"`
}

// Button is the controller for one favorite-toggle widget. Its lifecycle is
// Idle-Unknown (fresh) → Idle-Inactive/Idle-Active (hydrated) → Busy (one
// operation in flight) → Idle-*. There is no terminal state; a detached
// widget simply stops receiving calls.
type Button struct {
	cfg       domain.WidgetConfig
	identity  domain.Identity
	wishlists *cache.WishlistCache
	guests    gueststore.Store
	gateway   *gateway.Gateway
	view      ButtonView
	logger    *slog.Logger

	// Favoriting is defined per variant: a marker without product and
	// variant IDs is a theme configuration error and the widget stays
	// silently inert.
	inert bool

	mu       sync.Mutex
	hydrated bool
	active   bool
	busy     bool
	itemID   string
}

// NewButton creates a button controller for the given widget configuration.
func NewButton(
	cfg domain.WidgetConfig,
	wishlists *cache.WishlistCache,
	guests gueststore.Store,
	gw *gateway.Gateway,
	view ButtonView,
	logger *slog.Logger,
) *Button {
	return &Button{
		cfg:       cfg,
		identity:  domain.ResolveIdentity(cfg),
		wishlists: wishlists,
		guests:    guests,
		gateway:   gw,
		view:      view,
		logger:    logger,
		inert:     cfg.ProductID == "" || cfg.VariantID == "",
	}
}

// Hydrate establishes the initial visual state from the cache (customer) or
// the guest store. It runs at most once; failures degrade to Idle-Inactive.
func (b *Button) Hydrate(ctx context.Context) {
	if b.inert {
		return
	}

	b.mu.Lock()
	if b.hydrated || b.busy {
		b.mu.Unlock()
		return
	}
	b.busy = true
	b.mu.Unlock()
	b.view.SetBusy(true)

	active := false
	itemID := ""
	if b.identity.IsGuest() {
		found, err := b.guests.Contains(ctx, b.cfg.ProductID, b.cfg.VariantID)
		if err != nil {
			b.logger.WarnContext(ctx, "guest hydration failed",
				slog.String("product_id", b.cfg.ProductID),
				slog.String("error", err.Error()),
			)
		}
		active = found
	} else {
		for _, item := range b.wishlists.Get(ctx, b.identity.CustomerID) {
			if item.Matches(b.cfg.ProductID, b.cfg.VariantID) {
				active = true
				itemID = item.ID
				break
			}
		}
	}

	b.mu.Lock()
	b.hydrated = true
	b.active = active
	b.itemID = itemID
	b.busy = false
	b.mu.Unlock()

	b.view.SetActive(active)
	b.view.SetBusy(false)
}

// Toggle handles a click. Clicks are ignored while an operation is in flight,
// before hydration, and (for customers) when no server item ID is known for
// an active widget. Failures leave the pre-click state untouched.
func (b *Button) Toggle(ctx context.Context) {
	if b.inert {
		return
	}

	b.mu.Lock()
	if b.busy || !b.hydrated {
		b.mu.Unlock()
		return
	}
	wasActive := b.active
	itemID := b.itemID
	if wasActive && !b.identity.IsGuest() && itemID == "" {
		// Remove is only exposed once hydration established a server ID.
		b.mu.Unlock()
		return
	}
	b.busy = true
	b.mu.Unlock()
	b.view.SetBusy(true)

	if wasActive {
		b.toggleOff(ctx, itemID)
	} else {
		b.toggleOn(ctx)
	}
	b.view.SetBusy(false)
}

func (b *Button) toggleOn(ctx context.Context) {
	item, err := b.gateway.Add(ctx, b.identity, b.cfg.ProductID, b.cfg.VariantID)

	b.mu.Lock()
	if err == nil {
		b.active = true
		b.itemID = item.ID
	}
	active := b.active
	b.busy = false
	b.mu.Unlock()

	b.view.SetActive(active)
}

func (b *Button) toggleOff(ctx context.Context, itemID string) {
	err := b.gateway.Remove(ctx, b.identity, domain.WishlistItem{
		ID:        itemID,
		ProductID: b.cfg.ProductID,
		VariantID: b.cfg.VariantID,
	})

	b.mu.Lock()
	if err == nil {
		b.active = false
		b.itemID = ""
	}
	active := b.active
	b.busy = false
	b.mu.Unlock()

	b.view.SetActive(active)
}

// Status returns a snapshot of the state machine.
func (b *Button) Status() ButtonStatus {
	b.mu.Lock()
	defer b.mu.Unlock()
	return ButtonStatus{
		Inert:    b.inert,
		Hydrated: b.hydrated,
		Active:   b.active,
		Busy:     b.busy,
		ItemID:   b.itemID,
	}
}
