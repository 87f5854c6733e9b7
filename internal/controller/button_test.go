package controller

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/Moazzam-Sonu/premier-whishList/internal/cache"
	"github.com/Moazzam-Sonu/premier-whishList/internal/client"
	"github.com/Moazzam-Sonu/premier-whishList/internal/domain"
	"github.com/Moazzam-Sonu/premier-whishList/internal/gateway"
	"github.com/Moazzam-Sonu/premier-whishList/internal/gueststore"
	apperrors "github.com/Moazzam-Sonu/premier-whishList/pkg/errors"
)

// --- Mock remote API ---

type mockRemoteAPI struct {
	mock.Mock
}

func (m *mockRemoteAPI) Add(ctx context.Context, req client.AddRequest) (string, error) {
	args := m.Called(ctx, req)
	return args.String(0), args.Error(1)
}

func (m *mockRemoteAPI) Remove(ctx context.Context, wishlistItemID string) error {
	args := m.Called(ctx, wishlistItemID)
	return args.Error(0)
}

func (m *mockRemoteAPI) Merge(ctx context.Context, customerID string, entries []domain.GuestEntry) ([]domain.WishlistItem, error) {
	args := m.Called(ctx, customerID, entries)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.WishlistItem), args.Error(1)
}

// blockingAPI parks Add calls until released, to exercise the busy guard.
type blockingAPI struct {
	mockRemoteAPI
	entered chan struct{}
	release chan struct{}
	adds    atomic.Int32
}

func newBlockingAPI() *blockingAPI {
	return &blockingAPI{
		entered: make(chan struct{}),
		release: make(chan struct{}),
	}
}

func (a *blockingAPI) Add(ctx context.Context, req client.AddRequest) (string, error) {
	if a.adds.Add(1) == 1 {
		close(a.entered)
	}
	<-a.release
	return "I1", nil
}

// --- Fake view ---

type fakeButtonView struct {
	mu        sync.Mutex
	active    bool
	busyCalls int
}

func (v *fakeButtonView) SetBusy(busy bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.busyCalls++
}

func (v *fakeButtonView) SetActive(active bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.active = active
}

func (v *fakeButtonView) Active() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.active
}

// --- Test helpers ---

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

type buttonDeps struct {
	wishlists *cache.WishlistCache
	guests    gueststore.Store
	gateway   *gateway.Gateway
	fetches   *atomic.Int32
}

func newButtonDeps(t *testing.T, api gateway.RemoteAPI, remote []domain.WishlistItem) buttonDeps {
	t.Helper()
	var fetches atomic.Int32
	wishlists := cache.NewWishlistCache(func(ctx context.Context, customerID string) ([]domain.WishlistItem, error) {
		fetches.Add(1)
		return remote, nil
	}, newTestLogger())
	guests := gueststore.NewFileStore(filepath.Join(t.TempDir(), "guest.json"))
	gw := gateway.New(api, wishlists, guests, newTestLogger())
	return buttonDeps{wishlists: wishlists, guests: guests, gateway: gw, fetches: &fetches}
}

func (d buttonDeps) button(cfg domain.WidgetConfig, view ButtonView) *Button {
	return NewButton(cfg, d.wishlists, d.guests, d.gateway, view, newTestLogger())
}

func customerCfg(productID, variantID string) domain.WidgetConfig {
	return domain.WidgetConfig{CustomerID: "C1", ProductID: productID, VariantID: variantID}
}

func guestCfg(productID, variantID string) domain.WidgetConfig {
	return domain.WidgetConfig{ProductID: productID, VariantID: variantID}
}

// --- Tests ---

func TestButtonHydrate_CustomerMatchingItem(t *testing.T) {
	deps := newButtonDeps(t, new(mockRemoteAPI), []domain.WishlistItem{
		{ID: "I1", ProductID: "P1", VariantID: "V1"},
	})
	view := &fakeButtonView{}
	b := deps.button(customerCfg("P1", "V1"), view)

	b.Hydrate(context.Background())

	status := b.Status()
	assert.True(t, status.Hydrated)
	assert.True(t, status.Active)
	assert.Equal(t, "I1", status.ItemID)
	assert.False(t, status.Busy)
	assert.True(t, view.Active())
}

func TestButtonHydrate_CustomerDifferentVariant(t *testing.T) {
	deps := newButtonDeps(t, new(mockRemoteAPI), []domain.WishlistItem{
		{ID: "I1", ProductID: "P1", VariantID: "V1"},
	})
	b := deps.button(customerCfg("P1", "V2"), &fakeButtonView{})

	b.Hydrate(context.Background())

	status := b.Status()
	assert.True(t, status.Hydrated)
	assert.False(t, status.Active)
	assert.Empty(t, status.ItemID)
}

func TestButtonHydrate_SecondButtonSharesFetch(t *testing.T) {
	deps := newButtonDeps(t, new(mockRemoteAPI), []domain.WishlistItem{
		{ID: "I1", ProductID: "P1", VariantID: "V1"},
	})
	first := deps.button(customerCfg("P1", "V1"), &fakeButtonView{})
	second := deps.button(customerCfg("P1", "V1"), &fakeButtonView{})

	first.Hydrate(context.Background())
	second.Hydrate(context.Background())

	assert.True(t, second.Status().Active)
	assert.Equal(t, "I1", second.Status().ItemID)
	assert.Equal(t, int32(1), deps.fetches.Load())
}

func TestButtonHydrate_Guest(t *testing.T) {
	deps := newButtonDeps(t, new(mockRemoteAPI), nil)
	ctx := context.Background()
	require.NoError(t, deps.guests.Add(ctx, "P1", "V1"))

	b := deps.button(guestCfg("P1", "V1"), &fakeButtonView{})
	b.Hydrate(ctx)

	assert.True(t, b.Status().Active)
	// No remote fetch for guests.
	assert.Equal(t, int32(0), deps.fetches.Load())
}

func TestButton_InertWithoutVariant(t *testing.T) {
	deps := newButtonDeps(t, new(mockRemoteAPI), nil)
	ctx := context.Background()

	b := deps.button(guestCfg("P1", ""), &fakeButtonView{})
	b.Hydrate(ctx)
	b.Toggle(ctx)

	status := b.Status()
	assert.True(t, status.Inert)
	assert.False(t, status.Hydrated)
	entries, err := deps.guests.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestButton_ToggleIgnoredBeforeHydration(t *testing.T) {
	api := new(mockRemoteAPI)
	deps := newButtonDeps(t, api, nil)

	b := deps.button(customerCfg("P1", "V1"), &fakeButtonView{})
	b.Toggle(context.Background())

	api.AssertNotCalled(t, "Add")
	assert.False(t, b.Status().Active)
}

func TestButton_GuestToggleScenario(t *testing.T) {
	deps := newButtonDeps(t, new(mockRemoteAPI), nil)
	ctx := context.Background()
	view := &fakeButtonView{}
	b := deps.button(guestCfg("P1", "V1"), view)

	b.Hydrate(ctx)
	assert.False(t, b.Status().Active)

	b.Toggle(ctx)
	entries, err := deps.guests.List(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, domain.GuestEntry{ProductID: "P1", VariantID: "V1"}, entries[0])
	assert.True(t, b.Status().Active)
	assert.True(t, view.Active())

	b.Toggle(ctx)
	entries, err = deps.guests.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, entries)
	assert.False(t, b.Status().Active)
	assert.False(t, view.Active())
}

func TestButton_CustomerAddRecordsServerID(t *testing.T) {
	api := new(mockRemoteAPI)
	deps := newButtonDeps(t, api, []domain.WishlistItem{})
	ctx := context.Background()
	b := deps.button(customerCfg("P1", "V1"), &fakeButtonView{})
	b.Hydrate(ctx)

	api.On("Add", ctx, mock.Anything).Return("I1", nil)
	b.Toggle(ctx)

	status := b.Status()
	assert.True(t, status.Active)
	assert.Equal(t, "I1", status.ItemID)

	// A second, independently created button hydrates Active from the updated
	// cache without another network fetch.
	other := deps.button(customerCfg("P1", "V1"), &fakeButtonView{})
	other.Hydrate(ctx)
	assert.True(t, other.Status().Active)
	assert.Equal(t, "I1", other.Status().ItemID)
	assert.Equal(t, int32(1), deps.fetches.Load())
}

func TestButton_CustomerAddFailureStaysInactive(t *testing.T) {
	api := new(mockRemoteAPI)
	deps := newButtonDeps(t, api, []domain.WishlistItem{})
	ctx := context.Background()
	b := deps.button(customerCfg("P1", "V1"), &fakeButtonView{})
	b.Hydrate(ctx)

	api.On("Add", ctx, mock.Anything).Return("", apperrors.Declined("nope"))
	b.Toggle(ctx)

	status := b.Status()
	assert.False(t, status.Active)
	assert.False(t, status.Busy)
}

func TestButton_CustomerRemoveFailureStaysActive(t *testing.T) {
	api := new(mockRemoteAPI)
	deps := newButtonDeps(t, api, []domain.WishlistItem{
		{ID: "I1", ProductID: "P1", VariantID: "V1"},
	})
	ctx := context.Background()
	b := deps.button(customerCfg("P1", "V1"), &fakeButtonView{})
	b.Hydrate(ctx)

	api.On("Remove", ctx, "I1").Return(apperrors.Unavailable(assert.AnError))
	b.Toggle(ctx)

	status := b.Status()
	assert.True(t, status.Active)
	assert.Equal(t, "I1", status.ItemID)
}

func TestButton_BusyGuardSingleFlight(t *testing.T) {
	api := newBlockingAPI()
	deps := newButtonDeps(t, api, []domain.WishlistItem{})
	ctx := context.Background()
	b := deps.button(customerCfg("P1", "V1"), &fakeButtonView{})
	b.Hydrate(ctx)

	done := make(chan struct{})
	go func() {
		defer close(done)
		b.Toggle(ctx)
	}()

	select {
	case <-api.entered:
	case <-time.After(2 * time.Second):
		t.Fatal("first toggle never reached the gateway")
	}

	// Second click while the first operation is unresolved: no second call.
	b.Toggle(ctx)
	assert.Equal(t, int32(1), api.adds.Load())

	close(api.release)
	<-done

	status := b.Status()
	assert.True(t, status.Active)
	assert.Equal(t, "I1", status.ItemID)
	assert.Equal(t, int32(1), api.adds.Load())
}
