// Package controller holds the per-widget controllers: the favorite toggle
// button and the wishlist listing page. Controllers read shared caches and
// drive the mutation gateway; rendering is delegated to host-provided views.
package controller

import (
	"github.com/Moazzam-Sonu/premier-whishList/internal/domain"
)

// ButtonView receives visual state changes for a single toggle control.
// SetBusy(true) must disable the control so an operation cannot be invoked
// twice concurrently for the same widget instance.
type ButtonView interface {
	SetBusy(busy bool)
	SetActive(active bool)
}

// Row is one rendered line of the wishlist page. Detail is nil when product
// display data is unavailable; the view renders a placeholder label.
type Row struct {
	Item   domain.WishlistItem
	Detail *domain.ProductDetail
}

// PageView receives render updates for the wishlist listing. An empty rows
// slice means the empty state. ShowError with an empty message clears any
// visible error.
type PageView interface {
	SetLoading(loading bool)
	ShowError(message string)
	RenderRows(rows []Row)
}

// NopButtonView discards all updates. Useful for headless embeddings that
// only care about state via Status().
type NopButtonView struct{}

func (NopButtonView) SetBusy(bool)   {}
func (NopButtonView) SetActive(bool) {}

// NopPageView discards all updates.
type NopPageView struct{}

func (NopPageView) SetLoading(bool)  {}
func (NopPageView) ShowError(string) {}
func (NopPageView) RenderRows([]Row) {}
