package domain

import (
	"encoding/json"
	"time"
)

// WishlistItem is a single favorited product variant. Remote-sourced items
// carry the server-assigned ID; guest items carry a synthetic "productId:variantId"
// ID until they are merged into a customer wishlist.
type WishlistItem struct {
	ID        string    `json:"id"`
	ProductID string    `json:"productId"`
	VariantID string    `json:"variantId,omitempty"`
	AddedAt   time.Time `json:"addedAt,omitzero"`
}

// Matches reports whether the item refers to the given product/variant pair.
func (it WishlistItem) Matches(productID, variantID string) bool {
	return it.ProductID == productID && it.VariantID == variantID
}

// GuestEntry is one row of the device-local guest wishlist.
type GuestEntry struct {
	ProductID string
	VariantID string
}

// guestEntryWire mirrors the persisted JSON shape. The variant is written as
// null when empty, and both fields tolerate numeric values written by older
// storefront themes.
type guestEntryWire struct {
	ProductID flexID  `json:"productId"`
	VariantID *flexID `json:"variantId"`
}

// MarshalJSON writes the entry in the storefront's persisted format.
func (e GuestEntry) MarshalJSON() ([]byte, error) {
	wire := struct {
		ProductID string  `json:"productId"`
		VariantID *string `json:"variantId"`
	}{ProductID: e.ProductID}
	if e.VariantID != "" {
		wire.VariantID = &e.VariantID
	}
	return json.Marshal(wire)
}

// UnmarshalJSON reads the persisted format, coercing numbers and nulls to strings.
func (e *GuestEntry) UnmarshalJSON(data []byte) error {
	var wire guestEntryWire
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}
	e.ProductID = string(wire.ProductID)
	e.VariantID = ""
	if wire.VariantID != nil {
		e.VariantID = string(*wire.VariantID)
	}
	return nil
}

// Matches reports whether the entry refers to the given product/variant pair.
func (e GuestEntry) Matches(productID, variantID string) bool {
	return e.ProductID == productID && e.VariantID == variantID
}

// SyntheticID returns the local stand-in for a server item ID.
func (e GuestEntry) SyntheticID() string {
	return e.ProductID + ":" + e.VariantID
}

// Item converts the guest entry into a WishlistItem with a synthetic ID.
func (e GuestEntry) Item() WishlistItem {
	return WishlistItem{
		ID:        e.SyntheticID(),
		ProductID: e.ProductID,
		VariantID: e.VariantID,
	}
}
