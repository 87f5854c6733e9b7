// Package gueststore persists the anonymous wishlist: a single named entry
// holding a JSON array of product/variant pairs. The device store may be
// written by other tabs or processes, so every operation re-reads persisted
// state instead of trusting an in-memory copy.
package gueststore

import (
	"context"

	"github.com/Moazzam-Sonu/premier-whishList/internal/domain"
)

// DefaultKey is the storage key guest wishlists have always been kept under.
const DefaultKey = "guestWishlist"

// Store is the device-local guest wishlist.
type Store interface {
	// List returns all entries in insertion order. Corrupt or absent state
	// reads as an empty list.
	List(ctx context.Context) ([]domain.GuestEntry, error)

	// Contains reports whether the product/variant pair is present.
	Contains(ctx context.Context, productID, variantID string) (bool, error)

	// Add appends the pair unless an identical pair is already present.
	Add(ctx context.Context, productID, variantID string) error

	// Remove drops the matching pair and persists the result.
	Remove(ctx context.Context, productID, variantID string) error

	// Clear empties the store. Used after a successful merge into a
	// customer's remote wishlist.
	Clear(ctx context.Context) error
}

func containsPair(entries []domain.GuestEntry, productID, variantID string) bool {
	for _, e := range entries {
		if e.Matches(productID, variantID) {
			return true
		}
	}
	return false
}

func removePair(entries []domain.GuestEntry, productID, variantID string) []domain.GuestEntry {
	next := make([]domain.GuestEntry, 0, len(entries))
	for _, e := range entries {
		if !e.Matches(productID, variantID) {
			next = append(next, e)
		}
	}
	return next
}
