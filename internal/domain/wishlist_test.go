package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWishlistItem_Matches(t *testing.T) {
	item := WishlistItem{ID: "I1", ProductID: "P1", VariantID: "V1"}

	assert.True(t, item.Matches("P1", "V1"))
	assert.False(t, item.Matches("P1", "V2"))
	assert.False(t, item.Matches("P2", "V1"))
}

func TestGuestEntry_JSONRoundTrip(t *testing.T) {
	entries := []GuestEntry{
		{ProductID: "P1", VariantID: "V1"},
		{ProductID: "P2"},
	}

	data, err := json.Marshal(entries)
	require.NoError(t, err)
	assert.JSONEq(t, `[{"productId":"P1","variantId":"V1"},{"productId":"P2","variantId":null}]`, string(data))

	var decoded []GuestEntry
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, entries, decoded)
}

func TestGuestEntry_UnmarshalLooseTypes(t *testing.T) {
	// Entries written by older widget versions may hold raw numbers.
	var entry GuestEntry
	require.NoError(t, json.Unmarshal([]byte(`{"productId": 7012345, "variantId": null}`), &entry))

	assert.Equal(t, "7012345", entry.ProductID)
	assert.Equal(t, "", entry.VariantID)
}

func TestGuestEntry_SyntheticID(t *testing.T) {
	assert.Equal(t, "P1:V1", GuestEntry{ProductID: "P1", VariantID: "V1"}.SyntheticID())

	item := GuestEntry{ProductID: "P1", VariantID: "V1"}.Item()
	assert.Equal(t, "P1:V1", item.ID)
	assert.Equal(t, "P1", item.ProductID)
	assert.Equal(t, "V1", item.VariantID)
}
