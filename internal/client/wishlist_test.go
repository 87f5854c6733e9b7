package client

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Moazzam-Sonu/premier-whishList/internal/domain"
	apperrors "github.com/Moazzam-Sonu/premier-whishList/pkg/errors"
	"github.com/Moazzam-Sonu/premier-whishList/pkg/httpclient"
)

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	hc := httpclient.New(httpclient.Config{Timeout: 5 * time.Second, MaxConnsPerHost: 4})
	return New(hc, srv.URL, "dev-shop.myshopify.com", newTestLogger())
}

func TestList_Success(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/wishlist", r.URL.Path)
		assert.Equal(t, "C1", r.URL.Query().Get("customerId"))
		assert.Equal(t, "dev-shop.myshopify.com", r.URL.Query().Get("shop"))
		_, _ = w.Write([]byte(`{"wishlist":[{"id":"I1","productId":"P1","variantId":"V1","addedAt":"2026-08-01T12:00:00Z"}]}`))
	}))

	items, err := c.List(context.Background(), "C1")

	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "I1", items[0].ID)
	assert.Equal(t, "P1", items[0].ProductID)
	assert.Equal(t, "V1", items[0].VariantID)
	assert.Equal(t, time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC), items[0].AddedAt)
}

func TestList_MissingFieldDefaultsEmpty(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{}`))
	}))

	items, err := c.List(context.Background(), "C1")

	require.NoError(t, err)
	assert.Empty(t, items)
	assert.NotNil(t, items)
}

func TestList_TransportFailure(t *testing.T) {
	hc := httpclient.New(httpclient.Config{Timeout: time.Second, MaxConnsPerHost: 1})
	c := New(hc, "http://127.0.0.1:1", "", newTestLogger())

	_, err := c.List(context.Background(), "C1")

	assert.ErrorIs(t, err, apperrors.ErrUnavailable)
}

func TestAdd_Success(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/wishlist/add", r.URL.Path)
		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		var req map[string]any
		require.NoError(t, json.Unmarshal(body, &req))
		assert.Equal(t, "C1", req["customerId"])
		assert.Equal(t, "c1@example.com", req["email"])
		assert.Equal(t, "P1", req["productId"])
		assert.Equal(t, "V1", req["variantId"])
		assert.Equal(t, "dev-shop.myshopify.com", req["shopDomain"])
		_, _ = w.Write([]byte(`{"success":true,"wishlistItemId":"I1"}`))
	}))

	itemID, err := c.Add(context.Background(), AddRequest{
		CustomerID: "C1",
		Email:      "c1@example.com",
		ProductID:  "P1",
		VariantID:  "V1",
	})

	require.NoError(t, err)
	assert.Equal(t, "I1", itemID)
}

func TestAdd_NullVariantWhenEmpty(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		var req map[string]any
		require.NoError(t, json.Unmarshal(body, &req))
		val, present := req["variantId"]
		assert.True(t, present)
		assert.Nil(t, val)
		_, _ = w.Write([]byte(`{"success":true,"wishlistItemId":"I2"}`))
	}))

	_, err := c.Add(context.Background(), AddRequest{CustomerID: "C1", ProductID: "P1"})
	require.NoError(t, err)
}

func TestAdd_Declined(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"success":false,"error":"Missing variantId"}`))
	}))

	_, err := c.Add(context.Background(), AddRequest{CustomerID: "C1", ProductID: "P1"})

	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrDeclined)
	assert.Contains(t, err.Error(), "Missing variantId")
}

func TestRemove_Success(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/wishlist/remove", r.URL.Path)
		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		assert.JSONEq(t, `{"wishlistItemId":"I1"}`, string(body))
		_, _ = w.Write([]byte(`{"success":true}`))
	}))

	require.NoError(t, c.Remove(context.Background(), "I1"))
}

func TestRemove_Declined(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"success":false,"error":"Wishlist item not found"}`))
	}))

	err := c.Remove(context.Background(), "missing")

	assert.ErrorIs(t, err, apperrors.ErrDeclined)
}

func TestMerge_Success(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/wishlist/merge", r.URL.Path)
		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		assert.JSONEq(t, `{"customerId":"C1","guestItems":[{"productId":"P1","variantId":"V1"}]}`, string(body))
		_, _ = w.Write([]byte(`{"wishlist":[{"id":"I1","productId":"P1","variantId":"V1"}]}`))
	}))

	items, err := c.Merge(context.Background(), "C1", []domain.GuestEntry{{ProductID: "P1", VariantID: "V1"}})

	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "I1", items[0].ID)
}

func TestProductDetail_Success(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/detail-product", r.URL.Path)
		assert.Equal(t, "P1", r.URL.Query().Get("productId"))
		assert.Equal(t, "dev-shop.myshopify.com", r.URL.Query().Get("shop"))
		_, _ = w.Write([]byte(`{"data":{"product":{
			"title":"Premier Tee",
			"handle":"premier-tee",
			"featuredImage":{"url":"https://img.example.com/tee.jpg","altText":"Tee"},
			"totalInventory":12,
			"variants":[{"id":"gid://shopify/ProductVariant/901","price":"19.99","inventoryQuantity":5}]
		}}}`))
	}))

	product, err := c.ProductDetail(context.Background(), "P1")

	require.NoError(t, err)
	require.NotNil(t, product)
	assert.Equal(t, "Premier Tee", product.Title)
	assert.Equal(t, "https://img.example.com/tee.jpg", product.ImageURL)
	require.Len(t, product.Variants, 1)
	assert.Equal(t, "901", product.Variants[0].ID)
	assert.Equal(t, "19.99", product.Variants[0].Price)
	assert.Equal(t, 5, product.Variants[0].InventoryQuantity)
}

func TestProductDetail_MissingProduct(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"data":{}}`))
	}))

	product, err := c.ProductDetail(context.Background(), "gone")

	require.NoError(t, err)
	assert.Nil(t, product)
}

func TestProductDetail_NumericPrice(t *testing.T) {
	// Some API versions return price as a bare number.
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"data":{"product":{"title":"X","variants":[{"id":901,"price":24.5,"inventoryQuantity":1}]}}}`))
	}))

	product, err := c.ProductDetail(context.Background(), "P2")

	require.NoError(t, err)
	require.NotNil(t, product)
	require.Len(t, product.Variants, 1)
	assert.Equal(t, "901", product.Variants[0].ID)
	assert.Equal(t, "24.5", product.Variants[0].Price)
}
