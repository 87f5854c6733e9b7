// Package client implements the HTTP client for the remote wishlist service.
// It is transport only: response interpretation beyond the wire schema
// (caching, reconciliation, retries-by-user) belongs to the layers above.
package client

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/url"

	"github.com/Moazzam-Sonu/premier-whishList/internal/domain"
	apperrors "github.com/Moazzam-Sonu/premier-whishList/pkg/errors"
	"github.com/Moazzam-Sonu/premier-whishList/pkg/httpclient"
)

// Client calls the remote wishlist service endpoints.
type Client struct {
	http       *httpclient.Client
	baseURL    string
	shopDomain string
	logger     *slog.Logger
}

// New creates a client for the wishlist service at the given base URL.
func New(httpClient *httpclient.Client, baseURL, shopDomain string, logger *slog.Logger) *Client {
	return &Client{
		http:       httpClient,
		baseURL:    baseURL,
		shopDomain: shopDomain,
		logger:     logger,
	}
}

// BaseURL returns the remote base URL this client talks to.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// AddRequest holds the parameters for an authenticated add call.
type AddRequest struct {
	CustomerID string
	Email      string
	ProductID  string
	VariantID  string
}

// List fetches the customer's wishlist.
func (c *Client) List(ctx context.Context, customerID string) ([]domain.WishlistItem, error) {
	query := url.Values{"customerId": {customerID}}
	if c.shopDomain != "" {
		query.Set("shop", c.shopDomain)
	}

	resp, err := c.http.Get(ctx, c.baseURL+"/api/wishlist?"+query.Encode())
	if err != nil {
		return nil, apperrors.Unavailable(err)
	}
	defer resp.Body.Close()

	var body listResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, apperrors.Unavailable(fmt.Errorf("decode wishlist response: %w", err))
	}

	if body.Wishlist == nil {
		return []domain.WishlistItem{}, nil
	}
	return body.Wishlist, nil
}

// Add asks the remote service to add a product/variant pair to the customer's
// wishlist and returns the server-assigned item ID. A response without
// success: true yields ErrDeclined; no retry is attempted.
func (c *Client) Add(ctx context.Context, req AddRequest) (string, error) {
	payload := struct {
		CustomerID string  `json:"customerId"`
		Email      string  `json:"email,omitempty"`
		ProductID  string  `json:"productId"`
		VariantID  *string `json:"variantId"`
		ShopDomain string  `json:"shopDomain,omitempty"`
	}{
		CustomerID: req.CustomerID,
		Email:      req.Email,
		ProductID:  req.ProductID,
		ShopDomain: c.shopDomain,
	}
	if req.VariantID != "" {
		payload.VariantID = &req.VariantID
	}

	resp, err := c.http.PostJSON(ctx, c.baseURL+"/api/wishlist/add", payload)
	if err != nil {
		return "", apperrors.Unavailable(err)
	}
	defer resp.Body.Close()

	var body mutationResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", apperrors.Unavailable(fmt.Errorf("decode add response: %w", err))
	}
	if !body.Success {
		return "", apperrors.Declined(body.Error)
	}
	return body.WishlistItemID, nil
}

// Remove asks the remote service to delete the wishlist item by its server ID.
func (c *Client) Remove(ctx context.Context, wishlistItemID string) error {
	payload := struct {
		WishlistItemID string `json:"wishlistItemId"`
	}{WishlistItemID: wishlistItemID}

	resp, err := c.http.PostJSON(ctx, c.baseURL+"/api/wishlist/remove", payload)
	if err != nil {
		return apperrors.Unavailable(err)
	}
	defer resp.Body.Close()

	var body mutationResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return apperrors.Unavailable(fmt.Errorf("decode remove response: %w", err))
	}
	if !body.Success {
		return apperrors.Declined(body.Error)
	}
	return nil
}

// Merge pushes device-local guest entries into the customer's remote wishlist
// and returns the merged list. The server deduplicates by product/variant pair.
func (c *Client) Merge(ctx context.Context, customerID string, entries []domain.GuestEntry) ([]domain.WishlistItem, error) {
	payload := struct {
		CustomerID string              `json:"customerId"`
		GuestItems []domain.GuestEntry `json:"guestItems"`
	}{CustomerID: customerID, GuestItems: entries}
	if payload.GuestItems == nil {
		payload.GuestItems = []domain.GuestEntry{}
	}

	resp, err := c.http.PostJSON(ctx, c.baseURL+"/api/wishlist/merge", payload)
	if err != nil {
		return nil, apperrors.Unavailable(err)
	}
	defer resp.Body.Close()

	var body mergeResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, apperrors.Unavailable(fmt.Errorf("decode merge response: %w", err))
	}
	if body.Error != "" {
		return nil, apperrors.Declined(body.Error)
	}
	if body.Wishlist == nil {
		return []domain.WishlistItem{}, nil
	}
	return body.Wishlist, nil
}

// ProductDetail fetches product display data. A response without a product
// returns (nil, nil) so the caller can tombstone the lookup.
func (c *Client) ProductDetail(ctx context.Context, productID string) (*domain.Product, error) {
	query := url.Values{"productId": {productID}}
	if c.shopDomain != "" {
		query.Set("shop", c.shopDomain)
	}

	resp, err := c.http.Get(ctx, c.baseURL+"/api/detail-product?"+query.Encode())
	if err != nil {
		return nil, apperrors.Unavailable(err)
	}
	defer resp.Body.Close()

	var body detailResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, apperrors.Unavailable(fmt.Errorf("decode detail response: %w", err))
	}
	if body.Data.Product == nil {
		return nil, nil
	}
	return body.Data.Product.toDomain(), nil
}
