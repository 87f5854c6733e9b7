package client

import (
	"encoding/json"
	"strings"

	"github.com/Moazzam-Sonu/premier-whishList/internal/domain"
)

// looseString accepts JSON strings and numbers. The detail endpoint proxies
// Admin GraphQL, whose scalar encodings have shifted across API versions.
type looseString string

func (s *looseString) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "null" {
		*s = ""
		return nil
	}
	if strings.HasPrefix(trimmed, `"`) {
		var v string
		if err := json.Unmarshal(data, &v); err != nil {
			return err
		}
		*s = looseString(v)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*s = looseString(n.String())
	return nil
}

type listResponse struct {
	Wishlist []domain.WishlistItem `json:"wishlist"`
}

type mutationResponse struct {
	Success        bool   `json:"success"`
	WishlistItemID string `json:"wishlistItemId"`
	Error          string `json:"error"`
}

type mergeResponse struct {
	Wishlist []domain.WishlistItem `json:"wishlist"`
	Error    string                `json:"error"`
}

type detailResponse struct {
	Data struct {
		Product *productPayload `json:"product"`
	} `json:"data"`
}

type productPayload struct {
	Title         string `json:"title"`
	Handle        string `json:"handle"`
	FeaturedImage *struct {
		URL     string `json:"url"`
		AltText string `json:"altText"`
	} `json:"featuredImage"`
	TotalInventory int              `json:"totalInventory"`
	Variants       []variantPayload `json:"variants"`
}

type variantPayload struct {
	ID                looseString `json:"id"`
	Price             looseString `json:"price"`
	InventoryQuantity int         `json:"inventoryQuantity"`
}

func (p *productPayload) toDomain() *domain.Product {
	product := &domain.Product{
		Title:          p.Title,
		Handle:         p.Handle,
		TotalInventory: p.TotalInventory,
	}
	if p.FeaturedImage != nil {
		product.ImageURL = p.FeaturedImage.URL
		product.ImageAlt = p.FeaturedImage.AltText
	}
	for _, v := range p.Variants {
		product.Variants = append(product.Variants, domain.ProductVariant{
			ID:                numericID(string(v.ID)),
			Price:             string(v.Price),
			InventoryQuantity: v.InventoryQuantity,
		})
	}
	return product
}

// numericID strips a Shopify GID prefix (gid://shopify/ProductVariant/123)
// down to the trailing numeric identifier. Plain IDs pass through unchanged.
func numericID(id string) string {
	if i := strings.LastIndex(id, "/"); i >= 0 {
		return id[i+1:]
	}
	return id
}
