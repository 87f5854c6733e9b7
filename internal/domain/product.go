package domain

// ProductVariant is the subset of variant data the widget consumes.
type ProductVariant struct {
	ID                string
	Price             string
	InventoryQuantity int
}

// Product is the product fact sheet returned by the detail endpoint.
type Product struct {
	Title          string
	Handle         string
	ImageURL       string
	ImageAlt       string
	TotalInventory int
	Variants       []ProductVariant
}

// ProductDetail is the display record cached per product for wishlist rows.
type ProductDetail struct {
	Title     string
	Handle    string
	ImageURL  string
	ImageAlt  string
	Price     string
	VariantID string
	InStock   bool
}

// Detail derives the cached display record. Price and the default variant ID
// come from the first variant. A product counts as in stock when either the
// product-level total inventory or the first variant's quantity is positive;
// either signal alone suffices, tolerating shops with partial inventory
// tracking.
func (p Product) Detail() ProductDetail {
	detail := ProductDetail{
		Title:    p.Title,
		Handle:   p.Handle,
		ImageURL: p.ImageURL,
		ImageAlt: p.ImageAlt,
		InStock:  p.TotalInventory > 0,
	}
	if len(p.Variants) > 0 {
		first := p.Variants[0]
		detail.Price = first.Price
		detail.VariantID = first.ID
		if first.InventoryQuantity > 0 {
			detail.InStock = true
		}
	}
	return detail
}
