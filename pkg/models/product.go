package models

// Variant is a purchasable SKU of a product. The ID is the commerce
// platform's merchandise/variant identifier and is what cart lines reference.
type Variant struct {
	ID                string  `json:"id"`
	Title             string  `json:"title"`
	Price             float64 `json:"price"`
	Currency          string  `json:"currency"`
	InventoryQuantity int     `json:"inventory_quantity"`
	AvailableForSale  bool    `json:"available_for_sale"`
}

// Product is the single internal catalog shape. Both the Shopify-shaped and
// the Medusa-shaped payloads are mapped into it at the commerce boundary;
// neither raw backend shape is allowed past pkg/commerce.
type Product struct {
	ID           string    `json:"id"`
	Slug         string    `json:"slug"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	Price        float64   `json:"price"`
	Currency     string    `json:"currency"`
	Image        string    `json:"image"`
	Images       []string  `json:"images"`
	Rating       float64   `json:"rating"`
	ReviewsCount int       `json:"reviews_count"`
	Tags         []string  `json:"tags,omitempty"`
	Variants     []Variant `json:"variants"`
}

// InStock reports whether any variant is available for sale.
func (p *Product) InStock() bool {
	for _, v := range p.Variants {
		if v.AvailableForSale {
			return true
		}
	}
	return false
}
