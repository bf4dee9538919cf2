package commerce

import (
	"strconv"
	"strings"

	"github.com/pashm-co/storefront-api/pkg/models"
)

const placeholderImage = "/assets/products/placeholder.png"

// StorefrontCartLine is one line of a Storefront-side (Shopify) cart.
type StorefrontCartLine struct {
	ID            string  `json:"id"`
	Quantity      int     `json:"quantity"`
	MerchandiseID string  `json:"merchandise_id"`
	Title         string  `json:"title"`
	Slug          string  `json:"slug"`
	Price         float64 `json:"price"`
	Image         string  `json:"image"`
}

// StorefrontCart is the commerce platform's own cart representation, distinct
// from the local session cart. The session cart remains the source of truth;
// this one exists so checkout can hand Shopify a cart it recognizes.
type StorefrontCart struct {
	ID            string               `json:"id"`
	CheckoutURL   string               `json:"checkout_url"`
	TotalQuantity int                  `json:"total_quantity"`
	Lines         []StorefrontCartLine `json:"lines"`
	Subtotal      float64              `json:"subtotal"`
	Total         float64              `json:"total"`
}

func parseAmount(s string) float64 {
	amount, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0
	}
	return amount
}

func mapShopifyProduct(p shopifyProduct) models.Product {
	variants := make([]models.Variant, 0, len(p.Variants.Edges))
	for _, edge := range p.Variants.Edges {
		v := edge.Node
		variants = append(variants, models.Variant{
			ID:               v.ID,
			Title:            v.Title,
			Price:            parseAmount(v.Price.Amount),
			Currency:         v.Price.CurrencyCode,
			AvailableForSale: v.AvailableForSale,
		})
	}

	images := make([]string, 0, len(p.Images.Edges))
	for _, edge := range p.Images.Edges {
		images = append(images, edge.Node.URL)
	}

	image := placeholderImage
	if p.FeaturedImage != nil && p.FeaturedImage.URL != "" {
		image = p.FeaturedImage.URL
	} else if len(images) > 0 {
		image = images[0]
	}
	if len(images) == 0 {
		images = []string{image}
	}

	return models.Product{
		ID:          p.ID,
		Slug:        p.Handle,
		Title:       p.Title,
		Description: p.Description,
		Price:       parseAmount(p.PriceRange.MinVariantPrice.Amount),
		Currency:    p.PriceRange.MinVariantPrice.CurrencyCode,
		Image:       image,
		Images:      images,
		Rating:      5,
		Tags:        p.Tags,
		Variants:    variants,
	}
}

// medusaVariantPrice prefers the calculated price and falls back to the raw
// prices array, picking INR when present.
func medusaVariantPrice(v medusaVariant) (amount float64, currency string) {
	if v.CalculatedPrice != nil && v.CalculatedPrice.CalculatedAmount > 0 {
		return v.CalculatedPrice.CalculatedAmount, strings.ToUpper(v.CalculatedPrice.CurrencyCode)
	}
	for _, p := range v.Prices {
		if strings.EqualFold(p.CurrencyCode, "inr") {
			return p.Amount, "INR"
		}
	}
	if len(v.Prices) > 0 {
		return v.Prices[0].Amount, strings.ToUpper(v.Prices[0].CurrencyCode)
	}
	return 0, "INR"
}

func mapMedusaProduct(p medusaProduct) models.Product {
	variants := make([]models.Variant, 0, len(p.Variants))
	for _, v := range p.Variants {
		amount, currency := medusaVariantPrice(v)
		inventory := 0
		if v.InventoryQuantity != nil {
			inventory = *v.InventoryQuantity
		}
		variants = append(variants, models.Variant{
			ID:                v.ID,
			Title:             v.Title,
			Price:             amount,
			Currency:          currency,
			InventoryQuantity: inventory,
			AvailableForSale:  v.InventoryQuantity == nil || inventory > 0,
		})
	}

	price := 0.0
	currency := "INR"
	if len(variants) > 0 {
		price = variants[0].Price
		currency = variants[0].Currency
	}

	images := make([]string, 0, len(p.Images))
	for _, img := range p.Images {
		images = append(images, img.URL)
	}
	image := p.Thumbnail
	if image == "" {
		if len(images) > 0 {
			image = images[0]
		} else {
			image = placeholderImage
		}
	}
	if len(images) == 0 {
		images = []string{image}
	}

	rating := 5.0
	reviewsCount := 0
	if p.Metadata != nil {
		if r, ok := p.Metadata["rating"].(float64); ok {
			rating = r
		}
		if n, ok := p.Metadata["reviews"].(float64); ok {
			reviewsCount = int(n)
		}
	}

	slug := p.Handle
	if slug == "" {
		slug = p.ID
	}

	return models.Product{
		ID:           p.ID,
		Slug:         slug,
		Title:        p.Title,
		Description:  p.Description,
		Price:        price,
		Currency:     currency,
		Image:        image,
		Images:       images,
		Rating:       rating,
		ReviewsCount: reviewsCount,
		Variants:     variants,
	}
}

func mapShopifyCart(c shopifyCart) StorefrontCart {
	lines := make([]StorefrontCartLine, 0, len(c.Lines.Edges))
	for _, edge := range c.Lines.Edges {
		l := edge.Node
		image := ""
		if l.Merchandise.Product.FeaturedImage != nil {
			image = l.Merchandise.Product.FeaturedImage.URL
		}
		lines = append(lines, StorefrontCartLine{
			ID:            l.ID,
			Quantity:      l.Quantity,
			MerchandiseID: l.Merchandise.ID,
			Title:         l.Merchandise.Product.Title,
			Slug:          l.Merchandise.Product.Handle,
			Price:         parseAmount(l.Merchandise.Price.Amount),
			Image:         image,
		})
	}

	return StorefrontCart{
		ID:            c.ID,
		CheckoutURL:   c.CheckoutURL,
		TotalQuantity: c.TotalQuantity,
		Lines:         lines,
		Subtotal:      parseAmount(c.Cost.SubtotalAmount.Amount),
		Total:         parseAmount(c.Cost.TotalAmount.Amount),
	}
}
