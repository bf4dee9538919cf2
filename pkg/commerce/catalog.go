package commerce

import (
	"context"
	"errors"
	"log"
	"os"

	"github.com/pashm-co/storefront-api/pkg/models"
)

// ErrProductNotFound is returned when no product exists for a handle.
var ErrProductNotFound = errors.New("product not found")

// Catalog is the read side of the commerce backend. Two implementations
// exist: the Shopify Storefront GraphQL API and the Medusa store REST API.
// Both map their payloads into models.Product before returning.
type Catalog interface {
	GetProducts(ctx context.Context, filter string) ([]models.Product, error)
	GetProduct(ctx context.Context, handle string) (*models.Product, error)
}

// NewCatalog picks Shopify when it is configured and falls back to Medusa
// otherwise, mirroring how the storefront decides between its two backends.
func NewCatalog() Catalog {
	if os.Getenv("SHOPIFY_STORE_DOMAIN") != "" && os.Getenv("SHOPIFY_STOREFRONT_ACCESS_TOKEN") != "" {
		log.Println("catalog backend: shopify storefront")
		return NewShopifyClient()
	}
	log.Println("catalog backend: medusa store")
	return NewMedusaClient()
}
