package commerce

import (
	"context"
	"fmt"

	"github.com/go-resty/resty/v2"

	"github.com/pashm-co/storefront-api/pkg/global"
	"github.com/pashm-co/storefront-api/pkg/models"
)

// Wire shapes of the Medusa store API, private to this package.

type medusaPrice struct {
	Amount       float64 `json:"amount"`
	CurrencyCode string  `json:"currency_code"`
}

type medusaCalculatedPrice struct {
	CalculatedAmount float64 `json:"calculated_amount"`
	CurrencyCode     string  `json:"currency_code"`
}

type medusaVariant struct {
	ID                string                 `json:"id"`
	Title             string                 `json:"title"`
	InventoryQuantity *int                   `json:"inventory_quantity"`
	CalculatedPrice   *medusaCalculatedPrice `json:"calculated_price"`
	Prices            []medusaPrice          `json:"prices"`
}

type medusaImage struct {
	URL string `json:"url"`
}

type medusaProduct struct {
	ID          string                 `json:"id"`
	Handle      string                 `json:"handle"`
	Title       string                 `json:"title"`
	Subtitle    string                 `json:"subtitle"`
	Description string                 `json:"description"`
	Thumbnail   string                 `json:"thumbnail"`
	Images      []medusaImage          `json:"images"`
	Variants    []medusaVariant        `json:"variants"`
	Metadata    map[string]interface{} `json:"metadata"`
}

type medusaProductList struct {
	Products []medusaProduct `json:"products"`
	Count    int             `json:"count"`
}

// DraftOrderItem is a line of an order being replicated into Medusa.
type DraftOrderItem struct {
	VariantID string  `json:"variant_id,omitempty"`
	Title     string  `json:"title,omitempty"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unit_price"`
}

// DraftOrderInput is the payload for replicating a verified storefront order
// into the Medusa backend as a completed draft order.
type DraftOrderInput struct {
	Email   string
	Items   []DraftOrderItem
	Total   float64
	Address string
}

// MedusaClient consumes the Medusa store REST API, and the admin API for
// draft order replication.
type MedusaClient struct {
	http           *resty.Client
	publishableKey string
	adminToken     string
	regionID       string
}

func NewMedusaClient() *MedusaClient {
	return NewMedusaClientWith(
		global.GetEnvOrDefault("MEDUSA_BACKEND_URL", "http://localhost:9000"),
		global.GetEnvOrDefault("MEDUSA_PUBLISHABLE_KEY", ""),
		global.GetEnvOrDefault("MEDUSA_ADMIN_TOKEN", ""),
		global.GetEnvOrDefault("MEDUSA_REGION_ID", ""),
	)
}

func NewMedusaClientWith(baseURL, publishableKey, adminToken, regionID string) *MedusaClient {
	return &MedusaClient{
		http:           resty.New().SetBaseURL(baseURL),
		publishableKey: publishableKey,
		adminToken:     adminToken,
		regionID:       regionID,
	}
}

func (c *MedusaClient) GetProducts(ctx context.Context, filter string) ([]models.Product, error) {
	req := c.http.R().
		SetContext(ctx).
		SetHeader("x-publishable-api-key", c.publishableKey).
		SetQueryParam("limit", "100").
		SetQueryParam("fields", "*variants.calculated_price,*variants.prices")
	if filter != "" {
		req.SetQueryParam("q", filter)
	}

	var list medusaProductList
	resp, err := req.SetResult(&list).Get("/store/products")
	if err != nil {
		return nil, fmt.Errorf("medusa products fetch failed: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("medusa products fetch failed with status %d: %s", resp.StatusCode(), resp.String())
	}

	products := make([]models.Product, 0, len(list.Products))
	for _, p := range list.Products {
		products = append(products, mapMedusaProduct(p))
	}
	return products, nil
}

func (c *MedusaClient) GetProduct(ctx context.Context, handle string) (*models.Product, error) {
	var list medusaProductList
	resp, err := c.http.R().
		SetContext(ctx).
		SetHeader("x-publishable-api-key", c.publishableKey).
		SetQueryParam("handle", handle).
		SetQueryParam("limit", "1").
		SetQueryParam("fields", "*variants.calculated_price,*variants.prices").
		SetResult(&list).
		Get("/store/products")
	if err != nil {
		return nil, fmt.Errorf("medusa product fetch failed: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("medusa product fetch failed with status %d: %s", resp.StatusCode(), resp.String())
	}
	if len(list.Products) == 0 {
		return nil, ErrProductNotFound
	}
	product := mapMedusaProduct(list.Products[0])
	return &product, nil
}

// CreateDraftOrder replicates a verified order into Medusa as a completed
// draft order via the admin API. The sync worker retries on failure.
func (c *MedusaClient) CreateDraftOrder(ctx context.Context, input DraftOrderInput) error {
	items := make([]map[string]interface{}, 0, len(input.Items))
	for _, item := range input.Items {
		line := map[string]interface{}{
			"quantity":   item.Quantity,
			"unit_price": item.UnitPrice,
		}
		if item.VariantID != "" {
			line["variant_id"] = item.VariantID
		} else {
			line["title"] = item.Title
		}
		items = append(items, line)
	}

	body := map[string]interface{}{
		"email":                 input.Email,
		"region_id":             c.regionID,
		"items":                 items,
		"status":                "completed",
		"no_notification_order": true,
		"shipping_address": map[string]interface{}{
			"address_1":    input.Address,
			"country_code": "in",
		},
	}

	resp, err := c.http.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetHeader("x-medusa-access-token", c.adminToken).
		SetBody(body).
		Post("/admin/draft-orders")
	if err != nil {
		return fmt.Errorf("medusa draft order create failed: %w", err)
	}
	if resp.IsError() {
		return fmt.Errorf("medusa draft order create failed with status %d: %s", resp.StatusCode(), resp.String())
	}
	return nil
}
