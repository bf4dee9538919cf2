package commerce

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAmount(t *testing.T) {
	assert.Equal(t, 1299.5, parseAmount("1299.50"))
	assert.Equal(t, 100.0, parseAmount(" 100 "))
	assert.Equal(t, 0.0, parseAmount("not-a-number"))
	assert.Equal(t, 0.0, parseAmount(""))
}

func TestMapShopifyProduct(t *testing.T) {
	payload := `{
		"id": "gid://shopify/Product/1",
		"handle": "pashmina-stole",
		"title": "Pashmina Stole",
		"description": "Handwoven in Kashmir",
		"priceRange": {"minVariantPrice": {"amount": "2499.00", "currencyCode": "INR"}},
		"featuredImage": {"url": "https://cdn.example.com/stole.jpg"},
		"images": {"edges": [{"node": {"url": "https://cdn.example.com/stole.jpg"}}]},
		"tags": ["wool", "stole"],
		"variants": {"edges": [{"node": {
			"id": "gid://shopify/ProductVariant/11",
			"title": "Default",
			"availableForSale": true,
			"price": {"amount": "2499.00", "currencyCode": "INR"}
		}}]}
	}`

	var wire shopifyProduct
	require.NoError(t, json.Unmarshal([]byte(payload), &wire))

	product := mapShopifyProduct(wire)

	assert.Equal(t, "pashmina-stole", product.Slug)
	assert.Equal(t, 2499.0, product.Price)
	assert.Equal(t, "INR", product.Currency)
	assert.Equal(t, "https://cdn.example.com/stole.jpg", product.Image)
	assert.Equal(t, 5.0, product.Rating)
	require.Len(t, product.Variants, 1)
	assert.True(t, product.Variants[0].AvailableForSale)
	assert.Equal(t, 2499.0, product.Variants[0].Price)
}

func TestMapShopifyProductWithoutImages(t *testing.T) {
	var wire shopifyProduct
	require.NoError(t, json.Unmarshal([]byte(`{"id": "p1", "handle": "bare"}`), &wire))

	product := mapShopifyProduct(wire)

	assert.Equal(t, placeholderImage, product.Image)
	assert.Equal(t, []string{placeholderImage}, product.Images)
}

func TestMapMedusaProductCalculatedPrice(t *testing.T) {
	payload := `{
		"id": "prod_01",
		"handle": "saffron-box",
		"title": "Saffron Box",
		"thumbnail": "https://cdn.example.com/saffron.jpg",
		"metadata": {"rating": 4.5, "reviews": 12},
		"variants": [{
			"id": "variant_01",
			"title": "1g",
			"inventory_quantity": 8,
			"calculated_price": {"calculated_amount": 999, "currency_code": "inr"}
		}]
	}`

	var wire medusaProduct
	require.NoError(t, json.Unmarshal([]byte(payload), &wire))

	product := mapMedusaProduct(wire)

	assert.Equal(t, "saffron-box", product.Slug)
	assert.Equal(t, 999.0, product.Price)
	assert.Equal(t, "INR", product.Currency)
	assert.Equal(t, 4.5, product.Rating)
	assert.Equal(t, 12, product.ReviewsCount)
	require.Len(t, product.Variants, 1)
	assert.Equal(t, 8, product.Variants[0].InventoryQuantity)
	assert.True(t, product.Variants[0].AvailableForSale)
	assert.True(t, product.InStock())
}

func TestMapMedusaProductPriceFallbacks(t *testing.T) {
	payload := `{
		"id": "prod_02",
		"variants": [{
			"id": "variant_02",
			"inventory_quantity": 0,
			"prices": [
				{"amount": 20, "currency_code": "usd"},
				{"amount": 1500, "currency_code": "inr"}
			]
		}]
	}`

	var wire medusaProduct
	require.NoError(t, json.Unmarshal([]byte(payload), &wire))

	product := mapMedusaProduct(wire)

	// INR price wins over the first listed currency.
	assert.Equal(t, 1500.0, product.Price)
	assert.Equal(t, "INR", product.Currency)
	// Handle is empty so the id doubles as the slug.
	assert.Equal(t, "prod_02", product.Slug)
	assert.Equal(t, 5.0, product.Rating)
	assert.False(t, product.Variants[0].AvailableForSale)
	assert.False(t, product.InStock())
}

func TestMapShopifyCart(t *testing.T) {
	payload := `{
		"id": "gid://shopify/Cart/c1",
		"checkoutUrl": "https://shop.example.com/checkout/c1",
		"totalQuantity": 2,
		"cost": {
			"subtotalAmount": {"amount": "4998.00", "currencyCode": "INR"},
			"totalAmount": {"amount": "4998.00", "currencyCode": "INR"}
		},
		"lines": {"edges": [{"node": {
			"id": "gid://shopify/CartLine/l1",
			"quantity": 2,
			"merchandise": {
				"id": "gid://shopify/ProductVariant/11",
				"price": {"amount": "2499.00", "currencyCode": "INR"},
				"product": {
					"title": "Pashmina Stole",
					"handle": "pashmina-stole",
					"featuredImage": {"url": "https://cdn.example.com/stole.jpg"}
				}
			}
		}}]}
	}`

	var wire shopifyCart
	require.NoError(t, json.Unmarshal([]byte(payload), &wire))

	cart := mapShopifyCart(wire)

	assert.Equal(t, "gid://shopify/Cart/c1", cart.ID)
	assert.Equal(t, 2, cart.TotalQuantity)
	assert.Equal(t, 4998.0, cart.Subtotal)
	require.Len(t, cart.Lines, 1)
	assert.Equal(t, "pashmina-stole", cart.Lines[0].Slug)
	assert.Equal(t, 2499.0, cart.Lines[0].Price)
}
