package commerce

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-resty/resty/v2"

	"github.com/pashm-co/storefront-api/pkg/global"
	"github.com/pashm-co/storefront-api/pkg/models"
)

const shopifyAPIVersion = "2024-01"

const productFragment = `
fragment ProductFragment on Product {
  id
  handle
  availableForSale
  title
  description
  priceRange {
    minVariantPrice {
      amount
      currencyCode
    }
  }
  variants(first: 250) {
    edges {
      node {
        id
        title
        availableForSale
        price {
          amount
          currencyCode
        }
      }
    }
  }
  featuredImage {
    url
  }
  images(first: 20) {
    edges {
      node {
        url
      }
    }
  }
  tags
}
`

const getProductsQuery = `
query getProducts($query: String) {
  products(query: $query, first: 100) {
    edges {
      node {
        ...ProductFragment
      }
    }
  }
}
` + productFragment

const getProductQuery = `
query getProduct($handle: String!) {
  product(handle: $handle) {
    ...ProductFragment
  }
}
` + productFragment

const getCollectionQuery = `
query getCollection($handle: String!) {
  collection(handle: $handle) {
    id
    handle
    title
    products(first: 100, sortKey: CREATED, reverse: true) {
      edges {
        node {
          ...ProductFragment
        }
      }
    }
  }
}
` + productFragment

const cartFragment = `
fragment CartFragment on Cart {
  id
  checkoutUrl
  totalQuantity
  lines(first: 100) {
    edges {
      node {
        id
        quantity
        merchandise {
          ... on ProductVariant {
            id
            title
            price {
              amount
              currencyCode
            }
            product {
              title
              handle
              featuredImage {
                url
              }
            }
          }
        }
      }
    }
  }
  cost {
    subtotalAmount {
      amount
      currencyCode
    }
    totalAmount {
      amount
      currencyCode
    }
  }
}
`

const createCartMutation = `
mutation cartCreate($lineItems: [CartLineInput!]) {
  cartCreate(input: { lines: $lineItems }) {
    cart {
      ...CartFragment
    }
  }
}
` + cartFragment

const addToCartMutation = `
mutation cartLinesAdd($cartId: ID!, $lines: [CartLineInput!]!) {
  cartLinesAdd(cartId: $cartId, lines: $lines) {
    cart {
      ...CartFragment
    }
  }
}
` + cartFragment

// Wire shapes of the Storefront GraphQL API. These stay private to this
// package; everything outgoing is mapped into models types.

type shopifyConnection[T any] struct {
	Edges []shopifyEdge[T] `json:"edges"`
}

type shopifyEdge[T any] struct {
	Node T `json:"node"`
}

type shopifyMoney struct {
	Amount       string `json:"amount"`
	CurrencyCode string `json:"currencyCode"`
}

type shopifyImage struct {
	URL string `json:"url"`
}

type shopifyVariant struct {
	ID               string       `json:"id"`
	Title            string       `json:"title"`
	AvailableForSale bool         `json:"availableForSale"`
	Price            shopifyMoney `json:"price"`
}

type shopifyProduct struct {
	ID               string                            `json:"id"`
	Handle           string                            `json:"handle"`
	AvailableForSale bool                              `json:"availableForSale"`
	Title            string                            `json:"title"`
	Description      string                            `json:"description"`
	PriceRange       struct {
		MinVariantPrice shopifyMoney `json:"minVariantPrice"`
	} `json:"priceRange"`
	Variants      shopifyConnection[shopifyVariant] `json:"variants"`
	FeaturedImage *shopifyImage                     `json:"featuredImage"`
	Images        shopifyConnection[shopifyImage]   `json:"images"`
	Tags          []string                          `json:"tags"`
}

type shopifyCartLine struct {
	ID          string `json:"id"`
	Quantity    int    `json:"quantity"`
	Merchandise struct {
		ID      string       `json:"id"`
		Title   string       `json:"title"`
		Price   shopifyMoney `json:"price"`
		Product struct {
			Title         string        `json:"title"`
			Handle        string        `json:"handle"`
			FeaturedImage *shopifyImage `json:"featuredImage"`
		} `json:"product"`
	} `json:"merchandise"`
}

type shopifyCart struct {
	ID            string                             `json:"id"`
	CheckoutURL   string                             `json:"checkoutUrl"`
	TotalQuantity int                                `json:"totalQuantity"`
	Lines         shopifyConnection[shopifyCartLine] `json:"lines"`
	Cost          struct {
		SubtotalAmount shopifyMoney `json:"subtotalAmount"`
		TotalAmount    shopifyMoney `json:"totalAmount"`
	} `json:"cost"`
}

type graphQLError struct {
	Message string `json:"message"`
}

type graphQLResponse[T any] struct {
	Data   T              `json:"data"`
	Errors []graphQLError `json:"errors"`
}

// CartLineInput references a merchandise (variant) id and a quantity, the
// shape the Storefront cart mutations expect.
type CartLineInput struct {
	MerchandiseID string `json:"merchandiseId"`
	Quantity      int    `json:"quantity"`
}

// ShopifyClient consumes the Shopify Storefront GraphQL API.
type ShopifyClient struct {
	http  *resty.Client
	token string
}

func NewShopifyClient() *ShopifyClient {
	domain := strings.TrimPrefix(strings.TrimPrefix(
		global.GetEnvOrDefault("SHOPIFY_STORE_DOMAIN", ""), "https://"), "http://")
	return NewShopifyClientWith(
		fmt.Sprintf("https://%s/api/%s/graphql.json", domain, shopifyAPIVersion),
		global.GetEnvOrDefault("SHOPIFY_STOREFRONT_ACCESS_TOKEN", ""),
	)
}

func NewShopifyClientWith(endpoint, token string) *ShopifyClient {
	return &ShopifyClient{
		http:  resty.New().SetBaseURL(endpoint),
		token: token,
	}
}

func shopifyFetch[T any](ctx context.Context, c *ShopifyClient, query string, variables map[string]interface{}) (*T, error) {
	var result graphQLResponse[T]
	resp, err := c.http.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetHeader("X-Shopify-Storefront-Access-Token", c.token).
		SetBody(map[string]interface{}{
			"query":     query,
			"variables": variables,
		}).
		SetResult(&result).
		Post("")
	if err != nil {
		return nil, fmt.Errorf("shopify request failed: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("shopify request failed with status %d: %s", resp.StatusCode(), resp.String())
	}
	if len(result.Errors) > 0 {
		return nil, fmt.Errorf("shopify api error: %s", result.Errors[0].Message)
	}
	return &result.Data, nil
}

func (c *ShopifyClient) GetProducts(ctx context.Context, filter string) ([]models.Product, error) {
	variables := map[string]interface{}{}
	if filter != "" {
		variables["query"] = filter
	}
	data, err := shopifyFetch[struct {
		Products shopifyConnection[shopifyProduct] `json:"products"`
	}](ctx, c, getProductsQuery, variables)
	if err != nil {
		return nil, err
	}

	products := make([]models.Product, 0, len(data.Products.Edges))
	for _, edge := range data.Products.Edges {
		products = append(products, mapShopifyProduct(edge.Node))
	}
	return products, nil
}

func (c *ShopifyClient) GetProduct(ctx context.Context, handle string) (*models.Product, error) {
	data, err := shopifyFetch[struct {
		Product *shopifyProduct `json:"product"`
	}](ctx, c, getProductQuery, map[string]interface{}{"handle": handle})
	if err != nil {
		return nil, err
	}
	if data.Product == nil {
		return nil, ErrProductNotFound
	}
	product := mapShopifyProduct(*data.Product)
	return &product, nil
}

// GetCollection returns the products of a named collection, newest first.
func (c *ShopifyClient) GetCollection(ctx context.Context, handle string) ([]models.Product, error) {
	data, err := shopifyFetch[struct {
		Collection *struct {
			Products shopifyConnection[shopifyProduct] `json:"products"`
		} `json:"collection"`
	}](ctx, c, getCollectionQuery, map[string]interface{}{"handle": handle})
	if err != nil {
		return nil, err
	}
	if data.Collection == nil {
		return nil, ErrProductNotFound
	}

	products := make([]models.Product, 0, len(data.Collection.Products.Edges))
	for _, edge := range data.Collection.Products.Edges {
		products = append(products, mapShopifyProduct(edge.Node))
	}
	return products, nil
}

// CreateCart creates a Storefront-side cart, optionally pre-seeded with lines.
func (c *ShopifyClient) CreateCart(ctx context.Context, lines []CartLineInput) (*StorefrontCart, error) {
	data, err := shopifyFetch[struct {
		CartCreate struct {
			Cart *shopifyCart `json:"cart"`
		} `json:"cartCreate"`
	}](ctx, c, createCartMutation, map[string]interface{}{"lineItems": lines})
	if err != nil {
		return nil, err
	}
	if data.CartCreate.Cart == nil {
		return nil, fmt.Errorf("shopify cartCreate returned no cart")
	}
	cart := mapShopifyCart(*data.CartCreate.Cart)
	return &cart, nil
}

// AddToCart adds lines to an existing Storefront-side cart.
func (c *ShopifyClient) AddToCart(ctx context.Context, cartID string, lines []CartLineInput) (*StorefrontCart, error) {
	data, err := shopifyFetch[struct {
		CartLinesAdd struct {
			Cart *shopifyCart `json:"cart"`
		} `json:"cartLinesAdd"`
	}](ctx, c, addToCartMutation, map[string]interface{}{"cartId": cartID, "lines": lines})
	if err != nil {
		return nil, err
	}
	if data.CartLinesAdd.Cart == nil {
		return nil, fmt.Errorf("shopify cartLinesAdd returned no cart")
	}
	cart := mapShopifyCart(*data.CartLinesAdd.Cart)
	return &cart, nil
}
