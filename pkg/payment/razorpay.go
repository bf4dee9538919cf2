package payment

import (
	"context"
	"fmt"
	"math"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"

	"github.com/pashm-co/storefront-api/pkg/global"
)

// GatewayOrder is a pre-authorization record created with Razorpay before the
// customer completes payment. Amount is in minor currency units (paise).
type GatewayOrder struct {
	ID       string `json:"id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Receipt  string `json:"receipt"`
	Status   string `json:"status"`
}

// GatewayPayment is a payment attempt recorded against a gateway order.
type GatewayPayment struct {
	ID       string `json:"id"`
	OrderID  string `json:"order_id"`
	Amount   int64  `json:"amount"`
	Status   string `json:"status"` // created, authorized, captured, failed
	Method   string `json:"method"`
	Captured bool   `json:"captured"`
}

type paymentCollection struct {
	Count int              `json:"count"`
	Items []GatewayPayment `json:"items"`
}

// Client talks to the Razorpay Orders REST API with basic auth.
type Client struct {
	http      *resty.Client
	keyID     string
	keySecret string
}

func NewClient() *Client {
	return NewClientWith(
		global.GetEnvOrDefault("RAZORPAY_BASE_URL", "https://api.razorpay.com"),
		global.GetEnvOrDefault("RAZORPAY_KEY_ID", ""),
		global.GetEnvOrDefault("RAZORPAY_KEY_SECRET", ""),
	)
}

func NewClientWith(baseURL, keyID, keySecret string) *Client {
	return &Client{
		http:      resty.New().SetBaseURL(baseURL),
		keyID:     keyID,
		keySecret: keySecret,
	}
}

// KeyID is the public key the checkout widget needs to open.
func (c *Client) KeyID() string {
	return c.keyID
}

// KeySecret is the server-held secret used for signature verification.
func (c *Client) KeySecret() string {
	return c.keySecret
}

// CreateOrder creates a gateway order for the given amount in major currency
// units; the gateway receives it multiplied into minor units.
func (c *Client) CreateOrder(ctx context.Context, amount float64, currency string) (*GatewayOrder, error) {
	body := map[string]interface{}{
		"amount":   int64(math.Round(amount * 100)),
		"currency": currency,
		"receipt":  "receipt_" + uuid.NewString(),
	}

	var order GatewayOrder
	resp, err := c.http.R().
		SetContext(ctx).
		SetBasicAuth(c.keyID, c.keySecret).
		SetHeader("Content-Type", "application/json").
		SetBody(body).
		SetResult(&order).
		Post("/v1/orders")
	if err != nil {
		return nil, fmt.Errorf("razorpay order create failed: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("razorpay order create failed with status %d: %s", resp.StatusCode(), resp.String())
	}
	if order.ID == "" {
		return nil, fmt.Errorf("razorpay order create returned no order id")
	}
	return &order, nil
}

// OrderPayments lists the payment attempts made against a gateway order. Used
// by the reconciler to detect payments whose verify callback never arrived.
func (c *Client) OrderPayments(ctx context.Context, orderID string) ([]GatewayPayment, error) {
	var payments paymentCollection
	resp, err := c.http.R().
		SetContext(ctx).
		SetBasicAuth(c.keyID, c.keySecret).
		SetResult(&payments).
		Get("/v1/orders/" + orderID + "/payments")
	if err != nil {
		return nil, fmt.Errorf("razorpay payments fetch failed: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("razorpay payments fetch failed with status %d: %s", resp.StatusCode(), resp.String())
	}
	return payments.Items, nil
}
