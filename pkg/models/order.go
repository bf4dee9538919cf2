package models

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Order lifecycle statuses.
const (
	OrderStatusDepart    = "depart"
	OrderStatusShipped   = "shipped"
	OrderStatusDelivered = "delivered"
)

// Payment statuses. An order starts pending, becomes paid exactly once on
// successful verification, or abandoned when the reconciler gives up on it.
const (
	PaymentStatusPending   = "pending"
	PaymentStatusPaid      = "paid"
	PaymentStatusAbandoned = "abandoned"
)

// OrderItem is the immutable snapshot of a cart line taken at checkout.
type OrderItem struct {
	ID    string  `json:"id" bson:"id"`
	Title string  `json:"title" bson:"title"`
	Price float64 `json:"price" bson:"price"`
	Qty   int     `json:"qty" bson:"qty"`
	Image string  `json:"image" bson:"image,omitempty"`
}

// Order represents a customer order. Created at checkout initiation with
// status depart and payment pending; payment verification is its only
// mutation. Orders are never deleted.
type Order struct {
	ID                bson.ObjectID `json:"id" bson:"_id,omitempty"`
	User              string        `json:"user" bson:"user"` // external auth uid
	SessionID         string        `json:"session_id,omitempty" bson:"session_id,omitempty"`
	Items             []OrderItem   `json:"items" bson:"items"`
	Total             float64       `json:"total" bson:"total"`
	Address           string        `json:"address" bson:"address"`
	Status            string        `json:"status" bson:"status"`
	PaymentStatus     string        `json:"payment_status" bson:"payment_status"`
	RazorpayOrderID   string        `json:"razorpay_order_id" bson:"razorpay_order_id"`
	RazorpayPaymentID string        `json:"razorpay_payment_id,omitempty" bson:"razorpay_payment_id,omitempty"`
	CreatedAt         time.Time     `json:"created_at" bson:"created_at"`
	UpdatedAt         time.Time     `json:"updated_at" bson:"updated_at"`
}

// SetTimestamps sets created_at on first call and always updates updated_at
func (o *Order) SetTimestamps() {
	now := time.Now()
	if o.CreatedAt.IsZero() {
		o.CreatedAt = now
	}
	o.UpdatedAt = now
}

func (o *Order) IsPaid() bool {
	return o.PaymentStatus == PaymentStatusPaid
}

// ItemsFromCart snapshots cart lines into order items.
func ItemsFromCart(cart *Cart) []OrderItem {
	items := make([]OrderItem, 0, len(cart.Items))
	for _, line := range cart.Items {
		items = append(items, OrderItem{
			ID:    line.ID,
			Title: line.Title,
			Price: line.Price,
			Qty:   line.Quantity,
			Image: line.Image,
		})
	}
	return items
}

type CreateOrderRequest struct {
	User           string      `json:"user" binding:"required"`
	Items          []OrderItem `json:"items" binding:"required,min=1"`
	Total          float64     `json:"total" binding:"required,gt=0"`
	Address        string      `json:"address" binding:"required"`
	GatewayOrderID string      `json:"gatewayOrderId"`
}
