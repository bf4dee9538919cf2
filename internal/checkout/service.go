package checkout

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/pashm-co/storefront-api/pkg/models"
	"github.com/pashm-co/storefront-api/pkg/payment"
)

var (
	ErrEmptyCart         = errors.New("cart is empty")
	ErrAddressTooShort   = errors.New("delivery address is too short")
	ErrSignatureMismatch = errors.New("payment signature mismatch")
)

const (
	minAddressLength = 10
	defaultCurrency  = "INR"
)

// Gateway is the payment processor surface checkout depends on.
type Gateway interface {
	CreateOrder(ctx context.Context, amount float64, currency string) (*payment.GatewayOrder, error)
	OrderPayments(ctx context.Context, orderID string) ([]payment.GatewayPayment, error)
	KeyID() string
}

// OrderStore persists and mutates order records.
type OrderStore interface {
	CreateOrder(ctx context.Context, order *models.Order) (*models.Order, error)
	MarkOrderPaid(ctx context.Context, gatewayOrderID, paymentID string) (*models.Order, error)
}

// CartStore reads and clears session carts.
type CartStore interface {
	GetCart(ctx context.Context, sessionID string) (*models.Cart, error)
	ClearCart(ctx context.Context, sessionID string) error
}

// SyncQueue receives verified orders for replication into the secondary
// commerce backend.
type SyncQueue interface {
	EnqueueOrder(ctx context.Context, order *models.Order) error
}

// Service sequences checkout: validate, create the gateway order, persist
// the local order record, and later verify the payment signature.
type Service struct {
	gateway Gateway
	orders  OrderStore
	carts   CartStore
	sync    SyncQueue
	secret  string
}

func NewService(gateway Gateway, orders OrderStore, carts CartStore, sync SyncQueue, secret string) *Service {
	return &Service{
		gateway: gateway,
		orders:  orders,
		carts:   carts,
		sync:    sync,
		secret:  secret,
	}
}

// BeginResult is what the payment widget needs to open. Amount is in minor
// currency units as the gateway reports it.
type BeginResult struct {
	OrderID        string `json:"order_id"`
	GatewayOrderID string `json:"gateway_order_id"`
	Amount         int64  `json:"amount"`
	Currency       string `json:"currency"`
	KeyID          string `json:"key_id"`
}

// Begin validates the session cart and address, creates a gateway order for
// the cart total, and persists the pending order record. The persist is
// blocking: a gateway order is never left without a local record to
// reconcile against.
func (s *Service) Begin(ctx context.Context, uid, sessionID, address string) (*BeginResult, error) {
	cart, err := s.carts.GetCart(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("loading cart: %w", err)
	}
	if len(cart.Items) == 0 {
		return nil, ErrEmptyCart
	}
	if len(strings.TrimSpace(address)) < minAddressLength {
		return nil, ErrAddressTooShort
	}

	total := cart.Total()

	gatewayOrder, err := s.gateway.CreateOrder(ctx, total, defaultCurrency)
	if err != nil {
		return nil, fmt.Errorf("creating gateway order: %w", err)
	}

	order := &models.Order{
		User:            uid,
		SessionID:       sessionID,
		Items:           models.ItemsFromCart(cart),
		Total:           total,
		Address:         address,
		Status:          models.OrderStatusDepart,
		PaymentStatus:   models.PaymentStatusPending,
		RazorpayOrderID: gatewayOrder.ID,
	}
	persisted, err := s.orders.CreateOrder(ctx, order)
	if err != nil {
		return nil, fmt.Errorf("persisting order record: %w", err)
	}

	return &BeginResult{
		OrderID:        persisted.ID.Hex(),
		GatewayOrderID: gatewayOrder.ID,
		Amount:         gatewayOrder.Amount,
		Currency:       gatewayOrder.Currency,
		KeyID:          s.gateway.KeyID(),
	}, nil
}

// Verify recomputes the payment signature server-side and, on a match, marks
// the order paid, clears the session cart, and queues the order for
// replication. A mismatch leaves the order pending.
func (s *Service) Verify(ctx context.Context, gatewayOrderID, paymentID, signature string) (*models.Order, error) {
	if !payment.VerifySignature(gatewayOrderID, paymentID, signature, s.secret) {
		return nil, ErrSignatureMismatch
	}

	order, err := s.orders.MarkOrderPaid(ctx, gatewayOrderID, paymentID)
	if err != nil {
		return nil, fmt.Errorf("marking order paid: %w", err)
	}

	// Post-verify effects are best-effort: the payment is already verified,
	// so failures here must not surface as a failed checkout.
	if order.SessionID != "" {
		if err := s.carts.ClearCart(ctx, order.SessionID); err != nil {
			log.Printf("Warning: failed to clear cart for session %s: %v", order.SessionID, err)
		}
	}
	if err := s.sync.EnqueueOrder(ctx, order); err != nil {
		log.Printf("ERROR: failed to enqueue order %s for backend sync: %v", order.ID.Hex(), err)
	}

	return order, nil
}
