package checkout

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/pashm-co/storefront-api/pkg/models"
	"github.com/pashm-co/storefront-api/pkg/payment"
)

type fakeGateway struct {
	createErr    error
	createCalls  int
	lastAmount   float64
	payments     []payment.GatewayPayment
	paymentsErr  error
	paymentCalls int
}

func (g *fakeGateway) CreateOrder(ctx context.Context, amount float64, currency string) (*payment.GatewayOrder, error) {
	g.createCalls++
	g.lastAmount = amount
	if g.createErr != nil {
		return nil, g.createErr
	}
	return &payment.GatewayOrder{
		ID:       "order_gw1",
		Amount:   int64(amount * 100),
		Currency: currency,
		Status:   "created",
	}, nil
}

func (g *fakeGateway) OrderPayments(ctx context.Context, orderID string) ([]payment.GatewayPayment, error) {
	g.paymentCalls++
	return g.payments, g.paymentsErr
}

func (g *fakeGateway) KeyID() string { return "rzp_test_key" }

type fakeOrderStore struct {
	createErr   error
	created     []*models.Order
	paidErr     error
	paid        *models.Order
	paidCalls   int
	abandoned   []string
	abandonErr  error
	stale       []models.Order
	staleErr    error
	lastPayment string
}

func (s *fakeOrderStore) CreateOrder(ctx context.Context, order *models.Order) (*models.Order, error) {
	if s.createErr != nil {
		return nil, s.createErr
	}
	order.ID = bson.NewObjectID()
	s.created = append(s.created, order)
	return order, nil
}

func (s *fakeOrderStore) MarkOrderPaid(ctx context.Context, gatewayOrderID, paymentID string) (*models.Order, error) {
	s.paidCalls++
	s.lastPayment = paymentID
	if s.paidErr != nil {
		return nil, s.paidErr
	}
	return s.paid, nil
}

func (s *fakeOrderStore) MarkOrderAbandoned(ctx context.Context, gatewayOrderID string) error {
	if s.abandonErr != nil {
		return s.abandonErr
	}
	s.abandoned = append(s.abandoned, gatewayOrderID)
	return nil
}

func (s *fakeOrderStore) FindStalePendingOrders(ctx context.Context, olderThan time.Time) ([]models.Order, error) {
	return s.stale, s.staleErr
}

type fakeCartStore struct {
	cart       *models.Cart
	getErr     error
	clearErr   error
	cleared    []string
	clearCalls int
}

func (s *fakeCartStore) GetCart(ctx context.Context, sessionID string) (*models.Cart, error) {
	if s.getErr != nil {
		return nil, s.getErr
	}
	return s.cart, nil
}

func (s *fakeCartStore) ClearCart(ctx context.Context, sessionID string) error {
	s.clearCalls++
	if s.clearErr != nil {
		return s.clearErr
	}
	s.cleared = append(s.cleared, sessionID)
	return nil
}

type fakeSyncQueue struct {
	enqueued   []*models.Order
	enqueueErr error
}

func (q *fakeSyncQueue) EnqueueOrder(ctx context.Context, order *models.Order) error {
	if q.enqueueErr != nil {
		return q.enqueueErr
	}
	q.enqueued = append(q.enqueued, order)
	return nil
}

const testSecret = "shh"

func filledCart() *models.Cart {
	return &models.Cart{
		SessionID: "sess_1",
		Items: []models.CartItem{
			{ID: "p1", Title: "Pashmina Stole", Price: 1000, Quantity: 1},
		},
	}
}

func TestBeginEmptyCart(t *testing.T) {
	gateway := &fakeGateway{}
	svc := NewService(gateway, &fakeOrderStore{}, &fakeCartStore{cart: &models.Cart{SessionID: "sess_1"}}, &fakeSyncQueue{}, testSecret)

	_, err := svc.Begin(context.Background(), "uid_1", "sess_1", "12 Lake Road, Srinagar")

	assert.ErrorIs(t, err, ErrEmptyCart)
	assert.Zero(t, gateway.createCalls)
}

func TestBeginAddressTooShort(t *testing.T) {
	gateway := &fakeGateway{}
	svc := NewService(gateway, &fakeOrderStore{}, &fakeCartStore{cart: filledCart()}, &fakeSyncQueue{}, testSecret)

	_, err := svc.Begin(context.Background(), "uid_1", "sess_1", "  short  ")

	assert.ErrorIs(t, err, ErrAddressTooShort)
	assert.Zero(t, gateway.createCalls)
}

func TestBeginGatewayFailureSkipsPersist(t *testing.T) {
	gateway := &fakeGateway{createErr: errors.New("gateway down")}
	orders := &fakeOrderStore{}
	svc := NewService(gateway, orders, &fakeCartStore{cart: filledCart()}, &fakeSyncQueue{}, testSecret)

	_, err := svc.Begin(context.Background(), "uid_1", "sess_1", "12 Lake Road, Srinagar")

	require.Error(t, err)
	assert.Empty(t, orders.created)
}

func TestBeginPersistFailureSurfaces(t *testing.T) {
	orders := &fakeOrderStore{createErr: errors.New("mongo down")}
	svc := NewService(&fakeGateway{}, orders, &fakeCartStore{cart: filledCart()}, &fakeSyncQueue{}, testSecret)

	_, err := svc.Begin(context.Background(), "uid_1", "sess_1", "12 Lake Road, Srinagar")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "persisting order record")
}

func TestBeginHappyPath(t *testing.T) {
	gateway := &fakeGateway{}
	orders := &fakeOrderStore{}
	svc := NewService(gateway, orders, &fakeCartStore{cart: filledCart()}, &fakeSyncQueue{}, testSecret)

	result, err := svc.Begin(context.Background(), "uid_1", "sess_1", "12 Lake Road, Srinagar")

	require.NoError(t, err)
	assert.Equal(t, "order_gw1", result.GatewayOrderID)
	assert.Equal(t, "rzp_test_key", result.KeyID)
	assert.Equal(t, "INR", result.Currency)
	assert.Equal(t, 1150.0, gateway.lastAmount)

	require.Len(t, orders.created, 1)
	created := orders.created[0]
	assert.Equal(t, "uid_1", created.User)
	assert.Equal(t, models.PaymentStatusPending, created.PaymentStatus)
	assert.Equal(t, "order_gw1", created.RazorpayOrderID)
	assert.Equal(t, created.ID.Hex(), result.OrderID)
}

func TestVerifyRejectsBadSignature(t *testing.T) {
	orders := &fakeOrderStore{}
	svc := NewService(&fakeGateway{}, orders, &fakeCartStore{}, &fakeSyncQueue{}, testSecret)

	_, err := svc.Verify(context.Background(), "order_gw1", "pay_1", "deadbeef")

	assert.ErrorIs(t, err, ErrSignatureMismatch)
	assert.Zero(t, orders.paidCalls)
}

func TestVerifyMarksPaidClearsCartAndEnqueues(t *testing.T) {
	paid := &models.Order{
		ID:              bson.NewObjectID(),
		SessionID:       "sess_1",
		RazorpayOrderID: "order_gw1",
		PaymentStatus:   models.PaymentStatusPaid,
	}
	orders := &fakeOrderStore{paid: paid}
	carts := &fakeCartStore{}
	queue := &fakeSyncQueue{}
	svc := NewService(&fakeGateway{}, orders, carts, queue, testSecret)

	sig := payment.Signature("order_gw1", "pay_1", testSecret)
	got, err := svc.Verify(context.Background(), "order_gw1", "pay_1", sig)

	require.NoError(t, err)
	assert.Equal(t, paid, got)
	assert.True(t, got.IsPaid())
	assert.Equal(t, []string{"sess_1"}, carts.cleared)
	require.Len(t, queue.enqueued, 1)
	assert.Equal(t, paid, queue.enqueued[0])
}

func TestVerifySucceedsWhenPostEffectsFail(t *testing.T) {
	paid := &models.Order{
		ID:              bson.NewObjectID(),
		SessionID:       "sess_1",
		RazorpayOrderID: "order_gw1",
	}
	orders := &fakeOrderStore{paid: paid}
	carts := &fakeCartStore{clearErr: errors.New("redis down")}
	queue := &fakeSyncQueue{enqueueErr: errors.New("queue down")}
	svc := NewService(&fakeGateway{}, orders, carts, queue, testSecret)

	sig := payment.Signature("order_gw1", "pay_1", testSecret)
	got, err := svc.Verify(context.Background(), "order_gw1", "pay_1", sig)

	require.NoError(t, err)
	assert.Equal(t, paid, got)
}
