package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/pashm-co/storefront-api/pkg/models"
)

var ErrOrderNotFound = errors.New("order not found")

func CreateOrder(ctx context.Context, order *models.Order) (*models.Order, error) {
	order.SetTimestamps()
	if order.Status == "" {
		order.Status = models.OrderStatusDepart
	}
	if order.PaymentStatus == "" {
		order.PaymentStatus = models.PaymentStatusPending
	}

	result, err := GetCollection("orders").InsertOne(ctx, order)
	if err != nil {
		return nil, err
	}
	if oid, ok := result.InsertedID.(bson.ObjectID); ok {
		order.ID = oid
	}
	return order, nil
}

func GetOrdersByUser(ctx context.Context, uid string) ([]models.Order, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := GetCollection("orders").Find(ctx, bson.M{"user": uid}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	orders := []models.Order{}
	if err := cursor.All(ctx, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// MarkOrderPaid is the single mutation an order receives after creation: it
// flips payment_status to paid and records the gateway payment id.
func MarkOrderPaid(ctx context.Context, gatewayOrderID, paymentID string) (*models.Order, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	update := bson.M{"$set": bson.M{
		"payment_status":      models.PaymentStatusPaid,
		"razorpay_payment_id": paymentID,
		"updated_at":          time.Now(),
	}}

	var order models.Order
	err := GetCollection("orders").
		FindOneAndUpdate(ctx, bson.M{"razorpay_order_id": gatewayOrderID}, update, opts).
		Decode(&order)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// MarkOrderAbandoned parks a pending order the reconciler has given up on so
// later scans skip it.
func MarkOrderAbandoned(ctx context.Context, gatewayOrderID string) error {
	update := bson.M{"$set": bson.M{
		"payment_status": models.PaymentStatusAbandoned,
		"updated_at":     time.Now(),
	}}
	result, err := GetCollection("orders").UpdateOne(ctx, bson.M{
		"razorpay_order_id": gatewayOrderID,
		"payment_status":    models.PaymentStatusPending,
	}, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return ErrOrderNotFound
	}
	return nil
}

// FindStalePendingOrders lists payment-pending orders created before the
// cutoff, oldest first, for the reconciler to inspect.
func FindStalePendingOrders(ctx context.Context, olderThan time.Time) ([]models.Order, error) {
	filter := bson.M{
		"payment_status": models.PaymentStatusPending,
		"created_at":     bson.M{"$lt": olderThan},
	}
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}}).SetLimit(100)

	cursor, err := GetCollection("orders").Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	orders := []models.Order{}
	if err := cursor.All(ctx, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// OrderStore adapts the package-level order functions to the interfaces the
// checkout service and reconciler are built against.
type OrderStore struct{}

func (OrderStore) CreateOrder(ctx context.Context, order *models.Order) (*models.Order, error) {
	return CreateOrder(ctx, order)
}

func (OrderStore) MarkOrderPaid(ctx context.Context, gatewayOrderID, paymentID string) (*models.Order, error) {
	return MarkOrderPaid(ctx, gatewayOrderID, paymentID)
}

func (OrderStore) MarkOrderAbandoned(ctx context.Context, gatewayOrderID string) error {
	return MarkOrderAbandoned(ctx, gatewayOrderID)
}

func (OrderStore) FindStalePendingOrders(ctx context.Context, olderThan time.Time) ([]models.Order, error) {
	return FindStalePendingOrders(ctx, olderThan)
}
