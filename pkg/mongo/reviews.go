package mongo

import (
	"context"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/pashm-co/storefront-api/pkg/models"
)

func CreateReview(ctx context.Context, review *models.Review) (*models.Review, error) {
	result, err := GetCollection("reviews").InsertOne(ctx, review)
	if err != nil {
		return nil, err
	}
	if oid, ok := result.InsertedID.(bson.ObjectID); ok {
		review.ID = oid
	}
	return review, nil
}

// GetApprovedReviews returns approved reviews newest first; an empty product
// id means all products.
func GetApprovedReviews(ctx context.Context, productID string) ([]models.Review, error) {
	filter := bson.M{"status": models.ReviewStatusApproved}
	if productID != "" {
		filter["product_id"] = productID
	}
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})

	cursor, err := GetCollection("reviews").Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	reviews := []models.Review{}
	if err := cursor.All(ctx, &reviews); err != nil {
		return nil, err
	}
	return reviews, nil
}
