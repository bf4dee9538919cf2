package models

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Review moderation statuses. New reviews default to approved: there is no
// moderation gate active, the pending/rejected states exist for when one is.
const (
	ReviewStatusPending  = "pending"
	ReviewStatusApproved = "approved"
	ReviewStatusRejected = "rejected"
)

// defaultRating is reported for products with no reviews yet.
const defaultRating = 4

// Review represents a customer review for a product. Immutable once created.
type Review struct {
	ID        bson.ObjectID `json:"id" bson:"_id,omitempty"`
	ProductID string        `json:"product_id" bson:"product_id"`
	UserName  string        `json:"user_name" bson:"user_name"`
	Rating    int           `json:"rating" bson:"rating"`
	Comment   string        `json:"comment" bson:"comment"`
	Status    string        `json:"status" bson:"status"`
	CreatedAt time.Time     `json:"created_at" bson:"created_at"`
}

type CreateReviewRequest struct {
	ProductID string `json:"productId" binding:"required"`
	UserName  string `json:"userName" binding:"required"`
	Rating    int    `json:"rating" binding:"required,gte=1,lte=5"`
	Comment   string `json:"comment" binding:"required"`
}

func (req *CreateReviewRequest) ToReview() *Review {
	return &Review{
		ProductID: req.ProductID,
		UserName:  req.UserName,
		Rating:    req.Rating,
		Comment:   req.Comment,
		Status:    ReviewStatusApproved,
		CreatedAt: time.Now(),
	}
}

// AverageRating returns the arithmetic mean of the ratings, unclamped, or the
// default rating when there are no reviews.
func AverageRating(reviews []Review) float64 {
	if len(reviews) == 0 {
		return defaultRating
	}
	var sum int
	for _, r := range reviews {
		sum += r.Rating
	}
	return float64(sum) / float64(len(reviews))
}
