package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAverageRatingDefaultsWhenEmpty(t *testing.T) {
	assert.Equal(t, 4.0, AverageRating(nil))
	assert.Equal(t, 4.0, AverageRating([]Review{}))
}

func TestAverageRatingMean(t *testing.T) {
	reviews := []Review{
		{Rating: 5},
		{Rating: 4},
		{Rating: 2},
	}

	assert.InDelta(t, 11.0/3.0, AverageRating(reviews), 1e-9)
}

func TestToReviewIsApprovedWithTimestamp(t *testing.T) {
	req := CreateReviewRequest{
		ProductID: "prod_1",
		UserName:  "Meera",
		Rating:    5,
		Comment:   "Beautiful weave",
	}

	review := req.ToReview()

	assert.Equal(t, ReviewStatusApproved, review.Status)
	assert.Equal(t, "prod_1", review.ProductID)
	assert.False(t, review.CreatedAt.IsZero())
}
