package router

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pashm-co/storefront-api/pkg/global"
	"github.com/pashm-co/storefront-api/pkg/models"
	"github.com/pashm-co/storefront-api/pkg/mongo"
)

func GetReviews(c *gin.Context) {
	productID := c.Query("productId")

	reviews, err := mongo.GetApprovedReviews(c.Request.Context(), productID)
	if err != nil {
		log.Printf("Error fetching reviews for product %s: %v", productID, err)
		c.JSON(http.StatusInternalServerError, global.ErrorResponse("Failed to fetch reviews", nil))
		return
	}

	c.JSON(http.StatusOK, global.SuccessResponse(map[string]interface{}{
		"reviews": reviews,
		"average": models.AverageRating(reviews),
	}))
}

func CreateReview(c *gin.Context) {
	var req models.CreateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, global.ErrorResponse("Invalid review", []global.ValidationError{
			{Field: "body", Message: err.Error(), Code: "invalid_format"},
		}))
		return
	}

	review, err := mongo.CreateReview(c.Request.Context(), req.ToReview())
	if err != nil {
		log.Printf("Error creating review for product %s: %v", req.ProductID, err)
		c.JSON(http.StatusInternalServerError, global.ErrorResponse("Failed to create review", nil))
		return
	}

	c.JSON(http.StatusCreated, global.SuccessResponse(review))
}
