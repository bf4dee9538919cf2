package router

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pashm-co/storefront-api/pkg/global"
	"github.com/pashm-co/storefront-api/pkg/models"
	"github.com/pashm-co/storefront-api/pkg/mongo"
)

func GetOrdersByUser(c *gin.Context) {
	uid := c.Query("uid")
	if uid == "" {
		c.JSON(http.StatusBadRequest, global.ErrorResponse("uid query parameter required", []global.ValidationError{
			{Field: "uid", Message: "uid query parameter is required", Code: "required"},
		}))
		return
	}

	orders, err := mongo.GetOrdersByUser(c.Request.Context(), uid)
	if err != nil {
		log.Printf("Error fetching orders for uid %s: %v", uid, err)
		c.JSON(http.StatusInternalServerError, global.ErrorResponse("Failed to fetch orders", nil))
		return
	}

	c.JSON(http.StatusOK, global.SuccessResponse(orders))
}

func CreateOrder(c *gin.Context) {
	var req models.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, global.ErrorResponse("Invalid order", []global.ValidationError{
			{Field: "body", Message: err.Error(), Code: "invalid_format"},
		}))
		return
	}

	order := &models.Order{
		User:            req.User,
		Items:           req.Items,
		Total:           req.Total,
		Address:         req.Address,
		RazorpayOrderID: req.GatewayOrderID,
	}

	created, err := mongo.CreateOrder(c.Request.Context(), order)
	if err != nil {
		log.Printf("Error creating order for uid %s: %v", req.User, err)
		c.JSON(http.StatusInternalServerError, global.ErrorResponse("Failed to create order", nil))
		return
	}

	c.JSON(http.StatusCreated, global.SuccessResponse(created))
}
