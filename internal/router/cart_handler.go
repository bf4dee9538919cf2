package router

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pashm-co/storefront-api/pkg/global"
	"github.com/pashm-co/storefront-api/pkg/models"
	"github.com/pashm-co/storefront-api/pkg/redis"
)

func GetCart(c *gin.Context) {
	sessionID := c.GetString("sessionId")

	cart, err := redis.GetCart(c.Request.Context(), sessionID)
	if err != nil {
		log.Printf("Error loading cart %s: %v", sessionID, err)
		c.JSON(http.StatusInternalServerError, global.ErrorResponse("Failed to load cart", nil))
		return
	}

	c.JSON(http.StatusOK, global.SuccessResponse(cart.View()))
}

func AddToCart(c *gin.Context) {
	sessionID := c.GetString("sessionId")

	var req models.AddToCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, global.ErrorResponse("Invalid cart item", []global.ValidationError{
			{Field: "body", Message: err.Error(), Code: "invalid_format"},
		}))
		return
	}

	quantity := req.Quantity
	if quantity < 1 {
		quantity = 1
	}

	item := models.CartItem{
		ID:    req.ID,
		Slug:  req.Slug,
		Title: req.Title,
		Price: req.Price,
		Image: req.Image,
	}

	cart, err := redis.AddToCart(c.Request.Context(), sessionID, item, quantity)
	if err != nil {
		log.Printf("Error adding item to cart %s: %v", sessionID, err)
		c.JSON(http.StatusInternalServerError, global.ErrorResponse("Failed to update cart", nil))
		return
	}

	c.JSON(http.StatusOK, global.SuccessResponse(cart.View()))
}

func UpdateCartItem(c *gin.Context) {
	sessionID := c.GetString("sessionId")
	itemID := c.Param("id")

	var req models.UpdateCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, global.ErrorResponse("Invalid quantity", []global.ValidationError{
			{Field: "quantity", Message: "quantity must be zero or greater", Code: "invalid_format"},
		}))
		return
	}

	cart, err := redis.UpdateCartItem(c.Request.Context(), sessionID, itemID, req.Quantity)
	if err != nil {
		log.Printf("Error updating item %s in cart %s: %v", itemID, sessionID, err)
		c.JSON(http.StatusInternalServerError, global.ErrorResponse("Failed to update cart", nil))
		return
	}

	c.JSON(http.StatusOK, global.SuccessResponse(cart.View()))
}

func RemoveFromCart(c *gin.Context) {
	sessionID := c.GetString("sessionId")
	itemID := c.Param("id")

	cart, err := redis.RemoveFromCart(c.Request.Context(), sessionID, itemID)
	if err != nil {
		log.Printf("Error removing item %s from cart %s: %v", itemID, sessionID, err)
		c.JSON(http.StatusInternalServerError, global.ErrorResponse("Failed to update cart", nil))
		return
	}

	c.JSON(http.StatusOK, global.SuccessResponse(cart.View()))
}

func ApplyCoupon(c *gin.Context) {
	sessionID := c.GetString("sessionId")

	var req models.ApplyCouponRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, global.ErrorResponse("Coupon code required", []global.ValidationError{
			{Field: "code", Message: "code is required", Code: "required"},
		}))
		return
	}

	cart, applied, err := redis.ApplyCoupon(c.Request.Context(), sessionID, req.Code)
	if err != nil {
		log.Printf("Error applying coupon to cart %s: %v", sessionID, err)
		c.JSON(http.StatusInternalServerError, global.ErrorResponse("Failed to apply coupon", nil))
		return
	}
	if !applied {
		c.JSON(http.StatusBadRequest, global.ErrorResponse("Invalid coupon code", []global.ValidationError{
			{Field: "code", Message: "coupon code is not recognized", Code: "invalid_coupon"},
		}))
		return
	}

	c.JSON(http.StatusOK, global.SuccessResponse(cart.View()))
}

func RemoveCoupon(c *gin.Context) {
	sessionID := c.GetString("sessionId")

	cart, err := redis.RemoveCoupon(c.Request.Context(), sessionID)
	if err != nil {
		log.Printf("Error removing coupon from cart %s: %v", sessionID, err)
		c.JSON(http.StatusInternalServerError, global.ErrorResponse("Failed to remove coupon", nil))
		return
	}

	c.JSON(http.StatusOK, global.SuccessResponse(cart.View()))
}

func ClearCart(c *gin.Context) {
	sessionID := c.GetString("sessionId")

	if err := redis.ClearCart(c.Request.Context(), sessionID); err != nil {
		log.Printf("Error clearing cart %s: %v", sessionID, err)
		c.JSON(http.StatusInternalServerError, global.ErrorResponse("Failed to clear cart", nil))
		return
	}

	c.JSON(http.StatusOK, global.SuccessResponse(map[string]string{"status": "cleared"}))
}
