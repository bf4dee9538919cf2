package router

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pashm-co/storefront-api/internal/checkout"
	"github.com/pashm-co/storefront-api/pkg/global"
	"github.com/pashm-co/storefront-api/pkg/models"
	"github.com/pashm-co/storefront-api/pkg/mongo"
)

func (a *API) BeginCheckout(c *gin.Context) {
	var req models.BeginCheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, global.ErrorResponse("Invalid checkout request", []global.ValidationError{
			{Field: "body", Message: err.Error(), Code: "invalid_format"},
		}))
		return
	}

	result, err := a.Checkout.Begin(c.Request.Context(), req.UID, req.SessionID, req.Address)
	if err != nil {
		switch {
		case errors.Is(err, checkout.ErrEmptyCart):
			c.JSON(http.StatusBadRequest, global.ErrorResponse("Cart is empty", []global.ValidationError{
				{Field: "sessionId", Message: "cart has no items", Code: "empty_cart"},
			}))
		case errors.Is(err, checkout.ErrAddressTooShort):
			c.JSON(http.StatusBadRequest, global.ErrorResponse("Address is too short", []global.ValidationError{
				{Field: "address", Message: "address must be at least 10 characters", Code: "invalid_format"},
			}))
		default:
			log.Printf("Error beginning checkout for uid %s: %v", req.UID, err)
			c.JSON(http.StatusInternalServerError, global.ErrorResponse("Failed to begin checkout", nil))
		}
		return
	}

	c.JSON(http.StatusOK, global.SuccessResponse(result))
}

func (a *API) VerifyPayment(c *gin.Context) {
	var req models.VerifyPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, global.ErrorResponse("Invalid verification request", []global.ValidationError{
			{Field: "body", Message: err.Error(), Code: "invalid_format"},
		}))
		return
	}

	order, err := a.Checkout.Verify(c.Request.Context(), req.GatewayOrderID, req.PaymentID, req.Signature)
	if err != nil {
		switch {
		case errors.Is(err, checkout.ErrSignatureMismatch):
			c.JSON(http.StatusBadRequest, global.ErrorResponse("Payment signature mismatch", []global.ValidationError{
				{Field: "signature", Message: "signature does not match this payment", Code: "signature_mismatch"},
			}))
		case errors.Is(err, mongo.ErrOrderNotFound):
			c.JSON(http.StatusNotFound, global.ErrorResponse("Order not found", []global.ValidationError{
				{Field: "gatewayOrderId", Message: "no pending order exists for this payment", Code: "not_found"},
			}))
		default:
			log.Printf("Error verifying payment %s: %v", req.PaymentID, err)
			c.JSON(http.StatusInternalServerError, global.ErrorResponse("Failed to verify payment", nil))
		}
		return
	}

	c.JSON(http.StatusOK, global.SuccessResponse(order))
}
