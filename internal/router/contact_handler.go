package router

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pashm-co/storefront-api/pkg/global"
	"github.com/pashm-co/storefront-api/pkg/mail"
	"github.com/pashm-co/storefront-api/pkg/models"
)

func SendContact(c *gin.Context) {
	var req models.ContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, global.ErrorResponse("Invalid contact message", []global.ValidationError{
			{Field: "body", Message: err.Error(), Code: "invalid_format"},
		}))
		return
	}

	if err := mail.SendContactMessage(req.Name, req.Email, req.Message); err != nil {
		log.Printf("Error sending contact message from %s: %v", req.Email, err)
		c.JSON(http.StatusInternalServerError, global.ErrorResponse("Failed to send message", nil))
		return
	}

	c.JSON(http.StatusOK, global.SuccessResponse(map[string]string{"status": "sent"}))
}
