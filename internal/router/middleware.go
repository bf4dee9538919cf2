package router

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pashm-co/storefront-api/pkg/global"
)

const maxSessionIDLength = 128

// SessionMiddleware validates the cart session identifier before the cart
// handlers run.
func SessionMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID := c.Param("sessionId")
		if sessionID == "" || len(sessionID) > maxSessionIDLength {
			c.JSON(http.StatusBadRequest, global.ErrorResponse("Invalid session id", []global.ValidationError{
				{Field: "sessionId", Message: "session id must be between 1 and 128 characters", Code: "invalid_format"},
			}))
			c.Abort()
			return
		}

		c.Set("sessionId", sessionID)
		c.Next()
	}
}
