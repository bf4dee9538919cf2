package router

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pashm-co/storefront-api/pkg/global"
	"github.com/pashm-co/storefront-api/pkg/models"
	"github.com/pashm-co/storefront-api/pkg/mongo"
)

func GetUser(c *gin.Context) {
	uid := c.Query("uid")
	if uid == "" {
		c.JSON(http.StatusBadRequest, global.ErrorResponse("uid query parameter required", []global.ValidationError{
			{Field: "uid", Message: "uid query parameter is required", Code: "required"},
		}))
		return
	}

	user, err := mongo.GetUserByUID(c.Request.Context(), uid)
	if err != nil {
		if errors.Is(err, mongo.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, global.ErrorResponse("User not found", []global.ValidationError{
				{Field: "uid", Message: "no profile exists with this uid", Code: "not_found"},
			}))
			return
		}
		log.Printf("Error fetching user %s: %v", uid, err)
		c.JSON(http.StatusInternalServerError, global.ErrorResponse("Failed to fetch user", nil))
		return
	}

	c.JSON(http.StatusOK, global.SuccessResponse(user))
}

func UpsertUser(c *gin.Context) {
	var req models.UpsertUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, global.ErrorResponse("Invalid user profile", []global.ValidationError{
			{Field: "body", Message: err.Error(), Code: "invalid_format"},
		}))
		return
	}

	user, err := mongo.UpsertUser(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, mongo.ErrDuplicateEmail) {
			c.JSON(http.StatusConflict, global.ErrorResponse("Email already in use", []global.ValidationError{
				{Field: "email", Message: "another profile already uses this email", Code: "duplicate"},
			}))
			return
		}
		log.Printf("Error upserting user %s: %v", req.UID, err)
		c.JSON(http.StatusInternalServerError, global.ErrorResponse("Failed to save user", nil))
		return
	}

	c.JSON(http.StatusOK, global.SuccessResponse(user))
}
