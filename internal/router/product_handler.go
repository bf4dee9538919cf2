package router

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pashm-co/storefront-api/pkg/commerce"
	"github.com/pashm-co/storefront-api/pkg/global"
)

func (a *API) GetProducts(c *gin.Context) {
	products, err := a.Catalog.GetProducts(c.Request.Context(), c.Query("q"))
	if err != nil {
		log.Printf("Error fetching products from commerce backend: %v", err)
		c.JSON(http.StatusInternalServerError, global.ErrorResponse("Failed to fetch products", nil))
		return
	}

	c.JSON(http.StatusOK, global.SuccessResponse(products))
}

func (a *API) GetProductBySlug(c *gin.Context) {
	slug := c.Param("slug")

	product, err := a.Catalog.GetProduct(c.Request.Context(), slug)
	if err != nil {
		if errors.Is(err, commerce.ErrProductNotFound) {
			c.JSON(http.StatusNotFound, global.ErrorResponse("Product not found", []global.ValidationError{
				{Field: "slug", Message: "no product exists with this slug", Code: "not_found"},
			}))
			return
		}
		log.Printf("Error fetching product %s: %v", slug, err)
		c.JSON(http.StatusInternalServerError, global.ErrorResponse("Failed to fetch product", nil))
		return
	}

	c.JSON(http.StatusOK, global.SuccessResponse(product))
}

type storefrontCartRequest struct {
	Lines []commerce.CartLineInput `json:"lines" binding:"required,min=1"`
}

func (a *API) CreateStorefrontCart(c *gin.Context) {
	if a.StorefrontCarts == nil {
		c.JSON(http.StatusNotImplemented, global.ErrorResponse("Hosted carts are not available on this backend", nil))
		return
	}

	var req storefrontCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, global.ErrorResponse("Invalid cart lines", []global.ValidationError{
			{Field: "lines", Message: err.Error(), Code: "invalid_format"},
		}))
		return
	}

	cart, err := a.StorefrontCarts.CreateCart(c.Request.Context(), req.Lines)
	if err != nil {
		log.Printf("Error creating storefront cart: %v", err)
		c.JSON(http.StatusInternalServerError, global.ErrorResponse("Failed to create cart", nil))
		return
	}

	c.JSON(http.StatusCreated, global.SuccessResponse(cart))
}

func (a *API) AddStorefrontCartLines(c *gin.Context) {
	if a.StorefrontCarts == nil {
		c.JSON(http.StatusNotImplemented, global.ErrorResponse("Hosted carts are not available on this backend", nil))
		return
	}

	cartID := c.Param("id")

	var req storefrontCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, global.ErrorResponse("Invalid cart lines", []global.ValidationError{
			{Field: "lines", Message: err.Error(), Code: "invalid_format"},
		}))
		return
	}

	cart, err := a.StorefrontCarts.AddToCart(c.Request.Context(), cartID, req.Lines)
	if err != nil {
		log.Printf("Error adding lines to storefront cart %s: %v", cartID, err)
		c.JSON(http.StatusInternalServerError, global.ErrorResponse("Failed to update cart", nil))
		return
	}

	c.JSON(http.StatusOK, global.SuccessResponse(cart))
}
