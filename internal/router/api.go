package router

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pashm-co/storefront-api/internal/checkout"
	"github.com/pashm-co/storefront-api/pkg/commerce"
	"github.com/pashm-co/storefront-api/pkg/global"
	"github.com/pashm-co/storefront-api/pkg/models"
	"github.com/pashm-co/storefront-api/pkg/mongo"
)

// CheckoutService is the slice of the checkout package the handlers need.
type CheckoutService interface {
	Begin(ctx context.Context, uid, sessionID, address string) (*checkout.BeginResult, error)
	Verify(ctx context.Context, gatewayOrderID, paymentID, signature string) (*models.Order, error)
}

// StorefrontCarts creates and extends carts hosted by the Shopify backend.
type StorefrontCarts interface {
	CreateCart(ctx context.Context, lines []commerce.CartLineInput) (*commerce.StorefrontCart, error)
	AddToCart(ctx context.Context, cartID string, lines []commerce.CartLineInput) (*commerce.StorefrontCart, error)
}

// API holds the handler dependencies. Handlers hang off it so tests can
// swap in fakes.
type API struct {
	Checkout        CheckoutService
	Catalog         commerce.Catalog
	StorefrontCarts StorefrontCarts
}

func InitializeRoutes(engine *gin.Engine, a *API) {
	api := engine.Group("/api")
	{
		api.GET("/health", HealthCheck)

		products := api.Group("/products")
		{
			products.GET("/", a.GetProducts)
			products.GET("/:slug", a.GetProductBySlug)
		}

		storefrontCart := api.Group("/storefront-cart")
		{
			storefrontCart.POST("/", a.CreateStorefrontCart)
			storefrontCart.POST("/:id/lines", a.AddStorefrontCartLines)
		}

		cart := api.Group("/cart")
		cart.Use(SessionMiddleware())
		{
			cart.GET("/:sessionId", GetCart)
			cart.POST("/:sessionId/items", AddToCart)
			cart.PUT("/:sessionId/items/:id", UpdateCartItem)
			cart.DELETE("/:sessionId/items/:id", RemoveFromCart)
			cart.POST("/:sessionId/coupon", ApplyCoupon)
			cart.DELETE("/:sessionId/coupon", RemoveCoupon)
			cart.DELETE("/:sessionId/clear", ClearCart)
		}

		api.POST("/checkout", a.BeginCheckout)
		api.POST("/payment/verify", a.VerifyPayment)

		orders := api.Group("/orders")
		{
			orders.GET("/", GetOrdersByUser)
			orders.POST("/", CreateOrder)
		}

		reviews := api.Group("/reviews")
		{
			reviews.GET("/", GetReviews)
			reviews.POST("/", CreateReview)
		}

		user := api.Group("/user")
		{
			user.GET("/", GetUser)
			user.POST("/", UpsertUser)
		}

		api.POST("/contact", SendContact)
	}
}

func HealthCheck(c *gin.Context) {
	db := mongo.GetDatabase()
	if err := db.Client().Ping(c, nil); err != nil {
		c.JSON(http.StatusInternalServerError, global.ErrorResponse("Database connection failed", nil))
		return
	}
	c.JSON(http.StatusOK, global.SuccessResponse(map[string]string{"status": "OK", "database": "Connected"}))
}
