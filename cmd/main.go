package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/pashm-co/storefront-api/internal/checkout"
	"github.com/pashm-co/storefront-api/internal/ordersync"
	"github.com/pashm-co/storefront-api/internal/router"
	"github.com/pashm-co/storefront-api/pkg/commerce"
	"github.com/pashm-co/storefront-api/pkg/global"
	"github.com/pashm-co/storefront-api/pkg/mongo"
	"github.com/pashm-co/storefront-api/pkg/payment"
	"github.com/pashm-co/storefront-api/pkg/redis"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file loaded: %v", err)
	}

	mongo.InitMongoDB()
	mongo.EnsureIndexesOnStartup()

	gateway := payment.NewClient()
	catalog := commerce.NewCatalog()
	medusa := commerce.NewMedusaClient()

	queue := redis.SyncQueue{}
	enqueuer := ordersync.Enqueuer{Queue: queue}

	service := checkout.NewService(gateway, mongo.OrderStore{}, redis.CartSessions{}, enqueuer, gateway.KeySecret())
	reconciler := checkout.NewReconciler(gateway, mongo.OrderStore{}, enqueuer)
	if raw := os.Getenv("RECONCILE_INTERVAL"); raw != "" {
		if interval, err := time.ParseDuration(raw); err == nil {
			reconciler.Interval = interval
		} else {
			log.Printf("Warning: invalid RECONCILE_INTERVAL %q: %v", raw, err)
		}
	}
	worker := ordersync.NewWorker(queue, medusa, mongo.Users{})

	ctx := context.Background()
	go reconciler.Run(ctx)
	go worker.Run(ctx)

	api := &router.API{
		Checkout: service,
		Catalog:  catalog,
	}
	if os.Getenv("SHOPIFY_STORE_DOMAIN") != "" && os.Getenv("SHOPIFY_STOREFRONT_ACCESS_TOKEN") != "" {
		api.StorefrontCarts = commerce.NewShopifyClient()
	}

	engine := router.NewEngine()
	router.InitializeRoutes(engine, api)

	port := global.GetEnvOrDefault("PORT", "8000")
	log.Printf("Server is running on port %s", port)

	if err := engine.Run(":" + port); err != nil {
		log.Fatalf("Failed to run server: %v", err)
	}
}
