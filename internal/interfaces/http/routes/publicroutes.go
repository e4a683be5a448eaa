package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/bizblocks/bizblocks/internal/interfaces/http/handlers"
	"github.com/bizblocks/bizblocks/internal/interfaces/http/middleware"
)

// PublicRouteConfig holds dependencies for the marketplace routes.
type PublicRouteConfig struct {
	HealthHandler       *handlers.HealthHandler
	BlockHandler        *handlers.BlockHandler
	CheckoutHandler     *handlers.CheckoutHandler
	SubscriptionHandler *handlers.SubscriptionHandler
	AuthMiddleware      *middleware.AuthMiddleware
	CheckoutRateLimiter *middleware.RateLimiter // may be nil
}

// SetupPublicRoutes configures health, catalog, checkout and subscription routes.
func SetupPublicRoutes(engine *gin.Engine, cfg *PublicRouteConfig) {
	engine.GET("/health", cfg.HealthHandler.Health)

	engine.GET("/blocks", cfg.AuthMiddleware.OptionalAuth(), cfg.BlockHandler.ListBlocks)

	engine.POST("/checkout",
		cfg.AuthMiddleware.RequireAuth(),
		cfg.CheckoutRateLimiter.Limit(),
		cfg.CheckoutHandler.Checkout,
	)

	subscriptions := engine.Group("/subscriptions")
	subscriptions.Use(cfg.AuthMiddleware.RequireAuth())
	{
		subscriptions.GET("", cfg.SubscriptionHandler.List)
		subscriptions.POST("/:id/change", cfg.SubscriptionHandler.Change)
		subscriptions.POST("/:id/cancel", cfg.SubscriptionHandler.Cancel)
	}
}
