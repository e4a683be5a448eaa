package routes

import (
	"github.com/gin-gonic/gin"

	adminHandlers "github.com/bizblocks/bizblocks/internal/interfaces/http/handlers/admin"
	"github.com/bizblocks/bizblocks/internal/interfaces/http/middleware"
)

// AdminRouteConfig holds dependencies for admin-only routes.
type AdminRouteConfig struct {
	PricingHandler        *adminHandlers.PricingHandler
	PaymentFailureHandler *adminHandlers.PaymentFailureHandler
	SubscriptionHandler   *adminHandlers.SubscriptionHandler
	AuthMiddleware        *middleware.AuthMiddleware
	PermissionMiddleware  *middleware.PermissionMiddleware
}

// SetupAdminRoutes configures admin-only routes.
func SetupAdminRoutes(engine *gin.Engine, cfg *AdminRouteConfig) {
	admin := engine.Group("/admin")
	admin.Use(cfg.AuthMiddleware.RequireAuth(), cfg.PermissionMiddleware.RequirePolicy())

	pricing := admin.Group("/pricing")
	{
		pricing.GET("", cfg.PricingHandler.List)
		pricing.PUT("/:block_name", cfg.PricingHandler.Upsert)
	}

	failures := admin.Group("/payment-failures")
	{
		failures.GET("", cfg.PaymentFailureHandler.List)
		failures.POST("/:id/remind", cfg.PaymentFailureHandler.Remind)
		failures.POST("/:id/resolve", cfg.PaymentFailureHandler.Resolve)
	}

	admin.POST("/subscriptions/sweep", cfg.SubscriptionHandler.Sweep)
}
