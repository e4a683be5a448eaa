package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/bizblocks/bizblocks/internal/interfaces/http/handlers"
	"github.com/bizblocks/bizblocks/internal/interfaces/http/middleware"
)

// WebhookRouteConfig holds dependencies for payment processor callbacks.
type WebhookRouteConfig struct {
	PaymentWebhookHandler *handlers.PaymentWebhookHandler
	WebhookRateLimiter    *middleware.RateLimiter // may be nil
}

// SetupWebhookRoutes configures webhook routes. They authenticate by
// signature, not by bearer token.
func SetupWebhookRoutes(engine *gin.Engine, cfg *WebhookRouteConfig) {
	webhooks := engine.Group("/webhooks")
	webhooks.Use(cfg.WebhookRateLimiter.Limit())
	{
		webhooks.POST("/payments", cfg.PaymentWebhookHandler.Handle)
	}
}
