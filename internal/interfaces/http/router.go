package http

import (
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	"github.com/bizblocks/bizblocks/internal/infrastructure/config"
	_ "github.com/bizblocks/bizblocks/internal/interfaces/http/docs"
	"github.com/bizblocks/bizblocks/internal/interfaces/http/middleware"
	"github.com/bizblocks/bizblocks/internal/interfaces/http/routes"
	"github.com/bizblocks/bizblocks/internal/shared/logger"
)

// Router wraps the container and exposes route setup and the engine.
type Router struct {
	*Container
}

// NewRouter creates a new HTTP router with all dependencies. redisClient may
// be nil.
func NewRouter(db *gorm.DB, redisClient *redis.Client, cfg *config.Config, log logger.Interface) (*Router, error) {
	container, err := NewContainer(db, redisClient, cfg, log)
	if err != nil {
		return nil, err
	}
	return &Router{Container: container}, nil
}

// SetupRoutes configures all HTTP routes
func (r *Router) SetupRoutes() {
	r.engine.Use(middleware.RequestID())
	r.engine.Use(middleware.Logger(r.log))
	r.engine.Use(middleware.Recovery(r.log))
	r.engine.Use(middleware.CORS(r.cfg.Server.AllowedOrigins))
	r.engine.Use(middleware.SecurityHeaders())

	if r.cfg.Server.Mode != gin.ReleaseMode {
		r.engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	routes.SetupPublicRoutes(r.engine, &routes.PublicRouteConfig{
		HealthHandler:       r.hdlrs.healthHandler,
		BlockHandler:        r.hdlrs.blockHandler,
		CheckoutHandler:     r.hdlrs.checkoutHandler,
		SubscriptionHandler: r.hdlrs.subscriptionHandler,
		AuthMiddleware:      r.authMiddleware,
		CheckoutRateLimiter: r.checkoutRateLimiter,
	})

	routes.SetupWebhookRoutes(r.engine, &routes.WebhookRouteConfig{
		PaymentWebhookHandler: r.hdlrs.webhookHandler,
		WebhookRateLimiter:    r.webhookRateLimiter,
	})

	routes.SetupAdminRoutes(r.engine, &routes.AdminRouteConfig{
		PricingHandler:        r.hdlrs.adminPricingHandler,
		PaymentFailureHandler: r.hdlrs.adminPaymentFailureHandler,
		SubscriptionHandler:   r.hdlrs.adminSubscriptionHandler,
		AuthMiddleware:        r.authMiddleware,
		PermissionMiddleware:  r.permissionMiddleware,
	})
}

// GetEngine returns the Gin engine
func (r *Router) GetEngine() *gin.Engine {
	return r.engine
}

// Run starts the HTTP server
func (r *Router) Run(addr string) error {
	return r.engine.Run(addr)
}
