package http

import (
	"context"
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	notificationUsecases "github.com/bizblocks/bizblocks/internal/application/notification/usecases"
	subscriptionDto "github.com/bizblocks/bizblocks/internal/application/subscription/dto"
	"github.com/bizblocks/bizblocks/internal/domain/subscription"
	"github.com/bizblocks/bizblocks/internal/infrastructure/auth"
	"github.com/bizblocks/bizblocks/internal/infrastructure/catalogsource"
	"github.com/bizblocks/bizblocks/internal/infrastructure/config"
	"github.com/bizblocks/bizblocks/internal/infrastructure/email"
	"github.com/bizblocks/bizblocks/internal/infrastructure/payment"
	"github.com/bizblocks/bizblocks/internal/infrastructure/permission"
	"github.com/bizblocks/bizblocks/internal/infrastructure/ratelimit"
	"github.com/bizblocks/bizblocks/internal/interfaces/http/middleware"
	"github.com/bizblocks/bizblocks/internal/shared/biztime"
	"github.com/bizblocks/bizblocks/internal/shared/logger"
)

// Container holds the infrastructure components, repositories, use cases
// and handlers of the engine and wires them together.
type Container struct {
	// Core infrastructure
	engine *gin.Engine
	db     *gorm.DB
	cfg    *config.Config
	log    logger.Interface
	redis  *redis.Client // nil when Redis is disabled
	clock  biztime.Clock
	policy subscription.Policy

	// Adapters
	catalogSource *catalogsource.YAMLSource
	gateway       *payment.MockGateway
	notifier      *email.SMTPNotifier
	jwtSvc        *auth.JWTService
	enforcer      *permission.Enforcer

	// Repositories
	repos *repositories

	// Use cases
	ucs *allUseCases

	// Handlers
	hdlrs *allHandlers

	// Middlewares
	authMiddleware       *middleware.AuthMiddleware
	permissionMiddleware *middleware.PermissionMiddleware
	checkoutRateLimiter  *middleware.RateLimiter
	webhookRateLimiter   *middleware.RateLimiter
}

// NewContainer creates a Container with all dependencies wired together.
// redisClient may be nil, in which case pricing is read straight from the
// database and rate limiting is off.
func NewContainer(db *gorm.DB, redisClient *redis.Client, cfg *config.Config, log logger.Interface) (*Container, error) {
	c := &Container{
		engine: gin.New(),
		db:     db,
		cfg:    cfg,
		log:    log,
		redis:  redisClient,
		clock:  biztime.SystemClock{},
		policy: subscription.Policy{
			GracePeriod:      cfg.Billing.GracePeriod(),
			ReminderCooldown: cfg.Billing.ReminderCooldown(),
		},
	}

	// Section 1: Infrastructure - catalog, gateway, email, auth
	if err := c.initInfrastructure(); err != nil {
		return nil, err
	}

	// Section 2: Repositories
	c.repos = c.initRepositories()

	// Section 3: Use cases
	c.ucs = c.initUseCases()

	// Section 4: Handlers and middlewares
	c.hdlrs = c.initHandlers()
	c.initMiddlewares()

	return c, nil
}

func (c *Container) initInfrastructure() error {
	c.catalogSource = catalogsource.NewYAMLSource(c.cfg.Catalog.Path, c.log.Named("catalog"))
	if err := c.catalogSource.Load(); err != nil {
		// Reads fail with catalog unavailable until a reload succeeds.
		c.log.Errorw("failed to load catalog", "path", c.cfg.Catalog.Path, "error", err)
	}

	c.gateway = payment.NewMockGateway(payment.MockGatewayConfig{
		CheckoutBaseURL: c.cfg.Server.BaseURL + "/pay",
		WebhookSecret:   c.cfg.Billing.WebhookSecret,
		FailCheckout:    c.cfg.Billing.GatewayFailCheckout,
	}, c.log.Named("gateway"))

	c.notifier = email.NewSMTPNotifier(email.SMTPConfig{
		Host:        c.cfg.Email.SMTPHost,
		Port:        c.cfg.Email.SMTPPort,
		Username:    c.cfg.Email.SMTPUser,
		Password:    c.cfg.Email.SMTPPassword,
		FromAddress: c.cfg.Email.FromAddress,
		FromName:    c.cfg.Email.FromName,
	}, c.log.Named("email"))

	c.jwtSvc = auth.NewJWTService(c.cfg.Auth.JWT.Secret, c.cfg.Auth.JWT.Issuer, c.cfg.Auth.JWT.AccessExpMinutes)

	enforcer, err := permission.NewEnforcer(c.db, c.log.Named("permission"))
	if err != nil {
		return fmt.Errorf("failed to create permission enforcer: %w", err)
	}
	c.enforcer = enforcer
	return nil
}

func (c *Container) initMiddlewares() {
	c.authMiddleware = middleware.NewAuthMiddleware(c.jwtSvc, c.log)
	c.permissionMiddleware = middleware.NewPermissionMiddleware(c.enforcer, c.log)

	if c.redis == nil {
		return
	}
	limiter := ratelimit.NewRedisLimiter(c.redis)
	c.checkoutRateLimiter = middleware.NewRateLimiter(limiter, "checkout", c.cfg.Server.RateLimit.CheckoutPerMinute, c.log)
	c.webhookRateLimiter = middleware.NewRateLimiter(limiter, "webhook", c.cfg.Server.RateLimit.WebhookPerMinute, c.log)
}

// ReloadCatalog re-reads the catalog file. The previous catalog stays in
// place when the file is invalid.
func (c *Container) ReloadCatalog() error {
	return c.catalogSource.Load()
}

// RelayOutbox delivers one batch of pending outbox messages.
func (c *Container) RelayOutbox(ctx context.Context) (*notificationUsecases.RelayOutboxResult, error) {
	return c.ucs.relayOutboxUC.Execute(ctx)
}

// SweepLapsedSubscriptions expires and cancels subscriptions whose grace or
// paid period is over.
func (c *Container) SweepLapsedSubscriptions(ctx context.Context) (*subscriptionDto.SweepResult, error) {
	return c.ucs.sweepLapsedUC.Execute(ctx)
}
