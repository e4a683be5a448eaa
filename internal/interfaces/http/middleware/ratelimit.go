package middleware

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/bizblocks/bizblocks/internal/infrastructure/ratelimit"
	"github.com/bizblocks/bizblocks/internal/shared/constants"
	"github.com/bizblocks/bizblocks/internal/shared/logger"
	"github.com/bizblocks/bizblocks/internal/shared/utils"
)

// RateLimiter throttles a route group per caller. Authenticated callers are
// keyed by user id, anonymous ones by client IP.
type RateLimiter struct {
	limiter ratelimit.Limiter
	scope   string
	policy  ratelimit.Policy
	logger  logger.Interface
}

func NewRateLimiter(limiter ratelimit.Limiter, scope string, perMinute int, logger logger.Interface) *RateLimiter {
	return &RateLimiter{
		limiter: limiter,
		scope:   scope,
		policy:  ratelimit.Policy{RequestsPerMinute: perMinute},
		logger:  logger,
	}
}

// Limit returns the gin middleware. A nil RateLimiter or limiter lets every
// request through, which is how the server runs without Redis.
func (rl *RateLimiter) Limit() gin.HandlerFunc {
	return func(c *gin.Context) {
		if rl == nil || rl.limiter == nil {
			c.Next()
			return
		}

		allowed, err := rl.limiter.Allow(c.Request.Context(), rl.key(c), rl.policy)
		if err != nil {
			// Redis trouble must not take checkout down with it.
			rl.logger.Warnw("rate limiter unavailable, allowing request", "scope", rl.scope, "error", err)
			c.Next()
			return
		}

		if !allowed {
			utils.ErrorResponse(c, http.StatusTooManyRequests, "rate limit exceeded, please try again later")
			c.Abort()
			return
		}

		c.Next()
	}
}

func (rl *RateLimiter) key(c *gin.Context) string {
	if userID, ok := c.Get(constants.ContextKeyUserID); ok {
		return fmt.Sprintf("%s:user:%v", rl.scope, userID)
	}
	return fmt.Sprintf("%s:ip:%s", rl.scope, c.ClientIP())
}
