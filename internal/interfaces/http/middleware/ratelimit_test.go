package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/bizblocks/bizblocks/internal/infrastructure/ratelimit"
	"github.com/bizblocks/bizblocks/internal/shared/constants"
	"github.com/bizblocks/bizblocks/internal/shared/logger"
)

type countingLimiter struct {
	limit int
	err   error
	seen  map[string]int
}

func (l *countingLimiter) Allow(ctx context.Context, key string, policy ratelimit.Policy) (bool, error) {
	if l.err != nil {
		return false, l.err
	}
	if l.seen == nil {
		l.seen = map[string]int{}
	}
	l.seen[key]++
	return l.seen[key] <= l.limit, nil
}

func (l *countingLimiter) Remaining(ctx context.Context, key string, window time.Duration) (int64, error) {
	return int64(l.seen[key]), nil
}

func (l *countingLimiter) Reset(ctx context.Context, key string) error {
	delete(l.seen, key)
	return nil
}

func newRateLimitedEngine(rl *RateLimiter, userID uint) *gin.Engine {
	engine := gin.New()
	engine.POST("/checkout", func(c *gin.Context) {
		if userID != 0 {
			c.Set(constants.ContextKeyUserID, userID)
		}
		c.Next()
	}, rl.Limit(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return engine
}

func post(engine *gin.Engine) int {
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/checkout", nil))
	return w.Code
}

func TestRateLimiter_KeysByUser(t *testing.T) {
	limiter := &countingLimiter{limit: 2}
	rl := NewRateLimiter(limiter, "checkout", 2, logger.NewNopLogger())

	engine := newRateLimitedEngine(rl, 9)
	assert.Equal(t, http.StatusOK, post(engine))
	assert.Equal(t, http.StatusOK, post(engine))
	assert.Equal(t, http.StatusTooManyRequests, post(engine))
	assert.Equal(t, 3, limiter.seen["checkout:user:9"])

	other := newRateLimitedEngine(rl, 10)
	assert.Equal(t, http.StatusOK, post(other))
}

func TestRateLimiter_AnonymousKeyedByIP(t *testing.T) {
	limiter := &countingLimiter{limit: 1}
	rl := NewRateLimiter(limiter, "webhook", 1, logger.NewNopLogger())

	engine := newRateLimitedEngine(rl, 0)
	assert.Equal(t, http.StatusOK, post(engine))
	assert.Equal(t, http.StatusTooManyRequests, post(engine))
	for key := range limiter.seen {
		assert.Contains(t, key, "webhook:ip:")
	}
}

func TestRateLimiter_FailsOpen(t *testing.T) {
	rl := NewRateLimiter(&countingLimiter{err: errors.New("redis down")}, "checkout", 1, logger.NewNopLogger())
	engine := newRateLimitedEngine(rl, 1)

	assert.Equal(t, http.StatusOK, post(engine))
	assert.Equal(t, http.StatusOK, post(engine))
}

func TestRateLimiter_NilIsNoop(t *testing.T) {
	var rl *RateLimiter
	engine := newRateLimitedEngine(rl, 1)
	assert.Equal(t, http.StatusOK, post(engine))
}
