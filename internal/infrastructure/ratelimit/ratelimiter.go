package ratelimit

import (
	"context"
	"time"
)

// Policy caps requests per window. A zero limit disables that window.
type Policy struct {
	RequestsPerMinute int
	RequestsPerHour   int
}

// Limiter decides whether one more request under key fits the policy.
type Limiter interface {
	Allow(ctx context.Context, key string, policy Policy) (bool, error)
	Remaining(ctx context.Context, key string, window time.Duration) (int64, error)
	Reset(ctx context.Context, key string) error
}
