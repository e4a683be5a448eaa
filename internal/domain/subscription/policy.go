package subscription

import "time"

const (
	DefaultGracePeriod      = 7 * 24 * time.Hour
	DefaultReminderCooldown = 24 * time.Hour
)

// Policy holds the lifecycle timings configured for billing.
type Policy struct {
	GracePeriod      time.Duration
	ReminderCooldown time.Duration
}

// DefaultPolicy returns a 7 day grace period and a 24 hour reminder cooldown.
func DefaultPolicy() Policy {
	return Policy{
		GracePeriod:      DefaultGracePeriod,
		ReminderCooldown: DefaultReminderCooldown,
	}
}
