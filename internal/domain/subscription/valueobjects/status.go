package valueobjects

// SubscriptionStatus is the persisted lifecycle state of a subscription.
type SubscriptionStatus string

const (
	StatusActive    SubscriptionStatus = "active"
	StatusPastDue   SubscriptionStatus = "past_due"
	StatusCancelled SubscriptionStatus = "cancelled"
	StatusExpired   SubscriptionStatus = "expired"
)

func (s SubscriptionStatus) String() string {
	return string(s)
}

// GrantsAccess reports whether a subscription in this state keeps its block.
func (s SubscriptionStatus) GrantsAccess() bool {
	return s == StatusActive || s == StatusPastDue
}

func (s SubscriptionStatus) IsTerminal() bool {
	return s == StatusCancelled || s == StatusExpired
}

func (s SubscriptionStatus) CanTransitionTo(target SubscriptionStatus) bool {
	transitions := map[SubscriptionStatus][]SubscriptionStatus{
		StatusActive:    {StatusPastDue, StatusCancelled, StatusExpired},
		StatusPastDue:   {StatusActive, StatusCancelled, StatusExpired},
		StatusCancelled: {},
		StatusExpired:   {StatusActive},
	}

	allowed, exists := transitions[s]
	if !exists {
		return false
	}

	for _, allowedStatus := range allowed {
		if allowedStatus == target {
			return true
		}
	}
	return false
}

var ValidStatuses = map[SubscriptionStatus]bool{
	StatusActive:    true,
	StatusPastDue:   true,
	StatusCancelled: true,
	StatusExpired:   true,
}

// PaymentStatus is the outcome of the most recent charge attempt.
type PaymentStatus string

const (
	PaymentStatusNone      PaymentStatus = ""
	PaymentStatusFailed    PaymentStatus = "failed"
	PaymentStatusSucceeded PaymentStatus = "succeeded"
)

func (p PaymentStatus) String() string {
	return string(p)
}
