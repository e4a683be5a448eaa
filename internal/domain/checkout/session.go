package checkout

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Mode is the kind of checkout the payment processor runs.
type Mode string

const (
	ModeOneTime      Mode = "one_time"
	ModeSubscription Mode = "subscription"
)

func (m Mode) IsValid() bool {
	return m == ModeOneTime || m == ModeSubscription
}

// SessionStatus tracks a checkout session at the payment processor.
type SessionStatus string

const (
	SessionStatusPending   SessionStatus = "pending"
	SessionStatusCompleted SessionStatus = "completed"
	SessionStatusFailed    SessionStatus = "failed"
)

// LineItem is one block paid for by a session, at the price quoted when the
// session was created.
type LineItem struct {
	BlockName   string `json:"block_name"`
	AmountCents int64  `json:"amount_cents"`
}

// Session is a checkout handed to the payment processor. Completion webhooks
// reference it by ID so the granted blocks always come from this record.
type Session struct {
	id                       string
	userID                   uint
	businessID               uint
	mode                     Mode
	items                    []LineItem
	customerEmail            string
	externalSessionID        string
	checkoutURL              string
	status                   SessionStatus
	switchFromSubscriptionID *uint
	failureReason            string
	completedAt              *time.Time
	createdAt                time.Time
	updatedAt                time.Time
}

// NewSession creates a pending session with a fresh ID.
func NewSession(userID, businessID uint, mode Mode, items []LineItem, customerEmail string, now time.Time) (*Session, error) {
	if userID == 0 {
		return nil, fmt.Errorf("user ID is required")
	}
	if businessID == 0 {
		return nil, fmt.Errorf("business ID is required")
	}
	if !mode.IsValid() {
		return nil, fmt.Errorf("%w: %s", ErrInvalidMode, mode)
	}
	if len(items) == 0 {
		return nil, ErrSessionBlocksEmpty
	}
	for _, item := range items {
		if item.BlockName == "" {
			return nil, fmt.Errorf("line item needs a block name")
		}
		if item.AmountCents < 0 {
			return nil, fmt.Errorf("amount for %s must not be negative", item.BlockName)
		}
	}

	copied := make([]LineItem, len(items))
	copy(copied, items)

	return &Session{
		id:            uuid.NewString(),
		userID:        userID,
		businessID:    businessID,
		mode:          mode,
		items:         copied,
		customerEmail: customerEmail,
		status:        SessionStatusPending,
		createdAt:     now,
		updatedAt:     now,
	}, nil
}

// ReconstructSession reconstructs a checkout session from persistence
func ReconstructSession(
	id string,
	userID, businessID uint,
	mode Mode,
	items []LineItem,
	customerEmail, externalSessionID, checkoutURL string,
	status SessionStatus,
	switchFromSubscriptionID *uint,
	failureReason string,
	completedAt *time.Time,
	createdAt, updatedAt time.Time,
) (*Session, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, fmt.Errorf("invalid checkout session ID %q: %w", id, err)
	}
	if !mode.IsValid() {
		return nil, fmt.Errorf("%w: %s", ErrInvalidMode, mode)
	}

	return &Session{
		id:                       id,
		userID:                   userID,
		businessID:               businessID,
		mode:                     mode,
		items:                    items,
		customerEmail:            customerEmail,
		externalSessionID:        externalSessionID,
		checkoutURL:              checkoutURL,
		status:                   status,
		switchFromSubscriptionID: switchFromSubscriptionID,
		failureReason:            failureReason,
		completedAt:              completedAt,
		createdAt:                createdAt,
		updatedAt:                updatedAt,
	}, nil
}

func (s *Session) ID() string                      { return s.id }
func (s *Session) UserID() uint                    { return s.userID }
func (s *Session) BusinessID() uint                { return s.businessID }
func (s *Session) Mode() Mode                      { return s.mode }
func (s *Session) CustomerEmail() string           { return s.customerEmail }
func (s *Session) ExternalSessionID() string       { return s.externalSessionID }
func (s *Session) CheckoutURL() string             { return s.checkoutURL }
func (s *Session) Status() SessionStatus           { return s.status }
func (s *Session) SwitchFromSubscriptionID() *uint { return s.switchFromSubscriptionID }
func (s *Session) FailureReason() string           { return s.failureReason }
func (s *Session) CompletedAt() *time.Time         { return s.completedAt }
func (s *Session) CreatedAt() time.Time            { return s.createdAt }
func (s *Session) UpdatedAt() time.Time            { return s.updatedAt }

// Items returns a copy of the line items.
func (s *Session) Items() []LineItem {
	items := make([]LineItem, len(s.items))
	copy(items, s.items)
	return items
}

// BlockNames returns the blocks this session pays for, in order.
func (s *Session) BlockNames() []string {
	names := make([]string, 0, len(s.items))
	for _, item := range s.items {
		names = append(names, item.BlockName)
	}
	return names
}

// AmountCents is the total charged by the session.
func (s *Session) AmountCents() int64 {
	var total int64
	for _, item := range s.items {
		total += item.AmountCents
	}
	return total
}

// IsSwitch reports whether the session converts a subscription to a purchase.
func (s *Session) IsSwitch() bool {
	return s.switchFromSubscriptionID != nil
}

// MarkSwitchFrom ties a one-time session to the subscription it replaces.
func (s *Session) MarkSwitchFrom(subscriptionID uint) error {
	if s.mode != ModeOneTime {
		return fmt.Errorf("%w: only one-time sessions can replace a subscription", ErrInvalidMode)
	}
	s.switchFromSubscriptionID = &subscriptionID
	return nil
}

// AttachExternal stores the processor's session reference and payment URL.
func (s *Session) AttachExternal(externalSessionID, checkoutURL string, now time.Time) {
	s.externalSessionID = externalSessionID
	s.checkoutURL = checkoutURL
	s.updatedAt = now
}

// Complete marks the session paid. It reports false when it already was.
func (s *Session) Complete(now time.Time) (bool, error) {
	switch s.status {
	case SessionStatusCompleted:
		return false, nil
	case SessionStatusPending:
		s.status = SessionStatusCompleted
		s.completedAt = &now
		s.updatedAt = now
		return true, nil
	default:
		return false, fmt.Errorf("%w: status is %s", ErrSessionNotPending, s.status)
	}
}

// Fail marks the session as abandoned or declined.
func (s *Session) Fail(reason string, now time.Time) error {
	if s.status != SessionStatusPending {
		return fmt.Errorf("%w: status is %s", ErrSessionNotPending, s.status)
	}
	s.status = SessionStatusFailed
	s.failureReason = reason
	s.updatedAt = now
	return nil
}
