package subscription

import (
	"fmt"
	"time"

	"github.com/bizblocks/bizblocks/internal/domain/entitlement"
	vo "github.com/bizblocks/bizblocks/internal/domain/subscription/valueobjects"
)

// Subscription is a recurring entitlement to one block. It is the aggregate
// root of the payment failure lifecycle.
type Subscription struct {
	id                     uint
	userID                 uint
	businessID             uint
	blockName              string
	status                 vo.SubscriptionStatus
	monthlyPriceCents      int64
	currentPeriodStart     time.Time
	currentPeriodEnd       time.Time
	cancelAtPeriodEnd      bool
	lastPaymentStatus      vo.PaymentStatus
	paymentRetryCount      int
	gracePeriodEnd         *time.Time
	externalSubscriptionID string
	customerEmail          string
	cancelledAt            *time.Time
	version                int
	createdAt              time.Time
	updatedAt              time.Time
}

var _ entitlement.Entitlement = (*Subscription)(nil)

// NewSubscription creates an active subscription for the given period.
func NewSubscription(
	userID, businessID uint,
	blockName string,
	monthlyPriceCents int64,
	externalSubscriptionID, customerEmail string,
	periodStart, periodEnd time.Time,
) (*Subscription, error) {
	if userID == 0 {
		return nil, fmt.Errorf("user ID is required")
	}
	if businessID == 0 {
		return nil, fmt.Errorf("business ID is required")
	}
	if blockName == "" {
		return nil, fmt.Errorf("block name is required")
	}
	if monthlyPriceCents < 0 {
		return nil, ErrInvalidPrice
	}
	if !periodEnd.After(periodStart) {
		return nil, ErrInvalidPeriod
	}

	return &Subscription{
		userID:                 userID,
		businessID:             businessID,
		blockName:              blockName,
		status:                 vo.StatusActive,
		monthlyPriceCents:      monthlyPriceCents,
		currentPeriodStart:     periodStart,
		currentPeriodEnd:       periodEnd,
		lastPaymentStatus:      vo.PaymentStatusSucceeded,
		externalSubscriptionID: externalSubscriptionID,
		customerEmail:          customerEmail,
		version:                1,
		createdAt:              periodStart,
		updatedAt:              periodStart,
	}, nil
}

// ReconstructSubscription reconstructs a subscription from persistence
func ReconstructSubscription(
	id, userID, businessID uint,
	blockName string,
	status vo.SubscriptionStatus,
	monthlyPriceCents int64,
	currentPeriodStart, currentPeriodEnd time.Time,
	cancelAtPeriodEnd bool,
	lastPaymentStatus vo.PaymentStatus,
	paymentRetryCount int,
	gracePeriodEnd *time.Time,
	externalSubscriptionID, customerEmail string,
	cancelledAt *time.Time,
	version int,
	createdAt, updatedAt time.Time,
) (*Subscription, error) {
	if id == 0 {
		return nil, fmt.Errorf("subscription ID cannot be zero")
	}
	if userID == 0 {
		return nil, fmt.Errorf("user ID is required")
	}
	if !vo.ValidStatuses[status] {
		return nil, fmt.Errorf("invalid subscription status: %s", status)
	}

	return &Subscription{
		id:                     id,
		userID:                 userID,
		businessID:             businessID,
		blockName:              blockName,
		status:                 status,
		monthlyPriceCents:      monthlyPriceCents,
		currentPeriodStart:     currentPeriodStart,
		currentPeriodEnd:       currentPeriodEnd,
		cancelAtPeriodEnd:      cancelAtPeriodEnd,
		lastPaymentStatus:      lastPaymentStatus,
		paymentRetryCount:      paymentRetryCount,
		gracePeriodEnd:         gracePeriodEnd,
		externalSubscriptionID: externalSubscriptionID,
		customerEmail:          customerEmail,
		cancelledAt:            cancelledAt,
		version:                version,
		createdAt:              createdAt,
		updatedAt:              updatedAt,
	}, nil
}

func (s *Subscription) ID() uint                            { return s.id }
func (s *Subscription) UserID() uint                        { return s.userID }
func (s *Subscription) BusinessID() uint                    { return s.businessID }
func (s *Subscription) BlockName() string                   { return s.blockName }
func (s *Subscription) Status() vo.SubscriptionStatus       { return s.status }
func (s *Subscription) MonthlyPriceCents() int64            { return s.monthlyPriceCents }
func (s *Subscription) CurrentPeriodStart() time.Time       { return s.currentPeriodStart }
func (s *Subscription) CurrentPeriodEnd() time.Time         { return s.currentPeriodEnd }
func (s *Subscription) CancelAtPeriodEnd() bool             { return s.cancelAtPeriodEnd }
func (s *Subscription) LastPaymentStatus() vo.PaymentStatus { return s.lastPaymentStatus }
func (s *Subscription) PaymentRetryCount() int              { return s.paymentRetryCount }
func (s *Subscription) GracePeriodEnd() *time.Time          { return s.gracePeriodEnd }
func (s *Subscription) ExternalSubscriptionID() string      { return s.externalSubscriptionID }
func (s *Subscription) CustomerEmail() string               { return s.customerEmail }
func (s *Subscription) CancelledAt() *time.Time             { return s.cancelledAt }
func (s *Subscription) Version() int                        { return s.version }
func (s *Subscription) CreatedAt() time.Time                { return s.createdAt }
func (s *Subscription) UpdatedAt() time.Time                { return s.updatedAt }

// Label implements entitlement.Entitlement.
func (s *Subscription) Label() entitlement.Label {
	return entitlement.LabelSubscribed
}

// SetID sets the ID after persisting.
func (s *Subscription) SetID(id uint) error {
	if s.id != 0 {
		return fmt.Errorf("subscription ID already set")
	}
	if id == 0 {
		return fmt.Errorf("subscription ID cannot be zero")
	}
	s.id = id
	return nil
}

// EffectiveStatus is the status at now, taking lapsed deadlines into account
// without persisting them. A past_due subscription whose grace period ended is
// expired; a subscription scheduled to cancel is cancelled once its period ends.
func (s *Subscription) EffectiveStatus(now time.Time) vo.SubscriptionStatus {
	if s.status.IsTerminal() {
		return s.status
	}
	if s.status == vo.StatusPastDue && s.gracePeriodEnd != nil && !now.Before(*s.gracePeriodEnd) {
		return vo.StatusExpired
	}
	if s.cancelAtPeriodEnd && !now.Before(s.currentPeriodEnd) {
		return vo.StatusCancelled
	}
	return s.status
}

// GrantsAccessAt implements entitlement.Entitlement.
func (s *Subscription) GrantsAccessAt(now time.Time) bool {
	return s.EffectiveStatus(now).GrantsAccess()
}

// InGracePeriod reports whether access continues only because of the grace period.
func (s *Subscription) InGracePeriod(now time.Time) bool {
	return s.EffectiveStatus(now) == vo.StatusPastDue
}

// RecordPaymentFailure moves the subscription to past_due and refreshes the
// grace period to end gracePeriod after now.
func (s *Subscription) RecordPaymentFailure(now time.Time, gracePeriod time.Duration) error {
	current := s.EffectiveStatus(now)
	if !current.GrantsAccess() {
		return ErrInvalidTransition(current.String(), vo.StatusPastDue.String())
	}

	graceEnd := now.Add(gracePeriod)
	s.status = vo.StatusPastDue
	s.lastPaymentStatus = vo.PaymentStatusFailed
	s.paymentRetryCount++
	s.gracePeriodEnd = &graceEnd
	s.touch(now)
	return nil
}

// RecordPaymentSuccess restores an active subscription after a successful
// charge. A non-nil period renews the billing period.
func (s *Subscription) RecordPaymentSuccess(now time.Time, periodStart, periodEnd *time.Time) error {
	if s.status == vo.StatusCancelled {
		return ErrInvalidTransition(s.status.String(), vo.StatusActive.String())
	}
	if periodStart != nil && periodEnd != nil {
		if !periodEnd.After(*periodStart) {
			return ErrInvalidPeriod
		}
		s.currentPeriodStart = *periodStart
		s.currentPeriodEnd = *periodEnd
	}

	s.status = vo.StatusActive
	s.lastPaymentStatus = vo.PaymentStatusNone
	s.paymentRetryCount = 0
	s.gracePeriodEnd = nil
	s.touch(now)
	return nil
}

// ScheduleCancellation keeps the subscription running until the end of the
// current period. It reports false when cancellation was already scheduled.
func (s *Subscription) ScheduleCancellation(now time.Time) (bool, error) {
	current := s.EffectiveStatus(now)
	if !current.GrantsAccess() {
		return false, ErrInvalidTransition(current.String(), vo.StatusCancelled.String())
	}
	if s.cancelAtPeriodEnd {
		return false, nil
	}

	s.cancelAtPeriodEnd = true
	s.touch(now)
	return true, nil
}

// ChangeBlock moves an active subscription to another monthly block.
func (s *Subscription) ChangeBlock(newBlockName string, newMonthlyPriceCents int64, now time.Time) error {
	if current := s.EffectiveStatus(now); current != vo.StatusActive {
		return fmt.Errorf("%w: status is %s", ErrSubscriptionInactive, current)
	}
	if newBlockName == "" {
		return fmt.Errorf("block name is required")
	}
	if newBlockName == s.blockName {
		return ErrSameBlock
	}
	if newMonthlyPriceCents < 0 {
		return ErrInvalidPrice
	}

	s.blockName = newBlockName
	s.monthlyPriceCents = newMonthlyPriceCents
	s.touch(now)
	return nil
}

// CancelImmediately ends the subscription at now.
func (s *Subscription) CancelImmediately(now time.Time) error {
	if !s.status.CanTransitionTo(vo.StatusCancelled) {
		return ErrInvalidTransition(s.status.String(), vo.StatusCancelled.String())
	}

	s.status = vo.StatusCancelled
	s.cancelledAt = &now
	s.touch(now)
	return nil
}

// Settle persists a lapsed deadline into the stored status. It reports
// whether anything changed.
func (s *Subscription) Settle(now time.Time) bool {
	effective := s.EffectiveStatus(now)
	if effective == s.status {
		return false
	}

	s.status = effective
	if effective == vo.StatusCancelled {
		end := s.currentPeriodEnd
		s.cancelledAt = &end
	}
	s.touch(now)
	return true
}

// ProrationFor returns the proration for switching to newPriceCents at now.
func (s *Subscription) ProrationFor(newPriceCents int64, now time.Time) (int64, error) {
	return CalculateProration(s.monthlyPriceCents, newPriceCents, s.currentPeriodStart, s.currentPeriodEnd, now)
}

// SetVersion records the version stored by the repository after an update.
func (s *Subscription) SetVersion(version int) {
	s.version = version
}

func (s *Subscription) touch(now time.Time) {
	s.updatedAt = now
}
