package dto

import (
	"time"

	"github.com/bizblocks/bizblocks/internal/domain/subscription"
)

// SubscriptionDTO is a subscription as seen by its owner.
type SubscriptionDTO struct {
	ID                 uint       `json:"id"`
	BusinessID         uint       `json:"business_id"`
	BlockName          string     `json:"block_name"`
	Status             string     `json:"status"`
	EffectiveStatus    string     `json:"effective_status"`
	MonthlyPriceCents  int64      `json:"monthly_price_cents"`
	CurrentPeriodStart time.Time  `json:"current_period_start"`
	CurrentPeriodEnd   time.Time  `json:"current_period_end"`
	CancelAtPeriodEnd  bool       `json:"cancel_at_period_end"`
	LastPaymentStatus  string     `json:"last_payment_status,omitempty"`
	PaymentRetryCount  int        `json:"payment_retry_count"`
	GracePeriodEnd     *time.Time `json:"grace_period_end,omitempty"`
	CancelledAt        *time.Time `json:"cancelled_at,omitempty"`
	HasAccess          bool       `json:"has_access"`
}

// ChangeSubscriptionRequest is the body of POST /subscriptions/:id/change.
type ChangeSubscriptionRequest struct {
	Action       string `json:"action" validate:"required,oneof=upgrade downgrade switch_to_one_time"`
	NewBlockName string `json:"new_block_name" validate:"required_unless=Action switch_to_one_time"`
}

// ChangeSubscriptionResult reports a price change or the checkout to pay for
// a switch to a one-time purchase.
type ChangeSubscriptionResult struct {
	Action               string `json:"action"`
	SubscriptionID       uint   `json:"subscription_id"`
	BlockName            string `json:"block_name,omitempty"`
	MonthlyPriceCents    int64  `json:"monthly_price_cents,omitempty"`
	ProrationAmountCents *int64 `json:"proration_amount_cents,omitempty"`
	CheckoutSessionID    string `json:"checkout_session_id,omitempty"`
	CheckoutURL          string `json:"checkout_url,omitempty"`
}

// CancelSubscriptionResult acknowledges a cancellation at period end.
type CancelSubscriptionResult struct {
	SubscriptionID    uint      `json:"subscription_id"`
	CancelAtPeriodEnd bool      `json:"cancel_at_period_end"`
	EffectiveAt       time.Time `json:"effective_at"`
}

// ReminderResult acknowledges a sent payment reminder.
type ReminderResult struct {
	FailureID             uint      `json:"failure_id"`
	ReminderCount         int       `json:"reminder_count"`
	LastReminderSentAt    time.Time `json:"last_reminder_sent_at"`
	NextReminderAllowedAt time.Time `json:"next_reminder_allowed_at"`
}

// SweepResult counts the subscriptions a lapse sweep settled.
type SweepResult struct {
	Examined  int `json:"examined"`
	Expired   int `json:"expired"`
	Cancelled int `json:"cancelled"`
}

func ToSubscriptionDTO(s *subscription.Subscription, now time.Time) *SubscriptionDTO {
	if s == nil {
		return nil
	}

	effective := s.EffectiveStatus(now)
	return &SubscriptionDTO{
		ID:                 s.ID(),
		BusinessID:         s.BusinessID(),
		BlockName:          s.BlockName(),
		Status:             s.Status().String(),
		EffectiveStatus:    effective.String(),
		MonthlyPriceCents:  s.MonthlyPriceCents(),
		CurrentPeriodStart: s.CurrentPeriodStart(),
		CurrentPeriodEnd:   s.CurrentPeriodEnd(),
		CancelAtPeriodEnd:  s.CancelAtPeriodEnd(),
		LastPaymentStatus:  s.LastPaymentStatus().String(),
		PaymentRetryCount:  s.PaymentRetryCount(),
		GracePeriodEnd:     s.GracePeriodEnd(),
		CancelledAt:        s.CancelledAt(),
		HasAccess:          effective.GrantsAccess(),
	}
}

// PaymentFailureDTO is one failed invoice of a subscription.
type PaymentFailureDTO struct {
	ID                 uint       `json:"id"`
	SubscriptionID     uint       `json:"subscription_id"`
	InvoiceID          string     `json:"invoice_id"`
	AttemptCount       int        `json:"attempt_count"`
	FailureReason      string     `json:"failure_reason,omitempty"`
	NextRetryDate      *time.Time `json:"next_retry_date,omitempty"`
	Resolved           bool       `json:"resolved"`
	ResolvedAt         *time.Time `json:"resolved_at,omitempty"`
	LastReminderSentAt *time.Time `json:"last_reminder_sent_at,omitempty"`
	ReminderCount      int        `json:"reminder_count"`
	CreatedAt          time.Time  `json:"created_at"`
	UpdatedAt          time.Time  `json:"updated_at"`
}

func ToPaymentFailureDTO(f *subscription.PaymentFailure) *PaymentFailureDTO {
	if f == nil {
		return nil
	}
	return &PaymentFailureDTO{
		ID:                 f.ID(),
		SubscriptionID:     f.SubscriptionID(),
		InvoiceID:          f.InvoiceID(),
		AttemptCount:       f.AttemptCount(),
		FailureReason:      f.FailureReason(),
		NextRetryDate:      f.NextRetryDate(),
		Resolved:           f.IsResolved(),
		ResolvedAt:         f.ResolvedAt(),
		LastReminderSentAt: f.LastReminderSentAt(),
		ReminderCount:      f.ReminderCount(),
		CreatedAt:          f.CreatedAt(),
		UpdatedAt:          f.UpdatedAt(),
	}
}
