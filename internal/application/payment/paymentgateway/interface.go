// Package paymentgateway defines the port to the external payment processor.
package paymentgateway

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrInvalidSignature is returned by VerifyWebhook for unsigned or
	// tampered payloads.
	ErrInvalidSignature = errors.New("invalid webhook signature")
	// ErrUnknownEventType is returned for webhook events the engine does not handle.
	ErrUnknownEventType = errors.New("unknown webhook event type")
)

// Gateway is the payment processor as seen by the engine. Calls are not
// retried at this layer; any error aborts the operation that made the call.
type Gateway interface {
	CreateCheckoutSession(ctx context.Context, req CreateCheckoutSessionRequest) (*CheckoutSessionResponse, error)
	// ChangeSubscriptionPrice moves an external subscription to another block
	// and price, charging or crediting the proration.
	ChangeSubscriptionPrice(ctx context.Context, req ChangePriceRequest) (*ChangePriceResponse, error)
	CancelSubscription(ctx context.Context, req CancelSubscriptionRequest) error
	// VerifyWebhook checks the signature of a webhook body and parses it.
	VerifyWebhook(payload []byte, signature string) (*WebhookEvent, error)
}

// CheckoutMode mirrors checkout.Mode at the gateway boundary.
type CheckoutMode string

const (
	CheckoutModeOneTime      CheckoutMode = "one_time"
	CheckoutModeSubscription CheckoutMode = "subscription"
)

type LineItem struct {
	BlockName   string
	AmountCents int64 // smallest currency unit
	Recurring   bool
}

type CreateCheckoutSessionRequest struct {
	// ReferenceID is our checkout session ID, echoed back in webhooks.
	ReferenceID   string
	Mode          CheckoutMode
	LineItems     []LineItem
	Currency      string
	CustomerEmail string
	SuccessURL    string
	CancelURL     string
}

type CheckoutSessionResponse struct {
	ExternalSessionID string
	CheckoutURL       string
}

type ChangePriceRequest struct {
	ExternalSubscriptionID string
	NewBlockName           string
	NewMonthlyPriceCents   int64
	// ProrationAmountCents is positive for a charge, negative for a credit.
	ProrationAmountCents int64
	Currency             string
}

type ChangePriceResponse struct {
	InvoiceID string
}

type CancelSubscriptionRequest struct {
	ExternalSubscriptionID string
	AtPeriodEnd            bool
}

// WebhookEventType is the kind of event the processor reports.
type WebhookEventType string

const (
	EventCheckoutCompleted       WebhookEventType = "checkout.completed"
	EventCheckoutFailed          WebhookEventType = "checkout.failed"
	EventInvoicePaymentFailed    WebhookEventType = "invoice.payment_failed"
	EventInvoicePaymentSucceeded WebhookEventType = "invoice.payment_succeeded"
)

// WebhookEvent is a verified processor event.
type WebhookEvent struct {
	ID         string           `json:"id"`
	Type       WebhookEventType `json:"type"`
	OccurredAt time.Time        `json:"occurred_at"`

	// Checkout events
	ReferenceID       string `json:"reference_id,omitempty"`
	ExternalSessionID string `json:"external_session_id,omitempty"`
	PaymentReference  string `json:"payment_reference,omitempty"`
	// ExternalSubscriptionIDs maps block name to the processor's subscription
	// ID for subscription checkouts.
	ExternalSubscriptionIDs map[string]string `json:"external_subscription_ids,omitempty"`

	// Invoice events
	ExternalSubscriptionID string     `json:"external_subscription_id,omitempty"`
	InvoiceID              string     `json:"invoice_id,omitempty"`
	FailureReason          string     `json:"failure_reason,omitempty"`
	NextRetryAt            *time.Time `json:"next_retry_at,omitempty"`
	PeriodStart            *time.Time `json:"period_start,omitempty"`
	PeriodEnd              *time.Time `json:"period_end,omitempty"`
}
