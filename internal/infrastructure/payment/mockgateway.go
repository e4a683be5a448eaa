// Package payment holds the payment processor adapter.
package payment

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/bizblocks/bizblocks/internal/application/payment/paymentgateway"
	"github.com/bizblocks/bizblocks/internal/shared/logger"
)

// ErrGatewayUnavailable is returned when the gateway is configured to fail.
var ErrGatewayUnavailable = errors.New("payment gateway unavailable")

// MockGatewayConfig holds the configuration for MockGateway
type MockGatewayConfig struct {
	// CheckoutBaseURL prefixes generated checkout URLs.
	CheckoutBaseURL string
	WebhookSecret   string
	FailCheckout    bool
	FailPriceChange bool
	FailCancel      bool
}

// MockGateway is an in-process payment processor. It hands out checkout
// URLs and subscription references without contacting a real provider and
// verifies webhooks signed with HMAC-SHA256 over the raw body.
type MockGateway struct {
	config   MockGatewayConfig
	configMu sync.RWMutex
	logger   logger.Interface
}

var _ paymentgateway.Gateway = (*MockGateway)(nil)

func NewMockGateway(config MockGatewayConfig, logger logger.Interface) *MockGateway {
	if config.CheckoutBaseURL == "" {
		config.CheckoutBaseURL = "https://pay.bizblocks.local/checkout"
	}
	return &MockGateway{
		config: config,
		logger: logger,
	}
}

func (g *MockGateway) CreateCheckoutSession(ctx context.Context, req paymentgateway.CreateCheckoutSessionRequest) (*paymentgateway.CheckoutSessionResponse, error) {
	cfg := g.getConfig()
	if cfg.FailCheckout {
		g.logger.Warnw("mock gateway rejected checkout session", "reference_id", req.ReferenceID)
		return nil, fmt.Errorf("create checkout session: %w", ErrGatewayUnavailable)
	}
	if len(req.LineItems) == 0 {
		return nil, fmt.Errorf("checkout session needs at least one line item")
	}

	externalID := "cs_" + strings.ReplaceAll(uuid.NewString(), "-", "")
	var total int64
	for _, item := range req.LineItems {
		total += item.AmountCents
	}

	g.logger.Infow("mock checkout session created",
		"reference_id", req.ReferenceID,
		"external_session_id", externalID,
		"mode", req.Mode,
		"amount_cents", total,
		"currency", req.Currency,
	)

	return &paymentgateway.CheckoutSessionResponse{
		ExternalSessionID: externalID,
		CheckoutURL:       fmt.Sprintf("%s/%s", strings.TrimRight(cfg.CheckoutBaseURL, "/"), externalID),
	}, nil
}

func (g *MockGateway) ChangeSubscriptionPrice(ctx context.Context, req paymentgateway.ChangePriceRequest) (*paymentgateway.ChangePriceResponse, error) {
	if g.getConfig().FailPriceChange {
		g.logger.Warnw("mock gateway rejected price change", "external_subscription_id", req.ExternalSubscriptionID)
		return nil, fmt.Errorf("change subscription price: %w", ErrGatewayUnavailable)
	}
	if req.ExternalSubscriptionID == "" {
		return nil, fmt.Errorf("external subscription ID is required")
	}

	invoiceID := "in_" + strings.ReplaceAll(uuid.NewString(), "-", "")
	g.logger.Infow("mock subscription price changed",
		"external_subscription_id", req.ExternalSubscriptionID,
		"new_block_name", req.NewBlockName,
		"new_monthly_price_cents", req.NewMonthlyPriceCents,
		"proration_amount_cents", req.ProrationAmountCents,
		"invoice_id", invoiceID,
	)
	return &paymentgateway.ChangePriceResponse{InvoiceID: invoiceID}, nil
}

func (g *MockGateway) CancelSubscription(ctx context.Context, req paymentgateway.CancelSubscriptionRequest) error {
	if g.getConfig().FailCancel {
		g.logger.Warnw("mock gateway rejected cancellation", "external_subscription_id", req.ExternalSubscriptionID)
		return fmt.Errorf("cancel subscription: %w", ErrGatewayUnavailable)
	}
	g.logger.Infow("mock subscription cancelled",
		"external_subscription_id", req.ExternalSubscriptionID,
		"at_period_end", req.AtPeriodEnd,
	)
	return nil
}

// VerifyWebhook checks signature, a hex HMAC-SHA256 of payload, and parses it.
func (g *MockGateway) VerifyWebhook(payload []byte, signature string) (*paymentgateway.WebhookEvent, error) {
	secret := g.getConfig().WebhookSecret
	if secret == "" || signature == "" {
		return nil, paymentgateway.ErrInvalidSignature
	}

	expected := SignWebhook(secret, payload)
	if !hmac.Equal([]byte(strings.ToLower(strings.TrimSpace(signature))), []byte(expected)) {
		return nil, paymentgateway.ErrInvalidSignature
	}

	var event paymentgateway.WebhookEvent
	if err := json.Unmarshal(payload, &event); err != nil {
		return nil, fmt.Errorf("failed to parse webhook payload: %w", err)
	}

	switch event.Type {
	case paymentgateway.EventCheckoutCompleted,
		paymentgateway.EventCheckoutFailed,
		paymentgateway.EventInvoicePaymentFailed,
		paymentgateway.EventInvoicePaymentSucceeded:
		return &event, nil
	default:
		return nil, fmt.Errorf("%w: %s", paymentgateway.ErrUnknownEventType, event.Type)
	}
}

// UpdateConfig replaces the gateway configuration.
func (g *MockGateway) UpdateConfig(config MockGatewayConfig) {
	g.configMu.Lock()
	defer g.configMu.Unlock()
	g.config = config
}

func (g *MockGateway) getConfig() MockGatewayConfig {
	g.configMu.RLock()
	defer g.configMu.RUnlock()
	return g.config
}

// SignWebhook returns the signature VerifyWebhook expects for payload.
func SignWebhook(secret string, payload []byte) string {
	h := hmac.New(sha256.New, []byte(secret))
	h.Write(payload)
	return hex.EncodeToString(h.Sum(nil))
}
