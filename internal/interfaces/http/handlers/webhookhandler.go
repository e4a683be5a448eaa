package handlers

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	checkoutusecases "github.com/bizblocks/bizblocks/internal/application/checkout/usecases"
	"github.com/bizblocks/bizblocks/internal/application/payment/paymentgateway"
	subusecases "github.com/bizblocks/bizblocks/internal/application/subscription/usecases"
	"github.com/bizblocks/bizblocks/internal/shared/constants"
	"github.com/bizblocks/bizblocks/internal/shared/logger"
	"github.com/bizblocks/bizblocks/internal/shared/utils"
)

const maxWebhookBodyBytes = 1 << 20

// PaymentWebhookHandler receives payment processor events.
type PaymentWebhookHandler struct {
	verifier         webhookVerifier
	completeCheckout completeCheckoutUseCase
	failCheckout     failCheckoutUseCase
	paymentFailed    handlePaymentFailedUseCase
	paymentSucceeded handlePaymentSucceededUseCase
	logger           logger.Interface
}

func NewPaymentWebhookHandler(
	verifier webhookVerifier,
	completeCheckout completeCheckoutUseCase,
	failCheckout failCheckoutUseCase,
	paymentFailed handlePaymentFailedUseCase,
	paymentSucceeded handlePaymentSucceededUseCase,
	logger logger.Interface,
) *PaymentWebhookHandler {
	return &PaymentWebhookHandler{
		verifier:         verifier,
		completeCheckout: completeCheckout,
		failCheckout:     failCheckout,
		paymentFailed:    paymentFailed,
		paymentSucceeded: paymentSucceeded,
		logger:           logger,
	}
}

// Handle handles POST /webhooks/payments
// Unknown event types are acknowledged so the processor stops redelivering
// them. Processing errors return non-2xx so it retries.
func (h *PaymentWebhookHandler) Handle(c *gin.Context) {
	payload, err := io.ReadAll(io.LimitReader(c.Request.Body, maxWebhookBodyBytes))
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "failed to read request body")
		return
	}

	event, err := h.verifier.VerifyWebhook(payload, c.GetHeader(constants.HeaderPaymentSignature))
	switch {
	case errors.Is(err, paymentgateway.ErrInvalidSignature):
		h.logger.Warnw("rejected webhook with invalid signature", "ip", c.ClientIP())
		utils.ErrorResponse(c, http.StatusUnauthorized, "invalid webhook signature")
		return
	case errors.Is(err, paymentgateway.ErrUnknownEventType):
		h.logger.Infow("ignoring unsupported webhook event", "error", err)
		utils.SuccessResponse(c, http.StatusOK, "event ignored", nil)
		return
	case err != nil:
		h.logger.Warnw("malformed webhook payload", "error", err)
		utils.ErrorResponse(c, http.StatusBadRequest, "malformed webhook payload")
		return
	}

	h.logger.Infow("payment webhook received", "event_id", event.ID, "type", event.Type)

	ctx := c.Request.Context()
	var result any
	switch event.Type {
	case paymentgateway.EventCheckoutCompleted:
		result, err = h.completeCheckout.Execute(ctx, checkoutusecases.CompleteCheckoutCommand{
			CheckoutSessionID:       event.ReferenceID,
			PaymentReference:        event.PaymentReference,
			ExternalSubscriptionIDs: event.ExternalSubscriptionIDs,
		})
	case paymentgateway.EventCheckoutFailed:
		err = h.failCheckout.Execute(ctx, checkoutusecases.FailCheckoutCommand{
			CheckoutSessionID: event.ReferenceID,
			Reason:            event.FailureReason,
		})
	case paymentgateway.EventInvoicePaymentFailed:
		result, err = h.paymentFailed.Execute(ctx, subusecases.HandlePaymentFailedCommand{
			ExternalSubscriptionID: event.ExternalSubscriptionID,
			InvoiceID:              event.InvoiceID,
			FailureReason:          event.FailureReason,
			NextRetryAt:            event.NextRetryAt,
		})
	case paymentgateway.EventInvoicePaymentSucceeded:
		result, err = h.paymentSucceeded.Execute(ctx, subusecases.HandlePaymentSucceededCommand{
			ExternalSubscriptionID: event.ExternalSubscriptionID,
			InvoiceID:              event.InvoiceID,
			PeriodStart:            event.PeriodStart,
			PeriodEnd:              event.PeriodEnd,
		})
	default:
		utils.SuccessResponse(c, http.StatusOK, "event ignored", nil)
		return
	}

	if err != nil {
		h.logger.Errorw("failed to process payment webhook", "error", err, "event_id", event.ID, "type", event.Type)
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "event processed", result)
}
