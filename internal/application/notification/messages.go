package notification

import (
	"fmt"
	"strings"
	"time"

	"github.com/bizblocks/bizblocks/internal/domain/entitlement"
	"github.com/bizblocks/bizblocks/internal/domain/outbox"
	"github.com/bizblocks/bizblocks/internal/domain/subscription"
	"github.com/bizblocks/bizblocks/internal/shared/biztime"
	"github.com/bizblocks/bizblocks/internal/shared/utils"
)

// MessageSettings holds what the email builders need beyond the event itself.
type MessageSettings struct {
	AdminEmail string
	BaseURL    string
	Currency   string
}

// BuildEmails returns the emails an outbox message should produce. Unknown
// event types produce none.
func BuildEmails(msg *outbox.Message, settings MessageSettings) ([]Email, error) {
	switch msg.EventType() {
	case entitlement.EventPurchaseCompleted:
		var e entitlement.PurchaseCompletedEvent
		if err := msg.Decode(&e); err != nil {
			return nil, err
		}
		return purchaseEmails(e, settings), nil
	case subscription.EventSubscriptionStarted:
		var e subscription.StartedEvent
		if err := msg.Decode(&e); err != nil {
			return nil, err
		}
		return startedEmails(e, settings), nil
	case subscription.EventSubscriptionCancelled:
		var e subscription.CancelledEvent
		if err := msg.Decode(&e); err != nil {
			return nil, err
		}
		return cancelledEmails(e, settings), nil
	case subscription.EventPaymentFailed:
		var e subscription.PaymentFailedEvent
		if err := msg.Decode(&e); err != nil {
			return nil, err
		}
		return paymentFailedEmails(e, settings), nil
	case subscription.EventPaymentReminderRequested:
		var e subscription.ReminderRequestedEvent
		if err := msg.Decode(&e); err != nil {
			return nil, err
		}
		return reminderEmails(e, settings), nil
	default:
		return nil, nil
	}
}

func purchaseEmails(e entitlement.PurchaseCompletedEvent, s MessageSettings) []Email {
	body := fmt.Sprintf("# Thanks for your purchase\n\n"+
		"**%s** is now part of your business. You paid %s.\n\n"+
		"[Open your dashboard](%s)\n",
		e.BlockName, utils.FormatCents(e.PricePaidCents, s.Currency), dashboardURL(s))
	return customerEmail(e.CustomerEmail, "Your "+e.BlockName+" block is ready", body)
}

func startedEmails(e subscription.StartedEvent, s MessageSettings) []Email {
	price := utils.FormatCents(e.MonthlyPriceCents, s.Currency)
	body := fmt.Sprintf("# Welcome aboard\n\n"+
		"Your subscription to **%s** is active at %s per month.\n\n"+
		"You can change or cancel it any time from your [dashboard](%s).\n",
		e.BlockName, price, dashboardURL(s))
	emails := customerEmail(e.CustomerEmail, "Welcome to "+e.BlockName, body)

	if s.AdminEmail != "" {
		adminBody := fmt.Sprintf("## New subscription\n\n"+
			"| Field | Value |\n|---|---|\n"+
			"| Subscription | %d |\n| User | %d |\n| Business | %d |\n"+
			"| Block | %s |\n| Price | %s/mo |\n| Customer | %s |\n",
			e.SubscriptionID, e.UserID, e.BusinessID, e.BlockName, price, e.CustomerEmail)
		emails = append(emails, Email{
			To:           s.AdminEmail,
			Subject:      "New subscription: " + e.BlockName,
			MarkdownBody: adminBody,
		})
	}
	return emails
}

func cancelledEmails(e subscription.CancelledEvent, s MessageSettings) []Email {
	var body string
	if e.EffectiveAt.After(e.OccurredAt) {
		body = fmt.Sprintf("# Subscription cancelled\n\n"+
			"Your **%s** subscription stays active until %s and will not renew.\n",
			e.BlockName, formatDate(e.EffectiveAt))
	} else {
		body = fmt.Sprintf("# Subscription ended\n\n"+
			"Your **%s** subscription has ended.\n", e.BlockName)
	}
	return customerEmail(e.CustomerEmail, "Your "+e.BlockName+" subscription", body)
}

func paymentFailedEmails(e subscription.PaymentFailedEvent, s MessageSettings) []Email {
	var b strings.Builder
	fmt.Fprintf(&b, "# We couldn't process your payment\n\n")
	fmt.Fprintf(&b, "The latest charge for **%s** failed.", e.BlockName)
	if e.GracePeriodEnd != nil {
		fmt.Fprintf(&b, " Your access continues until %s.", formatDate(*e.GracePeriodEnd))
	}
	fmt.Fprintf(&b, "\n\n[Update your payment method](%s)\n", billingURL(s))
	return customerEmail(e.CustomerEmail, "Payment failed for "+e.BlockName, b.String())
}

func reminderEmails(e subscription.ReminderRequestedEvent, s MessageSettings) []Email {
	var b strings.Builder
	fmt.Fprintf(&b, "# Payment reminder\n\n")
	fmt.Fprintf(&b, "Your **%s** subscription has an unpaid invoice.", e.BlockName)
	if e.GracePeriodEnd != nil {
		fmt.Fprintf(&b, " Please update your payment method before %s to keep access.", formatDate(*e.GracePeriodEnd))
	}
	fmt.Fprintf(&b, "\n\n[Update your payment method](%s)\n", billingURL(s))
	return customerEmail(e.CustomerEmail, "Reminder: payment due for "+e.BlockName, b.String())
}

func customerEmail(to, subject, body string) []Email {
	if to == "" {
		return nil
	}
	return []Email{{To: to, Subject: subject, MarkdownBody: body}}
}

func dashboardURL(s MessageSettings) string {
	return strings.TrimRight(s.BaseURL, "/") + "/dashboard"
}

func billingURL(s MessageSettings) string {
	return strings.TrimRight(s.BaseURL, "/") + "/billing"
}

func formatDate(t time.Time) string {
	return t.In(biztime.Location()).Format("January 2, 2006")
}
