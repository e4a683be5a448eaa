package entitlement

import (
	"strconv"
	"time"

	"github.com/bizblocks/bizblocks/internal/domain/shared/events"
)

const EventPurchaseCompleted = "purchase.completed"

// PurchaseCompletedEvent announces a one-time purchase. It drives the
// receipt email and the admin notification.
type PurchaseCompletedEvent struct {
	events.BaseEvent
	PurchaseID     uint   `json:"purchase_id"`
	UserID         uint   `json:"user_id"`
	BusinessID     uint   `json:"business_id"`
	BlockName      string `json:"block_name"`
	PricePaidCents int64  `json:"price_paid_cents"`
	CustomerEmail  string `json:"customer_email"`
}

func NewPurchaseCompletedEvent(p *Purchase, customerEmail string, now time.Time) *PurchaseCompletedEvent {
	return &PurchaseCompletedEvent{
		BaseEvent:      events.NewBaseEvent(EventPurchaseCompleted, strconv.FormatUint(uint64(p.ID()), 10), now),
		PurchaseID:     p.ID(),
		UserID:         p.UserID(),
		BusinessID:     p.BusinessID(),
		BlockName:      p.BlockName(),
		PricePaidCents: p.PricePaidCents(),
		CustomerEmail:  customerEmail,
	}
}
