package entitlement

import (
	"fmt"
	"time"

	"github.com/bizblocks/bizblocks/internal/domain/catalog"
)

// Purchase is a one-time payment for a block. It never expires.
type Purchase struct {
	id                uint
	userID            uint
	businessID        uint
	blockName         string
	pricePaidCents    int64
	pricingType       catalog.PricingType
	purchasedAt       time.Time
	paymentReference  string
	checkoutSessionID string
}

// NewPurchase records a completed one-time payment.
func NewPurchase(
	userID, businessID uint,
	blockName string,
	pricePaidCents int64,
	pricingType catalog.PricingType,
	paymentReference, checkoutSessionID string,
	purchasedAt time.Time,
) (*Purchase, error) {
	if err := validateScope(userID, businessID, blockName); err != nil {
		return nil, err
	}
	if pricePaidCents < 0 {
		return nil, ErrInvalidPrice
	}
	if !pricingType.IsValid() {
		return nil, fmt.Errorf("invalid pricing type: %s", pricingType)
	}

	return &Purchase{
		userID:            userID,
		businessID:        businessID,
		blockName:         blockName,
		pricePaidCents:    pricePaidCents,
		pricingType:       pricingType,
		purchasedAt:       purchasedAt,
		paymentReference:  paymentReference,
		checkoutSessionID: checkoutSessionID,
	}, nil
}

// ReconstructPurchase reconstructs a purchase from persistence
func ReconstructPurchase(
	id, userID, businessID uint,
	blockName string,
	pricePaidCents int64,
	pricingType catalog.PricingType,
	paymentReference, checkoutSessionID string,
	purchasedAt time.Time,
) (*Purchase, error) {
	if id == 0 {
		return nil, fmt.Errorf("purchase ID cannot be zero")
	}
	if err := validateScope(userID, businessID, blockName); err != nil {
		return nil, err
	}

	return &Purchase{
		id:                id,
		userID:            userID,
		businessID:        businessID,
		blockName:         blockName,
		pricePaidCents:    pricePaidCents,
		pricingType:       pricingType,
		purchasedAt:       purchasedAt,
		paymentReference:  paymentReference,
		checkoutSessionID: checkoutSessionID,
	}, nil
}

func (p *Purchase) ID() uint                         { return p.id }
func (p *Purchase) UserID() uint                     { return p.userID }
func (p *Purchase) BusinessID() uint                 { return p.businessID }
func (p *Purchase) BlockName() string                { return p.blockName }
func (p *Purchase) PricePaidCents() int64            { return p.pricePaidCents }
func (p *Purchase) PricingType() catalog.PricingType { return p.pricingType }
func (p *Purchase) PurchasedAt() time.Time           { return p.purchasedAt }
func (p *Purchase) PaymentReference() string         { return p.paymentReference }
func (p *Purchase) CheckoutSessionID() string        { return p.checkoutSessionID }
func (p *Purchase) Label() Label                     { return LabelPurchased }

// GrantsAccessAt always holds for a purchase.
func (p *Purchase) GrantsAccessAt(time.Time) bool {
	return true
}

// SetID sets the ID after persisting.
func (p *Purchase) SetID(id uint) {
	p.id = id
}
