package catalog

import (
	"fmt"
	"time"
)

// PricingType is how a block is charged for.
type PricingType string

const (
	PricingTypeFree    PricingType = "free"
	PricingTypeOneTime PricingType = "one_time"
	PricingTypeMonthly PricingType = "monthly"
)

func (t PricingType) String() string {
	return string(t)
}

func (t PricingType) IsValid() bool {
	switch t {
	case PricingTypeFree, PricingTypeOneTime, PricingTypeMonthly:
		return true
	default:
		return false
	}
}

// PricingRecord is the admin-editable monetization config of one block.
type PricingRecord struct {
	id                uint
	blockName         string
	priceCents        int64
	monthlyPriceCents int64
	pricingType       PricingType
	isFree            bool
	createdAt         time.Time
	updatedAt         time.Time
}

// NewPricingRecord creates a pricing record after checking its invariants.
func NewPricingRecord(blockName string, priceCents, monthlyPriceCents int64, pricingType PricingType, isFree bool) (*PricingRecord, error) {
	if blockName == "" {
		return nil, ErrBlockNameRequired
	}
	if err := validatePricing(priceCents, monthlyPriceCents, pricingType, isFree); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	return &PricingRecord{
		blockName:         blockName,
		priceCents:        priceCents,
		monthlyPriceCents: monthlyPriceCents,
		pricingType:       pricingType,
		isFree:            isFree,
		createdAt:         now,
		updatedAt:         now,
	}, nil
}

// ReconstructPricingRecord reconstructs a pricing record from persistence
func ReconstructPricingRecord(
	id uint,
	blockName string,
	priceCents, monthlyPriceCents int64,
	pricingType PricingType,
	isFree bool,
	createdAt, updatedAt time.Time,
) (*PricingRecord, error) {
	if id == 0 {
		return nil, fmt.Errorf("pricing record ID cannot be zero")
	}
	if blockName == "" {
		return nil, ErrBlockNameRequired
	}
	if !pricingType.IsValid() {
		return nil, fmt.Errorf("%w: %s", ErrInvalidPricingType, pricingType)
	}

	return &PricingRecord{
		id:                id,
		blockName:         blockName,
		priceCents:        priceCents,
		monthlyPriceCents: monthlyPriceCents,
		pricingType:       pricingType,
		isFree:            isFree,
		createdAt:         createdAt,
		updatedAt:         updatedAt,
	}, nil
}

func validatePricing(priceCents, monthlyPriceCents int64, pricingType PricingType, isFree bool) error {
	if !pricingType.IsValid() {
		return fmt.Errorf("%w: %s", ErrInvalidPricingType, pricingType)
	}
	if priceCents < 0 || monthlyPriceCents < 0 {
		return fmt.Errorf("%w: prices must not be negative", ErrInvalidPrice)
	}
	if isFree && pricingType != PricingTypeFree {
		return ErrFreeFlagMismatch
	}
	return nil
}

func (p *PricingRecord) ID() uint                 { return p.id }
func (p *PricingRecord) BlockName() string        { return p.blockName }
func (p *PricingRecord) PriceCents() int64        { return p.priceCents }
func (p *PricingRecord) MonthlyPriceCents() int64 { return p.monthlyPriceCents }
func (p *PricingRecord) PricingType() PricingType { return p.pricingType }
func (p *PricingRecord) IsFree() bool             { return p.isFree }
func (p *PricingRecord) CreatedAt() time.Time     { return p.createdAt }
func (p *PricingRecord) UpdatedAt() time.Time     { return p.updatedAt }

// SetID sets the ID after persisting.
func (p *PricingRecord) SetID(id uint) error {
	if p.id != 0 {
		return fmt.Errorf("pricing record ID already set")
	}
	if id == 0 {
		return fmt.Errorf("pricing record ID cannot be zero")
	}
	p.id = id
	return nil
}

// Update replaces the monetization fields. The block name is immutable.
func (p *PricingRecord) Update(priceCents, monthlyPriceCents int64, pricingType PricingType, isFree bool) error {
	if err := validatePricing(priceCents, monthlyPriceCents, pricingType, isFree); err != nil {
		return err
	}

	p.priceCents = priceCents
	p.monthlyPriceCents = monthlyPriceCents
	p.pricingType = pricingType
	p.isFree = isFree
	p.updatedAt = time.Now().UTC()
	return nil
}
