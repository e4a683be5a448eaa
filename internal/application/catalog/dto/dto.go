package dto

import (
	"time"

	"github.com/bizblocks/bizblocks/internal/domain/catalog"
	"github.com/bizblocks/bizblocks/internal/domain/entitlement"
	"github.com/bizblocks/bizblocks/internal/shared/utils"
)

// ResolvedBlockDTO is a catalog block with its pricing and the caller's ownership.
type ResolvedBlockDTO struct {
	Name              string `json:"name"`
	Category          string `json:"category"`
	Subtitle          string `json:"subtitle,omitempty"`
	Description       string `json:"description,omitempty"`
	IsAffiliate       bool   `json:"is_affiliate"`
	AffiliateLink     string `json:"affiliate_link,omitempty"`
	LogoURL           string `json:"logo_url,omitempty"`
	PricingType       string `json:"pricing_type"`
	PriceCents        int64  `json:"price_cents"`
	MonthlyPriceCents int64  `json:"monthly_price_cents"`
	IsFree            bool   `json:"is_free"`
	DisplayPrice      string `json:"display_price"`
	Owned             bool   `json:"owned"`
	OwnershipLabel    string `json:"ownership_label,omitempty"`
}

// PricingRecordDTO is the admin view of a pricing record.
type PricingRecordDTO struct {
	ID                uint      `json:"id"`
	BlockName         string    `json:"block_name"`
	PriceCents        int64     `json:"price_cents"`
	MonthlyPriceCents int64     `json:"monthly_price_cents"`
	PricingType       string    `json:"pricing_type"`
	IsFree            bool      `json:"is_free"`
	InCatalog         bool      `json:"in_catalog"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// UpsertPricingRequest is the body of PUT /admin/pricing/:block_name.
type UpsertPricingRequest struct {
	PriceCents        int64  `json:"price_cents" validate:"gte=0"`
	MonthlyPriceCents int64  `json:"monthly_price_cents" validate:"gte=0"`
	PricingType       string `json:"pricing_type" validate:"required,oneof=free one_time monthly"`
	IsFree            bool   `json:"is_free"`
}

// ToResolvedBlockDTO merges a resolved block with the caller's ownership.
func ToResolvedBlockDTO(block catalog.ResolvedBlock, ownership entitlement.Ownership, currency string) *ResolvedBlockDTO {
	display := "Free"
	if !block.IsFreeBlock() {
		display = utils.FormatCents(block.ChargeCents(), currency)
		if block.IsMonthly() {
			display += "/mo"
		}
	}

	return &ResolvedBlockDTO{
		Name:              block.Name,
		Category:          block.Category,
		Subtitle:          block.Subtitle,
		Description:       block.Description,
		IsAffiliate:       block.IsAffiliate,
		AffiliateLink:     block.AffiliateLink,
		LogoURL:           block.LogoURL,
		PricingType:       block.PricingType.String(),
		PriceCents:        block.PriceCents,
		MonthlyPriceCents: block.MonthlyPriceCents,
		IsFree:            block.IsFreeBlock(),
		DisplayPrice:      display,
		Owned:             ownership.Owned,
		OwnershipLabel:    ownership.Label.String(),
	}
}

// ToPricingRecordDTO converts a pricing record for the admin listing.
func ToPricingRecordDTO(record *catalog.PricingRecord, inCatalog bool) *PricingRecordDTO {
	if record == nil {
		return nil
	}

	return &PricingRecordDTO{
		ID:                record.ID(),
		BlockName:         record.BlockName(),
		PriceCents:        record.PriceCents(),
		MonthlyPriceCents: record.MonthlyPriceCents(),
		PricingType:       record.PricingType().String(),
		IsFree:            record.IsFree(),
		InCatalog:         inCatalog,
		UpdatedAt:         record.UpdatedAt(),
	}
}
