package catalog

// ResolvedBlock joins a catalog entry with its pricing record. It is derived
// on every resolution and never persisted.
type ResolvedBlock struct {
	CatalogEntry

	PricingType       PricingType
	PriceCents        int64
	MonthlyPriceCents int64
	IsFree            bool

	// HasPricing is false when no pricing record matched the block name and
	// the free/$0 defaults were applied.
	HasPricing bool
}

// IsFreeBlock reports whether the block is granted without charge.
func (b ResolvedBlock) IsFreeBlock() bool {
	return b.IsFree || b.PricingType == PricingTypeFree
}

// IsOneTime reports whether the block is sold as a single charge.
func (b ResolvedBlock) IsOneTime() bool {
	return !b.IsFreeBlock() && b.PricingType == PricingTypeOneTime
}

// IsMonthly reports whether the block is sold as a subscription.
func (b ResolvedBlock) IsMonthly() bool {
	return !b.IsFreeBlock() && b.PricingType == PricingTypeMonthly
}

// ChargeCents returns what a checkout for this block charges.
func (b ResolvedBlock) ChargeCents() int64 {
	switch {
	case b.IsOneTime():
		return b.PriceCents
	case b.IsMonthly():
		return b.MonthlyPriceCents
	default:
		return 0
	}
}

// Resolve merges catalog entries with pricing keyed by block name.
//
// Lookup is an exact, case-sensitive match. A catalog entry whose name has no
// pricing record resolves to a free block priced at 0, so a typo in either
// table makes a paid block free. Output follows catalog order.
func Resolve(entries []CatalogEntry, pricing map[string]*PricingRecord) []ResolvedBlock {
	resolved := make([]ResolvedBlock, 0, len(entries))
	for _, entry := range entries {
		block := ResolvedBlock{
			CatalogEntry: entry,
			PricingType:  PricingTypeFree,
		}

		if record, ok := pricing[entry.Name]; ok && record != nil {
			block.PricingType = record.PricingType()
			block.PriceCents = record.PriceCents()
			block.MonthlyPriceCents = record.MonthlyPriceCents()
			block.IsFree = record.IsFree()
			block.HasPricing = true
		}

		resolved = append(resolved, block)
	}
	return resolved
}
