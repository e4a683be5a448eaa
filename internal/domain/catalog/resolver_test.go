package catalog

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustPricing(t *testing.T, name string, price, monthly int64, pt PricingType, isFree bool) *PricingRecord {
	t.Helper()
	p, err := NewPricingRecord(name, price, monthly, pt, isFree)
	require.NoError(t, err)
	return p
}

func sampleEntries() []CatalogEntry {
	return []CatalogEntry{
		{Name: "Website Builder", Category: "web"},
		{Name: "Logo Maker", Category: "brand"},
		{Name: "Legal Setup", Category: "legal"},
	}
}

func TestResolve_DefaultsToFreeWithoutPricing(t *testing.T) {
	blocks := Resolve(sampleEntries(), map[string]*PricingRecord{})

	require.Len(t, blocks, 3)
	for _, b := range blocks {
		assert.Equal(t, PricingTypeFree, b.PricingType)
		assert.Zero(t, b.PriceCents)
		assert.Zero(t, b.MonthlyPriceCents)
		assert.False(t, b.HasPricing)
		assert.True(t, b.IsFreeBlock())
	}
}

func TestResolve_UsesStoredPricingExactly(t *testing.T) {
	pricing := map[string]*PricingRecord{
		"Website Builder": mustPricing(t, "Website Builder", 0, 1500, PricingTypeMonthly, false),
		"Logo Maker":      mustPricing(t, "Logo Maker", 4900, 0, PricingTypeOneTime, false),
	}

	blocks := Resolve(sampleEntries(), pricing)

	assert.Equal(t, PricingTypeMonthly, blocks[0].PricingType)
	assert.Equal(t, int64(1500), blocks[0].MonthlyPriceCents)
	assert.True(t, blocks[0].IsMonthly())
	assert.Equal(t, int64(1500), blocks[0].ChargeCents())

	assert.Equal(t, PricingTypeOneTime, blocks[1].PricingType)
	assert.Equal(t, int64(4900), blocks[1].PriceCents)
	assert.True(t, blocks[1].IsOneTime())

	assert.False(t, blocks[2].HasPricing)
}

func TestResolve_PreservesCatalogOrder(t *testing.T) {
	blocks := Resolve(sampleEntries(), nil)

	names := make([]string, 0, len(blocks))
	for _, b := range blocks {
		names = append(names, b.Name)
	}
	assert.Equal(t, []string{"Website Builder", "Logo Maker", "Legal Setup"}, names)
}

func TestResolve_NameMatchIsCaseSensitive(t *testing.T) {
	pricing := map[string]*PricingRecord{
		"logo maker": mustPricing(t, "logo maker", 4900, 0, PricingTypeOneTime, false),
	}

	blocks := Resolve(sampleEntries(), pricing)

	// A name mismatch silently falls back to a free block.
	assert.Equal(t, PricingTypeFree, blocks[1].PricingType)
	assert.Zero(t, blocks[1].ChargeCents())
	assert.False(t, blocks[1].HasPricing)
}

func TestResolvedBlock_FreeFlagOverridesType(t *testing.T) {
	b := ResolvedBlock{PricingType: PricingTypeFree, IsFree: true, PriceCents: 999}
	assert.True(t, b.IsFreeBlock())
	assert.False(t, b.IsOneTime())
	assert.Zero(t, b.ChargeCents())
}

func TestNewSnapshot(t *testing.T) {
	now := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	pricing := []*PricingRecord{
		mustPricing(t, "Logo Maker", 4900, 0, PricingTypeOneTime, false),
		mustPricing(t, "Retired Block", 100, 0, PricingTypeOneTime, false),
	}

	snap, err := NewSnapshot(sampleEntries(), pricing, now)
	require.NoError(t, err)

	assert.Equal(t, 3, snap.Len())
	assert.Equal(t, now, snap.TakenAt())
	assert.Equal(t, []string{"Retired Block"}, snap.OrphanedPricing())
	assert.Equal(t, []string{"Website Builder", "Legal Setup"}, snap.Unpriced())

	logo, ok := snap.Lookup("Logo Maker")
	require.True(t, ok)
	assert.Equal(t, int64(4900), logo.PriceCents)

	_, ok = snap.Lookup("Retired Block")
	assert.False(t, ok)
}

func TestNewSnapshot_RequiresBothInputs(t *testing.T) {
	_, err := NewSnapshot(nil, []*PricingRecord{}, time.Now())
	assert.ErrorIs(t, err, ErrCatalogUnavailable)

	_, err = NewSnapshot(sampleEntries(), nil, time.Now())
	assert.ErrorIs(t, err, ErrPricingUnavailable)

	snap, err := NewSnapshot(sampleEntries(), []*PricingRecord{}, time.Now())
	require.NoError(t, err)
	assert.Equal(t, 3, snap.Len())
}

func TestNewSnapshot_RejectsDuplicateEntries(t *testing.T) {
	entries := append(sampleEntries(), CatalogEntry{Name: "Logo Maker"})

	_, err := NewSnapshot(entries, []*PricingRecord{}, time.Now())
	assert.ErrorIs(t, err, ErrDuplicateCatalogEntry)
}

func TestSnapshot_BlocksReturnsCopy(t *testing.T) {
	snap, err := NewSnapshot(sampleEntries(), []*PricingRecord{}, time.Now())
	require.NoError(t, err)

	blocks := snap.Blocks()
	blocks[0].Name = "mutated"

	_, ok := snap.Lookup("Website Builder")
	assert.True(t, ok)
	assert.Equal(t, "Website Builder", snap.Blocks()[0].Name)
}
