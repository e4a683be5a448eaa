package testutil

import (
	"time"

	"github.com/bizblocks/bizblocks/internal/domain/catalog"
	"github.com/bizblocks/bizblocks/internal/domain/subscription"
)

// Reference instant shared by application tests.
var BaseTime = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

// DefaultCatalog returns a small catalog in display order. "hosting" has no
// pricing record in DefaultPricing.
func DefaultCatalog() []catalog.CatalogEntry {
	return []catalog.CatalogEntry{
		{Name: "website", Category: "presence", Subtitle: "One page site"},
		{Name: "logo", Category: "brand", Subtitle: "Logo pack"},
		{Name: "legal", Category: "setup", Subtitle: "LLC filing"},
		{Name: "seo", Category: "growth", Subtitle: "Search basics"},
		{Name: "ads", Category: "growth", Subtitle: "Managed ads"},
		{Name: "hosting", Category: "presence", Subtitle: "Managed hosting"},
	}
}

// SeedDefaultPricing stores pricing for every DefaultCatalog block but hosting.
func SeedDefaultPricing(repo *MockPricingRepository) {
	repo.AddRecord(MustPricing("website", 0, 0, catalog.PricingTypeFree, true))
	repo.AddRecord(MustPricing("logo", 4900, 0, catalog.PricingTypeOneTime, false))
	repo.AddRecord(MustPricing("legal", 19900, 0, catalog.PricingTypeOneTime, false))
	repo.AddRecord(MustPricing("seo", 0, 1000, catalog.PricingTypeMonthly, false))
	repo.AddRecord(MustPricing("ads", 0, 2000, catalog.PricingTypeMonthly, false))
}

func MustPricing(name string, price, monthly int64, pricingType catalog.PricingType, isFree bool) *catalog.PricingRecord {
	record, err := catalog.NewPricingRecord(name, price, monthly, pricingType, isFree)
	if err != nil {
		panic(err)
	}
	return record
}

// MustSubscription builds an active subscription over a 30 day period
// starting at periodStart.
func MustSubscription(userID, businessID uint, blockName string, monthlyCents int64, externalID string, periodStart time.Time) *subscription.Subscription {
	sub, err := subscription.NewSubscription(userID, businessID, blockName, monthlyCents,
		externalID, "owner@example.com", periodStart, periodStart.Add(30*24*time.Hour))
	if err != nil {
		panic(err)
	}
	return sub
}
