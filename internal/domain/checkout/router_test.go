package checkout

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bizblocks/bizblocks/internal/domain/catalog"
	"github.com/bizblocks/bizblocks/internal/domain/entitlement"
)

func testSnapshot(t *testing.T) *catalog.Snapshot {
	t.Helper()

	entries := []catalog.CatalogEntry{
		{Name: "Business Name"},
		{Name: "Brand Colors"},
		{Name: "Logo Studio"},
		{Name: "Legal Setup"},
		{Name: "Website Builder"},
		{Name: "Email Marketing"},
	}
	newRecord := func(name string, price, monthly int64, pt catalog.PricingType, isFree bool) *catalog.PricingRecord {
		r, err := catalog.NewPricingRecord(name, price, monthly, pt, isFree)
		require.NoError(t, err)
		return r
	}
	pricing := []*catalog.PricingRecord{
		newRecord("Brand Colors", 0, 0, catalog.PricingTypeFree, true),
		newRecord("Logo Studio", 4900, 0, catalog.PricingTypeOneTime, false),
		newRecord("Legal Setup", 9900, 0, catalog.PricingTypeOneTime, false),
		newRecord("Website Builder", 0, 1500, catalog.PricingTypeMonthly, false),
		newRecord("Email Marketing", 0, 900, catalog.PricingTypeMonthly, false),
	}

	snap, err := catalog.NewSnapshot(entries, pricing, time.Now())
	require.NoError(t, err)
	return snap
}

func TestRouteSelection_DecisionTable(t *testing.T) {
	snap := testSnapshot(t)

	tests := []struct {
		name         string
		selection    []string
		wantRoute    Route
		wantFree     []string
		wantCheckout []string
		wantReject   bool
	}{
		{
			name:       "one-time and monthly are rejected",
			selection:  []string{"Logo Studio", "Website Builder"},
			wantRoute:  RouteRejected,
			wantFree:   []string{},
			wantReject: true,
		},
		{
			name:       "mixed cart still grants free blocks",
			selection:  []string{"Logo Studio", "Business Name", "Website Builder"},
			wantRoute:  RouteRejected,
			wantFree:   []string{"Business Name"},
			wantReject: true,
		},
		{
			name:         "monthly only routes to subscription checkout",
			selection:    []string{"Website Builder", "Email Marketing", "Brand Colors"},
			wantRoute:    RouteSubscription,
			wantFree:     []string{"Brand Colors"},
			wantCheckout: []string{"Website Builder", "Email Marketing"},
		},
		{
			name:         "one-time only routes to one-time checkout",
			selection:    []string{"Legal Setup", "Logo Studio"},
			wantRoute:    RouteOneTime,
			wantFree:     []string{},
			wantCheckout: []string{"Legal Setup", "Logo Studio"},
		},
		{
			name:      "free only is terminal",
			selection: []string{"Business Name", "Brand Colors"},
			wantRoute: RouteFreeOnly,
			wantFree:  []string{"Business Name", "Brand Colors"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			plan, err := RouteSelection(tt.selection, snap, nil)
			require.NoError(t, err)

			assert.Equal(t, tt.wantRoute, plan.Route)
			assert.Equal(t, tt.wantFree, plan.FreeBlockNames())
			if tt.wantCheckout == nil {
				assert.Empty(t, plan.CheckoutBlocks)
			} else {
				assert.Equal(t, tt.wantCheckout, plan.CheckoutBlockNames())
			}
			if tt.wantReject {
				assert.ErrorIs(t, plan.Rejection, ErrMixedCart)
			} else {
				assert.NoError(t, plan.Rejection)
			}
		})
	}
}

func TestRouteSelection_SkipsOwnedBlocks(t *testing.T) {
	snap := testSnapshot(t)
	owned := map[string]entitlement.Ownership{
		"Business Name": {Owned: true, Label: entitlement.LabelUnlocked},
		"Logo Studio":   {Owned: true, Label: entitlement.LabelPurchased},
	}

	plan, err := RouteSelection([]string{"Business Name", "Logo Studio", "Website Builder"}, snap, owned)
	require.NoError(t, err)

	assert.Equal(t, RouteSubscription, plan.Route)
	assert.Empty(t, plan.FreeBlocks)
	assert.Equal(t, []string{"Website Builder"}, plan.CheckoutBlockNames())
	assert.Equal(t, []string{"Business Name", "Logo Studio"}, plan.AlreadyOwned)
}

func TestRouteSelection_CollapsesDuplicates(t *testing.T) {
	plan, err := RouteSelection([]string{"Logo Studio", "Logo Studio", "Business Name", "Business Name"}, testSnapshot(t), nil)
	require.NoError(t, err)

	assert.Equal(t, []string{"Logo Studio"}, plan.CheckoutBlockNames())
	assert.Equal(t, []string{"Business Name"}, plan.FreeBlockNames())
	assert.Equal(t, int64(4900), plan.CheckoutTotalCents())
}

func TestRouteSelection_UnknownBlock(t *testing.T) {
	_, err := RouteSelection([]string{"Logo Studio", "Time Machine"}, testSnapshot(t), nil)
	assert.ErrorIs(t, err, ErrUnknownBlock)
}

func TestRouteSelection_EmptySelection(t *testing.T) {
	_, err := RouteSelection(nil, testSnapshot(t), nil)
	assert.ErrorIs(t, err, ErrEmptySelection)
}

func TestPlan_Mode(t *testing.T) {
	mode, ok := (&Plan{Route: RouteOneTime}).Mode()
	assert.True(t, ok)
	assert.Equal(t, ModeOneTime, mode)

	mode, ok = (&Plan{Route: RouteSubscription}).Mode()
	assert.True(t, ok)
	assert.Equal(t, ModeSubscription, mode)

	_, ok = (&Plan{Route: RouteRejected}).Mode()
	assert.False(t, ok)
	_, ok = (&Plan{Route: RouteFreeOnly}).Mode()
	assert.False(t, ok)
}
