package entitlement

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bizblocks/bizblocks/internal/domain/catalog"
)

// fakeSubscription stands in for subscription.Subscription.
type fakeSubscription struct {
	block  string
	active bool
}

func (f *fakeSubscription) UserID() uint                  { return 1 }
func (f *fakeSubscription) BusinessID() uint              { return 1 }
func (f *fakeSubscription) BlockName() string             { return f.block }
func (f *fakeSubscription) Label() Label                  { return LabelSubscribed }
func (f *fakeSubscription) GrantsAccessAt(time.Time) bool { return f.active }

var testNow = time.Date(2026, 5, 10, 12, 0, 0, 0, time.UTC)

func newUnlock(t *testing.T, block string, expiresAt *time.Time) *FreeUnlock {
	t.Helper()
	u, err := NewFreeUnlock(1, 1, block, UnlockTypeFreeBlock, testNow.Add(-48*time.Hour), expiresAt)
	require.NoError(t, err)
	return u
}

func newPurchase(t *testing.T, block string) *Purchase {
	t.Helper()
	p, err := NewPurchase(1, 1, block, 4900, catalog.PricingTypeOneTime, "pay_1", "cs_1", testNow.Add(-time.Hour))
	require.NoError(t, err)
	return p
}

func TestResolve_AllPresenceCombinations(t *testing.T) {
	for mask := 0; mask < 8; mask++ {
		hasSub := mask&4 != 0
		hasPurchase := mask&2 != 0
		hasUnlock := mask&1 != 0

		t.Run(fmt.Sprintf("sub=%t/purchase=%t/unlock=%t", hasSub, hasPurchase, hasUnlock), func(t *testing.T) {
			var records []Entitlement
			if hasSub {
				records = append(records, &fakeSubscription{block: "Logo", active: true})
			}
			if hasPurchase {
				records = append(records, newPurchase(t, "Logo"))
			}
			if hasUnlock {
				records = append(records, newUnlock(t, "Logo", nil))
			}

			got := Resolve(records, testNow)

			switch {
			case hasSub:
				assert.Equal(t, Ownership{Owned: true, Label: LabelSubscribed}, got)
			case hasPurchase:
				assert.Equal(t, Ownership{Owned: true, Label: LabelPurchased}, got)
			case hasUnlock:
				assert.Equal(t, Ownership{Owned: true, Label: LabelUnlocked}, got)
			default:
				assert.Equal(t, NotOwned, got)
			}
		})
	}
}

func TestResolve_RecordOrderDoesNotMatter(t *testing.T) {
	sub := &fakeSubscription{block: "Logo", active: true}
	purchase := newPurchase(t, "Logo")
	unlock := newUnlock(t, "Logo", nil)

	a := Resolve([]Entitlement{unlock, purchase, sub}, testNow)
	b := Resolve([]Entitlement{sub, unlock, purchase}, testNow)
	assert.Equal(t, a, b)
	assert.Equal(t, LabelSubscribed, a.Label)
}

func TestResolve_IgnoresRecordsWithoutAccess(t *testing.T) {
	expired := testNow.Add(-time.Minute)

	got := Resolve([]Entitlement{
		&fakeSubscription{block: "Logo", active: false},
		newUnlock(t, "Logo", &expired),
	}, testNow)
	assert.Equal(t, NotOwned, got)

	got = Resolve([]Entitlement{
		&fakeSubscription{block: "Logo", active: false},
		newPurchase(t, "Logo"),
	}, testNow)
	assert.Equal(t, LabelPurchased, got.Label)
}

func TestResolve_IsMonotonic(t *testing.T) {
	pool := []Entitlement{
		newUnlock(t, "Logo", nil),
		newPurchase(t, "Logo"),
		&fakeSubscription{block: "Logo", active: true},
		&fakeSubscription{block: "Logo", active: false},
	}

	var records []Entitlement
	owned := false
	for _, r := range pool {
		records = append(records, r)
		got := Resolve(records, testNow)
		if owned {
			assert.True(t, got.Owned, "adding %T must not revoke ownership", r)
		}
		owned = got.Owned
	}
	assert.True(t, owned)
}

func TestResolveAll(t *testing.T) {
	result := ResolveAll([]Entitlement{
		newUnlock(t, "Logo", nil),
		newPurchase(t, "Logo"),
		newUnlock(t, "Website", nil),
		&fakeSubscription{block: "Legal", active: false},
		nil,
	}, testNow)

	assert.Equal(t, map[string]Ownership{
		"Logo":    {Owned: true, Label: LabelPurchased},
		"Website": {Owned: true, Label: LabelUnlocked},
	}, result)
}

func TestNewFreeUnlock_Validation(t *testing.T) {
	_, err := NewFreeUnlock(0, 1, "Logo", UnlockTypeFreeBlock, testNow, nil)
	assert.ErrorIs(t, err, ErrUserRequired)

	_, err = NewFreeUnlock(1, 0, "Logo", UnlockTypeFreeBlock, testNow, nil)
	assert.ErrorIs(t, err, ErrBusinessRequired)

	_, err = NewFreeUnlock(1, 1, "", UnlockTypeFreeBlock, testNow, nil)
	assert.ErrorIs(t, err, ErrBlockNameRequired)

	_, err = NewFreeUnlock(1, 1, "Logo", UnlockType("gift"), testNow, nil)
	assert.ErrorIs(t, err, ErrInvalidUnlockType)

	past := testNow.Add(-time.Second)
	_, err = NewFreeUnlock(1, 1, "Logo", UnlockTypePromotion, testNow, &past)
	assert.ErrorIs(t, err, ErrInvalidExpiry)
}

func TestFreeUnlock_Expiry(t *testing.T) {
	expires := testNow.Add(time.Hour)
	u, err := NewFreeUnlock(1, 1, "Logo", UnlockTypePromotion, testNow.Add(-time.Hour), &expires)
	require.NoError(t, err)

	assert.True(t, u.GrantsAccessAt(testNow))
	assert.False(t, u.GrantsAccessAt(expires))
}

func TestNewPurchase_Validation(t *testing.T) {
	_, err := NewPurchase(1, 1, "Logo", -1, catalog.PricingTypeOneTime, "", "", testNow)
	assert.ErrorIs(t, err, ErrInvalidPrice)

	_, err = NewPurchase(1, 1, "Logo", 100, catalog.PricingType("bogus"), "", "", testNow)
	assert.Error(t, err)

	p := newPurchase(t, "Logo")
	assert.True(t, p.GrantsAccessAt(testNow.Add(100*365*24*time.Hour)))
}
