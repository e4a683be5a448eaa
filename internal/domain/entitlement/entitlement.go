// Package entitlement models the three independent ways a user can own a
// block: a free unlock, a one-time purchase, or an active subscription.
package entitlement

import "time"

// Label names the mechanism through which a block is owned.
type Label string

const (
	LabelNone       Label = ""
	LabelSubscribed Label = "SUBSCRIBED"
	LabelPurchased  Label = "PURCHASED"
	LabelUnlocked   Label = "UNLOCKED"
)

func (l Label) String() string {
	return string(l)
}

// rank orders labels by precedence, higher wins.
func (l Label) rank() int {
	switch l {
	case LabelSubscribed:
		return 3
	case LabelPurchased:
		return 2
	case LabelUnlocked:
		return 1
	default:
		return 0
	}
}

// Entitlement is the tagged union of ownership records. FreeUnlock and
// Purchase live in this package; subscription.Subscription implements it too.
type Entitlement interface {
	UserID() uint
	BusinessID() uint
	BlockName() string
	Label() Label
	// GrantsAccessAt reports whether the record gives access at the instant.
	GrantsAccessAt(now time.Time) bool
}

// Ownership is the resolved ownership of one block for one user.
type Ownership struct {
	Owned bool  `json:"owned"`
	Label Label `json:"label,omitempty"`
}

// NotOwned is the ownership of a block with no granting record.
var NotOwned = Ownership{}

// Resolve computes ownership of a single block from every record the user has
// for it. Records that do not grant access at now are ignored. When several
// records grant access the label follows SUBSCRIBED > PURCHASED > UNLOCKED.
func Resolve(records []Entitlement, now time.Time) Ownership {
	best := LabelNone
	for _, record := range records {
		if record == nil || !record.GrantsAccessAt(now) {
			continue
		}
		if label := record.Label(); label.rank() > best.rank() {
			best = label
		}
	}

	if best == LabelNone {
		return NotOwned
	}
	return Ownership{Owned: true, Label: best}
}

// ResolveAll groups records by block name and resolves each group. Blocks
// without any granting record are absent from the result.
func ResolveAll(records []Entitlement, now time.Time) map[string]Ownership {
	grouped := make(map[string][]Entitlement)
	for _, record := range records {
		if record == nil {
			continue
		}
		grouped[record.BlockName()] = append(grouped[record.BlockName()], record)
	}

	result := make(map[string]Ownership, len(grouped))
	for name, group := range grouped {
		if ownership := Resolve(group, now); ownership.Owned {
			result[name] = ownership
		}
	}
	return result
}
