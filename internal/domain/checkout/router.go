package checkout

import (
	"fmt"

	"github.com/bizblocks/bizblocks/internal/domain/catalog"
	"github.com/bizblocks/bizblocks/internal/domain/entitlement"
)

// Route is the outcome of partitioning a selection.
type Route string

const (
	// RouteFreeOnly grants free blocks and stops.
	RouteFreeOnly Route = "free_only"
	// RouteOneTime sends the one-time blocks to a single-payment checkout.
	RouteOneTime Route = "one_time"
	// RouteSubscription sends the monthly blocks to a subscription checkout.
	RouteSubscription Route = "subscription"
	// RouteRejected means the cart mixed one-time and monthly blocks. Free
	// blocks in the same selection are still granted.
	RouteRejected Route = "rejected"
)

// Plan tells the caller what to grant and where to send the rest.
type Plan struct {
	Route Route
	// FreeBlocks are granted immediately as free unlocks, whatever the route.
	FreeBlocks []catalog.ResolvedBlock
	// CheckoutBlocks are the paid blocks for the routed checkout. Empty unless
	// Route is RouteOneTime or RouteSubscription.
	CheckoutBlocks []catalog.ResolvedBlock
	// AlreadyOwned lists selected blocks dropped because the user owns them.
	AlreadyOwned []string
	// Rejection carries ErrMixedCart when Route is RouteRejected.
	Rejection error
}

// CheckoutTotalCents sums what the routed checkout charges.
func (p *Plan) CheckoutTotalCents() int64 {
	var total int64
	for _, b := range p.CheckoutBlocks {
		total += b.ChargeCents()
	}
	return total
}

// CheckoutBlockNames returns the names of CheckoutBlocks in selection order.
func (p *Plan) CheckoutBlockNames() []string {
	return blockNames(p.CheckoutBlocks)
}

// LineItems prices CheckoutBlocks for a checkout session.
func (p *Plan) LineItems() []LineItem {
	items := make([]LineItem, 0, len(p.CheckoutBlocks))
	for _, b := range p.CheckoutBlocks {
		items = append(items, LineItem{BlockName: b.Name, AmountCents: b.ChargeCents()})
	}
	return items
}

// FreeBlockNames returns the names of FreeBlocks in selection order.
func (p *Plan) FreeBlockNames() []string {
	return blockNames(p.FreeBlocks)
}

// Mode returns the checkout session mode for the route.
func (p *Plan) Mode() (Mode, bool) {
	switch p.Route {
	case RouteOneTime:
		return ModeOneTime, true
	case RouteSubscription:
		return ModeSubscription, true
	default:
		return "", false
	}
}

// RouteSelection partitions the selection against one snapshot and applies
// the checkout decision table. It is a pure function: granting and charging
// are the caller's job.
//
// Duplicate names collapse to their first occurrence. An unknown name fails
// the whole selection with ErrUnknownBlock. Blocks the user already owns are
// moved to AlreadyOwned and never granted or charged again.
func RouteSelection(selection []string, snapshot *catalog.Snapshot, owned map[string]entitlement.Ownership) (*Plan, error) {
	if len(selection) == 0 {
		return nil, ErrEmptySelection
	}

	plan := &Plan{}
	var oneTime, monthly []catalog.ResolvedBlock
	seen := make(map[string]struct{}, len(selection))

	for _, name := range selection {
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}

		block, ok := snapshot.Lookup(name)
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnknownBlock, name)
		}
		if owned[name].Owned {
			plan.AlreadyOwned = append(plan.AlreadyOwned, name)
			continue
		}

		switch {
		case block.IsFreeBlock():
			plan.FreeBlocks = append(plan.FreeBlocks, block)
		case block.IsOneTime():
			oneTime = append(oneTime, block)
		case block.IsMonthly():
			monthly = append(monthly, block)
		default:
			return nil, fmt.Errorf("block %s has unsupported pricing type %s", name, block.PricingType)
		}
	}

	hasOneTime, hasMonthly := len(oneTime) > 0, len(monthly) > 0
	switch {
	case hasOneTime && hasMonthly:
		plan.Route = RouteRejected
		plan.Rejection = ErrMixedCart
	case hasMonthly:
		plan.Route = RouteSubscription
		plan.CheckoutBlocks = monthly
	case hasOneTime:
		plan.Route = RouteOneTime
		plan.CheckoutBlocks = oneTime
	default:
		plan.Route = RouteFreeOnly
	}

	return plan, nil
}

func blockNames(blocks []catalog.ResolvedBlock) []string {
	names := make([]string, 0, len(blocks))
	for _, b := range blocks {
		names = append(names, b.Name)
	}
	return names
}
