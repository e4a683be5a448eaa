package subscription

import "time"

// CalculateProration returns the signed amount, in cents, for moving from
// oldPriceCents to newPriceCents at now within [periodStart, periodEnd).
// Positive means an extra charge, negative a credit. The result is the price
// difference scaled by the remaining share of the period, truncated toward zero.
func CalculateProration(oldPriceCents, newPriceCents int64, periodStart, periodEnd, now time.Time) (int64, error) {
	if oldPriceCents < 0 || newPriceCents < 0 {
		return 0, ErrInvalidPrice
	}

	total := int64(periodEnd.Sub(periodStart) / time.Second)
	if total <= 0 {
		return 0, ErrInvalidPeriod
	}

	remaining := int64(periodEnd.Sub(now) / time.Second)
	if remaining < 0 {
		remaining = 0
	}
	if remaining > total {
		remaining = total
	}

	return (newPriceCents - oldPriceCents) * remaining / total, nil
}
