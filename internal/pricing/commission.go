package pricing

import (
	"time"

	"github.com/madeBeine/fastcomand-all-v1-sub001/internal/domain"
)

// Discount types accepted by DiscountAmount.
const (
	DiscountNone       = "none"
	DiscountPercentage = "percentage"
	DiscountFixed      = "fixed"
)

// ResolveActiveCommissionPolicy returns the single policy applicable to the
// store at the given instant, or nil when none applies. A policy qualifies
// when its scope is global or matches storeID and its effective window
// contains at (day granularity, inclusive bounds; a policy with no bounds is
// always active). Among qualifying policies the one with the latest
// EffectiveFrom wins, an unbounded start sorting as earliest; ties keep the
// earliest list position.
func ResolveActiveCommissionPolicy(policies []domain.CommissionPolicy, storeID string, at time.Time) *domain.CommissionPolicy {
	best := -1
	for i, p := range policies {
		if p.StoreID != "" && p.StoreID != storeID {
			continue
		}
		if !domain.WindowContains(p.EffectiveFrom, p.EffectiveTo, at) {
			continue
		}
		if best == -1 {
			best = i
			continue
		}
		from := domain.EffectiveFromOrEpoch(p.EffectiveFrom)
		if from.After(domain.EffectiveFromOrEpoch(policies[best].EffectiveFrom)) {
			best = i
		}
	}
	if best == -1 {
		return nil
	}
	selected := policies[best]
	return &selected
}

// CommissionAmount computes the service fee on an order amount. With no
// active policy the default percent applies; a percentage policy takes its
// cut of the amount; a fixed policy charges its value regardless of amount.
// Rounding happens once, on the final result.
func CommissionAmount(amount float64, policies []domain.CommissionPolicy, storeID string, defaultPercent float64, at time.Time) float64 {
	amount = sanitizeAmount(amount)

	policy := ResolveActiveCommissionPolicy(policies, storeID, at)
	if policy == nil {
		return roundMRU(sanitizeAmount(defaultPercent) / 100 * amount)
	}

	switch policy.Type {
	case domain.CommissionTypeFixed:
		return roundMRU(sanitizeAmount(policy.Value))
	case domain.CommissionTypePercentage:
		return roundMRU(sanitizeAmount(policy.Value) / 100 * amount)
	default:
		return roundMRU(sanitizeAmount(defaultPercent) / 100 * amount)
	}
}

// DiscountAmount computes the discount on an order amount. Unknown or "none"
// types and negative values yield zero.
func DiscountAmount(amount float64, discountType string, discountValue float64) float64 {
	amount = sanitizeAmount(amount)
	value := sanitizeAmount(discountValue)

	switch discountType {
	case DiscountPercentage:
		return roundMRU(value / 100 * amount)
	case DiscountFixed:
		return roundMRU(value)
	default:
		return 0
	}
}
