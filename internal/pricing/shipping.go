package pricing

import (
	"time"

	"github.com/madeBeine/fastcomand-all-v1-sub001/internal/domain"
)

// ChooseShippingType resolves the shipping-type tier for a transport kind and
// optional destination country. Resolution is deliberately best-effort: a
// country-specific, currently-active rate must win over a generic default,
// but incomplete data should still yield some rate rather than block a
// calculation.
//
// Order: (a) among entries matching kind whose country is unset or equal,
// prefer active windows, then country-specific entries, then the latest
// EffectiveFrom, ties keeping list order; (b) failing that, the first entry
// matching kind alone, ignoring dates; (c) failing that, the first entry
// matching country alone; (d) otherwise nil.
func ChooseShippingType(types []domain.ShippingType, kind, country string, at time.Time) *domain.ShippingType {
	best := -1
	for i, t := range types {
		if t.Kind != kind {
			continue
		}
		if t.Country != "" && t.Country != country {
			continue
		}
		if best == -1 || betterShippingType(t, types[best], at) {
			best = i
		}
	}
	if best >= 0 {
		selected := types[best]
		return &selected
	}

	// Fall back to kind alone, then country alone, ignoring dates.
	for _, t := range types {
		if t.Kind == kind {
			selected := t
			return &selected
		}
	}
	if country != "" {
		for _, t := range types {
			if t.Country == country {
				selected := t
				return &selected
			}
		}
	}
	return nil
}

// betterShippingType reports whether candidate strictly beats current:
// active window first, then declared country, then latest EffectiveFrom.
func betterShippingType(candidate, current domain.ShippingType, at time.Time) bool {
	candActive := domain.WindowContains(candidate.EffectiveFrom, candidate.EffectiveTo, at)
	currActive := domain.WindowContains(current.EffectiveFrom, current.EffectiveTo, at)
	if candActive != currActive {
		return candActive
	}

	candCountry := candidate.Country != ""
	currCountry := current.Country != ""
	if candCountry != currCountry {
		return candCountry
	}

	return domain.EffectiveFromOrEpoch(candidate.EffectiveFrom).
		After(domain.EffectiveFromOrEpoch(current.EffectiveFrom))
}

// ShippingCostByWeight prices a shipment: round(pricePerKg * weight), or 0
// when no type was selected or the weight is malformed.
func ShippingCostByWeight(weightKg float64, t *domain.ShippingType) float64 {
	if t == nil {
		return 0
	}
	weightKg = sanitizeAmount(weightKg)
	return roundMRU(sanitizeAmount(t.PricePerKgMRU) * weightKg)
}
