package validation

import (
	"fmt"
	"sort"

	"github.com/madeBeine/fastcomand-all-v1-sub001/internal/domain"
)

// Validate inspects a full configuration snapshot and returns every finding.
// All rules run unconditionally and all findings accumulate; the validator
// never short-circuits and has no side effects.
func Validate(doc domain.ConfigurationDocument) []domain.ValidationIssue {
	issues := []domain.ValidationIssue{}

	issues = append(issues, checkCurrencyRates(doc.Currencies)...)
	issues = append(issues, checkShippingTypes(doc.Shipping)...)
	issues = append(issues, checkShippingWindows(doc.Shipping)...)
	issues = append(issues, checkWarehouse(doc.Warehouse)...)
	issues = append(issues, checkPercentRange("ordersInvoices.defaultCommissionPercent",
		doc.OrdersInvoices.DefaultCommissionPercent, 0, 100)...)
	issues = append(issues, checkPercentRange("delivery.courierProfitPercent",
		doc.Delivery.CourierProfitPercent, 0, 100)...)

	return issues
}

func checkCurrencyRates(c domain.CurrencySettings) []domain.ValidationIssue {
	var issues []domain.ValidationIssue
	codes := make([]string, 0, len(c.Rates))
	for code := range c.Rates {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	for _, code := range codes {
		if rate := c.Rates[code]; !(rate > 0) {
			issues = append(issues, domain.ValidationIssue{
				Path:     "currencies.rates." + code,
				Message:  fmt.Sprintf("exchange rate for %s must be a positive number, got %v", code, rate),
				Severity: domain.SeverityError,
			})
		}
	}
	return issues
}

func checkShippingTypes(s domain.ShippingSettings) []domain.ValidationIssue {
	var issues []domain.ValidationIssue
	for i, t := range s.Types {
		if !(t.PricePerKgMRU > 0) {
			issues = append(issues, domain.ValidationIssue{
				Path:     fmt.Sprintf("shipping.types.%d.pricePerKgMRU", i),
				Message:  fmt.Sprintf("price per kg must be positive, got %v", t.PricePerKgMRU),
				Severity: domain.SeverityError,
			})
		}
		if t.DurationDays != nil && *t.DurationDays < 0 {
			issues = append(issues, domain.ValidationIssue{
				Path:     fmt.Sprintf("shipping.types.%d.durationDays", i),
				Message:  fmt.Sprintf("duration days must not be negative, got %d", *t.DurationDays),
				Severity: domain.SeverityError,
			})
		}
	}
	return issues
}

// checkShippingWindows verifies that within each (kind, country) group the
// effective-date windows of dated entries do not overlap. A group with a
// violation yields exactly one issue tagged at shipping.types, not one per
// entry.
func checkShippingWindows(s domain.ShippingSettings) []domain.ValidationIssue {
	groups := map[string][]domain.ShippingType{}
	var order []string
	for _, t := range s.Types {
		if t.EffectiveFrom == "" && t.EffectiveTo == "" {
			continue // undated entries never participate in overlap checks
		}
		key := t.Kind + "|" + t.Country
		if _, seen := groups[key]; !seen {
			order = append(order, key)
		}
		groups[key] = append(groups[key], t)
	}

	var issues []domain.ValidationIssue
	for _, key := range order {
		group := groups[key]
		if len(group) < 2 {
			continue
		}
		sort.SliceStable(group, func(i, j int) bool {
			return domain.EffectiveFromOrEpoch(group[i].EffectiveFrom).
				Before(domain.EffectiveFromOrEpoch(group[j].EffectiveFrom))
		})
		for i := 0; i < len(group)-1; i++ {
			earlier, later := group[i], group[i+1]
			laterFrom := domain.EffectiveFromOrEpoch(later.EffectiveFrom)
			earlierTo, bounded := domain.ParseEffectiveDate(earlier.EffectiveTo)
			// An open-ended earlier window overlaps everything after it.
			if !bounded || !earlierTo.Before(laterFrom) {
				issues = append(issues, domain.ValidationIssue{
					Path: "shipping.types",
					Message: fmt.Sprintf("overlapping effective windows for kind %q country %q (%s and %s)",
						earlier.Kind, earlier.Country, earlier.ID, later.ID),
					Severity: domain.SeverityError,
				})
				break
			}
		}
	}
	return issues
}

func checkWarehouse(w domain.WarehouseSettings) []domain.ValidationIssue {
	var issues []domain.ValidationIssue
	seen := map[string]bool{}
	for i, d := range w.Drawers {
		switch {
		case d.ID == "":
			issues = append(issues, domain.ValidationIssue{
				Path:     fmt.Sprintf("warehouse.drawers.%d.id", i),
				Message:  "drawer id must be a non-empty string",
				Severity: domain.SeverityError,
			})
		case seen[d.ID]:
			issues = append(issues, domain.ValidationIssue{
				Path:     fmt.Sprintf("warehouse.drawers.%d.id", i),
				Message:  fmt.Sprintf("duplicate drawer id %q", d.ID),
				Severity: domain.SeverityError,
			})
		default:
			seen[d.ID] = true
		}
		if d.Capacity < 1 {
			issues = append(issues, domain.ValidationIssue{
				Path:     fmt.Sprintf("warehouse.drawers.%d.capacity", i),
				Message:  fmt.Sprintf("drawer capacity must be at least 1, got %d", d.Capacity),
				Severity: domain.SeverityError,
			})
		}
	}
	if w.FullAlertThresholdPercent < 1 || w.FullAlertThresholdPercent > 100 {
		issues = append(issues, domain.ValidationIssue{
			Path:     "warehouse.fullAlertThresholdPercent",
			Message:  fmt.Sprintf("full-alert threshold must be within [1, 100], got %v", w.FullAlertThresholdPercent),
			Severity: domain.SeverityError,
		})
	}
	return issues
}

func checkPercentRange(path string, value, min, max float64) []domain.ValidationIssue {
	if value < min || value > max {
		return []domain.ValidationIssue{{
			Path:     path,
			Message:  fmt.Sprintf("must be within [%v, %v], got %v", min, max, value),
			Severity: domain.SeverityError,
		}}
	}
	return nil
}
