package validation

import (
	"testing"

	"github.com/madeBeine/fastcomand-all-v1-sub001/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int { return &v }

func validDoc() domain.ConfigurationDocument {
	doc := domain.DefaultDocument()
	doc.Currencies.Rates = map[string]float64{"USD": 39.6, "AED": 10.8}
	doc.Shipping.Types = []domain.ShippingType{
		{ID: "air-uae", Kind: "air_standard", Country: "UAE", PricePerKgMRU: 1000, DurationDays: intPtr(7)},
		{ID: "sea-cn", Kind: "sea", Country: "CN", PricePerKgMRU: 300, DurationDays: intPtr(45)},
	}
	doc.Warehouse.Drawers = []domain.Drawer{
		{ID: "A1", Capacity: 20},
		{ID: "A2", Capacity: 20},
	}
	return doc
}

func TestValidate_ValidDocumentYieldsNoIssues(t *testing.T) {
	assert.Empty(t, Validate(validDoc()))
}

func TestValidate_NonPositiveCurrencyRate(t *testing.T) {
	doc := validDoc()
	doc.Currencies.Rates["USD"] = 0

	issues := Validate(doc)
	require.Len(t, issues, 1)
	assert.Equal(t, "currencies.rates.USD", issues[0].Path)
	assert.Equal(t, domain.SeverityError, issues[0].Severity)
}

func TestValidate_ShippingPriceAndDuration(t *testing.T) {
	doc := validDoc()
	doc.Shipping.Types[0].PricePerKgMRU = 0
	doc.Shipping.Types[1].DurationDays = intPtr(-3)

	issues := Validate(doc)
	require.Len(t, issues, 2)
	assert.Equal(t, "shipping.types.0.pricePerKgMRU", issues[0].Path)
	assert.Equal(t, "shipping.types.1.durationDays", issues[1].Path)
}

func TestValidate_OverlappingWindowsOneIssuePerGroup(t *testing.T) {
	doc := validDoc()
	doc.Shipping.Types = []domain.ShippingType{
		{ID: "w1", Kind: "air_standard", Country: "UAE", PricePerKgMRU: 1000,
			EffectiveFrom: "2024-01-01", EffectiveTo: "2024-03-01"},
		{ID: "w2", Kind: "air_standard", Country: "UAE", PricePerKgMRU: 1100,
			EffectiveFrom: "2024-02-01", EffectiveTo: "2024-06-01"},
		{ID: "w3", Kind: "air_standard", Country: "UAE", PricePerKgMRU: 1200,
			EffectiveFrom: "2024-05-01"},
	}

	issues := Validate(doc)
	require.Len(t, issues, 1, "one issue per offending group, not per entry")
	assert.Equal(t, "shipping.types", issues[0].Path)
	assert.Equal(t, domain.SeverityError, issues[0].Severity)
}

func TestValidate_AdjacentWindowsDoNotOverlap(t *testing.T) {
	doc := validDoc()
	doc.Shipping.Types = []domain.ShippingType{
		{ID: "w1", Kind: "air_standard", Country: "UAE", PricePerKgMRU: 1000,
			EffectiveFrom: "2024-01-01", EffectiveTo: "2024-02-01"},
		{ID: "w2", Kind: "air_standard", Country: "UAE", PricePerKgMRU: 1100,
			EffectiveFrom: "2024-02-02"},
	}
	assert.Empty(t, Validate(doc))
}

func TestValidate_SameBoundaryDayIsOverlap(t *testing.T) {
	doc := validDoc()
	doc.Shipping.Types = []domain.ShippingType{
		{ID: "w1", Kind: "air_standard", Country: "UAE", PricePerKgMRU: 1000,
			EffectiveFrom: "2024-01-01", EffectiveTo: "2024-02-01"},
		{ID: "w2", Kind: "air_standard", Country: "UAE", PricePerKgMRU: 1100,
			EffectiveFrom: "2024-02-01"},
	}
	issues := Validate(doc)
	require.Len(t, issues, 1)
	assert.Equal(t, "shipping.types", issues[0].Path)
}

func TestValidate_DifferentCountriesNeverOverlap(t *testing.T) {
	doc := validDoc()
	doc.Shipping.Types = []domain.ShippingType{
		{ID: "w1", Kind: "air_standard", Country: "UAE", PricePerKgMRU: 1000,
			EffectiveFrom: "2024-01-01"},
		{ID: "w2", Kind: "air_standard", Country: "CN", PricePerKgMRU: 1100,
			EffectiveFrom: "2024-01-01"},
	}
	assert.Empty(t, Validate(doc))
}

func TestValidate_Drawers(t *testing.T) {
	doc := validDoc()
	doc.Warehouse.Drawers = []domain.Drawer{
		{ID: "", Capacity: 10},
		{ID: "A1", Capacity: 0},
		{ID: "A1", Capacity: 5},
	}

	issues := Validate(doc)
	paths := make([]string, len(issues))
	for i, issue := range issues {
		paths[i] = issue.Path
	}
	assert.Contains(t, paths, "warehouse.drawers.0.id")
	assert.Contains(t, paths, "warehouse.drawers.1.capacity")
	assert.Contains(t, paths, "warehouse.drawers.2.id")
	require.Len(t, issues, 3)
}

func TestValidate_PercentRanges(t *testing.T) {
	doc := validDoc()
	doc.Warehouse.FullAlertThresholdPercent = 0
	doc.OrdersInvoices.DefaultCommissionPercent = 101
	doc.Delivery.CourierProfitPercent = -1

	issues := Validate(doc)
	paths := make([]string, len(issues))
	for i, issue := range issues {
		paths[i] = issue.Path
	}
	assert.Contains(t, paths, "warehouse.fullAlertThresholdPercent")
	assert.Contains(t, paths, "ordersInvoices.defaultCommissionPercent")
	assert.Contains(t, paths, "delivery.courierProfitPercent")
	require.Len(t, issues, 3)
}

func TestValidate_AccumulatesAcrossSections(t *testing.T) {
	doc := validDoc()
	doc.Currencies.Rates["EUR"] = -1
	doc.Shipping.Types[0].PricePerKgMRU = -5
	doc.Warehouse.FullAlertThresholdPercent = 200

	issues := Validate(doc)
	assert.Len(t, issues, 3, "validator must not short-circuit")
	assert.True(t, domain.HasErrors(issues))
}
