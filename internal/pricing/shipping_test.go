package pricing

import (
	"math"
	"testing"

	"github.com/madeBeine/fastcomand-all-v1-sub001/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChooseShippingType_SelectsActiveWindow(t *testing.T) {
	types := []domain.ShippingType{
		{ID: "s1", Kind: "air_standard", Country: "UAE", PricePerKgMRU: 1000,
			EffectiveFrom: "2024-01-01", EffectiveTo: "2024-02-01"},
		{ID: "s2", Kind: "air_standard", Country: "UAE", PricePerKgMRU: 1200,
			EffectiveFrom: "2024-02-02"},
	}

	selected := ChooseShippingType(types, "air_standard", "UAE", date("2024-01-15"))
	require.NotNil(t, selected)
	assert.Equal(t, "s1", selected.ID)
	assert.Equal(t, 2500.0, ShippingCostByWeight(2.5, selected))

	selected = ChooseShippingType(types, "air_standard", "UAE", date("2024-03-01"))
	require.NotNil(t, selected)
	assert.Equal(t, "s2", selected.ID)
}

func TestChooseShippingType_CountrySpecificBeatsGeneric(t *testing.T) {
	types := []domain.ShippingType{
		{ID: "generic", Kind: "air_standard", PricePerKgMRU: 900},
		{ID: "uae", Kind: "air_standard", Country: "UAE", PricePerKgMRU: 1000},
	}
	selected := ChooseShippingType(types, "air_standard", "UAE", date("2024-01-15"))
	require.NotNil(t, selected)
	assert.Equal(t, "uae", selected.ID)
}

func TestChooseShippingType_GenericServesOtherCountries(t *testing.T) {
	types := []domain.ShippingType{
		{ID: "generic", Kind: "air_standard", PricePerKgMRU: 900},
		{ID: "uae", Kind: "air_standard", Country: "UAE", PricePerKgMRU: 1000},
	}
	selected := ChooseShippingType(types, "air_standard", "CN", date("2024-01-15"))
	require.NotNil(t, selected)
	assert.Equal(t, "generic", selected.ID)
}

func TestChooseShippingType_FallsBackToKindIgnoringDates(t *testing.T) {
	types := []domain.ShippingType{
		{ID: "cn", Kind: "sea", Country: "CN", PricePerKgMRU: 300,
			EffectiveFrom: "2020-01-01", EffectiveTo: "2020-06-01"},
	}
	// No kind+country match for UAE, but a sea entry exists for CN; the
	// best-effort fallback still produces it rather than blocking.
	selected := ChooseShippingType(types, "sea", "UAE", date("2024-01-15"))
	require.NotNil(t, selected)
	assert.Equal(t, "cn", selected.ID)
}

func TestChooseShippingType_FallsBackToCountryAlone(t *testing.T) {
	types := []domain.ShippingType{
		{ID: "uae-express", Kind: "air_express", Country: "UAE", PricePerKgMRU: 2000},
	}
	selected := ChooseShippingType(types, "sea", "UAE", date("2024-01-15"))
	require.NotNil(t, selected)
	assert.Equal(t, "uae-express", selected.ID)
}

func TestChooseShippingType_NothingMatches(t *testing.T) {
	types := []domain.ShippingType{
		{ID: "uae", Kind: "air_standard", Country: "UAE", PricePerKgMRU: 1000},
	}
	assert.Nil(t, ChooseShippingType(types, "sea", "CN", date("2024-01-15")))
	assert.Nil(t, ChooseShippingType(nil, "sea", "CN", date("2024-01-15")))
}

func TestChooseShippingType_InactivePreferredOnlyWhenNoActive(t *testing.T) {
	types := []domain.ShippingType{
		{ID: "expired", Kind: "air_standard", Country: "UAE", PricePerKgMRU: 800,
			EffectiveFrom: "2020-01-01", EffectiveTo: "2020-06-01"},
		{ID: "open", Kind: "air_standard", PricePerKgMRU: 900},
	}
	// The generic entry has no window and therefore counts as active; it
	// wins over the expired country-specific one.
	selected := ChooseShippingType(types, "air_standard", "UAE", date("2024-01-15"))
	require.NotNil(t, selected)
	assert.Equal(t, "open", selected.ID)
}

func TestShippingCostByWeight(t *testing.T) {
	typ := &domain.ShippingType{ID: "s1", Kind: "air_standard", PricePerKgMRU: 1000}

	assert.Equal(t, 2500.0, ShippingCostByWeight(2.5, typ))
	assert.Equal(t, 0.0, ShippingCostByWeight(2.5, nil))
	assert.Equal(t, 0.0, ShippingCostByWeight(-1, typ))
	assert.Equal(t, 0.0, ShippingCostByWeight(math.NaN(), typ))
	// 1.5 kg at 333/kg = 499.5 -> 500
	cheap := &domain.ShippingType{PricePerKgMRU: 333}
	assert.Equal(t, 500.0, ShippingCostByWeight(1.5, cheap))
}
