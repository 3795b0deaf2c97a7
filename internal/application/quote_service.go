package application

import (
	"context"
	"fmt"
	"time"

	"github.com/madeBeine/fastcomand-all-v1-sub001/internal/domain"
	"github.com/madeBeine/fastcomand-all-v1-sub001/internal/pricing"

	"github.com/rs/zerolog"
)

// QuoteService prices orders and shipments against the live configuration.
// All calculation is delegated to the pure pricing resolver; this service
// only supplies the published document and the current time.
type QuoteService struct {
	settings *SettingsService
	logger   zerolog.Logger
}

// NewQuoteService creates a new quote service
func NewQuoteService(settings *SettingsService, logger zerolog.Logger) *QuoteService {
	return &QuoteService{
		settings: settings,
		logger:   logger,
	}
}

// OrderQuoteInput represents input for an order quote
type OrderQuoteInput struct {
	Amount        float64 `json:"amount"`
	StoreID       string  `json:"storeId,omitempty"`
	DiscountType  string  `json:"discountType,omitempty"`
	DiscountValue float64 `json:"discountValue,omitempty"`
}

// OrderQuote is the priced breakdown of an order.
type OrderQuote struct {
	Amount     float64 `json:"amount"`
	Commission float64 `json:"commission"`
	Discount   float64 `json:"discount"`
	Total      float64 `json:"total"`
	PolicyID   string  `json:"policyId,omitempty"`
}

// QuoteOrder computes commission and discount for an order amount using the
// published commission policies and the default commission percent.
func (s *QuoteService) QuoteOrder(ctx context.Context, input OrderQuoteInput) (*OrderQuote, error) {
	doc, err := s.settings.GetPublished(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load settings: %w", err)
	}

	now := time.Now()
	policies := doc.Commissions.Policies
	defaultPercent := doc.OrdersInvoices.DefaultCommissionPercent

	quote := &OrderQuote{
		Amount:     input.Amount,
		Commission: pricing.CommissionAmount(input.Amount, policies, input.StoreID, defaultPercent, now),
		Discount:   pricing.DiscountAmount(input.Amount, input.DiscountType, input.DiscountValue),
	}
	quote.Total = quote.Amount + quote.Commission - quote.Discount
	if policy := pricing.ResolveActiveCommissionPolicy(policies, input.StoreID, now); policy != nil {
		quote.PolicyID = policy.ID
	}

	s.logger.Debug().
		Float64("amount", input.Amount).
		Str("storeId", input.StoreID).
		Float64("commission", quote.Commission).
		Msg("Priced order quote")

	return quote, nil
}

// ShippingQuoteInput represents input for a shipping quote
type ShippingQuoteInput struct {
	WeightKg float64 `json:"weightKg"`
	Kind     string  `json:"kind"`
	Country  string  `json:"country,omitempty"`
}

// ShippingQuote is the priced shipping option for a shipment.
type ShippingQuote struct {
	Type         domain.ShippingType `json:"type"`
	CostMRU      float64             `json:"costMRU"`
	DurationDays *int                `json:"durationDays,omitempty"`
}

// QuoteShipping resolves the shipping tier for a kind/country and prices the
// shipment by weight. Returns (nil, nil) when no tier could be resolved even
// by the best-effort fallbacks.
func (s *QuoteService) QuoteShipping(ctx context.Context, input ShippingQuoteInput) (*ShippingQuote, error) {
	doc, err := s.settings.GetPublished(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load settings: %w", err)
	}

	selected := pricing.ChooseShippingType(doc.Shipping.Types, input.Kind, input.Country, time.Now())
	if selected == nil {
		s.logger.Warn().
			Str("kind", input.Kind).
			Str("country", input.Country).
			Msg("No shipping type matched")
		return nil, nil
	}

	return &ShippingQuote{
		Type:         *selected,
		CostMRU:      pricing.ShippingCostByWeight(input.WeightKg, selected),
		DurationDays: selected.DurationDays,
	}, nil
}
