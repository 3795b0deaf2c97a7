package api

import (
	"encoding/json"
	"net/http"

	"github.com/madeBeine/fastcomand-all-v1-sub001/internal/application"

	"github.com/rs/zerolog"
)

// QuoteHandler exposes order and shipping quotes over HTTP.
type QuoteHandler struct {
	quotes *application.QuoteService
	logger zerolog.Logger
}

// NewQuoteHandler creates a new quote handler
func NewQuoteHandler(quotes *application.QuoteService, logger zerolog.Logger) *QuoteHandler {
	return &QuoteHandler{
		quotes: quotes,
		logger: logger,
	}
}

// QuoteOrder handles POST /quotes/order
func (h *QuoteHandler) QuoteOrder(w http.ResponseWriter, r *http.Request) {
	var input application.OrderQuoteInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]any{"error": "invalid_body"})
		return
	}

	quote, err := h.quotes.QuoteOrder(r.Context(), input)
	if err != nil {
		respondServiceError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, quote)
}

// QuoteShipping handles POST /quotes/shipping
func (h *QuoteHandler) QuoteShipping(w http.ResponseWriter, r *http.Request) {
	var input application.ShippingQuoteInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]any{"error": "invalid_body"})
		return
	}

	quote, err := h.quotes.QuoteShipping(r.Context(), input)
	if err != nil {
		respondServiceError(w, h.logger, err)
		return
	}
	if quote == nil {
		respondJSON(w, http.StatusNotFound, map[string]any{"error": "no_shipping_type"})
		return
	}
	respondJSON(w, http.StatusOK, quote)
}
