package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/madeBeine/fastcomand-all-v1-sub001/internal/domain"

	"github.com/rs/zerolog"
)

func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// respondServiceError maps domain errors onto the HTTP error contract:
// NotFound -> 404, ValidationFailed -> 400 with the issue list,
// MissingContent -> 400, anything else -> 500.
func respondServiceError(w http.ResponseWriter, logger zerolog.Logger, err error) {
	var validationErr *domain.ValidationError
	switch {
	case errors.Is(err, domain.ErrVersionNotFound):
		respondJSON(w, http.StatusNotFound, map[string]any{"error": "not_found"})
	case errors.As(err, &validationErr):
		respondJSON(w, http.StatusBadRequest, map[string]any{
			"error":  "validation_failed",
			"issues": validationErr.Issues,
		})
	case errors.Is(err, domain.ErrMissingContent):
		respondJSON(w, http.StatusBadRequest, map[string]any{"error": "missing_content"})
	default:
		logger.Error().Err(err).Msg("Settings request failed")
		respondJSON(w, http.StatusInternalServerError, map[string]any{"error": "internal_error"})
	}
}
