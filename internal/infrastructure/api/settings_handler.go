package api

import (
	"encoding/json"
	"net/http"

	"github.com/madeBeine/fastcomand-all-v1-sub001/internal/application"
	"github.com/madeBeine/fastcomand-all-v1-sub001/internal/domain"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

// SettingsHandler exposes the settings lifecycle over HTTP. One method per
// method+path combination; there is no dynamic dispatch.
type SettingsHandler struct {
	settings *application.SettingsService
	logger   zerolog.Logger
}

// NewSettingsHandler creates a new settings handler
func NewSettingsHandler(settings *application.SettingsService, logger zerolog.Logger) *SettingsHandler {
	return &SettingsHandler{
		settings: settings,
		logger:   logger,
	}
}

// GetPublished handles GET /settings
func (h *SettingsHandler) GetPublished(w http.ResponseWriter, r *http.Request) {
	doc, err := h.settings.GetPublished(r.Context())
	if err != nil {
		respondServiceError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, doc)
}

// ListVersions handles GET /settings/versions
func (h *SettingsHandler) ListVersions(w http.ResponseWriter, r *http.Request) {
	versions, err := h.settings.ListVersions(r.Context())
	if err != nil {
		respondServiceError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, versions)
}

// GetAuditLog handles GET /settings/audit-log
func (h *SettingsHandler) GetAuditLog(w http.ResponseWriter, r *http.Request) {
	entries, err := h.settings.GetAuditLog(r.Context())
	if err != nil {
		respondServiceError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, entries)
}

type createVersionRequest struct {
	Author  string                        `json:"author"`
	Content *domain.ConfigurationDocument `json:"content"`
	Message string                        `json:"message"`
}

// CreateVersion handles POST /settings/versions
func (h *SettingsHandler) CreateVersion(w http.ResponseWriter, r *http.Request) {
	var req createVersionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]any{"error": "invalid_body"})
		return
	}
	if req.Content == nil {
		respondJSON(w, http.StatusBadRequest, map[string]any{"error": "missing_content"})
		return
	}

	version, err := h.settings.CreateVersion(r.Context(), req.Author, *req.Content, req.Message)
	if err != nil {
		respondServiceError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusCreated, version)
}

// ValidateVersion handles GET /settings/validate?versionId=ID. With no
// versionId the current published document is validated.
func (h *SettingsHandler) ValidateVersion(w http.ResponseWriter, r *http.Request) {
	issues, err := h.settings.ValidateVersion(r.Context(), r.URL.Query().Get("versionId"))
	if err != nil {
		respondServiceError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"issues": issues})
}

type validateContentRequest struct {
	Content *domain.ConfigurationDocument `json:"content"`
}

// ValidateContent handles POST /settings/validate
func (h *SettingsHandler) ValidateContent(w http.ResponseWriter, r *http.Request) {
	var req validateContentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]any{"error": "invalid_body"})
		return
	}
	content := domain.ConfigurationDocument{}
	if req.Content != nil {
		content = *req.Content
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"issues": h.settings.ValidateContent(content),
	})
}

type authorRequest struct {
	Author string `json:"author"`
}

// Publish handles PUT /settings/versions/{id}/publish
func (h *SettingsHandler) Publish(w http.ResponseWriter, r *http.Request) {
	var req authorRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]any{"error": "invalid_body"})
		return
	}

	version, issues, err := h.settings.Publish(r.Context(), chi.URLParam(r, "id"), req.Author)
	if err != nil {
		respondServiceError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"ok":      true,
		"version": version,
		"issues":  issues,
	})
}

// Rollback handles POST /settings/versions/{id}/rollback
func (h *SettingsHandler) Rollback(w http.ResponseWriter, r *http.Request) {
	var req authorRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]any{"error": "invalid_body"})
		return
	}

	version, _, err := h.settings.Rollback(r.Context(), chi.URLParam(r, "id"), req.Author)
	if err != nil {
		respondServiceError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"ok":      true,
		"version": version,
	})
}

// Export handles GET /settings/export, returning the published document as
// raw JSON text.
func (h *SettingsHandler) Export(w http.ResponseWriter, r *http.Request) {
	doc, err := h.settings.ExportPublished(r.Context())
	if err != nil {
		respondServiceError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, doc)
}

type importRequest struct {
	Author  string                        `json:"author"`
	Content *domain.ConfigurationDocument `json:"content"`
}

// Import handles POST /settings/import
func (h *SettingsHandler) Import(w http.ResponseWriter, r *http.Request) {
	var req importRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]any{"error": "invalid_body"})
		return
	}

	version, err := h.settings.ImportContent(r.Context(), req.Author, req.Content)
	if err != nil {
		respondServiceError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusCreated, version)
}

// CheckPermission handles GET /settings/permissions?role=R&permission=P,
// the simple role-permission lookup against the published roles section.
func (h *SettingsHandler) CheckPermission(w http.ResponseWriter, r *http.Request) {
	role := r.URL.Query().Get("role")
	permission := r.URL.Query().Get("permission")
	if role == "" || permission == "" {
		respondJSON(w, http.StatusBadRequest, map[string]any{"error": "missing_role_or_permission"})
		return
	}

	doc, err := h.settings.GetPublished(r.Context())
	if err != nil {
		respondServiceError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"role":       role,
		"permission": permission,
		"allowed":    doc.Roles.HasPermission(role, permission),
	})
}
