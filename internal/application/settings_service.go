package application

import (
	"context"
	"fmt"
	"time"

	"github.com/madeBeine/fastcomand-all-v1-sub001/internal/domain"
	"github.com/madeBeine/fastcomand-all-v1-sub001/internal/infrastructure/metrics"
	"github.com/madeBeine/fastcomand-all-v1-sub001/internal/infrastructure/pubsub"
	"github.com/madeBeine/fastcomand-all-v1-sub001/internal/ports"
	"github.com/madeBeine/fastcomand-all-v1-sub001/internal/validation"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// SettingsService manages the configuration lifecycle: draft creation,
// validation, publish, rollback, import/export and the audit trail. It is the
// sole writer of the published document and the version history.
type SettingsService struct {
	versions  ports.VersionRepository
	audit     ports.AuditRepository
	published ports.PublishedStore
	cache     ports.SettingsCache // optional
	events    *pubsub.SettingsPubSub
	metrics   *metrics.Metrics
	logger    zerolog.Logger

	// validateOnRollback re-runs validation against current rules before a
	// rollback is published. Off by default: rolled-back content already
	// passed validation when it was first published, but rules may have
	// changed since, so the behavior is an explicit deployment choice.
	validateOnRollback bool
}

// SettingsServiceOptions configures optional service behavior.
type SettingsServiceOptions struct {
	Cache              ports.SettingsCache
	ValidateOnRollback bool
}

// NewSettingsService creates a new settings service
func NewSettingsService(
	versions ports.VersionRepository,
	audit ports.AuditRepository,
	published ports.PublishedStore,
	events *pubsub.SettingsPubSub,
	m *metrics.Metrics,
	logger zerolog.Logger,
	opts SettingsServiceOptions,
) *SettingsService {
	return &SettingsService{
		versions:           versions,
		audit:              audit,
		published:          published,
		cache:              opts.Cache,
		events:             events,
		metrics:            m,
		logger:             logger,
		validateOnRollback: opts.ValidateOnRollback,
	}
}

// CreateVersion stores a proposed configuration as a draft, diffed against
// the current published content. Drafts are accepted as-is, invalid ones
// included; only publish is gated by validation.
func (s *SettingsService) CreateVersion(ctx context.Context, author string, content domain.ConfigurationDocument, message string) (*domain.SettingsVersion, error) {
	defer s.observe("create_version", time.Now())
	return s.createDraft(ctx, author, content, message, domain.AuditVersionCreated)
}

// ImportContent stores an externally supplied document as a draft. It never
// auto-publishes.
func (s *SettingsService) ImportContent(ctx context.Context, author string, content *domain.ConfigurationDocument) (*domain.SettingsVersion, error) {
	defer s.observe("import", time.Now())
	if content == nil {
		return nil, domain.ErrMissingContent
	}
	version, err := s.createDraft(ctx, author, *content, "Imported settings", domain.AuditImport)
	if err != nil {
		return nil, err
	}
	s.metrics.Imports.Inc()
	return version, nil
}

func (s *SettingsService) createDraft(ctx context.Context, author string, content domain.ConfigurationDocument, message, auditType string) (*domain.SettingsVersion, error) {
	base, err := s.published.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load published document: %w", err)
	}
	if base == nil {
		base = &domain.ConfigurationDocument{}
	}

	version := &domain.SettingsVersion{
		ID:        uuid.NewString(),
		Author:    author,
		Status:    domain.VersionStatusDraft,
		Message:   message,
		Content:   content.Clone(),
		Diffs:     domain.DiffDocuments(*base, content),
		CreatedAt: time.Now(),
	}

	if err := s.versions.Insert(ctx, version); err != nil {
		return nil, fmt.Errorf("failed to store version: %w", err)
	}

	if err := s.appendAudit(ctx, auditType, author, map[string]any{
		"versionId":   version.ID,
		"message":     message,
		"changedKeys": diffKeys(version.Diffs),
	}); err != nil {
		return nil, err
	}

	s.metrics.VersionsCreated.Inc()
	s.publishEvent(domain.EventVersionCreated, version.ID, author)

	s.logger.Info().
		Str("versionId", version.ID).
		Str("author", author).
		Strs("changedKeys", diffKeys(version.Diffs)).
		Msg("Created settings draft")

	return version, nil
}

// ListVersions returns the full history, newest first.
func (s *SettingsService) ListVersions(ctx context.Context) ([]*domain.SettingsVersion, error) {
	return s.versions.List(ctx)
}

// ValidateContent validates a content snapshot without touching state.
func (s *SettingsService) ValidateContent(content domain.ConfigurationDocument) []domain.ValidationIssue {
	return validation.Validate(content)
}

// ValidateVersion validates a stored version's content; with an empty id it
// validates the current published document.
func (s *SettingsService) ValidateVersion(ctx context.Context, versionID string) ([]domain.ValidationIssue, error) {
	if versionID == "" {
		doc, err := s.published.Get(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to load published document: %w", err)
		}
		if doc == nil {
			empty := domain.ConfigurationDocument{}
			doc = &empty
		}
		return validation.Validate(*doc), nil
	}

	version, err := s.versions.Get(ctx, versionID)
	if err != nil {
		return nil, fmt.Errorf("failed to load version: %w", err)
	}
	if version == nil {
		return nil, domain.ErrVersionNotFound
	}
	return validation.Validate(version.Content), nil
}

// Publish promotes a draft to be the live configuration. The version's
// content is validated first; any error-severity issue blocks the publish
// without mutating state and the full issue list is returned as data.
func (s *SettingsService) Publish(ctx context.Context, versionID, author string) (*domain.SettingsVersion, []domain.ValidationIssue, error) {
	defer s.observe("publish", time.Now())

	version, err := s.versions.Get(ctx, versionID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load version: %w", err)
	}
	if version == nil {
		return nil, nil, domain.ErrVersionNotFound
	}

	issues := validation.Validate(version.Content)
	if domain.HasErrors(issues) {
		s.metrics.PublishRejections.Inc()
		s.logger.Warn().
			Str("versionId", versionID).
			Int("issues", len(issues)).
			Msg("Publish blocked by validation errors")
		return nil, issues, &domain.ValidationError{Issues: issues}
	}

	now := time.Now()
	if err := s.versions.MarkPublished(ctx, versionID, now); err != nil {
		return nil, nil, fmt.Errorf("failed to mark version published: %w", err)
	}
	if err := s.published.Set(ctx, version.Content); err != nil {
		return nil, nil, fmt.Errorf("failed to overwrite published document: %w", err)
	}

	// The audit entry carries the diff computed at creation time, not one
	// recomputed against whatever is published now.
	if err := s.appendAudit(ctx, domain.AuditVersionPublished, author, map[string]any{
		"versionId": versionID,
		"diffs":     version.Diffs,
	}); err != nil {
		return nil, nil, err
	}

	version.Status = domain.VersionStatusPublished
	version.PublishedAt = &now

	s.metrics.Publishes.Inc()
	s.invalidateCache(ctx)
	s.publishEvent(domain.EventPublished, versionID, author)

	s.logger.Info().
		Str("versionId", versionID).
		Str("author", author).
		Msg("Published settings version")

	return version, issues, nil
}

// Rollback re-publishes a historical snapshot as a brand-new version.
// History stays append-only: the target version is never touched. The new
// version is published immediately, bypassing validation unless the service
// was configured with ValidateOnRollback.
func (s *SettingsService) Rollback(ctx context.Context, versionID, author string) (*domain.SettingsVersion, []domain.ValidationIssue, error) {
	defer s.observe("rollback", time.Now())

	target, err := s.versions.Get(ctx, versionID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load version: %w", err)
	}
	if target == nil {
		return nil, nil, domain.ErrVersionNotFound
	}

	if s.validateOnRollback {
		issues := validation.Validate(target.Content)
		if domain.HasErrors(issues) {
			s.logger.Warn().
				Str("versionId", versionID).
				Int("issues", len(issues)).
				Msg("Rollback blocked by validation errors")
			return nil, issues, &domain.ValidationError{Issues: issues}
		}
	}

	base, err := s.published.Get(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load published document: %w", err)
	}
	if base == nil {
		base = &domain.ConfigurationDocument{}
	}

	now := time.Now()
	version := &domain.SettingsVersion{
		ID:          uuid.NewString(),
		Author:      author,
		Status:      domain.VersionStatusPublished,
		Message:     fmt.Sprintf("Rollback to version %s", versionID),
		Content:     target.Content.Clone(),
		Diffs:       domain.DiffDocuments(*base, target.Content),
		CreatedAt:   now,
		PublishedAt: &now,
	}

	if err := s.versions.Insert(ctx, version); err != nil {
		return nil, nil, fmt.Errorf("failed to store rollback version: %w", err)
	}
	if err := s.published.Set(ctx, version.Content); err != nil {
		return nil, nil, fmt.Errorf("failed to overwrite published document: %w", err)
	}

	if err := s.appendAudit(ctx, domain.AuditVersionRollback, author, map[string]any{
		"versionId":  version.ID,
		"rollbackOf": versionID,
	}); err != nil {
		return nil, nil, err
	}

	s.metrics.Rollbacks.Inc()
	s.metrics.Publishes.Inc()
	s.invalidateCache(ctx)
	s.publishEvent(domain.EventRollback, version.ID, author)

	s.logger.Info().
		Str("versionId", version.ID).
		Str("rollbackOf", versionID).
		Str("author", author).
		Msg("Rolled back settings")

	return version, nil, nil
}

// ExportPublished returns the current published document verbatim, or an
// empty document when nothing has ever been published.
func (s *SettingsService) ExportPublished(ctx context.Context) (domain.ConfigurationDocument, error) {
	doc, err := s.published.Get(ctx)
	if err != nil {
		return domain.ConfigurationDocument{}, fmt.Errorf("failed to load published document: %w", err)
	}
	if doc == nil {
		return domain.ConfigurationDocument{}, nil
	}
	return *doc, nil
}

// GetPublished returns the live configuration, read through the cache when
// one is configured. Cache failures degrade to a store read.
func (s *SettingsService) GetPublished(ctx context.Context) (domain.ConfigurationDocument, error) {
	if s.cache != nil {
		cached, err := s.cache.GetPublished(ctx)
		if err != nil {
			s.logger.Warn().Err(err).Msg("Settings cache read failed, falling back to store")
		} else if cached != nil {
			s.metrics.CacheHits.Inc()
			return *cached, nil
		} else {
			s.metrics.CacheMisses.Inc()
		}
	}

	doc, err := s.ExportPublished(ctx)
	if err != nil {
		return domain.ConfigurationDocument{}, err
	}

	if s.cache != nil {
		if err := s.cache.SetPublished(ctx, doc); err != nil {
			s.logger.Warn().Err(err).Msg("Failed to populate settings cache")
		}
	}
	return doc, nil
}

// GetAuditLog returns the full audit trail, newest first.
func (s *SettingsService) GetAuditLog(ctx context.Context) ([]*domain.AuditLogEntry, error) {
	return s.audit.List(ctx)
}

func (s *SettingsService) appendAudit(ctx context.Context, auditType, user string, details map[string]any) error {
	entry := &domain.AuditLogEntry{
		ID:        uuid.NewString(),
		Type:      auditType,
		User:      user,
		Details:   details,
		CreatedAt: time.Now(),
	}
	if err := s.audit.Append(ctx, entry); err != nil {
		return fmt.Errorf("failed to append audit entry: %w", err)
	}
	return nil
}

func (s *SettingsService) invalidateCache(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx); err != nil {
		s.logger.Warn().Err(err).Msg("Failed to invalidate settings cache")
	}
}

func (s *SettingsService) publishEvent(eventType, versionID, author string) {
	if s.events == nil {
		return
	}
	s.events.Publish(&domain.SettingsEvent{
		Type:       eventType,
		VersionID:  versionID,
		Author:     author,
		OccurredAt: time.Now(),
	})
}

func (s *SettingsService) observe(operation string, start time.Time) {
	s.metrics.OperationDuration.WithLabelValues(operation).Observe(time.Since(start).Seconds())
}

func diffKeys(diffs []domain.FieldDiff) []string {
	keys := make([]string, 0, len(diffs))
	for _, d := range diffs {
		keys = append(keys, d.Key)
	}
	return keys
}
