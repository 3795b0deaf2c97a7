package ports

import (
	"context"
	"time"

	"github.com/madeBeine/fastcomand-all-v1-sub001/internal/domain"
)

// VersionRepository persists the append-only settings version history.
// Implementations must serialize their own read-modify-write cycles so that
// concurrent inserts never lose an entry.
type VersionRepository interface {
	Insert(ctx context.Context, version *domain.SettingsVersion) error
	// Get returns (nil, nil) when the id does not exist.
	Get(ctx context.Context, id string) (*domain.SettingsVersion, error)
	// List returns all versions newest first.
	List(ctx context.Context) ([]*domain.SettingsVersion, error)
	MarkPublished(ctx context.Context, id string, at time.Time) error
}

// AuditRepository persists the append-only audit log.
type AuditRepository interface {
	Append(ctx context.Context, entry *domain.AuditLogEntry) error
	// List returns all entries newest first.
	List(ctx context.Context) ([]*domain.AuditLogEntry, error)
}

// PublishedStore holds the single current published configuration document.
// The settings service is its only writer.
type PublishedStore interface {
	// Get returns (nil, nil) when nothing has ever been published.
	Get(ctx context.Context) (*domain.ConfigurationDocument, error)
	Set(ctx context.Context, doc domain.ConfigurationDocument) error
}
