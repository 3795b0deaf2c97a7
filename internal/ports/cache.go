package ports

import (
	"context"

	"github.com/madeBeine/fastcomand-all-v1-sub001/internal/domain"
)

// SettingsCache is a read-through cache of the published configuration
// document. A cache miss or a cache failure is never fatal; callers fall back
// to the store.
type SettingsCache interface {
	// GetPublished returns (nil, nil) on a miss.
	GetPublished(ctx context.Context) (*domain.ConfigurationDocument, error)
	SetPublished(ctx context.Context, doc domain.ConfigurationDocument) error
	Invalidate(ctx context.Context) error
}
