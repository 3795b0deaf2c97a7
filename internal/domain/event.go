package domain

import "time"

// Settings event types broadcast over the in-process pub/sub.
const (
	EventVersionCreated = "version.created"
	EventPublished      = "published"
	EventRollback       = "rollback"
	EventImported       = "imported"
)

// SettingsEvent is broadcast after every successful mutating operation so
// that in-process consumers (cache invalidation, future UI push) can react.
type SettingsEvent struct {
	Type       string    `json:"type"`
	VersionID  string    `json:"versionId"`
	Author     string    `json:"author"`
	OccurredAt time.Time `json:"occurredAt"`
}
