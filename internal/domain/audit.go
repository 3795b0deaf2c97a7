package domain

import "time"

// Audit event types written by the settings service.
const (
	AuditVersionCreated   = "settings.version.created"
	AuditVersionPublished = "settings.version.published"
	AuditVersionRollback  = "settings.version.rollback"
	AuditImport           = "settings.import"
)

// AuditLogEntry answers: who changed what configuration and when. Entries are
// append-only and written synchronously with every mutating operation; they
// are never deleted or edited.
type AuditLogEntry struct {
	ID        string         `json:"id" bson:"id"`
	Type      string         `json:"type" bson:"type"`
	User      string         `json:"user" bson:"user"`
	Details   map[string]any `json:"details,omitempty" bson:"details,omitempty"`
	CreatedAt time.Time      `json:"createdAt" bson:"createdAt"`
}
