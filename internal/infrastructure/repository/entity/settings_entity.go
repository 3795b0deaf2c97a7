package entity

import (
	"time"

	"github.com/madeBeine/fastcomand-all-v1-sub001/internal/domain"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MongoVersionDoc represents a settings version in MongoDB.
type MongoVersionDoc struct {
	ID          primitive.ObjectID           `bson:"_id,omitempty"`
	VersionID   string                       `bson:"versionId"`
	Author      string                       `bson:"author"`
	Status      string                       `bson:"status"`
	Message     string                       `bson:"message,omitempty"`
	Content     domain.ConfigurationDocument `bson:"content"`
	Diffs       []domain.FieldDiff           `bson:"diffs"`
	CreatedAt   time.Time                    `bson:"createdAt"`
	PublishedAt *time.Time                   `bson:"publishedAt,omitempty"`
}

// ToDomain converts the MongoDB document to a domain entity
func (d *MongoVersionDoc) ToDomain() *domain.SettingsVersion {
	return &domain.SettingsVersion{
		ID:          d.VersionID,
		Author:      d.Author,
		Status:      d.Status,
		Message:     d.Message,
		Content:     d.Content,
		Diffs:       d.Diffs,
		CreatedAt:   d.CreatedAt,
		PublishedAt: d.PublishedAt,
	}
}

// MongoVersionDocFromDomain converts a domain entity to a MongoDB document
func MongoVersionDocFromDomain(v *domain.SettingsVersion) *MongoVersionDoc {
	return &MongoVersionDoc{
		VersionID:   v.ID,
		Author:      v.Author,
		Status:      v.Status,
		Message:     v.Message,
		Content:     v.Content,
		Diffs:       v.Diffs,
		CreatedAt:   v.CreatedAt,
		PublishedAt: v.PublishedAt,
	}
}

// MongoAuditDoc represents an audit-log entry in MongoDB.
type MongoAuditDoc struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	EntryID   string             `bson:"entryId"`
	Type      string             `bson:"type"`
	User      string             `bson:"user"`
	Details   map[string]any     `bson:"details,omitempty"`
	CreatedAt time.Time          `bson:"createdAt"`
}

// ToDomain converts the MongoDB document to a domain entity
func (d *MongoAuditDoc) ToDomain() *domain.AuditLogEntry {
	return &domain.AuditLogEntry{
		ID:        d.EntryID,
		Type:      d.Type,
		User:      d.User,
		Details:   d.Details,
		CreatedAt: d.CreatedAt,
	}
}

// MongoAuditDocFromDomain converts a domain entity to a MongoDB document
func MongoAuditDocFromDomain(e *domain.AuditLogEntry) *MongoAuditDoc {
	return &MongoAuditDoc{
		EntryID:   e.ID,
		Type:      e.Type,
		User:      e.User,
		Details:   e.Details,
		CreatedAt: e.CreatedAt,
	}
}

// MongoPublishedDoc is the single current-published document. Revision is a
// monotonic counter bumped atomically on every overwrite.
type MongoPublishedDoc struct {
	ID        string                       `bson:"_id"`
	Revision  int64                        `bson:"revision"`
	Content   domain.ConfigurationDocument `bson:"content"`
	UpdatedAt time.Time                    `bson:"updatedAt"`
}
