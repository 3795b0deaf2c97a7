package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/madeBeine/fastcomand-all-v1-sub001/internal/domain"
	"github.com/madeBeine/fastcomand-all-v1-sub001/internal/infrastructure/repository/entity"
	"github.com/madeBeine/fastcomand-all-v1-sub001/internal/ports"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const publishedDocID = "published"

// MongoVersionRepository implements VersionRepository using MongoDB
type MongoVersionRepository struct {
	collection *mongo.Collection
}

// NewMongoVersionRepository creates a new MongoDB version repository
func NewMongoVersionRepository(db *mongo.Database) ports.VersionRepository {
	return &MongoVersionRepository{
		collection: db.Collection("settings_versions"),
	}
}

// Insert stores a new version. InsertOne is atomic, so concurrent inserts
// never lose an entry.
func (r *MongoVersionRepository) Insert(ctx context.Context, version *domain.SettingsVersion) error {
	doc := entity.MongoVersionDocFromDomain(version)
	if _, err := r.collection.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("failed to insert version: %w", err)
	}
	return nil
}

// Get retrieves a version by id, returning (nil, nil) when absent
func (r *MongoVersionRepository) Get(ctx context.Context, id string) (*domain.SettingsVersion, error) {
	var doc entity.MongoVersionDoc
	err := r.collection.FindOne(ctx, bson.M{"versionId": id}).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get version: %w", err)
	}
	return doc.ToDomain(), nil
}

// List retrieves all versions, newest first
func (r *MongoVersionRepository) List(ctx context.Context) ([]*domain.SettingsVersion, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list versions: %w", err)
	}
	defer cursor.Close(ctx)

	versions := []*domain.SettingsVersion{}
	for cursor.Next(ctx) {
		var doc entity.MongoVersionDoc
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("failed to decode version: %w", err)
		}
		versions = append(versions, doc.ToDomain())
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("cursor error: %w", err)
	}
	return versions, nil
}

// MarkPublished flips a version to published and stamps the publish time
func (r *MongoVersionRepository) MarkPublished(ctx context.Context, id string, at time.Time) error {
	update := bson.M{"$set": bson.M{
		"status":      domain.VersionStatusPublished,
		"publishedAt": at,
	}}
	result, err := r.collection.UpdateOne(ctx, bson.M{"versionId": id}, update)
	if err != nil {
		return fmt.Errorf("failed to mark version published: %w", err)
	}
	if result.MatchedCount == 0 {
		return domain.ErrVersionNotFound
	}
	return nil
}

// MongoAuditRepository implements AuditRepository using MongoDB
type MongoAuditRepository struct {
	collection *mongo.Collection
}

// NewMongoAuditRepository creates a new MongoDB audit repository
func NewMongoAuditRepository(db *mongo.Database) ports.AuditRepository {
	return &MongoAuditRepository{
		collection: db.Collection("settings_audit"),
	}
}

// Append stores a new audit entry
func (r *MongoAuditRepository) Append(ctx context.Context, e *domain.AuditLogEntry) error {
	doc := entity.MongoAuditDocFromDomain(e)
	if _, err := r.collection.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("failed to append audit entry: %w", err)
	}
	return nil
}

// List retrieves all audit entries, newest first
func (r *MongoAuditRepository) List(ctx context.Context) ([]*domain.AuditLogEntry, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list audit entries: %w", err)
	}
	defer cursor.Close(ctx)

	entries := []*domain.AuditLogEntry{}
	for cursor.Next(ctx) {
		var doc entity.MongoAuditDoc
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("failed to decode audit entry: %w", err)
		}
		entries = append(entries, doc.ToDomain())
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("cursor error: %w", err)
	}
	return entries, nil
}

// MongoPublishedStore implements PublishedStore using MongoDB. The published
// configuration lives in a single document whose revision counter is bumped
// atomically on every overwrite, so a concurrent reader can detect a change.
type MongoPublishedStore struct {
	collection *mongo.Collection
}

// NewMongoPublishedStore creates a new MongoDB published store
func NewMongoPublishedStore(db *mongo.Database) ports.PublishedStore {
	return &MongoPublishedStore{
		collection: db.Collection("settings_published"),
	}
}

// Get retrieves the current published document, (nil, nil) if never published
func (s *MongoPublishedStore) Get(ctx context.Context) (*domain.ConfigurationDocument, error) {
	var doc entity.MongoPublishedDoc
	err := s.collection.FindOne(ctx, bson.M{"_id": publishedDocID}).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get published document: %w", err)
	}
	return &doc.Content, nil
}

// Set overwrites the published document in a single atomic update
func (s *MongoPublishedStore) Set(ctx context.Context, content domain.ConfigurationDocument) error {
	update := bson.M{
		"$set": bson.M{
			"content":   content,
			"updatedAt": time.Now(),
		},
		"$inc": bson.M{"revision": int64(1)},
	}
	opts := options.Update().SetUpsert(true)
	if _, err := s.collection.UpdateOne(ctx, bson.M{"_id": publishedDocID}, update, opts); err != nil {
		return fmt.Errorf("failed to set published document: %w", err)
	}
	return nil
}
