package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/madeBeine/fastcomand-all-v1-sub001/internal/domain"
	"github.com/madeBeine/fastcomand-all-v1-sub001/internal/ports"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

const publishedKey = "settings:published"

// RedisSettingsCache caches the published configuration document in Redis so
// that quote calculations do not hit the store on every request.
type RedisSettingsCache struct {
	client *redis.Client
	ttl    time.Duration
	logger zerolog.Logger
}

// NewRedisSettingsCache creates a new Redis-backed settings cache
func NewRedisSettingsCache(client *redis.Client, ttl time.Duration, logger zerolog.Logger) ports.SettingsCache {
	return &RedisSettingsCache{
		client: client,
		ttl:    ttl,
		logger: logger,
	}
}

// GetPublished returns the cached document, (nil, nil) on a miss
func (c *RedisSettingsCache) GetPublished(ctx context.Context) (*domain.ConfigurationDocument, error) {
	raw, err := c.client.Get(ctx, publishedKey).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read cached settings: %w", err)
	}

	var doc domain.ConfigurationDocument
	if err := json.Unmarshal(raw, &doc); err != nil {
		// A corrupt cache entry is treated as a miss; the next publish or
		// read-through will overwrite it.
		c.logger.Warn().Err(err).Msg("Dropping undecodable cached settings document")
		c.client.Del(ctx, publishedKey)
		return nil, nil
	}
	return &doc, nil
}

// SetPublished stores the document with the configured TTL
func (c *RedisSettingsCache) SetPublished(ctx context.Context, doc domain.ConfigurationDocument) error {
	raw, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to encode settings document: %w", err)
	}
	if err := c.client.Set(ctx, publishedKey, raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to cache settings document: %w", err)
	}
	return nil
}

// Invalidate drops the cached document
func (c *RedisSettingsCache) Invalidate(ctx context.Context) error {
	if err := c.client.Del(ctx, publishedKey).Err(); err != nil {
		return fmt.Errorf("failed to invalidate settings cache: %w", err)
	}
	return nil
}
