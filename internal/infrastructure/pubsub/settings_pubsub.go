package pubsub

import (
	"context"
	"fmt"
	"sync"

	"github.com/madeBeine/fastcomand-all-v1-sub001/internal/domain"

	"github.com/rs/zerolog"
)

// SettingsEventChannel represents a subscription channel
type SettingsEventChannel struct {
	ID     string
	Filter *SettingsEventFilter
	Events chan *domain.SettingsEvent
	Done   chan struct{}
	ctx    context.Context
	cancel context.CancelFunc
}

// SettingsEventFilter filters settings events by type
type SettingsEventFilter struct {
	Types []string
}

// SettingsPubSub broadcasts settings lifecycle events (published, rollback,
// imported) to in-process subscribers such as the cache invalidator.
type SettingsPubSub struct {
	mu       sync.RWMutex
	channels map[string]*SettingsEventChannel
	logger   zerolog.Logger
	nextID   int64
	idMu     sync.Mutex
}

// NewSettingsPubSub creates a new settings pub/sub system
func NewSettingsPubSub(logger zerolog.Logger) *SettingsPubSub {
	return &SettingsPubSub{
		channels: make(map[string]*SettingsEventChannel),
		logger:   logger,
	}
}

// Subscribe creates a new subscription channel
func (ps *SettingsPubSub) Subscribe(ctx context.Context, filter *SettingsEventFilter) *SettingsEventChannel {
	ps.idMu.Lock()
	id := ps.generateID()
	ps.idMu.Unlock()

	subCtx, cancel := context.WithCancel(ctx)

	channel := &SettingsEventChannel{
		ID:     id,
		Filter: filter,
		Events: make(chan *domain.SettingsEvent, 10), // Buffered channel
		Done:   make(chan struct{}),
		ctx:    subCtx,
		cancel: cancel,
	}

	ps.mu.Lock()
	ps.channels[id] = channel
	ps.mu.Unlock()

	ps.logger.Info().
		Str("channelId", id).
		Interface("filter", filter).
		Msg("Settings subscription created")

	// Cleanup when context is cancelled
	go func() {
		<-subCtx.Done()
		ps.Unsubscribe(id)
	}()

	return channel
}

// Unsubscribe removes a subscription channel
func (ps *SettingsPubSub) Unsubscribe(channelID string) {
	ps.mu.Lock()
	defer ps.mu.Unlock()

	channel, exists := ps.channels[channelID]
	if !exists {
		return
	}

	close(channel.Events)
	close(channel.Done)
	channel.cancel()
	delete(ps.channels, channelID)

	ps.logger.Info().
		Str("channelId", channelID).
		Msg("Settings subscription removed")
}

// Publish broadcasts a settings event to all matching subscribers
func (ps *SettingsPubSub) Publish(event *domain.SettingsEvent) {
	ps.mu.RLock()
	defer ps.mu.RUnlock()

	publishedCount := 0
	for _, channel := range ps.channels {
		if ps.matchesFilter(event, channel.Filter) {
			select {
			case channel.Events <- event:
				publishedCount++
			case <-channel.ctx.Done():
				// Channel is closed, skip
			default:
				// Channel buffer full, skip (non-blocking)
				ps.logger.Warn().
					Str("channelId", channel.ID).
					Msg("Channel buffer full, dropping event")
			}
		}
	}

	if publishedCount > 0 {
		ps.logger.Debug().
			Str("type", event.Type).
			Str("versionId", event.VersionID).
			Int("subscribers", publishedCount).
			Msg("Published settings event to subscribers")
	}
}

// matchesFilter checks if an event matches the subscription filter
func (ps *SettingsPubSub) matchesFilter(event *domain.SettingsEvent, filter *SettingsEventFilter) bool {
	if filter == nil || len(filter.Types) == 0 {
		return true // No filter, match all
	}
	for _, t := range filter.Types {
		if event.Type == t {
			return true
		}
	}
	return false
}

// generateID generates a unique channel ID
func (ps *SettingsPubSub) generateID() string {
	ps.nextID++
	return fmt.Sprintf("channel-%d", ps.nextID)
}

// GetStats returns pub/sub statistics
func (ps *SettingsPubSub) GetStats() map[string]interface{} {
	ps.mu.RLock()
	defer ps.mu.RUnlock()

	return map[string]interface{}{
		"active_subscriptions": len(ps.channels),
	}
}
