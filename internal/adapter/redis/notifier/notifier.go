// package notifier publishes user events over Redis pub/sub. Delivery is
// best-effort: observers that are not subscribed simply miss the event.
package notifier

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/go-redis/redis/v8"

	"gitlab.com/codeclash-2026.net/internal/core/ports/primary"
	"gitlab.com/codeclash-2026.net/internal/core/ports/secondary"
)

const channelPrefix = "user:events:"

var _ secondary.Notifier = (*RedisNotifier)(nil)

// RedisNotifier implements the Notifier interface with Redis pub/sub.
type RedisNotifier struct {
	redisClient *redis.Client
	logger      primary.Logger
}

// NewRedisNotifier creates a new Redis notifier.
func NewRedisNotifier(redisClient *redis.Client, logger primary.Logger) *RedisNotifier {
	return &RedisNotifier{
		redisClient: redisClient,
		logger:      logger,
	}
}

// Notify publishes the event to the user's channel. Errors are returned for
// logging only; callers must not fail their operation on them.
func (n *RedisNotifier) Notify(ctx context.Context, userID string, event secondary.UserEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal user event: %w", err)
	}

	channel := ChannelFor(userID)
	if err := n.redisClient.Publish(ctx, channel, payload).Err(); err != nil {
		return fmt.Errorf("failed to publish user event: %w", err)
	}
	n.logger.Debug("User event published", "channel", channel, "type", event.Type)
	return nil
}

// ChannelFor returns the pub/sub channel carrying a user's events.
func ChannelFor(userID string) string {
	return channelPrefix + userID
}
