package bus

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const channelPrefix = "conversation:"

// Redis is a Bus backed by redis pub/sub, letting conversation events reach
// subscribers connected to other server instances.
type Redis struct {
	rdb *redis.Client
}

// NewRedis creates a redis-backed bus
func NewRedis(rdb *redis.Client) *Redis {
	return &Redis{rdb: rdb}
}

// Publish broadcasts the event on the topic's redis channel
func (r *Redis) Publish(ctx context.Context, topic string, event Event) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}
	return r.rdb.Publish(ctx, channelPrefix+topic, data).Err()
}

// Subscribe listens on the topic's redis channel until cancelled
func (r *Redis) Subscribe(ctx context.Context, topic string) (<-chan Event, func()) {
	pubsub := r.rdb.Subscribe(ctx, channelPrefix+topic)
	out := make(chan Event, subscriberBuffer)

	go func() {
		defer close(out)
		for msg := range pubsub.Channel() {
			var event Event
			if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
				log.Warn().Err(err).Str("topic", topic).Msg("dropping malformed bus event")
				continue
			}
			select {
			case out <- event:
			default:
			}
		}
	}()

	return out, func() { _ = pubsub.Close() }
}
