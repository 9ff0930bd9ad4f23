package eventpublisher

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/fundhost/ledger/internal/domain"
)

// RedisPublisher publishes outbox events on Redis pub/sub channels, one
// channel per event type.
type RedisPublisher struct {
	client        *redis.Client
	channelPrefix string
}

// NewRedisPublisher creates a new RedisPublisher.
func NewRedisPublisher(client *redis.Client) *RedisPublisher {
	return &RedisPublisher{
		client:        client,
		channelPrefix: "events:",
	}
}

type wireEvent struct {
	ID            string         `json:"id"`
	AggregateID   string         `json:"aggregate_id"`
	AggregateType string         `json:"aggregate_type"`
	EventType     string         `json:"event_type"`
	Payload       map[string]any `json:"payload"`
}

// Publish serializes the event and publishes it.
func (p *RedisPublisher) Publish(ctx context.Context, event *domain.OutboxEvent) error {
	body, err := json.Marshal(wireEvent{
		ID:            event.ID,
		AggregateID:   event.AggregateID,
		AggregateType: event.AggregateType,
		EventType:     event.EventType,
		Payload:       event.Payload,
	})
	if err != nil {
		return fmt.Errorf("marshaling event %s: %w", event.ID, err)
	}

	return p.client.Publish(ctx, p.channelPrefix+event.EventType, body).Err()
}
