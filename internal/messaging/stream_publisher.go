package messaging

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// PayloadField is the stream entry field holding the JSON message.
const PayloadField = "payload"

// StreamPublisher appends JSON messages to Redis streams.
type StreamPublisher struct {
	redis  *redis.Client
	maxLen int64
}

// NewStreamPublisher caps each stream at roughly maxLen entries; 0 disables trimming.
func NewStreamPublisher(client *redis.Client, maxLen int64) *StreamPublisher {
	return &StreamPublisher{redis: client, maxLen: maxLen}
}

// Publish serializes message and returns the stream entry id.
func (p *StreamPublisher) Publish(ctx context.Context, stream string, message any) (string, error) {
	body, err := json.Marshal(message)
	if err != nil {
		return "", fmt.Errorf("encode message for %s: %w", stream, err)
	}

	args := &redis.XAddArgs{
		Stream: stream,
		Values: map[string]any{PayloadField: string(body)},
	}
	if p.maxLen > 0 {
		args.MaxLen = p.maxLen
		args.Approx = true
	}

	id, err := p.redis.XAdd(ctx, args).Result()
	if err != nil {
		return "", fmt.Errorf("publish to %s: %w", stream, err)
	}
	return id, nil
}
