package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// StreamSink appends events to a capped Redis stream that clients tail for notifications.
type StreamSink struct {
	client redis.Cmdable
	stream string
	maxLen int64
}

// NewStreamSink builds a sink writing to stream, trimming it to roughly maxLen entries.
func NewStreamSink(client redis.Cmdable, stream string, maxLen int64) *StreamSink {
	return &StreamSink{client: client, stream: stream, maxLen: maxLen}
}

// Append writes event as one stream entry and returns the entry id.
func (s *StreamSink) Append(ctx context.Context, event Event) (string, error) {
	payload, err := json.Marshal(event.Payload)
	if err != nil {
		return "", fmt.Errorf("encode payload: %w", err)
	}

	args := &redis.XAddArgs{
		Stream: s.stream,
		Values: streamValues(event, payload),
	}
	if s.maxLen > 0 {
		args.MaxLen = s.maxLen
		args.Approx = true
	}
	return s.client.XAdd(ctx, args).Result()
}

func streamValues(event Event, payload []byte) map[string]any {
	return map[string]any{
		"id":        event.ID,
		"type":      string(event.Type),
		"entity_id": event.EntityID,
		"actor_id":  event.Actor.UserID,
		"timestamp": event.Timestamp.Format(time.RFC3339Nano),
		"payload":   string(payload),
	}
}
