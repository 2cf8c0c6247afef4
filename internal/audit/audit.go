// Package audit emits structured events on content-creation and review
// transitions. Emission is fire-and-forget: a sink failure is logged and never
// fails the primary operation.
package audit

import (
	"context"
	"time"

	"github.com/emlakpress/contentd/internal/logger"
	"github.com/redis/go-redis/v9"
)

// Event types emitted by the pipeline and the review workflow.
const (
	EventContentCreated   = "content.created"
	EventReviewTransition = "review.transition"
	EventContentPublished = "content.published"
)

// Event is one audit record.
type Event struct {
	Type         string            `json:"type"`
	Actor        string            `json:"actor,omitempty"`
	ResourceType string            `json:"resource_type"`
	ResourceID   string            `json:"resource_id"`
	Metadata     map[string]string `json:"metadata,omitempty"`
}

// Sink receives audit events.
type Sink interface {
	Emit(ctx context.Context, event Event)
}

// RedisSink appends events to a Redis stream, trimmed to roughly maxLen
// entries. maxLen 0 leaves the stream unbounded.
type RedisSink struct {
	client *redis.Client
	stream string
	maxLen int64
}

func NewRedisSink(redisURL, stream string, maxLen int64) (*RedisSink, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, err
	}

	client := redis.NewClient(opt)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &RedisSink{client: client, stream: stream, maxLen: maxLen}, nil
}

// NewRedisSinkFromClient wraps an existing client; used by tests.
func NewRedisSinkFromClient(client *redis.Client, stream string) *RedisSink {
	return &RedisSink{client: client, stream: stream}
}

func (s *RedisSink) Emit(ctx context.Context, event Event) {
	values := map[string]interface{}{
		"type":          event.Type,
		"resource_type": event.ResourceType,
		"resource_id":   event.ResourceID,
	}
	if event.Actor != "" {
		values["actor"] = event.Actor
	}
	for k, v := range event.Metadata {
		values["meta_"+k] = v
	}

	if err := s.client.XAdd(ctx, &redis.XAddArgs{
		Stream: s.stream,
		MaxLen: s.maxLen,
		Approx: true,
		Values: values,
	}).Err(); err != nil {
		logger.Get().Warn().Err(err).Str("event", event.Type).Msg("failed to emit audit event")
	}
}

func (s *RedisSink) Close() error {
	return s.client.Close()
}

// NopSink drops all events. Used when no Redis is configured and in tests.
type NopSink struct{}

func (NopSink) Emit(ctx context.Context, event Event) {}
