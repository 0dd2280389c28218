package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisSink implements the Sink interface by pushing notifications onto a
// Redis list, giving external consumers a short-lived feed to poll.
type RedisSink struct {
	client *redis.Client
	key    string
}

// NewRedisSink creates a new RedisSink writing to the given list key.
func NewRedisSink(client *redis.Client, key string) Sink {
	if key == "" {
		key = "rentdesk:notifications"
	}
	return &RedisSink{client: client, key: key}
}

// Notify pushes a JSON representation of the notification onto the feed.
// The feed is capped and expires so an idle consumer cannot grow it unbounded.
func (s *RedisSink) Notify(ctx context.Context, n Notification) error {
	payload := map[string]interface{}{
		"title":       n.Title,
		"description": n.Description,
		"severity":    string(n.Severity),
		"sent_at":     time.Now().UTC().Format(time.RFC3339Nano),
	}

	jsonData, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal notification: %w", err)
	}

	pipe := s.client.TxPipeline()
	pipe.LPush(ctx, s.key, jsonData)
	pipe.LTrim(ctx, s.key, 0, 99)
	pipe.Expire(ctx, s.key, 24*time.Hour)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to push notification to Redis key '%s': %w", s.key, err)
	}

	log.Printf("Notification pushed to Redis key '%s' (Title: %s)", s.key, n.Title)
	return nil
}
