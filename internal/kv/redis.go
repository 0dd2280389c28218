package kv

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// Redis is a Store keeping each collection snapshot as a single Redis string.
type Redis struct {
	client *redis.Client
	prefix string
}

// NewRedis wraps an existing Redis client. Keys are namespaced with prefix to
// keep collection snapshots apart from other uses of the same database.
func NewRedis(client *redis.Client, prefix string) *Redis {
	if prefix == "" {
		prefix = "rentdesk"
	}
	return &Redis{client: client, prefix: prefix}
}

func (r *Redis) key(key string) string {
	return fmt.Sprintf("%s:store:%s", r.prefix, key)
}

func (r *Redis) Read(ctx context.Context, key string) ([]byte, bool, error) {
	value, err := r.client.Get(ctx, r.key(key)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to read storage key '%s' from Redis: %w", key, err)
	}
	return value, true, nil
}

func (r *Redis) Write(ctx context.Context, key string, value []byte) error {
	if err := r.client.Set(ctx, r.key(key), value, 0).Err(); err != nil {
		return fmt.Errorf("failed to write storage key '%s' to Redis: %w", key, err)
	}
	return nil
}
