// Package kv provides the durable key-value slots backing the entity store.
// Each entity collection is serialized as a whole and written under a single
// key; backends only need Read and Write.
package kv

import "context"

// Store is the durable key-value contract. Read reports absence through the
// found flag rather than an error; Write overwrites the full value.
type Store interface {
	Read(ctx context.Context, key string) (value []byte, found bool, err error)
	Write(ctx context.Context, key string, value []byte) error
}
