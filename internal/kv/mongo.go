package kv

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const snapshotsCollection = "snapshots"

// snapshotDoc is the single document held per durable key. The collection
// snapshot travels as an opaque JSON blob so every backend round-trips the
// exact same bytes.
type snapshotDoc struct {
	Key  string `bson:"_id"`
	Data []byte `bson:"data"`
}

// Mongo is a Store keeping each collection snapshot as one document in a
// MongoDB collection.
type Mongo struct {
	coll *mongo.Collection
}

// NewMongo wraps an existing database handle.
func NewMongo(db *mongo.Database) *Mongo {
	return &Mongo{coll: db.Collection(snapshotsCollection)}
}

func (m *Mongo) Read(ctx context.Context, key string) ([]byte, bool, error) {
	var doc snapshotDoc
	err := m.coll.FindOne(ctx, bson.M{"_id": key}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to read storage key '%s' from MongoDB: %w", key, err)
	}
	return doc.Data, true, nil
}

func (m *Mongo) Write(ctx context.Context, key string, value []byte) error {
	opts := options.Replace().SetUpsert(true)
	_, err := m.coll.ReplaceOne(ctx, bson.M{"_id": key}, snapshotDoc{Key: key, Data: value}, opts)
	if err != nil {
		return fmt.Errorf("failed to write storage key '%s' to MongoDB: %w", key, err)
	}
	return nil
}
