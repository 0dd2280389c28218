// Package store implements the generic entity store: keyed collections
// persisted as whole JSON arrays under one durable key each. Every mutation
// re-persists the entire collection; insertion order is preserved.
package store

import (
	"context"
	"encoding/json"
	"fmt"

	"rentdesk/internal/kv"
	"rentdesk/internal/models"
	"rentdesk/internal/utils"
)

// recordPtr constrains collections to pointer types that expose the shared
// id/timestamp plumbing.
type recordPtr[T any] interface {
	*T
	models.IRecord
}

// Collection is a persisted, ordered collection of one entity type.
type Collection[T any, P recordPtr[T]] struct {
	key string
	kv  kv.Store
}

// NewCollection binds a collection to its durable key.
func NewCollection[T any, P recordPtr[T]](kvs kv.Store, key string) *Collection[T, P] {
	return &Collection[T, P]{key: key, kv: kvs}
}

// Key returns the durable key the collection persists under.
func (c *Collection[T, P]) Key() string {
	return c.key
}

func (c *Collection[T, P]) load(ctx context.Context) ([]T, error) {
	data, found, err := c.kv.Read(ctx, c.key)
	if err != nil {
		return nil, fmt.Errorf("failed to load collection '%s': %w", c.key, err)
	}
	if !found {
		return []T{}, nil
	}
	var records []T
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("failed to decode collection '%s': %w", c.key, err)
	}
	return records, nil
}

func (c *Collection[T, P]) persist(ctx context.Context, records []T) error {
	data, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("failed to encode collection '%s': %w", c.key, err)
	}
	if err := c.kv.Write(ctx, c.key, data); err != nil {
		return fmt.Errorf("failed to persist collection '%s': %w", c.key, err)
	}
	return nil
}

// List returns the current snapshot of the collection in stored order.
func (c *Collection[T, P]) List(ctx context.Context) ([]T, error) {
	return c.load(ctx)
}

// Get returns the record with the given id. Absence is reported through the
// found flag, not an error.
func (c *Collection[T, P]) Get(ctx context.Context, id utils.SixID) (*T, bool, error) {
	records, err := c.load(ctx)
	if err != nil {
		return nil, false, err
	}
	if idx := c.indexOf(records, id); idx >= 0 {
		rec := records[idx]
		return &rec, true, nil
	}
	return nil, false, nil
}

// Create assigns a fresh unique id and the creation timestamp pair, appends
// the record at the tail and persists the collection.
func (c *Collection[T, P]) Create(ctx context.Context, rec P) error {
	return c.insert(ctx, rec, false)
}

// CreateFront is Create with the record placed at the head. The online
// transactions ledger is kept newest-first.
func (c *Collection[T, P]) CreateFront(ctx context.Context, rec P) error {
	return c.insert(ctx, rec, true)
}

func (c *Collection[T, P]) insert(ctx context.Context, rec P, front bool) error {
	records, err := c.load(ctx)
	if err != nil {
		return err
	}

	// Ids are 6 random bytes; a collision within one collection is unlikely
	// but regenerated rather than trusted.
	err = Try(func() error {
		rec.GenIDIfEmpty()
		if c.indexOf(records, rec.GetID()) >= 0 {
			rec.GenID()
			return ErrDuplicateID
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to assign id in collection '%s': %w", c.key, err)
	}

	rec.StampNew(utils.Now())
	if front {
		records = append([]T{*(*T)(rec)}, records...)
	} else {
		records = append(records, *(*T)(rec))
	}
	return c.persist(ctx, records)
}

// Update shallow-merges the given fields into the matching record, refreshes
// UpdatedAt and persists. A missing id is a silent no-op reported through the
// found flag. The identifier itself is immutable.
func (c *Collection[T, P]) Update(ctx context.Context, id utils.SixID, updates map[string]any) (*T, bool, error) {
	records, err := c.load(ctx)
	if err != nil {
		return nil, false, err
	}
	idx := c.indexOf(records, id)
	if idx < 0 {
		return nil, false, nil
	}

	merged, err := MergeRecord(records[idx], updates)
	if err != nil {
		return nil, false, fmt.Errorf("failed to merge update in collection '%s': %w", c.key, err)
	}
	P(&merged).SetID(id)
	P(&merged).Touch(utils.Now())
	records[idx] = merged

	if err := c.persist(ctx, records); err != nil {
		return nil, false, err
	}
	rec := records[idx]
	return &rec, true, nil
}

// Remove deletes the matching record and persists. A missing id is a silent
// no-op reported through the removed flag.
func (c *Collection[T, P]) Remove(ctx context.Context, id utils.SixID) (bool, error) {
	records, err := c.load(ctx)
	if err != nil {
		return false, err
	}
	idx := c.indexOf(records, id)
	if idx < 0 {
		return false, nil
	}
	records = append(records[:idx], records[idx+1:]...)
	if err := c.persist(ctx, records); err != nil {
		return false, err
	}
	return true, nil
}

func (c *Collection[T, P]) indexOf(records []T, id utils.SixID) int {
	for i := range records {
		if P(&records[i]).GetID() == id {
			return i
		}
	}
	return -1
}

// MergeRecord performs the shallow JSON merge used by partial updates: fields
// present in updates replace the record's top-level JSON fields verbatim.
// It is exported for callers that merge into nested values, e.g. a single
// payment inside a lease ledger.
func MergeRecord[T any](rec T, updates map[string]any) (T, error) {
	var out T

	raw, err := json.Marshal(rec)
	if err != nil {
		return out, err
	}
	obj := map[string]json.RawMessage{}
	if err := json.Unmarshal(raw, &obj); err != nil {
		return out, err
	}

	for field, value := range updates {
		encoded, err := json.Marshal(value)
		if err != nil {
			return out, fmt.Errorf("unencodable value for field '%s': %w", field, err)
		}
		obj[field] = encoded
	}

	merged, err := json.Marshal(obj)
	if err != nil {
		return out, err
	}
	if err := json.Unmarshal(merged, &out); err != nil {
		return out, err
	}
	return out, nil
}
