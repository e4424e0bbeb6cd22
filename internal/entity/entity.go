// Package entity provides the generic indexed-entity layer: a typed wrapper
// that combines the record store with a list index per entity type, so every
// domain record gets a uniquely-keyed row plus a maintained listing index.
package entity

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/mpmulbi/aspirasi-backend/internal/domain"
	"github.com/mpmulbi/aspirasi-backend/internal/store"
)

// mutateAttempts bounds the optimistic-concurrency retry loop in Mutate.
const mutateAttempts = 5

// Definition declares the storage names for an entity type.
type Definition struct {
	// Collection is the record store collection name, e.g. "aspiration".
	Collection string
	// Index is the list index name, e.g. "aspirations".
	Index string
}

// Collection is a typed view over one entity collection. T must round-trip
// through encoding/json.
type Collection[T any] struct {
	st  store.Store
	def Definition
}

// NewCollection creates a typed collection over the given store.
func NewCollection[T any](st store.Store, def Definition) *Collection[T] {
	return &Collection[T]{st: st, def: def}
}

// Name returns the collection name.
func (c *Collection[T]) Name() string { return c.def.Collection }

// Create writes a new record and registers it in the list index.
// Returns domain.ErrAlreadyExists if the key is taken; create is not
// idempotent. The index entry is written immediately after a successful
// record write; if the index write fails the record is still readable by
// key, and listing tolerates the gap by skipping keys it cannot resolve.
func (c *Collection[T]) Create(ctx context.Context, key string, rec T) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("encode %s/%s: %w", c.def.Collection, key, err)
	}
	if err := c.st.Insert(ctx, c.def.Collection, key, data); err != nil {
		return err
	}
	if err := c.st.AddToIndex(ctx, c.def.Index, key); err != nil {
		return fmt.Errorf("index %s/%s: %w", c.def.Index, key, err)
	}
	return nil
}

// Exists reports whether a record with the given key is present.
func (c *Collection[T]) Exists(ctx context.Context, key string) (bool, error) {
	return c.st.Exists(ctx, c.def.Collection, key)
}

// Get returns the decoded record. Returns domain.ErrNotFound if absent.
func (c *Collection[T]) Get(ctx context.Context, key string) (T, error) {
	var zero T
	rec, err := c.st.Get(ctx, c.def.Collection, key)
	if err != nil {
		return zero, err
	}
	return decode[T](c.def.Collection, key, rec.Data)
}

// Mutate applies a read-modify-write cycle under optimistic concurrency:
// the transform receives the current full state and returns the new state;
// the write is rejected and retried with a fresh read if another writer
// advanced the record's version in between. The transform must be pure
// because it may run more than once.
func (c *Collection[T]) Mutate(ctx context.Context, key string, transform func(T) (T, error)) (T, error) {
	var zero T

	for attempt := 0; attempt < mutateAttempts; attempt++ {
		rec, err := c.st.Get(ctx, c.def.Collection, key)
		if err != nil {
			return zero, err
		}

		cur, err := decode[T](c.def.Collection, key, rec.Data)
		if err != nil {
			return zero, err
		}

		next, err := transform(cur)
		if err != nil {
			return zero, err
		}

		data, err := json.Marshal(next)
		if err != nil {
			return zero, fmt.Errorf("encode %s/%s: %w", c.def.Collection, key, err)
		}

		_, err = c.st.Update(ctx, c.def.Collection, key, data, rec.Version)
		if errors.Is(err, domain.ErrConflict) {
			continue
		}
		if err != nil {
			return zero, err
		}
		return next, nil
	}

	return zero, fmt.Errorf("mutate %s/%s: gave up after %d attempts: %w",
		c.def.Collection, key, mutateAttempts, domain.ErrConflict)
}

// Delete removes the record and its index entry. The record goes first:
// a failure between the two steps leaves a dangling index key, which
// listing already tolerates, rather than an unlisted live record.
func (c *Collection[T]) Delete(ctx context.Context, key string) error {
	if err := c.st.Delete(ctx, c.def.Collection, key); err != nil {
		return err
	}
	return c.st.RemoveFromIndex(ctx, c.def.Index, key)
}

// List returns one page of decoded records plus the cursor for the next
// page (empty when exhausted). Index keys that no longer resolve to a
// record are skipped.
func (c *Collection[T]) List(ctx context.Context, cursor string, limit int) ([]T, string, error) {
	keys, next, err := c.st.ListIndex(ctx, c.def.Index, cursor, limit)
	if err != nil {
		return nil, "", err
	}

	out := make([]T, 0, len(keys))
	for _, key := range keys {
		rec, err := c.st.Get(ctx, c.def.Collection, key)
		if errors.Is(err, domain.ErrNotFound) {
			continue // dangling index entry
		}
		if err != nil {
			return nil, "", err
		}
		v, err := decode[T](c.def.Collection, key, rec.Data)
		if err != nil {
			return nil, "", err
		}
		out = append(out, v)
	}
	return out, next, nil
}

// ListAll drains every page of the collection. Collection sizes in this
// system are small; callers that can tolerate partial views should page
// with List instead.
func (c *Collection[T]) ListAll(ctx context.Context) ([]T, error) {
	var (
		out    []T
		cursor string
	)
	for {
		page, next, err := c.List(ctx, cursor, store.DefaultPageLimit)
		if err != nil {
			return nil, err
		}
		out = append(out, page...)
		if next == "" {
			return out, nil
		}
		cursor = next
	}
}

func decode[T any](collection, key string, data []byte) (T, error) {
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return v, fmt.Errorf("decode %s/%s: %w", collection, key, err)
	}
	return v, nil
}
