// Package store defines the keyed record storage contract shared by all
// persistence drivers (memory, sqlite, postgres).
//
// Records are opaque JSON payloads addressed by (collection, key) and
// versioned for optimistic concurrency. A separate list index tracks
// membership of named collections so records of one type can be enumerated
// without scanning the whole keyspace.
package store

import "context"

// Record is a stored value together with its version. Version starts at 1
// on insert and increases by exactly 1 on every successful update.
type Record struct {
	Data    []byte
	Version int64
}

// RecordStore is the durable key→value primitive. All operations are atomic
// at single-key granularity: a write is visible in its entirety to subsequent
// reads, and no multi-key transactions are offered.
type RecordStore interface {
	// Exists reports whether a record is present.
	Exists(ctx context.Context, collection, key string) (bool, error)

	// Get returns the record. Returns domain.ErrNotFound if absent.
	Get(ctx context.Context, collection, key string) (Record, error)

	// Insert writes a new record at version 1. Returns domain.ErrAlreadyExists
	// if the key is already present; the existing record is left untouched.
	Insert(ctx context.Context, collection, key string, data []byte) error

	// Update overwrites the record only if its stored version equals
	// expectVersion, and returns the new version. Returns domain.ErrConflict
	// if the version has advanced and domain.ErrNotFound if the key is absent.
	Update(ctx context.Context, collection, key string, data []byte, expectVersion int64) (int64, error)

	// Put unconditionally overwrites (or creates) the record, advancing the
	// version past any stored value.
	Put(ctx context.Context, collection, key string, data []byte) error

	// Delete removes the record. Deleting an absent key is not an error.
	Delete(ctx context.Context, collection, key string) error
}

// ListIndex tracks membership of named collections. Add and Remove are
// idempotent. Listing returns keys in lexicographic order.
type ListIndex interface {
	AddToIndex(ctx context.Context, index, key string) error
	RemoveFromIndex(ctx context.Context, index, key string) error

	// ListIndex returns up to limit keys strictly after cursor (exclusive);
	// an empty cursor starts from the beginning. The returned cursor is
	// empty when the index is exhausted, otherwise it is the last key of
	// the page and can be passed back to resume.
	ListIndex(ctx context.Context, index, cursor string, limit int) (keys []string, next string, err error)
}

// Store is the full persistence surface a driver must provide.
type Store interface {
	RecordStore
	ListIndex

	// Ping verifies the backing store is reachable.
	Ping(ctx context.Context) error

	// Close releases driver resources.
	Close() error
}

// DefaultPageLimit bounds a ListIndex page when the caller passes a
// non-positive limit.
const DefaultPageLimit = 100

// MaxPageLimit is the hard cap on a single index page.
const MaxPageLimit = 1000

// ClampLimit normalizes a caller-supplied page limit into [1, MaxPageLimit].
func ClampLimit(limit int) int {
	if limit <= 0 {
		return DefaultPageLimit
	}
	if limit > MaxPageLimit {
		return MaxPageLimit
	}
	return limit
}
