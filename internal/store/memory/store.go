// Package memory implements the record store contract with in-process maps.
// It backs tests and single-process development runs.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/mpmulbi/aspirasi-backend/internal/domain"
	"github.com/mpmulbi/aspirasi-backend/internal/store"
)

type versioned struct {
	data    []byte
	version int64
}

// Store is a mutex-guarded in-memory implementation of store.Store.
// The zero value is not usable; call New.
type Store struct {
	mu      sync.RWMutex
	records map[string]map[string]versioned // collection -> key -> record
	indexes map[string]map[string]struct{}  // index -> key set
}

// New creates an empty in-memory store.
func New() *Store {
	return &Store{
		records: make(map[string]map[string]versioned),
		indexes: make(map[string]map[string]struct{}),
	}
}

func (s *Store) Exists(_ context.Context, collection, key string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.records[collection][key]
	return ok, nil
}

func (s *Store) Get(_ context.Context, collection, key string) (store.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.records[collection][key]
	if !ok {
		return store.Record{}, domain.ErrNotFound
	}
	return store.Record{Data: cloneBytes(rec.data), Version: rec.version}, nil
}

func (s *Store) Insert(_ context.Context, collection, key string, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	coll := s.records[collection]
	if coll == nil {
		coll = make(map[string]versioned)
		s.records[collection] = coll
	}
	if _, ok := coll[key]; ok {
		return domain.ErrAlreadyExists
	}
	coll[key] = versioned{data: cloneBytes(data), version: 1}
	return nil
}

func (s *Store) Update(_ context.Context, collection, key string, data []byte, expectVersion int64) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.records[collection][key]
	if !ok {
		return 0, domain.ErrNotFound
	}
	if rec.version != expectVersion {
		return 0, domain.ErrConflict
	}
	next := rec.version + 1
	s.records[collection][key] = versioned{data: cloneBytes(data), version: next}
	return next, nil
}

func (s *Store) Put(_ context.Context, collection, key string, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	coll := s.records[collection]
	if coll == nil {
		coll = make(map[string]versioned)
		s.records[collection] = coll
	}
	coll[key] = versioned{data: cloneBytes(data), version: coll[key].version + 1}
	return nil
}

func (s *Store) Delete(_ context.Context, collection, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.records[collection], key)
	return nil
}

func (s *Store) AddToIndex(_ context.Context, index, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	idx := s.indexes[index]
	if idx == nil {
		idx = make(map[string]struct{})
		s.indexes[index] = idx
	}
	idx[key] = struct{}{}
	return nil
}

func (s *Store) RemoveFromIndex(_ context.Context, index, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.indexes[index], key)
	return nil
}

func (s *Store) ListIndex(_ context.Context, index, cursor string, limit int) ([]string, string, error) {
	limit = store.ClampLimit(limit)

	s.mu.RLock()
	all := make([]string, 0, len(s.indexes[index]))
	for k := range s.indexes[index] {
		if cursor == "" || k > cursor {
			all = append(all, k)
		}
	}
	s.mu.RUnlock()

	sort.Strings(all)
	if len(all) <= limit {
		return all, "", nil
	}
	page := all[:limit]
	return page, page[len(page)-1], nil
}

func (s *Store) Ping(context.Context) error { return nil }

func (s *Store) Close() error { return nil }

func cloneBytes(b []byte) []byte {
	if b == nil {
		return nil
	}
	out := make([]byte, len(b))
	copy(out, b)
	return out
}
