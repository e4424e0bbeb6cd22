// Package storetest provides a conformance suite that every record store
// driver must pass. Driver test packages call Run with a factory for a
// fresh, empty store.
package storetest

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/mpmulbi/aspirasi-backend/internal/domain"
	"github.com/mpmulbi/aspirasi-backend/internal/store"
)

// Factory returns a fresh empty store. Cleanup is registered by the factory
// itself via t.Cleanup.
type Factory func(t *testing.T) store.Store

// Run exercises the full store.Store contract against the given factory.
func Run(t *testing.T, newStore Factory) {
	t.Helper()

	t.Run("InsertGet", func(t *testing.T) { testInsertGet(t, newStore(t)) })
	t.Run("InsertDuplicate", func(t *testing.T) { testInsertDuplicate(t, newStore(t)) })
	t.Run("UpdateVersioning", func(t *testing.T) { testUpdateVersioning(t, newStore(t)) })
	t.Run("UpdateConflict", func(t *testing.T) { testUpdateConflict(t, newStore(t)) })
	t.Run("PutOverwrite", func(t *testing.T) { testPutOverwrite(t, newStore(t)) })
	t.Run("Delete", func(t *testing.T) { testDelete(t, newStore(t)) })
	t.Run("CollectionsAreDisjoint", func(t *testing.T) { testCollectionsAreDisjoint(t, newStore(t)) })
	t.Run("IndexMembership", func(t *testing.T) { testIndexMembership(t, newStore(t)) })
	t.Run("IndexPagination", func(t *testing.T) { testIndexPagination(t, newStore(t)) })
	t.Run("Ping", func(t *testing.T) { testPing(t, newStore(t)) })
}

func testInsertGet(t *testing.T, st store.Store) {
	ctx := context.Background()

	ok, err := st.Exists(ctx, "aspirations", "a1")
	if err != nil {
		t.Fatalf("exists: %v", err)
	}
	if ok {
		t.Fatal("key should not exist yet")
	}

	if _, err := st.Get(ctx, "aspirations", "a1"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("get absent: got %v, want ErrNotFound", err)
	}

	if err := st.Insert(ctx, "aspirations", "a1", []byte(`{"id":"a1"}`)); err != nil {
		t.Fatalf("insert: %v", err)
	}

	ok, err = st.Exists(ctx, "aspirations", "a1")
	if err != nil || !ok {
		t.Fatalf("exists after insert: ok=%v err=%v", ok, err)
	}

	rec, err := st.Get(ctx, "aspirations", "a1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if string(rec.Data) != `{"id":"a1"}` {
		t.Errorf("data: got %s", rec.Data)
	}
	if rec.Version != 1 {
		t.Errorf("version: got %d, want 1", rec.Version)
	}
}

func testInsertDuplicate(t *testing.T, st store.Store) {
	ctx := context.Background()

	if err := st.Insert(ctx, "aspirations", "a1", []byte(`{"n":1}`)); err != nil {
		t.Fatalf("insert: %v", err)
	}
	err := st.Insert(ctx, "aspirations", "a1", []byte(`{"n":2}`))
	if !errors.Is(err, domain.ErrAlreadyExists) {
		t.Fatalf("duplicate insert: got %v, want ErrAlreadyExists", err)
	}

	rec, err := st.Get(ctx, "aspirations", "a1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if string(rec.Data) != `{"n":1}` {
		t.Errorf("original record clobbered: %s", rec.Data)
	}
}

func testUpdateVersioning(t *testing.T, st store.Store) {
	ctx := context.Background()

	if err := st.Insert(ctx, "aspirations", "a1", []byte(`{"n":1}`)); err != nil {
		t.Fatalf("insert: %v", err)
	}

	v, err := st.Update(ctx, "aspirations", "a1", []byte(`{"n":2}`), 1)
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if v != 2 {
		t.Errorf("version after update: got %d, want 2", v)
	}

	rec, err := st.Get(ctx, "aspirations", "a1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if string(rec.Data) != `{"n":2}` || rec.Version != 2 {
		t.Errorf("record: data=%s version=%d", rec.Data, rec.Version)
	}

	if _, err := st.Update(ctx, "aspirations", "missing", []byte(`{}`), 1); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("update absent: got %v, want ErrNotFound", err)
	}
}

func testUpdateConflict(t *testing.T, st store.Store) {
	ctx := context.Background()

	if err := st.Insert(ctx, "aspirations", "a1", []byte(`{"n":1}`)); err != nil {
		t.Fatalf("insert: %v", err)
	}
	if _, err := st.Update(ctx, "aspirations", "a1", []byte(`{"n":2}`), 1); err != nil {
		t.Fatalf("first update: %v", err)
	}

	// A writer still holding version 1 must be rejected.
	_, err := st.Update(ctx, "aspirations", "a1", []byte(`{"n":3}`), 1)
	if !errors.Is(err, domain.ErrConflict) {
		t.Fatalf("stale update: got %v, want ErrConflict", err)
	}

	rec, _ := st.Get(ctx, "aspirations", "a1")
	if string(rec.Data) != `{"n":2}` {
		t.Errorf("stale write applied: %s", rec.Data)
	}
}

func testPutOverwrite(t *testing.T, st store.Store) {
	ctx := context.Background()

	if err := st.Put(ctx, "track-map", "ASP-1", []byte(`{"refId":"a1"}`)); err != nil {
		t.Fatalf("put create: %v", err)
	}
	if err := st.Put(ctx, "track-map", "ASP-1", []byte(`{"refId":"a2"}`)); err != nil {
		t.Fatalf("put overwrite: %v", err)
	}

	rec, err := st.Get(ctx, "track-map", "ASP-1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if string(rec.Data) != `{"refId":"a2"}` {
		t.Errorf("data: got %s", rec.Data)
	}
	if rec.Version < 2 {
		t.Errorf("version should advance on overwrite, got %d", rec.Version)
	}
}

func testDelete(t *testing.T, st store.Store) {
	ctx := context.Background()

	if err := st.Insert(ctx, "aspirations", "a1", []byte(`{}`)); err != nil {
		t.Fatalf("insert: %v", err)
	}
	if err := st.Delete(ctx, "aspirations", "a1"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if ok, _ := st.Exists(ctx, "aspirations", "a1"); ok {
		t.Error("key still exists after delete")
	}
	// Idempotent.
	if err := st.Delete(ctx, "aspirations", "a1"); err != nil {
		t.Errorf("second delete: %v", err)
	}
}

func testCollectionsAreDisjoint(t *testing.T, st store.Store) {
	ctx := context.Background()

	if err := st.Insert(ctx, "aspirations", "k", []byte(`{"t":"asp"}`)); err != nil {
		t.Fatalf("insert: %v", err)
	}
	if err := st.Insert(ctx, "legislative-docs", "k", []byte(`{"t":"doc"}`)); err != nil {
		t.Fatalf("insert same key other collection: %v", err)
	}

	rec, err := st.Get(ctx, "aspirations", "k")
	if err != nil || string(rec.Data) != `{"t":"asp"}` {
		t.Errorf("aspirations/k: %s err=%v", rec.Data, err)
	}
	rec, err = st.Get(ctx, "legislative-docs", "k")
	if err != nil || string(rec.Data) != `{"t":"doc"}` {
		t.Errorf("legislative-docs/k: %s err=%v", rec.Data, err)
	}
}

func testIndexMembership(t *testing.T, st store.Store) {
	ctx := context.Background()

	if err := st.AddToIndex(ctx, "aspirations", "b"); err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := st.AddToIndex(ctx, "aspirations", "a"); err != nil {
		t.Fatalf("add: %v", err)
	}
	// Idempotent add.
	if err := st.AddToIndex(ctx, "aspirations", "a"); err != nil {
		t.Fatalf("re-add: %v", err)
	}

	keys, next, err := st.ListIndex(ctx, "aspirations", "", 10)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if next != "" {
		t.Errorf("next cursor: got %q, want empty", next)
	}
	if len(keys) != 2 || keys[0] != "a" || keys[1] != "b" {
		t.Errorf("keys: got %v, want [a b]", keys)
	}

	if err := st.RemoveFromIndex(ctx, "aspirations", "a"); err != nil {
		t.Fatalf("remove: %v", err)
	}
	// Idempotent remove.
	if err := st.RemoveFromIndex(ctx, "aspirations", "a"); err != nil {
		t.Fatalf("re-remove: %v", err)
	}

	keys, _, err = st.ListIndex(ctx, "aspirations", "", 10)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(keys) != 1 || keys[0] != "b" {
		t.Errorf("keys after remove: got %v, want [b]", keys)
	}

	// Unknown index lists empty, not an error.
	keys, next, err = st.ListIndex(ctx, "nothing-here", "", 10)
	if err != nil || len(keys) != 0 || next != "" {
		t.Errorf("unknown index: keys=%v next=%q err=%v", keys, next, err)
	}
}

func testIndexPagination(t *testing.T, st store.Store) {
	ctx := context.Background()

	const total = 25
	for i := 0; i < total; i++ {
		key := fmt.Sprintf("k%02d", i)
		if err := st.AddToIndex(ctx, "aspirations", key); err != nil {
			t.Fatalf("add %s: %v", key, err)
		}
	}

	var (
		seen   = make(map[string]bool)
		cursor string
		pages  int
	)
	for {
		keys, next, err := st.ListIndex(ctx, "aspirations", cursor, 10)
		if err != nil {
			t.Fatalf("list page %d: %v", pages, err)
		}
		for _, k := range keys {
			if seen[k] {
				t.Fatalf("duplicate key across pages: %s", k)
			}
			seen[k] = true
		}
		pages++
		if next == "" {
			break
		}
		cursor = next
		if pages > total {
			t.Fatal("pagination did not terminate")
		}
	}

	if len(seen) != total {
		t.Errorf("saw %d keys, want %d", len(seen), total)
	}
	if pages != 3 {
		t.Errorf("pages: got %d, want 3", pages)
	}
}

func testPing(t *testing.T, st store.Store) {
	if err := st.Ping(context.Background()); err != nil {
		t.Fatalf("ping: %v", err)
	}
}
