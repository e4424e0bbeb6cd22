package entity

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/mpmulbi/aspirasi-backend/internal/domain"
	"github.com/mpmulbi/aspirasi-backend/internal/store/memory"
)

type note struct {
	ID    string `json:"id"`
	Text  string `json:"text"`
	Count int    `json:"count"`
}

var noteDef = Definition{Collection: "note", Index: "notes"}

func TestCreateAndGet(t *testing.T) {
	ctx := context.Background()
	c := NewCollection[note](memory.New(), noteDef)

	if err := c.Create(ctx, "n1", note{ID: "n1", Text: "hello"}); err != nil {
		t.Fatalf("create: %v", err)
	}

	ok, err := c.Exists(ctx, "n1")
	if err != nil || !ok {
		t.Fatalf("exists: ok=%v err=%v", ok, err)
	}

	got, err := c.Get(ctx, "n1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Text != "hello" {
		t.Errorf("text: got %q", got.Text)
	}

	if _, err := c.Get(ctx, "n2"); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("get absent: got %v, want ErrNotFound", err)
	}
}

func TestCreateIsNotIdempotent(t *testing.T) {
	ctx := context.Background()
	c := NewCollection[note](memory.New(), noteDef)

	if err := c.Create(ctx, "n1", note{ID: "n1"}); err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := c.Create(ctx, "n1", note{ID: "n1"}); !errors.Is(err, domain.ErrAlreadyExists) {
		t.Errorf("second create: got %v, want ErrAlreadyExists", err)
	}
}

func TestMutate(t *testing.T) {
	ctx := context.Background()
	c := NewCollection[note](memory.New(), noteDef)

	if err := c.Create(ctx, "n1", note{ID: "n1", Count: 1}); err != nil {
		t.Fatalf("create: %v", err)
	}

	got, err := c.Mutate(ctx, "n1", func(n note) (note, error) {
		n.Count++
		return n, nil
	})
	if err != nil {
		t.Fatalf("mutate: %v", err)
	}
	if got.Count != 2 {
		t.Errorf("count: got %d, want 2", got.Count)
	}

	stored, _ := c.Get(ctx, "n1")
	if stored.Count != 2 {
		t.Errorf("stored count: got %d, want 2", stored.Count)
	}
}

func TestMutateAbsentKey(t *testing.T) {
	ctx := context.Background()
	c := NewCollection[note](memory.New(), noteDef)

	_, err := c.Mutate(ctx, "missing", func(n note) (note, error) { return n, nil })
	if !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("got %v, want ErrNotFound", err)
	}
}

func TestMutateTransformError(t *testing.T) {
	ctx := context.Background()
	c := NewCollection[note](memory.New(), noteDef)

	if err := c.Create(ctx, "n1", note{ID: "n1", Text: "keep"}); err != nil {
		t.Fatalf("create: %v", err)
	}

	boom := errors.New("boom")
	_, err := c.Mutate(ctx, "n1", func(n note) (note, error) {
		return n, boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("got %v, want transform error", err)
	}

	stored, _ := c.Get(ctx, "n1")
	if stored.Text != "keep" {
		t.Errorf("record changed despite failed transform: %q", stored.Text)
	}
}

func TestMutateRetriesOnConflict(t *testing.T) {
	ctx := context.Background()
	st := memory.New()
	c := NewCollection[note](st, noteDef)

	if err := c.Create(ctx, "n1", note{ID: "n1"}); err != nil {
		t.Fatalf("create: %v", err)
	}

	// Interleave a competing write during the first transform run. The
	// transform runs again after the conflict, so both increments survive.
	competed := false
	got, err := c.Mutate(ctx, "n1", func(n note) (note, error) {
		if !competed {
			competed = true
			if _, err := c.Mutate(ctx, "n1", func(inner note) (note, error) {
				inner.Count += 10
				return inner, nil
			}); err != nil {
				return n, err
			}
		}
		n.Count++
		return n, nil
	})
	if err != nil {
		t.Fatalf("mutate: %v", err)
	}
	if got.Count != 11 {
		t.Errorf("count: got %d, want 11 (no lost update)", got.Count)
	}
}

func TestDeleteRemovesRecordAndIndex(t *testing.T) {
	ctx := context.Background()
	c := NewCollection[note](memory.New(), noteDef)

	if err := c.Create(ctx, "n1", note{ID: "n1"}); err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := c.Delete(ctx, "n1"); err != nil {
		t.Fatalf("delete: %v", err)
	}

	if ok, _ := c.Exists(ctx, "n1"); ok {
		t.Error("record still exists")
	}
	items, _, err := c.List(ctx, "", 10)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(items) != 0 {
		t.Errorf("list after delete: %v", items)
	}
}

func TestListSkipsDanglingIndexKeys(t *testing.T) {
	ctx := context.Background()
	st := memory.New()
	c := NewCollection[note](st, noteDef)

	if err := c.Create(ctx, "n1", note{ID: "n1"}); err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := c.Create(ctx, "n2", note{ID: "n2"}); err != nil {
		t.Fatalf("create: %v", err)
	}
	// Simulate a half-finished delete: record gone, index entry left behind.
	if err := st.Delete(ctx, "note", "n1"); err != nil {
		t.Fatalf("raw delete: %v", err)
	}

	items, next, err := c.List(ctx, "", 10)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if next != "" {
		t.Errorf("next: got %q", next)
	}
	if len(items) != 1 || items[0].ID != "n2" {
		t.Errorf("items: got %v, want just n2", items)
	}
}

func TestListAllDrainsPages(t *testing.T) {
	ctx := context.Background()
	c := NewCollection[note](memory.New(), noteDef)

	const total = 250 // more than two default pages
	for i := 0; i < total; i++ {
		key := fmt.Sprintf("n%03d", i)
		if err := c.Create(ctx, key, note{ID: key}); err != nil {
			t.Fatalf("create %s: %v", key, err)
		}
	}

	items, err := c.ListAll(ctx)
	if err != nil {
		t.Fatalf("list all: %v", err)
	}
	if len(items) != total {
		t.Errorf("items: got %d, want %d", len(items), total)
	}

	seen := make(map[string]bool, total)
	for _, it := range items {
		if seen[it.ID] {
			t.Fatalf("duplicate id %s", it.ID)
		}
		seen[it.ID] = true
	}
}
