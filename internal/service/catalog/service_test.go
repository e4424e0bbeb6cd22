package catalog

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/mpmulbi/aspirasi-backend/internal/domain"
	"github.com/mpmulbi/aspirasi-backend/internal/store/memory"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	svc := NewService(slog.Default(), memory.New())

	var clock int64 = 1700000000000
	svc.now = func() int64 { clock += 10; return clock }
	return svc
}

func TestLegislativeLifecycle(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	doc, err := svc.CreateLegislative(ctx, LegislativeInput{
		Title:    "Peraturan Pemira 2025",
		Category: "Peraturan",
		URL:      "https://docs.example/pemira-2025.pdf",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if doc.ID == "" || doc.UpdatedAt == 0 {
		t.Errorf("doc not fully populated: %+v", doc)
	}

	older, err := svc.CreateLegislative(ctx, LegislativeInput{
		Title: "Tata Tertib Sidang",
		URL:   "https://docs.example/tatib.pdf",
	})
	if err != nil {
		t.Fatalf("create second: %v", err)
	}

	docs, err := svc.ListLegislative(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(docs) != 2 {
		t.Fatalf("docs: got %d, want 2", len(docs))
	}
	if docs[0].ID != older.ID {
		t.Errorf("expected most recently updated first, got %s", docs[0].Title)
	}

	if err := svc.DeleteLegislative(ctx, doc.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	docs, _ = svc.ListLegislative(ctx)
	if len(docs) != 1 {
		t.Errorf("docs after delete: got %d, want 1", len(docs))
	}

	if err := svc.DeleteLegislative(ctx, doc.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("second delete: got %v, want ErrNotFound", err)
	}
}

func TestLegislativeValidation(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	if _, err := svc.CreateLegislative(ctx, LegislativeInput{URL: "x"}); !errors.Is(err, domain.ErrValidation) {
		t.Errorf("missing title: got %v", err)
	}
	if _, err := svc.CreateLegislative(ctx, LegislativeInput{Title: "x"}); !errors.Is(err, domain.ErrValidation) {
		t.Errorf("missing url: got %v", err)
	}
}

func TestStructureMembersSortedByOrder(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	for _, m := range []StructureMemberInput{
		{Name: "Sekretaris", Position: "Sekretaris Jenderal", Order: 2},
		{Name: "Ketua", Position: "Ketua Umum", Order: 1},
		{Name: "Anggota", Position: "Komisi A", Order: 3},
	} {
		if _, err := svc.CreateStructureMember(ctx, m); err != nil {
			t.Fatalf("create %s: %v", m.Name, err)
		}
	}

	members, err := svc.ListStructureMembers(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	want := []string{"Ketua", "Sekretaris", "Anggota"}
	for i, m := range members {
		if m.Name != want[i] {
			t.Errorf("position %d: got %s, want %s", i, m.Name, want[i])
		}
	}
}

func TestSupervisionDefaultsDate(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	act, err := svc.CreateSupervision(ctx, SupervisionInput{
		Title:       "Rapat Dengar Pendapat",
		Description: "Evaluasi program kerja BEM triwulan pertama",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if act.Date == 0 {
		t.Error("date should default to now")
	}

	explicit, err := svc.CreateSupervision(ctx, SupervisionInput{Title: "Audiensi", Date: act.Date + 1000})
	if err != nil {
		t.Fatalf("create explicit: %v", err)
	}

	activities, err := svc.ListSupervision(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(activities) != 2 || activities[0].ID != explicit.ID {
		t.Errorf("most recent first: got %+v", activities)
	}
}
