package ctxutil

import (
	"context"
	"testing"

	"github.com/mpmulbi/aspirasi-backend/internal/domain"
)

func TestWithActor_And_ActorFromCtx(t *testing.T) {
	t.Parallel()

	user := domain.User{ID: "admin_mpm", Username: "admin_mpm", Name: "Admin MPM ULBI", Role: domain.RoleMPM}
	ctx := WithActor(context.Background(), user)

	got, ok := ActorFromCtx(ctx)
	if !ok {
		t.Fatal("expected ok=true for stored actor")
	}
	if got != user {
		t.Fatalf("expected %+v, got %+v", user, got)
	}
}

func TestActorFromCtx_EmptyContext(t *testing.T) {
	t.Parallel()

	if _, ok := ActorFromCtx(context.Background()); ok {
		t.Fatal("expected ok=false for empty context")
	}
}

func TestActorFromCtx_ZeroUser(t *testing.T) {
	t.Parallel()

	ctx := WithActor(context.Background(), domain.User{})
	if _, ok := ActorFromCtx(ctx); ok {
		t.Fatal("expected ok=false for zero-value user")
	}
}

func TestActorFromCtx_WrongType(t *testing.T) {
	t.Parallel()

	ctx := context.WithValue(context.Background(), ctxKey("actor"), "not-a-user")
	if _, ok := ActorFromCtx(ctx); ok {
		t.Fatal("expected ok=false for wrong type")
	}
}

func TestWithRequestID_And_RequestIDFromCtx(t *testing.T) {
	t.Parallel()

	ctx := WithRequestID(context.Background(), "req-123")
	if got := RequestIDFromCtx(ctx); got != "req-123" {
		t.Fatalf("expected req-123, got %s", got)
	}
}

func TestRequestIDFromCtx_EmptyContext(t *testing.T) {
	t.Parallel()

	if got := RequestIDFromCtx(context.Background()); got != "" {
		t.Fatalf("expected empty string, got %s", got)
	}
}
