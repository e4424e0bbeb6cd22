package ctxutil

import (
	"context"

	"github.com/mpmulbi/aspirasi-backend/internal/domain"
)

type ctxKey string

const (
	actorKey     ctxKey = "actor"
	requestIDKey ctxKey = "request_id"
)

// WithActor stores the authenticated staff user in the context.
func WithActor(ctx context.Context, user domain.User) context.Context {
	return context.WithValue(ctx, actorKey, user)
}

// ActorFromCtx extracts the authenticated staff user from the context.
// Returns false if the request was anonymous or the value has the wrong type.
func ActorFromCtx(ctx context.Context) (domain.User, bool) {
	user, ok := ctx.Value(actorKey).(domain.User)
	if !ok || user.ID == "" {
		return domain.User{}, false
	}
	return user, true
}

// WithRequestID stores the request ID in the context.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey, id)
}

// RequestIDFromCtx extracts the request ID from the context.
// Returns an empty string if absent.
func RequestIDFromCtx(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}
