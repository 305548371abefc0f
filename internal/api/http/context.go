package http

import (
	"context"

	"commonage-backend/internal/domain"
)

type contextKey string

const actorContextKey contextKey = "actor"

// ActorFromContext extracts the authenticated actor injected by the auth
// middleware.
func ActorFromContext(ctx context.Context) (domain.Actor, bool) {
	actor, ok := ctx.Value(actorContextKey).(domain.Actor)
	return actor, ok
}

func withActor(ctx context.Context, actor domain.Actor) context.Context {
	return context.WithValue(ctx, actorContextKey, actor)
}
