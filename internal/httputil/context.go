package httputil

import (
	"context"
	"net/http"

	"shepherd/internal/authz"
)

// Context key type to avoid collisions
type contextKey string

const (
	actorKey     contextKey = "actor"
	requestIDKey contextKey = "requestID"
)

// WithActor attaches the authenticated actor to the request context.
func WithActor(r *http.Request, actor authz.Actor) *http.Request {
	ctx := context.WithValue(r.Context(), actorKey, actor)
	return r.WithContext(ctx)
}

// GetActor retrieves the authenticated actor from the context. The second
// return value is false when the request never passed the auth middleware.
func GetActor(r *http.Request) (authz.Actor, bool) {
	actor, ok := r.Context().Value(actorKey).(authz.Actor)
	return actor, ok
}

// WithRequestID attaches a request id to the context for log correlation.
func WithRequestID(r *http.Request, id string) *http.Request {
	ctx := context.WithValue(r.Context(), requestIDKey, id)
	return r.WithContext(ctx)
}

// GetRequestID retrieves the request id, or "" if none was set.
func GetRequestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}
