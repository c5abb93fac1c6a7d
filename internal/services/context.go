package services

import "context"

type contextKey string

const requestIDKey contextKey = "request_id"

// WithRequestID annotates context with the audit identifier assigned to the
// current request. The value stays scoped to this request; concurrent
// requests carry their own contexts.
func WithRequestID(ctx context.Context, id string) context.Context {
	if id == "" {
		return ctx
	}
	return context.WithValue(ctx, requestIDKey, id)
}

// RequestIDFromContext extracts the request identifier if present.
func RequestIDFromContext(ctx context.Context) (string, bool) {
	if v, ok := ctx.Value(requestIDKey).(string); ok && v != "" {
		return v, true
	}
	return "", false
}
