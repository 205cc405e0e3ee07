package logging

import (
	"context"
	"log/slog"
)

type contextKey string

const (
	componentKey contextKey = "component"
	sessionKey   contextKey = "session_id"
)

// WithComponent annotates context with the core component name.
func WithComponent(ctx context.Context, component string) context.Context {
	if component == "" {
		return ctx
	}
	return context.WithValue(ctx, componentKey, component)
}

// WithSession annotates context with the edit session identifier.
func WithSession(ctx context.Context, id string) context.Context {
	if id == "" {
		return ctx
	}
	return context.WithValue(ctx, sessionKey, id)
}

// WithContext returns a logger carrying any component and session fields
// present on the context.
func WithContext(ctx context.Context, logger *slog.Logger) *slog.Logger {
	if logger == nil {
		logger = NewNop()
	}
	if ctx == nil {
		return logger
	}
	if component, ok := ctx.Value(componentKey).(string); ok && component != "" {
		logger = logger.With(String("component", component))
	}
	if session, ok := ctx.Value(sessionKey).(string); ok && session != "" {
		logger = logger.With(String("session_id", session))
	}
	return logger
}
