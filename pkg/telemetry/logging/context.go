package logging

import (
	"context"

	"github.com/google/uuid"
)

// Context keys for common log fields.
type contextKey string

const (
	// InvocationIDKey is the context key for the per-run invocation ID.
	InvocationIDKey contextKey = "invocation_id"

	// ConfigPathKey is the context key for the config file path in use.
	ConfigPathKey contextKey = "config_path"
)

// NewInvocationID returns a fresh random identifier for one process run.
func NewInvocationID() string {
	return uuid.NewString()
}

// WithInvocationID adds an invocation ID to the context.
func WithInvocationID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, InvocationIDKey, id)
}

// GetInvocationID retrieves the invocation ID from the context.
func GetInvocationID(ctx context.Context) string {
	if id, ok := ctx.Value(InvocationIDKey).(string); ok {
		return id
	}
	return ""
}

// WithConfigPath adds the config file path to the context.
func WithConfigPath(ctx context.Context, path string) context.Context {
	return context.WithValue(ctx, ConfigPathKey, path)
}

// GetConfigPath retrieves the config file path from the context.
func GetConfigPath(ctx context.Context) string {
	if path, ok := ctx.Value(ConfigPathKey).(string); ok {
		return path
	}
	return ""
}

// extractContextFields returns the context's log fields as key-value pairs
// suitable for logger.With().
func extractContextFields(ctx context.Context) []any {
	var fields []any

	if id := GetInvocationID(ctx); id != "" {
		fields = append(fields, "invocation_id", id)
	}
	if path := GetConfigPath(ctx); path != "" {
		fields = append(fields, "config_path", path)
	}

	return fields
}
