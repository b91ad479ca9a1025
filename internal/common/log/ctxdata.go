package log

import "context"

type correlationIDKey struct{}

// WithCorrelationID stores the per-run correlation id in the context. The id
// shows up on every log line and is forwarded upstream as X-Correlation-Id.
func WithCorrelationID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, correlationIDKey{}, id)
}

func GetCorrelationID(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if id, ok := ctx.Value(correlationIDKey{}).(string); ok {
		return id
	}
	return ""
}
