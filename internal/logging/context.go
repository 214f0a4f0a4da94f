package logging

import (
	"context"
	"log/slog"

	"findex/internal/services"
)

// Structured field keys shared by every findex log line.
const (
	FieldComponent     = "component"
	FieldCorrelationID = "correlation_id"
	FieldRoute         = "route"
	FieldVideoID       = "video_id"

	// Classification carried by WarnWithContext and ErrorWithContext.
	FieldEventType = "event_type"
	FieldErrorHint = "error_hint"
	FieldImpact    = "impact"
)

var contextFields = []struct {
	key    string
	lookup func(context.Context) (string, bool)
}{
	{FieldCorrelationID, services.RequestIDFromContext},
	{FieldRoute, services.RouteFromContext},
	{FieldVideoID, services.VideoIDFromContext},
}

// ContextFields returns the request annotations on ctx as log attributes.
func ContextFields(ctx context.Context) []slog.Attr {
	if ctx == nil {
		return nil
	}
	var attrs []slog.Attr
	for _, field := range contextFields {
		if value, ok := field.lookup(ctx); ok {
			attrs = append(attrs, slog.String(field.key, value))
		}
	}
	return attrs
}

// WithContext binds the request annotations on ctx to logger.
func WithContext(ctx context.Context, logger *slog.Logger) *slog.Logger {
	if logger == nil {
		logger = NewNop()
	}
	if attrs := ContextFields(ctx); len(attrs) > 0 {
		return logger.With(Args(attrs...)...)
	}
	return logger
}
