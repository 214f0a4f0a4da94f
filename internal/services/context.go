package services

import "context"

// ctxKey keeps request annotations out of other packages' context keys.
type ctxKey uint8

const (
	requestIDKey ctxKey = iota
	routeKey
	videoIDKey
)

// annotate stores value under key; empty values leave ctx untouched.
func annotate(ctx context.Context, key ctxKey, value string) context.Context {
	if value == "" {
		return ctx
	}
	return context.WithValue(ctx, key, value)
}

func annotation(ctx context.Context, key ctxKey) (string, bool) {
	if ctx == nil {
		return "", false
	}
	value, _ := ctx.Value(key).(string)
	return value, value != ""
}

// WithRequestID tags ctx with the correlation ID echoed in X-Request-ID.
func WithRequestID(ctx context.Context, id string) context.Context {
	return annotate(ctx, requestIDKey, id)
}

func RequestIDFromContext(ctx context.Context) (string, bool) {
	return annotation(ctx, requestIDKey)
}

// WithRoute tags ctx with the API path serving the request.
func WithRoute(ctx context.Context, route string) context.Context {
	return annotate(ctx, routeKey, route)
}

func RouteFromContext(ctx context.Context) (string, bool) {
	return annotation(ctx, routeKey)
}

// WithVideoID tags ctx with the YouTube video the request targets.
func WithVideoID(ctx context.Context, id string) context.Context {
	return annotate(ctx, videoIDKey, id)
}

func VideoIDFromContext(ctx context.Context) (string, bool) {
	return annotation(ctx, videoIDKey)
}
