package services_test

import (
	"context"
	"testing"

	"findex/internal/services"
)

func TestContextHelpers(t *testing.T) {
	ctx := context.Background()
	ctx = services.WithRequestID(ctx, "req-123")
	ctx = services.WithRoute(ctx, "subs")
	ctx = services.WithVideoID(ctx, "dQw4w9WgXcQ")

	if rid, ok := services.RequestIDFromContext(ctx); !ok || rid != "req-123" {
		t.Fatalf("unexpected request id: %v %v", rid, ok)
	}
	if route, ok := services.RouteFromContext(ctx); !ok || route != "subs" {
		t.Fatalf("unexpected route: %v %v", route, ok)
	}
	if id, ok := services.VideoIDFromContext(ctx); !ok || id != "dQw4w9WgXcQ" {
		t.Fatalf("unexpected video id: %v %v", id, ok)
	}
}

func TestBlankValuesPreserveContext(t *testing.T) {
	ctx := context.Background()
	ctx = services.WithRoute(ctx, "")
	ctx = services.WithRequestID(ctx, "")
	if _, ok := services.RouteFromContext(ctx); ok {
		t.Fatal("expected no route value")
	}
	if _, ok := services.RequestIDFromContext(ctx); ok {
		t.Fatal("expected no request id value")
	}
}
