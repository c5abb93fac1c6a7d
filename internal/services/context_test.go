package services_test

import (
	"context"
	"testing"

	"mediaid/internal/services"
)

func TestRequestIDRoundTrip(t *testing.T) {
	ctx := services.WithRequestID(context.Background(), "req-123")
	id, ok := services.RequestIDFromContext(ctx)
	if !ok || id != "req-123" {
		t.Fatalf("expected req-123, got %q (ok=%v)", id, ok)
	}
}

func TestRequestIDMissing(t *testing.T) {
	if _, ok := services.RequestIDFromContext(context.Background()); ok {
		t.Fatal("expected no request id on empty context")
	}
}

func TestRequestIDEmptyIgnored(t *testing.T) {
	ctx := services.WithRequestID(context.Background(), "")
	if _, ok := services.RequestIDFromContext(ctx); ok {
		t.Fatal("expected empty id to be ignored")
	}
}
