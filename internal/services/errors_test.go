package services_test

import (
	"errors"
	"testing"

	"mediaid/internal/services"
)

func TestWrapTagsMarker(t *testing.T) {
	err := services.Wrap(services.ErrPersistence, "cache", "insert", "missing columns", nil)
	if !errors.Is(err, services.ErrPersistence) {
		t.Fatalf("expected persistence marker, got %v", err)
	}
}

func TestWrapPreservesCause(t *testing.T) {
	cause := errors.New("connection refused")
	err := services.Wrap(services.ErrPipeline, "tmdb", "search", "", cause)
	if !errors.Is(err, cause) {
		t.Fatalf("expected wrapped cause, got %v", err)
	}
	if !errors.Is(err, services.ErrPipeline) {
		t.Fatalf("expected pipeline marker, got %v", err)
	}
}

func TestWrapDefaultsMarker(t *testing.T) {
	err := services.Wrap(nil, "", "", "", nil)
	if !errors.Is(err, services.ErrPipeline) {
		t.Fatalf("expected default pipeline marker, got %v", err)
	}
}
