package otel_test

import (
	"context"
	"testing"

	"github.com/arkavale/gearforge/internal/platform/otel"
)

func TestSetup_NoopWhenEndpointEmpty(t *testing.T) {
	t.Setenv("GEARFORGE_OTEL_ENDPOINT", "")
	t.Setenv("GEARFORGE_OTEL_ENABLED", "")

	shutdown, err := otel.Setup(context.Background(), "test-service")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := shutdown(context.Background()); err != nil {
		t.Fatalf("shutdown noop: %v", err)
	}
}

func TestSetup_NoopWhenDisabled(t *testing.T) {
	t.Setenv("GEARFORGE_OTEL_ENDPOINT", "http://localhost:4318")
	t.Setenv("GEARFORGE_OTEL_ENABLED", "false")

	shutdown, err := otel.Setup(context.Background(), "test-service")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := shutdown(context.Background()); err != nil {
		t.Fatalf("shutdown noop: %v", err)
	}
}
