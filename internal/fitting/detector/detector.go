// Package detector defines the grip-point detection capability consumed by
// the fitting store. Detection runs in an external AI service; the store
// constructs one detector per request through a Factory and always closes it
// afterwards.
package detector

import (
	"context"

	"github.com/arkavale/gearforge/internal/fitting/domain"
)

// Detector infers weapon grip points from model data.
type Detector interface {
	// DetectHandleArea returns the inferred grip point for the model at
	// modelURL. The debug flag asks the service to include diagnostic data.
	DetectHandleArea(ctx context.Context, modelURL string, debug bool) (domain.HandleDetection, error)
	// Close releases detector resources. It must be safe to call once after
	// every construction, on both success and failure paths.
	Close() error
}

// Factory constructs a fresh detector for a single detection run.
type Factory func() (Detector, error)
