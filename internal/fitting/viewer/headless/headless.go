// Package headless implements viewer.Viewer without a rendering backend.
// The service tracks fitting state server-side while mesh deformation runs in
// the connected client; this adapter acknowledges viewer operations and keeps
// enough bookkeeping to produce a describable export artifact.
package headless

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/arkavale/gearforge/internal/fitting/viewer"
)

// Viewer acknowledges viewer operations and records the last applied
// parameters. Safe for concurrent use.
type Viewer struct {
	mu sync.Mutex

	fitted       bool
	helmetFitted bool
	attached     bool
	fitParams    viewer.FitParams
	helmetParams viewer.HelmetParams
}

// New returns an empty headless viewer.
func New() *Viewer {
	return &Viewer{}
}

// ResetTransform implements viewer.Viewer.
func (v *Viewer) ResetTransform() error {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.fitted = false
	v.helmetFitted = false
	return nil
}

// ClearArmor implements viewer.Viewer.
func (v *Viewer) ClearArmor() error {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.fitted = false
	return nil
}

// ClearHelmet implements viewer.Viewer.
func (v *Viewer) ClearHelmet() error {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.helmetFitted = false
	v.attached = false
	return nil
}

// PerformFitting implements viewer.Viewer.
func (v *Viewer) PerformFitting(ctx context.Context, params viewer.FitParams) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	v.mu.Lock()
	defer v.mu.Unlock()
	v.fitted = true
	v.fitParams = params
	return nil
}

// TransferWeights implements viewer.Viewer.
func (v *Viewer) TransferWeights(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	v.mu.Lock()
	defer v.mu.Unlock()
	if !v.fitted {
		return fmt.Errorf("no fitted armor to transfer weights from")
	}
	return nil
}

// PerformHelmetFitting implements viewer.Viewer.
func (v *Viewer) PerformHelmetFitting(ctx context.Context, params viewer.HelmetParams) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	v.mu.Lock()
	defer v.mu.Unlock()
	v.helmetFitted = true
	v.helmetParams = params
	return nil
}

// AttachHelmetToHead implements viewer.Viewer.
func (v *Viewer) AttachHelmetToHead() error {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.attached = true
	return nil
}

// DetachHelmetFromHead implements viewer.Viewer.
func (v *Viewer) DetachHelmetFromHead() error {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.attached = false
	return nil
}

// ExportFittedModel implements viewer.Viewer. The artifact is a JSON
// description of the applied fitting parameters; mesh data stays client-side.
func (v *Viewer) ExportFittedModel(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	v.mu.Lock()
	defer v.mu.Unlock()
	if !v.fitted && !v.helmetFitted {
		return nil, fmt.Errorf("nothing fitted to export")
	}
	artifact := struct {
		Fitted       bool                `json:"fitted"`
		HelmetFitted bool                `json:"helmet_fitted"`
		Attached     bool                `json:"helmet_attached"`
		FitParams    viewer.FitParams    `json:"fit_params"`
		HelmetParams viewer.HelmetParams `json:"helmet_params"`
	}{
		Fitted:       v.fitted,
		HelmetFitted: v.helmetFitted,
		Attached:     v.attached,
		FitParams:    v.fitParams,
		HelmetParams: v.helmetParams,
	}
	data, err := json.Marshal(artifact)
	if err != nil {
		return nil, fmt.Errorf("marshal export artifact: %w", err)
	}
	return data, nil
}

var _ viewer.Viewer = (*Viewer)(nil)
