// Package viewertest provides a recording Viewer fake for store tests.
package viewertest

import (
	"context"
	"sync"

	"github.com/arkavale/gearforge/internal/fitting/viewer"
)

// Recorder implements viewer.Viewer, recording every call in order and
// returning injected errors when configured.
type Recorder struct {
	mu    sync.Mutex
	calls []string

	// Fail maps a method name (e.g. "PerformFitting") to the error it
	// should return.
	Fail map[string]error

	// Export is returned by ExportFittedModel when no failure is injected.
	Export []byte

	// LastFitParams holds the params of the most recent PerformFitting call.
	LastFitParams viewer.FitParams
	// LastHelmetParams holds the params of the most recent
	// PerformHelmetFitting call.
	LastHelmetParams viewer.HelmetParams
}

// New returns an empty recorder.
func New() *Recorder {
	return &Recorder{Fail: make(map[string]error)}
}

func (r *Recorder) record(name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, name)
	if r.Fail != nil {
		if err, ok := r.Fail[name]; ok {
			return err
		}
	}
	return nil
}

// Calls returns the ordered method names invoked so far.
func (r *Recorder) Calls() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.calls))
	copy(out, r.calls)
	return out
}

// CallCount returns how many times the named method was invoked.
func (r *Recorder) CallCount(name string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	count := 0
	for _, call := range r.calls {
		if call == name {
			count++
		}
	}
	return count
}

// ResetTransform implements viewer.Viewer.
func (r *Recorder) ResetTransform() error { return r.record("ResetTransform") }

// ClearArmor implements viewer.Viewer.
func (r *Recorder) ClearArmor() error { return r.record("ClearArmor") }

// ClearHelmet implements viewer.Viewer.
func (r *Recorder) ClearHelmet() error { return r.record("ClearHelmet") }

// PerformFitting implements viewer.Viewer.
func (r *Recorder) PerformFitting(_ context.Context, params viewer.FitParams) error {
	r.mu.Lock()
	r.LastFitParams = params
	r.mu.Unlock()
	return r.record("PerformFitting")
}

// TransferWeights implements viewer.Viewer.
func (r *Recorder) TransferWeights(context.Context) error { return r.record("TransferWeights") }

// PerformHelmetFitting implements viewer.Viewer.
func (r *Recorder) PerformHelmetFitting(_ context.Context, params viewer.HelmetParams) error {
	r.mu.Lock()
	r.LastHelmetParams = params
	r.mu.Unlock()
	return r.record("PerformHelmetFitting")
}

// AttachHelmetToHead implements viewer.Viewer.
func (r *Recorder) AttachHelmetToHead() error { return r.record("AttachHelmetToHead") }

// DetachHelmetFromHead implements viewer.Viewer.
func (r *Recorder) DetachHelmetFromHead() error { return r.record("DetachHelmetFromHead") }

// ExportFittedModel implements viewer.Viewer.
func (r *Recorder) ExportFittedModel(context.Context) ([]byte, error) {
	if err := r.record("ExportFittedModel"); err != nil {
		return nil, err
	}
	return r.Export, nil
}
