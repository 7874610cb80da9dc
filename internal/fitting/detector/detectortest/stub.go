// Package detectortest provides a stub detector factory for store tests.
package detectortest

import (
	"context"
	"sync"

	"github.com/arkavale/gearforge/internal/fitting/detector"
	"github.com/arkavale/gearforge/internal/fitting/domain"
)

// Stub implements detector.Detector with canned results.
type Stub struct {
	mu        sync.Mutex
	Result    domain.HandleDetection
	DetectErr error
	detects   int
	closes    int
}

// DetectHandleArea implements detector.Detector.
func (s *Stub) DetectHandleArea(context.Context, string, bool) (domain.HandleDetection, error) {
	s.mu.Lock()
	s.detects++
	s.mu.Unlock()
	if s.DetectErr != nil {
		return domain.HandleDetection{}, s.DetectErr
	}
	return s.Result, nil
}

// Close implements detector.Detector.
func (s *Stub) Close() error {
	s.mu.Lock()
	s.closes++
	s.mu.Unlock()
	return nil
}

// Detects returns how many detections ran.
func (s *Stub) Detects() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.detects
}

// Closes returns how many times Close was called.
func (s *Stub) Closes() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closes
}

// Factory wraps the stub in a detector.Factory counting constructions.
type Factory struct {
	mu     sync.Mutex
	Stub   *Stub
	NewErr error
	builds int
}

// New implements detector.Factory.
func (f *Factory) New() (detector.Detector, error) {
	f.mu.Lock()
	f.builds++
	f.mu.Unlock()
	if f.NewErr != nil {
		return nil, f.NewErr
	}
	return f.Stub, nil
}

// Builds returns how many detectors were constructed.
func (f *Factory) Builds() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.builds
}
