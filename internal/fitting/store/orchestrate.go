package store

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math"

	"go.opentelemetry.io/otel/attribute"

	"github.com/arkavale/gearforge/internal/fitting/domain"
	"github.com/arkavale/gearforge/internal/fitting/viewer"
)

var (
	// ErrFittingInProgress indicates a rejected concurrent fitting call.
	ErrFittingInProgress = errors.New("fitting already in progress")
	// ErrNoAvatar indicates the operation needs an avatar selection.
	ErrNoAvatar = errors.New("no avatar selected")
	// ErrNoArmor indicates the operation needs an armor selection.
	ErrNoArmor = errors.New("no armor selected")
	// ErrNoHelmet indicates the operation needs a helmet selection.
	ErrNoHelmet = errors.New("no helmet selected")
	// ErrNoWeapon indicates the operation needs a weapon selection.
	ErrNoWeapon = errors.New("no weapon selected")
	// ErrNoViewer indicates the viewer handle is not live.
	ErrNoViewer = errors.New("viewer is not ready")
	// ErrNotFitted indicates binding was attempted before fitting.
	ErrNotFitted = errors.New("armor must be fitted before binding")
	// ErrDetectorUnavailable indicates no detector factory is configured.
	ErrDetectorUnavailable = errors.New("grip detector is not configured")
)

// Pipeline progress milestones.
const (
	progressPositioning    = 25
	progressDeforming      = 50
	progressWeightTransfer = 90
	progressComplete       = 100
)

func fitParams(cfg domain.FittingConfig) viewer.FitParams {
	cfg = cfg.Normalize()
	return viewer.FitParams{
		Method:               string(cfg.Method),
		Iterations:           cfg.Iterations,
		StepSize:             cfg.StepSize,
		SmoothingRadius:      cfg.SmoothingRadius,
		SmoothingStrength:    cfg.SmoothingStrength,
		TargetOffset:         cfg.TargetOffset,
		SampleRate:           cfg.SampleRate,
		PreserveFeatures:     cfg.PreserveFeatures,
		FeatureThreshold:     cfg.FeatureThreshold,
		ImprovedShrinkwrap:   cfg.ImprovedShrinkwrap,
		PreserveOpenings:     cfg.PreserveOpenings,
		PushInteriorVertices: cfg.PushInteriorVertices,
	}
}

func helmetParams(cfg domain.HelmetConfig) viewer.HelmetParams {
	return viewer.HelmetParams{
		SizeMultiplier:  cfg.SizeMultiplier,
		FitTightness:    cfg.FitTightness,
		VerticalOffset:  cfg.VerticalOffset,
		ForwardOffset:   cfg.ForwardOffset,
		RotationRadians: cfg.RotationDegrees * math.Pi / 180,
	}
}

// PerformFitting runs the staged armor fitting pipeline: positioning,
// shrinkwrap deformation, optional weight transfer, completion. A second call
// while one is in flight is rejected, not queued. On success the armor is
// marked fitted and a history checkpoint is committed; on failure the error
// is surfaced through LastError and no fitted state is recorded.
//
// A slot change while the pipeline is in flight is not guarded against: the
// run completes and writes its result into the state present at that time.
func (s *Store) PerformFitting(ctx context.Context, v viewer.Viewer) error {
	s.mu.Lock()
	if s.state.IsFitting {
		s.mu.Unlock()
		log.Printf("fitting: rejected concurrent fitting request")
		return ErrFittingInProgress
	}
	if s.state.SelectedAvatar == nil {
		s.mu.Unlock()
		s.setError("No avatar selected")
		return ErrNoAvatar
	}
	if s.state.SelectedArmor == nil {
		s.mu.Unlock()
		s.setError("No armor selected")
		return ErrNoArmor
	}
	if v == nil {
		s.mu.Unlock()
		s.setError("Viewer is not ready")
		return ErrNoViewer
	}
	s.state.IsFitting = true
	s.state.LastError = ""
	s.state.FittingProgress = 0
	params := fitParams(s.state.FittingConfig)
	weightTransfer := s.state.EnableWeightTransfer
	s.mu.Unlock()

	ctx, span := s.tracer.Start(ctx, "store.PerformFitting")
	span.SetAttributes(
		attribute.Int("fitting.iterations", params.Iterations),
		attribute.Bool("fitting.weight_transfer", weightTransfer),
	)
	defer span.End()

	clearFitting := func() {
		s.mu.Lock()
		s.state.IsFitting = false
		s.mu.Unlock()
	}

	s.setProgress("positioning", progressPositioning)
	s.pause()

	s.setProgress("deforming", progressDeforming)
	if err := v.PerformFitting(ctx, params); err != nil {
		clearFitting()
		s.setErrorf("Fitting failed: %v", err)
		return fmt.Errorf("perform fitting: %w", err)
	}
	s.pause()

	if weightTransfer {
		s.setProgress("weight-transfer", progressWeightTransfer)
		if err := v.TransferWeights(ctx); err != nil {
			clearFitting()
			s.setErrorf("Weight transfer failed: %v", err)
			return fmt.Errorf("transfer weights: %w", err)
		}
		s.pause()
	}

	s.mu.Lock()
	s.state.FittingProgress = progressComplete
	s.state.IsArmorFitted = true
	s.ledger.Push(s.state.FittingConfig, s.clock())
	s.mu.Unlock()
	s.emit(ProgressEvent{Stage: "complete", Progress: progressComplete})

	// Leave the 100% state visible briefly before clearing the busy flag.
	s.pause()
	clearFitting()
	return nil
}

// BindArmorToSkeleton transfers skinning weights for fitted armor. Fitting
// must have completed first; calling out of order fails without side effects.
func (s *Store) BindArmorToSkeleton(ctx context.Context, v viewer.Viewer) error {
	s.mu.Lock()
	if !s.state.IsArmorFitted {
		s.mu.Unlock()
		s.setError("Cannot bind armor before fitting")
		return ErrNotFitted
	}
	if v == nil {
		s.mu.Unlock()
		s.setError("Viewer is not ready")
		return ErrNoViewer
	}
	s.mu.Unlock()

	ctx, span := s.tracer.Start(ctx, "store.BindArmorToSkeleton")
	defer span.End()

	if err := v.TransferWeights(ctx); err != nil {
		s.setErrorf("Binding failed: %v", err)
		return fmt.Errorf("bind armor: %w", err)
	}

	s.mu.Lock()
	s.state.IsArmorBound = true
	s.mu.Unlock()
	return nil
}

// PerformHelmetFitting runs the head-slot fitting pass with the stored
// helmet parameters. Rotation converts from degrees to radians here, at the
// viewer boundary.
func (s *Store) PerformHelmetFitting(ctx context.Context, v viewer.Viewer) error {
	s.mu.Lock()
	if s.state.IsFitting {
		s.mu.Unlock()
		log.Printf("fitting: rejected concurrent helmet fitting request")
		return ErrFittingInProgress
	}
	if s.state.SelectedAvatar == nil {
		s.mu.Unlock()
		s.setError("No avatar selected")
		return ErrNoAvatar
	}
	if s.state.SelectedHelmet == nil {
		s.mu.Unlock()
		s.setError("No helmet selected")
		return ErrNoHelmet
	}
	if v == nil {
		s.mu.Unlock()
		s.setError("Viewer is not ready")
		return ErrNoViewer
	}
	s.state.IsFitting = true
	s.state.LastError = ""
	s.state.FittingProgress = 0
	params := helmetParams(s.state.HelmetConfig)
	s.mu.Unlock()

	ctx, span := s.tracer.Start(ctx, "store.PerformHelmetFitting")
	defer span.End()

	clearFitting := func() {
		s.mu.Lock()
		s.state.IsFitting = false
		s.mu.Unlock()
	}

	s.setProgress("positioning", progressPositioning)
	s.pause()

	s.setProgress("deforming", progressDeforming)
	if err := v.PerformHelmetFitting(ctx, params); err != nil {
		clearFitting()
		s.setErrorf("Helmet fitting failed: %v", err)
		return fmt.Errorf("perform helmet fitting: %w", err)
	}

	s.mu.Lock()
	s.state.FittingProgress = progressComplete
	s.state.HelmetFitted = true
	s.mu.Unlock()
	s.emit(ProgressEvent{Stage: "complete", Progress: progressComplete})

	s.pause()
	clearFitting()
	return nil
}

// AttachHelmetToHead parents the helmet to the head bone. Independent of
// fitting; no re-run is required.
func (s *Store) AttachHelmetToHead(v viewer.Viewer) error {
	if v == nil {
		s.setError("Viewer is not ready")
		return ErrNoViewer
	}
	if err := v.AttachHelmetToHead(); err != nil {
		s.setErrorf("Helmet attach failed: %v", err)
		return fmt.Errorf("attach helmet: %w", err)
	}
	s.mu.Lock()
	s.state.HelmetAttached = true
	s.mu.Unlock()
	return nil
}

// DetachHelmetFromHead unparents the helmet from the head bone.
func (s *Store) DetachHelmetFromHead(v viewer.Viewer) error {
	if v == nil {
		s.setError("Viewer is not ready")
		return ErrNoViewer
	}
	if err := v.DetachHelmetFromHead(); err != nil {
		s.setErrorf("Helmet detach failed: %v", err)
		return fmt.Errorf("detach helmet: %w", err)
	}
	s.mu.Lock()
	s.state.HelmetAttached = false
	s.mu.Unlock()
	return nil
}

// DetectGripPoint asks the external detection service for the weapon's grip
// point. The detector instance is constructed per call and always closed
// afterwards, on both success and failure paths.
func (s *Store) DetectGripPoint(ctx context.Context, weapon domain.AssetRef) error {
	if !weapon.HasModel() {
		s.setError("Weapon has no model to analyze")
		return domain.ErrMissingWeaponModel
	}
	if s.detectorFactory == nil {
		s.setError("Grip detection is not available")
		return ErrDetectorUnavailable
	}

	s.mu.Lock()
	if s.state.IsDetectingHandle {
		s.mu.Unlock()
		log.Printf("fitting: rejected concurrent grip detection request")
		return ErrFittingInProgress
	}
	s.state.IsDetectingHandle = true
	s.state.LastError = ""
	s.mu.Unlock()

	clearDetecting := func() {
		s.mu.Lock()
		s.state.IsDetectingHandle = false
		s.mu.Unlock()
	}

	det, err := s.detectorFactory()
	if err != nil {
		clearDetecting()
		s.setErrorf("Grip detection failed: %v", err)
		return fmt.Errorf("construct detector: %w", err)
	}
	defer func() {
		if err := det.Close(); err != nil {
			log.Printf("fitting: close detector: %v", err)
		}
	}()

	result, err := det.DetectHandleArea(ctx, weapon.ModelURL, s.detectDebug)
	if err != nil {
		clearDetecting()
		s.setErrorf("Grip detection failed: %v", err)
		return fmt.Errorf("detect handle area: %w", err)
	}

	s.mu.Lock()
	s.state.HandleDetection = &result
	s.state.IsDetectingHandle = false
	s.mu.Unlock()
	return nil
}

// ExportModel serializes the fitted model through the viewer.
func (s *Store) ExportModel(ctx context.Context, v viewer.Viewer) ([]byte, error) {
	if v == nil {
		s.setError("Viewer is not ready")
		return nil, ErrNoViewer
	}

	ctx, span := s.tracer.Start(ctx, "store.ExportModel")
	defer span.End()

	data, err := v.ExportFittedModel(ctx)
	if err != nil {
		s.setErrorf("Export failed: %v", err)
		return nil, fmt.Errorf("export fitted model: %w", err)
	}
	return data, nil
}
