// Package viewer defines the narrow capability set the fitting core needs
// from an external 3D viewer. The rendering implementation lives outside
// this module; the store only drives it through this interface.
package viewer

import "context"

// FitParams is the merged, clamped parameter set passed to a fitting run.
type FitParams struct {
	Method               string  `json:"method"`
	Iterations           int     `json:"iterations"`
	StepSize             float64 `json:"step_size"`
	SmoothingRadius      float64 `json:"smoothing_radius"`
	SmoothingStrength    float64 `json:"smoothing_strength"`
	TargetOffset         float64 `json:"target_offset"`
	SampleRate           float64 `json:"sample_rate"`
	PreserveFeatures     bool    `json:"preserve_features"`
	FeatureThreshold     float64 `json:"feature_threshold"`
	ImprovedShrinkwrap   bool    `json:"improved_shrinkwrap"`
	PreserveOpenings     bool    `json:"preserve_openings"`
	PushInteriorVertices bool    `json:"push_interior_vertices"`
}

// HelmetParams is the head-slot variant. Rotation is already converted to
// radians at this boundary.
type HelmetParams struct {
	SizeMultiplier  float64 `json:"size_multiplier"`
	FitTightness    float64 `json:"fit_tightness"`
	VerticalOffset  float64 `json:"vertical_offset"`
	ForwardOffset   float64 `json:"forward_offset"`
	RotationRadians float64 `json:"rotation_radians"`
}

// Viewer is the imperative 3D-viewer capability consumed by the store.
// Implementations own all rendering and deformation math.
type Viewer interface {
	// ResetTransform restores the equipped mesh to its initial transform.
	ResetTransform() error
	// ClearArmor removes the armor mesh from the scene.
	ClearArmor() error
	// ClearHelmet removes the helmet mesh from the scene.
	ClearHelmet() error
	// PerformFitting runs the shrinkwrap deformation pipeline.
	PerformFitting(ctx context.Context, params FitParams) error
	// TransferWeights propagates skinning weights from the body mesh to the
	// fitted equipment mesh.
	TransferWeights(ctx context.Context) error
	// PerformHelmetFitting runs the head-slot fitting pass.
	PerformHelmetFitting(ctx context.Context, params HelmetParams) error
	// AttachHelmetToHead parents the helmet mesh to the head bone.
	AttachHelmetToHead() error
	// DetachHelmetFromHead unparents the helmet mesh.
	DetachHelmetFromHead() error
	// ExportFittedModel serializes the fitted result to a binary model file.
	ExportFittedModel(ctx context.Context) ([]byte, error)
}
