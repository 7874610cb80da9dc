package domain

import "errors"

// FittingMethod selects the mesh deformation technique.
type FittingMethod string

const (
	// MethodShrinkwrap conforms equipment geometry to the body surface
	// iteratively. It is the only method currently supported.
	MethodShrinkwrap FittingMethod = "shrinkwrap"
)

// MaxIterations caps the shrinkwrap iteration count accepted by the viewer.
const MaxIterations = 10

// ErrInvalidMethod indicates an unsupported fitting method.
var ErrInvalidMethod = errors.New("fitting method is invalid")

// FittingConfig describes the deformation parameters for armor fitting.
// Values are immutable snapshots; every edit produces a new version pushed
// to history.
type FittingConfig struct {
	Method               FittingMethod `json:"method"`
	Iterations           int           `json:"iterations"`
	StepSize             float64       `json:"step_size"`
	SmoothingRadius      float64       `json:"smoothing_radius"`
	SmoothingStrength    float64       `json:"smoothing_strength"`
	TargetOffset         float64       `json:"target_offset"`
	SampleRate           float64       `json:"sample_rate"`
	PreserveFeatures     bool          `json:"preserve_features"`
	FeatureThreshold     float64       `json:"feature_threshold"`
	ImprovedShrinkwrap   bool          `json:"improved_shrinkwrap"`
	PreserveOpenings     bool          `json:"preserve_openings"`
	PushInteriorVertices bool          `json:"push_interior_vertices"`
}

// DefaultFittingConfig returns the initial deformation parameters.
func DefaultFittingConfig() FittingConfig {
	return FittingConfig{
		Method:               MethodShrinkwrap,
		Iterations:           5,
		StepSize:             0.5,
		SmoothingRadius:      2,
		SmoothingStrength:    0.5,
		TargetOffset:         0.02,
		SampleRate:           1,
		PreserveFeatures:     true,
		FeatureThreshold:     30,
		ImprovedShrinkwrap:   true,
		PreserveOpenings:     true,
		PushInteriorVertices: false,
	}
}

// Normalize clamps the config into the range the viewer accepts and
// substitutes defaults for unset numeric fields.
func (c FittingConfig) Normalize() FittingConfig {
	defaults := DefaultFittingConfig()
	if c.Method == "" {
		c.Method = defaults.Method
	}
	if c.Iterations <= 0 {
		c.Iterations = defaults.Iterations
	}
	if c.Iterations > MaxIterations {
		c.Iterations = MaxIterations
	}
	if c.StepSize <= 0 {
		c.StepSize = defaults.StepSize
	}
	if c.SmoothingRadius <= 0 {
		c.SmoothingRadius = defaults.SmoothingRadius
	}
	if c.SmoothingStrength <= 0 {
		c.SmoothingStrength = defaults.SmoothingStrength
	}
	if c.SampleRate <= 0 || c.SampleRate > 1 {
		c.SampleRate = defaults.SampleRate
	}
	if c.FeatureThreshold <= 0 {
		c.FeatureThreshold = defaults.FeatureThreshold
	}
	return c
}

// ConfigPatch carries a partial FittingConfig update. Nil fields leave the
// current value untouched.
type ConfigPatch struct {
	Method               *FittingMethod
	Iterations           *int
	StepSize             *float64
	SmoothingRadius      *float64
	SmoothingStrength    *float64
	TargetOffset         *float64
	SampleRate           *float64
	PreserveFeatures     *bool
	FeatureThreshold     *float64
	ImprovedShrinkwrap   *bool
	PreserveOpenings     *bool
	PushInteriorVertices *bool
}

// Apply returns a new config with the patch's non-nil fields applied.
func (p ConfigPatch) Apply(c FittingConfig) FittingConfig {
	if p.Method != nil {
		c.Method = *p.Method
	}
	if p.Iterations != nil {
		c.Iterations = *p.Iterations
	}
	if p.StepSize != nil {
		c.StepSize = *p.StepSize
	}
	if p.SmoothingRadius != nil {
		c.SmoothingRadius = *p.SmoothingRadius
	}
	if p.SmoothingStrength != nil {
		c.SmoothingStrength = *p.SmoothingStrength
	}
	if p.TargetOffset != nil {
		c.TargetOffset = *p.TargetOffset
	}
	if p.SampleRate != nil {
		c.SampleRate = *p.SampleRate
	}
	if p.PreserveFeatures != nil {
		c.PreserveFeatures = *p.PreserveFeatures
	}
	if p.FeatureThreshold != nil {
		c.FeatureThreshold = *p.FeatureThreshold
	}
	if p.ImprovedShrinkwrap != nil {
		c.ImprovedShrinkwrap = *p.ImprovedShrinkwrap
	}
	if p.PreserveOpenings != nil {
		c.PreserveOpenings = *p.PreserveOpenings
	}
	if p.PushInteriorVertices != nil {
		c.PushInteriorVertices = *p.PushInteriorVertices
	}
	return c
}

// IsZero reports whether the patch carries no changes.
func (p ConfigPatch) IsZero() bool {
	return p == ConfigPatch{}
}
