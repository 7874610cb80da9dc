package domain

// HelmetConfig describes the head-slot fitting parameters. Rotation is kept
// in degrees; conversion to radians happens at the viewer call boundary.
type HelmetConfig struct {
	SizeMultiplier  float64 `json:"size_multiplier"`
	FitTightness    float64 `json:"fit_tightness"`
	VerticalOffset  float64 `json:"vertical_offset"`
	ForwardOffset   float64 `json:"forward_offset"`
	RotationDegrees float64 `json:"rotation_degrees"`
}

// DefaultHelmetConfig returns the initial helmet parameters.
func DefaultHelmetConfig() HelmetConfig {
	return HelmetConfig{
		SizeMultiplier: 1,
		FitTightness:   0.5,
	}
}

// HelmetPatch carries a partial HelmetConfig update. Nil fields leave the
// current value untouched.
type HelmetPatch struct {
	SizeMultiplier  *float64
	FitTightness    *float64
	VerticalOffset  *float64
	ForwardOffset   *float64
	RotationDegrees *float64
}

// Apply returns a new config with the patch's non-nil fields applied.
func (p HelmetPatch) Apply(c HelmetConfig) HelmetConfig {
	if p.SizeMultiplier != nil {
		c.SizeMultiplier = *p.SizeMultiplier
	}
	if p.FitTightness != nil {
		c.FitTightness = *p.FitTightness
	}
	if p.VerticalOffset != nil {
		c.VerticalOffset = *p.VerticalOffset
	}
	if p.ForwardOffset != nil {
		c.ForwardOffset = *p.ForwardOffset
	}
	if p.RotationDegrees != nil {
		c.RotationDegrees = *p.RotationDegrees
	}
	return c
}
