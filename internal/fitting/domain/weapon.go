package domain

// Vec3 is a 3D vector in viewer space.
type Vec3 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// HandleDetection holds the externally computed grip-point inference for a
// weapon asset. A nil *HandleDetection means detection has not run or was
// invalidated by a weapon or slot change.
type HandleDetection struct {
	GripPoint  Vec3    `json:"grip_point"`
	Confidence float64 `json:"confidence"`
	Label      string  `json:"label"`
}

// WeaponAdjustments is the weapon-mode-only manual transform state. It resets
// to defaults on slot change or explicit reset.
type WeaponAdjustments struct {
	Position    Vec3    `json:"position"`
	RotationDeg Vec3    `json:"rotation_deg"`
	Scale       float64 `json:"scale"`
}

// DefaultWeaponAdjustments returns zeroed offsets at unit scale.
func DefaultWeaponAdjustments() WeaponAdjustments {
	return WeaponAdjustments{Scale: 1}
}

// AnimationState captures the preview animation the viewer should play.
type AnimationState struct {
	Clip    string `json:"clip"`
	Playing bool   `json:"playing"`
}

// RestClip is the rest pose forced on slot transitions.
const RestClip = "rest"

// RestAnimation returns the paused rest pose.
func RestAnimation() AnimationState {
	return AnimationState{Clip: RestClip, Playing: false}
}

// VisualizationMode selects how the viewer shades fitted meshes.
type VisualizationMode string

const (
	// VisualizationShaded renders full materials.
	VisualizationShaded VisualizationMode = "shaded"
	// VisualizationClay renders untextured geometry for inspecting deformation.
	VisualizationClay VisualizationMode = "clay"
)
