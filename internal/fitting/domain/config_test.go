package domain

import "testing"

func TestNormalizeClampsIterations(t *testing.T) {
	cfg := DefaultFittingConfig()
	cfg.Iterations = 200

	normalized := cfg.Normalize()
	if normalized.Iterations != MaxIterations {
		t.Fatalf("expected iterations clamped to %d, got %d", MaxIterations, normalized.Iterations)
	}
}

func TestNormalizeSubstitutesDefaults(t *testing.T) {
	normalized := FittingConfig{}.Normalize()
	defaults := DefaultFittingConfig()

	if normalized.Method != MethodShrinkwrap {
		t.Fatalf("expected shrinkwrap method, got %q", normalized.Method)
	}
	if normalized.Iterations != defaults.Iterations {
		t.Fatalf("expected default iterations %d, got %d", defaults.Iterations, normalized.Iterations)
	}
	if normalized.StepSize != defaults.StepSize {
		t.Fatalf("expected default step size %v, got %v", defaults.StepSize, normalized.StepSize)
	}
	if normalized.SampleRate != defaults.SampleRate {
		t.Fatalf("expected default sample rate %v, got %v", defaults.SampleRate, normalized.SampleRate)
	}
}

func TestNormalizeKeepsValidValues(t *testing.T) {
	cfg := FittingConfig{
		Method:           MethodShrinkwrap,
		Iterations:       3,
		StepSize:         0.25,
		SmoothingRadius:  1,
		SmoothingStrength: 0.8,
		TargetOffset:     0.05,
		SampleRate:       0.5,
		FeatureThreshold: 45,
	}

	normalized := cfg.Normalize()
	if normalized.Iterations != 3 || normalized.StepSize != 0.25 || normalized.SampleRate != 0.5 {
		t.Fatalf("expected valid values preserved, got %+v", normalized)
	}
}

func TestConfigPatchApply(t *testing.T) {
	base := DefaultFittingConfig()
	iterations := 8
	preserve := false

	patched := ConfigPatch{Iterations: &iterations, PreserveFeatures: &preserve}.Apply(base)
	if patched.Iterations != 8 {
		t.Fatalf("expected iterations 8, got %d", patched.Iterations)
	}
	if patched.PreserveFeatures {
		t.Fatal("expected feature preservation disabled")
	}
	if patched.StepSize != base.StepSize {
		t.Fatalf("expected untouched step size %v, got %v", base.StepSize, patched.StepSize)
	}
	// The original value must be unaffected.
	if base.Iterations != DefaultFittingConfig().Iterations {
		t.Fatal("expected base config unchanged")
	}
}

func TestConfigPatchIsZero(t *testing.T) {
	if !(ConfigPatch{}).IsZero() {
		t.Fatal("expected empty patch to be zero")
	}
	step := 0.1
	if (ConfigPatch{StepSize: &step}).IsZero() {
		t.Fatal("expected non-empty patch to not be zero")
	}
}

func TestHelmetPatchApply(t *testing.T) {
	base := DefaultHelmetConfig()
	rotation := 15.0

	patched := HelmetPatch{RotationDegrees: &rotation}.Apply(base)
	if patched.RotationDegrees != 15 {
		t.Fatalf("expected rotation 15, got %v", patched.RotationDegrees)
	}
	if patched.SizeMultiplier != 1 {
		t.Fatalf("expected size multiplier preserved, got %v", patched.SizeMultiplier)
	}
}

func TestNormalizeAssetRef(t *testing.T) {
	ref, err := NormalizeAssetRef(AssetRef{ID: " asset1 ", Name: " Iron Chest ", Kind: AssetArmor})
	if err != nil {
		t.Fatalf("normalize asset ref: %v", err)
	}
	if ref.ID != "asset1" || ref.Name != "Iron Chest" {
		t.Fatalf("expected trimmed fields, got %+v", ref)
	}

	if _, err := NormalizeAssetRef(AssetRef{ID: "  "}); err != ErrEmptyAssetID {
		t.Fatalf("expected ErrEmptyAssetID, got %v", err)
	}
}
