package store

import (
	"fmt"
	"log"

	"github.com/arkavale/gearforge/internal/fitting/domain"
	"github.com/arkavale/gearforge/internal/fitting/scale"
	"github.com/arkavale/gearforge/internal/fitting/viewer"
)

// SetEquipmentSlot switches the active attachment slot. The transition is
// transactional: mode-incompatible selections are cleared, transient fitting
// state resets to initial values, and the viewer is told to drop meshes that
// belong to the slot being left. Repeating a transition is safe.
func (s *Store) SetEquipmentSlot(slot domain.EquipmentSlot, v viewer.Viewer) error {
	parsed, err := domain.ParseSlot(string(slot))
	if err != nil {
		s.setError(err.Error())
		return err
	}

	s.mu.Lock()
	prev := s.state.Slot

	// Viewer cleanup happens before the state flips so a failure there never
	// leaves a cleared selection with a visible mesh.
	if v != nil {
		if prev == domain.SlotHead && parsed != domain.SlotHead {
			if err := v.ClearHelmet(); err != nil {
				log.Printf("fitting: clear helmet on slot change: %v", err)
			}
		}
		if prev == domain.SlotSpine2 && parsed != domain.SlotSpine2 {
			if err := v.ClearArmor(); err != nil {
				log.Printf("fitting: clear armor on slot change: %v", err)
			}
		}
	}

	s.state.Slot = parsed
	switch parsed {
	case domain.SlotHead:
		s.state.SelectedArmor = nil
		s.state.SelectedWeapon = nil
	case domain.SlotSpine2, domain.SlotHips:
		s.state.SelectedHelmet = nil
		s.state.SelectedWeapon = nil
	case domain.SlotHandR, domain.SlotHandL:
		s.state.SelectedArmor = nil
		s.state.SelectedHelmet = nil
		s.state.HandleDetection = nil
	}

	s.state.FittingProgress = 0
	s.state.IsFitting = false
	s.state.IsArmorFitted = false
	s.state.IsArmorBound = false
	s.state.HelmetFitted = false
	s.state.HelmetAttached = false
	s.state.ShowWireframe = false
	s.state.LastError = ""
	s.state.Animation = domain.RestAnimation()
	s.state.WeaponAdjustments = domain.DefaultWeaponAdjustments()

	if s.state.SelectedAvatar != nil {
		s.state.AssetFilter = filterForSlot(parsed)
	}
	s.mu.Unlock()
	return nil
}

func filterForSlot(slot domain.EquipmentSlot) domain.AssetKind {
	switch slot {
	case domain.SlotHead:
		return domain.AssetHelmet
	case domain.SlotHandR, domain.SlotHandL:
		return domain.AssetWeapon
	default:
		return domain.AssetArmor
	}
}

// SelectAvatar sets the body mesh reference and retargets the asset filter to
// the active workflow. A successful selection clears any stale error.
func (s *Store) SelectAvatar(ref domain.AssetRef) error {
	normalized, err := domain.NormalizeAssetRef(ref)
	if err != nil {
		s.setError(err.Error())
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.SelectedAvatar = &normalized
	s.state.AssetFilter = filterForSlot(s.state.Slot)
	s.state.LastError = ""
	return nil
}

// SelectArmor sets the armor selection for the spine and hip slots.
func (s *Store) SelectArmor(ref domain.AssetRef) error {
	normalized, err := domain.NormalizeAssetRef(ref)
	if err != nil {
		s.setError(err.Error())
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.SelectedArmor = &normalized
	s.state.IsArmorFitted = false
	s.state.IsArmorBound = false
	s.state.LastError = ""
	return nil
}

// SelectHelmet sets the helmet selection for the head slot.
func (s *Store) SelectHelmet(ref domain.AssetRef) error {
	normalized, err := domain.NormalizeAssetRef(ref)
	if err != nil {
		s.setError(err.Error())
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.SelectedHelmet = &normalized
	s.state.HelmetFitted = false
	s.state.HelmetAttached = false
	s.state.LastError = ""
	return nil
}

// SelectWeapon sets the weapon selection. Changing weapons invalidates any
// prior handle detection and reapplies auto-scale when enabled.
func (s *Store) SelectWeapon(ref domain.AssetRef) error {
	normalized, err := domain.NormalizeAssetRef(ref)
	if err != nil {
		s.setError(err.Error())
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.SelectedWeapon = &normalized
	s.state.HandleDetection = nil
	if s.state.AutoScaleWeapon {
		s.state.WeaponAdjustments.Scale = scale.WeaponScale(s.state.AvatarHeight)
	}
	s.state.LastError = ""
	return nil
}

// SetEnableWeightTransfer toggles the optional weight-transfer stage.
func (s *Store) SetEnableWeightTransfer(enabled bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.EnableWeightTransfer = enabled
}

// SetShowWireframe toggles wireframe rendering.
func (s *Store) SetShowWireframe(show bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.ShowWireframe = show
}

// SetVisualization selects the viewer shading mode.
func (s *Store) SetVisualization(mode domain.VisualizationMode) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Visualization = mode
}

// SetCurrentTab records which UI tab is active; persisted across reloads.
func (s *Store) SetCurrentTab(tab string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.CurrentTab = tab
}

// SetAnimation sets the preview animation clip and play state.
func (s *Store) SetAnimation(anim domain.AnimationState) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Animation = anim
}

// SetWeaponAdjustments replaces the manual weapon transform.
func (s *Store) SetWeaponAdjustments(adjustments domain.WeaponAdjustments) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if adjustments.Scale <= 0 {
		adjustments.Scale = 1
	}
	s.state.WeaponAdjustments = adjustments
}

// SetCreatureCategory switches the avatar archetype, updating the avatar
// height from the scale table and, when auto-scale is on, the weapon scale.
func (s *Store) SetCreatureCategory(category scale.Category) error {
	height, err := s.heights.Height(category)
	if err != nil {
		s.setError(err.Error())
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.CreatureCategory = category
	s.state.AvatarHeight = height
	if s.state.AutoScaleWeapon {
		s.state.WeaponAdjustments.Scale = scale.WeaponScale(height)
	}
	s.state.LastError = ""
	return nil
}

// SetAutoScaleWeapon toggles category-based weapon scaling. Enabling it
// immediately reapplies the scale for the current avatar height.
func (s *Store) SetAutoScaleWeapon(enabled bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.AutoScaleWeapon = enabled
	if enabled {
		s.state.WeaponAdjustments.Scale = scale.WeaponScale(s.state.AvatarHeight)
	}
}

// setError records a surfaced error message.
func (s *Store) setError(message string) {
	s.mu.Lock()
	s.state.LastError = message
	s.mu.Unlock()
	s.emit(ProgressEvent{Stage: "error", Err: message})
}

func (s *Store) setErrorf(format string, args ...any) string {
	message := fmt.Sprintf(format, args...)
	s.setError(message)
	return message
}
