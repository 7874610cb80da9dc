package store

import (
	"log"

	"github.com/arkavale/gearforge/internal/fitting/domain"
	"github.com/arkavale/gearforge/internal/fitting/scale"
	"github.com/arkavale/gearforge/internal/fitting/viewer"
)

// ResetWeaponAdjustments restores the manual weapon transform to identity,
// or to the auto-scale value when auto-scale is on.
func (s *Store) ResetWeaponAdjustments() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.WeaponAdjustments = domain.DefaultWeaponAdjustments()
	if s.state.AutoScaleWeapon {
		s.state.WeaponAdjustments.Scale = scale.WeaponScale(s.state.AvatarHeight)
	}
}

// ResetFitting restores the fitting config to defaults. The pre-reset config
// is checkpointed first so the reset itself is undoable.
func (s *Store) ResetFitting() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ledger.Push(s.state.FittingConfig, s.clock())
	s.state.FittingConfig = domain.DefaultFittingConfig()
	s.state.FittingProgress = 0
	s.state.IsArmorFitted = false
	s.state.IsArmorBound = false
	s.state.LastError = ""
}

// ResetScene clears the fitted geometry for the active slot only. Other
// slots' results, the selections, and the history are untouched.
func (s *Store) ResetScene(v viewer.Viewer) {
	if v != nil {
		if err := v.ResetTransform(); err != nil {
			log.Printf("fitting: reset transform: %v", err)
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	switch s.state.Slot {
	case domain.SlotHead:
		s.state.HelmetConfig = domain.DefaultHelmetConfig()
		s.state.HelmetFitted = false
		s.state.HelmetAttached = false
	case domain.SlotSpine2, domain.SlotHips:
		s.state.FittingConfig = domain.DefaultFittingConfig()
		s.state.FittingProgress = 0
		s.state.IsArmorFitted = false
		s.state.IsArmorBound = false
	case domain.SlotHandR, domain.SlotHandL:
		s.state.WeaponAdjustments = domain.DefaultWeaponAdjustments()
		if s.state.AutoScaleWeapon {
			s.state.WeaponAdjustments.Scale = scale.WeaponScale(s.state.AvatarHeight)
		}
		s.state.HandleDetection = nil
	}
	s.state.LastError = ""
}

// ResetAll returns the store to its initial state and drops the history.
func (s *Store) ResetAll() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = initialState()
	s.ledger.Reset()
}
