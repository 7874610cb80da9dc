package store

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/arkavale/gearforge/internal/fitting/domain"
)

// SavedConfiguration is the on-disk artifact for a shareable fitting setup.
// It names the assets involved but carries no mesh data.
type SavedConfiguration struct {
	Version              int                      `json:"version"`
	SavedAt              time.Time                `json:"saved_at"`
	EquipmentSlot        domain.EquipmentSlot     `json:"equipment_slot"`
	Avatar               *domain.AssetRef         `json:"avatar,omitempty"`
	Armor                *domain.AssetRef         `json:"armor,omitempty"`
	Helmet               *domain.AssetRef         `json:"helmet,omitempty"`
	Weapon               *domain.AssetRef         `json:"weapon,omitempty"`
	FittingConfig        domain.FittingConfig     `json:"fitting_config"`
	HelmetConfig         domain.HelmetConfig      `json:"helmet_config"`
	EnableWeightTransfer bool                     `json:"enable_weight_transfer"`
	WeaponAdjustments    domain.WeaponAdjustments `json:"weapon_adjustments"`
	AutoScaleWeapon      bool                     `json:"auto_scale_weapon"`
	AvatarHeight         float64                  `json:"avatar_height"`
}

const savedConfigurationVersion = 1

var (
	// ErrNothingToSave indicates no avatar or no equipment is selected.
	ErrNothingToSave = fmt.Errorf("nothing to save: select an avatar and at least one equipment piece")
)

// SaveConfiguration serializes the current setup as a JSON artifact. The
// suggested filename embeds the save timestamp. Saving requires an avatar and
// at least one equipment selection.
func (s *Store) SaveConfiguration() (filename string, data []byte, err error) {
	s.mu.Lock()
	if s.state.SelectedAvatar == nil ||
		(s.state.SelectedArmor == nil && s.state.SelectedHelmet == nil && s.state.SelectedWeapon == nil) {
		s.mu.Unlock()
		s.setError("Nothing to save: select an avatar and equipment first")
		return "", nil, ErrNothingToSave
	}
	saved := SavedConfiguration{
		Version:              savedConfigurationVersion,
		SavedAt:              s.clock().UTC(),
		EquipmentSlot:        s.state.Slot,
		Avatar:               copyAsset(s.state.SelectedAvatar),
		Armor:                copyAsset(s.state.SelectedArmor),
		Helmet:               copyAsset(s.state.SelectedHelmet),
		Weapon:               copyAsset(s.state.SelectedWeapon),
		FittingConfig:        s.state.FittingConfig,
		HelmetConfig:         s.state.HelmetConfig,
		EnableWeightTransfer: s.state.EnableWeightTransfer,
		WeaponAdjustments:    s.state.WeaponAdjustments,
		AutoScaleWeapon:      s.state.AutoScaleWeapon,
		AvatarHeight:         s.state.AvatarHeight,
	}
	s.mu.Unlock()

	data, err = json.MarshalIndent(saved, "", "  ")
	if err != nil {
		s.setErrorf("Save failed: %v", err)
		return "", nil, fmt.Errorf("marshal configuration: %w", err)
	}
	filename = fmt.Sprintf("fitting-config-%s.json", saved.SavedAt.Format("20060102-150405"))
	return filename, data, nil
}

// LoadConfiguration restores a previously saved setup. Malformed input is
// surfaced through LastError and leaves the state untouched. A successful
// load checkpoints the restored config so the load itself is undoable.
func (s *Store) LoadConfiguration(data []byte) error {
	var saved SavedConfiguration
	if err := json.Unmarshal(data, &saved); err != nil {
		s.setErrorf("Failed to load configuration: %v", err)
		return fmt.Errorf("unmarshal configuration: %w", err)
	}
	slot, err := domain.ParseSlot(string(saved.EquipmentSlot))
	if err != nil {
		s.setErrorf("Failed to load configuration: %v", err)
		return fmt.Errorf("parse slot: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.ledger.Push(s.state.FittingConfig, s.clock())
	s.state.Slot = slot
	s.state.SelectedAvatar = copyAsset(saved.Avatar)
	s.state.SelectedArmor = copyAsset(saved.Armor)
	s.state.SelectedHelmet = copyAsset(saved.Helmet)
	s.state.SelectedWeapon = copyAsset(saved.Weapon)
	s.state.FittingConfig = saved.FittingConfig.Normalize()
	s.state.HelmetConfig = saved.HelmetConfig
	s.state.EnableWeightTransfer = saved.EnableWeightTransfer
	s.state.WeaponAdjustments = saved.WeaponAdjustments
	if s.state.WeaponAdjustments.Scale <= 0 {
		s.state.WeaponAdjustments.Scale = 1
	}
	s.state.AutoScaleWeapon = saved.AutoScaleWeapon
	if saved.AvatarHeight > 0 {
		s.state.AvatarHeight = saved.AvatarHeight
	}

	// Loaded setups start from a clean fitting lifecycle.
	s.state.FittingProgress = 0
	s.state.IsFitting = false
	s.state.IsArmorFitted = false
	s.state.IsArmorBound = false
	s.state.HelmetFitted = false
	s.state.HelmetAttached = false
	s.state.HandleDetection = nil
	s.state.LastError = ""
	return nil
}
