package domain

import (
	"errors"
	"strings"
)

// AssetKind classifies an asset-library entry for filtering.
type AssetKind string

const (
	// AssetAvatar is a body mesh assets are fitted onto.
	AssetAvatar AssetKind = "avatar"
	// AssetArmor is chest or hip equipment.
	AssetArmor AssetKind = "armor"
	// AssetHelmet is head equipment.
	AssetHelmet AssetKind = "helmet"
	// AssetWeapon is hand equipment.
	AssetWeapon AssetKind = "weapon"
)

var (
	// ErrEmptyAssetID indicates a missing asset identifier.
	ErrEmptyAssetID = errors.New("asset id is required")
	// ErrMissingWeaponModel indicates a weapon asset without model data.
	ErrMissingWeaponModel = errors.New("weapon asset has no model")
)

// AssetRef references an externally-owned asset. The fitting core holds only
// the identifier and display metadata; the asset library owns the model data.
type AssetRef struct {
	ID       string    `json:"id"`
	Name     string    `json:"name"`
	Kind     AssetKind `json:"kind"`
	ModelURL string    `json:"model_url,omitempty"`
}

// NormalizeAssetRef trims and validates an asset reference.
func NormalizeAssetRef(ref AssetRef) (AssetRef, error) {
	ref.ID = strings.TrimSpace(ref.ID)
	if ref.ID == "" {
		return AssetRef{}, ErrEmptyAssetID
	}
	ref.Name = strings.TrimSpace(ref.Name)
	ref.ModelURL = strings.TrimSpace(ref.ModelURL)
	return ref, nil
}

// HasModel reports whether the asset carries loadable model data.
func (r AssetRef) HasModel() bool {
	return strings.TrimSpace(r.ModelURL) != ""
}
