// Package scale owns the creature-category height table used to auto-scale
// weapons to an avatar. Defaults are hardcoded; deployments can override or
// extend them with a Lua script that returns a table of category = height
// pairs.
package scale

import (
	"errors"
	"fmt"
	"strings"
)

// Category names a creature body archetype.
type Category string

// Built-in categories with canonical avatar heights in meters.
const (
	CategoryHumanoid Category = "humanoid"
	CategorySmall    Category = "small"
	CategoryLarge    Category = "large"
	CategoryGiant    Category = "giant"
	CategoryBeast    Category = "beast"
)

// ReferenceHeight is the humanoid baseline weapons are authored against.
const ReferenceHeight = 1.75

// ErrUnknownCategory indicates a category missing from the table.
var ErrUnknownCategory = errors.New("creature category is unknown")

// Table maps creature categories to canonical avatar heights.
type Table struct {
	heights map[Category]float64
}

// DefaultTable returns the built-in height table.
func DefaultTable() *Table {
	return &Table{heights: map[Category]float64{
		CategoryHumanoid: ReferenceHeight,
		CategorySmall:    1.15,
		CategoryLarge:    2.5,
		CategoryGiant:    4.0,
		CategoryBeast:    1.3,
	}}
}

// Height returns the canonical avatar height for a category.
func (t *Table) Height(category Category) (float64, error) {
	if t == nil || t.heights == nil {
		return 0, fmt.Errorf("height table is not configured")
	}
	key := Category(strings.ToLower(strings.TrimSpace(string(category))))
	height, ok := t.heights[key]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownCategory, category)
	}
	return height, nil
}

// Categories returns the known category names.
func (t *Table) Categories() []Category {
	if t == nil {
		return nil
	}
	out := make([]Category, 0, len(t.heights))
	for category := range t.heights {
		out = append(out, category)
	}
	return out
}

// WeaponScale returns the uniform scale factor that adapts a weapon authored
// at the reference height to an avatar of the given height.
func WeaponScale(avatarHeight float64) float64 {
	if avatarHeight <= 0 {
		return 1
	}
	return avatarHeight / ReferenceHeight
}
