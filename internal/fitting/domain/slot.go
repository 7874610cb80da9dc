package domain

import (
	"errors"
	"fmt"
	"strings"
)

// EquipmentSlot names a skeleton attachment target.
type EquipmentSlot string

const (
	// SlotHead attaches helmets to the head bone.
	SlotHead EquipmentSlot = "Head"
	// SlotSpine2 attaches chest armor to the upper spine bone.
	SlotSpine2 EquipmentSlot = "Spine2"
	// SlotHips attaches lower armor to the hips bone.
	SlotHips EquipmentSlot = "Hips"
	// SlotHandR attaches weapons to the right hand bone.
	SlotHandR EquipmentSlot = "Hand_R"
	// SlotHandL attaches weapons to the left hand bone.
	SlotHandL EquipmentSlot = "Hand_L"
)

// WorkflowMode identifies which fitting workflow a slot belongs to.
type WorkflowMode string

const (
	// ModeArmor covers the head, spine and hip slots.
	ModeArmor WorkflowMode = "armor"
	// ModeWeapon covers both hand slots.
	ModeWeapon WorkflowMode = "weapon"
)

// ErrInvalidSlot indicates an unknown equipment slot name.
var ErrInvalidSlot = errors.New("equipment slot is invalid")

// Slots lists every valid slot in display order.
func Slots() []EquipmentSlot {
	return []EquipmentSlot{SlotHead, SlotSpine2, SlotHips, SlotHandR, SlotHandL}
}

// ParseSlot validates a slot name.
func ParseSlot(value string) (EquipmentSlot, error) {
	slot := EquipmentSlot(strings.TrimSpace(value))
	switch slot {
	case SlotHead, SlotSpine2, SlotHips, SlotHandR, SlotHandL:
		return slot, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidSlot, value)
}

// Mode returns the workflow mode the slot belongs to. Every valid slot maps
// to exactly one mode.
func (s EquipmentSlot) Mode() WorkflowMode {
	switch s {
	case SlotHandR, SlotHandL:
		return ModeWeapon
	default:
		return ModeArmor
	}
}

// IsArmor reports whether the slot drives the armor workflow.
func (s EquipmentSlot) IsArmor() bool { return s.Mode() == ModeArmor }

// IsWeapon reports whether the slot drives the weapon workflow.
func (s EquipmentSlot) IsWeapon() bool { return s.Mode() == ModeWeapon }
