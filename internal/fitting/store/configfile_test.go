package store

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/arkavale/gearforge/internal/fitting/domain"
)

func TestSaveConfigurationRequiresSelections(t *testing.T) {
	s := newTestStore(Options{})
	if _, _, err := s.SaveConfiguration(); !errors.Is(err, ErrNothingToSave) {
		t.Fatalf("expected %v, got %v", ErrNothingToSave, err)
	}
	if s.LastError() == "" {
		t.Fatal("expected last error to be set")
	}

	// An avatar alone is still not enough.
	if err := s.SelectAvatar(avatarRef()); err != nil {
		t.Fatalf("select avatar: %v", err)
	}
	if _, _, err := s.SaveConfiguration(); !errors.Is(err, ErrNothingToSave) {
		t.Fatalf("expected %v, got %v", ErrNothingToSave, err)
	}
}

func TestSaveAndLoadConfiguration(t *testing.T) {
	s := newTestStore(Options{})
	if err := s.SelectAvatar(avatarRef()); err != nil {
		t.Fatalf("select avatar: %v", err)
	}
	if err := s.SelectArmor(armorRef()); err != nil {
		t.Fatalf("select armor: %v", err)
	}
	three := 3
	s.UpdateFittingConfig(domain.ConfigPatch{Iterations: &three})
	s.SetEnableWeightTransfer(true)

	filename, data, err := s.SaveConfiguration()
	if err != nil {
		t.Fatalf("save configuration: %v", err)
	}
	if !strings.HasPrefix(filename, "fitting-config-") || !strings.HasSuffix(filename, ".json") {
		t.Fatalf("unexpected filename %q", filename)
	}

	var saved SavedConfiguration
	if err := json.Unmarshal(data, &saved); err != nil {
		t.Fatalf("unmarshal artifact: %v", err)
	}
	if saved.Version != 1 {
		t.Fatalf("expected version 1, got %d", saved.Version)
	}
	if saved.Avatar == nil || saved.Avatar.ID != "avatar-1" {
		t.Fatalf("expected avatar in artifact, got %+v", saved.Avatar)
	}

	restored := newTestStore(Options{})
	if err := restored.LoadConfiguration(data); err != nil {
		t.Fatalf("load configuration: %v", err)
	}

	st := restored.Snapshot()
	if st.SelectedAvatar == nil || st.SelectedAvatar.ID != "avatar-1" {
		t.Fatalf("expected avatar restored, got %+v", st.SelectedAvatar)
	}
	if st.SelectedArmor == nil || st.SelectedArmor.ID != "armor-1" {
		t.Fatalf("expected armor restored, got %+v", st.SelectedArmor)
	}
	if st.FittingConfig.Iterations != 3 {
		t.Fatalf("expected iterations 3, got %d", st.FittingConfig.Iterations)
	}
	if !st.EnableWeightTransfer {
		t.Fatal("expected weight transfer enabled")
	}
	if st.IsArmorFitted || st.IsFitting || st.FittingProgress != 0 {
		t.Fatal("expected clean fitting lifecycle after load")
	}
}

func TestLoadConfigurationRejectsMalformedInput(t *testing.T) {
	s := newTestStore(Options{})
	before := s.Snapshot()

	if err := s.LoadConfiguration([]byte("{not json")); err == nil {
		t.Fatal("expected error for malformed input")
	}
	if !strings.Contains(s.LastError(), "Failed to load configuration") {
		t.Fatalf("expected load failure message, got %q", s.LastError())
	}

	after := s.Snapshot()
	if after.FittingConfig != before.FittingConfig || after.Slot != before.Slot {
		t.Fatal("expected state untouched by failed load")
	}
}

func TestLoadConfigurationRejectsInvalidSlot(t *testing.T) {
	s := newTestStore(Options{})
	data := []byte(`{"version":1,"equipment_slot":"Tail"}`)
	if err := s.LoadConfiguration(data); err == nil {
		t.Fatal("expected error for invalid slot")
	}
	if got := s.Snapshot().Slot; got != domain.SlotSpine2 {
		t.Fatalf("expected slot untouched, got %q", got)
	}
}
