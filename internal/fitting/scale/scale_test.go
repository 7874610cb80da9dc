package scale

import (
	"errors"
	"testing"
)

func TestDefaultTableHeights(t *testing.T) {
	table := DefaultTable()

	tests := []struct {
		category Category
		want     float64
	}{
		{CategoryHumanoid, 1.75},
		{CategorySmall, 1.15},
		{CategoryGiant, 4.0},
	}
	for _, tt := range tests {
		height, err := table.Height(tt.category)
		if err != nil {
			t.Fatalf("height for %q: %v", tt.category, err)
		}
		if height != tt.want {
			t.Fatalf("expected %q height %v, got %v", tt.category, tt.want, height)
		}
	}
}

func TestHeightNormalizesCategoryName(t *testing.T) {
	table := DefaultTable()
	height, err := table.Height("  Humanoid ")
	if err != nil {
		t.Fatalf("height: %v", err)
	}
	if height != ReferenceHeight {
		t.Fatalf("expected reference height, got %v", height)
	}
}

func TestHeightUnknownCategory(t *testing.T) {
	table := DefaultTable()
	if _, err := table.Height("kraken"); !errors.Is(err, ErrUnknownCategory) {
		t.Fatalf("expected ErrUnknownCategory, got %v", err)
	}
}

func TestWeaponScale(t *testing.T) {
	if got := WeaponScale(ReferenceHeight); got != 1 {
		t.Fatalf("expected unit scale at reference height, got %v", got)
	}
	if got := WeaponScale(3.5); got != 2 {
		t.Fatalf("expected scale 2 for 3.5m avatar, got %v", got)
	}
	if got := WeaponScale(0); got != 1 {
		t.Fatalf("expected fallback unit scale for zero height, got %v", got)
	}
}

func TestLoadScriptSourceOverridesAndExtends(t *testing.T) {
	table, err := LoadScriptSource(`return { humanoid = 1.8, troll = 3.1 }`)
	if err != nil {
		t.Fatalf("load script: %v", err)
	}

	height, err := table.Height(CategoryHumanoid)
	if err != nil {
		t.Fatalf("height: %v", err)
	}
	if height != 1.8 {
		t.Fatalf("expected overridden humanoid height 1.8, got %v", height)
	}

	height, err = table.Height("troll")
	if err != nil {
		t.Fatalf("height for extended category: %v", err)
	}
	if height != 3.1 {
		t.Fatalf("expected troll height 3.1, got %v", height)
	}

	// Untouched defaults survive the merge.
	height, err = table.Height(CategoryGiant)
	if err != nil {
		t.Fatalf("height: %v", err)
	}
	if height != 4.0 {
		t.Fatalf("expected default giant height, got %v", height)
	}
}

func TestLoadScriptSourceRejectsNonTable(t *testing.T) {
	if _, err := LoadScriptSource(`return 42`); err == nil {
		t.Fatal("expected error for non-table return")
	}
}

func TestLoadScriptSourceIgnoresNonPositiveHeights(t *testing.T) {
	table, err := LoadScriptSource(`return { humanoid = -1 }`)
	if err != nil {
		t.Fatalf("load script: %v", err)
	}
	height, err := table.Height(CategoryHumanoid)
	if err != nil {
		t.Fatalf("height: %v", err)
	}
	if height != ReferenceHeight {
		t.Fatalf("expected default preserved for invalid override, got %v", height)
	}
}
