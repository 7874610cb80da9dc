package store

import (
	"testing"

	"github.com/arkavale/gearforge/internal/fitting/domain"
	"github.com/arkavale/gearforge/internal/fitting/history"
)

func TestUndoRestoresPreEditConfig(t *testing.T) {
	s := newTestStore(Options{})
	base := s.Snapshot().FittingConfig

	three, seven := 3, 7
	s.UpdateFittingConfig(domain.ConfigPatch{Iterations: &three})
	afterFirst := s.Snapshot().FittingConfig
	s.UpdateFittingConfig(domain.ConfigPatch{Iterations: &seven})

	s.Undo()
	if got := s.Snapshot().FittingConfig; got != afterFirst {
		t.Fatalf("expected undo to restore pre-edit config %+v, got %+v", afterFirst, got)
	}

	s.Redo()
	if got := s.Snapshot().FittingConfig.Iterations; got != 7 {
		t.Fatalf("expected redo to restore iterations 7, got %d", got)
	}

	s.Undo()
	s.Undo()
	if got := s.Snapshot().FittingConfig; got != base {
		t.Fatalf("expected double undo to restore base config %+v, got %+v", base, got)
	}
}

func TestUndoSingleEdit(t *testing.T) {
	s := newTestStore(Options{})
	base := s.Snapshot().FittingConfig

	nine := 9
	s.UpdateFittingConfig(domain.ConfigPatch{Iterations: &nine})

	s.Undo()
	if got := s.Snapshot().FittingConfig; got != base {
		t.Fatalf("expected undo of a single edit to restore %+v, got %+v", base, got)
	}
	s.Redo()
	if got := s.Snapshot().FittingConfig.Iterations; got != 9 {
		t.Fatalf("expected redo to restore iterations 9, got %d", got)
	}
}

func TestCanUndoReflectsPendingEdit(t *testing.T) {
	s := newTestStore(Options{})
	if s.CanUndo() {
		t.Fatal("expected no undo before any edit")
	}

	three := 3
	s.UpdateFittingConfig(domain.ConfigPatch{Iterations: &three})
	if !s.CanUndo() {
		t.Fatal("expected undo available after a single edit")
	}
	if s.CanRedo() {
		t.Fatal("expected no redo before any undo")
	}

	s.Undo()
	if got := s.Snapshot().FittingConfig.Iterations; got != domain.DefaultFittingConfig().Iterations {
		t.Fatalf("expected default iterations restored, got %d", got)
	}
	if s.CanUndo() {
		t.Fatal("expected no undo at the oldest entry")
	}
	if !s.CanRedo() {
		t.Fatal("expected redo available after undo")
	}
}

func TestUndoOnEmptyHistoryIsNoOp(t *testing.T) {
	s := newTestStore(Options{})
	before := s.Snapshot()

	s.Undo()

	after := s.Snapshot()
	if after.FittingConfig != before.FittingConfig {
		t.Fatalf("expected config unchanged, got %+v", after.FittingConfig)
	}
	if after.LastError != "" {
		t.Fatalf("expected no error, got %q", after.LastError)
	}
	if s.CanUndo() || s.CanRedo() {
		t.Fatal("expected no undo/redo availability on empty history")
	}
}

func TestUndoAtOldestEntryIsNoOp(t *testing.T) {
	s := newTestStore(Options{})
	two := 2
	s.UpdateFittingConfig(domain.ConfigPatch{Iterations: &two})
	s.Undo()

	before := s.Snapshot().FittingConfig
	s.Undo()
	if got := s.Snapshot().FittingConfig; got != before {
		t.Fatalf("expected config unchanged at oldest entry, got %+v", got)
	}
	if s.LastError() != "" {
		t.Fatalf("expected no error, got %q", s.LastError())
	}
}

func TestEditAfterUndoDiscardsRedo(t *testing.T) {
	s := newTestStore(Options{})
	three, seven, four := 3, 7, 4
	s.UpdateFittingConfig(domain.ConfigPatch{Iterations: &three})
	s.UpdateFittingConfig(domain.ConfigPatch{Iterations: &seven})
	s.Undo()
	if !s.CanRedo() {
		t.Fatal("expected redo to be available after undo")
	}

	s.UpdateFittingConfig(domain.ConfigPatch{Iterations: &four})
	if s.CanRedo() {
		t.Fatal("expected redo discarded by new edit")
	}
	s.Redo()
	if got := s.Snapshot().FittingConfig.Iterations; got != 4 {
		t.Fatalf("expected redo no-op, got iterations %d", got)
	}
}

func TestHistoryCappedAtMaxEntries(t *testing.T) {
	s := newTestStore(Options{})
	iterations := 1
	for i := 0; i < history.MaxEntries+10; i++ {
		s.UpdateFittingConfig(domain.ConfigPatch{Iterations: &iterations})
		s.SaveToHistory()
	}
	if got := s.HistoryLen(); got > history.MaxEntries {
		t.Fatalf("expected history capped at %d, got %d", history.MaxEntries, got)
	}
}

func TestUpdateFittingConfigZeroPatchIsNoOp(t *testing.T) {
	s := newTestStore(Options{})
	s.UpdateFittingConfig(domain.ConfigPatch{})
	if got := s.HistoryLen(); got != 0 {
		t.Fatalf("expected no history entry for empty patch, got %d", got)
	}
}

func TestUpdateHelmetConfigSkipsHistory(t *testing.T) {
	s := newTestStore(Options{})
	offset := 0.05
	s.UpdateHelmetConfig(domain.HelmetPatch{VerticalOffset: &offset})

	if got := s.Snapshot().HelmetConfig.VerticalOffset; got != 0.05 {
		t.Fatalf("expected vertical offset 0.05, got %v", got)
	}
	if got := s.HistoryLen(); got != 0 {
		t.Fatalf("expected helmet edits outside history, got %d entries", got)
	}
}

func TestResetFittingIsUndoable(t *testing.T) {
	s := newTestStore(Options{})
	three := 3
	s.UpdateFittingConfig(domain.ConfigPatch{Iterations: &three})
	edited := s.Snapshot().FittingConfig

	s.ResetFitting()
	if got := s.Snapshot().FittingConfig; got != domain.DefaultFittingConfig() {
		t.Fatalf("expected defaults after reset, got %+v", got)
	}

	s.Undo()
	if got := s.Snapshot().FittingConfig; got != edited {
		t.Fatalf("expected undo to restore pre-reset config %+v, got %+v", edited, got)
	}
}
