package history

import (
	"testing"
	"time"

	"github.com/arkavale/gearforge/internal/fitting/domain"
)

func configWithIterations(n int) domain.FittingConfig {
	cfg := domain.DefaultFittingConfig()
	cfg.Iterations = n
	return cfg
}

func TestUndoRedoInverse(t *testing.T) {
	var ledger Ledger
	now := time.Now()

	ledger.Push(configWithIterations(1), now)
	ledger.Push(configWithIterations(2), now)
	ledger.Push(configWithIterations(3), now)

	cfg, ok := ledger.Undo()
	if !ok {
		t.Fatal("expected undo to succeed")
	}
	if cfg.Iterations != 2 {
		t.Fatalf("expected undo to restore iterations 2, got %d", cfg.Iterations)
	}

	cfg, ok = ledger.Redo()
	if !ok {
		t.Fatal("expected redo to succeed")
	}
	if cfg.Iterations != 3 {
		t.Fatalf("expected redo to restore iterations 3, got %d", cfg.Iterations)
	}
}

func TestUndoAtOldestIsNoop(t *testing.T) {
	var ledger Ledger

	if _, ok := ledger.Undo(); ok {
		t.Fatal("expected undo on empty ledger to report false")
	}

	ledger.Push(configWithIterations(1), time.Now())
	if ledger.CanUndo() {
		t.Fatal("expected single entry to not be undoable")
	}
	if _, ok := ledger.Undo(); ok {
		t.Fatal("expected undo at cursor 0 to report false")
	}
	if ledger.Cursor() != 0 {
		t.Fatalf("expected cursor unchanged at 0, got %d", ledger.Cursor())
	}
}

func TestRedoAtNewestIsNoop(t *testing.T) {
	var ledger Ledger
	ledger.Push(configWithIterations(1), time.Now())

	if ledger.CanRedo() {
		t.Fatal("expected ledger at newest entry to not be redoable")
	}
	if _, ok := ledger.Redo(); ok {
		t.Fatal("expected redo at last index to report false")
	}
}

func TestPushTruncatesRedoTail(t *testing.T) {
	var ledger Ledger
	now := time.Now()
	ledger.Push(configWithIterations(1), now)
	ledger.Push(configWithIterations(2), now)
	ledger.Push(configWithIterations(3), now)

	if _, ok := ledger.Undo(); !ok {
		t.Fatal("undo failed")
	}
	if _, ok := ledger.Undo(); !ok {
		t.Fatal("undo failed")
	}

	ledger.Push(configWithIterations(9), now)

	if ledger.CanRedo() {
		t.Fatal("expected push to discard the redo tail")
	}
	if ledger.Len() != 2 {
		t.Fatalf("expected 2 entries after truncation, got %d", ledger.Len())
	}
	entries := ledger.Entries()
	if entries[0].Config.Iterations != 1 || entries[1].Config.Iterations != 9 {
		t.Fatalf("unexpected entries after truncation: %d, %d",
			entries[0].Config.Iterations, entries[1].Config.Iterations)
	}
}

func TestLedgerBoundEvictsOldest(t *testing.T) {
	var ledger Ledger
	now := time.Now()

	for i := 1; i <= MaxEntries+10; i++ {
		ledger.Push(configWithIterations(i), now)
	}

	if ledger.Len() != MaxEntries {
		t.Fatalf("expected ledger capped at %d, got %d", MaxEntries, ledger.Len())
	}
	entries := ledger.Entries()
	if entries[0].Config.Iterations != 11 {
		t.Fatalf("expected oldest retained entry to be 11, got %d", entries[0].Config.Iterations)
	}
	if entries[len(entries)-1].Config.Iterations != MaxEntries+10 {
		t.Fatalf("expected newest entry %d, got %d", MaxEntries+10, entries[len(entries)-1].Config.Iterations)
	}
	if ledger.Cursor() != MaxEntries-1 {
		t.Fatalf("expected cursor rebased to %d, got %d", MaxEntries-1, ledger.Cursor())
	}
	if ledger.CanRedo() {
		t.Fatal("expected cursor at newest entry after eviction")
	}
}

func TestCursorInvariant(t *testing.T) {
	var ledger Ledger
	now := time.Now()

	for i := 0; i < 7; i++ {
		ledger.Push(configWithIterations(i), now)
	}
	for ledger.CanUndo() {
		if _, ok := ledger.Undo(); !ok {
			t.Fatal("undo reported false while CanUndo was true")
		}
		if ledger.Cursor() < 0 || ledger.Cursor() >= ledger.Len() {
			t.Fatalf("cursor %d out of range [0, %d)", ledger.Cursor(), ledger.Len())
		}
	}
	if ledger.Cursor() != 0 {
		t.Fatalf("expected cursor at 0 after full undo, got %d", ledger.Cursor())
	}
}

func TestResetDropsEntries(t *testing.T) {
	var ledger Ledger
	ledger.Push(configWithIterations(1), time.Now())
	ledger.Reset()

	if ledger.Len() != 0 || ledger.CanUndo() || ledger.CanRedo() {
		t.Fatal("expected empty ledger after reset")
	}
}
