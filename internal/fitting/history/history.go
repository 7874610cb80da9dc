// Package history keeps a bounded, append-only ledger of fitting-config
// snapshots with a cursor for linear undo/redo.
package history

import (
	"time"

	"github.com/arkavale/gearforge/internal/fitting/domain"
)

// MaxEntries bounds the ledger. When exceeded, the oldest entry is evicted
// and the cursor is rebased.
const MaxEntries = 50

// Entry is one saved snapshot.
type Entry struct {
	Config    domain.FittingConfig
	Timestamp time.Time
}

// Ledger records fitting-config snapshots. The zero value is ready to use.
// Undo and redo only move the cursor; entries are never mutated in place.
// The one exception is truncation on a new push after undoing, which discards
// the redone-over future.
type Ledger struct {
	entries []Entry
	cursor  int
}

// Push snapshots cfg at the given time. Entries after the cursor are
// discarded first, then the snapshot is appended and the cursor advances to
// the new last index.
func (l *Ledger) Push(cfg domain.FittingConfig, at time.Time) {
	if len(l.entries) > 0 {
		l.entries = l.entries[:l.cursor+1]
	}
	l.entries = append(l.entries, Entry{Config: cfg, Timestamp: at.UTC()})
	if len(l.entries) > MaxEntries {
		over := len(l.entries) - MaxEntries
		l.entries = append([]Entry(nil), l.entries[over:]...)
	}
	l.cursor = len(l.entries) - 1
}

// Undo moves the cursor back one entry and returns its snapshot. It reports
// false without moving when already at the oldest entry or when empty.
func (l *Ledger) Undo() (domain.FittingConfig, bool) {
	if !l.CanUndo() {
		return domain.FittingConfig{}, false
	}
	l.cursor--
	return l.entries[l.cursor].Config, true
}

// Redo moves the cursor forward one entry and returns its snapshot. It
// reports false without moving when already at the newest entry.
func (l *Ledger) Redo() (domain.FittingConfig, bool) {
	if !l.CanRedo() {
		return domain.FittingConfig{}, false
	}
	l.cursor++
	return l.entries[l.cursor].Config, true
}

// CanUndo reports whether an older snapshot exists.
func (l *Ledger) CanUndo() bool {
	return len(l.entries) > 0 && l.cursor > 0
}

// CanRedo reports whether a newer snapshot exists.
func (l *Ledger) CanRedo() bool {
	return len(l.entries) > 0 && l.cursor < len(l.entries)-1
}

// Current returns the snapshot at the cursor. It reports false when empty.
func (l *Ledger) Current() (domain.FittingConfig, bool) {
	if len(l.entries) == 0 {
		return domain.FittingConfig{}, false
	}
	return l.entries[l.cursor].Config, true
}

// Len returns the number of retained entries.
func (l *Ledger) Len() int { return len(l.entries) }

// Cursor returns the current cursor position. Only meaningful when Len > 0.
func (l *Ledger) Cursor() int { return l.cursor }

// Entries returns a copy of the retained entries in order.
func (l *Ledger) Entries() []Entry {
	out := make([]Entry, len(l.entries))
	copy(out, l.entries)
	return out
}

// Reset drops all entries and rewinds the cursor.
func (l *Ledger) Reset() {
	l.entries = nil
	l.cursor = 0
}
