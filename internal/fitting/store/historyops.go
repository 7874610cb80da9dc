package store

import "github.com/arkavale/gearforge/internal/fitting/domain"

// SaveToHistory snapshots the current fitting config. Edits made after an
// undo discard the redone-over future.
func (s *Store) SaveToHistory() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ledger.Push(s.state.FittingConfig, s.clock())
}

// UpdateFittingConfig applies a partial config edit. The pre-edit config is
// saved to history first, so history always reflects pre-edit states.
func (s *Store) UpdateFittingConfig(patch domain.ConfigPatch) {
	if patch.IsZero() {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ledger.Push(s.state.FittingConfig, s.clock())
	s.state.FittingConfig = patch.Apply(s.state.FittingConfig)
}

// UpdateHelmetConfig applies a partial helmet config edit. Helmet parameters
// are not part of the undo history.
func (s *Store) UpdateHelmetConfig(patch domain.HelmetPatch) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.HelmetConfig = patch.Apply(s.state.HelmetConfig)
}

// Undo restores the fitting config active before the most recent edit. When
// the current config has not been checkpointed yet it is pushed first, so a
// following Redo restores it exactly. No-op when nothing older exists.
func (s *Store) Undo() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if current, ok := s.ledger.Current(); ok && !s.ledger.CanRedo() && current != s.state.FittingConfig {
		s.ledger.Push(s.state.FittingConfig, s.clock())
	}
	if cfg, ok := s.ledger.Undo(); ok {
		s.state.FittingConfig = cfg
	}
}

// Redo steps the history cursor forward and restores that snapshot. It is a
// no-op when already at the newest snapshot.
func (s *Store) Redo() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if cfg, ok := s.ledger.Redo(); ok {
		s.state.FittingConfig = cfg
	}
}

// CanUndo reports whether Undo would change the config: an older snapshot
// exists, or the current config is a pending edit Undo would checkpoint and
// step back from.
func (s *Store) CanUndo() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ledger.CanUndo() {
		return true
	}
	current, ok := s.ledger.Current()
	return ok && !s.ledger.CanRedo() && current != s.state.FittingConfig
}

// CanRedo reports whether a newer config snapshot exists.
func (s *Store) CanRedo() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ledger.CanRedo()
}

// HistoryLen returns the number of retained history entries.
func (s *Store) HistoryLen() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ledger.Len()
}
