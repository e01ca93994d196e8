package rulespec

import (
	"sort"
	"sync"

	"github.com/mvarley/riposte/internal/rules"
)

// Store serves the currently loaded rule collections to the engine and
// supports wholesale reload at runtime.
//
// Reload swaps the rule lists only. In-flight combo streaks and per-target
// busy flags live in the engine and are deliberately untouched, so a
// reload mid-session never interrupts a running reaction.
//
// Thread-safety: lookups may run concurrently with Reload.
type Store struct {
	mu   sync.RWMutex
	pack *Pack
}

// NewStore creates a store serving the given pack.
// A nil pack is valid and serves no rules until the first Reload.
func NewStore(pack *Pack) *Store {
	return &Store{pack: pack}
}

// Reload replaces the entire rule collection.
func (s *Store) Reload(pack *Pack) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pack = pack
}

// Immediate returns the ordered immediate-reaction rule list for a signal,
// or nil if the signal has none.
func (s *Store) Immediate(signal string) []rules.Rule {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.pack == nil {
		return nil
	}
	return s.pack.Signals[signal].Immediate
}

// Combo returns the ordered combo rule list for a signal, or nil if the
// signal has none.
func (s *Store) Combo(signal string) []rules.Rule {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.pack == nil {
		return nil
	}
	return s.pack.Signals[signal].Combo
}

// Signals returns the known signal ids in sorted order.
// Used by the CLI for introspection.
func (s *Store) Signals() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.pack == nil {
		return nil
	}
	names := make([]string, 0, len(s.pack.Signals))
	for name := range s.pack.Signals {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
