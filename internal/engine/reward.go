package engine

import (
	"fmt"
	"sync"

	"github.com/mvarley/riposte/internal/rules"
)

// Ledger tracks which (initiator, target) pairs have been rewarded today.
//
// Entries are monotonic within a day: there is no un-reward. ResetDay
// clears everything at the day boundary, which is externally triggered.
//
// Thread-safety: safe for concurrent use via internal mutex.
type Ledger struct {
	mu      sync.Mutex
	day     int
	granted map[string]map[string]bool // initiator -> rewarded targets
}

// NewLedger creates an empty ledger for day 1.
func NewLedger() *Ledger {
	return &Ledger{day: 1, granted: make(map[string]map[string]bool)}
}

// Granted reports whether the pair was already rewarded today.
func (l *Ledger) Granted(initiator, target string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.granted[initiator][target]
}

// Mark records a grant for the pair.
func (l *Ledger) Mark(initiator, target string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.granted[initiator] == nil {
		l.granted[initiator] = make(map[string]bool)
	}
	l.granted[initiator][target] = true
}

// StartDay clears the ledger at the day boundary and records the new
// in-game day number for journal entries.
func (l *Ledger) StartDay(day int) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.day = day
	l.granted = make(map[string]map[string]bool)
}

// Day returns the current in-game day number.
func (l *Ledger) Day() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.day
}

// Size returns the number of initiators with at least one grant today.
// Used for testing and introspection.
func (l *Ledger) Size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.granted)
}

// Gate grants the once-per-day relationship reward.
type Gate struct {
	ledger       *Ledger
	relationship RelationshipPort
	notifier     Notifier
}

// NewGate creates a gate over the given ledger and ports.
// notifier may be nil.
func NewGate(ledger *Ledger, relationship RelationshipPort, notifier Notifier) *Gate {
	return &Gate{ledger: ledger, relationship: relationship, notifier: notifier}
}

// Day returns the ledger's current in-game day number.
func (g *Gate) Day() int {
	return g.ledger.Day()
}

// TryGrant grants amount to the pair if all gate conditions hold:
// amount > 0, a relationship record exists (companion targets are
// exempt), and the pair has not been rewarded today.
//
// The ledger is marked only after the relationship port accepts the
// grant, so a port failure today does not burn the pair's grant.
func (g *Gate) TryGrant(facts rules.Facts, amount int) (bool, error) {
	if amount <= 0 {
		return false, nil
	}

	initiator := facts.Initiator.ID
	target := facts.TargetID

	if !facts.IsCompanion {
		if _, ok := g.relationship.Get(initiator, target); !ok {
			return false, nil
		}
	}

	if g.ledger.Granted(initiator, target) {
		return false, nil
	}

	if err := g.relationship.Grant(initiator, target, amount); err != nil {
		return false, fmt.Errorf("grant reward to %s: %w", target, err)
	}
	g.ledger.Mark(initiator, target)

	if g.notifier != nil {
		g.notifier.Notify(fmt.Sprintf("%s appreciated that (+%d)", facts.Name, amount))
	}
	return true, nil
}
