package harness

import (
	"fmt"
	"sync"

	"github.com/mvarley/riposte/internal/rules"
)

// recorder implements the engine's output ports, formatting every call
// as one trace line. Lines accumulate into the current step's bucket.
type recorder struct {
	mu    sync.Mutex
	lines []string
}

func (r *recorder) add(format string, args ...any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lines = append(r.lines, fmt.Sprintf(format, args...))
}

// take returns and clears the lines recorded since the last call.
func (r *recorder) take() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := r.lines
	r.lines = nil
	return out
}

func (r *recorder) Perform(targetID, emoteID string) error {
	r.add("emote %s %s", targetID, emoteID)
	return nil
}

func (r *recorder) PerformNamed(targetID, animationName string) error {
	r.add("animation %s %s", targetID, animationName)
	return nil
}

func (r *recorder) Show(targetID, text string) error {
	r.add("text %s %q", targetID, text)
	return nil
}

func (r *recorder) Play(effectID string) error {
	r.add("sound %s", effectID)
	return nil
}

func (r *recorder) Notify(message string) {
	r.add("notify %q", message)
}

// scenarioRelationship is the relationship store backing one run.
// Grants land in the recorder alongside the output port calls.
type scenarioRelationship struct {
	mu       sync.Mutex
	scores   map[string]int
	recorder *recorder
}

func newScenarioRelationship(scores map[string]int, rec *recorder) *scenarioRelationship {
	copied := make(map[string]int, len(scores))
	for k, v := range scores {
		copied[k] = v
	}
	return &scenarioRelationship{scores: copied, recorder: rec}
}

func (s *scenarioRelationship) Get(initiatorID, targetID string) (int, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	score, ok := s.scores[targetID]
	return score, ok
}

func (s *scenarioRelationship) Grant(initiatorID, targetID string, amount int) error {
	s.mu.Lock()
	s.scores[targetID] += amount
	s.mu.Unlock()
	s.recorder.add("reward %s %s +%d", initiatorID, targetID, amount)
	return nil
}

// scenarioFacts serves fact snapshots straight from the scenario.
type scenarioFacts struct {
	scenario *Scenario
}

func (s scenarioFacts) Snapshot(initiatorID, targetID string) (rules.Facts, bool) {
	return s.scenario.facts(targetID)
}
