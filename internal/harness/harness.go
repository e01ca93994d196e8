package harness

import (
	"context"
	"fmt"
	"math/rand"
	"sort"
	"time"

	"github.com/mvarley/riposte/internal/config"
	"github.com/mvarley/riposte/internal/engine"
	"github.com/mvarley/riposte/internal/rulespec"
	"github.com/mvarley/riposte/internal/testutil"
)

// Result holds the recorded trace for one scenario run.
type Result struct {
	Scenario *Scenario
	Steps    []StepResult

	// Failures lists every step expectation that did not hold.
	Failures []string
}

// Passed reports whether every step expectation held.
func (r *Result) Passed() bool {
	return len(r.Failures) == 0
}

// StepResult is the sorted event trace of one step.
type StepResult struct {
	Label  string
	Events []string
}

// stringsLocalizer resolves text keys from the scenario's inline table.
type stringsLocalizer map[string]string

func (s stringsLocalizer) Resolve(textKey string) (string, error) {
	if v, ok := s[textKey]; ok {
		return v, nil
	}
	return "", fmt.Errorf("text key %q not in scenario strings", textKey)
}

// Option configures a scenario run.
type Option func(*runOptions)

type runOptions struct {
	journal engine.Journal
}

// WithJournal attaches an audit sink; every executed reaction and reward
// lands there in addition to the recorded trace.
func WithJournal(j engine.Journal) Option {
	return func(o *runOptions) { o.journal = j }
}

// Run replays a scenario against a freshly built engine and returns the
// recorded trace.
//
// The run is fully deterministic: frozen clock, fixed run tokens, seeded
// random source, zero jitter. Steps execute synchronously; each step
// drains its spawned reactions before the next begins, and the events of
// one step are sorted (a multi-target step fans out concurrently).
func Run(scenario *Scenario, opts ...Option) (*Result, error) {
	var ro runOptions
	for _, opt := range opts {
		opt(&ro)
	}

	pack, err := scenario.compilePack()
	if err != nil {
		return nil, err
	}

	localizer, err := scenario.localizer()
	if err != nil {
		return nil, err
	}

	cfg := buildConfig(scenario.Tuning)
	clock := testutil.NewClock(time.Date(2024, 3, 1, 6, 0, 0, 0, time.UTC))
	rec := &recorder{}

	tokens := scenario.RunTokens
	if len(tokens) == 0 {
		tokens = []string{"run-1", "run-2", "run-3", "run-4"}
	}

	eng := engine.New(cfg, rulespec.NewStore(pack), engine.Ports{
		Facts:        scenarioFacts{scenario: scenario},
		Emote:        rec,
		Animation:    rec,
		Text:         rec,
		Relationship: newScenarioRelationship(scenario.Relationships, rec),
		Sound:        rec,
		Notifier:     rec,
		Texts:        localizer,
		Journal:      ro.journal,
	},
		engine.WithClock(clock),
		engine.WithRunTokens(engine.NewFixedGenerator(tokens...)),
		engine.WithRand(rand.New(rand.NewSource(1))),
	)

	ctx := context.Background()
	result := &Result{Scenario: scenario}

	for i, step := range scenario.Steps {
		if step.StartDay > 0 {
			eng.StartDay(step.StartDay)
		}
		if step.Advance > 0 {
			clock.Advance(step.Advance)
		}
		if step.Signal != "" {
			eng.Dispatch(ctx, engine.Signal{
				ID:          step.Signal,
				InitiatorID: scenario.Initiator.ID,
				Targets:     step.Targets,
			})
			eng.Drain()
		}

		events := rec.take()
		sort.Strings(events)

		sr := StepResult{Label: stepLabel(i, step), Events: events}
		result.Steps = append(result.Steps, sr)

		if step.Expect != nil {
			checkExpectations(result, sr, step.Expect)
		}
	}
	return result, nil
}

func buildConfig(t Tuning) config.Config {
	cfg := config.Default()
	cfg.MaxJitter = 0 // determinism
	if t.ComboTimeout > 0 {
		cfg.ComboTimeout = t.ComboTimeout
	}
	if t.ComboThreshold > 0 {
		cfg.ComboPerRule = false
		cfg.ComboThreshold = t.ComboThreshold
	}
	if t.BaseDelay > 0 {
		cfg.BaseDelay = t.BaseDelay
	}
	if t.EmoteTextPause > 0 {
		cfg.EmoteTextPause = t.EmoteTextPause
	}
	if t.FragmentPause > 0 {
		cfg.FragmentPause = t.FragmentPause
	}
	if t.RewardAmount > 0 {
		cfg.RewardAmount = t.RewardAmount
	}
	return cfg
}

func stepLabel(i int, step Step) string {
	if step.Signal != "" {
		return fmt.Sprintf("step %d signal=%s", i+1, step.Signal)
	}
	if step.StartDay > 0 {
		return fmt.Sprintf("step %d startDay=%d", i+1, step.StartDay)
	}
	return fmt.Sprintf("step %d advance=%s", i+1, step.Advance)
}

func checkExpectations(result *Result, sr StepResult, expect []string) {
	want := append([]string(nil), expect...)
	sort.Strings(want)

	if len(want) != len(sr.Events) {
		result.Failures = append(result.Failures, fmt.Sprintf(
			"%s: expected %d event(s), got %d: %v",
			sr.Label, len(want), len(sr.Events), sr.Events))
		return
	}
	for i := range want {
		if want[i] != sr.Events[i] {
			result.Failures = append(result.Failures, fmt.Sprintf(
				"%s: event %d: expected %q, got %q",
				sr.Label, i+1, want[i], sr.Events[i]))
		}
	}
}
