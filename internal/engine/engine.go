package engine

import (
	"context"
	"log/slog"
	"math/rand"
	"sync"
	"time"

	"github.com/mvarley/riposte/internal/config"
	"github.com/mvarley/riposte/internal/rules"
	"github.com/mvarley/riposte/internal/rulespec"
)

// Engine wires signals through the combo table, rule matcher, and
// executor.
//
// Thread-safety model:
//   - Enqueue: safe from any goroutine
//   - Run: call from exactly one goroutine
//   - Dispatch: safe from any goroutine (the combo table, ledger, and
//     busy flags carry their own guards)
//   - StartDay: safe from any goroutine
//
// INVARIANTS:
//   - Rule list order is never changed by the engine; precedence is
//     ordinal.
//   - A combo trigger suppresses the immediate path for its pair within
//     the same step.
//   - No error escapes Dispatch; a failed reaction degrades to silence.
type Engine struct {
	cfg    config.Config
	store  *rulespec.Store
	clock  Clock
	seq    *Seq
	tokens RunTokenGenerator
	combos *ComboTable
	ledger *Ledger
	exec   *Executor
	ports  Ports
	queue  *signalQueue
	rng    *rand.Rand
	wg     sync.WaitGroup
}

// Option configures engine construction.
type Option func(*Engine)

// WithClock replaces the wall clock; tests inject a deterministic clock.
func WithClock(c Clock) Option {
	return func(e *Engine) { e.clock = c }
}

// WithRunTokens replaces the UUIDv7 run token generator.
func WithRunTokens(g RunTokenGenerator) Option {
	return func(e *Engine) { e.tokens = g }
}

// WithRand seeds the random choice source; tests inject a fixed seed.
func WithRand(rng *rand.Rand) Option {
	return func(e *Engine) { e.rng = rng }
}

// New creates an Engine over a rule store and collaborator ports.
//
// Ports.Facts, Ports.Emote, Ports.Text, Ports.Relationship, and
// Ports.Texts must be non-nil; the rest are optional. The store may be
// reloaded at runtime; combo streaks and busy flags survive a reload.
func New(cfg config.Config, store *rulespec.Store, ports Ports, opts ...Option) *Engine {
	e := &Engine{
		cfg:    cfg,
		store:  store,
		clock:  WallClock{},
		seq:    NewSeq(),
		tokens: UUIDv7Generator{},
		combos: NewComboTable(cfg.ComboTimeout),
		ledger: NewLedger(),
		ports:  ports,
		queue:  newSignalQueue(),
		rng:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}

	for _, opt := range opts {
		opt(e)
	}

	gate := NewGate(e.ledger, ports.Relationship, ports.Notifier)
	e.exec = NewExecutor(cfg, e.clock, e.seq, e.tokens, gate, ports, e.rng)
	return e
}

// Enqueue submits a signal for processing by the Run loop.
// Thread-safe. Returns false if the engine has been stopped.
func (e *Engine) Enqueue(s Signal) bool {
	return e.queue.Enqueue(s)
}

// Run drives the FIFO signal loop until the context is cancelled or Stop
// is called. Reaction tasks spawned by each signal run on their own
// goroutines; Run only sequences signal intake.
//
// ERROR HANDLING: Dispatch never returns an error; a degraded reaction is
// logged where it degrades and the loop continues.
func (e *Engine) Run(ctx context.Context) error {
	slog.Info("reaction engine starting")

	for {
		sig, ok := e.queue.TryDequeue()
		if ok {
			e.Dispatch(ctx, sig)
			continue
		}

		// Empty does not mean closed: a signal enqueued while Dispatch
		// was running leaves a stale availability token behind, and the
		// loop must keep consuming until Close is explicit.
		if e.queue.Closed() {
			slog.Info("reaction engine stopping: queue closed")
			return nil
		}

		select {
		case <-ctx.Done():
			slog.Info("reaction engine stopping: context cancelled")
			e.queue.Close()
			return ctx.Err()

		case <-e.queue.Wait():
			// Woken by an enqueue or by Close; loop back to TryDequeue.
		}
	}
}

// Stop gracefully shuts down the engine; Run returns after draining.
func (e *Engine) Stop() {
	e.queue.Close()
}

// Dispatch processes one signal synchronously: per target, update the
// streak, match rules, and spawn the executor for any match. Combo
// reactions take precedence over immediate reactions.
func (e *Engine) Dispatch(ctx context.Context, sig Signal) {
	now := e.clock.Now()
	opts := e.evalOptions()

	for _, target := range sig.Targets {
		facts, ok := e.ports.Facts.Snapshot(sig.InitiatorID, target)
		if !ok {
			// Missing facts are an invariant violation, not an error:
			// skip the target silently.
			slog.Debug("no facts for target, skipping", "initiator", sig.InitiatorID, "target", target)
			continue
		}

		streak := e.combos.Observe(sig.InitiatorID, target, sig.ID, now)

		if rule := rules.FirstMatch(e.store.Combo(sig.ID), facts, opts); rule != nil &&
			streak >= e.effectiveThreshold(rule) {
			e.combos.ResetAfterTrigger(sig.InitiatorID, target)
			slog.Debug("combo triggered",
				"initiator", sig.InitiatorID, "target", target,
				"signal", sig.ID, "streak", streak,
			)
			e.spawn(ctx, facts, sig.ID, rule.Do, true, streak)
			continue
		}

		if rule := rules.FirstMatch(e.store.Immediate(sig.ID), facts, opts); rule != nil {
			e.spawn(ctx, facts, sig.ID, rule.Do, false, streak)
		}
	}
}

// StartDay clears the once-per-day reward ledger and records the new
// in-game day. Externally triggered at the day boundary.
func (e *Engine) StartDay(day int) {
	e.ledger.StartDay(day)
}

// Drain blocks until all in-flight reaction tasks complete.
// Used by tests and graceful shutdown.
func (e *Engine) Drain() {
	e.wg.Wait()
}

// QueueLen returns the number of pending signals.
// Used for monitoring and testing.
func (e *Engine) QueueLen() int {
	return e.queue.Len()
}

// Combos returns the combo table for testing and introspection.
func (e *Engine) Combos() *ComboTable {
	return e.combos
}

// Ledger returns the reward ledger for testing and introspection.
func (e *Engine) Ledger() *Ledger {
	return e.ledger
}

func (e *Engine) spawn(ctx context.Context, facts rules.Facts, signal string, action rules.Action, combo bool, streak int) {
	e.wg.Add(1)
	go func() {
		defer e.wg.Done()
		e.exec.Execute(ctx, facts, signal, action, combo, streak)
	}()
}

func (e *Engine) evalOptions() rules.EvalOptions {
	return rules.EvalOptions{
		CheckSeason:  e.cfg.CheckSeason,
		CheckWeather: e.cfg.CheckWeather,
	}
}

// effectiveThreshold picks the streak count a combo rule fires at: the
// rule's own count in per-rule mode, the global threshold otherwise or
// when the rule leaves it unset.
func (e *Engine) effectiveThreshold(rule *rules.Rule) int {
	if e.cfg.ComboPerRule && rule.Count > 0 {
		return rule.Count
	}
	return e.cfg.ComboThreshold
}
