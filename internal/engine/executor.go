package engine

import (
	"context"
	"log/slog"
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/mvarley/riposte/internal/config"
	"github.com/mvarley/riposte/internal/rules"
)

// Executor runs the action pipeline for matched rules.
//
// One run: reaction latency, emote (bubble or animation), optional pause,
// text fragments with inter-fragment pauses, reward gate, journal. The
// timed waits are cooperative suspension points on the Clock; everything
// between them runs to completion.
//
// REENTRANCY: at most one run may be busy per target. A second run for a
// busy target is dropped at entry, not queued. The busy flag is cleared
// on every exit path, including context cancellation and port failures.
type Executor struct {
	cfg    config.Config
	clock  Clock
	seq    *Seq
	tokens RunTokenGenerator
	gate   *Gate
	ports  Ports

	rngMu sync.Mutex
	rng   *rand.Rand

	busyMu sync.Mutex
	busy   map[string]bool
}

// NewExecutor creates an executor over the given ports.
func NewExecutor(cfg config.Config, clock Clock, seq *Seq, tokens RunTokenGenerator, gate *Gate, ports Ports, rng *rand.Rand) *Executor {
	if ports.Journal == nil {
		ports.Journal = NopJournal{}
	}
	return &Executor{
		cfg:    cfg,
		clock:  clock,
		seq:    seq,
		tokens: tokens,
		gate:   gate,
		ports:  ports,
		rng:    rng,
		busy:   make(map[string]bool),
	}
}

// Execute runs the pipeline for one target. Blocking; callers that want
// asynchrony spawn it on a goroutine. No return value: every failure mode
// degrades to a muted or partial reaction and is logged here.
func (x *Executor) Execute(ctx context.Context, facts rules.Facts, signal string, action rules.Action, combo bool, streak int) {
	target := facts.TargetID

	if !x.tryAcquire(target) {
		slog.Debug("target busy, reaction dropped", "target", target, "signal", signal)
		return
	}
	defer x.release(target)

	runToken := x.tokens.Generate()
	day := x.gate.Day()

	// Reaction latency: base delay plus bounded jitter.
	if !x.pause(ctx, x.cfg.BaseDelay+x.jitter()) {
		return
	}

	emote, hasEmote := x.pick(action.Emote)
	emotePerformed := false
	if hasEmote {
		emotePerformed = x.performEmote(target, emote)
	}

	textKey, hasText := x.pick(action.Text)
	if emotePerformed && hasText {
		// Let the bubble register before text appears.
		if !x.pause(ctx, x.cfg.EmoteTextPause) {
			return
		}
	}

	emittedText := false
	if hasText {
		emittedText = x.emitText(ctx, facts, textKey)
	}

	// The reward gate only sees runs that visibly produced something; a
	// failed port call leaves nothing on screen.
	if !emotePerformed && !emittedText {
		return
	}

	x.recordReaction(ctx, ReactionRecord{
		RunToken:  runToken,
		Seq:       x.seq.Next(),
		Initiator: facts.Initiator.ID,
		Target:    target,
		Signal:    signal,
		Emote:     emote,
		TextKey:   textKey,
		Combo:     combo,
		Streak:    streak,
	})

	granted, err := x.gate.TryGrant(facts, x.cfg.RewardAmount)
	if err != nil {
		slog.Warn("reward grant failed", "target", target, "error", err)
	}
	if !granted {
		return
	}

	if x.ports.Sound != nil {
		if err := x.ports.Sound.Play(x.cfg.RewardSound); err != nil {
			slog.Warn("reward sound failed", "effect", x.cfg.RewardSound, "error", err)
		}
	}
	slog.Info("reaction rewarded",
		"target", target,
		"emote", emote,
		"text", textKey,
		"amount", x.cfg.RewardAmount,
	)
	x.recordReward(ctx, RewardRecord{
		RunToken:  runToken,
		Seq:       x.seq.Next(),
		Initiator: facts.Initiator.ID,
		Target:    target,
		Day:       day,
		Amount:    x.cfg.RewardAmount,
	})
}

// performEmote routes an emote choice to the bubble or animation port.
// Returns true only if the port accepted the call and something was
// actually shown.
func (x *Executor) performEmote(target, emote string) bool {
	if name, isAnim := strings.CutPrefix(emote, x.cfg.AnimationPrefix); isAnim {
		if x.ports.Animation == nil {
			slog.Warn("animation port not wired, emote dropped", "target", target, "animation", name)
			return false
		}
		if err := x.ports.Animation.PerformNamed(target, name); err != nil {
			slog.Warn("animation failed", "target", target, "animation", name, "error", err)
			return false
		}
		return true
	}
	if err := x.ports.Emote.Perform(target, emote); err != nil {
		slog.Warn("emote failed", "target", target, "emote", emote, "error", err)
		return false
	}
	return true
}

// emitText resolves, splits, substitutes, and shows the text fragments.
// Returns true if at least one fragment was shown. The pause runs BETWEEN
// fragments, never after the last.
func (x *Executor) emitText(ctx context.Context, facts rules.Facts, textKey string) bool {
	raw, err := x.ports.Texts.Resolve(textKey)
	if err != nil {
		slog.Warn("text lookup failed", "key", textKey, "error", err)
		return false
	}

	emitted := false
	for i, fragment := range splitFragments(raw, x.cfg.SplitToken) {
		if i > 0 && !x.pause(ctx, x.cfg.FragmentPause) {
			break
		}
		fragment = expandTokens(fragment, facts.Initiator)
		if err := x.ports.Text.Show(facts.TargetID, fragment); err != nil {
			slog.Warn("text display failed", "target", facts.TargetID, "error", err)
			continue
		}
		emitted = true
	}
	return emitted
}

// tryAcquire sets the target's busy flag; false means a run is in flight.
func (x *Executor) tryAcquire(target string) bool {
	x.busyMu.Lock()
	defer x.busyMu.Unlock()
	if x.busy[target] {
		return false
	}
	x.busy[target] = true
	return true
}

func (x *Executor) release(target string) {
	x.busyMu.Lock()
	defer x.busyMu.Unlock()
	delete(x.busy, target)
}

// Busy reports whether a run is in flight for the target.
// Used for testing and introspection.
func (x *Executor) Busy(target string) bool {
	x.busyMu.Lock()
	defer x.busyMu.Unlock()
	return x.busy[target]
}

// pause suspends cooperatively; false means the context was cancelled and
// the remaining steps should be abandoned.
func (x *Executor) pause(ctx context.Context, d time.Duration) bool {
	return x.clock.Sleep(ctx, d) == nil
}

func (x *Executor) jitter() time.Duration {
	if x.cfg.MaxJitter <= 0 {
		return 0
	}
	x.rngMu.Lock()
	defer x.rngMu.Unlock()
	return time.Duration(x.rng.Int63n(int64(x.cfg.MaxJitter)))
}

func (x *Executor) pick(choices rules.OneOrMany[string]) (string, bool) {
	if len(choices) < 2 {
		return choices.Pick(nil)
	}
	x.rngMu.Lock()
	defer x.rngMu.Unlock()
	return choices.Pick(x.rng)
}

func (x *Executor) recordReaction(ctx context.Context, r ReactionRecord) {
	if err := x.ports.Journal.RecordReaction(ctx, r); err != nil {
		slog.Warn("journal reaction write failed", "run", r.RunToken, "error", err)
	}
}

func (x *Executor) recordReward(ctx context.Context, r RewardRecord) {
	if err := x.ports.Journal.RecordReward(ctx, r); err != nil {
		slog.Warn("journal reward write failed", "run", r.RunToken, "error", err)
	}
}
