package journal

import (
	"context"

	"github.com/mvarley/riposte/internal/engine"
)

// Sink adapts a Store to the engine's journal port.
type Sink struct {
	store *Store
}

// NewSink wraps a store for use as the engine journal.
func NewSink(store *Store) *Sink {
	return &Sink{store: store}
}

// RecordReaction persists one reaction record.
func (s *Sink) RecordReaction(ctx context.Context, r engine.ReactionRecord) error {
	return s.store.WriteReaction(ctx, Reaction{
		RunToken:  r.RunToken,
		Seq:       r.Seq,
		Initiator: r.Initiator,
		Target:    r.Target,
		Signal:    r.Signal,
		Emote:     r.Emote,
		TextKey:   r.TextKey,
		Combo:     r.Combo,
		Streak:    r.Streak,
	})
}

// RecordReward persists one reward record.
func (s *Sink) RecordReward(ctx context.Context, r engine.RewardRecord) error {
	return s.store.WriteReward(ctx, Reward{
		RunToken:  r.RunToken,
		Seq:       r.Seq,
		Initiator: r.Initiator,
		Target:    r.Target,
		Day:       r.Day,
		Amount:    r.Amount,
	})
}
