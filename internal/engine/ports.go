package engine

import (
	"context"

	"github.com/mvarley/riposte/internal/rules"
)

// FactProvider builds the fact snapshot for an (initiator, target) pair.
// Distance filtering happens upstream; ok=false means the pair has no
// usable facts and the target is silently skipped.
type FactProvider interface {
	Snapshot(initiatorID, targetID string) (facts rules.Facts, ok bool)
}

// EmotePort renders a reaction bubble above the target.
type EmotePort interface {
	Perform(targetID, emoteID string) error
}

// AnimationPort renders a distinct full-body animation.
// Emote choices carrying the configured animation prefix route here
// instead of the EmotePort.
type AnimationPort interface {
	PerformNamed(targetID, animationName string) error
}

// TextPort renders one transient text fragment above the target.
type TextPort interface {
	Show(targetID, text string) error
}

// RelationshipPort reads and mutates the initiator-target relationship
// score. Get reports ok=false when no relationship record exists.
type RelationshipPort interface {
	Grant(initiatorID, targetID string, amount int) error
	Get(initiatorID, targetID string) (score int, ok bool)
}

// SoundPort plays a sound effect. Optional.
type SoundPort interface {
	Play(effectID string) error
}

// Notifier surfaces a local-only notification on reward grants. Optional.
type Notifier interface {
	Notify(message string)
}

// Localizer resolves a text key to its raw localized value.
// Implemented by l10n.Resolver.
type Localizer interface {
	Resolve(textKey string) (string, error)
}

// ReactionRecord describes one executed reaction run for the journal.
type ReactionRecord struct {
	RunToken  string
	Seq       int64
	Initiator string
	Target    string
	Signal    string
	Emote     string
	TextKey   string
	Combo     bool
	Streak    int
}

// RewardRecord describes one granted once-per-day reward.
type RewardRecord struct {
	RunToken  string
	Seq       int64
	Initiator string
	Target    string
	Day       int
	Amount    int
}

// Journal is an optional audit sink for executed reactions and rewards.
// Failures are logged and never abort a reaction.
type Journal interface {
	RecordReaction(ctx context.Context, r ReactionRecord) error
	RecordReward(ctx context.Context, r RewardRecord) error
}

// NopJournal is the default Journal: it records nothing.
type NopJournal struct{}

func (NopJournal) RecordReaction(context.Context, ReactionRecord) error { return nil }
func (NopJournal) RecordReward(context.Context, RewardRecord) error    { return nil }

// Ports bundles the collaborator interfaces the engine is wired with.
// Facts, Emote, Text, Relationship, and Texts are required; Animation,
// Sound, Notifier, and Journal may be nil.
type Ports struct {
	Facts        FactProvider
	Emote        EmotePort
	Animation    AnimationPort
	Text         TextPort
	Relationship RelationshipPort
	Sound        SoundPort
	Notifier     Notifier
	Texts        Localizer
	Journal      Journal
}
