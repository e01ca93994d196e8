package engine

import (
	"context"
	"fmt"
	"sync"

	"github.com/mvarley/riposte/internal/rules"
)

// fakeFacts serves canned snapshots keyed by target id.
type fakeFacts map[string]rules.Facts

func (f fakeFacts) Snapshot(initiatorID, targetID string) (rules.Facts, bool) {
	facts, ok := f[targetID]
	if !ok {
		return rules.Facts{}, false
	}
	facts.TargetID = targetID
	if facts.Initiator.ID == "" {
		facts.Initiator.ID = initiatorID
	}
	return facts, true
}

// recordingPorts captures every output-side port call.
// Error fields inject failures per port.
type recordingPorts struct {
	mu         sync.Mutex
	emotes     []string
	animations []string
	texts      []string
	sounds     []string
	notes      []string

	emoteErr error
	textErr  error

	// emoteGate, when non-nil, blocks Perform until the channel closes.
	// Used to hold an execution in flight for reentrancy tests.
	emoteGate chan struct{}
}

func (p *recordingPorts) Perform(targetID, emoteID string) error {
	if p.emoteGate != nil {
		<-p.emoteGate
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.emoteErr != nil {
		return p.emoteErr
	}
	p.emotes = append(p.emotes, targetID+":"+emoteID)
	return nil
}

func (p *recordingPorts) PerformNamed(targetID, animationName string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.animations = append(p.animations, targetID+":"+animationName)
	return nil
}

func (p *recordingPorts) Show(targetID, text string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.textErr != nil {
		return p.textErr
	}
	p.texts = append(p.texts, targetID+":"+text)
	return nil
}

func (p *recordingPorts) Play(effectID string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.sounds = append(p.sounds, effectID)
	return nil
}

func (p *recordingPorts) Notify(message string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.notes = append(p.notes, message)
}

func (p *recordingPorts) Emotes() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string(nil), p.emotes...)
}

func (p *recordingPorts) Texts() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string(nil), p.texts...)
}

func (p *recordingPorts) Animations() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string(nil), p.animations...)
}

func (p *recordingPorts) Sounds() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string(nil), p.sounds...)
}

// fakeRelationship is an in-memory relationship store.
type fakeRelationship struct {
	mu       sync.Mutex
	scores   map[string]int // "initiator/target" -> score
	grants   []string       // "initiator/target:+amount"
	grantErr error
}

func newFakeRelationship() *fakeRelationship {
	return &fakeRelationship{scores: make(map[string]int)}
}

func pairKey(initiatorID, targetID string) string {
	return initiatorID + "/" + targetID
}

func (r *fakeRelationship) set(initiatorID, targetID string, score int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.scores[pairKey(initiatorID, targetID)] = score
}

func (r *fakeRelationship) Get(initiatorID, targetID string) (int, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	score, ok := r.scores[pairKey(initiatorID, targetID)]
	return score, ok
}

func (r *fakeRelationship) Grant(initiatorID, targetID string, amount int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.grantErr != nil {
		return r.grantErr
	}
	key := pairKey(initiatorID, targetID)
	r.scores[key] += amount
	r.grants = append(r.grants, fmt.Sprintf("%s:+%d", key, amount))
	return nil
}

func (r *fakeRelationship) Grants() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.grants...)
}

// mapLocalizer resolves text keys from a plain map.
type mapLocalizer map[string]string

func (m mapLocalizer) Resolve(textKey string) (string, error) {
	if s, ok := m[textKey]; ok {
		return s, nil
	}
	return "", fmt.Errorf("text key %q not found", textKey)
}

// memJournal records journal writes in memory.
type memJournal struct {
	mu        sync.Mutex
	reactions []ReactionRecord
	rewards   []RewardRecord
	err       error
}

func (j *memJournal) RecordReaction(_ context.Context, r ReactionRecord) error {
	j.mu.Lock()
	defer j.mu.Unlock()
	if j.err != nil {
		return j.err
	}
	j.reactions = append(j.reactions, r)
	return nil
}

func (j *memJournal) RecordReward(_ context.Context, r RewardRecord) error {
	j.mu.Lock()
	defer j.mu.Unlock()
	if j.err != nil {
		return j.err
	}
	j.rewards = append(j.rewards, r)
	return nil
}

func (j *memJournal) Reactions() []ReactionRecord {
	j.mu.Lock()
	defer j.mu.Unlock()
	return append([]ReactionRecord(nil), j.reactions...)
}

func (j *memJournal) Rewards() []RewardRecord {
	j.mu.Lock()
	defer j.mu.Unlock()
	return append([]RewardRecord(nil), j.rewards...)
}
