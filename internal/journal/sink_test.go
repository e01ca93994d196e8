package journal

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mvarley/riposte/internal/engine"
)

var _ engine.Journal = (*Sink)(nil)

func TestSink_RecordsThroughStore(t *testing.T) {
	store, err := Open(filepath.Join(t.TempDir(), "journal.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	sink := NewSink(store)
	ctx := context.Background()

	require.NoError(t, sink.RecordReaction(ctx, engine.ReactionRecord{
		RunToken:  "run-1",
		Seq:       1,
		Initiator: "farmer",
		Target:    "Abigail",
		Signal:    "heart",
		Emote:     "heart-back",
		Combo:     true,
		Streak:    3,
	}))
	require.NoError(t, sink.RecordReward(ctx, engine.RewardRecord{
		RunToken:  "run-1",
		Seq:       2,
		Initiator: "farmer",
		Target:    "Abigail",
		Day:       4,
		Amount:    10,
	}))

	reactions, err := store.ListReactions(ctx, Filter{})
	require.NoError(t, err)
	require.Len(t, reactions, 1)
	assert.Equal(t, "heart-back", reactions[0].Emote)
	assert.True(t, reactions[0].Combo)
	assert.Equal(t, 3, reactions[0].Streak)

	rewards, err := store.ListRewards(ctx, Filter{})
	require.NoError(t, err)
	require.Len(t, rewards, 1)
	assert.Equal(t, 4, rewards[0].Day)
	assert.Equal(t, "run-1", rewards[0].RunToken)
}
