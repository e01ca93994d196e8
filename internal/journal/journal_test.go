package journal

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "journal.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestOpen_IdempotentSchema(t *testing.T) {
	path := filepath.Join(t.TempDir(), "journal.db")

	s1, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, s1.Close())

	// Reopening an existing database must not fail.
	s2, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, s2.Close())
}

func TestWriteReaction_RoundTrip(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.WriteReaction(ctx, Reaction{
		RunToken: "run-1", Seq: 1,
		Initiator: "farmer", Target: "Abigail",
		Signal: "heart", Emote: "heart-back", TextKey: "heart.reply",
		Combo: false, Streak: 1,
	}))
	require.NoError(t, s.WriteReaction(ctx, Reaction{
		RunToken: "run-2", Seq: 2,
		Initiator: "farmer", Target: "Abigail",
		Signal: "wave", Emote: "blush",
		Combo: true, Streak: 3,
	}))

	got, err := s.ListReactions(ctx, Filter{})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "heart-back", got[0].Emote)
	assert.True(t, got[1].Combo)
	assert.Equal(t, 3, got[1].Streak)
}

func TestWriteReaction_DuplicateIgnored(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	r := Reaction{RunToken: "run-1", Seq: 1, Initiator: "farmer", Target: "Abigail", Signal: "heart"}
	require.NoError(t, s.WriteReaction(ctx, r))
	r.Emote = "changed-after-the-fact"
	require.NoError(t, s.WriteReaction(ctx, r))

	got, err := s.ListReactions(ctx, Filter{})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Empty(t, got[0].Emote, "first write wins")
}

func TestListReactions_Filtering(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	seed := []Reaction{
		{RunToken: "a", Seq: 1, Initiator: "farmer", Target: "Abigail", Signal: "heart"},
		{RunToken: "b", Seq: 2, Initiator: "farmer", Target: "Sam", Signal: "heart"},
		{RunToken: "c", Seq: 3, Initiator: "farmer", Target: "Abigail", Signal: "wave"},
	}
	for _, r := range seed {
		require.NoError(t, s.WriteReaction(ctx, r))
	}

	got, err := s.ListReactions(ctx, Filter{Target: "Abigail"})
	require.NoError(t, err)
	assert.Len(t, got, 2)

	got, err = s.ListReactions(ctx, Filter{Target: "Abigail", Signal: "wave"})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "c", got[0].RunToken)

	got, err = s.ListReactions(ctx, Filter{Target: "Haley"})
	require.NoError(t, err)
	assert.Empty(t, got)
	assert.NotNil(t, got)
}

func TestWriteReward_OncePerDayMirrored(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.WriteReward(ctx, Reward{
		Initiator: "farmer", Target: "Abigail", Day: 12, Amount: 10, RunToken: "a", Seq: 1,
	}))
	// Second grant for the same pair and day is dropped at the storage
	// layer too.
	require.NoError(t, s.WriteReward(ctx, Reward{
		Initiator: "farmer", Target: "Abigail", Day: 12, Amount: 99, RunToken: "b", Seq: 2,
	}))
	require.NoError(t, s.WriteReward(ctx, Reward{
		Initiator: "farmer", Target: "Abigail", Day: 13, Amount: 10, RunToken: "c", Seq: 3,
	}))

	got, err := s.ListRewards(ctx, Filter{Initiator: "farmer", Target: "Abigail"})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, 12, got[0].Day)
	assert.Equal(t, 10, got[0].Amount)
	assert.Equal(t, 13, got[1].Day)
}
