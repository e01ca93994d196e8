package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFirstMatch_EmptyListReturnsNil(t *testing.T) {
	assert.Nil(t, FirstMatch(nil, makeVillagerFacts("Abigail", 0), allChecks))
	assert.Nil(t, FirstMatch([]Rule{}, makeVillagerFacts("Abigail", 0), allChecks))
}

func TestFirstMatch_OrdinalPrecedence(t *testing.T) {
	// Overlapping conditions: both the friendship rule and the
	// unconditional fallback match at 2200 friendship. Authored order
	// decides, never specificity scoring.
	rs := []Rule{
		{When: &Condition{FriendshipAtLeast: ptr(2000)}, Do: Action{Emote: OneOrMany[string]{"heart-back"}}},
		{Do: Action{Emote: OneOrMany[string]{"question"}}},
	}

	matched := FirstMatch(rs, makeVillagerFacts("Abigail", 2200), allChecks)
	require.NotNil(t, matched)
	assert.Equal(t, OneOrMany[string]{"heart-back"}, matched.Do.Emote)

	matched = FirstMatch(rs, makeVillagerFacts("Abigail", 100), allChecks)
	require.NotNil(t, matched)
	assert.Equal(t, OneOrMany[string]{"question"}, matched.Do.Emote)
}

func TestFirstMatch_BroadRuleFirstShadowsSpecific(t *testing.T) {
	// A broad rule authored first wins even when a later rule is more
	// specific. This is the contract rule authors depend on.
	rs := []Rule{
		{Do: Action{Emote: OneOrMany[string]{"fallback"}}},
		{When: &Condition{Name: ptr("Abigail")}, Do: Action{Emote: OneOrMany[string]{"special"}}},
	}

	matched := FirstMatch(rs, makeVillagerFacts("Abigail", 0), allChecks)
	require.NotNil(t, matched)
	assert.Equal(t, OneOrMany[string]{"fallback"}, matched.Do.Emote)
}

func TestFirstMatch_NoRuleQualifies(t *testing.T) {
	rs := []Rule{
		{When: &Condition{Name: ptr("Sam")}, Do: Action{}},
		{When: &Condition{FriendshipAtLeast: ptr(5000)}, Do: Action{}},
	}

	assert.Nil(t, FirstMatch(rs, makeVillagerFacts("Abigail", 100), allChecks))
}

func TestFirstMatch_ReturnsPointerIntoSlice(t *testing.T) {
	rs := []Rule{
		{Count: 3, Do: Action{Emote: OneOrMany[string]{"blush"}}},
	}

	matched := FirstMatch(rs, makeVillagerFacts("Abigail", 0), allChecks)
	require.NotNil(t, matched)
	assert.Same(t, &rs[0], matched)
	assert.Equal(t, 3, matched.Count)
}
