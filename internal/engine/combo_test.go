package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestComboTable_FirstSignalStartsAtOne(t *testing.T) {
	table := NewComboTable(10 * time.Second)
	now := time.Unix(1000, 0)

	assert.Equal(t, 1, table.Observe("farmer", "Abigail", "wave", now))
	assert.Equal(t, 1, table.Size())
}

func TestComboTable_SameSignalWithinTimeoutIncrements(t *testing.T) {
	table := NewComboTable(10 * time.Second)
	now := time.Unix(1000, 0)

	table.Observe("farmer", "Abigail", "wave", now)
	assert.Equal(t, 2, table.Observe("farmer", "Abigail", "wave", now.Add(time.Second)))
	assert.Equal(t, 3, table.Observe("farmer", "Abigail", "wave", now.Add(2*time.Second)))
}

func TestComboTable_SignalChangeResetsToOne(t *testing.T) {
	table := NewComboTable(10 * time.Second)
	now := time.Unix(1000, 0)

	table.Observe("farmer", "Abigail", "wave", now)
	table.Observe("farmer", "Abigail", "wave", now.Add(time.Second))
	assert.Equal(t, 1, table.Observe("farmer", "Abigail", "heart", now.Add(2*time.Second)),
		"streak is broken by a different signal")
}

func TestComboTable_TimeoutResetsToOne(t *testing.T) {
	table := NewComboTable(10 * time.Second)
	now := time.Unix(1000, 0)

	table.Observe("farmer", "Abigail", "wave", now)
	table.Observe("farmer", "Abigail", "wave", now.Add(time.Second))

	// Exactly at the timeout still continues; one tick past resets.
	assert.Equal(t, 3, table.Observe("farmer", "Abigail", "wave", now.Add(11*time.Second)))
	assert.Equal(t, 1, table.Observe("farmer", "Abigail", "wave", now.Add(11*time.Second).Add(10*time.Second+time.Nanosecond)))
}

func TestComboTable_ResetAfterTriggerZeroesStreak(t *testing.T) {
	table := NewComboTable(10 * time.Second)
	now := time.Unix(1000, 0)

	table.Observe("farmer", "Abigail", "wave", now)
	table.Observe("farmer", "Abigail", "wave", now.Add(time.Second))
	table.Observe("farmer", "Abigail", "wave", now.Add(2*time.Second))

	table.ResetAfterTrigger("farmer", "Abigail")
	assert.Equal(t, 0, table.Count("farmer", "Abigail"),
		"reset goes to zero, not one: the triggering signal does not carry over")

	// The next occurrence starts a fresh streak at 1.
	assert.Equal(t, 1, table.Observe("farmer", "Abigail", "wave", now.Add(3*time.Second)))
}

func TestComboTable_PairsAreIndependent(t *testing.T) {
	table := NewComboTable(10 * time.Second)
	now := time.Unix(1000, 0)

	table.Observe("farmer", "Abigail", "wave", now)
	table.Observe("farmer", "Abigail", "wave", now.Add(time.Second))
	assert.Equal(t, 1, table.Observe("farmer", "Sam", "wave", now.Add(time.Second)))
	assert.Equal(t, 1, table.Observe("guest", "Abigail", "wave", now.Add(time.Second)),
		"a different initiator has its own streak against the same target")
	assert.Equal(t, 3, table.Observe("farmer", "Abigail", "wave", now.Add(2*time.Second)))
}

func TestComboTable_ResetUnknownPairIsNoOp(t *testing.T) {
	table := NewComboTable(10 * time.Second)
	table.ResetAfterTrigger("farmer", "Abigail")
	assert.Equal(t, 0, table.Count("farmer", "Abigail"))
	assert.Equal(t, 0, table.Size())
}
