package engine

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUUIDv7Generator(t *testing.T) {
	g := UUIDv7Generator{}

	a := g.Generate()
	b := g.Generate()
	assert.NotEqual(t, a, b)

	parsed, err := uuid.Parse(a)
	require.NoError(t, err)
	assert.Equal(t, uuid.Version(7), parsed.Version())
}

func TestFixedGenerator_CyclesTokens(t *testing.T) {
	g := NewFixedGenerator("one", "two")

	assert.Equal(t, "one", g.Generate())
	assert.Equal(t, "two", g.Generate())
	assert.Equal(t, "one", g.Generate(), "sequence wraps when exhausted")
}

func TestFixedGenerator_DefaultToken(t *testing.T) {
	g := NewFixedGenerator()
	assert.Equal(t, "run-fixed", g.Generate())
	assert.Equal(t, "run-fixed", g.Generate())
}
