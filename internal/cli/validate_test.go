package cli

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validPackYAML = `
signals:
  heart:
    immediate:
      - when: { friendshipAtLeast: 2000 }
        do: { emote: heart-back }
      - do: { emote: smile }
  wave:
    immediate:
      - do: { emote: wave-back }
    combo:
      - count: 3
        do: { emote: blush }
`

func writePack(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "pack.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestValidate_ValidPack(t *testing.T) {
	path := writePack(t, validPackYAML)

	out, _, err := execute(t, "validate", path)
	require.NoError(t, err)
	assert.Contains(t, out, "✓ Pack valid (2 signal(s))")
	assert.Contains(t, out, "heart: 2 immediate, 0 combo")
	assert.Contains(t, out, "wave: 1 immediate, 1 combo")
}

func TestValidate_ValidPackJSON(t *testing.T) {
	path := writePack(t, validPackYAML)

	out, _, err := execute(t, "--format", "json", "validate", path)
	require.NoError(t, err)

	var resp Response
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "ok", resp.Status)
}

func TestValidate_SchemaViolation(t *testing.T) {
	path := writePack(t, `
signals:
  heart:
    immediate:
      - when: { friendshipAtLeest: 2000 }
        do: { emote: heart-back }
`)

	out, _, err := execute(t, "validate", path)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, out, "✗ Validation failed")
}

func TestValidate_UnknownActorType(t *testing.T) {
	path := writePack(t, `
signals:
  heart:
    immediate:
      - when: { actorType: dragon }
        do: { emote: heart-back }
`)

	out, _, err := execute(t, "validate", path)
	require.Error(t, err)
	assert.Contains(t, out, "E110")
}

func TestValidate_MissingFile(t *testing.T) {
	_, _, err := execute(t, "validate", filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}
