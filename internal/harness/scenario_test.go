package harness

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeScenario(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scenario.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadScenario_Valid(t *testing.T) {
	s, err := LoadScenario("testdata/scenarios/wave_combo.yaml")
	require.NoError(t, err)

	assert.Equal(t, "wave_combo", s.Name)
	assert.Equal(t, "farmer", s.Initiator.ID)
	assert.Equal(t, 10*time.Second, s.Tuning.ComboTimeout)
	require.Len(t, s.Steps, 5)
	assert.Equal(t, 11*time.Second, s.Steps[2].Advance)
	assert.Contains(t, s.Targets, "Maru")
}

func TestLoadScenario_MissingFile(t *testing.T) {
	_, err := LoadScenario("testdata/scenarios/nope.yaml")
	assert.Error(t, err)
}

func TestLoadScenario_RejectsEmptySteps(t *testing.T) {
	path := writeScenario(t, `
name: empty
initiator: { id: farmer }
targets: {}
steps: []
`)
	_, err := LoadScenario(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "at least one step")
}

func TestLoadScenario_RejectsSignalWithoutTargets(t *testing.T) {
	path := writeScenario(t, `
name: bad
initiator: { id: farmer }
targets: {}
steps:
  - signal: heart
`)
	_, err := LoadScenario(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no targets")
}

func TestLoadScenario_RejectsDoNothingStep(t *testing.T) {
	path := writeScenario(t, `
name: bad
initiator: { id: farmer }
targets: {}
steps:
  - expect: []
`)
	_, err := LoadScenario(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "does nothing")
}

func TestScenario_CompilePackValidates(t *testing.T) {
	path := writeScenario(t, `
name: bad-pack
initiator: { id: farmer }
targets: {}
pack:
  signals:
    heart:
      immediate:
        - when: { friendshipAtLeest: 2000 }
          do: { emote: heart-back }
steps:
  - signal: heart
    targets: [Abigail]
`)
	s, err := LoadScenario(path)
	require.NoError(t, err)

	_, err = s.compilePack()
	require.Error(t, err, "misspelled condition fields fail schema validation")
}
