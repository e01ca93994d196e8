package l10n

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeTable(t *testing.T) *Table {
	t.Helper()
	table, err := New("en", map[string]map[string]string{
		"en": {
			"heart.combo": "You noticed!|Thanks.",
			"wave.hello":  "Hello there.",
		},
		"pt-BR": {
			"wave.hello": "Olá.",
		},
	})
	require.NoError(t, err)
	return table
}

func TestResolve_ExactLocale(t *testing.T) {
	table := makeTable(t)

	s, err := table.ForLocale("pt-BR").Resolve("wave.hello")
	require.NoError(t, err)
	assert.Equal(t, "Olá.", s)
}

func TestResolve_LanguageMatching(t *testing.T) {
	table := makeTable(t)

	// Plain "pt" matches the pt-BR table.
	s, err := table.ForLocale("pt").Resolve("wave.hello")
	require.NoError(t, err)
	assert.Equal(t, "Olá.", s)
}

func TestResolve_UnknownLocaleFallsBackToDefault(t *testing.T) {
	table := makeTable(t)

	s, err := table.ForLocale("ja").Resolve("wave.hello")
	require.NoError(t, err)
	assert.Equal(t, "Hello there.", s)
}

func TestResolve_MissingKeyFallsBackToDefaultLocale(t *testing.T) {
	table := makeTable(t)

	s, err := table.ForLocale("pt-BR").Resolve("heart.combo")
	require.NoError(t, err)
	assert.Equal(t, "You noticed!|Thanks.", s)
}

func TestResolve_MissingEverywhereIsError(t *testing.T) {
	table := makeTable(t)

	_, err := table.ForLocale("en").Resolve("no.such.key")
	assert.Error(t, err)
}

func TestNew_DefaultLocaleMustExist(t *testing.T) {
	_, err := New("fr", map[string]map[string]string{"en": {}})
	assert.Error(t, err)
}

func TestNew_BadLocaleNameRejected(t *testing.T) {
	_, err := New("en", map[string]map[string]string{
		"en":          {},
		"not a tag !": {},
	})
	assert.Error(t, err)
}

func TestLoad_YAMLFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "strings.yaml")
	doc := "en:\n  wave.hello: Hello there.\n"
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))

	table, err := Load(path, "en")
	require.NoError(t, err)

	s, err := table.ForLocale("en").Resolve("wave.hello")
	require.NoError(t, err)
	assert.Equal(t, "Hello there.", s)
}
