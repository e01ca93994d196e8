// Package l10n resolves text keys to localized strings.
//
// Tables hold strings for any number of locales; lookup picks the best
// available locale for the requested one via golang.org/x/text language
// matching, falling back to the table's default locale when a key is
// missing from the matched locale.
package l10n

import (
	"fmt"
	"os"
	"sort"

	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

// Table maps text keys to raw localized strings per locale.
// Immutable once built; safe for concurrent use.
type Table struct {
	matcher  language.Matcher
	strings  []map[string]string // index-aligned with matcher tags
	fallback map[string]string   // default locale strings
}

// New builds a table. defaultLocale must be one of the keys in locales;
// it becomes both the matcher default and the missing-key fallback.
func New(defaultLocale string, locales map[string]map[string]string) (*Table, error) {
	fallback, ok := locales[defaultLocale]
	if !ok {
		return nil, fmt.Errorf("default locale %q not present in table", defaultLocale)
	}

	// Default locale first: language.NewMatcher treats the first tag as
	// the no-match default. Remaining locales sorted for determinism.
	names := make([]string, 0, len(locales))
	for name := range locales {
		if name != defaultLocale {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	names = append([]string{defaultLocale}, names...)

	tags := make([]language.Tag, 0, len(names))
	strs := make([]map[string]string, 0, len(names))
	for _, name := range names {
		tag, err := language.Parse(name)
		if err != nil {
			return nil, fmt.Errorf("parse locale %q: %w", name, err)
		}
		tags = append(tags, tag)
		strs = append(strs, locales[name])
	}

	return &Table{
		matcher:  language.NewMatcher(tags),
		strings:  strs,
		fallback: fallback,
	}, nil
}

// Load reads a locale table from a YAML file shaped
//
//	en:
//	  heart.combo: "You noticed!|Thanks."
//	pt-BR:
//	  heart.combo: "..."
func Load(path, defaultLocale string) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read locale table: %w", err)
	}
	var locales map[string]map[string]string
	if err := yaml.Unmarshal(data, &locales); err != nil {
		return nil, fmt.Errorf("decode locale table %s: %w", path, err)
	}
	return New(defaultLocale, locales)
}

// ForLocale returns a resolver bound to the best-matching locale.
// An unparseable locale string matches the default.
func (t *Table) ForLocale(locale string) *Resolver {
	tag, _ := language.Parse(locale)
	_, idx, _ := t.matcher.Match(tag)
	return &Resolver{table: t, idx: idx}
}

// Resolver resolves text keys for one matched locale.
type Resolver struct {
	table *Table
	idx   int
}

// Resolve returns the raw localized string for a text key, falling back
// to the default locale when the key is missing from the matched one.
// A key missing everywhere is an error; the caller treats it like any
// other port failure.
func (r *Resolver) Resolve(key string) (string, error) {
	if s, ok := r.table.strings[r.idx][key]; ok {
		return s, nil
	}
	if s, ok := r.table.fallback[key]; ok {
		return s, nil
	}
	return "", fmt.Errorf("text key %q not found in any locale", key)
}
