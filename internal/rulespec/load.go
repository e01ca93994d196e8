package rulespec

import (
	_ "embed"
	"fmt"
	"os"
	"sort"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"
	cueyaml "cuelang.org/go/encoding/yaml"
	"gopkg.in/yaml.v3"

	"github.com/mvarley/riposte/internal/rules"
)

//go:embed schema.cue
var schemaCUE string

// Pack is a decoded rule pack: two ordered rule lists per signal id.
// Rule order within each list is preserved exactly as authored.
type Pack struct {
	Signals map[string]rules.SignalRules `yaml:"signals"`
}

// LoadFile reads, validates, and compiles a rule pack from disk.
func LoadFile(path string) (*Pack, []ValidationError) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, []ValidationError{{
			Code:    ErrNotYAML,
			Message: fmt.Sprintf("read %s: %v", path, err),
		}}
	}
	return Parse(path, data)
}

// Parse validates and compiles a rule pack document.
//
// All validation errors are collected and returned together; a nil error
// slice means the pack is ready for the engine (expressions compiled,
// actor type names checked).
func Parse(filename string, data []byte) (*Pack, []ValidationError) {
	if errs := validateSchema(filename, data); len(errs) > 0 {
		return nil, errs
	}

	var pack Pack
	if err := yaml.Unmarshal(data, &pack); err != nil {
		return nil, []ValidationError{{
			Code:    ErrNotYAML,
			Message: fmt.Sprintf("decode %s: %v", filename, err),
		}}
	}

	if errs := compilePack(&pack); len(errs) > 0 {
		return nil, errs
	}
	return &pack, nil
}

// validateSchema unifies the raw YAML document with the embedded CUE
// schema. Shape errors are caught here, before any Go decoding.
func validateSchema(filename string, data []byte) []ValidationError {
	ctx := cuecontext.New()

	schema := ctx.CompileString(schemaCUE, cue.Filename("schema.cue"))
	if err := schema.Err(); err != nil {
		return []ValidationError{{
			Code:    ErrSchemaViolation,
			Message: fmt.Sprintf("internal pack schema is invalid: %v", err),
		}}
	}

	file, err := cueyaml.Extract(filename, data)
	if err != nil {
		return []ValidationError{{
			Code:    ErrNotYAML,
			Message: err.Error(),
		}}
	}
	doc := ctx.BuildFile(file)
	if err := doc.Err(); err != nil {
		return []ValidationError{{
			Code:    ErrNotYAML,
			Message: err.Error(),
		}}
	}

	unified := schema.Unify(doc)
	if err := unified.Validate(cue.Concrete(true)); err != nil {
		var errs []ValidationError
		for _, e := range cueerrors.Errors(err) {
			errs = append(errs, ValidationError{
				Code:    ErrSchemaViolation,
				Field:   strings.Join(e.Path(), "."),
				Message: e.Error(),
			})
		}
		return errs
	}
	return nil
}

// compilePack runs semantic validation and compiles expr conditions.
// Signals are visited in sorted order so error output is deterministic.
func compilePack(pack *Pack) []ValidationError {
	var errs []ValidationError

	names := make([]string, 0, len(pack.Signals))
	for name := range pack.Signals {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, signal := range names {
		sr := pack.Signals[signal]

		if len(sr.Immediate) == 0 && len(sr.Combo) == 0 {
			errs = append(errs, ValidationError{
				Code:    ErrEmptySignal,
				Field:   fmt.Sprintf("signals.%s", signal),
				Message: "signal has neither immediate nor combo rules",
			})
		}

		errs = append(errs, compileRules(signal, "immediate", sr.Immediate)...)
		errs = append(errs, compileRules(signal, "combo", sr.Combo)...)
		pack.Signals[signal] = sr
	}
	return errs
}

func compileRules(signal, list string, rs []rules.Rule) []ValidationError {
	var errs []ValidationError
	for i := range rs {
		cond := rs[i].When
		if cond == nil {
			continue
		}
		field := fmt.Sprintf("signals.%s.%s[%d]", signal, list, i)

		for _, s := range cond.ActorType {
			if _, err := rules.ParseActorType(s); err != nil {
				errs = append(errs, ValidationError{
					Code:    ErrUnknownActorType,
					Field:   field + ".when.actorType",
					Message: err.Error(),
				})
			}
		}

		if err := cond.Compile(); err != nil {
			errs = append(errs, ValidationError{
				Code:    ErrBadExpr,
				Field:   field + ".when.expr",
				Message: err.Error(),
			})
		}
	}
	return errs
}
