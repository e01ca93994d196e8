package rules

import (
	"fmt"
	"math/rand"

	"gopkg.in/yaml.v3"
)

// OneOrMany holds zero, one, or many alternatives for an action field.
//
// Rule packs may author the field as a single scalar or as a list; both
// decode into the same type, so call sites never inspect the shape.
// An empty value means "do nothing for this field".
type OneOrMany[T any] []T

// UnmarshalYAML accepts either a scalar or a sequence.
func (o *OneOrMany[T]) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		var v T
		if err := value.Decode(&v); err != nil {
			return err
		}
		*o = OneOrMany[T]{v}
		return nil
	case yaml.SequenceNode:
		var vs []T
		if err := value.Decode(&vs); err != nil {
			return err
		}
		*o = OneOrMany[T](vs)
		return nil
	}
	return fmt.Errorf("line %d: expected scalar or sequence, got %v", value.Line, value.Kind)
}

// Pick resolves the alternatives: zero values returns ok=false, one value
// is returned as-is, and many values selects uniformly at random.
func (o OneOrMany[T]) Pick(rng *rand.Rand) (v T, ok bool) {
	switch len(o) {
	case 0:
		return v, false
	case 1:
		return o[0], true
	}
	return o[rng.Intn(len(o))], true
}

// Action describes what a matched rule does. Both fields are optional;
// Emote names a reaction bubble (or a full-body animation when prefixed
// with the configured animation marker) and Text names localization keys.
type Action struct {
	Emote OneOrMany[string] `yaml:"emote,omitempty"`
	Text  OneOrMany[string] `yaml:"text,omitempty"`
}

// Rule pairs an optional condition with an action. Rules are immutable
// once loaded and replaced wholesale on reload.
//
// Count is only meaningful on combo rules: it is the streak threshold that
// triggers the action. Zero means "use the engine default".
type Rule struct {
	When  *Condition `yaml:"when,omitempty"`
	Count int        `yaml:"count,omitempty"`
	Do    Action     `yaml:"do"`
}

// SignalRules holds the two ordered rule lists for one emote signal.
type SignalRules struct {
	Immediate []Rule `yaml:"immediate,omitempty"`
	Combo     []Rule `yaml:"combo,omitempty"`
}
