package rules

import (
	"log/slog"
	"strings"

	"github.com/expr-lang/expr/vm"
)

// Condition is a conjunction of optional predicates over a fact snapshot.
// An unset field imposes no constraint. All set fields must hold.
type Condition struct {
	// Name matches the target's name exactly (case-sensitive).
	Name *string `yaml:"name,omitempty"`

	IsSpouse   *bool `yaml:"isSpouse,omitempty"`
	IsDateable *bool `yaml:"isDateable,omitempty"`
	IsBaby     *bool `yaml:"isBaby,omitempty"`

	// FriendshipAtLeast is an inclusive lower bound on the relationship
	// score; FriendshipBelow is an exclusive upper bound.
	FriendshipAtLeast *int `yaml:"friendshipAtLeast,omitempty"`
	FriendshipBelow   *int `yaml:"friendshipBelow,omitempty"`

	// ActorType matches when the target's derived type is a member.
	// Authored as a single name or a list.
	ActorType OneOrMany[string] `yaml:"actorType,omitempty"`

	// PetType matches the derived pet subtype name exactly. Only
	// meaningful when the target's actor type is the pet category.
	PetType *string `yaml:"petType,omitempty"`

	// Season and Weather match current world facts case-insensitively.
	// Each is individually toggleable via EvalOptions.
	Season  *string `yaml:"season,omitempty"`
	Weather *string `yaml:"weather,omitempty"`

	// Expr is an optional free-form expression over the fact snapshot,
	// compiled at load time. See expr.go.
	Expr string `yaml:"expr,omitempty"`

	program *vm.Program
}

// EvalOptions controls world-fact predicates globally. When a toggle is
// off the corresponding condition field is treated as unset for ALL rules,
// even if authored.
type EvalOptions struct {
	CheckSeason  bool
	CheckWeather bool
}

// Evaluate reports whether every set field of cond holds under facts.
// A nil condition is vacuously true. Short-circuits on the first failing
// predicate. Pure: the same (condition, facts) always yields the same
// answer.
//
// Malformed condition data (unknown actor type names, an expression that
// was never compiled or fails at runtime) fails closed: the condition
// evaluates false and the event is logged.
func Evaluate(cond *Condition, facts Facts, opts EvalOptions) bool {
	if cond == nil {
		return true
	}

	// Character-only predicates fail for generic animal targets when set.
	if facts.Kind != KindCharacter {
		if cond.Name != nil || cond.IsSpouse != nil || cond.IsDateable != nil ||
			cond.FriendshipAtLeast != nil || cond.FriendshipBelow != nil {
			return false
		}
	}

	if cond.Name != nil && *cond.Name != facts.Name {
		return false
	}
	if cond.IsSpouse != nil && *cond.IsSpouse != facts.IsSpouse {
		return false
	}
	if cond.IsDateable != nil && *cond.IsDateable != facts.IsDateable {
		return false
	}
	if cond.IsBaby != nil && *cond.IsBaby != facts.IsBaby {
		return false
	}
	if cond.FriendshipAtLeast != nil && facts.Friendship < *cond.FriendshipAtLeast {
		return false
	}
	if cond.FriendshipBelow != nil && facts.Friendship >= *cond.FriendshipBelow {
		return false
	}

	if len(cond.ActorType) > 0 && !matchActorType(cond.ActorType, facts.Type) {
		return false
	}
	if cond.PetType != nil && *cond.PetType != facts.PetType {
		return false
	}

	if opts.CheckSeason && cond.Season != nil && !strings.EqualFold(*cond.Season, facts.Season) {
		return false
	}
	if opts.CheckWeather && cond.Weather != nil && !strings.EqualFold(*cond.Weather, facts.Weather) {
		return false
	}

	if cond.Expr != "" && !evalExpr(cond, facts) {
		return false
	}

	return true
}

// matchActorType reports membership of the target type in the authored
// set. Unknown authored names fail closed.
func matchActorType(authored OneOrMany[string], actual ActorType) bool {
	for _, s := range authored {
		t, err := ParseActorType(s)
		if err != nil {
			slog.Warn("malformed actor type in rule condition, treating rule as non-matching",
				"value", s)
			return false
		}
		if t == actual {
			return true
		}
	}
	return false
}
