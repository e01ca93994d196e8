// Package rules defines the reaction rule data model and implements the
// condition evaluator and first-match rule search.
//
// A rule pack maps each emote signal to two ordered rule lists: immediate
// rules (checked on every qualifying signal) and combo rules (checked when
// a streak reaches its threshold). Order is semantically significant:
// the matcher returns the FIRST rule whose condition holds, and performs
// no ranking or scoring. Rule authors encode specificity by ordering.
//
// Conditions are conjunctions of optional predicates over a fact snapshot.
// An unset predicate is vacuously true. Malformed condition data fails
// closed: the rule is treated as non-matching and the event is logged,
// never escalated.
//
// Everything in this package is pure: Evaluate and FirstMatch take value
// snapshots and mutate nothing, so evaluating the same (condition, facts)
// twice always yields the same answer.
package rules
