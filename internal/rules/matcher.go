package rules

// FirstMatch walks rules in authored order and returns the first rule
// whose condition evaluates true under facts. A rule without a condition
// is trivially true. Returns nil if no rule matches or the list is empty.
//
// This is the single most important invariant for rule authors:
// specificity is encoded by ORDERING, not by priority numbers. The
// matcher performs no ranking or scoring.
func FirstMatch(rs []Rule, facts Facts, opts EvalOptions) *Rule {
	for i := range rs {
		if Evaluate(rs[i].When, facts, opts) {
			return &rs[i]
		}
	}
	return nil
}
