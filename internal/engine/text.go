package engine

import (
	"strings"

	"github.com/mvarley/riposte/internal/rules"
)

// Dynamic text tokens. Applied to every fragment independently, after
// splitting.
//
//	@            initiator's name
//	%farm        farm/team name
//	%favorite    initiator's favorite thing
//	%companion   companion (mount) name
//	%partner     speaker's partner name
//	${a^b}       gender branch: a for male initiators, b otherwise
const (
	tokenFarm      = "%farm"
	tokenFavorite  = "%favorite"
	tokenCompanion = "%companion"
	tokenPartner   = "%partner"
)

// splitFragments divides a localized string into ordered fragments on the
// splitter token. An empty token means no splitting.
func splitFragments(s, token string) []string {
	if token == "" {
		return []string{s}
	}
	return strings.Split(s, token)
}

// expandTokens substitutes all dynamic tokens in one fragment.
// Named tokens go first so an initiator name containing '%' cannot be
// re-expanded.
func expandTokens(s string, init rules.Initiator) string {
	s = strings.NewReplacer(
		tokenFavorite, init.FavoriteThing,
		tokenCompanion, init.CompanionName,
		tokenPartner, init.PartnerName,
		tokenFarm, init.FarmName,
	).Replace(s)
	s = expandGenderBranch(s, init.IsMale)
	return strings.ReplaceAll(s, "@", init.Name)
}

// expandGenderBranch rewrites every ${male^female} branch token.
// A branch without '^' resolves to its whole body for either gender; an
// unterminated token is left as-is.
func expandGenderBranch(s string, male bool) string {
	for {
		start := strings.Index(s, "${")
		if start < 0 {
			return s
		}
		rel := strings.Index(s[start:], "}")
		if rel < 0 {
			return s
		}
		end := start + rel

		body := s[start+2 : end]
		maleText, femaleText, branched := strings.Cut(body, "^")
		pick := maleText
		if !male && branched {
			pick = femaleText
		}
		s = s[:start] + pick + s[end+1:]
	}
}
