// Package ending picks the terminal narrative for a finished life. Endings
// are rules over final stats and flags; the most specific (heaviest) rule
// that fully matches wins, and a catch-all keeps resolution total.
package ending

import (
	"sort"

	"github.com/marell/teolife/engine/state"
	"github.com/marell/teolife/types"
)

// Resolve returns the ending for the current state. Candidates are ordered
// by weight descending, ties broken by catalog order; the first whose every
// bound holds wins. With a zero-condition fallback in the catalog the result
// is never nil.
func Resolve(defs *state.Defs, s *types.State) *types.EndingDef {
	ranked := make([]*types.EndingDef, 0, len(defs.Endings))
	for i := range defs.Endings {
		ranked = append(ranked, &defs.Endings[i])
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].Weight != ranked[j].Weight {
			return ranked[i].Weight > ranked[j].Weight
		}
		return ranked[i].SourceOrder < ranked[j].SourceOrder
	})
	for _, e := range ranked {
		if ConditionMet(&e.Condition, s) {
			return e
		}
	}
	return nil
}

// ConditionMet reports whether every present bound of a condition holds.
// Absent bounds are vacuously true, so the empty condition matches any state.
func ConditionMet(c *types.EndingCondition, s *types.State) bool {
	st := s.Stats
	if c.AmbitionMin != nil && st.Ambition < *c.AmbitionMin {
		return false
	}
	if c.AmbitionMax != nil && st.Ambition > *c.AmbitionMax {
		return false
	}
	if c.ChaosMin != nil && st.Chaos < *c.ChaosMin {
		return false
	}
	if c.ChaosMax != nil && st.Chaos > *c.ChaosMax {
		return false
	}
	if c.RelationsMin != nil && st.Relations < *c.RelationsMin {
		return false
	}
	if c.RelationsMax != nil && st.Relations > *c.RelationsMax {
		return false
	}
	return state.HasAllFlags(s, c.RequiredFlags)
}

// LifeScore condenses a life into 0..18: six points each for ambition,
// balance (chaos nearest 50), and relations.
func LifeScore(st types.Stats) int {
	amb := float64(st.Ambition) / 100 * 6
	bal := float64(50-abs(st.Chaos-50)) / 50 * 6
	rel := float64(st.Relations) / 100 * 6
	return int(amb + bal + rel)
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
