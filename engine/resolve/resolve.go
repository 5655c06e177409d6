// Package resolve answers "what happens here, now": it picks the applicable
// event for a location from the compiled catalog, and reports per-choice
// stat gating.
package resolve

import (
	"github.com/marell/teolife/engine/state"
	"github.com/marell/teolife/types"
)

// FindApplicable returns the first event in catalog order whose location,
// age range and required flags all match the current state. A nil result is
// a normal outcome: nothing interesting is happening at this location.
func FindApplicable(defs *state.Defs, s *types.State, location string) *types.EventDef {
	for i := range defs.Events {
		ev := &defs.Events[i]
		if Matches(ev, s, location) {
			return ev
		}
	}
	return nil
}

// Matches reports whether a single event applies at the given location.
func Matches(ev *types.EventDef, s *types.State, location string) bool {
	if ev.Location != location {
		return false
	}
	if s.Age < ev.AgeRange[0] || s.Age > ev.AgeRange[1] {
		return false
	}
	return state.HasAllFlags(s, ev.RequiredFlags)
}

// ChoiceAvailable reports whether the player currently meets a choice's stat
// gate. Choices without a gate are always available.
func ChoiceAvailable(s *types.State, c *types.Choice) bool {
	if c.RequiredStat == nil {
		return true
	}
	return state.StatValue(s.Stats, c.RequiredStat.Stat) >= c.RequiredStat.Min
}

// FindChoice looks up a choice by id within an event. Returns nil when the
// event has no such choice.
func FindChoice(ev *types.EventDef, choiceID string) *types.Choice {
	for i := range ev.Choices {
		if ev.Choices[i].ID == choiceID {
			return &ev.Choices[i]
		}
	}
	return nil
}
