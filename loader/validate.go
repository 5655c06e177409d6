package loader

import (
	"fmt"
	"strings"

	"github.com/marell/teolife/engine/minigame"
	"github.com/marell/teolife/engine/progress"
	"github.com/marell/teolife/engine/state"
	"github.com/marell/teolife/types"
)

// ValidationError collects all validation errors and warnings.
type ValidationError struct {
	Errors   []string
	Warnings []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed with %d error(s):\n  %s",
		len(e.Errors), strings.Join(e.Errors, "\n  "))
}

var validStats = map[string]bool{
	"ambition":  true,
	"chaos":     true,
	"relations": true,
}

// validate checks the compiled defs for referential integrity and
// consistency. All problems are reported at once.
func validate(defs *state.Defs) error {
	ve := &ValidationError{}

	if defs.Game.Title == "" {
		ve.Errors = append(ve.Errors, "Game.title is required")
	}

	validateLocations(defs, ve)
	validateEvents(defs, ve)
	validateEndings(defs, ve)
	validateSpecials(defs, ve)
	validateFlagUsage(defs, ve)

	if len(ve.Errors) > 0 {
		return ve
	}
	return nil
}

func validateLocations(defs *state.Defs, ve *ValidationError) {
	seen := map[string]bool{}
	for _, loc := range defs.Locations {
		if seen[loc.ID] {
			ve.Errors = append(ve.Errors, fmt.Sprintf("duplicate location ID %q", loc.ID))
		}
		seen[loc.ID] = true
		if loc.Name == "" {
			ve.Errors = append(ve.Errors, fmt.Sprintf("location %q has no name", loc.ID))
		}
		if loc.UnlockAge < 0 || loc.UnlockAge > progress.MaxAge {
			ve.Errors = append(ve.Errors, fmt.Sprintf(
				"location %q unlock_age %d outside [0,%d]", loc.ID, loc.UnlockAge, progress.MaxAge))
		}
	}
}

func validateEvents(defs *state.Defs, ve *ValidationError) {
	seen := map[string]bool{}
	for _, ev := range defs.Events {
		if seen[ev.ID] {
			ve.Errors = append(ve.Errors, fmt.Sprintf("duplicate event ID %q", ev.ID))
		}
		seen[ev.ID] = true

		if ev.Location != "" && defs.LocationByID(ev.Location) == nil && !isSpecialNodeEvent(defs, ev.ID) {
			ve.Errors = append(ve.Errors, fmt.Sprintf(
				"event %q references undefined location %q", ev.ID, ev.Location))
		}
		if ev.AgeRange[0] > ev.AgeRange[1] {
			ve.Errors = append(ve.Errors, fmt.Sprintf(
				"event %q age_range {%d,%d} is inverted", ev.ID, ev.AgeRange[0], ev.AgeRange[1]))
		}
		if ev.AgeRange[0] < 0 || ev.AgeRange[1] > progress.MaxAge {
			ve.Errors = append(ve.Errors, fmt.Sprintf(
				"event %q age_range {%d,%d} outside [0,%d]", ev.ID, ev.AgeRange[0], ev.AgeRange[1], progress.MaxAge))
		}

		hasChoices := len(ev.Choices) > 0
		hasMinigame := ev.MinigameRef != ""
		if hasChoices == hasMinigame {
			ve.Errors = append(ve.Errors, fmt.Sprintf(
				"event %q must have either choices or a minigame, not both or neither", ev.ID))
		}
		if hasMinigame && !minigame.Known(ev.MinigameRef) {
			ve.Errors = append(ve.Errors, fmt.Sprintf(
				"event %q references unknown minigame %q", ev.ID, ev.MinigameRef))
		}

		choiceIDs := map[string]bool{}
		for _, c := range ev.Choices {
			if c.ID == "" {
				ve.Errors = append(ve.Errors, fmt.Sprintf("event %q has a choice without an id", ev.ID))
				continue
			}
			if choiceIDs[c.ID] {
				ve.Errors = append(ve.Errors, fmt.Sprintf(
					"event %q has duplicate choice ID %q", ev.ID, c.ID))
			}
			choiceIDs[c.ID] = true
			if c.RequiredStat != nil && !validStats[c.RequiredStat.Stat] {
				ve.Errors = append(ve.Errors, fmt.Sprintf(
					"event %q choice %q gates on unknown stat %q", ev.ID, c.ID, c.RequiredStat.Stat))
			}
			if c.PhotoUnlock != "" && defs.PhotoByID(c.PhotoUnlock) == nil {
				ve.Errors = append(ve.Errors, fmt.Sprintf(
					"event %q choice %q unlocks undefined photo %q", ev.ID, c.ID, c.PhotoUnlock))
			}
		}
		for _, p := range ev.PhotoUnlocks {
			if defs.PhotoByID(p) == nil {
				ve.Errors = append(ve.Errors, fmt.Sprintf(
					"event %q unlocks undefined photo %q", ev.ID, p))
			}
		}
	}
}

func validateEndings(defs *state.Defs, ve *ValidationError) {
	seen := map[string]bool{}
	haveFallback := false
	for _, e := range defs.Endings {
		if seen[e.ID] {
			ve.Errors = append(ve.Errors, fmt.Sprintf("duplicate ending ID %q", e.ID))
		}
		seen[e.ID] = true
		c := e.Condition
		checkBoundPair(ve, e.ID, "ambition", c.AmbitionMin, c.AmbitionMax)
		checkBoundPair(ve, e.ID, "chaos", c.ChaosMin, c.ChaosMax)
		checkBoundPair(ve, e.ID, "relations", c.RelationsMin, c.RelationsMax)
		if emptyCondition(c) {
			haveFallback = true
		}
	}
	if len(defs.Endings) > 0 && !haveFallback {
		ve.Errors = append(ve.Errors,
			"no fallback ending: at least one ending needs an empty condition")
	}
	if len(defs.Endings) == 0 {
		ve.Errors = append(ve.Errors, "at least one ending is required")
	}
}

func checkBoundPair(ve *ValidationError, endingID, stat string, min, max *int) {
	for _, b := range []*int{min, max} {
		if b != nil && (*b < 0 || *b > 100) {
			ve.Errors = append(ve.Errors, fmt.Sprintf(
				"ending %q %s bound %d outside [0,100]", endingID, stat, *b))
		}
	}
	if min != nil && max != nil && *min > *max {
		ve.Errors = append(ve.Errors, fmt.Sprintf(
			"ending %q %s bounds inverted (%d > %d)", endingID, stat, *min, *max))
	}
}

func emptyCondition(c types.EndingCondition) bool {
	return c.AmbitionMin == nil && c.AmbitionMax == nil &&
		c.ChaosMin == nil && c.ChaosMax == nil &&
		c.RelationsMin == nil && c.RelationsMax == nil &&
		len(c.RequiredFlags) == 0
}

func validateSpecials(defs *state.Defs, ve *ValidationError) {
	seen := map[string]bool{}
	triggerAges := map[int]string{}
	for _, sp := range defs.Specials {
		if seen[sp.ID] {
			ve.Errors = append(ve.Errors, fmt.Sprintf("duplicate special map ID %q", sp.ID))
		}
		seen[sp.ID] = true
		if sp.DoneFlag == "" {
			ve.Errors = append(ve.Errors, fmt.Sprintf("special map %q has no done_flag", sp.ID))
		}
		if other, dup := triggerAges[sp.TriggerAge]; dup {
			ve.Errors = append(ve.Errors, fmt.Sprintf(
				"special maps %q and %q share trigger age %d", other, sp.ID, sp.TriggerAge))
		}
		triggerAges[sp.TriggerAge] = sp.ID
		if len(sp.Nodes) == 0 {
			ve.Errors = append(ve.Errors, fmt.Sprintf("special map %q has no nodes", sp.ID))
		}
		for _, n := range sp.Nodes {
			ev := defs.EventByID(n.EventID)
			if ev == nil {
				ve.Errors = append(ve.Errors, fmt.Sprintf(
					"special map %q node %q references undefined event %q", sp.ID, n.ID, n.EventID))
				continue
			}
			if ev.MinigameRef != "" {
				ve.Errors = append(ve.Errors, fmt.Sprintf(
					"special map %q node %q event %q must offer choices, not a minigame", sp.ID, n.ID, ev.ID))
			}
		}
		for _, p := range sp.Photos {
			if defs.PhotoByID(p.ID) == nil {
				ve.Errors = append(ve.Errors, fmt.Sprintf(
					"special map %q references undefined photo %q", sp.ID, p.ID))
			}
		}
	}
}

// isSpecialNodeEvent reports whether an event is reachable through a special
// map node; those events carry a pseudo-location and skip the location check.
func isSpecialNodeEvent(defs *state.Defs, eventID string) bool {
	for _, sp := range defs.Specials {
		for _, n := range sp.Nodes {
			if n.EventID == eventID {
				return true
			}
		}
	}
	return false
}

// validateFlagUsage warns about flags that are required somewhere but never
// set by any choice, minigame outcome, or sequence completion.
func validateFlagUsage(defs *state.Defs, ve *ValidationError) {
	settable := map[string]bool{}
	for _, ev := range defs.Events {
		for _, c := range ev.Choices {
			for _, f := range c.FlagsToSet {
				settable[f] = true
			}
		}
		for _, f := range ev.SuccessFlags {
			settable[f] = true
		}
		for _, f := range ev.FailureFlags {
			settable[f] = true
		}
	}
	for _, sp := range defs.Specials {
		settable[sp.DoneFlag] = true
	}

	check := func(owner string, flags []string) {
		for _, f := range flags {
			if !settable[f] {
				ve.Warnings = append(ve.Warnings, fmt.Sprintf(
					"%s requires flag %q which nothing sets", owner, f))
			}
		}
	}
	for _, ev := range defs.Events {
		check(fmt.Sprintf("event %q", ev.ID), ev.RequiredFlags)
	}
	for _, e := range defs.Endings {
		check(fmt.Sprintf("ending %q", e.ID), e.Condition.RequiredFlags)
	}
	for _, loc := range defs.Locations {
		if loc.UnlockFlag != "" {
			check(fmt.Sprintf("location %q", loc.ID), []string{loc.UnlockFlag})
		}
	}
}
