// Package effects is the single place where event outcomes mutate the game
// state. Both choice resolution and minigame completion funnel through here
// so the stat clamp, history, flags and photo unlocks always happen together.
package effects

import (
	"fmt"

	"github.com/marell/teolife/engine/resolve"
	"github.com/marell/teolife/engine/state"
	"github.com/marell/teolife/types"
)

// ApplyChoice commits a chosen outcome: stat deltas, history record, flags
// and photo unlocks. Validation happens before any mutation, so an error
// leaves the state untouched. Picking a stat-gated choice the player does
// not qualify for is a caller bug, not a game state.
func ApplyChoice(s *types.State, ev *types.EventDef, choice *types.Choice) error {
	if ev == nil || choice == nil {
		return fmt.Errorf("effects: nil event or choice")
	}
	if !resolve.ChoiceAvailable(s, choice) {
		return fmt.Errorf("effects: choice %q of event %q requires %s >= %d",
			choice.ID, ev.ID, choice.RequiredStat.Stat, choice.RequiredStat.Min)
	}

	s.Stats = state.ApplyDeltas(s.Stats, choice.Deltas)
	d := choice.Deltas
	s.LastDeltas = &d
	state.RecordEvent(s, ev.ID)
	for _, f := range choice.FlagsToSet {
		state.SetFlag(s, f)
	}
	state.UnlockPhoto(s, choice.PhotoUnlock)
	for _, p := range ev.PhotoUnlocks {
		state.UnlockPhoto(s, p)
	}
	return nil
}

// ApplyMinigameResult commits the outcome of a finished minigame. The
// originating event may be nil when the minigame was launched directly
// (script mode, tests); flags and photos tied to the event are then skipped.
func ApplyMinigameResult(s *types.State, ev *types.EventDef, result types.MinigameResult) {
	s.Stats = state.ApplyDeltas(s.Stats, result.Deltas)
	d := result.Deltas
	s.LastDeltas = &d
	if ev != nil {
		state.RecordEvent(s, ev.ID)
		if result.Success {
			for _, f := range ev.SuccessFlags {
				state.SetFlag(s, f)
			}
			for _, p := range ev.PhotoUnlocks {
				state.UnlockPhoto(s, p)
			}
		} else {
			for _, f := range ev.FailureFlags {
				state.SetFlag(s, f)
			}
		}
	}
	s.ActiveMinigame = ""
}
