// Package engine orchestrates a single game session: one state, one
// deterministic RNG, one set of compiled definitions. All operations are
// synchronous; the session is owned by a single goroutine (the front-end).
package engine

import (
	"fmt"

	"github.com/marell/teolife/engine/effects"
	"github.com/marell/teolife/engine/ending"
	"github.com/marell/teolife/engine/minigame"
	"github.com/marell/teolife/engine/progress"
	"github.com/marell/teolife/engine/resolve"
	"github.com/marell/teolife/engine/special"
	"github.com/marell/teolife/engine/state"
	"github.com/marell/teolife/types"
)

// Pacing controls the session calendar.
type Pacing struct {
	DaysPerVisit int
	DaysPerYear  int
	AutoAdvance  bool // roll the age over when a year's days are spent
}

// DefaultPacing mirrors the shipped game's rhythm.
func DefaultPacing() Pacing {
	return Pacing{DaysPerVisit: 5, DaysPerYear: 60, AutoAdvance: false}
}

// Session is one playthrough from birth to ending.
type Session struct {
	Defs   *state.Defs
	State  *types.State
	RNG    *RNG
	Pacing Pacing

	seed int64
}

// NewSession creates a session over compiled definitions. The state starts
// in the title phase; call StartGame to begin living.
func NewSession(defs *state.Defs, seed int64, pacing Pacing) *Session {
	s := &Session{
		Defs:   defs,
		State:  state.NewState(),
		RNG:    NewRNG(seed),
		Pacing: pacing,
		seed:   seed,
	}
	s.State.RNGSeed = seed
	return s
}

// StartGame leaves the title screen and opens the city map.
func (s *Session) StartGame() {
	if s.State.Phase == types.PhaseTitle {
		s.State.Phase = types.PhaseMap
	}
}

// ResetGame discards the life in progress: fresh state, reseeded RNG.
func (s *Session) ResetGame() {
	s.State = state.NewState()
	s.State.RNGSeed = s.seed
	s.RNG = NewRNG(s.seed)
}

// EnterLocation visits a location on the city map. Each visit costs days.
// The returned event is nil when nothing is happening there; minigame
// events arm the active minigame instead of presenting choices.
func (s *Session) EnterLocation(locationID string) (*types.EventDef, error) {
	if s.State.Phase != types.PhaseMap {
		return nil, fmt.Errorf("engine: cannot travel during phase %q", s.State.Phase)
	}
	loc := s.Defs.LocationByID(locationID)
	if loc == nil {
		return nil, fmt.Errorf("engine: unknown location %q", locationID)
	}
	if !state.LocationUnlocked(s.State, loc) {
		return nil, fmt.Errorf("engine: %s is locked at age %d", loc.Name, s.State.Age)
	}
	s.State.CurrentLocation = locationID
	s.spendDays(s.Pacing.DaysPerVisit)
	if s.State.Phase != types.PhaseMap {
		// Auto-advance rolled the age over mid-visit and the age hook
		// took the session elsewhere (a special sequence, or the ending).
		return nil, nil
	}

	ev := resolve.FindApplicable(s.Defs, s.State, locationID)
	if ev == nil {
		s.State.ActiveEventID = ""
		return nil, nil
	}
	s.State.ActiveEventID = ev.ID
	if ev.MinigameRef != "" {
		if !minigame.Known(ev.MinigameRef) {
			return nil, fmt.Errorf("engine: event %q references unknown minigame %q", ev.ID, ev.MinigameRef)
		}
		s.State.ActiveMinigame = ev.MinigameRef
		s.State.Phase = types.PhaseMinigame
	} else {
		s.State.Phase = types.PhaseDialogue
	}
	return ev, nil
}

// ResolveChoice commits a choice of the active dialogue event and returns
// to the map.
func (s *Session) ResolveChoice(eventID, choiceID string) error {
	ev := s.Defs.EventByID(eventID)
	if ev == nil {
		return fmt.Errorf("engine: unknown event %q", eventID)
	}
	choice := resolve.FindChoice(ev, choiceID)
	if choice == nil {
		return fmt.Errorf("engine: event %q has no choice %q", eventID, choiceID)
	}
	if err := effects.ApplyChoice(s.State, ev, choice); err != nil {
		return err
	}
	s.State.ActiveEventID = ""
	if s.State.Phase == types.PhaseDialogue {
		s.State.Phase = types.PhaseMap
	}
	return nil
}

// ApplyMinigameResult commits a finished minigame and returns to the map.
func (s *Session) ApplyMinigameResult(result types.MinigameResult) error {
	if s.State.ActiveMinigame == "" {
		return fmt.Errorf("engine: no minigame active")
	}
	ev := s.Defs.EventByID(s.State.ActiveEventID)
	effects.ApplyMinigameResult(s.State, ev, result)
	s.State.ActiveEventID = ""
	s.State.Phase = types.PhaseMap
	return nil
}

// AdvanceAge moves one year forward and runs the age hooks: special
// sequences open at their trigger ages, and age 18 ends the story.
func (s *Session) AdvanceAge() {
	progress.AdvanceAge(s.State)
	s.afterAgeChange()
}

// SetAge jumps to an arbitrary age (debug panel). Invalid ages error and
// change nothing.
func (s *Session) SetAge(age int) error {
	if err := progress.SetAge(s.State, age); err != nil {
		return err
	}
	s.afterAgeChange()
	return nil
}

// AdvanceDays burns days without visiting anywhere.
func (s *Session) AdvanceDays(n int) {
	s.spendDays(n)
}

func (s *Session) spendDays(n int) {
	progress.AdvanceDays(s.State, n)
	for s.Pacing.AutoAdvance && s.Pacing.DaysPerYear > 0 &&
		s.State.Day >= s.Pacing.DaysPerYear && s.State.Age < progress.MaxAge {
		carry := s.State.Day - s.Pacing.DaysPerYear
		s.AdvanceAge()
		s.State.Day = carry
		if s.State.Phase != types.PhaseMap {
			break
		}
	}
}

func (s *Session) afterAgeChange() {
	if s.State.Age >= progress.MaxAge {
		s.State.Phase = types.PhaseEnding
		return
	}
	if def := special.ShouldTrigger(s.Defs, s.State); def != nil {
		special.Begin(s.State, def)
	}
}

// ActiveSpecial returns the definition of the sequence in progress, or nil.
func (s *Session) ActiveSpecial() *types.SpecialMapDef {
	if s.State.ActiveSpecial == nil {
		return nil
	}
	return s.Defs.SpecialByID(s.State.ActiveSpecial.MapID)
}

// VisitSpecialNode plays one node of the active special sequence. When the
// last node completes the sequence, the session is back on the map.
func (s *Session) VisitSpecialNode(nodeID, choiceID string) error {
	return special.VisitNode(s.Defs, s.State, nodeID, choiceID)
}

// ResolveEnding picks the ending for the finished life and records it in
// the gallery.
func (s *Session) ResolveEnding() (*types.EndingDef, error) {
	e := ending.Resolve(s.Defs, s.State)
	if e == nil {
		return nil, fmt.Errorf("engine: no ending matched; catalog needs a fallback")
	}
	state.UnlockEnding(s.State, e.ID)
	s.State.Phase = types.PhaseEnding
	return e, nil
}

// LifeScore condenses the current stats into the 0..18 scrapbook score.
func (s *Session) LifeScore() int {
	return ending.LifeScore(s.State.Stats)
}

// UnlockedLocations lists the map spots currently open to the player, in
// catalog order.
func (s *Session) UnlockedLocations() []types.LocationDef {
	var out []types.LocationDef
	for _, loc := range s.Defs.Locations {
		if state.LocationUnlocked(s.State, &loc) {
			out = append(out, loc)
		}
	}
	return out
}
