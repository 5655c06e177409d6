// Package types defines the shared data structures for the Teo life-sim engine.
// This package contains only type definitions — no logic, no methods.
package types

// Act is the coarse narrative phase, derived purely from age.
type Act string

const (
	ActChildhood Act = "childhood" // ages 0-6
	ActSchool    Act = "school"    // ages 7-12
	ActTeenage   Act = "teenage"   // ages 13-17
	ActEnding    Act = "ending"    // age 18
)

// Phase is the session's presentation phase.
type Phase string

const (
	PhaseTitle    Phase = "title"
	PhaseMap      Phase = "map"
	PhaseDialogue Phase = "dialogue"
	PhaseMinigame Phase = "minigame"
	PhaseSpecial  Phase = "special_event"
	PhaseEnding   Phase = "ending"
)

// Stats is the three-axis character state, each axis clamped to [0,100].
type Stats struct {
	Ambition  int
	Chaos     int
	Relations int
}

// Deltas is a signed adjustment to one or more stats. Zero fields are no-ops.
type Deltas struct {
	Ambition  int
	Chaos     int
	Relations int
}

// MinigameResult is the uniform contract every minigame terminates with.
type MinigameResult struct {
	Success  bool
	Deltas   Deltas
	Metadata map[string]any
}

// StatGate requires a minimum value on one stat before a choice is offered.
type StatGate struct {
	Stat string // "ambition", "chaos", "relations"
	Min  int
}

// Choice is one dialogue option within an event.
type Choice struct {
	ID           string
	Text         string
	RequiredStat *StatGate
	Deltas       Deltas
	FlagsToSet   []string
	PhotoUnlock  string
}

// EventDef is a static catalog entry: a narrative beat tied to a location and
// an inclusive age range, offering either choices or a minigame.
type EventDef struct {
	ID            string
	Location      string
	AgeRange      [2]int
	RequiredFlags []string
	Title         string
	Description   string
	Choices       []Choice
	MinigameRef   string
	PhotoUnlocks  []string
	// Flags the session applies when a referenced minigame finishes.
	SuccessFlags []string
	FailureFlags []string
	SourceOrder  int
}

// EndingCondition bounds final stats and flags. Absent bounds (nil) are
// vacuously satisfied; an empty condition matches anything.
type EndingCondition struct {
	AmbitionMin   *int
	AmbitionMax   *int
	ChaosMin      *int
	ChaosMax      *int
	RelationsMin  *int
	RelationsMax  *int
	RequiredFlags []string
}

// EndingDef is a terminal narrative summary selected by rule matching.
type EndingDef struct {
	ID          string
	Title       string
	Summary     string
	Condition   EndingCondition
	Weight      int
	SourceOrder int
}

// MapNode is one dialogue node inside a special event map.
type MapNode struct {
	ID      string
	Label   string
	X, Y    int
	EventID string
	Icon    string
}

// SpecialMapDef is an unskippable age-triggered mini-map of forced content.
type SpecialMapDef struct {
	ID         string
	Name       string
	TriggerAge int
	DoneFlag   string
	Nodes      []MapNode
	Photos     []PhotoDef
}

// PhotoDef describes an unlockable scrapbook photo.
type PhotoDef struct {
	ID      string
	Caption string
	AgeTag  int
}

// LocationDef is a visitable spot on the city map.
type LocationDef struct {
	ID         string
	Name       string
	Icon       string
	UnlockAge  int
	UnlockFlag string
	X, Y       int
}

// GameDef holds game metadata from Lua.
type GameDef struct {
	Title   string
	Author  string
	Version string
	Intro   string
}

// SpecialProgress tracks one in-progress special event sequence.
type SpecialProgress struct {
	MapID   string
	Visited map[string]bool // node event IDs already played
}

// State is the complete mutable session state.
type State struct {
	Stats           Stats
	Age             int
	Act             Act
	Day             int
	Phase           Phase
	CurrentLocation string
	ActiveEventID   string
	ActiveMinigame  string
	ActiveSpecial   *SpecialProgress
	Flags           map[string]bool
	EventHistory    []string
	UnlockedPhotos  []string
	EndingsSeen     []string
	LastDeltas      *Deltas
	RNGSeed         int64
}
