// Package snapshot renders the session state as JSON for the /state debug
// command. It is a diagnostic view, not a save format; sessions are
// memory-only and reset with the process.
package snapshot

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/marell/teolife/types"
)

// Snapshot is the debug view of a session.
type Snapshot struct {
	Stats           types.Stats            `json:"stats"`
	Age             int                    `json:"age"`
	Act             types.Act              `json:"act"`
	Day             int                    `json:"day"`
	Phase           types.Phase            `json:"phase"`
	CurrentLocation string                 `json:"current_location,omitempty"`
	ActiveEventID   string                 `json:"active_event,omitempty"`
	ActiveMinigame  string                 `json:"active_minigame,omitempty"`
	ActiveSpecial   *types.SpecialProgress `json:"active_special,omitempty"`
	Flags           []string               `json:"flags"`
	EventHistory    []string               `json:"event_history"`
	UnlockedPhotos  []string               `json:"unlocked_photos"`
	EndingsSeen     []string               `json:"endings_seen"`
	RNGSeed         int64                  `json:"rng_seed"`
	RNGPosition     int64                  `json:"rng_position"`
}

// Capture builds a snapshot from live state. Flag set order is not tracked,
// so flags come out sorted for stable output.
func Capture(s *types.State, rngPos int64) Snapshot {
	return Snapshot{
		Stats:           s.Stats,
		Age:             s.Age,
		Act:             s.Act,
		Day:             s.Day,
		Phase:           s.Phase,
		CurrentLocation: s.CurrentLocation,
		ActiveEventID:   s.ActiveEventID,
		ActiveMinigame:  s.ActiveMinigame,
		ActiveSpecial:   s.ActiveSpecial,
		Flags:           sortedFlags(s.Flags),
		EventHistory:    s.EventHistory,
		UnlockedPhotos:  s.UnlockedPhotos,
		EndingsSeen:     s.EndingsSeen,
		RNGSeed:         s.RNGSeed,
		RNGPosition:     rngPos,
	}
}

// Dump renders the snapshot as indented JSON.
func Dump(s *types.State, rngPos int64) (string, error) {
	b, err := json.MarshalIndent(Capture(s, rngPos), "", "  ")
	if err != nil {
		return "", fmt.Errorf("snapshot: %w", err)
	}
	return string(b), nil
}

func sortedFlags(flags map[string]bool) []string {
	out := make([]string, 0, len(flags))
	for name, set := range flags {
		if set {
			out = append(out, name)
		}
	}
	sort.Strings(out)
	return out
}
