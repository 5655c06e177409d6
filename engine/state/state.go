// Package state manages the mutable session state and the immutable game
// definitions compiled from Lua content.
package state

import "github.com/marell/teolife/types"

// Defs holds the immutable game definitions loaded from Lua. Catalog slices
// preserve declaration order — lookup policies depend on it.
type Defs struct {
	Game      types.GameDef
	Locations []types.LocationDef
	Events    []types.EventDef
	Endings   []types.EndingDef
	Specials  []types.SpecialMapDef
	Photos    []types.PhotoDef
}

// EventByID returns the event definition with the given ID, or nil.
func (d *Defs) EventByID(id string) *types.EventDef {
	for i := range d.Events {
		if d.Events[i].ID == id {
			return &d.Events[i]
		}
	}
	return nil
}

// LocationByID returns the location definition with the given ID, or nil.
func (d *Defs) LocationByID(id string) *types.LocationDef {
	for i := range d.Locations {
		if d.Locations[i].ID == id {
			return &d.Locations[i]
		}
	}
	return nil
}

// SpecialByID returns the special map definition with the given ID, or nil.
func (d *Defs) SpecialByID(id string) *types.SpecialMapDef {
	for i := range d.Specials {
		if d.Specials[i].ID == id {
			return &d.Specials[i]
		}
	}
	return nil
}

// SpecialForAge returns the special map triggered at the given age, or nil.
func (d *Defs) SpecialForAge(age int) *types.SpecialMapDef {
	for i := range d.Specials {
		if d.Specials[i].TriggerAge == age {
			return &d.Specials[i]
		}
	}
	return nil
}

// PhotoByID returns the photo definition with the given ID, or nil.
func (d *Defs) PhotoByID(id string) *types.PhotoDef {
	for i := range d.Photos {
		if d.Photos[i].ID == id {
			return &d.Photos[i]
		}
	}
	return nil
}

// NewState creates a fresh session state: age 0, childhood, all stats zero,
// empty flags, history, and galleries.
func NewState() *types.State {
	return &types.State{
		Stats:          types.Stats{},
		Age:            0,
		Act:            types.ActChildhood,
		Day:            0,
		Phase:          types.PhaseTitle,
		Flags:          map[string]bool{},
		EventHistory:   []string{},
		UnlockedPhotos: []string{},
		EndingsSeen:    []string{},
	}
}

// GetFlag returns the value of a flag. Unset flags return false.
func GetFlag(s *types.State, name string) bool {
	return s.Flags[name]
}

// SetFlag sets a flag. Setting an already-set flag is a no-op; flags are
// never deleted within a session.
func SetFlag(s *types.State, name string) {
	s.Flags[name] = true
}

// HasAllFlags reports whether every named flag is set. An empty list is
// vacuously satisfied.
func HasAllFlags(s *types.State, names []string) bool {
	for _, name := range names {
		if !s.Flags[name] {
			return false
		}
	}
	return true
}

// RecordEvent appends an event ID to the history. Duplicates are allowed;
// order is completion order.
func RecordEvent(s *types.State, eventID string) {
	s.EventHistory = append(s.EventHistory, eventID)
}

// UnlockPhoto adds a photo ID to the gallery. Already-unlocked photos keep
// their first-unlock position.
func UnlockPhoto(s *types.State, photoID string) {
	if photoID == "" {
		return
	}
	for _, id := range s.UnlockedPhotos {
		if id == photoID {
			return
		}
	}
	s.UnlockedPhotos = append(s.UnlockedPhotos, photoID)
}

// UnlockEnding records an ending as seen for the gallery. Duplicate-safe.
func UnlockEnding(s *types.State, endingID string) {
	for _, id := range s.EndingsSeen {
		if id == endingID {
			return
		}
	}
	s.EndingsSeen = append(s.EndingsSeen, endingID)
}

// LocationUnlocked reports whether a location is open at the current age and
// flag state.
func LocationUnlocked(s *types.State, loc *types.LocationDef) bool {
	if s.Age < loc.UnlockAge {
		return false
	}
	if loc.UnlockFlag != "" && !s.Flags[loc.UnlockFlag] {
		return false
	}
	return true
}
