package state

import (
	"testing"

	"github.com/marell/teolife/types"
)

func testDefs() *Defs {
	return &Defs{
		Game: types.GameDef{
			Title:   "Test Life",
			Author:  "Tester",
			Version: "0.1.0",
		},
		Locations: []types.LocationDef{
			{ID: "home", Name: "Home", UnlockAge: 0},
			{ID: "school", Name: "School", UnlockAge: 7},
			{ID: "bar", Name: "Bar", UnlockAge: 15},
			{ID: "office", Name: "Office", UnlockAge: 14, UnlockFlag: "open_investment_account"},
		},
		Events: []types.EventDef{
			{ID: "first_day", Location: "school", AgeRange: [2]int{7, 7}},
		},
		Specials: []types.SpecialMapDef{
			{ID: "covid_quarantine", TriggerAge: 11, DoneFlag: "covid_done"},
		},
		Photos: []types.PhotoDef{
			{ID: "first_steps", Caption: "First wobbly steps!", AgeTag: 1},
		},
	}
}

func TestNewState_InitialValues(t *testing.T) {
	s := NewState()

	if s.Age != 0 {
		t.Errorf("expected age 0, got %d", s.Age)
	}
	if s.Act != types.ActChildhood {
		t.Errorf("expected childhood act, got %q", s.Act)
	}
	if s.Day != 0 {
		t.Errorf("expected day 0, got %d", s.Day)
	}
	if s.Stats != (types.Stats{}) {
		t.Errorf("expected zero stats, got %+v", s.Stats)
	}
	if len(s.Flags) != 0 || len(s.EventHistory) != 0 || len(s.UnlockedPhotos) != 0 {
		t.Error("expected empty flags, history, and gallery")
	}
}

func TestGetFlag_UnsetReturnsFalse(t *testing.T) {
	s := NewState()

	if GetFlag(s, "has_phone") {
		t.Error("expected unset flag to be false")
	}
}

func TestSetFlag_Idempotent(t *testing.T) {
	s := NewState()

	SetFlag(s, "visited_australia")
	SetFlag(s, "visited_australia")

	if !GetFlag(s, "visited_australia") {
		t.Error("expected flag to be set")
	}
	if len(s.Flags) != 1 {
		t.Errorf("expected 1 flag, got %d", len(s.Flags))
	}
}

func TestHasAllFlags(t *testing.T) {
	s := NewState()
	SetFlag(s, "has_phone")

	if !HasAllFlags(s, nil) {
		t.Error("empty flag list should be vacuously satisfied")
	}
	if !HasAllFlags(s, []string{"has_phone"}) {
		t.Error("expected has_phone to satisfy")
	}
	if HasAllFlags(s, []string{"has_phone", "got_goldfish"}) {
		t.Error("expected missing flag to fail")
	}
}

func TestRecordEvent_AllowsDuplicates(t *testing.T) {
	s := NewState()

	RecordEvent(s, "grandma_cookies")
	RecordEvent(s, "grandma_cookies")

	if len(s.EventHistory) != 2 {
		t.Errorf("expected 2 history entries, got %d", len(s.EventHistory))
	}
}

func TestUnlockPhoto_DuplicateSafe(t *testing.T) {
	s := NewState()

	UnlockPhoto(s, "first_steps")
	UnlockPhoto(s, "graduation")
	UnlockPhoto(s, "first_steps")

	if len(s.UnlockedPhotos) != 2 {
		t.Fatalf("expected 2 photos, got %d", len(s.UnlockedPhotos))
	}
	if s.UnlockedPhotos[0] != "first_steps" || s.UnlockedPhotos[1] != "graduation" {
		t.Errorf("unlock order not preserved: %v", s.UnlockedPhotos)
	}
}

func TestUnlockPhoto_EmptyIDIgnored(t *testing.T) {
	s := NewState()

	UnlockPhoto(s, "")

	if len(s.UnlockedPhotos) != 0 {
		t.Errorf("expected empty gallery, got %v", s.UnlockedPhotos)
	}
}

func TestUnlockEnding_DuplicateSafe(t *testing.T) {
	s := NewState()

	UnlockEnding(s, "entrepreneur")
	UnlockEnding(s, "entrepreneur")

	if len(s.EndingsSeen) != 1 {
		t.Errorf("expected 1 ending seen, got %d", len(s.EndingsSeen))
	}
}

func TestLocationUnlocked_ByAge(t *testing.T) {
	defs := testDefs()
	s := NewState()
	s.Age = 10

	if !LocationUnlocked(s, defs.LocationByID("home")) {
		t.Error("home should always be unlocked")
	}
	if !LocationUnlocked(s, defs.LocationByID("school")) {
		t.Error("school should be unlocked at age 10")
	}
	if LocationUnlocked(s, defs.LocationByID("bar")) {
		t.Error("bar should be locked until 15")
	}
}

func TestLocationUnlocked_ByFlag(t *testing.T) {
	defs := testDefs()
	s := NewState()
	s.Age = 16
	office := defs.LocationByID("office")

	if LocationUnlocked(s, office) {
		t.Error("office should require open_investment_account")
	}
	SetFlag(s, "open_investment_account")
	if !LocationUnlocked(s, office) {
		t.Error("office should unlock once the flag is set")
	}
}

func TestDefs_Lookups(t *testing.T) {
	defs := testDefs()

	if ev := defs.EventByID("first_day"); ev == nil || ev.Location != "school" {
		t.Errorf("EventByID returned %+v", defs.EventByID("first_day"))
	}
	if defs.EventByID("missing") != nil {
		t.Error("expected nil for unknown event")
	}
	if sp := defs.SpecialForAge(11); sp == nil || sp.ID != "covid_quarantine" {
		t.Error("expected covid map at trigger age 11")
	}
	if defs.SpecialForAge(12) != nil {
		t.Error("expected no special at age 12")
	}
	if p := defs.PhotoByID("first_steps"); p == nil || p.AgeTag != 1 {
		t.Error("PhotoByID lookup failed")
	}
}
