package loader

import (
	"strings"
	"testing"

	"github.com/marell/teolife/types"
)

func TestLoadMinimalGame(t *testing.T) {
	defs, err := Load("testdata/minimal")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if defs.Game.Title != "Minimal Life" {
		t.Errorf("Title = %q, want %q", defs.Game.Title, "Minimal Life")
	}
	if len(defs.Locations) != 1 || defs.Locations[0].ID != "home" {
		t.Fatalf("Locations = %v, want [home]", defs.Locations)
	}
	ev := defs.EventByID("first_steps")
	if ev == nil {
		t.Fatal("event first_steps not found")
	}
	if ev.AgeRange != [2]int{0, 2} {
		t.Errorf("AgeRange = %v, want {0 2}", ev.AgeRange)
	}
	if len(ev.Choices) != 1 {
		t.Fatalf("Choices = %d, want 1", len(ev.Choices))
	}
	walk := ev.Choices[0]
	if walk.ID != "walk" || walk.Deltas.Ambition != 5 || walk.Deltas.Relations != 2 {
		t.Errorf("choice = %+v", walk)
	}
	if walk.PhotoUnlock != "first_steps" {
		t.Errorf("PhotoUnlock = %q, want first_steps", walk.PhotoUnlock)
	}
	if len(defs.Endings) != 1 || defs.Endings[0].ID != "balanced" {
		t.Errorf("Endings = %v, want [balanced]", defs.Endings)
	}
}

func TestLoadFullGame(t *testing.T) {
	defs, err := Load("testdata/full")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if defs.Game.Author != "Tester" || defs.Game.Version != "1.0" {
		t.Errorf("game metadata = %+v", defs.Game)
	}

	// Locations, including the flag-gated office.
	if len(defs.Locations) != 3 {
		t.Fatalf("Locations = %d, want 3", len(defs.Locations))
	}
	office := defs.LocationByID("office")
	if office == nil || office.UnlockAge != 14 || office.UnlockFlag != "open_investment_account" {
		t.Errorf("office = %+v", office)
	}

	// Catalog order matches declaration order within events.lua.
	if len(defs.Events) != 6 {
		t.Fatalf("Events = %d, want 6", len(defs.Events))
	}
	if defs.Events[0].ID != "first_steps" || defs.Events[1].ID != "science_fair" {
		t.Errorf("event order = %q, %q; want first_steps, science_fair",
			defs.Events[0].ID, defs.Events[1].ID)
	}
	for i, ev := range defs.Events {
		if ev.SourceOrder != i {
			t.Errorf("event %q SourceOrder = %d, want %d", ev.ID, ev.SourceOrder, i)
		}
	}

	// Flag gate and stat gate.
	fair := defs.EventByID("science_fair")
	if len(fair.RequiredFlags) != 1 || fair.RequiredFlags[0] != "joined_science_club" {
		t.Errorf("RequiredFlags = %v", fair.RequiredFlags)
	}
	present := fair.Choices[0]
	if present.RequiredStat == nil || present.RequiredStat.Stat != "ambition" || present.RequiredStat.Min != 20 {
		t.Errorf("RequiredStat = %+v, want ambition >= 20", present.RequiredStat)
	}
	if fair.Choices[1].RequiredStat != nil {
		t.Error("ungated choice compiled with a gate")
	}

	// Minigame event with outcome flags.
	pitch := defs.EventByID("talk_to_parents")
	if pitch.MinigameRef != "convince_parents" {
		t.Errorf("MinigameRef = %q", pitch.MinigameRef)
	}
	if len(pitch.Choices) != 0 {
		t.Errorf("minigame event has %d choices, want 0", len(pitch.Choices))
	}
	if len(pitch.SuccessFlags) != 1 || pitch.SuccessFlags[0] != "open_investment_account" {
		t.Errorf("SuccessFlags = %v", pitch.SuccessFlags)
	}
	if len(pitch.FailureFlags) != 1 || pitch.FailureFlags[0] != "needs_more_trust" {
		t.Errorf("FailureFlags = %v", pitch.FailureFlags)
	}

	// Endings with bounds and flags.
	buffalo := findEnding(t, defs.Endings, "buffalo_soldier")
	if buffalo.Weight != 3 {
		t.Errorf("buffalo weight = %d, want 3", buffalo.Weight)
	}
	if buffalo.Condition.ChaosMin == nil || *buffalo.Condition.ChaosMin != 40 {
		t.Errorf("buffalo ChaosMin = %v, want 40", buffalo.Condition.ChaosMin)
	}
	if buffalo.Condition.AmbitionMin != nil {
		t.Error("absent bound compiled as non-nil")
	}
	balanced := findEnding(t, defs.Endings, "balanced")
	if balanced.Condition.ChaosMax != nil || len(balanced.Condition.RequiredFlags) != 0 {
		t.Errorf("fallback condition not empty: %+v", balanced.Condition)
	}

	// Special map with resolved photo metadata.
	if len(defs.Specials) != 1 {
		t.Fatalf("Specials = %d, want 1", len(defs.Specials))
	}
	covid := defs.Specials[0]
	if covid.TriggerAge != 11 || covid.DoneFlag != "covid_done" {
		t.Errorf("covid = %+v", covid)
	}
	if len(covid.Nodes) != 2 || covid.Nodes[0].EventID != "covid_isolation" {
		t.Errorf("nodes = %+v", covid.Nodes)
	}
	if len(covid.Photos) != 1 || covid.Photos[0].Caption != "The quarantine loaf" {
		t.Errorf("special photos = %+v, want resolved caption", covid.Photos)
	}
}

func findEnding(t *testing.T, endings []types.EndingDef, id string) types.EndingDef {
	t.Helper()
	for _, e := range endings {
		if e.ID == id {
			return e
		}
	}
	t.Fatalf("ending %q not found", id)
	return types.EndingDef{}
}

func TestLoadMissingDir(t *testing.T) {
	if _, err := Load("testdata/no_such_dir"); err == nil {
		t.Error("Load of missing directory returned nil error")
	}
}

func TestLoadEmptyDir(t *testing.T) {
	dir := t.TempDir()
	_, err := Load(dir)
	if err == nil || !strings.Contains(err.Error(), "no .lua files") {
		t.Errorf("Load of empty dir = %v, want no-files error", err)
	}
}

func TestLoadBrokenLua(t *testing.T) {
	_, err := Load("testdata/broken")
	if err == nil {
		t.Fatal("Load of broken Lua returned nil error")
	}
	if !strings.Contains(err.Error(), "game.lua") {
		t.Errorf("error does not name the failing file: %v", err)
	}
}

func TestLoadInvalidReferences(t *testing.T) {
	_, err := Load("testdata/invalid")
	if err == nil {
		t.Fatal("Load with dangling photo reference returned nil error")
	}
	ve, ok := err.(*ValidationError)
	if !ok {
		t.Fatalf("error type = %T, want *ValidationError", err)
	}
	found := false
	for _, e := range ve.Errors {
		if strings.Contains(e, "no_such_photo") {
			found = true
		}
	}
	if !found {
		t.Errorf("errors %v do not mention the dangling photo", ve.Errors)
	}
}

func TestSortedLuaFiles(t *testing.T) {
	got := sortedLuaFiles([]string{"specials.lua", "events.lua", "game.lua", "endings.lua"})
	if got[0] != "game.lua" {
		t.Errorf("first file = %q, want game.lua", got[0])
	}
	if got[1] != "endings.lua" || got[2] != "events.lua" || got[3] != "specials.lua" {
		t.Errorf("rest not alphabetical: %v", got)
	}
}
