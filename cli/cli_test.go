package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/marell/teolife/engine"
	"github.com/marell/teolife/engine/state"
	"github.com/marell/teolife/types"
)

// testDefs returns minimal game definitions for CLI testing.
func testDefs() *state.Defs {
	return &state.Defs{
		Game: types.GameDef{
			Title:   "Test Life",
			Author:  "Test",
			Version: "1.0",
			Intro:   "Welcome to a small life.",
		},
		Locations: []types.LocationDef{
			{ID: "home", Name: "Home", Icon: "H", UnlockAge: 0},
			{ID: "school", Name: "School", Icon: "S", UnlockAge: 7},
		},
		Events: []types.EventDef{
			{
				ID:       "first_steps",
				Location: "home",
				AgeRange: [2]int{0, 6},
				Title:    "First Steps",
				Choices: []types.Choice{
					{ID: "walk", Text: "Take a wobbly step", Deltas: types.Deltas{Ambition: 5, Relations: 2}},
					{ID: "crawl", Text: "Keep crawling", Deltas: types.Deltas{Chaos: 1}},
					{
						ID:           "sprint",
						Text:         "Sprint across the room",
						RequiredStat: &types.StatGate{Stat: "ambition", Min: 50},
						Deltas:       types.Deltas{Ambition: 3},
					},
				},
			},
			{
				ID:          "wobble",
				Location:    "school",
				AgeRange:    [2]int{7, 10},
				Title:       "Balance Practice",
				Description: "Stay upright.",
				MinigameRef: "balance_walk",
			},
		},
		Endings: []types.EndingDef{
			{ID: "balanced", Title: "The Renaissance Kid", Summary: "A quiet, good life.", Weight: 0},
		},
	}
}

func newTestCLI(t *testing.T, input string) (*CLI, *bytes.Buffer) {
	t.Helper()
	sess := engine.NewSession(testDefs(), 42, engine.DefaultPacing())
	var out bytes.Buffer
	c := &CLI{
		Session: sess,
		In:      strings.NewReader(input),
		Out:     &out,
	}
	return c, &out
}

func TestCLIIntroAndMap(t *testing.T) {
	c, out := newTestCLI(t, "/quit\n")
	c.Run()

	output := out.String()
	if !strings.Contains(output, "Welcome to a small life.") {
		t.Error("expected intro text in output")
	}
	if !strings.Contains(output, "Home") {
		t.Error("expected unlocked location on the map")
	}
	if strings.Contains(output, "School") {
		t.Error("locked location should not be listed at age 0")
	}
}

func TestCLIVisitAndChoose(t *testing.T) {
	c, out := newTestCLI(t, "visit home\n1\n/quit\n")
	c.Run()

	output := out.String()
	if !strings.Contains(output, "First Steps") {
		t.Error("expected event title after visiting home")
	}
	if !strings.Contains(output, "ambition +5") {
		t.Errorf("expected delta report after choosing, got:\n%s", output)
	}
	if got := c.Session.State.Stats.Ambition; got != 5 {
		t.Errorf("ambition = %d, want 5", got)
	}
}

func TestCLIGatedChoiceHidden(t *testing.T) {
	c, out := newTestCLI(t, "visit home\n/quit\n")
	c.Run()

	output := out.String()
	if strings.Contains(output, "Sprint across the room") {
		t.Error("choice gated on ambition 50 should be hidden at ambition 0")
	}
	if !strings.Contains(output, "2. Keep crawling") {
		t.Error("visible choices should be numbered without the hidden one")
	}
}

func TestCLIVisitLocked(t *testing.T) {
	c, out := newTestCLI(t, "visit school\n/quit\n")
	c.Run()

	if !strings.Contains(out.String(), "locked") {
		t.Error("expected lock message for an age-gated location")
	}
}

func TestCLIVisitNothingHere(t *testing.T) {
	c, out := newTestCLI(t, "/age 7\nvisit home\n/quit\n")
	c.Run()

	if !strings.Contains(out.String(), "Nothing is happening here") {
		t.Error("expected the nothing-here message when no event matches")
	}
}

func TestCLIReflexMinigame(t *testing.T) {
	// Visiting school at 7 arms the balance game; one Enter plays it.
	c, out := newTestCLI(t, "/age 7\nvisit school\n\n/quit\n")
	c.Run()

	output := out.String()
	if !strings.Contains(output, "Balance Practice") {
		t.Error("expected minigame event title")
	}
	if c.Session.State.ActiveMinigame != "" {
		t.Error("minigame should be cleared after playing")
	}
	if len(c.Session.State.EventHistory) != 1 {
		t.Errorf("event history = %v, want the minigame event recorded", c.Session.State.EventHistory)
	}
}

func TestCLIWait(t *testing.T) {
	c, _ := newTestCLI(t, "wait 3\n/quit\n")
	c.Run()

	if got := c.Session.State.Day; got != 3 {
		t.Errorf("day = %d, want 3", got)
	}
}

func TestCLIAgeToEnding(t *testing.T) {
	c, out := newTestCLI(t, "/age 18\n/quit\n")
	c.Run()

	output := out.String()
	if !strings.Contains(output, "The Renaissance Kid") {
		t.Errorf("expected ending title at age 18, got:\n%s", output)
	}
	if !strings.Contains(output, "Life score:") {
		t.Error("expected life score with the ending")
	}
}

func TestCLIAgeRejectsInvalid(t *testing.T) {
	c, out := newTestCLI(t, "/age 99\n/quit\n")
	c.Run()

	if !strings.Contains(out.String(), "age") {
		t.Error("expected an error message for an out-of-range age")
	}
	if c.Session.State.Age != 0 {
		t.Errorf("age = %d, want unchanged 0", c.Session.State.Age)
	}
}

func TestCLIReset(t *testing.T) {
	c, out := newTestCLI(t, "visit home\n1\n/reset\n/quit\n")
	c.Run()

	if !strings.Contains(out.String(), "A new life begins.") {
		t.Error("expected reset confirmation")
	}
	if c.Session.State.Stats.Ambition != 0 {
		t.Errorf("ambition = %d after reset, want 0", c.Session.State.Stats.Ambition)
	}
}

func TestCLIHelpCommand(t *testing.T) {
	c, out := newTestCLI(t, "/help\n/quit\n")
	c.Run()

	output := out.String()
	for _, want := range []string{"/reset", "/quit", "/state", "visit"} {
		if !strings.Contains(output, want) {
			t.Errorf("expected %q in help output", want)
		}
	}
}

func TestCLIStateCommand(t *testing.T) {
	c, out := newTestCLI(t, "/state\n/quit\n")
	c.Run()

	output := out.String()
	if !strings.Contains(output, `"age": 0`) {
		t.Error("expected JSON age field in state dump")
	}
	if !strings.Contains(output, `"rng_seed": 42`) {
		t.Error("expected RNG seed in state dump")
	}
}

func TestCLIUnknownMetaCommand(t *testing.T) {
	c, out := newTestCLI(t, "/bogus\n/quit\n")
	c.Run()

	if !strings.Contains(out.String(), "Unknown command") {
		t.Error("expected unknown command message")
	}
}

func TestCLIUnknownVerb(t *testing.T) {
	c, out := newTestCLI(t, "frobnicate\n/quit\n")
	c.Run()

	if !strings.Contains(out.String(), "I don't know how to do that") {
		t.Error("expected unknown verb message")
	}
}

func TestCLIEmptyAndCommentLines(t *testing.T) {
	c, out := newTestCLI(t, "\n# a script comment\n\n/quit\n")
	c.Run()

	if strings.Contains(out.String(), "I don't know") {
		t.Error("empty and comment lines should be silently skipped")
	}
}

func TestCLIPhotosEmpty(t *testing.T) {
	c, out := newTestCLI(t, "photos\n/quit\n")
	c.Run()

	if !strings.Contains(out.String(), "scrapbook is empty") {
		t.Error("expected empty scrapbook message")
	}
}
