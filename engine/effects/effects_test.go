package effects

import (
	"testing"

	"github.com/marell/teolife/engine/state"
	"github.com/marell/teolife/types"
)

func testEvent() *types.EventDef {
	return &types.EventDef{
		ID:       "lemonade_stand",
		Location: "home",
		AgeRange: [2]int{5, 8},
		Choices: []types.Choice{
			{
				ID:          "sell_hard",
				Text:        "Push sales all afternoon",
				Deltas:      types.Deltas{Ambition: 3, Relations: 1},
				FlagsToSet:  []string{"first_money"},
				PhotoUnlock: "lemonade_photo",
			},
			{
				ID:           "franchise",
				Text:         "Open a second stand",
				RequiredStat: &types.StatGate{Stat: "ambition", Min: 50},
				Deltas:       types.Deltas{Ambition: 5},
			},
		},
	}
}

func TestApplyChoice(t *testing.T) {
	s := state.NewState()
	ev := testEvent()
	if err := ApplyChoice(s, ev, &ev.Choices[0]); err != nil {
		t.Fatalf("ApplyChoice returned error: %v", err)
	}
	if s.Stats.Ambition != 3 || s.Stats.Relations != 1 {
		t.Errorf("stats = %+v, want ambition 3 relations 1", s.Stats)
	}
	if !state.GetFlag(s, "first_money") {
		t.Error("flag first_money not set")
	}
	if len(s.EventHistory) != 1 || s.EventHistory[0] != "lemonade_stand" {
		t.Errorf("history = %v, want [lemonade_stand]", s.EventHistory)
	}
	if len(s.UnlockedPhotos) != 1 || s.UnlockedPhotos[0] != "lemonade_photo" {
		t.Errorf("photos = %v, want [lemonade_photo]", s.UnlockedPhotos)
	}
	if s.LastDeltas == nil || s.LastDeltas.Ambition != 3 {
		t.Errorf("LastDeltas = %v, want ambition 3", s.LastDeltas)
	}
}

func TestApplyChoiceGateViolation(t *testing.T) {
	s := state.NewState()
	ev := testEvent()
	err := ApplyChoice(s, ev, &ev.Choices[1])
	if err == nil {
		t.Fatal("ApplyChoice with unmet gate returned nil error")
	}
	if s.Stats != (types.Stats{}) || len(s.EventHistory) != 0 || len(s.Flags) != 0 {
		t.Errorf("state mutated despite error: %+v", s)
	}
}

func TestApplyChoiceClamps(t *testing.T) {
	s := state.NewState()
	s.Stats = types.Stats{Ambition: 99, Chaos: 0, Relations: 100}
	ev := testEvent()
	if err := ApplyChoice(s, ev, &ev.Choices[0]); err != nil {
		t.Fatalf("ApplyChoice returned error: %v", err)
	}
	if s.Stats.Ambition != 100 {
		t.Errorf("ambition = %d, want clamped 100", s.Stats.Ambition)
	}
	if s.Stats.Relations != 100 {
		t.Errorf("relations = %d, want clamped 100", s.Stats.Relations)
	}
}

func TestApplyMinigameResultSuccess(t *testing.T) {
	s := state.NewState()
	s.ActiveMinigame = "convince_parents"
	ev := &types.EventDef{
		ID:           "talk_to_parents",
		MinigameRef:  "convince_parents",
		SuccessFlags: []string{"open_investment_account"},
		FailureFlags: []string{"needs_more_trust"},
		PhotoUnlocks: []string{"first_investment"},
	}
	ApplyMinigameResult(s, ev, types.MinigameResult{
		Success: true,
		Deltas:  types.Deltas{Ambition: 1},
	})
	if s.Stats.Ambition != 1 {
		t.Errorf("ambition = %d, want 1", s.Stats.Ambition)
	}
	if !state.GetFlag(s, "open_investment_account") {
		t.Error("success flag not set")
	}
	if state.GetFlag(s, "needs_more_trust") {
		t.Error("failure flag set on success")
	}
	if len(s.UnlockedPhotos) != 1 || s.UnlockedPhotos[0] != "first_investment" {
		t.Errorf("photos = %v, want [first_investment]", s.UnlockedPhotos)
	}
	if s.ActiveMinigame != "" {
		t.Errorf("ActiveMinigame = %q, want cleared", s.ActiveMinigame)
	}
}

func TestApplyMinigameResultFailure(t *testing.T) {
	s := state.NewState()
	s.ActiveMinigame = "convince_parents"
	ev := &types.EventDef{
		ID:           "talk_to_parents",
		SuccessFlags: []string{"open_investment_account"},
		FailureFlags: []string{"needs_more_trust"},
		PhotoUnlocks: []string{"first_investment"},
	}
	ApplyMinigameResult(s, ev, types.MinigameResult{
		Success: false,
		Deltas:  types.Deltas{Relations: -1},
	})
	if s.Stats.Relations != 0 {
		t.Errorf("relations = %d, want 0 (clamped from -1)", s.Stats.Relations)
	}
	if !state.GetFlag(s, "needs_more_trust") {
		t.Error("failure flag not set")
	}
	if state.GetFlag(s, "open_investment_account") {
		t.Error("success flag set on failure")
	}
	if len(s.UnlockedPhotos) != 0 {
		t.Errorf("photos unlocked on failure: %v", s.UnlockedPhotos)
	}
}

func TestApplyMinigameResultNoEvent(t *testing.T) {
	s := state.NewState()
	s.ActiveMinigame = "flappy_teo"
	ApplyMinigameResult(s, nil, types.MinigameResult{
		Success: true,
		Deltas:  types.Deltas{Ambition: 2},
	})
	if s.Stats.Ambition != 2 {
		t.Errorf("ambition = %d, want 2", s.Stats.Ambition)
	}
	if len(s.EventHistory) != 0 {
		t.Errorf("history = %v, want empty with nil event", s.EventHistory)
	}
	if s.ActiveMinigame != "" {
		t.Error("ActiveMinigame not cleared")
	}
}
