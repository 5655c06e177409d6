package snapshot

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/marell/teolife/engine/state"
	"github.com/marell/teolife/types"
)

func TestCapture(t *testing.T) {
	s := state.NewState()
	s.Stats = types.Stats{Ambition: 40, Chaos: 10, Relations: 55}
	s.Age = 14
	s.Act = types.ActTeenage
	state.SetFlag(s, "has_phone")
	state.SetFlag(s, "covid_done")
	state.RecordEvent(s, "first_day")
	snap := Capture(s, 7)
	if snap.Stats != s.Stats || snap.Age != 14 {
		t.Errorf("snapshot = %+v, does not mirror state", snap)
	}
	if snap.RNGPosition != 7 {
		t.Errorf("RNGPosition = %d, want 7", snap.RNGPosition)
	}
	want := []string{"covid_done", "has_phone"}
	if len(snap.Flags) != 2 || snap.Flags[0] != want[0] || snap.Flags[1] != want[1] {
		t.Errorf("flags = %v, want sorted %v", snap.Flags, want)
	}
}

func TestDumpRoundTrips(t *testing.T) {
	s := state.NewState()
	s.Stats.Ambition = 12
	state.UnlockPhoto(s, "first_steps")
	out, err := Dump(s, 3)
	if err != nil {
		t.Fatalf("Dump returned error: %v", err)
	}
	if !strings.Contains(out, "\"first_steps\"") {
		t.Errorf("dump missing photo:\n%s", out)
	}
	var back Snapshot
	if err := json.Unmarshal([]byte(out), &back); err != nil {
		t.Fatalf("dump is not valid JSON: %v", err)
	}
	if back.Stats.Ambition != 12 || back.RNGPosition != 3 {
		t.Errorf("round trip = %+v", back)
	}
}
