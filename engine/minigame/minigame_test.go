package minigame

import (
	"testing"

	"github.com/marell/teolife/types"
)

func TestKnown(t *testing.T) {
	for _, ref := range []string{
		"convince_parents", "stock_simulator", "flappy_teo",
		"cleanup_party", "rhythm_speak", "balance_walk",
	} {
		if !Known(ref) {
			t.Errorf("Known(%q) = false", ref)
		}
	}
	if Known("pong") {
		t.Error("Known(\"pong\") = true")
	}
}

func TestFlappyResult(t *testing.T) {
	cases := []struct {
		score   int
		success bool
		deltas  types.Deltas
	}{
		{0, false, types.Deltas{}},
		{3, false, types.Deltas{Chaos: 1}},
		{5, true, types.Deltas{Ambition: 2, Chaos: 1}},
		{9, true, types.Deltas{Ambition: 2, Chaos: 1}},
	}
	for _, c := range cases {
		r := FlappyResult(c.score)
		if r.Success != c.success || r.Deltas != c.deltas {
			t.Errorf("FlappyResult(%d) = success %v deltas %+v, want %v %+v",
				c.score, r.Success, r.Deltas, c.success, c.deltas)
		}
	}
}

func TestCleanupResult(t *testing.T) {
	win := CleanupResult(8)
	if !win.Success || win.Deltas != (types.Deltas{Chaos: -2, Relations: 1}) {
		t.Errorf("win = %+v", win)
	}
	lose := CleanupResult(7)
	if lose.Success || lose.Deltas != (types.Deltas{Chaos: 1, Relations: -2}) {
		t.Errorf("lose = %+v", lose)
	}
}

func TestRhythmResult(t *testing.T) {
	win := RhythmResult(4)
	if !win.Success || win.Deltas != (types.Deltas{Relations: 2}) {
		t.Errorf("win = %+v", win)
	}
	lose := RhythmResult(3)
	if lose.Success || lose.Deltas != (types.Deltas{}) {
		t.Errorf("lose = %+v, losing the rhythm game must cost nothing", lose)
	}
}

func TestBalanceResult(t *testing.T) {
	win := BalanceResult(true)
	if !win.Success || win.Deltas != (types.Deltas{Ambition: 1, Relations: 2}) {
		t.Errorf("win = %+v", win)
	}
	lose := BalanceResult(false)
	if lose.Success || lose.Deltas != (types.Deltas{Chaos: 1, Relations: 1}) {
		t.Errorf("lose = %+v", lose)
	}
}
