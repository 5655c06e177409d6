// Package minigame holds the mechanical cores of the playable diversions.
// Front-ends own the real-time presentation; the engine only sees the
// uniform MinigameResult each core terminates with.
package minigame

import "github.com/marell/teolife/types"

// Rand is the slice of the session RNG the minigames need. Taking an
// interface keeps this package independent of the engine package.
type Rand interface {
	Float64() float64
}

// Reflex game goals. The front-end reports a raw score; the tables below
// turn it into a result.
const (
	FlappyGoal  = 5 // pipes cleared
	CleanupGoal = 8 // items collected
	RhythmGoal  = 4 // beats hit
)

var knownRefs = map[string]bool{
	"convince_parents": true,
	"stock_simulator":  true,
	"flappy_teo":       true,
	"cleanup_party":    true,
	"rhythm_speak":     true,
	"balance_walk":     true,
}

// Known reports whether ref names a shipped minigame.
func Known(ref string) bool {
	return knownRefs[ref]
}

// FlappyResult scores a flappy run. Clearing enough pipes pays ambition;
// a wild enough run stirs chaos either way.
func FlappyResult(score int) types.MinigameResult {
	r := types.MinigameResult{
		Success:  score >= FlappyGoal,
		Metadata: map[string]any{"score": score},
	}
	if r.Success {
		r.Deltas.Ambition = 2
	}
	if score >= 3 {
		r.Deltas.Chaos = 1
	}
	return r
}

// CleanupResult scores the post-party cleanup.
func CleanupResult(itemsCollected int) types.MinigameResult {
	r := types.MinigameResult{
		Success:  itemsCollected >= CleanupGoal,
		Metadata: map[string]any{"items": itemsCollected},
	}
	if r.Success {
		r.Deltas.Chaos = -2
		r.Deltas.Relations = 1
	} else {
		r.Deltas.Chaos = 1
		r.Deltas.Relations = -2
	}
	return r
}

// RhythmResult scores the rhythm conversation game. Losing costs nothing.
func RhythmResult(hits int) types.MinigameResult {
	r := types.MinigameResult{
		Success:  hits >= RhythmGoal,
		Metadata: map[string]any{"hits": hits},
	}
	if r.Success {
		r.Deltas.Relations = 2
	}
	return r
}

// BalanceResult scores the balance walk: survive the full walk or fall off.
func BalanceResult(survived bool) types.MinigameResult {
	r := types.MinigameResult{
		Success:  survived,
		Metadata: map[string]any{"survived": survived},
	}
	if survived {
		r.Deltas.Ambition = 1
		r.Deltas.Relations = 2
	} else {
		r.Deltas.Chaos = 1
		r.Deltas.Relations = 1
	}
	return r
}
