package state

import "github.com/marell/teolife/types"

// Clamp forces every stat axis into [0,100].
func Clamp(s types.Stats) types.Stats {
	return types.Stats{
		Ambition:  clampAxis(s.Ambition),
		Chaos:     clampAxis(s.Chaos),
		Relations: clampAxis(s.Relations),
	}
}

// ApplyDeltas adds each delta field to the matching stat and clamps every
// axis independently. Pure: the input stats are not modified. Out-of-range
// deltas saturate rather than error.
func ApplyDeltas(s types.Stats, d types.Deltas) types.Stats {
	return Clamp(types.Stats{
		Ambition:  s.Ambition + d.Ambition,
		Chaos:     s.Chaos + d.Chaos,
		Relations: s.Relations + d.Relations,
	})
}

// StatValue returns the named axis from a stats vector. Unknown names
// return 0.
func StatValue(s types.Stats, name string) int {
	switch name {
	case "ambition":
		return s.Ambition
	case "chaos":
		return s.Chaos
	case "relations":
		return s.Relations
	default:
		return 0
	}
}

func clampAxis(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
