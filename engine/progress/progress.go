// Package progress owns the age and calendar mechanics: which life act an
// age falls in, guarded age changes, and the in-year day counter.
package progress

import (
	"fmt"

	"github.com/marell/teolife/types"
)

// MaxAge is the age at which the story ends.
const MaxAge = 18

// DeriveAct maps an age onto its life act.
func DeriveAct(age int) types.Act {
	switch {
	case age <= 6:
		return types.ActChildhood
	case age <= 12:
		return types.ActSchool
	case age < MaxAge:
		return types.ActTeenage
	default:
		return types.ActEnding
	}
}

// SetAge jumps the state to an arbitrary age. Out-of-range ages leave the
// state untouched and return an error suitable for showing to the player.
func SetAge(s *types.State, age int) error {
	if age < 0 || age > MaxAge {
		return fmt.Errorf("age must be between 0 and %d, got %d", MaxAge, age)
	}
	s.Age = age
	s.Act = DeriveAct(age)
	s.Day = 0
	return nil
}

// AdvanceAge moves one year forward, saturating at MaxAge. The day counter
// is local to the current age and resets on every change.
func AdvanceAge(s *types.State) {
	if s.Age >= MaxAge {
		return
	}
	s.Age++
	s.Act = DeriveAct(s.Age)
	s.Day = 0
}

// AdvanceDays burns days within the current age. It never rolls the age
// over by itself; the session decides whether a full year auto-advances.
func AdvanceDays(s *types.State, n int) {
	if n < 0 {
		return
	}
	s.Day += n
}
