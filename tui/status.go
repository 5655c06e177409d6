package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// locationDisplayName derives a human-readable name from a location ID when
// the catalog has no entry for it. "bondi_beach" -> "Bondi Beach".
func locationDisplayName(id string) string {
	words := strings.Split(id, "_")
	for i, w := range words {
		if len(w) > 0 {
			words[i] = strings.ToUpper(w[:1]) + w[1:]
		}
	}
	return strings.Join(words, " ")
}

// renderStatusBar produces a full-width inverted status line showing age,
// act, day, the three stats, and scrapbook progress.
func (m Model) renderStatusBar() string {
	s := m.session.State

	where := ""
	if s.CurrentLocation != "" {
		if loc := m.session.Defs.LocationByID(s.CurrentLocation); loc != nil {
			where = " @ " + loc.Name
		} else {
			where = " @ " + locationDisplayName(s.CurrentLocation)
		}
	}

	left := fmt.Sprintf(" Age %d (%s)%s | Day %d", s.Age, s.Act, where, s.Day)
	right := fmt.Sprintf("A:%d C:%d R:%d | Photos: %d ",
		s.Stats.Ambition, s.Stats.Chaos, s.Stats.Relations, len(s.UnlockedPhotos))

	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 0 {
		gap = 0
	}

	bar := left + strings.Repeat(" ", gap) + right
	return styleStatusBar.Width(m.width).Render(bar)
}
