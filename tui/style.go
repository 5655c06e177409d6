package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Styles used throughout the TUI.
var (
	styleStatusBar = lipgloss.NewStyle().
			Background(lipgloss.Color("236")).
			Foreground(lipgloss.Color("252")).
			Bold(true)

	styleInputPrompt = lipgloss.NewStyle().
				Foreground(lipgloss.Color("212"))

	styleNarrative = lipgloss.NewStyle().
			Foreground(lipgloss.Color("255"))

	styleTitle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("212"))

	styleChoice = lipgloss.NewStyle().
			Foreground(lipgloss.Color("117"))

	styleDelta = lipgloss.NewStyle().
			Foreground(lipgloss.Color("156"))

	styleSystem = lipgloss.NewStyle().
			Foreground(lipgloss.Color("243"))

	styleError = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	stylePlayerInput = lipgloss.NewStyle().
				Foreground(lipgloss.Color("212"))

	styleBarFilled = lipgloss.NewStyle().
			Foreground(lipgloss.Color("212"))

	styleBarEmpty = lipgloss.NewStyle().
			Foreground(lipgloss.Color("238"))
)

// lineKind identifies the type of an output line for styling.
type lineKind int

const (
	kindNarrative lineKind = iota
	kindTitle
	kindChoice
	kindDelta
	kindSystem
	kindError
)

// classifyLine determines what kind of output line this is.
func classifyLine(line string) lineKind {
	trimmed := strings.TrimLeft(line, " ")
	switch {
	case strings.HasPrefix(line, "[") && strings.HasSuffix(line, "]"):
		return kindSystem
	case strings.HasPrefix(line, "=== ") || strings.HasPrefix(line, "*** "):
		return kindTitle
	case isNumberedChoice(trimmed):
		return kindChoice
	case strings.HasPrefix(trimmed, "ambition ") ||
		strings.HasPrefix(trimmed, "chaos ") ||
		strings.HasPrefix(trimmed, "relations "):
		return kindDelta
	case strings.HasPrefix(line, "I don't know"),
		strings.HasPrefix(line, "Pick a number"),
		strings.HasPrefix(line, "There is no"):
		return kindError
	default:
		return kindNarrative
	}
}

// isNumberedChoice reports whether the line looks like "1. Do something".
func isNumberedChoice(line string) bool {
	if len(line) < 3 {
		return false
	}
	i := 0
	for i < len(line) && line[i] >= '0' && line[i] <= '9' {
		i++
	}
	return i > 0 && i+1 < len(line) && line[i] == '.' && line[i+1] == ' '
}

// renderLineKind applies the style for a given lineKind.
func renderLineKind(line string, kind lineKind) string {
	switch kind {
	case kindTitle:
		return styleTitle.Render(line)
	case kindChoice:
		return styleChoice.Render(line)
	case kindDelta:
		return styleDelta.Render(line)
	case kindSystem:
		return styleSystem.Render(line)
	case kindError:
		return styleError.Render(line)
	default:
		return styleNarrative.Render(line)
	}
}

// statGauge renders a colored 10-cell gauge for a 0..100 stat.
func statGauge(v int) string {
	filled := v / 10
	if filled > 10 {
		filled = 10
	}
	return styleBarFilled.Render(strings.Repeat("█", filled)) +
		styleBarEmpty.Render(strings.Repeat("░", 10-filled))
}

// styledSystemMsg renders a system message in gray with brackets.
func styledSystemMsg(text string) string {
	return styleSystem.Render("[" + text + "]")
}
