// Package tui provides a Bubble Tea terminal UI for the Teo life-sim.
package tui

// History remembers submitted commands so the arrow keys can recall them.
// Entries are kept oldest-first and capped at limit; idx is -1 while the
// player is typing fresh input rather than browsing.
type History struct {
	lines []string
	limit int
	idx   int
}

// NewHistory creates an empty history capped at limit entries.
func NewHistory(limit int) *History {
	return &History{limit: limit, idx: -1}
}

// Push records a submitted command. Repeating the last command adds nothing.
func (h *History) Push(line string) {
	if n := len(h.lines); n > 0 && h.lines[n-1] == line {
		return
	}
	h.lines = append(h.lines, line)
	if len(h.lines) > h.limit {
		copy(h.lines, h.lines[1:])
		h.lines = h.lines[:h.limit]
	}
}

// Prev steps toward older entries. The second return is false when there
// is nothing to recall.
func (h *History) Prev() (string, bool) {
	if len(h.lines) == 0 {
		return "", false
	}
	switch {
	case h.idx == -1:
		h.idx = len(h.lines) - 1
	case h.idx > 0:
		h.idx--
	}
	return h.lines[h.idx], true
}

// Next steps back toward newer entries, returning false once the player
// has walked past the newest one and is on fresh input again.
func (h *History) Next() (string, bool) {
	if h.idx == -1 {
		return "", false
	}
	h.idx++
	if h.idx >= len(h.lines) {
		h.idx = -1
		return "", false
	}
	return h.lines[h.idx], true
}

// ResetCursor leaves browsing mode; the next Prev starts at the newest entry.
func (h *History) ResetCursor() {
	h.idx = -1
}
