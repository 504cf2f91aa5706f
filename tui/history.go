// Package tui provides a Bubble Tea terminal UI for the triggerforge harness.
package tui

// History holds recent input lines for Up/Down recall. back counts how far
// the user has stepped into the past; zero means they are editing a fresh
// line.
type History struct {
	entries []string
	limit   int
	back    int
}

// NewHistory creates a history that keeps at most limit lines.
func NewHistory(limit int) *History {
	if limit < 1 {
		limit = 1
	}
	return &History{limit: limit}
}

// Push records a submitted line. Repeating the newest line is a no-op.
func (h *History) Push(line string) {
	if n := len(h.entries); n > 0 && h.entries[n-1] == line {
		return
	}
	h.entries = append(h.entries, line)
	if over := len(h.entries) - h.limit; over > 0 {
		h.entries = append([]string(nil), h.entries[over:]...)
	}
}

// Load replaces the history with a session's command log, newest last, so
// a replayed session can be recalled with Up.
func (h *History) Load(log []string) {
	h.entries = nil
	h.back = 0
	for _, line := range log {
		h.Push(line)
	}
}

// Len reports how many lines are stored.
func (h *History) Len() int {
	return len(h.entries)
}

// Prev steps one line further into the past, stopping at the oldest.
// Returns ("", false) if history is empty.
func (h *History) Prev() (string, bool) {
	if len(h.entries) == 0 {
		return "", false
	}
	if h.back < len(h.entries) {
		h.back++
	}
	return h.entries[len(h.entries)-h.back], true
}

// Next steps one line towards the present. Returns ("", false) once the
// user is back on a fresh line.
func (h *History) Next() (string, bool) {
	if h.back <= 1 {
		h.back = 0
		return "", false
	}
	h.back--
	return h.entries[len(h.entries)-h.back], true
}

// ResetCursor returns to a fresh line.
func (h *History) ResetCursor() {
	h.back = 0
}
