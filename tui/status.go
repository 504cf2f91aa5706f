package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/nathoo/triggerforge/engine/state"
)

// renderStatusBar produces a full-width inverted status line showing the
// actors, how many holders they carry, and the event and RNG counters.
func (m Model) renderStatusBar() string {
	w := m.engine.World

	names := state.ActorNames(w)
	granted := 0
	for _, a := range w.Actors {
		granted += len(state.GrantsOf(w, a.ID))
	}

	left := fmt.Sprintf(" %d actor(s) | %d grant(s)", len(names), granted)
	right := fmt.Sprintf("E:%d R:%d ", w.EventCount, m.engine.RNG.Position())

	// Name the actors if they fit.
	if len(names) > 0 {
		candidate := fmt.Sprintf(" %s | %d grant(s)", strings.Join(names, ", "), granted)
		if lipgloss.Width(candidate)+lipgloss.Width(right)+2 < m.width {
			left = candidate
		}
	}

	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 0 {
		gap = 0
	}

	bar := left + strings.Repeat(" ", gap) + right
	return styleStatusBar.Width(m.width).Render(bar)
}
