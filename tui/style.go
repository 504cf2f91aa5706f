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
				Foreground(lipgloss.Color("34"))

	styleNarration = lipgloss.NewStyle().
			Foreground(lipgloss.Color("255"))

	styleSaved = lipgloss.NewStyle().
			Foreground(lipgloss.Color("78")).
			Bold(true)

	styleCancelled = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214"))

	styleListing = lipgloss.NewStyle().
			Foreground(lipgloss.Color("228"))

	styleSystem = lipgloss.NewStyle().
			Foreground(lipgloss.Color("243"))

	styleError = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	stylePlayerInput = lipgloss.NewStyle().
				Foreground(lipgloss.Color("34"))

	styleTrace = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))
)

// lineKind identifies the type of an output line for styling.
type lineKind int

const (
	kindNarration lineKind = iota
	kindSaved
	kindCancelled
	kindListing
	kindSystem
	kindError
	kindTrace
)

// Lines the engine prints when a host event ends up cancelled.
var cancelledLines = map[string]bool{
	"The catch slips away.":    true,
	"The block holds firm.":    true,
	"The blow is deflected.":   true,
	"The boost fizzles.":       true,
	"The firework is used up.": true,
}

// classifyLine determines what kind of output line this is.
func classifyLine(line string) lineKind {
	switch {
	case strings.HasPrefix(line, "[trace]"):
		return kindTrace
	case strings.HasPrefix(line, "[") && strings.HasSuffix(line, "]"):
		return kindSystem
	case line == "The firework is saved!":
		return kindSaved
	case cancelledLines[line]:
		return kindCancelled
	case strings.HasPrefix(line, "I don't know how to"),
		strings.HasPrefix(line, "usage:"),
		strings.HasPrefix(line, "unknown "),
		strings.HasPrefix(line, "bad "),
		line == "What do you want to do?":
		return kindError
	case strings.HasPrefix(line, "  "), isChanceReport(line):
		return kindListing
	default:
		return kindNarration
	}
}

// isChanceReport matches the headline of a "chance" command, e.g.
// "elytra_boost_save_chance for global: 25.0% (base 25.0% x 1)".
func isChanceReport(line string) bool {
	i := strings.Index(line, ": ")
	return i > 0 && strings.Contains(line[i:], "% (base ")
}

// styledPlayerInput renders the echoed input in green with "> " prefix.
func styledPlayerInput(input string) string {
	return stylePlayerInput.Render("> " + input)
}

// styledSystemMsg renders a system message in gray with brackets.
func styledSystemMsg(text string) string {
	return styleSystem.Render("[" + text + "]")
}
