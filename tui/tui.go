package tui

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nathoo/triggerforge/engine"
	"github.com/nathoo/triggerforge/engine/save"
	"github.com/nathoo/triggerforge/engine/state"
	"github.com/nathoo/triggerforge/logging"
	"github.com/nathoo/triggerforge/types"
)

// rawLine stores an unstyled output line with its classification,
// so we can re-wrap and re-style when the terminal is resized.
type rawLine struct {
	text     string
	kind     lineKind
	isInput  bool // true for echoed input
	isSystem bool // true for system messages
}

// Options configures a TUI session.
type Options struct {
	Content     string // content directory, recorded in snapshots
	Snapshot    string // default path for /save and /load
	HistorySize int
	Trace       bool
}

// Model is the Bubble Tea model for the triggerforge TUI.
type Model struct {
	engine   *engine.Engine
	defs     *state.Defs
	content  string
	snapshot string

	viewport viewport.Model
	input    textinput.Model
	history  *History

	rawLines []rawLine // accumulated narrative lines (unstyled, for re-wrapping)

	width    int
	height   int
	ready    bool
	trace    bool
	quitting bool
	lastCmd  string
}

// gameOutputMsg carries output from the engine into the Update loop.
type gameOutputMsg struct {
	input    string   // echoed input (empty for the banner)
	lines    []string // output lines
	isSystem bool     // true for meta-command output
}

// New creates a TUI model wired to the given engine.
func New(eng *engine.Engine, defs *state.Defs, opts Options) Model {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Focus()
	ti.CharLimit = 256
	ti.PromptStyle = styleInputPrompt

	if opts.Snapshot == "" {
		opts.Snapshot = "session.json"
	}
	if opts.HistorySize <= 0 {
		opts.HistorySize = 100
	}
	return Model{
		engine:   eng,
		defs:     defs,
		content:  opts.Content,
		snapshot: opts.Snapshot,
		input:    ti,
		history:  NewHistory(opts.HistorySize),
		trace:    opts.Trace,
	}
}

// Run starts the Bubble Tea program.
func Run(eng *engine.Engine, defs *state.Defs, opts Options) error {
	m := New(eng, defs, opts)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())
	_, err := p.Run()
	return err
}

// Init returns the initial command that prints the banner and actor list.
func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.initialOutput())
}

func (m Model) initialOutput() tea.Cmd {
	return func() tea.Msg {
		lines := []string{
			fmt.Sprintf("triggerforge: %d holder(s), %d actor(s), seed %d. Type /help for commands.",
				len(m.defs.Holders), len(m.engine.World.Actors), m.engine.RNG.Seed()),
			"",
		}
		lines = append(lines, listActors(m.engine)...)
		return gameOutputMsg{lines: lines}
	}
}

// listActors renders the actor roster without recording a command.
func listActors(eng *engine.Engine) []string {
	w := eng.World
	if len(w.Actors) == 0 {
		return []string{"No actors."}
	}
	var lines []string
	for _, name := range state.ActorNames(w) {
		a, _ := state.FindActor(w, name)
		line := fmt.Sprintf("%s (%s) in %s", a.DisplayName, a.Kind, a.Loc.World)
		if grants := state.GrantsOf(w, a.ID); len(grants) > 0 {
			line += ": " + strings.Join(grants, ", ")
		}
		lines = append(lines, line)
	}
	return lines
}

// Update handles messages (key presses, window resize, game output).
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		vpHeight := m.height - 2 // 1 status bar + 1 input line
		if vpHeight < 1 {
			vpHeight = 1
		}

		if !m.ready {
			m.viewport = viewport.New(m.width, vpHeight)
			m.viewport.KeyMap = viewportKeyMap()
			m.ready = true
		} else {
			m.viewport.Width = m.width
			m.viewport.Height = vpHeight
		}

		m.refreshViewport()

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			m.quitting = true
			return m, tea.Quit

		case "enter":
			return m.handleEnter()

		case "up":
			if prev, ok := m.history.Prev(); ok {
				m.input.SetValue(prev)
				m.input.CursorEnd()
			}
			return m, nil

		case "down":
			if next, ok := m.history.Next(); ok {
				m.input.SetValue(next)
				m.input.CursorEnd()
			} else {
				m.input.SetValue("")
				m.history.ResetCursor()
			}
			return m, nil

		case "pgup", "pgdown":
			var vpCmd tea.Cmd
			m.viewport, vpCmd = m.viewport.Update(msg)
			return m, vpCmd
		}

	case gameOutputMsg:
		m = m.appendOutput(msg)
	}

	var inputCmd tea.Cmd
	m.input, inputCmd = m.input.Update(msg)
	cmds = append(cmds, inputCmd)

	return m, tea.Batch(cmds...)
}

// handleEnter processes the submitted input line.
func (m Model) handleEnter() (tea.Model, tea.Cmd) {
	input := strings.TrimSpace(m.input.Value())
	m.input.SetValue("")

	if input == "" {
		return m, nil
	}

	m.history.Push(input)
	m.history.ResetCursor()

	// Handle "again" / "g".
	lower := strings.ToLower(input)
	if lower == "again" || lower == "g" {
		if m.lastCmd == "" {
			m = m.appendOutput(gameOutputMsg{
				input: input, lines: []string{"Nothing to repeat."}, isSystem: true,
			})
			return m, nil
		}
		input = m.lastCmd
	} else {
		m.lastCmd = input
	}

	// Meta-commands.
	if strings.HasPrefix(input, "/") {
		output, quit := m.handleMeta(input)
		m = m.appendOutput(gameOutputMsg{input: input, lines: output, isSystem: true})
		if quit {
			m.quitting = true
			return m, tea.Quit
		}
		return m, nil
	}

	// Harness command.
	result := m.engine.Step(input)
	output := result.Output
	if m.trace {
		output = append(output, m.formatTrace(result)...)
	}
	m = m.appendOutput(gameOutputMsg{input: input, lines: output})
	return m, nil
}

// appendOutput adds lines to the narrative and refreshes the viewport.
func (m Model) appendOutput(msg gameOutputMsg) Model {
	if msg.input != "" {
		m.rawLines = append(m.rawLines, rawLine{
			text: "> " + msg.input, isInput: true,
		})
	}

	for _, line := range msg.lines {
		rl := rawLine{text: line, isSystem: msg.isSystem}
		if !msg.isSystem {
			rl.kind = classifyLine(line)
		}
		m.rawLines = append(m.rawLines, rl)
	}

	// Blank line separator between turns.
	m.rawLines = append(m.rawLines, rawLine{})

	m.refreshViewport()

	return m
}

// refreshViewport re-wraps and re-styles all raw lines at the current width
// and updates the viewport content.
func (m *Model) refreshViewport() {
	if !m.ready {
		return
	}

	width := m.width
	if width < 10 {
		width = 10
	}

	var styled []string
	for _, rl := range m.rawLines {
		if rl.text == "" {
			styled = append(styled, "")
			continue
		}

		wrapped := wordWrap(rl.text, width)

		switch {
		case rl.isInput:
			styled = append(styled, stylePlayerInput.Render(wrapped))
		case rl.isSystem:
			styled = append(styled, styledSystemMsg(wrapped))
		default:
			styled = append(styled, renderLineKind(wrapped, rl.kind))
		}
	}

	m.viewport.SetContent(strings.Join(styled, "\n"))
	m.viewport.GotoBottom()
}

// renderLineKind applies the style for a given lineKind.
func renderLineKind(line string, kind lineKind) string {
	switch kind {
	case kindSaved:
		return styleSaved.Render(line)
	case kindCancelled:
		return styleCancelled.Render(line)
	case kindListing:
		return styleListing.Render(line)
	case kindSystem:
		return styleSystem.Render(line)
	case kindError:
		return styleError.Render(line)
	case kindTrace:
		return styleTrace.Render(line)
	default:
		return styleNarration.Render(line)
	}
}

// wordWrap breaks text at spaces so no line is wider than width cells.
// Widths are measured in terminal cells, so wide runes count double.
func wordWrap(text string, width int) string {
	if width <= 0 || lipgloss.Width(text) <= width {
		return text
	}

	var lines []string
	var line strings.Builder
	lineWidth := 0
	for _, word := range strings.Fields(text) {
		w := lipgloss.Width(word)
		if lineWidth > 0 && lineWidth+1+w > width {
			lines = append(lines, line.String())
			line.Reset()
			lineWidth = 0
		}
		if lineWidth > 0 {
			line.WriteByte(' ')
			lineWidth++
		}
		line.WriteString(word)
		lineWidth += w
	}
	lines = append(lines, line.String())
	return strings.Join(lines, "\n")
}

// View renders the full TUI layout: viewport + status bar + input.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if !m.ready {
		return "Loading..."
	}

	return m.viewport.View() + "\n" + m.renderStatusBar() + "\n" + m.input.View()
}

// handleMeta dispatches meta-commands. Returns output lines and quit flag.
func (m *Model) handleMeta(input string) ([]string, bool) {
	parts := strings.Fields(input)
	cmd := parts[0]
	var arg string
	if len(parts) > 1 {
		arg = parts[1]
	}

	switch cmd {
	case "/quit", "/exit":
		return []string{"Goodbye."}, true

	case "/save":
		return m.cmdSave(arg), false

	case "/load":
		return m.cmdLoad(arg), false

	case "/help":
		return m.cmdHelp(), false

	case "/state":
		return m.cmdState(), false

	case "/trace":
		m.trace = !m.trace
		if m.trace {
			return []string{"Trace output enabled."}, false
		}
		return []string{"Trace output disabled."}, false

	default:
		return []string{fmt.Sprintf("Unknown command: %s. Type /help for available commands.", cmd)}, false
	}
}

func (m *Model) snapshotPath(arg string) string {
	if arg != "" {
		return arg
	}
	return m.snapshot
}

func (m *Model) cmdSave(arg string) []string {
	path := m.snapshotPath(arg)

	data, err := save.Save(m.engine.World, m.content)
	if err != nil {
		return []string{fmt.Sprintf("Save failed: %v", err)}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return []string{fmt.Sprintf("Save failed: %v", err)}
	}

	return []string{fmt.Sprintf("Session saved to %s.", path)}
}

// cmdLoad rebuilds the engine from the snapshot's seed and replays its
// command log.
func (m *Model) cmdLoad(arg string) []string {
	path := m.snapshotPath(arg)

	data, err := os.ReadFile(path)
	if err != nil {
		return []string{fmt.Sprintf("Load failed: %v", err)}
	}
	sd, err := save.Load(data)
	if err != nil {
		return []string{fmt.Sprintf("Load failed: %v", err)}
	}

	eng, err := engine.New(m.defs, engine.Options{Seed: sd.RNGSeed})
	if err != nil {
		return []string{fmt.Sprintf("Load failed: %v", err)}
	}
	n := save.Replay(sd, eng)
	m.engine = eng
	m.lastCmd = ""
	m.history.Load(eng.World.CommandLog)

	output := []string{fmt.Sprintf("Session loaded from %s (%d command(s) replayed).", path, n)}
	log := logging.GetLogger("tui")
	for _, d := range save.Diverged(eng.World, sd) {
		log.Warn().Str("snapshot", path).Msg(d)
		output = append(output, "Diverged: "+d)
	}
	return output
}

func (m *Model) cmdHelp() []string {
	return []string{
		"System:",
		"  /save [path]  — Save the session (default: " + m.snapshot + ")",
		"  /load [path]  — Replay a saved session",
		"  /quit         — Exit",
		"  /help         — Show this help",
		"  /state        — Dump actors, grants and stats",
		"  /trace        — Toggle activation trace output",
		"",
		"Events:",
		"  fish <actor> [fail|catch|ground|reel|bite] [item]",
		"  boost <actor>                   — Elytra firework boost",
		"  mine <actor> <block>",
		"  hit <actor> <victim> [damage]",
		"  shoot <actor> <victim> [damage]",
		"",
		"World:",
		"  grant <holder> <actor>  /  revoke <holder> <actor>",
		"  hold <actor> <item|nothing>",
		"  tp <actor> <world> [x y z]",
		"  actors, holders",
		"  chance <actor|global> <effect>",
		"  again (g)                       — Repeat your last command",
		"",
		"Navigation: PgUp/PgDn to scroll, Up/Down for command history",
	}
}

func (m *Model) cmdState() []string {
	w := m.engine.World
	output := []string{
		fmt.Sprintf("Events: %d", w.EventCount),
		fmt.Sprintf("RNG: seed %d, %d draw(s)", m.engine.RNG.Seed(), m.engine.RNG.Position()),
	}
	for _, name := range state.ActorNames(w) {
		a, _ := state.FindActor(w, name)
		line := fmt.Sprintf("%s: holds %v", a.DisplayName, state.GrantsOf(w, a.ID))
		if a.MainHand != nil {
			line += ", hand " + a.MainHand.Material
		}
		if stats := w.Stats[a.ID]; len(stats) > 0 {
			line += fmt.Sprintf(", stats %v", stats)
		}
		output = append(output, line)
	}
	return output
}

func (m *Model) formatTrace(result types.Result) []string {
	lines := []string{fmt.Sprintf("[trace] handled by %d adapter(s), %d draw(s), cancelled=%t",
		result.Handled, result.Draws, result.Cancelled)}
	for _, a := range result.Activations {
		lines = append(lines, fmt.Sprintf("[trace]   %s on %s for %s (%d effect(s))",
			a.Holder, a.Trigger, a.Dispatcher, len(a.Effects)))
		for _, e := range a.Effects {
			lines = append(lines, fmt.Sprintf("[trace]     %s %v", e.Type, e.Params))
		}
	}
	return lines
}

// viewportKeyMap returns a viewport keymap with Up/Down disabled
// (we use those for input history).
func viewportKeyMap() viewport.KeyMap {
	return viewport.KeyMap{
		PageDown:     key.NewBinding(key.WithKeys("pgdown")),
		PageUp:       key.NewBinding(key.WithKeys("pgup")),
		HalfPageDown: key.NewBinding(key.WithKeys("ctrl+d")),
		HalfPageUp:   key.NewBinding(key.WithKeys("ctrl+u")),
		Up:           key.NewBinding(key.WithDisabled()),
		Down:         key.NewBinding(key.WithDisabled()),
	}
}
