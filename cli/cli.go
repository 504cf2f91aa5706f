// Package cli provides terminal I/O, output formatting, and meta-command
// dispatch for the triggerforge harness.
package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/nathoo/triggerforge/engine"
	"github.com/nathoo/triggerforge/engine/save"
	"github.com/nathoo/triggerforge/engine/state"
	"github.com/nathoo/triggerforge/logging"
	"github.com/nathoo/triggerforge/types"
)

// CLI handles line-oriented interaction with the harness.
type CLI struct {
	Engine    *engine.Engine
	Defs      *state.Defs
	In        io.Reader
	Out       io.Writer
	Content   string // content directory, recorded in snapshots
	Snapshot  string // default snapshot path for /save and /load
	Trace     bool
	EchoInput bool   // echo each input line after the prompt (for script playback)
	lastCmd   string // for "again"/"g" repeat
}

// New creates a CLI wired to the given engine.
func New(eng *engine.Engine, defs *state.Defs) *CLI {
	return &CLI{
		Engine:   eng,
		Defs:     defs,
		In:       os.Stdin,
		Out:      os.Stdout,
		Snapshot: "session.json",
	}
}

// Run prints a banner, then loops: prompt → input → dispatch → output.
func (c *CLI) Run() {
	c.printLine(fmt.Sprintf("triggerforge: %d holder(s), %d actor(s), seed %d. Type /help for commands.",
		len(c.Defs.Holders), len(c.Engine.World.Actors), c.Engine.RNG.Seed()))

	scanner := bufio.NewScanner(c.In)
	for {
		c.print("> ")
		if !scanner.Scan() {
			break
		}
		input := strings.TrimSpace(scanner.Text())
		if input == "" {
			continue
		}
		// Skip comment lines (for script files).
		if strings.HasPrefix(input, "#") {
			continue
		}
		if c.EchoInput {
			c.printLine(input)
		}

		// Meta-commands start with '/'.
		if strings.HasPrefix(input, "/") {
			if c.handleMeta(input) {
				return // /quit
			}
			continue
		}

		// "again" / "g" repeats the last harness command.
		lower := strings.ToLower(input)
		if lower == "again" || lower == "g" {
			if c.lastCmd == "" {
				c.printLine("Nothing to repeat.")
				continue
			}
			input = c.lastCmd
		} else {
			c.lastCmd = input
		}

		result := c.Engine.Step(input)
		c.printResult(result)

		if c.Trace {
			c.printTrace(result)
		}
	}
}

// handleMeta dispatches meta-commands. Returns true if the harness should exit.
func (c *CLI) handleMeta(input string) bool {
	parts := strings.Fields(input)
	cmd := parts[0]
	var arg string
	if len(parts) > 1 {
		arg = parts[1]
	}

	switch cmd {
	case "/quit", "/exit":
		c.printSystem("Goodbye.")
		return true

	case "/save":
		c.cmdSave(arg)

	case "/load":
		c.cmdLoad(arg)

	case "/help":
		c.cmdHelp()

	case "/state":
		c.cmdState()

	case "/trace":
		c.Trace = !c.Trace
		if c.Trace {
			c.printSystem("Trace output enabled.")
		} else {
			c.printSystem("Trace output disabled.")
		}

	default:
		c.printSystem(fmt.Sprintf("Unknown command: %s. Type /help for available commands.", cmd))
	}

	return false
}

func (c *CLI) snapshotPath(arg string) string {
	if arg != "" {
		return arg
	}
	return c.Snapshot
}

func (c *CLI) cmdSave(arg string) {
	path := c.snapshotPath(arg)

	data, err := save.Save(c.Engine.World, c.Content)
	if err != nil {
		c.printSystem(fmt.Sprintf("Save failed: %v", err))
		return
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		c.printSystem(fmt.Sprintf("Save failed: %v", err))
		return
	}

	c.printSystem(fmt.Sprintf("Session saved to %s.", path))
}

// cmdLoad rebuilds the engine from the snapshot's seed and replays its
// command log.
func (c *CLI) cmdLoad(arg string) {
	path := c.snapshotPath(arg)

	data, err := os.ReadFile(path)
	if err != nil {
		c.printSystem(fmt.Sprintf("Load failed: %v", err))
		return
	}
	sd, err := save.Load(data)
	if err != nil {
		c.printSystem(fmt.Sprintf("Load failed: %v", err))
		return
	}

	eng, err := engine.New(c.Defs, engine.Options{Seed: sd.RNGSeed})
	if err != nil {
		c.printSystem(fmt.Sprintf("Load failed: %v", err))
		return
	}
	n := save.Replay(sd, eng)
	c.Engine = eng
	c.lastCmd = ""

	c.printSystem(fmt.Sprintf("Session loaded from %s (%d command(s) replayed).", path, n))
	log := logging.GetLogger("cli")
	for _, d := range save.Diverged(eng.World, sd) {
		log.Warn().Str("snapshot", path).Msg(d)
		c.printSystem("Diverged: " + d)
	}
}

func (c *CLI) cmdHelp() {
	help := []string{
		"System:",
		"  /save [path]  — Save the session (default: " + c.Snapshot + ")",
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
	}
	for _, line := range help {
		c.printLine(line)
	}
}

func (c *CLI) cmdState() {
	w := c.Engine.World
	c.printSystem(fmt.Sprintf("Events: %d  RNG: seed %d, %d draw(s)", w.EventCount, c.Engine.RNG.Seed(), c.Engine.RNG.Position()))
	for _, name := range state.ActorNames(w) {
		a, _ := state.FindActor(w, name)
		line := fmt.Sprintf("%s: holds %v", a.DisplayName, state.GrantsOf(w, a.ID))
		if a.MainHand != nil {
			line += ", hand " + a.MainHand.Material
		}
		if stats := w.Stats[a.ID]; len(stats) > 0 {
			line += fmt.Sprintf(", stats %v", stats)
		}
		c.printSystem(line)
	}
}

func (c *CLI) printTrace(result types.Result) {
	c.printSystem(fmt.Sprintf("[trace] handled by %d adapter(s), %d draw(s), cancelled=%t",
		result.Handled, result.Draws, result.Cancelled))
	for _, a := range result.Activations {
		c.printSystem(fmt.Sprintf("[trace]   %s on %s for %s (%d effect(s))",
			a.Holder, a.Trigger, a.Dispatcher, len(a.Effects)))
	}
}

func (c *CLI) printResult(result types.Result) {
	for _, line := range result.Output {
		c.printLine(line)
	}
}

func (c *CLI) printLine(text string) {
	fmt.Fprintln(c.Out, text)
}

func (c *CLI) print(text string) {
	fmt.Fprint(c.Out, text)
}

func (c *CLI) printSystem(text string) {
	fmt.Fprintf(c.Out, "[%s]\n", text)
}
