package cli

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/nathoo/triggerforge/engine"
	"github.com/nathoo/triggerforge/engine/state"
	"github.com/nathoo/triggerforge/types"
)

// testDefs returns a charm that counts failed fishing attempts half the
// time, and one player holding it.
func testDefs() *state.Defs {
	return &state.Defs{
		Holders: map[string]types.HolderDef{
			"lucky_charm": {
				ID:   "lucky_charm",
				Name: "Lucky Charm",
				Listeners: []types.ListenerDef{
					{
						Trigger: "catch_fish_fail",
						Chance:  50,
						Effects: []types.Effect{
							{Type: "send_message", Params: map[string]any{"text": "So close, %player%."}},
							{Type: "add_stat", Params: map[string]any{"stat": "misses", "amount": 1}},
						},
					},
				},
			},
		},
		Actors: []types.ActorDef{{Name: "alice", Location: types.Location{World: "overworld"}}},
		Grants: []types.Grant{{Actor: "alice", Holder: "lucky_charm"}},
	}
}

func newTestCLI(t *testing.T, input string) (*CLI, *bytes.Buffer) {
	t.Helper()
	defs := testDefs()
	eng, err := engine.New(defs, engine.Options{Seed: 3})
	if err != nil {
		t.Fatal(err)
	}
	var out bytes.Buffer
	c := &CLI{
		Engine:   eng,
		Defs:     defs,
		In:       strings.NewReader(input),
		Out:      &out,
		Snapshot: filepath.Join(t.TempDir(), "session.json"),
	}
	return c, &out
}

func TestCLI_Banner(t *testing.T) {
	c, out := newTestCLI(t, "/quit\n")
	c.Run()

	output := out.String()
	if !strings.Contains(output, "1 holder(s), 1 actor(s), seed 3") {
		t.Errorf("expected banner, got %q", output)
	}
	if !strings.Contains(output, "[Goodbye.]") {
		t.Error("expected goodbye on /quit")
	}
}

func TestCLI_BasicCommand(t *testing.T) {
	c, out := newTestCLI(t, "fish alice fail\n/quit\n")
	c.Run()

	if !strings.Contains(out.String(), "alice reels in an empty line.") {
		t.Error("expected fishing narration")
	}
}

func TestCLI_HelpCommand(t *testing.T) {
	c, out := newTestCLI(t, "/help\n/quit\n")
	c.Run()

	output := out.String()
	for _, want := range []string{"/save", "/load", "/quit", "fish <actor>", "chance <actor|global> <effect>"} {
		if !strings.Contains(output, want) {
			t.Errorf("expected %q in help output", want)
		}
	}
}

func TestCLI_SaveAndLoad(t *testing.T) {
	c, out := newTestCLI(t, strings.Repeat("fish alice fail\n", 6)+"/save\n/state\n/quit\n")
	c.Run()

	if !strings.Contains(out.String(), "Session saved to") {
		t.Fatal("expected save confirmation")
	}
	saved := c.Engine
	misses := state.GetStat(saved.World, saved.World.Actors["alice"].ID, "misses")

	// Fresh CLI, same content, different seed: /load must restore the saved seed.
	defs := testDefs()
	eng, err := engine.New(defs, engine.Options{Seed: 99})
	if err != nil {
		t.Fatal(err)
	}
	var out2 bytes.Buffer
	c2 := &CLI{
		Engine:   eng,
		Defs:     defs,
		In:       strings.NewReader("/load\n/quit\n"),
		Out:      &out2,
		Snapshot: c.Snapshot,
	}
	c2.Run()

	loadOutput := out2.String()
	if !strings.Contains(loadOutput, "6 command(s) replayed") {
		t.Errorf("expected load confirmation, got %q", loadOutput)
	}
	if strings.Contains(loadOutput, "Diverged") {
		t.Errorf("replay should not diverge: %q", loadOutput)
	}
	if c2.Engine == eng {
		t.Fatal("expected /load to replace the engine")
	}
	if got := state.GetStat(c2.Engine.World, c2.Engine.World.Actors["alice"].ID, "misses"); got != misses {
		t.Errorf("misses after load = %d, want %d", got, misses)
	}
	if c2.Engine.RNG.Seed() != 3 {
		t.Errorf("seed after load = %d, want 3", c2.Engine.RNG.Seed())
	}
}

func TestCLI_UnknownMetaCommand(t *testing.T) {
	c, out := newTestCLI(t, "/bogus\n/quit\n")
	c.Run()

	if !strings.Contains(out.String(), "Unknown command") {
		t.Error("expected unknown command message")
	}
}

func TestCLI_TraceToggle(t *testing.T) {
	c, out := newTestCLI(t, "/trace\nfish alice fail\n/trace\n/quit\n")
	c.Run()

	output := out.String()
	if !strings.Contains(output, "Trace output enabled") {
		t.Error("expected trace enabled message")
	}
	if !strings.Contains(output, "[[trace] handled by 1 adapter(s)") {
		t.Error("expected trace line for the fishing event")
	}
	if !strings.Contains(output, "Trace output disabled") {
		t.Error("expected trace disabled message")
	}
}

func TestCLI_StateCommand(t *testing.T) {
	c, out := newTestCLI(t, "/state\n/quit\n")
	c.Run()

	output := out.String()
	if !strings.Contains(output, "Events: 0") {
		t.Error("expected event count in state output")
	}
	if !strings.Contains(output, "alice: holds [lucky_charm]") {
		t.Error("expected grants in state output")
	}
}

func TestCLI_EmptyInput(t *testing.T) {
	c, out := newTestCLI(t, "\n\n# a comment\n/quit\n")
	c.Run()

	if strings.Count(out.String(), "What do you want to do?") > 0 {
		t.Error("empty lines and comments should be silently skipped by CLI")
	}
}

func TestCLI_LoadNonexistent(t *testing.T) {
	c, out := newTestCLI(t, "/load "+filepath.Join(t.TempDir(), "nope.json")+"\n/quit\n")
	c.Run()

	if !strings.Contains(out.String(), "Load failed") {
		t.Error("expected load failure message")
	}
}

func TestCLI_Again_RepeatsLastCommand(t *testing.T) {
	c, out := newTestCLI(t, "fish alice fail\nagain\ng\n/quit\n")
	c.Run()

	if count := strings.Count(out.String(), "alice reels in an empty line."); count != 3 {
		t.Errorf("expected narration 3 times, got %d", count)
	}
	if c.Engine.World.EventCount != 3 {
		t.Errorf("expected 3 events, got %d", c.Engine.World.EventCount)
	}
}

func TestCLI_Again_NothingToRepeat(t *testing.T) {
	c, out := newTestCLI(t, "again\n/quit\n")
	c.Run()

	if !strings.Contains(out.String(), "Nothing to repeat") {
		t.Error("expected 'Nothing to repeat' when no prior command")
	}
}

func TestCLI_EchoInput(t *testing.T) {
	c, out := newTestCLI(t, "actors\n/quit\n")
	c.EchoInput = true
	c.Run()

	if !strings.Contains(out.String(), "> actors\n") {
		t.Error("expected echoed input after the prompt")
	}
}
