// Package save implements JSON snapshots of a harness session. A snapshot
// records the seed and command log, which replay to the same world, plus
// the grants and stats the session ended with so a replay against edited
// content can be checked for divergence.
package save

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/nathoo/triggerforge/engine/state"
	"github.com/nathoo/triggerforge/errors"
	"github.com/nathoo/triggerforge/types"
)

// Version is the snapshot format version.
const Version = "1"

// SaveData is the JSON-serializable snapshot format.
type SaveData struct {
	Version    string                    `json:"version"`
	Content    string                    `json:"content"`
	Events     int                       `json:"events"`
	RNGSeed    int64                     `json:"rng_seed"`
	Grants     map[string][]string       `json:"grants"` // actor name → holder ids
	Stats      map[string]map[string]int `json:"stats"`  // actor name → stat → value
	CommandLog []string                  `json:"command_log"`
}

// Stepper runs one harness command.
type Stepper interface {
	Step(input string) types.Result
}

// Save serializes the session to JSON bytes. content names the content
// directory the session ran against.
func Save(w *types.World, content string) ([]byte, error) {
	data := SaveData{
		Version:    Version,
		Content:    content,
		Events:     w.EventCount,
		RNGSeed:    w.RNGSeed,
		Grants:     map[string][]string{},
		Stats:      map[string]map[string]int{},
		CommandLog: w.CommandLog,
	}
	for _, name := range state.ActorNames(w) {
		a, _ := state.FindActor(w, name)
		if held := state.GrantsOf(w, a.ID); len(held) > 0 {
			data.Grants[a.DisplayName] = append([]string(nil), held...)
		}
		if stats := w.Stats[a.ID]; len(stats) > 0 {
			data.Stats[a.DisplayName] = stats
		}
	}
	return json.MarshalIndent(data, "", "  ")
}

// Load deserializes JSON bytes into SaveData.
func Load(data []byte) (*SaveData, error) {
	var sd SaveData
	if err := json.Unmarshal(data, &sd); err != nil {
		return nil, errors.Wrap(err, errors.ErrInvalidInput, "reading snapshot")
	}
	if sd.Version != "" && sd.Version != Version {
		return nil, errors.Newf(errors.ErrInvalidInput, "unsupported snapshot version %q", sd.Version)
	}
	// Ensure maps are never nil after load.
	if sd.Grants == nil {
		sd.Grants = map[string][]string{}
	}
	if sd.Stats == nil {
		sd.Stats = map[string]map[string]int{}
	}
	if sd.CommandLog == nil {
		sd.CommandLog = []string{}
	}
	return &sd, nil
}

// Replay runs the snapshot's command log through s, which must be a fresh
// engine seeded with sd.RNGSeed. Returns the number of commands replayed.
func Replay(sd *SaveData, s Stepper) int {
	for _, cmd := range sd.CommandLog {
		s.Step(cmd)
	}
	return len(sd.CommandLog)
}

// Diverged lists the differences between a replayed world and the grants
// and stats the snapshot recorded, sorted.
func Diverged(w *types.World, sd *SaveData) []string {
	var diffs []string

	names := map[string]bool{}
	for name := range sd.Grants {
		names[strings.ToLower(name)] = true
	}
	for name := range sd.Stats {
		names[strings.ToLower(name)] = true
	}
	for _, name := range state.ActorNames(w) {
		names[strings.ToLower(name)] = true
	}

	for name := range names {
		a, ok := state.FindActor(w, name)
		if !ok {
			diffs = append(diffs, fmt.Sprintf("%s: actor no longer exists", name))
			continue
		}
		want, got := sd.Grants[a.DisplayName], state.GrantsOf(w, a.ID)
		if fmt.Sprint(want) != fmt.Sprint(got) && len(want)+len(got) > 0 {
			diffs = append(diffs, fmt.Sprintf("%s: holds %v, snapshot had %v", a.DisplayName, got, want))
		}
		wantStats, gotStats := sd.Stats[a.DisplayName], w.Stats[a.ID]
		for _, stat := range statKeys(wantStats, gotStats) {
			if wantStats[stat] != gotStats[stat] {
				diffs = append(diffs, fmt.Sprintf("%s: %s is %d, snapshot had %d", a.DisplayName, stat, gotStats[stat], wantStats[stat]))
			}
		}
	}

	sort.Strings(diffs)
	return diffs
}

func statKeys(a, b map[string]int) []string {
	seen := map[string]bool{}
	var keys []string
	for _, m := range []map[string]int{a, b} {
		for k := range m {
			if !seen[k] {
				seen[k] = true
				keys = append(keys, k)
			}
		}
	}
	sort.Strings(keys)
	return keys
}
