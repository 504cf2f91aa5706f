// Package parser converts harness command strings into Command structs.
// Intentionally dumb: no NLP, just pattern matching.
package parser

import (
	"strings"

	"github.com/nathoo/triggerforge/types"
)

var verbAliases = map[string]string{
	// Fishing
	"cast": "fish",
	"reel": "fish",

	// Elytra
	"fly":      "boost",
	"rocket":   "boost",
	"glide":    "boost",
	"firework": "boost",

	// Blocks
	"break": "mine",
	"dig":   "mine",

	// Combat
	"attack": "hit",
	"strike": "hit",
	"punch":  "hit",
	"fire":   "shoot",

	// Holders
	"give": "grant",
	"take": "revoke",

	// Inspection
	"who":     "actors",
	"players": "actors",
	"items":   "holders",
	"odds":    "chance",
	"p":       "chance",
}

// Outcome words for "fish <actor> <outcome>".
var fishOutcomes = map[string]string{
	"fail":   "fail",
	"failed": "fail",
	"miss":   "fail",
	"catch":  "catch",
	"caught": "catch",
	"ground": "ground",
	"reel":   "reel",
	"bite":   "bite",
}

var fillers = map[string]bool{
	"the": true, "a": true, "an": true,
	"to": true, "from": true, "with": true, "for": true, "on": true, "at": true,
}

// Parse converts a raw command string into a Command. Verbs are lower-cased
// and aliased; arguments keep their case apart from fish outcomes.
func Parse(input string) types.Command {
	input = strings.TrimSpace(input)
	if input == "" {
		return types.Command{}
	}

	words := strings.Fields(input)
	verb := strings.ToLower(words[0])
	if alias, ok := verbAliases[verb]; ok {
		verb = alias
	}

	args := stripFillers(words[1:])

	if verb == "fish" && len(args) >= 2 {
		if outcome, ok := fishOutcomes[strings.ToLower(args[1])]; ok {
			args[1] = outcome
		}
	}

	return types.Command{Verb: verb, Args: args}
}

// stripFillers removes articles and prepositions ("give the charm to alice").
func stripFillers(words []string) []string {
	result := make([]string, 0, len(words))
	for _, w := range words {
		if !fillers[strings.ToLower(w)] {
			result = append(result, w)
		}
	}
	return result
}
