package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/nathoo/triggerforge/types"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  types.Command
	}{
		// Empty / whitespace
		{
			name:  "empty string",
			input: "",
			want:  types.Command{},
		},
		{
			name:  "whitespace only",
			input: "   ",
			want:  types.Command{},
		},

		// Bare verbs
		{
			name:  "actors",
			input: "actors",
			want:  types.Command{Verb: "actors", Args: []string{}},
		},
		{
			name:  "verb is lower-cased",
			input: "HOLDERS",
			want:  types.Command{Verb: "holders", Args: []string{}},
		},

		// Fishing
		{
			name:  "fish fail",
			input: "fish alice fail",
			want:  types.Command{Verb: "fish", Args: []string{"alice", "fail"}},
		},
		{
			name:  "cast → fish, miss → fail",
			input: "cast Alice MISS",
			want:  types.Command{Verb: "fish", Args: []string{"Alice", "fail"}},
		},
		{
			name:  "fish catch with item",
			input: "fish alice caught salmon",
			want:  types.Command{Verb: "fish", Args: []string{"alice", "catch", "salmon"}},
		},
		{
			name:  "unknown outcome kept",
			input: "fish alice sideways",
			want:  types.Command{Verb: "fish", Args: []string{"alice", "sideways"}},
		},

		// Other host events
		{
			name:  "fly → boost",
			input: "fly alice",
			want:  types.Command{Verb: "boost", Args: []string{"alice"}},
		},
		{
			name:  "dig → mine",
			input: "dig alice the diamond_ore",
			want:  types.Command{Verb: "mine", Args: []string{"alice", "diamond_ore"}},
		},
		{
			name:  "attack → hit",
			input: "attack alice zombie 6",
			want:  types.Command{Verb: "hit", Args: []string{"alice", "zombie", "6"}},
		},
		{
			name:  "fire → shoot",
			input: "fire bob at zombie",
			want:  types.Command{Verb: "shoot", Args: []string{"bob", "zombie"}},
		},

		// Holders
		{
			name:  "grant strips fillers",
			input: "grant alice the lucky_charm",
			want:  types.Command{Verb: "grant", Args: []string{"alice", "lucky_charm"}},
		},
		{
			name:  "odds → chance",
			input: "odds alice elytra_boost_save_chance",
			want:  types.Command{Verb: "chance", Args: []string{"alice", "elytra_boost_save_chance"}},
		},
		{
			name:  "unknown verb passes through",
			input: "dance alice",
			want:  types.Command{Verb: "dance", Args: []string{"alice"}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Parse(tt.input))
		})
	}
}
