package resolve

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nathoo/triggerforge/engine/state"
	"github.com/nathoo/triggerforge/types"
)

func testDefs() *state.Defs {
	return &state.Defs{
		Holders: map[string]types.HolderDef{
			"lucky_charm":  {ID: "lucky_charm", Name: "Lucky Charm"},
			"lucky_boots":  {ID: "lucky_boots", Name: "Boots of Luck"},
			"angler_set":   {ID: "angler_set", Name: "Angler's Set"},
			"sea_blessing": {ID: "sea_blessing"},
		},
		Actors: []types.ActorDef{
			{Name: "Alice"},
			{Name: "Albert"},
			{Name: "bob"},
		},
	}
}

func TestActor(t *testing.T) {
	w := state.NewState(testDefs())

	tests := []struct {
		name      string
		input     string
		want      string
		notFound  bool
		ambiguous []string
	}{
		{name: "exact", input: "alice", want: "Alice"},
		{name: "exact case-insensitive", input: "BOB", want: "bob"},
		{name: "unique prefix", input: "alb", want: "Albert"},
		{name: "ambiguous prefix", input: "al", ambiguous: []string{"Albert", "Alice"}},
		{name: "not found", input: "zed", notFound: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, err := Actor(w, tt.input)
			switch {
			case tt.notFound:
				var nf *NotFoundError
				require.ErrorAs(t, err, &nf)
				assert.Equal(t, "actor", nf.Kind)
			case tt.ambiguous != nil:
				var amb *AmbiguityError
				require.ErrorAs(t, err, &amb)
				assert.Equal(t, tt.ambiguous, amb.Candidates)
				assert.Equal(t, "which al? (Albert, Alice)", amb.Error())
			default:
				require.NoError(t, err)
				assert.Equal(t, tt.want, a.Name())
			}
		})
	}
}

func TestHolder(t *testing.T) {
	defs := testDefs()

	tests := []struct {
		name      string
		input     string
		want      string
		notFound  bool
		ambiguous bool
	}{
		{name: "exact id", input: "lucky_charm", want: "lucky_charm"},
		{name: "display name", input: "boots of luck", want: "lucky_boots"},
		{name: "spaces normalized", input: "Sea Blessing", want: "sea_blessing"},
		{name: "unique prefix", input: "angler", want: "angler_set"},
		{name: "ambiguous prefix", input: "lucky", ambiguous: true},
		{name: "not found", input: "cursed_hook", notFound: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, err := Holder(defs, tt.input)
			switch {
			case tt.notFound:
				var nf *NotFoundError
				require.ErrorAs(t, err, &nf)
				assert.Equal(t, `no holder named "cursed_hook"`, nf.Error())
			case tt.ambiguous:
				var amb *AmbiguityError
				require.ErrorAs(t, err, &amb)
				assert.Equal(t, []string{"lucky_boots", "lucky_charm"}, amb.Candidates)
			default:
				require.NoError(t, err)
				assert.Equal(t, tt.want, id)
			}
		})
	}
}
