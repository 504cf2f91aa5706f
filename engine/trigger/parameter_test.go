package trigger

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInheritsFrom(t *testing.T) {
	tests := []struct {
		param Parameter
		want  []Parameter
	}{
		{ParamLocation, []Parameter{ParamVictim, ParamPlayer}},
		{ParamVelocity, []Parameter{ParamPlayer, ParamVictim}},
		{ParamItem, []Parameter{ParamPlayer, ParamVictim}},
		{ParamText, []Parameter{}},
		{ParamPlayer, []Parameter{}},
		{ParamValue, []Parameter{}},
	}
	for _, tt := range tests {
		t.Run(tt.param.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.param.InheritsFrom())
		})
	}
}

func TestInheritsFrom_ReturnsCopy(t *testing.T) {
	got := ParamLocation.InheritsFrom()
	got[0] = ParamBlock
	assert.Equal(t, []Parameter{ParamVictim, ParamPlayer}, ParamLocation.InheritsFrom())
}

func TestSatisfies(t *testing.T) {
	tests := []struct {
		name     string
		provided []Parameter
		required Parameter
		want     bool
	}{
		{"direct", []Parameter{ParamLocation}, ParamLocation, true},
		{"inherited from victim", []Parameter{ParamVictim}, ParamLocation, true},
		{"inherited from player", []Parameter{ParamPlayer}, ParamItem, true},
		{"no inheritance for text", []Parameter{ParamPlayer, ParamVictim}, ParamText, false},
		{"nothing provided", nil, ParamVelocity, false},
		{"unrelated provided", []Parameter{ParamBlock, ParamEvent}, ParamLocation, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Satisfies(tt.provided, tt.required))
		})
	}
}

func TestMissing(t *testing.T) {
	provided := []Parameter{ParamPlayer, ParamEvent}
	required := []Parameter{ParamPlayer, ParamLocation, ParamEvent, ParamBlock, ParamText}

	assert.Equal(t, []Parameter{ParamBlock, ParamText}, Missing(provided, required))
	assert.Empty(t, Missing(provided, nil))
}

func TestParseParameter(t *testing.T) {
	for _, p := range Parameters() {
		got, ok := ParseParameter(p.String())
		assert.True(t, ok, p.String())
		assert.Equal(t, p, got)
	}

	got, ok := ParseParameter("  Location ")
	assert.True(t, ok)
	assert.Equal(t, ParamLocation, got)

	_, ok = ParseParameter("weather")
	assert.False(t, ok)
	assert.Equal(t, "unknown", Parameter(99).String())
}
