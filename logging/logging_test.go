package logging

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestLevelFor(t *testing.T) {
	tests := []struct {
		verbosity int
		want      zerolog.Level
	}{
		{0, zerolog.WarnLevel},
		{1, zerolog.InfoLevel},
		{2, zerolog.DebugLevel},
		{3, zerolog.TraceLevel},
		{7, zerolog.TraceLevel},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, LevelFor(tt.verbosity), "verbosity %d", tt.verbosity)
	}
}

func TestSetup_WritesComponent(t *testing.T) {
	defer zerolog.SetGlobalLevel(zerolog.WarnLevel)

	var buf bytes.Buffer
	Setup(1, &buf)

	logger := GetLogger("matcher")
	logger.Info().Msg("listener fired")

	out := buf.String()
	assert.Contains(t, out, "listener fired")
	assert.Contains(t, out, "matcher")
}

func TestSetup_FiltersBelowLevel(t *testing.T) {
	defer zerolog.SetGlobalLevel(zerolog.WarnLevel)

	var buf bytes.Buffer
	Setup(0, &buf)

	logger := GetLogger("matcher")
	logger.Info().Msg("hidden")
	logger.Warn().Msg("shown")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
}
