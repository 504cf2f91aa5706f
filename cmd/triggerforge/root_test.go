package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nathoo/triggerforge/errors"
)

const fullContent = "../../loader/testdata/full"

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetIn(bytes.NewReader(nil))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestVersion(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "triggerforge version dev")
}

func TestCheck(t *testing.T) {
	out, err := execute(t, "check", fullContent)
	require.NoError(t, err)

	assert.Contains(t, out, "2 holder(s), 2 listener(s), 2 actor(s), 1 grant(s)")
	assert.Contains(t, out, "catch_fish_fail  player, location, event, item")
	assert.Contains(t, out, "ranged_attack    player, victim, projectile, event, value")
	assert.Contains(t, out, "elytra_boost_save_chance")
}

func TestCheck_BadContent(t *testing.T) {
	_, err := execute(t, "check", "../../loader/testdata/invalid_refs")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "validation failed")
}

func TestScript(t *testing.T) {
	script := filepath.Join(t.TempDir(), "demo.txt")
	require.NoError(t, os.WriteFile(script, []byte("# warm up\nactors\nchance alice elytra_boost_save_chance\n/quit\n"), 0o644))

	out, err := execute(t, "--script", script, "--seed", "9", fullContent)
	require.NoError(t, err)

	assert.Contains(t, out, "2 holder(s), 2 actor(s), seed 9")
	assert.Contains(t, out, "> actors\n")
	assert.Contains(t, out, "alice (player) in overworld: lucky_charm")
	assert.Contains(t, out, "elytra_boost_save_chance for entity:alice: 37.5% (base 25.0% x 1.5)")
	assert.NotContains(t, out, "warm up")
}

func TestScript_Missing(t *testing.T) {
	_, err := execute(t, "--script", filepath.Join(t.TempDir(), "absent.txt"), fullContent)
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrInvalidInput))
}

func TestResolveConfig_FlagsOverride(t *testing.T) {
	cmd := newRootCmd()
	require.NoError(t, cmd.ParseFlags([]string{"--seed", "4", "--trace"}))

	f := rootFlags{seed: 4, trace: true}
	cfg, err := resolveConfig(cmd, f, []string{"somewhere"})
	require.NoError(t, err)

	assert.Equal(t, int64(4), cfg.Seed)
	assert.True(t, cfg.Trace)
	assert.False(t, cfg.Plain, "unset flags keep config values")
	assert.Equal(t, "somewhere", cfg.ContentDir)
}

func TestCheck_ConfigFile(t *testing.T) {
	dir, err := filepath.Abs(fullContent)
	require.NoError(t, err)
	conf := filepath.Join(t.TempDir(), "triggerforge.toml")
	require.NoError(t, os.WriteFile(conf, []byte("content_dir = \""+filepath.ToSlash(dir)+"\"\nverbosity = 2\n"), 0o644))

	out, err := execute(t, "check", "--config", conf)
	require.NoError(t, err)
	assert.Contains(t, out, filepath.ToSlash(dir)+": 2 holder(s)")

	cmd := newRootCmd()
	check, _, err := cmd.Find([]string{"check"})
	require.NoError(t, err)
	require.NoError(t, check.ParseFlags([]string{"--config", conf}))
	cfg, err := resolveConfig(check, rootFlags{configFile: conf}, nil)
	require.NoError(t, err)
	assert.Equal(t, 2, cfg.Verbosity, "verbosity comes from the config file")
}
