// Package config loads harness settings: built-in defaults, then an optional
// TOML or YAML file, then TRIGGERFORGE_* environment variables. Command-line
// flags are applied on top by the caller.
package config

import (
	"path/filepath"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/nathoo/triggerforge/errors"
)

// EnvPrefix prefixes every environment override, e.g. TRIGGERFORGE_SEED.
const EnvPrefix = "TRIGGERFORGE_"

// Config is the resolved harness configuration.
type Config struct {
	ContentDir  string `koanf:"content_dir"`
	Seed        int64  `koanf:"seed"`
	Verbosity   int    `koanf:"verbosity"`
	Trace       bool   `koanf:"trace"`
	Plain       bool   `koanf:"plain"`
	HistorySize int    `koanf:"history_size"`
	Snapshot    string `koanf:"snapshot"` // default path for /save and /load
}

// Defaults returns the built-in settings.
func Defaults() map[string]any {
	return map[string]any{
		"content_dir":  "content",
		"seed":         1,
		"verbosity":    0,
		"trace":        false,
		"plain":        false,
		"history_size": 100,
		"snapshot":     "session.json",
	}
}

// Load resolves the configuration. path may be empty; otherwise its
// extension selects the parser.
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(Defaults(), "."), nil); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "loading defaults")
	}

	if path != "" {
		parser, err := parserFor(path)
		if err != nil {
			return nil, err
		}
		if err := k.Load(file.Provider(path), parser); err != nil {
			return nil, errors.Wrapf(err, errors.ErrConfigLoad, "loading config file %s", path)
		}
	}

	err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	}), nil)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "loading environment")
	}

	var cfg Config
	unmarshalConf := koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           &cfg,
			WeaklyTypedInput: true,
			ErrorUnused:      true,
		},
	}
	if err := k.UnmarshalWithConf("", &cfg, unmarshalConf); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "decoding configuration")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects settings no harness can run with.
func (c *Config) Validate() error {
	if c.Verbosity < 0 {
		return errors.Newf(errors.ErrConfigLoad, "verbosity must be >= 0, got %d", c.Verbosity)
	}
	if c.HistorySize < 0 {
		return errors.Newf(errors.ErrConfigLoad, "history_size must be >= 0, got %d", c.HistorySize)
	}
	return nil
}

func parserFor(path string) (koanf.Parser, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return toml.Parser(), nil
	case ".yaml", ".yml":
		return yaml.Parser(), nil
	default:
		return nil, errors.Newf(errors.ErrConfigLoad, "unsupported config format %q", filepath.Ext(path))
	}
}
