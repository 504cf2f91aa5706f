package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/nathoo/triggerforge/cli"
	"github.com/nathoo/triggerforge/config"
	"github.com/nathoo/triggerforge/engine"
	"github.com/nathoo/triggerforge/engine/state"
	"github.com/nathoo/triggerforge/engine/trigger"
	"github.com/nathoo/triggerforge/errors"
	"github.com/nathoo/triggerforge/loader"
	"github.com/nathoo/triggerforge/logging"
	"github.com/nathoo/triggerforge/tui"
)

type rootFlags struct {
	configFile string
	script     string
	plain      bool
	trace      bool
	seed       int64
	verbosity  int
}

func newRootCmd() *cobra.Command {
	var f rootFlags

	cmd := &cobra.Command{
		Use:   "triggerforge [content_dir]",
		Short: "Run Lua-configured triggers against simulated game events",
		Long: `triggerforge loads holders, actors and grants from a directory of Lua files
and lets you fire fishing, elytra, mining and combat events at them, either
in an interactive console or from a script.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(cmd, f, args)
			if err != nil {
				return err
			}
			return run(cmd, cfg, f.script)
		},
	}

	cmd.PersistentFlags().StringVar(&f.configFile, "config", "", "config file (.toml, .yaml)")
	cmd.Flags().StringVar(&f.script, "script", "", "run commands from a file, echoing each one")
	cmd.Flags().BoolVar(&f.plain, "plain", false, "use the line-oriented console instead of the TUI")
	cmd.Flags().BoolVar(&f.trace, "trace", false, "print activation traces after each event")
	cmd.Flags().Int64Var(&f.seed, "seed", 0, "RNG seed (overrides config)")
	cmd.PersistentFlags().CountVarP(&f.verbosity, "verbose", "v", "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)")

	cmd.AddCommand(newCheckCmd(&f), newVersionCmd())
	return cmd
}

// resolveConfig layers explicitly set flags and the positional content
// directory over the loaded configuration.
func resolveConfig(cmd *cobra.Command, f rootFlags, args []string) (*config.Config, error) {
	cfg, err := config.Load(f.configFile)
	if err != nil {
		return nil, err
	}
	flags := cmd.Flags()
	if flags.Changed("plain") {
		cfg.Plain = f.plain
	}
	if flags.Changed("trace") {
		cfg.Trace = f.trace
	}
	if flags.Changed("seed") {
		cfg.Seed = f.seed
	}
	if flags.Changed("verbose") {
		cfg.Verbosity = f.verbosity
	}
	if len(args) == 1 {
		cfg.ContentDir = args[0]
	}
	return cfg, nil
}

func run(cmd *cobra.Command, cfg *config.Config, script string) error {
	useTUI := script == "" && !cfg.Plain && isTerminal()
	if useTUI {
		logging.Discard()
	} else {
		logging.Setup(cfg.Verbosity, cmd.ErrOrStderr())
	}

	defs, eng, err := boot(cfg)
	if err != nil {
		return err
	}

	if useTUI {
		return tui.Run(eng, defs, tui.Options{
			Content:     cfg.ContentDir,
			Snapshot:    cfg.Snapshot,
			HistorySize: cfg.HistorySize,
			Trace:       cfg.Trace,
		})
	}

	c := cli.New(eng, defs)
	c.Out = cmd.OutOrStdout()
	c.Content = cfg.ContentDir
	c.Snapshot = cfg.Snapshot
	c.Trace = cfg.Trace

	// Script mode: read commands from the file and echo them.
	if script != "" {
		file, err := os.Open(script)
		if err != nil {
			return errors.Wrapf(err, errors.ErrInvalidInput, "opening script %s", script)
		}
		defer file.Close()
		c.In = file
		c.EchoInput = true
	} else {
		c.In = cmd.InOrStdin()
	}
	c.Run()
	return nil
}

func boot(cfg *config.Config) (*state.Defs, *engine.Engine, error) {
	defs, err := loader.Load(cfg.ContentDir)
	if err != nil {
		return nil, nil, err
	}
	eng, err := engine.New(defs, engine.Options{Seed: cfg.Seed})
	if err != nil {
		return nil, nil, err
	}
	return defs, eng, nil
}

func newCheckCmd(f *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "check [content_dir]",
		Short: "Load and validate content without running it",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(cmd, *f, args)
			if err != nil {
				return err
			}
			logging.Setup(cfg.Verbosity, cmd.ErrOrStderr())

			defs, eng, err := boot(cfg)
			if err != nil {
				return err
			}
			printCheck(cmd.OutOrStdout(), cfg.ContentDir, defs, eng)
			return nil
		},
	}
}

func printCheck(w io.Writer, dir string, defs *state.Defs, eng *engine.Engine) {
	listeners := 0
	for _, h := range defs.Holders {
		listeners += len(h.Listeners)
	}
	fmt.Fprintf(w, "%s: %d holder(s), %d listener(s), %d actor(s), %d grant(s)\n",
		dir, len(defs.Holders), listeners, len(defs.Actors), len(defs.Grants))
	fmt.Fprintln(w, "triggers:")
	for _, t := range eng.Triggers() {
		fmt.Fprintf(w, "  %-16s %s\n", t.ID(), strings.Join(trigger.Names(t.RequiredParameters()), ", "))
	}
	fmt.Fprintf(w, "effects:  %v\n", eng.EffectIDs())
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "triggerforge version %s\n", version)
			fmt.Fprintf(out, "  commit: %s\n", commit)
			fmt.Fprintf(out, "  built:  %s\n", date)
		},
	}
}
