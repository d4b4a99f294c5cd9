// Package main provides the entry point for mipsim.
// mipsim is a functional emulator for a reduced MIPS-like instruction set.
package main

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/sarchlab/mipsim/config"
	"github.com/sarchlab/mipsim/emu"
	"github.com/sarchlab/mipsim/loader"
)

type options struct {
	configPath      string
	logLevel        string
	maxInstructions uint64
	seed            uint64
	verbose         bool
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:          "mipsim",
		Short:        "Functional emulator for a reduced MIPS-like instruction set",
		SilenceUsage: true,
	}
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&opts.configPath, "config", "", "Path to run configuration JSON file")
	flags.StringVar(&opts.logLevel, "log-level", "", "Log level (overrides config)")
	flags.Uint64Var(&opts.maxInstructions, "max-instructions", 0, "Instruction limit (overrides config, 0 keeps it)")
	flags.Uint64Var(&opts.seed, "seed", 0, "Seed for undefined results (overrides config)")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "Enable debug logging")

	rootCmd.AddCommand(newRunCmd(opts), newDebugCmd(opts))

	return rootCmd
}

// resolveConfig loads the config file, if any, and applies flag overrides.
func resolveConfig(cmd *cobra.Command, opts *options) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if opts.configPath != "" {
		loaded, err := config.LoadConfig(opts.configPath)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("log-level") {
		cfg.LogLevel = opts.logLevel
	}
	if flags.Changed("max-instructions") {
		cfg.MaxInstructions = opts.maxInstructions
	}
	if flags.Changed("seed") {
		cfg.UndefinedSeed = opts.seed
	}
	if opts.verbose && !flags.Changed("log-level") {
		cfg.LogLevel = logrus.DebugLevel.String()
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

func newLogger(cfg *config.Config) (*logrus.Logger, error) {
	level, err := cfg.Level()
	if err != nil {
		return nil, err
	}

	logger := logrus.New()
	logger.SetOutput(os.Stderr)
	logger.SetLevel(level)

	return logger, nil
}

// session is a loaded program together with the emulator running it.
type session struct {
	path     string
	program  *loader.Program
	emulator *emu.Emulator
	logger   logrus.FieldLogger
}

// newSession loads the image at path and places it on a fresh emulator.
func newSession(path string, cfg *config.Config, logger logrus.FieldLogger) (*session, error) {
	prog, err := loader.Load(path)
	if err != nil {
		return nil, err
	}

	e := emu.NewEmulator(prog.Size(),
		emu.WithLogger(logger),
		emu.WithMaxInstructions(cfg.MaxInstructions),
		emu.WithUndefinedSeed(cfg.UndefinedSeed),
	)
	if err := prog.LoadInto(e.Bus()); err != nil {
		return nil, err
	}
	e.RegFile().PC = prog.EntryPoint

	logger.WithFields(logrus.Fields{
		"path":     path,
		"format":   prog.Format.String(),
		"entry":    fmt.Sprintf("0x%08X", prog.EntryPoint),
		"segments": len(prog.Segments),
		"words":    prog.Size(),
	}).Debug("program loaded")

	return &session{path: path, program: prog, emulator: e, logger: logger}, nil
}

// reset rewinds the emulator to the program's entry point.
func (s *session) reset() {
	s.emulator.Reset()
	s.emulator.RegFile().PC = s.program.EntryPoint
}

// prepare resolves config, logger and session for a subcommand.
func prepare(cmd *cobra.Command, opts *options, path string) (*config.Config, *session, error) {
	cfg, err := resolveConfig(cmd, opts)
	if err != nil {
		return nil, nil, err
	}

	logger, err := newLogger(cfg)
	if err != nil {
		return nil, nil, err
	}

	s, err := newSession(path, cfg, logger)
	if err != nil {
		return nil, nil, err
	}

	return cfg, s, nil
}
