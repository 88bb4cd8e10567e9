// SPDX-License-Identifier: MIT

// Package cli implements the bandit command line.
package cli

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"slices"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/bandit/chest"
	"github.com/katalvlaran/bandit/config"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	File       string
	Format     string // "json" | "text"
	Verbose    bool
	Seed       int64
	LegacyPick bool
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// DefaultFile is the definitions file read when --file is not given.
const DefaultFile = "bandit.yaml"

// NewRootCommand creates the root command for the bandit CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "bandit",
		Short: "Weighted test assignment with dependency overrides",
		Long: `bandit assigns A/B tests and feature flags by weighted random sampling.

Tests are read from a YAML or JSON definitions file. Dependency rules let
one test force the outcome of another.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !slices.Contains(ValidFormats, opts.Format) {
				return WrapExitError(ExitCommandError,
					fmt.Sprintf("invalid format %q: must be one of %v", opts.Format, ValidFormats), nil)
			}
			return nil
		},
	}

	cmd.PersistentFlags().StringVarP(&opts.File, "file", "f", DefaultFile, "definitions file (yaml|json)")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "debug logging on stderr")
	cmd.PersistentFlags().Int64Var(&opts.Seed, "seed", 0, "seed the random source for reproducible draws")
	cmd.PersistentFlags().BoolVar(&opts.LegacyPick, "legacy-pick", false, "never pick the last population slot")

	cmd.AddCommand(NewValidateCommand(opts))
	cmd.AddCommand(NewFlipCommand(opts))
	cmd.AddCommand(NewMixCommand(opts))
	cmd.AddCommand(NewSimulateCommand(opts))
	cmd.AddCommand(NewGraphCommand(opts))
	cmd.AddCommand(NewWatchCommand(opts))

	return cmd
}

// newLogger builds the stderr logger; debug level with --verbose.
func newLogger(opts *RootOptions, w io.Writer) *slog.Logger {
	level := slog.LevelInfo
	if opts.Verbose {
		level = slog.LevelDebug
	}

	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// chestOptions translates global flags into chest options.
func chestOptions(opts *RootOptions, cmd *cobra.Command, logger *slog.Logger) []chest.Option {
	out := []chest.Option{chest.WithLogger(logger)}
	if f := cmd.Flags().Lookup("seed"); f != nil && f.Changed {
		out = append(out, chest.WithSeed(opts.Seed))
	}
	if opts.LegacyPick {
		out = append(out, chest.WithLegacyPick())
	}

	return out
}

// loadChest reads --file and builds a chest from it. Failures are reported
// through formatter and returned as an *ExitError.
func loadChest(opts *RootOptions, cmd *cobra.Command, formatter *OutputFormatter) (*chest.Chest, error) {
	logger := newLogger(opts, cmd.ErrOrStderr())

	defs, err := config.Load(opts.File)
	if err != nil {
		_ = formatter.Error(ErrCodeLoad, err.Error())
		return nil, WrapExitError(ExitCommandError, ErrCodeLoad, err)
	}
	logger.Debug("definitions loaded", slog.String("path", opts.File), slog.Int("tests", len(defs)))

	c, err := chest.New(defs, chestOptions(opts, cmd, logger)...)
	if err != nil {
		code := errorCode(err)
		_ = formatter.Error(code, err.Error())
		return nil, WrapExitError(ExitFailure, code, err)
	}

	return c, nil
}

// errorCode maps a construction error onto its CLI error code.
func errorCode(err error) string {
	switch {
	case errors.Is(err, chest.ErrDuplicateName):
		return ErrCodeDuplicate
	case errors.Is(err, chest.ErrCircularDependency):
		return ErrCodeCircular
	case errors.Is(err, config.ErrLoad):
		return ErrCodeLoad
	default:
		return ErrCodeDefinition
	}
}

func newFormatter(opts *RootOptions, cmd *cobra.Command) *OutputFormatter {
	return &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout()}
}
