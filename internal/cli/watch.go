// SPDX-License-Identifier: MIT

package cli

import (
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/bandit/chest"
	"github.com/katalvlaran/bandit/coin"
	"github.com/katalvlaran/bandit/config"
)

// WatchOptions holds flags for the watch command.
type WatchOptions struct {
	*RootOptions
	Debounce time.Duration
}

// NewWatchCommand creates the watch command.
func NewWatchCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &WatchOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Revalidate the definitions file on every change",
		Long: `Watch the definitions file and rebuild the chest each time it is
written. Every rebuild prints one validation line; errors are printed and
watching continues. Stops on interrupt.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWatch(opts, cmd)
		},
	}

	cmd.Flags().DurationVar(&opts.Debounce, "debounce", config.DefaultDebounce, "wait for writes to settle")

	return cmd
}

func runWatch(opts *WatchOptions, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd)
	logger := newLogger(opts.RootOptions, cmd.ErrOrStderr())

	w := &config.Watcher{Path: opts.File, Debounce: opts.Debounce, Logger: logger}
	err := w.Run(cmd.Context(), func(defs []coin.Definition, err error) {
		if err != nil {
			_ = formatter.Error(ErrCodeLoad, err.Error())
			return
		}

		c, err := chest.New(defs, chestOptions(opts.RootOptions, cmd, logger)...)
		if err != nil {
			_ = formatter.Error(errorCode(err), err.Error())
			return
		}

		logger.Debug("chest rebuilt", slog.Int("tests", c.Len()))
		formatter.Printf("✓ %d tests valid (%d names)\n", c.Len(), countNames(c))
		_ = formatter.Success(ValidationResult{
			Valid:        true,
			Tests:        c.Len(),
			Names:        countNames(c),
			PickingOrder: coinNames(c.PickingOrder()),
		})
	})
	if err != nil {
		_ = formatter.Error(ErrCodeLoad, err.Error())
		return WrapExitError(ExitCommandError, ErrCodeLoad, err)
	}

	return nil
}
