// SPDX-License-Identifier: MIT

package cli

import (
	"fmt"
	"maps"
	"slices"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/katalvlaran/bandit/telemetry"
)

// SimulateOptions holds flags for the simulate command.
type SimulateOptions struct {
	*RootOptions
	Runs int
}

// SimulationRow compares the configured and observed rate of one name.
type SimulationRow struct {
	Name       string  `json:"name"`
	Coin       string  `json:"coin"`
	Configured int     `json:"configured"`
	Observed   float64 `json:"observed"`
}

// NewSimulateCommand creates the simulate command.
func NewSimulateCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &SimulateOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Mix many times and report observed activation rates",
		Long: `Run mix repeatedly and compare each test's observed activation rate
with its configured probability. Dependency rules make the two differ
on purpose; everything else should converge as --runs grows.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSimulate(opts, cmd)
		},
	}

	cmd.Flags().IntVarP(&opts.Runs, "runs", "n", 1000, "number of mixes")

	return cmd
}

func runSimulate(opts *SimulateOptions, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd)
	if opts.Runs < 1 {
		msg := fmt.Sprintf("--runs must be positive, got %d", opts.Runs)
		_ = formatter.Error(ErrCodeDefinition, msg)
		return WrapExitError(ExitCommandError, msg, nil)
	}

	c, err := loadChest(opts.RootOptions, cmd, formatter)
	if err != nil {
		return err
	}

	reg := prometheus.NewRegistry()
	rec := telemetry.NewRecorder(reg)
	for i := 0; i < opts.Runs; i++ {
		c.MixCoins(rec.Converter())
	}

	rates, err := telemetry.Rates(reg)
	if err != nil {
		return WrapExitError(ExitCommandError, "gather rates", err)
	}

	rows := make([]SimulationRow, 0, len(rates))
	for _, name := range slices.Sorted(maps.Keys(rates)) {
		rate := rates[name]
		row := SimulationRow{Name: name, Coin: rate.Coin, Observed: rate.Ratio()}
		if e, ok := c.GetCoin(name); ok {
			if p, ok := e.(interface{ Probability() int }); ok {
				row.Configured = p.Probability()
			}
		}
		rows = append(rows, row)
		formatter.Printf("%-24s %3d%%  %6.2f%%\n", name, row.Configured, row.Observed*100)
	}

	return formatter.Success(rows)
}
