// SPDX-License-Identifier: MIT

package cli

import (
	"github.com/spf13/cobra"

	"github.com/katalvlaran/bandit/chest"
	"github.com/katalvlaran/bandit/coin"
)

// ValidationResult is the JSON payload of the validate command.
type ValidationResult struct {
	Valid        bool     `json:"valid"`
	Tests        int      `json:"tests"`
	Names        int      `json:"names"`
	PickingOrder []string `json:"pickingOrder"`
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Check a definitions file without drawing",
		Long: `Load the definitions file and build the chest from it.

Reports missing fields, out-of-range probabilities, unknown types,
duplicate names and circular dependencies.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(rootOpts, cmd)
		},
	}
}

func runValidate(opts *RootOptions, cmd *cobra.Command) error {
	formatter := newFormatter(opts, cmd)

	c, err := loadChest(opts, cmd, formatter)
	if err != nil {
		return err
	}

	result := ValidationResult{
		Valid:        true,
		Tests:        c.Len(),
		Names:        countNames(c),
		PickingOrder: coinNames(c.PickingOrder()),
	}
	formatter.Printf("✓ %d tests valid (%d names)\n", result.Tests, result.Names)
	formatter.Printf("picking order: %v\n", result.PickingOrder)

	return formatter.Success(result)
}

func coinNames(coins []*coin.Coin) []string {
	out := make([]string, len(coins))
	for i, cn := range coins {
		out[i] = cn.Name()
	}
	return out
}

// countNames counts coin and variant names.
func countNames(c *chest.Chest) int {
	n := 0
	for _, cn := range c.Coins() {
		n += 1 + len(cn.Variants())
	}
	return n
}
