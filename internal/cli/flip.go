// SPDX-License-Identifier: MIT

package cli

import (
	"github.com/spf13/cobra"

	"github.com/katalvlaran/bandit/sampler"
)

// FlipEntry is one draw of the flip command.
type FlipEntry struct {
	Coin   string `json:"coin"`
	Picked string `json:"picked"`
}

// NewFlipCommand creates the flip command.
func NewFlipCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "flip",
		Short: "Draw a raw sample without resolving dependencies",
		Long: `Flip every coin once in picking order and print what was drawn.

Dependency rules are not applied; use mix for final assignments.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFlip(rootOpts, cmd)
		},
	}
}

func runFlip(opts *RootOptions, cmd *cobra.Command) error {
	formatter := newFormatter(opts, cmd)

	c, err := loadChest(opts, cmd, formatter)
	if err != nil {
		return err
	}

	sample := c.FlipCoins()
	entries := make([]FlipEntry, len(sample))
	for i, cn := range c.PickingOrder() {
		entries[i] = FlipEntry{Coin: cn.Name(), Picked: sample[i]}

		picked := sample[i]
		if picked == sampler.NoValue {
			picked = "-"
		}
		formatter.Printf("%s\t%s\n", cn.Name(), picked)
	}

	return formatter.Success(entries)
}
