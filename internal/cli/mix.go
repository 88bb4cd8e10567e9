// SPDX-License-Identifier: MIT

package cli

import (
	"maps"
	"slices"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/katalvlaran/bandit/chest"
)

// FieldAssignmentID is the record field carrying the id of one mix.
const FieldAssignmentID = "assignmentId"

// MixOptions holds flags for the mix command.
type MixOptions struct {
	*RootOptions
	AssignmentID string
}

// MixResult is the JSON payload of the mix command.
type MixResult struct {
	AssignmentID string                  `json:"assignmentId"`
	Active       []string                `json:"active"`
	Records      map[string]chest.Record `json:"records"`
}

// NewMixCommand creates the mix command.
func NewMixCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &MixOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "mix",
		Short: "Draw one final assignment",
		Long: `Flip every coin, apply dependency rules and print the activation of
every test and variant.

Each record is stamped with an assignment id; a random UUID unless --id
is given.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMix(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.AssignmentID, "id", "", "assignment id stamped on every record")

	return cmd
}

func runMix(opts *MixOptions, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd)

	c, err := loadChest(opts.RootOptions, cmd, formatter)
	if err != nil {
		return err
	}

	id := opts.AssignmentID
	if id == "" {
		id = uuid.NewString()
	}

	mix := c.MixCoins(chest.SetField(FieldAssignmentID, id))
	result := MixResult{AssignmentID: id, Active: chest.ActiveNames(mix), Records: mix}

	formatter.Printf("assignment %s\n", id)
	for _, name := range slices.Sorted(maps.Keys(mix)) {
		r := mix[name]
		formatter.Printf("%s\t%s\t%t\n", name, r.Coin, r.Active)
	}

	return formatter.Success(result)
}
