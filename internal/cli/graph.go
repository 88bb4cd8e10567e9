// SPDX-License-Identifier: MIT

package cli

import (
	"github.com/spf13/cobra"
)

// GraphNode is one node of the graph command's JSON output.
type GraphNode struct {
	ID          string `json:"id"`
	Type        string `json:"type,omitempty"` // empty for names referenced but not dependent
	Probability int    `json:"probability"`
}

// GraphResult is the JSON payload of the graph command.
type GraphResult struct {
	Nodes []GraphNode `json:"nodes"`
	Edges [][2]string `json:"edges"`
}

// NewGraphCommand creates the graph command.
func NewGraphCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "graph",
		Short: "Print the dependency graph",
		Long: `Print the dependency graph of the definitions file. Edges point from a
dependent test or variant to the name its rule references.

Text output is Graphviz DOT:
  bandit graph -f tests.yaml | dot -Tsvg > deps.svg`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGraph(rootOpts, cmd)
		},
	}
}

func runGraph(opts *RootOptions, cmd *cobra.Command) error {
	formatter := newFormatter(opts, cmd)

	c, err := loadChest(opts, cmd, formatter)
	if err != nil {
		return err
	}

	if !formatter.JSON() {
		return c.WriteDOT(formatter.Writer)
	}

	g := c.DependencyGraph()
	result := GraphResult{Nodes: []GraphNode{}, Edges: [][2]string{}}
	for _, id := range g.Nodes() {
		d, _ := g.Detail(id)
		result.Nodes = append(result.Nodes, GraphNode{ID: id, Type: d.Type.String(), Probability: d.Probability})
		for _, to := range g.Neighbors(id) {
			result.Edges = append(result.Edges, [2]string{id, to})
		}
	}

	return formatter.Success(result)
}
