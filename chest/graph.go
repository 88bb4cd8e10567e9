// SPDX-License-Identifier: MIT

package chest

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/katalvlaran/bandit/coin"
	"github.com/katalvlaran/bandit/digraph"
)

// NodeDetail describes a dependent entity in the dependency graph. Nodes
// that are only referenced by rules carry the zero value.
type NodeDetail struct {
	Type        coin.Type
	Probability int
	Metadata    map[string]any
	DependsOn   []coin.DependencyRule
}

// buildDependencyGraph adds a node per dependent coin and dependent variant,
// then a node per referenced name and an edge dependent → dependency per
// rule. Dependents are registered before references so that a dependent
// named by an earlier rule still carries its detail.
func buildDependencyGraph(coins []*coin.Coin) *digraph.Graph[NodeDetail] {
	g := digraph.New[NodeDetail]()

	var dependents []string
	add := func(name string, detail NodeDetail) {
		g.AddNode(name, detail)
		dependents = append(dependents, name)
	}

	for _, cn := range coins {
		switch cn.Type() {
		case coin.TypeDependent:
			add(cn.Name(), NodeDetail{
				Type:        cn.Type(),
				Probability: cn.Probability(),
				Metadata:    cn.Metadata(),
				DependsOn:   cn.DependsOn(),
			})
		case coin.TypeDependentMultivariant:
			for _, v := range cn.Variants() {
				if !v.IsDependent() {
					continue
				}
				add(v.Name(), NodeDetail{
					Type:        v.Type(),
					Probability: v.Probability(),
					Metadata:    v.Metadata(),
					DependsOn:   v.DependsOn(),
				})
			}
		}
	}

	for _, name := range dependents {
		d, _ := g.Detail(name)
		for _, r := range d.DependsOn {
			g.AddNode(r.Name, NodeDetail{})
			g.AddEdge(name, r.Name)
		}
	}

	return g
}

// DependencyGraph returns a freshly built copy of the dependency graph.
func (c *Chest) DependencyGraph() *digraph.Graph[NodeDetail] {
	return buildDependencyGraph(c.coins)
}

// WriteDOT writes the dependency graph in Graphviz syntax. Each node is
// labelled with its type, or "reference" for nodes only named by rules.
func (c *Chest) WriteDOT(w io.Writer) error {
	err := c.graph.WriteDOT(w, "dependencies", func(id string, d NodeDetail) string {
		if d.Type == "" {
			return fmt.Sprintf("%s\nreference", id)
		}
		return fmt.Sprintf("%s\n%s %d%%", id, d.Type, d.Probability)
	})
	if err != nil {
		c.logger.Error("write dependency graph", slog.Any("error", err))
	}

	return err
}
