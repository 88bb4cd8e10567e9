// SPDX-License-Identifier: MIT

package chest

import (
	"log/slog"

	"github.com/katalvlaran/bandit/coin"
	"github.com/katalvlaran/bandit/digraph"
)

// pickingOrder places non-dependent coins first, in definition order, and
// dependent coins after them, dependencies first.
//
// Dependent coins are ordered by a topological traversal of a coin-level
// graph: an edge a → b means a rule of a (or of one of its variants) names b
// or one of b's variants. Only edges between dependent coins matter, since
// every non-dependent coin is already earlier.
//
// The node-level check in New cannot see every coin-level cycle: variant v1
// of m may depend on x while x depends on variant v2 of m. In that case the
// dependent coins keep definition order.
func (c *Chest) pickingOrder() []*coin.Coin {
	order := make([]*coin.Coin, 0, len(c.coins))
	byName := make(map[string]*coin.Coin)

	g := digraph.New[*coin.Coin]()
	for _, cn := range c.coins {
		if !cn.IsDependent() {
			order = append(order, cn)
			continue
		}
		g.AddNode(cn.Name(), cn)
		byName[cn.Name()] = cn
	}
	if g.Len() == 0 {
		return order
	}

	for _, cn := range c.coins {
		if !cn.IsDependent() {
			continue
		}
		for _, r := range c.rulesOf(cn) {
			owner := c.ownerOf(r.Name)
			if owner == "" || owner == cn.Name() {
				continue
			}
			g.AddEdge(cn.Name(), owner) // no-op unless owner is dependent
		}
	}

	ids, err := g.TopologicalOrder()
	if err != nil {
		c.logger.Warn("dependent tests form a cycle across variants; keeping definition order",
			slog.Any("error", err))
		ids = g.Nodes()
	}
	for _, id := range ids {
		order = append(order, byName[id])
	}

	return order
}

// rulesOf returns every rule attached to cn or its variants.
func (c *Chest) rulesOf(cn *coin.Coin) []coin.DependencyRule {
	rules := cn.DependsOn()
	for _, v := range cn.Variants() {
		rules = append(rules, v.DependsOn()...)
	}

	return rules
}

// ownerOf maps a coin or variant name to the owning coin name; "" if unknown.
func (c *Chest) ownerOf(name string) string {
	switch e := c.byName[name].(type) {
	case *coin.Coin:
		return e.Name()
	case *coin.Variant:
		return e.Coin()
	}

	return ""
}
