// SPDX-License-Identifier: MIT

package chest

import (
	"fmt"
	"log/slog"
	"math/rand"
	"slices"
	"sync"

	"github.com/katalvlaran/bandit/coin"
	"github.com/katalvlaran/bandit/digraph"
	"github.com/katalvlaran/bandit/sampler"
)

// Chest holds a validated set of coins.
type Chest struct {
	coins  []*coin.Coin           // definition order
	order  []*coin.Coin           // picking order
	byName map[string]coin.Entity // coin and variant names
	graph  *digraph.Graph[NodeDetail]

	mu         sync.Mutex // guards rng
	rng        *rand.Rand
	pick       sampler.PickFunc
	sampleSize int
	logger     *slog.Logger
}

// New validates defs and builds a Chest.
//
// Steps:
//  1. Build one coin per definition; an invalid type tag or field fails.
//  2. Register every coin and variant name; a repeated name fails.
//  3. Build the dependency graph and reject cycles.
//  4. Compute the picking order.
//
// Complexity: O(N + R) to validate and register N names with R rules, plus
// O(T + R) for the cycle check and picking order over T coins.
func New(defs []coin.Definition, opts ...Option) (*Chest, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	c := &Chest{
		coins:      make([]*coin.Coin, 0, len(defs)),
		byName:     make(map[string]coin.Entity, len(defs)),
		rng:        o.rng,
		pick:       o.pick,
		sampleSize: o.sampleSize,
		logger:     o.logger,
	}

	// 1-2) Build coins and check the namespace. The namespace set lives only
	// for the duration of construction.
	for i, def := range defs {
		cn, err := coin.New(def)
		if err != nil {
			return nil, fmt.Errorf("chest: %s: definition %d: %w", methodNew, i, err)
		}
		if err = c.register(cn, def); err != nil {
			return nil, err
		}
		c.coins = append(c.coins, cn)
	}

	// 3) Dependency graph, validation only.
	c.graph = buildDependencyGraph(c.coins)
	if node, circular := c.graph.IsCircular(); circular {
		return nil, fmt.Errorf("chest: %s: the %s test has a dependency or is dependent on a test with a circular dependency in its configuration (cycle %v): %w",
			methodNew, node, c.graph.CyclePath(), ErrCircularDependency)
	}
	c.warnUnknownReferences()

	// 4) Picking order is fixed for the lifetime of the chest.
	c.order = c.pickingOrder()

	c.logger.Debug("chest constructed",
		slog.Int("coins", len(c.coins)),
		slog.Int("names", len(c.byName)),
		slog.Int("dependencies", c.graph.EdgeCount()),
		slog.Any("order", names(c.order)),
	)

	return c, nil
}

// register adds the coin and its variants to the namespace.
func (c *Chest) register(cn *coin.Coin, def coin.Definition) error {
	entities := []coin.Entity{cn}
	for _, v := range cn.Variants() {
		entities = append(entities, v)
	}
	for _, e := range entities {
		if _, taken := c.byName[e.Name()]; taken {
			return fmt.Errorf("chest: %s: the name %s on the test with the following test definition %s is already in use: %w",
				methodNew, e.Name(), coin.Describe(def), ErrDuplicateName)
		}
		c.byName[e.Name()] = e
	}

	return nil
}

// warnUnknownReferences logs rules that reference names outside the chest.
// Such rules see their target as permanently absent.
func (c *Chest) warnUnknownReferences() {
	for _, id := range c.graph.Nodes() {
		if _, ok := c.byName[id]; !ok {
			c.logger.Warn("dependency rule references unknown test", slog.String("name", id))
		}
	}
}

// GetCoin returns the coin or variant called name.
//
// Complexity: O(1).
func (c *Chest) GetCoin(name string) (coin.Entity, bool) {
	e, ok := c.byName[name]

	return e, ok
}

// Coins returns the coins in definition order.
func (c *Chest) Coins() []*coin.Coin {
	return slices.Clone(c.coins)
}

// PickingOrder returns the coins in the order they are flipped and resolved.
func (c *Chest) PickingOrder() []*coin.Coin {
	return slices.Clone(c.order)
}

// Len returns the number of coins.
func (c *Chest) Len() int {
	return len(c.coins)
}

func names(coins []*coin.Coin) []string {
	out := make([]string, len(coins))
	for i, cn := range coins {
		out[i] = cn.Name()
	}

	return out
}
