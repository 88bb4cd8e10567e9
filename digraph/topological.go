// SPDX-License-Identifier: MIT

package digraph

import "fmt"

// topoSorter encapsulates state for a dependencies-first traversal.
type topoSorter[D any] struct {
	graph *Graph[D]      // the graph being sorted
	state map[string]int // visitation state: White, Gray, Black
	order []string       // recorded post-order sequence
}

// TopologicalOrder returns every node such that for each edge u→v, v comes
// before u. Roots are explored in insertion order and successors in edge
// order, so the result is deterministic.
// If a cycle is detected it returns ErrCycleDetected wrapped with the node
// at which the back-edge was found.
//
// Complexity: Time O(V+E), Memory O(V).
func (g *Graph[D]) TopologicalOrder() ([]string, error) {
	sorter := &topoSorter[D]{
		graph: g,
		state: make(map[string]int, len(g.order)),
		order: make([]string, 0, len(g.order)),
	}
	for _, id := range g.order {
		if sorter.state[id] == White {
			if err := sorter.visit(id); err != nil {
				return nil, err
			}
		}
	}

	return sorter.order, nil
}

// visit performs a DFS from id and records id after all of its successors.
func (t *topoSorter[D]) visit(id string) error {
	switch t.state[id] {
	case Gray:
		return fmt.Errorf("%w: at %q", ErrCycleDetected, id)
	case Black:
		return nil
	}
	t.state[id] = Gray

	for _, next := range t.graph.nodes[id] {
		if err := t.visit(next); err != nil {
			return err
		}
	}

	t.state[id] = Black
	t.order = append(t.order, id)

	return nil
}
