// SPDX-License-Identifier: MIT

package digraph

import (
	"errors"
	"slices"
)

// ErrCycleDetected indicates that a cycle was encountered during
// TopologicalOrder.
var ErrCycleDetected = errors.New("digraph: cycle detected")

// VertexState represents the DFS visitation state of a node.
const (
	White = iota // White: the node has not been visited yet.
	Gray         // Gray: the node is on the current recursion path.
	Black        // Black: the node and all its descendants are fully explored.
)

// Graph is an insertion-ordered directed graph with per-node details.
//
// order keeps node registration order; nodes maps each ID to its ordered
// adjacency list; details stores the value given at first registration.
type Graph[D any] struct {
	order   []string
	nodes   map[string][]string
	details map[string]D
}

// New creates an empty Graph.
//
// Complexity: O(1).
func New[D any]() *Graph[D] {
	return &Graph[D]{
		nodes:   make(map[string][]string),
		details: make(map[string]D),
	}
}

// HasNode reports whether id is registered.
func (g *Graph[D]) HasNode(id string) bool {
	_, ok := g.nodes[id]

	return ok
}

// AddNode registers id with detail. If id already exists the call is a
// no-op: the original detail and all existing edges are kept.
//
// Complexity: O(1).
func (g *Graph[D]) AddNode(id string, detail D) {
	if g.HasNode(id) {
		return
	}
	g.order = append(g.order, id)
	g.nodes[id] = nil
	g.details[id] = detail
}

// HasEdgeTo reports whether the edge from→to exists.
//
// Complexity: O(deg(from)).
func (g *Graph[D]) HasEdgeTo(from, to string) bool {
	return slices.Contains(g.nodes[from], to)
}

// AddEdge appends to to from's adjacency list iff both nodes exist and the
// edge is not already present. It reports whether the edge was inserted.
//
// Complexity: O(deg(from)).
func (g *Graph[D]) AddEdge(from, to string) bool {
	if !g.HasNode(from) || !g.HasNode(to) || g.HasEdgeTo(from, to) {
		return false
	}
	g.nodes[from] = append(g.nodes[from], to)

	return true
}

// Nodes returns node IDs in insertion order.
//
// Complexity: O(V) for the copy.
func (g *Graph[D]) Nodes() []string {
	return slices.Clone(g.order)
}

// Neighbors returns the adjacency list of id in insertion order, or nil if
// id is unknown.
//
// Complexity: O(deg(id)).
func (g *Graph[D]) Neighbors(id string) []string {
	return slices.Clone(g.nodes[id])
}

// Detail returns the detail stored for id.
func (g *Graph[D]) Detail(id string) (D, bool) {
	d, ok := g.details[id]

	return d, ok
}

// Len returns the number of nodes.
func (g *Graph[D]) Len() int {
	return len(g.order)
}

// EdgeCount returns the number of edges.
//
// Complexity: O(V).
func (g *Graph[D]) EdgeCount() int {
	n := 0
	for _, adj := range g.nodes {
		n += len(adj)
	}

	return n
}
