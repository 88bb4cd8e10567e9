// SPDX-License-Identifier: MIT

// Package digraph provides a small insertion-ordered directed graph used to
// validate dependency configurations.
//
// What:
//
//   - Graph[D]: adjacency lists keyed by string node IDs plus one detail
//     value of type D per node. Nodes and edges remember insertion order,
//     so every traversal is deterministic.
//   - IsCircular: depth-first search from every node in insertion order,
//     tracking a visited set and an on-path set. It reports the first root
//     whose traversal reaches a node already on the current path, self-loops
//     included.
//   - TopologicalOrder: dependencies-first ordering (post-order DFS). For an
//     edge u→v, v appears before u. Returns ErrCycleDetected on cycles.
//   - WriteDOT: Graphviz export of the adjacency.
//
// Why:
//
//	Dependency rules point from a dependent entity to the entity it watches.
//	A cycle makes the resolution order undefined, so configurations with one
//	are rejected; the acyclic graph then doubles as the source of a picking
//	order.
//
// Semantics:
//
//   - AddNode is idempotent: the first registration wins and edges are kept.
//   - AddEdge requires both endpoints and never creates parallel edges.
//
// Complexity:
//
//   - AddNode:          O(1)
//   - AddEdge:          O(deg(from))
//   - IsCircular:       Time O(V+E), Memory O(V)
//   - TopologicalOrder: Time O(V+E), Memory O(V)
//
// Errors:
//
//   - ErrCycleDetected  cycle discovered during TopologicalOrder
//
// A Graph is not safe for concurrent mutation.
package digraph
