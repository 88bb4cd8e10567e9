// SPDX-License-Identifier: MIT

package digraph

// IsCircular runs a depth-first search from every node in insertion order
// and reports the first root whose traversal reaches a node on its current
// recursion path. Self-loops count as cycles.
// If no cycle exists it returns ("", false).
//
// The reported node is the traversal root, which is either on the cycle or
// depends on a node that is.
//
// Complexity: Time O(V+E), Memory O(V).
func (g *Graph[D]) IsCircular() (string, bool) {
	// 1) All nodes start White (unvisited).
	state := make(map[string]int, len(g.order))

	// 2) Launch DFS from each node in registration order.
	for _, id := range g.order {
		if state[id] != White {
			continue
		}
		if g.hasBackEdge(id, state) {
			return id, true
		}
	}

	return "", false
}

// hasBackEdge marks id Gray, explores its successors and reports whether a
// Gray successor (a node on the current path) was reached.
func (g *Graph[D]) hasBackEdge(id string, state map[string]int) bool {
	state[id] = Gray

	for _, next := range g.nodes[id] {
		switch state[next] {
		case Gray:
			// back-edge: next is on the current path
			return true
		case White:
			if g.hasBackEdge(next, state) {
				return true
			}
		}
	}

	// Backtrack: fully explored.
	state[id] = Black

	return false
}

// CyclePath returns one cycle as a closed path [v0, v1, ..., v0], searching
// roots in insertion order. It returns nil when the graph is acyclic.
//
// Complexity: Time O(V+E), Memory O(V).
func (g *Graph[D]) CyclePath() []string {
	state := make(map[string]int, len(g.order))
	path := make([]string, 0, len(g.order))

	var visit func(id string) []string
	visit = func(id string) []string {
		state[id] = Gray
		path = append(path, id)
		for _, next := range g.nodes[id] {
			switch state[next] {
			case Gray:
				idx := indexOf(path, next)
				cycle := append([]string(nil), path[idx:]...)

				return append(cycle, next)
			case White:
				if c := visit(next); c != nil {
					return c
				}
			}
		}
		path = path[:len(path)-1]
		state[id] = Black

		return nil
	}

	for _, id := range g.order {
		if state[id] == White {
			if c := visit(id); c != nil {
				return c
			}
		}
	}

	return nil
}

// indexOf returns the first index of val in s, or -1 if not found.
func indexOf(s []string, val string) int {
	for i, x := range s {
		if x == val {
			return i
		}
	}

	return -1
}
