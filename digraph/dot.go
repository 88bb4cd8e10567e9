// SPDX-License-Identifier: MIT

package digraph

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
)

// WriteDOT writes g in Graphviz DOT syntax. Nodes and edges are emitted in
// insertion order; label, when non-nil, supplies a per-node label.
//
// Complexity: O(V + E).
func (g *Graph[D]) WriteDOT(w io.Writer, name string, label func(id string, detail D) string) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintf(bw, "digraph %s {\n", strconv.Quote(name))
	for _, id := range g.order {
		if label != nil {
			fmt.Fprintf(bw, "\t%s [label=%s];\n", strconv.Quote(id), strconv.Quote(label(id, g.details[id])))
			continue
		}
		fmt.Fprintf(bw, "\t%s;\n", strconv.Quote(id))
	}
	for _, from := range g.order {
		for _, to := range g.nodes[from] {
			fmt.Fprintf(bw, "\t%s -> %s;\n", strconv.Quote(from), strconv.Quote(to))
		}
	}
	fmt.Fprintln(bw, "}")

	return bw.Flush()
}
