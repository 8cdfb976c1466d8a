package assembler

import "bytes"

// isRoot mirrors is_root(): a node with no incoming edges is a root, and so
// is a node whose only incoming edge is a self-loop (same k-mer content) --
// the self-loop is left for contig building to detect and terminate on.
func isRoot(g *Graph, n *Node, k int) bool {
	if len(n.From) == 0 {
		return true
	}
	if len(n.From) == 1 {
		from := g.byID(n.From[0])
		if bytes.Equal(from.key(k), n.key(k)) {
			return true
		}
	}
	return false
}

// identifyRoots marks IsRoot on every qualifying surviving node and returns
// them in index-iteration order (the original's identify_root_nodes builds a
// linked list in the same order it walks the hash map).
func identifyRoots(g *Graph) []*Node {
	var roots []*Node
	g.index.rangeNodes(func(n *Node) {
		if isRoot(g, n, g.cfg.KmerSize) {
			n.IsRoot = true
			roots = append(roots, n)
		}
	})
	return roots
}
