package assembler

// condenseGraph collapses every linear (non-branching) chain into a single
// node holding the concatenated sequence, mirroring condense_graph(). Nodes
// absorbed into a chain are marked IsFiltered and kept in the index only so
// that later lookups (if any) resolve harmlessly; callers must not rely on
// From-adjacency after this step runs -- it is no longer maintained, exactly
// as the original leaves it stale past this point.
func condenseGraph(g *Graph) {
	k := g.cfg.KmerSize

	var heads []*Node
	g.index.rangeNodes(func(n *Node) {
		heads = append(heads, n)
	})

	for _, node := range heads {
		isStart := !hasOneIncomingEdge(g, node) || prevHasMultipleOutgoing(g, node)
		if !isStart || !hasOneOutgoingEdge(node) {
			continue
		}
		next := g.byID(node.To[0])
		if !hasOneIncomingEdge(g, next) {
			continue
		}

		var last []NodeID
		seq := make([]byte, 0, k+8)
		seq = append(seq, node.key(k)[0])
		nodesCondensed := 1

		for next != nil && hasOneIncomingEdge(g, next) && nodesCondensed < MaxContigSize {
			last = next.To
			if len(next.To) > 0 {
				seq = append(seq, next.key(k)[0])
			} else {
				seq = append(seq, next.key(k)...)
			}

			var temp *Node
			if hasOneOutgoingEdge(next) {
				temp = g.byID(next.To[0])
			}

			next.IsFiltered = true
			next = temp
			nodesCondensed++
		}

		owned := g.condensed.append(len(seq))
		copy(owned, seq)

		node.Seq = owned
		node.IsCondensed = true
		node.To = append([]NodeID(nil), last...)
	}
}

func hasOneIncomingEdge(g *Graph, n *Node) bool { return len(n.From) == 1 }
func hasOneOutgoingEdge(n *Node) bool           { return len(n.To) == 1 }

func prevHasMultipleOutgoing(g *Graph, n *Node) bool {
	if !hasOneIncomingEdge(g, n) {
		return false
	}
	prev := g.byID(n.From[0])
	return len(prev.To) > 1
}
