package assembler

// pruneGraph applies the three ordered pruning stages plus a final orphan
// sweep, mirroring prune_graph(). Each stage first collects the nodes to
// remove by a read-only pass over the index, then applies the removals --
// avoiding any mutate-while-ranging hazard against the underlying map.
func pruneGraph(g *Graph) {
	pruneBadQuality(g)
	pruneLowFrequency(g)
	pruneLowFrequencyEdges(g)
	pruneOrphans(g)
}

func isBaseQualityGood(n *Node, cfg Config) bool {
	for i := 0; i < cfg.KmerSize; i++ {
		if int(n.QualSums[i]) < cfg.MinBaseQuality {
			return false
		}
	}
	return true
}

func pruneBadQuality(g *Graph) {
	var toRemove []*Node
	g.index.rangeNodes(func(n *Node) {
		if !isBaseQualityGood(n, g.cfg) {
			toRemove = append(toRemove, n)
		}
	})
	for _, n := range toRemove {
		g.removeNode(n)
	}
}

// effectiveMinNodeFrequency restores the original's commented-out
// large-unaligned-graph heuristic (SPEC_FULL.md section 4.2): for a graph
// flagged as covering an unaligned region, the frequency floor grows with
// graph size.
func effectiveMinNodeFrequency(g *Graph) int {
	freq := g.cfg.MinNodeFrequency
	if g.cfg.UnalignedRegion {
		increase := g.nodeCount() / IncreaseMinNodeFreqThreshold
		if increase > 0 {
			freq += increase
		}
	}
	return freq
}

func pruneLowFrequency(g *Graph) {
	freq := effectiveMinNodeFrequency(g)
	if freq <= 1 {
		return
	}
	var toRemove []*Node
	g.index.rangeNodes(func(n *Node) {
		if int(n.Frequency) < freq || !n.HasMultipleUniqueReads {
			toRemove = append(toRemove, n)
		}
	})
	for _, n := range toRemove {
		g.removeNode(n)
	}
}

// perSampleTotals sums, per sample, the frequency of every node reachable
// via the given adjacency list -- the original uses a neighbor's node
// frequency as a proxy for edge frequency.
func perSampleTotals(g *Graph, ids []NodeID) (total [MaxSamples]int) {
	for _, id := range ids {
		n := g.byID(id)
		for i := 0; i < MaxSamples; i++ {
			total[i] += int(n.SampleFrequency[i])
		}
	}
	return total
}

func exceedsMinEdgeRatio(totals [MaxSamples]int, n *Node, minRatio float64) bool {
	for i := 0; i < MaxSamples; i++ {
		if totals[i] > 0 && float64(n.SampleFrequency[i])/float64(totals[i]) >= minRatio {
			return true
		}
	}
	return false
}

// pruneLowFrequencyEdges drops individual edges (not whole nodes) whose
// neighbor fails the min-edge-ratio check in either direction, mirroring
// prune_low_frequency_edges().
func pruneLowFrequencyEdges(g *Graph) {
	type edgeRemoval struct{ from, to *Node }
	var removals []edgeRemoval

	g.index.rangeNodes(func(curr *Node) {
		toTotals := perSampleTotals(g, curr.To)
		for _, id := range curr.To {
			next := g.byID(id)
			if !exceedsMinEdgeRatio(toTotals, next, g.cfg.MinEdgeRatio) {
				removals = append(removals, edgeRemoval{curr, next})
			}
		}

		fromTotals := perSampleTotals(g, curr.From)
		for _, id := range curr.From {
			prev := g.byID(id)
			if !exceedsMinEdgeRatio(fromTotals, prev, g.cfg.MinEdgeRatio) {
				removals = append(removals, edgeRemoval{prev, curr})
			}
		}
	})

	for _, r := range removals {
		r.from.To = removeNodeID(r.from.To, r.to.ID)
		r.to.From = removeNodeID(r.to.From, r.from.ID)
	}
}

func pruneOrphans(g *Graph) {
	var toRemove []*Node
	g.index.rangeNodes(func(n *Node) {
		if len(n.To) == 0 && len(n.From) == 0 {
			toRemove = append(toRemove, n)
		}
	})
	for _, n := range toRemove {
		g.removeNode(n)
	}
}
