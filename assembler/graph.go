package assembler

// Graph is the complete, per-invocation de Bruijn graph plus the arenas that
// back it. A Graph is never shared between goroutines: every concurrent
// assembly constructs and owns its own Graph (see batch.Run).
type Graph struct {
	cfg Config

	nodes    *nodePool
	reads    readPool
	condensed *condensedSeqPool
	index    *kmerIndex

	allNodes []*Node // allNodes[id-1] == the node with that ID
	nextID   NodeID

	seenReads map[uint64]struct{} // only populated if cfg.SkipExactDuplicateReads
}

func newGraph(cfg Config) *Graph {
	g := &Graph{
		cfg:       cfg,
		nodes:     newNodePool(NodesPerBlock, MaxNodeBlocks),
		reads:     newReadPool(cfg.ReadLength+readArenaSlotOverhead, ReadsPerBlock, MaxReadBlocks),
		condensed: newCondensedSeqPool(),
		index:     newKmerIndex(cfg.KmerSize),
	}
	if cfg.SkipExactDuplicateReads {
		g.seenReads = make(map[uint64]struct{})
	}
	return g
}

func (g *Graph) byID(id NodeID) *Node { return g.allNodes[id-1] }

// newNode allocates a node backed by the given k-mer window, registers it in
// the index and the by-ID table, and assigns it a monotonically increasing
// ID -- mirroring new_node()/next_node_id in the original builder.
func (g *Graph) newNode(window []byte) *Node {
	n := g.nodes.allocate()
	n.Kmer = window
	g.nextID++
	n.ID = g.nextID
	g.allNodes = append(g.allNodes, n)
	g.index.put(n)
	return n
}

// nodeCount returns the number of nodes currently live in the index (i.e.
// not yet removed by pruning).
func (g *Graph) nodeCount() int { return g.index.size() }

// link creates a directed edge curr -> next, deduping against the existing
// adjacency lists exactly as the original's add_edge does (a linear scan of
// the (usually short) adjacency list).
func (g *Graph) link(curr, next *Node) {
	if !containsNodeID(curr.To, next.ID) {
		curr.To = append(curr.To, next.ID)
	}
	if !containsNodeID(next.From, curr.ID) {
		next.From = append(next.From, curr.ID)
	}
}

// removeNode detaches n from every neighbor's adjacency list and drops it
// from the index. It does not touch g.allNodes, so NodeID -> *Node
// resolution remains valid for any edge that was removed alongside it.
func (g *Graph) removeNode(n *Node) {
	for _, id := range n.To {
		next := g.byID(id)
		next.From = removeNodeID(next.From, n.ID)
	}
	for _, id := range n.From {
		prev := g.byID(id)
		prev.To = removeNodeID(prev.To, n.ID)
	}
	n.To = nil
	n.From = nil
	g.index.remove(n)
}
