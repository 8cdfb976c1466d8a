package assembler

import (
	"bytes"
	"fmt"
	"math"

	"github.com/biogo/store/llrb"
	"github.com/minio/highwayhash"
)

// scoreEntry is one entry in the bounded top-TopKContigs score structure. seq
// is a strictly increasing tiebreaker so two contigs with an identical score
// both occupy a slot -- llrb.Tree, like any BST, treats a Compare()==0
// insert as a replace rather than as a second element.
type scoreEntry struct {
	score float64
	seq   int64
}

func (e scoreEntry) Compare(other llrb.Comparable) int {
	o := other.(scoreEntry)
	switch {
	case e.score < o.score:
		return -1
	case e.score > o.score:
		return 1
	case e.seq < o.seq:
		return -1
	case e.seq > o.seq:
		return 1
	default:
		return 0
	}
}

// scoreHeap is the bounded top-TopKContigs contig-score structure, backed by
// an llrb.Tree the same way the teacher's bam sort merger uses one for its
// own bounded n-way merge.
type scoreHeap struct {
	tree *llrb.Tree
	seq  int64
}

func newScoreHeap() *scoreHeap { return &scoreHeap{tree: &llrb.Tree{}} }

func (h *scoreHeap) isScoreOK(score float64) bool {
	if h.tree.Len() == TopKContigs {
		min := h.tree.Min().(scoreEntry)
		return score >= min.score
	}
	return h.tree.Len() < TopKContigs
}

func (h *scoreHeap) update(score float64) {
	if h.tree.Len() == TopKContigs {
		min := h.tree.Min().(scoreEntry)
		if score >= min.score {
			h.tree.DeleteMin()
			h.tree.Insert(scoreEntry{score, h.nextSeq()})
		}
		return
	}
	h.tree.Insert(scoreEntry{score, h.nextSeq()})
}

func (h *scoreHeap) nextSeq() int64 { h.seq++; return h.seq }

// contigState is one in-flight path through the graph, from a root to its
// current frontier node.
type contigState struct {
	fragments [][]byte
	curr      *Node
	visited   map[NodeID]struct{}
	score     float64
	realSize  int
	isRepeat  bool
}

func newContigState(root *Node) *contigState {
	return &contigState{curr: root, visited: make(map[NodeID]struct{})}
}

func (c *contigState) clone() *contigState {
	cp := &contigState{
		fragments: append([][]byte(nil), c.fragments...),
		curr:      c.curr,
		score:     c.score,
		realSize:  c.realSize,
		isRepeat:  c.isRepeat,
		visited:   make(map[NodeID]struct{}, len(c.visited)),
	}
	for id := range c.visited {
		cp.visited[id] = struct{}{}
	}
	return cp
}

func (c *contigState) appendCurrent(entireKmer bool, k int) {
	switch {
	case c.curr.IsCondensed:
		c.fragments = append(c.fragments, c.curr.Seq)
		c.realSize += len(c.curr.Seq)
	case !entireKmer:
		c.fragments = append(c.fragments, c.curr.Kmer[:1])
		c.realSize++
	default:
		frag := append([]byte(nil), c.curr.Kmer[:k]...)
		c.fragments = append(c.fragments, frag)
		c.realSize += k
	}
}

func (c *contigState) isVisited(n *Node) bool {
	_, ok := c.visited[n.ID]
	return ok
}

// highwayKey is a fixed, non-secret 32-byte key used only to fingerprint
// contig sequences for exact-duplicate suppression -- not a security
// boundary, just a stable key HighwayHash requires.
var highwayKey [32]byte

// enumerateContigs runs the stack-based DFS from root, mirroring
// build_contigs(): repeat detection, terminal-node flushing, and
// fork-weighted scoring -- log10(neighbor frequency) - log10(total outgoing
// frequency) is only folded into a branch's score at a genuine fork.
func enumerateContigs(g *Graph, root *Node, heap *scoreHeap, contigCount *int, out *bytes.Buffer, seen map[[16]byte]struct{}) Status {
	cfg := g.cfg
	k := cfg.KmerSize
	status := StatusOK

	stack := []*contigState{newContigState(root)}
	var toOutput []*contigState
	pathsFromRoot := 1

loop:
	for len(stack) > 0 && status == StatusOK {
		c := stack[len(stack)-1]

		switch {
		case c.isVisited(c.curr):
			c.isRepeat = true
			stack = stack[:len(stack)-1]
			if cfg.TruncateOnRepeat {
				status = StatusStoppedOnRepeat
			}

		case len(c.curr.To) == 0 || c.realSize >= MaxContigSize-1:
			c.appendCurrent(true, k)
			toOutput = append(toOutput, c)
			heap.update(c.score)
			stack = stack[:len(stack)-1]

		default:
			c.appendCurrent(false, k)
			if c.realSize >= MaxContigSize {
				status = StatusTooManyContigs
				break loop
			}
			c.visited[c.curr.ID] = struct{}{}

			departedTo := c.curr.To
			totalEdgeFreq := 0
			for _, id := range departedTo {
				totalEdgeFreq += int(g.byID(id).Frequency)
			}

			baseline := c.clone()
			prevScore := c.score
			hasFork := len(departedTo) > 1
			var log10Total float64
			if hasFork {
				log10Total = math.Log10(float64(totalEdgeFreq))
			}

			first := g.byID(departedTo[0])
			c.curr = first
			if hasFork {
				c.score = prevScore + math.Log10(float64(first.Frequency)) - log10Total
			}

			if !heap.isScoreOK(c.score) {
				stack = stack[:len(stack)-1]
			}

			for i := 1; i < len(departedTo); i++ {
				pathsFromRoot++
				branchNode := g.byID(departedTo[i])
				branchScore := prevScore + math.Log10(float64(branchNode.Frequency)) - log10Total
				if heap.isScoreOK(branchScore) {
					nc := baseline.clone()
					nc.curr = branchNode
					nc.score = branchScore
					stack = append(stack, nc)
				}
			}
			pathsFromRoot++
		}

		if *contigCount >= cfg.MaxContigs {
			status = StatusTooManyContigs
		}
		if pathsFromRoot >= cfg.MaxPathsFromRoot {
			status = StatusTooManyPathsFromRoot
		}
	}

	if status == StatusOK {
		for _, c := range toOutput {
			if heap.isScoreOK(c.score) {
				writeContig(out, c, cfg, contigCount, seen)
			}
		}
	}

	return status
}

func writeContig(out *bytes.Buffer, c *contigState, cfg Config, contigCount *int, seen map[[16]byte]struct{}) {
	if c.realSize < minContigLength(cfg) || c.isRepeat {
		return
	}
	var buf bytes.Buffer
	for _, frag := range c.fragments {
		remaining := MaxContigSize - buf.Len()
		if remaining <= 0 {
			break
		}
		if len(frag) > remaining {
			frag = frag[:remaining]
		}
		buf.Write(frag)
	}
	seq := buf.Bytes()

	if seen != nil {
		sum := highwayhash.Sum128(seq, highwayKey[:])
		if _, dup := seen[sum]; dup {
			return
		}
		seen[sum] = struct{}{}
	}

	fmt.Fprintf(out, ">%s_%d_%f\n", cfg.Prefix, *contigCount, c.score)
	out.Write(seq)
	out.WriteByte('\n')
	*contigCount++
}
