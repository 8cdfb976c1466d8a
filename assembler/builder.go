package assembler

import (
	"bytes"

	farm "github.com/dgryski/go-farm"
)

// bytesEqual mirrors the original's whole-read strcmp comparison (not
// pointer identity): two reads with identical content count as "the same
// read" for the hasMultipleUniqueReads check even if copied into different
// arena slots.
func bytesEqual(a, b []byte) bool { return bytes.Equal(a, b) }

// buildGraph walks every record in the batch and folds it into the graph,
// stopping early once the node count reaches cfg.MaxNodes -- mirroring
// build_graph2's `while (record < num_records && nodes->size() < max_nodes)`.
// It returns StatusTooManyNodes if the cap was hit, or a non-nil error if a
// record fails validation (malformed sample ID or strand byte).
func buildGraph(g *Graph, batch *recordBatch) (Status, error) {
	cfg := g.cfg
	for g.nodeCount() < cfg.MaxNodes {
		rec, ok, err := batch.next()
		if err != nil {
			return StatusOK, err
		}
		if !ok {
			break
		}
		if g.skipDuplicateRead(rec) {
			continue
		}
		addToGraph(g, rec)
	}
	if g.nodeCount() >= cfg.MaxNodes {
		return StatusTooManyNodes, nil
	}
	return StatusOK, nil
}

// skipDuplicateRead applies the optional FarmHash64 pre-filter. It is a pure
// performance knob (Config.SkipExactDuplicateReads), off by default because
// it changes which reads contribute to node frequency.
func (g *Graph) skipDuplicateRead(rec readRecord) bool {
	if g.seenReads == nil {
		return false
	}
	h := farm.Hash64(rec.bases) ^ farm.Hash64(rec.quals)<<1 ^ uint64(rec.strand)<<2 ^ uint64(rec.sampleIdx)<<3
	if _, seen := g.seenReads[h]; seen {
		return true
	}
	g.seenReads[h] = struct{}{}
	return false
}

// includeKmer reports whether the k-mer window starting at idx is free of
// ambiguous bases and meets the absolute MinBaseQualityFloor on every
// position -- mirroring include_kmer(), but against the spec's floor of 13
// rather than the original's build-time constant.
func includeKmer(bases, quals []byte, idx, k int) bool {
	for i := idx; i < idx+k; i++ {
		if bases[i] == 'N' {
			return false
		}
		if phred33(quals[i]) < MinBaseQualityFloor {
			return false
		}
	}
	return true
}

// addToGraph folds one read into the graph: new_node/increment_node_freq for
// every admissible k-mer window, linking consecutive windows, and resetting
// the adjacency chain across any window that failed includeKmer.
func addToGraph(g *Graph, rec readRecord) {
	readCopy := g.reads.allocate()
	copy(readCopy, rec.bases)
	readCopy[len(rec.bases)] = 0

	k := g.cfg.KmerSize
	var prev *Node
	for i := 0; i <= len(rec.bases)-k; i++ {
		if !includeKmer(rec.bases, rec.quals, i, k) {
			prev = nil
			continue
		}
		window := readCopy[i : i+k]
		kmerQual := rec.quals[i : i+k]

		curr := g.index.get(window)
		if curr == nil {
			curr = g.newNode(window)
			curr.Frequency = 1
			curr.SampleFrequency[rec.sampleIdx] = 1
			curr.ContributingRead = readCopy
			curr.ContributingStrand = rec.strand
			for j := 0; j < k; j++ {
				curr.QualSums[j] = phred33(kmerQual[j])
			}
		} else {
			curr.incrementFrequency(rec.sampleIdx)
			if !curr.HasMultipleUniqueReads &&
				(!bytesEqual(curr.ContributingRead, readCopy) || curr.ContributingStrand != rec.strand) {
				curr.HasMultipleUniqueReads = true
			}
			for j := 0; j < k; j++ {
				curr.addQual(j, phred33(kmerQual[j]))
			}
		}

		if prev != nil {
			g.link(prev, curr)
		}
		prev = curr
	}
}
