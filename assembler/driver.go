package assembler

import (
	"bytes"

	"github.com/grailbio/base/log"
	"github.com/pkg/errors"
)

// Assemble runs the complete pipeline -- build, prune, identify roots,
// condense, enumerate -- over one batch of reads for a single region and
// returns the assembled contigs as FASTA-like text, mirroring the original
// driver's return value exactly: normal output on StatusOK or
// StatusTooManyPathsFromRoot, the literal "<REPEAT>" on StatusStoppedOnRepeat,
// and "<ERROR>" on anything else.
//
// input is a flat batch of fixed-length records (sample ID byte, strand
// byte, cfg.ReadLength bases, cfg.ReadLength phred+33 qualities). Assemble
// allocates a fresh Graph for the call; nothing here is retained or shared
// across calls, so concurrent callers (see package batch) never need to
// coordinate.
func Assemble(cfg Config, input []byte) (string, error) {
	batch, err := newRecordBatch(input, cfg.ReadLength)
	if err != nil {
		return "", err
	}

	if cfg.Debug {
		log.Debug.Printf("assembler: assembling region %s: %d records", cfg.Prefix, batch.numRecords())
	}

	g := newGraph(cfg)
	status, err := buildGraph(g, batch)
	if err != nil {
		return "", errors.Wrap(err, "assembler: build graph")
	}

	pruneGraph(g)

	var roots []*Node
	if status != StatusTooManyNodes {
		roots = identifyRoots(g)
	}

	condenseGraph(g)

	if cfg.Debug && cfg.DumpGraph {
		if err := writeDotGraphFile(g, cfg.DotGraphPath); err != nil {
			log.Debug.Printf("assembler: dot graph dump failed: %v", err)
		}
	}

	var out bytes.Buffer
	heap := newScoreHeap()
	contigCount := 0
	var seen map[[16]byte]struct{}
	if cfg.DedupeContigs {
		seen = make(map[[16]byte]struct{})
	}

	for _, root := range roots {
		s := enumerateContigs(g, root, heap, &contigCount, &out, seen)
		status = s
		if status == StatusTooManyContigs || status == StatusStoppedOnRepeat {
			contigCount = 0
			break
		}
	}

	if cfg.Debug {
		log.Debug.Printf("assembler: done assembling %s: %d contigs, status=%s", cfg.Prefix, contigCount, status)
	}

	if sentinel, replace := status.outputSentinel(); replace {
		return sentinel, nil
	}

	result := out.Bytes()
	if len(result) > MaxOutputBytes {
		log.Debug.Printf("assembler: truncating output for %s from %d to %d bytes", cfg.Prefix, len(result), MaxOutputBytes)
		result = result[:MaxOutputBytes]
	}
	return string(result), nil
}
