// abra2-assemble reads a binary read-record batch for one region and prints
// the assembled contig text (or a <REPEAT>/<ERROR> sentinel) to stdout.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/grailbio/base/grail"
	"github.com/grailbio/base/log"
	"github.com/mozack/abra2/assembler"
)

var (
	kmerSize         = flag.Int("k", assembler.DefaultConfig.KmerSize, "K-mer size")
	readLength       = flag.Int("read-length", assembler.DefaultConfig.ReadLength, "Fixed read length of every record in the input batch")
	minNodeFreq      = flag.Int("min-node-freq", assembler.DefaultConfig.MinNodeFrequency, "Minimum node frequency to survive frequency pruning")
	minBaseQual      = flag.Int("min-base-qual", assembler.DefaultConfig.MinBaseQuality, "Minimum cumulative per-position quality sum to survive quality pruning")
	minEdgeRatio     = flag.Float64("min-edge-ratio", assembler.DefaultConfig.MinEdgeRatio, "Minimum per-sample edge frequency ratio to keep an edge")
	maxNodes         = flag.Int("max-nodes", assembler.DefaultConfig.MaxNodes, "Node count at which assembly aborts with too_many_nodes")
	maxContigs       = flag.Int("max-contigs", assembler.DefaultConfig.MaxContigs, "Contig count at which assembly aborts with too_many_contigs")
	maxPathsFromRoot = flag.Int("max-paths-from-root", assembler.DefaultConfig.MaxPathsFromRoot, "Path count at which a root aborts with too_many_paths_from_root")
	truncateOnRepeat = flag.Bool("truncate-on-repeat", assembler.DefaultConfig.TruncateOnRepeat, "Abort a region with <REPEAT> the first time a contig revisits a node")
	unalignedRegion  = flag.Bool("unaligned-region", false, "Apply the large-unaligned-graph min-node-frequency bump")
	dedupeContigs    = flag.Bool("dedupe", false, "Suppress exact-duplicate contig sequences across roots")
	skipDupReads     = flag.Bool("skip-dup-reads", false, "Skip exact-duplicate input reads before k-mer extraction")
	dumpGraph        = flag.Bool("dump-graph", false, "Write a gzip-compressed Graphviz dot file of the condensed graph (requires -debug)")
	dotGraphPath     = flag.String("dot-graph-path", "", "Destination path for -dump-graph")
	prefix           = flag.String("prefix", "contig", "Prefix used in each output contig's FASTA-like header")
	debug            = flag.Bool("debug", false, "Enable debug logging")
	input            = flag.String("input", "-", "Path to the binary record batch, or - for stdin")
)

func main() {
	flag.Parse()
	shutdown := grail.Init()
	defer shutdown()

	var data []byte
	var err error
	if *input == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(*input)
	}
	if err != nil {
		log.Fatalf("abra2-assemble: reading input: %v", err)
	}

	cfg := assembler.Config{
		KmerSize:                *kmerSize,
		ReadLength:               *readLength,
		MinNodeFrequency:         *minNodeFreq,
		MinBaseQuality:           *minBaseQual,
		MinEdgeRatio:             *minEdgeRatio,
		MaxNodes:                 *maxNodes,
		MaxContigs:               *maxContigs,
		MaxPathsFromRoot:         *maxPathsFromRoot,
		TruncateOnRepeat:         *truncateOnRepeat,
		UnalignedRegion:          *unalignedRegion,
		DedupeContigs:            *dedupeContigs,
		SkipExactDuplicateReads:  *skipDupReads,
		DumpGraph:                *dumpGraph,
		DotGraphPath:             *dotGraphPath,
		Debug:                    *debug,
		Prefix:                   *prefix,
	}

	out, err := assembler.Assemble(cfg, data)
	if err != nil {
		log.Fatalf("abra2-assemble: %v", err)
	}
	fmt.Print(out)
}
