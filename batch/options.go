// Package batch runs many independent assembler.Assemble invocations
// concurrently, one goroutine per region, each with its own freshly
// constructed Config and Graph -- the Go analogue of the original's
// per-thread globals (see assembler.Graph's doc comment).
package batch

import "github.com/mozack/abra2/assembler"

// Region is one unit of work: a genomic window identified by Name, the
// encoded read batch for it, and the assembler configuration to use.
type Region struct {
	Name   string
	Input  []byte
	Config assembler.Config
}

// Options controls the worker pool that processes a batch of Regions.
type Options struct {
	// Concurrency is the number of worker goroutines. A value <= 0 defaults
	// to 1.
	Concurrency int

	// CompressResults snappy-compresses each region's contig text before it
	// is stored, trading CPU for memory when a batch holds many large
	// regions (supplemental feature, see SPEC_FULL.md).
	CompressResults bool
}

func (o Options) concurrency() int {
	if o.Concurrency <= 0 {
		return 1
	}
	return o.Concurrency
}
