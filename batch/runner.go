package batch

import (
	"sync"

	"github.com/mozack/abra2/assembler"
)

// Result is one region's final, decompressed outcome.
type Result struct {
	Name   string
	Output string
	Err    error
}

// Run assembles every region concurrently across Options.concurrency()
// worker goroutines, each pulling regions off a shared channel. Every
// assembler.Assemble call gets its own freshly built assembler.Graph
// (assembler.Graph is never shared across goroutines); the only cross-
// goroutine state is the sharded result map.
func Run(opts Options, regions []Region) []Result {
	jobs := make(chan Region)
	results := newConcurrentResults()

	var wg sync.WaitGroup
	for i := 0; i < opts.concurrency(); i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for region := range jobs {
				output, err := assembler.Assemble(region.Config, region.Input)
				if err != nil || !opts.CompressResults {
					results.put(region.Name, []byte(output), false, err)
					continue
				}
				results.put(region.Name, compress(output), true, nil)
			}
		}()
	}

	go func() {
		for _, r := range regions {
			jobs <- r
		}
		close(jobs)
	}()

	wg.Wait()

	out := make([]Result, 0, len(regions))
	snap := results.snapshot()
	for _, r := range regions {
		entry, ok := snap[r.Name]
		if !ok {
			continue
		}
		res := Result{Name: r.Name, Err: entry.err}
		if entry.err == nil {
			if entry.compressed {
				text, derr := decompress(entry.output)
				res.Output, res.Err = text, derr
			} else {
				res.Output = string(entry.output)
			}
		}
		out = append(out, res)
	}
	return out
}
