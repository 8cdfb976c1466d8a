// abra2-align semi-globally aligns a query sequence against a reference
// sequence and prints "best:second_best:ref_start:ref_end:CIGAR" to stdout.
package main

import (
	"flag"
	"fmt"

	"github.com/grailbio/base/grail"
	"github.com/grailbio/base/log"
	"github.com/mozack/abra2/align"
)

var (
	match     = flag.Int("match", align.DefaultConfig.Match, "Match score")
	mismatch  = flag.Int("mismatch", align.DefaultConfig.Mismatch, "Mismatch penalty")
	gapOpen   = flag.Int("gap-open", align.DefaultConfig.GapOpen, "Gap open penalty")
	gapExtend = flag.Int("gap-extend", align.DefaultConfig.GapExtend, "Gap extend penalty")
)

func usage() {
	fmt.Println("Usage: abra2-align [OPTIONS] <query> <reference>")
	flag.PrintDefaults()
}

func main() {
	flag.Usage = usage
	flag.Parse()
	shutdown := grail.Init()
	defer shutdown()

	if flag.NArg() != 2 {
		log.Fatalf("abra2-align: expected exactly two positional arguments (query, reference), got %d", flag.NArg())
	}

	cfg := align.Config{Match: *match, Mismatch: *mismatch, GapOpen: *gapOpen, GapExtend: *gapExtend}
	res, err := align.Align(cfg, []byte(flag.Arg(0)), []byte(flag.Arg(1)))
	if err != nil {
		log.Fatalf("abra2-align: %v", err)
	}
	fmt.Println(res.String())
}
