// abra2-batch assembles many regions concurrently. It reads a manifest file
// of "name\tpath" lines (one region per line; path is a binary record batch,
// or - for stdin), and prints "name\toutput" for each to stdout.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/grailbio/base/grail"
	"github.com/grailbio/base/log"
	"github.com/mozack/abra2/assembler"
	"github.com/mozack/abra2/batch"
)

var (
	manifest        = flag.String("manifest", "", "Path to a \"name\\tpath\" manifest file, one region per line")
	concurrency     = flag.Int("concurrency", 0, "Worker goroutines; 0 defers to batch.Options' default of 1")
	compressResults = flag.Bool("compress-results", false, "Snappy-frame each region's contig text while it is held in memory")
	kmerSize        = flag.Int("k", assembler.DefaultConfig.KmerSize, "K-mer size")
	readLength      = flag.Int("read-length", assembler.DefaultConfig.ReadLength, "Fixed read length of every record in every region's batch")
)

func readManifest(path string) ([]batch.Region, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	cfg := assembler.DefaultConfig
	cfg.KmerSize = *kmerSize
	cfg.ReadLength = *readLength

	var regions []batch.Region
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		parts := strings.SplitN(line, "\t", 2)
		if len(parts) != 2 {
			return nil, fmt.Errorf("abra2-batch: malformed manifest line %q", line)
		}
		name, path := parts[0], parts[1]

		var data []byte
		if path == "-" {
			data, err = readAllStdin()
		} else {
			data, err = os.ReadFile(path)
		}
		if err != nil {
			return nil, fmt.Errorf("abra2-batch: reading region %q: %w", name, err)
		}

		regionCfg := cfg
		regionCfg.Prefix = name
		regions = append(regions, batch.Region{Name: name, Input: data, Config: regionCfg})
	}
	return regions, scanner.Err()
}

func readAllStdin() ([]byte, error) {
	var buf []byte
	scanner := bufio.NewReader(os.Stdin)
	tmp := make([]byte, 4096)
	for {
		n, err := scanner.Read(tmp)
		buf = append(buf, tmp[:n]...)
		if err != nil {
			break
		}
	}
	return buf, nil
}

func main() {
	flag.Parse()
	shutdown := grail.Init()
	defer shutdown()

	if *manifest == "" {
		log.Fatalf("abra2-batch: -manifest is required")
	}

	regions, err := readManifest(*manifest)
	if err != nil {
		log.Fatalf("abra2-batch: %v", err)
	}

	results := batch.Run(batch.Options{Concurrency: *concurrency, CompressResults: *compressResults}, regions)
	for _, r := range results {
		if r.Err != nil {
			log.Error.Printf("abra2-batch: region %q failed: %v", r.Name, r.Err)
			continue
		}
		fmt.Printf("%s\t%s\n", r.Name, r.Output)
	}
}
