package batch

import (
	"fmt"
	"testing"

	"github.com/mozack/abra2/assembler"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func encodeRecord(sampleID, strand byte, bases, quals string) []byte {
	rec := make([]byte, 0, 2+len(bases)+len(quals))
	rec = append(rec, sampleID, strand)
	rec = append(rec, bases...)
	rec = append(rec, quals...)
	return rec
}

func regionConfig() assembler.Config {
	cfg := assembler.DefaultConfig
	cfg.KmerSize = 4
	cfg.ReadLength = 8
	cfg.MinNodeFrequency = 1
	cfg.MinBaseQuality = 0
	cfg.MinEdgeRatio = 0
	return cfg
}

// twoReadInput is two overlapping 8-base reads that assemble into the 9-base
// contig AAAAGGGGC, which clears the ReadLength+1 minimum contig length.
func twoReadInput() []byte {
	return append(
		encodeRecord(1, '0', "AAAAGGGG", "IIIIIIII"),
		encodeRecord(1, '0', "AAAGGGGC", "IIIIIIII")...,
	)
}

func TestRunAssemblesEveryRegionIndependently(t *testing.T) {
	var regions []Region
	for i := 0; i < 20; i++ {
		cfg := regionConfig()
		cfg.Prefix = fmt.Sprintf("r%d", i)
		regions = append(regions, Region{
			Name:   fmt.Sprintf("region-%d", i),
			Input:  twoReadInput(),
			Config: cfg,
		})
	}

	results := Run(Options{Concurrency: 4}, regions)
	require.Len(t, results, len(regions))

	seen := make(map[string]bool)
	for _, r := range results {
		require.NoError(t, r.Err)
		assert.Contains(t, r.Output, "AAAAGGGGC")
		seen[r.Name] = true
	}
	assert.Len(t, seen, len(regions))
}

func TestRunCompressesResultsWhenConfigured(t *testing.T) {
	cfg := regionConfig()
	cfg.Prefix = "c"
	regions := []Region{{
		Name:   "only",
		Input:  twoReadInput(),
		Config: cfg,
	}}

	results := Run(Options{Concurrency: 1, CompressResults: true}, regions)
	require.Len(t, results, 1)
	require.NoError(t, results[0].Err)
	assert.Contains(t, results[0].Output, "AAAAGGGGC")
}

func TestRunSurfacesPerRegionErrors(t *testing.T) {
	cfg := regionConfig()
	regions := []Region{{
		Name:   "bad",
		Input:  []byte("short"),
		Config: cfg,
	}}

	results := Run(Options{Concurrency: 1}, regions)
	require.Len(t, results, 1)
	assert.Error(t, results[0].Err)
}

func TestDefaultConcurrencyIsAtLeastOne(t *testing.T) {
	assert.Equal(t, 1, Options{}.concurrency())
	assert.Equal(t, 1, Options{Concurrency: -5}.concurrency())
	assert.Equal(t, 8, Options{Concurrency: 8}.concurrency())
}
