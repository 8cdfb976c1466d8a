package assembler

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scenarioConfig returns a config with pruning thresholds neutralized so a
// small, hand-built fixture assembles exactly along the path the test
// verifies by hand, rather than being shaped by the default production
// thresholds (which are tuned for real sequencing depth, not a two- or
// three-read fixture).
func scenarioConfig(k, readLen int) Config {
	cfg := DefaultConfig
	cfg.KmerSize = k
	cfg.ReadLength = readLen
	cfg.MinNodeFrequency = 1
	cfg.MinBaseQuality = 0
	cfg.MinEdgeRatio = 0
	cfg.Prefix = "p"
	return cfg
}

// Scenario A: linear two-read overlap.
func TestEndToEndLinearOverlap(t *testing.T) {
	cfg := scenarioConfig(5, 10)
	data := append(
		encodeRecord(1, '0', "AAAAAGGGGG", "IIIIIIIIII"),
		encodeRecord(1, '0', "AAAGGGGGCC", "IIIIIIIIII")...,
	)

	out, err := Assemble(cfg, data)
	require.NoError(t, err)
	assert.Equal(t, ">p_0_0.000000\nAAAAAGGGGGCC\n", out)
}

// Scenario B: branching. Two overlapping reads per branch share a
// non-repeating 4-base prefix then diverge at the fork; each branch
// contributes two reads so the resulting contig (10 bases) clears
// minContigLength(cfg) == readLength+1, and the symmetric 2-vs-4 edge
// frequency ratio at the fork still gives both contigs score log10(0.5).
func TestEndToEndBranching(t *testing.T) {
	cfg := scenarioConfig(4, 9)
	data := append(
		encodeRecord(1, '0', "ACGATCCCC", "IIIIIIIII"),
		encodeRecord(1, '0', "CGATCCCCA", "IIIIIIIII")...,
	)
	data = append(data, append(
		encodeRecord(1, '0', "ACGATGGGG", "IIIIIIIII"),
		encodeRecord(1, '0', "CGATGGGGA", "IIIIIIIII")...,
	)...)

	out, err := Assemble(cfg, data)
	require.NoError(t, err)
	assert.Contains(t, out, "-0.301030")
	assert.Equal(t, 2, strings.Count(out, ">p_"))
}

// Scenario C: low-quality filter. Every base quality is below the absolute
// floor, so no k-mer survives and the graph is empty.
func TestEndToEndLowQualityFilter(t *testing.T) {
	cfg := scenarioConfig(4, 10)
	data := encodeRecord(1, '0', "AAAAAGGGGG", "\"\"\"\"\"\"\"\"\"\"")

	out, err := Assemble(cfg, data)
	require.NoError(t, err)
	assert.Equal(t, "", out)
}

// Scenario D: repeat stop. A root leads into a genuine cycle; with
// TruncateOnRepeat set the driver reports <REPEAT>.
func TestEndToEndRepeatStop(t *testing.T) {
	cfg := scenarioConfig(3, 10)
	cfg.TruncateOnRepeat = true
	data := encodeRecord(1, '0', "GATCATCATC", "IIIIIIIIII")

	out, err := Assemble(cfg, data)
	require.NoError(t, err)
	assert.Equal(t, "<REPEAT>", out)
}

// Scenario E: node overflow. A tiny max_nodes cap against a read with many
// distinct k-mers overflows during the very first record.
func TestEndToEndNodeOverflow(t *testing.T) {
	cfg := scenarioConfig(5, 20)
	cfg.MaxNodes = 10
	data := encodeRecord(1, '0', "ACGATCGATGCATGCATGCA", "IIIIIIIIIIIIIIIIIIII")

	out, err := Assemble(cfg, data)
	require.NoError(t, err)
	assert.Equal(t, "<ERROR>", out)
}
