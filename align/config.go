// Package align implements semi-global (glocal) pairwise alignment of an
// assembled contig against a reference window: end-to-end in the query,
// with free leading and trailing gaps in the reference.
package align

const (
	// MaxQueryLen and MaxReferenceLen bound the DP matrices, mirroring the
	// original's MAX_CONTIG_LEN/MAX_REF_LEN compile-time limits.
	MaxQueryLen     = 2000
	MaxReferenceLen = 5000
)

// Config holds the affine-gap scoring parameters for one alignment.
type Config struct {
	Match      int
	Mismatch   int
	GapOpen    int
	GapExtend  int
}

// DefaultConfig mirrors the original tool's default scoring parameters.
var DefaultConfig = Config{
	Match:     8,
	Mismatch:  -32,
	GapOpen:   -48,
	GapExtend: -1,
}
