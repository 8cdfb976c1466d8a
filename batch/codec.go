package batch

import "github.com/golang/snappy"

// compress and decompress frame a region's contig text with Snappy when
// Options.CompressResults is set -- a pure space/CPU tradeoff for batches
// holding many large regions, never a correctness requirement.
func compress(s string) []byte { return snappy.Encode(nil, []byte(s)) }

func decompress(b []byte) (string, error) {
	out, err := snappy.Decode(nil, b)
	if err != nil {
		return "", err
	}
	return string(out), nil
}
