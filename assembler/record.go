package assembler

import "github.com/pkg/errors"

// recordBatch walks a flat input buffer of fixed-length records: one sample
// ID byte, one strand byte ('0' or '1'), readLength base bytes, then
// readLength phred+33 quality bytes. This mirrors build_graph2's record
// layout exactly (record_len = read_length*2 + 2).
type recordBatch struct {
	data      []byte
	readLength int
	recordLen int
	pos       int
}

func newRecordBatch(data []byte, readLength int) (*recordBatch, error) {
	recordLen := readLength*2 + 2
	if recordLen <= 0 {
		return nil, errors.Errorf("assembler: invalid read length %d", readLength)
	}
	if len(data)%recordLen != 0 {
		return nil, errors.Errorf("assembler: input length %d is not a multiple of record length %d", len(data), recordLen)
	}
	return &recordBatch{data: data, readLength: readLength, recordLen: recordLen}, nil
}

func (b *recordBatch) numRecords() int { return len(b.data) / b.recordLen }

// readRecord is one parsed record: the sample index (0-based, derived from
// the raw sample-ID byte), the strand, and borrowed base/qual slices into the
// input buffer.
type readRecord struct {
	sampleIdx int
	strand    int
	bases     []byte
	quals     []byte
}

// next parses the record at the current position and advances. It returns
// ok=false once the batch is exhausted.
func (b *recordBatch) next() (readRecord, bool, error) {
	if b.pos >= b.numRecords() {
		return readRecord{}, false, nil
	}
	off := b.pos * b.recordLen
	rec := b.data[off : off+b.recordLen]
	b.pos++

	sampleID := rec[0]
	if int(sampleID) < 1 || int(sampleID) > MaxSamples {
		return readRecord{}, false, errors.Errorf("assembler: sample id byte %d out of range [1,%d]", sampleID, MaxSamples)
	}

	var strand int
	switch rec[1] {
	case '0':
		strand = 0
	case '1':
		strand = 1
	default:
		return readRecord{}, false, errors.Errorf("assembler: invalid strand byte %q", rec[1])
	}

	bases := rec[2 : 2+b.readLength]
	quals := rec[2+b.readLength : 2+2*b.readLength]

	return readRecord{
		sampleIdx: int(sampleID) - 1,
		strand:    strand,
		bases:     bases,
		quals:     quals,
	}, true, nil
}

// phred33 decodes a raw quality byte into a phred score.
func phred33(q byte) uint8 { return q - '!' }
