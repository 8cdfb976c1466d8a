//go:build !linux

package assembler

import "github.com/grailbio/base/log"

// heapReadPool is the portable fallback for platforms without mmap/madvise:
// ordinary Go-heap-backed blocks, same slot layout as mmapReadPool.
type heapReadPool struct {
	slotSize  int
	blockSize int
	maxBlocks int

	blocks [][]byte
	count  int
}

func newReadPool(slotSize, blockSize, maxBlocks int) readPool {
	return &heapReadPool{slotSize: slotSize, blockSize: blockSize, maxBlocks: maxBlocks}
}

func (p *heapReadPool) allocate() []byte {
	blockIdx := p.count / p.blockSize
	slotIdx := p.count % p.blockSize
	if blockIdx >= len(p.blocks) {
		if blockIdx >= p.maxBlocks {
			log.Panicf("assembler: read arena exhausted (%d blocks of %d)", p.maxBlocks, p.blockSize)
		}
		p.blocks = append(p.blocks, make([]byte, p.blockSize*p.slotSize))
	}
	p.count++
	start := slotIdx * p.slotSize
	return p.blocks[blockIdx][start : start+p.slotSize : start+p.slotSize]
}

func (p *heapReadPool) size() int { return p.count }
