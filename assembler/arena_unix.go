//go:build linux

package assembler

import (
	"github.com/grailbio/base/log"
	"golang.org/x/sys/unix"
)

// mmapReadPool backs the read arena with anonymous-mmap'd blocks advised
// MADV_HUGEPAGE, exactly as the teacher's kmer index shards its hash table,
// to cut TLB pressure when a region's read set is large.
type mmapReadPool struct {
	slotSize  int
	blockSize int
	maxBlocks int

	blocks [][]byte
	count  int
}

func newReadPool(slotSize, blockSize, maxBlocks int) readPool {
	return &mmapReadPool{slotSize: slotSize, blockSize: blockSize, maxBlocks: maxBlocks}
}

func (p *mmapReadPool) allocate() []byte {
	blockIdx := p.count / p.blockSize
	slotIdx := p.count % p.blockSize
	if blockIdx >= len(p.blocks) {
		if blockIdx >= p.maxBlocks {
			log.Panicf("assembler: read arena exhausted (%d blocks of %d)", p.maxBlocks, p.blockSize)
		}
		size := p.blockSize * p.slotSize
		data, err := unix.Mmap(-1, 0, size, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_ANON|unix.MAP_PRIVATE)
		if err != nil {
			log.Panicf("assembler: mmap read arena block: %v", err)
		}
		if err := unix.Madvise(data, unix.MADV_HUGEPAGE); err != nil {
			log.Debug.Printf("assembler: madvise(MADV_HUGEPAGE) failed, continuing without it: %v", err)
		}
		p.blocks = append(p.blocks, data)
	}
	p.count++
	start := slotIdx * p.slotSize
	return p.blocks[blockIdx][start : start+p.slotSize : start+p.slotSize]
}

func (p *mmapReadPool) size() int { return p.count }
