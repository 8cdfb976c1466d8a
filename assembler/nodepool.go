package assembler

import "github.com/grailbio/base/log"

// nodePool hands out *Node values from pre-sized blocks. A block, once
// allocated, is never regrown or appended to again, so a pointer into it
// stays valid for the life of the Graph that owns the pool -- this lets
// adjacency lists hold plain NodeID integers that are resolved back to *Node
// via Graph.byID without any node ever moving in memory.
type nodePool struct {
	blocks    [][]Node
	blockSize int
	maxBlocks int
	count     int
}

func newNodePool(blockSize, maxBlocks int) *nodePool {
	return &nodePool{blockSize: blockSize, maxBlocks: maxBlocks}
}

// allocate returns a fresh zero-valued *Node. It panics if the pool's hard
// block cap is exceeded: that cap is a resource limit the caller is expected
// to check against well before it is ever hit (see Config.MaxNodes).
func (p *nodePool) allocate() *Node {
	blockIdx := p.count / p.blockSize
	slotIdx := p.count % p.blockSize
	if blockIdx >= len(p.blocks) {
		if blockIdx >= p.maxBlocks {
			log.Panicf("assembler: node arena exhausted (%d blocks of %d)", p.maxBlocks, p.blockSize)
		}
		p.blocks = append(p.blocks, make([]Node, p.blockSize))
	}
	p.count++
	return &p.blocks[blockIdx][slotIdx]
}

func (p *nodePool) size() int { return p.count }
