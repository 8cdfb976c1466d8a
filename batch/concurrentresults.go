package batch

import (
	"sync"

	"blainsmith.com/go/seahash"
)

const numResultShards = 64

type resultEntry struct {
	output     []byte
	compressed bool
	err        error
}

type resultShard struct {
	mu      sync.Mutex
	entries map[string]resultEntry
}

// concurrentResults is a sharded, goroutine-safe map from region name to its
// assembled output, grounded on bamprovider's concurrentMap: each shard owns
// its own mutex so writers for different regions never contend.
type concurrentResults struct {
	shards [numResultShards]resultShard
}

func newConcurrentResults() *concurrentResults {
	r := &concurrentResults{}
	for i := range r.shards {
		r.shards[i].entries = make(map[string]resultEntry)
	}
	return r
}

func (r *concurrentResults) shardFor(name string) *resultShard {
	h := seahash.Sum64([]byte(name))
	return &r.shards[h%uint64(numResultShards)]
}

func (r *concurrentResults) put(name string, output []byte, compressed bool, err error) {
	s := r.shardFor(name)
	s.mu.Lock()
	s.entries[name] = resultEntry{output: output, compressed: compressed, err: err}
	s.mu.Unlock()
}

// snapshot returns every stored result. It is only meaningful once every
// worker goroutine has finished (see Run), mirroring
// concurrentMap.approxSize's same caller contract.
func (r *concurrentResults) snapshot() map[string]resultEntry {
	out := make(map[string]resultEntry)
	for i := range r.shards {
		s := &r.shards[i]
		s.mu.Lock()
		for k, v := range s.entries {
			out[k] = v
		}
		s.mu.Unlock()
	}
	return out
}
