package assembler

import "bytes"

// kmerIndex maps a k-length byte window to the node that owns it. It is a
// plain separate-chaining hash map keyed by murmurHash64A(window, 97); unlike
// the original's dense_hash_map, removal is a simple bucket-slice deletion --
// there is no deleted-key sentinel to maintain.
type kmerIndex struct {
	k       int
	buckets map[uint64][]*Node
	n       int
}

func newKmerIndex(k int) *kmerIndex {
	return &kmerIndex{k: k, buckets: make(map[uint64][]*Node)}
}

func (idx *kmerIndex) get(window []byte) *Node {
	h := murmurHash64A(window[:idx.k], kmerHashSeed)
	for _, n := range idx.buckets[h] {
		if bytes.Equal(n.key(idx.k), window[:idx.k]) {
			return n
		}
	}
	return nil
}

func (idx *kmerIndex) put(n *Node) {
	h := murmurHash64A(n.key(idx.k), kmerHashSeed)
	idx.buckets[h] = append(idx.buckets[h], n)
	idx.n++
}

func (idx *kmerIndex) remove(n *Node) {
	h := murmurHash64A(n.key(idx.k), kmerHashSeed)
	list := idx.buckets[h]
	for i, m := range list {
		if m == n {
			list[i] = list[len(list)-1]
			list[len(list)-1] = nil
			idx.buckets[h] = list[:len(list)-1]
			idx.n--
			return
		}
	}
}

func (idx *kmerIndex) size() int { return idx.n }

// rangeNodes calls fn once per node currently present in the index. fn must
// not mutate the index; callers that need to remove nodes while iterating
// should collect them first and remove afterward.
func (idx *kmerIndex) rangeNodes(fn func(*Node)) {
	for _, list := range idx.buckets {
		for _, n := range list {
			fn(n)
		}
	}
}
