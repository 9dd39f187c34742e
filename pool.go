package vxoctree

import "sync"

// childBlockSize is the number of contiguous node slots an Internal node's
// payload always addresses.
const childBlockSize = 8

// NodePool is an append-only pool of packed Node words guarded by a short
// mutex, mirroring ParallelOctree's nodePoolMutex-protected nodePools
// vector. Index 0 is always the root and is never reclaimed.
type NodePool struct {
	mu    sync.Mutex
	nodes []Node
}

// NewNodePool returns a pool seeded with a single root node.
func NewNodePool(root Node) *NodePool {
	return &NodePool{nodes: []Node{root}}
}

// Len returns the current pool length.
func (p *NodePool) Len() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.nodes)
}

// Get reads the node at index i.
func (p *NodePool) Get(i uint32) Node {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.nodes[i]
}

// Set overwrites the node at index i. Safe to call concurrently for
// distinct indices from different goroutines — the mutex only serializes
// against pool growth, never stays held across the caller's logic.
func (p *NodePool) Set(i uint32, n Node) {
	p.mu.Lock()
	p.nodes[i] = n
	p.mu.Unlock()
}

// AppendChildBlock records the current pool length, pushes 8 fresh
// InternalLeaf words, and returns the recorded length. This is the only
// entry point that grows the node pool beyond the initial root, so every
// block returned starts at 1 + 8k (directly after the root and the blocks
// before it); block starts are not multiples of 8.
func (p *NodePool) AppendChildBlock() uint32 {
	p.mu.Lock()
	defer p.mu.Unlock()
	first := uint32(len(p.nodes))
	for i := 0; i < childBlockSize; i++ {
		p.nodes = append(p.nodes, NewNode(InternalLeaf, 0))
	}
	return first
}

// WriteChildBlock overwrites an 8-node block at index first. Nothing in the
// package calls it; the updater's reuse path writes each child with Set.
func (p *NodePool) WriteChildBlock(first uint32, block [childBlockSize]Node) {
	p.mu.Lock()
	copy(p.nodes[first:first+childBlockSize], block[:])
	p.mu.Unlock()
}

// Snapshot returns a read-only view of the pool's current backing slice,
// suitable for zero-copy export to a GPU upload path. The returned slice
// must not be mutated by the caller and is only valid until the next
// append.
func (p *NodePool) Snapshot() []Node {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.nodes
}

// Words returns the pool's contents as raw little-endian-ready uint32
// words, for the codec and for GPU consumers that want []uint32 directly.
func (p *NodePool) Words() []uint32 {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]uint32, len(p.nodes))
	for i, n := range p.nodes {
		out[i] = uint32(n)
	}
	return out
}

// BrickPool is an append-only pool of fixed-stride uint32 bricks guarded by
// a short mutex, mirroring ParallelOctree's brickPoolMutex-protected
// brickPools vector.
type BrickPool struct {
	mu     sync.Mutex
	words  []uint32
	stride int
}

// NewBrickPool returns an empty pool with the given per-brick word stride
// (BRICK_ELEMENT_COUNT).
func NewBrickPool(stride int) *BrickPool {
	return &BrickPool{stride: stride}
}

// Stride returns BRICK_ELEMENT_COUNT for this pool.
func (p *BrickPool) Stride() int { return p.stride }

// Count returns the number of bricks currently stored.
func (p *BrickPool) Count() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.words) / p.stride
}

// AppendBrick appends a full brick's words and returns its brick index.
func (p *BrickPool) AppendBrick(words []uint32) uint32 {
	if len(words) != p.stride {
		panic("vxoctree: brick word count mismatch")
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	idx := uint32(len(p.words) / p.stride)
	p.words = append(p.words, words...)
	return idx
}

// WriteBrickAt overwrites an existing brick slot, used only after
// FreeList.TryPop returned index.
func (p *BrickPool) WriteBrickAt(index uint32, words []uint32) {
	if len(words) != p.stride {
		panic("vxoctree: brick word count mismatch")
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	copy(p.words[int(index)*p.stride:int(index+1)*p.stride], words)
}

// BrickAt returns a copy of the brick's words at the given index.
func (p *BrickPool) BrickAt(index uint32) []uint32 {
	p.mu.Lock()
	defer p.mu.Unlock()
	start := int(index) * p.stride
	out := make([]uint32, p.stride)
	copy(out, p.words[start:start+p.stride])
	return out
}

// Words returns the pool's raw word slice for codec/GPU export.
func (p *BrickPool) Words() []uint32 {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]uint32, len(p.words))
	copy(out, p.words)
	return out
}
