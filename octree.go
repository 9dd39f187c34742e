package vxoctree

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

// Options configures an Octree's behavior. The zero value is valid: a
// DefaultScheduler and a no-op Logger are installed lazily, and MaxNodes /
// MaxBricks of 0 mean unlimited.
type Options struct {
	// Scheduler runs the parallel task sets the builder and updater
	// dispatch. Defaults to a new DefaultScheduler.
	Scheduler Scheduler
	// Logger receives progress and warning messages. Defaults to a no-op
	// logger; the core never requires one to function.
	Logger Logger
	// MaxNodes caps the node pool's length; 0 means unlimited. Exceeding
	// it is a PoolExhausted precondition failure, not a recoverable
	// condition — the tree is left consistent at the last committed
	// depth/phase barrier.
	MaxNodes int
	// MaxBricks caps the number of stored bricks; 0 means unlimited.
	MaxBricks int
}

func (o Options) withDefaults() Options {
	if o.Scheduler == nil {
		o.Scheduler = NewDefaultScheduler()
	}
	if o.Logger == nil {
		o.Logger = NewNopLogger()
	}
	return o
}

// Octree is a sparse voxel octree with bricked leaves: an append-only node
// pool and brick pool, two free lists for reclaimed storage, and a
// geometric root (center, size) where size is the root cube's half-extent.
type Octree struct {
	Center mgl32.Vec3
	Size   float32

	nodes      *NodePool
	bricks     *BrickPool
	freeNodes  FreeList
	freeBricks FreeList

	opts Options
}

// NewOctree constructs an empty octree rooted at center with half-extent
// size. The root starts as InternalLeaf (empty) at node pool index 0; the
// root is never reclaimed for the octree's lifetime.
func NewOctree(center mgl32.Vec3, size float32, opts Options) (*Octree, error) {
	if size <= 0 {
		return nil, fmt.Errorf("octree root size must be positive, got %v: %w", size, ErrPreconditionViolation)
	}
	o := opts.withDefaults()
	return &Octree{
		Center: center,
		Size:   size,
		nodes:  NewNodePool(NewNode(InternalLeaf, 0)),
		bricks: NewBrickPool(BrickElementCount),
		opts:   o,
	}, nil
}

// NodePools returns a read-only view of the packed node words, suitable for
// zero-copy GPU upload. Index 0 is the root.
func (o *Octree) NodePools() []uint32 {
	return o.nodes.Words()
}

// BrickPools returns a read-only view of the packed brick words. Brick b
// occupies [b*BrickElementCount, (b+1)*BrickElementCount).
func (o *Octree) BrickPools() []uint32 {
	return o.bricks.Words()
}

// NodeCount returns the current node pool length.
func (o *Octree) NodeCount() int { return o.nodes.Len() }

// BrickCount returns the current number of stored bricks.
func (o *Octree) BrickCount() int { return o.bricks.Count() }

// FreeNodeBlockCount and FreeBrickCount expose the free lists' current
// sizes, useful for tests asserting bounded reuse (spec §8 scenario 5).
func (o *Octree) FreeNodeBlockCount() int { return o.freeNodes.Len() }
func (o *Octree) FreeBrickCount() int     { return o.freeBricks.Len() }

// depth returns the BFS depth bound D = floor(log2(2*size) / (log2(LeafNodeScale)+1)),
// matching both ParallelOctree::Generate and ::Update exactly.
func (o *Octree) depth() int {
	return treeDepth(o.Size)
}

// allocateChildBlock reserves 8 contiguous fresh node slots, honoring
// MaxNodes. It never consults the free list: callers that want reclaimed
// storage go through freeNodes.TryPop themselves (the updater's subdivide
// path does this; the builder always allocates fresh).
func (o *Octree) allocateChildBlock() (uint32, error) {
	if o.opts.MaxNodes > 0 && o.nodes.Len()+childBlockSize > o.opts.MaxNodes {
		return 0, fmt.Errorf("node pool would exceed cap %d at len %d: %w", o.opts.MaxNodes, o.nodes.Len(), ErrPoolExhausted)
	}
	return o.nodes.AppendChildBlock(), nil
}

// allocateBrick appends a fresh brick, honoring MaxBricks.
func (o *Octree) allocateBrick(words []uint32) (uint32, error) {
	if o.opts.MaxBricks > 0 && o.bricks.Count()+1 > o.opts.MaxBricks {
		return 0, fmt.Errorf("brick pool would exceed cap %d at count %d: %w", o.opts.MaxBricks, o.bricks.Count(), ErrPoolExhausted)
	}
	return o.bricks.AppendBrick(words), nil
}

// allocateOrReuseChildBlock prefers a reclaimed 8-node block from the free
// list before growing the pool, matching the updater's refine path
// (freeNodePools.pop() before pushing a fresh block).
func (o *Octree) allocateOrReuseChildBlock() (uint32, error) {
	if idx, ok := o.freeNodes.TryPop(); ok {
		return idx, nil
	}
	return o.allocateChildBlock()
}

// allocateOrReuseBrick prefers a reclaimed brick slot before growing the
// pool, matching the updater's brick-resolution path
// (freeBrickPools.try_pop() before appending).
func (o *Octree) allocateOrReuseBrick(words []uint32) (uint32, error) {
	if idx, ok := o.freeBricks.TryPop(); ok {
		o.bricks.WriteBrickAt(idx, words)
		return idx, nil
	}
	return o.allocateBrick(words)
}
