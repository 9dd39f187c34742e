package vxoctree

import (
	"fmt"
	"sync"

	"github.com/go-gl/mathgl/mgl32"
)

// buildItem is one pending node in the builder's BFS frontier: the node's
// world-space center and its slot in the node pool.
type buildItem struct {
	center mgl32.Vec3
	index  uint32
}

// Generate builds the octree from scratch against oracle, viewed from
// observer. It runs a parallel top-down breadth-first construction, depth by
// depth: at each depth every pending node is classified independently
// (empty, resolved to a leaf, or subdivided) across the scheduler's workers,
// with a full barrier between depths so a parent's children are never
// visited before the parent's own classification has committed. Grounded on
// ParallelOctree::Generate / CreateChildren / CreateBrick / InsertBrick.
//
// Generate must be called on a fresh Octree (as returned by NewOctree); it
// does not reclaim or merge with any prior content.
func (o *Octree) Generate(oracle VoxelData, observer mgl32.Vec3) error {
	depthBound := o.depth()
	extent := 2 * o.Size

	frontier := []buildItem{{center: o.Center, index: 0}}

	for d := 0; d <= depthBound && len(frontier) > 0; d++ {
		o.opts.Logger.Debugf("generate: depth %d, %d pending nodes, extent %v", d, len(frontier), extent)

		halfExtent := extent / 2
		quarterExtent := extent / 4

		next, err := o.generateDepth(oracle, observer, frontier, extent, halfExtent, quarterExtent)
		if err != nil {
			return err
		}

		frontier = next
		extent = halfExtent
	}

	return nil
}

func (o *Octree) generateDepth(oracle VoxelData, observer mgl32.Vec3, frontier []buildItem, extent, halfExtent, quarterExtent float32) ([]buildItem, error) {
	var (
		errs firstError
		mu   sync.Mutex
	)
	next := make([]buildItem, 0, len(frontier))

	o.opts.Scheduler.ParallelFor(len(frontier), func(start, end, worker int) {
		defer func() {
			if r := recover(); r != nil {
				errs.set(fmt.Errorf("generate: oracle panic: %v: %w", r, ErrOracleFault))
			}
		}()

		var local []buildItem
		for i := start; i < end; i++ {
			if errs.get() != nil {
				return
			}
			item := frontier[i]
			children, err := o.classifyForGeneration(oracle, observer, item, extent, halfExtent, quarterExtent)
			if err != nil {
				errs.set(err)
				return
			}
			local = append(local, children...)
		}
		if len(local) > 0 {
			mu.Lock()
			next = append(next, local...)
			mu.Unlock()
		}
	})

	if err := errs.get(); err != nil {
		return nil, err
	}
	return next, nil
}

// classifyForGeneration decides the fate of a single pending node: empty
// region stays InternalLeaf, a region fine enough for the observer's
// distance resolves to a leaf (possibly with a brick), and everything else
// subdivides into 8 fresh children returned for the next depth's frontier.
func (o *Octree) classifyForGeneration(oracle VoxelData, observer mgl32.Vec3, item buildItem, extent, halfExtent, quarterExtent float32) ([]buildItem, error) {
	min := item.center.Sub(mgl32.Vec3{halfExtent, halfExtent, halfExtent})

	if IsRegionEmpty(oracle, min, item.center.Add(mgl32.Vec3{halfExtent, halfExtent, halfExtent})) {
		o.nodes.Set(item.index, NewNode(InternalLeaf, 0))
		return nil, nil
	}

	lod := RequiredExtent(euclideanDistance(observer, item.center))
	if lod >= extent || extent <= LeafNodeScale {
		return nil, o.resolveLeaf(oracle, item, min, extent)
	}

	firstChild, err := o.allocateChildBlock()
	if err != nil {
		return nil, err
	}
	o.nodes.Set(item.index, NewNode(Internal, firstChild))

	children := make([]buildItem, 0, 8)
	for i, dir := range Directions {
		childCenter := item.center.Add(dir.Mul(quarterExtent))
		children = append(children, buildItem{center: childCenter, index: firstChild + uint32(i)})
	}
	return children, nil
}

// resolveLeaf samples a brick for item and commits the appropriate leaf
// node: InternalLeaf if the sampled brick turned out empty after all,
// Leaf(color) if constant, or LeafWithBrick(brickIndex) otherwise.
func (o *Octree) resolveLeaf(oracle VoxelData, item buildItem, min mgl32.Vec3, extent float32) error {
	words, class, constant := sampleBrick(oracle, min, extent)
	switch class {
	case brickEmpty:
		o.nodes.Set(item.index, NewNode(InternalLeaf, 0))
		return nil
	case brickConstant:
		o.nodes.Set(item.index, NewNode(Leaf, packColor(constant)))
		return nil
	default:
		brickIndex, err := o.allocateBrick(words)
		if err != nil {
			return err
		}
		o.nodes.Set(item.index, NewNode(LeafWithBrick, brickIndex))
		return nil
	}
}
