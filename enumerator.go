package vxoctree

import (
	"sync"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/svo-engine/vxoctree/frustum"
)

// Voxel is a single emitted (center, halfExtent) record ready for an
// instanced GPU cube draw.
type Voxel struct {
	Center mgl32.Vec3
	Extent float32
}

// listItem is one pending node in the enumerator's BFS frontier.
type listItem struct {
	index  uint32
	center mgl32.Vec3
}

// ListVoxels walks the tree breadth-first, culling each node's AABB against
// f, and returns every resolved voxel that survives culling: one entry per
// constant-color Leaf, and one entry per nonzero sample inside a
// LeafWithBrick's brick. The scan is parallel per depth, matching the
// builder's own frontier shape; emission into the shared result is
// serialized by a single mutex, so the output order is unspecified.
//
// ListVoxels must not run concurrently with Generate or Update on the same
// Octree — see SPEC_FULL.md's concurrency model. Grounded on
// ParallelOctree::ListVoxels / ListVoxelsFromBrick.
func (o *Octree) ListVoxels(f frustum.Frustum) []Voxel {
	depthBound := o.depth()
	halfExtent := o.Size

	frontier := []listItem{{index: 0, center: o.Center}}
	var voxels []Voxel
	var emitMu sync.Mutex

	for d := 0; d <= depthBound && len(frontier) > 0; d++ {
		childExtent := halfExtent / 2
		next := make([]listItem, 0, len(frontier))
		var nextMu sync.Mutex

		o.opts.Scheduler.ParallelFor(len(frontier), func(start, end, worker int) {
			var local []listItem
			for i := start; i < end; i++ {
				item := frontier[i]
				half := mgl32.Vec3{halfExtent, halfExtent, halfExtent}
				if !frustum.AABBInside(item.center.Sub(half), item.center.Add(half), f) {
					continue
				}

				node := o.nodes.Get(item.index)
				switch node.Kind() {
				case Internal:
					childPtr := node.Payload()
					for i8, dir := range Directions {
						childCenter := item.center.Add(dir.Mul(childExtent))
						local = append(local, listItem{index: childPtr + uint32(i8), center: childCenter})
					}

				case Leaf:
					emitMu.Lock()
					voxels = append(voxels, Voxel{Center: item.center, Extent: halfExtent})
					emitMu.Unlock()

				case LeafWithBrick:
					brickWords := o.bricks.BrickAt(node.Payload())
					emitted := listVoxelsFromBrick(item.center, brickWords, halfExtent)
					if len(emitted) > 0 {
						emitMu.Lock()
						voxels = append(voxels, emitted...)
						emitMu.Unlock()
					}

				case InternalLeaf:
					// Empty: nothing to emit, no children to descend into.
				}
			}
			if len(local) > 0 {
				nextMu.Lock()
				next = append(next, local...)
				nextMu.Unlock()
			}
		})

		frontier = next
		halfExtent = childExtent
	}

	return voxels
}

// listVoxelsFromBrick extracts each nonzero sample in a brick as its own
// Voxel. halfExtent is the owning LeafWithBrick node's half-extent; the
// brick divides the node's full extent (2*halfExtent) into NumBrick cells
// per axis, one sample per cell — a different lattice from the
// corner-sampling sampleBrick used to build the brick, matching the
// original's own asymmetry between brick construction and brick listing.
func listVoxelsFromBrick(center mgl32.Vec3, words []uint32, halfExtent float32) []Voxel {
	gridSize := 2 * halfExtent
	unitHalf := halfExtent / float32(NumBrick)
	min := center.Sub(mgl32.Vec3{halfExtent, halfExtent, halfExtent})

	var out []Voxel
	for x := 0; x < NumBrick; x++ {
		for y := 0; y < NumBrick; y++ {
			for z := 0; z < NumBrick; z++ {
				val := words[x*NumBrick*NumBrick+y*NumBrick+z]
				if val == 0 {
					continue
				}
				t := mgl32.Vec3{float32(x), float32(y), float32(z)}.Mul(1.0 / float32(NumBrick))
				pos := min.Add(mgl32.Vec3{t.X() * gridSize, t.Y() * gridSize, t.Z() * gridSize})
				out = append(out, Voxel{
					Center: pos.Add(mgl32.Vec3{unitHalf, unitHalf, unitHalf}),
					Extent: unitHalf,
				})
			}
		}
	}
	return out
}
