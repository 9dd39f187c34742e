// Package cpubuild is a direct, deliberately unoptimized port of the
// didactic CPU-only octree builder variant: a dense 3D scan producing a
// voxel fragment list, followed by repeated (init, flag, allocate) passes
// per level. It uses its own node encoding — a single high "flagged" bit
// plus a 31-bit child offset, rather than the main package's 2-bit
// kind + 30-bit payload — and is never invoked by vxoctree.Octree. The two
// builders share only the general shape of a pointer-compressed pool
// addressed by relative offsets, and the Voxel output type used for
// listing.
package cpubuild

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/svo-engine/vxoctree"
)

const (
	flagBit    = 0x80000000
	offsetMask = 0x7fffffff
)

// regions gives each of a node's 8 children their position offset sign
// pattern, indexed by child slot. This uses its own bit convention
// (index = xBit*4 + yBit*2 + zBit), distinct from and inconsistent with
// the one flagNode uses to compute a child's slot from its region test
// (index = zBit*4 + yBit*2 + xBit) — a mismatch present in the original
// reference implementation and preserved here rather than silently
// corrected, since this package's purpose is a faithful port, not a fixed
// one.
var regions = [8]mgl32.Vec3{
	{-1, -1, -1},
	{-1, -1, 1},
	{-1, 1, -1},
	{-1, 1, 1},
	{1, -1, -1},
	{1, -1, 1},
	{1, 1, -1},
	{1, 1, 1},
}

// Builder builds a flagged-node octree from a dims^3 dense grid centered
// on the origin, subdivided Levels times.
type Builder struct {
	Dims   uint32
	Levels uint32

	octree    []uint32
	fragments []uint32

	allocBegin uint32
	allocCount uint32
}

// NewBuilder returns a builder with the given grid resolution and level
// count. The didactic defaults in the original are Dims=64, Levels=7.
func NewBuilder(dims, levels uint32) *Builder {
	return &Builder{Dims: dims, Levels: levels, allocCount: 1}
}

// Octree returns the packed node words built by Build, for tests and for
// any caller that wants to inspect the raw pool.
func (b *Builder) Octree() []uint32 { return b.octree }

// Build scans the full grid against oracle, then runs one
// init/flag/allocate pass per level.
func (b *Builder) Build(oracle vxoctree.VoxelData) {
	b.initializeFragmentList(oracle)
	b.octree = make([]uint32, len(b.fragments)*10*4)
	for level := uint32(0); level < b.Levels; level++ {
		b.initNode()
		b.flagNode(level)
		b.allocateNode()
	}
}

func (b *Builder) convertToFullRange(p mgl32.Vec3) mgl32.Vec3 {
	half := float32(b.Dims) * 0.5
	return mgl32.Vec3{p.X() - half, p.Y() - half, p.Z() - half}
}

func (b *Builder) convertToPositiveRange(p mgl32.Vec3) mgl32.Vec3 {
	half := float32(b.Dims) * 0.5
	return mgl32.Vec3{p.X() + half, p.Y() + half, p.Z() + half}
}

// initializeFragmentList scans every grid cell and records a Morton-ish
// packed position (10 bits per axis) for every cell oracle reports
// nonzero, mirroring InitializeFragmentList.
func (b *Builder) initializeFragmentList(oracle vxoctree.VoxelData) {
	for x := uint32(0); x < b.Dims; x++ {
		for y := uint32(0); y < b.Dims; y++ {
			for z := uint32(0); z < b.Dims; z++ {
				p := b.convertToFullRange(mgl32.Vec3{float32(x), float32(y), float32(z)})
				if oracle.Sample(p) == 0 {
					continue
				}
				ip := b.convertToPositiveRange(p)
				packed := uint32(ip.X())<<20 | uint32(ip.Y())<<10 | uint32(ip.Z())
				b.fragments = append(b.fragments, packed)
			}
		}
	}
}

// initNode zeroes the pending level's node range. This reproduces
// InitNode's own loop bound verbatim (i runs allocBegin..allocCount, not
// allocBegin..allocBegin+allocCount): a latent inconsistency in the
// original that this direct port keeps rather than silently fixes, per
// the same reasoning applied to the original's AllocateNode quirk.
func (b *Builder) initNode() {
	for i := b.allocBegin; i < b.allocCount; i++ {
		b.octree[i] = 0
	}
}

// flagNode walks every fragment position down the tree as far as level
// allows, flagging the node it bottoms out at as non-empty.
func (b *Builder) flagNode(level uint32) {
	for _, frag := range b.fragments {
		position := b.convertToFullRange(mgl32.Vec3{
			float32((frag >> 20) & 0x3ff),
			float32((frag >> 10) & 0x3ff),
			float32(frag & 0x3ff),
		})

		childIndex := uint32(0)
		node := b.octree[0]
		flagged := true

		center := mgl32.Vec3{}
		nodeSize := float32(b.Dims) * 0.5

		for i := uint32(0); i < level; i++ {
			nodeSize *= 0.5
			if node&flagBit == 0 {
				flagged = false
				break
			}
			childIndex += node & offsetMask

			rx, ry, rz := regionBit(position.X(), center.X()), regionBit(position.Y(), center.Y()), regionBit(position.Z(), center.Z())
			childIndex += rz*4 + ry*2 + rx

			center = center.Add(mgl32.Vec3{
				signedUnit(rx) * nodeSize,
				signedUnit(ry) * nodeSize,
				signedUnit(rz) * nodeSize,
			})
			node = b.octree[childIndex]
		}

		if flagged {
			b.octree[childIndex] |= flagBit
		}
	}
}

func regionBit(component, center float32) uint32 {
	if component > center {
		return 1
	}
	return 0
}

func signedUnit(bit uint32) float32 {
	return float32(bit)*2 - 1
}

// allocateNode gives every node flagged in this level's range an 8-child
// block appended past the current frontier, storing each as a relative
// offset from the node's own index.
func (b *Builder) allocateNode() {
	endPtr := b.allocBegin + b.allocCount
	for i := uint32(0); i < b.allocCount; i++ {
		current := b.allocBegin + i
		if b.octree[current]&flagBit != 0 {
			b.octree[current] |= endPtr - current
			endPtr += 8
		}
	}
	b.allocBegin += b.allocCount
	b.allocCount = endPtr - b.allocBegin
}

// ListVoxels walks the built tree and returns one (center, halfExtent)
// entry per node at the deepest level, whether or not it was ever flagged
// — the original's _ListVoxel emits a leaf cell unconditionally once it
// bottoms out, using the flag only to decide whether to recurse further
// above that level.
func (b *Builder) ListVoxels() []vxoctree.Voxel {
	var out []vxoctree.Voxel
	b.listVoxel(0, mgl32.Vec3{}, float32(b.Dims)*0.5, 0, &out)
	return out
}

func (b *Builder) listVoxel(nodeIndex uint32, position mgl32.Vec3, halfSize float32, level uint32, out *[]vxoctree.Voxel) {
	node := b.octree[nodeIndex]
	if level == b.Levels-1 {
		*out = append(*out, vxoctree.Voxel{Center: position, Extent: halfSize})
		return
	}
	if node&flagBit != 0 {
		childIndex := nodeIndex + node&offsetMask
		childHalf := halfSize * 0.5
		for i, r := range regions {
			childPos := position.Add(r.Mul(childHalf))
			b.listVoxel(childIndex+uint32(i), childPos, childHalf, level+1, out)
		}
	}
}
