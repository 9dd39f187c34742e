package vxoctree

import "github.com/go-gl/mathgl/mgl32"

// regionEmptyLatticeSize is the per-axis resolution of the conservative
// IsRegionEmpty probe, matching ParallelOctree::IsRegionEmpty's 32³ lattice.
const regionEmptyLatticeSize = 32

// VoxelData is the external scalar/color field oracle the builder and
// updater sample against. Zero means empty; any nonzero value is an opaque
// voxel word the core never interprets beyond zero/nonzero and (for the
// high 24 bits) a stored color.
type VoxelData interface {
	// Sample returns the voxel word at world position p.
	Sample(p mgl32.Vec3) uint32
}

// RegionEmptinessProber is implemented by a VoxelData that can answer
// IsRegionEmpty more precisely (and usually more cheaply) than the default
// lattice probe. It must remain conservative in the true direction: a
// region reported empty must contain no nonzero sample the builder will
// ever query.
type RegionEmptinessProber interface {
	IsRegionEmpty(min, max mgl32.Vec3) bool
}

// IsRegionEmpty reports whether a bounded region of oracle contains no
// nonzero sample. If oracle implements RegionEmptinessProber, that
// implementation is used; otherwise a fixed 32³-lattice probe is run,
// matching ParallelOctree::IsRegionEmpty.
func IsRegionEmpty(oracle VoxelData, min, max mgl32.Vec3) bool {
	if prober, ok := oracle.(RegionEmptinessProber); ok {
		return prober.IsRegionEmpty(min, max)
	}
	size := max.Sub(min)
	for x := 0; x < regionEmptyLatticeSize; x++ {
		for y := 0; y < regionEmptyLatticeSize; y++ {
			for z := 0; z < regionEmptyLatticeSize; z++ {
				t := mgl32.Vec3{float32(x), float32(y), float32(z)}.Mul(1.0 / float32(regionEmptyLatticeSize-1))
				p := min.Add(mgl32.Vec3{t.X() * size.X(), t.Y() * size.Y(), t.Z() * size.Z()})
				if oracle.Sample(p) != 0 {
					return false
				}
			}
		}
	}
	return true
}
