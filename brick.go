package vxoctree

import "github.com/go-gl/mathgl/mgl32"

const (
	// NumBrick is the brick's per-axis resolution (the "N" in N×N×N).
	NumBrick = 8
	// BrickElementCount is the number of uint32 sample words per brick.
	BrickElementCount = NumBrick * NumBrick * NumBrick
	// LeafNodeScale is the finest full cube extent the builder resolves: a
	// node whose extent is at or below it is always promoted to a leaf
	// rather than subdivided.
	LeafNodeScale = 1

	// colorShift discards the reserved low byte of a raw voxel sample when
	// packing it as a Leaf payload.
	colorShift = 8
)

// brickClass is the outcome of sampling a region for brick construction.
type brickClass int

const (
	brickEmpty brickClass = iota
	brickConstant
	brickHeterogeneous
)

// sampleBrick samples NumBrick³ uniformly spaced points inside
// [min, min+extent]³ via oracle.Sample, classifying the result. The sample
// positions match ParallelOctree::CreateBrick: p = min + (xyz/(N-1))*extent.
func sampleBrick(oracle VoxelData, min mgl32.Vec3, extent float32) (words []uint32, class brickClass, constant uint32) {
	words = make([]uint32, BrickElementCount)
	empty := true
	constantValue := uint32(0)
	isConstant := true
	firstSeen := false

	for x := 0; x < NumBrick; x++ {
		for y := 0; y < NumBrick; y++ {
			for z := 0; z < NumBrick; z++ {
				t := mgl32.Vec3{float32(x), float32(y), float32(z)}.Mul(1.0 / float32(NumBrick-1))
				p := min.Add(mgl32.Vec3{t.X() * extent, t.Y() * extent, t.Z() * extent})
				val := oracle.Sample(p)
				idx := x*NumBrick*NumBrick + y*NumBrick + z
				words[idx] = val
				if val != 0 {
					empty = false
					if !firstSeen {
						constantValue = val
						firstSeen = true
					} else if val != constantValue {
						isConstant = false
					}
				}
			}
		}
	}

	if empty {
		return words, brickEmpty, 0
	}
	if isConstant {
		return words, brickConstant, constantValue
	}
	return words, brickHeterogeneous, 0
}

// packColor extracts the 24-bit color a constant-nonzero voxel sample
// carries as a Leaf payload: the sample's low 8 bits are a reserved
// material/flag byte the core never interprets.
func packColor(sample uint32) uint32 {
	return sample >> colorShift
}
