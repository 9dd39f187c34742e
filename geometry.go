package vxoctree

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// treeDepth returns D = floor(log2(2*size) / (log2(LeafNodeScale)+1)), the
// BFS depth bound shared by Generate, Update, and ListVoxels. With
// LeafNodeScale == 1 this reduces to floor(log2(2*size)), but the general
// form is kept to mirror ParallelOctree's formula verbatim.
func treeDepth(size float32) int {
	denom := math.Log2(float64(LeafNodeScale)) + 1
	return int(math.Log2(float64(size)*2) / denom)
}

// chebyshevDistance is the L-infinity distance used by the updater's LOD
// classification (glm::compMax(glm::abs(a - b)) in the original).
func chebyshevDistance(a, b mgl32.Vec3) float32 {
	d := a.Sub(b)
	ax, ay, az := absf(d.X()), absf(d.Y()), absf(d.Z())
	m := ax
	if ay > m {
		m = ay
	}
	if az > m {
		m = az
	}
	return m
}

func absf(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}

// euclideanDistance is used by the builder's LOD classification
// (glm::length(cameraPosition - nodeData.center) in the original).
func euclideanDistance(a, b mgl32.Vec3) float32 {
	return a.Sub(b).Len()
}
