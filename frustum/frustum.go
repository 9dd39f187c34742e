// Package frustum provides the pure view-frustum math the enumerator uses
// to cull nodes before they are listed for GPU upload: extracting 6 clip
// planes from a view-projection matrix, and testing an AABB against them.
package frustum

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Frustum is 6 clip planes in the order Left, Right, Bottom, Top, Near, Far.
// Each plane is stored as (A, B, C, D) for the equation Ax+By+Cz+D=0, with
// the normal (A,B,C) pointing into the frustum's interior.
type Frustum [6]mgl32.Vec4

// Extract derives a Frustum from a combined view-projection matrix using
// the Gribb-Hartmann plane extraction, normalizing each plane so AABBInside
// can compare raw signed distances against zero. Grounded on
// CameraState.ExtractFrustum.
func Extract(viewProjection mgl32.Mat4) Frustum {
	vp := viewProjection
	row := func(r int) mgl32.Vec4 {
		return mgl32.Vec4{vp.At(r, 0), vp.At(r, 1), vp.At(r, 2), vp.At(r, 3)}
	}
	row3, row0, row1, row2 := row(3), row(0), row(1), row(2)

	var planes Frustum
	planes[0] = row3.Add(row0) // Left
	planes[1] = row3.Sub(row0) // Right
	planes[2] = row3.Add(row1) // Bottom
	planes[3] = row3.Sub(row1) // Top
	planes[4] = row3.Add(row2) // Near
	planes[5] = row3.Sub(row2) // Far

	for i := range planes {
		p := planes[i]
		length := float32(math.Sqrt(float64(p[0]*p[0] + p[1]*p[1] + p[2]*p[2])))
		if length > 0 {
			planes[i] = p.Mul(1.0 / length)
		}
	}
	return planes
}

// AABBInside reports whether the box [min, max] is at least partially
// inside the frustum, using the positive-vertex test: for each plane, the
// box is fully outside only if its vertex furthest along the plane's normal
// still has a negative signed distance. Grounded on AABBInFrustum.
func AABBInside(min, max mgl32.Vec3, f Frustum) bool {
	for _, plane := range f {
		var p mgl32.Vec3
		if plane[0] > 0 {
			p[0] = max[0]
		} else {
			p[0] = min[0]
		}
		if plane[1] > 0 {
			p[1] = max[1]
		} else {
			p[1] = min[1]
		}
		if plane[2] > 0 {
			p[2] = max[2]
		} else {
			p[2] = min[2]
		}

		dist := plane[0]*p[0] + plane[1]*p[1] + plane[2]*p[2] + plane[3]
		if dist < 0 {
			return false
		}
	}
	return true
}
