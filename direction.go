package vxoctree

import "github.com/go-gl/mathgl/mgl32"

// Directions enumerates child offsets in fixed Morton-style order: bit 0 of
// the index selects x, bit 1 selects y, bit 2 selects z, each component in
// {-1, +1}. Child index i under a parent is always centered at
// parent.center + Directions[i] * halfExtent.
var Directions = [8]mgl32.Vec3{
	{-1, -1, -1},
	{1, -1, -1},
	{-1, 1, -1},
	{1, 1, -1},
	{-1, -1, 1},
	{1, -1, 1},
	{-1, 1, 1},
	{1, 1, 1},
}
