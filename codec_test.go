package vxoctree

import (
	"bytes"
	"errors"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/require"
)

func voxelMultiset(voxels []Voxel) map[[4]float32]int {
	out := map[[4]float32]int{}
	for _, v := range voxels {
		out[[4]float32{v.Center.X(), v.Center.Y(), v.Center.Z(), v.Extent}]++
	}
	return out
}

func TestWriteToThenReadOctreeRoundTripsListVoxels(t *testing.T) {
	tree, err := NewOctree(mgl32.Vec3{1, 2, 3}, 16, Options{})
	require.NoError(t, err)

	oracle := sphereOracle(mgl32.Vec3{1, 2, 3}, 8)
	require.NoError(t, tree.Generate(oracle, mgl32.Vec3{0, 0, 40}))

	before := voxelMultiset(tree.ListVoxels(fullyOpenFrustum()))

	var buf bytes.Buffer
	n, err := tree.WriteTo(&buf)
	require.NoError(t, err)
	require.Equal(t, int64(buf.Len()), n)

	restored, err := ReadOctree(&buf, Options{})
	require.NoError(t, err)
	require.Equal(t, tree.Center, restored.Center)
	require.Equal(t, tree.Size, restored.Size)
	require.Equal(t, tree.NodeCount(), restored.NodeCount())
	require.Equal(t, tree.BrickCount(), restored.BrickCount())

	after := voxelMultiset(restored.ListVoxels(fullyOpenFrustum()))
	require.Equal(t, before, after)
}

func TestReadOctreeFreeListsStartEmptyAfterRoundTrip(t *testing.T) {
	tree, err := NewOctree(mgl32.Vec3{}, 16, Options{})
	require.NoError(t, err)
	oracle := solidOracle()
	require.NoError(t, tree.Generate(oracle, moderateDistanceObserver()))
	require.NoError(t, tree.Update(oracle, farObserver()))
	require.Greater(t, tree.FreeNodeBlockCount(), 0)

	var buf bytes.Buffer
	_, err = tree.WriteTo(&buf)
	require.NoError(t, err)

	restored, err := ReadOctree(&buf, Options{})
	require.NoError(t, err)
	require.Equal(t, 0, restored.FreeNodeBlockCount())
	require.Equal(t, 0, restored.FreeBrickCount())
}

func TestReadOctreeTruncatedStreamReportsCorruptStream(t *testing.T) {
	tree, err := NewOctree(mgl32.Vec3{}, 16, Options{})
	require.NoError(t, err)
	oracle := sphereOracle(mgl32.Vec3{}, 8)
	require.NoError(t, tree.Generate(oracle, mgl32.Vec3{0, 0, 40}))

	var buf bytes.Buffer
	_, err = tree.WriteTo(&buf)
	require.NoError(t, err)

	truncated := bytes.NewReader(buf.Bytes()[:buf.Len()-4])
	_, err = ReadOctree(truncated, Options{})
	if !errors.Is(err, ErrCorruptStream) {
		t.Fatalf("err = %v, want ErrCorruptStream", err)
	}
}

func TestReadOctreeRejectsNonPositiveSize(t *testing.T) {
	var buf bytes.Buffer
	tree, err := NewOctree(mgl32.Vec3{}, 16, Options{})
	require.NoError(t, err)
	_, err = tree.WriteTo(&buf)
	require.NoError(t, err)

	raw := buf.Bytes()
	// size occupies bytes [12:16), right after the 12-byte center.
	raw[12], raw[13], raw[14], raw[15] = 0, 0, 0, 0
	_, err = ReadOctree(bytes.NewReader(raw), Options{})
	if !errors.Is(err, ErrCorruptStream) {
		t.Fatalf("err = %v, want ErrCorruptStream", err)
	}
}
