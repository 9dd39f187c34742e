package vxoctree

import (
	"errors"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestNewOctreeRejectsNonPositiveSize(t *testing.T) {
	_, err := NewOctree(mgl32.Vec3{}, 0, Options{})
	if !errors.Is(err, ErrPreconditionViolation) {
		t.Fatalf("err = %v, want ErrPreconditionViolation", err)
	}
	_, err = NewOctree(mgl32.Vec3{}, -1, Options{})
	if !errors.Is(err, ErrPreconditionViolation) {
		t.Fatalf("err = %v, want ErrPreconditionViolation", err)
	}
}

func TestNewOctreeStartsWithAnEmptyRoot(t *testing.T) {
	tree, err := NewOctree(mgl32.Vec3{}, 16, Options{})
	if err != nil {
		t.Fatalf("NewOctree returned error: %v", err)
	}
	if tree.NodeCount() != 1 {
		t.Fatalf("NodeCount() = %d, want 1", tree.NodeCount())
	}
	if tree.BrickCount() != 0 {
		t.Fatalf("BrickCount() = %d, want 0", tree.BrickCount())
	}
	root := tree.nodes.Get(0)
	if root.Kind() != InternalLeaf {
		t.Fatalf("root kind = %v, want InternalLeaf", root.Kind())
	}
}

func TestOptionsWithDefaultsInstallsFallbacks(t *testing.T) {
	o := Options{}.withDefaults()
	if o.Scheduler == nil {
		t.Fatal("expected a default Scheduler")
	}
	if o.Logger == nil {
		t.Fatal("expected a default Logger")
	}
}

func TestAllocateChildBlockHonorsMaxNodes(t *testing.T) {
	tree, err := NewOctree(mgl32.Vec3{}, 16, Options{MaxNodes: 4})
	if err != nil {
		t.Fatalf("NewOctree returned error: %v", err)
	}
	if _, err := tree.allocateChildBlock(); !errors.Is(err, ErrPoolExhausted) {
		t.Fatalf("err = %v, want ErrPoolExhausted", err)
	}
}

func TestAllocateOrReuseChildBlockPrefersFreeList(t *testing.T) {
	tree, err := NewOctree(mgl32.Vec3{}, 16, Options{})
	if err != nil {
		t.Fatalf("NewOctree returned error: %v", err)
	}
	tree.freeNodes.Push(42)
	idx, err := tree.allocateOrReuseChildBlock()
	if err != nil {
		t.Fatalf("allocateOrReuseChildBlock returned error: %v", err)
	}
	if idx != 42 {
		t.Fatalf("idx = %d, want the reclaimed index 42", idx)
	}
}
