package vxoctree

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

type funcOracle func(p mgl32.Vec3) uint32

func (f funcOracle) Sample(p mgl32.Vec3) uint32 { return f(p) }

func TestSampleBrickAllEmpty(t *testing.T) {
	oracle := funcOracle(func(mgl32.Vec3) uint32 { return 0 })
	words, class, _ := sampleBrick(oracle, mgl32.Vec3{-4, -4, -4}, 8)
	if class != brickEmpty {
		t.Fatalf("class = %v, want brickEmpty", class)
	}
	for _, w := range words {
		if w != 0 {
			t.Fatalf("expected all-zero words for an empty brick, found %d", w)
		}
	}
}

func TestSampleBrickConstant(t *testing.T) {
	const sample = uint32(0xABCDEF12)
	oracle := funcOracle(func(mgl32.Vec3) uint32 { return sample })
	_, class, constant := sampleBrick(oracle, mgl32.Vec3{0, 0, 0}, 8)
	if class != brickConstant {
		t.Fatalf("class = %v, want brickConstant", class)
	}
	if constant != sample {
		t.Fatalf("constant = %#x, want %#x", constant, sample)
	}
}

func TestSampleBrickHeterogeneous(t *testing.T) {
	oracle := funcOracle(func(p mgl32.Vec3) uint32 {
		if p.X() > 0 {
			return 0x100
		}
		return 0x200
	})
	_, class, _ := sampleBrick(oracle, mgl32.Vec3{-4, -4, -4}, 8)
	if class != brickHeterogeneous {
		t.Fatalf("class = %v, want brickHeterogeneous", class)
	}
}

func TestPackColorDiscardsLowByte(t *testing.T) {
	if got := packColor(0x00ABCDFF); got != 0xABCD {
		t.Fatalf("packColor(0x00ABCDFF) = %#x, want %#x", got, 0xABCD)
	}
	if got := packColor(0x00000001); got != 0 {
		t.Fatalf("packColor(0x1) = %#x, want 0", got)
	}
}
