package vxoctree

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestIsRegionEmptyDefaultLatticeDetectsContent(t *testing.T) {
	oracle := funcOracle(func(p mgl32.Vec3) uint32 {
		if p.X() > 5 && p.Y() > 5 && p.Z() > 5 {
			return 1
		}
		return 0
	})

	if !IsRegionEmpty(oracle, mgl32.Vec3{-1, -1, -1}, mgl32.Vec3{1, 1, 1}) {
		t.Fatal("region far from the nonzero corner should be reported empty")
	}
	if IsRegionEmpty(oracle, mgl32.Vec3{0, 0, 0}, mgl32.Vec3{10, 10, 10}) {
		t.Fatal("region covering the nonzero corner should not be reported empty")
	}
}

type proberOracle struct {
	funcOracle
	reportEmpty bool
	called      bool
}

func (p *proberOracle) IsRegionEmpty(min, max mgl32.Vec3) bool {
	p.called = true
	return p.reportEmpty
}

func TestIsRegionEmptyPrefersProberOverride(t *testing.T) {
	p := &proberOracle{
		funcOracle:  func(mgl32.Vec3) uint32 { return 1 },
		reportEmpty: true,
	}
	if !IsRegionEmpty(p, mgl32.Vec3{}, mgl32.Vec3{1, 1, 1}) {
		t.Fatal("expected the custom prober's answer to be used")
	}
	if !p.called {
		t.Fatal("expected IsRegionEmpty to delegate to the RegionEmptinessProber")
	}
}
