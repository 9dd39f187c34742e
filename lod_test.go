package vxoctree

import "testing"

func TestRequiredExtentBands(t *testing.T) {
	cases := []struct {
		distance float32
		want     float32
	}{
		{0, 1},
		{15.99, 1},
		{16, 2},
		{31.99, 2},
		{32, 4},
		{127.99, 8},
		{255.99, 16},
		{256, 32},
		{10000, 32},
	}
	for _, c := range cases {
		if got := RequiredExtent(c.distance); got != c.want {
			t.Errorf("RequiredExtent(%v) = %v, want %v", c.distance, got, c.want)
		}
	}
}

func TestRequiredExtentIsMonotoneNonDecreasing(t *testing.T) {
	prev := RequiredExtent(0)
	for d := float32(1); d < 1000; d += 3.7 {
		cur := RequiredExtent(d)
		if cur < prev {
			t.Fatalf("RequiredExtent regressed at distance %v: %v < %v", d, cur, prev)
		}
		prev = cur
	}
}
