package vxoctree

import "testing"

func TestFreeListPushTryPop(t *testing.T) {
	var f FreeList
	if _, ok := f.TryPop(); ok {
		t.Fatal("TryPop on an empty free list should fail")
	}

	f.Push(3)
	f.Push(7)
	if f.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", f.Len())
	}

	seen := map[uint32]bool{}
	for i := 0; i < 2; i++ {
		v, ok := f.TryPop()
		if !ok {
			t.Fatalf("TryPop should succeed while entries remain (i=%d)", i)
		}
		seen[v] = true
	}
	if !seen[3] || !seen[7] {
		t.Fatalf("expected to pop both 3 and 7, got %v", seen)
	}
	if _, ok := f.TryPop(); ok {
		t.Fatal("free list should be empty after popping all pushed entries")
	}
}

func TestFreeListConcurrentPush(t *testing.T) {
	var f FreeList
	done := make(chan struct{})
	for i := 0; i < 100; i++ {
		go func(i int) {
			f.Push(uint32(i))
			done <- struct{}{}
		}(i)
	}
	for i := 0; i < 100; i++ {
		<-done
	}
	if f.Len() != 100 {
		t.Fatalf("Len() after 100 concurrent pushes = %d, want 100", f.Len())
	}
}
