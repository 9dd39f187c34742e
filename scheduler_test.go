package vxoctree

import (
	"sync"
	"sync/atomic"
	"testing"
)

func TestDefaultSchedulerParallelForCoversEveryIndex(t *testing.T) {
	s := &DefaultScheduler{MaxWorkers: 4}
	const n = 97
	var seen [n]int32

	s.ParallelFor(n, func(start, end, worker int) {
		for i := start; i < end; i++ {
			atomic.AddInt32(&seen[i], 1)
		}
	})

	for i, count := range seen {
		if count != 1 {
			t.Fatalf("index %d visited %d times, want exactly 1", i, count)
		}
	}
}

func TestDefaultSchedulerParallelForZeroItems(t *testing.T) {
	s := NewDefaultScheduler()
	called := false
	s.ParallelFor(0, func(start, end, worker int) { called = true })
	if called {
		t.Fatal("ParallelFor(0, ...) should not invoke fn")
	}
}

func TestDefaultSchedulerCapsWorkersToItemCount(t *testing.T) {
	s := &DefaultScheduler{MaxWorkers: 64}
	var mu sync.Mutex
	workersSeen := map[int]bool{}

	s.ParallelFor(3, func(start, end, worker int) {
		mu.Lock()
		workersSeen[worker] = true
		mu.Unlock()
	})

	if len(workersSeen) > 3 {
		t.Fatalf("expected at most 3 distinct workers for 3 items, got %d", len(workersSeen))
	}
}
