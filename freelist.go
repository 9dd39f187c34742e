package vxoctree

import "sync"

// FreeList is a concurrent stack of reclaimed pool indices awaiting reuse,
// mirroring the C++ original's ThreadSafeQueue<uint32_t> (freeNodePools /
// freeBrickPools). Order is not preserved and is not promised by the spec.
type FreeList struct {
	mu      sync.Mutex
	entries []uint32
}

// Push reclaims an index. Never fails.
func (f *FreeList) Push(i uint32) {
	f.mu.Lock()
	f.entries = append(f.entries, i)
	f.mu.Unlock()
}

// TryPop removes and returns an arbitrary reclaimed index, if any.
func (f *FreeList) TryPop() (uint32, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := len(f.entries)
	if n == 0 {
		return 0, false
	}
	i := f.entries[n-1]
	f.entries = f.entries[:n-1]
	return i, true
}

// Len reports the number of reclaimed entries currently available.
func (f *FreeList) Len() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.entries)
}
