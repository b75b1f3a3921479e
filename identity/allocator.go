// Package identity issues the integers that make synthesized placeholders
// distinguishable from each other.
package identity

import (
	"math"
	"sync/atomic"
)

const (
	// Start is the initial counter value of a new Allocator. The first issued
	// identity is Start+1, which leaves the whole int32 range ahead.
	Start int32 = math.MinInt32

	// Seed is the identity shared by every closed-value placeholder. It is never
	// issued by Next until the counter has walked a quarter of the int32 range.
	Seed int32 = math.MinInt32/2 - 1974
)

// Allocator is a process-wide style counter. It is safe for concurrent use;
// wraparound after 2^32 allocations is not detected.
type Allocator struct {
	counter atomic.Int32
}

// NewAllocator returns an allocator starting at Start.
func NewAllocator() *Allocator {
	return NewAllocatorAt(Start)
}

// NewAllocatorAt returns an allocator whose first identity is start+1.
func NewAllocatorAt(start int32) *Allocator {
	a := &Allocator{}
	a.counter.Store(start)

	return a
}

// Next advances the counter exactly once and returns the new value.
func (a *Allocator) Next() int32 {
	return a.counter.Add(1)
}

// Current returns the last issued identity without advancing the counter.
func (a *Allocator) Current() int32 {
	return a.counter.Load()
}
