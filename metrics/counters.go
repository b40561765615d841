// ABOUTME: Process-wide allocation and free counters for the benchmark harness
// ABOUTME: Injected into strategies, reset per scenario, read-only for consumers

// Package metrics holds the counters every strategy reports into: how many
// objects were allocated, how many were actually freed, and how many bytes
// each side accounted for. A Counters value is explicitly injected into each
// strategy rather than accessed as ambient global state, and is reset at the
// start of every scenario invocation. Within a run the counts only ever
// increase, so a consumer reading them after a run sees a stable final
// snapshot.
package metrics

import "sync/atomic"

// Counters accumulates allocation and free events for one scenario run
type Counters struct {
	allocs     atomic.Int64
	frees      atomic.Int64
	bytesAlloc atomic.Int64
	bytesFreed atomic.Int64
}

// Snapshot is a read-only copy of the counters at one point in time
type Snapshot struct {
	Allocs      int64
	Frees       int64
	LeakedBytes int64
}

// NewCounters creates a zeroed Counters
func NewCounters() *Counters {
	return &Counters{}
}

// CountAlloc records one allocation of size bytes
func (c *Counters) CountAlloc(size int) {
	c.allocs.Add(1)
	c.bytesAlloc.Add(int64(size))
}

// CountFree records one free of size bytes
func (c *Counters) CountFree(size int) {
	c.frees.Add(1)
	c.bytesFreed.Add(int64(size))
}

// Allocs returns the number of allocations recorded since the last reset
func (c *Counters) Allocs() int64 {
	return c.allocs.Load()
}

// Frees returns the number of frees recorded since the last reset
func (c *Counters) Frees() int64 {
	return c.frees.Load()
}

// LeakedBytes returns bytes allocated but never freed since the last reset
func (c *Counters) LeakedBytes() int64 {
	return c.bytesAlloc.Load() - c.bytesFreed.Load()
}

// Reset zeroes all counters. The scenario runner calls this at the start of
// every invocation; nothing else decrements a counter.
func (c *Counters) Reset() {
	c.allocs.Store(0)
	c.frees.Store(0)
	c.bytesAlloc.Store(0)
	c.bytesFreed.Store(0)
}

// Snapshot returns a stable copy for external consumers, such as the
// memory-auditing tool that cross-checks leak sizes.
func (c *Counters) Snapshot() Snapshot {
	return Snapshot{
		Allocs:      c.Allocs(),
		Frees:       c.Frees(),
		LeakedBytes: c.LeakedBytes(),
	}
}
