// ABOUTME: Tests for the injected allocation/free counters
// ABOUTME: Validates monotonic counts, leak arithmetic, reset, and snapshots

package metrics

import (
	"testing"
)

func TestCountAllocAndFree(t *testing.T) {
	c := NewCounters()

	c.CountAlloc(64)
	c.CountAlloc(64)
	c.CountFree(64)

	if c.Allocs() != 2 {
		t.Errorf("Expected 2 allocs, got %d", c.Allocs())
	}
	if c.Frees() != 1 {
		t.Errorf("Expected 1 free, got %d", c.Frees())
	}
	if c.LeakedBytes() != 64 {
		t.Errorf("Expected 64 leaked bytes, got %d", c.LeakedBytes())
	}
}

func TestLeakedBytesZeroWhenBalanced(t *testing.T) {
	c := NewCounters()

	sizes := []int{8, 64, 1024}
	for _, s := range sizes {
		c.CountAlloc(s)
	}
	for _, s := range sizes {
		c.CountFree(s)
	}

	if c.LeakedBytes() != 0 {
		t.Errorf("Expected 0 leaked bytes, got %d", c.LeakedBytes())
	}
}

func TestReset(t *testing.T) {
	c := NewCounters()
	c.CountAlloc(128)
	c.CountFree(128)
	c.CountAlloc(32)

	c.Reset()

	if c.Allocs() != 0 || c.Frees() != 0 || c.LeakedBytes() != 0 {
		t.Errorf("Expected zeroed counters after reset, got allocs=%d frees=%d leaked=%d",
			c.Allocs(), c.Frees(), c.LeakedBytes())
	}
}

func TestSnapshotIsStable(t *testing.T) {
	c := NewCounters()
	c.CountAlloc(100)

	snap := c.Snapshot()

	// Later activity must not show through an already-taken snapshot.
	c.CountAlloc(100)
	c.CountFree(100)

	if snap.Allocs != 1 {
		t.Errorf("Expected snapshot allocs 1, got %d", snap.Allocs)
	}
	if snap.Frees != 0 {
		t.Errorf("Expected snapshot frees 0, got %d", snap.Frees)
	}
	if snap.LeakedBytes != 100 {
		t.Errorf("Expected snapshot leaked 100, got %d", snap.LeakedBytes)
	}
}
