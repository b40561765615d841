// ABOUTME: Tests for the mark-sweep tracing collector
// ABOUTME: Covers reachability exactness, cycle reclamation, idempotence, root errors

package strategy

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/prateek/gcbench/metrics"
)

func TestMarkSweepReleaseNeverFrees(t *testing.T) {
	c := metrics.NewCounters()
	s := NewMarkSweep(c)

	h := s.Allocate(64)
	s.Release(h)

	// Handle destruction has no effect on lifetime; only Collect frees.
	require.Zero(t, c.Frees())
	require.True(t, s.InHeap(h))
}

func TestMarkSweepCollectFreesUnreachable(t *testing.T) {
	c := metrics.NewCounters()
	s := NewMarkSweep(c)

	kept := s.Allocate(64)
	s.RegisterRoot(kept)
	dropped := s.Allocate(64)

	freed := s.Collect()

	require.Equal(t, 1, freed)
	require.True(t, s.InHeap(kept))
	require.False(t, s.InHeap(dropped))
	require.EqualValues(t, 64, c.LeakedBytes())
}

// After a collect the heap registry must hold exactly the set of nodes
// transitively reachable from the root registry at the moment of the call.
func TestMarkSweepRegistryMatchesReachableSet(t *testing.T) {
	c := metrics.NewCounters()
	s := NewMarkSweep(c)

	// root -> a -> b, plus an unreachable pair x -> y.
	root := s.Allocate(16)
	a := s.Allocate(16)
	b := s.Allocate(16)
	x := s.Allocate(16)
	y := s.Allocate(16)
	s.Link(root, a)
	s.Link(a, b)
	s.Link(x, y)
	s.RegisterRoot(root)

	freed := s.Collect()

	require.Equal(t, 2, freed)
	require.Equal(t, 3, s.HeapSize())
	for _, h := range []Handle{root, a, b} {
		require.True(t, s.InHeap(h))
	}
	for _, h := range []Handle{x, y} {
		require.False(t, s.InHeap(h))
	}
}

func TestMarkSweepReclaimsCycle(t *testing.T) {
	c := metrics.NewCounters()
	s := NewMarkSweep(c)

	// Two-node cycle A -> B, B -> A, both registered as roots.
	a := s.Allocate(64)
	b := s.Allocate(64)
	s.Link(a, b)
	s.Link(b, a)
	s.RegisterRoot(a)
	s.RegisterRoot(b)

	// Reachable while rooted.
	require.Zero(t, s.Collect())
	require.Equal(t, 2, s.HeapSize())

	require.NoError(t, s.UnregisterRoot(a))
	require.NoError(t, s.UnregisterRoot(b))

	require.Equal(t, 2, s.Collect())
	require.Zero(t, s.HeapSize())
	require.EqualValues(t, 2, c.Frees())
	require.Zero(t, c.LeakedBytes())
}

func TestMarkSweepCollectIsIdempotent(t *testing.T) {
	c := metrics.NewCounters()
	s := NewMarkSweep(c)

	root := s.Allocate(32)
	child := s.Allocate(32)
	s.Link(root, child)
	s.RegisterRoot(root)
	s.Allocate(32) // creation handle discarded, immediately garbage

	first := s.Collect()
	require.Equal(t, 1, first)

	// No allocation or root change in between: nothing more to free.
	second := s.Collect()
	require.Zero(t, second)
	require.EqualValues(t, 1, c.Frees())
}

func TestMarkSweepSurvivorsAreUnmarkedAfterSweep(t *testing.T) {
	s := NewMarkSweep(metrics.NewCounters())

	root := s.Allocate(8)
	s.RegisterRoot(root)
	s.Collect()

	// The mark flag must be reset so the next cycle starts clean.
	require.False(t, root.Node().Marked)
}

func TestMarkSweepUnregisterUnknownRootFails(t *testing.T) {
	s := NewMarkSweep(metrics.NewCounters())

	h := s.Allocate(8)
	require.ErrorIs(t, s.UnregisterRoot(h), ErrUnknownRoot)

	s.RegisterRoot(h)
	require.NoError(t, s.UnregisterRoot(h))
	require.ErrorIs(t, s.UnregisterRoot(h), ErrUnknownRoot)
}
