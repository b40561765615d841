// ABOUTME: Tests for the manual baseline strategy
// ABOUTME: Covers explicit frees, intentional leaks, and no-op collector hooks

package strategy

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/prateek/gcbench/metrics"
)

func TestManualReleaseFreesImmediately(t *testing.T) {
	c := metrics.NewCounters()
	s := NewManual(c)

	h := s.Allocate(64)
	require.Zero(t, c.Frees())

	s.Release(h)
	require.EqualValues(t, 1, c.Frees())
	require.Zero(t, c.LeakedBytes())
}

func TestManualForgottenReleaseLeaks(t *testing.T) {
	c := metrics.NewCounters()
	s := NewManual(c)

	// The control case for leak measurement: no release, no reclaim.
	s.Allocate(100)
	require.Zero(t, s.Collect())
	require.EqualValues(t, 100, c.LeakedBytes())
}

func TestManualEdgesCarryNoOwnership(t *testing.T) {
	c := metrics.NewCounters()
	s := NewManual(c)

	parent := s.Allocate(32)
	child := s.Allocate(32)
	s.Link(parent, child)

	// Freeing the parent must not touch the child.
	s.Release(parent)
	require.EqualValues(t, 1, c.Frees())

	s.Release(child)
	require.EqualValues(t, 2, c.Frees())
	require.Zero(t, c.LeakedBytes())
}

func TestManualCollectorHooksAreNoOps(t *testing.T) {
	c := metrics.NewCounters()
	s := NewManual(c)

	h := s.Allocate(8)
	s.RegisterRoot(h)
	require.NoError(t, s.UnregisterRoot(h))
	require.Same(t, h, s.Retain(h))
	require.Zero(t, s.Collect())
	require.Zero(t, c.Frees())
}
