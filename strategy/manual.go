// ABOUTME: Manual strategy, the unmanaged zero-overhead baseline
// ABOUTME: Release is the only free path; forgetting it leaks by design

package strategy

import (
	"github.com/prateek/gcbench/metrics"
	"github.com/prateek/gcbench/objgraph"
)

func init() {
	Register("manual", func(c *metrics.Counters) Strategy {
		return NewManual(c)
	})
}

// manualHandle is an unmanaged reference with no lifetime obligation
type manualHandle struct {
	node *objgraph.Node
}

func (h *manualHandle) Node() *objgraph.Node { return h.node }

// Manual is the unmanaged baseline: Allocate hands out raw references and
// Release frees immediately and unconditionally. Nothing protects against
// double-free or use-after-free — that is the point of the comparison, and
// the scenario runner's own bookkeeping is what avoids them. An allocation
// never released is leaked, which makes this the control case for leak
// measurement.
type Manual struct {
	counters *metrics.Counters
}

// NewManual creates a manual strategy reporting into c
func NewManual(c *metrics.Counters) *Manual {
	return &Manual{counters: c}
}

// Name returns "manual"
func (s *Manual) Name() string { return "manual" }

// Allocate creates a node and returns an unmanaged handle to it
func (s *Manual) Allocate(size int) Handle {
	n := objgraph.NewNode(size)
	s.counters.CountAlloc(n.Size())
	return &manualHandle{node: n}
}

// Retain returns the handle unchanged; there is no count to bump
func (s *Manual) Retain(h Handle) Handle { return h }

// Link stores the edge; manual edges carry no ownership
func (s *Manual) Link(from, to Handle) {
	from.Node().AddRef(to.Node())
}

// Release frees the object immediately. Releasing the same handle twice
// corrupts the counters; callers own that bookkeeping.
func (s *Manual) Release(h Handle) {
	s.counters.CountFree(h.Node().Size())
}

// RegisterRoot is a no-op; manual has no tracer to inform
func (s *Manual) RegisterRoot(h Handle) {}

// UnregisterRoot is a no-op
func (s *Manual) UnregisterRoot(h Handle) error { return nil }

// Collect is a no-op; nothing is ever freed implicitly
func (s *Manual) Collect() int { return 0 }
