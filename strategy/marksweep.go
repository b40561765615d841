// ABOUTME: Mark-sweep tracing collector with heap and root registries
// ABOUTME: Frees happen only inside an explicit Collect call, never on release

package strategy

import (
	mapset "github.com/deckarep/golang-set/v2"

	"github.com/prateek/gcbench/metrics"
	"github.com/prateek/gcbench/objgraph"
)

func init() {
	Register("marksweep", func(c *metrics.Counters) Strategy {
		return NewMarkSweep(c)
	})
}

// msHandle is a thin reference into the collector's heap registry
type msHandle struct {
	node *objgraph.Node
}

func (h *msHandle) Node() *objgraph.Node { return h.node }

// MarkSweep traces reachability from a root registry over a heap registry of
// every live allocation. Objects die only during an explicit Collect call:
// dropping a handle has no effect on lifetime, which makes teardown timing
// non-deterministic relative to program logic — a documented property of the
// design, not an oversight. A Collect runs two phases back to back: mark
// walks outgoing references from every registered root, and sweep frees
// every registry member the mark never reached. Cost scales with the live
// plus dead heap size at collection time, independent of how much is
// actually garbage.
//
// Both registries are private to the collector; nothing else mutates them.
type MarkSweep struct {
	counters *metrics.Counters
	heap     mapset.Set[*objgraph.Node]
	roots    mapset.Set[*objgraph.Node]
}

// NewMarkSweep creates a mark-sweep collector reporting into c
func NewMarkSweep(c *metrics.Counters) *MarkSweep {
	return &MarkSweep{
		counters: c,
		heap:     mapset.NewThreadUnsafeSet[*objgraph.Node](),
		roots:    mapset.NewThreadUnsafeSet[*objgraph.Node](),
	}
}

// Name returns "marksweep"
func (s *MarkSweep) Name() string { return "marksweep" }

// Allocate creates a node and enters it into the heap registry
func (s *MarkSweep) Allocate(size int) Handle {
	n := objgraph.NewNode(size)
	s.counters.CountAlloc(n.Size())
	s.heap.Add(n)
	return &msHandle{node: n}
}

// Retain returns an equivalent handle; lifetime is decided by tracing alone
func (s *MarkSweep) Retain(h Handle) Handle {
	return &msHandle{node: h.Node()}
}

// Link stores the edge for the tracer to follow
func (s *MarkSweep) Link(from, to Handle) {
	from.Node().AddRef(to.Node())
}

// Release is a no-op: handle destruction never frees anything here
func (s *MarkSweep) Release(h Handle) {}

// RegisterRoot marks the handle's node as an externally reachable trace start
func (s *MarkSweep) RegisterRoot(h Handle) {
	s.roots.Add(h.Node())
}

// UnregisterRoot removes the node from the root registry. Unregistering a
// handle that was never registered returns ErrUnknownRoot so that root
// bookkeeping errors surface instead of skewing measurements.
func (s *MarkSweep) UnregisterRoot(h Handle) error {
	n := h.Node()
	if !s.roots.Contains(n) {
		return ErrUnknownRoot
	}
	s.roots.Remove(n)
	return nil
}

// Collect runs one full mark phase followed by one full sweep phase and
// returns the number of objects freed. Once started it always runs to
// completion; there is no partial sweep state.
func (s *MarkSweep) Collect() int {
	s.mark()
	return s.sweep()
}

// mark flags every node transitively reachable from the root registry.
// Depth-first with an explicit stack; already-marked nodes terminate the
// walk, which is what makes cycles safe to trace.
func (s *MarkSweep) mark() {
	stack := s.roots.ToSlice()
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if n.Marked {
			continue
		}
		n.Marked = true
		stack = append(stack, n.Refs...)
	}
}

// sweep frees every unmarked registry member and clears the mark on every
// survivor, resetting the registry for the next cycle.
func (s *MarkSweep) sweep() int {
	var dead []*objgraph.Node
	s.heap.Each(func(n *objgraph.Node) bool {
		if !n.Marked {
			dead = append(dead, n)
		}
		return false
	})

	for _, n := range dead {
		s.heap.Remove(n)
		s.counters.CountFree(n.Size())
	}

	s.heap.Each(func(n *objgraph.Node) bool {
		n.Marked = false
		return false
	})

	return len(dead)
}

// HeapSize returns the number of entries in the heap registry
func (s *MarkSweep) HeapSize() int {
	return s.heap.Cardinality()
}

// InHeap reports whether a handle's node is still in the heap registry
func (s *MarkSweep) InHeap(h Handle) bool {
	return s.heap.Contains(h.Node())
}
