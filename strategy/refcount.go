// ABOUTME: Reference-counting collector with immediate frees at count zero
// ABOUTME: Reproduces the cascade cost and the cycle leak of the source design

package strategy

import (
	"github.com/prateek/gcbench/metrics"
	"github.com/prateek/gcbench/objgraph"
)

func init() {
	Register("refcount", func(c *metrics.Counters) Strategy {
		return NewRefCount(c)
	})
}

// rcHandle is a counted reference to a node
type rcHandle struct {
	node *objgraph.Node
}

func (h *rcHandle) Node() *objgraph.Node { return h.node }

// RefCount wraps every allocation with a count of active owning references,
// initialized to 1 on creation. Duplicating a handle or storing a counted
// edge increments the target's count; releasing decrements it. The moment a
// count transitions to exactly zero the object is freed, synchronously and
// inside the decrementing call — collection is deterministic and interleaved
// with normal execution, never batched. Cost is therefore proportional to
// handle events, not heap size: there is no batch-sweep shortcut, and
// releasing the last reference to a large detached subgraph degrades into a
// cascading chain of individual frees.
//
// Known limitation, reproduced deliberately: members of a reference cycle
// hold each other's counts at one or more forever, even with no external
// reference left, so cycles are never reclaimed.
type RefCount struct {
	counters *metrics.Counters
	counts   map[*objgraph.Node]int
}

// NewRefCount creates a reference-counting collector reporting into c
func NewRefCount(c *metrics.Counters) *RefCount {
	return &RefCount{
		counters: c,
		counts:   make(map[*objgraph.Node]int),
	}
}

// Name returns "refcount"
func (s *RefCount) Name() string { return "refcount" }

// Allocate creates a node with its count at one
func (s *RefCount) Allocate(size int) Handle {
	n := objgraph.NewNode(size)
	s.counters.CountAlloc(n.Size())
	s.counts[n] = 1
	return &rcHandle{node: n}
}

// Retain duplicates the handle, incrementing the target's count
func (s *RefCount) Retain(h Handle) Handle {
	n := h.Node()
	s.counts[n]++
	return &rcHandle{node: n}
}

// Link stores a counted edge; the referent gains one reference
func (s *RefCount) Link(from, to Handle) {
	from.Node().AddRef(to.Node())
	s.counts[to.Node()]++
}

// Release decrements the target's count, freeing it on the transition to
// zero. Freeing releases each outgoing edge in turn, so a detached subgraph
// collapses as one cascade of individual decrements.
func (s *RefCount) Release(h Handle) {
	s.decRef(h.Node())
}

func (s *RefCount) decRef(n *objgraph.Node) {
	pending := []*objgraph.Node{n}
	for len(pending) > 0 {
		cur := pending[len(pending)-1]
		pending = pending[:len(pending)-1]

		s.counts[cur]--
		if s.counts[cur] > 0 {
			continue
		}
		delete(s.counts, cur)
		s.counters.CountFree(cur.Size())
		pending = append(pending, cur.Refs...)
	}
}

// RegisterRoot is a no-op; counts alone decide lifetime
func (s *RefCount) RegisterRoot(h Handle) {}

// UnregisterRoot is a no-op
func (s *RefCount) UnregisterRoot(h Handle) error { return nil }

// Collect is a no-op; every free already happened at a zero transition
func (s *RefCount) Collect() int { return 0 }

// Count returns the current reference count for a node, zero if freed
func (s *RefCount) Count(h Handle) int {
	return s.counts[h.Node()]
}
