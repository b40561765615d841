// ABOUTME: Scoped-ownership strategy with exclusive and shared owning handles
// ABOUTME: Deterministic teardown on release; shared cycles leak by design

package strategy

import (
	"github.com/prateek/gcbench/metrics"
	"github.com/prateek/gcbench/objgraph"
)

func init() {
	Register("scoped", func(c *metrics.Counters) Strategy {
		return NewScoped(c)
	})
}

// scopedHandle is an owning handle bound to the scope that obtained it.
// An exclusive handle is the sole owner of its node; a shared handle is one
// of several owners counted by the strategy.
type scopedHandle struct {
	node      *objgraph.Node
	exclusive bool
}

func (h *scopedHandle) Node() *objgraph.Node { return h.node }

// Scoped models ownership bound to lexical scope: every Allocate returns an
// exclusive owning handle, Retain and Link promote a node to shared
// ownership, and Release stands in for guaranteed teardown at scope exit.
// Teardown is deterministic: the free happens inside the Release call that
// drops the last owner, never later. Two shared owners that reference each
// other keep both owner counts at one forever, so reference cycles are never
// reclaimed — an expected, reportable outcome of this variant.
type Scoped struct {
	counters *metrics.Counters
	owners   map[*objgraph.Node]int
}

// NewScoped creates a scoped-ownership strategy reporting into c
func NewScoped(c *metrics.Counters) *Scoped {
	return &Scoped{
		counters: c,
		owners:   make(map[*objgraph.Node]int),
	}
}

// Name returns "scoped"
func (s *Scoped) Name() string { return "scoped" }

// Allocate creates a node owned exclusively by the returned handle
func (s *Scoped) Allocate(size int) Handle {
	n := objgraph.NewNode(size)
	s.counters.CountAlloc(n.Size())
	s.owners[n] = 1
	return &scopedHandle{node: n, exclusive: true}
}

// Retain adds a simultaneous owner, demoting exclusivity to shared
func (s *Scoped) Retain(h Handle) Handle {
	n := h.Node()
	s.owners[n]++
	if sh, ok := h.(*scopedHandle); ok {
		sh.exclusive = false
	}
	return &scopedHandle{node: n}
}

// Link makes from a shared owner of to
func (s *Scoped) Link(from, to Handle) {
	from.Node().AddRef(to.Node())
	s.owners[to.Node()]++
	if sh, ok := to.(*scopedHandle); ok {
		sh.exclusive = false
	}
}

// Release drops one owner, as scope exit would. The last owner's exit frees
// the node and in turn drops its ownership of every linked child.
func (s *Scoped) Release(h Handle) {
	s.dropOwner(h.Node())
}

func (s *Scoped) dropOwner(n *objgraph.Node) {
	pending := []*objgraph.Node{n}
	for len(pending) > 0 {
		cur := pending[len(pending)-1]
		pending = pending[:len(pending)-1]

		s.owners[cur]--
		if s.owners[cur] > 0 {
			continue
		}
		delete(s.owners, cur)
		s.counters.CountFree(cur.Size())
		pending = append(pending, cur.Refs...)
	}
}

// RegisterRoot is a no-op; ownership already pins reachability
func (s *Scoped) RegisterRoot(h Handle) {}

// UnregisterRoot is a no-op
func (s *Scoped) UnregisterRoot(h Handle) error { return nil }

// Collect is a no-op; all frees happen at owner exit
func (s *Scoped) Collect() int { return 0 }

// Owners returns the current owner count for a node, zero if freed
func (s *Scoped) Owners(h Handle) int {
	return s.owners[h.Node()]
}
