// ABOUTME: The three benchmark workloads: cycle, batch, and distributed
// ABOUTME: Each runs one uniform protocol against any strategy

package scenario

import (
	"fmt"

	"github.com/prateek/gcbench/strategy"
)

func init() {
	Register("cycle", runCycle)
	Register("batch", runBatch)
	Register("distributed", runDistributed)
}

// Fan-out of the batch scenario's tree.
const treeBranching = 4

// Nodes per increment in the distributed scenario.
const distributedChunk = 8

// runCycle allocates Count nodes wired into one closed reference ring, then
// drops every external handle and root registration and collects once.
// Whatever the strategy cannot reclaim from the ring shows up as leaked
// bytes: the full ring under the counting strategies, nothing under manual
// teardown or mark-sweep.
func runCycle(s strategy.Strategy, p Params) error {
	handles := make([]strategy.Handle, p.Count)
	for i := range handles {
		handles[i] = s.Allocate(p.PayloadSize)
		s.RegisterRoot(handles[i])
	}

	// Close the ring after construction; edges are counted references.
	for i, h := range handles {
		s.Link(h, handles[(i+1)%len(handles)])
	}

	for _, h := range handles {
		if err := s.UnregisterRoot(h); err != nil {
			return fmt.Errorf("unregister cycle root: %w", err)
		}
		s.Release(h)
	}

	s.Collect()
	return nil
}

// runBatch allocates Count nodes as one fan-out tree, then reclaims the
// whole batch in a single step: child handles are dropped first, the root
// last, followed by exactly one collect. For reference counting the final
// root release triggers the whole-tree cascade; for mark-sweep the one
// collect does all the work. Elapsed time of the run is the measurement.
func runBatch(s strategy.Strategy, p Params) error {
	handles := make([]strategy.Handle, 0, p.Count)

	root := s.Allocate(p.PayloadSize)
	s.RegisterRoot(root)
	handles = append(handles, root)

	for i := 1; i < p.Count; i++ {
		parent := handles[(i-1)/treeBranching]
		child := s.Allocate(p.PayloadSize)
		s.Link(parent, child)
		handles = append(handles, child)
	}

	// Children before root: under refcount each child drop leaves the
	// parent edge as sole owner, so nothing frees until the root goes.
	for i := len(handles) - 1; i >= 1; i-- {
		s.Release(handles[i])
	}
	if err := s.UnregisterRoot(root); err != nil {
		return fmt.Errorf("unregister batch root: %w", err)
	}
	s.Release(root)

	s.Collect()
	return nil
}

// runDistributed allocates and reclaims the same total node count as the
// batch scenario, but interleaved in small chain increments, each torn down
// and collected before the next begins. Cumulative elapsed time is the
// measurement; every strategy sees the identical sequence of increments.
func runDistributed(s strategy.Strategy, p Params) error {
	remaining := p.Count
	for remaining > 0 {
		k := distributedChunk
		if k > remaining {
			k = remaining
		}
		remaining -= k

		chain := make([]strategy.Handle, k)
		chain[0] = s.Allocate(p.PayloadSize)
		s.RegisterRoot(chain[0])
		for j := 1; j < k; j++ {
			chain[j] = s.Allocate(p.PayloadSize)
			s.Link(chain[j-1], chain[j])
		}

		for j := k - 1; j >= 1; j-- {
			s.Release(chain[j])
		}
		if err := s.UnregisterRoot(chain[0]); err != nil {
			return fmt.Errorf("unregister chain head: %w", err)
		}
		s.Release(chain[0])

		s.Collect()
	}
	return nil
}
