// ABOUTME: Strategy interface and name-keyed registry of the four variants
// ABOUTME: Scenario code is written once against this interface

// Package strategy defines the capability interface every memory-management
// variant implements, plus the four variants themselves: manual, scoped
// ownership, reference counting, and mark-sweep tracing. Scenario code is
// written once against Strategy and parameterized by which variant is
// active, so identical graph-building code exercises every collector.
package strategy

import (
	"errors"
	"sort"
	"sync"

	"github.com/prateek/gcbench/metrics"
	"github.com/prateek/gcbench/objgraph"
)

var (
	// ErrUnknownStrategy is returned when no variant is registered under a name
	ErrUnknownStrategy = errors.New("unknown strategy")

	// ErrUnknownRoot is returned when unregistering a handle that was never
	// registered as a root. Root bookkeeping must stay trustworthy for
	// measurement, so this fails loudly instead of silently succeeding.
	ErrUnknownRoot = errors.New("handle is not a registered root")
)

// Handle is what scenario code holds in place of a raw address. Its
// lifetime semantics vary per strategy: an unmanaged reference for manual,
// an owning handle for scoped ownership, a counted handle for reference
// counting, and a thin registry reference for mark-sweep.
type Handle interface {
	// Node returns the object this handle refers to
	Node() *objgraph.Node
}

// Strategy is the capability interface all four variants satisfy
type Strategy interface {
	// Name returns the registry name of the variant
	Name() string

	// Allocate creates a Node with a size-byte payload and returns a handle
	// to it. Every call increments the allocation counters.
	Allocate(size int) Handle

	// Retain duplicates an external handle. Counting strategies increment
	// the target's count; the others return an equivalent handle unchanged.
	Retain(h Handle) Handle

	// Link stores an edge from one node to another. Counting strategies
	// treat the edge as an owning reference and increment the target's
	// count.
	Link(from, to Handle)

	// Release drops an external handle. Manual frees the object
	// immediately and unconditionally. Counting strategies decrement and
	// free at zero, cascading through owned edges. Mark-sweep does
	// nothing: its objects die only in Collect.
	Release(h Handle)

	// RegisterRoot marks a handle as externally reachable for tracing.
	// No-op for non-tracing strategies.
	RegisterRoot(h Handle)

	// UnregisterRoot removes a handle from the root set. Returns
	// ErrUnknownRoot if the handle was never registered. Always nil for
	// non-tracing strategies.
	UnregisterRoot(h Handle) error

	// Collect runs one explicit collection pass and returns the number of
	// objects freed. No-op returning 0 for non-tracing strategies.
	Collect() int
}

// Constructor builds a strategy instance reporting into the given counters
type Constructor func(c *metrics.Counters) Strategy

// strategyRegistry holds registered variant constructors
type strategyRegistry struct {
	mu           sync.RWMutex
	constructors map[string]Constructor
}

// Global registry instance
var registry = &strategyRegistry{
	constructors: make(map[string]Constructor),
}

// Register adds a variant constructor under a name
func Register(name string, fn Constructor) {
	registry.mu.Lock()
	defer registry.mu.Unlock()
	registry.constructors[name] = fn
}

// New constructs the variant registered under name, reporting into c.
// Returns ErrUnknownStrategy if the name is not registered.
func New(name string, c *metrics.Counters) (Strategy, error) {
	registry.mu.RLock()
	defer registry.mu.RUnlock()

	fn, ok := registry.constructors[name]
	if !ok {
		return nil, ErrUnknownStrategy
	}
	return fn(c), nil
}

// Names returns all registered variant names, sorted
func Names() []string {
	registry.mu.RLock()
	defer registry.mu.RUnlock()

	names := make([]string, 0, len(registry.constructors))
	for name := range registry.constructors {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
