// ABOUTME: Scenario registry and the runner that measures each strategy
// ABOUTME: Resets counters, times the run, and returns the result record

// Package scenario builds named object-graph workloads under an active
// memory-management strategy and measures what happened: allocation and
// free counts, bytes never reclaimed, and elapsed time. Every scenario runs
// the exact same build-and-teardown code for every strategy — same object
// count, same shape — so the comparison between strategies stays valid.
package scenario

import (
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/prateek/gcbench/metrics"
	"github.com/prateek/gcbench/strategy"
)

var (
	// ErrUnknownScenario is returned when no scenario is registered under a name
	ErrUnknownScenario = errors.New("unknown scenario")
)

// Params controls the size of a scenario's object graph
type Params struct {
	Count       int // Total number of nodes to allocate
	PayloadSize int // Payload bytes per node
}

// DefaultParams are used for any zero field in Params
var DefaultParams = Params{
	Count:       1000,
	PayloadSize: 64,
}

// Result is the record returned to the reporting layer after one run
type Result struct {
	Scenario    string
	Strategy    string
	Allocations int64
	Frees       int64
	LeakedBytes int64
	Elapsed     time.Duration
}

// Func builds and tears down one scenario's object graph under s
type Func func(s strategy.Strategy, p Params) error

// scenarioRegistry holds registered scenarios
type scenarioRegistry struct {
	mu        sync.RWMutex
	scenarios map[string]Func
}

// Global registry instance
var registry = &scenarioRegistry{
	scenarios: make(map[string]Func),
}

// Register adds a scenario under a name
func Register(name string, fn Func) {
	registry.mu.Lock()
	defer registry.mu.Unlock()
	registry.scenarios[name] = fn
}

// Names returns all registered scenario names, sorted
func Names() []string {
	registry.mu.RLock()
	defer registry.mu.RUnlock()

	names := make([]string, 0, len(registry.scenarios))
	for name := range registry.scenarios {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Run executes the named scenario under s, reporting into c. The counters
// are reset before the scenario starts, so the returned Result (and any
// later read of c by an external auditor) reflects this run alone.
func Run(name string, s strategy.Strategy, c *metrics.Counters, p Params) (Result, error) {
	registry.mu.RLock()
	fn, ok := registry.scenarios[name]
	registry.mu.RUnlock()
	if !ok {
		return Result{}, fmt.Errorf("%w: %q", ErrUnknownScenario, name)
	}

	if p.Count <= 0 {
		p.Count = DefaultParams.Count
	}
	if p.PayloadSize <= 0 {
		p.PayloadSize = DefaultParams.PayloadSize
	}

	c.Reset()
	start := time.Now()
	if err := fn(s, p); err != nil {
		return Result{}, fmt.Errorf("scenario %q under %q: %w", name, s.Name(), err)
	}
	elapsed := time.Since(start)

	snap := c.Snapshot()
	return Result{
		Scenario:    name,
		Strategy:    s.Name(),
		Allocations: snap.Allocs,
		Frees:       snap.Frees,
		LeakedBytes: snap.LeakedBytes,
		Elapsed:     elapsed,
	}, nil
}
