// ABOUTME: Main gcbench package providing version information and package documentation
// ABOUTME: This is the root package for the memory-management benchmarking harness

// Package gcbench is a benchmarking harness for memory-management
// strategies. It allocates and frees directed graphs of heap objects under
// four interchangeable strategies — manual, scoped ownership, reference
// counting, and mark-sweep tracing — and measures leaked bytes, alloc/free
// counts, and elapsed time for a fixed set of object-graph scenarios.
package gcbench

// Version is the semantic version of the gcbench harness
const Version = "0.1.0-dev"
