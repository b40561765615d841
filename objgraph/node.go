// ABOUTME: Core node type for the benchmark object graphs
// ABOUTME: Defines Node with a fixed payload and mutable outgoing references

// Package objgraph defines the uniform allocatable unit used by every
// benchmark scenario. A Node carries a fixed-size payload simulating real
// object weight and a mutable list of outgoing references, so scenarios can
// wire arbitrary topologies — including deliberate cycles — after
// construction. Nodes never manage their own lifetime; ownership is always
// mediated by the active strategy.
package objgraph

// Node is a single allocatable object in a benchmark graph
type Node struct {
	Payload []byte  // Fixed-size payload, allocated once at creation
	Refs    []*Node // Outgoing references, mutable after construction
	Marked  bool    // Reachability flag, used only by the mark-sweep strategy
}

// NewNode creates a Node with a payload of size bytes
func NewNode(size int) *Node {
	return &Node{Payload: make([]byte, size)}
}

// Size returns the payload size in bytes
func (n *Node) Size() int {
	return len(n.Payload)
}

// AddRef appends an outgoing reference to target.
// Duplicate edges and self-references are allowed; cycles are a supported
// test fixture, not an error.
func (n *Node) AddRef(target *Node) {
	n.Refs = append(n.Refs, target)
}
