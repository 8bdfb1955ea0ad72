package dag

import (
	"errors"
	"slices"
)

var (
	// ErrInvalidNodeID is returned by [DAG.AddNode] when the node ID is empty.
	ErrInvalidNodeID = errors.New("node ID must not be empty")

	// ErrUnknownSourceNode is returned by [DAG.AddEdge] when the From node
	// does not exist.
	ErrUnknownSourceNode = errors.New("unknown source node")

	// ErrUnknownTargetNode is returned by [DAG.AddEdge] when the To node
	// does not exist in the graph.
	ErrUnknownTargetNode = errors.New("unknown target node")
)

// Edge is a directed "From comes before To" relation between two siblings.
type Edge struct {
	From string
	To   string
}

// DAG is a small directed graph over sibling labels of one menu level.
//
// Unlike a map-backed graph, DAG remembers the order in which nodes and edges
// were added. Every traversal in this package and in [transform] follows that
// order, which makes ordering results deterministic and lets callers encode a
// fallback order simply by adding nodes in it.
//
// Despite the name the graph may temporarily contain cycles; the [transform]
// package removes them.
//
// The zero value is not usable, use New. DAG is not safe for concurrent use.
//
// [transform]: github.com/matzehuels/menusolver/pkg/dag/transform
type DAG struct {
	index    map[string]int      // nodeID -> insertion position
	order    []string            // nodeIDs in insertion order
	edges    []Edge              // edges in insertion order
	outgoing map[string][]string // nodeID -> successor IDs
	incoming map[string][]string // nodeID -> predecessor IDs
}

// New creates an empty graph.
func New() *DAG {
	return &DAG{
		index:    make(map[string]int),
		outgoing: make(map[string][]string),
		incoming: make(map[string][]string),
	}
}

// AddNode adds a node to the graph.
// Returns ErrInvalidNodeID if the ID is empty. Adding an existing node is a
// no-op and keeps its original position, so AddNode can be called once per
// occurrence while scanning declarations.
func (d *DAG) AddNode(id string) error {
	if id == "" {
		return ErrInvalidNodeID
	}
	if _, exists := d.index[id]; exists {
		return nil
	}
	d.index[id] = len(d.order)
	d.order = append(d.order, id)
	return nil
}

// AddEdge adds the directed edge from→to between two existing nodes.
// Returns ErrUnknownSourceNode or ErrUnknownTargetNode if an endpoint is
// missing. Duplicate edges are ignored.
func (d *DAG) AddEdge(from, to string) error {
	if _, ok := d.index[from]; !ok {
		return ErrUnknownSourceNode
	}
	if _, ok := d.index[to]; !ok {
		return ErrUnknownTargetNode
	}
	if d.HasEdge(from, to) {
		return nil
	}
	d.edges = append(d.edges, Edge{From: from, To: to})
	d.outgoing[from] = append(d.outgoing[from], to)
	d.incoming[to] = append(d.incoming[to], from)
	return nil
}

// RemoveEdge removes the edge from→to if it exists.
func (d *DAG) RemoveEdge(from, to string) {
	d.edges = slices.DeleteFunc(d.edges, func(e Edge) bool { return e.From == from && e.To == to })
	d.outgoing[from] = slices.DeleteFunc(d.outgoing[from], func(s string) bool { return s == to })
	d.incoming[to] = slices.DeleteFunc(d.incoming[to], func(s string) bool { return s == from })
}

// HasEdge reports whether the edge from→to exists.
func (d *DAG) HasEdge(from, to string) bool {
	return slices.Contains(d.outgoing[from], to)
}

// HasNode reports whether id is a node of the graph.
func (d *DAG) HasNode(id string) bool {
	_, ok := d.index[id]
	return ok
}

// Nodes returns node IDs in insertion order.
func (d *DAG) Nodes() []string { return slices.Clone(d.order) }

// NodeCount returns the number of nodes in the graph.
func (d *DAG) NodeCount() int { return len(d.order) }

// EdgeCount returns the number of edges in the graph.
func (d *DAG) EdgeCount() int { return len(d.edges) }

// SortedParents returns the predecessors of id ordered by node insertion
// position rather than by edge insertion.
func (d *DAG) SortedParents(id string) []string {
	ps := slices.Clone(d.incoming[id])
	slices.SortFunc(ps, func(a, b string) int { return d.index[a] - d.index[b] })
	return ps
}

// SortedChildren returns the successors of id ordered by node insertion
// position.
func (d *DAG) SortedChildren(id string) []string {
	cs := slices.Clone(d.outgoing[id])
	slices.SortFunc(cs, func(a, b string) int { return d.index[a] - d.index[b] })
	return cs
}
