// Package dag provides the ordering graph used to sort the siblings of one
// menu level.
//
// # Overview
//
// Each menu level is ordered independently. The solver adds one node per
// distinct label in first-seen order and one edge per "before"/"after"
// constraint that names another label at the same level:
//
//	g := dag.New()
//	g.AddNode("Edit")
//	g.AddNode("File")
//	g.AddNode("Help")
//	g.AddEdge("File", "Edit") // Edit declares after: [File]
//
// Insertion order is part of the graph. [DAG.Nodes], [DAG.SortedParents] and
// [DAG.SortedChildren] report in that order, so algorithms built on top never
// depend on map iteration.
//
// # Cycles
//
// Contributions are written independently and may contradict each other, so
// the graph accepts cycles. The [transform] subpackage removes back edges and
// computes the final order.
//
// # Concurrency
//
// DAG instances are not safe for concurrent use. The solver builds a fresh
// graph per level and never shares it.
//
// [transform]: github.com/matzehuels/menusolver/pkg/dag/transform
package dag
