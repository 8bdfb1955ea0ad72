// Package transform orders the labels of one menu level.
//
// # Overview
//
// A level graph (see [dag.DAG]) holds one node per distinct label in first-seen
// order and one edge per sibling constraint. Producing the emission order is a
// two step process:
//
//	broken := transform.BreakCycles(g) // make the graph acyclic
//	order := transform.TopoSort(g)     // dependency order, first-seen tie break
//
// [Order] runs both steps and returns the removed edges alongside the order.
//
// # Cycle Breaking
//
// [BreakCycles] walks the graph depth-first in insertion order and removes
// every back edge it meets. Contradicting constraints therefore resolve in
// favour of the label that was seen first: given X before Y and Y before X,
// the edge out of X survives and X is emitted first.
//
// # Topological Sort
//
// [TopoSort] visits labels in first-seen order and emits each one only after
// all of its predecessors have been emitted (reverse postorder over the
// "comes after" relation). Labels untouched by constraints keep their
// first-seen relative position. Gray vertices are skipped rather than
// revisited, so TopoSort terminates and emits every label exactly once even
// when called on a cyclic graph.
//
// [dag.DAG]: github.com/matzehuels/menusolver/pkg/dag#DAG
package transform
