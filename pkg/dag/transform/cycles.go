package transform

import "github.com/matzehuels/menusolver/pkg/dag"

// BreakCycles removes back edges until g is acyclic and returns the removed
// edges in the order they were found.
//
// The depth-first search starts from nodes in insertion order and follows
// successors in insertion order, so the result depends only on the order in
// which labels and constraints were added.
func BreakCycles(g *dag.DAG) []dag.Edge {
	const (
		white = iota
		gray
		black
	)

	color := make(map[string]int, g.NodeCount())
	var backEdges []dag.Edge

	var dfs func(node string)
	dfs = func(node string) {
		color[node] = gray
		for _, child := range g.SortedChildren(node) {
			switch color[child] {
			case white:
				dfs(child)
			case gray:
				backEdges = append(backEdges, dag.Edge{From: node, To: child})
			}
		}
		color[node] = black
	}

	for _, n := range g.Nodes() {
		if color[n] == white {
			dfs(n)
		}
	}

	for _, e := range backEdges {
		g.RemoveEdge(e.From, e.To)
	}
	return backEdges
}
