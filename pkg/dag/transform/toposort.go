package transform

import "github.com/matzehuels/menusolver/pkg/dag"

// TopoSort returns every node of g exactly once, each after all of its
// predecessors.
//
// Nodes are visited in insertion order; before a node is emitted its
// predecessors are visited, also in insertion order. A node already on the
// stack is skipped, which keeps the walk finite on cyclic input at the price of
// violating one edge of each cycle. Call [BreakCycles] first to choose which.
//
// Time complexity is O(V + E log E): each node sorts its parents once.
func TopoSort(g *dag.DAG) []string {
	const (
		white = iota
		gray
		black
	)

	color := make(map[string]int, g.NodeCount())
	order := make([]string, 0, g.NodeCount())

	var visit func(node string)
	visit = func(node string) {
		color[node] = gray
		for _, p := range g.SortedParents(node) {
			if color[p] == white {
				visit(p)
			}
		}
		color[node] = black
		order = append(order, node)
	}

	for _, n := range g.Nodes() {
		if color[n] == white {
			visit(n)
		}
	}
	return order
}

// Order breaks cycles in g and returns its topological order together with
// the edges that had to be dropped. g is modified in place.
func Order(g *dag.DAG) (order []string, broken []dag.Edge) {
	broken = BreakCycles(g)
	return TopoSort(g), broken
}
