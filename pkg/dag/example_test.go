package dag_test

import (
	"fmt"

	"github.com/matzehuels/menusolver/pkg/dag"
)

func ExampleDAG_basic() {
	// Three top-level menus, Edit must follow File
	g := dag.New()
	_ = g.AddNode("Edit")
	_ = g.AddNode("File")
	_ = g.AddNode("Help")
	_ = g.AddEdge("File", "Edit")

	fmt.Println("Nodes:", g.Nodes())
	fmt.Println("Edges:", g.EdgeCount())
	fmt.Println("Parents of Edit:", g.SortedParents("Edit"))
	// Output:
	// Nodes: [Edit File Help]
	// Edges: 1
	// Parents of Edit: [File]
}

func ExampleDAG_SortedParents() {
	// Paste declares after Cut and Copy, in that order of contribution
	g := dag.New()
	_ = g.AddNode("Copy")
	_ = g.AddNode("Cut")
	_ = g.AddNode("Paste")
	_ = g.AddEdge("Cut", "Paste")
	_ = g.AddEdge("Copy", "Paste")

	fmt.Println(g.SortedParents("Paste"))
	// Output:
	// [Copy Cut]
}
