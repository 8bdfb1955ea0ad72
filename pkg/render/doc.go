// Package render provides presentations of resolved menu trees.
//
// # Overview
//
// The solver produces a plain [menu.Node] tree. The subpackages turn it into
// something a person can look at:
//
//   - [outline]: an indented terminal tree drawn with lipgloss
//   - [nodelink]: a Graphviz diagram (DOT source or SVG)
//
// # Outline
//
//	fmt.Println(outline.Render(nodes, outline.Options{Commands: true}))
//
// # Node-Link Diagrams
//
//	dot := nodelink.ToDOT(nodes, nodelink.Options{})
//	svg, err := nodelink.RenderSVG(dot)
//
// [menu.Node]: github.com/matzehuels/menusolver/pkg/menu#Node
// [outline]: github.com/matzehuels/menusolver/pkg/render/outline
// [nodelink]: github.com/matzehuels/menusolver/pkg/render/nodelink
package render
