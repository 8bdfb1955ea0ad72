// Package nodelink renders resolved menus as node-link diagrams.
//
// # Overview
//
// Each menu node becomes a Graphviz vertex with an arrow from its parent; a
// synthetic root vertex holds the top level. Siblings are laid out left to
// right in resolved order.
//
// # Usage
//
//	dot := nodelink.ToDOT(nodes, nodelink.Options{Detailed: true})
//	svg, err := nodelink.RenderSVG(dot)
//
// The DOT source can also be saved and processed with external Graphviz tools.
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process SVG
// rendering (WebAssembly build of Graphviz, no system install required).
package nodelink
