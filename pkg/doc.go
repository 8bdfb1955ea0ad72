// Package pkg provides the libraries behind menusolver.
//
// # Overview
//
// Menusolver turns flat menu item declarations, contributed by independent
// parties, into one ordered and nested menu tree. The pkg directory is
// organized as:
//
//  1. [menu] - Declarations and the resolved node tree
//  2. [solver] - Resolution: grouping, ordering, diagnostics
//  3. [store] - Live contribution batches with push publication
//  4. [dag] - Ordering graph and topological sort
//  5. [io] - Contribution manifests and JSON trees
//  6. [render] - Terminal outlines and Graphviz diagrams
//  7. [cache] - Rendered artifact cache
//
// # Architecture
//
//	Contribution manifests (TOML/YAML/JSON)
//	         ↓
//	    [io] package (decode declarations)
//	         ↓
//	    [store] package (contribution batches)
//	         ↓
//	    [solver] package (per-level grouping + [dag] ordering)
//	         ↓
//	    [render] / [io] (tree, JSON, DOT, SVG)
//
// # Quick Start
//
//	import (
//	    "github.com/matzehuels/menusolver/pkg/menu"
//	    "github.com/matzehuels/menusolver/pkg/store"
//	)
//
//	save, err := menu.NewDeclaration([]string{"File", "Save"}, "file.save", menu.WithShortcut("Ctrl+S"))
//	if err != nil {
//	    return err
//	}
//	undo, err := menu.NewDeclaration([]string{"Edit", "Undo"}, "edit.undo", menu.WithAfter("Edit", "File"))
//	if err != nil {
//	    return err
//	}
//
//	st := store.New()
//	h := st.Add(save, undo)
//	defer h.Dispose()
//
//	for _, n := range st.Menu() {
//	    fmt.Println(n.Label)
//	}
//
// [menu]: github.com/matzehuels/menusolver/pkg/menu
// [solver]: github.com/matzehuels/menusolver/pkg/solver
// [store]: github.com/matzehuels/menusolver/pkg/store
// [dag]: github.com/matzehuels/menusolver/pkg/dag
// [io]: github.com/matzehuels/menusolver/pkg/io
// [render]: github.com/matzehuels/menusolver/pkg/render
// [cache]: github.com/matzehuels/menusolver/pkg/cache
package pkg
