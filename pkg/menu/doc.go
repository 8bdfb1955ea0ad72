// Package menu defines the data model shared by the menu solver and the store.
//
// # Declarations
//
// A [Declaration] is one contributed menu entry. Its Location is a path of
// labels: every prefix names an ancestor submenu and the last segment is the
// label shown at that depth.
//
//	save, err := menu.NewDeclaration([]string{"File", "Save"}, "file.save",
//	    menu.WithShortcut("Ctrl+S"),
//	    menu.WithAfter("Save", "Open"),
//	)
//
// Optional [Ordering] constraints are keyed by the label they apply to, so a
// single declaration can position itself at several depths. Constraints only
// ever compare siblings at the same depth.
//
// # Nodes
//
// The solver output is a slice of [Node] values. A node is either a leaf bound
// to a command or a submenu holding further nodes; [Node.Kind] tells them apart.
//
// # Validation
//
// [NewDeclaration] validates structure at construction. Declarations built as
// struct literals can be checked with [Declaration.Validate]; the solver skips
// the ones that fail rather than aborting the whole tree.
//
// [Declaration.Lint] is stricter and meant for authoring tools. It rejects
// labels with control characters or over 256 bytes, command ids with
// whitespace and empty constraint labels, none of which stop a declaration
// from resolving.
package menu
