package menu

import "slices"

// Kind distinguishes leaf entries from submenus.
type Kind int

const (
	// KindLeaf is a terminal entry bound to a command.
	KindLeaf Kind = iota
	// KindSubmenu groups further nodes under a label.
	KindSubmenu
)

func (k Kind) String() string {
	switch k {
	case KindLeaf:
		return "leaf"
	case KindSubmenu:
		return "submenu"
	}
	return "unknown"
}

// Node is one element of a resolved menu tree.
// Leaves carry Command and Shortcut, submenus carry Children.
type Node struct {
	Kind     Kind
	Label    string
	Shortcut string
	Command  string
	Children []Node
}

// Leaf returns a leaf node.
func Leaf(label, command, shortcut string) Node {
	return Node{Kind: KindLeaf, Label: label, Command: command, Shortcut: shortcut}
}

// Submenu returns a submenu node with the given children.
func Submenu(label string, children ...Node) Node {
	return Node{Kind: KindSubmenu, Label: label, Children: children}
}

// IsLeaf reports whether n is a leaf.
func (n Node) IsLeaf() bool { return n.Kind == KindLeaf }

// IsSubmenu reports whether n is a submenu.
func (n Node) IsSubmenu() bool { return n.Kind == KindSubmenu }

// Find descends through submenus by label and returns the first match.
// An empty path returns n itself.
func (n Node) Find(path ...string) (Node, bool) {
	if len(path) == 0 {
		return n, true
	}
	return Find(n.Children, path...)
}

// Find looks up the node at path within nodes, matching labels at each depth.
func Find(nodes []Node, path ...string) (Node, bool) {
	if len(path) == 0 {
		return Node{}, false
	}
	for _, c := range nodes {
		if c.Label == path[0] {
			if len(path) == 1 {
				return c, true
			}
			if c.IsSubmenu() {
				return c.Find(path[1:]...)
			}
		}
	}
	return Node{}, false
}

// Labels returns the labels of nodes in order.
func Labels(nodes []Node) []string {
	out := make([]string, len(nodes))
	for i, n := range nodes {
		out[i] = n.Label
	}
	return out
}

// Walk calls fn for every node in depth-first pre-order together with the
// labels of its ancestors. Returning false from fn skips the node's children.
func Walk(nodes []Node, fn func(parents []string, n Node) bool) {
	walk(nil, nodes, fn)
}

func walk(parents []string, nodes []Node, fn func([]string, Node) bool) {
	for _, n := range nodes {
		if fn(parents, n) && n.IsSubmenu() {
			walk(append(slices.Clone(parents), n.Label), n.Children, fn)
		}
	}
}

// Count returns the number of leaves and submenus in nodes.
func Count(nodes []Node) (leaves, submenus int) {
	Walk(nodes, func(_ []string, n Node) bool {
		if n.IsLeaf() {
			leaves++
		} else {
			submenus++
		}
		return true
	})
	return leaves, submenus
}

// Equal reports whether two trees are structurally identical.
func Equal(a, b []Node) bool {
	return slices.EqualFunc(a, b, func(x, y Node) bool {
		return x.Kind == y.Kind &&
			x.Label == y.Label &&
			x.Shortcut == y.Shortcut &&
			x.Command == y.Command &&
			Equal(x.Children, y.Children)
	})
}
