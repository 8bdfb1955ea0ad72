// Package outline renders a menu tree as an indented terminal outline.
package outline

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/tree"

	"github.com/matzehuels/menusolver/pkg/menu"
)

var (
	styleRoot     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("36"))
	styleSubmenu  = lipgloss.NewStyle().Bold(true)
	styleShortcut = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	styleCommand  = lipgloss.NewStyle().Foreground(lipgloss.Color("75"))
	styleEnum     = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginRight(1)
)

// Options configures outline rendering.
type Options struct {
	// Root is printed above the tree. Empty omits the root line.
	Root string
	// Commands appends each leaf's command id.
	Commands bool
}

// Render returns the outline of nodes.
func Render(nodes []menu.Node, opts Options) string {
	t := tree.New()
	if opts.Root != "" {
		t = tree.Root(styleRoot.Render(opts.Root))
	}
	t.Enumerator(tree.RoundedEnumerator).EnumeratorStyle(styleEnum)
	for _, n := range nodes {
		t.Child(build(n, opts))
	}
	return t.String()
}

func build(n menu.Node, opts Options) any {
	if n.IsSubmenu() {
		sub := tree.Root(styleSubmenu.Render(n.Label)).
			Enumerator(tree.RoundedEnumerator).
			EnumeratorStyle(styleEnum)
		for _, c := range n.Children {
			sub.Child(build(c, opts))
		}
		return sub
	}
	return leafLine(n, opts)
}

func leafLine(n menu.Node, opts Options) string {
	line := n.Label
	if n.Shortcut != "" {
		line += "  " + styleShortcut.Render(n.Shortcut)
	}
	if opts.Commands && n.Command != "" {
		line += "  " + styleCommand.Render("→ "+n.Command)
	}
	return line
}
