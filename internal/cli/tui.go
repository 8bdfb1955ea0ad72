package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/matzehuels/menusolver/pkg/menu"
	"github.com/matzehuels/menusolver/pkg/solver"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// =============================================================================
// MenuModel - Interactive menu navigation
// =============================================================================

// menuLevel is one open menu in the navigation stack.
type menuLevel struct {
	label  string
	nodes  []menu.Node
	cursor int
	offset int
}

// MenuModel is the bubbletea model for browsing a resolved menu.
type MenuModel struct {
	stack    []menuLevel
	Selected *menu.Node
	Height   int
}

// NewMenuModel creates a model positioned on the top level of nodes.
func NewMenuModel(nodes []menu.Node) MenuModel {
	return MenuModel{
		stack:  []menuLevel{{nodes: nodes}},
		Height: 15,
	}
}

// Path returns the labels of the open submenus.
func (m MenuModel) Path() []string {
	var path []string
	for _, l := range m.stack[1:] {
		path = append(path, l.label)
	}
	return path
}

func (m MenuModel) top() *menuLevel {
	return &m.stack[len(m.stack)-1]
}

func (m MenuModel) Init() tea.Cmd {
	return nil
}

func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		// The stack is shared with the previous value; copy before mutating.
		m.stack = append([]menuLevel(nil), m.stack...)
		lvl := m.top()

		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if lvl.cursor > 0 {
				lvl.cursor--
				if lvl.cursor < lvl.offset {
					lvl.offset = lvl.cursor
				}
			}
		case "down", "j":
			if lvl.cursor < len(lvl.nodes)-1 {
				lvl.cursor++
				if lvl.cursor >= lvl.offset+m.Height {
					lvl.offset = lvl.cursor - m.Height + 1
				}
			}
		case "enter", "right", "l":
			if len(lvl.nodes) == 0 {
				return m, nil
			}
			n := lvl.nodes[lvl.cursor]
			if n.IsSubmenu() {
				m.stack = append(m.stack, menuLevel{label: n.Label, nodes: n.Children})
				return m, nil
			}
			m.Selected = &n
			return m, tea.Quit
		case "backspace", "left", "h":
			if len(m.stack) > 1 {
				m.stack = m.stack[:len(m.stack)-1]
			}
		}
	case tea.WindowSizeMsg:
		m.Height = msg.Height - 6
		if m.Height < 5 {
			m.Height = 5
		}
	}
	return m, nil
}

func (m MenuModel) View() string {
	var b strings.Builder

	title := strings.Join(append([]string{"Menu"}, m.Path()...), " › ")
	b.WriteString(StyleTitle.Render(title))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ open  ⌫ back  q quit"))
	b.WriteString("\n\n")

	lvl := m.top()
	if len(lvl.nodes) == 0 {
		b.WriteString(listDimStyle.Render("  (empty)"))
		b.WriteString("\n")
		return b.String()
	}

	end := min(lvl.offset+m.Height, len(lvl.nodes))
	for i := lvl.offset; i < end; i++ {
		n := lvl.nodes[i]

		cursor := "  "
		if i == lvl.cursor {
			cursor = "> "
		}

		line := fmt.Sprintf("%s%-30s", cursor, n.Label)
		if n.IsSubmenu() {
			line += " " + iconSubmenu
		} else if n.Shortcut != "" {
			line += " " + styleShortcut.Render(n.Shortcut)
		}

		if i == lvl.cursor {
			b.WriteString(listSelectedStyle.Render(line))
		} else {
			b.WriteString(listNormalStyle.Render(line))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", lvl.cursor+1, len(lvl.nodes))))
	return b.String()
}

// =============================================================================
// browse command
// =============================================================================

// browseCommand creates the browse command.
func (c *CLI) browseCommand() *cobra.Command {
	var policy string

	cmd := &cobra.Command{
		Use:   "browse [files...]",
		Short: "Navigate the resolved menu interactively",
		Long: `Browse opens the resolved menu in the terminal. Enter opens a submenu or
selects a leaf, printing its command id; backspace goes back up.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := c.policyFlag(cmd, policy)
			if err != nil {
				return err
			}
			st, err := newStore(cmd.Context(), args, p)
			if err != nil {
				return err
			}

			prog := tea.NewProgram(NewMenuModel(st.Menu()), tea.WithContext(cmd.Context()))
			final, err := prog.Run()
			if err != nil {
				return err
			}

			fm, ok := final.(MenuModel)
			if !ok || fm.Selected == nil {
				return nil
			}
			w := cmd.OutOrStdout()
			path := strings.Join(append(fm.Path(), fm.Selected.Label), " › ")
			fmt.Fprintln(w, path+" "+StyleDim.Render(iconArrow)+" "+styleCommand.Render(fm.Selected.Command))
			return nil
		},
	}

	cmd.Flags().StringVar(&policy, "policy", solver.PolicyNameSubmenuWins, "ambiguity policy: submenu-wins, report")
	return cmd
}
