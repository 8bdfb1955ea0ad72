package solver

import (
	"bytes"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/menusolver/pkg/errors"
	"github.com/matzehuels/menusolver/pkg/menu"
)

func decl(loc ...string) *menu.Declaration {
	return &menu.Declaration{Location: loc, Command: strings.ToLower(strings.Join(loc, "."))}
}

func withOrdering(d *menu.Declaration, label string, o menu.Ordering) *menu.Declaration {
	if d.Constraints == nil {
		d.Constraints = map[string]menu.Ordering{}
	}
	d.Constraints[label] = o
	return d
}

func TestResolve_PreservesDeclarationOrder(t *testing.T) {
	nodes := Resolve([]*menu.Declaration{
		decl("File", "New"),
		decl("File", "Open"),
		decl("File", "Save"),
	})

	require.Len(t, nodes, 1)
	file := nodes[0]
	assert.True(t, file.IsSubmenu())
	assert.Equal(t, "File", file.Label)
	assert.Equal(t, []string{"New", "Open", "Save"}, menu.Labels(file.Children))
	for _, c := range file.Children {
		assert.True(t, c.IsLeaf())
	}
	assert.Equal(t, "file.open", file.Children[1].Command)
}

func TestResolve_AfterConstraint(t *testing.T) {
	nodes := Resolve([]*menu.Declaration{
		withOrdering(decl("Edit"), "Edit", menu.Ordering{After: []string{"File"}}),
		decl("File"),
		decl("Help"),
	})

	assert.Equal(t, []string{"File", "Edit", "Help"}, menu.Labels(nodes))
}

func TestResolve_BeforeConstraint(t *testing.T) {
	nodes := Resolve([]*menu.Declaration{
		decl("A"),
		decl("B"),
		withOrdering(decl("C"), "C", menu.Ordering{Before: []string{"A"}}),
	})

	assert.Equal(t, []string{"C", "A", "B"}, menu.Labels(nodes))
}

func TestResolve_CycleResilience(t *testing.T) {
	items := []*menu.Declaration{
		withOrdering(decl("X"), "X", menu.Ordering{Before: []string{"Y"}}),
		withOrdering(decl("Y"), "Y", menu.Ordering{Before: []string{"X"}}),
	}

	r := Solve(items)

	assert.Equal(t, []string{"X", "Y"}, menu.Labels(r.Nodes))
	cycles := r.Filter(DiagnosticCycle)
	require.Len(t, cycles, 1)
	assert.Equal(t, "Y", cycles[0].Edge.From)
	assert.Equal(t, "X", cycles[0].Edge.To)
	assert.NoError(t, r.Err(), "cycles are never errors")
}

func TestResolve_ThreeWayCycle(t *testing.T) {
	items := []*menu.Declaration{
		withOrdering(decl("Tools", "A"), "A", menu.Ordering{Before: []string{"B"}}),
		withOrdering(decl("Tools", "B"), "B", menu.Ordering{Before: []string{"C"}}),
		withOrdering(decl("Tools", "C"), "C", menu.Ordering{Before: []string{"A"}}),
	}

	r := Solve(items)

	tools, ok := menu.Find(r.Nodes, "Tools")
	require.True(t, ok)
	assert.Equal(t, []string{"A", "B", "C"}, menu.Labels(tools.Children))
	require.Len(t, r.Diagnostics, 1)
	assert.Equal(t, []string{"Tools"}, r.Diagnostics[0].Path)
}

func TestResolve_NestedGrouping(t *testing.T) {
	nodes := Resolve([]*menu.Declaration{
		decl("File", "New", "Document"),
		decl("File", "New", "Project"),
	})

	want := []menu.Node{
		menu.Submenu("File",
			menu.Submenu("New",
				menu.Leaf("Document", "file.new.document", ""),
				menu.Leaf("Project", "file.new.project", ""),
			),
		),
	}
	assert.True(t, menu.Equal(want, nodes), "got %+v", nodes)
}

func TestResolve_InterleavedGroups(t *testing.T) {
	nodes := Resolve([]*menu.Declaration{
		decl("File", "Open"),
		decl("Edit", "Undo"),
		decl("File", "Close"),
		decl("Edit", "Redo"),
	})

	assert.Equal(t, []string{"File", "Edit"}, menu.Labels(nodes))
	assert.Equal(t, []string{"Open", "Close"}, menu.Labels(nodes[0].Children))
	assert.Equal(t, []string{"Undo", "Redo"}, menu.Labels(nodes[1].Children))
}

func TestResolve_MalformedInputTolerance(t *testing.T) {
	items := []*menu.Declaration{
		decl("File", "Open"),
		{Location: []string{}, Command: "broken"},
		nil,
		{Location: []string{"File", ""}, Command: "broken.segment"},
		decl("File", "Save"),
	}

	r := Solve(items)

	require.Len(t, r.Nodes, 1)
	assert.Equal(t, []string{"Open", "Save"}, menu.Labels(r.Nodes[0].Children))

	malformed := r.Filter(DiagnosticMalformed)
	require.Len(t, malformed, 3)
	assert.Equal(t, []int{1, 2, 3}, []int{malformed[0].Index, malformed[1].Index, malformed[2].Index})
	assert.True(t, errors.Is(malformed[0].Err, errors.ErrCodeInvalidLocation))
	assert.NoError(t, r.Err())
}

func TestResolve_UnlintedDeclarationsResolve(t *testing.T) {
	long := strings.Repeat("x", 300)
	tests := []struct {
		name  string
		decl  *menu.Declaration
		label string
	}{
		{"command with whitespace", &menu.Declaration{Location: []string{"File", "Open"}, Command: "open file"}, "Open"},
		{"long label", &menu.Declaration{Location: []string{"File", long}, Command: "file.long"}, long},
		{"control character", &menu.Declaration{Location: []string{"File", "Tab\there"}, Command: "file.tab"}, "Tab\there"},
		{"empty constraint label", &menu.Declaration{
			Location:    []string{"File", "Save"},
			Command:     "file.save",
			Constraints: map[string]menu.Ordering{"": {Before: []string{"Save"}}, "Save": {After: []string{""}}},
		}, "Save"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := Solve([]*menu.Declaration{tt.decl})

			assert.Empty(t, r.Diagnostics)
			require.Len(t, r.Nodes, 1)
			require.Len(t, r.Nodes[0].Children, 1)
			assert.Equal(t, tt.label, r.Nodes[0].Children[0].Label)
			assert.Equal(t, tt.decl.Command, r.Nodes[0].Children[0].Command)
		})
	}
}

func TestResolve_DuplicateLeaves(t *testing.T) {
	a := decl("File", "Close")
	b := decl("File", "Close")
	b.Command = "file.close.all"

	nodes := Resolve([]*menu.Declaration{a, decl("File", "Open"), b})

	children := nodes[0].Children
	assert.Equal(t, []string{"Close", "Close", "Open"}, menu.Labels(children))
	assert.Equal(t, "file.close", children[0].Command)
	assert.Equal(t, "file.close.all", children[1].Command)
}

func TestResolve_TitleOverride(t *testing.T) {
	save := decl("File", "Save")
	save.Title = "Save All"
	save.Shortcut = "Ctrl+Shift+S"
	open := withOrdering(decl("File", "Open"), "Open", menu.Ordering{After: []string{"Save"}})

	nodes := Resolve([]*menu.Declaration{open, save})

	children := nodes[0].Children
	assert.Equal(t, []string{"Save All", "Open"}, menu.Labels(children), "constraints refer to keys, not titles")
	assert.Equal(t, "Ctrl+Shift+S", children[0].Shortcut)
}

func TestResolve_ConstraintsArePerLevel(t *testing.T) {
	nodes := Resolve([]*menu.Declaration{
		decl("Edit"),
		withOrdering(decl("File", "Save"), "Save", menu.Ordering{Before: []string{"Edit"}}),
		decl("File", "Edit"),
	})

	assert.Equal(t, []string{"Edit", "File"}, menu.Labels(nodes), "top level untouched")
	assert.Equal(t, []string{"Save", "Edit"}, menu.Labels(nodes[1].Children))
}

func TestResolve_AncestorConstraintFromDeepDeclaration(t *testing.T) {
	nodes := Resolve([]*menu.Declaration{
		withOrdering(decl("Edit", "Undo"), "Edit", menu.Ordering{After: []string{"File"}}),
		decl("File", "Open"),
	})

	assert.Equal(t, []string{"File", "Edit"}, menu.Labels(nodes))
}

func TestResolve_UnknownAndSelfConstraintsIgnored(t *testing.T) {
	r := Solve([]*menu.Declaration{
		withOrdering(decl("B"), "B", menu.Ordering{Before: []string{"B", "Missing"}, After: []string{"Nowhere"}}),
		decl("A"),
	})

	assert.Equal(t, []string{"B", "A"}, menu.Labels(r.Nodes))
	assert.Empty(t, r.Diagnostics)
}

func TestResolve_AmbiguitySubmenuWins(t *testing.T) {
	recent := decl("File", "Recent")
	r := Solve([]*menu.Declaration{
		recent,
		decl("File", "Recent", "notes.txt"),
	})

	file := r.Nodes[0]
	require.Len(t, file.Children, 1)
	sub := file.Children[0]
	assert.True(t, sub.IsSubmenu())
	assert.Empty(t, sub.Command)
	assert.Equal(t, []string{"notes.txt"}, menu.Labels(sub.Children))
	assert.Empty(t, r.Diagnostics)
	assert.NoError(t, r.Err())
}

func TestResolve_AmbiguityReport(t *testing.T) {
	recent := decl("File", "Recent")
	r := Solve([]*menu.Declaration{
		recent,
		decl("File", "Recent", "notes.txt"),
	}, WithPolicy(PolicyReport))

	sub, ok := menu.Find(r.Nodes, "File", "Recent")
	require.True(t, ok)
	assert.True(t, sub.IsSubmenu(), "report policy still builds the submenu")

	amb := r.Filter(DiagnosticAmbiguous)
	require.Len(t, amb, 1)
	assert.Same(t, recent, amb[0].Decl)
	assert.Equal(t, []string{"File", "Recent"}, amb[0].Path)

	err := r.Err()
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrCodeAmbiguousNode))
	assert.Contains(t, err.Error(), "file.recent")
}

func TestResolve_AmbiguousLeafConstraintStillOrders(t *testing.T) {
	nodes := Resolve([]*menu.Declaration{
		decl("File", "Open"),
		withOrdering(decl("File", "Recent"), "Recent", menu.Ordering{Before: []string{"Open"}}),
		decl("File", "Recent", "a.txt"),
	})

	assert.Equal(t, []string{"Recent", "Open"}, menu.Labels(nodes[0].Children))
}

func TestResolve_Idempotent(t *testing.T) {
	items := []*menu.Declaration{
		withOrdering(decl("View", "Zoom"), "View", menu.Ordering{After: []string{"Edit"}}),
		decl("Edit", "Copy"),
		decl("Edit", "Paste"),
		decl("File", "New", "Document"),
	}

	first := Resolve(items)
	second := Resolve(items)

	assert.True(t, menu.Equal(first, second))
}

func TestResolve_EmptyInput(t *testing.T) {
	assert.NotNil(t, Resolve(nil))
	assert.Empty(t, Resolve(nil))
	assert.Empty(t, Resolve([]*menu.Declaration{{}}))
}

func TestSolve_LogsDiagnostics(t *testing.T) {
	var buf bytes.Buffer
	logger := log.NewWithOptions(&buf, log.Options{Level: log.DebugLevel})

	Solve([]*menu.Declaration{
		{Command: "orphan"},
		withOrdering(decl("X"), "X", menu.Ordering{Before: []string{"Y"}}),
		withOrdering(decl("Y"), "Y", menu.Ordering{Before: []string{"X"}}),
	}, WithLogger(logger))

	out := buf.String()
	assert.Contains(t, out, "skipped declaration #0")
	assert.Contains(t, out, "broke ordering cycle")
	assert.Contains(t, out, "ordering level")
	assert.Contains(t, out, "constraints=2")
}

func TestParsePolicy(t *testing.T) {
	tests := []struct {
		input   string
		want    Policy
		wantErr bool
	}{
		{"", PolicySubmenuWins, false},
		{"submenu-wins", PolicySubmenuWins, false},
		{"REPORT", PolicyReport, false},
		{"strict", PolicySubmenuWins, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParsePolicy(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, errors.ErrCodeInvalidPolicy))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.want, New(WithPolicy(got)).Policy())
		})
	}
}
