package nodelink

import (
	"strings"
	"testing"

	"github.com/matzehuels/menusolver/pkg/menu"
)

func sample() []menu.Node {
	return []menu.Node{
		menu.Submenu("File",
			menu.Leaf("Open", "file.open", "Ctrl+O"),
			menu.Leaf("Save", "file.save", ""),
		),
		menu.Submenu("Edit", menu.Leaf("Open", "edit.open", "")),
	}
}

func TestToDOT(t *testing.T) {
	dot := ToDOT(sample(), Options{})

	for _, want := range []string{
		"digraph G {",
		"ordering=out;",
		`"root" [label="Menu"`,
		`"n1" [label="File", shape=folder`,
		`"root" -> "n1";`,
		`"n1" -> "n2";`,
		`"n4" [label="Edit"`,
		`"n4" -> "n5";`,
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("ToDOT() missing %q:\n%s", want, dot)
		}
	}
	if strings.Contains(dot, "file.open") {
		t.Error("ToDOT() without Detailed should not include command ids")
	}
}

func TestToDOTDetailed(t *testing.T) {
	dot := ToDOT(sample(), Options{Detailed: true, Root: "App"})

	if !strings.Contains(dot, `label="App"`) {
		t.Errorf("ToDOT() root label missing:\n%s", dot)
	}
	if !strings.Contains(dot, `label="Open\nCtrl+O\nfile.open"`) {
		t.Errorf("ToDOT() detailed label missing:\n%s", dot)
	}
}

func TestToDOTSiblingOrder(t *testing.T) {
	dot := ToDOT(sample(), Options{})
	if strings.Index(dot, `label="Open"`) > strings.Index(dot, `label="Save"`) {
		t.Errorf("ToDOT() reordered siblings:\n%s", dot)
	}
}

func TestNormalizeViewBox(t *testing.T) {
	in := []byte(`<svg width="100pt" height="50pt" viewBox="0.00 0.00 100.00 50.00" xmlns="http://www.w3.org/2000/svg"><g/></svg>`)
	out := string(normalizeViewBox(in))

	if !strings.Contains(out, `width="100" height="50"`) {
		t.Errorf("normalizeViewBox() = %s", out)
	}
	if !strings.HasSuffix(out, "<g/></svg>") {
		t.Errorf("normalizeViewBox() dropped body: %s", out)
	}

	raw := []byte(`<svg><g/></svg>`)
	if got := normalizeViewBox(raw); string(got) != string(raw) {
		t.Errorf("normalizeViewBox() without viewBox = %s, want unchanged", got)
	}
}

func TestRenderSVG(t *testing.T) {
	if testing.Short() {
		t.Skip("graphviz render is slow")
	}
	svg, err := RenderSVG(ToDOT(sample(), Options{}))
	if err != nil {
		t.Fatalf("RenderSVG() error: %v", err)
	}
	if !strings.Contains(string(svg), "<svg") {
		t.Errorf("RenderSVG() output is not SVG")
	}
}
