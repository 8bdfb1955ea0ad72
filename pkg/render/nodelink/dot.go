package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/menusolver/pkg/menu"
)

// Options configures node-link diagram rendering.
type Options struct {
	// Root labels the synthetic root vertex. Defaults to "Menu".
	Root string
	// Detailed adds the shortcut and command id to leaf labels.
	// When false, only the label is shown.
	Detailed bool
}

// ToDOT converts a resolved menu tree to Graphviz DOT format.
// The resulting DOT string can be rendered using [RenderSVG].
//
// Submenus are drawn as folders and leaves as rounded boxes. The graph uses
// ordering=out so siblings keep their resolved order left to right.
func ToDOT(nodes []menu.Node, opts Options) string {
	root := opts.Root
	if root == "" {
		root = "Menu"
	}

	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  ordering=out;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=14, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  ranksep=0.4;\n")
	buf.WriteString("  nodesep=0.25;\n")
	buf.WriteString("\n")
	fmt.Fprintf(&buf, "  %q [label=%q, shape=plaintext, style=\"\"];\n", "root", root)

	w := &writer{buf: &buf, detailed: opts.Detailed}
	w.children("root", nodes)

	buf.WriteString("}\n")
	return buf.String()
}

type writer struct {
	buf      *bytes.Buffer
	detailed bool
	next     int
}

// children writes nodes under parent. Vertex ids are sequential because labels
// are not unique across levels.
func (w *writer) children(parent string, nodes []menu.Node) {
	for _, n := range nodes {
		w.next++
		id := "n" + strconv.Itoa(w.next)
		fmt.Fprintf(w.buf, "  %q [%s];\n", id, strings.Join(fmtAttrs(n, w.detailed), ", "))
		fmt.Fprintf(w.buf, "  %q -> %q;\n", parent, id)
		if n.IsSubmenu() {
			w.children(id, n.Children)
		}
	}
}

func fmtLabel(n menu.Node, detailed bool) string {
	if !detailed || n.IsSubmenu() {
		return n.Label
	}
	parts := []string{n.Label}
	if n.Shortcut != "" {
		parts = append(parts, n.Shortcut)
	}
	if n.Command != "" {
		parts = append(parts, n.Command)
	}
	return strings.Join(parts, "\n")
}

func fmtAttrs(n menu.Node, detailed bool) []string {
	attrs := []string{fmt.Sprintf("label=%q", fmtLabel(n, detailed))}
	if n.IsSubmenu() {
		attrs = append(attrs, "shape=folder", "style=filled", "fillcolor=lightgrey")
	}
	return attrs
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(dot string) ([]byte, error) {
	return RenderSVGContext(context.Background(), dot)
}

// RenderSVGContext is [RenderSVG] with a caller-supplied context.
func RenderSVGContext(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox replaces the Graphviz point-based svg header with one whose
// width and height match the viewBox, so the drawing scales in browsers.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	header := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(header))
}
