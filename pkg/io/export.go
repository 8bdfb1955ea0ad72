package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/matzehuels/menusolver/pkg/errors"
	"github.com/matzehuels/menusolver/pkg/menu"
)

var kindToString = map[menu.Kind]string{
	menu.KindLeaf:    "leaf",
	menu.KindSubmenu: "submenu",
}

var kindFromString = map[string]menu.Kind{
	"leaf":    menu.KindLeaf,
	"submenu": menu.KindSubmenu,
}

type node struct {
	Kind     string `json:"kind"`
	Label    string `json:"label"`
	Command  string `json:"command,omitempty"`
	Shortcut string `json:"shortcut,omitempty"`
	Children []node `json:"children,omitempty"`
}

func toJSON(nodes []menu.Node) []node {
	out := make([]node, len(nodes))
	for i, n := range nodes {
		out[i] = node{
			Kind:     kindToString[n.Kind],
			Label:    n.Label,
			Command:  n.Command,
			Shortcut: n.Shortcut,
			Children: toJSON(n.Children),
		}
		if len(out[i].Children) == 0 {
			out[i].Children = nil
		}
	}
	return out
}

func fromJSON(nodes []node) ([]menu.Node, error) {
	out := make([]menu.Node, len(nodes))
	for i, n := range nodes {
		k, ok := kindFromString[n.Kind]
		if !ok {
			return nil, errors.New(errors.ErrCodeInvalidFormat, "node %q: unknown kind %q", n.Label, n.Kind)
		}
		children, err := fromJSON(n.Children)
		if err != nil {
			return nil, err
		}
		if len(children) == 0 {
			children = nil
		}
		out[i] = menu.Node{Kind: k, Label: n.Label, Command: n.Command, Shortcut: n.Shortcut, Children: children}
	}
	return out, nil
}

// WriteJSON encodes a resolved tree as JSON and writes it to w.
// This format can be re-imported with [ReadJSON].
func WriteJSON(nodes []menu.Node, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(toJSON(nodes)); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ReadJSON decodes a tree written by WriteJSON.
// ReadJSON does not close r.
func ReadJSON(r io.Reader) ([]menu.Node, error) {
	var data []node
	if err := json.NewDecoder(r).Decode(&data); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	return fromJSON(data)
}

// ExportJSON writes a tree to a JSON file at path.
// This is a convenience wrapper around [WriteJSON] for file-based output.
func ExportJSON(nodes []menu.Node, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return WriteJSON(nodes, f)
}
