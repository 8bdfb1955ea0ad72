package io

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/menusolver/pkg/errors"
	"github.com/matzehuels/menusolver/pkg/menu"
)

// Format is a manifest encoding.
type Format string

// Supported manifest formats.
const (
	FormatTOML Format = "toml"
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// ParseFormat converts a format name, file extension or media type into a
// Format.
func ParseFormat(s string) (Format, error) {
	s = strings.ToLower(strings.TrimPrefix(strings.TrimSpace(s), "."))
	if i := strings.IndexByte(s, ';'); i >= 0 {
		s = strings.TrimSpace(s[:i])
	}
	switch s {
	case "toml", "application/toml":
		return FormatTOML, nil
	case "yaml", "yml", "application/yaml", "application/x-yaml", "text/yaml":
		return FormatYAML, nil
	case "json", "application/json":
		return FormatJSON, nil
	}
	return "", errors.New(errors.ErrCodeInvalidFormat, "unsupported manifest format %q", s)
}

// FormatFromPath returns the manifest format implied by the file extension.
func FormatFromPath(path string) (Format, error) {
	return ParseFormat(filepath.Ext(path))
}

type manifestItem struct {
	Location    []string                 `json:"location" toml:"location" yaml:"location"`
	Command     string                   `json:"command,omitempty" toml:"command,omitempty" yaml:"command,omitempty"`
	Shortcut    string                   `json:"shortcut,omitempty" toml:"shortcut,omitempty" yaml:"shortcut,omitempty"`
	Title       string                   `json:"title,omitempty" toml:"title,omitempty" yaml:"title,omitempty"`
	Constraints map[string]menu.Ordering `json:"constraints,omitempty" toml:"constraints,omitempty" yaml:"constraints,omitempty"`
}

type manifest struct {
	Items []manifestItem `json:"items" toml:"item" yaml:"items"`
}

// ReadManifest decodes one contribution batch from r.
// Items are returned as decoded, in order; malformed items are left for the
// resolver to skip and report. Only encoding errors fail the read.
// ReadManifest does not close r.
func ReadManifest(r io.Reader, f Format) ([]*menu.Declaration, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidManifest, err, "read")
	}

	var m manifest
	switch f {
	case FormatTOML:
		err = toml.Unmarshal(data, &m)
	case FormatYAML:
		err = yaml.Unmarshal(data, &m)
	case FormatJSON:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		err = dec.Decode(&m)
	default:
		return nil, errors.New(errors.ErrCodeInvalidFormat, "unsupported manifest format %q", f)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidManifest, err, "decode %s", f)
	}

	items := make([]*menu.Declaration, len(m.Items))
	for i, it := range m.Items {
		items[i] = &menu.Declaration{
			Location:    it.Location,
			Command:     it.Command,
			Shortcut:    it.Shortcut,
			Title:       it.Title,
			Constraints: it.Constraints,
		}
	}
	return items, nil
}

// LintManifest applies [menu.Declaration.Lint] to every item and returns one
// INVALID_MANIFEST error per failing item, naming its index. It returns nil
// when every item passes.
func LintManifest(items []*menu.Declaration) []error {
	var errs []error
	for i, d := range items {
		if err := d.Lint(); err != nil {
			errs = append(errs, errors.Wrap(errors.ErrCodeInvalidManifest, err, "item %d", i))
		}
	}
	return errs
}

// ImportManifest reads the manifest at path, using its extension to pick
// the format.
func ImportManifest(path string) ([]*menu.Declaration, error) {
	if err := errors.ValidateManifestFilename(filepath.Base(path)); err != nil {
		return nil, err
	}
	f, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}

	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
		}
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer file.Close()

	items, err := ReadManifest(file, f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return items, nil
}

// WriteManifest encodes items as a contribution batch in format f.
func WriteManifest(items []*menu.Declaration, w io.Writer, f Format) error {
	m := manifest{Items: make([]manifestItem, len(items))}
	for i, d := range items {
		m.Items[i] = manifestItem{
			Location:    d.Location,
			Command:     d.Command,
			Shortcut:    d.Shortcut,
			Title:       d.Title,
			Constraints: d.Constraints,
		}
	}

	var err error
	switch f {
	case FormatTOML:
		err = toml.NewEncoder(w).Encode(m)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		err = enc.Encode(m)
		if err == nil {
			err = enc.Close()
		}
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		err = enc.Encode(m)
	default:
		return errors.New(errors.ErrCodeInvalidFormat, "unsupported manifest format %q", f)
	}
	if err != nil {
		return fmt.Errorf("encode %s: %w", f, err)
	}
	return nil
}
