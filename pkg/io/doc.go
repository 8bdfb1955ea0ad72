// Package io reads menu contribution manifests and serializes resolved trees.
//
// # Manifests
//
// A manifest is one contribution batch: the items an extension adds in a
// single call. Three encodings are supported and sniffed from the file
// extension by [FormatFromPath]:
//
// TOML (.toml) uses an array of "item" tables:
//
//	[[item]]
//	location = ["File", "Save"]
//	command  = "file.save"
//	shortcut = "Ctrl+S"
//
//	[item.constraints.Save]
//	after = ["Open"]
//
// YAML (.yaml, .yml) and JSON (.json) use an "items" list with the same
// fields:
//
//	{"items": [{"location": ["File", "Save"], "command": "file.save",
//	            "constraints": {"Save": {"after": ["Open"]}}}]}
//
// Reading only fails on encoding errors. Items with an empty location or
// segment are kept so the batch stays intact; the resolver skips and reports
// them. [LintManifest] applies the stricter authoring checks item by item.
//
// # Trees
//
// [WriteJSON] encodes a resolved tree for consumption by a renderer:
//
//	[
//	  {"kind": "submenu", "label": "File", "children": [
//	    {"kind": "leaf", "label": "Save", "command": "file.save", "shortcut": "Ctrl+S"}
//	  ]}
//	]
//
// [ReadJSON] decodes the same format, so trees round-trip.
package io
