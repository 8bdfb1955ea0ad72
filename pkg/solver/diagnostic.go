package solver

import (
	"fmt"
	"strings"

	"github.com/matzehuels/menusolver/pkg/dag"
	"github.com/matzehuels/menusolver/pkg/menu"
)

// DiagnosticKind classifies a Diagnostic.
type DiagnosticKind int

const (
	// DiagnosticMalformed marks a declaration that was skipped.
	DiagnosticMalformed DiagnosticKind = iota
	// DiagnosticCycle marks a constraint edge dropped to break a cycle.
	DiagnosticCycle
	// DiagnosticAmbiguous marks a leaf subsumed by a submenu with the same key.
	DiagnosticAmbiguous
)

func (k DiagnosticKind) String() string {
	switch k {
	case DiagnosticMalformed:
		return "malformed"
	case DiagnosticCycle:
		return "cycle"
	case DiagnosticAmbiguous:
		return "ambiguous"
	}
	return "unknown"
}

// Diagnostic describes something the solver recovered from.
type Diagnostic struct {
	Kind DiagnosticKind
	// Path is the level prefix for cycles, the full location otherwise.
	Path []string
	// Decl is the declaration concerned, nil for cycles.
	Decl *menu.Declaration
	// Edge is the dropped constraint for cycles.
	Edge dag.Edge
	// Index is the position of a malformed declaration in the input.
	Index int
	// Err is the validation error for malformed declarations.
	Err error
}

func (d Diagnostic) String() string {
	path := strings.Join(d.Path, " > ")
	switch d.Kind {
	case DiagnosticMalformed:
		return fmt.Sprintf("skipped declaration #%d: %v", d.Index, d.Err)
	case DiagnosticCycle:
		if path == "" {
			path = "<top>"
		}
		return fmt.Sprintf("cycle at %s: dropped %q before %q", path, d.Edge.From, d.Edge.To)
	case DiagnosticAmbiguous:
		return fmt.Sprintf("leaf %s (command %q) hidden by submenu of the same name", path, d.Decl.Command)
	}
	return "unknown diagnostic"
}
