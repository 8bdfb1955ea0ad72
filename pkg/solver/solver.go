package solver

import (
	"errors"
	"slices"
	"time"

	"github.com/charmbracelet/log"

	merrors "github.com/matzehuels/menusolver/pkg/errors"
	"github.com/matzehuels/menusolver/pkg/menu"
	"github.com/matzehuels/menusolver/pkg/observability"
)

// Option configures a Solver.
type Option func(*Solver)

// WithPolicy selects the leaf/submenu ambiguity policy.
func WithPolicy(p Policy) Option {
	return func(s *Solver) { s.policy = p }
}

// WithLogger makes the solver log diagnostics. Skipped declarations and
// ambiguities are logged at warn level, broken cycles at debug level.
func WithLogger(l *log.Logger) Option {
	return func(s *Solver) { s.logger = l }
}

// Solver resolves declarations into menu trees. It holds configuration only
// and is safe for concurrent use.
type Solver struct {
	policy Policy
	logger *log.Logger
}

// New creates a Solver.
func New(opts ...Option) *Solver {
	s := &Solver{policy: PolicySubmenuWins}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Policy returns the configured ambiguity policy.
func (s *Solver) Policy() Policy { return s.policy }

// Result is the outcome of one solve.
type Result struct {
	Nodes       []menu.Node
	Diagnostics []Diagnostic
	policy      Policy
}

// Err returns the ambiguity conflicts as AMBIGUOUS_NODE errors when the
// result was produced with PolicyReport, nil otherwise. Malformed
// declarations and cycles never produce an error.
func (r *Result) Err() error {
	if r.policy != PolicyReport {
		return nil
	}
	var errs []error
	for _, d := range r.Diagnostics {
		if d.Kind == DiagnosticAmbiguous {
			errs = append(errs, merrors.New(merrors.ErrCodeAmbiguousNode, "%s", d.String()))
		}
	}
	return errors.Join(errs...)
}

// Filter returns the diagnostics of the given kind.
func (r *Result) Filter(kind DiagnosticKind) []Diagnostic {
	var out []Diagnostic
	for _, d := range r.Diagnostics {
		if d.Kind == kind {
			out = append(out, d)
		}
	}
	return out
}

// Solve resolves items with a Solver configured by opts.
func Solve(items []*menu.Declaration, opts ...Option) *Result {
	return New(opts...).Solve(items)
}

// Resolve is like Solve but returns only the tree.
func Resolve(items []*menu.Declaration, opts ...Option) []menu.Node {
	return Solve(items, opts...).Nodes
}

// Solve builds the menu tree for items. It never fails: see the package
// documentation for how malformed input is handled.
func (s *Solver) Solve(items []*menu.Declaration) *Result {
	start := time.Now()
	hooks := observability.Solver()
	hooks.OnSolveStart(len(items))

	r := &Result{policy: s.policy}
	entries := s.entries(items, r)
	r.Nodes = s.level(entries, nil, r)
	if r.Nodes == nil {
		r.Nodes = []menu.Node{}
	}

	hooks.OnSolveComplete(len(items), len(r.Diagnostics), time.Since(start))
	return r
}

// entries validates items and pairs each valid one with its path.
func (s *Solver) entries(items []*menu.Declaration, r *Result) []menu.Entry {
	out := make([]menu.Entry, 0, len(items))
	for i, d := range items {
		if err := d.Validate(); err != nil {
			var path []string
			if d != nil {
				path = slices.Clone(d.Location)
			}
			s.report(r, Diagnostic{Kind: DiagnosticMalformed, Path: path, Decl: d, Index: i, Err: err})
			continue
		}
		out = append(out, menu.Entry{Path: d.Location, Decl: d})
	}
	return out
}

// level solves one tree level below prefix.
func (s *Solver) level(entries []menu.Entry, prefix []string, r *Result) []menu.Node {
	groups := partition(entries, prefix)
	if len(groups) == 0 {
		return nil
	}

	built := make(map[string][]menu.Node, len(groups))
	for _, g := range groups {
		built[g.key] = s.group(g, prefix, r)
	}

	order, broken := s.orderLevel(groups, prefix)
	for _, e := range broken {
		s.report(r, Diagnostic{Kind: DiagnosticCycle, Path: slices.Clone(prefix), Edge: e})
	}

	nodes := make([]menu.Node, 0, len(entries))
	for _, key := range order {
		nodes = append(nodes, built[key]...)
	}
	return nodes
}

// group builds the nodes of one group: one leaf per entry, or a single
// submenu when any entry descends past the key.
func (s *Solver) group(g group, prefix []string, r *Result) []menu.Node {
	depth := len(prefix) + 1
	leaves, deeper := g.split(depth)

	if len(deeper) == 0 {
		nodes := make([]menu.Node, len(leaves))
		for i, e := range leaves {
			nodes[i] = menu.Leaf(e.Decl.DisplayLabel(), e.Decl.Command, e.Decl.Shortcut)
		}
		return nodes
	}

	if s.policy == PolicyReport {
		for _, e := range leaves {
			s.report(r, Diagnostic{Kind: DiagnosticAmbiguous, Path: slices.Clone(e.Path), Decl: e.Decl})
		}
	}

	sub := append(slices.Clone(prefix), g.key)
	return []menu.Node{menu.Submenu(g.key, s.level(deeper, sub, r)...)}
}

func (s *Solver) report(r *Result, d Diagnostic) {
	r.Diagnostics = append(r.Diagnostics, d)
	if s.logger == nil {
		return
	}
	switch d.Kind {
	case DiagnosticCycle:
		s.logger.Debug("broke ordering cycle", "detail", d.String())
	default:
		s.logger.Warn("menu declaration", "kind", d.Kind, "detail", d.String())
	}
}
