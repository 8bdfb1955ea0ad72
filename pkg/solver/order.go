package solver

import (
	"strings"

	"github.com/matzehuels/menusolver/pkg/dag"
	"github.com/matzehuels/menusolver/pkg/dag/transform"
)

// levelGraph builds the ordering graph of one level: one node per key in
// first-seen order and one edge per constraint naming another key of the level.
// Constraint labels that are not keys of this level are ignored.
func levelGraph(groups []group) *dag.DAG {
	g := dag.New()
	for _, grp := range groups {
		_ = g.AddNode(grp.key)
	}

	for _, grp := range groups {
		for _, e := range grp.entries {
			o, ok := e.Decl.Constraints[grp.key]
			if !ok {
				continue
			}
			for _, other := range o.Before {
				if other != grp.key && g.HasNode(other) {
					_ = g.AddEdge(grp.key, other)
				}
			}
			for _, other := range o.After {
				if other != grp.key && g.HasNode(other) {
					_ = g.AddEdge(other, grp.key)
				}
			}
		}
	}
	return g
}

// orderLevel returns the emission order of the level keys below prefix and
// the constraint edges dropped to break cycles.
func (s *Solver) orderLevel(groups []group, prefix []string) ([]string, []dag.Edge) {
	if len(groups) < 2 {
		return keys(groups), nil
	}
	g := levelGraph(groups)
	if s.logger != nil && g.EdgeCount() > 0 {
		s.logger.Debug("ordering level", "path", strings.Join(prefix, "/"), "labels", g.NodeCount(), "constraints", g.EdgeCount())
	}
	return transform.Order(g)
}
