package solver

import "github.com/matzehuels/menusolver/pkg/menu"

// group is the set of entries of one level sharing a level key.
type group struct {
	key     string
	entries []menu.Entry
}

// partition selects the entries that strictly extend prefix and groups them by
// the segment that follows it. Groups are returned in the order their key is
// first seen, and entries keep their input order within a group.
func partition(entries []menu.Entry, prefix []string) []group {
	var groups []group
	index := make(map[string]int)
	depth := len(prefix)

	for _, e := range entries {
		if !e.HasPrefix(prefix) {
			continue
		}
		key := e.Path[depth]
		i, ok := index[key]
		if !ok {
			i = len(groups)
			index[key] = i
			groups = append(groups, group{key: key})
		}
		groups[i].entries = append(groups[i].entries, e)
	}
	return groups
}

// split separates entries ending at depth from those descending further.
func (g group) split(depth int) (leaves, deeper []menu.Entry) {
	for _, e := range g.entries {
		if len(e.Path) == depth {
			leaves = append(leaves, e)
		} else {
			deeper = append(deeper, e)
		}
	}
	return leaves, deeper
}

// keys returns the level keys of groups in order.
func keys(groups []group) []string {
	out := make([]string, len(groups))
	for i, g := range groups {
		out[i] = g.key
	}
	return out
}
