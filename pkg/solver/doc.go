// Package solver turns a flat set of menu declarations into an ordered menu tree.
//
// # Algorithm
//
// Solving is recursive over tree levels. For a level identified by a prefix
// (empty at the top):
//
//  1. Select the declarations whose location strictly extends the prefix and
//     take the next segment as their level key.
//  2. Group them by key, remembering the order in which keys first appear.
//  3. Build one node per group. A group whose members all end at the key
//     yields one leaf per member. A group where any member descends further
//     yields a single submenu, solved recursively with prefix+key.
//  4. Order the keys: each declaration's Constraints entry for its own key
//     contributes before/after edges to the other keys of the level. Cycles
//     are broken in favour of the first-seen key, then keys are sorted
//     topologically with first-seen order as the tie break.
//  5. Emit the per-group nodes in that order.
//
// Constraints are strictly per level: a label only ever competes with its
// siblings, never with labels elsewhere in the tree.
//
// # Leaf and submenu at the same key
//
// When a key is both a leaf for one declaration and a submenu for another,
// the submenu wins and the leaf's command is not reachable. The [Policy]
// option decides whether this happens silently ([PolicySubmenuWins], the
// default) or is reported as a [DiagnosticAmbiguous] that makes
// [Result.Err] fail ([PolicyReport]).
//
// # Failure semantics
//
// The solver never fails on data. Malformed declarations (nil, an empty
// location or an empty segment) are skipped and reported as
// [DiagnosticMalformed]; broken constraint edges are reported as
// [DiagnosticCycle]. Label contents and command ids are never checked. Every
// call recomputes the tree from scratch, the solver keeps no state between
// calls.
package solver
