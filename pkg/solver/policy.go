package solver

import (
	"strings"

	"github.com/matzehuels/menusolver/pkg/errors"
)

// Policy selects how a key that is both a leaf and a submenu is handled.
type Policy int

const (
	// PolicySubmenuWins builds the submenu and drops the leaf silently.
	PolicySubmenuWins Policy = iota
	// PolicyReport builds the submenu, records a DiagnosticAmbiguous for each
	// dropped leaf and makes Result.Err return an AMBIGUOUS_NODE error.
	PolicyReport
)

// Policy names accepted by ParsePolicy.
const (
	PolicyNameSubmenuWins = "submenu-wins"
	PolicyNameReport      = "report"
)

func (p Policy) String() string {
	switch p {
	case PolicySubmenuWins:
		return PolicyNameSubmenuWins
	case PolicyReport:
		return PolicyNameReport
	}
	return "unknown"
}

// ParsePolicy converts a policy name into a Policy. The empty string selects
// the default PolicySubmenuWins.
func ParsePolicy(s string) (Policy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", PolicyNameSubmenuWins:
		return PolicySubmenuWins, nil
	case PolicyNameReport:
		return PolicyReport, nil
	}
	return PolicySubmenuWins, errors.New(errors.ErrCodeInvalidPolicy,
		"unknown policy %q (want %s or %s)", s, PolicyNameSubmenuWins, PolicyNameReport)
}
