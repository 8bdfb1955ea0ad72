package menu

import (
	"maps"
	"slices"

	"github.com/matzehuels/menusolver/pkg/errors"
)

// Ordering holds the sibling constraints of one label.
// Before lists labels that must come after it, After lists labels that must
// come before it. Labels that do not exist at the same depth are ignored.
type Ordering struct {
	Before []string `json:"before,omitempty" toml:"before,omitempty" yaml:"before,omitempty"`
	After  []string `json:"after,omitempty" toml:"after,omitempty" yaml:"after,omitempty"`
}

// IsZero reports whether the ordering carries no constraint.
func (o Ordering) IsZero() bool { return len(o.Before) == 0 && len(o.After) == 0 }

// Declaration is a contributed menu item.
//
// Two declarations with the same Location are distinct contributions. The
// store tracks them by pointer identity, never by value.
type Declaration struct {
	Location    []string            // Path of labels, non-empty
	Command     string              // Command invoked when the leaf is activated
	Shortcut    string              // Display string for the key sequence (cosmetic)
	Title       string              // Overrides the derived label of the leaf
	Constraints map[string]Ordering // Sibling ordering keyed by label
}

// Option configures a Declaration built by NewDeclaration.
type Option func(*Declaration)

// WithShortcut sets the shortcut display string.
func WithShortcut(s string) Option {
	return func(d *Declaration) { d.Shortcut = s }
}

// WithTitle overrides the label shown for the leaf.
func WithTitle(title string) Option {
	return func(d *Declaration) { d.Title = title }
}

// WithBefore requires label to be placed before each of others among its siblings.
func WithBefore(label string, others ...string) Option {
	return func(d *Declaration) {
		o := d.constraint(label)
		o.Before = append(o.Before, others...)
		d.Constraints[label] = o
	}
}

// WithAfter requires label to be placed after each of others among its siblings.
func WithAfter(label string, others ...string) Option {
	return func(d *Declaration) {
		o := d.constraint(label)
		o.After = append(o.After, others...)
		d.Constraints[label] = o
	}
}

// WithOrdering replaces the constraints of label.
func WithOrdering(label string, o Ordering) Option {
	return func(d *Declaration) {
		d.constraint(label)
		d.Constraints[label] = o
	}
}

func (d *Declaration) constraint(label string) Ordering {
	if d.Constraints == nil {
		d.Constraints = make(map[string]Ordering)
	}
	return d.Constraints[label]
}

// NewDeclaration builds and validates a declaration.
// The location slice is copied. Returns an error with code
// [errors.ErrCodeInvalidLocation] when the location is empty or contains an
// empty segment. Use [Declaration.Lint] for the stricter authoring checks.
func NewDeclaration(location []string, command string, opts ...Option) (*Declaration, error) {
	d := &Declaration{
		Location: slices.Clone(location),
		Command:  command,
	}
	for _, opt := range opts {
		opt(d)
	}
	if err := d.Validate(); err != nil {
		return nil, err
	}
	return d, nil
}

// Validate reports whether the declaration can be placed in a menu: it must
// be non-nil with a non-empty location and no empty segment. Command ids,
// label contents and constraint labels are not inspected.
func (d *Declaration) Validate() error {
	if d == nil {
		return errors.New(errors.ErrCodeInvalidInput, "nil declaration")
	}
	return errors.ValidateLocation(d.Location)
}

// Lint applies authoring checks on top of Validate: label length and control
// characters, command id whitespace, and constraint labels. A declaration
// that fails Lint but passes Validate still resolves.
func (d *Declaration) Lint() error {
	if err := d.Validate(); err != nil {
		return err
	}
	if err := errors.LintLocation(d.Location); err != nil {
		return err
	}
	if err := errors.ValidateCommandID(d.Command); err != nil {
		return err
	}
	for _, label := range slices.Sorted(maps.Keys(d.Constraints)) {
		if err := errors.ValidateLabel(label); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidLocation, err, "constraint label")
		}
	}
	return nil
}

// Label returns the last location segment, or "" for an empty location.
func (d *Declaration) Label() string {
	if len(d.Location) == 0 {
		return ""
	}
	return d.Location[len(d.Location)-1]
}

// DisplayLabel returns Title when set, otherwise Label.
func (d *Declaration) DisplayLabel() string {
	if d.Title != "" {
		return d.Title
	}
	return d.Label()
}

// Clone returns a deep copy of the declaration.
func (d *Declaration) Clone() *Declaration {
	c := *d
	c.Location = slices.Clone(d.Location)
	if d.Constraints != nil {
		c.Constraints = make(map[string]Ordering, len(d.Constraints))
		for k, o := range d.Constraints {
			c.Constraints[k] = Ordering{Before: slices.Clone(o.Before), After: slices.Clone(o.After)}
		}
	}
	return &c
}

// Entry pairs a path with the declaration that owns it.
// The solver works on entries so that ownership never rides on the path slice.
type Entry struct {
	Path []string
	Decl *Declaration
}

// HasPrefix reports whether prefix is a strict prefix of the entry path.
func (e Entry) HasPrefix(prefix []string) bool {
	return len(e.Path) > len(prefix) && slices.Equal(e.Path[:len(prefix)], prefix)
}
