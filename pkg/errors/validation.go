package errors

import (
	"strings"
	"unicode"
)

// maxLabelLength bounds a single path segment. Menu labels longer than this
// are almost certainly data errors rather than intended titles.
const maxLabelLength = 256

// ValidateLabel validates a single location segment or sibling label.
//
// The validation rules are:
//   - No empty labels
//   - No control characters (menus render on one line)
//   - Maximum length of 256 characters
func ValidateLabel(label string) error {
	if label == "" {
		return New(ErrCodeInvalidLocation, "label cannot be empty")
	}
	if len(label) > maxLabelLength {
		return New(ErrCodeInvalidLocation, "label too long (max %d characters)", maxLabelLength)
	}
	for _, r := range label {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidLocation, "label %q contains control characters", label)
		}
	}
	return nil
}

// ValidateLocation checks the structure of a hierarchical menu location:
// at least one segment and no empty segment. Segment contents are not
// inspected; see [LintLocation].
func ValidateLocation(location []string) error {
	if len(location) == 0 {
		return New(ErrCodeInvalidLocation, "location must have at least one segment")
	}
	for i, seg := range location {
		if seg == "" {
			return New(ErrCodeInvalidLocation, "segment %d is empty", i)
		}
	}
	return nil
}

// LintLocation is [ValidateLocation] plus [ValidateLabel] on every segment.
func LintLocation(location []string) error {
	if err := ValidateLocation(location); err != nil {
		return err
	}
	for i, seg := range location {
		if err := ValidateLabel(seg); err != nil {
			return Wrap(ErrCodeInvalidLocation, err, "segment %d", i)
		}
	}
	return nil
}

// ValidateCommandID validates the identifier of the command a leaf invokes.
// Empty ids are allowed since a declaration may only shape a submenu.
func ValidateCommandID(id string) error {
	if strings.TrimSpace(id) != id {
		return New(ErrCodeInvalidInput, "command id %q has surrounding whitespace", id)
	}
	for _, r := range id {
		if unicode.IsControl(r) || unicode.IsSpace(r) {
			return New(ErrCodeInvalidInput, "command id %q contains whitespace or control characters", id)
		}
	}
	return nil
}

// ValidateManifestFilename validates a contribution manifest filename for safety.
// It ensures the filename is a simple basename without path components.
func ValidateManifestFilename(filename string) error {
	if filename == "" {
		return New(ErrCodeInvalidManifest, "manifest filename cannot be empty")
	}

	// Must be a simple filename, not a path
	if strings.ContainsAny(filename, "/\\") {
		return New(ErrCodeInvalidManifest, "manifest filename cannot contain path separators")
	}

	if strings.HasPrefix(filename, ".") {
		return New(ErrCodeInvalidManifest, "manifest filename cannot be a hidden file")
	}

	return nil
}
