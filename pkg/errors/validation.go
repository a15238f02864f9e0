package errors

import (
	"regexp"
	"strings"
	"unicode"
)

// ValidateComponentName validates a component name for use as a record label.
//
// The validation rules are intentionally conservative:
//   - No empty names
//   - No control characters
//   - Maximum length of 80 characters
//
// Whitespace is allowed; the writer quotes such values.
func ValidateComponentName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidName, "component name cannot be empty")
	}

	if len(name) > 80 {
		return New(ErrCodeInvalidName, "component name too long (max 80 characters)")
	}

	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidName, "component name contains invalid control characters")
		}
	}

	return nil
}

// sequenceRegex matches one-letter residue codes.
var sequenceRegex = regexp.MustCompile(`^[A-Z]+$`)

// ValidateSequence validates a one-letter residue sequence.
// Lowercase input is rejected rather than folded so that entity
// deduplication stays byte-exact.
func ValidateSequence(seq string) error {
	if seq == "" {
		return New(ErrCodeInvalidSequence, "sequence cannot be empty")
	}

	if !sequenceRegex.MatchString(seq) {
		i := strings.IndexFunc(seq, func(r rune) bool { return r < 'A' || r > 'Z' })
		return New(ErrCodeInvalidSequence, "invalid residue code %q at position %d", seq[i:i+1], i+1)
	}

	return nil
}

// chainRegex matches chain identifiers as assigned to components.
var chainRegex = regexp.MustCompile(`^[A-Za-z0-9]{1,4}$`)

// ValidateChainID validates a chain identifier.
func ValidateChainID(id string) error {
	if !chainRegex.MatchString(id) {
		return New(ErrCodeInvalidName, "invalid chain id: %q", id)
	}
	return nil
}

// ValidatePath validates a relative input file path named by a job document.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
//   - No backslashes (Windows-style paths)
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidInput, "path cannot be empty")
	}

	const maxPathLength = 500
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidInput, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "path contains invalid characters")
		}
	}

	if strings.Contains(path, "\\") {
		return New(ErrCodeInvalidInput, "path cannot contain backslashes")
	}

	return nil
}
