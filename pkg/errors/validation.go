package errors

import (
	"strings"
	"unicode"
)

// maxLabelLength bounds label strings accepted from users.
const maxLabelLength = 256

// ValidateLabel validates a node or edge label for storage in line-oriented
// formats. Labels may contain any printable text including commas (the .grphc
// writer quotes them) but no line breaks or other control characters.
func ValidateLabel(label string) error {
	if len(label) > maxLabelLength {
		return New(ErrCodeInvalidLabel, "label too long (max %d characters)", maxLabelLength)
	}
	for _, r := range label {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidLabel, "label contains control characters: %q", label)
		}
	}
	return nil
}

// ValidatePath validates a file path supplied to the HTTP API or config.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
//   - No path traversal sequences (..)
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	const maxPathLength = 500
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}

	if strings.Contains(path, "..") {
		return New(ErrCodeInvalidPath, "path cannot contain path traversal sequences (..)")
	}

	return nil
}

// ValidateCount checks that a generator parameter lies within [min, max].
// Generators coerce out-of-range values themselves; this is used at the
// outer surfaces (CLI, HTTP) to reject absurd sizes before allocating.
func ValidateCount(name string, v, min, max int) error {
	if v < min || v > max {
		return New(ErrCodeInvalidInput, "%s must be between %d and %d, got %d", name, min, max, v)
	}
	return nil
}
