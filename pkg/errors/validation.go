package errors

import (
	"strings"
	"unicode"
)

// ValidateRoot validates a repository root URL.
// Roots must be non-empty http or https URL prefixes; a Maven-style
// repository is necessarily an HTTP repository.
func ValidateRoot(root string) error {
	if root == "" {
		return New(ErrCodeInvalidRoot, "root must not be empty")
	}
	if !strings.HasPrefix(root, "http://") && !strings.HasPrefix(root, "https://") {
		return New(ErrCodeInvalidRoot, "root must use http or https scheme: %q", root)
	}
	for _, r := range root {
		if unicode.IsControl(r) || unicode.IsSpace(r) {
			return New(ErrCodeInvalidRoot, "root contains invalid characters")
		}
	}
	return nil
}

// ValidatePattern validates a repository path pattern template.
// It checks shape only (non-empty, balanced brackets, no traversal);
// token vocabulary is enforced at substitution time.
func ValidatePattern(pattern string) error {
	if pattern == "" {
		return New(ErrCodeInvalidPattern, "pattern must not be empty")
	}
	if strings.Contains(pattern, "..") {
		return New(ErrCodeInvalidPattern, "pattern cannot contain path traversal sequences (..)")
	}
	depth := 0
	for _, r := range pattern {
		switch r {
		case '[':
			depth++
			if depth > 1 {
				return New(ErrCodeInvalidPattern, "nested brackets in pattern %q", pattern)
			}
		case ']':
			depth--
			if depth < 0 {
				return New(ErrCodeInvalidPattern, "unbalanced brackets in pattern %q", pattern)
			}
		}
	}
	if depth != 0 {
		return New(ErrCodeInvalidPattern, "unbalanced brackets in pattern %q", pattern)
	}
	return nil
}

// ValidateCoordinatePart validates a single coordinate component
// (organisation, module, revision, artifact name) for safety. It rejects
// values that could be used for path traversal once substituted into a
// pattern.
func ValidateCoordinatePart(part string) error {
	if part == "" {
		return New(ErrCodeInvalidCoordinate, "coordinate component cannot be empty")
	}
	if len(part) > 256 {
		return New(ErrCodeInvalidCoordinate, "coordinate component too long (max 256 characters)")
	}
	for _, r := range part {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidCoordinate, "coordinate component contains control characters")
		}
	}
	for _, pattern := range []string{"..", "//", "\\"} {
		if strings.Contains(part, pattern) {
			return New(ErrCodeInvalidCoordinate, "coordinate component contains invalid sequence %q", pattern)
		}
	}
	return nil
}
