package errors

import (
	"regexp"
	"strings"
	"unicode"
)

// routeIDRegex matches route identifiers as produced by search-tree exports:
// word characters, dots, and dashes.
var routeIDRegex = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._-]*$`)

// ValidateRouteID validates a route identifier for safety and correctness.
// It rejects identifiers that could be used for path traversal when routes
// are written to per-route files.
//
// The validation rules are intentionally conservative:
//   - No empty identifiers
//   - No control characters
//   - No path separators or traversal sequences
//   - Maximum length of 256 characters
func ValidateRouteID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidRoute, "route id cannot be empty")
	}

	if len(id) > 256 {
		return New(ErrCodeInvalidRoute, "route id too long (max 256 characters)")
	}

	for _, r := range id {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidRoute, "route id contains invalid control characters")
		}
	}

	if !routeIDRegex.MatchString(id) {
		return New(ErrCodeInvalidRoute, "invalid route id: %q", id)
	}

	return nil
}

// clusterIDRegex matches cluster identifiers of the form
// "<bond count>.<index>", e.g. "2.1".
var clusterIDRegex = regexp.MustCompile(`^[0-9]+\.[0-9]+$`)

// ValidateClusterID validates a cluster identifier.
func ValidateClusterID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidInput, "cluster id cannot be empty")
	}
	if !clusterIDRegex.MatchString(id) {
		return New(ErrCodeInvalidInput, "invalid cluster id: %q", id)
	}
	return nil
}

// ValidatePath validates a file path within the data directory for safety.
// It prevents path traversal attacks and ensures reasonable path length.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
//   - No absolute paths (must be relative)
//   - No path traversal sequences (..)
//   - No backslashes (Windows-style paths)
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	const maxPathLength = 500
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	// Check for null bytes and control characters
	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}

	// Must not be absolute path
	if strings.HasPrefix(path, "/") {
		return New(ErrCodeInvalidPath, "path must be relative (cannot start with /)")
	}

	// Check for path traversal
	if strings.Contains(path, "..") {
		return New(ErrCodeInvalidPath, "path cannot contain path traversal sequences (..)")
	}

	// No backslashes (potential Windows path injection)
	if strings.Contains(path, "\\") {
		return New(ErrCodeInvalidPath, "path cannot contain backslashes")
	}

	return nil
}

// ValidateElement validates an element symbol: one or two letters, the first
// uppercase, per standard chemical notation.
var elementRegex = regexp.MustCompile(`^[A-Z][a-z]?$`)

func ValidateElement(symbol string) error {
	if symbol == "" {
		return New(ErrCodeInvalidGraph, "element symbol cannot be empty")
	}
	if !elementRegex.MatchString(symbol) {
		return New(ErrCodeInvalidGraph, "invalid element symbol: %q", symbol)
	}
	return nil
}
