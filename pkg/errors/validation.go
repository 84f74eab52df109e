package errors

import (
	"strings"
	"unicode"
)

// ValidateOrigin checks that origin is a valid node id for a graph with n nodes.
// Shortest-path searches treat an out-of-range origin as a precondition
// violation and report it with ErrCodeInvalidOrigin rather than substituting
// another node.
func ValidateOrigin(origin, n int) error {
	if origin < 0 || origin >= n {
		return New(ErrCodeInvalidOrigin, "origin %d out of range [0,%d)", origin, n)
	}
	return nil
}

// ValidateCapacity checks a node-count hint. Zero means "grow to fit the
// data"; negative values and values above limit are rejected.
func ValidateCapacity(capacity, limit int) error {
	if capacity < 0 {
		return New(ErrCodeInvalidCapacity, "capacity must not be negative, got %d", capacity)
	}
	if capacity > limit {
		return New(ErrCodeInvalidCapacity, "capacity %d exceeds the node limit %d", capacity, limit)
	}
	return nil
}

// ValidateNodeLimit checks a node ceiling against the hard maximum. Zero
// selects the default.
func ValidateNodeLimit(limit, maximum int) error {
	if limit < 0 || limit > maximum {
		return New(ErrCodeInvalidInput, "node limit must be in [0,%d], got %d", maximum, limit)
	}
	return nil
}

// ValidateWorkers checks the number of concurrent origin searches.
func ValidateWorkers(workers int) error {
	if workers < 0 {
		return New(ErrCodeInvalidInput, "workers must not be negative, got %d", workers)
	}
	return nil
}

// ValidatePath validates a dataset path supplied by a user.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 4096 characters
//   - No null bytes or control characters
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	const maxPathLength = 4096
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}

	return nil
}

// ValidateChoice checks that value is one of allowed, reporting code on failure.
// Comparison is case-sensitive.
func ValidateChoice(code Code, field, value string, allowed ...string) error {
	for _, a := range allowed {
		if value == a {
			return nil
		}
	}
	return New(code, "invalid %s: %q (must be one of: %s)", field, value, strings.Join(allowed, ", "))
}
