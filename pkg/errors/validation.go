package errors

import (
	"slices"
	"strings"
	"unicode"

	"github.com/google/uuid"
)

// Limits applied to user-supplied layouts.
const (
	MaxNameLength = 128
	MaxDimension  = 1 << 16
)

// ValidateNodeName validates a node name used as a result-map key.
// The empty name is allowed: it marks a nameless spacer.
//
// Validation rules:
//   - Maximum length of 128 characters
//   - No control characters
//   - No leading or trailing whitespace
func ValidateNodeName(name string) error {
	if name == "" {
		return nil
	}
	if len(name) > MaxNameLength {
		return New(ErrCodeInvalidName, "node name too long (max %d characters)", MaxNameLength)
	}
	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidName, "node name contains invalid control characters")
		}
	}
	if strings.TrimSpace(name) != name {
		return New(ErrCodeInvalidName, "node name %q has surrounding whitespace", name)
	}
	return nil
}

// ValidateDimensions validates a root or flow size in pixels.
// Both dimensions must be positive and at most [MaxDimension].
func ValidateDimensions(width, height int) error {
	if width <= 0 || height <= 0 {
		return New(ErrCodeInvalidDimensions, "dimensions must be positive, got %dx%d", width, height)
	}
	if width > MaxDimension || height > MaxDimension {
		return New(ErrCodeInvalidDimensions, "dimensions too large (max %d), got %dx%d", MaxDimension, width, height)
	}
	return nil
}

// ValidateLayoutID validates a stored layout ID, which must be a UUID.
func ValidateLayoutID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidInput, "layout id cannot be empty")
	}
	if _, err := uuid.Parse(id); err != nil {
		return Wrap(ErrCodeInvalidInput, err, "invalid layout id %q", id)
	}
	return nil
}

// ValidateFormat validates an output format name against the allowed set.
func ValidateFormat(format string, allowed []string) error {
	if format == "" {
		return New(ErrCodeInvalidFormat, "format cannot be empty")
	}
	if !slices.Contains(allowed, format) {
		return New(ErrCodeInvalidFormat, "unsupported format %q (valid: %s)", format, strings.Join(allowed, ", "))
	}
	return nil
}

// ValidatePath validates an output path for safety.
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
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}

	if slices.Contains(strings.Split(path, "/"), "..") {
		return New(ErrCodeInvalidPath, "path cannot contain path traversal sequences (..)")
	}

	return nil
}
