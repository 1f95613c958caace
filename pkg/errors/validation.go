package errors

import (
	"strings"
	"unicode"
)

// ValidateCoordinatePart validates a single Maven coordinate component
// (groupId, artifactId, version or packaging).
//
// Coordinates end up in repository paths and URLs, so the rules reject
// anything that could escape the repository root:
//   - No empty values
//   - No control characters
//   - No path separators or traversal sequences
//   - No colons (the coordinate delimiter)
//   - Maximum length of 256 characters
func ValidateCoordinatePart(field, value string) error {
	if value == "" {
		return New(ErrCodeInvalidCoordinates, "%s cannot be empty", field)
	}

	if len(value) > 256 {
		return New(ErrCodeInvalidCoordinates, "%s too long (max 256 characters)", field)
	}

	for _, r := range value {
		if unicode.IsControl(r) || unicode.IsSpace(r) {
			return New(ErrCodeInvalidCoordinates, "%s contains invalid characters", field)
		}
	}

	dangerousPatterns := []string{
		"..",   // Parent directory
		"/",    // Path separator
		"\\",   // Backslash (Windows path)
		":",    // Coordinate delimiter
		"\x00", // Null byte
	}

	for _, pattern := range dangerousPatterns {
		if strings.Contains(value, pattern) {
			return New(ErrCodeInvalidCoordinates, "%s contains invalid characters: %q", field, pattern)
		}
	}

	return nil
}

// ValidatePath validates a store-relative path for safety.
// It prevents path traversal and ensures reasonable path length.
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

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}

	if strings.HasPrefix(path, "/") {
		return New(ErrCodeInvalidPath, "path must be relative (cannot start with /)")
	}

	if strings.Contains(path, "..") {
		return New(ErrCodeInvalidPath, "path cannot contain path traversal sequences (..)")
	}

	if strings.Contains(path, "\\") {
		return New(ErrCodeInvalidPath, "path cannot contain backslashes")
	}

	return nil
}

// ValidateURL validates a URL string for safety.
// It ensures the URL has a safe scheme (http or https).
func ValidateURL(rawURL string) error {
	if rawURL == "" {
		return New(ErrCodeInvalidInput, "URL cannot be empty")
	}

	if !strings.HasPrefix(rawURL, "http://") && !strings.HasPrefix(rawURL, "https://") {
		return New(ErrCodeInvalidInput, "URL must use http or https scheme")
	}

	return nil
}
