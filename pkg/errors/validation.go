package errors

import (
	"strings"
	"unicode"
)

// ValidateAlbumPath validates an album path for safety and correctness.
// It rejects paths that could be used for traversal outside the gallery tree.
//
// The validation rules are intentionally conservative:
//   - Must start with "/"
//   - No control characters or null bytes
//   - No parent directory sequences or double slashes
//   - Maximum length of 1023 characters
func ValidateAlbumPath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "album path cannot be empty")
	}

	if !strings.HasPrefix(path, "/") {
		return New(ErrCodeInvalidPath, "album path must start with /: %q", path)
	}

	if len(path) > 1023 {
		return New(ErrCodeInvalidPath, "album path too long (max 1023 characters)")
	}

	for _, r := range path {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "album path contains invalid control characters")
		}
	}

	dangerousPatterns := []string{
		"..",   // Parent directory
		"//",   // Double slash
		"\x00", // Null byte
		"\\",   // Backslash (Windows path)
	}

	for _, pattern := range dangerousPatterns {
		if strings.Contains(path, pattern) {
			return New(ErrCodeInvalidPath, "album path contains invalid sequence: %q", pattern)
		}
	}

	return nil
}

// ValidateSlug validates a single path component produced by slugification.
// Slugs must be non-empty and consist of lowercase letters, digits, and dashes.
func ValidateSlug(slug string) error {
	if slug == "" {
		return New(ErrCodeInvalidSlug, "slug cannot be empty")
	}

	for _, r := range slug {
		if !unicode.IsLower(r) && !unicode.IsDigit(r) && r != '-' {
			return New(ErrCodeInvalidSlug, "slug contains invalid character %q", r)
		}
	}

	if strings.HasPrefix(slug, "-") || strings.HasSuffix(slug, "-") {
		return New(ErrCodeInvalidSlug, "slug cannot start or end with a dash: %q", slug)
	}

	return nil
}
