package errors

import (
	"regexp"
	"strings"
	"unicode"
)

// ValidatePartyName validates a party name coming from a dataset or a
// request. Names are shown verbatim in SVG titles and tooltips, so control
// characters and markup delimiters are rejected.
//
// The validation rules:
//   - No empty names
//   - No control characters
//   - No '<' or '>'
//   - Maximum length of 120 characters
func ValidatePartyName(name string) error {
	if strings.TrimSpace(name) == "" {
		return New(ErrCodeInvalidInput, "party name cannot be empty")
	}

	if len(name) > 120 {
		return New(ErrCodeInvalidInput, "party name too long (max 120 characters)")
	}

	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "party name contains invalid control characters")
		}
	}

	if strings.ContainsAny(name, "<>") {
		return New(ErrCodeInvalidInput, "party name contains invalid characters: %q", name)
	}

	return nil
}

// colorRegex accepts #rgb, #rrggbb and hsl()/rgb() functional notations.
var colorRegex = regexp.MustCompile(`^(#[0-9a-fA-F]{3}|#[0-9a-fA-F]{6}|(hsl|rgb)a?\([0-9a-zA-Z%.,\s()-]+\))$`)

// ValidateColor validates a display colour token.
func ValidateColor(color string) error {
	if color == "" {
		return New(ErrCodeInvalidInput, "color cannot be empty")
	}
	if !colorRegex.MatchString(color) {
		return New(ErrCodeInvalidInput, "invalid color: %q", color)
	}
	return nil
}

// ValidatePath validates a relative file path inside a data directory.
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
		return New(ErrCodeInvalidInput, "path cannot be empty")
	}

	const maxPathLength = 500
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidInput, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "path contains invalid characters")
		}
	}

	if strings.HasPrefix(path, "/") {
		return New(ErrCodeInvalidInput, "path must be relative (cannot start with /)")
	}

	if strings.Contains(path, "..") {
		return New(ErrCodeInvalidInput, "path cannot contain path traversal sequences (..)")
	}

	if strings.Contains(path, "\\") {
		return New(ErrCodeInvalidInput, "path cannot contain backslashes")
	}

	return nil
}
