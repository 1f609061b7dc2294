package errors

import (
	"regexp"
	"strings"
	"unicode"
)

// layerNameRegex matches layer names usable as SVG group ids.
var layerNameRegex = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_.-]*$`)

// ValidateLayerName validates a layer name. Layer names end up as group ids
// in rendered output, so they are restricted to a conservative alphabet:
//   - No empty names
//   - Maximum length of 64 characters
//   - Letters, digits, underscore, dot, and dash, not starting with a digit
func ValidateLayerName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidConfig, "layer name cannot be empty")
	}
	if len(name) > 64 {
		return New(ErrCodeInvalidConfig, "layer name too long (max 64 characters)")
	}
	if !layerNameRegex.MatchString(name) {
		return New(ErrCodeInvalidConfig, "invalid layer name: %q", name)
	}
	return nil
}

// ValidatePath validates a file path referenced from a configuration file.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
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
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}

	if strings.Contains(path, "\\") {
		return New(ErrCodeInvalidPath, "path cannot contain backslashes")
	}

	return nil
}

// ValidateFormat checks that format is one of the allowed output formats.
func ValidateFormat(format string, allowed ...string) error {
	for _, a := range allowed {
		if format == a {
			return nil
		}
	}
	return New(ErrCodeInvalidFormat, "unknown format %q (want one of %s)", format, strings.Join(allowed, ", "))
}
