package errors

import (
	"slices"
	"strings"
	"unicode"
)

// maxNameLength bounds display names and field names.
const maxNameLength = 128

// reservedNameChars are used to build node identifiers and column keys.
// A name containing one of them could make two different paths collide.
const reservedNameChars = "[]:/|#"

// ValidateName validates a dimension or measure display name.
// The returned error carries code, so callers decide whether the name
// belongs to a dimension or a measure.
//
// The validation rules:
//   - No empty or whitespace-only names
//   - No control characters
//   - None of the identifier separators [ ] : / | #
//   - Maximum length of 128 characters
func ValidateName(code Code, kind, name string) error {
	if strings.TrimSpace(name) == "" {
		return New(code, "%s name cannot be empty", kind)
	}

	if len(name) > maxNameLength {
		return New(code, "%s name too long (max %d characters): %q", kind, maxNameLength, name)
	}

	for _, r := range name {
		if unicode.IsControl(r) {
			return New(code, "%s name contains invalid control characters: %q", kind, name)
		}
	}

	if i := strings.IndexAny(name, reservedNameChars); i >= 0 {
		return New(code, "%s name %q contains reserved character %q", kind, name, name[i])
	}

	return nil
}

// ValidateFieldName validates a record field referenced by a definition file.
func ValidateFieldName(field string) error {
	if strings.TrimSpace(field) == "" {
		return New(ErrCodeInvalidDefinition, "field name cannot be empty")
	}
	if len(field) > maxNameLength {
		return New(ErrCodeInvalidDefinition, "field name too long (max %d characters)", maxNameLength)
	}
	for _, r := range field {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidDefinition, "field name contains invalid control characters")
		}
	}
	return nil
}

// ValidateFormat checks that format is one of allowed.
func ValidateFormat(format string, allowed []string) error {
	if format == "" {
		return New(ErrCodeInvalidFormat, "format cannot be empty")
	}
	if !slices.Contains(allowed, format) {
		return New(ErrCodeInvalidFormat, "unsupported format %q (want one of %s)", format, strings.Join(allowed, ", "))
	}
	return nil
}
