package errors

import (
	"regexp"
	"strings"
	"unicode"
)

// maxIDLength bounds tile ids, group names and store keys.
const maxIDLength = 256

// ValidateTileID validates a tile identifier for safety and correctness.
// Tile ids end up in seam diagnostics, store keys and URLs, so the rules are
// conservative:
//   - No empty ids
//   - No control characters or null bytes
//   - No whitespace
//   - Maximum length of 256 characters
func ValidateTileID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidTile, "tile id cannot be empty")
	}

	if len(id) > maxIDLength {
		return New(ErrCodeInvalidTile, "tile id too long (max %d characters)", maxIDLength)
	}

	for _, r := range id {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidTile, "tile id contains invalid control characters")
		}
		if unicode.IsSpace(r) {
			return New(ErrCodeInvalidTile, "tile id cannot contain whitespace: %q", id)
		}
	}

	return nil
}

// groupNameRegex matches valid group names.
var groupNameRegex = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._:-]*$`)

// ValidateGroupName validates a tile group name.
func ValidateGroupName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidInput, "group name cannot be empty")
	}
	if len(name) > maxIDLength {
		return New(ErrCodeInvalidInput, "group name too long (max %d characters)", maxIDLength)
	}
	if !groupNameRegex.MatchString(name) {
		return New(ErrCodeInvalidInput, "invalid group name: %q", name)
	}
	return nil
}

// ValidateStoreKey validates a persistence key.
// Keys become file names and database keys, so they must not be usable for
// path traversal.
//
// Validation rules:
//   - Key cannot be empty
//   - Maximum length of 256 characters
//   - No null bytes or control characters
//   - No path separators or traversal sequences (..)
func ValidateStoreKey(key string) error {
	if key == "" {
		return New(ErrCodeInvalidInput, "store key cannot be empty")
	}

	if len(key) > maxIDLength {
		return New(ErrCodeInvalidInput, "store key too long (max %d characters)", maxIDLength)
	}

	for _, r := range key {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "store key contains invalid characters")
		}
	}

	if strings.Contains(key, "..") {
		return New(ErrCodeInvalidInput, "store key cannot contain path traversal sequences (..)")
	}

	if strings.ContainsAny(key, "/\\") {
		return New(ErrCodeInvalidInput, "store key cannot contain path separators")
	}

	return nil
}
