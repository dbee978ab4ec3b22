package errors

import (
	"path/filepath"
	"slices"
	"strings"
	"unicode"
)

// maxFilenameLength bounds uploaded file names.
const maxFilenameLength = 255

// ValidateUploadFilename validates the name of an uploaded file for safety.
// It ensures the filename is a simple basename with one of the allowed
// extensions (compared case-insensitively, including the leading dot).
//
// The validation rules are intentionally conservative:
//   - No empty names
//   - No control characters or null bytes
//   - No path separators or traversal sequences
//   - No hidden files
//   - Maximum length of 255 characters
func ValidateUploadFilename(filename string, allowedExts ...string) error {
	if filename == "" {
		return New(ErrCodeInvalidFilename, "filename cannot be empty")
	}
	if len(filename) > maxFilenameLength {
		return New(ErrCodeInvalidFilename, "filename too long (max %d characters)", maxFilenameLength)
	}

	for _, r := range filename {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidFilename, "filename contains invalid control characters")
		}
	}

	if strings.ContainsAny(filename, "/\\") {
		return New(ErrCodeInvalidFilename, "filename cannot contain path separators")
	}
	if strings.Contains(filename, "..") {
		return New(ErrCodeInvalidFilename, "filename cannot contain path traversal sequences (..)")
	}
	if strings.HasPrefix(filename, ".") {
		return New(ErrCodeInvalidFilename, "filename cannot be a hidden file")
	}

	if len(allowedExts) > 0 {
		ext := strings.ToLower(filepath.Ext(filename))
		if !slices.Contains(allowedExts, ext) {
			return New(ErrCodeInvalidFilename, "unsupported file extension %q (allowed: %s)",
				ext, strings.Join(allowedExts, ", "))
		}
	}

	return nil
}

// ValidatePath validates a local file path passed on the command line.
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

// RequireColumns checks that every required column is present in header.
// It returns one ValidationError per missing column, in the order given by
// required, or nil when all are present.
func RequireColumns(header, required []string) []*ValidationError {
	present := make(map[string]bool, len(header))
	for _, h := range header {
		present[h] = true
	}

	var missing []*ValidationError
	for _, col := range required {
		if !present[col] {
			missing = append(missing, ColumnError(col, "required column is missing"))
		}
	}
	return missing
}
