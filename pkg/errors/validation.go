package errors

import (
	"net/url"
	"strings"
	"unicode"
)

const maxFilenameLength = 255

// ValidateFilename validates a filename received from a client before it is
// resolved against an output directory. It must be a plain basename:
//
//   - not empty, at most 255 bytes
//   - no control characters or null bytes
//   - no path separators (/ or \)
//   - not "." or "..", and not a hidden file
func ValidateFilename(name string) error {
	if name == "" {
		return New(ErrCodeInvalidInput, "filename cannot be empty")
	}
	if len(name) > maxFilenameLength {
		return New(ErrCodeInvalidPath, "filename too long (max %d characters)", maxFilenameLength)
	}
	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "filename contains invalid control characters")
		}
	}
	if strings.ContainsAny(name, `/\`) {
		return New(ErrCodeInvalidPath, "filename cannot contain path separators")
	}
	if strings.HasPrefix(name, ".") {
		return New(ErrCodeInvalidPath, "filename cannot start with a dot")
	}
	return nil
}

// ValidatePath validates a relative path below a served directory, such as
// "handler_graph_images/Sales.png".
//
// Validation rules:
//   - Path cannot be empty
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
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}

	if strings.HasPrefix(path, "/") {
		return New(ErrCodeInvalidPath, "path must be relative (cannot start with /)")
	}

	for _, seg := range strings.Split(path, "/") {
		if seg == ".." {
			return New(ErrCodeInvalidPath, "path cannot contain path traversal sequences (..)")
		}
	}

	if strings.Contains(path, "\\") {
		return New(ErrCodeInvalidPath, "path cannot contain backslashes")
	}

	return nil
}

// NormalizeBaseURL turns a host, host:port or URL into a service root URL
// without a trailing slash. Inputs without a scheme are assumed to be https.
func NormalizeBaseURL(raw string) (string, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return "", New(ErrCodeInvalidInput, "base URL cannot be empty")
	}
	if !strings.Contains(s, "://") {
		s = "https://" + s
	}

	u, err := url.Parse(s)
	if err != nil {
		return "", Wrap(ErrCodeInvalidInput, err, "invalid base URL %q", raw)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", New(ErrCodeInvalidInput, "base URL must use http or https scheme")
	}
	if u.Host == "" {
		return "", New(ErrCodeInvalidInput, "base URL %q has no host", raw)
	}
	return strings.TrimRight(u.String(), "/"), nil
}
