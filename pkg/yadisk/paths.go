// Package yadisk (paths.go) normalises remote paths, validates names sent to
// the API and guards local files written by downloads.
package yadisk

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"
)

// Local path errors.
var (
	ErrPathTraversal = errors.New("path traversal detected")
	ErrFileExists    = errors.New("file already exists")
)

// Schemas understood by EnsurePathHasSchema.
const (
	SchemaDisk  = "disk"
	SchemaTrash = "trash"
)

var operationLinkPrefixes = []string{
	"https://cloud-api.yandex.net/v1/disk/operations/",
	"http://cloud-api.yandex.net/v1/disk/operations/",
}

// EnsurePathHasSchema prefixes path with "disk:/" or "trash:/" unless it
// already carries one. Without the prefix the API rejects names containing
// ':'. A bare "disk:" or "trash:" is a file name, not a schema.
func EnsurePathHasSchema(path, schema string) string {
	if schema == "" {
		schema = SchemaDisk
	}
	if path == "disk:" || path == "trash:" {
		return schema + ":/" + path
	}
	if strings.HasPrefix(path, "disk:/") || strings.HasPrefix(path, "trash:/") {
		return path
	}
	if strings.HasPrefix(path, "/") {
		return schema + ":" + path
	}
	return schema + ":/" + path
}

// IsOperationLink reports whether link points at the operations endpoint.
func IsOperationLink(link string) bool {
	for _, prefix := range operationLinkPrefixes {
		if strings.HasPrefix(link, prefix) {
			return true
		}
	}
	return false
}

// ValidateFileName checks a new name for Rename. It must be a single path
// component.
func ValidateFileName(name string) error {
	switch {
	case name == "":
		return fmt.Errorf("%w: name cannot be empty", ErrInvalidArgument)
	case name == "." || name == "..":
		return fmt.Errorf("%w: name cannot be %q", ErrInvalidArgument, name)
	case strings.Contains(name, "/"):
		return fmt.Errorf("%w: name cannot contain '/'", ErrInvalidArgument)
	case strings.Contains(name, "\x00"):
		return fmt.Errorf("%w: null bytes not allowed in name", ErrInvalidArgument)
	case utf8.RuneCountInString(name) > MaxFileNameLength:
		return fmt.Errorf("%w: name too long (max %d characters)", ErrInvalidArgument, MaxFileNameLength)
	}
	return nil
}

// parentPath returns the directory part of a schema-qualified path.
func parentPath(path string) string {
	i := strings.LastIndex(path, "/")
	if i < 0 {
		return path
	}
	parent := path[:i]
	if strings.HasSuffix(parent, ":") {
		parent += "/"
	}
	return parent
}

// SanitizeLocalPath cleans a local path and makes it absolute.
func SanitizeLocalPath(path string) (string, error) {
	if path == "" {
		return "", fmt.Errorf("%w: path cannot be empty", ErrInvalidArgument)
	}
	if strings.Contains(path, "\x00") {
		return "", fmt.Errorf("%w: null bytes not allowed in path", ErrInvalidArgument)
	}
	for _, part := range strings.Split(filepath.ToSlash(path), "/") {
		if part == ".." {
			return "", fmt.Errorf("%w: %s", ErrPathTraversal, path)
		}
	}
	abs, err := filepath.Abs(filepath.Clean(path))
	if err != nil {
		return "", fmt.Errorf("%w: resolving %s: %v", ErrInvalidArgument, path, err)
	}
	return abs, nil
}

// CreateLocalFile opens localPath for writing, creating parent directories.
// An existing file is truncated only when overwrite is true.
func CreateLocalFile(localPath string, overwrite bool) (*os.File, error) {
	sanitized, err := SanitizeLocalPath(localPath)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(filepath.Dir(sanitized), 0o755); err != nil {
		return nil, fmt.Errorf("creating parent directory: %w", err)
	}
	flags := os.O_CREATE | os.O_WRONLY | os.O_TRUNC
	if !overwrite {
		flags |= os.O_EXCL
	}
	f, err := os.OpenFile(sanitized, flags, 0o644)
	if err != nil {
		if os.IsExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrFileExists, sanitized)
		}
		return nil, fmt.Errorf("creating file: %w", err)
	}
	return f, nil
}
