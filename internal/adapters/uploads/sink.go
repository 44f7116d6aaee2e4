// Package uploads stores files posted to /upload.
package uploads

import (
	"context"
	"errors"
	"io"
	"path/filepath"
)

// Sink stores a file under its original name. An existing file with the same
// name is replaced.
type Sink interface {
	Save(ctx context.Context, name string, r io.Reader, size int64, contentType string) error
	Kind() string
}

var ErrBadName = errors.New("uploads: unusable file name")

// cleanName drops any directory part the client sent along with the name.
func cleanName(name string) (string, error) {
	base := filepath.Base(filepath.Clean("/" + name))
	if base == "/" || base == "." || base == ".." {
		return "", ErrBadName
	}
	return base, nil
}
