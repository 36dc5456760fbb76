// Package fsutil holds the permission defaults and small filesystem helpers
// used when staging datasets, extra files and archive members.
package fsutil

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/cperrin88/jsonfetch/pkg/errors"
)

// EnsureDir makes sure path is a directory, creating it and any missing
// parents with DirModeDefault. An existing non-directory at path is an
// ErrInvalidPath.
func EnsureDir(path string) error {
	info, err := os.Stat(path)
	if err == nil {
		if !info.IsDir() {
			return fmt.Errorf("%w: %s is not a directory", errors.ErrInvalidPath, path)
		}
		return nil
	}
	if err := os.MkdirAll(path, DirModeDefault); err != nil {
		return errors.Wrapf(err, "failed to create directory %s", path)
	}
	return nil
}

// EnsureFileDir creates the directory that will hold filePath. A bare file
// name lives in the working directory and needs nothing.
func EnsureFileDir(filePath string) error {
	dir := filepath.Dir(filePath)
	if dir == "." {
		return nil
	}
	return EnsureDir(dir)
}
