package fsutil

import (
	"errors"
	"fmt"
	"io"
	"os"
	"syscall"
)

// Move puts the finished file src at dst, replacing whatever dst held. The
// rename is atomic when both sit on one filesystem; across filesystems the
// content is copied into dst with src's mode and src is removed afterwards.
func Move(src, dst string) error {
	if src == "" || dst == "" {
		return fmt.Errorf("move needs both a source and a destination")
	}

	info, err := os.Stat(src)
	if err != nil {
		return fmt.Errorf("failed to stat %s: %w", src, err)
	}
	if !info.Mode().IsRegular() {
		return fmt.Errorf("cannot move %s: not a regular file", src)
	}
	if err := EnsureFileDir(dst); err != nil {
		return err
	}

	err = os.Rename(src, dst)
	switch {
	case err == nil:
		return nil
	case !errors.Is(err, syscall.EXDEV):
		return fmt.Errorf("failed to rename %s to %s: %w", src, dst, err)
	}

	if err := copyFile(src, dst, info.Mode().Perm()); err != nil {
		return err
	}
	if err := os.Remove(src); err != nil {
		return fmt.Errorf("copied %s but could not remove it: %w", src, err)
	}
	return nil
}

// copyFile writes the content of src to dst with the given permissions.
// A partially written dst is removed.
func copyFile(src, dst string, perm os.FileMode) (err error) {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", src, err)
	}
	defer func() { _ = in.Close() }()

	out, err := CreateFilePerm(dst, perm)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", dst, err)
	}
	defer func() {
		if cerr := out.Close(); err == nil && cerr != nil {
			err = fmt.Errorf("failed to close %s: %w", dst, cerr)
		}
		if err != nil {
			_ = os.Remove(dst)
		}
	}()

	if _, err := io.Copy(out, in); err != nil {
		return fmt.Errorf("failed to copy %s to %s: %w", src, dst, err)
	}
	// O_TRUNC on an existing file keeps its old mode.
	if err := out.Chmod(perm); err != nil {
		return fmt.Errorf("failed to set mode on %s: %w", dst, err)
	}
	return nil
}

// CreateFilePerm opens name for writing, truncating it or creating it with perm.
func CreateFilePerm(name string, perm os.FileMode) (*os.File, error) {
	return os.OpenFile(name, os.O_RDWR|os.O_CREATE|os.O_TRUNC, perm)
}
