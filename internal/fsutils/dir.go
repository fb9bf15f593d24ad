// Package fsutils implements the filesystem side of cloning: the destination
// safety checks shared by the remote and local paths, and the recursive copy
// used for local sources.
package fsutils

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/xsukax/go-gitsnap/internal/errors"
)

// EnsureEmptyDir validates the clone destination. The destination must be
// either nonexistent (it is created, with parents) or an existing empty
// directory. Existing content is never deleted.
func EnsureEmptyDir(dest string) error {
	info, err := os.Stat(dest)
	if err == nil {
		if !info.IsDir() {
			return fmt.Errorf("%w: destination path '%s' exists and is a file", errors.ErrDestinationConflict, dest)
		}
		empty, err := isEmptyDir(dest)
		if err != nil {
			return fmt.Errorf("%w: cannot read directory '%s': %v", errors.ErrIOFailure, dest, err)
		}
		if !empty {
			return fmt.Errorf("%w: destination path '%s' already exists and is not empty", errors.ErrDestinationConflict, dest)
		}
		return nil
	}
	if !os.IsNotExist(err) {
		return fmt.Errorf("%w: cannot stat '%s': %v", errors.ErrIOFailure, dest, err)
	}

	if err := os.MkdirAll(dest, 0755); err != nil {
		return fmt.Errorf("%w: cannot create directory '%s': %v", errors.ErrIOFailure, dest, err)
	}
	return nil
}

func isEmptyDir(dir string) (bool, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return false, err
	}
	return len(entries) == 0, nil
}

// ExpandUser expands a leading ~ to the current user's home directory.
func ExpandUser(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, strings.TrimPrefix(path, "~"))
	}
	return path
}

// CopyTree recursively copies the directory src to dest, preserving file
// modes and symlinks. Nothing is filtered out; a .git subdirectory is copied
// like any other. dest must not exist.
func CopyTree(src, dest string) error {
	info, err := os.Lstat(src)
	if err != nil {
		return fmt.Errorf("%w: cannot stat '%s': %v", errors.ErrIOFailure, src, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%w: source '%s' is not a directory", errors.ErrIOFailure, src)
	}

	if err := os.MkdirAll(dest, info.Mode().Perm()); err != nil {
		return fmt.Errorf("%w: cannot create directory '%s': %v", errors.ErrIOFailure, dest, err)
	}

	entries, err := os.ReadDir(src)
	if err != nil {
		return fmt.Errorf("%w: cannot read directory '%s': %v", errors.ErrIOFailure, src, err)
	}

	for _, entry := range entries {
		srcPath := filepath.Join(src, entry.Name())
		destPath := filepath.Join(dest, entry.Name())

		entryInfo, err := os.Lstat(srcPath)
		if err != nil {
			return fmt.Errorf("%w: cannot stat '%s': %v", errors.ErrIOFailure, srcPath, err)
		}

		switch {
		case entryInfo.Mode()&os.ModeSymlink != 0:
			if err := copySymlink(srcPath, destPath); err != nil {
				return err
			}
		case entryInfo.IsDir():
			if err := CopyTree(srcPath, destPath); err != nil {
				return err
			}
		default:
			if err := CopyFile(srcPath, destPath, entryInfo.Mode().Perm()); err != nil {
				return err
			}
		}
	}

	return nil
}

// CopyFile copies a single regular file, creating dest with the given mode.
func CopyFile(src, dest string, mode os.FileMode) error {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("%w: cannot open '%s': %v", errors.ErrIOFailure, src, err)
	}
	defer in.Close()

	out, err := os.OpenFile(dest, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, mode)
	if err != nil {
		return fmt.Errorf("%w: cannot create '%s': %v", errors.ErrIOFailure, dest, err)
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return fmt.Errorf("%w: cannot copy '%s': %v", errors.ErrIOFailure, src, err)
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("%w: cannot write '%s': %v", errors.ErrIOFailure, dest, err)
	}
	return nil
}

func copySymlink(src, dest string) error {
	target, err := os.Readlink(src)
	if err != nil {
		return fmt.Errorf("%w: cannot read symlink '%s': %v", errors.ErrIOFailure, src, err)
	}
	if err := os.Symlink(target, dest); err != nil {
		return fmt.Errorf("%w: cannot create symlink '%s': %v", errors.ErrIOFailure, dest, err)
	}
	return nil
}
