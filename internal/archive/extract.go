// Package archive unpacks GitHub snapshot archives. Snapshots wrap the whole
// tree in a single <repo>-<branch> directory; extraction validates that layout
// in a scratch directory before anything touches the real destination.
package archive

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/xsukax/go-gitsnap/internal/errors"
	"github.com/xsukax/go-gitsnap/internal/fsutils"
)

// ExtractSnapshot parses data as a ZIP archive, extracts it into a scratch
// directory, and moves the contents of its single top-level directory into
// dest. The scratch directory is removed on every exit path. On a layout
// violation dest is left untouched.
func ExtractSnapshot(data []byte, dest string) error {
	reader, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return fmt.Errorf("%w: downloaded file is not a valid ZIP archive", errors.ErrCorruptArchive)
	}

	scratch, err := os.MkdirTemp("", "gitsnap-*")
	if err != nil {
		return fmt.Errorf("%w: failed to create scratch directory: %v", errors.ErrIOFailure, err)
	}
	defer os.RemoveAll(scratch)

	for _, f := range reader.File {
		if err := extractEntry(f, scratch); err != nil {
			return err
		}
	}

	root, err := singleRootDir(scratch)
	if err != nil {
		return err
	}

	entries, err := os.ReadDir(root)
	if err != nil {
		return fmt.Errorf("%w: cannot read extracted root: %v", errors.ErrIOFailure, err)
	}
	for _, entry := range entries {
		if err := moveEntry(filepath.Join(root, entry.Name()), filepath.Join(dest, entry.Name())); err != nil {
			return err
		}
	}

	return nil
}

// extractEntry writes a single archive entry under dir, rejecting entries
// whose resolved path escapes it.
func extractEntry(f *zip.File, dir string) error {
	target := filepath.Join(dir, filepath.FromSlash(f.Name))
	if !strings.HasPrefix(target, filepath.Clean(dir)+string(os.PathSeparator)) {
		return fmt.Errorf("%w: archive entry '%s' escapes the extraction root", errors.ErrCorruptArchive, f.Name)
	}

	if f.FileInfo().IsDir() {
		if err := os.MkdirAll(target, 0755); err != nil {
			return fmt.Errorf("%w: cannot create directory '%s': %v", errors.ErrIOFailure, target, err)
		}
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
		return fmt.Errorf("%w: cannot create directory '%s': %v", errors.ErrIOFailure, filepath.Dir(target), err)
	}

	rc, err := f.Open()
	if err != nil {
		return fmt.Errorf("%w: cannot read archive entry '%s'", errors.ErrCorruptArchive, f.Name)
	}
	defer rc.Close()

	mode := f.Mode().Perm()
	if mode == 0 {
		mode = 0644
	}
	out, err := os.OpenFile(target, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, mode)
	if err != nil {
		return fmt.Errorf("%w: cannot create '%s': %v", errors.ErrIOFailure, target, err)
	}

	if _, err := io.Copy(out, rc); err != nil {
		out.Close()
		return fmt.Errorf("%w: cannot extract '%s': %v", errors.ErrIOFailure, f.Name, err)
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("%w: cannot write '%s': %v", errors.ErrIOFailure, target, err)
	}
	return nil
}

// singleRootDir enforces the snapshot layout invariant: exactly one top-level
// directory wrapping the repository tree.
func singleRootDir(scratch string) (string, error) {
	entries, err := os.ReadDir(scratch)
	if err != nil {
		return "", fmt.Errorf("%w: cannot read scratch directory: %v", errors.ErrIOFailure, err)
	}

	var roots []string
	for _, entry := range entries {
		if entry.IsDir() {
			roots = append(roots, entry.Name())
		}
	}
	if len(roots) != 1 {
		return "", fmt.Errorf("%w: expected single root directory, found %d", errors.ErrUnexpectedLayout, len(roots))
	}
	return filepath.Join(scratch, roots[0]), nil
}

// moveEntry relocates one extracted entry into the destination. Rename is
// tried first; the scratch directory often sits on a different filesystem
// than the destination, in which case we fall back to copy and delete.
func moveEntry(src, dest string) error {
	if err := os.Rename(src, dest); err == nil {
		return nil
	}

	info, err := os.Lstat(src)
	if err != nil {
		return fmt.Errorf("%w: cannot stat '%s': %v", errors.ErrIOFailure, src, err)
	}
	if info.IsDir() {
		if err := fsutils.CopyTree(src, dest); err != nil {
			return err
		}
	} else {
		if err := fsutils.CopyFile(src, dest, info.Mode().Perm()); err != nil {
			return err
		}
	}
	return os.RemoveAll(src)
}
