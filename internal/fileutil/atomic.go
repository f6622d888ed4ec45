// Package fileutil provides file system utilities.
package fileutil

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// AtomicFile is a file written under a temporary name in the destination
// directory and renamed into place on Commit. Readers see either the old
// file, no file, or the complete new file; never a partial export.
type AtomicFile struct {
	tmp  *os.File
	path string
	perm os.FileMode
}

// CreateAtomic starts an atomic write of filename
func CreateAtomic(filename string, perm os.FileMode) (*AtomicFile, error) {
	// Same directory so the rename stays on one filesystem
	tmp, err := os.CreateTemp(filepath.Dir(filename), filepath.Base(filename)+".tmp.*")
	if err != nil {
		return nil, fmt.Errorf("failed to create temp file: %w", err)
	}
	return &AtomicFile{tmp: tmp, path: filename, perm: perm}, nil
}

// Write appends to the pending file
func (a *AtomicFile) Write(p []byte) (int, error) {
	if a.tmp == nil {
		return 0, os.ErrClosed
	}
	return a.tmp.Write(p)
}

// Commit flushes the pending file to disk and renames it over the
// destination. On failure the temporary file is removed.
func (a *AtomicFile) Commit() error {
	if a.tmp == nil {
		return os.ErrClosed
	}
	tmp := a.tmp
	a.tmp = nil
	tmpPath := tmp.Name()

	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("failed to sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := os.Chmod(tmpPath, a.perm); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to set permissions: %w", err)
	}
	if err := os.Rename(tmpPath, a.path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to rename temp file: %w", err)
	}
	return nil
}

// Abort discards the pending file. It is a no-op after Commit, so it can
// be deferred unconditionally.
func (a *AtomicFile) Abort() {
	if a.tmp == nil {
		return
	}
	a.tmp.Close()
	os.Remove(a.tmp.Name())
	a.tmp = nil
}

// WriteFileAtomic streams fn's output to filename atomically
func WriteFileAtomic(filename string, perm os.FileMode, fn func(io.Writer) error) error {
	f, err := CreateAtomic(filename, perm)
	if err != nil {
		return err
	}
	defer f.Abort()

	if err := fn(f); err != nil {
		return err
	}
	return f.Commit()
}
