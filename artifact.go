package docdeck

import (
	"fmt"
	"os"
	"path/filepath"
)

// AtomicFile is an output file that only appears at its destination once
// Commit succeeds. Writes go to a temp file in the same directory, so the
// final rename never crosses file systems.
//
// Always defer Close; after a successful Commit it is a no-op.
type AtomicFile struct {
	f    *os.File
	path string
	done bool
}

// CreateAtomic creates the parent directory of path and opens a temp file
// next to it.
func CreateAtomic(path string) (*AtomicFile, error) {
	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return nil, fmt.Errorf("failed to create directory: %w", err)
		}
	}
	f, err := os.CreateTemp(dir, "."+filepath.Base(path)+"-*.tmp")
	if err != nil {
		return nil, fmt.Errorf("failed to create file: %w", err)
	}
	return &AtomicFile{f: f, path: path}, nil
}

// Write writes to the temp file.
func (a *AtomicFile) Write(p []byte) (int, error) {
	return a.f.Write(p)
}

// Name returns the destination path.
func (a *AtomicFile) Name() string { return a.path }

// Commit flushes the temp file and renames it onto the destination.
func (a *AtomicFile) Commit() error {
	if a.done {
		return fmt.Errorf("%s: already closed", a.path)
	}
	a.done = true
	tmp := a.f.Name()
	if err := a.f.Sync(); err != nil {
		a.f.Close()
		os.Remove(tmp)
		return fmt.Errorf("failed to sync %s: %w", a.path, err)
	}
	if err := a.f.Close(); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("failed to close %s: %w", a.path, err)
	}
	if err := os.Chmod(tmp, 0644); err != nil {
		os.Remove(tmp)
		return err
	}
	if err := os.Rename(tmp, a.path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("failed to move %s into place: %w", a.path, err)
	}
	return nil
}

// Close discards the temp file unless Commit already ran.
func (a *AtomicFile) Close() error {
	if a.done {
		return nil
	}
	a.done = true
	a.f.Close()
	return os.Remove(a.f.Name())
}

// saveAtomic writes the output of write to path, leaving any existing file
// untouched when write fails.
func saveAtomic(path string, write func(*AtomicFile) error) error {
	out, err := CreateAtomic(path)
	if err != nil {
		return err
	}
	defer out.Close()
	if err := write(out); err != nil {
		return err
	}
	return out.Commit()
}
