// Package adapter contains infrastructure adapters for the placefold CLI: the
// place-file XML model, filesystem access, metadata storage, configuration and
// folder watching.
package adapter

import (
	"crypto/sha256"
	"fmt"
	"io"
	"os"
	"path/filepath"

	m "github.com/mouse-blink/placefold/internal/model"
)

// ProjectFSAdapter abstracts filesystem-specific operations that the domain
// layer relies on when exporting and rebuilding a folder. It hides direct `os`
// access so the workflow logic can be tested without touching the disk.
//
//nolint:interfacebloat // A richer interface keeps workflow logic decoupled from os/fs.
type ProjectFSAdapter interface {
	// Walk traverses the provided root path. When recursive is false the
	// implementation should limit itself to the root directory (no sub-dirs).
	Walk(root m.Path, recursive bool, fn FilepathWalkFunc) error

	// ReadFile loads a file from disk and returns its contents.
	ReadFile(path m.Path) ([]byte, error)

	// HashFile returns the SHA-256 fingerprint of the file at path.
	HashFile(path m.Path) (string, error)

	// FileInfo returns metadata for a path so the domain can check existence or
	// distinguish between files and directories when necessary.
	FileInfo(path m.Path) (os.FileInfo, error)

	// MkdirAll creates a directory and any missing parents.
	MkdirAll(path m.Path) error

	// RemoveAll removes a directory and all its contents.
	RemoveAll(path m.Path) error

	// WriteFile replaces the file at path. Readers never observe a partially
	// written file.
	WriteFile(path m.Path, content []byte, perm os.FileMode) error

	// RelPath returns the relative path from base to target.
	RelPath(base, target m.Path) (m.Path, error)

	// JoinPath joins path elements into a single path.
	JoinPath(elem ...string) m.Path
}

// FilepathWalkFunc mirrors the callback shape used by filepath.Walk. It is
// defined here to avoid leaking the standard-library type directly into the
// domain layer.
type FilepathWalkFunc func(path string, info os.FileInfo, err error) error

// LocalProjectFSAdapter implements ProjectFSAdapter on the local disk.
type LocalProjectFSAdapter struct{}

// NewLocalProjectFSAdapter constructs a LocalProjectFSAdapter instance ready to
// be wired into the workflow.
func NewLocalProjectFSAdapter() *LocalProjectFSAdapter {
	return &LocalProjectFSAdapter{}
}

// Walk iterates over files under root, optionally descending into subdirectories.
func (a *LocalProjectFSAdapter) Walk(root m.Path, recursive bool, fn FilepathWalkFunc) error {
	rootStr := string(root)

	return filepath.Walk(rootStr, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return fn(path, info, err)
		}

		if info.IsDir() && !recursive && path != rootStr {
			return filepath.SkipDir
		}

		return fn(path, info, nil)
	})
}

// ReadFile loads file contents from disk.
func (a *LocalProjectFSAdapter) ReadFile(path m.Path) ([]byte, error) {
	return os.ReadFile(string(path))
}

// HashFile returns the SHA-256 hash of the file at the provided path.
func (a *LocalProjectFSAdapter) HashFile(path m.Path) (string, error) {
	f, err := os.Open(string(path))
	if err != nil {
		return "", err
	}

	defer func() {
		_ = f.Close()
	}()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", err
	}

	return fmt.Sprintf("%x", h.Sum(nil)), nil
}

// FileInfo returns os.FileInfo metadata for the given path.
func (a *LocalProjectFSAdapter) FileInfo(path m.Path) (os.FileInfo, error) {
	return os.Stat(string(path))
}

// MkdirAll creates path and its parents.
func (a *LocalProjectFSAdapter) MkdirAll(path m.Path) error {
	return os.MkdirAll(string(path), 0o750)
}

// RemoveAll removes a directory and all its contents.
func (a *LocalProjectFSAdapter) RemoveAll(path m.Path) error {
	return os.RemoveAll(string(path))
}

// WriteFile writes content to a temporary sibling and renames it over path.
func (a *LocalProjectFSAdapter) WriteFile(path m.Path, content []byte, perm os.FileMode) error {
	dir, base := filepath.Split(string(path))
	if dir == "" {
		dir = "."
	}

	tmp, err := os.CreateTemp(dir, "."+base+".tmp-*")
	if err != nil {
		return err
	}

	tmpName := tmp.Name()

	defer func() {
		_ = os.Remove(tmpName)
	}()

	if _, err := tmp.Write(content); err != nil {
		_ = tmp.Close()
		return err
	}

	if err := tmp.Close(); err != nil {
		return err
	}

	if err := os.Chmod(tmpName, perm); err != nil {
		return err
	}

	return os.Rename(tmpName, string(path))
}

// RelPath returns the relative path from base to target.
func (a *LocalProjectFSAdapter) RelPath(base, target m.Path) (m.Path, error) {
	rel, err := filepath.Rel(string(base), string(target))
	if err != nil {
		return "", err
	}

	return m.Path(rel), nil
}

// JoinPath joins path elements into a single path.
func (a *LocalProjectFSAdapter) JoinPath(elem ...string) m.Path {
	return m.Path(filepath.Join(elem...))
}
