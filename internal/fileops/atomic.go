// file: internal/fileops/atomic.go
// version: 2.0.0
// guid: 5b7d9f1a-3c5e-4a7b-8d9f-1a3c5e7b9d2f

package fileops

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// WriteFunc streams file content into w.
type WriteFunc func(w io.Writer) error

// WriteFile truncates path and writes it in place. A failure part way
// through leaves a partially written file behind.
func WriteFile(path string, perm os.FileMode, write WriteFunc) error {
	file, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, perm)
	if err != nil {
		return err
	}
	defer file.Close()

	if err := write(file); err != nil {
		return err
	}
	return file.Close()
}

// WriteFileAtomic stages the content in a temp file next to path, syncs it
// and renames it over path. The temp file is removed on every failure.
func WriteFileAtomic(path string, perm os.FileMode, write WriteFunc) (err error) {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmp.Name()

	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmpPath)
		}
	}()

	if err = write(tmp); err != nil {
		return err
	}
	if err = tmp.Sync(); err != nil {
		return fmt.Errorf("failed to sync temp file: %w", err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err = os.Chmod(tmpPath, perm); err != nil {
		return fmt.Errorf("failed to set permissions: %w", err)
	}
	if err = os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("failed to rename temp file: %w", err)
	}
	return nil
}
