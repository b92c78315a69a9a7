package fileutil

import (
	"fmt"
	"os"
	"path/filepath"
)

// dirMode is the permission of directories created for sinks and lock files.
const dirMode = 0o755

// EnsureDir creates path and any missing parents. An existing directory is
// not an error.
func EnsureDir(path string) error {
	if err := os.MkdirAll(path, dirMode); err != nil {
		return fmt.Errorf("create directory %s: %w", path, err)
	}
	return nil
}

// EnsureDirForFile creates the directory that will hold filePath, so that an
// operator can name an output or lock file in a directory that does not exist
// yet.
func EnsureDirForFile(filePath string) error {
	if err := EnsureDir(filepath.Dir(filePath)); err != nil {
		return fmt.Errorf("ensure dir for %s: %w", filePath, err)
	}
	return nil
}
