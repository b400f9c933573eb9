package store

import (
	"fmt"
	"os"
	"path/filepath"
)

const (
	DefaultDBFile = "todos.db"
)

// EnsureDir creates the containing directory for the store, parents included.
// An already-existing directory is success, not an error.
func EnsureDir(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create data directory %s: %w", dir, err)
	}
	return nil
}

// CheckExists verifies if the datastore exists at the given path.
// Returns true if the store exists, false otherwise.
func CheckExists(dbPath string) (bool, error) {
	info, err := os.Stat(dbPath)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("failed to check store existence: %w", err)
	}
	if info.IsDir() {
		return false, fmt.Errorf("datastore path is a directory, expected file: %s", dbPath)
	}
	return true, nil
}

// DBPath returns the full path to the database file within dataDir.
func DBPath(dataDir string) string {
	return filepath.Join(dataDir, DefaultDBFile)
}
