package app

import (
	"fmt"
	"os"
	"path/filepath"
)

const dbFileName = "fitlog.db"

// dataDir resolves the per-user directory fitlog keeps its state in.
// FITLOG_HOME overrides the platform default, which keeps tests and
// portable installs away from the real config dir.
func dataDir() (string, error) {
	if home := os.Getenv("FITLOG_HOME"); home != "" {
		return home, nil
	}
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve user config dir: %w", err)
	}
	return filepath.Join(base, "fitlog"), nil
}

// DefaultDBPath is the database location used when neither the --db
// flag nor FITLOG_DB is set.
func DefaultDBPath() (string, error) {
	dir, err := dataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, dbFileName), nil
}

// EnsureDBDir creates the parent directory of the database file.
func EnsureDBDir(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create db directory: %w", err)
	}
	return nil
}
