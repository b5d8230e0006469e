package storage

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/Tiliavir/trivial-earnings-tracker/internal/model"
)

// ErrNotFound is returned when no entry carries the requested id.
var ErrNotFound = errors.New("entry not found")

// EntryStore persists time entries.
type EntryStore interface {
	// List returns every entry ordered by day key, then by insertion.
	List(ctx context.Context) ([]model.Entry, error)
	Add(ctx context.Context, e model.Entry) error
	// Update applies patch to the entry with the given id and returns the result.
	Update(ctx context.Context, id string, patch model.EntryPatch) (model.Entry, error)
	Remove(ctx context.Context, id string) error
	Close() error
}

// SettingsStore persists the single settings record.
type SettingsStore interface {
	Load(ctx context.Context) (model.Settings, error)
	Save(ctx context.Context, s model.Settings) error
}

// BaseDir returns the root data directory (~/.tet).
func BaseDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	return filepath.Join(home, ".tet"), nil
}

// writeAtomic writes data to a temp file next to path and renames it into place.
func writeAtomic(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("storage error creating directories: %w", err)
	}
	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0o600); err != nil {
		return fmt.Errorf("storage error writing temp file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("storage error renaming temp file: %w", err)
	}
	return nil
}
