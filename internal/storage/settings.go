package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"github.com/rs/zerolog"

	"github.com/Tiliavir/trivial-earnings-tracker/internal/model"
)

// SettingsFile stores settings as a single JSON document.
type SettingsFile struct {
	path string
	log  zerolog.Logger
	mu   sync.Mutex
}

// NewSettingsFile returns a settings store backed by path.
func NewSettingsFile(path string, log zerolog.Logger) *SettingsFile {
	return &SettingsFile{path: path, log: log}
}

// Load reads the settings. A missing file yields the defaults; missing fields
// keep their default values.
func (s *SettingsFile) Load(ctx context.Context) (model.Settings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	settings := model.DefaultSettings()
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return settings, nil
	}
	if err != nil {
		return settings, fmt.Errorf("storage error reading %s: %w", s.path, err)
	}
	if err := json.Unmarshal(data, &settings); err != nil {
		backupPath := s.path + ".corrupt"
		_ = os.Rename(s.path, backupPath)
		return model.DefaultSettings(), fmt.Errorf("corrupt JSON in %s (backed up to %s): %w", s.path, backupPath, err)
	}
	return settings.Normalize(), nil
}

// Save atomically replaces the stored settings.
func (s *SettingsFile) Save(ctx context.Context, settings model.Settings) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := json.MarshalIndent(settings.Normalize(), "", "  ")
	if err != nil {
		return fmt.Errorf("storage error marshalling settings: %w", err)
	}
	if err := writeAtomic(s.path, data); err != nil {
		return err
	}
	s.log.Debug().Str("path", s.path).Msg("settings saved")
	return nil
}
