package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"github.com/Tiliavir/trivial-earnings-tracker/internal/model"
	"github.com/Tiliavir/trivial-earnings-tracker/internal/timecalc"
)

// FileStore keeps one JSON file per day under base/YYYY/MM/DD.json.
type FileStore struct {
	base string
	log  zerolog.Logger
	mu   sync.Mutex
}

// NewFileStore returns a store rooted at base. Directories are created lazily.
func NewFileStore(base string, log zerolog.Logger) *FileStore {
	return &FileStore{base: base, log: log}
}

// dayFilePath returns the path for the given day key's JSON file.
func dayFilePath(base, dayKey string) (string, error) {
	t, err := timecalc.ParseDayKeyStrict(dayKey)
	if err != nil {
		return "", err
	}
	return filepath.Join(base, t.Format("2006"), t.Format("01"), t.Format("02")+".json"), nil
}

// LoadDay loads the DayFile for the given day key. Returns an empty DayFile if not found.
func LoadDay(base, dayKey string) (model.DayFile, error) {
	path, err := dayFilePath(base, dayKey)
	if err != nil {
		return model.DayFile{}, err
	}
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return model.DayFile{Date: dayKey, Entries: []model.Entry{}}, nil
	}
	if err != nil {
		return model.DayFile{}, fmt.Errorf("storage error reading %s: %w", path, err)
	}

	var df model.DayFile
	if err := json.Unmarshal(data, &df); err != nil {
		// Back up corrupt file and abort.
		backupPath := path + ".corrupt"
		_ = os.Rename(path, backupPath)
		return model.DayFile{}, fmt.Errorf("corrupt JSON in %s (backed up to %s): %w", path, backupPath, err)
	}
	return df, nil
}

// SaveDay atomically writes df to its day file. A day without entries is removed.
func SaveDay(base string, df model.DayFile) error {
	path, err := dayFilePath(base, df.Date)
	if err != nil {
		return err
	}
	if len(df.Entries) == 0 {
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("storage error removing %s: %w", path, err)
		}
		return nil
	}

	data, err := json.MarshalIndent(df, "", "  ")
	if err != nil {
		return fmt.Errorf("storage error marshalling JSON: %w", err)
	}
	return writeAtomic(path, data)
}

// List walks every day file under the base directory.
func (s *FileStore) List(ctx context.Context) ([]model.Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.list(ctx)
}

func (s *FileStore) list(ctx context.Context) ([]model.Entry, error) {
	keys, err := s.dayKeys(ctx)
	if err != nil {
		return nil, err
	}
	entries := []model.Entry{}
	for _, key := range keys {
		df, err := LoadDay(s.base, key)
		if err != nil {
			return nil, err
		}
		entries = append(entries, df.Entries...)
	}
	s.log.Debug().Int("days", len(keys)).Int("entries", len(entries)).Msg("listed day files")
	return entries, nil
}

// dayKeys returns the sorted keys of every day file on disk.
func (s *FileStore) dayKeys(ctx context.Context) ([]string, error) {
	var keys []string
	err := filepath.WalkDir(s.base, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if os.IsNotExist(err) && path == s.base {
				return fs.SkipAll
			}
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if key, ok := dayKeyFromPath(s.base, path); ok {
			keys = append(keys, key)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("storage error listing %s: %w", s.base, err)
	}
	sort.Strings(keys)
	return keys, nil
}

// dayKeyFromPath maps base/YYYY/MM/DD.json back to its day key.
func dayKeyFromPath(base, path string) (string, bool) {
	rel, err := filepath.Rel(base, path)
	if err != nil {
		return "", false
	}
	parts := strings.Split(filepath.ToSlash(rel), "/")
	if len(parts) != 3 || !strings.HasSuffix(parts[2], ".json") {
		return "", false
	}
	key := parts[0] + "-" + parts[1] + "-" + strings.TrimSuffix(parts[2], ".json")
	if _, err := timecalc.ParseDayKeyStrict(key); err != nil {
		return "", false
	}
	return key, true
}

// Add appends e to its day file.
func (s *FileStore) Add(ctx context.Context, e model.Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	df, err := LoadDay(s.base, e.DayKey)
	if err != nil {
		return err
	}
	df.Date = e.DayKey
	df.Entries = append(df.Entries, e)
	if err := SaveDay(s.base, df); err != nil {
		return err
	}
	s.log.Debug().Str("id", e.ID).Str("date", e.DayKey).Msg("entry added")
	return nil
}

// Update patches an entry in place, moving it to another day file when its date changes.
func (s *FileStore) Update(ctx context.Context, id string, patch model.EntryPatch) (model.Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	df, idx, err := s.find(ctx, id)
	if err != nil {
		return model.Entry{}, err
	}
	updated := patch.Apply(df.Entries[idx])
	if updated.DayKey == df.Date {
		df.Entries[idx] = updated
		if err := SaveDay(s.base, df); err != nil {
			return model.Entry{}, err
		}
		return updated, nil
	}

	target, err := LoadDay(s.base, updated.DayKey)
	if err != nil {
		return model.Entry{}, err
	}
	target.Date = updated.DayKey
	target.Entries = append(target.Entries, updated)

	// Take the entry out of its old day first; a failed move must not leave
	// two copies under one id.
	source := model.DayFile{Date: df.Date, Entries: make([]model.Entry, 0, len(df.Entries)-1)}
	source.Entries = append(source.Entries, df.Entries[:idx]...)
	source.Entries = append(source.Entries, df.Entries[idx+1:]...)
	if err := SaveDay(s.base, source); err != nil {
		return model.Entry{}, err
	}
	if err := SaveDay(s.base, target); err != nil {
		if rerr := SaveDay(s.base, df); rerr != nil {
			s.log.Error().Err(rerr).Str("id", id).Str("date", df.Date).Msg("failed to restore entry after aborted move")
		}
		return model.Entry{}, err
	}
	s.log.Debug().Str("id", id).Str("from", df.Date).Str("to", updated.DayKey).Msg("entry moved")
	return updated, nil
}

// Remove deletes the entry with the given id.
func (s *FileStore) Remove(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	df, idx, err := s.find(ctx, id)
	if err != nil {
		return err
	}
	df.Entries = append(df.Entries[:idx], df.Entries[idx+1:]...)
	if err := SaveDay(s.base, df); err != nil {
		return err
	}
	s.log.Debug().Str("id", id).Str("date", df.Date).Msg("entry removed")
	return nil
}

// Close is a no-op; every write is flushed immediately.
func (s *FileStore) Close() error { return nil }

// find returns the day file holding id and the entry's index in it.
func (s *FileStore) find(ctx context.Context, id string) (model.DayFile, int, error) {
	keys, err := s.dayKeys(ctx)
	if err != nil {
		return model.DayFile{}, 0, err
	}
	for _, key := range keys {
		df, err := LoadDay(s.base, key)
		if err != nil {
			return model.DayFile{}, 0, err
		}
		df.Date = key
		for i := range df.Entries {
			if df.Entries[i].ID == id {
				return df, i, nil
			}
		}
	}
	return model.DayFile{}, 0, fmt.Errorf("%w: %s", ErrNotFound, id)
}
