package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/Tiliavir/trivial-earnings-tracker/internal/config"
	"github.com/Tiliavir/trivial-earnings-tracker/internal/logger"
	"github.com/Tiliavir/trivial-earnings-tracker/internal/model"
	"github.com/Tiliavir/trivial-earnings-tracker/internal/storage"
	"github.com/Tiliavir/trivial-earnings-tracker/internal/timecalc"
)

const serviceName = "tet"

// now is swapped in tests.
var now = time.Now

// app bundles the configuration and stores a command needs.
type app struct {
	cfg      config.Config
	log      zerolog.Logger
	entries  storage.EntryStore
	settings storage.SettingsStore
}

// openApp loads configuration and opens the configured stores. Failures are
// storage/config errors: they are printed and the process exits with status 2.
func openApp() *app {
	cfg, err := config.Load(logger.New(serviceName, config.DefaultLogLevel))
	if err != nil {
		exitStorage(err)
	}
	if err := cfg.Validate(); err != nil {
		exitStorage(err)
	}
	log := logger.New(serviceName, cfg.LogLevel)

	entries, err := openEntryStore(cfg, log)
	if err != nil {
		exitStorage(err)
	}
	log.Debug().Str("backend", cfg.Storage.Backend).Str("data_dir", cfg.DataDir).Msg("stores opened")
	return &app{
		cfg:      cfg,
		log:      log,
		entries:  entries,
		settings: storage.NewSettingsFile(cfg.SettingsFile(), log),
	}
}

func openEntryStore(cfg config.Config, log zerolog.Logger) (storage.EntryStore, error) {
	switch cfg.Storage.Backend {
	case config.BackendSQLite:
		return storage.NewSQLiteStore(cfg.SQLiteFile(), log)
	default:
		return storage.NewFileStore(cfg.DataDir, log), nil
	}
}

func (a *app) close() {
	if err := a.entries.Close(); err != nil {
		a.log.Warn().Err(err).Msg("closing entry store")
	}
}

// loadSettings returns the stored settings with environment overrides applied.
func (a *app) loadSettings(ctx context.Context) model.Settings {
	s, err := a.settings.Load(ctx)
	if err != nil {
		exitStorage(err)
	}
	return a.cfg.Settings.Apply(s)
}

func (a *app) listEntries(ctx context.Context) []model.Entry {
	entries, err := a.entries.List(ctx)
	if err != nil {
		exitStorage(err)
	}
	return entries
}

// exitStorage reports a storage or configuration failure and exits with status 2.
func exitStorage(err error) {
	fmt.Fprintln(os.Stderr, err)
	os.Exit(2)
}

// resolveDay turns a --date flag into a day key; empty means today.
func resolveDay(s string) (string, error) {
	if strings.TrimSpace(s) == "" {
		return timecalc.DayKeyOf(now()), nil
	}
	t, err := timecalc.ParseDayKeyStrict(strings.TrimSpace(s))
	if err != nil {
		return "", fmt.Errorf("invalid --date %q: expected YYYY-MM-DD", s)
	}
	return timecalc.DayKeyOf(t), nil
}

// resolveMonth turns a --month flag into the first of that month; empty means
// the current month.
func resolveMonth(s string) (time.Time, error) {
	if strings.TrimSpace(s) == "" {
		return timecalc.FirstOfMonth(now()), nil
	}
	t, err := timecalc.ParseMonth(strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid --month %q: expected YYYY-MM", s)
	}
	return t, nil
}

// errAmbiguousID is returned when an id prefix matches more than one entry.
var errAmbiguousID = errors.New("ambiguous entry id")

// findEntry resolves a full id or a unique id prefix.
func findEntry(entries []model.Entry, id string) (model.Entry, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return model.Entry{}, fmt.Errorf("%w: empty id", storage.ErrNotFound)
	}
	var matches []model.Entry
	for _, e := range entries {
		if e.ID == id {
			return e, nil
		}
		if strings.HasPrefix(e.ID, id) {
			matches = append(matches, e)
		}
	}
	switch len(matches) {
	case 0:
		return model.Entry{}, fmt.Errorf("%w: %s", storage.ErrNotFound, id)
	case 1:
		return matches[0], nil
	default:
		return model.Entry{}, fmt.Errorf("%w: %q matches %d entries", errAmbiguousID, id, len(matches))
	}
}

// lookupEntry resolves id against the store. An unknown or ambiguous id is a
// usage error and is returned; store failures exit.
func (a *app) lookupEntry(ctx context.Context, id string) (model.Entry, error) {
	return findEntry(a.listEntries(ctx), id)
}

// shortID is the id prefix shown in listings.
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
