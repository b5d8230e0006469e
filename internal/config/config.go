package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/rs/zerolog"

	"github.com/Tiliavir/trivial-earnings-tracker/internal/model"
)

// EnvPrefix prefixes every environment override, e.g. TET_STORAGE_BACKEND.
const EnvPrefix = "TET"

// Storage backends.
const (
	BackendFiles  = "files"
	BackendSQLite = "sqlite"
)

const (
	// DefaultLogLevel keeps the CLI quiet unless something goes wrong.
	DefaultLogLevel = "warn"
	// DefaultSQLiteFile is resolved against the data directory.
	DefaultSQLiteFile = "tet.db"
	settingsFile      = "settings.json"
	configFile        = "config.json"
	dotEnvFile        = ".env"
)

// Config is the root configuration for tet, stored in ~/.tet/config.json.
// The file supports single-line // comments for documentation purposes.
type Config struct {
	// DataDir holds config.json, .env, settings and entries. Set via TET_DATA_DIR.
	DataDir  string        `json:"-"`
	Storage  StorageConfig `json:"storage"`
	LogLevel string        `json:"log_level"`

	// Settings carries environment overrides applied on top of stored settings.
	Settings SettingsOverrides `json:"-"`
}

// StorageConfig selects where entries are persisted.
type StorageConfig struct {
	// Backend is "files" (one JSON file per day) or "sqlite".
	Backend string `json:"backend"`
	// SQLitePath is the database file; relative paths resolve against DataDir.
	SQLitePath string `json:"sqlite_path"`
}

// SettingsOverrides are optional settings values taken from the environment.
// Nil and empty fields leave the stored value alone.
type SettingsOverrides struct {
	HourlyRate           *string `split_words:"true"`
	HoursPerDay          *string `split_words:"true"`
	DesiredMonthlyIncome *string `split_words:"true"`
	CalculationMode      string  `split_words:"true"`
	Language             string  `split_words:"true"`
	Currency             string  `split_words:"true"`
	IncludeWeekends      *bool   `split_words:"true"`
	StartFromSunday      *bool   `split_words:"true"`
}

// env is the full set of variables read with envconfig under EnvPrefix.
// split_words derives TET_STORAGE_BACKEND from StorageBackend without the
// unprefixed fallback an explicit envconfig tag would add.
type env struct {
	DataDir        string `split_words:"true"`
	StorageBackend string `split_words:"true"`
	SqlitePath     string `split_words:"true"`
	LogLevel       string `split_words:"true"`
	SettingsOverrides
}

// Apply returns s with every set override applied.
func (o SettingsOverrides) Apply(s model.Settings) model.Settings {
	if o.HourlyRate != nil {
		s.HourlyRate = *o.HourlyRate
	}
	if o.HoursPerDay != nil {
		s.HoursPerDay = *o.HoursPerDay
	}
	if o.DesiredMonthlyIncome != nil {
		s.DesiredMonthlyIncome = *o.DesiredMonthlyIncome
	}
	if o.CalculationMode != "" {
		s.CalculationMode = model.CalculationMode(strings.ToLower(o.CalculationMode))
	}
	if o.Language != "" {
		s.Language = model.Language(strings.ToLower(o.Language))
	}
	if o.Currency != "" {
		s.Currency = model.Currency(strings.ToUpper(o.Currency))
	}
	if o.IncludeWeekends != nil {
		s.IncludeWeekends = *o.IncludeWeekends
	}
	if o.StartFromSunday != nil {
		s.StartFromSunday = *o.StartFromSunday
	}
	return s.Normalize()
}

// defaultConfig returns a Config pre-filled with sensible defaults.
func defaultConfig(dataDir string) Config {
	return Config{
		DataDir: dataDir,
		Storage: StorageConfig{
			Backend:    BackendFiles,
			SQLitePath: DefaultSQLiteFile,
		},
		LogLevel: DefaultLogLevel,
	}
}

// configTemplate is the annotated config written on first run.
// Lines whose trimmed content starts with // are stripped before JSON parsing,
// allowing human-readable documentation inside the file.
const configTemplate = `// tet configuration – ~/.tet/config.json
//
// All settings are optional; the built-in defaults shown below work out of
// the box. Every value can also be set in ~/.tet/.env or the environment,
// e.g. TET_STORAGE_BACKEND=sqlite. The environment wins over this file.
//
// Earnings settings (rate, hours per day, language...) live in settings.json
// and are edited with: tet settings set <key> <value>
{
  // ── Storage ──────────────────────────────────────────────────────────────
  "storage": {
    // Where entries are kept.
    // • "files"   – one JSON file per day under ~/.tet/YYYY/MM/DD.json (default)
    // • "sqlite"  – a single SQLite database
    "backend": "files",

    // SQLite database file, relative to ~/.tet unless absolute.
    "sqlite_path": "tet.db"
  },

  // Diagnostic output on stderr: debug, info, warn, error.
  "log_level": "warn"
}
`

// DefaultDataDir returns ~/.tet.
func DefaultDataDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	return filepath.Join(home, ".tet"), nil
}

// stripLineComments removes lines whose leading non-whitespace content starts
// with //. Only full-line comments are handled; inline comments are not stripped.
func stripLineComments(data []byte) []byte {
	var out []byte
	for _, line := range bytes.Split(data, []byte("\n")) {
		if bytes.HasPrefix(bytes.TrimLeft(line, " \t"), []byte("//")) {
			continue
		}
		out = append(out, line...)
		out = append(out, '\n')
	}
	return out
}

// Load resolves the configuration in order of increasing precedence: built-in
// defaults, ~/.tet/config.json (created with annotated defaults on first run),
// ~/.tet/.env, then TET_* environment variables.
func Load(log zerolog.Logger) (Config, error) {
	var e env
	if err := envconfig.Process(EnvPrefix, &e); err != nil {
		return Config{}, fmt.Errorf("reading environment: %w", err)
	}
	dataDir := e.DataDir
	if dataDir == "" {
		var err error
		if dataDir, err = DefaultDataDir(); err != nil {
			return Config{}, err
		}
	}

	// .env never overrides variables already present in the environment.
	dotEnv := filepath.Join(dataDir, dotEnvFile)
	if err := godotenv.Load(dotEnv); err == nil {
		log.Debug().Str("path", dotEnv).Msg("loaded .env")
		e = env{}
		if err := envconfig.Process(EnvPrefix, &e); err != nil {
			return Config{}, fmt.Errorf("reading environment from %s: %w", dotEnv, err)
		}
	} else if !os.IsNotExist(err) {
		return Config{}, fmt.Errorf("reading %s: %w", dotEnv, err)
	}

	cfg, err := loadFile(dataDir, log)
	if err != nil {
		return cfg, err
	}

	if e.StorageBackend != "" {
		cfg.Storage.Backend = strings.ToLower(e.StorageBackend)
	}
	if e.SqlitePath != "" {
		cfg.Storage.SQLitePath = e.SqlitePath
	}
	if e.LogLevel != "" {
		cfg.LogLevel = e.LogLevel
	}
	cfg.Settings = e.SettingsOverrides
	return cfg, nil
}

// loadFile reads config.json from dataDir, writing the template when absent.
func loadFile(dataDir string, log zerolog.Logger) (Config, error) {
	path := filepath.Join(dataDir, configFile)
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		// First run: write the annotated template so users can discover options.
		if writeErr := writeDefault(path); writeErr != nil {
			log.Warn().Err(writeErr).Str("path", path).Msg("could not create config file")
		}
		return defaultConfig(dataDir), nil
	}
	if err != nil {
		return defaultConfig(dataDir), fmt.Errorf("reading config file %s: %w", path, err)
	}

	cleaned := stripLineComments(data)
	var cfg Config
	if err := json.Unmarshal(cleaned, &cfg); err != nil {
		return defaultConfig(dataDir), fmt.Errorf("parsing config file %s: %w\nTip: delete the file to regenerate defaults", path, err)
	}
	cfg.DataDir = dataDir

	// Fill zero-value fields with built-in defaults so callers always get
	// a usable Config even if the user only partially fills in the file.
	def := defaultConfig(dataDir)
	if cfg.Storage.Backend == "" {
		cfg.Storage.Backend = def.Storage.Backend
	}
	if cfg.Storage.SQLitePath == "" {
		cfg.Storage.SQLitePath = def.Storage.SQLitePath
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = def.LogLevel
	}
	return cfg, nil
}

// writeDefault creates the config directory and writes the annotated default
// config template.
func writeDefault(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(configTemplate), 0o600); err != nil {
		return fmt.Errorf("writing default config: %w", err)
	}
	return nil
}

// Validate reports every problem in c at once.
func (c Config) Validate() error {
	var problems []string

	switch c.Storage.Backend {
	case BackendFiles:
	case BackendSQLite:
		if strings.TrimSpace(c.Storage.SQLitePath) == "" {
			problems = append(problems, "storage.sqlite_path cannot be empty when using the sqlite backend")
		}
	default:
		problems = append(problems, fmt.Sprintf("invalid storage.backend %q: must be one of [%s %s]", c.Storage.Backend, BackendFiles, BackendSQLite))
	}

	if _, err := zerolog.ParseLevel(strings.ToLower(c.LogLevel)); err != nil {
		problems = append(problems, fmt.Sprintf("invalid log_level %q: %v", c.LogLevel, err))
	}

	if c.DataDir == "" {
		problems = append(problems, "data directory cannot be empty")
	}

	if len(problems) > 0 {
		return fmt.Errorf("configuration validation failed:\n  - %s", strings.Join(problems, "\n  - "))
	}
	return nil
}

// SQLiteFile returns the absolute database path.
func (c Config) SQLiteFile() string {
	if filepath.IsAbs(c.Storage.SQLitePath) {
		return c.Storage.SQLitePath
	}
	return filepath.Join(c.DataDir, c.Storage.SQLitePath)
}

// SettingsFile returns the path of the stored earnings settings.
func (c Config) SettingsFile() string {
	return filepath.Join(c.DataDir, settingsFile)
}
