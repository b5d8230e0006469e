package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	_ "modernc.org/sqlite"

	"github.com/Tiliavir/trivial-earnings-tracker/internal/model"
)

const entryColumns = `id, day_key, created_at, title, hours, minutes, link, in_tracker`

// SQLiteStore keeps entries in a single SQLite database file.
type SQLiteStore struct {
	db  *sql.DB
	log zerolog.Logger
}

// NewSQLiteStore opens (creating if needed) the database at dbPath and migrates it.
func NewSQLiteStore(dbPath string, log zerolog.Logger) (*SQLiteStore, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o700); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, err
	}

	log.Debug().Str("path", dbPath).Msg("sqlite store ready")
	return &SQLiteStore{db: db, log: log}, nil
}

// Close releases the database handle.
func (s *SQLiteStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEntry(row rowScanner) (model.Entry, error) {
	var (
		e         model.Entry
		createdAt string
		link      sql.NullString
	)
	if err := row.Scan(&e.ID, &e.DayKey, &createdAt, &e.Title, &e.Hours, &e.Minutes, &link, &e.InTracker); err != nil {
		return model.Entry{}, err
	}
	t, err := time.Parse(time.RFC3339Nano, createdAt)
	if err != nil {
		return model.Entry{}, fmt.Errorf("parse created_at of %s: %w", e.ID, err)
	}
	e.CreatedAt = t
	if link.Valid {
		l := link.String
		e.Link = &l
	}
	return e, nil
}

func nullableLink(link *string) sql.NullString {
	if link == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *link, Valid: true}
}

// List returns all entries ordered by day key, then insertion order.
func (s *SQLiteStore) List(ctx context.Context) ([]model.Entry, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+entryColumns+` FROM entries ORDER BY day_key, rowid`)
	if err != nil {
		return nil, fmt.Errorf("list entries: %w", err)
	}
	defer rows.Close()

	entries := []model.Entry{}
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("scan entry: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list entries: %w", err)
	}
	return entries, nil
}

// Add inserts e.
func (s *SQLiteStore) Add(ctx context.Context, e model.Entry) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO entries (`+entryColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		e.ID, e.DayKey, e.CreatedAt.Format(time.RFC3339Nano), e.Title, e.Hours, e.Minutes, nullableLink(e.Link), e.InTracker,
	)
	if err != nil {
		return fmt.Errorf("insert entry %s: %w", e.ID, err)
	}
	s.log.Debug().Str("id", e.ID).Str("date", e.DayKey).Msg("entry added")
	return nil
}

// Update applies patch inside a transaction.
func (s *SQLiteStore) Update(ctx context.Context, id string, patch model.EntryPatch) (model.Entry, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return model.Entry{}, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	current, err := scanEntry(tx.QueryRowContext(ctx, `SELECT `+entryColumns+` FROM entries WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return model.Entry{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err != nil {
		return model.Entry{}, fmt.Errorf("load entry %s: %w", id, err)
	}

	updated := patch.Apply(current)
	_, err = tx.ExecContext(ctx,
		`UPDATE entries SET day_key = ?, title = ?, hours = ?, minutes = ?, link = ?, in_tracker = ? WHERE id = ?`,
		updated.DayKey, updated.Title, updated.Hours, updated.Minutes, nullableLink(updated.Link), updated.InTracker, id,
	)
	if err != nil {
		return model.Entry{}, fmt.Errorf("update entry %s: %w", id, err)
	}
	if err := tx.Commit(); err != nil {
		return model.Entry{}, fmt.Errorf("commit update of %s: %w", id, err)
	}
	s.log.Debug().Str("id", id).Msg("entry updated")
	return updated, nil
}

// Remove deletes the entry with the given id.
func (s *SQLiteStore) Remove(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM entries WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete entry %s: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete entry %s: %w", id, err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	s.log.Debug().Str("id", id).Msg("entry removed")
	return nil
}
