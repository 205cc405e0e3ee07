// Package history journals editor operations (loads, backups, commits,
// exports) in a local SQLite database so past activity on a save file can
// be reviewed.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// EventType classifies a journal entry.
type EventType string

const (
	EventLoad   EventType = "load"
	EventBackup EventType = "backup"
	EventCommit EventType = "commit"
	EventExport EventType = "export"
)

// Event is one recorded operation.
type Event struct {
	ID        int64
	CreatedAt time.Time
	Type      EventType
	SavePath  string
	Detail    string
}

// Store manages journal persistence backed by SQLite.
type Store struct {
	db   *sql.DB
	path string
}

const schema = `
CREATE TABLE IF NOT EXISTS events (
    id         INTEGER PRIMARY KEY AUTOINCREMENT,
    created_at TEXT NOT NULL,
    event_type TEXT NOT NULL,
    save_path  TEXT NOT NULL,
    detail     TEXT
);
CREATE INDEX IF NOT EXISTS idx_events_save_path ON events(save_path);
`

// Open initializes or connects to the journal database.
func Open(dbPath string) (*Store, error) {
	if dir := filepath.Dir(dbPath); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("ensure history directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}

	return &Store{db: db, path: dbPath}, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Path returns the database file location.
func (s *Store) Path() string {
	return s.path
}

// Record inserts one event.
func (s *Store) Record(ctx context.Context, eventType EventType, savePath, detail string) (*Event, error) {
	now := time.Now().UTC()
	res, err := s.db.ExecContext(
		ctx,
		`INSERT INTO events (created_at, event_type, save_path, detail) VALUES (?, ?, ?, ?)`,
		now.Format(time.RFC3339Nano),
		string(eventType),
		savePath,
		detail,
	)
	if err != nil {
		return nil, fmt.Errorf("insert event: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}
	return &Event{ID: id, CreatedAt: now, Type: eventType, SavePath: savePath, Detail: detail}, nil
}

// List returns the most recent events, newest first. A non-empty savePath
// filters to one file; limit <= 0 means no limit.
func (s *Store) List(ctx context.Context, savePath string, limit int) ([]Event, error) {
	query := `SELECT id, created_at, event_type, save_path, detail FROM events`
	args := []any{}
	if savePath != "" {
		query += ` WHERE save_path = ?`
		args = append(args, savePath)
	}
	query += ` ORDER BY id DESC`
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query events: %w", err)
	}
	defer rows.Close()

	var events []Event
	for rows.Next() {
		var event Event
		var createdAt, eventType string
		var detail sql.NullString
		if err := rows.Scan(&event.ID, &createdAt, &eventType, &event.SavePath, &detail); err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		parsed, err := time.Parse(time.RFC3339Nano, createdAt)
		if err != nil {
			return nil, fmt.Errorf("parse event timestamp: %w", err)
		}
		event.CreatedAt = parsed
		event.Type = EventType(eventType)
		event.Detail = detail.String
		events = append(events, event)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate events: %w", err)
	}
	return events, nil
}
