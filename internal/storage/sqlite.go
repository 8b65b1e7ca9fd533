package storage

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS interactions (
	id         INTEGER PRIMARY KEY AUTOINCREMENT,
	created_at INTEGER NOT NULL,
	session_id TEXT NOT NULL,
	page       TEXT NOT NULL DEFAULT '',
	directive  TEXT NOT NULL DEFAULT '',
	source     TEXT NOT NULL DEFAULT '',
	failed     INTEGER NOT NULL DEFAULT 0
);
CREATE INDEX IF NOT EXISTS interactions_created_at ON interactions(created_at);
`

// SQLiteRecorder stores events in a SQLite database.
type SQLiteRecorder struct {
	db *sql.DB
}

func NewSQLiteRecorder(path string) (*SQLiteRecorder, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	clean := filepath.Clean(path)
	if err := os.MkdirAll(filepath.Dir(clean), 0o755); err != nil {
		return nil, fmt.Errorf("failed to ensure db dir: %w", err)
	}
	db, err := sql.Open("sqlite", clean+"?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)")
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}
	return &SQLiteRecorder{db: db}, nil
}

func (r *SQLiteRecorder) Close() error {
	if r == nil || r.db == nil {
		return nil
	}
	return r.db.Close()
}

func (r *SQLiteRecorder) AppendInteraction(ev Event) error {
	if ev.Timestamp.IsZero() {
		ev.Timestamp = time.Now().UTC()
	}
	_, err := r.db.ExecContext(context.Background(), `
INSERT INTO interactions (
	created_at,
	session_id,
	page,
	directive,
	source,
	failed
) VALUES (?, ?, ?, ?, ?, ?)
`,
		ev.Timestamp.UTC().UnixMilli(),
		ev.SessionID,
		ev.Page,
		ev.Directive,
		ev.Source,
		ev.Failed,
	)
	if err != nil {
		return fmt.Errorf("record interaction: %w", err)
	}
	return nil
}

func (r *SQLiteRecorder) LoadInteractions() ([]Event, error) {
	rows, err := r.db.QueryContext(context.Background(), `
SELECT created_at, session_id, page, directive, source, failed
FROM interactions
ORDER BY created_at, id
`)
	if err != nil {
		return nil, fmt.Errorf("query interactions: %w", err)
	}
	defer rows.Close()

	var events []Event
	for rows.Next() {
		var (
			ev     Event
			millis int64
		)
		if err := rows.Scan(&millis, &ev.SessionID, &ev.Page, &ev.Directive, &ev.Source, &ev.Failed); err != nil {
			return nil, fmt.Errorf("scan interaction: %w", err)
		}
		ev.Timestamp = time.UnixMilli(millis).UTC()
		events = append(events, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate interactions: %w", err)
	}
	return events, nil
}
