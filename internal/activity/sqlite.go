package activity

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/nfrund/writerfolio/internal/domain"
	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS activity (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    at INTEGER NOT NULL,
    action TEXT NOT NULL,
    kind TEXT NOT NULL DEFAULT '',
    record_id TEXT NOT NULL DEFAULT '',
    label TEXT NOT NULL DEFAULT ''
);
CREATE INDEX IF NOT EXISTS idx_activity_at ON activity(at);
`

// SQLiteStore keeps the feed in a SQLite database so it survives restarts.
// Only the newest capacity rows are retained.
type SQLiteStore struct {
	db       *sql.DB
	capacity int
}

// OpenSQLite opens (or creates) the database at path. ":memory:" is accepted
// for tests.
func OpenSQLite(path string, capacity int) (*SQLiteStore, error) {
	dsn := path
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("creating activity directory: %w", err)
		}
		dsn = path + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening activity database: %w", err)
	}
	// A single connection keeps ":memory:" databases shared and serializes writers.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("pinging activity database: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrating activity database: %w", err)
	}
	if capacity <= 0 {
		capacity = 1
	}
	return &SQLiteStore{db: db, capacity: capacity}, nil
}

func (s *SQLiteStore) Append(ctx context.Context, e domain.ActivityEntry) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO activity (at, action, kind, record_id, label) VALUES (?, ?, ?, ?, ?)`,
		e.At.UnixNano(), string(e.Action), string(e.Kind), e.RecordID, e.Label)
	if err != nil {
		return fmt.Errorf("inserting activity: %w", err)
	}

	_, err = s.db.ExecContext(ctx,
		`DELETE FROM activity WHERE id NOT IN (SELECT id FROM activity ORDER BY id DESC LIMIT ?)`,
		s.capacity)
	if err != nil {
		return fmt.Errorf("pruning activity: %w", err)
	}
	return nil
}

func (s *SQLiteStore) Recent(ctx context.Context, limit int) ([]domain.ActivityEntry, error) {
	if limit <= 0 {
		limit = s.capacity
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT at, action, kind, record_id, label FROM activity ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying activity: %w", err)
	}
	defer rows.Close()

	var out []domain.ActivityEntry
	for rows.Next() {
		var (
			at                     int64
			action, kind, id, name string
		)
		if err := rows.Scan(&at, &action, &kind, &id, &name); err != nil {
			return nil, fmt.Errorf("scanning activity: %w", err)
		}
		out = append(out, domain.ActivityEntry{
			At:       time.Unix(0, at).UTC(),
			Action:   domain.Action(action),
			Kind:     domain.Kind(kind),
			RecordID: id,
			Label:    name,
		})
	}
	return out, rows.Err()
}

func (s *SQLiteStore) Close() error { return s.db.Close() }
