package trace

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// Store is a Logger backed by SQLite, giving the trace a queryable history.
type Store struct {
	conn *sql.DB
	path string
}

// Record is one persisted trace record.
type Record struct {
	ID     string         `json:"id"`
	TS     time.Time      `json:"ts"`
	Fields map[string]any `json:"fields"`
}

// OpenStore opens (creating if needed) a SQLite trace store at the given
// path. WAL mode is enabled for concurrent reads.
func OpenStore(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create trace db directory: %w", err)
	}

	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open trace database: %w", err)
	}

	if _, err := conn.Exec("PRAGMA journal_mode=WAL"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("enable WAL mode: %w", err)
	}

	// ts is unix nanoseconds so ordering is numeric, not textual.
	schema := `
	CREATE TABLE IF NOT EXISTS records (
		id TEXT PRIMARY KEY,
		ts INTEGER NOT NULL,
		fields TEXT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_records_ts ON records(ts);
	`
	if _, err := conn.Exec(schema); err != nil {
		conn.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}

	return &Store{conn: conn, path: path}, nil
}

// Log inserts one record.
func (s *Store) Log(ctx context.Context, fields map[string]any) error {
	data, err := json.Marshal(fields)
	if err != nil {
		return fmt.Errorf("marshal trace fields: %w", err)
	}

	_, err = s.conn.ExecContext(ctx, `
		INSERT INTO records (id, ts, fields) VALUES (?, ?, ?)
	`, uuid.New().String(), time.Now().UnixNano(), string(data))
	if err != nil {
		return fmt.Errorf("insert trace record: %w", err)
	}
	return nil
}

// Recent returns up to limit records, newest first.
func (s *Store) Recent(ctx context.Context, limit int) ([]Record, error) {
	if limit <= 0 {
		limit = 50
	}

	rows, err := s.conn.QueryContext(ctx, `
		SELECT id, ts, fields FROM records ORDER BY ts DESC LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("query trace records: %w", err)
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		var rec Record
		var ts int64
		var fields string
		if err := rows.Scan(&rec.ID, &ts, &fields); err != nil {
			return nil, fmt.Errorf("scan trace record: %w", err)
		}
		rec.TS = time.Unix(0, ts)
		if err := json.Unmarshal([]byte(fields), &rec.Fields); err != nil {
			return nil, fmt.Errorf("unmarshal trace fields: %w", err)
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// Path returns the database path.
func (s *Store) Path() string { return s.path }

// Close closes the database connection.
func (s *Store) Close() error {
	return s.conn.Close()
}
