package trace

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// JSONL is a Logger that appends one JSON object per line to a file.
type JSONL struct {
	mu   sync.Mutex
	file *os.File
	path string
}

// OpenJSONL opens (creating if needed) an append-only JSONL trace file.
// Parent directories are created.
func OpenJSONL(path string) (*JSONL, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create trace directory: %w", err)
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("open trace file: %w", err)
	}

	return &JSONL{file: f, path: path}, nil
}

// Log appends one record with a timestamp field added. Records are written
// whole under the lock, so concurrent writers never interleave lines.
func (l *JSONL) Log(ctx context.Context, fields map[string]any) error {
	record := make(map[string]any, len(fields)+1)
	for k, v := range fields {
		record[k] = v
	}
	record["ts"] = time.Now().Format(time.RFC3339Nano)

	data, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("marshal trace record: %w", err)
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if _, err := l.file.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("append trace record: %w", err)
	}
	return nil
}

// Path returns the trace file path.
func (l *JSONL) Path() string { return l.path }

// Close closes the underlying file.
func (l *JSONL) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.file.Close()
}
