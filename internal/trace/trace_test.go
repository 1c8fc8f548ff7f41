package trace

import (
	"bufio"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
)

func TestJSONLAppendsOneRecordPerLine(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "trace.jsonl")

	l, err := OpenJSONL(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer l.Close()

	ctx := context.Background()
	if err := l.Log(ctx, map[string]any{"tool": "add", "result": 5}); err != nil {
		t.Fatalf("log: %v", err)
	}
	if err := l.Log(ctx, map[string]any{"tool": "multiply", "error": "boom"}); err != nil {
		t.Fatalf("log: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer f.Close()

	var lines []map[string]any
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		var record map[string]any
		if err := json.Unmarshal(scanner.Bytes(), &record); err != nil {
			t.Fatalf("line is not valid JSON: %v", err)
		}
		lines = append(lines, record)
	}

	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(lines))
	}
	if lines[0]["tool"] != "add" {
		t.Errorf("unexpected first record: %v", lines[0])
	}
	if _, ok := lines[0]["ts"]; !ok {
		t.Error("expected timestamp field on record")
	}
	if lines[1]["error"] != "boom" {
		t.Errorf("unexpected second record: %v", lines[1])
	}
}

func TestJSONLAppendAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "trace.jsonl")
	ctx := context.Background()

	l1, err := OpenJSONL(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if err := l1.Log(ctx, map[string]any{"n": 1}); err != nil {
		t.Fatalf("log: %v", err)
	}
	l1.Close()

	l2, err := OpenJSONL(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	if err := l2.Log(ctx, map[string]any{"n": 2}); err != nil {
		t.Fatalf("log: %v", err)
	}
	l2.Close()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	count := 0
	for _, b := range data {
		if b == '\n' {
			count++
		}
	}
	if count != 2 {
		t.Errorf("expected 2 records after reopen, got %d", count)
	}
}

func TestStoreLogAndRecent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "trace.db")

	s, err := OpenStore(path)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	defer s.Close()

	ctx := context.Background()
	for i := 0; i < 3; i++ {
		if err := s.Log(ctx, map[string]any{"seq": i}); err != nil {
			t.Fatalf("log %d: %v", i, err)
		}
	}

	records, err := s.Recent(ctx, 10)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("expected 3 records, got %d", len(records))
	}
	for _, rec := range records {
		if rec.ID == "" {
			t.Error("expected record ID")
		}
		if _, ok := rec.Fields["seq"]; !ok {
			t.Errorf("missing seq field: %v", rec.Fields)
		}
	}
}

func TestStoreRecentLimit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "trace.db")

	s, err := OpenStore(path)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	defer s.Close()

	ctx := context.Background()
	for i := 0; i < 5; i++ {
		if err := s.Log(ctx, map[string]any{"seq": i}); err != nil {
			t.Fatalf("log: %v", err)
		}
	}

	records, err := s.Recent(ctx, 2)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(records) != 2 {
		t.Errorf("expected limit of 2, got %d", len(records))
	}
}

func TestStoreRecentOrdersNumerically(t *testing.T) {
	path := filepath.Join(t.TempDir(), "trace.db")

	s, err := OpenStore(path)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	defer s.Close()

	// 999 sorts after 1000 as text but before it as a number. Recent
	// must order by the numeric timestamp.
	for _, row := range []struct {
		id string
		ts int64
	}{
		{"older", 999},
		{"newer", 1000},
	} {
		if _, err := s.conn.Exec(
			`INSERT INTO records (id, ts, fields) VALUES (?, ?, ?)`,
			row.id, row.ts, `{}`,
		); err != nil {
			t.Fatalf("insert %s: %v", row.id, err)
		}
	}

	records, err := s.Recent(context.Background(), 10)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}
	if records[0].ID != "newer" {
		t.Errorf("expected the numerically newest record first, got %q", records[0].ID)
	}
}

func TestNopLogger(t *testing.T) {
	var l Logger = Nop{}
	if err := l.Log(context.Background(), map[string]any{"x": 1}); err != nil {
		t.Errorf("nop logger returned error: %v", err)
	}
}
