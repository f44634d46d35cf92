package parser

import (
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

func TestScan(t *testing.T) {
	dir := t.TempDir()

	writeFile(t, filepath.Join(dir, "project-a", "session.jsonl"),
		`{"type":"assistant","requestId":"req_1","timestamp":"2026-02-21T10:00:00Z","message":{"model":"claude-opus-4-6","usage":{"input_tokens":100}}}`+"\n")
	writeFile(t, filepath.Join(dir, "project-b", "session.jsonl"),
		`{"type":"assistant","requestId":"req_2","timestamp":"2026-02-21T09:00:00Z","message":{"model":"claude-opus-4-6","usage":{"input_tokens":200}}}`+"\n"+
			`{"type":"assistant","requestId":"req_1","timestamp":"2026-02-21T10:00:00Z","message":{"model":"claude-opus-4-6","usage":{"input_tokens":999}}}`+"\n")
	writeFile(t, filepath.Join(dir, "project-b", "notes.txt"), "not jsonl")

	entries := Scan(dir)

	if len(entries) != 2 {
		t.Fatalf("got %d entries, want 2 (req_1 deduplicated)", len(entries))
	}
	// Ascending by timestamp regardless of file order.
	if entries[0].RequestID != "req_2" {
		t.Errorf("first entry = %q, want req_2 (earlier timestamp)", entries[0].RequestID)
	}
}

func TestScan_MissingDir(t *testing.T) {
	entries := Scan(filepath.Join(t.TempDir(), "does-not-exist"))
	if len(entries) != 0 {
		t.Errorf("missing directory should mean no usage, got %d entries", len(entries))
	}
}
