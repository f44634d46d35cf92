package parser

import (
	"strings"
	"testing"
	"time"
)

func TestParseReader(t *testing.T) {
	input := strings.Join([]string{
		`{"type":"assistant","requestId":"req_1","timestamp":"2026-02-21T10:00:00.123Z","message":{"model":"claude-opus-4-6","usage":{"input_tokens":100,"output_tokens":50,"cache_creation_input_tokens":10,"cache_read_input_tokens":5}}}`,
		`{"type":"user","timestamp":"2026-02-21T10:00:01Z"}`,
		`{"type":"assistant","requestId":"req_2","timestamp":"2026-02-21T10:01:00Z","message":{"model":"claude-opus-4-6","usage":{"output_tokens":20}}}`,
		`not json at all`,
		`{"type":"assistant","requestId":"req_3","timestamp":"2026-02-21T10:02:00Z","message":{"model":"<synthetic>","usage":{"input_tokens":1}}}`,
		`{"type":"assistant","timestamp":"2026-02-21T10:03:00Z","message":{"model":"claude-opus-4-6","usage":{"input_tokens":1}}}`,
	}, "\n")

	result := ParseReader(strings.NewReader(input))

	if len(result.Entries) != 2 {
		t.Fatalf("got %d entries, want 2", len(result.Entries))
	}

	first := result.Entries[0]
	if first.RequestID != "req_1" {
		t.Errorf("RequestID = %q, want req_1", first.RequestID)
	}
	if first.InputTokens != 100 || first.OutputTokens != 50 ||
		first.CacheCreationTokens != 10 || first.CacheReadTokens != 5 {
		t.Errorf("token counts = %d/%d/%d/%d, want 100/50/10/5",
			first.InputTokens, first.OutputTokens, first.CacheCreationTokens, first.CacheReadTokens)
	}
	wantTS := time.Date(2026, 2, 21, 10, 0, 0, 123_000_000, time.UTC)
	if !first.Timestamp.Equal(wantTS) {
		t.Errorf("Timestamp = %v, want %v", first.Timestamp, wantTS)
	}

	// Absent token fields default to zero.
	second := result.Entries[1]
	if second.InputTokens != 0 || second.OutputTokens != 20 {
		t.Errorf("defaults: got %d/%d, want 0/20", second.InputTokens, second.OutputTokens)
	}

	// user line, synthetic model, and missing requestId are skips;
	// the garbage line is a parse error.
	if result.SkipCount != 3 {
		t.Errorf("SkipCount = %d, want 3", result.SkipCount)
	}
	if result.ErrorCount != 1 {
		t.Errorf("ErrorCount = %d, want 1", result.ErrorCount)
	}
}

func TestParseReader_MissingUsage(t *testing.T) {
	input := `{"type":"assistant","requestId":"req_1","timestamp":"2026-02-21T10:00:00Z","message":{"model":"claude-opus-4-6"}}`

	result := ParseReader(strings.NewReader(input))
	if len(result.Entries) != 0 {
		t.Errorf("record without usage should be skipped, got %d entries", len(result.Entries))
	}
	if result.SkipCount != 1 {
		t.Errorf("SkipCount = %d, want 1", result.SkipCount)
	}
}

func TestParseReader_BadTimestamp(t *testing.T) {
	input := `{"type":"assistant","requestId":"req_1","timestamp":"yesterday","message":{"model":"claude-opus-4-6","usage":{"input_tokens":1}}}`

	result := ParseReader(strings.NewReader(input))
	if len(result.Entries) != 0 {
		t.Errorf("unparseable timestamp should be skipped, got %d entries", len(result.Entries))
	}
	if result.ErrorCount != 1 {
		t.Errorf("ErrorCount = %d, want 1", result.ErrorCount)
	}
}

func TestParseReader_Empty(t *testing.T) {
	result := ParseReader(strings.NewReader(""))
	if len(result.Entries) != 0 || result.SkipCount != 0 || result.ErrorCount != 0 {
		t.Errorf("empty input should produce nothing, got %+v", result)
	}
}
