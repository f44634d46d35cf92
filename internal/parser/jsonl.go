package parser

import (
	"bufio"
	"encoding/json"
	"io"
	"time"

	"github.com/rubensayshi/ccusagebar/internal/domain"
)

// syntheticModel marks placeholder records that carry no real usage.
const syntheticModel = "<synthetic>"

// rawRecord maps the JSONL structure we care about.
type rawRecord struct {
	Type      string `json:"type"`
	Timestamp string `json:"timestamp"`
	RequestID string `json:"requestId"`
	Message   *struct {
		Model string `json:"model"`
		Usage *struct {
			InputTokens              int `json:"input_tokens"`
			OutputTokens             int `json:"output_tokens"`
			CacheCreationInputTokens int `json:"cache_creation_input_tokens"`
			CacheReadInputTokens     int `json:"cache_read_input_tokens"`
		} `json:"usage"`
	} `json:"message"`
}

// ParseResult holds parsed entries and per-line error stats.
type ParseResult struct {
	Entries    []domain.UsageEntry
	SkipCount  int
	ErrorCount int
}

// ParseReader reads JSONL from an io.Reader, streaming line by line.
// Lines that fail to parse or lack required fields are skipped
// individually; a bad line never poisons the rest of the file.
func ParseReader(r io.Reader) ParseResult {
	var result ParseResult
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 1024*1024), 10*1024*1024) // 10MB max line

	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		var rec rawRecord
		if err := json.Unmarshal(line, &rec); err != nil {
			result.ErrorCount++
			continue
		}

		// Only assistant records carry usage data.
		if rec.Type != "assistant" {
			result.SkipCount++
			continue
		}

		if rec.RequestID == "" || rec.Message == nil || rec.Message.Usage == nil {
			result.SkipCount++
			continue
		}
		if rec.Message.Model == syntheticModel {
			result.SkipCount++
			continue
		}

		ts, err := time.Parse(time.RFC3339Nano, rec.Timestamp)
		if err != nil {
			ts, err = time.Parse("2006-01-02T15:04:05Z", rec.Timestamp)
			if err != nil {
				result.ErrorCount++
				continue
			}
		}

		result.Entries = append(result.Entries, domain.UsageEntry{
			Timestamp:           ts.UTC(),
			Model:               rec.Message.Model,
			InputTokens:         rec.Message.Usage.InputTokens,
			OutputTokens:        rec.Message.Usage.OutputTokens,
			CacheCreationTokens: rec.Message.Usage.CacheCreationInputTokens,
			CacheReadTokens:     rec.Message.Usage.CacheReadInputTokens,
			RequestID:           rec.RequestID,
		})
	}

	if err := scanner.Err(); err != nil {
		result.ErrorCount++
	}

	return result
}
