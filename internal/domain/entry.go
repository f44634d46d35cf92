package domain

import "time"

// UsageEntry is one assistant turn parsed from a Claude Code JSONL log.
// Entries are immutable once ingested; CostUSD is filled in by the pricing
// calculator before any aggregation runs.
type UsageEntry struct {
	Timestamp           time.Time
	Model               string
	InputTokens         int
	OutputTokens        int
	CacheCreationTokens int
	CacheReadTokens     int
	CostUSD             float64
	RequestID           string
}

// TotalTokens returns input + output + cache tokens.
func (e UsageEntry) TotalTokens() int {
	return e.InputTokens + e.OutputTokens + e.CacheCreationTokens + e.CacheReadTokens
}
