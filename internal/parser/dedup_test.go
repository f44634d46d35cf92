package parser

import (
	"testing"
	"time"

	"github.com/rubensayshi/ccusagebar/internal/domain"
)

func TestDedup_FirstOccurrenceWins(t *testing.T) {
	now := time.Date(2026, 2, 21, 10, 0, 0, 0, time.UTC)
	entries := []domain.UsageEntry{
		{Timestamp: now.Add(time.Minute), RequestID: "req_1", InputTokens: 100},
		{Timestamp: now, RequestID: "req_1", InputTokens: 50}, // duplicate, dropped despite earlier timestamp
		{Timestamp: now.Add(2 * time.Minute), RequestID: "req_2", InputTokens: 200},
	}

	result := Dedup(entries)

	if len(result) != 2 {
		t.Fatalf("got %d entries, want 2", len(result))
	}
	// Survivors are sorted ascending by timestamp.
	if result[0].RequestID != "req_1" || result[0].InputTokens != 100 {
		t.Errorf("first = %+v, want first occurrence of req_1 (100 tokens)", result[0])
	}
	if result[1].RequestID != "req_2" {
		t.Errorf("second = %+v, want req_2", result[1])
	}
	if result[0].Timestamp.After(result[1].Timestamp) {
		t.Error("result is not ascending by timestamp")
	}
}

func TestDedup_IdempotentAcrossInputOrder(t *testing.T) {
	now := time.Date(2026, 2, 21, 10, 0, 0, 0, time.UTC)
	a := domain.UsageEntry{Timestamp: now, RequestID: "req_1", InputTokens: 1}
	b := domain.UsageEntry{Timestamp: now.Add(time.Minute), RequestID: "req_1", InputTokens: 2}

	forward := Dedup([]domain.UsageEntry{a, b})
	backward := Dedup([]domain.UsageEntry{b, a})

	if len(forward) != 1 || len(backward) != 1 {
		t.Fatalf("exactly one record per RequestID must survive, got %d and %d", len(forward), len(backward))
	}
}

func TestDedup_Empty(t *testing.T) {
	if result := Dedup(nil); len(result) != 0 {
		t.Errorf("got %d entries, want 0", len(result))
	}
}
