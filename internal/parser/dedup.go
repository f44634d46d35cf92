package parser

import (
	"sort"

	"github.com/rubensayshi/ccusagebar/internal/domain"
)

// Dedup removes duplicate entries by RequestID, keeping the first
// occurrence in input order, then sorts the survivors by timestamp.
//
// When the same RequestID appears with different content across files the
// surviving record depends on directory walk order. That ordering is not
// guaranteed stable across platforms; it is kept as-is on purpose rather
// than papered over with a content-based tie-break.
func Dedup(entries []domain.UsageEntry) []domain.UsageEntry {
	seen := make(map[string]struct{}, len(entries))
	result := make([]domain.UsageEntry, 0, len(entries))

	for _, e := range entries {
		if _, exists := seen[e.RequestID]; exists {
			continue
		}
		seen[e.RequestID] = struct{}{}
		result = append(result, e)
	}

	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Timestamp.Before(result[j].Timestamp)
	})

	return result
}
