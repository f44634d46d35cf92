package domain

import (
	"sort"
	"time"
)

const (
	// BlockDuration is the fixed length of a billing session window.
	BlockDuration = 5 * time.Hour

	// GapThreshold is the inactivity gap that separates two sessions.
	// A gap of exactly the threshold does not split a session.
	GapThreshold = 5 * time.Hour

	blockMinutes = 300.0
	blockHours   = 5.0
)

// BurnRate holds the observed consumption rate of an active block.
type BurnRate struct {
	TokensPerMinute float64
	CostPerHour     float64
}

// Projection extrapolates the current burn rate linearly across the full
// 5-hour window. This is a deliberately naive estimate of where the block
// lands if the observed rate holds; it is not decayed or adaptive.
type Projection struct {
	TotalTokens      int
	TotalCost        float64
	RemainingMinutes int
}

// SessionBlock is the currently open billing session. It only ever
// represents an active block; "no active block" is expressed by the
// comma-ok return of ActiveBlock, never by a zero-valued SessionBlock.
type SessionBlock struct {
	ID          string // RFC3339 of StartTime, stable per session
	StartTime   time.Time
	EndTime     time.Time // StartTime + BlockDuration
	Entries     []UsageEntry
	TotalTokens int
	TotalCost   float64
	Models      []string
	BurnRate    BurnRate
	Projection  Projection
}

// ActiveBlock partitions entries into contiguous groups separated by
// inactivity gaps strictly longer than GapThreshold and returns the last
// group as the open session, if it is still open at now.
//
// Entries must be ascending by timestamp. The block starts at the first
// group entry's timestamp floored to the UTC hour and is active iff the
// last entry is less than GapThreshold old and now is before EndTime.
func ActiveBlock(entries []UsageEntry, now time.Time) (SessionBlock, bool) {
	if len(entries) == 0 {
		return SessionBlock{}, false
	}

	// Only the final group can be the open session, so earlier groups are
	// discarded as soon as a gap closes them.
	groupStart := 0
	for i := 1; i < len(entries); i++ {
		if entries[i].Timestamp.Sub(entries[i-1].Timestamp) > GapThreshold {
			groupStart = i
		}
	}
	group := entries[groupStart:]

	start := group[0].Timestamp.UTC().Truncate(time.Hour)
	end := start.Add(BlockDuration)
	last := group[len(group)-1].Timestamp

	if now.Sub(last) >= GapThreshold || !now.Before(end) {
		return SessionBlock{}, false
	}

	b := SessionBlock{
		ID:        start.Format(time.RFC3339),
		StartTime: start,
		EndTime:   end,
		Entries:   group,
	}

	models := make(map[string]struct{})
	for _, e := range group {
		b.TotalTokens += e.TotalTokens()
		b.TotalCost += e.CostUSD
		if e.Model != "" {
			models[e.Model] = struct{}{}
		}
	}
	b.Models = make([]string, 0, len(models))
	for m := range models {
		b.Models = append(b.Models, m)
	}
	sort.Strings(b.Models)

	// Clamp elapsed time so a block observed right at its start cannot
	// divide by a near-zero interval.
	elapsed := now.Sub(start)
	elapsedMin := elapsed.Minutes()
	if elapsedMin < 1 {
		elapsedMin = 1
	}
	elapsedHr := elapsed.Hours()
	if elapsedHr < 1.0/60 {
		elapsedHr = 1.0 / 60
	}

	b.BurnRate = BurnRate{
		TokensPerMinute: float64(b.TotalTokens) / elapsedMin,
		CostPerHour:     b.TotalCost / elapsedHr,
	}

	remaining := int(end.Sub(now).Minutes())
	if remaining < 0 {
		remaining = 0
	}
	b.Projection = Projection{
		TotalTokens:      int(b.BurnRate.TokensPerMinute * blockMinutes),
		TotalCost:        b.BurnRate.CostPerHour * blockHours,
		RemainingMinutes: remaining,
	}

	return b, true
}
