package domain

import "time"

// WeekDuration is the length of one billing week.
const WeekDuration = 7 * 24 * time.Hour

// DailyCost sums the cost of all entries on or after the start of the
// current calendar day in tz.
func DailyCost(entries []UsageEntry, now time.Time, tz *time.Location) float64 {
	local := now.In(tz)
	startOfDay := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, tz)
	return CostSince(entries, startOfDay)
}

// WeeklyCost sums the cost of all entries on or after the most recent
// weekly reset point.
func WeeklyCost(entries []UsageEntry, now time.Time, resetWeekday time.Weekday, resetHour int) float64 {
	return CostSince(entries, WeeklyResetPoint(now, resetWeekday, resetHour))
}

// CostSince sums the cost of entries with timestamp >= since.
// The boundary is inclusive.
func CostSince(entries []UsageEntry, since time.Time) float64 {
	var total float64
	for _, e := range entries {
		if !e.Timestamp.Before(since) {
			total += e.CostUSD
		}
	}
	return total
}

// WeeklyResetPoint returns the most recent instant on/before now whose UTC
// weekday is resetWeekday and whose UTC time-of-day is resetHour:00:00.
// When now falls on the reset weekday but before the reset hour, the point
// is a full week back. The result is always <= now and within the
// preceding seven days.
func WeeklyResetPoint(now time.Time, resetWeekday time.Weekday, resetHour int) time.Time {
	u := now.UTC()
	daysBack := (int(u.Weekday()) - int(resetWeekday) + 7) % 7
	reset := time.Date(u.Year(), u.Month(), u.Day(), resetHour, 0, 0, 0, time.UTC).
		AddDate(0, 0, -daysBack)
	if reset.After(u) {
		reset = reset.AddDate(0, 0, -7)
	}
	return reset
}
