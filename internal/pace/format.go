package pace

import (
	"fmt"
	"time"
)

// Currency formats a USD amount as "$12.34".
func Currency(v float64) string {
	return fmt.Sprintf("$%.2f", v)
}

// Percent formats a fraction as percentage points with one decimal,
// e.g. 0.8 -> "80.0%".
func Percent(fraction float64) string {
	return fmt.Sprintf("%.1f%%", fraction*100)
}

// HourlyRate formats a burn rate as "$1.23/hr".
func HourlyRate(costPerHour float64) string {
	return fmt.Sprintf("$%.2f/hr", costPerHour)
}

// Minutes formats a minute count as "4h 32m left" or "32m left".
func Minutes(minutes int) string {
	h := minutes / 60
	m := minutes % 60
	if h > 0 {
		return fmt.Sprintf("%dh %dm left", h, m)
	}
	return fmt.Sprintf("%dm left", m)
}

// Compact formats a token count with K/M suffix (e.g. 12345 -> "12.3K").
func Compact(n int) string {
	if n < 1000 {
		return fmt.Sprintf("%d", n)
	}
	if n < 1_000_000 {
		return fmt.Sprintf("%.1fK", float64(n)/1000)
	}
	return fmt.Sprintf("%.1fM", float64(n)/1_000_000)
}

// ShortTime formats a timestamp for the footer, e.g. "15:04:05".
func ShortTime(t time.Time) string {
	return t.Format("15:04:05")
}
