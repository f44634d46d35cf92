// Package pace holds the shared pace evaluation and display formatting
// used by both the terminal view and status consumers, so the thresholds
// live in exactly one place.
package pace

import "time"

// Band classifies spend pace relative to elapsed period time.
type Band int

const (
	// BandNone: no usage yet in the period.
	BandNone Band = iota
	// BandEarly: usage exists but the period has barely begun, so the
	// ratio is meaningless.
	BandEarly
	BandUnder
	BandNear
	BandOver
	BandHot // well over pace
)

// earlyTimeFraction is the cutoff below which pace ratios are unstable.
const earlyTimeFraction = 0.01

// Evaluate classifies usageFraction (cost/limit) against timeFraction
// (elapsed/total period). Bands: ratio <0.8 under, <1.0 near, <1.3 over,
// >=1.3 hot.
func Evaluate(usageFraction, timeFraction float64) Band {
	if timeFraction <= earlyTimeFraction {
		if usageFraction > 0 {
			return BandEarly
		}
		return BandNone
	}
	ratio := usageFraction / timeFraction
	switch {
	case ratio < 0.8:
		return BandUnder
	case ratio < 1.0:
		return BandNear
	case ratio < 1.3:
		return BandOver
	default:
		return BandHot
	}
}

// Label returns the display string for the band.
func (b Band) Label() string {
	switch b {
	case BandNone:
		return "No usage yet"
	case BandEarly:
		return "Early usage"
	case BandUnder:
		return "Under budget pace"
	case BandNear:
		return "Near budget pace"
	case BandOver:
		return "Over budget pace"
	default:
		return "Well over pace"
	}
}

// TimeFraction returns elapsed/total clamped to [0, 1].
func TimeFraction(elapsed, total time.Duration) float64 {
	if total <= 0 {
		return 0
	}
	f := elapsed.Seconds() / total.Seconds()
	if f < 0 {
		return 0
	}
	if f > 1 {
		return 1
	}
	return f
}

// Fraction returns cost/limit, or 0 when the limit is not positive.
func Fraction(cost, limit float64) float64 {
	if limit <= 0 {
		return 0
	}
	return cost / limit
}
