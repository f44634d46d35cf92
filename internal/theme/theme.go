package theme

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/rubensayshi/ccusagebar/internal/pace"
)

// Base palette
var (
	ColorGreen  = lipgloss.Color("#3fb950")
	ColorYellow = lipgloss.Color("#ffe3b3")
	ColorOrange = lipgloss.Color("#f6bcb0")
	ColorRed    = lipgloss.Color("#f07070")

	ColorBorder     = lipgloss.Color("#3a3b52")
	ColorMutedText  = lipgloss.Color("#6b6d8a")
	ColorBodyText   = lipgloss.Color("#c8cad8")
	ColorBrightText = lipgloss.Color("#ecedf5")
	ColorAccent     = lipgloss.Color("#9f99d1")
)

// Common styles
var (
	CardStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder).
			Padding(0, 2)

	HeaderStyle = lipgloss.NewStyle().
			Foreground(ColorBrightText).
			Bold(true)

	MutedStyle = lipgloss.NewStyle().
			Foreground(ColorMutedText)

	BodyStyle = lipgloss.NewStyle().
			Foreground(ColorBodyText)

	AccentStyle = lipgloss.NewStyle().
			Foreground(ColorAccent)
)

// PaceColor maps a pace band to its display color: green while under
// pace, reds as spend outruns the clock.
func PaceColor(b pace.Band) lipgloss.Color {
	switch b {
	case pace.BandNone, pace.BandUnder:
		return ColorGreen
	case pace.BandEarly, pace.BandNear:
		return ColorYellow
	case pace.BandOver:
		return ColorOrange
	default:
		return ColorRed
	}
}
