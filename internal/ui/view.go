package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/rubensayshi/ccusagebar/internal/domain"
	"github.com/rubensayshi/ccusagebar/internal/pace"
	"github.com/rubensayshi/ccusagebar/internal/theme"
)

const cardWidth = 52

func (a App) View() string {
	var sections []string

	sections = append(sections, a.headerView())
	sections = append(sections, a.blockView())
	sections = append(sections, a.dailyView())
	sections = append(sections, a.weeklyView())
	sections = append(sections, a.footerView())

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (a App) headerView() string {
	title := theme.HeaderStyle.Render("ccusagebar")
	updated := ""
	if !a.snap.LastUpdated.IsZero() {
		updated = theme.MutedStyle.Render("updated " + pace.ShortTime(a.snap.LastUpdated.Local()))
	}
	return joinEnds(title, updated, cardWidth)
}

func (a App) blockView() string {
	if !a.snap.HasBlock {
		return theme.CardStyle.Width(cardWidth).Render(
			theme.HeaderStyle.Render("Current Block") + "\n" +
				theme.MutedStyle.Render("No active session"))
	}

	block := a.snap.Block
	limit := a.cfg.Limits.BlockUSD
	usage := pace.Fraction(block.TotalCost, limit)
	elapsed := domain.BlockDuration - time.Duration(block.Projection.RemainingMinutes)*time.Minute
	timeFrac := pace.TimeFraction(elapsed, domain.BlockDuration)
	band := pace.Evaluate(usage, timeFrac)
	paceStyle := lipgloss.NewStyle().Foreground(theme.PaceColor(band))

	var b strings.Builder
	b.WriteString(joinEnds(
		theme.HeaderStyle.Render("Current Block"),
		theme.MutedStyle.Render(pace.Minutes(block.Projection.RemainingMinutes)),
		cardWidth-4))
	b.WriteString("\n")
	b.WriteString(joinEnds(
		theme.BodyStyle.Render(pace.Currency(block.TotalCost)+" / "+pace.Currency(limit)),
		paceStyle.Render(pace.Percent(usage)),
		cardWidth-4))
	b.WriteString("\n")
	b.WriteString(renderBar(usage, cardWidth-4, theme.PaceColor(band)))
	b.WriteString("\n")
	b.WriteString(joinEnds(
		paceStyle.Render(band.Label()),
		theme.MutedStyle.Render(fmt.Sprintf("Burn: %s  Proj: %s",
			pace.HourlyRate(block.BurnRate.CostPerHour),
			pace.Currency(block.Projection.TotalCost))),
		cardWidth-4))
	b.WriteString("\n")
	b.WriteString(theme.MutedStyle.Render(fmt.Sprintf("Tokens: %s  Models: %s",
		pace.Compact(block.TotalTokens),
		strings.Join(block.Models, ", "))))

	return theme.CardStyle.Width(cardWidth).Render(b.String())
}

func (a App) dailyView() string {
	return theme.CardStyle.Width(cardWidth).Render(joinEnds(
		theme.HeaderStyle.Render("Today"),
		theme.BodyStyle.Render(pace.Currency(a.snap.DailyCost)),
		cardWidth-4))
}

func (a App) weeklyView() string {
	limit := a.cfg.Limits.WeeklyUSD
	usage := pace.Fraction(a.snap.WeeklyCost, limit)

	weekday, err := a.cfg.Week.Weekday()
	if err != nil {
		weekday = time.Wednesday
	}
	now := time.Now()
	reset := domain.WeeklyResetPoint(now, weekday, a.cfg.Week.ResetHour)
	timeFrac := pace.TimeFraction(now.Sub(reset), domain.WeekDuration)
	band := pace.Evaluate(usage, timeFrac)
	paceStyle := lipgloss.NewStyle().Foreground(theme.PaceColor(band))

	var b strings.Builder
	b.WriteString(joinEnds(
		theme.HeaderStyle.Render("This Week"),
		theme.MutedStyle.Render(fmt.Sprintf("resets %s %02d:00 UTC",
			weekday.String()[:3], a.cfg.Week.ResetHour)),
		cardWidth-4))
	b.WriteString("\n")
	b.WriteString(joinEnds(
		theme.BodyStyle.Render(pace.Currency(a.snap.WeeklyCost)+" / "+pace.Currency(limit)),
		paceStyle.Render(pace.Percent(usage)),
		cardWidth-4))
	b.WriteString("\n")
	b.WriteString(renderBar(usage, cardWidth-4, theme.PaceColor(band)))
	b.WriteString("\n")
	b.WriteString(paceStyle.Render(band.Label()))

	return theme.CardStyle.Width(cardWidth).Render(b.String())
}

func (a App) footerView() string {
	footer := theme.MutedStyle.Render("q quit · r refresh")
	if a.snap.LastError != "" {
		footer += "  " + lipgloss.NewStyle().Foreground(theme.ColorRed).Render(a.snap.LastError)
	}
	return footer
}

// renderBar draws a fraction as a filled bar, clamped to full.
func renderBar(fraction float64, width int, color lipgloss.Color) string {
	if width < 1 {
		width = 1
	}
	if fraction < 0 {
		fraction = 0
	}
	if fraction > 1 {
		fraction = 1
	}
	filled := int(fraction * float64(width))
	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
	return lipgloss.NewStyle().Foreground(color).Render(bar)
}

// joinEnds left-aligns a and right-aligns b within width.
func joinEnds(left, right string, width int) string {
	gap := width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	return left + strings.Repeat(" ", gap) + right
}
