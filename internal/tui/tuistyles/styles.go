// Package tuistyles holds the shared lipgloss palette and styles so that the
// tui package and its components can both use them without an import cycle.
package tuistyles

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/fbke/taximpact/internal/output"
)

// Colors
var (
	ColorPrimary    = lipgloss.Color("#006633")
	ColorSecondary  = lipgloss.Color("#BB0000")
	ColorAccent     = lipgloss.Color("#F2C14E")
	ColorSuccess    = lipgloss.Color("#2E9E5B")
	ColorDanger     = lipgloss.Color("#D64545")
	ColorForeground = lipgloss.Color("#EDEDED")
	ColorMuted      = lipgloss.Color("#8A8A8A")
	ColorBorder     = lipgloss.Color("#444444")
)

// Base styles
var (
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(ColorPrimary).
			Padding(0, 1)

	SubtitleStyle = lipgloss.NewStyle().
			Foreground(ColorMuted).
			Italic(true)

	StatusBarStyle = lipgloss.NewStyle().
			Foreground(ColorForeground).
			Background(lipgloss.Color("#222222")).
			Padding(0, 1)

	StatusKeyStyle = lipgloss.NewStyle().
			Foreground(ColorAccent).
			Bold(true)

	BorderStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder).
			Padding(1, 2)

	MetricLabelStyle = lipgloss.NewStyle().
				Foreground(ColorMuted)

	MetricValueStyle = lipgloss.NewStyle().
				Foreground(ColorForeground).
				Bold(true)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(ColorDanger).
			Bold(true)

	InfoStyle = lipgloss.NewStyle().
			Foreground(ColorAccent)

	TableHeaderStyle = lipgloss.NewStyle().
				Foreground(ColorPrimary).
				Bold(true)

	TableCellStyle = lipgloss.NewStyle().
			Foreground(ColorForeground)

	TableHighlightStyle = lipgloss.NewStyle().
				Foreground(ColorAccent).
				Bold(true)

	HelpKeyStyle = lipgloss.NewStyle().
			Foreground(ColorAccent).
			Bold(true)

	HelpDescStyle = lipgloss.NewStyle().
			Foreground(ColorMuted)
)

// MetricTrendStyle colours a change green when it favours the taxpayer
func MetricTrendStyle(favourable bool) lipgloss.Style {
	if favourable {
		return lipgloss.NewStyle().Foreground(ColorSuccess)
	}
	return lipgloss.NewStyle().Foreground(ColorDanger)
}

// TrendIndicator returns an arrow for the direction of a change
func TrendIndicator(up bool) string {
	if up {
		return "▲"
	}
	return "▼"
}

// FormatCurrency formats shillings the same way as the report formatters
func FormatCurrency(amount decimal.Decimal) string {
	return output.FormatCurrency(amount)
}
