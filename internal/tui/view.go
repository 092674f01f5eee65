package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"

	"github.com/fbke/taximpact/internal/output"
	"github.com/fbke/taximpact/internal/tui/components"
	"github.com/fbke/taximpact/internal/tui/tuistyles"
)

// chromeHeight is the title, status and padding lines around the content
const chromeHeight = 8

// View renders the current state of the application
func (m Model) View() string {
	if m.err != nil {
		return m.renderApp(m.renderError())
	}
	if m.loading || m.result == nil {
		return m.renderApp(tuistyles.BorderStyle.Render("⠋ Calculating..."))
	}

	var content string
	switch m.currentScene {
	case SceneSummary:
		content = m.renderSummary()
	case SceneBreakdown:
		content = m.renderBreakdown()
	case SceneHelp:
		content = m.renderHelp()
	default:
		content = "Unknown scene"
	}
	return m.renderApp(content)
}

// renderApp wraps content with title bar and status bar
func (m Model) renderApp(content string) string {
	parts := []string{m.renderTitleBar(), content}
	if m.editing {
		parts = append(parts, m.incomeInput.View())
	}
	if m.status != "" {
		parts = append(parts, tuistyles.InfoStyle.Render(m.status))
	}
	parts = append(parts, m.renderStatusBar())
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (m Model) renderTitleBar() string {
	title := tuistyles.TitleStyle.Render("Kenya Tax Impact 2024 vs 2025")
	breadcrumb := m.currentScene.String()
	if m.profilePath != "" {
		breadcrumb = fmt.Sprintf("%s / %s", breadcrumb, m.profilePath)
	}
	return lipgloss.JoinVertical(lipgloss.Left, title, tuistyles.SubtitleStyle.Render(breadcrumb))
}

func (m Model) renderStatusBar() string {
	bindings := []key.Binding{keys.Toggle, keys.Edit, keys.Save, keys.Help, keys.Quit}
	if m.editing {
		bindings = []key.Binding{keys.Confirm, keys.Back}
	}

	shortcuts := make([]string, 0, len(bindings))
	for _, b := range bindings {
		shortcuts = append(shortcuts, tuistyles.StatusKeyStyle.Render(b.Help().Key)+" "+b.Help().Desc)
	}
	return tuistyles.StatusBarStyle.Width(m.width).Render(strings.Join(shortcuts, " • "))
}

func (m Model) renderError() string {
	return tuistyles.ErrorStyle.Render(fmt.Sprintf("Error: %s\n\nPress any key to continue, q to quit", m.err))
}

// renderSummary shows the headline cards, the main benefits and the
// explanation
func (m Model) renderSummary() string {
	r := m.result
	cardWidth := max(24, (m.width-6)/3)

	change := components.NewMetricCard("Change in net income", output.FormatCurrency(r.Savings.Amount)).
		WithTrend(r.Savings.Amount.IsPositive(), r.BetterOff, output.FormatPercentage(r.Savings.Percentage)).
		WithWidth(cardWidth)
	cards := []*components.MetricCard{
		components.NewMetricCard(fmt.Sprintf("Net income %d", r.BaseYear), output.FormatCurrency(r.Year2024.NetIncome)).
			WithDescription("tax " + output.FormatCurrency(r.Year2024.TotalTaxBurden)).
			WithWidth(cardWidth),
		components.NewMetricCard(fmt.Sprintf("Net income %d", r.TargetYear), output.FormatCurrency(r.Year2025.NetIncome)).
			WithDescription("tax " + output.FormatCurrency(r.Year2025.TotalTaxBurden)).
			WithWidth(cardWidth),
		change,
	}

	var sb strings.Builder
	sb.WriteString(tuistyles.MetricLabelStyle.Render("Monthly income: " + output.FormatCurrency(m.profile.MonthlyIncome)))
	sb.WriteString("\n")
	sb.WriteString(components.MetricGrid(cards, 3))
	sb.WriteString("\n\n")

	if len(r.Savings.MainBenefits) > 0 {
		sb.WriteString(tuistyles.TableHeaderStyle.Render("Main benefits"))
		sb.WriteString("\n")
		for _, b := range r.Savings.MainBenefits {
			sb.WriteString("  • " + b + "\n")
		}
		sb.WriteString("\n")
	}

	sb.WriteString(lipgloss.NewStyle().Width(max(40, m.width-4)).Render(r.Explanation))
	return sb.String()
}

func (m Model) renderBreakdown() string {
	table := components.NewLineTable(m.result)
	table.Height = m.tableHeight()
	table.Offset = m.tableOffset
	return tuistyles.BorderStyle.Render(table.Render())
}

func (m Model) tableHeight() int {
	return max(5, m.height-chromeHeight)
}

// maxTableOffset is the last scroll position that still fills the table
func (m Model) maxTableOffset() int {
	if m.result == nil {
		return 0
	}
	rows := len(m.result.Year2024.LineItems())
	return max(0, rows-m.tableHeight())
}

func (m Model) renderHelp() string {
	helpText := `
Kenya Tax Impact Calculator

KEYBOARD SHORTCUTS:
  tab      Switch between summary and breakdown
  e        Edit monthly income (enter to apply, esc to cancel)
  w        Save the profile back to its file
  ↑/k ↓/j  Scroll the breakdown
  ?        Show this help
  esc      Go back
  q/Ctrl+C Quit

Changed rows in the breakdown are highlighted.
`
	return tuistyles.BorderStyle.Render(helpText)
}
