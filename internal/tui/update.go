package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/shopspring/decimal"
)

// keyMap lists the global bindings; the help text feeds the status bar
type keyMap struct {
	Quit      key.Binding
	Help      key.Binding
	Back      key.Binding
	Toggle    key.Binding
	Edit      key.Binding
	Save      key.Binding
	Up        key.Binding
	Down      key.Binding
	Confirm   key.Binding
	Interrupt key.Binding
}

var keys = keyMap{
	Quit:      key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit")),
	Help:      key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
	Back:      key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
	Toggle:    key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "summary/breakdown")),
	Edit:      key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit income")),
	Save:      key.NewBinding(key.WithKeys("w"), key.WithHelp("w", "save profile")),
	Up:        key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "scroll")),
	Down:      key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "scroll")),
	Confirm:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "apply")),
	Interrupt: key.NewBinding(key.WithKeys("ctrl+c")),
}

// Update handles all messages and updates the model state
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case NavigateMsg:
		m.previousScene = m.currentScene
		m.currentScene = msg.Scene
		return m, nil

	case ErrorMsg:
		m.loading = false
		m.err = msg.Err
		return m, nil

	case ProfileLoadedMsg:
		m.profile = msg.Profile
		return m, compareCmd(m.engine, *m.profile)

	case ComparisonCompleteMsg:
		m.loading = false
		if msg.Err != nil {
			m.err = msg.Err
			return m, nil
		}
		m.result = msg.Result
		return m, nil

	case ProfileSavedMsg:
		if msg.Err != nil {
			m.status = "Save failed: " + msg.Err.Error()
		} else {
			m.status = "Profile saved to " + msg.Path
		}
		return m, nil
	}

	if m.editing {
		var cmd tea.Cmd
		m.incomeInput, cmd = m.incomeInput.Update(msg)
		return m, cmd
	}
	return m, nil
}

// handleKeyPress processes keyboard input
func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, keys.Interrupt) {
		return m, tea.Quit
	}
	m.status = ""

	if m.editing {
		return m.handleEditKey(msg)
	}

	if m.err != nil {
		if key.Matches(msg, keys.Quit) {
			return m, tea.Quit
		}
		// any other key dismisses the error
		m.err = nil
		return m, nil
	}

	switch {
	case key.Matches(msg, keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, keys.Help):
		return m, navigate(SceneHelp)

	case key.Matches(msg, keys.Back):
		if m.currentScene != SceneSummary {
			target := m.previousScene
			if target == m.currentScene {
				target = SceneSummary
			}
			return m, navigate(target)
		}

	case key.Matches(msg, keys.Toggle):
		if m.currentScene == SceneBreakdown {
			return m, navigate(SceneSummary)
		}
		return m, navigate(SceneBreakdown)

	case key.Matches(msg, keys.Edit):
		if m.profile == nil {
			return m, nil
		}
		m.editing = true
		m.incomeInput.SetValue(m.profile.MonthlyIncome.String())
		m.incomeInput.CursorEnd()
		m.incomeInput.Focus()
		return m, textinput.Blink

	case key.Matches(msg, keys.Save):
		if m.profile == nil {
			return m, nil
		}
		return m, saveProfileCmd(m.profilePath, *m.profile)

	case key.Matches(msg, keys.Up):
		if m.currentScene == SceneBreakdown && m.tableOffset > 0 {
			m.tableOffset--
		}

	case key.Matches(msg, keys.Down):
		if m.currentScene == SceneBreakdown && m.tableOffset < m.maxTableOffset() {
			m.tableOffset++
		}
	}

	return m, nil
}

// handleEditKey drives the monthly income editor. Enter applies a valid
// non-negative amount and recomputes; esc discards the edit.
func (m Model) handleEditKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Confirm):
		income, err := decimal.NewFromString(m.incomeInput.Value())
		if err != nil || income.IsNegative() {
			m.status = fmt.Sprintf("Invalid monthly income %q", m.incomeInput.Value())
			return m, nil
		}
		m.editing = false
		m.incomeInput.Blur()

		updated := *m.profile
		updated.MonthlyIncome = income
		m.profile = &updated
		m.loading = true
		return m, compareCmd(m.engine, updated)

	case key.Matches(msg, keys.Back):
		m.editing = false
		m.incomeInput.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	m.incomeInput, cmd = m.incomeInput.Update(msg)
	return m, cmd
}

func navigate(scene Scene) tea.Cmd {
	return func() tea.Msg {
		return NavigateMsg{Scene: scene}
	}
}
