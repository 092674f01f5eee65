package tui

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/fbke/taximpact/internal/compare"
	"github.com/fbke/taximpact/internal/config"
	"github.com/fbke/taximpact/internal/domain"
)

// Model represents the entire application state
type Model struct {
	// Navigation
	currentScene  Scene
	previousScene Scene

	// Terminal dimensions
	width  int
	height int

	// Profile and results
	profilePath string
	profile     *domain.Profile
	engine      *compare.Engine
	result      *domain.Comparison

	// Monthly income editor
	incomeInput textinput.Model
	editing     bool

	// Breakdown scroll position
	tableOffset int

	// Status line message, cleared on the next key press
	status string

	err     error
	loading bool
}

// NewModel creates the application model. A nil engine uses the built-in
// rule tables.
func NewModel(profilePath string, engine *compare.Engine) Model {
	if engine == nil {
		engine = compare.NewEngine(nil)
	}

	ti := textinput.New()
	ti.Placeholder = "e.g., 150000"
	ti.Prompt = "Monthly income (KES): "
	ti.CharLimit = 14
	ti.Width = 20

	return Model{
		currentScene: SceneSummary,
		profilePath:  profilePath,
		engine:       engine,
		incomeInput:  ti,
		loading:      true,
		width:        100,
		height:       30,
	}
}

// Init loads the profile file
func (m Model) Init() tea.Cmd {
	return loadProfileCmd(m.profilePath)
}

// loadProfileCmd returns a command that loads and validates the profile
func loadProfileCmd(path string) tea.Cmd {
	return func() tea.Msg {
		profile, err := config.NewInputParser().LoadFromFile(path)
		if err != nil {
			return ErrorMsg{Err: err}
		}
		return ProfileLoadedMsg{Profile: profile}
	}
}

// compareCmd returns a command that recomputes the comparison for a copy of
// the profile
func compareCmd(engine *compare.Engine, profile domain.Profile) tea.Cmd {
	return func() tea.Msg {
		result, err := engine.CompareYears(profile)
		return ComparisonCompleteMsg{Result: result, Err: err}
	}
}

// saveProfileCmd writes the profile back to its file
func saveProfileCmd(path string, profile domain.Profile) tea.Cmd {
	return func() tea.Msg {
		err := config.NewInputParser().SaveToFile(&profile, path)
		return ProfileSavedMsg{Path: path, Err: err}
	}
}
