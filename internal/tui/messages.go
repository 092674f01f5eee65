package tui

import (
	"github.com/fbke/taximpact/internal/domain"
)

// Scene represents different screens in the TUI
type Scene int

const (
	SceneSummary Scene = iota
	SceneBreakdown
	SceneHelp
)

// String returns a human-readable name for a scene
func (s Scene) String() string {
	switch s {
	case SceneSummary:
		return "Summary"
	case SceneBreakdown:
		return "Breakdown"
	case SceneHelp:
		return "Help"
	default:
		return "Unknown"
	}
}

// Message types for the Bubble Tea update cycle

// NavigateMsg switches to a different scene
type NavigateMsg struct {
	Scene Scene
}

// ErrorMsg displays an error to the user
type ErrorMsg struct {
	Err error
}

// ProfileLoadedMsg signals the profile file has been read and validated
type ProfileLoadedMsg struct {
	Profile *domain.Profile
}

// ComparisonCompleteMsg carries a recomputed comparison
type ComparisonCompleteMsg struct {
	Result *domain.Comparison
	Err    error
}

// ProfileSavedMsg signals the edited profile has been written back
type ProfileSavedMsg struct {
	Path string
	Err  error
}
