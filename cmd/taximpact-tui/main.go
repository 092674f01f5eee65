package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/fbke/taximpact/internal/calculation"
	"github.com/fbke/taximpact/internal/compare"
	"github.com/fbke/taximpact/internal/rules"
	"github.com/fbke/taximpact/internal/tui"
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "taximpact-tui [profile-file]",
		Short:        "Interactive 2024 vs 2025 tax comparison",
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			profilePath := args[0]
			if _, err := os.Stat(profilePath); os.IsNotExist(err) {
				return fmt.Errorf("profile file not found: %s", profilePath)
			}

			book := rules.DefaultBook()
			if rulesFile, _ := cmd.Flags().GetString("rules"); rulesFile != "" {
				var err error
				if book, err = rules.LoadWithDefaults(rulesFile); err != nil {
					return err
				}
			}

			engine := compare.NewEngine(calculation.NewCalculatorWithRules(book))
			p := tea.NewProgram(tui.NewModel(profilePath, engine), tea.WithAltScreen())
			if _, err := p.Run(); err != nil {
				return fmt.Errorf("error running TUI: %w", err)
			}
			return nil
		},
	}
	cmd.Flags().String("rules", "", "Path to a rule book YAML overlay")
	return cmd
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
