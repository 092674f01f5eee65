package main

import (
	"fmt"

	"github.com/fbke/taximpact/internal/config"
	"github.com/spf13/cobra"
)

func validateCmd() *cobra.Command {
	return &cobra.Command{
		Use:          "validate [profile-file]",
		Short:        "Validate a profile file and the active rule book",
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			book, err := loadRuleBook(cmd)
			if err != nil {
				return err
			}
			if err := book.Validate(); err != nil {
				return fmt.Errorf("rule book validation failed: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Rule book is valid (years: %v)\n", book.Years())

			if len(args) == 0 {
				return nil
			}
			if _, err := config.NewInputParser().LoadFromFile(args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Profile file %s is valid\n", args[0])
			return nil
		},
	}
}
