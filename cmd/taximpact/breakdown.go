package main

import (
	"fmt"

	"github.com/fbke/taximpact/internal/output"
	"github.com/fbke/taximpact/internal/rules"
	"github.com/spf13/cobra"
)

func breakdownCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "breakdown [profile-file]",
		Short: "Show the full tax breakdown for a single year",
		Long: `Show every deduction, relief and tax line for one tax year.

Examples:
  taximpact breakdown profile.yaml --year 2024
  taximpact breakdown --monthly-income 80000 --format json`,
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			profile, err := profileFromArgs(cmd, args)
			if err != nil {
				return err
			}
			calc, err := newCalculator(cmd)
			if err != nil {
				return err
			}

			year, _ := cmd.Flags().GetInt("year")
			b, err := calc.ComputeBreakdown(*profile, year)
			if err != nil {
				return err
			}

			var data []byte
			format, _ := cmd.Flags().GetString("format")
			switch format {
			case "table":
				data = output.BreakdownTable(&b)
			case "csv":
				data, err = output.BreakdownCSV(&b)
			case "json":
				data, err = output.BreakdownJSON(&b)
			default:
				return fmt.Errorf("unsupported format %q (available: table, csv, json)", format)
			}
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}

	cmd.Flags().Int("year", rules.Year2025, "Tax year to compute")
	cmd.Flags().StringP("format", "f", "table", "Output format (table, csv, json)")
	addProfileFlags(cmd)
	return cmd
}
