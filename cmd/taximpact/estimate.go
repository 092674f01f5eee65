package main

import (
	"fmt"
	"strings"

	"github.com/fbke/taximpact/internal/compare"
	"github.com/fbke/taximpact/internal/config"
	"github.com/fbke/taximpact/internal/domain"
	"github.com/fbke/taximpact/internal/output"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

const defaultPDFFile = "tax_impact_2024_vs_2025.pdf"

func estimateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "estimate [profile-file]",
		Short: "Compare 2024 and 2025 tax for a taxpayer profile",
		Long: `Compare a taxpayer's annual tax under the 2024 and 2025 rules.

The profile is read from a YAML or JSON file, or built from flags when no
file is given.

Examples:
  # Compare a saved profile
  taximpact estimate profile.yaml

  # Quick estimate for a salaried mortgage holder
  taximpact estimate --monthly-income 150000 --homeowner mortgage

  # Write a PDF report
  taximpact estimate profile.yaml --format pdf --output report.pdf`,
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

			result, err := compare.NewEngine(calc).CompareYears(*profile)
			if err != nil {
				return err
			}

			format, _ := cmd.Flags().GetString("format")
			f := output.GetFormatterByName(format)
			if f == nil {
				return fmt.Errorf("unsupported format %q (available: %s)", format, strings.Join(output.FormatterNames(), ", "))
			}

			outFile, _ := cmd.Flags().GetString("output")
			if outFile == "" && f.Name() == "pdf" {
				outFile = defaultPDFFile
			}
			if outFile != "" {
				if err := output.WriteFormatted(f, result, outFile); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Report written to %s\n", outFile)
				return nil
			}

			data, err := f.Format(result)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}

	cmd.Flags().StringP("format", "f", "table", "Output format (table, csv, json, pdf)")
	cmd.Flags().StringP("output", "o", "", "Write the report to a file (pdf defaults to "+defaultPDFFile+")")
	addProfileFlags(cmd)
	return cmd
}

// addProfileFlags registers the flags used to build a profile without a file
func addProfileFlags(cmd *cobra.Command) {
	cmd.Flags().String("income-type", string(domain.IncomeEmployed), "Income type (employed, freelancer, business, corporate)")
	cmd.Flags().String("monthly-income", "0", "Gross monthly income in KES")
	cmd.Flags().String("homeowner", string(domain.HomeownerNone), "Homeowner type (none, mortgage, self_built)")
	cmd.Flags().String("betting", string(domain.BettingNone), "Betting frequency (none, occasional, frequent)")
	cmd.Flags().Bool("disabled", false, "Taxpayer holds a disability exemption certificate")
	cmd.Flags().Int("travel-days", 0, "Work travel days per month")
	cmd.Flags().String("per-diem", "", "Per diem received per month in KES")
}

// profileFromArgs loads the profile file when one is given, otherwise builds
// the profile from flags. Both paths are validated.
func profileFromArgs(cmd *cobra.Command, args []string) (*domain.Profile, error) {
	parser := config.NewInputParser()
	if len(args) == 1 {
		return parser.LoadFromFile(args[0])
	}

	incomeType, _ := cmd.Flags().GetString("income-type")
	monthlyStr, _ := cmd.Flags().GetString("monthly-income")
	homeowner, _ := cmd.Flags().GetString("homeowner")
	betting, _ := cmd.Flags().GetString("betting")
	disabled, _ := cmd.Flags().GetBool("disabled")
	travelDays, _ := cmd.Flags().GetInt("travel-days")
	perDiemStr, _ := cmd.Flags().GetString("per-diem")

	monthly, err := decimal.NewFromString(monthlyStr)
	if err != nil {
		return nil, fmt.Errorf("invalid --monthly-income %q: %w", monthlyStr, err)
	}

	profile := &domain.Profile{
		IncomeType:         domain.IncomeType(incomeType),
		MonthlyIncome:      monthly,
		HomeownerType:      domain.HomeownerType(homeowner),
		BettingFrequency:   domain.BettingFrequency(betting),
		IsDisabled:         disabled,
		TravelDaysPerMonth: travelDays,
	}
	if perDiemStr != "" {
		perDiem, err := decimal.NewFromString(perDiemStr)
		if err != nil {
			return nil, fmt.Errorf("invalid --per-diem %q: %w", perDiemStr, err)
		}
		profile.PerDiemReceived = domain.Amount(perDiem)
	}

	if err := parser.ValidateProfile(profile); err != nil {
		return nil, err
	}
	return profile, nil
}
