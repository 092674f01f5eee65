package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/fbke/taximpact/internal/domain"
	"github.com/fbke/taximpact/internal/output"
	"github.com/fbke/taximpact/internal/rules"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

func rulesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rules",
		Short: "Show or export the active tax rule tables",
		Long: `Show the rule tables for each modelled year, or export them as YAML.

The exported file can be edited and passed back with --rules, or saved as
rules.yaml in the working directory to be picked up automatically. Rows for
years already built in replace them; new years are added.

Examples:
  taximpact rules --year 2025
  taximpact rules --export rules.yaml`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			book, err := loadRuleBook(cmd)
			if err != nil {
				return err
			}

			if exportFile, _ := cmd.Flags().GetString("export"); exportFile != "" {
				if err := rules.SaveToFile(book, exportFile); err != nil {
					return fmt.Errorf("failed to export rule book: %w", err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Rule book written to %s\n", exportFile)
				return nil
			}

			year, _ := cmd.Flags().GetInt("year")
			years := book.Years()
			if year != 0 {
				years = []int{year}
			}
			for _, y := range years {
				rs, ok := book.Get(y)
				if !ok {
					return fmt.Errorf("no rule set for tax year %d (available: %v)", y, book.Years())
				}
				printRuleSet(cmd.OutOrStdout(), &rs)
			}
			return nil
		},
	}

	cmd.Flags().Int("year", 0, "Only show this tax year")
	cmd.Flags().String("export", "", "Write the active rule book to a YAML file")
	return cmd
}

func printRuleSet(w io.Writer, rs *rules.RuleSet) {
	fmt.Fprintf(w, "TAX YEAR %d\n", rs.Year)
	fmt.Fprintln(w, strings.Repeat("=", 60))
	if rs.Description != "" {
		fmt.Fprintln(w, rs.Description)
	}

	fmt.Fprintln(w, "\nPAYE bands (annual):")
	for _, band := range rs.PAYEBands {
		upper := "and above"
		if band.Upper != nil {
			upper = "to " + output.FormatCurrency(*band.Upper)
		}
		fmt.Fprintf(w, "  %-18s %-22s %s\n", output.FormatCurrency(band.Lower), upper, rate(band.Rate))
	}
	if rs.ReliefsReduceTaxableIncome {
		fmt.Fprintln(w, "  Reliefs reduce taxable income before the bands")
	} else {
		fmt.Fprintln(w, "  Reliefs are credited against computed tax")
	}

	fmt.Fprintln(w, "\nReliefs and deductions:")
	line(w, "Personal relief", output.FormatCurrency(rs.PersonalRelief))
	line(w, "Disability exemption", output.FormatCurrency(rs.DisabilityExemption))
	line(w, "Insurance relief", rate(rs.InsuranceReliefRate)+" capped at "+output.FormatCurrency(rs.InsuranceReliefCap))
	line(w, "Housing relief", rate(rs.HousingReliefRate)+" capped at "+output.FormatCurrency(rs.HousingReliefCap)+" for "+eligible(rs.HousingReliefEligible))
	line(w, "NSSF", rate(rs.NSSFRate)+" capped at "+output.FormatCurrency(rs.NSSFMonthlyCap)+"/month")
	line(w, "SHIF", rate(rs.SHIFRate))
	line(w, "Housing levy", rate(rs.HousingLevyRate))
	line(w, "Construction allowance cap", output.FormatCurrency(rs.ConstructionAllowanceCap))
	line(w, "Per diem daily limit", output.FormatCurrency(rs.PerDiemDailyLimit))

	fmt.Fprintln(w, "\nCategory taxes:")
	line(w, "Betting excise", rate(rs.BettingRate))
	line(w, "Digital asset tax", rate(rs.DigitalAssetRate))
	line(w, "Digital excise", rate(rs.DigitalExciseRate))
	line(w, "SEP tax", rate(rs.SEPTRate)+" from "+output.FormatCurrency(rs.SEPTThreshold))
	line(w, "VAT", rate(rs.VATRate)+" from "+output.FormatCurrency(rs.VATRegistrationThreshold)+" turnover")
	line(w, "Non-eTIMS input haircut", rate(rs.NonETIMSInputHaircut))
	line(w, "Fringe benefits tax", rate(rs.FringeBenefitsRate))
	line(w, "Corporate tax", rate(rs.CorporateRate)+" (NIFC "+rate(rs.NIFCCorporateRate)+")")
	line(w, "Loss utilisation cap", rate(rs.LossUtilisationCap))
	line(w, "Capital gains tax", rate(rs.CGTRate))
	line(w, "Timber tax", rate(rs.TimberRate))
	fmt.Fprintln(w)
}

func line(w io.Writer, label, value string) {
	fmt.Fprintf(w, "  %-28s %s\n", label, value)
}

func rate(r decimal.Decimal) string {
	return r.Mul(decimal.NewFromInt(100)).String() + "%"
}

func eligible(types []domain.HomeownerType) string {
	if len(types) == 0 {
		return "nobody"
	}
	names := make([]string, 0, len(types))
	for _, t := range types {
		names = append(names, string(t))
	}
	return strings.Join(names, ", ")
}
