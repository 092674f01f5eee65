package main

import (
	"fmt"
	"log"
	"os"
	"runtime/debug"

	"github.com/fbke/taximpact/internal/calculation"
	"github.com/fbke/taximpact/internal/rules"
	"github.com/spf13/cobra"
)

// simpleCLILogger implements calculation.Logger using the standard log package
type simpleCLILogger struct{}

func (simpleCLILogger) Debugf(format string, args ...any) { log.Printf("DEBUG: "+format, args...) }
func (simpleCLILogger) Infof(format string, args ...any)  { log.Printf("INFO: "+format, args...) }
func (simpleCLILogger) Warnf(format string, args ...any)  { log.Printf("WARN: "+format, args...) }
func (simpleCLILogger) Errorf(format string, args ...any) { log.Printf("ERROR: "+format, args...) }

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// defaultRulesFile is picked up from the working directory when --rules is
// not given
const defaultRulesFile = "rules.yaml"

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "taximpact %s (commit %s, built %s)\n", version, commit, date)
			if info := buildInfo(); info != "" {
				fmt.Fprintln(cmd.OutOrStdout(), info)
			}
		},
	}
}

func buildInfo() string {
	if bi, ok := debug.ReadBuildInfo(); ok && bi != nil {
		return bi.String()
	}
	return ""
}

// fileExists checks if a file exists
func fileExists(filename string) bool {
	_, err := os.Stat(filename)
	return !os.IsNotExist(err)
}

// loadRuleBook returns the built-in rules overlaid with --rules, or with
// rules.yaml when it exists in the working directory
func loadRuleBook(cmd *cobra.Command) (*rules.Book, error) {
	rulesFile, _ := cmd.Flags().GetString("rules")
	if rulesFile == "" && fileExists(defaultRulesFile) {
		rulesFile = defaultRulesFile
	}
	if rulesFile == "" {
		return rules.DefaultBook(), nil
	}

	book, err := rules.LoadWithDefaults(rulesFile)
	if err != nil {
		return nil, err
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "Loaded rule overrides from %s\n", rulesFile)
	return book, nil
}

// newCalculator builds a calculator over the active rule book, logging each
// step when --debug is set
func newCalculator(cmd *cobra.Command) (*calculation.Calculator, error) {
	book, err := loadRuleBook(cmd)
	if err != nil {
		return nil, err
	}
	calc := calculation.NewCalculatorWithRules(book)
	if debugMode, _ := cmd.Flags().GetBool("debug"); debugMode {
		calc.SetLogger(simpleCLILogger{})
	}
	return calc, nil
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "taximpact",
		Short: "Kenya Finance Act tax impact calculator",
		Long: `Compares a taxpayer's annual tax position under the 2024 and 2025 Kenyan
tax rules: statutory deductions, reliefs, PAYE and the category taxes
introduced or changed by the Finance Act, with the change in net income
and the policy changes behind it.`,
	}

	root.PersistentFlags().String("rules", "", "Path to a rule book YAML overlay (default: rules.yaml if it exists)")
	root.PersistentFlags().Bool("debug", false, "Enable debug output for detailed calculations")

	root.AddCommand(estimateCmd())
	root.AddCommand(breakdownCmd())
	root.AddCommand(validateCmd())
	root.AddCommand(rulesCmd())
	root.AddCommand(versionCmd())
	return root
}

var rootCmd = newRootCmd()

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
