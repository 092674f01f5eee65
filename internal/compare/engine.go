package compare

import (
	"fmt"

	"github.com/fbke/taximpact/internal/calculation"
	"github.com/fbke/taximpact/internal/domain"
	"github.com/fbke/taximpact/internal/output"
	"github.com/fbke/taximpact/internal/rules"
	"github.com/shopspring/decimal"
)

// noChangeBand is the absolute net income difference below which two years
// are reported as unchanged
var noChangeBand = decimal.NewFromInt(1)

var hundred = decimal.NewFromInt(100)

// Engine runs the same profile through two tax years and explains the
// difference
type Engine struct {
	Calc *calculation.Calculator
}

// NewEngine creates a comparison engine; a nil calculator uses the built-in
// rule tables
func NewEngine(calc *calculation.Calculator) *Engine {
	if calc == nil {
		calc = calculation.NewCalculator()
	}
	return &Engine{Calc: calc}
}

// CompareYears compares a profile under the 2024 and 2025 rules using the
// built-in rule tables
func CompareYears(p domain.Profile) (*domain.Comparison, error) {
	return NewEngine(nil).CompareYears(p)
}

// CompareYears compares a profile under the 2024 and 2025 rules
func (e *Engine) CompareYears(p domain.Profile) (*domain.Comparison, error) {
	return e.Compare(p, rules.Year2024, rules.Year2025)
}

// Compare computes both breakdowns, the change in net income and the
// reasons behind it
func (e *Engine) Compare(p domain.Profile, baseYear, targetYear int) (*domain.Comparison, error) {
	base, err := e.Calc.ComputeBreakdown(p, baseYear)
	if err != nil {
		return nil, fmt.Errorf("failed to calculate %d breakdown: %w", baseYear, err)
	}
	target, err := e.Calc.ComputeBreakdown(p, targetYear)
	if err != nil {
		return nil, fmt.Errorf("failed to calculate %d breakdown: %w", targetYear, err)
	}

	// both lookups succeeded above
	baseRules, _ := e.Calc.RuleSet(baseYear)
	targetRules, _ := e.Calc.RuleSet(targetYear)

	amount := target.NetIncome.Sub(base.NetIncome)
	savings := domain.Savings{
		Amount:       amount,
		Percentage:   percentageChange(amount, base.NetIncome),
		MainBenefits: mainBenefits(&p, &base, &target, &baseRules, &targetRules),
	}

	e.Calc.Logger.Debugf("comparison %d->%d: net %s -> %s, change %s (%s%%), %d benefits",
		baseYear, targetYear, base.NetIncome.StringFixed(2), target.NetIncome.StringFixed(2),
		amount.StringFixed(2), savings.Percentage.StringFixed(2), len(savings.MainBenefits))

	return &domain.Comparison{
		BaseYear:    baseYear,
		TargetYear:  targetYear,
		Year2024:    base,
		Year2025:    target,
		Savings:     savings,
		BetterOff:   amount.IsPositive(),
		Explanation: explanation(amount, savings.Percentage, baseYear, targetYear),
	}, nil
}

// percentageChange is relative to the base net income. A zero or negative
// base reports 0.
func percentageChange(amount, baseNet decimal.Decimal) decimal.Decimal {
	if !baseNet.IsPositive() {
		return decimal.Zero
	}
	return amount.Div(baseNet).Mul(hundred).Round(2)
}

func explanation(amount, pct decimal.Decimal, baseYear, targetYear int) string {
	switch {
	case amount.Abs().LessThan(noChangeBand):
		return fmt.Sprintf("Your net income is essentially unchanged between %d and %d. "+
			"Changes in reliefs and category taxes offset each other for your situation.",
			baseYear, targetYear)
	case amount.IsPositive():
		return fmt.Sprintf("You are better off under the %d rules: your net income rises by %s a year (%s%% more than in %d). "+
			"Higher reliefs and the new deduction ordering outweigh the broader tax base for your situation.",
			targetYear, output.FormatCurrency(amount), pct.StringFixed(2), baseYear)
	default:
		return fmt.Sprintf("You pay more under the %d rules: your net income falls by %s a year (%s%% less than in %d). "+
			"The broader tax base outweighs the higher reliefs for your situation.",
			targetYear, output.FormatCurrency(amount.Abs()), pct.Abs().StringFixed(2), baseYear)
	}
}
