package calculation

import (
	"errors"
	"fmt"

	"github.com/fbke/taximpact/internal/domain"
	"github.com/fbke/taximpact/internal/rules"
	"github.com/shopspring/decimal"
)

// ErrUnknownYear is returned when the rule book has no row for a year
var ErrUnknownYear = errors.New("no rule set for tax year")

var monthsPerYear = decimal.NewFromInt(12)

// Calculator computes per-year breakdowns from a rule book. It holds no
// mutable state after construction and is safe for concurrent use.
type Calculator struct {
	Rules  *rules.Book
	Logger Logger
}

// NewCalculator creates a calculator over the built-in rule tables
func NewCalculator() *Calculator {
	return NewCalculatorWithRules(rules.DefaultBook())
}

// NewCalculatorWithRules creates a calculator over a custom rule book
func NewCalculatorWithRules(book *rules.Book) *Calculator {
	if book == nil {
		book = rules.DefaultBook()
	}
	return &Calculator{Rules: book, Logger: NopLogger{}}
}

// SetLogger installs a logger; nil restores the no-op logger
func (c *Calculator) SetLogger(l Logger) {
	if l == nil {
		c.Logger = NopLogger{}
		return
	}
	c.Logger = l
}

// RuleSet returns the rules for a year
func (c *Calculator) RuleSet(year int) (rules.RuleSet, error) {
	rs, ok := c.Rules.Get(year)
	if !ok {
		return rules.RuleSet{}, fmt.Errorf("%w: %d", ErrUnknownYear, year)
	}
	return rs, nil
}

// ComputeBreakdown applies every rule of the given year to the profile.
// Missing optional inputs contribute zero; the only error is an unknown year.
func (c *Calculator) ComputeBreakdown(p domain.Profile, year int) (domain.Breakdown, error) {
	rs, err := c.RuleSet(year)
	if err != nil {
		return domain.Breakdown{}, err
	}

	monthly := nonNeg(p.MonthlyIncome)
	b := domain.Breakdown{
		Year:     year,
		GrossPay: monthly.Mul(monthsPerYear),
	}
	c.Logger.Debugf("[%d] gross pay %s (%s/month)", year, b.GrossPay.StringFixed(2), monthly.StringFixed(2))

	applyStatutoryDeductions(&b, &p, &rs)
	applyVoluntaryDeductions(&b, &p, &rs)
	b.TotalDeductions = b.NSSFDeduction.
		Add(b.SHIFDeduction).
		Add(b.HousingLevyDeduction).
		Add(b.PensionDeduction).
		Add(b.MortgageInterestDeduction).
		Add(b.MedicalFundDeduction).
		Add(b.ConstructionCostDeduction)
	c.Logger.Debugf("[%d] total deductions %s", year, b.TotalDeductions.StringFixed(2))

	applyReliefs(&b, &p, &rs)
	c.Logger.Debugf("[%d] reliefs personal=%s insurance=%s housing=%s per-diem=%s",
		year, b.PersonalRelief.StringFixed(2), b.InsuranceRelief.StringFixed(2),
		b.HousingRelief.StringFixed(2), b.PerDiemBenefit.StringFixed(2))

	applyPAYE(&b, &rs)
	c.Logger.Debugf("[%d] taxable %s PAYE before=%s after=%s (reliefs reduce income: %t)",
		year, b.TaxableIncome.StringFixed(2), b.PAYEBeforeReliefs.StringFixed(2),
		b.PAYEAfterReliefs.StringFixed(2), rs.ReliefsReduceTaxableIncome)

	b.AdjustedPAYE = b.PAYEAfterReliefs
	if p.IsDisabled {
		b.AdjustedPAYE = floorZero(b.PAYEAfterReliefs.Sub(b.DisabilityExemption))
		c.Logger.Debugf("[%d] disability exemption applied, PAYE %s", year, b.AdjustedPAYE.StringFixed(2))
	}

	b.CorporateTax = corporateTax(&p, &rs)
	b.FringeBenefitsTax = fringeBenefitsTax(&p, &rs)
	b.VATPayable = vatPayable(&p, &rs)
	b.DigitalAssetTax = digitalAssetTax(&p, &rs, b.GrossPay)
	b.DigitalExciseDuty = digitalExciseDuty(&p, &rs)
	b.SEPTTax = septTax(&p, &rs)
	b.BettingExciseDuty = bettingExciseDuty(&p, &rs)
	b.CapitalGainsTax = capitalGainsTax(&p, &rs)
	b.TimberTax = timberTax(&p, &rs)
	c.Logger.Debugf("[%d] category taxes %s", year, b.CategoryTaxes().StringFixed(2))

	b.TotalTaxBurden = floorZero(b.AdjustedPAYE.Add(b.CategoryTaxes()).Sub(b.PerDiemBenefit))
	b.NetIncome = b.GrossPay.Sub(b.TotalDeductions).Sub(b.TotalTaxBurden)
	c.Logger.Debugf("[%d] total tax %s net income %s", year, b.TotalTaxBurden.StringFixed(2), b.NetIncome.StringFixed(2))

	return b, nil
}

// nonNeg clamps a caller-supplied amount at zero
func nonNeg(d decimal.Decimal) decimal.Decimal {
	if d.IsNegative() {
		return decimal.Zero
	}
	return d
}

// opt reads an optional amount; nil and negative values are zero
func opt(d *decimal.Decimal) decimal.Decimal {
	if d == nil {
		return decimal.Zero
	}
	return nonNeg(*d)
}

func floorZero(d decimal.Decimal) decimal.Decimal {
	return decimal.Max(d, decimal.Zero)
}
