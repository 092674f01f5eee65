package calculation

import (
	"testing"

	"github.com/fbke/taximpact/internal/domain"
	"github.com/fbke/taximpact/internal/rules"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func assertAmount(t *testing.T, want int64, got decimal.Decimal, field string) {
	t.Helper()
	assert.True(t, decimal.NewFromInt(want).Equal(got), "%s: want %d, got %s", field, want, got.String())
}

func employed(monthly int64) domain.Profile {
	return domain.Profile{
		IncomeType:    domain.IncomeEmployed,
		MonthlyIncome: decimal.NewFromInt(monthly),
	}
}

func breakdowns(t *testing.T, p domain.Profile) (domain.Breakdown, domain.Breakdown) {
	t.Helper()
	calc := NewCalculator()
	b24, err := calc.ComputeBreakdown(p, rules.Year2024)
	require.NoError(t, err)
	b25, err := calc.ComputeBreakdown(p, rules.Year2025)
	require.NoError(t, err)
	return b24, b25
}

func TestNewCalculator(t *testing.T) {
	calc := NewCalculator()

	assert.NotNil(t, calc.Rules, "Should load default rules")
	assert.IsType(t, NopLogger{}, calc.Logger, "Should default to no-op logger")
	assert.Equal(t, []int{2024, 2025}, calc.Rules.Years())
}

func TestCalculator_SetLogger(t *testing.T) {
	calc := NewCalculator()

	logger := &TestLogger{}
	calc.SetLogger(logger)
	assert.Equal(t, logger, calc.Logger)

	_, err := calc.ComputeBreakdown(employed(50000), rules.Year2025)
	require.NoError(t, err)
	assert.NotEmpty(t, logger.messages, "Should trace calculation steps")

	calc.SetLogger(nil)
	assert.IsType(t, NopLogger{}, calc.Logger)
}

func TestComputeBreakdown_UnknownYear(t *testing.T) {
	_, err := NewCalculator().ComputeBreakdown(employed(50000), 2019)

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnknownYear)
	assert.Contains(t, err.Error(), "2019")
}

func TestComputeBreakdown_ZeroIncome(t *testing.T) {
	p := domain.Profile{IncomeType: domain.IncomeEmployed}

	b24, b25 := breakdowns(t, p)

	for _, b := range []domain.Breakdown{b24, b25} {
		assert.True(t, b.GrossPay.IsZero())
		assert.True(t, b.TotalDeductions.IsZero())
		assert.True(t, b.PAYEAfterReliefs.IsZero())
		assert.True(t, b.AdjustedPAYE.IsZero())
		assert.True(t, b.CategoryTaxes().IsZero())
		assert.True(t, b.TotalTaxBurden.IsZero())
		assert.True(t, b.NetIncome.IsZero())
	}
}

func TestComputeBreakdown_StatutoryDeductions(t *testing.T) {
	b24, b25 := breakdowns(t, employed(200000))

	for _, b := range []domain.Breakdown{b24, b25} {
		assertAmount(t, 2400000, b.GrossPay, "gross")
		assertAmount(t, 83520, b.NSSFDeduction, "nssf capped at 6960/month")
		assertAmount(t, 66000, b.SHIFDeduction, "shif")
		assertAmount(t, 36000, b.HousingLevyDeduction, "housing levy")
		assertAmount(t, 185520, b.TotalDeductions, "total deductions")
	}
}

func TestComputeBreakdown_StatutoryOverrides(t *testing.T) {
	p := employed(200000)
	p.NSSFContribution = domain.AmountInt(9000)
	p.SHIFContribution = domain.AmountInt(1000)
	p.HousingLevy = domain.AmountInt(500)

	b24, _ := breakdowns(t, p)

	assertAmount(t, 83520, b24.NSSFDeduction, "override still capped")
	assertAmount(t, 12000, b24.SHIFDeduction, "shif override")
	assertAmount(t, 6000, b24.HousingLevyDeduction, "levy override")
}

func TestComputeBreakdown_VoluntaryCaps(t *testing.T) {
	p := employed(300000)
	p.PensionContribution = domain.AmountInt(45000)
	p.MortgageInterest = domain.AmountInt(10000)
	p.MedicalFundContribution = domain.AmountInt(20000)

	b24, _ := breakdowns(t, p)

	assertAmount(t, 360000, b24.PensionDeduction, "pension capped at 30000/month")
	assertAmount(t, 120000, b24.MortgageInterestDeduction, "mortgage under cap")
	assertAmount(t, 180000, b24.MedicalFundDeduction, "medical capped at 15000/month")
}

func TestComputeBreakdown_ConstructionAllowance(t *testing.T) {
	p := employed(300000)
	p.MortgageInterest = domain.AmountInt(30000)
	p.ConstructionCosts = domain.AmountInt(20000)

	b24, b25 := breakdowns(t, p)

	assertAmount(t, 0, b24.ConstructionCostDeduction, "no allowance in 2024")
	assertAmount(t, 360000, b24.MortgageInterestDeduction, "2024 mortgage")
	assertAmount(t, 180000, b25.ConstructionCostDeduction, "allowance capped at 180000")
	assertAmount(t, 180000, b25.MortgageInterestDeduction, "mortgage recapped to combined 360000")
}

// referencePAYE recomputes both orderings directly from the published figures
func referencePAYE(gross, deductions, reliefs decimal.Decimal) (credit, income decimal.Decimal) {
	bands := rules.Default2024().PAYEBands
	net := decimal.Max(gross.Sub(deductions), decimal.Zero)
	credit = decimal.Max(rules.ProgressiveTax(bands, net).Sub(reliefs), decimal.Zero)
	income = rules.ProgressiveTax(bands, decimal.Max(net.Sub(reliefs), decimal.Zero))
	return credit, income
}

func TestComputeBreakdown_PAYEOrdering(t *testing.T) {
	p := employed(50000)
	p.HomeownerType = domain.HomeownerMortgage
	p.InsurancePremiums = domain.AmountInt(5000)

	b24, b25 := breakdowns(t, p)

	// gross 600000, deductions 36000 + 16500 + 9000
	assertAmount(t, 61500, b24.TotalDeductions, "deductions")
	assertAmount(t, 9000, b24.InsuranceRelief, "insurance relief")
	assertAmount(t, 90000, b24.HousingRelief, "housing relief 2024")
	assertAmount(t, 90000, b25.HousingRelief, "housing relief 2025")

	credit, _ := referencePAYE(b24.GrossPay, b24.TotalDeductions, b24.TotalReliefs)
	_, income := referencePAYE(b25.GrossPay, b25.TotalDeductions, b25.TotalReliefs)

	assert.True(t, credit.Equal(b24.PAYEAfterReliefs), "2024 credits reliefs against tax")
	assert.True(t, income.Equal(b25.PAYEAfterReliefs), "2025 deducts reliefs from income")
	assertAmount(t, 0, b24.PAYEAfterReliefs, "2024 reliefs exceed tax")
	assertAmount(t, 60610, b25.PAYEAfterReliefs, "2025 tax on 410700")
	assert.False(t, b24.PAYEAfterReliefs.Equal(b25.PAYEAfterReliefs))
}

func TestComputeBreakdown_PAYEOrdering_HigherIncome(t *testing.T) {
	p := employed(200000)
	p.HomeownerType = domain.HomeownerMortgage
	p.InsurancePremiums = domain.AmountInt(5000)

	b24, b25 := breakdowns(t, p)

	assertAmount(t, 2214480, b24.TaxableIncome, "2024 taxable")
	assertAmount(t, 601744, b24.PAYEBeforeReliefs, "2024 before reliefs")
	assertAmount(t, 337800, b24.TotalReliefs, "2024 reliefs")
	assertAmount(t, 263944, b24.PAYEAfterReliefs, "2024 after reliefs")

	assertAmount(t, 397800, b25.TotalReliefs, "2025 reliefs")
	assertAmount(t, 1816680, b25.TaxableIncome, "2025 taxable")
	assertAmount(t, 482404, b25.PAYEAfterReliefs, "2025 after reliefs")
}

func TestComputeBreakdown_OrderingsAgreeWithoutReliefs(t *testing.T) {
	p := employed(1000000)
	p.IsDisabled = true

	b24, b25 := breakdowns(t, p)

	assertAmount(t, 0, b24.PersonalRelief, "no personal relief when disabled")
	assertAmount(t, 1800000, b24.DisabilityExemption, "exemption recorded")
	assertAmount(t, 3539668, b24.PAYEAfterReliefs, "2024 PAYE")
	assert.True(t, b24.PAYEAfterReliefs.Equal(b25.PAYEAfterReliefs))
	assertAmount(t, 1739668, b24.AdjustedPAYE, "exemption taken off PAYE")
}

func TestComputeBreakdown_DisabilityFloorsAtZero(t *testing.T) {
	p := employed(100000)
	p.IsDisabled = true

	b24, b25 := breakdowns(t, p)

	assertAmount(t, 0, b24.AdjustedPAYE, "2024")
	assertAmount(t, 0, b25.AdjustedPAYE, "2025")
}

func TestComputeBreakdown_SelfBuiltHousingRelief(t *testing.T) {
	p := employed(50000)
	p.HomeownerType = domain.HomeownerSelfBuilt

	b24, b25 := breakdowns(t, p)

	assertAmount(t, 0, b24.HousingRelief, "self-built ineligible in 2024")
	assertAmount(t, 90000, b25.HousingRelief, "15% of 600000")

	p.MonthlyIncome = decimal.NewFromInt(500000)
	_, b25 = breakdowns(t, p)
	assertAmount(t, 360000, b25.HousingRelief, "capped at 360000")
}

func TestComputeBreakdown_PerDiem(t *testing.T) {
	p := employed(150000)
	p.TravelDaysPerMonth = 5
	p.PerDiemReceived = domain.AmountInt(40000)

	b24, b25 := breakdowns(t, p)

	assertAmount(t, 0, b24.PerDiemBenefit, "baseline year has no benefit")
	assertAmount(t, 108000, b25.PerDiemBenefit, "30% of 360000 no longer taxable")
	assert.True(t, b25.TotalTaxBurden.Equal(b25.AdjustedPAYE.Sub(b25.PerDiemBenefit)))

	p.TravelDaysPerMonth = 0
	_, b25 = breakdowns(t, p)
	assertAmount(t, 0, b25.PerDiemBenefit, "no travel days")
}

func TestComputeBreakdown_BettingExcise(t *testing.T) {
	ratio := decimal.NewFromInt(35).Div(decimal.NewFromInt(20))

	for _, freq := range []domain.BettingFrequency{domain.BettingNone, domain.BettingOccasional, domain.BettingFrequent} {
		p := employed(80000)
		p.BettingFrequency = freq

		b24, b25 := breakdowns(t, p)
		assert.True(t, b24.BettingExciseDuty.Mul(ratio).Equal(b25.BettingExciseDuty), "frequency %s", freq)
	}

	p := employed(80000)
	p.BettingFrequency = domain.BettingFrequent
	b24, b25 := breakdowns(t, p)
	assertAmount(t, 24000, b24.BettingExciseDuty, "2024 frequent")
	assertAmount(t, 42000, b25.BettingExciseDuty, "2025 frequent")
}

func TestComputeBreakdown_VATThreshold(t *testing.T) {
	p := domain.Profile{
		IncomeType:      domain.IncomeBusiness,
		MonthlyIncome:   decimal.NewFromInt(100000),
		MonthlyVATSales: domain.AmountInt(500000),
	}

	b24, b25 := breakdowns(t, p)

	assertAmount(t, 960000, b24.VATPayable, "6M is above the 5M threshold")
	assertAmount(t, 0, b25.VATPayable, "6M is below the 8M threshold")
}

func TestComputeBreakdown_VATETIMSHaircut(t *testing.T) {
	p := domain.Profile{
		IncomeType:          domain.IncomeBusiness,
		MonthlyVATSales:     domain.AmountInt(1000000),
		MonthlyVATPurchases: domain.AmountInt(500000),
	}

	b24, b25 := breakdowns(t, p)
	assertAmount(t, 960000, b24.VATPayable, "2024 full input claim")
	assertAmount(t, 1152000, b25.VATPayable, "2025 input cut by 20% without eTIMS")

	p.HasETIMSCompliance = true
	_, b25 = breakdowns(t, p)
	assertAmount(t, 960000, b25.VATPayable, "2025 with eTIMS")
}

func TestComputeBreakdown_VATTurnoverGate(t *testing.T) {
	p := domain.Profile{
		IncomeType:       domain.IncomeBusiness,
		MonthlyVATSales:  domain.AmountInt(500000),
		BusinessTurnover: domain.AmountInt(9000000),
	}

	_, b25 := breakdowns(t, p)
	assertAmount(t, 960000, b25.VATPayable, "turnover above threshold registers the business")
}

func TestComputeBreakdown_CorporateTax(t *testing.T) {
	p := domain.Profile{
		IncomeType:         domain.IncomeCorporate,
		CompanyType:        domain.CompanyNIFCCertified,
		AnnualProfit:       domain.AmountInt(10000000),
		CarryForwardLosses: domain.AmountInt(9000000),
	}

	b24, b25 := breakdowns(t, p)
	assertAmount(t, 300000, b24.CorporateTax, "30% of 1M after full loss offset")
	assertAmount(t, 375000, b25.CorporateTax, "15% of 2.5M after 75% utilisation")

	p.CompanyType = domain.CompanyRegular
	_, b25 = breakdowns(t, p)
	assertAmount(t, 750000, b25.CorporateTax, "regular company at 30%")

	p.IncomeType = domain.IncomeBusiness
	b24, _ = breakdowns(t, p)
	assertAmount(t, 0, b24.CorporateTax, "only corporate profiles")
}

func TestComputeBreakdown_DigitalEconomy(t *testing.T) {
	p := domain.Profile{
		IncomeType:            domain.IncomeFreelancer,
		MonthlyIncome:         decimal.NewFromInt(100000),
		DigitalServicesIncome: domain.AmountInt(4000000),
		IsNonResident:         true,
	}

	b24, b25 := breakdowns(t, p)

	assertAmount(t, 3600, b24.DigitalAssetTax, "3% of assumed 10% of 1.2M")
	assertAmount(t, 1800, b25.DigitalAssetTax, "1.5% of assumed 10% of 1.2M")
	assertAmount(t, 0, b24.DigitalExciseDuty, "no digital excise in 2024")
	assertAmount(t, 800000, b25.DigitalExciseDuty, "20% digital excise")
	assertAmount(t, 0, b24.SEPTTax, "below the 2024 SEPT threshold")
	assertAmount(t, 240000, b25.SEPTTax, "SEPT unconditional in 2025")

	p.IsNonResident = false
	_, b25 = breakdowns(t, p)
	assertAmount(t, 0, b25.SEPTTax, "resident without international clients")

	p.DigitalAssetTransactions = domain.AmountInt(500000)
	p.IncomeType = domain.IncomeEmployed
	b24, _ = breakdowns(t, p)
	assertAmount(t, 15000, b24.DigitalAssetTax, "declared transactions")
}

func TestComputeBreakdown_CapitalGains(t *testing.T) {
	p := employed(0)
	p.PropertyTransactions = domain.AmountInt(1000000)
	p.PropertyLocation = domain.LocationSEZ
	p.ClubMembershipFees = domain.AmountInt(100000)

	b24, b25 := breakdowns(t, p)
	assertAmount(t, 127500, b24.CapitalGainsTax, "15% investment deduction in 2024")
	assertAmount(t, 165000, b25.CapitalGainsTax, "club fees in the 2025 base")

	p.PropertyLocation = domain.LocationNairobiMombasa
	b24, _ = breakdowns(t, p)
	assertAmount(t, 150000, b24.CapitalGainsTax, "metropolitan property has no deduction")
}

func TestComputeBreakdown_FringeAndTimber(t *testing.T) {
	p := employed(0)
	p.FringeBenefitsProvided = domain.AmountInt(1000000)
	p.TimberSalesIncome = domain.AmountInt(1000000)

	b24, b25 := breakdowns(t, p)
	assertAmount(t, 200000, b24.FringeBenefitsTax, "fbt 2024")
	assertAmount(t, 300000, b25.FringeBenefitsTax, "fbt 2025")
	assertAmount(t, 150000, b24.TimberTax, "timber 2024")
	assertAmount(t, 300000, b25.TimberTax, "timber 2025")
	assertAmount(t, 350000, b24.TotalTaxBurden, "totals")
	assertAmount(t, -350000, b24.NetIncome, "net may be negative")
}

func TestComputeBreakdown_Totals(t *testing.T) {
	p := employed(200000)
	p.HomeownerType = domain.HomeownerMortgage
	p.InsurancePremiums = domain.AmountInt(5000)
	p.BettingFrequency = domain.BettingOccasional

	b24, _ := breakdowns(t, p)

	assertAmount(t, 263944+4800, b24.TotalTaxBurden, "PAYE plus betting excise")
	assertAmount(t, 2400000-185520-263944-4800, b24.NetIncome, "net income")
}

func TestComputeBreakdown_ClampsNegativeInputs(t *testing.T) {
	p := employed(-1000)
	p.PensionContribution = domain.AmountInt(-500)
	p.TimberSalesIncome = domain.AmountInt(-1)

	b24, _ := breakdowns(t, p)

	assert.True(t, b24.GrossPay.IsZero())
	assert.True(t, b24.PensionDeduction.IsZero())
	assert.True(t, b24.TimberTax.IsZero())
}

func TestComputeBreakdown_Deterministic(t *testing.T) {
	p := employed(175000)
	p.HomeownerType = domain.HomeownerMortgage
	p.TravelDaysPerMonth = 3
	p.PerDiemReceived = domain.AmountInt(25000)

	calc := NewCalculator()
	a, err := calc.ComputeBreakdown(p, rules.Year2025)
	require.NoError(t, err)
	b, err := calc.ComputeBreakdown(p, rules.Year2025)
	require.NoError(t, err)

	assert.Equal(t, a, b)
}

func TestComputeBreakdown_CustomRuleBook(t *testing.T) {
	future := rules.Default2025()
	future.Year = 2026
	future.BettingRate = decimal.NewFromFloat(0.50)
	calc := NewCalculatorWithRules(rules.DefaultBook().Merge(&rules.Book{RuleSets: []rules.RuleSet{future}}))

	p := employed(0)
	p.BettingFrequency = domain.BettingOccasional
	b, err := calc.ComputeBreakdown(p, 2026)

	require.NoError(t, err)
	assertAmount(t, 12000, b.BettingExciseDuty, "new year row is used")
}

// TestLogger records messages for assertions
type TestLogger struct {
	messages []string
}

func (tl *TestLogger) Debugf(format string, args ...any) {
	tl.messages = append(tl.messages, "DEBUG: "+format)
}

func (tl *TestLogger) Infof(format string, args ...any) {
	tl.messages = append(tl.messages, "INFO: "+format)
}

func (tl *TestLogger) Warnf(format string, args ...any) {
	tl.messages = append(tl.messages, "WARN: "+format)
}

func (tl *TestLogger) Errorf(format string, args ...any) {
	tl.messages = append(tl.messages, "ERROR: "+format)
}
