package domain

import (
	"github.com/shopspring/decimal"
)

// Breakdown is the full set of tax line items for one profile under one
// tax year's rules. All amounts are annual KES.
type Breakdown struct {
	Year     int             `yaml:"year" json:"year"`
	GrossPay decimal.Decimal `yaml:"gross_pay" json:"grossPay"`

	// Deductions
	NSSFDeduction             decimal.Decimal `yaml:"nssf_deduction" json:"nssfDeduction"`
	SHIFDeduction             decimal.Decimal `yaml:"shif_deduction" json:"shifDeduction"`
	HousingLevyDeduction      decimal.Decimal `yaml:"housing_levy_deduction" json:"housingLevyDeduction"`
	PensionDeduction          decimal.Decimal `yaml:"pension_deduction" json:"pensionDeduction"`
	MortgageInterestDeduction decimal.Decimal `yaml:"mortgage_interest_deduction" json:"mortgageInterestDeduction"`
	MedicalFundDeduction      decimal.Decimal `yaml:"medical_fund_deduction" json:"medicalFundDeduction"`
	ConstructionCostDeduction decimal.Decimal `yaml:"construction_cost_deduction" json:"constructionCostDeduction"`

	// Reliefs
	PersonalRelief      decimal.Decimal `yaml:"personal_relief" json:"personalRelief"`
	InsuranceRelief     decimal.Decimal `yaml:"insurance_relief" json:"insuranceRelief"`
	DisabilityExemption decimal.Decimal `yaml:"disability_exemption" json:"disabilityExemption"`
	HousingRelief       decimal.Decimal `yaml:"housing_relief" json:"housingRelief"`
	PerDiemBenefit      decimal.Decimal `yaml:"per_diem_benefit" json:"perDiemBenefit"`

	// PAYE
	TaxableIncome     decimal.Decimal `yaml:"taxable_income" json:"taxableIncome"`
	PAYEBeforeReliefs decimal.Decimal `yaml:"paye_before_reliefs" json:"payeBeforeReliefs"`
	PAYEAfterReliefs  decimal.Decimal `yaml:"paye_after_reliefs" json:"payeAfterReliefs"`
	AdjustedPAYE      decimal.Decimal `yaml:"adjusted_paye" json:"adjustedPaye"`

	// Business and corporate
	CorporateTax      decimal.Decimal `yaml:"corporate_tax" json:"corporateTax"`
	FringeBenefitsTax decimal.Decimal `yaml:"fringe_benefits_tax" json:"fringeBenefitsTax"`
	VATPayable        decimal.Decimal `yaml:"vat_payable" json:"vatPayable"`

	// Digital economy
	DigitalAssetTax   decimal.Decimal `yaml:"digital_asset_tax" json:"digitalAssetTax"`
	DigitalExciseDuty decimal.Decimal `yaml:"digital_excise_duty" json:"digitalExciseDuty"`
	SEPTTax           decimal.Decimal `yaml:"sept_tax" json:"septTax"`

	// Other
	BettingExciseDuty decimal.Decimal `yaml:"betting_excise_duty" json:"bettingExciseDuty"`
	CapitalGainsTax   decimal.Decimal `yaml:"capital_gains_tax" json:"capitalGainsTax"`
	TimberTax         decimal.Decimal `yaml:"timber_tax" json:"timberTax"`

	// Totals
	TotalDeductions decimal.Decimal `yaml:"total_deductions" json:"totalDeductions"`
	TotalReliefs    decimal.Decimal `yaml:"total_reliefs" json:"totalReliefs"`
	TotalTaxBurden  decimal.Decimal `yaml:"total_tax_burden" json:"totalTaxBurden"`
	NetIncome       decimal.Decimal `yaml:"net_income" json:"netIncome"`
}

// CategoryTaxes sums every tax other than PAYE
func (b *Breakdown) CategoryTaxes() decimal.Decimal {
	return b.CorporateTax.
		Add(b.FringeBenefitsTax).
		Add(b.VATPayable).
		Add(b.DigitalAssetTax).
		Add(b.DigitalExciseDuty).
		Add(b.SEPTTax).
		Add(b.BettingExciseDuty).
		Add(b.CapitalGainsTax).
		Add(b.TimberTax)
}

// LineItem is a labelled breakdown amount, used by formatters
type LineItem struct {
	Label  string
	Amount decimal.Decimal
}

// LineItems returns the breakdown in display order
func (b *Breakdown) LineItems() []LineItem {
	return []LineItem{
		{"Gross pay", b.GrossPay},
		{"NSSF", b.NSSFDeduction},
		{"SHIF", b.SHIFDeduction},
		{"Housing levy", b.HousingLevyDeduction},
		{"Pension", b.PensionDeduction},
		{"Mortgage interest", b.MortgageInterestDeduction},
		{"Medical fund", b.MedicalFundDeduction},
		{"Construction costs", b.ConstructionCostDeduction},
		{"Personal relief", b.PersonalRelief},
		{"Insurance relief", b.InsuranceRelief},
		{"Housing relief", b.HousingRelief},
		{"Disability exemption", b.DisabilityExemption},
		{"Per diem benefit", b.PerDiemBenefit},
		{"Taxable income", b.TaxableIncome},
		{"PAYE before reliefs", b.PAYEBeforeReliefs},
		{"PAYE after reliefs", b.PAYEAfterReliefs},
		{"PAYE (adjusted)", b.AdjustedPAYE},
		{"Corporate tax", b.CorporateTax},
		{"Fringe benefits tax", b.FringeBenefitsTax},
		{"VAT payable", b.VATPayable},
		{"Digital asset tax", b.DigitalAssetTax},
		{"Digital excise duty", b.DigitalExciseDuty},
		{"SEP tax", b.SEPTTax},
		{"Betting excise duty", b.BettingExciseDuty},
		{"Capital gains tax", b.CapitalGainsTax},
		{"Timber tax", b.TimberTax},
		{"Total deductions", b.TotalDeductions},
		{"Total tax burden", b.TotalTaxBurden},
		{"Net income", b.NetIncome},
	}
}

// Savings is the year-over-year change in net income
type Savings struct {
	Amount       decimal.Decimal `yaml:"amount" json:"amount"`
	Percentage   decimal.Decimal `yaml:"percentage" json:"percentage"`
	MainBenefits []string        `yaml:"main_benefits" json:"mainBenefits"`
}

// Comparison pairs two breakdowns of the same profile. Year2024 holds the
// base year and Year2025 the target year.
type Comparison struct {
	BaseYear    int       `yaml:"base_year" json:"baseYear"`
	TargetYear  int       `yaml:"target_year" json:"targetYear"`
	Year2024    Breakdown `yaml:"year_2024" json:"year2024"`
	Year2025    Breakdown `yaml:"year_2025" json:"year2025"`
	Savings     Savings   `yaml:"savings" json:"savings"`
	BetterOff   bool      `yaml:"better_off" json:"betterOff"`
	Explanation string    `yaml:"explanation" json:"explanation"`
}
