// Package rules holds the declarative per-year tax tables. Everything that
// differs between tax years lives in a RuleSet row so the calculator never
// branches on the year itself.
package rules

import (
	"github.com/fbke/taximpact/internal/domain"
	"github.com/shopspring/decimal"
)

// TaxBand is one progressive PAYE band. A nil Upper means unbounded.
type TaxBand struct {
	Lower decimal.Decimal  `yaml:"lower" json:"lower"`
	Upper *decimal.Decimal `yaml:"upper,omitempty" json:"upper,omitempty"`
	Rate  decimal.Decimal  `yaml:"rate" json:"rate"`
}

// RuleSet is every numeric fact the calculator needs for one tax year
type RuleSet struct {
	Year        int    `yaml:"year" json:"year"`
	Description string `yaml:"description" json:"description"`

	PAYEBands []TaxBand `yaml:"paye_bands" json:"payeBands"`
	// ReliefsReduceTaxableIncome applies reliefs to income before the bands
	// instead of crediting them against the computed tax.
	ReliefsReduceTaxableIncome bool `yaml:"reliefs_reduce_taxable_income" json:"reliefsReduceTaxableIncome"`

	PersonalRelief      decimal.Decimal `yaml:"personal_relief" json:"personalRelief"`
	DisabilityExemption decimal.Decimal `yaml:"disability_exemption" json:"disabilityExemption"`
	InsuranceReliefRate decimal.Decimal `yaml:"insurance_relief_rate" json:"insuranceReliefRate"`
	InsuranceReliefCap  decimal.Decimal `yaml:"insurance_relief_cap" json:"insuranceReliefCap"`

	// Statutory deductions
	NSSFRate        decimal.Decimal `yaml:"nssf_rate" json:"nssfRate"`
	NSSFMonthlyCap  decimal.Decimal `yaml:"nssf_monthly_cap" json:"nssfMonthlyCap"`
	SHIFRate        decimal.Decimal `yaml:"shif_rate" json:"shifRate"`
	HousingLevyRate decimal.Decimal `yaml:"housing_levy_rate" json:"housingLevyRate"`

	// Voluntary deduction caps (monthly)
	PensionMonthlyCap     decimal.Decimal `yaml:"pension_monthly_cap" json:"pensionMonthlyCap"`
	MortgageMonthlyCap    decimal.Decimal `yaml:"mortgage_monthly_cap" json:"mortgageMonthlyCap"`
	MedicalFundMonthlyCap decimal.Decimal `yaml:"medical_fund_monthly_cap" json:"medicalFundMonthlyCap"`
	// Zero disables the construction allowance for the year
	ConstructionAllowanceCap decimal.Decimal `yaml:"construction_allowance_cap" json:"constructionAllowanceCap"`
	// Combined annual cap on mortgage interest plus construction costs
	HousingDeductionCap decimal.Decimal `yaml:"housing_deduction_cap" json:"housingDeductionCap"`

	HousingReliefRate     decimal.Decimal        `yaml:"housing_relief_rate" json:"housingReliefRate"`
	HousingReliefCap      decimal.Decimal        `yaml:"housing_relief_cap" json:"housingReliefCap"`
	HousingReliefEligible []domain.HomeownerType `yaml:"housing_relief_eligible" json:"housingReliefEligible"`

	PerDiemDailyLimit         decimal.Decimal `yaml:"per_diem_daily_limit" json:"perDiemDailyLimit"`
	PerDiemBaselineDailyLimit decimal.Decimal `yaml:"per_diem_baseline_daily_limit" json:"perDiemBaselineDailyLimit"`
	PerDiemProxyRate          decimal.Decimal `yaml:"per_diem_proxy_rate" json:"perDiemProxyRate"`

	BettingRate          decimal.Decimal                             `yaml:"betting_rate" json:"bettingRate"`
	BettingMonthlyStakes map[domain.BettingFrequency]decimal.Decimal `yaml:"betting_monthly_stakes" json:"bettingMonthlyStakes"`

	DigitalAssetRate decimal.Decimal `yaml:"digital_asset_rate" json:"digitalAssetRate"`
	// Share of a freelancer's gross assumed to be digital asset transactions
	DigitalAssetProxyShare decimal.Decimal `yaml:"digital_asset_proxy_share" json:"digitalAssetProxyShare"`

	VATRate                  decimal.Decimal `yaml:"vat_rate" json:"vatRate"`
	VATRegistrationThreshold decimal.Decimal `yaml:"vat_registration_threshold" json:"vatRegistrationThreshold"`
	NonETIMSInputHaircut     decimal.Decimal `yaml:"non_etims_input_haircut" json:"nonEtimsInputHaircut"`

	FringeBenefitsRate decimal.Decimal `yaml:"fringe_benefits_rate" json:"fringeBenefitsRate"`
	CorporateRate      decimal.Decimal `yaml:"corporate_rate" json:"corporateRate"`
	NIFCCorporateRate  decimal.Decimal `yaml:"nifc_corporate_rate" json:"nifcCorporateRate"`
	LossUtilisationCap decimal.Decimal `yaml:"loss_utilisation_cap" json:"lossUtilisationCap"`

	DigitalExciseRate decimal.Decimal `yaml:"digital_excise_rate" json:"digitalExciseRate"`
	SEPTRate          decimal.Decimal `yaml:"sept_rate" json:"septRate"`
	SEPTThreshold     decimal.Decimal `yaml:"sept_threshold" json:"septThreshold"`

	CGTRate                decimal.Decimal           `yaml:"cgt_rate" json:"cgtRate"`
	CGTInvestmentDeduction decimal.Decimal           `yaml:"cgt_investment_deduction" json:"cgtInvestmentDeduction"`
	CGTDeductionLocations  []domain.PropertyLocation `yaml:"cgt_deduction_locations" json:"cgtDeductionLocations"`
	CGTIncludesClubFees    bool                      `yaml:"cgt_includes_club_fees" json:"cgtIncludesClubFees"`

	TimberRate decimal.Decimal `yaml:"timber_rate" json:"timberRate"`
}

// HousingReliefApplies reports whether a homeowner type earns housing relief
func (rs *RuleSet) HousingReliefApplies(h domain.HomeownerType) bool {
	for _, eligible := range rs.HousingReliefEligible {
		if eligible == h {
			return true
		}
	}
	return false
}

// CGTDeductionApplies reports whether a property location earns the
// capital gains investment deduction
func (rs *RuleSet) CGTDeductionApplies(loc domain.PropertyLocation) bool {
	if rs.CGTInvestmentDeduction.IsZero() {
		return false
	}
	for _, l := range rs.CGTDeductionLocations {
		if l == loc {
			return true
		}
	}
	return false
}

// MonthlyStakes returns the assumed monthly betting stake for a frequency
func (rs *RuleSet) MonthlyStakes(f domain.BettingFrequency) decimal.Decimal {
	if stake, ok := rs.BettingMonthlyStakes[f]; ok {
		return stake
	}
	return decimal.Zero
}

// ProgressiveTax sums the marginal tax of income across the bands
func ProgressiveTax(bands []TaxBand, income decimal.Decimal) decimal.Decimal {
	if income.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}

	tax := decimal.Zero
	for _, band := range bands {
		if income.LessThanOrEqual(band.Lower) {
			break
		}
		top := income
		if band.Upper != nil {
			top = decimal.Min(income, *band.Upper)
		}
		inBand := top.Sub(band.Lower)
		if inBand.GreaterThan(decimal.Zero) {
			tax = tax.Add(inBand.Mul(band.Rate))
		}
	}
	return tax
}
