package domain

import (
	"github.com/shopspring/decimal"
)

// IncomeType selects which sub-rules apply to a profile
type IncomeType string

const (
	IncomeEmployed   IncomeType = "employed"
	IncomeFreelancer IncomeType = "freelancer"
	IncomeBusiness   IncomeType = "business"
	IncomeCorporate  IncomeType = "corporate"
)

// HomeownerType describes how the taxpayer holds their home
type HomeownerType string

const (
	HomeownerNone      HomeownerType = "none"
	HomeownerMortgage  HomeownerType = "mortgage"
	HomeownerSelfBuilt HomeownerType = "self_built"
)

// BettingFrequency buckets the taxpayer's betting habit
type BettingFrequency string

const (
	BettingNone       BettingFrequency = "none"
	BettingOccasional BettingFrequency = "occasional"
	BettingFrequent   BettingFrequency = "frequent"
)

// CompanyType distinguishes NIFC-qualifying entities from regular companies
type CompanyType string

const (
	CompanyRegular       CompanyType = "regular"
	CompanyNIFCStartup   CompanyType = "nifc_startup"
	CompanyNIFCCertified CompanyType = "nifc_certified"
)

// IsNIFC reports whether the company qualifies for the NIFC corporate rate
func (c CompanyType) IsNIFC() bool {
	return c == CompanyNIFCStartup || c == CompanyNIFCCertified
}

// PropertyLocation is used for the capital gains investment deduction
type PropertyLocation string

const (
	LocationNairobiMombasa PropertyLocation = "nairobi_mombasa"
	LocationOtherAreas     PropertyLocation = "other_areas"
	LocationSEZ            PropertyLocation = "sez"
)

// Profile is a single taxpayer or business snapshot as collected by the
// estimator form. Optional monetary fields are nil when not applicable.
// Monthly amounts are per month, all others are annual.
type Profile struct {
	IncomeType    IncomeType      `yaml:"income_type" json:"incomeType"`
	MonthlyIncome decimal.Decimal `yaml:"monthly_income" json:"monthlyIncome"`
	IsDisabled    bool            `yaml:"is_disabled" json:"isDisabled"`

	// Statutory deductions (monthly overrides)
	NSSFContribution *decimal.Decimal `yaml:"nssf_contribution,omitempty" json:"nssfContribution,omitempty"`
	SHIFContribution *decimal.Decimal `yaml:"shif_contribution,omitempty" json:"shifContribution,omitempty"`
	HousingLevy      *decimal.Decimal `yaml:"housing_levy,omitempty" json:"housingLevy,omitempty"`

	// Voluntary deductions (monthly)
	PensionContribution     *decimal.Decimal `yaml:"pension_contribution,omitempty" json:"pensionContribution,omitempty"`
	MortgageInterest        *decimal.Decimal `yaml:"mortgage_interest,omitempty" json:"mortgageInterest,omitempty"`
	MedicalFundContribution *decimal.Decimal `yaml:"medical_fund_contribution,omitempty" json:"medicalFundContribution,omitempty"`
	InsurancePremiums       *decimal.Decimal `yaml:"insurance_premiums,omitempty" json:"insurancePremiums,omitempty"`
	ConstructionCosts       *decimal.Decimal `yaml:"construction_costs,omitempty" json:"constructionCosts,omitempty"`

	// Housing and property
	HomeownerType        HomeownerType    `yaml:"homeowner_type,omitempty" json:"homeownerType,omitempty"`
	PropertyTransactions *decimal.Decimal `yaml:"property_transactions,omitempty" json:"propertyTransactions,omitempty"`
	PropertyLocation     PropertyLocation `yaml:"property_location,omitempty" json:"propertyLocation,omitempty"`

	// Digital economy and business
	DigitalServicesIncome    *decimal.Decimal `yaml:"digital_services_income,omitempty" json:"digitalServicesIncome,omitempty"`
	DigitalAssetTransactions *decimal.Decimal `yaml:"digital_asset_transactions,omitempty" json:"digitalAssetTransactions,omitempty"`
	BusinessTurnover         *decimal.Decimal `yaml:"business_turnover,omitempty" json:"businessTurnover,omitempty"`
	IsNonResident            bool             `yaml:"is_non_resident" json:"isNonResident"`
	HasInternationalClients  bool             `yaml:"has_international_clients" json:"hasInternationalClients"`

	// VAT (monthly)
	MonthlyVATSales     *decimal.Decimal `yaml:"monthly_vat_sales,omitempty" json:"monthlyVATSales,omitempty"`
	MonthlyVATPurchases *decimal.Decimal `yaml:"monthly_vat_purchases,omitempty" json:"monthlyVATPurchases,omitempty"`
	HasETIMSCompliance  bool             `yaml:"has_etims_compliance" json:"hasETIMSCompliance"`

	// Corporate
	CompanyType            CompanyType      `yaml:"company_type,omitempty" json:"companyType,omitempty"`
	AnnualProfit           *decimal.Decimal `yaml:"annual_profit,omitempty" json:"annualProfit,omitempty"`
	CarryForwardLosses     *decimal.Decimal `yaml:"carry_forward_losses,omitempty" json:"carryForwardLosses,omitempty"`
	FringeBenefitsProvided *decimal.Decimal `yaml:"fringe_benefits_provided,omitempty" json:"fringeBenefitsProvided,omitempty"`

	// Lifestyle and employment benefits
	BettingFrequency   BettingFrequency `yaml:"betting_frequency,omitempty" json:"bettingFrequency,omitempty"`
	TravelDaysPerMonth int              `yaml:"travel_days_per_month,omitempty" json:"travelDaysPerMonth,omitempty"`
	PerDiemReceived    *decimal.Decimal `yaml:"per_diem_received,omitempty" json:"perDiemReceived,omitempty"`

	TimberSalesIncome  *decimal.Decimal `yaml:"timber_sales_income,omitempty" json:"timberSalesIncome,omitempty"`
	ClubMembershipFees *decimal.Decimal `yaml:"club_membership_fees,omitempty" json:"clubMembershipFees,omitempty"`
}

// MaxTravelDaysPerMonth bounds Profile.TravelDaysPerMonth
const MaxTravelDaysPerMonth = 31

// Homeowner returns the homeowner type, treating an empty value as none
func (p *Profile) Homeowner() HomeownerType {
	if p.HomeownerType == "" {
		return HomeownerNone
	}
	return p.HomeownerType
}

// Betting returns the betting frequency, treating an empty value as none
func (p *Profile) Betting() BettingFrequency {
	if p.BettingFrequency == "" {
		return BettingNone
	}
	return p.BettingFrequency
}

// Company returns the company type, treating an empty value as regular
func (p *Profile) Company() CompanyType {
	if p.CompanyType == "" {
		return CompanyRegular
	}
	return p.CompanyType
}

// Validate checks the profile against its declared domain. All violations
// are reported together.
func (p *Profile) Validate() error {
	var errs ValidationErrors

	switch p.IncomeType {
	case IncomeEmployed, IncomeFreelancer, IncomeBusiness, IncomeCorporate:
	default:
		errs.add("income_type", "must be one of employed, freelancer, business, corporate")
	}
	if p.MonthlyIncome.IsNegative() {
		errs.add("monthly_income", "cannot be negative")
	}

	for field, v := range p.optionalAmounts() {
		if v != nil && v.IsNegative() {
			errs.add(field, "cannot be negative")
		}
	}

	switch p.HomeownerType {
	case "", HomeownerNone, HomeownerMortgage, HomeownerSelfBuilt:
	default:
		errs.add("homeowner_type", "must be one of none, mortgage, self_built")
	}
	switch p.BettingFrequency {
	case "", BettingNone, BettingOccasional, BettingFrequent:
	default:
		errs.add("betting_frequency", "must be one of none, occasional, frequent")
	}
	switch p.CompanyType {
	case "", CompanyRegular, CompanyNIFCStartup, CompanyNIFCCertified:
	default:
		errs.add("company_type", "must be one of regular, nifc_startup, nifc_certified")
	}
	switch p.PropertyLocation {
	case "", LocationNairobiMombasa, LocationOtherAreas, LocationSEZ:
	default:
		errs.add("property_location", "must be one of nairobi_mombasa, other_areas, sez")
	}

	if p.TravelDaysPerMonth < 0 || p.TravelDaysPerMonth > MaxTravelDaysPerMonth {
		errs.add("travel_days_per_month", "must be between 0 and 31")
	}

	if len(errs) == 0 {
		return nil
	}
	errs.sort()
	return errs
}

// optionalAmounts maps the yaml name of every optional monetary field to its value
func (p *Profile) optionalAmounts() map[string]*decimal.Decimal {
	return map[string]*decimal.Decimal{
		"nssf_contribution":          p.NSSFContribution,
		"shif_contribution":          p.SHIFContribution,
		"housing_levy":               p.HousingLevy,
		"pension_contribution":       p.PensionContribution,
		"mortgage_interest":          p.MortgageInterest,
		"medical_fund_contribution":  p.MedicalFundContribution,
		"insurance_premiums":         p.InsurancePremiums,
		"construction_costs":         p.ConstructionCosts,
		"property_transactions":      p.PropertyTransactions,
		"digital_services_income":    p.DigitalServicesIncome,
		"digital_asset_transactions": p.DigitalAssetTransactions,
		"business_turnover":          p.BusinessTurnover,
		"monthly_vat_sales":          p.MonthlyVATSales,
		"monthly_vat_purchases":      p.MonthlyVATPurchases,
		"annual_profit":              p.AnnualProfit,
		"carry_forward_losses":       p.CarryForwardLosses,
		"fringe_benefits_provided":   p.FringeBenefitsProvided,
		"per_diem_received":          p.PerDiemReceived,
		"timber_sales_income":        p.TimberSalesIncome,
		"club_membership_fees":       p.ClubMembershipFees,
	}
}

// Amount returns a pointer to d, for building profiles in code
func Amount(d decimal.Decimal) *decimal.Decimal {
	return &d
}

// AmountInt returns a pointer to a whole-shilling amount
func AmountInt(v int64) *decimal.Decimal {
	d := decimal.NewFromInt(v)
	return &d
}
