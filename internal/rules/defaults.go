package rules

import (
	"github.com/fbke/taximpact/internal/domain"
	"github.com/shopspring/decimal"
)

// KENYA TAX TABLE ASSUMPTIONS:
//
// 1. PAYE bands are the same for both modeled years. The 2025 change is
//    the ordering of reliefs, not the rates.
// 2. Betting excise is modeled on assumed stakes of KES 2,000/month
//    (occasional) and KES 10,000/month (frequent).
// 3. Freelancers without explicit digital asset figures are assumed to
//    route 10% of gross income through digital asset platforms.
// 4. Per diem benefit uses a flat 30% marginal rate as a proxy.
// 5. The 2025 loss carry-forward limit is modeled as a 75% utilisation
//    ceiling on the year's profit, not a per-vintage ledger.

// Modeled tax years
const (
	Year2024 = 2024
	Year2025 = 2025
)

func payeBands() []TaxBand {
	upper := func(v int64) *decimal.Decimal {
		d := decimal.NewFromInt(v)
		return &d
	}
	return []TaxBand{
		{decimal.Zero, upper(288000), decimal.NewFromFloat(0.10)},
		{decimal.NewFromInt(288000), upper(388000), decimal.NewFromFloat(0.25)},
		{decimal.NewFromInt(388000), upper(6000000), decimal.NewFromFloat(0.30)},
		{decimal.NewFromInt(6000000), upper(9600000), decimal.NewFromFloat(0.325)},
		{decimal.NewFromInt(9600000), nil, decimal.NewFromFloat(0.35)},
	}
}

// baseRuleSet carries the facts that did not change between the bills
func baseRuleSet() RuleSet {
	return RuleSet{
		PAYEBands:           payeBands(),
		PersonalRelief:      decimal.NewFromInt(28800),
		DisabilityExemption: decimal.NewFromInt(1800000),
		InsuranceReliefRate: decimal.NewFromFloat(0.15),
		InsuranceReliefCap:  decimal.NewFromInt(60000),

		NSSFRate:        decimal.NewFromFloat(0.06),
		NSSFMonthlyCap:  decimal.NewFromInt(6960),
		SHIFRate:        decimal.NewFromFloat(0.0275),
		HousingLevyRate: decimal.NewFromFloat(0.015),

		PensionMonthlyCap:     decimal.NewFromInt(30000),
		MortgageMonthlyCap:    decimal.NewFromInt(30000),
		MedicalFundMonthlyCap: decimal.NewFromInt(15000),

		HousingReliefRate: decimal.NewFromFloat(0.15),

		PerDiemBaselineDailyLimit: decimal.NewFromInt(2000),
		PerDiemProxyRate:          decimal.NewFromFloat(0.30),

		BettingMonthlyStakes: map[domain.BettingFrequency]decimal.Decimal{
			domain.BettingNone:       decimal.Zero,
			domain.BettingOccasional: decimal.NewFromInt(2000),
			domain.BettingFrequent:   decimal.NewFromInt(10000),
		},

		DigitalAssetProxyShare: decimal.NewFromFloat(0.10),
		VATRate:                decimal.NewFromFloat(0.16),
		CorporateRate:          decimal.NewFromFloat(0.30),
		SEPTRate:               decimal.NewFromFloat(0.06),
		CGTRate:                decimal.NewFromFloat(0.15),
	}
}

// Default2024 returns the rules in force under the Finance Act 2024 baseline
func Default2024() RuleSet {
	rs := baseRuleSet()
	rs.Year = Year2024
	rs.Description = "Finance Bill 2024"
	rs.ReliefsReduceTaxableIncome = false

	rs.HousingReliefCap = decimal.NewFromInt(300000)
	rs.HousingReliefEligible = []domain.HomeownerType{domain.HomeownerMortgage}
	rs.PerDiemDailyLimit = decimal.NewFromInt(2000)

	rs.BettingRate = decimal.NewFromFloat(0.20)
	rs.DigitalAssetRate = decimal.NewFromFloat(0.03)
	rs.VATRegistrationThreshold = decimal.NewFromInt(5000000)
	rs.NonETIMSInputHaircut = decimal.Zero
	rs.FringeBenefitsRate = decimal.NewFromFloat(0.20)
	rs.NIFCCorporateRate = decimal.NewFromFloat(0.30)
	rs.LossUtilisationCap = decimal.NewFromInt(1)
	rs.DigitalExciseRate = decimal.Zero
	rs.SEPTThreshold = decimal.NewFromInt(5000000)

	rs.CGTInvestmentDeduction = decimal.NewFromFloat(0.15)
	rs.CGTDeductionLocations = []domain.PropertyLocation{domain.LocationOtherAreas, domain.LocationSEZ}
	rs.CGTIncludesClubFees = false
	rs.TimberRate = decimal.NewFromFloat(0.15)
	return rs
}

// Default2025 returns the rules proposed by the Finance Bill 2025
func Default2025() RuleSet {
	rs := baseRuleSet()
	rs.Year = Year2025
	rs.Description = "Finance Bill 2025"
	rs.ReliefsReduceTaxableIncome = true

	rs.ConstructionAllowanceCap = decimal.NewFromInt(180000)
	rs.HousingDeductionCap = decimal.NewFromInt(360000)

	rs.HousingReliefCap = decimal.NewFromInt(360000)
	rs.HousingReliefEligible = []domain.HomeownerType{domain.HomeownerMortgage, domain.HomeownerSelfBuilt}
	rs.PerDiemDailyLimit = decimal.NewFromInt(10000)

	rs.BettingRate = decimal.NewFromFloat(0.35)
	rs.DigitalAssetRate = decimal.NewFromFloat(0.015)
	rs.VATRegistrationThreshold = decimal.NewFromInt(8000000)
	rs.NonETIMSInputHaircut = decimal.NewFromFloat(0.20)
	rs.FringeBenefitsRate = decimal.NewFromFloat(0.30)
	rs.NIFCCorporateRate = decimal.NewFromFloat(0.15)
	rs.LossUtilisationCap = decimal.NewFromFloat(0.75)
	rs.DigitalExciseRate = decimal.NewFromFloat(0.20)
	rs.SEPTThreshold = decimal.Zero

	rs.CGTInvestmentDeduction = decimal.Zero
	rs.CGTIncludesClubFees = true
	rs.TimberRate = decimal.NewFromFloat(0.30)
	return rs
}

// DefaultBook returns the built-in 2024 and 2025 rule sets
func DefaultBook() *Book {
	return &Book{RuleSets: []RuleSet{Default2024(), Default2025()}}
}
