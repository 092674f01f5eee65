package calculation

import (
	"github.com/fbke/taximpact/internal/domain"
	"github.com/fbke/taximpact/internal/rules"
	"github.com/shopspring/decimal"
)

// Each category tax is independent of the others and returns zero when the
// profile does not supply its input.

func corporateTax(p *domain.Profile, rs *rules.RuleSet) decimal.Decimal {
	if p.IncomeType != domain.IncomeCorporate || p.AnnualProfit == nil {
		return decimal.Zero
	}
	profit := opt(p.AnnualProfit)

	// losses may only absorb a share of the year's profit
	offset := decimal.Min(opt(p.CarryForwardLosses), profit.Mul(rs.LossUtilisationCap))
	taxable := floorZero(profit.Sub(offset))

	rate := rs.CorporateRate
	if p.Company().IsNIFC() {
		rate = rs.NIFCCorporateRate
	}
	return taxable.Mul(rate)
}

func fringeBenefitsTax(p *domain.Profile, rs *rules.RuleSet) decimal.Decimal {
	return opt(p.FringeBenefitsProvided).Mul(rs.FringeBenefitsRate)
}

// vatPayable nets output VAT against input VAT once annual turnover reaches
// the registration threshold. Input claims without eTIMS invoices are cut by
// the year's haircut.
func vatPayable(p *domain.Profile, rs *rules.RuleSet) decimal.Decimal {
	if p.MonthlyVATSales == nil {
		return decimal.Zero
	}
	sales := opt(p.MonthlyVATSales).Mul(monthsPerYear)
	turnover := sales
	if p.BusinessTurnover != nil {
		turnover = opt(p.BusinessTurnover)
	}
	if turnover.LessThan(rs.VATRegistrationThreshold) {
		return decimal.Zero
	}

	outputVAT := sales.Mul(rs.VATRate)
	inputVAT := opt(p.MonthlyVATPurchases).Mul(monthsPerYear).Mul(rs.VATRate)
	if !p.HasETIMSCompliance {
		inputVAT = inputVAT.Mul(decimal.NewFromInt(1).Sub(rs.NonETIMSInputHaircut))
	}
	return floorZero(outputVAT.Sub(inputVAT))
}

// digitalAssetTax uses declared transactions, or for freelancers an assumed
// share of gross income
func digitalAssetTax(p *domain.Profile, rs *rules.RuleSet, gross decimal.Decimal) decimal.Decimal {
	var base decimal.Decimal
	switch {
	case p.DigitalAssetTransactions != nil:
		base = opt(p.DigitalAssetTransactions)
	case p.IncomeType == domain.IncomeFreelancer:
		base = gross.Mul(rs.DigitalAssetProxyShare)
	default:
		return decimal.Zero
	}
	return base.Mul(rs.DigitalAssetRate)
}

func digitalExciseDuty(p *domain.Profile, rs *rules.RuleSet) decimal.Decimal {
	return opt(p.DigitalServicesIncome).Mul(rs.DigitalExciseRate)
}

func septTax(p *domain.Profile, rs *rules.RuleSet) decimal.Decimal {
	if p.DigitalServicesIncome == nil || !(p.IsNonResident || p.HasInternationalClients) {
		return decimal.Zero
	}
	income := opt(p.DigitalServicesIncome)
	if income.LessThan(rs.SEPTThreshold) {
		return decimal.Zero
	}
	return income.Mul(rs.SEPTRate)
}

func bettingExciseDuty(p *domain.Profile, rs *rules.RuleSet) decimal.Decimal {
	return rs.MonthlyStakes(p.Betting()).Mul(monthsPerYear).Mul(rs.BettingRate)
}

func capitalGainsTax(p *domain.Profile, rs *rules.RuleSet) decimal.Decimal {
	base := opt(p.PropertyTransactions)
	if p.PropertyTransactions != nil && rs.CGTDeductionApplies(p.PropertyLocation) {
		base = base.Mul(decimal.NewFromInt(1).Sub(rs.CGTInvestmentDeduction))
	}
	if rs.CGTIncludesClubFees {
		base = base.Add(opt(p.ClubMembershipFees))
	}
	return base.Mul(rs.CGTRate)
}

func timberTax(p *domain.Profile, rs *rules.RuleSet) decimal.Decimal {
	return opt(p.TimberSalesIncome).Mul(rs.TimberRate)
}
