package calculation

import (
	"github.com/fbke/taximpact/internal/domain"
	"github.com/fbke/taximpact/internal/rules"
	"github.com/shopspring/decimal"
)

// applyStatutoryDeductions fills NSSF, SHIF and the housing levy. Overrides
// are monthly contributions; otherwise each is derived from monthly income.
func applyStatutoryDeductions(b *domain.Breakdown, p *domain.Profile, rs *rules.RuleSet) {
	monthly := nonNeg(p.MonthlyIncome)

	nssf := monthly.Mul(rs.NSSFRate)
	if p.NSSFContribution != nil {
		nssf = opt(p.NSSFContribution)
	}
	b.NSSFDeduction = decimal.Min(nssf, rs.NSSFMonthlyCap).Mul(monthsPerYear)

	shif := monthly.Mul(rs.SHIFRate)
	if p.SHIFContribution != nil {
		shif = opt(p.SHIFContribution)
	}
	b.SHIFDeduction = shif.Mul(monthsPerYear)

	levy := monthly.Mul(rs.HousingLevyRate)
	if p.HousingLevy != nil {
		levy = opt(p.HousingLevy)
	}
	b.HousingLevyDeduction = levy.Mul(monthsPerYear)
}

// applyVoluntaryDeductions caps each monthly contribution and annualises it.
// Years with a construction allowance also recap mortgage interest so the
// two housing deductions together stay within the combined cap.
func applyVoluntaryDeductions(b *domain.Breakdown, p *domain.Profile, rs *rules.RuleSet) {
	b.PensionDeduction = monthlyCapped(p.PensionContribution, rs.PensionMonthlyCap)
	b.MortgageInterestDeduction = monthlyCapped(p.MortgageInterest, rs.MortgageMonthlyCap)
	b.MedicalFundDeduction = monthlyCapped(p.MedicalFundContribution, rs.MedicalFundMonthlyCap)

	b.ConstructionCostDeduction = decimal.Zero
	if rs.ConstructionAllowanceCap.IsPositive() && p.ConstructionCosts != nil {
		b.ConstructionCostDeduction = decimal.Min(opt(p.ConstructionCosts).Mul(monthsPerYear), rs.ConstructionAllowanceCap)
	}

	if rs.HousingDeductionCap.IsPositive() {
		room := floorZero(rs.HousingDeductionCap.Sub(b.ConstructionCostDeduction))
		b.MortgageInterestDeduction = decimal.Min(b.MortgageInterestDeduction, room)
	}
}

func monthlyCapped(amount *decimal.Decimal, monthlyCap decimal.Decimal) decimal.Decimal {
	return decimal.Min(opt(amount), monthlyCap).Mul(monthsPerYear)
}

// applyReliefs fills the relief lines. The disability exemption is recorded
// here but only taken off PAYE after the relief ordering has run.
func applyReliefs(b *domain.Breakdown, p *domain.Profile, rs *rules.RuleSet) {
	b.PersonalRelief = rs.PersonalRelief
	b.DisabilityExemption = decimal.Zero
	if p.IsDisabled {
		b.PersonalRelief = decimal.Zero
		b.DisabilityExemption = rs.DisabilityExemption
	}

	premiums := opt(p.InsurancePremiums).Mul(monthsPerYear)
	b.InsuranceRelief = decimal.Min(premiums.Mul(rs.InsuranceReliefRate), rs.InsuranceReliefCap)

	b.HousingRelief = decimal.Zero
	if rs.HousingReliefApplies(p.Homeowner()) {
		b.HousingRelief = decimal.Min(rs.HousingReliefCap, b.GrossPay.Mul(rs.HousingReliefRate))
	}

	b.PerDiemBenefit = perDiemBenefit(p, rs)
	b.TotalReliefs = b.PersonalRelief.Add(b.InsuranceRelief).Add(b.HousingRelief)
}

// perDiemBenefit values the higher tax-free per diem ceiling as the tax no
// longer due on the excess, at the flat proxy rate
func perDiemBenefit(p *domain.Profile, rs *rules.RuleSet) decimal.Decimal {
	if p.TravelDaysPerMonth <= 0 || p.PerDiemReceived == nil {
		return decimal.Zero
	}
	days := decimal.NewFromInt(int64(p.TravelDaysPerMonth))
	received := opt(p.PerDiemReceived)

	excess := func(dailyLimit decimal.Decimal) decimal.Decimal {
		return floorZero(received.Sub(dailyLimit.Mul(days))).Mul(monthsPerYear)
	}

	saved := excess(rs.PerDiemBaselineDailyLimit).Sub(excess(rs.PerDiemDailyLimit))
	return floorZero(saved.Mul(rs.PerDiemProxyRate))
}
