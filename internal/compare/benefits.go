package compare

import (
	"fmt"

	"github.com/fbke/taximpact/internal/domain"
	"github.com/fbke/taximpact/internal/output"
	"github.com/fbke/taximpact/internal/rules"
	"github.com/shopspring/decimal"
)

// benefitCheck names one policy change and reports it when it moved in the
// taxpayer's favour
type benefitCheck func(p *domain.Profile, base, target *domain.Breakdown, baseRules, targetRules *rules.RuleSet) (string, bool)

// benefitChecks run in priority order; the resulting list keeps that order
var benefitChecks = []benefitCheck{
	housingReliefIncrease,
	selfBuiltEligibility,
	perDiemIncrease,
	digitalAssetCut,
	bettingPublicGood,
}

func mainBenefits(p *domain.Profile, base, target *domain.Breakdown, baseRules, targetRules *rules.RuleSet) []string {
	benefits := []string{}
	for _, check := range benefitChecks {
		if msg, ok := check(p, base, target, baseRules, targetRules); ok {
			benefits = append(benefits, msg)
		}
	}
	return benefits
}

func housingReliefIncrease(p *domain.Profile, base, target *domain.Breakdown, baseRules, targetRules *rules.RuleSet) (string, bool) {
	if p.Homeowner() != domain.HomeownerMortgage || !target.HousingRelief.GreaterThan(base.HousingRelief) {
		return "", false
	}
	return fmt.Sprintf("Affordable housing relief rises from %s to %s a year (cap raised from %s to %s)",
		output.FormatCurrency(base.HousingRelief), output.FormatCurrency(target.HousingRelief),
		output.FormatCurrency(baseRules.HousingReliefCap), output.FormatCurrency(targetRules.HousingReliefCap)), true
}

func selfBuiltEligibility(p *domain.Profile, base, target *domain.Breakdown, _, _ *rules.RuleSet) (string, bool) {
	if p.Homeowner() != domain.HomeownerSelfBuilt || !base.HousingRelief.IsZero() || !target.HousingRelief.IsPositive() {
		return "", false
	}
	return fmt.Sprintf("Self-built homes now qualify for housing relief worth %s a year",
		output.FormatCurrency(target.HousingRelief)), true
}

func perDiemIncrease(_ *domain.Profile, base, target *domain.Breakdown, baseRules, targetRules *rules.RuleSet) (string, bool) {
	if !target.PerDiemBenefit.GreaterThan(base.PerDiemBenefit) {
		return "", false
	}
	return fmt.Sprintf("Tax-free per diem rises from %s to %s a day, saving about %s a year",
		output.FormatCurrency(baseRules.PerDiemDailyLimit), output.FormatCurrency(targetRules.PerDiemDailyLimit),
		output.FormatCurrency(target.PerDiemBenefit.Sub(base.PerDiemBenefit))), true
}

func digitalAssetCut(_ *domain.Profile, base, target *domain.Breakdown, baseRules, targetRules *rules.RuleSet) (string, bool) {
	if !target.DigitalAssetTax.LessThan(base.DigitalAssetTax) {
		return "", false
	}
	return fmt.Sprintf("Digital asset tax falls from %s to %s, saving %s a year",
		percent(baseRules.DigitalAssetRate), percent(targetRules.DigitalAssetRate),
		output.FormatCurrency(base.DigitalAssetTax.Sub(target.DigitalAssetTax))), true
}

func bettingPublicGood(p *domain.Profile, _, target *domain.Breakdown, _, targetRules *rules.RuleSet) (string, bool) {
	if p.Betting() == domain.BettingNone || !target.BettingExciseDuty.IsPositive() {
		return "", false
	}
	return fmt.Sprintf("Betting excise at %s funds public health and education programmes",
		percent(targetRules.BettingRate)), true
}

// percent renders a rate such as 0.015 as "1.5%"
func percent(rate decimal.Decimal) string {
	return rate.Mul(hundred).String() + "%"
}
