package rules

import (
	"fmt"
	"os"
	"sort"
	"strconv"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// RuleError reports an inconsistent rule set
type RuleError struct {
	Year    int
	Message string
}

func (e *RuleError) Error() string {
	return "rule set " + strconv.Itoa(e.Year) + ": " + e.Message
}

// Book is the set of modeled tax years, one RuleSet row per year
type Book struct {
	RuleSets []RuleSet `yaml:"rule_sets" json:"ruleSets"`
}

// Get returns the rule set for a year
func (b *Book) Get(year int) (RuleSet, bool) {
	for _, rs := range b.RuleSets {
		if rs.Year == year {
			return rs, true
		}
	}
	return RuleSet{}, false
}

// Years lists the modeled years in ascending order
func (b *Book) Years() []int {
	years := make([]int, 0, len(b.RuleSets))
	for _, rs := range b.RuleSets {
		years = append(years, rs.Year)
	}
	sort.Ints(years)
	return years
}

// Merge returns a new book where rows from other replace rows of the same
// year and unseen years are added
func (b *Book) Merge(other *Book) *Book {
	merged := &Book{RuleSets: append([]RuleSet(nil), b.RuleSets...)}
	if other == nil {
		return merged
	}
	for _, rs := range other.RuleSets {
		replaced := false
		for i := range merged.RuleSets {
			if merged.RuleSets[i].Year == rs.Year {
				merged.RuleSets[i] = rs
				replaced = true
				break
			}
		}
		if !replaced {
			merged.RuleSets = append(merged.RuleSets, rs)
		}
	}
	sort.Slice(merged.RuleSets, func(i, j int) bool { return merged.RuleSets[i].Year < merged.RuleSets[j].Year })
	return merged
}

// Validate checks every row of the book
func (b *Book) Validate() error {
	if len(b.RuleSets) == 0 {
		return fmt.Errorf("rule book has no rule sets")
	}
	seen := make(map[int]bool, len(b.RuleSets))
	for i := range b.RuleSets {
		rs := &b.RuleSets[i]
		if seen[rs.Year] {
			return &RuleError{Year: rs.Year, Message: "duplicate year"}
		}
		seen[rs.Year] = true
		if err := rs.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// Validate checks band continuity, rate ranges and non-negative amounts
func (rs *RuleSet) Validate() error {
	if rs.Year <= 0 {
		return &RuleError{Year: rs.Year, Message: "year is required"}
	}
	if err := rs.validateBands(); err != nil {
		return err
	}

	rates := map[string]decimal.Decimal{
		"insurance_relief_rate":     rs.InsuranceReliefRate,
		"nssf_rate":                 rs.NSSFRate,
		"shif_rate":                 rs.SHIFRate,
		"housing_levy_rate":         rs.HousingLevyRate,
		"housing_relief_rate":       rs.HousingReliefRate,
		"per_diem_proxy_rate":       rs.PerDiemProxyRate,
		"betting_rate":              rs.BettingRate,
		"digital_asset_rate":        rs.DigitalAssetRate,
		"digital_asset_proxy_share": rs.DigitalAssetProxyShare,
		"vat_rate":                  rs.VATRate,
		"non_etims_input_haircut":   rs.NonETIMSInputHaircut,
		"fringe_benefits_rate":      rs.FringeBenefitsRate,
		"corporate_rate":            rs.CorporateRate,
		"nifc_corporate_rate":       rs.NIFCCorporateRate,
		"loss_utilisation_cap":      rs.LossUtilisationCap,
		"digital_excise_rate":       rs.DigitalExciseRate,
		"sept_rate":                 rs.SEPTRate,
		"cgt_rate":                  rs.CGTRate,
		"cgt_investment_deduction":  rs.CGTInvestmentDeduction,
		"timber_rate":               rs.TimberRate,
	}
	for _, name := range sortedKeys(rates) {
		r := rates[name]
		if r.IsNegative() || r.GreaterThan(decimal.NewFromInt(1)) {
			return &RuleError{Year: rs.Year, Message: name + " must be between 0 and 1"}
		}
	}

	amounts := map[string]decimal.Decimal{
		"personal_relief":               rs.PersonalRelief,
		"disability_exemption":          rs.DisabilityExemption,
		"insurance_relief_cap":          rs.InsuranceReliefCap,
		"nssf_monthly_cap":              rs.NSSFMonthlyCap,
		"pension_monthly_cap":           rs.PensionMonthlyCap,
		"mortgage_monthly_cap":          rs.MortgageMonthlyCap,
		"medical_fund_monthly_cap":      rs.MedicalFundMonthlyCap,
		"construction_allowance_cap":    rs.ConstructionAllowanceCap,
		"housing_deduction_cap":         rs.HousingDeductionCap,
		"housing_relief_cap":            rs.HousingReliefCap,
		"per_diem_daily_limit":          rs.PerDiemDailyLimit,
		"per_diem_baseline_daily_limit": rs.PerDiemBaselineDailyLimit,
		"vat_registration_threshold":    rs.VATRegistrationThreshold,
		"sept_threshold":                rs.SEPTThreshold,
	}
	for _, name := range sortedKeys(amounts) {
		if amounts[name].IsNegative() {
			return &RuleError{Year: rs.Year, Message: name + " cannot be negative"}
		}
	}
	for f, stake := range rs.BettingMonthlyStakes {
		if stake.IsNegative() {
			return &RuleError{Year: rs.Year, Message: "betting stake for " + string(f) + " cannot be negative"}
		}
	}
	return nil
}

func (rs *RuleSet) validateBands() error {
	if len(rs.PAYEBands) == 0 {
		return &RuleError{Year: rs.Year, Message: "at least one PAYE band is required"}
	}
	if !rs.PAYEBands[0].Lower.IsZero() {
		return &RuleError{Year: rs.Year, Message: "first PAYE band must start at 0"}
	}
	for i, band := range rs.PAYEBands {
		if band.Rate.IsNegative() || band.Rate.GreaterThan(decimal.NewFromInt(1)) {
			return &RuleError{Year: rs.Year, Message: fmt.Sprintf("PAYE band %d rate must be between 0 and 1", i)}
		}
		last := i == len(rs.PAYEBands)-1
		if band.Upper == nil {
			if !last {
				return &RuleError{Year: rs.Year, Message: fmt.Sprintf("PAYE band %d is unbounded but not last", i)}
			}
			continue
		}
		if band.Upper.LessThanOrEqual(band.Lower) {
			return &RuleError{Year: rs.Year, Message: fmt.Sprintf("PAYE band %d upper must exceed lower", i)}
		}
		if !last && !rs.PAYEBands[i+1].Lower.Equal(*band.Upper) {
			return &RuleError{Year: rs.Year, Message: fmt.Sprintf("PAYE band %d does not start where band %d ends", i+1, i)}
		}
	}
	return nil
}

func sortedKeys(m map[string]decimal.Decimal) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// LoadFromFile reads a YAML rule book and validates it
func LoadFromFile(filename string) (*Book, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read rule book %s: %w", filename, err)
	}

	var book Book
	if err := yaml.Unmarshal(data, &book); err != nil {
		return nil, fmt.Errorf("failed to parse rule book YAML: %w", err)
	}

	if err := book.Validate(); err != nil {
		return nil, fmt.Errorf("rule book validation failed: %w", err)
	}
	return &book, nil
}

// LoadWithDefaults overlays a rule book file on the built-in tables
func LoadWithDefaults(filename string) (*Book, error) {
	overrides, err := LoadFromFile(filename)
	if err != nil {
		return nil, err
	}
	return DefaultBook().Merge(overrides), nil
}

// SaveToFile writes a rule book as YAML
func SaveToFile(book *Book, filename string) error {
	data, err := yaml.Marshal(book)
	if err != nil {
		return err
	}
	return os.WriteFile(filename, data, 0644)
}
