package rules

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/fbke/taximpact/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// closedFormPAYE is the cumulative-constant form of the Kenyan PAYE table
func closedFormPAYE(income decimal.Decimal) decimal.Decimal {
	d := decimal.NewFromInt
	f := decimal.NewFromFloat
	switch {
	case income.LessThanOrEqual(d(288000)):
		return income.Mul(f(0.10))
	case income.LessThanOrEqual(d(388000)):
		return d(28800).Add(income.Sub(d(288000)).Mul(f(0.25)))
	case income.LessThanOrEqual(d(6000000)):
		return d(28800 + 25000).Add(income.Sub(d(388000)).Mul(f(0.30)))
	case income.LessThanOrEqual(d(9600000)):
		return d(28800 + 25000 + 1683600).Add(income.Sub(d(6000000)).Mul(f(0.325)))
	default:
		return d(28800 + 25000 + 1683600 + 1170000).Add(income.Sub(d(9600000)).Mul(f(0.35)))
	}
}

func TestProgressiveTax_BandEdgesMatchClosedForm(t *testing.T) {
	edges := []int64{0, 1, 288000, 288001, 388000, 6000000, 9600000, 12000000}

	for _, rs := range DefaultBook().RuleSets {
		for _, edge := range edges {
			income := decimal.NewFromInt(edge)
			got := ProgressiveTax(rs.PAYEBands, income)
			want := closedFormPAYE(income)
			assert.True(t, want.Equal(got), "year %d income %d: want %s got %s", rs.Year, edge, want, got)
		}
	}
}

func TestProgressiveTax_KnownValues(t *testing.T) {
	bands := payeBands()

	tests := []struct {
		income int64
		want   int64
	}{
		{288000, 28800},
		{388000, 53800},
		{6000000, 1737400},
		{9600000, 2907400},
	}
	for _, tt := range tests {
		got := ProgressiveTax(bands, decimal.NewFromInt(tt.income))
		assert.Equal(t, decimal.NewFromInt(tt.want).String(), got.String(), "income %d", tt.income)
	}
}

func TestProgressiveTax_NonPositiveIncome(t *testing.T) {
	assert.True(t, ProgressiveTax(payeBands(), decimal.NewFromInt(-5000)).IsZero())
	assert.True(t, ProgressiveTax(payeBands(), decimal.Zero).IsZero())
}

func TestDefaultBook_Validates(t *testing.T) {
	book := DefaultBook()

	require.NoError(t, book.Validate())
	assert.Equal(t, []int{Year2024, Year2025}, book.Years())
}

func TestDefaultBook_YearDeltas(t *testing.T) {
	r24, ok := DefaultBook().Get(Year2024)
	require.True(t, ok)
	r25, ok := DefaultBook().Get(Year2025)
	require.True(t, ok)

	assert.False(t, r24.ReliefsReduceTaxableIncome)
	assert.True(t, r25.ReliefsReduceTaxableIncome)
	assert.Equal(t, "300000", r24.HousingReliefCap.String())
	assert.Equal(t, "360000", r25.HousingReliefCap.String())
	assert.False(t, r24.HousingReliefApplies(domain.HomeownerSelfBuilt))
	assert.True(t, r25.HousingReliefApplies(domain.HomeownerSelfBuilt))
	assert.True(t, r24.CGTDeductionApplies(domain.LocationSEZ))
	assert.False(t, r24.CGTDeductionApplies(domain.LocationNairobiMombasa))
	assert.False(t, r25.CGTDeductionApplies(domain.LocationSEZ))
	assert.Equal(t, "0.2", r24.BettingRate.String())
	assert.Equal(t, "0.35", r25.BettingRate.String())
}

func TestBook_Get_UnknownYear(t *testing.T) {
	_, ok := DefaultBook().Get(2030)
	assert.False(t, ok)
}

func TestRuleSet_Validate_Bands(t *testing.T) {
	t.Run("gap between bands", func(t *testing.T) {
		rs := Default2024()
		rs.PAYEBands[1].Lower = decimal.NewFromInt(300000)

		err := rs.Validate()
		require.Error(t, err)
		var ruleErr *RuleError
		require.ErrorAs(t, err, &ruleErr)
		assert.Equal(t, Year2024, ruleErr.Year)
		assert.Contains(t, err.Error(), "does not start where")
	})

	t.Run("unbounded band not last", func(t *testing.T) {
		rs := Default2024()
		rs.PAYEBands[2].Upper = nil

		err := rs.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unbounded")
	})

	t.Run("first band not at zero", func(t *testing.T) {
		rs := Default2025()
		rs.PAYEBands[0].Lower = decimal.NewFromInt(100)

		assert.Error(t, rs.Validate())
	})
}

func TestRuleSet_Validate_Rates(t *testing.T) {
	rs := Default2025()
	rs.BettingRate = decimal.NewFromFloat(1.5)

	err := rs.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "betting_rate")

	rs = Default2025()
	rs.VATRegistrationThreshold = decimal.NewFromInt(-1)
	err = rs.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "vat_registration_threshold")
}

func TestBook_Validate_DuplicateYear(t *testing.T) {
	book := &Book{RuleSets: []RuleSet{Default2024(), Default2024()}}

	err := book.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate year")
}

func TestBook_Merge(t *testing.T) {
	custom := Default2025()
	custom.BettingRate = decimal.NewFromFloat(0.40)
	future := Default2025()
	future.Year = 2026

	merged := DefaultBook().Merge(&Book{RuleSets: []RuleSet{future, custom}})

	assert.Equal(t, []int{2024, 2025, 2026}, merged.Years())
	rs, ok := merged.Get(Year2025)
	require.True(t, ok)
	assert.Equal(t, "0.4", rs.BettingRate.String())

	// the receiver is not modified
	orig, _ := DefaultBook().Get(Year2025)
	assert.Equal(t, "0.35", orig.BettingRate.String())
}

func TestLoadFromFile_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rules.yaml")
	require.NoError(t, SaveToFile(DefaultBook(), path))

	book, err := LoadFromFile(path)
	require.NoError(t, err)

	rs, ok := book.Get(Year2025)
	require.True(t, ok)
	assert.Equal(t, "0.015", rs.DigitalAssetRate.String())
	assert.Nil(t, rs.PAYEBands[len(rs.PAYEBands)-1].Upper)
	assert.Equal(t, "10000", rs.MonthlyStakes(domain.BettingFrequent).String())
}

func TestLoadFromFile_Errors(t *testing.T) {
	_, err := LoadFromFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read rule book")

	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("rule_sets: [::"), 0644))
	_, err = LoadFromFile(path)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse")

	empty := filepath.Join(t.TempDir(), "empty.yaml")
	require.NoError(t, os.WriteFile(empty, []byte("rule_sets: []\n"), 0644))
	_, err = LoadFromFile(empty)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "validation failed")
}

func TestLoadWithDefaults_OverlaysOneYear(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rules.yaml")
	override := Default2025()
	override.Year = 2026
	override.Description = "Finance Bill 2026 draft"
	require.NoError(t, SaveToFile(&Book{RuleSets: []RuleSet{override}}, path))

	book, err := LoadWithDefaults(path)
	require.NoError(t, err)

	assert.Equal(t, []int{2024, 2025, 2026}, book.Years())
	rs, _ := book.Get(2026)
	assert.Equal(t, "Finance Bill 2026 draft", rs.Description)
}
