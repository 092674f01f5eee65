package integration

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fbke/taximpact/internal/compare"
	"github.com/fbke/taximpact/internal/config"
	"github.com/fbke/taximpact/internal/domain"
	"github.com/fbke/taximpact/internal/output"
)

var profiles = []string{
	"employed_mortgage.yaml",
	"freelancer_digital.yaml",
	"business_vat.json",
	"corporate_nifc.yaml",
}

func loadComparison(t *testing.T, name string) (*domain.Profile, *domain.Comparison) {
	t.Helper()
	profile, err := config.NewInputParser().LoadFromFile(filepath.Join("..", "testdata", name))
	require.NoError(t, err, "loading %s", name)

	result, err := compare.CompareYears(*profile)
	require.NoError(t, err, "comparing %s", name)
	return profile, result
}

// TestIntegrationSmokeTest runs every sample profile through the whole
// pipeline and every output format
func TestIntegrationSmokeTest(t *testing.T) {
	for _, name := range profiles {
		t.Run(name, func(t *testing.T) {
			_, result := loadComparison(t, name)

			for _, f := range output.Formatters() {
				data, err := f.Format(result)
				require.NoError(t, err, "%s output", f.Name())
				assert.NotEmpty(t, data, "%s output", f.Name())
			}
		})
	}
}

// TestDataConsistency checks the invariants that hold for any profile
func TestDataConsistency(t *testing.T) {
	for _, name := range profiles {
		t.Run(name, func(t *testing.T) {
			_, result := loadComparison(t, name)

			for _, b := range []domain.Breakdown{result.Year2024, result.Year2025} {
				assert.True(t, b.NetIncome.Equal(b.GrossPay.Sub(b.TotalDeductions).Sub(b.TotalTaxBurden)),
					"%d net income must equal gross less deductions and tax", b.Year)
				assert.False(t, b.TotalTaxBurden.IsNegative(), "%d tax burden", b.Year)
				assert.False(t, b.PAYEAfterReliefs.IsNegative(), "%d PAYE", b.Year)
			}

			amount := result.Year2025.NetIncome.Sub(result.Year2024.NetIncome)
			assert.True(t, amount.Equal(result.Savings.Amount))
			assert.Equal(t, amount.IsPositive(), result.BetterOff)
			assert.NotNil(t, result.Savings.MainBenefits)
			assert.NotEmpty(t, result.Explanation)
		})
	}
}

func TestIntegrationRegression(t *testing.T) {
	t.Run("mortgage holder gets the housing relief benefit", func(t *testing.T) {
		_, result := loadComparison(t, "employed_mortgage.yaml")
		require.NotEmpty(t, result.Savings.MainBenefits)
		assert.Contains(t, result.Savings.MainBenefits[0], "Affordable housing relief")
	})

	t.Run("digital asset tax halves", func(t *testing.T) {
		_, result := loadComparison(t, "freelancer_digital.yaml")
		assert.True(t, decimal.NewFromInt(15000).Equal(result.Year2024.DigitalAssetTax))
		assert.True(t, decimal.NewFromInt(7500).Equal(result.Year2025.DigitalAssetTax))
	})

	t.Run("corporate profile has no employment income", func(t *testing.T) {
		profile, result := loadComparison(t, "corporate_nifc.yaml")
		assert.True(t, profile.MonthlyIncome.IsZero())
		assert.True(t, result.Year2024.GrossPay.IsZero())
		assert.True(t, result.Year2025.CorporateTax.LessThan(result.Year2024.CorporateTax))
	})
}

func TestErrorHandling(t *testing.T) {
	dir := t.TempDir()
	parser := config.NewInputParser()

	_, err := parser.LoadFromFile(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)

	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("income_type: retired\nmonthly_income: 1000\n"), 0o644))
	_, err = parser.LoadFromFile(bad)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "income_type")
}

func TestIntegrationBenchmarks(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping timing test in short mode")
	}

	start := time.Now()
	for i := 0; i < 100; i++ {
		for _, name := range profiles {
			loadComparison(t, name)
		}
	}
	assert.Less(t, time.Since(start), 10*time.Second)
}
