package calculation

import (
	"github.com/fbke/taximpact/internal/domain"
	"github.com/fbke/taximpact/internal/rules"
)

// applyPAYE runs the progressive bands in the order the year prescribes.
//
// Credit ordering (2024): tax the income net of deductions, then subtract
// the reliefs from the tax.
//
// Income ordering (2025): subtract the reliefs from income first and tax
// what remains.
//
// The two only agree when the reliefs are zero.
func applyPAYE(b *domain.Breakdown, rs *rules.RuleSet) {
	netOfDeductions := floorZero(b.GrossPay.Sub(b.TotalDeductions))
	b.PAYEBeforeReliefs = rules.ProgressiveTax(rs.PAYEBands, netOfDeductions)

	if rs.ReliefsReduceTaxableIncome {
		b.TaxableIncome = floorZero(netOfDeductions.Sub(b.TotalReliefs))
		b.PAYEAfterReliefs = rules.ProgressiveTax(rs.PAYEBands, b.TaxableIncome)
		return
	}

	b.TaxableIncome = netOfDeductions
	b.PAYEAfterReliefs = floorZero(b.PAYEBeforeReliefs.Sub(b.TotalReliefs))
}
