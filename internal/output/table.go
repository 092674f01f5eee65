package output

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/fbke/taximpact/internal/domain"
	"github.com/shopspring/decimal"
)

const tableWidth = 82

// TableFormatter renders the comparison as an aligned console report
type TableFormatter struct{}

func (t TableFormatter) Name() string { return "table" }

func (t TableFormatter) Format(c *domain.Comparison) ([]byte, error) {
	var buf bytes.Buffer

	fmt.Fprintln(&buf, strings.Repeat("=", tableWidth))
	fmt.Fprintf(&buf, "KENYA TAX IMPACT: %d vs %d\n", c.BaseYear, c.TargetYear)
	fmt.Fprintln(&buf, strings.Repeat("=", tableWidth))
	fmt.Fprintln(&buf)
	fmt.Fprintln(&buf, "KEY ASSUMPTIONS:")
	for _, a := range DefaultAssumptions {
		fmt.Fprintf(&buf, "• %s\n", a)
	}
	fmt.Fprintln(&buf)

	fmt.Fprintf(&buf, "%-30s %16s %16s %16s\n", "", fmt.Sprint(c.BaseYear), fmt.Sprint(c.TargetYear), "Change")
	fmt.Fprintln(&buf, strings.Repeat("-", tableWidth))
	base := c.Year2024.LineItems()
	target := c.Year2025.LineItems()
	for i := range base {
		cmpLine(&buf, base[i].Label, base[i].Amount, target[i].Amount)
	}
	fmt.Fprintln(&buf, strings.Repeat("-", tableWidth))
	fmt.Fprintln(&buf)

	fmt.Fprintf(&buf, "Net Effect: %s (%s)\n", FormatCurrency(c.Savings.Amount), FormatPercentage(c.Savings.Percentage))
	if c.BetterOff {
		fmt.Fprintln(&buf, "Result: better off")
	} else {
		fmt.Fprintln(&buf, "Result: not better off")
	}
	fmt.Fprintln(&buf)

	if len(c.Savings.MainBenefits) > 0 {
		fmt.Fprintln(&buf, "MAIN BENEFITS:")
		for i, b := range c.Savings.MainBenefits {
			fmt.Fprintf(&buf, "%d. %s\n", i+1, b)
		}
		fmt.Fprintln(&buf)
	}

	fmt.Fprintln(&buf, c.Explanation)
	return buf.Bytes(), nil
}

func cmpLine(buf *bytes.Buffer, label string, base, target decimal.Decimal) {
	diff := target.Sub(base)
	fmt.Fprintf(buf, "%-30s %16s %16s %16s\n", label, FormatCurrency(base), FormatCurrency(target), FormatCurrency(diff))
}

// BreakdownTable renders a single year's line items
func BreakdownTable(b *domain.Breakdown) []byte {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "TAX BREAKDOWN %d\n", b.Year)
	fmt.Fprintln(&buf, strings.Repeat("-", 48))
	for _, item := range b.LineItems() {
		fmt.Fprintf(&buf, "%-30s %17s\n", item.Label, FormatCurrency(item.Amount))
	}
	return buf.Bytes()
}
