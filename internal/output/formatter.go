package output

import (
	"fmt"
	"os"
	"strings"

	"github.com/fbke/taximpact/internal/domain"
	"github.com/shopspring/decimal"
)

// Formatter renders a comparison in one output format
type Formatter interface {
	Name() string
	Format(c *domain.Comparison) ([]byte, error)
}

// FormatterFunc adapts a plain function to the Formatter interface
type FormatterFunc struct {
	ID string
	F  func(c *domain.Comparison) ([]byte, error)
}

func (f FormatterFunc) Name() string { return f.ID }

func (f FormatterFunc) Format(c *domain.Comparison) ([]byte, error) { return f.F(c) }

// Formatters returns every built-in formatter
func Formatters() []Formatter {
	return []Formatter{
		TableFormatter{},
		CSVFormatter{},
		JSONFormatter{Pretty: true},
		PDFFormatter{},
	}
}

// GetFormatterByName returns the formatter registered under name, or nil
func GetFormatterByName(name string) Formatter {
	for _, f := range Formatters() {
		if f.Name() == name {
			return f
		}
	}
	return nil
}

// FormatterNames lists the registered formatter names for help text
func FormatterNames() []string {
	formatters := Formatters()
	names := make([]string, 0, len(formatters))
	for _, f := range formatters {
		names = append(names, f.Name())
	}
	return names
}

// WriteFormatted renders the comparison and writes it to filename
func WriteFormatted(f Formatter, c *domain.Comparison, filename string) error {
	data, err := f.Format(c)
	if err != nil {
		return fmt.Errorf("failed to format %s output: %w", f.Name(), err)
	}
	if err := os.WriteFile(filename, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", filename, err)
	}
	return nil
}

// FormatCurrency formats an amount as Kenyan shillings with thousands
// separators, e.g. "KES 1,234.56" or "-KES 60.00"
func FormatCurrency(amount decimal.Decimal) string {
	sign := ""
	if amount.IsNegative() {
		sign = "-"
		amount = amount.Abs()
	}
	fixed := amount.StringFixed(2)
	whole, frac, _ := strings.Cut(fixed, ".")
	return sign + "KES " + groupThousands(whole) + "." + frac
}

// FormatPercentage formats a decimal as percentage
func FormatPercentage(amount decimal.Decimal) string {
	return amount.StringFixed(2) + "%"
}

func groupThousands(digits string) string {
	if len(digits) <= 3 {
		return digits
	}
	var sb strings.Builder
	lead := len(digits) % 3
	if lead > 0 {
		sb.WriteString(digits[:lead])
	}
	for i := lead; i < len(digits); i += 3 {
		if sb.Len() > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(digits[i : i+3])
	}
	return sb.String()
}
