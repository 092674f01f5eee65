package output

import (
	"bytes"
	"encoding/csv"
	"strconv"

	"github.com/fbke/taximpact/internal/domain"
)

// CSVFormatter writes one row per line item with both years and the change
type CSVFormatter struct{}

func (c CSVFormatter) Name() string { return "csv" }

func (c CSVFormatter) Format(cmp *domain.Comparison) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)

	header := []string{"Item", strconv.Itoa(cmp.BaseYear), strconv.Itoa(cmp.TargetYear), "Change"}
	if err := w.Write(header); err != nil {
		return nil, err
	}

	base := cmp.Year2024.LineItems()
	target := cmp.Year2025.LineItems()
	for i := range base {
		row := []string{
			base[i].Label,
			base[i].Amount.StringFixed(2),
			target[i].Amount.StringFixed(2),
			target[i].Amount.Sub(base[i].Amount).StringFixed(2),
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}

	if err := w.Write([]string{"Savings percentage", "", "", cmp.Savings.Percentage.StringFixed(2)}); err != nil {
		return nil, err
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// BreakdownCSV writes a single year's line items as label,amount rows
func BreakdownCSV(b *domain.Breakdown) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	if err := w.Write([]string{"Item", strconv.Itoa(b.Year)}); err != nil {
		return nil, err
	}
	for _, item := range b.LineItems() {
		if err := w.Write([]string{item.Label, item.Amount.StringFixed(2)}); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}
