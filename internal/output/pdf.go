package output

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/go-pdf/fpdf"

	"github.com/fbke/taximpact/internal/domain"
)

// PDFFormatter renders a one-page report: summary header, the line-item
// table for both years with changed rows highlighted, then the benefits and
// explanation
type PDFFormatter struct{}

func (p PDFFormatter) Name() string { return "pdf" }

func (p PDFFormatter) Format(c *domain.Comparison) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(18, 18, 18)
	pdf.SetAutoPageBreak(true, 18)
	pdf.AliasNbPages("{nb}")
	pdf.AddPage()

	drawComparison(pdf, c)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render PDF: %w", err)
	}
	return buf.Bytes(), nil
}

func drawComparison(pdf *fpdf.Fpdf, c *domain.Comparison) {
	pageW, _ := pdf.GetPageSize()
	marginL, marginT, marginR, _ := pdf.GetMargins()
	contentW := pageW - marginL - marginR

	// header bar
	pdf.SetFillColor(0, 102, 51)
	pdf.Rect(marginL, marginT, contentW, 10, "F")
	pdf.SetTextColor(255, 255, 255)
	pdf.SetFont("Helvetica", "B", 11)
	pdf.SetXY(marginL+2, marginT+1.5)
	pdf.CellFormat(contentW-30, 7, fmt.Sprintf("KENYA TAX IMPACT  %d vs %d", c.BaseYear, c.TargetYear), "", 0, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	pdf.CellFormat(0, 7, "Page "+strconv.Itoa(pdf.PageNo())+" of {nb}", "", 1, "R", false, 0, "")
	pdf.SetTextColor(0, 0, 0)

	y := marginT + 14

	// summary box
	pdf.SetFillColor(240, 240, 240)
	pdf.SetFont("Helvetica", "B", 8)
	pdf.SetXY(marginL, y)
	pdf.CellFormat(contentW, 5.5, "SUMMARY", "LRT", 1, "L", true, 0, "")
	y += 5.5

	colThird := contentW / 3
	pdf.SetFont("Helvetica", "", 9)
	pdf.SetXY(marginL, y)
	pdf.CellFormat(colThird, 6.5, fmt.Sprintf("Net %d: %s", c.BaseYear, FormatCurrency(c.Year2024.NetIncome)), "L", 0, "L", false, 0, "")
	pdf.CellFormat(colThird, 6.5, fmt.Sprintf("Net %d: %s", c.TargetYear, FormatCurrency(c.Year2025.NetIncome)), "", 0, "L", false, 0, "")
	pdf.SetFont("Helvetica", "B", 9)
	pdf.CellFormat(colThird, 6.5, "Change: "+FormatCurrency(c.Savings.Amount)+" ("+FormatPercentage(c.Savings.Percentage)+")", "R", 1, "R", false, 0, "")
	y += 6.5
	pdf.SetXY(marginL, y)
	pdf.CellFormat(contentW, 0, "", "LB", 1, "L", false, 0, "")

	y += 5

	// line items
	descW := contentW * 0.40
	amtW := (contentW - descW) / 3

	pdf.SetFillColor(0, 102, 51)
	pdf.SetTextColor(255, 255, 255)
	pdf.SetFont("Helvetica", "B", 8.5)
	pdf.SetXY(marginL, y)
	pdf.CellFormat(descW, 7, "Item", "1", 0, "L", true, 0, "")
	pdf.CellFormat(amtW, 7, strconv.Itoa(c.BaseYear), "1", 0, "C", true, 0, "")
	pdf.CellFormat(amtW, 7, strconv.Itoa(c.TargetYear), "1", 0, "C", true, 0, "")
	pdf.CellFormat(amtW, 7, "Change", "1", 1, "C", true, 0, "")
	y += 7
	pdf.SetTextColor(0, 0, 0)

	base := c.Year2024.LineItems()
	target := c.Year2025.LineItems()
	rowH := 6.0
	for i := range base {
		pdf.SetXY(marginL, y)
		changed := !base[i].Amount.Equal(target[i].Amount)
		rowFill(pdf, i)
		if changed {
			pdf.SetFont("Helvetica", "B", 8.5)
		} else {
			pdf.SetFont("Helvetica", "", 8.5)
		}
		pdf.CellFormat(descW, rowH, base[i].Label, "1", 0, "L", true, 0, "")
		pdf.CellFormat(amtW, rowH, FormatCurrency(base[i].Amount), "1", 0, "R", true, 0, "")
		pdf.CellFormat(amtW, rowH, FormatCurrency(target[i].Amount), "1", 0, "R", true, 0, "")
		if changed {
			pdf.SetFillColor(220, 240, 220)
		}
		pdf.CellFormat(amtW, rowH, FormatCurrency(target[i].Amount.Sub(base[i].Amount)), "1", 1, "R", true, 0, "")
		y += rowH
	}

	y += 5
	pdf.SetXY(marginL, y)
	if len(c.Savings.MainBenefits) > 0 {
		pdf.SetFont("Helvetica", "B", 9)
		pdf.CellFormat(contentW, 6, "Main benefits", "", 1, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 8.5)
		for i, b := range c.Savings.MainBenefits {
			pdf.SetX(marginL)
			pdf.MultiCell(contentW, 5, fmt.Sprintf("%d. %s", i+1, b), "", "L", false)
		}
		pdf.Ln(3)
	}

	pdf.SetX(marginL)
	pdf.SetFont("Helvetica", "I", 9)
	pdf.MultiCell(contentW, 5, c.Explanation, "", "L", false)

	pdf.Ln(4)
	pdf.SetFont("Helvetica", "I", 7.5)
	pdf.SetTextColor(130, 130, 130)
	for _, a := range DefaultAssumptions {
		pdf.SetX(marginL)
		pdf.CellFormat(contentW, 4, "- "+a, "", 1, "L", false, 0, "")
	}
	pdf.SetTextColor(0, 0, 0)
}

func rowFill(pdf *fpdf.Fpdf, i int) {
	if i%2 == 0 {
		pdf.SetFillColor(250, 250, 250)
		return
	}
	pdf.SetFillColor(255, 255, 255)
}
