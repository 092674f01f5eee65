package components

import (
	"fmt"
	"strings"

	"github.com/fbke/taximpact/internal/domain"
	"github.com/fbke/taximpact/internal/tui/tuistyles"
)

// LineTable renders two breakdowns side by side. Rows whose amount changed
// between the years are highlighted.
type LineTable struct {
	BaseYear   int
	TargetYear int
	Base       []domain.LineItem
	Target     []domain.LineItem

	// Offset is the first visible row; Height limits the rows shown (0 = all)
	Offset int
	Height int
}

// NewLineTable builds a table from a comparison
func NewLineTable(c *domain.Comparison) *LineTable {
	return &LineTable{
		BaseYear:   c.BaseYear,
		TargetYear: c.TargetYear,
		Base:       c.Year2024.LineItems(),
		Target:     c.Year2025.LineItems(),
	}
}

// Rows returns the number of line items
func (t *LineTable) Rows() int {
	return len(t.Base)
}

// Render returns the styled table
func (t *LineTable) Render() string {
	var sb strings.Builder

	header := fmt.Sprintf("%-24s %18s %18s %18s", "Item", fmt.Sprint(t.BaseYear), fmt.Sprint(t.TargetYear), "Change")
	sb.WriteString(tuistyles.TableHeaderStyle.Render(header))
	sb.WriteString("\n")

	start, end := t.visible()
	for i := start; i < end; i++ {
		base, target := t.Base[i].Amount, t.Target[i].Amount
		row := fmt.Sprintf("%-24s %18s %18s %18s",
			t.Base[i].Label,
			tuistyles.FormatCurrency(base),
			tuistyles.FormatCurrency(target),
			tuistyles.FormatCurrency(target.Sub(base)))

		if base.Equal(target) {
			sb.WriteString(tuistyles.TableCellStyle.Render(row))
		} else {
			sb.WriteString(tuistyles.TableHighlightStyle.Render(row))
		}
		sb.WriteString("\n")
	}

	if t.Height > 0 && t.Rows() > t.Height {
		sb.WriteString(tuistyles.SubtitleStyle.Render(fmt.Sprintf("rows %d-%d of %d", start+1, end, t.Rows())))
	}
	return sb.String()
}

func (t *LineTable) visible() (int, int) {
	n := t.Rows()
	if t.Height <= 0 || t.Height >= n {
		return 0, n
	}
	start := min(max(t.Offset, 0), n-t.Height)
	return start, start + t.Height
}
