package output

import (
	"github.com/fbke/taximpact/internal/domain"
	"github.com/goccy/go-json"
)

// JSONFormatter formats the comparison as JSON
type JSONFormatter struct {
	Pretty bool // If true, format with indentation
}

func (j JSONFormatter) Name() string { return "json" }

func (j JSONFormatter) Format(c *domain.Comparison) ([]byte, error) {
	return marshal(c, j.Pretty)
}

// BreakdownJSON formats a single year's breakdown as indented JSON
func BreakdownJSON(b *domain.Breakdown) ([]byte, error) {
	return marshal(b, true)
}

func marshal(v any, pretty bool) ([]byte, error) {
	if pretty {
		return json.MarshalIndent(v, "", "  ")
	}
	return json.Marshal(v)
}
