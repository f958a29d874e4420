// Package render prints reports for humans. It consumes the Report and
// Interpretation read-only and computes nothing itself.
package render

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/VigneshManiSenthilnathan/Unusual-Options-Activity/internal/model"
)

// Console writes the formatted activity report to a writer.
type Console struct {
	w io.Writer
}

func NewConsole(w io.Writer) *Console {
	return &Console{w: w}
}

// Render prints the report header, summary, alerts and detailed
// analysis in the fixed layout.
func (c *Console) Render(symbol string, r *model.Report, in model.Interpretation) error {
	rule := strings.Repeat("=", 50)
	thin := strings.Repeat("-", 50)

	var b strings.Builder
	fmt.Fprintf(&b, "\n%s\n", rule)
	fmt.Fprintf(&b, "OPTIONS ACTIVITY REPORT FOR %s\n", symbol)
	fmt.Fprintf(&b, "%s\n", rule)

	fmt.Fprintf(&b, "\nSUMMARY:\n%s\n%s\n", thin, in.Summary)

	if len(in.Alerts) > 0 {
		fmt.Fprintf(&b, "\nALERTS:\n%s\n", thin)
		for _, alert := range in.Alerts {
			fmt.Fprintf(&b, "⚠️ %s\n", alert)
		}
	}

	fmt.Fprintf(&b, "\nDETAILED ANALYSIS:\n%s\n", thin)
	for i, finding := range in.DetailedInterpretations {
		fmt.Fprintf(&b, "%d. %s\n", i+1, finding)
	}

	fmt.Fprintf(&b, "\nVOLATILITY SKEW (near the money):\n%s\n", thin)
	for _, exp := range sortedExpirations(r.OptionsMetrics.VolatilitySkew) {
		fmt.Fprintf(&b, "%s: %.1f%%\n", exp, r.OptionsMetrics.VolatilitySkew[exp]*100)
	}

	_, err := io.WriteString(c.w, b.String())
	return err
}

func sortedExpirations(skew map[string]float64) []string {
	out := make([]string, 0, len(skew))
	for exp := range skew {
		out = append(out, exp)
	}
	sort.Strings(out)
	return out
}
