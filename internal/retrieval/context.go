package retrieval

import (
	"fmt"
	"strings"

	"ubuzima-ai/internal/models"
)

// NoDataSentinel is returned by AssembleContext when nothing relevant
// was retrieved. Callers branch on it to skip the generation call.
const NoDataSentinel = "No relevant NISR data found for this query."

// AssembleContext renders ranked candidates into the fixed-format text
// block handed to the generator.
func AssembleContext(indicators, surveys []models.ScoredCandidate) string {
	if len(indicators) == 0 && len(surveys) == 0 {
		return NoDataSentinel
	}

	var b strings.Builder
	b.WriteString("NISR RWANDA DATA:\n\n")

	if len(indicators) > 0 {
		b.WriteString("NUTRITION INDICATORS:\n")
		for i, c := range indicators {
			row := c.Indicator
			fmt.Fprintf(&b, "%d. %s (%s)\n", i+1, row.Indicator, row.YearDisplay)
			if row.DimensionName != "" {
				fmt.Fprintf(&b, "   - Category: %s\n", row.DimensionName)
			}
			fmt.Fprintf(&b, "   - Value: %v\n", row.Value)
			if row.Low != "" && row.High != "" {
				fmt.Fprintf(&b, "   - Confidence Range: %s - %s\n", row.Low, row.High)
			}
			b.WriteString("\n")
		}
	}

	if len(surveys) > 0 {
		b.WriteString("\nNISR SURVEYS:\n")
		for i, c := range surveys {
			row := c.Survey
			fmt.Fprintf(&b, "%d. %s\n", i+1, row.Title)
			fmt.Fprintf(&b, "   - Authority: %s\n", row.Authority)
			if row.CollectStart != "" {
				fmt.Fprintf(&b, "   - Period: %s - %s\n", row.CollectStart, row.CollectEnd)
			}
			b.WriteString("\n")
		}
	}

	return b.String()
}
