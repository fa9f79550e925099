package compare

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// TableFormatter formats comparison results as a console table
type TableFormatter struct{}

// Format generates a formatted table comparing scenarios
func (tf *TableFormatter) Format(compSet *ComparisonSet) string {
	var sb strings.Builder

	sb.WriteString("RETIREMENT SCENARIO COMPARISON\n")
	sb.WriteString(strings.Repeat("=", 92) + "\n")
	sb.WriteString(fmt.Sprintf("Base Scenario: %s\n", compSet.BaseScenarioName))
	if compSet.ProfilePath != "" {
		sb.WriteString(fmt.Sprintf("Profile: %s\n", compSet.ProfilePath))
	}
	sb.WriteString(fmt.Sprintf("Monte Carlo seed: %d\n", compSet.Seed))
	sb.WriteString("\n")

	nameWidth := 26
	numWidth := 12

	sb.WriteString(fmt.Sprintf("%-*s %*s %*s %*s %*s %*s\n",
		nameWidth, "Scenario",
		numWidth, "At Retire",
		numWidth, "Monthly Inc",
		numWidth, "Replacement",
		numWidth, "Longevity",
		numWidth, "MC Success"))
	sb.WriteString(strings.Repeat("-", 92) + "\n")

	if compSet.BaseResult != nil {
		sb.WriteString(tf.formatRow(compSet.BaseResult, nameWidth, numWidth, true))
	}

	if len(compSet.AlternativeResults) > 0 {
		sb.WriteString(strings.Repeat("-", 92) + "\n")
		for i := range compSet.AlternativeResults {
			sb.WriteString(tf.formatRow(&compSet.AlternativeResults[i], nameWidth, numWidth, false))
		}
	}

	sb.WriteString(strings.Repeat("=", 92) + "\n")

	// Deltas from base
	if len(compSet.AlternativeResults) > 0 {
		sb.WriteString("\nCOMPARISON TO BASE\n")
		sb.WriteString(strings.Repeat("-", 92) + "\n")

		for _, alt := range compSet.AlternativeResults {
			sb.WriteString(fmt.Sprintf("\n%s:\n", alt.ScenarioName))
			if alt.Description != "" {
				sb.WriteString(fmt.Sprintf("  %s\n", alt.Description))
			}

			sb.WriteString(fmt.Sprintf("  Total at Retirement: %s (%s%%)\n",
				tf.signedAmount(alt.TotalDiffFromBase),
				alt.TotalPctFromBase.StringFixed(1)))

			sb.WriteString(fmt.Sprintf("  Monthly Income:      %s\n",
				tf.signedAmount(alt.IncomeDiffFromBase)))

			if !alt.ReplacementDiffFromBase.IsZero() {
				sb.WriteString(fmt.Sprintf("  Replacement Ratio:   %s%s points\n",
					tf.deltaSymbol(alt.ReplacementDiffFromBase),
					alt.ReplacementDiffFromBase.StringFixed(1)))
			}

			if alt.LongevityDiff != 0 {
				longevitySymbol := "+"
				if alt.LongevityDiff < 0 {
					longevitySymbol = ""
				}
				sb.WriteString(fmt.Sprintf("  Longevity:           %s%d years\n",
					longevitySymbol, alt.LongevityDiff))
			}

			if !alt.SuccessRateDiff.IsZero() {
				sb.WriteString(fmt.Sprintf("  MC Success:          %s%s points\n",
					tf.deltaSymbol(alt.SuccessRateDiff),
					alt.SuccessRateDiff.StringFixed(1)))
			}
		}
		sb.WriteString("\n")
	}

	if len(compSet.Recommendations) > 0 {
		sb.WriteString("\nRECOMMENDATIONS\n")
		sb.WriteString(strings.Repeat("-", 92) + "\n")
		for _, rec := range compSet.Recommendations {
			sb.WriteString(fmt.Sprintf("• %s\n", rec))
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

// formatRow formats a single scenario row
func (tf *TableFormatter) formatRow(result *ComparisonResult, nameWidth, numWidth int, isBase bool) string {
	name := result.ScenarioName
	if isBase {
		name += " (base)"
	}

	longevityStr := fmt.Sprintf("%d years", result.PortfolioLongevity)
	if result.PortfolioLongevity == 0 {
		longevityStr = "depleted"
	}

	return fmt.Sprintf("%-*s %*s %*s %*s %*s %*s\n",
		nameWidth, tf.truncate(name, nameWidth),
		numWidth, "$"+tf.formatDecimal(result.TotalAtRetirement),
		numWidth, "$"+tf.formatDecimal(result.NetMonthlyIncome),
		numWidth, result.ReplacementRatio.StringFixed(1)+"%",
		numWidth, longevityStr,
		numWidth, result.SuccessRate.StringFixed(1)+"%")
}

// formatDecimal formats an amount for display, abbreviating thousands and millions
func (tf *TableFormatter) formatDecimal(d decimal.Decimal) string {
	if d.Abs().GreaterThanOrEqual(decimal.NewFromInt(1000000)) {
		millions := d.Div(decimal.NewFromInt(1000000))
		return millions.StringFixed(2) + "M"
	} else if d.Abs().GreaterThanOrEqual(decimal.NewFromInt(1000)) {
		thousands := d.Div(decimal.NewFromInt(1000))
		return thousands.StringFixed(1) + "K"
	}
	return d.StringFixed(0)
}

// deltaSymbol returns "+" for gains; losses carry their own sign
func (tf *TableFormatter) deltaSymbol(delta decimal.Decimal) string {
	if delta.IsPositive() {
		return "+"
	} else if delta.IsNegative() {
		return ""
	}
	return " "
}

// signedAmount renders a dollar delta as +$1.5K or -$1.5K
func (tf *TableFormatter) signedAmount(d decimal.Decimal) string {
	if d.IsNegative() {
		return "-$" + tf.formatDecimal(d.Abs())
	}
	return tf.deltaSymbol(d) + "$" + tf.formatDecimal(d)
}

// truncate truncates a string to maxLen
func (tf *TableFormatter) truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}

// FormatCompact creates a compact single-line summary for each scenario
func (tf *TableFormatter) FormatCompact(compSet *ComparisonSet) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Base: %s | ", compSet.BaseScenarioName))

	for i, alt := range compSet.AlternativeResults {
		if i > 0 {
			sb.WriteString(" | ")
		}
		change := "="
		if !alt.TotalDiffFromBase.IsZero() {
			change = tf.signedAmount(alt.TotalDiffFromBase)
		}

		sb.WriteString(fmt.Sprintf("%s: %s", alt.ScenarioName, change))
	}

	return sb.String()
}
