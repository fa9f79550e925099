package breakeven

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// TableFormatter formats optimization results as a console table
type TableFormatter struct{}

// Format generates a formatted table for optimization result
func (tf *TableFormatter) Format(result *OptimizationResult) string {
	var sb strings.Builder

	sb.WriteString("BREAK-EVEN ANALYSIS\n")
	sb.WriteString(strings.Repeat("=", 80) + "\n")

	sb.WriteString(fmt.Sprintf("Solve For:   %s\n", result.Target))
	sb.WriteString(fmt.Sprintf("Goal:        %s\n", result.Goal))
	sb.WriteString(fmt.Sprintf("Status:      %s\n", tf.formatStatus(result.Success)))
	sb.WriteString(fmt.Sprintf("Iterations:  %d\n", result.Iterations))
	if result.ConvergenceInfo != "" {
		sb.WriteString(fmt.Sprintf("Convergence: %s\n", result.ConvergenceInfo))
	}
	sb.WriteString("\n")

	sb.WriteString("BREAK-EVEN POINT\n")
	sb.WriteString(strings.Repeat("-", 80) + "\n")
	if result.OptimalContribution != nil {
		sb.WriteString(fmt.Sprintf("Monthly Contribution: $%s (today $%s, %s$%s)\n",
			tf.formatCurrency(*result.OptimalContribution),
			tf.formatCurrency(result.BaseContribution),
			tf.deltaSymbol(result.ContributionDiffFromBase),
			tf.formatCurrency(result.ContributionDiffFromBase)))
	}
	if result.OptimalRetirementAge != nil {
		sb.WriteString(fmt.Sprintf("Retirement Age:       %d (today %d, %+d years)\n",
			*result.OptimalRetirementAge, result.BaseRetirementAge, result.RetirementAgeDiff))
	}
	sb.WriteString("\n")

	sb.WriteString("PROJECTED RESULTS\n")
	sb.WriteString(strings.Repeat("-", 80) + "\n")
	sb.WriteString(fmt.Sprintf("Total at Retirement: $%s\n", tf.formatCurrency(result.TotalAtRetirement)))
	sb.WriteString(fmt.Sprintf("Net Monthly Income:  $%s\n", tf.formatCurrency(result.NetMonthlyIncome)))
	sb.WriteString(fmt.Sprintf("Replacement Ratio:   %s%%\n", result.ReplacementRatio.StringFixed(2)))
	sb.WriteString(fmt.Sprintf("MC Success Rate:     %s%%\n", result.SuccessRate.StringFixed(1)))
	sb.WriteString("\n")

	sb.WriteString("GOAL\n")
	sb.WriteString(strings.Repeat("-", 80) + "\n")
	sb.WriteString(fmt.Sprintf("%-21s $%s\n", tf.goalLabel(result.Goal)+":", tf.formatCurrency(result.GoalValue)))
	sb.WriteString(fmt.Sprintf("%-21s $%s\n", "Achieved:", tf.formatCurrency(result.AchievedValue)))
	diff := result.AchievedValue.Sub(result.GoalValue)
	sb.WriteString(fmt.Sprintf("%-21s %s$%s\n", "Difference:", tf.deltaSymbol(diff), tf.formatCurrency(diff)))
	sb.WriteString("\n")

	return sb.String()
}

// FormatMultiDimensional formats results from every lever
func (tf *TableFormatter) FormatMultiDimensional(result *MultiDimensionalResult) string {
	var sb strings.Builder

	sb.WriteString("BREAK-EVEN ANALYSIS: ALL LEVERS\n")
	sb.WriteString(strings.Repeat("=", 80) + "\n")
	sb.WriteString(fmt.Sprintf("Goal: %s\n\n", result.Goal))

	sb.WriteString(fmt.Sprintf("%-16s %-14s %14s %14s %12s\n",
		"Lever", "Break-Even", "At Retirement", "Monthly Inc", "Status"))
	sb.WriteString(strings.Repeat("-", 80) + "\n")

	for _, res := range result.Results {
		value := "-"
		switch {
		case res.OptimalContribution != nil:
			value = "$" + tf.formatShort(*res.OptimalContribution) + "/mo"
		case res.OptimalRetirementAge != nil:
			value = fmt.Sprintf("age %d", *res.OptimalRetirementAge)
		}
		status := "met"
		if !res.Success {
			status = "not met"
		}
		sb.WriteString(fmt.Sprintf("%-16s %-14s %14s %14s %12s\n",
			tf.truncate(string(res.Target), 16),
			value,
			"$"+tf.formatShort(res.TotalAtRetirement),
			"$"+tf.formatShort(res.NetMonthlyIncome),
			status))
	}
	sb.WriteString("\n")

	if len(result.Recommendations) > 0 {
		sb.WriteString("RECOMMENDATIONS\n")
		sb.WriteString(strings.Repeat("-", 80) + "\n")
		for _, rec := range result.Recommendations {
			sb.WriteString(fmt.Sprintf("• %s\n", rec))
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

// JSONFormatter formats results as JSON
type JSONFormatter struct {
	Pretty bool
}

// Format generates JSON output
func (jf *JSONFormatter) Format(result *OptimizationResult) (string, error) {
	return jf.marshal(result)
}

// FormatMultiDimensional formats multi-lever results as JSON
func (jf *JSONFormatter) FormatMultiDimensional(result *MultiDimensionalResult) (string, error) {
	return jf.marshal(result)
}

func (jf *JSONFormatter) marshal(v any) (string, error) {
	var data []byte
	var err error

	if jf.Pretty {
		data, err = json.MarshalIndent(v, "", "  ")
	} else {
		data, err = json.Marshal(v)
	}

	if err != nil {
		return "", err
	}

	return string(data) + "\n", nil
}

// Helper methods

func (tf *TableFormatter) formatStatus(success bool) string {
	if success {
		return "✓ Goal met"
	}
	return "⚠ Goal not reachable within constraints"
}

func (tf *TableFormatter) goalLabel(goal OptimizationGoal) string {
	switch goal {
	case GoalTargetIncome:
		return "Target monthly income"
	case GoalTargetBalance:
		return "Target balance"
	default:
		return "Required income"
	}
}

func (tf *TableFormatter) formatCurrency(d decimal.Decimal) string {
	return d.Abs().StringFixed(2)
}

func (tf *TableFormatter) formatShort(d decimal.Decimal) string {
	if d.Abs().GreaterThanOrEqual(decimal.NewFromInt(1000000)) {
		millions := d.Div(decimal.NewFromInt(1000000))
		return millions.StringFixed(2) + "M"
	} else if d.Abs().GreaterThanOrEqual(decimal.NewFromInt(1000)) {
		thousands := d.Div(decimal.NewFromInt(1000))
		return thousands.StringFixed(1) + "K"
	}
	return d.StringFixed(0)
}

// deltaSymbol carries the sign because formatCurrency drops it
func (tf *TableFormatter) deltaSymbol(delta decimal.Decimal) string {
	if delta.IsPositive() {
		return "+"
	} else if delta.IsNegative() {
		return "-"
	}
	return ""
}

func (tf *TableFormatter) truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
