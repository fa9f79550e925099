package compare

import (
	"encoding/csv"
	"fmt"
	"strings"
)

// CSVFormatter formats comparison results as CSV
type CSVFormatter struct{}

// Format generates CSV output for comparison results
func (cf *CSVFormatter) Format(compSet *ComparisonSet) (string, error) {
	if compSet.BaseResult == nil {
		return "", fmt.Errorf("comparison has no base result")
	}

	var sb strings.Builder
	writer := csv.NewWriter(&sb)

	header := []string{
		"Scenario",
		"Type",
		"Total at Retirement",
		"Net Monthly Income",
		"Replacement Ratio %",
		"Meets Goal",
		"Longevity (Years)",
		"MC Success %",
		"Total Diff from Base",
		"Total % Change",
		"Income Diff from Base",
		"Replacement Diff",
		"Longevity Diff",
		"MC Success Diff",
	}
	if err := writer.Write(header); err != nil {
		return "", err
	}

	if err := writer.Write(cf.formatRow(compSet.BaseResult, "base")); err != nil {
		return "", err
	}

	for i := range compSet.AlternativeResults {
		if err := writer.Write(cf.formatRow(&compSet.AlternativeResults[i], "alternative")); err != nil {
			return "", err
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return "", err
	}

	return sb.String(), nil
}

// formatRow formats a comparison result as a CSV row
func (cf *CSVFormatter) formatRow(result *ComparisonResult, scenarioType string) []string {
	return []string{
		result.ScenarioName,
		scenarioType,
		result.TotalAtRetirement.StringFixed(2),
		result.NetMonthlyIncome.StringFixed(2),
		result.ReplacementRatio.StringFixed(2),
		fmt.Sprintf("%t", result.MeetsGoal),
		formatInt(result.PortfolioLongevity),
		result.SuccessRate.StringFixed(2),
		result.TotalDiffFromBase.StringFixed(2),
		result.TotalPctFromBase.StringFixed(2),
		result.IncomeDiffFromBase.StringFixed(2),
		result.ReplacementDiffFromBase.StringFixed(2),
		formatInt(result.LongevityDiff),
		result.SuccessRateDiff.StringFixed(2),
	}
}

func formatInt(i int) string {
	return fmt.Sprintf("%d", i)
}
