package output

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"
)

// CSVSummarizer writes one summary row of headline figures
type CSVSummarizer struct{}

func (c CSVSummarizer) Name() string { return "csv" }

func (c CSVSummarizer) Format(report *Report) ([]byte, error) {
	if report == nil || report.Calculations == nil {
		return nil, fmt.Errorf("report has no calculations")
	}
	calc := report.Calculations

	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	header := []string{
		"TotalAtRetirement", "FutureValueCurrentSavings", "FutureValueContributions",
		"NetMonthlyIncome", "IncomeReplacementRatio", "PortfolioLongevity",
		"SharpeRatio", "ValueAtRisk", "MonteCarloMedian", "MonteCarloSuccessRate", "Insights",
	}
	if err := w.Write(header); err != nil {
		return nil, err
	}
	row := []string{
		FixedString(calc.Projection.TotalAtRetirement),
		FixedString(calc.Projection.FutureValueCurrentSavings),
		FixedString(calc.Projection.FutureValueContributions),
		FixedString(calc.RetirementIncome.NetMonthlyIncome),
		FixedString(calc.RetirementIncome.IncomeReplacementRatio),
		strconv.Itoa(calc.PortfolioLongevity),
		strconv.FormatFloat(calc.RiskMetrics.SharpeRatio, 'f', 4, 64),
		FixedString(calc.RiskMetrics.ValueAtRisk),
		FixedString(calc.MonteCarlo.Median),
		FixedString(calc.MonteCarlo.SuccessRate),
		strconv.Itoa(len(calc.Insights)),
	}
	if err := w.Write(row); err != nil {
		return nil, err
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}

// DetailedCSVFormatter writes the sampled projection followed by the
// Monte Carlo percentiles, separated by a blank line.
type DetailedCSVFormatter struct{}

func (DetailedCSVFormatter) Name() string { return "detailed-csv" }

func (DetailedCSVFormatter) Format(report *Report) ([]byte, error) {
	if report == nil || report.Calculations == nil {
		return nil, fmt.Errorf("report has no calculations")
	}
	calc := report.Calculations

	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)

	if err := w.Write([]string{"Age", "Year", "Balance", "TotalContributions", "Growth", "IsRetired"}); err != nil {
		return nil, err
	}
	for _, pt := range calc.Projection.Points {
		if err := w.Write([]string{
			strconv.Itoa(pt.Age),
			strconv.Itoa(pt.Year),
			FixedString(pt.Balance),
			FixedString(pt.TotalContributions),
			FixedString(pt.Growth),
			strconv.FormatBool(pt.IsRetired),
		}); err != nil {
			return nil, err
		}
	}
	w.Flush()
	buf.WriteString("\n")

	if err := w.Write([]string{"Percentile", "Value"}); err != nil {
		return nil, err
	}
	for _, pv := range calc.MonteCarlo.Percentiles {
		if err := w.Write([]string{strconv.Itoa(pv.Percentile), FixedString(pv.Value)}); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}
