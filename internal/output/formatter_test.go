package output

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/rgehrsitz/nestegg/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildTestReport() *Report {
	return &Report{
		Profile: &domain.FinancialProfile{
			CurrentAge:           30,
			RetirementAge:        65,
			LifeExpectancy:       90,
			CurrentSavings:       50000,
			MonthlyContribution:  1000,
			ExpectedAnnualReturn: 0.07,
		},
		Calculations: &domain.Calculations{
			AdjustedReturn: 0.07,
			Projection: domain.ProjectionResult{
				TotalAtRetirement:         2201234.56,
				FutureValueCurrentSavings: 533829.41,
				FutureValueContributions:  1667405.15,
				YearsToRetirement:         35,
				Points: []domain.ProjectionPoint{
					{Age: 30, Year: 2026, Balance: 50000},
					{Age: 35, Year: 2031, Balance: 140000, TotalContributions: 60000, Growth: 30000},
					{Age: 65, Year: 2061, Balance: 2201234.56, TotalContributions: 420000, Growth: 1731234.56, IsRetired: true},
				},
			},
			RetirementIncome: domain.RetirementIncome{
				AnnualWithdrawal:       88049.38,
				NetMonthlyIncome:       7000,
				IncomeReplacementRatio: 112,
			},
			PortfolioLongevity: 50,
			RiskMetrics:        domain.RiskMetrics{SharpeRatio: 0.2, ValueAtRisk: -17.675},
			MonteCarlo: domain.MonteCarloResult{
				Percentiles: []domain.PercentileValue{
					{Percentile: 5, Value: 900000},
					{Percentile: 50, Value: 2000000},
					{Percentile: 95, Value: 4000000},
				},
				SuccessRate: 62.5,
				Median:      2000000,
				Simulations: 1000,
			},
			Sensitivity: []domain.SensitivityPoint{{Label: "+0%", ReturnRate: 0.07, Value: 2201234.56}},
			Compounding: []domain.CompoundingPoint{{Frequency: 12, Label: "Monthly", Value: 573000}},
			Insights: []domain.Insight{
				{Rule: "replacement_on_track", Severity: domain.SeveritySuccess, Message: "On track"},
			},
		},
		GeneratedAt: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
	}
}

func TestFormatterFunc_Format(t *testing.T) {
	called := false
	var received *Report

	formatter := FormatterFunc{
		ID: "test-formatter",
		F: func(report *Report) ([]byte, error) {
			called = true
			received = report
			return []byte("test output"), nil
		},
	}

	report := buildTestReport()
	out, err := formatter.Format(report)

	assert.NoError(t, err)
	assert.True(t, called, "Should call the function")
	assert.Same(t, report, received, "Should pass the report")
	assert.Equal(t, []byte("test output"), out)
	assert.Equal(t, "test-formatter", formatter.Name())
}

func TestWriteFormatted(t *testing.T) {
	tmpDir := t.TempDir()
	originalDir, _ := os.Getwd()
	require.NoError(t, os.Chdir(tmpDir))
	defer os.Chdir(originalDir)

	formatter := FormatterFunc{
		ID: "test-formatter",
		F:  func(*Report) ([]byte, error) { return []byte("test output content"), nil },
	}

	filename, err := WriteFormatted(formatter, buildTestReport(), "txt")
	require.NoError(t, err)
	assert.Equal(t, "retirement_report_20260102_030405.txt", filename)

	content, err := os.ReadFile(filename)
	require.NoError(t, err)
	assert.Equal(t, "test output content", string(content))
}

func TestWriteFormatted_FormatterError(t *testing.T) {
	formatter := FormatterFunc{
		ID: "error-formatter",
		F:  func(*Report) ([]byte, error) { return nil, fmt.Errorf("formatter error") },
	}

	filename, err := WriteFormatted(formatter, buildTestReport(), "txt")
	assert.Error(t, err)
	assert.Empty(t, filename)
	assert.Contains(t, err.Error(), "error-formatter")
}

func TestGetFormatterByName(t *testing.T) {
	tests := []struct {
		name     string
		expected string
	}{
		{"console", "console"},
		{"table", "console"},
		{"TEXT", "console-lite"},
		{"plain", "console-lite"},
		{" json ", "json"},
		{"csv", "csv"},
		{"detailed-csv", "detailed-csv"},
		{"html", "html"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := GetFormatterByName(tt.name)
			require.NotNil(t, f)
			assert.Equal(t, tt.expected, f.Name())
		})
	}

	assert.Nil(t, GetFormatterByName("nonexistent"))
}

func TestAvailableFormatterNames(t *testing.T) {
	names := AvailableFormatterNames()
	assert.Equal(t, []string{"console", "console-lite", "csv", "detailed-csv", "html", "json"}, names)
	assert.Equal(t, []string{"plain", "table", "text"}, AvailableFormatAliases())
}

func TestFormatters_RejectEmptyReport(t *testing.T) {
	for _, name := range []string{"console", "console-lite", "csv", "detailed-csv", "html"} {
		t.Run(name, func(t *testing.T) {
			_, err := GetFormatterByName(name).Format(&Report{})
			assert.Error(t, err)
		})
	}
}

func TestConsoleLiteFormatter(t *testing.T) {
	out, err := GetFormatterByName("text").Format(buildTestReport())
	require.NoError(t, err)
	text := string(out)

	assert.Contains(t, text, "RETIREMENT PROJECTION REPORT")
	assert.Contains(t, text, "$2,201,234.56")
	assert.Contains(t, text, "112.00%")
	assert.Contains(t, text, "MONTE CARLO (1000 SIMULATIONS)")
	assert.Contains(t, text, "[SUCCESS] On track")
	assert.Contains(t, text, "ASSUMPTIONS")
	assert.NotContains(t, text, "\x1b[", "lite output should carry no ANSI escapes")
	assert.IsType(t, FormatterFunc{}, GetFormatterByName("console-lite"))
}

func TestConsoleFormatter(t *testing.T) {
	out, err := ConsoleFormatter{}.Format(buildTestReport())
	require.NoError(t, err)
	assert.Contains(t, string(out), "On track")
	assert.Contains(t, string(out), "Sharpe ratio")
}

func TestJSONFormatter(t *testing.T) {
	out, err := JSONFormatter{Pretty: false}.Format(buildTestReport())
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(out, &decoded))
	calc, ok := decoded["calculations"].(map[string]any)
	require.True(t, ok)
	assert.Contains(t, calc, "sensitivityAnalysis")
	assert.Contains(t, calc, "compoundingComparison")
	assert.Contains(t, calc, "monteCarlo")

	pretty, err := JSONFormatter{Pretty: true}.Format(buildTestReport())
	require.NoError(t, err)
	assert.Contains(t, string(pretty), "\n  \"profile\"")
}

func TestCSVSummarizer(t *testing.T) {
	out, err := CSVSummarizer{}.Format(buildTestReport())
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(out)), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[0], "TotalAtRetirement,"))
	assert.True(t, strings.HasPrefix(lines[1], "2201234.56,533829.41,1667405.15,7000.00,112.00,50,0.2000,"))
}

func TestDetailedCSVFormatter(t *testing.T) {
	out, err := DetailedCSVFormatter{}.Format(buildTestReport())
	require.NoError(t, err)

	sections := strings.Split(string(out), "\n\n")
	require.Len(t, sections, 2)
	projection := strings.Split(strings.TrimSpace(sections[0]), "\n")
	assert.Len(t, projection, 4, "header plus three sampled points")
	assert.Equal(t, "65,2061,2201234.56,420000.00,1731234.56,true", projection[3])

	percentiles := strings.Split(strings.TrimSpace(sections[1]), "\n")
	assert.Equal(t, "Percentile,Value", percentiles[0])
	assert.Equal(t, "50,2000000.00", percentiles[2])
}

func TestHTMLFormatter(t *testing.T) {
	out, err := HTMLFormatter{}.Format(buildTestReport())
	require.NoError(t, err)
	html := string(out)

	assert.True(t, strings.HasPrefix(html, "<!DOCTYPE html>"))
	assert.Contains(t, html, "$2,201,234.56")
	assert.Contains(t, html, `<tr class="retired">`)
	assert.Contains(t, html, `<li class="success">On track</li>`)
	assert.Contains(t, html, DefaultAssumptions[1])
}
