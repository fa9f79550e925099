package compare

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
)

func createTestComparisonSet() *ComparisonSet {
	return &ComparisonSet{
		BaseScenarioName: "base",
		ProfilePath:      "/path/to/profile.yaml",
		Seed:             42,
		BaseResult: &ComparisonResult{
			ScenarioName:       "base",
			TotalAtRetirement:  decimal.NewFromInt(2000000),
			NetMonthlyIncome:   decimal.NewFromInt(7000),
			ReplacementRatio:   decimal.NewFromFloat(98.5),
			MeetsGoal:          true,
			PortfolioLongevity: 50,
			SuccessRate:        decimal.NewFromInt(60),
		},
		AlternativeResults: []ComparisonResult{
			{
				ScenarioName:            "retire_later_2yr",
				Description:             "Work two more years before retiring",
				TotalAtRetirement:       decimal.NewFromInt(2300000),
				NetMonthlyIncome:        decimal.NewFromInt(7800),
				ReplacementRatio:        decimal.NewFromFloat(104.25),
				MeetsGoal:               true,
				PortfolioLongevity:      50,
				SuccessRate:             decimal.NewFromInt(66),
				TotalDiffFromBase:       decimal.NewFromInt(300000),
				TotalPctFromBase:        decimal.NewFromInt(15),
				IncomeDiffFromBase:      decimal.NewFromInt(800),
				ReplacementDiffFromBase: decimal.NewFromFloat(5.75),
				SuccessRateDiff:         decimal.NewFromInt(6),
			},
			{
				ScenarioName:            "retire_earlier_2yr",
				TotalAtRetirement:       decimal.NewFromInt(1700000),
				NetMonthlyIncome:        decimal.NewFromInt(6200),
				ReplacementRatio:        decimal.NewFromInt(91),
				PortfolioLongevity:      0,
				SuccessRate:             decimal.NewFromInt(54),
				TotalDiffFromBase:       decimal.NewFromInt(-300000),
				TotalPctFromBase:        decimal.NewFromInt(-15),
				IncomeDiffFromBase:      decimal.NewFromInt(-800),
				ReplacementDiffFromBase: decimal.NewFromFloat(-7.5),
				LongevityDiff:           -50,
				SuccessRateDiff:         decimal.NewFromInt(-6),
			},
		},
		Recommendations: []string{
			"Best Income: retire_later_2yr provides $800 more monthly income than the base scenario",
		},
	}
}

func TestTableFormatter_Format(t *testing.T) {
	formatter := &TableFormatter{}
	result := formatter.Format(createTestComparisonSet())

	for _, want := range []string{
		"RETIREMENT SCENARIO COMPARISON",
		"Base Scenario: base",
		"Profile: /path/to/profile.yaml",
		"Monte Carlo seed: 42",
		"base (base)",
		"$2.00M",
		"$7.0K",
		"98.5%",
		"50 years",
		"depleted",
		"Work two more years before retiring",
		"Total at Retirement: +$300.0K (15.0%)",
		"Total at Retirement: -$300.0K (-15.0%)",
		"Monthly Income:      +$800",
		"Replacement Ratio:   +5.8 points",
		"Longevity:           -50 years",
		"MC Success:          -6.0 points",
		"RECOMMENDATIONS",
		"• Best Income",
	} {
		if !strings.Contains(result, want) {
			t.Errorf("Expected %q in output:\n%s", want, result)
		}
	}
}

func TestTableFormatter_Format_EmptyAlternatives(t *testing.T) {
	compSet := createTestComparisonSet()
	compSet.AlternativeResults = nil
	compSet.Recommendations = nil
	compSet.ProfilePath = ""

	result := (&TableFormatter{}).Format(compSet)

	if strings.Contains(result, "COMPARISON TO BASE") {
		t.Error("Should not show comparison section with no alternatives")
	}
	if strings.Contains(result, "RECOMMENDATIONS") {
		t.Error("Should not show recommendations section when empty")
	}
	if strings.Contains(result, "Profile:") {
		t.Error("Should omit an empty profile path")
	}
}

func TestTableFormatter_FormatDecimal(t *testing.T) {
	formatter := &TableFormatter{}

	tests := []struct {
		input    decimal.Decimal
		expected string
	}{
		{decimal.NewFromInt(500), "500"},
		{decimal.NewFromInt(1500), "1.5K"},
		{decimal.NewFromInt(-25000), "-25.0K"},
		{decimal.NewFromInt(2500000), "2.50M"},
	}

	for _, tt := range tests {
		if got := formatter.formatDecimal(tt.input); got != tt.expected {
			t.Errorf("formatDecimal(%s) = %s, want %s", tt.input, got, tt.expected)
		}
	}
}

func TestTableFormatter_Truncate(t *testing.T) {
	formatter := &TableFormatter{}

	if got := formatter.truncate("short", 10); got != "short" {
		t.Errorf("truncate = %q", got)
	}
	if got := formatter.truncate("set_withdrawal_rate:rate=0.03", 12); got != "set_withd..." {
		t.Errorf("truncate = %q", got)
	}
}

func TestTableFormatter_FormatCompact(t *testing.T) {
	result := (&TableFormatter{}).FormatCompact(createTestComparisonSet())

	want := "Base: base | retire_later_2yr: +$300.0K | retire_earlier_2yr: -$300.0K"
	if result != want {
		t.Errorf("FormatCompact = %q, want %q", result, want)
	}
}

func TestCSVFormatter_Format(t *testing.T) {
	result, err := (&CSVFormatter{}).Format(createTestComparisonSet())
	if err != nil {
		t.Fatalf("Format failed: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(result), "\n")
	if len(lines) != 4 {
		t.Fatalf("Expected header plus 3 rows, got %d lines", len(lines))
	}
	if !strings.HasPrefix(lines[0], "Scenario,Type,Total at Retirement,") {
		t.Errorf("Unexpected header: %s", lines[0])
	}
	if lines[1] != "base,base,2000000.00,7000.00,98.50,true,50,60.00,0.00,0.00,0.00,0.00,0,0.00" {
		t.Errorf("Unexpected base row: %s", lines[1])
	}
	if !strings.HasPrefix(lines[3], "retire_earlier_2yr,alternative,1700000.00,") {
		t.Errorf("Unexpected alternative row: %s", lines[3])
	}
	if !strings.HasSuffix(lines[3], ",-50,-6.00") {
		t.Errorf("Unexpected diff columns: %s", lines[3])
	}

	if _, err := (&CSVFormatter{}).Format(&ComparisonSet{}); err == nil {
		t.Error("Expected error without a base result")
	}
}

func TestJSONFormatter_Format(t *testing.T) {
	for _, pretty := range []bool{false, true} {
		result, err := (&JSONFormatter{Pretty: pretty}).Format(createTestComparisonSet())
		if err != nil {
			t.Fatalf("Format failed: %v", err)
		}

		var decoded map[string]any
		if err := json.Unmarshal([]byte(result), &decoded); err != nil {
			t.Fatalf("Output is not valid JSON: %v", err)
		}
		if decoded["baseScenarioName"] != "base" {
			t.Errorf("baseScenarioName = %v", decoded["baseScenarioName"])
		}
		alts, ok := decoded["alternativeResults"].([]any)
		if !ok || len(alts) != 2 {
			t.Errorf("alternativeResults = %v", decoded["alternativeResults"])
		}
		if pretty != strings.Contains(result, "\n  ") {
			t.Errorf("pretty=%v indentation mismatch", pretty)
		}
	}

	if _, err := (&JSONFormatter{}).Format(nil); err == nil {
		t.Error("Expected error for nil comparison")
	}
}
