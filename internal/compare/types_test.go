package compare

import (
	"strings"
	"testing"

	"github.com/rgehrsitz/nestegg/internal/domain"
	"github.com/shopspring/decimal"
)

func TestMetricsCalculator_CalculateMetrics(t *testing.T) {
	calc := NewMetricsCalculator()

	profile := &domain.FinancialProfile{RetirementAge: 65}
	results := &domain.Calculations{
		Projection: domain.ProjectionResult{TotalAtRetirement: 1234567.891, DepletionAge: 88},
		RetirementIncome: domain.RetirementIncome{
			NetMonthlyIncome:       5432.104,
			IncomeReplacementRatio: 76.456,
			IncomeGap:              1200,
		},
		PortfolioLongevity: 23,
		MonteCarlo:         domain.MonteCarloResult{SuccessRate: 61.3},
	}

	result := calc.CalculateMetrics("Test Scenario", profile, results)

	if result.ScenarioName != "Test Scenario" {
		t.Errorf("Expected scenario name 'Test Scenario', got %s", result.ScenarioName)
	}
	if result.Profile != profile || result.Calculations != results {
		t.Error("Expected profile and calculations to be carried through")
	}
	if !result.TotalAtRetirement.Equal(decimal.RequireFromString("1234567.89")) {
		t.Errorf("Expected total 1234567.89, got %s", result.TotalAtRetirement)
	}
	if !result.NetMonthlyIncome.Equal(decimal.RequireFromString("5432.10")) {
		t.Errorf("Expected monthly income 5432.10, got %s", result.NetMonthlyIncome)
	}
	if !result.ReplacementRatio.Equal(decimal.RequireFromString("76.46")) {
		t.Errorf("Expected replacement 76.46, got %s", result.ReplacementRatio)
	}
	if result.MeetsGoal {
		t.Error("A positive income gap should not meet the goal")
	}
	if result.PortfolioLongevity != 23 || result.DepletionAge != 88 {
		t.Errorf("Longevity = %d, depletion = %d", result.PortfolioLongevity, result.DepletionAge)
	}
	if !result.SuccessRate.Equal(decimal.RequireFromString("61.3")) {
		t.Errorf("Expected success 61.3, got %s", result.SuccessRate)
	}
}

func TestMetricsCalculator_CalculateComparison(t *testing.T) {
	calc := NewMetricsCalculator()

	base := ComparisonResult{
		ScenarioName:       "Base",
		TotalAtRetirement:  decimal.NewFromInt(1000000),
		NetMonthlyIncome:   decimal.NewFromInt(5000),
		ReplacementRatio:   decimal.NewFromInt(70),
		PortfolioLongevity: 25,
		SuccessRate:        decimal.NewFromInt(60),
	}

	alt := ComparisonResult{
		ScenarioName:       "Alternative",
		TotalAtRetirement:  decimal.NewFromInt(1100000),
		NetMonthlyIncome:   decimal.NewFromInt(5400),
		ReplacementRatio:   decimal.NewFromInt(76),
		PortfolioLongevity: 28,
		SuccessRate:        decimal.NewFromInt(55),
	}

	result := calc.CalculateComparison(alt, base)

	if !result.TotalDiffFromBase.Equal(decimal.NewFromInt(100000)) {
		t.Errorf("Expected total diff 100000, got %s", result.TotalDiffFromBase)
	}
	if !result.TotalPctFromBase.Equal(decimal.NewFromInt(10)) {
		t.Errorf("Expected total pct 10, got %s", result.TotalPctFromBase)
	}
	if !result.IncomeDiffFromBase.Equal(decimal.NewFromInt(400)) {
		t.Errorf("Expected income diff 400, got %s", result.IncomeDiffFromBase)
	}
	if !result.ReplacementDiffFromBase.Equal(decimal.NewFromInt(6)) {
		t.Errorf("Expected replacement diff 6, got %s", result.ReplacementDiffFromBase)
	}
	if result.LongevityDiff != 3 {
		t.Errorf("Expected longevity diff 3, got %d", result.LongevityDiff)
	}
	if !result.SuccessRateDiff.Equal(decimal.NewFromInt(-5)) {
		t.Errorf("Expected success diff -5, got %s", result.SuccessRateDiff)
	}
}

func TestMetricsCalculator_CalculateComparison_ZeroBase(t *testing.T) {
	calc := NewMetricsCalculator()

	result := calc.CalculateComparison(
		ComparisonResult{TotalAtRetirement: decimal.NewFromInt(1000)},
		ComparisonResult{TotalAtRetirement: decimal.Zero},
	)

	if !result.TotalPctFromBase.IsZero() {
		t.Errorf("Expected zero percentage with zero base, got %s", result.TotalPctFromBase)
	}
}

func TestGenerateRecommendations(t *testing.T) {
	compSet := &ComparisonSet{
		BaseResult: &ComparisonResult{
			ScenarioName:       "Base",
			NetMonthlyIncome:   decimal.NewFromInt(5000),
			PortfolioLongevity: 20,
			SuccessRate:        decimal.NewFromInt(50),
		},
		AlternativeResults: []ComparisonResult{
			{
				ScenarioName:       "Income",
				NetMonthlyIncome:   decimal.NewFromInt(5600),
				PortfolioLongevity: 18,
				SuccessRate:        decimal.NewFromInt(50),
			},
			{
				ScenarioName:       "Longevity",
				NetMonthlyIncome:   decimal.NewFromInt(4800),
				PortfolioLongevity: 30,
				SuccessRate:        decimal.NewFromFloat(62.5),
				MeetsGoal:          true,
			},
		},
	}

	recs := GenerateRecommendations(compSet)

	want := []string{
		"Best Income: Income provides $600 more monthly income than the base scenario",
		"Best Longevity: Longevity makes savings last 10 more years",
		"Most Robust: Longevity raises the Monte Carlo success rate by 12.5 points",
		"Meets Goal: Longevity reaches the income replacement goal",
	}
	if len(recs) != len(want) {
		t.Fatalf("Expected %d recommendations, got %d: %v", len(want), len(recs), recs)
	}
	for i := range want {
		if recs[i] != want[i] {
			t.Errorf("recs[%d] = %q, want %q", i, recs[i], want[i])
		}
	}
}

func TestGenerateRecommendations_NoImprovement(t *testing.T) {
	compSet := &ComparisonSet{
		BaseResult: &ComparisonResult{
			ScenarioName:       "Base",
			NetMonthlyIncome:   decimal.NewFromInt(5000),
			PortfolioLongevity: 30,
			SuccessRate:        decimal.NewFromInt(90),
			MeetsGoal:          true,
		},
		AlternativeResults: []ComparisonResult{
			{ScenarioName: "Worse", NetMonthlyIncome: decimal.NewFromInt(4000), PortfolioLongevity: 20, MeetsGoal: true},
		},
	}

	if recs := GenerateRecommendations(compSet); len(recs) != 0 {
		t.Errorf("Expected no recommendations, got %v", recs)
	}

	if recs := GenerateRecommendations(&ComparisonSet{BaseResult: compSet.BaseResult}); len(recs) != 0 {
		t.Errorf("Expected no recommendations without alternatives, got %v", recs)
	}
}

func TestGenerateRecommendations_TiesKeepBase(t *testing.T) {
	base := ComparisonResult{ScenarioName: "Base", NetMonthlyIncome: decimal.NewFromInt(5000)}
	compSet := &ComparisonSet{
		BaseResult:         &base,
		AlternativeResults: []ComparisonResult{{ScenarioName: "Same", NetMonthlyIncome: decimal.NewFromInt(5000)}},
	}

	for _, rec := range GenerateRecommendations(compSet) {
		if strings.Contains(rec, "Same") {
			t.Errorf("Tie should not produce a recommendation: %s", rec)
		}
	}
}
