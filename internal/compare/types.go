package compare

import (
	"fmt"

	"github.com/rgehrsitz/nestegg/internal/domain"
	"github.com/shopspring/decimal"
)

// ComparisonResult represents a single scenario comparison with calculated metrics
type ComparisonResult struct {
	ScenarioName string                   `json:"scenarioName"`
	Description  string                   `json:"description"`
	Profile      *domain.FinancialProfile `json:"profile"`
	Calculations *domain.Calculations     `json:"-"`

	// Key Metrics (ratios and rates are percentages)
	TotalAtRetirement  decimal.Decimal `json:"totalAtRetirement"`
	NetMonthlyIncome   decimal.Decimal `json:"netMonthlyIncome"`
	ReplacementRatio   decimal.Decimal `json:"replacementRatio"`
	MeetsGoal          bool            `json:"meetsGoal"`
	PortfolioLongevity int             `json:"portfolioLongevity"`
	DepletionAge       int             `json:"depletionAge,omitempty"`
	SuccessRate        decimal.Decimal `json:"successRate"`

	// Comparison to Base
	TotalDiffFromBase       decimal.Decimal `json:"totalDiffFromBase"`
	TotalPctFromBase        decimal.Decimal `json:"totalPctFromBase"`
	IncomeDiffFromBase      decimal.Decimal `json:"incomeDiffFromBase"`
	ReplacementDiffFromBase decimal.Decimal `json:"replacementDiffFromBase"`
	LongevityDiff           int             `json:"longevityDiff"`
	SuccessRateDiff         decimal.Decimal `json:"successRateDiff"`
}

// ComparisonSet represents a collection of scenario comparisons
type ComparisonSet struct {
	BaseScenarioName   string             `json:"baseScenarioName"`
	BaseResult         *ComparisonResult  `json:"baseResult"`
	AlternativeResults []ComparisonResult `json:"alternativeResults"`
	Recommendations    []string           `json:"recommendations"`
	ProfilePath        string             `json:"profilePath,omitempty"`
	Seed               int64              `json:"seed"`
}

// MetricsCalculator extracts key metrics from engine results
type MetricsCalculator struct{}

// NewMetricsCalculator creates a new metrics calculator
func NewMetricsCalculator() *MetricsCalculator {
	return &MetricsCalculator{}
}

// CalculateMetrics computes all comparison metrics for one engine run
func (mc *MetricsCalculator) CalculateMetrics(name string, profile *domain.FinancialProfile, calc *domain.Calculations) ComparisonResult {
	income := calc.RetirementIncome
	return ComparisonResult{
		ScenarioName:       name,
		Profile:            profile,
		Calculations:       calc,
		TotalAtRetirement:  round2(calc.Projection.TotalAtRetirement),
		NetMonthlyIncome:   round2(income.NetMonthlyIncome),
		ReplacementRatio:   round2(income.IncomeReplacementRatio),
		MeetsGoal:          income.IncomeGap <= 0,
		PortfolioLongevity: calc.PortfolioLongevity,
		DepletionAge:       calc.Projection.DepletionAge,
		SuccessRate:        round2(calc.MonteCarlo.SuccessRate),
	}
}

// CalculateComparison computes comparison metrics between a scenario and a base
func (mc *MetricsCalculator) CalculateComparison(scenario, base ComparisonResult) ComparisonResult {
	scenario.TotalDiffFromBase = scenario.TotalAtRetirement.Sub(base.TotalAtRetirement)

	if !base.TotalAtRetirement.IsZero() {
		scenario.TotalPctFromBase = scenario.TotalDiffFromBase.
			Div(base.TotalAtRetirement).
			Mul(decimal.NewFromInt(100)).
			Round(2)
	}

	scenario.IncomeDiffFromBase = scenario.NetMonthlyIncome.Sub(base.NetMonthlyIncome)
	scenario.ReplacementDiffFromBase = scenario.ReplacementRatio.Sub(base.ReplacementRatio)
	scenario.LongevityDiff = scenario.PortfolioLongevity - base.PortfolioLongevity
	scenario.SuccessRateDiff = scenario.SuccessRate.Sub(base.SuccessRate)

	return scenario
}

// round2 converts an engine float to a cent-rounded decimal
func round2(v float64) decimal.Decimal {
	return decimal.NewFromFloat(v).Round(2)
}

// GenerateRecommendations creates recommendations based on comparison results
func GenerateRecommendations(compSet *ComparisonSet) []string {
	recommendations := []string{}

	if compSet.BaseResult == nil || len(compSet.AlternativeResults) == 0 {
		return recommendations
	}
	base := compSet.BaseResult

	// Find best scenario by monthly income
	bestIncome := base
	for i := range compSet.AlternativeResults {
		alt := &compSet.AlternativeResults[i]
		if alt.NetMonthlyIncome.GreaterThan(bestIncome.NetMonthlyIncome) {
			bestIncome = alt
		}
	}

	if bestIncome != base {
		incomeDiff := bestIncome.NetMonthlyIncome.Sub(base.NetMonthlyIncome)
		recommendations = append(recommendations,
			"Best Income: "+bestIncome.ScenarioName+" provides $"+incomeDiff.StringFixed(0)+
				" more monthly income than the base scenario")
	}

	// Find best portfolio longevity
	bestLongevity := base
	for i := range compSet.AlternativeResults {
		alt := &compSet.AlternativeResults[i]
		if alt.PortfolioLongevity > bestLongevity.PortfolioLongevity {
			bestLongevity = alt
		}
	}

	if bestLongevity != base {
		yearsDiff := bestLongevity.PortfolioLongevity - base.PortfolioLongevity
		recommendations = append(recommendations,
			"Best Longevity: "+bestLongevity.ScenarioName+" makes savings last "+
				fmt.Sprintf("%d more years", yearsDiff))
	}

	// Find highest Monte Carlo success rate
	bestSuccess := base
	for i := range compSet.AlternativeResults {
		alt := &compSet.AlternativeResults[i]
		if alt.SuccessRate.GreaterThan(bestSuccess.SuccessRate) {
			bestSuccess = alt
		}
	}

	if bestSuccess != base {
		gain := bestSuccess.SuccessRate.Sub(base.SuccessRate)
		recommendations = append(recommendations,
			"Most Robust: "+bestSuccess.ScenarioName+" raises the Monte Carlo success rate by "+
				gain.StringFixed(1)+" points")
	}

	// Scenarios that close an income gap the base leaves open
	if !base.MeetsGoal {
		for _, alt := range compSet.AlternativeResults {
			if alt.MeetsGoal {
				recommendations = append(recommendations,
					"Meets Goal: "+alt.ScenarioName+" reaches the income replacement goal")
			}
		}
	}

	return recommendations
}
