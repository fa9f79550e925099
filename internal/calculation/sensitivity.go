package calculation

import (
	"fmt"

	"github.com/rgehrsitz/nestegg/internal/domain"
)

// SensitivityDeltas are the return-rate shifts applied around the adjusted return
var SensitivityDeltas = []float64{-0.02, -0.01, 0, 0.01, 0.02}

// CompoundingFrequency names a compounding schedule
type CompoundingFrequency struct {
	PerYear int
	Label   string
}

// CompoundingFrequencies are the schedules compared on current savings
var CompoundingFrequencies = []CompoundingFrequency{
	{1, "Annual"},
	{4, "Quarterly"},
	{12, "Monthly"},
	{365, "Daily"},
}

// AnalyzeSensitivity recomputes the closed-form balance at retirement for
// each return delta and reports the difference from the unshifted value.
func AnalyzeSensitivity(p *domain.FinancialProfile, adjustedReturn float64) []domain.SensitivityPoint {
	years := p.YearsToRetirement()
	value := func(rate float64) float64 {
		return FutureValueOfSavings(p.CurrentSavings, rate, p.CompoundingFrequency, years) +
			FutureValueOfContributions(p.MonthlyContribution, p.ContributionIncreaseRate, rate, p.CompoundingFrequency, years)
	}

	baseline := value(adjustedReturn)
	points := make([]domain.SensitivityPoint, 0, len(SensitivityDeltas))
	for _, delta := range SensitivityDeltas {
		rate := adjustedReturn + delta
		v := baseline
		if delta != 0 {
			v = value(rate)
		}
		points = append(points, domain.SensitivityPoint{
			Label:      fmt.Sprintf("%+.0f%%", delta*100),
			Variation:  delta,
			ReturnRate: rate,
			Value:      v,
			Difference: v - baseline,
		})
	}
	return points
}

// AnalyzeCompounding compares compounding frequencies on current savings alone
func AnalyzeCompounding(p *domain.FinancialProfile, adjustedReturn float64) []domain.CompoundingPoint {
	years := p.YearsToRetirement()
	annual := FutureValueOfSavings(p.CurrentSavings, adjustedReturn, 1, years)

	points := make([]domain.CompoundingPoint, 0, len(CompoundingFrequencies))
	for _, f := range CompoundingFrequencies {
		v := FutureValueOfSavings(p.CurrentSavings, adjustedReturn, f.PerYear, years)
		points = append(points, domain.CompoundingPoint{
			Frequency:  f.PerYear,
			Label:      f.Label,
			Value:      v,
			Difference: v - annual,
		})
	}
	return points
}
