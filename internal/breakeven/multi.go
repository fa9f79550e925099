package breakeven

import (
	"context"
	"fmt"

	"github.com/rgehrsitz/nestegg/internal/domain"
)

// OptimizeAllTargets solves for every lever with a single goal and compares them
func (s *Solver) OptimizeAllTargets(
	ctx context.Context,
	base *domain.FinancialProfile,
	constraints Constraints,
	goal OptimizationGoal,
) (*MultiDimensionalResult, error) {
	if err := constraints.Validate(); err != nil {
		return nil, err
	}

	targets := []OptimizationTarget{
		OptimizeContribution,
		OptimizeRetirementAge,
	}

	var results []OptimizationResult
	var lastErr error

	for _, target := range targets {
		req := OptimizationRequest{
			Base:          base,
			Target:        target,
			Goal:          goal,
			Constraints:   constraints,
			MaxIterations: s.Options.MaxIterations,
			Tolerance:     s.Options.Tolerance,
		}

		result, err := s.Optimize(ctx, req)
		if err != nil {
			if ctx.Err() != nil {
				return nil, s.wrap("optimize_all", ctx.Err())
			}
			lastErr = err
			continue
		}
		results = append(results, *result)
	}

	if len(results) == 0 {
		return nil, &BreakEvenError{
			Operation: "optimize_all",
			Message:   "no optimization produced a result",
			Cause:     lastErr,
		}
	}

	mdResult := &MultiDimensionalResult{
		Goal:    goal,
		Results: results,
	}
	mdResult.Recommendations = generateRecommendations(mdResult)

	return mdResult, nil
}

// generateRecommendations turns solved levers into plain-language actions
func generateRecommendations(result *MultiDimensionalResult) []string {
	var recommendations []string
	met := 0

	for _, res := range result.Results {
		if !res.Success {
			continue
		}
		met++

		switch {
		case res.OptimalContribution != nil:
			if res.ContributionDiffFromBase.IsPositive() {
				recommendations = append(recommendations,
					fmt.Sprintf("Contribute $%s per month ($%s more than today) and keep retiring at %d",
						res.OptimalContribution.StringFixed(2),
						res.ContributionDiffFromBase.StringFixed(2),
						res.BaseRetirementAge))
			} else {
				recommendations = append(recommendations,
					fmt.Sprintf("Your current contribution already meets the goal; $%s per month is enough",
						res.OptimalContribution.StringFixed(2)))
			}
		case res.OptimalRetirementAge != nil:
			switch diff := res.RetirementAgeDiff; {
			case diff > 0:
				recommendations = append(recommendations,
					fmt.Sprintf("Retire at %d (%d years later) at today's contribution", *res.OptimalRetirementAge, diff))
			case diff < 0:
				recommendations = append(recommendations,
					fmt.Sprintf("You could retire as early as %d (%d years sooner)", *res.OptimalRetirementAge, -diff))
			default:
				recommendations = append(recommendations,
					fmt.Sprintf("Retiring at %d meets the goal with nothing to spare", *res.OptimalRetirementAge))
			}
		}
	}

	if met == 0 {
		recommendations = append(recommendations,
			"Neither lever alone meets the goal within the constraints; combine a higher contribution with a later retirement")
	}

	return recommendations
}
